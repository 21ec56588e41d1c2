package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

// MethodReference refers to a method by containing type, name and
// signature.
type MethodReference struct {
	reference
	signature
	internFactory         metadata.InternFactory
	containingType        metadata.TypeReference
	name                  string
	genericParameterCount int
	extraParameters       []metadata.ParameterTypeInformation
}

// NewMethodReference returns a reference to container::name with the given
// return type and no parameters.
func NewMethodReference(container metadata.TypeReference, name string, returnType metadata.TypeReference, f metadata.InternFactory) *MethodReference {
	r := &MethodReference{internFactory: f, containingType: container, name: name}
	r.returnType = returnType
	return r
}

func (r *MethodReference) ContainingType() metadata.TypeReference     { return r.containingType }
func (r *MethodReference) SetContainingType(v metadata.TypeReference) { r.containingType = v }
func (r *MethodReference) Name() string                               { return r.name }
func (r *MethodReference) SetName(v string)                           { r.name = v }
func (r *MethodReference) GenericParameterCount() int                 { return r.genericParameterCount }
func (r *MethodReference) SetGenericParameterCount(v int)             { r.genericParameterCount = v }
func (r *MethodReference) ExtraParameters() []metadata.ParameterTypeInformation {
	return r.extraParameters
}
func (r *MethodReference) SetExtraParameters(v []metadata.ParameterTypeInformation) {
	r.extraParameters = v
}
func (r *MethodReference) InternFactory() metadata.InternFactory     { return r.internFactory }
func (r *MethodReference) SetInternFactory(f metadata.InternFactory) { r.internFactory = f }
func (r *MethodReference) InternedKey() uint                         { return methodKey(r.internFactory, r) }

// ResolvedMethod finds the first method of the resolved containing type
// with the same name, generic arity and parameter count.
func (r *MethodReference) ResolvedMethod() metadata.MethodDefinition {
	if r.containingType == nil {
		return DummyMethod
	}
	return resolveMethod(r.containingType.ResolvedType(), r.name, r.genericParameterCount, len(r.parameters))
}

func (r *MethodReference) Copy(from metadata.MethodReference, f metadata.InternFactory) {
	r.copyReference(from)
	r.copySignature(from)
	r.internFactory = f
	r.containingType = from.ContainingType()
	r.name = from.Name()
	r.genericParameterCount = from.GenericParameterCount()
	r.extraParameters = slices.Clone(from.ExtraParameters())
}

// SpecializedMethodReference refers to a method of a generic type
// instance.
type SpecializedMethodReference struct {
	MethodReference
	unspecializedVersion metadata.MethodReference
}

// NewSpecializedMethodReference returns the method unspecialized seen as a
// member of the instance container. The signature is taken over from
// unspecialized.
func NewSpecializedMethodReference(container metadata.TypeReference, unspecialized metadata.MethodReference, f metadata.InternFactory) *SpecializedMethodReference {
	r := &SpecializedMethodReference{unspecializedVersion: unspecialized}
	r.MethodReference.Copy(unspecialized, f)
	r.containingType = container
	return r
}

func (r *SpecializedMethodReference) UnspecializedVersion() metadata.MethodReference {
	return r.unspecializedVersion
}
func (r *SpecializedMethodReference) SetUnspecializedVersion(v metadata.MethodReference) {
	r.unspecializedVersion = v
}
func (r *SpecializedMethodReference) InternedKey() uint { return methodKey(r.internFactory, r) }

func (r *SpecializedMethodReference) ResolvedMethod() metadata.MethodDefinition {
	if r.unspecializedVersion == nil {
		return DummyMethod
	}
	return r.unspecializedVersion.ResolvedMethod()
}

func (r *SpecializedMethodReference) Copy(from metadata.SpecializedMethodReference, f metadata.InternFactory) {
	r.MethodReference.Copy(from, f)
	r.unspecializedVersion = from.UnspecializedVersion()
}

// GenericMethodInstanceReference is a generic method applied to type
// arguments.
type GenericMethodInstanceReference struct {
	MethodReference
	genericMethod    metadata.MethodReference
	genericArguments []metadata.TypeReference
}

// NewGenericMethodInstanceReference returns method<args...>. The
// signature is taken over from method.
func NewGenericMethodInstanceReference(method metadata.MethodReference, args []metadata.TypeReference, f metadata.InternFactory) *GenericMethodInstanceReference {
	r := &GenericMethodInstanceReference{genericMethod: method, genericArguments: args}
	r.MethodReference.Copy(method, f)
	r.genericParameterCount = 0
	r.callingConvention &^= metadata.CallingConventionGeneric
	return r
}

func (r *GenericMethodInstanceReference) GenericMethod() metadata.MethodReference {
	return r.genericMethod
}
func (r *GenericMethodInstanceReference) SetGenericMethod(v metadata.MethodReference) {
	r.genericMethod = v
}
func (r *GenericMethodInstanceReference) GenericArguments() []metadata.TypeReference {
	return r.genericArguments
}
func (r *GenericMethodInstanceReference) SetGenericArguments(v []metadata.TypeReference) {
	r.genericArguments = v
}
func (r *GenericMethodInstanceReference) InternedKey() uint { return methodKey(r.internFactory, r) }

func (r *GenericMethodInstanceReference) ResolvedMethod() metadata.MethodDefinition {
	if r.genericMethod == nil {
		return DummyMethod
	}
	return r.genericMethod.ResolvedMethod()
}

func (r *GenericMethodInstanceReference) Copy(from metadata.GenericMethodInstanceReference, f metadata.InternFactory) {
	r.MethodReference.Copy(from, f)
	r.genericMethod = from.GenericMethod()
	r.genericArguments = slices.Clone(from.GenericArguments())
}

// MethodDefinition is a method owned by a type.
type MethodDefinition struct {
	typeDefinitionMember
	internFactory                     metadata.InternFactory
	callingConvention                 metadata.CallingConvention
	returnValueCustomModifiers        []metadata.CustomModifier
	returnValueIsByRef                bool
	returnType                        metadata.TypeReference
	flags                             metadata.MethodFlags
	body                              metadata.MethodBody
	genericParameters                 []metadata.GenericMethodParameter
	parameters                        []metadata.ParameterDefinition
	returnValueAttributes             []metadata.CustomAttribute
	returnValueMarshallingInformation metadata.MarshallingInformation
	platformInvokeData                metadata.PlatformInvokeInformation
	securityAttributes                []metadata.SecurityAttribute
}

// NewMethodDefinition returns a method named name with the given return
// type in container. It does not add itself to the methods of container.
func NewMethodDefinition(container metadata.TypeDefinition, name string, returnType metadata.TypeReference, f metadata.InternFactory) *MethodDefinition {
	d := &MethodDefinition{internFactory: f, returnType: returnType}
	d.name = name
	d.containingTypeDefinition = container
	return d
}

func (d *MethodDefinition) CallingConvention() metadata.CallingConvention { return d.callingConvention }
func (d *MethodDefinition) SetCallingConvention(v metadata.CallingConvention) {
	d.callingConvention = v
}
func (d *MethodDefinition) ReturnValueCustomModifiers() []metadata.CustomModifier {
	return d.returnValueCustomModifiers
}
func (d *MethodDefinition) SetReturnValueCustomModifiers(v []metadata.CustomModifier) {
	d.returnValueCustomModifiers = v
}
func (d *MethodDefinition) ReturnValueIsByRef() bool         { return d.returnValueIsByRef }
func (d *MethodDefinition) SetReturnValueIsByRef(v bool)     { d.returnValueIsByRef = v }
func (d *MethodDefinition) Type() metadata.TypeReference     { return d.returnType }
func (d *MethodDefinition) SetType(v metadata.TypeReference) { d.returnType = v }
func (d *MethodDefinition) Flags() metadata.MethodFlags      { return d.flags }
func (d *MethodDefinition) SetFlags(v metadata.MethodFlags)  { d.flags = v }
func (d *MethodDefinition) Body() metadata.MethodBody        { return d.body }
func (d *MethodDefinition) SetBody(v metadata.MethodBody)    { d.body = v }
func (d *MethodDefinition) GenericParameters() []metadata.GenericMethodParameter {
	return d.genericParameters
}
func (d *MethodDefinition) SetGenericParameters(v []metadata.GenericMethodParameter) {
	d.genericParameters = v
}
func (d *MethodDefinition) GenericParameterCount() int { return len(d.genericParameters) }
func (d *MethodDefinition) ParameterDefinitions() []metadata.ParameterDefinition {
	return d.parameters
}
func (d *MethodDefinition) SetParameterDefinitions(v []metadata.ParameterDefinition) {
	d.parameters = v
}
func (d *MethodDefinition) Parameters() []metadata.ParameterTypeInformation {
	return parameterInfos(d.parameters)
}
func (d *MethodDefinition) ExtraParameters() []metadata.ParameterTypeInformation { return nil }
func (d *MethodDefinition) ReturnValueAttributes() []metadata.CustomAttribute {
	return d.returnValueAttributes
}
func (d *MethodDefinition) SetReturnValueAttributes(v []metadata.CustomAttribute) {
	d.returnValueAttributes = v
}
func (d *MethodDefinition) ReturnValueMarshallingInformation() metadata.MarshallingInformation {
	return d.returnValueMarshallingInformation
}
func (d *MethodDefinition) SetReturnValueMarshallingInformation(v metadata.MarshallingInformation) {
	d.returnValueMarshallingInformation = v
}
func (d *MethodDefinition) PlatformInvokeData() metadata.PlatformInvokeInformation {
	return d.platformInvokeData
}
func (d *MethodDefinition) SetPlatformInvokeData(v metadata.PlatformInvokeInformation) {
	d.platformInvokeData = v
}
func (d *MethodDefinition) SecurityAttributes() []metadata.SecurityAttribute {
	return d.securityAttributes
}
func (d *MethodDefinition) SetSecurityAttributes(v []metadata.SecurityAttribute) {
	d.securityAttributes = v
}
func (d *MethodDefinition) InternFactory() metadata.InternFactory     { return d.internFactory }
func (d *MethodDefinition) SetInternFactory(f metadata.InternFactory) { d.internFactory = f }
func (d *MethodDefinition) InternedKey() uint                         { return methodKey(d.internFactory, d) }
func (d *MethodDefinition) ResolvedMethod() metadata.MethodDefinition { return d }

func (d *MethodDefinition) AddParameter(p metadata.ParameterDefinition) {
	d.parameters = append(d.parameters, p)
}

func (d *MethodDefinition) IsConstructor() bool {
	return d.name == ".ctor" && d.flags.IsRuntimeSpecial && !d.flags.IsStatic
}

func (d *MethodDefinition) IsStaticConstructor() bool {
	return d.name == ".cctor" && d.flags.IsRuntimeSpecial && d.flags.IsStatic
}

func (d *MethodDefinition) Copy(from metadata.MethodDefinition, f metadata.InternFactory) {
	d.copyMember(from)
	d.internFactory = f
	d.callingConvention = from.CallingConvention()
	d.returnValueCustomModifiers = slices.Clone(from.ReturnValueCustomModifiers())
	d.returnValueIsByRef = from.ReturnValueIsByRef()
	d.returnType = from.Type()
	d.flags = from.Flags()
	d.body = from.Body()
	d.genericParameters = slices.Clone(from.GenericParameters())
	d.parameters = slices.Clone(from.ParameterDefinitions())
	d.returnValueAttributes = slices.Clone(from.ReturnValueAttributes())
	d.returnValueMarshallingInformation = from.ReturnValueMarshallingInformation()
	d.platformInvokeData = from.PlatformInvokeData()
	d.securityAttributes = slices.Clone(from.SecurityAttributes())
}

// GlobalMethodDefinition is a method owned by a namespace.
type GlobalMethodDefinition struct {
	MethodDefinition
	containingNamespace metadata.UnitNamespace
}

func (d *GlobalMethodDefinition) ContainingNamespace() metadata.UnitNamespace {
	return d.containingNamespace
}
func (d *GlobalMethodDefinition) SetContainingNamespace(v metadata.UnitNamespace) {
	d.containingNamespace = v
}
func (d *GlobalMethodDefinition) InternedKey() uint                         { return methodKey(d.internFactory, d) }
func (d *GlobalMethodDefinition) ResolvedMethod() metadata.MethodDefinition { return d }

func (d *GlobalMethodDefinition) Copy(from metadata.GlobalMethodDefinition, f metadata.InternFactory) {
	d.MethodDefinition.Copy(from, f)
	d.containingNamespace = from.ContainingNamespace()
}

// ParameterTypeInformation is a parameter of a signature that is not a
// method definition.
type ParameterTypeInformation struct {
	containingSignature metadata.Signature
	index               int
	paramType           metadata.TypeReference
	customModifiers     []metadata.CustomModifier
	isByReference       bool
}

// NewParameterTypeInformation returns parameter index of sig.
func NewParameterTypeInformation(sig metadata.Signature, index int, t metadata.TypeReference) *ParameterTypeInformation {
	return &ParameterTypeInformation{containingSignature: sig, index: index, paramType: t}
}

func (p *ParameterTypeInformation) ContainingSignature() metadata.Signature { return p.containingSignature }
func (p *ParameterTypeInformation) SetContainingSignature(v metadata.Signature) {
	p.containingSignature = v
}
func (p *ParameterTypeInformation) Index() int                       { return p.index }
func (p *ParameterTypeInformation) SetIndex(v int)                   { p.index = v }
func (p *ParameterTypeInformation) Type() metadata.TypeReference     { return p.paramType }
func (p *ParameterTypeInformation) SetType(v metadata.TypeReference) { p.paramType = v }
func (p *ParameterTypeInformation) CustomModifiers() []metadata.CustomModifier {
	return p.customModifiers
}
func (p *ParameterTypeInformation) SetCustomModifiers(v []metadata.CustomModifier) {
	p.customModifiers = v
}
func (p *ParameterTypeInformation) IsByReference() bool     { return p.isByReference }
func (p *ParameterTypeInformation) SetIsByReference(v bool) { p.isByReference = v }

func (p *ParameterTypeInformation) Copy(from metadata.ParameterTypeInformation, _ metadata.InternFactory) {
	p.containingSignature = from.ContainingSignature()
	p.index = from.Index()
	p.paramType = from.Type()
	p.customModifiers = slices.Clone(from.CustomModifiers())
	p.isByReference = from.IsByReference()
}

// ParameterDefinition is a parameter of a method or property definition.
type ParameterDefinition struct {
	reference
	ParameterTypeInformation
	name                   string
	flags                  metadata.ParameterFlags
	defaultValue           metadata.MetadataConstant
	marshallingInformation metadata.MarshallingInformation
	paramArrayElementType  metadata.TypeReference
}

// NewParameterDefinition returns parameter index named name of sig.
func NewParameterDefinition(sig metadata.Signature, name string, index int, t metadata.TypeReference) *ParameterDefinition {
	p := &ParameterDefinition{name: name}
	p.containingSignature = sig
	p.index = index
	p.paramType = t
	return p
}

func (p *ParameterDefinition) Name() string                                { return p.name }
func (p *ParameterDefinition) SetName(v string)                            { p.name = v }
func (p *ParameterDefinition) ParameterFlags() metadata.ParameterFlags     { return p.flags }
func (p *ParameterDefinition) SetParameterFlags(v metadata.ParameterFlags) { p.flags = v }
func (p *ParameterDefinition) DefaultValue() metadata.MetadataConstant     { return p.defaultValue }
func (p *ParameterDefinition) SetDefaultValue(v metadata.MetadataConstant) { p.defaultValue = v }
func (p *ParameterDefinition) MarshallingInformation() metadata.MarshallingInformation {
	return p.marshallingInformation
}
func (p *ParameterDefinition) SetMarshallingInformation(v metadata.MarshallingInformation) {
	p.marshallingInformation = v
}
func (p *ParameterDefinition) ParamArrayElementType() metadata.TypeReference {
	return p.paramArrayElementType
}
func (p *ParameterDefinition) SetParamArrayElementType(v metadata.TypeReference) {
	p.paramArrayElementType = v
}

func (p *ParameterDefinition) Copy(from metadata.ParameterDefinition, f metadata.InternFactory) {
	p.copyReference(from)
	p.ParameterTypeInformation.Copy(from, f)
	p.name = from.Name()
	p.flags = from.ParameterFlags()
	p.defaultValue = from.DefaultValue()
	p.marshallingInformation = from.MarshallingInformation()
	p.paramArrayElementType = from.ParamArrayElementType()
}

// MethodImplementation maps an implemented method to the method that
// implements it in a type.
type MethodImplementation struct {
	containingType     metadata.TypeDefinition
	implementedMethod  metadata.MethodReference
	implementingMethod metadata.MethodReference
}

func (m *MethodImplementation) ContainingType() metadata.TypeDefinition     { return m.containingType }
func (m *MethodImplementation) SetContainingType(v metadata.TypeDefinition) { m.containingType = v }
func (m *MethodImplementation) ImplementedMethod() metadata.MethodReference {
	return m.implementedMethod
}
func (m *MethodImplementation) SetImplementedMethod(v metadata.MethodReference) {
	m.implementedMethod = v
}
func (m *MethodImplementation) ImplementingMethod() metadata.MethodReference {
	return m.implementingMethod
}
func (m *MethodImplementation) SetImplementingMethod(v metadata.MethodReference) {
	m.implementingMethod = v
}

func (m *MethodImplementation) Copy(from metadata.MethodImplementation, _ metadata.InternFactory) {
	m.containingType = from.ContainingType()
	m.implementedMethod = from.ImplementedMethod()
	m.implementingMethod = from.ImplementingMethod()
}
