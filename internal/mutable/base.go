package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

type reference struct {
	attributes []metadata.CustomAttribute
	locations  []metadata.Location
}

func (r *reference) Attributes() []metadata.CustomAttribute     { return r.attributes }
func (r *reference) SetAttributes(v []metadata.CustomAttribute) { r.attributes = v }
func (r *reference) Locations() []metadata.Location             { return r.locations }
func (r *reference) SetLocations(v []metadata.Location)         { r.locations = v }

func (r *reference) copyReference(from metadata.Reference) {
	r.attributes = slices.Clone(from.Attributes())
	r.locations = slices.Clone(from.Locations())
}

// typeReference is embedded by every structural type reference.
type typeReference struct {
	reference
	internFactory metadata.InternFactory
	isValueType   bool
}

func (t *typeReference) IsValueType() bool                         { return t.isValueType }
func (t *typeReference) SetIsValueType(v bool)                     { t.isValueType = v }
func (t *typeReference) InternFactory() metadata.InternFactory     { return t.internFactory }
func (t *typeReference) SetInternFactory(f metadata.InternFactory) { t.internFactory = f }

func (t *typeReference) copyTypeReference(from metadata.TypeReference, f metadata.InternFactory) {
	t.copyReference(from)
	t.internFactory = f
	t.isValueType = from.IsValueType()
}

func typeKey(f metadata.InternFactory, ref metadata.TypeReference) uint {
	if f == nil {
		return 0
	}
	return f.GetTypeReferenceInternedKey(ref)
}

func fieldKey(f metadata.InternFactory, ref metadata.FieldReference) uint {
	if f == nil {
		return 0
	}
	return f.GetFieldInternedKey(ref)
}

func methodKey(f metadata.InternFactory, ref metadata.MethodReference) uint {
	if f == nil {
		return 0
	}
	return f.GetMethodInternedKey(ref)
}

// signature holds what method references and function pointers share.
type signature struct {
	callingConvention          metadata.CallingConvention
	parameters                 []metadata.ParameterTypeInformation
	returnValueCustomModifiers []metadata.CustomModifier
	returnValueIsByRef         bool
	returnType                 metadata.TypeReference
}

func (s *signature) CallingConvention() metadata.CallingConvention     { return s.callingConvention }
func (s *signature) SetCallingConvention(v metadata.CallingConvention) { s.callingConvention = v }
func (s *signature) Parameters() []metadata.ParameterTypeInformation   { return s.parameters }
func (s *signature) SetParameters(v []metadata.ParameterTypeInformation) {
	s.parameters = v
}
func (s *signature) ReturnValueCustomModifiers() []metadata.CustomModifier {
	return s.returnValueCustomModifiers
}
func (s *signature) SetReturnValueCustomModifiers(v []metadata.CustomModifier) {
	s.returnValueCustomModifiers = v
}
func (s *signature) ReturnValueIsByRef() bool         { return s.returnValueIsByRef }
func (s *signature) SetReturnValueIsByRef(v bool)     { s.returnValueIsByRef = v }
func (s *signature) Type() metadata.TypeReference     { return s.returnType }
func (s *signature) SetType(v metadata.TypeReference) { s.returnType = v }

func (s *signature) copySignature(from metadata.Signature) {
	s.callingConvention = from.CallingConvention()
	s.parameters = slices.Clone(from.Parameters())
	s.returnValueCustomModifiers = slices.Clone(from.ReturnValueCustomModifiers())
	s.returnValueIsByRef = from.ReturnValueIsByRef()
	s.returnType = from.Type()
}

// typeDefinitionMember holds what every member of a type shares.
type typeDefinitionMember struct {
	reference
	name                     string
	visibility               metadata.Visibility
	containingTypeDefinition metadata.TypeDefinition
}

func (m *typeDefinitionMember) Name() string                        { return m.name }
func (m *typeDefinitionMember) SetName(v string)                    { m.name = v }
func (m *typeDefinitionMember) Visibility() metadata.Visibility     { return m.visibility }
func (m *typeDefinitionMember) SetVisibility(v metadata.Visibility) { m.visibility = v }
func (m *typeDefinitionMember) ContainingTypeDefinition() metadata.TypeDefinition {
	return m.containingTypeDefinition
}
func (m *typeDefinitionMember) SetContainingTypeDefinition(v metadata.TypeDefinition) {
	m.containingTypeDefinition = v
}

// ContainingType is the containing type definition seen as a reference.
func (m *typeDefinitionMember) ContainingType() metadata.TypeReference {
	if m.containingTypeDefinition == nil {
		return nil
	}
	return m.containingTypeDefinition
}

func (m *typeDefinitionMember) copyMember(from metadata.TypeDefinitionMember) {
	m.copyReference(from)
	m.name = from.Name()
	m.visibility = from.Visibility()
	m.containingTypeDefinition = from.ContainingTypeDefinition()
}

func parameterInfos(params []metadata.ParameterDefinition) []metadata.ParameterTypeInformation {
	if params == nil {
		return nil
	}
	out := make([]metadata.ParameterTypeInformation, len(params))
	for i, p := range params {
		out[i] = p
	}
	return out
}
