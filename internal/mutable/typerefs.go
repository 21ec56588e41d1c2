package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

// NamespaceTypeReference refers to a type owned by a namespace.
type NamespaceTypeReference struct {
	typeReference
	name                    string
	genericParameterCount   int
	mangleName              bool
	containingUnitNamespace metadata.UnitNamespaceReference
}

// NewNamespaceTypeReference returns a reference to ns.name with the given
// generic arity.
func NewNamespaceTypeReference(ns metadata.UnitNamespaceReference, name string, arity int, f metadata.InternFactory) *NamespaceTypeReference {
	r := &NamespaceTypeReference{name: name, genericParameterCount: arity, mangleName: arity > 0, containingUnitNamespace: ns}
	r.internFactory = f
	return r
}

func (r *NamespaceTypeReference) Name() string               { return r.name }
func (r *NamespaceTypeReference) SetName(v string)           { r.name = v }
func (r *NamespaceTypeReference) GenericParameterCount() int { return r.genericParameterCount }
func (r *NamespaceTypeReference) SetGenericParameterCount(v int) {
	r.genericParameterCount = v
}
func (r *NamespaceTypeReference) MangleName() bool     { return r.mangleName }
func (r *NamespaceTypeReference) SetMangleName(v bool) { r.mangleName = v }
func (r *NamespaceTypeReference) ContainingUnitNamespace() metadata.UnitNamespaceReference {
	return r.containingUnitNamespace
}
func (r *NamespaceTypeReference) SetContainingUnitNamespace(v metadata.UnitNamespaceReference) {
	r.containingUnitNamespace = v
}
func (r *NamespaceTypeReference) InternedKey() uint { return typeKey(r.internFactory, r) }

func (r *NamespaceTypeReference) ResolvedType() metadata.TypeDefinition {
	if r.containingUnitNamespace == nil {
		return DummyType
	}
	return resolveNamespaceType(r.containingUnitNamespace.ResolvedUnitNamespace(), r.name, r.genericParameterCount)
}

func (r *NamespaceTypeReference) Copy(from metadata.NamespaceTypeReference, f metadata.InternFactory) {
	r.copyTypeReference(from, f)
	r.name = from.Name()
	r.genericParameterCount = from.GenericParameterCount()
	r.mangleName = from.MangleName()
	r.containingUnitNamespace = from.ContainingUnitNamespace()
}

// NestedTypeReference refers to a type nested in another type.
type NestedTypeReference struct {
	typeReference
	name                  string
	genericParameterCount int
	mangleName            bool
	containingType        metadata.TypeReference
}

// NewNestedTypeReference returns a reference to container/name.
func NewNestedTypeReference(container metadata.TypeReference, name string, arity int, f metadata.InternFactory) *NestedTypeReference {
	r := &NestedTypeReference{name: name, genericParameterCount: arity, mangleName: arity > 0, containingType: container}
	r.internFactory = f
	return r
}

func (r *NestedTypeReference) Name() string                           { return r.name }
func (r *NestedTypeReference) SetName(v string)                       { r.name = v }
func (r *NestedTypeReference) GenericParameterCount() int             { return r.genericParameterCount }
func (r *NestedTypeReference) SetGenericParameterCount(v int)         { r.genericParameterCount = v }
func (r *NestedTypeReference) MangleName() bool                       { return r.mangleName }
func (r *NestedTypeReference) SetMangleName(v bool)                   { r.mangleName = v }
func (r *NestedTypeReference) ContainingType() metadata.TypeReference { return r.containingType }
func (r *NestedTypeReference) SetContainingType(v metadata.TypeReference) {
	r.containingType = v
}
func (r *NestedTypeReference) InternedKey() uint { return typeKey(r.internFactory, r) }

func (r *NestedTypeReference) ResolvedType() metadata.TypeDefinition {
	if r.containingType == nil {
		return DummyType
	}
	return resolveNestedType(r.containingType.ResolvedType(), r.name, r.genericParameterCount)
}

func (r *NestedTypeReference) Copy(from metadata.NestedTypeReference, f metadata.InternFactory) {
	r.copyTypeReference(from, f)
	r.name = from.Name()
	r.genericParameterCount = from.GenericParameterCount()
	r.mangleName = from.MangleName()
	r.containingType = from.ContainingType()
}

// SpecializedNestedTypeReference refers to a nested type of a generic type
// instance. The containing type is the instance; the unspecialized version
// is the nested type of the generic type.
type SpecializedNestedTypeReference struct {
	NestedTypeReference
	unspecializedVersion metadata.NestedTypeReference
}

// NewSpecializedNestedTypeReference returns the nested type unspecialized
// seen as a member of the instance container.
func NewSpecializedNestedTypeReference(container metadata.TypeReference, unspecialized metadata.NestedTypeReference, f metadata.InternFactory) *SpecializedNestedTypeReference {
	r := &SpecializedNestedTypeReference{unspecializedVersion: unspecialized}
	r.internFactory = f
	r.name = unspecialized.Name()
	r.genericParameterCount = unspecialized.GenericParameterCount()
	r.mangleName = unspecialized.MangleName()
	r.isValueType = unspecialized.IsValueType()
	r.containingType = container
	return r
}

func (r *SpecializedNestedTypeReference) UnspecializedVersion() metadata.NestedTypeReference {
	return r.unspecializedVersion
}
func (r *SpecializedNestedTypeReference) SetUnspecializedVersion(v metadata.NestedTypeReference) {
	r.unspecializedVersion = v
}
func (r *SpecializedNestedTypeReference) InternedKey() uint { return typeKey(r.internFactory, r) }

func (r *SpecializedNestedTypeReference) ResolvedType() metadata.TypeDefinition {
	if r.unspecializedVersion == nil {
		return DummyType
	}
	return r.unspecializedVersion.ResolvedType()
}

func (r *SpecializedNestedTypeReference) Copy(from metadata.SpecializedNestedTypeReference, f metadata.InternFactory) {
	r.NestedTypeReference.Copy(from, f)
	r.unspecializedVersion = from.UnspecializedVersion()
}

// GenericTypeInstanceReference is a generic type applied to arguments.
type GenericTypeInstanceReference struct {
	typeReference
	genericType      metadata.NamedTypeReference
	genericArguments []metadata.TypeReference
}

// NewGenericTypeInstanceReference returns genericType<args...>.
func NewGenericTypeInstanceReference(genericType metadata.NamedTypeReference, args []metadata.TypeReference, f metadata.InternFactory) *GenericTypeInstanceReference {
	r := &GenericTypeInstanceReference{genericType: genericType, genericArguments: args}
	r.internFactory = f
	r.isValueType = genericType.IsValueType()
	return r
}

func (r *GenericTypeInstanceReference) GenericType() metadata.NamedTypeReference { return r.genericType }
func (r *GenericTypeInstanceReference) SetGenericType(v metadata.NamedTypeReference) {
	r.genericType = v
}
func (r *GenericTypeInstanceReference) GenericArguments() []metadata.TypeReference {
	return r.genericArguments
}
func (r *GenericTypeInstanceReference) SetGenericArguments(v []metadata.TypeReference) {
	r.genericArguments = v
}
func (r *GenericTypeInstanceReference) InternedKey() uint { return typeKey(r.internFactory, r) }

// ResolvedType is the definition of the generic type. Instances are not
// materialized as definitions of their own.
func (r *GenericTypeInstanceReference) ResolvedType() metadata.TypeDefinition {
	if r.genericType == nil {
		return DummyType
	}
	return r.genericType.ResolvedType()
}

func (r *GenericTypeInstanceReference) Copy(from metadata.GenericTypeInstanceReference, f metadata.InternFactory) {
	r.copyTypeReference(from, f)
	r.genericType = from.GenericType()
	r.genericArguments = slices.Clone(from.GenericArguments())
}

type genericParameterReference struct {
	typeReference
	name  string
	index int
}

func (r *genericParameterReference) Name() string     { return r.name }
func (r *genericParameterReference) SetName(v string) { r.name = v }
func (r *genericParameterReference) Index() int       { return r.index }
func (r *genericParameterReference) SetIndex(v int)   { r.index = v }

// ResolvedType of a generic parameter is always the dummy type: a
// parameter denotes no definition until it is instantiated.
func (r *genericParameterReference) ResolvedType() metadata.TypeDefinition { return DummyType }

// GenericTypeParameterReference refers to the index-th generic parameter
// of a type.
type GenericTypeParameterReference struct {
	genericParameterReference
	definingType metadata.TypeReference
}

// NewGenericTypeParameterReference returns a reference to !index of
// definingType.
func NewGenericTypeParameterReference(definingType metadata.TypeReference, index int, f metadata.InternFactory) *GenericTypeParameterReference {
	r := &GenericTypeParameterReference{definingType: definingType}
	r.index = index
	r.internFactory = f
	return r
}

func (r *GenericTypeParameterReference) DefiningType() metadata.TypeReference { return r.definingType }
func (r *GenericTypeParameterReference) SetDefiningType(v metadata.TypeReference) {
	r.definingType = v
}
func (r *GenericTypeParameterReference) InternedKey() uint { return typeKey(r.internFactory, r) }

func (r *GenericTypeParameterReference) Copy(from metadata.GenericTypeParameterReference, f metadata.InternFactory) {
	r.copyTypeReference(from, f)
	r.name = from.Name()
	r.index = from.Index()
	r.definingType = from.DefiningType()
}

// GenericMethodParameterReference refers to the index-th generic parameter
// of a method.
type GenericMethodParameterReference struct {
	genericParameterReference
	definingMethod metadata.MethodReference
}

// NewGenericMethodParameterReference returns a reference to !!index of
// definingMethod.
func NewGenericMethodParameterReference(definingMethod metadata.MethodReference, index int, f metadata.InternFactory) *GenericMethodParameterReference {
	r := &GenericMethodParameterReference{definingMethod: definingMethod}
	r.index = index
	r.internFactory = f
	return r
}

func (r *GenericMethodParameterReference) DefiningMethod() metadata.MethodReference {
	return r.definingMethod
}
func (r *GenericMethodParameterReference) SetDefiningMethod(v metadata.MethodReference) {
	r.definingMethod = v
}
func (r *GenericMethodParameterReference) InternedKey() uint { return typeKey(r.internFactory, r) }

func (r *GenericMethodParameterReference) Copy(from metadata.GenericMethodParameterReference, f metadata.InternFactory) {
	r.copyTypeReference(from, f)
	r.name = from.Name()
	r.index = from.Index()
	r.definingMethod = from.DefiningMethod()
}

// ArrayTypeReference is a vector or a matrix.
type ArrayTypeReference struct {
	typeReference
	elementType metadata.TypeReference
	isVector    bool
	rank        uint32
	sizes       []uint64
	lowerBounds []int64
}

// NewVector returns elementType[].
func NewVector(elementType metadata.TypeReference, f metadata.InternFactory) *ArrayTypeReference {
	r := &ArrayTypeReference{elementType: elementType, isVector: true, rank: 1}
	r.internFactory = f
	return r
}

// NewMatrix returns a multi-dimensional array of the given rank without
// bounds.
func NewMatrix(elementType metadata.TypeReference, rank uint32, f metadata.InternFactory) *ArrayTypeReference {
	r := &ArrayTypeReference{elementType: elementType, rank: rank}
	r.internFactory = f
	return r
}

func (r *ArrayTypeReference) ElementType() metadata.TypeReference     { return r.elementType }
func (r *ArrayTypeReference) SetElementType(v metadata.TypeReference) { r.elementType = v }
func (r *ArrayTypeReference) IsVector() bool                          { return r.isVector }
func (r *ArrayTypeReference) SetIsVector(v bool)                      { r.isVector = v }
func (r *ArrayTypeReference) Rank() uint32                            { return r.rank }
func (r *ArrayTypeReference) SetRank(v uint32)                        { r.rank = v }
func (r *ArrayTypeReference) Sizes() []uint64                         { return r.sizes }
func (r *ArrayTypeReference) SetSizes(v []uint64)                     { r.sizes = v }
func (r *ArrayTypeReference) LowerBounds() []int64                    { return r.lowerBounds }
func (r *ArrayTypeReference) SetLowerBounds(v []int64)                { r.lowerBounds = v }
func (r *ArrayTypeReference) InternedKey() uint                       { return typeKey(r.internFactory, r) }
func (r *ArrayTypeReference) ResolvedType() metadata.TypeDefinition   { return DummyType }

func (r *ArrayTypeReference) Copy(from metadata.ArrayTypeReference, f metadata.InternFactory) {
	r.copyTypeReference(from, f)
	r.elementType = from.ElementType()
	r.isVector = from.IsVector()
	r.rank = from.Rank()
	r.sizes = slices.Clone(from.Sizes())
	r.lowerBounds = slices.Clone(from.LowerBounds())
}

// PointerTypeReference is T*.
type PointerTypeReference struct {
	typeReference
	targetType metadata.TypeReference
}

// NewPointer returns target*.
func NewPointer(target metadata.TypeReference, f metadata.InternFactory) *PointerTypeReference {
	r := &PointerTypeReference{targetType: target}
	r.internFactory = f
	return r
}

func (r *PointerTypeReference) IsPointer()                             {}
func (r *PointerTypeReference) TargetType() metadata.TypeReference     { return r.targetType }
func (r *PointerTypeReference) SetTargetType(v metadata.TypeReference) { r.targetType = v }
func (r *PointerTypeReference) InternedKey() uint                      { return typeKey(r.internFactory, r) }
func (r *PointerTypeReference) ResolvedType() metadata.TypeDefinition  { return DummyType }

func (r *PointerTypeReference) Copy(from metadata.PointerTypeReference, f metadata.InternFactory) {
	r.copyTypeReference(from, f)
	r.targetType = from.TargetType()
}

// ManagedPointerTypeReference is T&.
type ManagedPointerTypeReference struct {
	typeReference
	targetType metadata.TypeReference
}

// NewManagedPointer returns target&.
func NewManagedPointer(target metadata.TypeReference, f metadata.InternFactory) *ManagedPointerTypeReference {
	r := &ManagedPointerTypeReference{targetType: target}
	r.internFactory = f
	return r
}

func (r *ManagedPointerTypeReference) IsManagedPointer()                      {}
func (r *ManagedPointerTypeReference) TargetType() metadata.TypeReference     { return r.targetType }
func (r *ManagedPointerTypeReference) SetTargetType(v metadata.TypeReference) { r.targetType = v }
func (r *ManagedPointerTypeReference) InternedKey() uint                      { return typeKey(r.internFactory, r) }
func (r *ManagedPointerTypeReference) ResolvedType() metadata.TypeDefinition  { return DummyType }

func (r *ManagedPointerTypeReference) Copy(from metadata.ManagedPointerTypeReference, f metadata.InternFactory) {
	r.copyTypeReference(from, f)
	r.targetType = from.TargetType()
}

// FunctionPointerTypeReference is a pointer to a function.
type FunctionPointerTypeReference struct {
	typeReference
	signature
	extraArgumentTypes []metadata.ParameterTypeInformation
}

func (r *FunctionPointerTypeReference) ExtraArgumentTypes() []metadata.ParameterTypeInformation {
	return r.extraArgumentTypes
}
func (r *FunctionPointerTypeReference) SetExtraArgumentTypes(v []metadata.ParameterTypeInformation) {
	r.extraArgumentTypes = v
}
func (r *FunctionPointerTypeReference) InternedKey() uint                     { return typeKey(r.internFactory, r) }
func (r *FunctionPointerTypeReference) ResolvedType() metadata.TypeDefinition { return DummyType }

func (r *FunctionPointerTypeReference) Copy(from metadata.FunctionPointerTypeReference, f metadata.InternFactory) {
	r.copyTypeReference(from, f)
	r.copySignature(from)
	r.extraArgumentTypes = slices.Clone(from.ExtraArgumentTypes())
}

// ModifiedTypeReference is a type carrying custom modifiers.
type ModifiedTypeReference struct {
	typeReference
	unmodifiedType  metadata.TypeReference
	customModifiers []metadata.CustomModifier
}

func (r *ModifiedTypeReference) UnmodifiedType() metadata.TypeReference { return r.unmodifiedType }
func (r *ModifiedTypeReference) SetUnmodifiedType(v metadata.TypeReference) {
	r.unmodifiedType = v
}
func (r *ModifiedTypeReference) CustomModifiers() []metadata.CustomModifier {
	return r.customModifiers
}
func (r *ModifiedTypeReference) SetCustomModifiers(v []metadata.CustomModifier) {
	r.customModifiers = v
}
func (r *ModifiedTypeReference) InternedKey() uint { return typeKey(r.internFactory, r) }

func (r *ModifiedTypeReference) ResolvedType() metadata.TypeDefinition {
	if r.unmodifiedType == nil {
		return DummyType
	}
	return r.unmodifiedType.ResolvedType()
}

func (r *ModifiedTypeReference) Copy(from metadata.ModifiedTypeReference, f metadata.InternFactory) {
	r.copyTypeReference(from, f)
	r.unmodifiedType = from.UnmodifiedType()
	r.customModifiers = slices.Clone(from.CustomModifiers())
}
