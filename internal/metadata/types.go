package metadata

// TypeReference is a non-owning pointer to a type.
type TypeReference interface {
	Reference
	// InternedKey is the canonical key handed out by the intern factory.
	// Structurally equal references have equal keys.
	InternedKey() uint
	IsValueType() bool
	// ResolvedType returns the definition the reference denotes, or a
	// dummy when it cannot be found.
	ResolvedType() TypeDefinition
}

// NamedTypeReference is a reference to a type that has a name.
type NamedTypeReference interface {
	TypeReference
	Name() string
	GenericParameterCount() int
	// MangleName reports whether the generic arity is part of the
	// metadata name (Name`1).
	MangleName() bool
}

// NamespaceTypeReference refers to a type owned by a namespace.
type NamespaceTypeReference interface {
	NamedTypeReference
	ContainingUnitNamespace() UnitNamespaceReference
}

// NestedTypeReference refers to a type nested in another type.
type NestedTypeReference interface {
	NamedTypeReference
	ContainingType() TypeReference
}

// SpecializedNestedTypeReference refers to a nested type of a generic
// type instance.
type SpecializedNestedTypeReference interface {
	NestedTypeReference
	UnspecializedVersion() NestedTypeReference
}

// GenericTypeInstanceReference is a generic type applied to arguments.
type GenericTypeInstanceReference interface {
	TypeReference
	GenericType() NamedTypeReference
	GenericArguments() []TypeReference
}

// GenericParameterReference refers to a generic parameter by position.
type GenericParameterReference interface {
	TypeReference
	Name() string
	Index() int
}

// GenericTypeParameterReference refers to a type-scoped generic parameter.
type GenericTypeParameterReference interface {
	GenericParameterReference
	DefiningType() TypeReference
}

// GenericMethodParameterReference refers to a method-scoped generic
// parameter.
type GenericMethodParameterReference interface {
	GenericParameterReference
	DefiningMethod() MethodReference
}

// ArrayTypeReference is a vector (single dimension, zero based) or a
// matrix.
type ArrayTypeReference interface {
	TypeReference
	ElementType() TypeReference
	IsVector() bool
	Rank() uint32
	Sizes() []uint64
	LowerBounds() []int64
}

// PointerTypeReference is an unmanaged pointer, T*.
type PointerTypeReference interface {
	TypeReference
	TargetType() TypeReference
	IsPointer()
}

// ManagedPointerTypeReference is a managed pointer, T&.
type ManagedPointerTypeReference interface {
	TypeReference
	TargetType() TypeReference
	IsManagedPointer()
}

// FunctionPointerTypeReference is a pointer to a function with the given
// signature.
type FunctionPointerTypeReference interface {
	TypeReference
	Signature
	ExtraArgumentTypes() []ParameterTypeInformation
}

// ModifiedTypeReference is a type with custom modifiers attached.
type ModifiedTypeReference interface {
	TypeReference
	UnmodifiedType() TypeReference
	CustomModifiers() []CustomModifier
}

// TypeDefinition is a type and the owner of its members. A definition is
// also a reference to itself.
type TypeDefinition interface {
	TypeReference
	Flags() TypeFlags
	SizeOf() uint32
	Alignment() uint16
	GenericParameterCount() int
	BaseClasses() []TypeReference
	Interfaces() []TypeReference
	GenericParameters() []GenericTypeParameter
	Events() []EventDefinition
	Fields() []FieldDefinition
	Methods() []MethodDefinition
	NestedTypes() []NestedTypeDefinition
	Properties() []PropertyDefinition
	SecurityAttributes() []SecurityAttribute
	ExplicitImplementationOverrides() []MethodImplementation
	PrivateHelperMembers() []TypeDefinitionMember
}

// NamedTypeDefinition is a type definition with a name, i.e. anything that
// can appear in Module.AllTypes.
type NamedTypeDefinition interface {
	TypeDefinition
	NamedTypeReference
}

// NamespaceTypeDefinition is a top-level type owned by a namespace.
type NamespaceTypeDefinition interface {
	NamedTypeDefinition
	NamespaceTypeReference
	NamespaceMember
	IsPublic() bool
}

// NestedTypeDefinition is a type owned by another type.
type NestedTypeDefinition interface {
	NamedTypeDefinition
	NestedTypeReference
	TypeDefinitionMember
}

// GenericParameter is the definition of a generic parameter.
type GenericParameter interface {
	GenericParameterReference
	Constraints() []TypeReference
	GenericFlags() GenericParameterFlags
	// IsReferenceType reports whether every instantiation is a reference
	// type, derived from the flags and the constraints.
	IsReferenceType() bool
}

// GenericTypeParameter is a generic parameter owned by a type.
type GenericTypeParameter interface {
	GenericParameter
	GenericTypeParameterReference
	DefiningTypeDefinition() TypeDefinition
}

// GenericMethodParameter is a generic parameter owned by a method.
type GenericMethodParameter interface {
	GenericParameter
	GenericMethodParameterReference
	DefiningMethodDefinition() MethodDefinition
}
