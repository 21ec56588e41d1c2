package metadata

// UnitNamespaceReference refers to a namespace of a unit.
type UnitNamespaceReference interface {
	Reference
	Unit() UnitReference
	ResolvedUnitNamespace() UnitNamespace
}

// NestedUnitNamespaceReference refers to a namespace nested in another.
// A reference that is not nested refers to the root namespace of its unit.
type NestedUnitNamespaceReference interface {
	UnitNamespaceReference
	Name() string
	ContainingUnitNamespace() UnitNamespaceReference
}

// UnitNamespace is a namespace definition and the owner of its members.
type UnitNamespace interface {
	UnitNamespaceReference
	Name() string
	Members() []NamespaceMember
}

// RootUnitNamespace is the unnamed namespace owned by a unit.
type RootUnitNamespace interface {
	UnitNamespace
}

// NestedUnitNamespace is a namespace owned by another namespace.
type NestedUnitNamespace interface {
	UnitNamespace
	NestedUnitNamespaceReference
	NamespaceMember
}

// NamespaceMember is anything a namespace owns: nested namespaces,
// namespace types, aliases and global fields and methods.
type NamespaceMember interface {
	Name() string
	ContainingNamespace() UnitNamespace
}

// AliasForType is a type forwarder or an exported type.
type AliasForType interface {
	Reference
	AliasedType() NamedTypeReference
	Members() []AliasMember
}

// AliasMember is a member of an alias, i.e. a nested alias.
type AliasMember interface {
	Reference
	Name() string
	Visibility() Visibility
	ContainingAlias() AliasForType
}

// NamespaceAliasForType is an alias owned by a namespace.
type NamespaceAliasForType interface {
	AliasForType
	NamespaceMember
	IsPublic() bool
}

// NestedAliasForType is an alias owned by another alias.
type NestedAliasForType interface {
	AliasForType
	AliasMember
}
