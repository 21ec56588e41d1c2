package metadata

// InternFactory hands out stable integer keys for structurally equal
// references. Keys are only comparable within one factory.
type InternFactory interface {
	GetTypeReferenceInternedKey(ref TypeReference) uint
	GetFieldInternedKey(ref FieldReference) uint
	GetMethodInternedKey(ref MethodReference) uint
}

// NameTable interns strings. Equal strings get equal keys.
type NameTable interface {
	Key(name string) int
}

// PlatformType supplies canonical references to well-known framework
// types.
type PlatformType interface {
	CoreAssemblyRef() AssemblyReference
	SystemObject() NamespaceTypeReference
	SystemValueType() NamespaceTypeReference
	SystemEnum() NamespaceTypeReference
	SystemVoid() NamespaceTypeReference
	SystemBoolean() NamespaceTypeReference
	SystemInt32() NamespaceTypeReference
	SystemInt64() NamespaceTypeReference
	SystemFloat64() NamespaceTypeReference
	SystemString() NamespaceTypeReference
	SystemType() NamespaceTypeReference
}

// Host supplies the global services a traversal consults. None of them is
// mutated by a traversal.
type Host interface {
	InternFactory() InternFactory
	NameTable() NameTable
	PlatformType() PlatformType
}
