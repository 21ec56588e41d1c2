package metadata

import "github.com/google/uuid"

// UnitReference refers to a module or an assembly.
type UnitReference interface {
	Reference
	Name() string
	// ResolvedUnit returns the definition of the unit, or a dummy when it
	// is not available.
	ResolvedUnit() Unit
}

// ModuleReference refers to a module.
type ModuleReference interface {
	UnitReference
	// ContainingAssembly is the assembly the module belongs to, if known.
	ContainingAssembly() AssemblyReference
	ResolvedModule() Module
}

// AssemblyReference refers to an assembly by identity.
type AssemblyReference interface {
	ModuleReference
	Culture() string
	Version() Version
	PublicKeyToken() []byte
	Aliases() []string
	IsRetargetable() bool
	ResolvedAssembly() Assembly
}

// Unit is a compiled module or assembly.
type Unit interface {
	UnitReference
	Location() string
	UnitNamespaceRoot() RootUnitNamespace
}

// Module is a unit holding types. AllTypes lists every named type
// definition, nested ones included; the first entry is the <Module>
// pseudo-type when the module has one.
type Module interface {
	Unit
	ModuleReference
	ModuleName() string
	Kind() ModuleKind
	TargetRuntimeVersion() string
	PersistentIdentifier() uuid.UUID
	AllTypes() []NamedTypeDefinition
	AssemblyReferences() []AssemblyReference
	ModuleReferences() []ModuleReference
	Win32Resources() []Win32Resource
	EntryPoint() MethodReference
}

// Assembly is a module that also carries an assembly manifest.
type Assembly interface {
	Module
	AssemblyReference
	AssemblyAttributes() []CustomAttribute
	AssemblyFlags() uint32
	PublicKey() []byte
	ExportedTypes() []AliasForType
	Files() []FileReference
	MemberModules() []Module
	Resources() []ResourceReference
	SecurityAttributes() []SecurityAttribute
}
