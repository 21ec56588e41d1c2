package mutable

const dummyName = "<dummy>"

// Dummies stand in for anything that cannot be resolved or found. They are
// shared by every graph and must never be mutated.
var (
	DummyAssembly  = &Assembly{}
	DummyModule    = &Module{}
	DummyNamespace = &RootUnitNamespace{}
	DummyType      = &NamespaceTypeDefinition{}
	DummyMethod    = &MethodDefinition{}
	DummyField     = &FieldDefinition{}
)

func init() {
	DummyAssembly.name = dummyName
	DummyAssembly.moduleName = dummyName
	DummyAssembly.namespaceRoot = &RootUnitNamespace{unit: DummyAssembly}

	DummyModule.name = dummyName
	DummyModule.moduleName = dummyName
	DummyModule.namespaceRoot = DummyNamespace
	DummyNamespace.unit = DummyModule

	DummyType.name = dummyName
	DummyType.containingNamespace = DummyNamespace
	DummyType.helpersReady = true

	DummyMethod.name = dummyName
	DummyMethod.containingTypeDefinition = DummyType
	DummyMethod.returnType = DummyType

	DummyField.name = dummyName
	DummyField.containingTypeDefinition = DummyType
	DummyField.fieldType = DummyType
}

// IsDummy reports whether node is one of the dummies.
func IsDummy(node any) bool {
	switch n := node.(type) {
	case *Assembly:
		return n == DummyAssembly
	case *Module:
		return n == DummyModule
	case *RootUnitNamespace:
		return n == DummyNamespace || n == DummyAssembly.namespaceRoot
	case *NamespaceTypeDefinition:
		return n == DummyType
	case *MethodDefinition:
		return n == DummyMethod
	case *FieldDefinition:
		return n == DummyField
	}
	return false
}
