package host

import (
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// DefaultCoreAssembly is the assembly the System types live in.
const DefaultCoreAssembly = "mscorlib"

var coreVersion = metadata.Version{Major: 4}

// PlatformTypes holds one canonical reference per well-known type, so two
// uses of System.String anywhere share the same node.
type PlatformTypes struct {
	core   *mutable.AssemblyReference
	system *mutable.NestedUnitNamespaceReference
	byName map[string]*mutable.NamespaceTypeReference
}

// NewPlatformTypes builds the references to System types in coreAssembly.
func NewPlatformTypes(coreAssembly string, f metadata.InternFactory) *PlatformTypes {
	core := mutable.NewAssemblyReference(coreAssembly, coreVersion)
	system := mutable.NewNestedUnitNamespaceReference(mutable.NewRootUnitNamespaceReference(core), "System")
	p := &PlatformTypes{core: core, system: system, byName: make(map[string]*mutable.NamespaceTypeReference)}
	for _, t := range []struct {
		name      string
		valueType bool
	}{
		{"Object", false},
		{"ValueType", false},
		{"Enum", false},
		{"Void", true},
		{"Boolean", true},
		{"Char", true},
		{"SByte", true},
		{"Byte", true},
		{"Int16", true},
		{"UInt16", true},
		{"Int32", true},
		{"UInt32", true},
		{"Int64", true},
		{"UInt64", true},
		{"Single", true},
		{"Double", true},
		{"IntPtr", true},
		{"UIntPtr", true},
		{"String", false},
		{"Type", false},
		{"Array", false},
	} {
		ref := mutable.NewNamespaceTypeReference(system, t.name, 0, f)
		ref.SetIsValueType(t.valueType)
		p.byName[t.name] = ref
	}
	return p
}

// Lookup returns System.name, or nil when name is not a platform type.
func (p *PlatformTypes) Lookup(name string) *mutable.NamespaceTypeReference {
	return p.byName[name]
}

// SystemNamespace is the reference to the System namespace of the core
// assembly.
func (p *PlatformTypes) SystemNamespace() metadata.UnitNamespaceReference { return p.system }

func (p *PlatformTypes) CoreAssemblyRef() metadata.AssemblyReference { return p.core }

func (p *PlatformTypes) SystemObject() metadata.NamespaceTypeReference    { return p.byName["Object"] }
func (p *PlatformTypes) SystemValueType() metadata.NamespaceTypeReference { return p.byName["ValueType"] }
func (p *PlatformTypes) SystemEnum() metadata.NamespaceTypeReference      { return p.byName["Enum"] }
func (p *PlatformTypes) SystemVoid() metadata.NamespaceTypeReference      { return p.byName["Void"] }
func (p *PlatformTypes) SystemBoolean() metadata.NamespaceTypeReference   { return p.byName["Boolean"] }
func (p *PlatformTypes) SystemInt32() metadata.NamespaceTypeReference     { return p.byName["Int32"] }
func (p *PlatformTypes) SystemInt64() metadata.NamespaceTypeReference     { return p.byName["Int64"] }
func (p *PlatformTypes) SystemFloat64() metadata.NamespaceTypeReference   { return p.byName["Double"] }
func (p *PlatformTypes) SystemString() metadata.NamespaceTypeReference    { return p.byName["String"] }
func (p *PlatformTypes) SystemType() metadata.NamespaceTypeReference      { return p.byName["Type"] }
