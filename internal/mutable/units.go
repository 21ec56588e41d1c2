package mutable

import (
	"slices"

	"github.com/google/uuid"

	"github.com/il2js/metamodel/internal/metadata"
)

// ModuleReference refers to a module by name.
type ModuleReference struct {
	reference
	name               string
	containingAssembly metadata.AssemblyReference
	resolvedModule     metadata.Module
}

func (r *ModuleReference) Name() string     { return r.name }
func (r *ModuleReference) SetName(v string) { r.name = v }
func (r *ModuleReference) ContainingAssembly() metadata.AssemblyReference {
	return r.containingAssembly
}
func (r *ModuleReference) SetContainingAssembly(v metadata.AssemblyReference) {
	r.containingAssembly = v
}

// SetResolvedModule binds the reference to a loaded module.
func (r *ModuleReference) SetResolvedModule(v metadata.Module) { r.resolvedModule = v }

func (r *ModuleReference) ResolvedModule() metadata.Module {
	if r.resolvedModule == nil {
		return DummyModule
	}
	return r.resolvedModule
}

func (r *ModuleReference) ResolvedUnit() metadata.Unit { return r.ResolvedModule() }

func (r *ModuleReference) Copy(from metadata.ModuleReference, _ metadata.InternFactory) {
	r.copyReference(from)
	r.name = from.Name()
	r.containingAssembly = from.ContainingAssembly()
	r.resolvedModule = nil
	if m := from.ResolvedModule(); !IsDummy(m) {
		r.resolvedModule = m
	}
}

// AssemblyReference refers to an assembly by identity.
type AssemblyReference struct {
	reference
	name             string
	culture          string
	version          metadata.Version
	publicKeyToken   []byte
	aliases          []string
	isRetargetable   bool
	resolvedAssembly metadata.Assembly
}

// NewAssemblyReference returns a reference to the named assembly.
func NewAssemblyReference(name string, version metadata.Version) *AssemblyReference {
	return &AssemblyReference{name: name, version: version}
}

func (r *AssemblyReference) Name() string                            { return r.name }
func (r *AssemblyReference) SetName(v string)                        { r.name = v }
func (r *AssemblyReference) Culture() string                         { return r.culture }
func (r *AssemblyReference) SetCulture(v string)                     { r.culture = v }
func (r *AssemblyReference) Version() metadata.Version               { return r.version }
func (r *AssemblyReference) SetVersion(v metadata.Version)           { r.version = v }
func (r *AssemblyReference) PublicKeyToken() []byte                  { return r.publicKeyToken }
func (r *AssemblyReference) SetPublicKeyToken(v []byte)              { r.publicKeyToken = v }
func (r *AssemblyReference) Aliases() []string                       { return r.aliases }
func (r *AssemblyReference) SetAliases(v []string)                   { r.aliases = v }
func (r *AssemblyReference) IsRetargetable() bool                    { return r.isRetargetable }
func (r *AssemblyReference) SetIsRetargetable(v bool)                { r.isRetargetable = v }
func (r *AssemblyReference) SetResolvedAssembly(v metadata.Assembly) { r.resolvedAssembly = v }

// ContainingAssembly of an assembly reference is the reference itself.
func (r *AssemblyReference) ContainingAssembly() metadata.AssemblyReference { return r }

func (r *AssemblyReference) ResolvedAssembly() metadata.Assembly {
	if r.resolvedAssembly == nil {
		return DummyAssembly
	}
	return r.resolvedAssembly
}

func (r *AssemblyReference) ResolvedModule() metadata.Module { return r.ResolvedAssembly() }
func (r *AssemblyReference) ResolvedUnit() metadata.Unit     { return r.ResolvedAssembly() }

func (r *AssemblyReference) Copy(from metadata.AssemblyReference, _ metadata.InternFactory) {
	r.copyReference(from)
	r.name = from.Name()
	r.culture = from.Culture()
	r.version = from.Version()
	r.publicKeyToken = slices.Clone(from.PublicKeyToken())
	r.aliases = slices.Clone(from.Aliases())
	r.isRetargetable = from.IsRetargetable()
	r.resolvedAssembly = nil
	if a := from.ResolvedAssembly(); !IsDummy(a) {
		r.resolvedAssembly = a
	}
}

// Module is a unit holding types.
type Module struct {
	reference
	name                 string
	moduleName           string
	location             string
	kind                 metadata.ModuleKind
	targetRuntimeVersion string
	persistentIdentifier uuid.UUID
	allTypes             []metadata.NamedTypeDefinition
	assemblyReferences   []metadata.AssemblyReference
	moduleReferences     []metadata.ModuleReference
	win32Resources       []metadata.Win32Resource
	entryPoint           metadata.MethodReference
	containingAssembly   metadata.AssemblyReference
	namespaceRoot        metadata.RootUnitNamespace
}

// NewModule returns an empty module with a root namespace and a fresh
// persistent identifier.
func NewModule(name string) *Module {
	m := &Module{name: name, moduleName: name, persistentIdentifier: uuid.New()}
	m.namespaceRoot = &RootUnitNamespace{unit: m}
	return m
}

func (m *Module) Name() string                             { return m.name }
func (m *Module) SetName(v string)                         { m.name = v }
func (m *Module) ModuleName() string                       { return m.moduleName }
func (m *Module) SetModuleName(v string)                   { m.moduleName = v }
func (m *Module) Location() string                         { return m.location }
func (m *Module) SetLocation(v string)                     { m.location = v }
func (m *Module) Kind() metadata.ModuleKind                { return m.kind }
func (m *Module) SetKind(v metadata.ModuleKind)            { m.kind = v }
func (m *Module) TargetRuntimeVersion() string             { return m.targetRuntimeVersion }
func (m *Module) SetTargetRuntimeVersion(v string)         { m.targetRuntimeVersion = v }
func (m *Module) PersistentIdentifier() uuid.UUID          { return m.persistentIdentifier }
func (m *Module) SetPersistentIdentifier(v uuid.UUID)      { m.persistentIdentifier = v }
func (m *Module) AllTypes() []metadata.NamedTypeDefinition { return m.allTypes }
func (m *Module) SetAllTypes(v []metadata.NamedTypeDefinition) {
	m.allTypes = v
}
func (m *Module) AssemblyReferences() []metadata.AssemblyReference {
	return m.assemblyReferences
}
func (m *Module) SetAssemblyReferences(v []metadata.AssemblyReference) {
	m.assemblyReferences = v
}
func (m *Module) ModuleReferences() []metadata.ModuleReference { return m.moduleReferences }
func (m *Module) SetModuleReferences(v []metadata.ModuleReference) {
	m.moduleReferences = v
}
func (m *Module) Win32Resources() []metadata.Win32Resource     { return m.win32Resources }
func (m *Module) SetWin32Resources(v []metadata.Win32Resource) { m.win32Resources = v }
func (m *Module) EntryPoint() metadata.MethodReference         { return m.entryPoint }
func (m *Module) SetEntryPoint(v metadata.MethodReference)     { m.entryPoint = v }
func (m *Module) ContainingAssembly() metadata.AssemblyReference {
	return m.containingAssembly
}
func (m *Module) SetContainingAssembly(v metadata.AssemblyReference) {
	m.containingAssembly = v
}
func (m *Module) UnitNamespaceRoot() metadata.RootUnitNamespace { return m.namespaceRoot }
func (m *Module) SetUnitNamespaceRoot(v metadata.RootUnitNamespace) {
	m.namespaceRoot = v
}

func (m *Module) ResolvedModule() metadata.Module { return m }
func (m *Module) ResolvedUnit() metadata.Unit     { return m }

func (m *Module) Copy(from metadata.Module, _ metadata.InternFactory) {
	m.copyReference(from)
	m.name = from.Name()
	m.moduleName = from.ModuleName()
	m.location = from.Location()
	m.kind = from.Kind()
	m.targetRuntimeVersion = from.TargetRuntimeVersion()
	m.persistentIdentifier = from.PersistentIdentifier()
	m.allTypes = slices.Clone(from.AllTypes())
	m.assemblyReferences = slices.Clone(from.AssemblyReferences())
	m.moduleReferences = slices.Clone(from.ModuleReferences())
	m.win32Resources = slices.Clone(from.Win32Resources())
	m.entryPoint = from.EntryPoint()
	m.containingAssembly = from.ContainingAssembly()
	m.namespaceRoot = from.UnitNamespaceRoot()
}

// Assembly is a module that carries an assembly manifest. The manifest
// module is the assembly itself.
type Assembly struct {
	Module
	culture            string
	version            metadata.Version
	publicKeyToken     []byte
	aliases            []string
	isRetargetable     bool
	assemblyAttributes []metadata.CustomAttribute
	flags              uint32
	publicKey          []byte
	exportedTypes      []metadata.AliasForType
	files              []metadata.FileReference
	memberModules      []metadata.Module
	resources          []metadata.ResourceReference
	securityAttributes []metadata.SecurityAttribute
}

// NewAssembly returns an empty assembly with a root namespace.
func NewAssembly(name string, version metadata.Version) *Assembly {
	a := &Assembly{version: version}
	a.name = name
	a.moduleName = name + ".dll"
	a.persistentIdentifier = uuid.New()
	a.namespaceRoot = &RootUnitNamespace{unit: a}
	return a
}

func (a *Assembly) Culture() string               { return a.culture }
func (a *Assembly) SetCulture(v string)           { a.culture = v }
func (a *Assembly) Version() metadata.Version     { return a.version }
func (a *Assembly) SetVersion(v metadata.Version) { a.version = v }
func (a *Assembly) PublicKeyToken() []byte        { return a.publicKeyToken }
func (a *Assembly) SetPublicKeyToken(v []byte)    { a.publicKeyToken = v }
func (a *Assembly) Aliases() []string             { return a.aliases }
func (a *Assembly) SetAliases(v []string)         { a.aliases = v }
func (a *Assembly) IsRetargetable() bool          { return a.isRetargetable }
func (a *Assembly) SetIsRetargetable(v bool)      { a.isRetargetable = v }
func (a *Assembly) AssemblyFlags() uint32         { return a.flags }
func (a *Assembly) SetAssemblyFlags(v uint32)     { a.flags = v }
func (a *Assembly) PublicKey() []byte             { return a.publicKey }
func (a *Assembly) SetPublicKey(v []byte)         { a.publicKey = v }
func (a *Assembly) AssemblyAttributes() []metadata.CustomAttribute {
	return a.assemblyAttributes
}
func (a *Assembly) SetAssemblyAttributes(v []metadata.CustomAttribute) {
	a.assemblyAttributes = v
}
func (a *Assembly) ExportedTypes() []metadata.AliasForType     { return a.exportedTypes }
func (a *Assembly) SetExportedTypes(v []metadata.AliasForType) { a.exportedTypes = v }
func (a *Assembly) Files() []metadata.FileReference            { return a.files }
func (a *Assembly) SetFiles(v []metadata.FileReference)        { a.files = v }
func (a *Assembly) MemberModules() []metadata.Module           { return a.memberModules }
func (a *Assembly) SetMemberModules(v []metadata.Module)       { a.memberModules = v }
func (a *Assembly) Resources() []metadata.ResourceReference    { return a.resources }
func (a *Assembly) SetResources(v []metadata.ResourceReference) {
	a.resources = v
}
func (a *Assembly) SecurityAttributes() []metadata.SecurityAttribute {
	return a.securityAttributes
}
func (a *Assembly) SetSecurityAttributes(v []metadata.SecurityAttribute) {
	a.securityAttributes = v
}

func (a *Assembly) ContainingAssembly() metadata.AssemblyReference { return a }
func (a *Assembly) ResolvedAssembly() metadata.Assembly            { return a }
func (a *Assembly) ResolvedModule() metadata.Module                { return a }
func (a *Assembly) ResolvedUnit() metadata.Unit                    { return a }

func (a *Assembly) Copy(from metadata.Assembly, f metadata.InternFactory) {
	a.Module.Copy(from, f)
	a.containingAssembly = nil
	a.culture = from.Culture()
	a.version = from.Version()
	a.publicKeyToken = slices.Clone(from.PublicKeyToken())
	a.aliases = slices.Clone(from.Aliases())
	a.isRetargetable = from.IsRetargetable()
	a.assemblyAttributes = slices.Clone(from.AssemblyAttributes())
	a.flags = from.AssemblyFlags()
	a.publicKey = slices.Clone(from.PublicKey())
	a.exportedTypes = slices.Clone(from.ExportedTypes())
	a.files = slices.Clone(from.Files())
	a.memberModules = slices.Clone(from.MemberModules())
	a.resources = slices.Clone(from.Resources())
	a.securityAttributes = slices.Clone(from.SecurityAttributes())
}
