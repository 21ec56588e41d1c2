package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/il2js/metamodel/internal/diag"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// unitBuilder builds one declared unit and owns every reference node the
// unit's declarations create.
type unitBuilder struct {
	*builder
	spec *unitSpec
	name string

	unit   metadata.Module
	module *mutable.Module
	asm    *mutable.Assembly // nil for a plain module

	root       *mutable.RootUnitNamespace
	namespaces map[string]*mutable.NestedUnitNamespace
	topLevel   map[string][]*mutable.NamespaceTypeDefinition
	allTypes   []metadata.NamedTypeDefinition
	decls      []*typeDecl

	unitRefs map[string]metadata.UnitReference
	nsRefs   map[string]metadata.UnitNamespaceReference
	typeRefs map[string]metadata.NamedTypeReference
	nested   map[nestedKey]metadata.NamedTypeReference
	shared   map[string]metadata.TypeReference
	members  map[string]any
}

type nestedKey struct {
	container metadata.TypeReference
	name      string
	arity     int
}

func (b *builder) declareUnit(spec *unitSpec) {
	name, isAssembly := spec.Assembly, true
	if spec.Module != "" {
		if name != "" {
			b.errorf(spec.at, diag.CodeFixtureSyntax, "unit %q declares both assembly and module", name)
			return
		}
		name, isAssembly = spec.Module, false
	}
	if name == "" {
		b.errorf(spec.at, diag.CodeFixtureMissingKey, "unit needs an assembly or module name")
		return
	}
	if _, dup := b.units[name]; dup {
		b.errorf(spec.at, diag.CodeFixtureDuplicateName, "unit %q is declared twice", name)
		return
	}

	u := &unitBuilder{
		builder:    b,
		spec:       spec,
		name:       name,
		namespaces: make(map[string]*mutable.NestedUnitNamespace),
		topLevel:   make(map[string][]*mutable.NamespaceTypeDefinition),
		unitRefs:   make(map[string]metadata.UnitReference),
		nsRefs:     make(map[string]metadata.UnitNamespaceReference),
		typeRefs:   make(map[string]metadata.NamedTypeReference),
		nested:     make(map[nestedKey]metadata.NamedTypeReference),
		shared:     make(map[string]metadata.TypeReference),
		members:    make(map[string]any),
	}
	if isAssembly {
		version := metadata.Version{Major: 1}
		if spec.Version != "" {
			v, err := parseVersion(spec.Version)
			if err != nil {
				b.errorf(spec.at, diag.CodeFixtureInvalidOperand, "assembly %s: %v", name, err)
			}
			version = v
		}
		u.asm = mutable.NewAssembly(name, version)
		u.module = &u.asm.Module
		u.unit = u.asm
	} else {
		u.module = mutable.NewModule(name)
		u.unit = u.module
	}
	if spec.Kind != "" {
		kind, ok := parseModuleKind(spec.Kind)
		if !ok {
			b.errorf(spec.at, diag.CodeFixtureInvalidOperand, "unit %s: unknown kind %q", name, spec.Kind)
		}
		u.module.SetKind(kind)
	}
	if spec.MVID != "" {
		id, err := uuid.Parse(spec.MVID)
		if err != nil {
			b.errorf(spec.at, diag.CodeFixtureInvalidOperand, "unit %s: mvid: %v", name, err)
		}
		u.module.SetPersistentIdentifier(id)
	}
	u.root = u.unit.UnitNamespaceRoot().(*mutable.RootUnitNamespace)
	b.order = append(b.order, u)
	b.units[name] = u
}

// parseVersion reads "major[.minor[.build[.revision]]]".
func parseVersion(s string) (metadata.Version, error) {
	var parts [4]uint16
	fields := strings.Split(s, ".")
	if len(fields) > 4 {
		return metadata.Version{}, fmt.Errorf("version %q has more than four parts", s)
	}
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 16)
		if err != nil {
			return metadata.Version{}, fmt.Errorf("version %q: %w", s, err)
		}
		parts[i] = uint16(n)
	}
	return metadata.Version{Major: parts[0], Minor: parts[1], Build: parts[2], Revision: parts[3]}, nil
}

func parseModuleKind(s string) (metadata.ModuleKind, bool) {
	for k := metadata.ModuleKindDynamicallyLinkedLibrary; k <= metadata.ModuleKindUnmanagedDynamicallyLinkedLibrary; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return metadata.ModuleKindDynamicallyLinkedLibrary, false
}

// linkUnits creates the explicit references and member modules of the
// unit.
func (u *unitBuilder) linkUnits() {
	for _, r := range u.spec.References {
		if r.text == u.name {
			u.errorf(r.at, diag.CodeFixtureUnknownUnit, "unit %s references itself", u.name)
			continue
		}
		u.unitRef(r.text)
	}
	if len(u.spec.Modules) > 0 && u.asm == nil {
		u.errorf(u.spec.at, diag.CodeFixtureSyntax, "module %s cannot have member modules", u.name)
		return
	}
	for _, m := range u.spec.Modules {
		target, ok := u.units[m.text]
		if !ok || target.asm != nil {
			u.errorf(m.at, diag.CodeFixtureUnknownUnit, "%q is not a module of this fixture", m.text)
			continue
		}
		u.asm.SetMemberModules(append(u.asm.MemberModules(), target.module))
		target.module.SetContainingAssembly(u.asm)
	}
}

func (u *unitBuilder) coreName() string {
	return u.host.Platform().CoreAssemblyRef().Name()
}

// unitRef returns the reference of this unit to the unit called name,
// creating and recording it on first use. Units of the fixture are bound
// to their declaration; other names stay unresolved.
func (u *unitBuilder) unitRef(name string) metadata.UnitReference {
	if r, ok := u.unitRefs[name]; ok {
		return r
	}
	target := u.units[name]
	var ref metadata.UnitReference
	switch {
	case target == nil && name == u.coreName():
		core := u.host.Platform().CoreAssemblyRef()
		u.module.SetAssemblyReferences(append(u.module.AssemblyReferences(), core))
		ref = core
	case target != nil && target.asm == nil:
		mr := &mutable.ModuleReference{}
		mr.SetName(name)
		mr.SetResolvedModule(target.module)
		if u.asm != nil {
			mr.SetContainingAssembly(u.asm)
		}
		u.module.SetModuleReferences(append(u.module.ModuleReferences(), mr))
		ref = mr
	default:
		ar := mutable.NewAssemblyReference(name, metadata.Version{})
		if target != nil {
			ar.SetVersion(target.asm.Version())
			ar.SetResolvedAssembly(target.asm)
		}
		u.module.SetAssemblyReferences(append(u.module.AssemblyReferences(), ar))
		ref = ar
	}
	u.unitRefs[name] = ref
	return ref
}

// namespaceRef returns the reference to the dotted namespace inside unit.
func (u *unitBuilder) namespaceRef(unit string, dotted string) metadata.UnitNamespaceReference {
	if unit == u.coreName() && dotted == "System" && u.units[unit] == nil {
		return u.host.Platform().SystemNamespace()
	}
	key := unit + "|" + dotted
	if r, ok := u.nsRefs[key]; ok {
		return r
	}
	var r metadata.UnitNamespaceReference
	if dotted == "" {
		r = mutable.NewRootUnitNamespaceReference(u.unitRef(unit))
	} else {
		parent, last := "", dotted
		if i := strings.LastIndexByte(dotted, '.'); i >= 0 {
			parent, last = dotted[:i], dotted[i+1:]
		}
		r = mutable.NewNestedUnitNamespaceReference(u.namespaceRef(unit, parent), last)
	}
	u.nsRefs[key] = r
	return r
}

// namespace returns the namespace definition for dotted, creating the
// chain on first use.
func (u *unitBuilder) namespace(dotted string) metadata.UnitNamespace {
	if dotted == "" {
		return u.root
	}
	if ns, ok := u.namespaces[dotted]; ok {
		return ns
	}
	parent, last := "", dotted
	if i := strings.LastIndexByte(dotted, '.'); i >= 0 {
		parent, last = dotted[:i], dotted[i+1:]
	}
	outer := u.namespace(parent)
	ns := mutable.NewNestedUnitNamespace(outer, last)
	addNamespaceMember(outer, ns)
	u.namespaces[dotted] = ns
	return ns
}

func addNamespaceMember(ns metadata.UnitNamespace, m metadata.NamespaceMember) {
	switch n := ns.(type) {
	case *mutable.RootUnitNamespace:
		n.AddMember(m)
	case *mutable.NestedUnitNamespace:
		n.AddMember(m)
	}
}

// splitNamespace splits "A.B.Name" into "A.B" and "Name".
func splitNamespace(full string) (string, string) {
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return "", full
}

func displayName(name string, arity int) string {
	if arity == 0 {
		return name
	}
	return fmt.Sprintf("%s`%d", name, arity)
}

func (u *unitBuilder) platformType(sys string) (metadata.TypeReference, error) {
	t := u.host.Platform().Lookup(sys)
	if t == nil {
		return nil, fmt.Errorf("System.%s is not a platform type", sys)
	}
	return t, nil
}

// localType finds a top level type of this unit. A bare name also matches
// a single generic declaration so that a type can name itself without its
// arity.
func (u *unitBuilder) localType(name string, arity int, explicit bool) *mutable.NamespaceTypeDefinition {
	candidates := u.topLevel[name]
	for _, d := range candidates {
		if d.GenericParameterCount() == arity {
			return d
		}
	}
	if !explicit && arity == 0 && len(candidates) == 1 {
		return candidates[0]
	}
	return nil
}

// namespaceType resolves a top level type named by its full name. An
// empty unit means this unit, falling back to the platform for System
// types.
func (u *unitBuilder) namespaceType(unit, name string, arity int) (metadata.NamedTypeReference, error) {
	ns, simple := splitNamespace(name)
	if unit == "" || unit == u.name {
		if d := u.localType(name, arity, false); d != nil {
			return d, nil
		}
		if unit == "" && ns == "System" && arity == 0 {
			if t := u.host.Platform().Lookup(simple); t != nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("unit %s declares no type %s", u.name, displayName(name, arity))
	}
	if unit == u.coreName() && u.units[unit] == nil && ns == "System" && arity == 0 {
		if t := u.host.Platform().Lookup(simple); t != nil {
			return t, nil
		}
	}
	if target, ok := u.units[unit]; ok && target.localType(name, arity, true) == nil {
		return nil, fmt.Errorf("unit %s declares no type %s", unit, displayName(name, arity))
	}
	key := unit + "|" + displayName(name, arity)
	if r, ok := u.typeRefs[key]; ok {
		return r, nil
	}
	r := mutable.NewNamespaceTypeReference(u.namespaceRef(unit, ns), simple, arity, u.factory)
	u.typeRefs[key] = r
	return r, nil
}

// nestedType resolves name inside the type cur. Members of a generic
// instance become specialized nested references.
func (u *unitBuilder) nestedType(cur metadata.TypeReference, name string, arity int) (metadata.NamedTypeReference, error) {
	switch c := cur.(type) {
	case metadata.GenericTypeInstanceReference:
		inner, err := u.nestedType(c.GenericType(), name, arity)
		if err != nil {
			return nil, err
		}
		nested, ok := inner.(metadata.NestedTypeReference)
		if !ok {
			return nil, fmt.Errorf("%s is not a nested type", metadata.TypeName(inner))
		}
		return mutable.NewSpecializedNestedTypeReference(c, nested, u.factory), nil
	case metadata.TypeDefinition:
		for _, t := range c.NestedTypes() {
			if t.Name() == name && t.GenericParameterCount() == arity {
				return t, nil
			}
		}
		return nil, fmt.Errorf("type %s has no nested type %s", metadata.TypeName(c), displayName(name, arity))
	case metadata.NamedTypeReference:
		key := nestedKey{container: c, name: name, arity: arity}
		if r, ok := u.nested[key]; ok {
			return r, nil
		}
		r := mutable.NewNestedTypeReference(c, name, arity, u.factory)
		u.nested[key] = r
		return r, nil
	}
	return nil, fmt.Errorf("%s cannot contain nested types", metadata.TypeName(cur))
}

func (u *unitBuilder) instantiate(t metadata.NamedTypeReference, args []metadata.TypeReference) metadata.TypeReference {
	if len(args) == 0 {
		return t
	}
	return mutable.NewGenericTypeInstanceReference(t, args, u.factory)
}

// refError reports a failed reference parse at the column the parser
// stopped at.
func (u *unitBuilder) refError(t textSpec, err error, code diag.Code) {
	at := t.at
	if pe, ok := err.(*parseError); ok {
		at.col += pe.offset
	}
	span := u.span(at)
	d := diag.Errorf(diag.StageFixture, code, span, "%v", err).
		WithNote(fmt.Sprintf("in %q", t.text))
	u.diags = append(u.diags, d)
}

// parseType resolves a type reference written in scope sc. References
// without generic parameters are shared across the unit. Failures are
// reported and yield nil.
func (u *unitBuilder) parseType(t textSpec, sc scope) metadata.TypeReference {
	if strings.TrimSpace(t.text) == "" {
		u.errorf(t.at, diag.CodeFixtureMissingKey, "missing type")
		return nil
	}
	cacheable := !strings.Contains(t.text, "!")
	if cacheable {
		if r, ok := u.shared[t.text]; ok {
			return r
		}
	}
	p := &refParser{u: u, sc: sc, src: t.text}
	r, err := p.typeRef()
	if err == nil {
		p.skipSpace()
		if !p.done() {
			err = p.failf("unexpected %q", p.src[p.i:])
		}
	}
	if err != nil {
		u.refError(t, err, diag.CodeFixtureBadTypeRef)
		return nil
	}
	if cacheable {
		u.shared[t.text] = r
	}
	return r
}
