package fixture

import (
	"strings"

	"github.com/il2js/metamodel/internal/diag"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

type typeDecl struct {
	spec    *typeSpec
	def     mutable.TypeDefinitionNode
	td      *mutable.TypeDefinition
	methods []methodDecl
}

type methodDecl struct {
	spec *methodSpec
	def  *mutable.MethodDefinition
}

func (u *unitBuilder) declareTypes() {
	for i := range u.spec.Types {
		u.declareType(&u.spec.Types[i], nil)
	}
	u.module.SetAllTypes(u.allTypes)
}

// declareType creates the definition of ts and its nested types. Types
// are appended to the unit's type list in pre-order.
func (u *unitBuilder) declareType(ts *typeSpec, outer *typeDecl) {
	if ts.Name == "" {
		u.errorf(ts.at, diag.CodeFixtureMissingKey, "type needs a name")
		return
	}
	name, arity, explicit := splitArity(ts.Name)
	if explicit && arity != len(ts.Generics) {
		u.errorf(ts.at, diag.CodeFixtureInvalidGenerics,
			"type %s declares arity %d but %d generic parameters", ts.Name, arity, len(ts.Generics))
		return
	}
	arity = len(ts.Generics)
	flags, ok := typeFlags(ts)
	if !ok {
		u.errorf(ts.at, diag.CodeFixtureSyntax, "type %s has unknown kind %q", ts.Name, ts.Kind)
		return
	}

	var def mutable.TypeDefinitionNode
	if outer == nil {
		if u.localType(name, arity, true) != nil {
			u.errorf(ts.at, diag.CodeFixtureDuplicateName, "type %s is declared twice", displayName(name, arity))
			return
		}
		nsName, simple := splitNamespace(name)
		ns := u.namespace(nsName)
		d := mutable.NewNamespaceTypeDefinition(ns, simple, u.factory)
		d.SetIsPublic(ts.Public)
		addNamespaceMember(ns, d)
		u.topLevel[name] = append(u.topLevel[name], d)
		def = d
	} else {
		for _, t := range outer.td.NestedTypes() {
			if t.Name() == name && t.GenericParameterCount() == arity {
				u.errorf(ts.at, diag.CodeFixtureDuplicateName, "nested type %s is declared twice", displayName(name, arity))
				return
			}
		}
		d := mutable.NewNestedTypeDefinition(outer.def, name, u.factory)
		if ts.Public {
			d.SetVisibility(metadata.VisibilityPublic)
		} else {
			d.SetVisibility(metadata.VisibilityPrivate)
		}
		outer.td.AddNestedType(d)
		def = d
	}

	td := def.MutableTypeDefinition()
	td.SetFlags(flags)
	if arity > 0 {
		params := make([]metadata.GenericTypeParameter, arity)
		for i := range ts.Generics {
			g := &ts.Generics[i]
			p := mutable.NewGenericTypeParameter(def, g.Name, i, u.factory)
			p.SetPlatformType(u.host.PlatformType())
			p.SetGenericFlags(u.genericFlags(g))
			params[i] = p
		}
		td.SetGenericParameters(params)
		td.SetGenericParameterCount(arity)
		td.SetMangleName(true)
	}
	u.allTypes = append(u.allTypes, def)

	decl := &typeDecl{spec: ts, def: def, td: td}
	u.decls = append(u.decls, decl)
	for i := range ts.Nested {
		u.declareType(&ts.Nested[i], decl)
	}
}

func typeFlags(ts *typeSpec) (metadata.TypeFlags, bool) {
	switch ts.Kind {
	case "", "class":
		return metadata.TypeFlags{
			IsAbstract:        ts.Abstract || ts.Static,
			IsSealed:          ts.Sealed || ts.Static,
			IsStatic:          ts.Static,
			IsBeforeFieldInit: true,
		}, true
	case "struct":
		return metadata.TypeFlags{IsValueType: true, IsSealed: true}, true
	case "interface":
		return metadata.TypeFlags{IsInterface: true, IsAbstract: true}, true
	case "enum":
		return metadata.TypeFlags{IsEnum: true, IsValueType: true, IsSealed: true}, true
	}
	return metadata.TypeFlags{}, false
}

func (u *unitBuilder) genericFlags(g *genericSpec) metadata.GenericParameterFlags {
	f := metadata.GenericParameterFlags{
		MustBeReferenceType:        g.Class,
		MustBeValueType:            g.Struct,
		MustHaveDefaultConstructor: g.New,
	}
	switch g.Variance {
	case "":
	case "out":
		f.Variance = metadata.Covariant
	case "in":
		f.Variance = metadata.Contravariant
	default:
		u.errorf(g.at, diag.CodeFixtureInvalidGenerics, "variance must be in or out, got %q", g.Variance)
	}
	if g.Name == "" {
		u.errorf(g.at, diag.CodeFixtureInvalidGenerics, "generic parameter needs a name")
	}
	return f
}

func (u *unitBuilder) constraints(g *genericSpec, p interface {
	SetConstraints([]metadata.TypeReference)
}, sc scope) {
	if len(g.Constraints) == 0 {
		return
	}
	cs := make([]metadata.TypeReference, 0, len(g.Constraints))
	for _, c := range g.Constraints {
		if t := u.parseType(c, sc); t != nil {
			cs = append(cs, t)
		}
	}
	p.SetConstraints(cs)
}

func (u *unitBuilder) declareMembers() {
	for _, d := range u.decls {
		u.declareTypeMembers(d)
	}
}

// declareTypeMembers adds base types, constraints, fields and method
// signatures. Bodies wait until every signature of the fixture exists.
func (u *unitBuilder) declareTypeMembers(d *typeDecl) {
	ts, td := d.spec, d.td
	sc := scope{typeDef: d.def}
	platform := u.host.Platform()

	var base metadata.TypeReference
	switch {
	case ts.Base != nil:
		if ts.Base.text != "none" {
			base = u.parseType(*ts.Base, sc)
		}
	case ts.Kind == "interface":
	case ts.Kind == "struct":
		base = platform.SystemValueType()
	case ts.Kind == "enum":
		base = platform.SystemEnum()
	default:
		base = platform.SystemObject()
	}
	if base != nil {
		td.SetBaseClasses([]metadata.TypeReference{base})
	}
	if len(ts.Interfaces) > 0 {
		ifaces := make([]metadata.TypeReference, 0, len(ts.Interfaces))
		for _, i := range ts.Interfaces {
			if t := u.parseType(i, sc); t != nil {
				ifaces = append(ifaces, t)
			}
		}
		td.SetInterfaces(ifaces)
	}
	for i, p := range td.GenericParameters() {
		u.constraints(&ts.Generics[i], p.(*mutable.GenericTypeParameter), sc)
	}

	seen := make(map[string]bool, len(ts.Fields))
	for i := range ts.Fields {
		fs := &ts.Fields[i]
		if seen[fs.Name] {
			u.errorf(fs.at, diag.CodeFixtureDuplicateName, "field %s is declared twice", fs.Name)
			continue
		}
		seen[fs.Name] = true
		td.AddField(u.field(d.def, fs, sc))
	}
	for i := range ts.Methods {
		ms := &ts.Methods[i]
		md := u.methodSignature(d.def, ms)
		td.AddMethod(md)
		d.methods = append(d.methods, methodDecl{spec: ms, def: md})
	}
}

func (u *unitBuilder) field(owner metadata.TypeDefinition, fs *fieldSpec, sc scope) *mutable.FieldDefinition {
	if fs.Name == "" {
		u.errorf(fs.at, diag.CodeFixtureMissingKey, "field needs a name")
	}
	ft := u.parseType(fs.Type, sc)
	fd := mutable.NewFieldDefinition(owner, fs.Name, ft, u.factory)
	fd.SetVisibility(metadata.VisibilityPublic)
	flags := metadata.FieldFlags{IsStatic: fs.Static, IsReadOnly: fs.ReadOnly}
	if fs.Value != nil {
		flags.IsStatic = true
		flags.IsCompileTimeConstant = true
		fd.SetCompileTimeValue(mutable.NewMetadataConstant(ft, fs.Value))
	}
	fd.SetFlags(flags)
	return fd
}

func isConstructorName(name string) bool { return name == ".ctor" || name == ".cctor" }

// methodSignature creates a method with its generic parameters, return
// type and parameters. Generic parameters come first so the signature can
// refer to them.
func (u *unitBuilder) methodSignature(owner metadata.TypeDefinition, ms *methodSpec) *mutable.MethodDefinition {
	if ms.Name == "" {
		u.errorf(ms.at, diag.CodeFixtureMissingKey, "method needs a name")
	}
	md := mutable.NewMethodDefinition(owner, ms.Name, nil, u.factory)
	md.SetVisibility(metadata.VisibilityPublic)
	sc := scope{typeDef: owner, method: md}

	if len(ms.Generics) > 0 {
		params := make([]metadata.GenericMethodParameter, len(ms.Generics))
		for i := range ms.Generics {
			g := &ms.Generics[i]
			p := mutable.NewGenericMethodParameter(md, g.Name, i, u.factory)
			p.SetPlatformType(u.host.PlatformType())
			p.SetGenericFlags(u.genericFlags(g))
			params[i] = p
		}
		md.SetGenericParameters(params)
		for i, p := range params {
			u.constraints(&ms.Generics[i], p.(*mutable.GenericMethodParameter), sc)
		}
	}

	if ms.Returns == nil {
		md.SetType(u.host.Platform().SystemVoid())
	} else {
		md.SetType(u.parseType(*ms.Returns, sc))
	}

	var cc metadata.CallingConvention
	if !ms.Static {
		cc |= metadata.CallingConventionHasThis
	}
	if len(ms.Generics) > 0 {
		cc |= metadata.CallingConventionGeneric
	}
	md.SetCallingConvention(cc)
	md.SetFlags(metadata.MethodFlags{
		IsStatic:            ms.Static,
		IsVirtual:           ms.Virtual || ms.Abstract,
		IsAbstract:          ms.Abstract,
		IsHiddenBySignature: true,
		IsRuntimeSpecial:    isConstructorName(ms.Name),
		IsSpecialName:       isConstructorName(ms.Name),
	})

	for i := range ms.Params {
		ps := &ms.Params[i]
		pd := mutable.NewParameterDefinition(md, ps.Name, i, u.parseType(ps.Type, sc))
		pd.SetIsByReference(ps.Ref)
		md.AddParameter(pd)
	}
	return md
}

func (u *unitBuilder) defineBodies() {
	for _, d := range u.decls {
		for i := range d.spec.Properties {
			if prop := u.property(d, &d.spec.Properties[i]); prop != nil {
				d.td.AddProperty(prop)
			}
		}
		for _, m := range d.methods {
			u.defineBody(m)
		}
	}
	if ep := u.spec.EntryPoint; ep != nil {
		u.entryPoint(*ep)
	}
}

func (u *unitBuilder) property(d *typeDecl, ps *propertySpec) *mutable.PropertyDefinition {
	if ps.Name == "" {
		u.errorf(ps.at, diag.CodeFixtureMissingKey, "property needs a name")
		return nil
	}
	prop := mutable.NewPropertyDefinition(d.def, ps.Name, u.parseType(ps.Type, scope{typeDef: d.def}))
	prop.SetVisibility(metadata.VisibilityPublic)
	var accessors []metadata.MethodReference
	for _, acc := range []struct {
		name string
		set  func(metadata.MethodReference)
	}{{ps.Getter, prop.SetGetter}, {ps.Setter, prop.SetSetter}} {
		if acc.name == "" {
			continue
		}
		m := findMethodByName(d.def, acc.name)
		if m == nil {
			u.errorf(ps.at, diag.CodeFixtureBadMemberRef, "property %s: type has no method %s", ps.Name, acc.name)
			continue
		}
		acc.set(m)
		accessors = append(accessors, m)
	}
	prop.SetAccessors(accessors)
	if len(accessors) > 0 {
		prop.SetCallingConvention(accessors[0].CallingConvention() &^ metadata.CallingConventionGeneric)
	}
	return prop
}

func findMethodByName(td metadata.TypeDefinition, name string) metadata.MethodDefinition {
	for _, m := range td.Methods() {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

func (u *unitBuilder) defineBody(m methodDecl) {
	ms := m.spec
	if ms.Abstract {
		if len(ms.Body) > 0 || len(ms.Locals) > 0 {
			u.errorf(ms.at, diag.CodeFixtureSyntax, "abstract method %s has a body", ms.Name)
		}
		return
	}
	if len(ms.Body) == 0 && len(ms.Locals) == 0 {
		return
	}
	m.def.SetBody(u.body(m.def, ms))
}

// entryPoint binds the module entry point, written as "<type>::<method>".
func (u *unitBuilder) entryPoint(t textSpec) {
	p := &refParser{u: u, src: strings.TrimSpace(t.text)}
	owner, name, err := p.ownerPath()
	if err != nil {
		u.refError(t, err, diag.CodeFixtureBadMemberRef)
		return
	}
	td, ok := owner.(metadata.TypeDefinition)
	if !ok {
		u.errorf(t.at, diag.CodeFixtureBadMemberRef, "entry point must be declared in %s", u.name)
		return
	}
	m := findMethodByName(td, name)
	if m == nil {
		u.errorf(t.at, diag.CodeFixtureBadMemberRef, "type %s has no method %s", metadata.TypeName(td), name)
		return
	}
	u.module.SetEntryPoint(m)
}
