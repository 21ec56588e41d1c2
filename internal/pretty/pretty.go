// Package pretty renders units in an IL assembler like listing. The
// listing is stable for a given graph, so two graphs can be compared by
// their listings or by Fingerprint.
package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// Unit returns the listing of m.
func Unit(m metadata.Module) string {
	p := &printer{}
	p.unit(m)
	return p.b.String()
}

// Fingerprint hashes the listing of m.
func Fingerprint(m metadata.Module) uint64 {
	return xxhash.Sum64String(Unit(m))
}

type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	p.b.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteByte('\n')
}

func (p *printer) open()  { p.line("{"); p.indent++ }
func (p *printer) close() { p.indent--; p.line("}") }

func (p *printer) unit(m metadata.Module) {
	if a, ok := m.(metadata.Assembly); ok {
		p.line(".assembly %s %s (%s)", a.Name(), a.Version(), m.Kind())
		for _, mm := range a.MemberModules() {
			p.line(".module %s", mm.Name())
		}
	} else {
		p.line(".module %s (%s)", m.Name(), m.Kind())
		if c := m.ContainingAssembly(); c != nil {
			p.line("  // part of %s", c.Name())
		}
	}
	for _, r := range m.AssemblyReferences() {
		p.line(".assembly extern %s %s%s", r.Name(), r.Version(), resolution(r.ResolvedAssembly()))
	}
	for _, r := range m.ModuleReferences() {
		p.line(".module extern %s%s", r.Name(), resolution(r.ResolvedModule()))
	}
	for _, t := range m.AllTypes() {
		if _, nested := t.(metadata.NestedTypeDefinition); nested {
			continue
		}
		p.typeDefinition(t)
	}
	if ep := m.EntryPoint(); ep != nil {
		p.line(".entrypoint %s", metadata.MethodName(ep))
	}
}

func resolution(u metadata.Unit) string {
	if mutable.IsDummy(u) {
		return " // unresolved"
	}
	return ""
}

func (p *printer) typeDefinition(t metadata.NamedTypeDefinition) {
	var head strings.Builder
	head.WriteString(".class ")
	switch d := t.(type) {
	case metadata.NamespaceTypeDefinition:
		if d.IsPublic() {
			head.WriteString("public ")
		} else {
			head.WriteString("private ")
		}
	case metadata.NestedTypeDefinition:
		fmt.Fprintf(&head, "nested %s ", d.Visibility())
	}
	f := t.Flags()
	switch {
	case f.IsInterface:
		head.WriteString("interface ")
	case f.IsEnum:
		head.WriteString("enum ")
	case f.IsValueType:
		head.WriteString("valuetype ")
	}
	if f.IsStatic {
		head.WriteString("static ")
	} else {
		if f.IsAbstract && !f.IsInterface {
			head.WriteString("abstract ")
		}
		if f.IsSealed && !f.IsValueType {
			head.WriteString("sealed ")
		}
	}
	if _, nested := t.(metadata.NestedTypeDefinition); nested {
		head.WriteString(t.Name())
		if n := t.GenericParameterCount(); n > 0 {
			fmt.Fprintf(&head, "`%d", n)
		}
	} else {
		head.WriteString(metadata.TypeName(t))
	}
	genericParameters(&head, typeParameters(t.GenericParameters()))
	for i, base := range t.BaseClasses() {
		if i == 0 {
			head.WriteString(" extends ")
		} else {
			head.WriteString(", ")
		}
		head.WriteString(metadata.QualifiedTypeName(base))
	}
	for i, iface := range t.Interfaces() {
		if i == 0 {
			head.WriteString(" implements ")
		} else {
			head.WriteString(", ")
		}
		head.WriteString(metadata.QualifiedTypeName(iface))
	}
	p.line("%s", head.String())

	p.open()
	for _, fd := range t.Fields() {
		p.field(fd)
	}
	for _, md := range t.Methods() {
		p.method(md)
	}
	for _, pd := range t.Properties() {
		p.property(pd)
	}
	for _, nt := range t.NestedTypes() {
		p.typeDefinition(nt)
	}
	p.close()
}

func typeParameters(params []metadata.GenericTypeParameter) []metadata.GenericParameter {
	out := make([]metadata.GenericParameter, len(params))
	for i, gp := range params {
		out[i] = gp
	}
	return out
}

func methodParameters(params []metadata.GenericMethodParameter) []metadata.GenericParameter {
	out := make([]metadata.GenericParameter, len(params))
	for i, gp := range params {
		out[i] = gp
	}
	return out
}

func genericParameters(b *strings.Builder, params []metadata.GenericParameter) {
	if len(params) == 0 {
		return
	}
	b.WriteString("<")
	for i, gp := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		f := gp.GenericFlags()
		if v := f.Variance.String(); v != "" {
			b.WriteString(v)
			b.WriteString(" ")
		}
		if f.MustBeReferenceType {
			b.WriteString("class ")
		}
		if f.MustBeValueType {
			b.WriteString("valuetype ")
		}
		if f.MustHaveDefaultConstructor {
			b.WriteString(".ctor ")
		}
		if cs := gp.Constraints(); len(cs) > 0 {
			names := make([]string, len(cs))
			for j, c := range cs {
				names[j] = metadata.QualifiedTypeName(c)
			}
			fmt.Fprintf(b, "(%s) ", strings.Join(names, ", "))
		}
		b.WriteString(gp.Name())
	}
	b.WriteString(">")
}

func (p *printer) field(f metadata.FieldDefinition) {
	var b strings.Builder
	fmt.Fprintf(&b, ".field %s ", f.Visibility())
	fl := f.Flags()
	if fl.IsCompileTimeConstant {
		b.WriteString("literal ")
	}
	if fl.IsStatic {
		b.WriteString("static ")
	}
	if fl.IsReadOnly {
		b.WriteString("initonly ")
	}
	fmt.Fprintf(&b, "%s %s", metadata.QualifiedTypeName(f.Type()), f.Name())
	if c := f.CompileTimeValue(); c != nil {
		fmt.Fprintf(&b, " = %s", literal(c.Value()))
	}
	p.line("%s", b.String())
}

func (p *printer) method(m metadata.MethodDefinition) {
	var b strings.Builder
	fmt.Fprintf(&b, ".method %s ", m.Visibility())
	fl := m.Flags()
	if fl.IsStatic {
		b.WriteString("static ")
	}
	if fl.IsAbstract {
		b.WriteString("abstract ")
	}
	if fl.IsVirtual {
		b.WriteString("virtual ")
	}
	if fl.IsSpecialName {
		b.WriteString("specialname ")
	}
	if m.CallingConvention().HasThis() {
		b.WriteString("instance ")
	}
	fmt.Fprintf(&b, "%s %s", metadata.QualifiedTypeName(m.Type()), m.Name())
	genericParameters(&b, methodParameters(m.GenericParameters()))
	b.WriteString("(")
	for i, pd := range m.ParameterDefinitions() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(metadata.QualifiedTypeName(pd.Type()))
		if pd.IsByReference() {
			b.WriteString("&")
		}
		b.WriteString(" ")
		b.WriteString(pd.Name())
	}
	b.WriteString(")")
	p.line("%s", b.String())

	body := m.Body()
	if body == nil {
		return
	}
	p.open()
	if locals := body.LocalVariables(); len(locals) > 0 {
		decls := make([]string, len(locals))
		for i, l := range locals {
			decls[i] = metadata.QualifiedTypeName(l.Type()) + " " + l.Name()
		}
		p.line(".locals (%s)", strings.Join(decls, ", "))
	}
	for _, op := range body.Operations() {
		if v := op.Value(); v != nil {
			p.line("IL_%04x: %s %s", op.Offset(), op.OperationCode(), operand(v))
		} else {
			p.line("IL_%04x: %s", op.Offset(), op.OperationCode())
		}
	}
	p.close()
}

func (p *printer) property(pd metadata.PropertyDefinition) {
	var b strings.Builder
	fmt.Fprintf(&b, ".property %s %s", metadata.QualifiedTypeName(pd.Type()), pd.Name())
	if g := pd.Getter(); g != nil {
		fmt.Fprintf(&b, " get %s", g.Name())
	}
	if s := pd.Setter(); s != nil {
		fmt.Fprintf(&b, " set %s", s.Name())
	}
	p.line("%s", b.String())
}

func operand(v any) string {
	switch v := v.(type) {
	case metadata.ParameterDefinition:
		return v.Name()
	case metadata.LocalDefinition:
		return v.Name()
	case metadata.TypeReference:
		return metadata.QualifiedTypeName(v)
	case metadata.FieldReference:
		return metadata.QualifiedTypeName(v.Type()) + " " + metadata.FieldName(v)
	case metadata.MethodReference:
		return metadata.QualifiedTypeName(v.Type()) + " " + metadata.MethodName(v)
	case []uint32:
		targets := make([]string, len(v))
		for i, t := range v {
			targets[i] = strconv.FormatUint(uint64(t), 10)
		}
		return "(" + strings.Join(targets, ",") + ")"
	}
	return literal(v)
}

func literal(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}
