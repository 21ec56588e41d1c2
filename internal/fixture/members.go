package fixture

import (
	"fmt"
	"strings"

	"github.com/il2js/metamodel/internal/diag"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// parseMember parses a member reference. Failures are reported and yield
// nil.
func (u *unitBuilder) parseMember(t textSpec, sc scope) *memberSignature {
	p := &refParser{u: u, sc: sc, src: t.text}
	sig, err := p.member()
	if err != nil {
		u.refError(t, err, diag.CodeFixtureBadMemberRef)
		return nil
	}
	return sig
}

// fieldRef resolves a field reference. Fields of this unit resolve to
// their definitions, fields of generic instances to specialized
// references.
func (u *unitBuilder) fieldRef(t textSpec, sc scope) metadata.FieldReference {
	cacheable := !strings.Contains(t.text, "!")
	if cacheable {
		if r, ok := u.members[t.text].(metadata.FieldReference); ok {
			return r
		}
	}
	sig := u.parseMember(t, sc)
	if sig == nil {
		return nil
	}
	if sig.isMethod || sig.args != nil {
		u.errorf(t.at, diag.CodeFixtureBadMemberRef, "%q is not a field reference", t.text)
		return nil
	}
	var r metadata.FieldReference
	switch o := sig.owner.(type) {
	case metadata.TypeDefinition:
		f := findField(o, sig.name)
		if f == nil {
			u.errorf(t.at, diag.CodeFixtureBadMemberRef, "type %s has no field %s", metadata.TypeName(o), sig.name)
			return nil
		}
		r = f
	case metadata.GenericTypeInstanceReference:
		unspec := u.fieldOn(o.GenericType(), sig)
		if unspec == nil {
			u.errorf(t.at, diag.CodeFixtureBadMemberRef, "type %s has no field %s", metadata.TypeName(o), sig.name)
			return nil
		}
		r = mutable.NewSpecializedFieldReference(o, unspec, sig.typ, u.factory)
	default:
		r = mutable.NewFieldReference(o, sig.name, sig.typ, u.factory)
	}
	if cacheable {
		u.members[t.text] = r
	}
	return r
}

func findField(td metadata.TypeDefinition, name string) metadata.FieldDefinition {
	for _, f := range td.Fields() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// fieldOn returns the field of an uninstantiated generic type.
func (u *unitBuilder) fieldOn(generic metadata.NamedTypeReference, sig *memberSignature) metadata.FieldReference {
	if td, ok := generic.(metadata.TypeDefinition); ok {
		if f := findField(td, sig.name); f != nil {
			return f
		}
		return nil
	}
	return mutable.NewFieldReference(generic, sig.name, sig.typ, u.factory)
}

// methodRef resolves a method reference. Methods of this unit resolve to
// their definitions, methods of generic instances to specialized
// references, and explicit method arguments wrap the result in a generic
// method instance.
func (u *unitBuilder) methodRef(t textSpec, sc scope) metadata.MethodReference {
	cacheable := !strings.Contains(t.text, "!")
	if cacheable {
		if r, ok := u.members[t.text].(metadata.MethodReference); ok {
			return r
		}
	}
	sig := u.parseMember(t, sc)
	if sig == nil {
		return nil
	}
	if !sig.isMethod {
		u.errorf(t.at, diag.CodeFixtureBadMemberRef, "%q is not a method reference, missing parameter list", t.text)
		return nil
	}
	var r metadata.MethodReference
	switch o := sig.owner.(type) {
	case metadata.TypeDefinition:
		m := findMethod(o, sig.name, len(sig.args), len(sig.params))
		if m == nil {
			u.errorf(t.at, diag.CodeFixtureBadMemberRef, "type %s has no method %s", metadata.TypeName(o), describe(sig))
			return nil
		}
		r = m
	case metadata.GenericTypeInstanceReference:
		unspec := u.methodOn(o.GenericType(), sig)
		if unspec == nil {
			u.errorf(t.at, diag.CodeFixtureBadMemberRef, "type %s has no method %s", metadata.TypeName(o), describe(sig))
			return nil
		}
		s := mutable.NewSpecializedMethodReference(o, unspec, u.factory)
		s.SetType(sig.typ)
		s.SetParameters(parameterInfos(s, sig.params))
		r = s
	default:
		r = u.foreignMethod(o, sig)
	}
	if len(sig.args) > 0 {
		r = mutable.NewGenericMethodInstanceReference(r, sig.args, u.factory)
	}
	if cacheable {
		u.members[t.text] = r
	}
	return r
}

// findMethod matches by name, generic arity and parameter count. The first
// match wins.
func findMethod(td metadata.TypeDefinition, name string, arity, params int) metadata.MethodDefinition {
	for _, m := range td.Methods() {
		if m.Name() == name && m.GenericParameterCount() == arity && len(m.ParameterDefinitions()) == params {
			return m
		}
	}
	return nil
}

func (u *unitBuilder) methodOn(generic metadata.NamedTypeReference, sig *memberSignature) metadata.MethodReference {
	if td, ok := generic.(metadata.TypeDefinition); ok {
		if m := findMethod(td, sig.name, len(sig.args), len(sig.params)); m != nil {
			return m
		}
		return nil
	}
	return u.foreignMethod(generic, sig)
}

func (u *unitBuilder) foreignMethod(owner metadata.TypeReference, sig *memberSignature) *mutable.MethodReference {
	r := mutable.NewMethodReference(owner, sig.name, sig.typ, u.factory)
	var cc metadata.CallingConvention
	if sig.instance {
		cc |= metadata.CallingConventionHasThis
	}
	if len(sig.args) > 0 {
		cc |= metadata.CallingConventionGeneric
		r.SetGenericParameterCount(len(sig.args))
	}
	r.SetCallingConvention(cc)
	r.SetParameters(parameterInfos(r, sig.params))
	return r
}

func parameterInfos(sig metadata.Signature, types []metadata.TypeReference) []metadata.ParameterTypeInformation {
	if len(types) == 0 {
		return nil
	}
	out := make([]metadata.ParameterTypeInformation, len(types))
	for i, t := range types {
		out[i] = mutable.NewParameterTypeInformation(sig, i, t)
	}
	return out
}

func describe(sig *memberSignature) string {
	var b strings.Builder
	b.WriteString(sig.name)
	if len(sig.args) > 0 {
		fmt.Fprintf(&b, "<%d type arguments>", len(sig.args))
	}
	fmt.Fprintf(&b, " with %d parameters", len(sig.params))
	return b.String()
}
