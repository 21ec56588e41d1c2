package mutator

import (
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// ownership is the set of definitions reachable from a root unit through
// ownership edges alone. A definition in the set is copied as a
// definition wherever it is met; one outside the set belongs to another
// unit and is copied as a reference when used as one.
type ownership map[any]struct{}

func collectOwnership(root metadata.Module) ownership {
	o := make(ownership)
	o.module(root)
	return o
}

func (o ownership) owns(n any) bool {
	_, ok := o[n]
	return ok
}

func (o ownership) add(n any) bool {
	if n == nil || o.owns(n) {
		return false
	}
	o[n] = struct{}{}
	return true
}

func (o ownership) module(m metadata.Module) {
	if !o.add(m) {
		return
	}
	if a, ok := m.(metadata.Assembly); ok {
		for _, mm := range a.MemberModules() {
			o.module(mm)
		}
		for _, alias := range a.ExportedTypes() {
			o.alias(alias)
		}
	}
	if root := m.UnitNamespaceRoot(); root != nil {
		o.namespace(root)
	}
	for _, t := range m.AllTypes() {
		o.typeDefinition(t)
	}
}

func (o ownership) namespace(ns metadata.UnitNamespace) {
	if !o.add(ns) {
		return
	}
	for _, m := range ns.Members() {
		switch m := m.(type) {
		case metadata.NestedUnitNamespace:
			o.namespace(m)
		case metadata.NamespaceTypeDefinition:
			o.typeDefinition(m)
		case metadata.GlobalFieldDefinition:
			o.add(m)
		case metadata.GlobalMethodDefinition:
			o.method(m)
		case metadata.NamespaceAliasForType:
			o.alias(m)
		}
	}
}

func (o ownership) alias(a metadata.AliasForType) {
	if !o.add(a) {
		return
	}
	for _, m := range a.Members() {
		if nested, ok := m.(metadata.NestedAliasForType); ok {
			o.alias(nested)
		}
	}
}

func (o ownership) typeDefinition(t metadata.TypeDefinition) {
	if !o.add(t) {
		return
	}
	for _, p := range t.GenericParameters() {
		o.add(p)
	}
	for _, f := range t.Fields() {
		o.add(f)
	}
	for _, m := range t.Methods() {
		o.method(m)
	}
	for _, n := range t.NestedTypes() {
		o.typeDefinition(n)
	}
	for _, p := range t.Properties() {
		o.add(p)
	}
	for _, e := range t.Events() {
		o.add(e)
	}
	for _, m := range mutable.HelperMembersOf(t) {
		switch m := m.(type) {
		case metadata.NestedTypeDefinition:
			o.typeDefinition(m)
		case metadata.MethodDefinition:
			o.method(m)
		default:
			o.add(m)
		}
	}
}

func (o ownership) method(m metadata.MethodDefinition) {
	if !o.add(m) {
		return
	}
	for _, p := range m.GenericParameters() {
		o.add(p)
	}
	for _, p := range m.ParameterDefinitions() {
		o.add(p)
	}
	if b := m.Body(); b != nil {
		for _, t := range b.PrivateHelperTypes() {
			o.typeDefinition(t)
		}
	}
}
