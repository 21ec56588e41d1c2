package mutable

import "github.com/il2js/metamodel/internal/metadata"

// Resolution never looks outside the unit a reference points into. The
// first member matching by name and arity wins; there is no fallback.

func resolveNamespaceType(ns metadata.UnitNamespace, name string, arity int) metadata.TypeDefinition {
	for _, m := range ns.Members() {
		t, ok := m.(metadata.NamespaceTypeDefinition)
		if ok && t.Name() == name && t.GenericParameterCount() == arity {
			return t
		}
	}
	return DummyType
}

func resolveNestedType(container metadata.TypeDefinition, name string, arity int) metadata.TypeDefinition {
	for _, t := range container.NestedTypes() {
		if t.Name() == name && t.GenericParameterCount() == arity {
			return t
		}
	}
	return DummyType
}

func resolveField(container metadata.TypeDefinition, name string) metadata.FieldDefinition {
	for _, f := range container.Fields() {
		if f.Name() == name {
			return f
		}
	}
	return DummyField
}

func resolveMethod(container metadata.TypeDefinition, name string, arity, params int) metadata.MethodDefinition {
	for _, m := range container.Methods() {
		if m.Name() == name && m.GenericParameterCount() == arity && len(m.ParameterDefinitions()) == params {
			return m
		}
	}
	return DummyMethod
}

func resolveGenericParameter(ref metadata.TypeReference) metadata.GenericParameter {
	switch r := ref.(type) {
	case metadata.GenericParameter:
		return r
	case metadata.GenericTypeParameterReference:
		if r.DefiningType() == nil {
			return nil
		}
		params := r.DefiningType().ResolvedType().GenericParameters()
		if r.Index() >= 0 && r.Index() < len(params) {
			return params[r.Index()]
		}
	case metadata.GenericMethodParameterReference:
		if r.DefiningMethod() == nil {
			return nil
		}
		params := r.DefiningMethod().ResolvedMethod().GenericParameters()
		if r.Index() >= 0 && r.Index() < len(params) {
			return params[r.Index()]
		}
	}
	return nil
}

// SameType reports whether a and b denote the same type: they are the
// same node, share a nonzero interned key, or have the same qualified
// name. Keys are only compared when both references were interned by the
// same factory; keys from different factories are not comparable.
func SameType(a, b metadata.TypeReference) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if ka, kb := a.InternedKey(), b.InternedKey(); ka != 0 && kb != 0 {
		return ka == kb
	}
	return metadata.QualifiedTypeName(a) == metadata.QualifiedTypeName(b)
}
