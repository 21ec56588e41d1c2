package mutator

import (
	"log/slog"

	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

func (v *MutatingVisitor) typeRef(r metadata.TypeReference) metadata.TypeReference {
	if r == nil || v.halted() || mutable.IsDummy(r) {
		return r
	}
	if out, ok := lookup[metadata.TypeReference](v.cache.refs, r); ok {
		v.stats.cacheHits++
		return out
	}
	if !v.begin(r) {
		return r
	}
	v.observe(r)
	out := v.rewriteTypeRef(r)
	v.end(r)
	if h := v.opts.hooks.RewriteTypeReference; h != nil {
		if n := h(out); n != nil {
			out = n
		}
	}
	v.settle(r, out)
	return out
}

func (v *MutatingVisitor) rewriteTypeRef(r metadata.TypeReference) metadata.TypeReference {
	switch t := r.(type) {
	case metadata.GenericTypeInstanceReference:
		g := v.typeRef(t.GenericType())
		args, changed := visitList(t.GenericArguments(), v.typeRef)
		gt, ok := g.(metadata.NamedTypeReference)
		if !ok {
			v.log.Debug("generic type rewritten to an unnamed reference, instance kept",
				slog.String("instance", metadata.TypeName(t)),
				slog.String("replacement", metadata.TypeName(g)))
			return t
		}
		if gt == t.GenericType() && !changed {
			return t
		}
		return rebuild(t, v.factory, func(n *mutable.GenericTypeInstanceReference) {
			n.SetGenericType(gt)
			n.SetGenericArguments(args)
		})
	case metadata.SpecializedNestedTypeReference:
		ct := v.typeRef(t.ContainingType())
		v.typeRef(t.UnspecializedVersion())
		if ct == t.ContainingType() {
			return t
		}
		return rebuild(t, v.factory, func(n *mutable.SpecializedNestedTypeReference) {
			n.SetContainingType(ct)
		})
	case metadata.TypeDefinition, metadata.GenericParameter:
		// Definitions are rewritten where they are owned.
		return t
	}

	switch t := r.(type) {
	case metadata.ArrayTypeReference:
		e := v.typeRef(t.ElementType())
		if e == t.ElementType() {
			return t
		}
		return rebuild(t, v.factory, func(n *mutable.ArrayTypeReference) { n.SetElementType(e) })
	case metadata.PointerTypeReference:
		target := v.typeRef(t.TargetType())
		if target == t.TargetType() {
			return t
		}
		return rebuild(t, v.factory, func(n *mutable.PointerTypeReference) { n.SetTargetType(target) })
	case metadata.ManagedPointerTypeReference:
		target := v.typeRef(t.TargetType())
		if target == t.TargetType() {
			return t
		}
		return rebuild(t, v.factory, func(n *mutable.ManagedPointerTypeReference) { n.SetTargetType(target) })
	case metadata.FunctionPointerTypeReference:
		ret := v.typeRef(t.Type())
		mods, modsChanged := visitList(t.ReturnValueCustomModifiers(), v.customModifier)
		params, paramsChanged := visitList(t.Parameters(), v.parameterInfo)
		extra, extraChanged := visitList(t.ExtraArgumentTypes(), v.parameterInfo)
		if ret == t.Type() && !modsChanged && !paramsChanged && !extraChanged {
			return t
		}
		cp := rebuild(t, v.factory, func(n *mutable.FunctionPointerTypeReference) {
			n.SetType(ret)
			n.SetReturnValueCustomModifiers(mods)
			n.SetParameters(params)
			n.SetExtraArgumentTypes(extra)
		})
		adoptParameters(cp, t.Parameters(), params)
		adoptParameters(cp, t.ExtraArgumentTypes(), extra)
		return cp
	case metadata.ModifiedTypeReference:
		u := v.typeRef(t.UnmodifiedType())
		mods, changed := visitList(t.CustomModifiers(), v.customModifier)
		if u == t.UnmodifiedType() && !changed {
			return t
		}
		return rebuild(t, v.factory, func(n *mutable.ModifiedTypeReference) {
			n.SetUnmodifiedType(u)
			n.SetCustomModifiers(mods)
		})
	case metadata.GenericTypeParameterReference:
		d := v.typeRef(t.DefiningType())
		if d == t.DefiningType() {
			return t
		}
		return rebuild(t, v.factory, func(n *mutable.GenericTypeParameterReference) { n.SetDefiningType(d) })
	case metadata.GenericMethodParameterReference:
		d := v.methodRef(t.DefiningMethod())
		if d == t.DefiningMethod() {
			return t
		}
		return rebuild(t, v.factory, func(n *mutable.GenericMethodParameterReference) { n.SetDefiningMethod(d) })
	case metadata.NestedTypeReference:
		ct := v.typeRef(t.ContainingType())
		if ct == t.ContainingType() {
			return t
		}
		return rebuild(t, v.factory, func(n *mutable.NestedTypeReference) { n.SetContainingType(ct) })
	case metadata.NamespaceTypeReference:
		ns := v.namespaceRef(t.ContainingUnitNamespace())
		if ns == t.ContainingUnitNamespace() {
			return t
		}
		return rebuild(t, v.factory, func(n *mutable.NamespaceTypeReference) { n.SetContainingUnitNamespace(ns) })
	}
	unknownNode("type reference", r)
	return nil
}

func (v *MutatingVisitor) namespaceRef(r metadata.UnitNamespaceReference) metadata.UnitNamespaceReference {
	if r == nil || v.halted() || mutable.IsDummy(r) {
		return r
	}
	if _, ok := r.(metadata.UnitNamespace); ok {
		return r
	}
	if out, ok := lookup[metadata.UnitNamespaceReference](v.cache.refs, r); ok {
		v.stats.cacheHits++
		return out
	}
	v.observe(r)
	out := r
	if nested, ok := r.(metadata.NestedUnitNamespaceReference); ok {
		if p := v.namespaceRef(nested.ContainingUnitNamespace()); p != nested.ContainingUnitNamespace() {
			out = rebuild(nested, v.factory, func(n *mutable.NestedUnitNamespaceReference) {
				n.SetContainingUnitNamespace(p)
			})
		}
	}
	v.settle(r, out)
	return out
}

func (v *MutatingVisitor) fieldRef(r metadata.FieldReference) metadata.FieldReference {
	if r == nil || v.halted() || mutable.IsDummy(r) {
		return r
	}
	if _, ok := r.(metadata.FieldDefinition); ok {
		return r
	}
	if out, ok := lookup[metadata.FieldReference](v.cache.refs, r); ok {
		v.stats.cacheHits++
		return out
	}
	v.observe(r)
	out := r
	if s, ok := r.(metadata.SpecializedFieldReference); ok {
		ct := v.typeRef(s.ContainingType())
		v.fieldRef(s.UnspecializedVersion())
		if ct != s.ContainingType() {
			out = rebuild(s, v.factory, func(n *mutable.SpecializedFieldReference) { n.SetContainingType(ct) })
		}
	} else {
		ct := v.typeRef(r.ContainingType())
		t := v.typeRef(r.Type())
		mods, changed := visitList(r.CustomModifiers(), v.customModifier)
		if ct != r.ContainingType() || t != r.Type() || changed {
			out = rebuild(r, v.factory, func(n *mutable.FieldReference) {
				n.SetContainingType(ct)
				n.SetType(t)
				n.SetCustomModifiers(mods)
			})
		}
	}
	v.settle(r, out)
	return out
}

func (v *MutatingVisitor) methodRef(r metadata.MethodReference) metadata.MethodReference {
	if r == nil || v.halted() || mutable.IsDummy(r) {
		return r
	}
	if _, ok := r.(metadata.MethodDefinition); ok {
		return r
	}
	if out, ok := lookup[metadata.MethodReference](v.cache.refs, r); ok {
		v.stats.cacheHits++
		return out
	}
	if !v.begin(r) {
		return r
	}
	v.observe(r)
	out := v.rewriteMethodRef(r)
	v.end(r)
	v.settle(r, out)
	return out
}

func (v *MutatingVisitor) rewriteMethodRef(r metadata.MethodReference) metadata.MethodReference {
	switch m := r.(type) {
	case metadata.GenericMethodInstanceReference:
		g := v.methodRef(m.GenericMethod())
		args, changed := visitList(m.GenericArguments(), v.typeRef)
		if g == m.GenericMethod() && !changed {
			return m
		}
		return rebuild(m, v.factory, func(n *mutable.GenericMethodInstanceReference) {
			n.SetGenericMethod(g)
			n.SetGenericArguments(args)
		})
	case metadata.SpecializedMethodReference:
		ct := v.typeRef(m.ContainingType())
		v.methodRef(m.UnspecializedVersion())
		if ct == m.ContainingType() {
			return m
		}
		return rebuild(m, v.factory, func(n *mutable.SpecializedMethodReference) { n.SetContainingType(ct) })
	}

	ct := v.typeRef(r.ContainingType())
	ret := v.typeRef(r.Type())
	mods, modsChanged := visitList(r.ReturnValueCustomModifiers(), v.customModifier)
	params, paramsChanged := visitList(r.Parameters(), v.parameterInfo)
	extra, extraChanged := visitList(r.ExtraParameters(), v.parameterInfo)
	if ct == r.ContainingType() && ret == r.Type() && !modsChanged && !paramsChanged && !extraChanged {
		return r
	}
	cp := rebuild(r, v.factory, func(n *mutable.MethodReference) {
		n.SetContainingType(ct)
		n.SetType(ret)
		n.SetReturnValueCustomModifiers(mods)
		n.SetParameters(params)
		n.SetExtraParameters(extra)
	})
	adoptParameters(cp, r.Parameters(), params)
	adoptParameters(cp, r.ExtraParameters(), extra)
	return cp
}

// adoptParameters points the parameters rebuilt for sig back at it.
func adoptParameters(sig metadata.Signature, orig, params []metadata.ParameterTypeInformation) {
	for i, p := range params {
		if p == orig[i] {
			continue
		}
		if n, ok := p.(*mutable.ParameterTypeInformation); ok {
			n.SetContainingSignature(sig)
		}
	}
}

func (v *MutatingVisitor) parameterInfo(p metadata.ParameterTypeInformation) metadata.ParameterTypeInformation {
	if p == nil || v.halted() {
		return p
	}
	if _, ok := p.(metadata.ParameterDefinition); ok {
		return p
	}
	if out, ok := lookup[metadata.ParameterTypeInformation](v.cache.refs, p); ok {
		v.stats.cacheHits++
		return out
	}
	v.observe(p)
	out := p
	t := v.typeRef(p.Type())
	mods, changed := visitList(p.CustomModifiers(), v.customModifier)
	if t != p.Type() || changed {
		out = rebuild(p, v.factory, func(n *mutable.ParameterTypeInformation) {
			n.SetType(t)
			n.SetCustomModifiers(mods)
		})
	}
	v.settle(p, out)
	return out
}

// customModifier is copy-on-write: modifiers are part of the signature
// of whatever carries them.
func (v *MutatingVisitor) customModifier(m metadata.CustomModifier) metadata.CustomModifier {
	if m == nil || v.halted() {
		return m
	}
	if out, ok := lookup[metadata.CustomModifier](v.cache.refs, m); ok {
		v.stats.cacheHits++
		return out
	}
	v.observe(m)
	out := m
	if t := v.typeRef(m.Modifier()); t != m.Modifier() {
		out = rebuild(m, v.factory, func(n *mutable.CustomModifier) { n.SetModifier(t) })
	}
	v.settle(m, out)
	return out
}

// Unit references have no constituent references. They are observed once.

func (v *MutatingVisitor) assemblyRef(r metadata.AssemblyReference) metadata.AssemblyReference {
	v.unitRef(r)
	return r
}

func (v *MutatingVisitor) moduleRef(r metadata.ModuleReference) metadata.ModuleReference {
	v.unitRef(r)
	return r
}

func (v *MutatingVisitor) unitRef(r metadata.UnitReference) {
	if r == nil || v.halted() || mutable.IsDummy(r) {
		return
	}
	if _, ok := v.cache.ref(r); ok {
		return
	}
	v.observe(r)
	v.settle(r, r)
}
