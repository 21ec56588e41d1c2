package mutator

import (
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// cached returns the node already produced for r, if any. Definitions
// owned by the root are found in values, everything else in refs.
func cached[T any](c *DeepCopier, r any) (T, bool) {
	if v, ok := lookup[T](c.cache.values, r); ok {
		return v, true
	}
	if v, ok := lookup[T](c.cache.refs, r); ok {
		c.stats.cacheHits++
		return v, true
	}
	var zero T
	return zero, false
}

func (c *DeepCopier) typeRef(r metadata.TypeReference) metadata.TypeReference {
	if r == nil || c.halted() || mutable.IsDummy(r) {
		return r
	}
	if v, ok := cached[metadata.TypeReference](c, r); ok {
		return v
	}
	switch t := r.(type) {
	case metadata.GenericTypeInstanceReference:
		return c.genericTypeInstance(t)
	case metadata.SpecializedNestedTypeReference:
		return c.specializedNestedType(t)
	case metadata.NamedTypeDefinition:
		if c.owns(t) {
			return c.typeDefinitionShell(t)
		}
	case metadata.GenericTypeParameter:
		if c.owns(t) {
			return valueShell[metadata.GenericTypeParameter, *mutable.GenericTypeParameter](c, t)
		}
	case metadata.GenericMethodParameter:
		if c.owns(t) {
			return valueShell[metadata.GenericMethodParameter, *mutable.GenericMethodParameter](c, t)
		}
	}

	switch t := r.(type) {
	case metadata.ArrayTypeReference:
		cp := refShell[metadata.ArrayTypeReference, *mutable.ArrayTypeReference](c, t)
		cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
		cp.SetElementType(c.typeRef(cp.ElementType()))
		return cp
	case metadata.PointerTypeReference:
		cp := refShell[metadata.PointerTypeReference, *mutable.PointerTypeReference](c, t)
		cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
		cp.SetTargetType(c.typeRef(cp.TargetType()))
		return cp
	case metadata.ManagedPointerTypeReference:
		cp := refShell[metadata.ManagedPointerTypeReference, *mutable.ManagedPointerTypeReference](c, t)
		cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
		cp.SetTargetType(c.typeRef(cp.TargetType()))
		return cp
	case metadata.FunctionPointerTypeReference:
		cp := refShell[metadata.FunctionPointerTypeReference, *mutable.FunctionPointerTypeReference](c, t)
		cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
		cp.SetType(c.typeRef(cp.Type()))
		cp.SetReturnValueCustomModifiers(each(cp.ReturnValueCustomModifiers(), c.customModifier))
		cp.SetParameters(each(cp.Parameters(), c.parameterInfo(cp)))
		cp.SetExtraArgumentTypes(each(cp.ExtraArgumentTypes(), c.parameterInfo(cp)))
		return cp
	case metadata.ModifiedTypeReference:
		cp := refShell[metadata.ModifiedTypeReference, *mutable.ModifiedTypeReference](c, t)
		cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
		cp.SetUnmodifiedType(c.typeRef(cp.UnmodifiedType()))
		cp.SetCustomModifiers(each(cp.CustomModifiers(), c.customModifier))
		return cp
	case metadata.GenericTypeParameterReference:
		cp := refShell[metadata.GenericTypeParameterReference, *mutable.GenericTypeParameterReference](c, t)
		cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
		cp.SetDefiningType(c.typeRef(cp.DefiningType()))
		return cp
	case metadata.GenericMethodParameterReference:
		cp := refShell[metadata.GenericMethodParameterReference, *mutable.GenericMethodParameterReference](c, t)
		cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
		cp.SetDefiningMethod(c.methodRef(cp.DefiningMethod()))
		return cp
	case metadata.NestedTypeReference:
		cp := refShell[metadata.NestedTypeReference, *mutable.NestedTypeReference](c, t)
		c.populateNestedTypeRef(cp)
		return cp
	case metadata.NamespaceTypeReference:
		cp := refShell[metadata.NamespaceTypeReference, *mutable.NamespaceTypeReference](c, t)
		cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
		cp.SetContainingUnitNamespace(c.namespaceRef(cp.ContainingUnitNamespace()))
		return cp
	}
	unknownNode("type reference", r)
	return nil
}

func (c *DeepCopier) genericTypeInstance(t metadata.GenericTypeInstanceReference) metadata.TypeReference {
	cp := refShell[metadata.GenericTypeInstanceReference, *mutable.GenericTypeInstanceReference](c, t)
	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	if gt := cp.GenericType(); gt != nil {
		g, ok := c.typeRef(gt).(metadata.NamedTypeReference)
		if !ok {
			unknownNode("generic type", gt)
		}
		cp.SetGenericType(g)
	}
	cp.SetGenericArguments(each(cp.GenericArguments(), c.typeRef))
	return cp
}

// specializedNestedType copies the instance side first and the
// unspecialized side second. Both are cached, so a reference met again
// through either side resolves to this copy.
func (c *DeepCopier) specializedNestedType(t metadata.SpecializedNestedTypeReference) metadata.TypeReference {
	cp := refShell[metadata.SpecializedNestedTypeReference, *mutable.SpecializedNestedTypeReference](c, t)
	c.populateNestedTypeRef(&cp.NestedTypeReference)
	if u, ok := c.typeRef(cp.UnspecializedVersion()).(metadata.NestedTypeReference); ok {
		cp.SetUnspecializedVersion(u)
	}
	return cp
}

func (c *DeepCopier) populateNestedTypeRef(r *mutable.NestedTypeReference) {
	r.SetAttributes(each(r.Attributes(), c.customAttribute))
	r.SetContainingType(c.typeRef(r.ContainingType()))
}

// parameterInfo returns a function copying the parameters of sig, the
// copy of the signature that holds them.
func (c *DeepCopier) parameterInfo(sig metadata.Signature) func(metadata.ParameterTypeInformation) metadata.ParameterTypeInformation {
	return func(p metadata.ParameterTypeInformation) metadata.ParameterTypeInformation {
		if p == nil || c.halted() {
			return p
		}
		if d, ok := p.(metadata.ParameterDefinition); ok && c.owns(d) {
			return c.parameterDefinition(d)
		}
		if v, ok := cached[metadata.ParameterTypeInformation](c, p); ok {
			return v
		}
		cp := refShell[metadata.ParameterTypeInformation, *mutable.ParameterTypeInformation](c, p)
		cp.SetContainingSignature(sig)
		cp.SetType(c.typeRef(cp.Type()))
		cp.SetCustomModifiers(each(cp.CustomModifiers(), c.customModifier))
		return cp
	}
}

func (c *DeepCopier) fieldRef(r metadata.FieldReference) metadata.FieldReference {
	if r == nil || c.halted() || mutable.IsDummy(r) {
		return r
	}
	if v, ok := cached[metadata.FieldReference](c, r); ok {
		return v
	}
	switch f := r.(type) {
	case metadata.SpecializedFieldReference:
		cp := refShell[metadata.SpecializedFieldReference, *mutable.SpecializedFieldReference](c, f)
		c.populateFieldRef(&cp.FieldReference)
		cp.SetUnspecializedVersion(c.fieldRef(cp.UnspecializedVersion()))
		return cp
	case metadata.FieldDefinition:
		if c.owns(f) {
			return c.fieldShell(f)
		}
	}
	cp := refShell[metadata.FieldReference, *mutable.FieldReference](c, r)
	c.populateFieldRef(cp)
	return cp
}

func (c *DeepCopier) populateFieldRef(r *mutable.FieldReference) {
	r.SetAttributes(each(r.Attributes(), c.customAttribute))
	r.SetContainingType(c.typeRef(r.ContainingType()))
	r.SetType(c.typeRef(r.Type()))
	r.SetCustomModifiers(each(r.CustomModifiers(), c.customModifier))
}

func (c *DeepCopier) methodRef(r metadata.MethodReference) metadata.MethodReference {
	if r == nil || c.halted() || mutable.IsDummy(r) {
		return r
	}
	if v, ok := cached[metadata.MethodReference](c, r); ok {
		return v
	}
	switch m := r.(type) {
	case metadata.GenericMethodInstanceReference:
		cp := refShell[metadata.GenericMethodInstanceReference, *mutable.GenericMethodInstanceReference](c, m)
		c.populateMethodRef(&cp.MethodReference, cp)
		cp.SetGenericMethod(c.methodRef(cp.GenericMethod()))
		cp.SetGenericArguments(each(cp.GenericArguments(), c.typeRef))
		return cp
	case metadata.SpecializedMethodReference:
		cp := refShell[metadata.SpecializedMethodReference, *mutable.SpecializedMethodReference](c, m)
		c.populateMethodRef(&cp.MethodReference, cp)
		cp.SetUnspecializedVersion(c.methodRef(cp.UnspecializedVersion()))
		return cp
	case metadata.MethodDefinition:
		if c.owns(m) {
			return c.methodShell(m)
		}
	}
	cp := refShell[metadata.MethodReference, *mutable.MethodReference](c, r)
	c.populateMethodRef(cp, cp)
	return cp
}

// populateMethodRef copies the parts every method reference has. sig is
// the outermost node, which the parameters point back at.
func (c *DeepCopier) populateMethodRef(r *mutable.MethodReference, sig metadata.Signature) {
	r.SetAttributes(each(r.Attributes(), c.customAttribute))
	r.SetContainingType(c.typeRef(r.ContainingType()))
	r.SetType(c.typeRef(r.Type()))
	r.SetReturnValueCustomModifiers(each(r.ReturnValueCustomModifiers(), c.customModifier))
	r.SetParameters(each(r.Parameters(), c.parameterInfo(sig)))
	r.SetExtraParameters(each(r.ExtraParameters(), c.parameterInfo(sig)))
}

// assemblyRef copies a reference to an assembly. An assembly owned by the
// root stands for its copy. A reference resolved to an owned assembly is
// rebound to the copy; one resolved elsewhere keeps its binding.
func (c *DeepCopier) assemblyRef(r metadata.AssemblyReference) metadata.AssemblyReference {
	if r == nil || c.halted() || mutable.IsDummy(r) {
		return r
	}
	if a, ok := r.(metadata.Assembly); ok && c.owns(a) {
		return valueShell[metadata.Assembly, *mutable.Assembly](c, a)
	}
	if v, ok := cached[metadata.AssemblyReference](c, r); ok {
		return v
	}
	cp := refShell[metadata.AssemblyReference, *mutable.AssemblyReference](c, r)
	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	if res := cp.ResolvedAssembly(); c.owns(res) {
		cp.SetResolvedAssembly(valueShell[metadata.Assembly, *mutable.Assembly](c, res))
	}
	return cp
}

func (c *DeepCopier) moduleRef(r metadata.ModuleReference) metadata.ModuleReference {
	if r == nil || c.halted() || mutable.IsDummy(r) {
		return r
	}
	if a, ok := r.(metadata.AssemblyReference); ok {
		return c.assemblyRef(a)
	}
	if m, ok := r.(metadata.Module); ok && c.owns(m) {
		return c.moduleShell(m)
	}
	if v, ok := cached[metadata.ModuleReference](c, r); ok {
		return v
	}
	cp := refShell[metadata.ModuleReference, *mutable.ModuleReference](c, r)
	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	if ca := cp.ContainingAssembly(); ca != nil {
		cp.SetContainingAssembly(c.assemblyRef(ca))
	}
	if res := cp.ResolvedModule(); c.owns(res) {
		cp.SetResolvedModule(c.moduleShell(res))
	}
	return cp
}

func (c *DeepCopier) unitRef(u metadata.UnitReference) metadata.UnitReference {
	if u == nil || c.halted() || mutable.IsDummy(u) {
		return u
	}
	if m, ok := u.(metadata.ModuleReference); ok {
		return c.moduleRef(m)
	}
	unknownNode("unit reference", u)
	return nil
}

func (c *DeepCopier) namespaceRef(r metadata.UnitNamespaceReference) metadata.UnitNamespaceReference {
	if r == nil || c.halted() || mutable.IsDummy(r) {
		return r
	}
	if ns, ok := r.(metadata.UnitNamespace); ok && c.owns(ns) {
		return c.namespaceShell(ns)
	}
	if v, ok := cached[metadata.UnitNamespaceReference](c, r); ok {
		return v
	}
	if nested, ok := r.(metadata.NestedUnitNamespaceReference); ok {
		cp := refShell[metadata.NestedUnitNamespaceReference, *mutable.NestedUnitNamespaceReference](c, nested)
		cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
		cp.SetContainingUnitNamespace(c.namespaceRef(cp.ContainingUnitNamespace()))
		return cp
	}
	cp := refShell[metadata.UnitNamespaceReference, *mutable.RootUnitNamespaceReference](c, r)
	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	cp.SetUnit(c.unitRef(cp.Unit()))
	return cp
}
