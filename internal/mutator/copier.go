package mutator

import (
	"context"

	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// DeepCopier produces a mutable copy of everything reachable from a root
// unit. Nothing in the copy is shared with the source: definitions owned
// by the root are copied as definitions, everything else the root refers
// to is copied as a reference.
//
// A DeepCopier runs one traversal at a time.
type DeepCopier struct {
	engine

	owned   ownership
	visited map[any]struct{}
	helpers []metadata.NamedTypeDefinition
}

// NewDeepCopier returns a copier using the services of h.
func NewDeepCopier(h metadata.Host, opts ...Option) *DeepCopier {
	return &DeepCopier{
		engine:  newEngine("copier", h, opts),
		owned:   make(ownership),
		visited: make(map[any]struct{}),
	}
}

// CopyModule copies m and everything it owns. An assembly is copied with
// CopyAssembly and its module part returned. The copy of the root is
// always a fresh node, even when the copier is stopped.
//
// If ctx is done while copying, the partial copy is dropped and the error
// wraps ErrTraversalCancelled.
func (c *DeepCopier) CopyModule(ctx context.Context, m metadata.Module) (*mutable.Module, error) {
	if m == nil {
		return nil, ErrNilRoot
	}
	if a, ok := m.(metadata.Assembly); ok {
		cp, err := c.CopyAssembly(ctx, a)
		if err != nil {
			return nil, err
		}
		return &cp.Module, nil
	}
	var out *mutable.Module
	if err := c.run(ctx, "mutator.CopyModule", m, func() { c.reset(m) }, func() {
		out = c.copyModule(m)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// CopyAssembly copies a and everything it owns, member modules included.
func (c *DeepCopier) CopyAssembly(ctx context.Context, a metadata.Assembly) (*mutable.Assembly, error) {
	if a == nil {
		return nil, ErrNilRoot
	}
	var out *mutable.Assembly
	if err := c.run(ctx, "mutator.CopyAssembly", a, func() { c.reset(a) }, func() {
		out = c.copyAssembly(a)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DeepCopier) reset(root metadata.Module) {
	c.owned = collectOwnership(root)
	c.visited = make(map[any]struct{})
	c.helpers = nil
}

func (c *DeepCopier) owns(n any) bool { return c.owned.owns(n) }

// enter marks cp as populated and reports whether it was not before.
func (c *DeepCopier) enter(cp any) bool {
	if _, ok := c.visited[cp]; ok {
		c.stats.cacheHits++
		return false
	}
	c.visited[cp] = struct{}{}
	return true
}

// copyable is implemented by every mutable node.
type copyable[S any] interface {
	Copy(from S, f metadata.InternFactory)
}

// valueShell returns the value copy of orig, allocating and registering
// an unpopulated one on first use.
func valueShell[S any, P interface {
	*N
	copyable[S]
}, N any](c *DeepCopier, orig S) P {
	if v, ok := lookup[P](c.cache.values, orig); ok {
		return v
	}
	cp := P(new(N))
	cp.Copy(orig, c.factory)
	c.cache.setValue(orig, cp)
	c.stats.values++
	return cp
}

// refShell is valueShell for the reference table. References are
// populated right after allocation, so callers look the cache up first.
func refShell[S any, P interface {
	*N
	copyable[S]
}, N any](c *DeepCopier, orig S) P {
	cp := P(new(N))
	cp.Copy(orig, c.factory)
	c.cache.setRef(orig, cp)
	c.stats.refsNew++
	return cp
}

// GetMutableCopy returns the copy registered for def, allocating an
// unpopulated one if there is none yet. Calling it twice with the same
// node returns the same copy. References are copied in full on first use.
// Copies made by a traversal stay available until the next one starts.
func (c *DeepCopier) GetMutableCopy(def any) any {
	if def == nil || mutable.IsDummy(def) {
		return def
	}
	switch d := def.(type) {
	case metadata.Assembly:
		return valueShell[metadata.Assembly, *mutable.Assembly](c, d)
	case metadata.Module:
		return valueShell[metadata.Module, *mutable.Module](c, d)
	case metadata.UnitNamespace:
		return c.namespaceShell(d)
	case metadata.TypeDefinition:
		return c.typeDefinitionShell(d)
	case metadata.GenericTypeParameter:
		return valueShell[metadata.GenericTypeParameter, *mutable.GenericTypeParameter](c, d)
	case metadata.GenericMethodParameter:
		return valueShell[metadata.GenericMethodParameter, *mutable.GenericMethodParameter](c, d)
	case metadata.FieldDefinition:
		return c.fieldShell(d)
	case metadata.MethodDefinition:
		return c.methodShell(d)
	case metadata.PropertyDefinition:
		return valueShell[metadata.PropertyDefinition, *mutable.PropertyDefinition](c, d)
	case metadata.EventDefinition:
		return valueShell[metadata.EventDefinition, *mutable.EventDefinition](c, d)
	case metadata.ParameterDefinition:
		return valueShell[metadata.ParameterDefinition, *mutable.ParameterDefinition](c, d)
	case metadata.MethodBody:
		return valueShell[metadata.MethodBody, *mutable.MethodBody](c, d)
	case metadata.LocalDefinition:
		return valueShell[metadata.LocalDefinition, *mutable.LocalDefinition](c, d)
	case metadata.Operation:
		return valueShell[metadata.Operation, *mutable.Operation](c, d)
	case metadata.OperationExceptionInformation:
		return valueShell[metadata.OperationExceptionInformation, *mutable.OperationExceptionInformation](c, d)
	case metadata.AliasForType:
		return c.aliasShell(d)
	case metadata.TypeReference:
		return c.typeRef(d)
	case metadata.FieldReference:
		return c.fieldRef(d)
	case metadata.MethodReference:
		return c.methodRef(d)
	case metadata.ModuleReference:
		return c.moduleRef(d)
	case metadata.UnitNamespaceReference:
		return c.namespaceRef(d)
	case metadata.ParameterTypeInformation:
		return valueShell[metadata.ParameterTypeInformation, *mutable.ParameterTypeInformation](c, d)
	case metadata.CustomAttribute:
		return valueShell[metadata.CustomAttribute, *mutable.CustomAttribute](c, d)
	case metadata.CustomModifier:
		return valueShell[metadata.CustomModifier, *mutable.CustomModifier](c, d)
	case metadata.SecurityAttribute:
		return valueShell[metadata.SecurityAttribute, *mutable.SecurityAttribute](c, d)
	case metadata.MarshallingInformation:
		return valueShell[metadata.MarshallingInformation, *mutable.MarshallingInformation](c, d)
	case metadata.PlatformInvokeInformation:
		return valueShell[metadata.PlatformInvokeInformation, *mutable.PlatformInvokeInformation](c, d)
	case metadata.MethodImplementation:
		return valueShell[metadata.MethodImplementation, *mutable.MethodImplementation](c, d)
	case metadata.ResourceReference:
		return valueShell[metadata.ResourceReference, *mutable.ResourceReference](c, d)
	case metadata.Win32Resource:
		return valueShell[metadata.Win32Resource, *mutable.Win32Resource](c, d)
	case metadata.FileReference:
		return valueShell[metadata.FileReference, *mutable.FileReference](c, d)
	case metadata.MetadataExpression:
		return c.expressionShell(d)
	}
	unknownNode("definition", def)
	return nil
}

func (c *DeepCopier) moduleShell(m metadata.Module) metadata.Module {
	if a, ok := m.(metadata.Assembly); ok {
		return valueShell[metadata.Assembly, *mutable.Assembly](c, a)
	}
	return valueShell[metadata.Module, *mutable.Module](c, m)
}

func (c *DeepCopier) namespaceShell(ns metadata.UnitNamespace) metadata.UnitNamespace {
	if nested, ok := ns.(metadata.NestedUnitNamespace); ok {
		return valueShell[metadata.NestedUnitNamespace, *mutable.NestedUnitNamespace](c, nested)
	}
	return valueShell[metadata.RootUnitNamespace, *mutable.RootUnitNamespace](c, ns)
}

func (c *DeepCopier) typeDefinitionShell(t metadata.TypeDefinition) mutable.TypeDefinitionNode {
	switch t := t.(type) {
	case metadata.NestedTypeDefinition:
		return valueShell[metadata.NestedTypeDefinition, *mutable.NestedTypeDefinition](c, t)
	case metadata.NamespaceTypeDefinition:
		return valueShell[metadata.NamespaceTypeDefinition, *mutable.NamespaceTypeDefinition](c, t)
	}
	unknownNode("type definition", t)
	return nil
}

func (c *DeepCopier) fieldShell(f metadata.FieldDefinition) metadata.FieldDefinition {
	if g, ok := f.(metadata.GlobalFieldDefinition); ok {
		return valueShell[metadata.GlobalFieldDefinition, *mutable.GlobalFieldDefinition](c, g)
	}
	return valueShell[metadata.FieldDefinition, *mutable.FieldDefinition](c, f)
}

func (c *DeepCopier) methodShell(m metadata.MethodDefinition) metadata.MethodDefinition {
	if g, ok := m.(metadata.GlobalMethodDefinition); ok {
		return valueShell[metadata.GlobalMethodDefinition, *mutable.GlobalMethodDefinition](c, g)
	}
	return valueShell[metadata.MethodDefinition, *mutable.MethodDefinition](c, m)
}

func (c *DeepCopier) aliasShell(a metadata.AliasForType) metadata.AliasForType {
	switch a := a.(type) {
	case metadata.NamespaceAliasForType:
		return valueShell[metadata.NamespaceAliasForType, *mutable.NamespaceAliasForType](c, a)
	case metadata.NestedAliasForType:
		return valueShell[metadata.NestedAliasForType, *mutable.NestedAliasForType](c, a)
	}
	unknownNode("alias", a)
	return nil
}

func (c *DeepCopier) expressionShell(e metadata.MetadataExpression) metadata.MetadataExpression {
	switch e := e.(type) {
	case metadata.MetadataCreateArray:
		return valueShell[metadata.MetadataCreateArray, *mutable.MetadataCreateArray](c, e)
	case metadata.MetadataNamedArgument:
		return valueShell[metadata.MetadataNamedArgument, *mutable.MetadataNamedArgument](c, e)
	case metadata.MetadataTypeOf:
		return valueShell[metadata.MetadataTypeOf, *mutable.MetadataTypeOf](c, e)
	case metadata.MetadataConstant:
		return valueShell[metadata.MetadataConstant, *mutable.MetadataConstant](c, e)
	}
	unknownNode("metadata expression", e)
	return nil
}

// Back-pointers. A copied child points at the copy of its original
// container when that container is owned by the root, else at the
// innermost container on the path, else at a dummy.

func (c *DeepCopier) containingType(orig metadata.TypeDefinition) metadata.TypeDefinition {
	if orig != nil && c.owns(orig) {
		return c.typeDefinitionShell(orig)
	}
	return c.currentType()
}

func (c *DeepCopier) containingNamespace(orig metadata.UnitNamespace) metadata.UnitNamespace {
	if orig != nil && c.owns(orig) {
		return c.namespaceShell(orig)
	}
	return c.currentNamespace()
}

func (c *DeepCopier) containingMethod(orig metadata.MethodDefinition) metadata.MethodDefinition {
	if orig != nil && c.owns(orig) {
		return c.methodShell(orig)
	}
	return c.currentMethod()
}

func (c *DeepCopier) containingSignature(orig metadata.Signature) metadata.Signature {
	switch s := orig.(type) {
	case metadata.MethodDefinition:
		if c.owns(s) {
			return c.methodShell(s)
		}
	case metadata.PropertyDefinition:
		if c.owns(s) {
			return valueShell[metadata.PropertyDefinition, *mutable.PropertyDefinition](c, s)
		}
	}
	if c.path.signature != nil {
		return c.path.signature
	}
	c.dummyFallback("signature")
	return mutable.DummyMethod
}

func (c *DeepCopier) containingAlias(orig metadata.AliasForType) metadata.AliasForType {
	if orig != nil && c.owns(orig) {
		return c.aliasShell(orig)
	}
	if c.path.alias != nil {
		return c.path.alias
	}
	c.log.Debug("nested alias outside of any alias")
	return orig
}
