package mutator

import (
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

func (c *DeepCopier) copyAssembly(a metadata.Assembly) *mutable.Assembly {
	cp := valueShell[metadata.Assembly, *mutable.Assembly](c, a)
	if c.halted() || !c.enter(cp) {
		return cp
	}
	saved, helpers := c.path, c.helpers
	c.path, c.helpers = traversalContext{unit: cp}, nil
	defer func() { c.path, c.helpers = saved, helpers }()

	c.populateModule(&cp.Module)
	cp.SetAssemblyAttributes(each(cp.AssemblyAttributes(), c.customAttribute))
	cp.SetSecurityAttributes(each(cp.SecurityAttributes(), c.securityAttribute))
	cp.SetExportedTypes(each(cp.ExportedTypes(), c.alias))
	cp.SetFiles(each(cp.Files(), c.fileReference))
	cp.SetResources(each(cp.Resources(), c.resourceReference))
	cp.SetMemberModules(each(cp.MemberModules(), c.memberModule))
	return cp
}

func (c *DeepCopier) copyModule(m metadata.Module) *mutable.Module {
	cp := valueShell[metadata.Module, *mutable.Module](c, m)
	if c.halted() || !c.enter(cp) {
		return cp
	}
	saved, helpers := c.path, c.helpers
	c.path, c.helpers = traversalContext{unit: cp}, nil
	defer func() { c.path, c.helpers = saved, helpers }()

	c.populateModule(cp)
	return cp
}

func (c *DeepCopier) memberModule(m metadata.Module) metadata.Module {
	if m == nil || c.halted() || mutable.IsDummy(m) {
		return m
	}
	if a, ok := m.(metadata.Assembly); ok {
		return c.copyAssembly(a)
	}
	return c.copyModule(m)
}

// populateModule rewrites the module part of the unit on the path.
func (c *DeepCopier) populateModule(m *mutable.Module) {
	m.SetAttributes(each(m.Attributes(), c.customAttribute))
	if ca := m.ContainingAssembly(); ca != nil {
		m.SetContainingAssembly(c.assemblyRef(ca))
	}
	m.SetAssemblyReferences(each(m.AssemblyReferences(), c.assemblyRef))
	m.SetModuleReferences(each(m.ModuleReferences(), c.moduleRef))
	m.SetWin32Resources(each(m.Win32Resources(), c.win32Resource))
	m.SetUnitNamespaceRoot(c.rootNamespace(m.UnitNamespaceRoot()))
	m.SetAllTypes(c.allTypes(m.AllTypes()))
	m.SetEntryPoint(c.methodRef(m.EntryPoint()))
}

// allTypes copies the flat type list of the module on the path. Helper
// types found in method bodies and helper members are added, then the
// list is put back in the order of the original.
func (c *DeepCopier) allTypes(types []metadata.NamedTypeDefinition) []metadata.NamedTypeDefinition {
	orig := make([]metadata.NamedTypeDefinition, len(types))
	copy(orig, types)
	types = each(types, c.namedTypeDefinition)

	seen := make(map[metadata.NamedTypeDefinition]struct{}, len(types))
	for _, t := range types {
		seen[t] = struct{}{}
	}
	for _, h := range c.helpers {
		if _, ok := seen[h]; !ok {
			seen[h] = struct{}{}
			types = append(types, h)
		}
	}
	sortAllTypes(c.host.NameTable(), orig, types)
	return types
}

func (c *DeepCopier) rootNamespace(ns metadata.RootUnitNamespace) metadata.RootUnitNamespace {
	if ns == nil || c.halted() || mutable.IsDummy(ns) {
		return ns
	}
	if nested, ok := ns.(metadata.NestedUnitNamespace); ok {
		return c.nestedNamespace(nested)
	}
	cp := valueShell[metadata.RootUnitNamespace, *mutable.RootUnitNamespace](c, ns)
	if !c.enter(cp) {
		return cp
	}
	cp.SetUnit(c.currentUnit())

	saved := c.path.namespace
	c.path.namespace = cp
	defer func() { c.path.namespace = saved }()

	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	cp.SetMembers(each(cp.Members(), c.namespaceMember))
	return cp
}

func (c *DeepCopier) nestedNamespace(ns metadata.NestedUnitNamespace) metadata.NestedUnitNamespace {
	if ns == nil || c.halted() {
		return ns
	}
	cp := valueShell[metadata.NestedUnitNamespace, *mutable.NestedUnitNamespace](c, ns)
	if !c.enter(cp) {
		return cp
	}
	cp.SetContainingNamespace(c.containingNamespace(cp.ContainingNamespace()))

	saved := c.path.namespace
	c.path.namespace = cp
	defer func() { c.path.namespace = saved }()

	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	cp.SetMembers(each(cp.Members(), c.namespaceMember))
	return cp
}

func (c *DeepCopier) namespaceMember(m metadata.NamespaceMember) metadata.NamespaceMember {
	if m == nil || c.halted() {
		return m
	}
	switch m := m.(type) {
	case metadata.NestedUnitNamespace:
		return c.nestedNamespace(m)
	case metadata.NamespaceTypeDefinition:
		return c.namedTypeDefinition(m).(metadata.NamespaceMember)
	case metadata.GlobalFieldDefinition:
		return c.fieldDefinition(m).(metadata.NamespaceMember)
	case metadata.GlobalMethodDefinition:
		return c.methodDefinition(m).(metadata.NamespaceMember)
	case metadata.NamespaceAliasForType:
		return c.alias(m).(metadata.NamespaceMember)
	}
	unknownNode("namespace member", m)
	return nil
}

func (c *DeepCopier) alias(a metadata.AliasForType) metadata.AliasForType {
	if a == nil || c.halted() {
		return a
	}
	cp := c.aliasShell(a)
	if !c.enter(cp) {
		return cp
	}
	switch d := cp.(type) {
	case *mutable.NamespaceAliasForType:
		d.SetContainingNamespace(c.containingNamespace(d.ContainingNamespace()))
		d.SetAttributes(each(d.Attributes(), c.customAttribute))
	case *mutable.NestedAliasForType:
		d.SetContainingAlias(c.containingAlias(d.ContainingAlias()))
		d.SetAttributes(each(d.Attributes(), c.customAttribute))
	}

	saved := c.path.alias
	c.path.alias = cp
	defer func() { c.path.alias = saved }()

	type aliasNode interface {
		SetAliasedType(metadata.NamedTypeReference)
		SetMembers([]metadata.AliasMember)
	}
	n := cp.(aliasNode)
	if t, ok := c.typeRef(cp.AliasedType()).(metadata.NamedTypeReference); ok {
		n.SetAliasedType(t)
	}
	n.SetMembers(each(cp.Members(), c.aliasMember))
	return cp
}

func (c *DeepCopier) aliasMember(m metadata.AliasMember) metadata.AliasMember {
	if m == nil || c.halted() {
		return m
	}
	if nested, ok := m.(metadata.NestedAliasForType); ok {
		return c.alias(nested).(metadata.AliasMember)
	}
	unknownNode("alias member", m)
	return nil
}

func (c *DeepCopier) win32Resource(r metadata.Win32Resource) metadata.Win32Resource {
	if r == nil || c.halted() {
		return r
	}
	return valueShell[metadata.Win32Resource, *mutable.Win32Resource](c, r)
}

func (c *DeepCopier) resourceReference(r metadata.ResourceReference) metadata.ResourceReference {
	if r == nil || c.halted() {
		return r
	}
	cp := valueShell[metadata.ResourceReference, *mutable.ResourceReference](c, r)
	if !c.enter(cp) {
		return cp
	}
	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	cp.SetDefiningAssembly(c.assemblyRef(cp.DefiningAssembly()))
	return cp
}

func (c *DeepCopier) fileReference(f metadata.FileReference) metadata.FileReference {
	if f == nil || c.halted() {
		return f
	}
	cp := valueShell[metadata.FileReference, *mutable.FileReference](c, f)
	if !c.enter(cp) {
		return cp
	}
	cp.SetContainingAssembly(c.assemblyRef(cp.ContainingAssembly()))
	return cp
}
