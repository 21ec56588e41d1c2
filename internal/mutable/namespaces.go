package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

// RootUnitNamespace is the unnamed namespace owned by a unit.
type RootUnitNamespace struct {
	reference
	unit    metadata.UnitReference
	members []metadata.NamespaceMember
}

// NewRootUnitNamespace returns the root namespace of unit.
func NewRootUnitNamespace(unit metadata.UnitReference) *RootUnitNamespace {
	return &RootUnitNamespace{unit: unit}
}

func (n *RootUnitNamespace) Name() string                                  { return "" }
func (n *RootUnitNamespace) Unit() metadata.UnitReference                  { return n.unit }
func (n *RootUnitNamespace) SetUnit(v metadata.UnitReference)              { n.unit = v }
func (n *RootUnitNamespace) Members() []metadata.NamespaceMember           { return n.members }
func (n *RootUnitNamespace) SetMembers(v []metadata.NamespaceMember)       { n.members = v }
func (n *RootUnitNamespace) AddMember(v metadata.NamespaceMember)          { n.members = append(n.members, v) }
func (n *RootUnitNamespace) ResolvedUnitNamespace() metadata.UnitNamespace { return n }

func (n *RootUnitNamespace) Copy(from metadata.RootUnitNamespace, _ metadata.InternFactory) {
	n.copyReference(from)
	n.unit = from.Unit()
	n.members = slices.Clone(from.Members())
}

// NestedUnitNamespace is a namespace owned by another namespace.
type NestedUnitNamespace struct {
	reference
	name                string
	containingNamespace metadata.UnitNamespace
	members             []metadata.NamespaceMember
}

// NewNestedUnitNamespace returns a namespace named name inside parent. It
// does not add itself to the members of parent.
func NewNestedUnitNamespace(parent metadata.UnitNamespace, name string) *NestedUnitNamespace {
	return &NestedUnitNamespace{name: name, containingNamespace: parent}
}

func (n *NestedUnitNamespace) Name() string                            { return n.name }
func (n *NestedUnitNamespace) SetName(v string)                        { n.name = v }
func (n *NestedUnitNamespace) Members() []metadata.NamespaceMember     { return n.members }
func (n *NestedUnitNamespace) SetMembers(v []metadata.NamespaceMember) { n.members = v }
func (n *NestedUnitNamespace) AddMember(v metadata.NamespaceMember)    { n.members = append(n.members, v) }
func (n *NestedUnitNamespace) ContainingNamespace() metadata.UnitNamespace {
	return n.containingNamespace
}
func (n *NestedUnitNamespace) SetContainingNamespace(v metadata.UnitNamespace) {
	n.containingNamespace = v
}
func (n *NestedUnitNamespace) ContainingUnitNamespace() metadata.UnitNamespaceReference {
	if n.containingNamespace == nil {
		return nil
	}
	return n.containingNamespace
}
func (n *NestedUnitNamespace) ResolvedUnitNamespace() metadata.UnitNamespace { return n }

// Unit is the unit of the root namespace this namespace is nested in.
func (n *NestedUnitNamespace) Unit() metadata.UnitReference {
	if n.containingNamespace == nil {
		return DummyModule
	}
	return n.containingNamespace.Unit()
}

func (n *NestedUnitNamespace) Copy(from metadata.NestedUnitNamespace, _ metadata.InternFactory) {
	n.copyReference(from)
	n.name = from.Name()
	n.containingNamespace = from.ContainingNamespace()
	n.members = slices.Clone(from.Members())
}

// RootUnitNamespaceReference refers to the root namespace of a unit.
type RootUnitNamespaceReference struct {
	reference
	unit metadata.UnitReference
}

// NewRootUnitNamespaceReference returns a reference to the root namespace
// of unit.
func NewRootUnitNamespaceReference(unit metadata.UnitReference) *RootUnitNamespaceReference {
	return &RootUnitNamespaceReference{unit: unit}
}

func (r *RootUnitNamespaceReference) Unit() metadata.UnitReference     { return r.unit }
func (r *RootUnitNamespaceReference) SetUnit(v metadata.UnitReference) { r.unit = v }

func (r *RootUnitNamespaceReference) ResolvedUnitNamespace() metadata.UnitNamespace {
	if r.unit == nil {
		return DummyNamespace
	}
	root := r.unit.ResolvedUnit().UnitNamespaceRoot()
	if root == nil {
		return DummyNamespace
	}
	return root
}

func (r *RootUnitNamespaceReference) Copy(from metadata.UnitNamespaceReference, _ metadata.InternFactory) {
	r.copyReference(from)
	r.unit = from.Unit()
}

// NestedUnitNamespaceReference refers to a namespace by name inside
// another namespace reference.
type NestedUnitNamespaceReference struct {
	reference
	name                    string
	containingUnitNamespace metadata.UnitNamespaceReference
}

// NewNestedUnitNamespaceReference returns a reference to namespace name
// inside parent.
func NewNestedUnitNamespaceReference(parent metadata.UnitNamespaceReference, name string) *NestedUnitNamespaceReference {
	return &NestedUnitNamespaceReference{name: name, containingUnitNamespace: parent}
}

func (r *NestedUnitNamespaceReference) Name() string     { return r.name }
func (r *NestedUnitNamespaceReference) SetName(v string) { r.name = v }
func (r *NestedUnitNamespaceReference) ContainingUnitNamespace() metadata.UnitNamespaceReference {
	return r.containingUnitNamespace
}
func (r *NestedUnitNamespaceReference) SetContainingUnitNamespace(v metadata.UnitNamespaceReference) {
	r.containingUnitNamespace = v
}

func (r *NestedUnitNamespaceReference) Unit() metadata.UnitReference {
	if r.containingUnitNamespace == nil {
		return DummyModule
	}
	return r.containingUnitNamespace.Unit()
}

// ResolvedUnitNamespace finds the first nested namespace named like the
// reference in the resolved containing namespace.
func (r *NestedUnitNamespaceReference) ResolvedUnitNamespace() metadata.UnitNamespace {
	if r.containingUnitNamespace == nil {
		return DummyNamespace
	}
	for _, m := range r.containingUnitNamespace.ResolvedUnitNamespace().Members() {
		if ns, ok := m.(metadata.NestedUnitNamespace); ok && ns.Name() == r.name {
			return ns
		}
	}
	return DummyNamespace
}

func (r *NestedUnitNamespaceReference) Copy(from metadata.NestedUnitNamespaceReference, _ metadata.InternFactory) {
	r.copyReference(from)
	r.name = from.Name()
	r.containingUnitNamespace = from.ContainingUnitNamespace()
}
