package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

type aliasForType struct {
	reference
	aliasedType metadata.NamedTypeReference
	members     []metadata.AliasMember
}

func (a *aliasForType) AliasedType() metadata.NamedTypeReference     { return a.aliasedType }
func (a *aliasForType) SetAliasedType(v metadata.NamedTypeReference) { a.aliasedType = v }
func (a *aliasForType) Members() []metadata.AliasMember              { return a.members }
func (a *aliasForType) SetMembers(v []metadata.AliasMember)          { a.members = v }

func (a *aliasForType) copyAlias(from metadata.AliasForType) {
	a.copyReference(from)
	a.aliasedType = from.AliasedType()
	a.members = slices.Clone(from.Members())
}

// NamespaceAliasForType is a type forwarder owned by a namespace.
type NamespaceAliasForType struct {
	aliasForType
	name                string
	containingNamespace metadata.UnitNamespace
	isPublic            bool
}

func (a *NamespaceAliasForType) Name() string       { return a.name }
func (a *NamespaceAliasForType) SetName(v string)   { a.name = v }
func (a *NamespaceAliasForType) IsPublic() bool     { return a.isPublic }
func (a *NamespaceAliasForType) SetIsPublic(v bool) { a.isPublic = v }
func (a *NamespaceAliasForType) ContainingNamespace() metadata.UnitNamespace {
	return a.containingNamespace
}
func (a *NamespaceAliasForType) SetContainingNamespace(v metadata.UnitNamespace) {
	a.containingNamespace = v
}

func (a *NamespaceAliasForType) Copy(from metadata.NamespaceAliasForType, _ metadata.InternFactory) {
	a.copyAlias(from)
	a.name = from.Name()
	a.containingNamespace = from.ContainingNamespace()
	a.isPublic = from.IsPublic()
}

// NestedAliasForType is an alias owned by another alias.
type NestedAliasForType struct {
	aliasForType
	name            string
	visibility      metadata.Visibility
	containingAlias metadata.AliasForType
}

func (a *NestedAliasForType) Name() string                           { return a.name }
func (a *NestedAliasForType) SetName(v string)                       { a.name = v }
func (a *NestedAliasForType) Visibility() metadata.Visibility        { return a.visibility }
func (a *NestedAliasForType) SetVisibility(v metadata.Visibility)    { a.visibility = v }
func (a *NestedAliasForType) ContainingAlias() metadata.AliasForType { return a.containingAlias }
func (a *NestedAliasForType) SetContainingAlias(v metadata.AliasForType) {
	a.containingAlias = v
}

func (a *NestedAliasForType) Copy(from metadata.NestedAliasForType, _ metadata.InternFactory) {
	a.copyAlias(from)
	a.name = from.Name()
	a.visibility = from.Visibility()
	a.containingAlias = from.ContainingAlias()
}
