package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

// TypeDefinition holds what namespace and nested type definitions share.
// It is embedded by both and is not a metadata.TypeDefinition on its own.
type TypeDefinition struct {
	reference
	internFactory                   metadata.InternFactory
	name                            string
	mangleName                      bool
	genericParameterCount           int
	flags                           metadata.TypeFlags
	sizeOf                          uint32
	alignment                       uint16
	baseClasses                     []metadata.TypeReference
	interfaces                      []metadata.TypeReference
	genericParameters               []metadata.GenericTypeParameter
	events                          []metadata.EventDefinition
	fields                          []metadata.FieldDefinition
	methods                         []metadata.MethodDefinition
	nestedTypes                     []metadata.NestedTypeDefinition
	properties                      []metadata.PropertyDefinition
	securityAttributes              []metadata.SecurityAttribute
	explicitImplementationOverrides []metadata.MethodImplementation

	// Helper members are taken over from helperSource on first access.
	privateHelperMembers []metadata.TypeDefinitionMember
	helperSource         metadata.TypeDefinition
	helpersReady         bool
}

// MutableTypeDefinition returns the shared part of a type definition.
func (d *TypeDefinition) MutableTypeDefinition() *TypeDefinition { return d }

func (d *TypeDefinition) InternFactory() metadata.InternFactory     { return d.internFactory }
func (d *TypeDefinition) SetInternFactory(f metadata.InternFactory) { d.internFactory = f }
func (d *TypeDefinition) Name() string                              { return d.name }
func (d *TypeDefinition) SetName(v string)                          { d.name = v }
func (d *TypeDefinition) MangleName() bool                          { return d.mangleName }
func (d *TypeDefinition) SetMangleName(v bool)                      { d.mangleName = v }
func (d *TypeDefinition) GenericParameterCount() int                { return d.genericParameterCount }
func (d *TypeDefinition) SetGenericParameterCount(v int)            { d.genericParameterCount = v }
func (d *TypeDefinition) Flags() metadata.TypeFlags                 { return d.flags }
func (d *TypeDefinition) SetFlags(v metadata.TypeFlags)             { d.flags = v }
func (d *TypeDefinition) IsValueType() bool                         { return d.flags.IsValueType }
func (d *TypeDefinition) SizeOf() uint32                            { return d.sizeOf }
func (d *TypeDefinition) SetSizeOf(v uint32)                        { d.sizeOf = v }
func (d *TypeDefinition) Alignment() uint16                         { return d.alignment }
func (d *TypeDefinition) SetAlignment(v uint16)                     { d.alignment = v }
func (d *TypeDefinition) BaseClasses() []metadata.TypeReference     { return d.baseClasses }
func (d *TypeDefinition) SetBaseClasses(v []metadata.TypeReference) { d.baseClasses = v }
func (d *TypeDefinition) Interfaces() []metadata.TypeReference      { return d.interfaces }
func (d *TypeDefinition) SetInterfaces(v []metadata.TypeReference)  { d.interfaces = v }
func (d *TypeDefinition) GenericParameters() []metadata.GenericTypeParameter {
	return d.genericParameters
}
func (d *TypeDefinition) SetGenericParameters(v []metadata.GenericTypeParameter) {
	d.genericParameters = v
}
func (d *TypeDefinition) Events() []metadata.EventDefinition           { return d.events }
func (d *TypeDefinition) SetEvents(v []metadata.EventDefinition)       { d.events = v }
func (d *TypeDefinition) Fields() []metadata.FieldDefinition           { return d.fields }
func (d *TypeDefinition) SetFields(v []metadata.FieldDefinition)       { d.fields = v }
func (d *TypeDefinition) Methods() []metadata.MethodDefinition         { return d.methods }
func (d *TypeDefinition) SetMethods(v []metadata.MethodDefinition)     { d.methods = v }
func (d *TypeDefinition) NestedTypes() []metadata.NestedTypeDefinition { return d.nestedTypes }
func (d *TypeDefinition) SetNestedTypes(v []metadata.NestedTypeDefinition) {
	d.nestedTypes = v
}
func (d *TypeDefinition) Properties() []metadata.PropertyDefinition     { return d.properties }
func (d *TypeDefinition) SetProperties(v []metadata.PropertyDefinition) { d.properties = v }
func (d *TypeDefinition) SecurityAttributes() []metadata.SecurityAttribute {
	return d.securityAttributes
}
func (d *TypeDefinition) SetSecurityAttributes(v []metadata.SecurityAttribute) {
	d.securityAttributes = v
}
func (d *TypeDefinition) ExplicitImplementationOverrides() []metadata.MethodImplementation {
	return d.explicitImplementationOverrides
}
func (d *TypeDefinition) SetExplicitImplementationOverrides(v []metadata.MethodImplementation) {
	d.explicitImplementationOverrides = v
}

func (d *TypeDefinition) AddField(v metadata.FieldDefinition)           { d.fields = append(d.fields, v) }
func (d *TypeDefinition) AddMethod(v metadata.MethodDefinition)         { d.methods = append(d.methods, v) }
func (d *TypeDefinition) AddNestedType(v metadata.NestedTypeDefinition) { d.nestedTypes = append(d.nestedTypes, v) }
func (d *TypeDefinition) AddProperty(v metadata.PropertyDefinition) {
	d.properties = append(d.properties, v)
}

// PrivateHelperMembers returns the owned helper member list. A copied
// definition takes the list over from its source on first access.
func (d *TypeDefinition) PrivateHelperMembers() []metadata.TypeDefinitionMember {
	if !d.helpersReady {
		d.helpersReady = true
		if d.helperSource != nil {
			d.privateHelperMembers = slices.Clone(HelperMembersOf(d.helperSource))
		}
		d.helperSource = nil
	}
	return d.privateHelperMembers
}

// PeekPrivateHelperMembers returns the helper members without taking them
// over from the source.
func (d *TypeDefinition) PeekPrivateHelperMembers() []metadata.TypeDefinitionMember {
	if d.helpersReady {
		return d.privateHelperMembers
	}
	return HelperMembersOf(d.helperSource)
}

// HelperMembersOf returns the helper members of t. A mutable definition
// that has not read its helpers yet keeps them pending.
func HelperMembersOf(t metadata.TypeDefinition) []metadata.TypeDefinitionMember {
	if t == nil {
		return nil
	}
	if p, ok := t.(interface {
		PeekPrivateHelperMembers() []metadata.TypeDefinitionMember
	}); ok {
		return p.PeekPrivateHelperMembers()
	}
	return t.PrivateHelperMembers()
}

func (d *TypeDefinition) SetPrivateHelperMembers(v []metadata.TypeDefinitionMember) {
	d.privateHelperMembers = v
	d.helperSource = nil
	d.helpersReady = true
}

func (d *TypeDefinition) copyTypeDefinition(from metadata.NamedTypeDefinition, f metadata.InternFactory) {
	d.copyReference(from)
	d.internFactory = f
	d.name = from.Name()
	d.mangleName = from.MangleName()
	d.genericParameterCount = from.GenericParameterCount()
	d.flags = from.Flags()
	d.sizeOf = from.SizeOf()
	d.alignment = from.Alignment()
	d.baseClasses = slices.Clone(from.BaseClasses())
	d.interfaces = slices.Clone(from.Interfaces())
	d.genericParameters = slices.Clone(from.GenericParameters())
	d.events = slices.Clone(from.Events())
	d.fields = slices.Clone(from.Fields())
	d.methods = slices.Clone(from.Methods())
	d.nestedTypes = slices.Clone(from.NestedTypes())
	d.properties = slices.Clone(from.Properties())
	d.securityAttributes = slices.Clone(from.SecurityAttributes())
	d.explicitImplementationOverrides = slices.Clone(from.ExplicitImplementationOverrides())
	d.privateHelperMembers = nil
	d.helperSource = from
	d.helpersReady = false
}

// TypeDefinitionNode is implemented by the mutable named type definitions.
type TypeDefinitionNode interface {
	metadata.NamedTypeDefinition
	MutableTypeDefinition() *TypeDefinition
}

// NamespaceTypeDefinition is a top-level type.
type NamespaceTypeDefinition struct {
	TypeDefinition
	containingNamespace metadata.UnitNamespace
	isPublic            bool
}

// NewNamespaceTypeDefinition returns an empty type named name in ns. It
// does not add itself to the members of ns.
func NewNamespaceTypeDefinition(ns metadata.UnitNamespace, name string, f metadata.InternFactory) *NamespaceTypeDefinition {
	d := &NamespaceTypeDefinition{containingNamespace: ns}
	d.name = name
	d.internFactory = f
	d.helpersReady = true
	return d
}

func (d *NamespaceTypeDefinition) IsPublic() bool     { return d.isPublic }
func (d *NamespaceTypeDefinition) SetIsPublic(v bool) { d.isPublic = v }
func (d *NamespaceTypeDefinition) ContainingNamespace() metadata.UnitNamespace {
	return d.containingNamespace
}
func (d *NamespaceTypeDefinition) SetContainingNamespace(v metadata.UnitNamespace) {
	d.containingNamespace = v
}
func (d *NamespaceTypeDefinition) ContainingUnitNamespace() metadata.UnitNamespaceReference {
	if d.containingNamespace == nil {
		return nil
	}
	return d.containingNamespace
}
func (d *NamespaceTypeDefinition) InternedKey() uint                     { return typeKey(d.internFactory, d) }
func (d *NamespaceTypeDefinition) ResolvedType() metadata.TypeDefinition { return d }

func (d *NamespaceTypeDefinition) Copy(from metadata.NamespaceTypeDefinition, f metadata.InternFactory) {
	d.copyTypeDefinition(from, f)
	d.containingNamespace = from.ContainingNamespace()
	d.isPublic = from.IsPublic()
}

// NestedTypeDefinition is a type owned by another type.
type NestedTypeDefinition struct {
	TypeDefinition
	visibility               metadata.Visibility
	containingTypeDefinition metadata.TypeDefinition
}

// NewNestedTypeDefinition returns an empty type named name nested in
// container. It does not add itself to the nested types of container.
func NewNestedTypeDefinition(container metadata.TypeDefinition, name string, f metadata.InternFactory) *NestedTypeDefinition {
	d := &NestedTypeDefinition{containingTypeDefinition: container}
	d.name = name
	d.internFactory = f
	d.helpersReady = true
	return d
}

func (d *NestedTypeDefinition) Visibility() metadata.Visibility     { return d.visibility }
func (d *NestedTypeDefinition) SetVisibility(v metadata.Visibility) { d.visibility = v }
func (d *NestedTypeDefinition) ContainingTypeDefinition() metadata.TypeDefinition {
	return d.containingTypeDefinition
}
func (d *NestedTypeDefinition) SetContainingTypeDefinition(v metadata.TypeDefinition) {
	d.containingTypeDefinition = v
}
func (d *NestedTypeDefinition) ContainingType() metadata.TypeReference {
	if d.containingTypeDefinition == nil {
		return nil
	}
	return d.containingTypeDefinition
}
func (d *NestedTypeDefinition) InternedKey() uint                     { return typeKey(d.internFactory, d) }
func (d *NestedTypeDefinition) ResolvedType() metadata.TypeDefinition { return d }

func (d *NestedTypeDefinition) Copy(from metadata.NestedTypeDefinition, f metadata.InternFactory) {
	d.copyTypeDefinition(from, f)
	d.visibility = from.Visibility()
	d.containingTypeDefinition = from.ContainingTypeDefinition()
}
