package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

// FieldReference refers to a field by containing type and name.
type FieldReference struct {
	reference
	internFactory   metadata.InternFactory
	containingType  metadata.TypeReference
	name            string
	fieldType       metadata.TypeReference
	customModifiers []metadata.CustomModifier
}

// NewFieldReference returns a reference to container::name.
func NewFieldReference(container metadata.TypeReference, name string, fieldType metadata.TypeReference, f metadata.InternFactory) *FieldReference {
	return &FieldReference{internFactory: f, containingType: container, name: name, fieldType: fieldType}
}

func (r *FieldReference) ContainingType() metadata.TypeReference     { return r.containingType }
func (r *FieldReference) SetContainingType(v metadata.TypeReference) { r.containingType = v }
func (r *FieldReference) Name() string                               { return r.name }
func (r *FieldReference) SetName(v string)                           { r.name = v }
func (r *FieldReference) Type() metadata.TypeReference               { return r.fieldType }
func (r *FieldReference) SetType(v metadata.TypeReference)           { r.fieldType = v }
func (r *FieldReference) CustomModifiers() []metadata.CustomModifier { return r.customModifiers }
func (r *FieldReference) SetCustomModifiers(v []metadata.CustomModifier) {
	r.customModifiers = v
}
func (r *FieldReference) InternFactory() metadata.InternFactory     { return r.internFactory }
func (r *FieldReference) SetInternFactory(f metadata.InternFactory) { r.internFactory = f }
func (r *FieldReference) InternedKey() uint                         { return fieldKey(r.internFactory, r) }

// ResolvedField finds the first field with the same name in the resolved
// containing type.
func (r *FieldReference) ResolvedField() metadata.FieldDefinition {
	if r.containingType == nil {
		return DummyField
	}
	return resolveField(r.containingType.ResolvedType(), r.name)
}

func (r *FieldReference) Copy(from metadata.FieldReference, f metadata.InternFactory) {
	r.copyReference(from)
	r.internFactory = f
	r.containingType = from.ContainingType()
	r.name = from.Name()
	r.fieldType = from.Type()
	r.customModifiers = slices.Clone(from.CustomModifiers())
}

// SpecializedFieldReference refers to a field of a generic type instance.
type SpecializedFieldReference struct {
	FieldReference
	unspecializedVersion metadata.FieldReference
}

// NewSpecializedFieldReference returns the field unspecialized seen as a
// member of the instance container. fieldType is the field type with the
// instance arguments substituted.
func NewSpecializedFieldReference(container metadata.TypeReference, unspecialized metadata.FieldReference, fieldType metadata.TypeReference, f metadata.InternFactory) *SpecializedFieldReference {
	r := &SpecializedFieldReference{unspecializedVersion: unspecialized}
	r.internFactory = f
	r.containingType = container
	r.name = unspecialized.Name()
	r.fieldType = fieldType
	return r
}

func (r *SpecializedFieldReference) UnspecializedVersion() metadata.FieldReference {
	return r.unspecializedVersion
}
func (r *SpecializedFieldReference) SetUnspecializedVersion(v metadata.FieldReference) {
	r.unspecializedVersion = v
}
func (r *SpecializedFieldReference) InternedKey() uint { return fieldKey(r.internFactory, r) }

func (r *SpecializedFieldReference) ResolvedField() metadata.FieldDefinition {
	if r.unspecializedVersion == nil {
		return DummyField
	}
	return r.unspecializedVersion.ResolvedField()
}

func (r *SpecializedFieldReference) Copy(from metadata.SpecializedFieldReference, f metadata.InternFactory) {
	r.FieldReference.Copy(from, f)
	r.unspecializedVersion = from.UnspecializedVersion()
}

// FieldDefinition is a field owned by a type.
type FieldDefinition struct {
	typeDefinitionMember
	internFactory          metadata.InternFactory
	fieldType              metadata.TypeReference
	customModifiers        []metadata.CustomModifier
	flags                  metadata.FieldFlags
	compileTimeValue       metadata.MetadataConstant
	marshallingInformation metadata.MarshallingInformation
	offset                 uint32
	sequenceNumber         int
	bitLength              uint32
}

// NewFieldDefinition returns a field named name of the given type in
// container. It does not add itself to the fields of container.
func NewFieldDefinition(container metadata.TypeDefinition, name string, fieldType metadata.TypeReference, f metadata.InternFactory) *FieldDefinition {
	d := &FieldDefinition{internFactory: f, fieldType: fieldType}
	d.name = name
	d.containingTypeDefinition = container
	return d
}

func (d *FieldDefinition) Type() metadata.TypeReference               { return d.fieldType }
func (d *FieldDefinition) SetType(v metadata.TypeReference)           { d.fieldType = v }
func (d *FieldDefinition) CustomModifiers() []metadata.CustomModifier { return d.customModifiers }
func (d *FieldDefinition) SetCustomModifiers(v []metadata.CustomModifier) {
	d.customModifiers = v
}
func (d *FieldDefinition) Flags() metadata.FieldFlags                  { return d.flags }
func (d *FieldDefinition) SetFlags(v metadata.FieldFlags)              { d.flags = v }
func (d *FieldDefinition) CompileTimeValue() metadata.MetadataConstant { return d.compileTimeValue }
func (d *FieldDefinition) SetCompileTimeValue(v metadata.MetadataConstant) {
	d.compileTimeValue = v
}
func (d *FieldDefinition) MarshallingInformation() metadata.MarshallingInformation {
	return d.marshallingInformation
}
func (d *FieldDefinition) SetMarshallingInformation(v metadata.MarshallingInformation) {
	d.marshallingInformation = v
}
func (d *FieldDefinition) Offset() uint32                            { return d.offset }
func (d *FieldDefinition) SetOffset(v uint32)                        { d.offset = v }
func (d *FieldDefinition) SequenceNumber() int                       { return d.sequenceNumber }
func (d *FieldDefinition) SetSequenceNumber(v int)                   { d.sequenceNumber = v }
func (d *FieldDefinition) BitLength() uint32                         { return d.bitLength }
func (d *FieldDefinition) SetBitLength(v uint32)                     { d.bitLength = v }
func (d *FieldDefinition) InternFactory() metadata.InternFactory     { return d.internFactory }
func (d *FieldDefinition) SetInternFactory(f metadata.InternFactory) { d.internFactory = f }
func (d *FieldDefinition) InternedKey() uint                         { return fieldKey(d.internFactory, d) }
func (d *FieldDefinition) ResolvedField() metadata.FieldDefinition   { return d }

func (d *FieldDefinition) Copy(from metadata.FieldDefinition, f metadata.InternFactory) {
	d.copyMember(from)
	d.internFactory = f
	d.fieldType = from.Type()
	d.customModifiers = slices.Clone(from.CustomModifiers())
	d.flags = from.Flags()
	d.compileTimeValue = from.CompileTimeValue()
	d.marshallingInformation = from.MarshallingInformation()
	d.offset = from.Offset()
	d.sequenceNumber = from.SequenceNumber()
	d.bitLength = from.BitLength()
}

// GlobalFieldDefinition is a field owned by a namespace. Its containing
// type is the <Module> type of the unit.
type GlobalFieldDefinition struct {
	FieldDefinition
	containingNamespace metadata.UnitNamespace
}

func (d *GlobalFieldDefinition) ContainingNamespace() metadata.UnitNamespace {
	return d.containingNamespace
}
func (d *GlobalFieldDefinition) SetContainingNamespace(v metadata.UnitNamespace) {
	d.containingNamespace = v
}
func (d *GlobalFieldDefinition) InternedKey() uint                       { return fieldKey(d.internFactory, d) }
func (d *GlobalFieldDefinition) ResolvedField() metadata.FieldDefinition { return d }

func (d *GlobalFieldDefinition) Copy(from metadata.GlobalFieldDefinition, f metadata.InternFactory) {
	d.FieldDefinition.Copy(from, f)
	d.containingNamespace = from.ContainingNamespace()
}
