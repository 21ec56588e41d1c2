package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

// PropertyDefinition is a property owned by a type.
type PropertyDefinition struct {
	typeDefinitionMember
	callingConvention          metadata.CallingConvention
	returnValueCustomModifiers []metadata.CustomModifier
	returnValueIsByRef         bool
	propertyType               metadata.TypeReference
	flags                      metadata.PropertyFlags
	accessors                  []metadata.MethodReference
	getter                     metadata.MethodReference
	setter                     metadata.MethodReference
	parameters                 []metadata.ParameterDefinition
	defaultValue               metadata.MetadataConstant
}

// NewPropertyDefinition returns a property named name of type t in
// container. It does not add itself to the properties of container.
func NewPropertyDefinition(container metadata.TypeDefinition, name string, t metadata.TypeReference) *PropertyDefinition {
	p := &PropertyDefinition{propertyType: t}
	p.name = name
	p.containingTypeDefinition = container
	return p
}

func (p *PropertyDefinition) CallingConvention() metadata.CallingConvention { return p.callingConvention }
func (p *PropertyDefinition) SetCallingConvention(v metadata.CallingConvention) {
	p.callingConvention = v
}
func (p *PropertyDefinition) ReturnValueCustomModifiers() []metadata.CustomModifier {
	return p.returnValueCustomModifiers
}
func (p *PropertyDefinition) SetReturnValueCustomModifiers(v []metadata.CustomModifier) {
	p.returnValueCustomModifiers = v
}
func (p *PropertyDefinition) ReturnValueIsByRef() bool                  { return p.returnValueIsByRef }
func (p *PropertyDefinition) SetReturnValueIsByRef(v bool)              { p.returnValueIsByRef = v }
func (p *PropertyDefinition) Type() metadata.TypeReference              { return p.propertyType }
func (p *PropertyDefinition) SetType(v metadata.TypeReference)          { p.propertyType = v }
func (p *PropertyDefinition) Flags() metadata.PropertyFlags             { return p.flags }
func (p *PropertyDefinition) SetFlags(v metadata.PropertyFlags)         { p.flags = v }
func (p *PropertyDefinition) Accessors() []metadata.MethodReference     { return p.accessors }
func (p *PropertyDefinition) SetAccessors(v []metadata.MethodReference) { p.accessors = v }
func (p *PropertyDefinition) Getter() metadata.MethodReference          { return p.getter }
func (p *PropertyDefinition) SetGetter(v metadata.MethodReference)      { p.getter = v }
func (p *PropertyDefinition) Setter() metadata.MethodReference          { return p.setter }
func (p *PropertyDefinition) SetSetter(v metadata.MethodReference)      { p.setter = v }
func (p *PropertyDefinition) ParameterDefinitions() []metadata.ParameterDefinition {
	return p.parameters
}
func (p *PropertyDefinition) SetParameterDefinitions(v []metadata.ParameterDefinition) {
	p.parameters = v
}
func (p *PropertyDefinition) Parameters() []metadata.ParameterTypeInformation {
	return parameterInfos(p.parameters)
}
func (p *PropertyDefinition) DefaultValue() metadata.MetadataConstant     { return p.defaultValue }
func (p *PropertyDefinition) SetDefaultValue(v metadata.MetadataConstant) { p.defaultValue = v }

func (p *PropertyDefinition) Copy(from metadata.PropertyDefinition, _ metadata.InternFactory) {
	p.copyMember(from)
	p.callingConvention = from.CallingConvention()
	p.returnValueCustomModifiers = slices.Clone(from.ReturnValueCustomModifiers())
	p.returnValueIsByRef = from.ReturnValueIsByRef()
	p.propertyType = from.Type()
	p.flags = from.Flags()
	p.accessors = slices.Clone(from.Accessors())
	p.getter = from.Getter()
	p.setter = from.Setter()
	p.parameters = slices.Clone(from.ParameterDefinitions())
	p.defaultValue = from.DefaultValue()
}

// EventDefinition is an event owned by a type.
type EventDefinition struct {
	typeDefinitionMember
	flags     metadata.EventFlags
	accessors []metadata.MethodReference
	adder     metadata.MethodReference
	remover   metadata.MethodReference
	caller    metadata.MethodReference
	eventType metadata.TypeReference
}

func (e *EventDefinition) EventFlags() metadata.EventFlags           { return e.flags }
func (e *EventDefinition) SetEventFlags(v metadata.EventFlags)       { e.flags = v }
func (e *EventDefinition) Accessors() []metadata.MethodReference     { return e.accessors }
func (e *EventDefinition) SetAccessors(v []metadata.MethodReference) { e.accessors = v }
func (e *EventDefinition) Adder() metadata.MethodReference           { return e.adder }
func (e *EventDefinition) SetAdder(v metadata.MethodReference)       { e.adder = v }
func (e *EventDefinition) Remover() metadata.MethodReference         { return e.remover }
func (e *EventDefinition) SetRemover(v metadata.MethodReference)     { e.remover = v }
func (e *EventDefinition) Caller() metadata.MethodReference          { return e.caller }
func (e *EventDefinition) SetCaller(v metadata.MethodReference)      { e.caller = v }
func (e *EventDefinition) Type() metadata.TypeReference              { return e.eventType }
func (e *EventDefinition) SetType(v metadata.TypeReference)          { e.eventType = v }

func (e *EventDefinition) Copy(from metadata.EventDefinition, _ metadata.InternFactory) {
	e.copyMember(from)
	e.flags = from.EventFlags()
	e.accessors = slices.Clone(from.Accessors())
	e.adder = from.Adder()
	e.remover = from.Remover()
	e.caller = from.Caller()
	e.eventType = from.Type()
}
