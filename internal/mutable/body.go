package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

// MethodBody is the IL body of a method.
type MethodBody struct {
	methodDefinition              metadata.MethodDefinition
	localVariables                []metadata.LocalDefinition
	localsAreZeroed               bool
	maxStack                      uint16
	operations                    []metadata.Operation
	operationExceptionInformation []metadata.OperationExceptionInformation
	privateHelperTypes            []metadata.NamedTypeDefinition
}

// NewMethodBody returns an empty body of method with zeroed locals.
func NewMethodBody(method metadata.MethodDefinition) *MethodBody {
	return &MethodBody{methodDefinition: method, localsAreZeroed: true, maxStack: 8}
}

func (b *MethodBody) MethodDefinition() metadata.MethodDefinition     { return b.methodDefinition }
func (b *MethodBody) SetMethodDefinition(v metadata.MethodDefinition) { b.methodDefinition = v }
func (b *MethodBody) LocalVariables() []metadata.LocalDefinition      { return b.localVariables }
func (b *MethodBody) SetLocalVariables(v []metadata.LocalDefinition)  { b.localVariables = v }
func (b *MethodBody) LocalsAreZeroed() bool                           { return b.localsAreZeroed }
func (b *MethodBody) SetLocalsAreZeroed(v bool)                       { b.localsAreZeroed = v }
func (b *MethodBody) MaxStack() uint16                                { return b.maxStack }
func (b *MethodBody) SetMaxStack(v uint16)                            { b.maxStack = v }
func (b *MethodBody) Operations() []metadata.Operation                { return b.operations }
func (b *MethodBody) SetOperations(v []metadata.Operation)            { b.operations = v }
func (b *MethodBody) OperationExceptionInformation() []metadata.OperationExceptionInformation {
	return b.operationExceptionInformation
}
func (b *MethodBody) SetOperationExceptionInformation(v []metadata.OperationExceptionInformation) {
	b.operationExceptionInformation = v
}
func (b *MethodBody) PrivateHelperTypes() []metadata.NamedTypeDefinition {
	return b.privateHelperTypes
}
func (b *MethodBody) SetPrivateHelperTypes(v []metadata.NamedTypeDefinition) {
	b.privateHelperTypes = v
}

func (b *MethodBody) Copy(from metadata.MethodBody, _ metadata.InternFactory) {
	b.methodDefinition = from.MethodDefinition()
	b.localVariables = slices.Clone(from.LocalVariables())
	b.localsAreZeroed = from.LocalsAreZeroed()
	b.maxStack = from.MaxStack()
	b.operations = slices.Clone(from.Operations())
	b.operationExceptionInformation = slices.Clone(from.OperationExceptionInformation())
	b.privateHelperTypes = slices.Clone(from.PrivateHelperTypes())
}

// LocalDefinition is a local variable of a method body.
type LocalDefinition struct {
	methodDefinition metadata.MethodDefinition
	name             string
	localType        metadata.TypeReference
	customModifiers  []metadata.CustomModifier
	isConstant       bool
	isPinned         bool
	isReference      bool
	compileTimeValue metadata.MetadataConstant
	locations        []metadata.Location
}

// NewLocalDefinition returns a local of method named name.
func NewLocalDefinition(method metadata.MethodDefinition, name string, t metadata.TypeReference) *LocalDefinition {
	return &LocalDefinition{methodDefinition: method, name: name, localType: t}
}

func (l *LocalDefinition) MethodDefinition() metadata.MethodDefinition     { return l.methodDefinition }
func (l *LocalDefinition) SetMethodDefinition(v metadata.MethodDefinition) { l.methodDefinition = v }
func (l *LocalDefinition) Name() string                                    { return l.name }
func (l *LocalDefinition) SetName(v string)                                { l.name = v }
func (l *LocalDefinition) Type() metadata.TypeReference                    { return l.localType }
func (l *LocalDefinition) SetType(v metadata.TypeReference)                { l.localType = v }
func (l *LocalDefinition) CustomModifiers() []metadata.CustomModifier      { return l.customModifiers }
func (l *LocalDefinition) SetCustomModifiers(v []metadata.CustomModifier) {
	l.customModifiers = v
}
func (l *LocalDefinition) IsConstant() bool                            { return l.isConstant }
func (l *LocalDefinition) SetIsConstant(v bool)                        { l.isConstant = v }
func (l *LocalDefinition) IsPinned() bool                              { return l.isPinned }
func (l *LocalDefinition) SetIsPinned(v bool)                          { l.isPinned = v }
func (l *LocalDefinition) IsReference() bool                           { return l.isReference }
func (l *LocalDefinition) SetIsReference(v bool)                       { l.isReference = v }
func (l *LocalDefinition) CompileTimeValue() metadata.MetadataConstant { return l.compileTimeValue }
func (l *LocalDefinition) SetCompileTimeValue(v metadata.MetadataConstant) {
	l.compileTimeValue = v
}
func (l *LocalDefinition) Locations() []metadata.Location     { return l.locations }
func (l *LocalDefinition) SetLocations(v []metadata.Location) { l.locations = v }

func (l *LocalDefinition) Copy(from metadata.LocalDefinition, _ metadata.InternFactory) {
	l.methodDefinition = from.MethodDefinition()
	l.name = from.Name()
	l.localType = from.Type()
	l.customModifiers = slices.Clone(from.CustomModifiers())
	l.isConstant = from.IsConstant()
	l.isPinned = from.IsPinned()
	l.isReference = from.IsReference()
	l.compileTimeValue = from.CompileTimeValue()
	l.locations = slices.Clone(from.Locations())
}

// Operation is a single IL instruction.
type Operation struct {
	operationCode metadata.OperationCode
	offset        uint32
	location      metadata.Location
	value         any
}

// NewOperation returns the instruction op at offset with operand value.
func NewOperation(op metadata.OperationCode, offset uint32, value any) *Operation {
	return &Operation{operationCode: op, offset: offset, value: value}
}

func (o *Operation) OperationCode() metadata.OperationCode     { return o.operationCode }
func (o *Operation) SetOperationCode(v metadata.OperationCode) { o.operationCode = v }
func (o *Operation) Offset() uint32                            { return o.offset }
func (o *Operation) SetOffset(v uint32)                        { o.offset = v }
func (o *Operation) Location() metadata.Location               { return o.location }
func (o *Operation) SetLocation(v metadata.Location)           { o.location = v }
func (o *Operation) Value() any                                { return o.value }
func (o *Operation) SetValue(v any)                            { o.value = v }

// Copy takes over the operand as is; switch target tables are cloned.
func (o *Operation) Copy(from metadata.Operation, _ metadata.InternFactory) {
	o.operationCode = from.OperationCode()
	o.offset = from.Offset()
	o.location = from.Location()
	o.value = from.Value()
	if targets, ok := o.value.([]uint32); ok {
		o.value = slices.Clone(targets)
	}
}

// OperationExceptionInformation is a protected region and its handler.
type OperationExceptionInformation struct {
	handlerKind               metadata.HandlerKind
	exceptionType             metadata.TypeReference
	tryStartOffset            uint32
	tryEndOffset              uint32
	filterDecisionStartOffset uint32
	handlerStartOffset        uint32
	handlerEndOffset          uint32
}

func (e *OperationExceptionInformation) HandlerKind() metadata.HandlerKind     { return e.handlerKind }
func (e *OperationExceptionInformation) SetHandlerKind(v metadata.HandlerKind) { e.handlerKind = v }
func (e *OperationExceptionInformation) ExceptionType() metadata.TypeReference {
	return e.exceptionType
}
func (e *OperationExceptionInformation) SetExceptionType(v metadata.TypeReference) {
	e.exceptionType = v
}
func (e *OperationExceptionInformation) TryStartOffset() uint32     { return e.tryStartOffset }
func (e *OperationExceptionInformation) SetTryStartOffset(v uint32) { e.tryStartOffset = v }
func (e *OperationExceptionInformation) TryEndOffset() uint32       { return e.tryEndOffset }
func (e *OperationExceptionInformation) SetTryEndOffset(v uint32)   { e.tryEndOffset = v }
func (e *OperationExceptionInformation) FilterDecisionStartOffset() uint32 {
	return e.filterDecisionStartOffset
}
func (e *OperationExceptionInformation) SetFilterDecisionStartOffset(v uint32) {
	e.filterDecisionStartOffset = v
}
func (e *OperationExceptionInformation) HandlerStartOffset() uint32     { return e.handlerStartOffset }
func (e *OperationExceptionInformation) SetHandlerStartOffset(v uint32) { e.handlerStartOffset = v }
func (e *OperationExceptionInformation) HandlerEndOffset() uint32       { return e.handlerEndOffset }
func (e *OperationExceptionInformation) SetHandlerEndOffset(v uint32)   { e.handlerEndOffset = v }

func (e *OperationExceptionInformation) Copy(from metadata.OperationExceptionInformation, _ metadata.InternFactory) {
	e.handlerKind = from.HandlerKind()
	e.exceptionType = from.ExceptionType()
	e.tryStartOffset = from.TryStartOffset()
	e.tryEndOffset = from.TryEndOffset()
	e.filterDecisionStartOffset = from.FilterDecisionStartOffset()
	e.handlerStartOffset = from.HandlerStartOffset()
	e.handlerEndOffset = from.HandlerEndOffset()
}
