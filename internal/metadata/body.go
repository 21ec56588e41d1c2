package metadata

// MethodBody is the IL body of a method definition.
type MethodBody interface {
	MethodDefinition() MethodDefinition
	LocalVariables() []LocalDefinition
	LocalsAreZeroed() bool
	MaxStack() uint16
	Operations() []Operation
	OperationExceptionInformation() []OperationExceptionInformation
	// PrivateHelperTypes are types synthesized for the body, for example
	// closure classes. They belong to the module's AllTypes as well.
	PrivateHelperTypes() []NamedTypeDefinition
}

// LocalDefinition is a local variable of a method body.
type LocalDefinition interface {
	MethodDefinition() MethodDefinition
	Name() string
	Type() TypeReference
	CustomModifiers() []CustomModifier
	IsConstant() bool
	IsPinned() bool
	IsReference() bool
	CompileTimeValue() MetadataConstant
	Locations() []Location
}

// Operation is a single IL instruction. Value is the operand: a
// TypeReference, FieldReference, MethodReference, ParameterDefinition,
// LocalDefinition, a numeric or string literal, a branch target offset,
// []uint32 switch targets, or nil.
type Operation interface {
	OperationCode() OperationCode
	Offset() uint32
	Location() Location
	Value() any
}

// OperationExceptionInformation is a protected region and its handler.
type OperationExceptionInformation interface {
	HandlerKind() HandlerKind
	ExceptionType() TypeReference
	TryStartOffset() uint32
	TryEndOffset() uint32
	FilterDecisionStartOffset() uint32
	HandlerStartOffset() uint32
	HandlerEndOffset() uint32
}
