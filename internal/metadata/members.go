package metadata

// TypeDefinitionMember is anything a type definition owns.
type TypeDefinitionMember interface {
	Reference
	Name() string
	Visibility() Visibility
	ContainingTypeDefinition() TypeDefinition
}

// Signature is the shape shared by methods, properties and function
// pointers.
type Signature interface {
	CallingConvention() CallingConvention
	Parameters() []ParameterTypeInformation
	ReturnValueCustomModifiers() []CustomModifier
	ReturnValueIsByRef() bool
	Type() TypeReference
}

// ParameterTypeInformation is a parameter as seen from a signature.
type ParameterTypeInformation interface {
	ContainingSignature() Signature
	Index() int
	Type() TypeReference
	CustomModifiers() []CustomModifier
	IsByReference() bool
}

// ParameterDefinition is a parameter of a method or property definition.
type ParameterDefinition interface {
	ParameterTypeInformation
	Reference
	Name() string
	ParameterFlags() ParameterFlags
	DefaultValue() MetadataConstant
	MarshallingInformation() MarshallingInformation
	ParamArrayElementType() TypeReference
}

// FieldReference is a non-owning pointer to a field.
type FieldReference interface {
	Reference
	ContainingType() TypeReference
	Name() string
	Type() TypeReference
	CustomModifiers() []CustomModifier
	InternedKey() uint
	ResolvedField() FieldDefinition
}

// SpecializedFieldReference refers to a field of a generic type instance.
type SpecializedFieldReference interface {
	FieldReference
	UnspecializedVersion() FieldReference
}

// FieldDefinition is a field owned by a type.
type FieldDefinition interface {
	TypeDefinitionMember
	FieldReference
	Flags() FieldFlags
	CompileTimeValue() MetadataConstant
	MarshallingInformation() MarshallingInformation
	Offset() uint32
	SequenceNumber() int
	BitLength() uint32
}

// GlobalFieldDefinition is a field owned by a namespace.
type GlobalFieldDefinition interface {
	FieldDefinition
	NamespaceMember
}

// MethodReference is a non-owning pointer to a method.
type MethodReference interface {
	Reference
	Signature
	ContainingType() TypeReference
	Name() string
	GenericParameterCount() int
	ExtraParameters() []ParameterTypeInformation
	InternedKey() uint
	ResolvedMethod() MethodDefinition
}

// SpecializedMethodReference refers to a method of a generic type
// instance.
type SpecializedMethodReference interface {
	MethodReference
	UnspecializedVersion() MethodReference
}

// GenericMethodInstanceReference is a generic method applied to
// arguments.
type GenericMethodInstanceReference interface {
	MethodReference
	GenericMethod() MethodReference
	GenericArguments() []TypeReference
}

// MethodDefinition is a method owned by a type.
type MethodDefinition interface {
	TypeDefinitionMember
	MethodReference
	Flags() MethodFlags
	// Body is nil for abstract and external methods.
	Body() MethodBody
	GenericParameters() []GenericMethodParameter
	ParameterDefinitions() []ParameterDefinition
	ReturnValueAttributes() []CustomAttribute
	ReturnValueMarshallingInformation() MarshallingInformation
	PlatformInvokeData() PlatformInvokeInformation
	SecurityAttributes() []SecurityAttribute
	IsConstructor() bool
	IsStaticConstructor() bool
}

// GlobalMethodDefinition is a method owned by a namespace.
type GlobalMethodDefinition interface {
	MethodDefinition
	NamespaceMember
}

// MethodImplementation records that a type implements a method of an
// interface or base class with another method.
type MethodImplementation interface {
	ContainingType() TypeDefinition
	ImplementedMethod() MethodReference
	ImplementingMethod() MethodReference
}

// PropertyDefinition is a property owned by a type.
type PropertyDefinition interface {
	TypeDefinitionMember
	Signature
	Flags() PropertyFlags
	Accessors() []MethodReference
	Getter() MethodReference
	Setter() MethodReference
	ParameterDefinitions() []ParameterDefinition
	DefaultValue() MetadataConstant
}

// EventDefinition is an event owned by a type.
type EventDefinition interface {
	TypeDefinitionMember
	EventFlags() EventFlags
	Accessors() []MethodReference
	Adder() MethodReference
	Remover() MethodReference
	Caller() MethodReference
	Type() TypeReference
}
