package metadata

// Reference is the part shared by every node that can carry custom
// attributes and source locations.
type Reference interface {
	Attributes() []CustomAttribute
	Locations() []Location
}

// CustomAttribute is an application of an attribute type, described by
// its constructor and arguments.
type CustomAttribute interface {
	Constructor() MethodReference
	Arguments() []MetadataExpression
	NamedArguments() []MetadataNamedArgument
	Type() TypeReference
}

// CustomModifier is a modreq or modopt attached to a type in a signature.
type CustomModifier interface {
	IsOptional() bool
	Modifier() TypeReference
}

// SecurityAttribute is a declarative security attribute set.
type SecurityAttribute interface {
	Action() SecurityAction
	Attributes() []CustomAttribute
}

// MarshallingInformation describes how a field, parameter or return value
// is marshalled to native code.
type MarshallingInformation interface {
	UnmanagedType() UnmanagedType
	ElementType() UnmanagedType
	CustomMarshaller() TypeReference
	CustomMarshallerRuntimeArgument() string
	NumberOfElements() uint32
	// ParamIndex is the index of the parameter holding the element count,
	// or -1.
	ParamIndex() int
	SafeArrayElementUserDefinedSubtype() TypeReference
}

// MetadataExpression is a compile time value used in custom attributes
// and constants.
type MetadataExpression interface {
	Type() TypeReference
	Locations() []Location
}

// MetadataConstant is a literal compile time value.
type MetadataConstant interface {
	MetadataExpression
	Value() any
}

// MetadataCreateArray is an array literal in a custom attribute.
type MetadataCreateArray interface {
	MetadataExpression
	ElementType() TypeReference
	Rank() uint32
	Sizes() []uint64
	LowerBounds() []int64
	Initializers() []MetadataExpression
}

// MetadataNamedArgument assigns a field or property of an attribute.
type MetadataNamedArgument interface {
	MetadataExpression
	ArgumentName() string
	ArgumentValue() MetadataExpression
	IsField() bool
}

// MetadataTypeOf is a typeof(T) expression in a custom attribute.
type MetadataTypeOf interface {
	MetadataExpression
	TypeToGet() TypeReference
}

// PlatformInvokeInformation describes the native entry point of a
// pinvoke method.
type PlatformInvokeInformation interface {
	ImportModule() ModuleReference
	ImportName() string
	NoMangle() bool
	SupportsLastError() bool
	PInvokeCallingConvention() CallingConvention
}

// ResourceReference names a manifest resource.
type ResourceReference interface {
	Name() string
	Attributes() []CustomAttribute
	DefiningAssembly() AssemblyReference
	IsPublic() bool
}

// Win32Resource is an unmanaged resource embedded in a module.
type Win32Resource interface {
	TypeName() string
	TypeID() int
	Name() string
	ID() int
	LanguageID() uint32
	CodePage() uint32
	Data() []byte
}

// FileReference names a file that is part of a multi-file assembly.
type FileReference interface {
	FileName() string
	HashValue() []byte
	HasMetadata() bool
	ContainingAssembly() AssemblyReference
}
