package metadata

// TypeFlags are the boolean attributes of a type definition.
type TypeFlags struct {
	IsAbstract             bool
	IsSealed               bool
	IsInterface            bool
	IsStatic               bool
	IsValueType            bool
	IsEnum                 bool
	IsDelegate             bool
	IsRuntimeSpecial       bool
	IsSpecialName          bool
	IsSerializable         bool
	IsBeforeFieldInit      bool
	IsComObject            bool
	IsForeignObject        bool
	HasDeclarativeSecurity bool
	Layout                 LayoutKind
}

// FieldFlags are the boolean attributes of a field definition.
type FieldFlags struct {
	IsStatic               bool
	IsReadOnly             bool
	IsCompileTimeConstant  bool
	IsBitField             bool
	IsMapped               bool
	IsMarshalledExplicitly bool
	IsNotSerialized        bool
	IsRuntimeSpecial       bool
	IsSpecialName          bool
}

// MethodFlags are the boolean attributes of a method definition.
type MethodFlags struct {
	IsAbstract                        bool
	IsVirtual                         bool
	IsStatic                          bool
	IsSealed                          bool
	IsNewSlot                         bool
	IsHiddenBySignature               bool
	IsAccessCheckedOnOverride         bool
	IsExternal                        bool
	IsPlatformInvoke                  bool
	IsRuntimeSpecial                  bool
	IsSpecialName                     bool
	IsRuntimeImplemented              bool
	IsUnmanaged                       bool
	IsSynchronized                    bool
	IsNeverInlined                    bool
	IsAggressivelyInlined             bool
	PreserveSignature                 bool
	RequiresSecurityObject            bool
	HasDeclarativeSecurity            bool
	ReturnValueIsMarshalledExplicitly bool
}

// ParameterFlags are the boolean attributes of a parameter definition.
type ParameterFlags struct {
	IsIn                   bool
	IsOut                  bool
	IsOptional             bool
	HasDefaultValue        bool
	IsMarshalledExplicitly bool
	IsParameterArray       bool
}

// GenericParameterFlags are the constraint flags and variance of a generic
// parameter.
type GenericParameterFlags struct {
	MustBeReferenceType        bool
	MustBeValueType            bool
	MustHaveDefaultConstructor bool
	Variance                   Variance
}

// PropertyFlags are the boolean attributes of a property definition.
type PropertyFlags struct {
	HasDefaultValue  bool
	IsRuntimeSpecial bool
	IsSpecialName    bool
}

// EventFlags are the boolean attributes of an event definition.
type EventFlags struct {
	IsRuntimeSpecial bool
	IsSpecialName    bool
}
