package mutable

import "github.com/il2js/metamodel/internal/metadata"

var (
	_ metadata.CustomAttribute           = (*CustomAttribute)(nil)
	_ metadata.CustomModifier            = (*CustomModifier)(nil)
	_ metadata.SecurityAttribute         = (*SecurityAttribute)(nil)
	_ metadata.MarshallingInformation    = (*MarshallingInformation)(nil)
	_ metadata.PlatformInvokeInformation = (*PlatformInvokeInformation)(nil)
	_ metadata.ResourceReference         = (*ResourceReference)(nil)
	_ metadata.Win32Resource             = (*Win32Resource)(nil)
	_ metadata.FileReference             = (*FileReference)(nil)
	_ metadata.MetadataConstant          = (*MetadataConstant)(nil)
	_ metadata.MetadataCreateArray       = (*MetadataCreateArray)(nil)
	_ metadata.MetadataNamedArgument     = (*MetadataNamedArgument)(nil)
	_ metadata.MetadataTypeOf            = (*MetadataTypeOf)(nil)

	_ metadata.ModuleReference   = (*ModuleReference)(nil)
	_ metadata.AssemblyReference = (*AssemblyReference)(nil)
	_ metadata.Module            = (*Module)(nil)
	_ metadata.Assembly          = (*Assembly)(nil)

	_ metadata.RootUnitNamespace            = (*RootUnitNamespace)(nil)
	_ metadata.NestedUnitNamespace          = (*NestedUnitNamespace)(nil)
	_ metadata.UnitNamespaceReference       = (*RootUnitNamespaceReference)(nil)
	_ metadata.NestedUnitNamespaceReference = (*NestedUnitNamespaceReference)(nil)
	_ metadata.NamespaceAliasForType        = (*NamespaceAliasForType)(nil)
	_ metadata.NestedAliasForType           = (*NestedAliasForType)(nil)

	_ metadata.NamespaceTypeReference          = (*NamespaceTypeReference)(nil)
	_ metadata.NestedTypeReference             = (*NestedTypeReference)(nil)
	_ metadata.SpecializedNestedTypeReference  = (*SpecializedNestedTypeReference)(nil)
	_ metadata.GenericTypeInstanceReference    = (*GenericTypeInstanceReference)(nil)
	_ metadata.GenericTypeParameterReference   = (*GenericTypeParameterReference)(nil)
	_ metadata.GenericMethodParameterReference = (*GenericMethodParameterReference)(nil)
	_ metadata.ArrayTypeReference              = (*ArrayTypeReference)(nil)
	_ metadata.PointerTypeReference            = (*PointerTypeReference)(nil)
	_ metadata.ManagedPointerTypeReference     = (*ManagedPointerTypeReference)(nil)
	_ metadata.FunctionPointerTypeReference    = (*FunctionPointerTypeReference)(nil)
	_ metadata.ModifiedTypeReference           = (*ModifiedTypeReference)(nil)

	_ TypeDefinitionNode               = (*NamespaceTypeDefinition)(nil)
	_ TypeDefinitionNode               = (*NestedTypeDefinition)(nil)
	_ metadata.NamespaceTypeDefinition = (*NamespaceTypeDefinition)(nil)
	_ metadata.NestedTypeDefinition    = (*NestedTypeDefinition)(nil)
	_ metadata.GenericTypeParameter    = (*GenericTypeParameter)(nil)
	_ metadata.GenericMethodParameter  = (*GenericMethodParameter)(nil)

	_ metadata.FieldReference                 = (*FieldReference)(nil)
	_ metadata.SpecializedFieldReference      = (*SpecializedFieldReference)(nil)
	_ metadata.FieldDefinition                = (*FieldDefinition)(nil)
	_ metadata.GlobalFieldDefinition          = (*GlobalFieldDefinition)(nil)
	_ metadata.MethodReference                = (*MethodReference)(nil)
	_ metadata.SpecializedMethodReference     = (*SpecializedMethodReference)(nil)
	_ metadata.GenericMethodInstanceReference = (*GenericMethodInstanceReference)(nil)
	_ metadata.MethodDefinition               = (*MethodDefinition)(nil)
	_ metadata.GlobalMethodDefinition         = (*GlobalMethodDefinition)(nil)
	_ metadata.ParameterTypeInformation       = (*ParameterTypeInformation)(nil)
	_ metadata.ParameterDefinition            = (*ParameterDefinition)(nil)
	_ metadata.MethodImplementation           = (*MethodImplementation)(nil)
	_ metadata.PropertyDefinition             = (*PropertyDefinition)(nil)
	_ metadata.EventDefinition                = (*EventDefinition)(nil)

	_ metadata.MethodBody                    = (*MethodBody)(nil)
	_ metadata.LocalDefinition               = (*LocalDefinition)(nil)
	_ metadata.Operation                     = (*Operation)(nil)
	_ metadata.OperationExceptionInformation = (*OperationExceptionInformation)(nil)
)
