package mutable

import (
	"slices"

	"github.com/il2js/metamodel/internal/metadata"
)

// CustomAttribute is an application of an attribute type.
type CustomAttribute struct {
	constructor    metadata.MethodReference
	arguments      []metadata.MetadataExpression
	namedArguments []metadata.MetadataNamedArgument
	attributeType  metadata.TypeReference
}

func (a *CustomAttribute) Constructor() metadata.MethodReference     { return a.constructor }
func (a *CustomAttribute) SetConstructor(v metadata.MethodReference) { a.constructor = v }
func (a *CustomAttribute) Arguments() []metadata.MetadataExpression  { return a.arguments }
func (a *CustomAttribute) SetArguments(v []metadata.MetadataExpression) {
	a.arguments = v
}
func (a *CustomAttribute) NamedArguments() []metadata.MetadataNamedArgument {
	return a.namedArguments
}
func (a *CustomAttribute) SetNamedArguments(v []metadata.MetadataNamedArgument) {
	a.namedArguments = v
}

// Type is the attribute type. When unset it is the type declaring the
// constructor.
func (a *CustomAttribute) Type() metadata.TypeReference {
	if a.attributeType == nil && a.constructor != nil {
		return a.constructor.ContainingType()
	}
	return a.attributeType
}
func (a *CustomAttribute) SetType(v metadata.TypeReference) { a.attributeType = v }

func (a *CustomAttribute) Copy(from metadata.CustomAttribute, _ metadata.InternFactory) {
	a.constructor = from.Constructor()
	a.arguments = slices.Clone(from.Arguments())
	a.namedArguments = slices.Clone(from.NamedArguments())
	a.attributeType = from.Type()
}

// CustomModifier is a modreq or modopt.
type CustomModifier struct {
	isOptional bool
	modifier   metadata.TypeReference
}

func (m *CustomModifier) IsOptional() bool                     { return m.isOptional }
func (m *CustomModifier) SetIsOptional(v bool)                 { m.isOptional = v }
func (m *CustomModifier) Modifier() metadata.TypeReference     { return m.modifier }
func (m *CustomModifier) SetModifier(v metadata.TypeReference) { m.modifier = v }

func (m *CustomModifier) Copy(from metadata.CustomModifier, _ metadata.InternFactory) {
	m.isOptional = from.IsOptional()
	m.modifier = from.Modifier()
}

// SecurityAttribute is a declarative security attribute set.
type SecurityAttribute struct {
	action     metadata.SecurityAction
	attributes []metadata.CustomAttribute
}

func (s *SecurityAttribute) Action() metadata.SecurityAction            { return s.action }
func (s *SecurityAttribute) SetAction(v metadata.SecurityAction)        { s.action = v }
func (s *SecurityAttribute) Attributes() []metadata.CustomAttribute     { return s.attributes }
func (s *SecurityAttribute) SetAttributes(v []metadata.CustomAttribute) { s.attributes = v }

func (s *SecurityAttribute) Copy(from metadata.SecurityAttribute, _ metadata.InternFactory) {
	s.action = from.Action()
	s.attributes = slices.Clone(from.Attributes())
}

// MarshallingInformation describes native marshalling.
type MarshallingInformation struct {
	unmanagedType                      metadata.UnmanagedType
	elementType                        metadata.UnmanagedType
	customMarshaller                   metadata.TypeReference
	customMarshallerRuntimeArgument    string
	numberOfElements                   uint32
	paramIndex                         int
	safeArrayElementUserDefinedSubtype metadata.TypeReference
}

// NewMarshallingInformation returns marshalling information without a
// size parameter.
func NewMarshallingInformation(t metadata.UnmanagedType) *MarshallingInformation {
	return &MarshallingInformation{unmanagedType: t, paramIndex: -1}
}

func (m *MarshallingInformation) UnmanagedType() metadata.UnmanagedType     { return m.unmanagedType }
func (m *MarshallingInformation) SetUnmanagedType(v metadata.UnmanagedType) { m.unmanagedType = v }
func (m *MarshallingInformation) ElementType() metadata.UnmanagedType       { return m.elementType }
func (m *MarshallingInformation) SetElementType(v metadata.UnmanagedType)   { m.elementType = v }
func (m *MarshallingInformation) CustomMarshaller() metadata.TypeReference  { return m.customMarshaller }
func (m *MarshallingInformation) SetCustomMarshaller(v metadata.TypeReference) {
	m.customMarshaller = v
}
func (m *MarshallingInformation) CustomMarshallerRuntimeArgument() string {
	return m.customMarshallerRuntimeArgument
}
func (m *MarshallingInformation) SetCustomMarshallerRuntimeArgument(v string) {
	m.customMarshallerRuntimeArgument = v
}
func (m *MarshallingInformation) NumberOfElements() uint32     { return m.numberOfElements }
func (m *MarshallingInformation) SetNumberOfElements(v uint32) { m.numberOfElements = v }
func (m *MarshallingInformation) ParamIndex() int              { return m.paramIndex }
func (m *MarshallingInformation) SetParamIndex(v int)          { m.paramIndex = v }
func (m *MarshallingInformation) SafeArrayElementUserDefinedSubtype() metadata.TypeReference {
	return m.safeArrayElementUserDefinedSubtype
}
func (m *MarshallingInformation) SetSafeArrayElementUserDefinedSubtype(v metadata.TypeReference) {
	m.safeArrayElementUserDefinedSubtype = v
}

func (m *MarshallingInformation) Copy(from metadata.MarshallingInformation, _ metadata.InternFactory) {
	m.unmanagedType = from.UnmanagedType()
	m.elementType = from.ElementType()
	m.customMarshaller = from.CustomMarshaller()
	m.customMarshallerRuntimeArgument = from.CustomMarshallerRuntimeArgument()
	m.numberOfElements = from.NumberOfElements()
	m.paramIndex = from.ParamIndex()
	m.safeArrayElementUserDefinedSubtype = from.SafeArrayElementUserDefinedSubtype()
}

// PlatformInvokeInformation describes a pinvoke entry point.
type PlatformInvokeInformation struct {
	importModule             metadata.ModuleReference
	importName               string
	noMangle                 bool
	supportsLastError        bool
	pinvokeCallingConvention metadata.CallingConvention
}

func (p *PlatformInvokeInformation) ImportModule() metadata.ModuleReference { return p.importModule }
func (p *PlatformInvokeInformation) SetImportModule(v metadata.ModuleReference) {
	p.importModule = v
}
func (p *PlatformInvokeInformation) ImportName() string          { return p.importName }
func (p *PlatformInvokeInformation) SetImportName(v string)      { p.importName = v }
func (p *PlatformInvokeInformation) NoMangle() bool              { return p.noMangle }
func (p *PlatformInvokeInformation) SetNoMangle(v bool)          { p.noMangle = v }
func (p *PlatformInvokeInformation) SupportsLastError() bool     { return p.supportsLastError }
func (p *PlatformInvokeInformation) SetSupportsLastError(v bool) { p.supportsLastError = v }
func (p *PlatformInvokeInformation) PInvokeCallingConvention() metadata.CallingConvention {
	return p.pinvokeCallingConvention
}
func (p *PlatformInvokeInformation) SetPInvokeCallingConvention(v metadata.CallingConvention) {
	p.pinvokeCallingConvention = v
}

func (p *PlatformInvokeInformation) Copy(from metadata.PlatformInvokeInformation, _ metadata.InternFactory) {
	p.importModule = from.ImportModule()
	p.importName = from.ImportName()
	p.noMangle = from.NoMangle()
	p.supportsLastError = from.SupportsLastError()
	p.pinvokeCallingConvention = from.PInvokeCallingConvention()
}

// ResourceReference names a manifest resource.
type ResourceReference struct {
	name             string
	attributes       []metadata.CustomAttribute
	definingAssembly metadata.AssemblyReference
	isPublic         bool
}

func (r *ResourceReference) Name() string                               { return r.name }
func (r *ResourceReference) SetName(v string)                           { r.name = v }
func (r *ResourceReference) Attributes() []metadata.CustomAttribute     { return r.attributes }
func (r *ResourceReference) SetAttributes(v []metadata.CustomAttribute) { r.attributes = v }
func (r *ResourceReference) DefiningAssembly() metadata.AssemblyReference {
	return r.definingAssembly
}
func (r *ResourceReference) SetDefiningAssembly(v metadata.AssemblyReference) {
	r.definingAssembly = v
}
func (r *ResourceReference) IsPublic() bool     { return r.isPublic }
func (r *ResourceReference) SetIsPublic(v bool) { r.isPublic = v }

func (r *ResourceReference) Copy(from metadata.ResourceReference, _ metadata.InternFactory) {
	r.name = from.Name()
	r.attributes = slices.Clone(from.Attributes())
	r.definingAssembly = from.DefiningAssembly()
	r.isPublic = from.IsPublic()
}

// Win32Resource is an unmanaged resource.
type Win32Resource struct {
	typeName   string
	typeID     int
	name       string
	id         int
	languageID uint32
	codePage   uint32
	data       []byte
}

func (w *Win32Resource) TypeName() string       { return w.typeName }
func (w *Win32Resource) SetTypeName(v string)   { w.typeName = v }
func (w *Win32Resource) TypeID() int            { return w.typeID }
func (w *Win32Resource) SetTypeID(v int)        { w.typeID = v }
func (w *Win32Resource) Name() string           { return w.name }
func (w *Win32Resource) SetName(v string)       { w.name = v }
func (w *Win32Resource) ID() int                { return w.id }
func (w *Win32Resource) SetID(v int)            { w.id = v }
func (w *Win32Resource) LanguageID() uint32     { return w.languageID }
func (w *Win32Resource) SetLanguageID(v uint32) { w.languageID = v }
func (w *Win32Resource) CodePage() uint32       { return w.codePage }
func (w *Win32Resource) SetCodePage(v uint32)   { w.codePage = v }
func (w *Win32Resource) Data() []byte           { return w.data }
func (w *Win32Resource) SetData(v []byte)       { w.data = v }

func (w *Win32Resource) Copy(from metadata.Win32Resource, _ metadata.InternFactory) {
	w.typeName = from.TypeName()
	w.typeID = from.TypeID()
	w.name = from.Name()
	w.id = from.ID()
	w.languageID = from.LanguageID()
	w.codePage = from.CodePage()
	w.data = slices.Clone(from.Data())
}

// FileReference names a file of a multi-file assembly.
type FileReference struct {
	fileName           string
	hashValue          []byte
	hasMetadata        bool
	containingAssembly metadata.AssemblyReference
}

func (f *FileReference) FileName() string      { return f.fileName }
func (f *FileReference) SetFileName(v string)  { f.fileName = v }
func (f *FileReference) HashValue() []byte     { return f.hashValue }
func (f *FileReference) SetHashValue(v []byte) { f.hashValue = v }
func (f *FileReference) HasMetadata() bool     { return f.hasMetadata }
func (f *FileReference) SetHasMetadata(v bool) { f.hasMetadata = v }
func (f *FileReference) ContainingAssembly() metadata.AssemblyReference {
	return f.containingAssembly
}
func (f *FileReference) SetContainingAssembly(v metadata.AssemblyReference) {
	f.containingAssembly = v
}

func (f *FileReference) Copy(from metadata.FileReference, _ metadata.InternFactory) {
	f.fileName = from.FileName()
	f.hashValue = slices.Clone(from.HashValue())
	f.hasMetadata = from.HasMetadata()
	f.containingAssembly = from.ContainingAssembly()
}
