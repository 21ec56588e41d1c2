package mutator

import (
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// Definitions are rewritten in place and always returned as they came.
// Each walker reads through the metadata interface, so a node that is not
// mutable can be walked as well; the results are then only stored when the
// node is mutable.

func (v *MutatingVisitor) assembly(a metadata.Assembly) metadata.Assembly {
	ma, mut := a.(*mutable.Assembly)
	if !v.enter(a, mut) {
		return a
	}
	saved := v.path
	v.path = traversalContext{unit: a}
	defer func() { v.path = saved }()

	var mm *mutable.Module
	if mut {
		mm = &ma.Module
	}
	v.moduleParts(a, mm)
	attrs := walk(a.AssemblyAttributes(), v.customAttribute)
	security := walk(a.SecurityAttributes(), v.securityAttribute)
	exported := walk(a.ExportedTypes(), v.alias)
	files := walk(a.Files(), v.fileReference)
	resources := walk(a.Resources(), v.resourceReference)
	members := walk(a.MemberModules(), v.memberModule)
	if mut {
		ma.SetAssemblyAttributes(attrs)
		ma.SetSecurityAttributes(security)
		ma.SetExportedTypes(exported)
		ma.SetFiles(files)
		ma.SetResources(resources)
		ma.SetMemberModules(members)
	}
	return a
}

func (v *MutatingVisitor) module(m metadata.Module) metadata.Module {
	mm, mut := m.(*mutable.Module)
	if !v.enter(m, mut) {
		return m
	}
	saved := v.path
	v.path = traversalContext{unit: m}
	defer func() { v.path = saved }()

	v.moduleParts(m, mm)
	return m
}

func (v *MutatingVisitor) memberModule(m metadata.Module) metadata.Module {
	if a, ok := m.(metadata.Assembly); ok {
		return v.assembly(a)
	}
	return v.module(m)
}

// moduleParts walks the module part of m. mm is m when m is mutable.
func (v *MutatingVisitor) moduleParts(m metadata.Module, mm *mutable.Module) {
	attrs := walk(m.Attributes(), v.customAttribute)
	asm := walk(m.AssemblyReferences(), v.assemblyRef)
	mods := walk(m.ModuleReferences(), v.moduleRef)
	walk(m.Win32Resources(), v.win32Resource)
	root := m.UnitNamespaceRoot()
	v.namespace(root)
	types := walk(m.AllTypes(), v.namedTypeDefinition)
	entry := v.methodRef(m.EntryPoint())
	if mm != nil {
		mm.SetAttributes(attrs)
		mm.SetAssemblyReferences(asm)
		mm.SetModuleReferences(mods)
		mm.SetAllTypes(types)
		mm.SetEntryPoint(entry)
	}
}

func (v *MutatingVisitor) namespace(ns metadata.UnitNamespace) metadata.UnitNamespace {
	if ns == nil {
		return ns
	}
	var setMembers func([]metadata.NamespaceMember)
	switch n := ns.(type) {
	case *mutable.NestedUnitNamespace:
		setMembers = n.SetMembers
		if v.path.namespace != nil && !v.halted() {
			n.SetContainingNamespace(v.path.namespace)
		}
	case *mutable.RootUnitNamespace:
		setMembers = n.SetMembers
		if v.path.unit != nil && !v.halted() && !mutable.IsDummy(n) {
			n.SetUnit(v.path.unit)
		}
	}
	if !v.enter(ns, setMembers != nil) {
		return ns
	}
	saved := v.path.namespace
	v.path.namespace = ns
	defer func() { v.path.namespace = saved }()

	attrs := walk(ns.Attributes(), v.customAttribute)
	members := walk(ns.Members(), v.namespaceMember)
	if setMembers != nil {
		ns.(interface {
			SetAttributes([]metadata.CustomAttribute)
		}).SetAttributes(attrs)
		setMembers(members)
	}
	return ns
}

func (v *MutatingVisitor) namespaceMember(m metadata.NamespaceMember) metadata.NamespaceMember {
	switch m := m.(type) {
	case metadata.NestedUnitNamespace:
		v.namespace(m)
	case metadata.NamespaceTypeDefinition:
		v.namedTypeDefinition(m)
	case metadata.GlobalFieldDefinition:
		v.fieldDefinition(m)
	case metadata.GlobalMethodDefinition:
		v.methodDefinition(m)
	case metadata.NamespaceAliasForType:
		v.alias(m)
	case nil:
	default:
		unknownNode("namespace member", m)
	}
	return m
}

func (v *MutatingVisitor) alias(a metadata.AliasForType) metadata.AliasForType {
	if a == nil {
		return a
	}
	var mut bool
	switch n := a.(type) {
	case *mutable.NamespaceAliasForType:
		mut = true
		if v.path.namespace != nil && !v.halted() {
			n.SetContainingNamespace(v.path.namespace)
		}
	case *mutable.NestedAliasForType:
		mut = true
		if v.path.alias != nil && !v.halted() {
			n.SetContainingAlias(v.path.alias)
		}
	}
	if !v.enter(a, mut) {
		return a
	}
	saved := v.path.alias
	v.path.alias = a
	defer func() { v.path.alias = saved }()

	attrs := walk(a.Attributes(), v.customAttribute)
	aliased := v.typeRef(a.AliasedType())
	members := walk(a.Members(), v.aliasMember)
	if mut {
		n := a.(interface {
			SetAttributes([]metadata.CustomAttribute)
			SetAliasedType(metadata.NamedTypeReference)
			SetMembers([]metadata.AliasMember)
		})
		n.SetAttributes(attrs)
		if t, ok := aliased.(metadata.NamedTypeReference); ok {
			n.SetAliasedType(t)
		}
		n.SetMembers(members)
	}
	return a
}

func (v *MutatingVisitor) aliasMember(m metadata.AliasMember) metadata.AliasMember {
	if nested, ok := m.(metadata.NestedAliasForType); ok {
		v.alias(nested)
		return m
	}
	if m != nil {
		unknownNode("alias member", m)
	}
	return m
}

func (v *MutatingVisitor) namedTypeDefinition(t metadata.NamedTypeDefinition) metadata.NamedTypeDefinition {
	if t == nil {
		return t
	}
	node, mut := t.(mutable.TypeDefinitionNode)
	if mut && !v.halted() && !mutable.IsDummy(t) {
		switch d := node.(type) {
		case *mutable.NestedTypeDefinition:
			if v.path.typeDef != nil {
				d.SetContainingTypeDefinition(v.path.typeDef)
			}
		case *mutable.NamespaceTypeDefinition:
			if v.path.namespace != nil {
				d.SetContainingNamespace(v.path.namespace)
			}
		}
	}
	if !v.enter(t, mut) {
		return t
	}
	saved := v.path
	v.path.typeDef, v.path.method, v.path.signature, v.path.alias = t, nil, nil, nil
	defer func() { v.path = saved }()

	attrs := walk(t.Attributes(), v.customAttribute)
	generics := walk(t.GenericParameters(), v.genericTypeParameter)
	bases := walk(t.BaseClasses(), v.typeRef)
	interfaces := walk(t.Interfaces(), v.typeRef)
	walk(t.Fields(), v.fieldDefinition)
	walk(t.Methods(), v.methodDefinition)
	walk(t.NestedTypes(), v.nestedTypeDefinition)
	walk(t.Properties(), v.propertyDefinition)
	walk(t.Events(), v.eventDefinition)
	security := walk(t.SecurityAttributes(), v.securityAttribute)
	overrides := walk(t.ExplicitImplementationOverrides(), v.methodImplementation)
	walk(t.PrivateHelperMembers(), v.helperMember)
	if mut {
		td := node.MutableTypeDefinition()
		td.SetAttributes(attrs)
		td.SetGenericParameters(generics)
		td.SetBaseClasses(bases)
		td.SetInterfaces(interfaces)
		td.SetSecurityAttributes(security)
		td.SetExplicitImplementationOverrides(overrides)
	}
	return t
}

func (v *MutatingVisitor) nestedTypeDefinition(t metadata.NestedTypeDefinition) metadata.NestedTypeDefinition {
	v.namedTypeDefinition(t)
	return t
}

func (v *MutatingVisitor) helperMember(m metadata.TypeDefinitionMember) metadata.TypeDefinitionMember {
	switch m := m.(type) {
	case metadata.NestedTypeDefinition:
		v.namedTypeDefinition(m)
	case metadata.FieldDefinition:
		v.fieldDefinition(m)
	case metadata.MethodDefinition:
		v.methodDefinition(m)
	case metadata.PropertyDefinition:
		v.propertyDefinition(m)
	case metadata.EventDefinition:
		v.eventDefinition(m)
	case nil:
	default:
		unknownNode("type member", m)
	}
	return m
}

func (v *MutatingVisitor) genericTypeParameter(p metadata.GenericTypeParameter) metadata.GenericTypeParameter {
	gp, mut := p.(*mutable.GenericTypeParameter)
	if p == nil || !v.enter(p, mut) {
		return p
	}
	attrs := walk(p.Attributes(), v.customAttribute)
	constraints := walk(p.Constraints(), v.typeRef)
	if mut {
		if v.path.typeDef != nil {
			gp.SetDefiningTypeDefinition(v.path.typeDef)
		}
		gp.SetAttributes(attrs)
		gp.SetConstraints(constraints)
	}
	return p
}

func (v *MutatingVisitor) genericMethodParameter(p metadata.GenericMethodParameter) metadata.GenericMethodParameter {
	gp, mut := p.(*mutable.GenericMethodParameter)
	if p == nil || !v.enter(p, mut) {
		return p
	}
	attrs := walk(p.Attributes(), v.customAttribute)
	constraints := walk(p.Constraints(), v.typeRef)
	if mut {
		if v.path.method != nil {
			gp.SetDefiningMethodDefinition(v.path.method)
		}
		gp.SetAttributes(attrs)
		gp.SetConstraints(constraints)
	}
	return p
}

func (v *MutatingVisitor) fieldDefinition(f metadata.FieldDefinition) metadata.FieldDefinition {
	if f == nil {
		return f
	}
	var d *mutable.FieldDefinition
	switch n := f.(type) {
	case *mutable.GlobalFieldDefinition:
		d = &n.FieldDefinition
		if v.path.namespace != nil && !v.halted() {
			n.SetContainingNamespace(v.path.namespace)
		}
	case *mutable.FieldDefinition:
		d = n
		if v.path.typeDef != nil && !v.halted() && !mutable.IsDummy(n) {
			n.SetContainingTypeDefinition(v.path.typeDef)
		}
	}
	if !v.enter(f, d != nil) {
		return f
	}
	attrs := walk(f.Attributes(), v.customAttribute)
	t := v.typeRef(f.Type())
	mods := walk(f.CustomModifiers(), v.customModifier)
	value := v.constant(f.CompileTimeValue())
	marshal := v.marshalling(f.MarshallingInformation())
	if d != nil {
		d.SetAttributes(attrs)
		d.SetType(t)
		d.SetCustomModifiers(mods)
		d.SetCompileTimeValue(value)
		d.SetMarshallingInformation(marshal)
	}
	return f
}

func (v *MutatingVisitor) methodDefinition(m metadata.MethodDefinition) metadata.MethodDefinition {
	if m == nil {
		return m
	}
	var d *mutable.MethodDefinition
	switch n := m.(type) {
	case *mutable.GlobalMethodDefinition:
		d = &n.MethodDefinition
		if v.path.namespace != nil && !v.halted() {
			n.SetContainingNamespace(v.path.namespace)
		}
	case *mutable.MethodDefinition:
		d = n
		if v.path.typeDef != nil && !v.halted() && !mutable.IsDummy(n) {
			n.SetContainingTypeDefinition(v.path.typeDef)
		}
	}
	if !v.enter(m, d != nil) {
		return m
	}
	saved := v.path
	v.path.method, v.path.signature = m, m
	defer func() { v.path = saved }()

	attrs := walk(m.Attributes(), v.customAttribute)
	generics := walk(m.GenericParameters(), v.genericMethodParameter)
	ret := v.typeRef(m.Type())
	mods := walk(m.ReturnValueCustomModifiers(), v.customModifier)
	walk(m.ParameterDefinitions(), v.parameterDefinition)
	retAttrs := walk(m.ReturnValueAttributes(), v.customAttribute)
	retMarshal := v.marshalling(m.ReturnValueMarshallingInformation())
	pinvoke := v.platformInvoke(m.PlatformInvokeData())
	security := walk(m.SecurityAttributes(), v.securityAttribute)
	v.methodBody(m.Body())
	if d != nil {
		d.SetAttributes(attrs)
		d.SetGenericParameters(generics)
		d.SetType(ret)
		d.SetReturnValueCustomModifiers(mods)
		d.SetReturnValueAttributes(retAttrs)
		d.SetReturnValueMarshallingInformation(retMarshal)
		d.SetPlatformInvokeData(pinvoke)
		d.SetSecurityAttributes(security)
	}
	return m
}

func (v *MutatingVisitor) parameterDefinition(p metadata.ParameterDefinition) metadata.ParameterDefinition {
	d, mut := p.(*mutable.ParameterDefinition)
	if p == nil || !v.enter(p, mut) {
		return p
	}
	attrs := walk(p.Attributes(), v.customAttribute)
	t := v.typeRef(p.Type())
	mods := walk(p.CustomModifiers(), v.customModifier)
	value := v.constant(p.DefaultValue())
	marshal := v.marshalling(p.MarshallingInformation())
	elem := v.typeRef(p.ParamArrayElementType())
	if mut {
		if v.path.signature != nil {
			d.SetContainingSignature(v.path.signature)
		}
		d.SetAttributes(attrs)
		d.SetType(t)
		d.SetCustomModifiers(mods)
		d.SetDefaultValue(value)
		d.SetMarshallingInformation(marshal)
		d.SetParamArrayElementType(elem)
	}
	return p
}

func (v *MutatingVisitor) propertyDefinition(p metadata.PropertyDefinition) metadata.PropertyDefinition {
	d, mut := p.(*mutable.PropertyDefinition)
	if p == nil || !v.enter(p, mut) {
		return p
	}
	saved := v.path.signature
	v.path.signature = p
	defer func() { v.path.signature = saved }()

	attrs := walk(p.Attributes(), v.customAttribute)
	t := v.typeRef(p.Type())
	mods := walk(p.ReturnValueCustomModifiers(), v.customModifier)
	accessors := walk(p.Accessors(), v.methodRef)
	getter := v.methodRef(p.Getter())
	setter := v.methodRef(p.Setter())
	walk(p.ParameterDefinitions(), v.parameterDefinition)
	value := v.constant(p.DefaultValue())
	if mut {
		if v.path.typeDef != nil {
			d.SetContainingTypeDefinition(v.path.typeDef)
		}
		d.SetAttributes(attrs)
		d.SetType(t)
		d.SetReturnValueCustomModifiers(mods)
		d.SetAccessors(accessors)
		d.SetGetter(getter)
		d.SetSetter(setter)
		d.SetDefaultValue(value)
	}
	return p
}

func (v *MutatingVisitor) eventDefinition(e metadata.EventDefinition) metadata.EventDefinition {
	d, mut := e.(*mutable.EventDefinition)
	if e == nil || !v.enter(e, mut) {
		return e
	}
	attrs := walk(e.Attributes(), v.customAttribute)
	t := v.typeRef(e.Type())
	accessors := walk(e.Accessors(), v.methodRef)
	adder := v.methodRef(e.Adder())
	remover := v.methodRef(e.Remover())
	caller := v.methodRef(e.Caller())
	if mut {
		if v.path.typeDef != nil {
			d.SetContainingTypeDefinition(v.path.typeDef)
		}
		d.SetAttributes(attrs)
		d.SetType(t)
		d.SetAccessors(accessors)
		d.SetAdder(adder)
		d.SetRemover(remover)
		d.SetCaller(caller)
	}
	return e
}

func (v *MutatingVisitor) methodImplementation(m metadata.MethodImplementation) metadata.MethodImplementation {
	d, mut := m.(*mutable.MethodImplementation)
	if m == nil || !v.enter(m, mut) {
		return m
	}
	implemented := v.methodRef(m.ImplementedMethod())
	implementing := v.methodRef(m.ImplementingMethod())
	if mut {
		d.SetImplementedMethod(implemented)
		d.SetImplementingMethod(implementing)
	}
	return m
}

func (v *MutatingVisitor) methodBody(b metadata.MethodBody) metadata.MethodBody {
	d, mut := b.(*mutable.MethodBody)
	if b == nil || !v.enter(b, mut) {
		return b
	}
	walk(b.LocalVariables(), v.localDefinition)
	walk(b.Operations(), v.operation)
	walk(b.OperationExceptionInformation(), v.exceptionInformation)
	walk(b.PrivateHelperTypes(), v.namedTypeDefinition)
	if mut && v.path.method != nil {
		d.SetMethodDefinition(v.path.method)
	}
	return b
}

func (v *MutatingVisitor) localDefinition(l metadata.LocalDefinition) metadata.LocalDefinition {
	d, mut := l.(*mutable.LocalDefinition)
	if l == nil || !v.enter(l, mut) {
		return l
	}
	t := v.typeRef(l.Type())
	mods := walk(l.CustomModifiers(), v.customModifier)
	value := v.constant(l.CompileTimeValue())
	if mut {
		if v.path.method != nil {
			d.SetMethodDefinition(v.path.method)
		}
		d.SetType(t)
		d.SetCustomModifiers(mods)
		d.SetCompileTimeValue(value)
	}
	return l
}

func (v *MutatingVisitor) operation(o metadata.Operation) metadata.Operation {
	d, mut := o.(*mutable.Operation)
	if o == nil || !v.enter(o, mut) {
		return o
	}
	var value any
	switch x := o.Value().(type) {
	case metadata.TypeReference:
		value = v.typeRef(x)
	case metadata.FieldReference:
		value = v.fieldRef(x)
	case metadata.MethodReference:
		value = v.methodRef(x)
	default:
		value = x
	}
	if mut {
		d.SetValue(value)
	}
	return o
}

func (v *MutatingVisitor) exceptionInformation(e metadata.OperationExceptionInformation) metadata.OperationExceptionInformation {
	d, mut := e.(*mutable.OperationExceptionInformation)
	if e == nil || !v.enter(e, mut) {
		return e
	}
	t := v.typeRef(e.ExceptionType())
	if mut {
		d.SetExceptionType(t)
	}
	return e
}

func (v *MutatingVisitor) customAttribute(a metadata.CustomAttribute) metadata.CustomAttribute {
	d, mut := a.(*mutable.CustomAttribute)
	if a == nil || !v.enter(a, mut) {
		return a
	}
	ctor := v.methodRef(a.Constructor())
	args := walk(a.Arguments(), v.expression)
	named := walk(a.NamedArguments(), v.namedArgument)
	t := v.typeRef(a.Type())
	if mut {
		d.SetConstructor(ctor)
		d.SetArguments(args)
		d.SetNamedArguments(named)
		d.SetType(t)
	}
	return a
}

func (v *MutatingVisitor) securityAttribute(s metadata.SecurityAttribute) metadata.SecurityAttribute {
	d, mut := s.(*mutable.SecurityAttribute)
	if s == nil || !v.enter(s, mut) {
		return s
	}
	attrs := walk(s.Attributes(), v.customAttribute)
	if mut {
		d.SetAttributes(attrs)
	}
	return s
}

func (v *MutatingVisitor) marshalling(m metadata.MarshallingInformation) metadata.MarshallingInformation {
	d, mut := m.(*mutable.MarshallingInformation)
	if m == nil || !v.enter(m, mut) {
		return m
	}
	marshaller := v.typeRef(m.CustomMarshaller())
	subtype := v.typeRef(m.SafeArrayElementUserDefinedSubtype())
	if mut {
		d.SetCustomMarshaller(marshaller)
		d.SetSafeArrayElementUserDefinedSubtype(subtype)
	}
	return m
}

func (v *MutatingVisitor) platformInvoke(p metadata.PlatformInvokeInformation) metadata.PlatformInvokeInformation {
	_, mut := p.(*mutable.PlatformInvokeInformation)
	if p == nil || !v.enter(p, mut) {
		return p
	}
	v.moduleRef(p.ImportModule())
	return p
}

func (v *MutatingVisitor) expression(e metadata.MetadataExpression) metadata.MetadataExpression {
	if e == nil || !v.enter(e, mutableExpression(e)) {
		return e
	}
	t := v.typeRef(e.Type())
	switch x := e.(type) {
	case metadata.MetadataCreateArray:
		elem := v.typeRef(x.ElementType())
		inits := walk(x.Initializers(), v.expression)
		if n, ok := x.(*mutable.MetadataCreateArray); ok {
			n.SetType(t)
			n.SetElementType(elem)
			n.SetInitializers(inits)
		}
	case metadata.MetadataNamedArgument:
		value := v.expression(x.ArgumentValue())
		if n, ok := x.(*mutable.MetadataNamedArgument); ok {
			n.SetType(t)
			n.SetArgumentValue(value)
		}
	case metadata.MetadataTypeOf:
		target := v.typeRef(x.TypeToGet())
		if n, ok := x.(*mutable.MetadataTypeOf); ok {
			n.SetType(t)
			n.SetTypeToGet(target)
		}
	case metadata.MetadataConstant:
		if n, ok := x.(*mutable.MetadataConstant); ok {
			n.SetType(t)
		}
	}
	return e
}

func mutableExpression(e metadata.MetadataExpression) bool {
	switch e.(type) {
	case *mutable.MetadataConstant, *mutable.MetadataCreateArray,
		*mutable.MetadataNamedArgument, *mutable.MetadataTypeOf:
		return true
	}
	return false
}

func (v *MutatingVisitor) constant(k metadata.MetadataConstant) metadata.MetadataConstant {
	if k != nil {
		v.expression(k)
	}
	return k
}

func (v *MutatingVisitor) namedArgument(n metadata.MetadataNamedArgument) metadata.MetadataNamedArgument {
	if n != nil {
		v.expression(n)
	}
	return n
}

func (v *MutatingVisitor) resourceReference(r metadata.ResourceReference) metadata.ResourceReference {
	d, mut := r.(*mutable.ResourceReference)
	if r == nil || !v.enter(r, mut) {
		return r
	}
	attrs := walk(r.Attributes(), v.customAttribute)
	v.assemblyRef(r.DefiningAssembly())
	if mut {
		d.SetAttributes(attrs)
	}
	return r
}

func (v *MutatingVisitor) fileReference(f metadata.FileReference) metadata.FileReference {
	if f != nil {
		v.enter(f, false)
	}
	return f
}

func (v *MutatingVisitor) win32Resource(r metadata.Win32Resource) metadata.Win32Resource {
	if r != nil {
		v.enter(r, false)
	}
	return r
}
