package mutator

import (
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

func (c *DeepCopier) namedTypeDefinition(t metadata.NamedTypeDefinition) metadata.NamedTypeDefinition {
	if t == nil || c.halted() || mutable.IsDummy(t) {
		return t
	}
	cp := c.typeDefinitionShell(t)
	if !c.enter(cp) {
		return cp
	}
	switch d := cp.(type) {
	case *mutable.NestedTypeDefinition:
		d.SetContainingTypeDefinition(c.containingType(d.ContainingTypeDefinition()))
	case *mutable.NamespaceTypeDefinition:
		d.SetContainingNamespace(c.containingNamespace(d.ContainingNamespace()))
	}

	saved := c.path
	c.path.typeDef, c.path.method, c.path.signature, c.path.alias = cp, nil, nil, nil
	defer func() { c.path = saved }()

	td := cp.MutableTypeDefinition()
	td.SetAttributes(each(td.Attributes(), c.customAttribute))
	td.SetGenericParameters(each(td.GenericParameters(), c.genericTypeParameter))
	td.SetBaseClasses(each(td.BaseClasses(), c.typeRef))
	td.SetInterfaces(each(td.Interfaces(), c.typeRef))
	td.SetFields(each(td.Fields(), c.fieldDefinition))
	td.SetMethods(each(td.Methods(), c.methodDefinition))
	td.SetNestedTypes(each(td.NestedTypes(), c.nestedTypeDefinition))
	td.SetProperties(each(td.Properties(), c.propertyDefinition))
	td.SetEvents(each(td.Events(), c.eventDefinition))
	td.SetSecurityAttributes(each(td.SecurityAttributes(), c.securityAttribute))
	td.SetExplicitImplementationOverrides(each(td.ExplicitImplementationOverrides(), c.methodImplementation))
	td.SetPrivateHelperMembers(each(td.PrivateHelperMembers(), c.helperMember))
	return cp
}

func (c *DeepCopier) nestedTypeDefinition(t metadata.NestedTypeDefinition) metadata.NestedTypeDefinition {
	if n, ok := c.namedTypeDefinition(t).(metadata.NestedTypeDefinition); ok {
		return n
	}
	return t
}

// helperType copies a type synthesized for a method body or as a helper
// member and remembers it for the AllTypes list of the unit.
func (c *DeepCopier) helperType(t metadata.NamedTypeDefinition) metadata.NamedTypeDefinition {
	cp := c.namedTypeDefinition(t)
	if cp != t {
		c.helpers = append(c.helpers, cp)
	}
	return cp
}

func (c *DeepCopier) helperMember(m metadata.TypeDefinitionMember) metadata.TypeDefinitionMember {
	if m == nil || c.halted() {
		return m
	}
	switch m := m.(type) {
	case metadata.NestedTypeDefinition:
		return c.helperType(m).(metadata.TypeDefinitionMember)
	case metadata.FieldDefinition:
		return c.fieldDefinition(m)
	case metadata.MethodDefinition:
		return c.methodDefinition(m)
	case metadata.PropertyDefinition:
		return c.propertyDefinition(m)
	case metadata.EventDefinition:
		return c.eventDefinition(m)
	}
	unknownNode("type member", m)
	return nil
}

func (c *DeepCopier) genericTypeParameter(p metadata.GenericTypeParameter) metadata.GenericTypeParameter {
	if p == nil || c.halted() {
		return p
	}
	cp := valueShell[metadata.GenericTypeParameter, *mutable.GenericTypeParameter](c, p)
	if !c.enter(cp) {
		return cp
	}
	cp.SetDefiningTypeDefinition(c.containingType(cp.DefiningTypeDefinition()))
	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	if cp.PlatformType() == nil {
		cp.SetPlatformType(c.platform)
	}
	cp.SetConstraints(each(cp.Constraints(), c.typeRef))
	return cp
}

func (c *DeepCopier) genericMethodParameter(p metadata.GenericMethodParameter) metadata.GenericMethodParameter {
	if p == nil || c.halted() {
		return p
	}
	cp := valueShell[metadata.GenericMethodParameter, *mutable.GenericMethodParameter](c, p)
	if !c.enter(cp) {
		return cp
	}
	cp.SetDefiningMethodDefinition(c.containingMethod(cp.DefiningMethodDefinition()))
	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	if cp.PlatformType() == nil {
		cp.SetPlatformType(c.platform)
	}
	cp.SetConstraints(each(cp.Constraints(), c.typeRef))
	return cp
}

func (c *DeepCopier) fieldDefinition(f metadata.FieldDefinition) metadata.FieldDefinition {
	if f == nil || c.halted() || mutable.IsDummy(f) {
		return f
	}
	cp := c.fieldShell(f)
	if !c.enter(cp) {
		return cp
	}
	var d *mutable.FieldDefinition
	switch g := cp.(type) {
	case *mutable.GlobalFieldDefinition:
		g.SetContainingNamespace(c.containingNamespace(g.ContainingNamespace()))
		d = &g.FieldDefinition
	case *mutable.FieldDefinition:
		d = g
	}
	if _, global := cp.(*mutable.GlobalFieldDefinition); !global || d.ContainingTypeDefinition() != nil {
		d.SetContainingTypeDefinition(c.containingType(d.ContainingTypeDefinition()))
	}
	d.SetAttributes(each(d.Attributes(), c.customAttribute))
	d.SetType(c.typeRef(d.Type()))
	d.SetCustomModifiers(each(d.CustomModifiers(), c.customModifier))
	d.SetCompileTimeValue(c.constant(d.CompileTimeValue()))
	d.SetMarshallingInformation(c.marshalling(d.MarshallingInformation()))
	return cp
}

func (c *DeepCopier) methodDefinition(m metadata.MethodDefinition) metadata.MethodDefinition {
	if m == nil || c.halted() || mutable.IsDummy(m) {
		return m
	}
	cp := c.methodShell(m)
	if !c.enter(cp) {
		return cp
	}
	var d *mutable.MethodDefinition
	switch g := cp.(type) {
	case *mutable.GlobalMethodDefinition:
		g.SetContainingNamespace(c.containingNamespace(g.ContainingNamespace()))
		d = &g.MethodDefinition
	case *mutable.MethodDefinition:
		d = g
	}
	if _, global := cp.(*mutable.GlobalMethodDefinition); !global || d.ContainingTypeDefinition() != nil {
		d.SetContainingTypeDefinition(c.containingType(d.ContainingTypeDefinition()))
	}

	saved := c.path
	c.path.method, c.path.signature = cp, cp
	defer func() { c.path = saved }()

	d.SetAttributes(each(d.Attributes(), c.customAttribute))
	d.SetGenericParameters(each(d.GenericParameters(), c.genericMethodParameter))
	d.SetType(c.typeRef(d.Type()))
	d.SetReturnValueCustomModifiers(each(d.ReturnValueCustomModifiers(), c.customModifier))
	d.SetParameterDefinitions(each(d.ParameterDefinitions(), c.parameterDefinition))
	d.SetReturnValueAttributes(each(d.ReturnValueAttributes(), c.customAttribute))
	d.SetReturnValueMarshallingInformation(c.marshalling(d.ReturnValueMarshallingInformation()))
	d.SetPlatformInvokeData(c.platformInvoke(d.PlatformInvokeData()))
	d.SetSecurityAttributes(each(d.SecurityAttributes(), c.securityAttribute))
	d.SetBody(c.methodBody(d.Body()))
	return cp
}

func (c *DeepCopier) parameterDefinition(p metadata.ParameterDefinition) metadata.ParameterDefinition {
	if p == nil || c.halted() {
		return p
	}
	cp := valueShell[metadata.ParameterDefinition, *mutable.ParameterDefinition](c, p)
	if !c.enter(cp) {
		return cp
	}
	cp.SetContainingSignature(c.containingSignature(cp.ContainingSignature()))
	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	cp.SetType(c.typeRef(cp.Type()))
	cp.SetCustomModifiers(each(cp.CustomModifiers(), c.customModifier))
	cp.SetDefaultValue(c.constant(cp.DefaultValue()))
	cp.SetMarshallingInformation(c.marshalling(cp.MarshallingInformation()))
	cp.SetParamArrayElementType(c.typeRef(cp.ParamArrayElementType()))
	return cp
}

func (c *DeepCopier) propertyDefinition(p metadata.PropertyDefinition) metadata.PropertyDefinition {
	if p == nil || c.halted() {
		return p
	}
	cp := valueShell[metadata.PropertyDefinition, *mutable.PropertyDefinition](c, p)
	if !c.enter(cp) {
		return cp
	}
	cp.SetContainingTypeDefinition(c.containingType(cp.ContainingTypeDefinition()))

	saved := c.path.signature
	c.path.signature = cp
	defer func() { c.path.signature = saved }()

	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	cp.SetType(c.typeRef(cp.Type()))
	cp.SetReturnValueCustomModifiers(each(cp.ReturnValueCustomModifiers(), c.customModifier))
	cp.SetAccessors(each(cp.Accessors(), c.methodRef))
	cp.SetGetter(c.methodRef(cp.Getter()))
	cp.SetSetter(c.methodRef(cp.Setter()))
	cp.SetParameterDefinitions(each(cp.ParameterDefinitions(), c.parameterDefinition))
	cp.SetDefaultValue(c.constant(cp.DefaultValue()))
	return cp
}

func (c *DeepCopier) eventDefinition(e metadata.EventDefinition) metadata.EventDefinition {
	if e == nil || c.halted() {
		return e
	}
	cp := valueShell[metadata.EventDefinition, *mutable.EventDefinition](c, e)
	if !c.enter(cp) {
		return cp
	}
	cp.SetContainingTypeDefinition(c.containingType(cp.ContainingTypeDefinition()))
	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	cp.SetType(c.typeRef(cp.Type()))
	cp.SetAccessors(each(cp.Accessors(), c.methodRef))
	cp.SetAdder(c.methodRef(cp.Adder()))
	cp.SetRemover(c.methodRef(cp.Remover()))
	cp.SetCaller(c.methodRef(cp.Caller()))
	return cp
}

func (c *DeepCopier) methodImplementation(m metadata.MethodImplementation) metadata.MethodImplementation {
	if m == nil || c.halted() {
		return m
	}
	cp := valueShell[metadata.MethodImplementation, *mutable.MethodImplementation](c, m)
	if !c.enter(cp) {
		return cp
	}
	cp.SetContainingType(c.containingType(cp.ContainingType()))
	cp.SetImplementedMethod(c.methodRef(cp.ImplementedMethod()))
	cp.SetImplementingMethod(c.methodRef(cp.ImplementingMethod()))
	return cp
}

func (c *DeepCopier) methodBody(b metadata.MethodBody) metadata.MethodBody {
	if b == nil || c.halted() {
		return b
	}
	cp := valueShell[metadata.MethodBody, *mutable.MethodBody](c, b)
	if !c.enter(cp) {
		return cp
	}
	cp.SetMethodDefinition(c.containingMethod(cp.MethodDefinition()))
	cp.SetLocalVariables(each(cp.LocalVariables(), c.localDefinition))
	cp.SetOperations(each(cp.Operations(), c.operation))
	cp.SetOperationExceptionInformation(each(cp.OperationExceptionInformation(), c.exceptionInformation))
	cp.SetPrivateHelperTypes(each(cp.PrivateHelperTypes(), c.helperType))
	return cp
}

func (c *DeepCopier) localDefinition(l metadata.LocalDefinition) metadata.LocalDefinition {
	if l == nil || c.halted() {
		return l
	}
	cp := valueShell[metadata.LocalDefinition, *mutable.LocalDefinition](c, l)
	if !c.enter(cp) {
		return cp
	}
	cp.SetMethodDefinition(c.containingMethod(cp.MethodDefinition()))
	cp.SetType(c.typeRef(cp.Type()))
	cp.SetCustomModifiers(each(cp.CustomModifiers(), c.customModifier))
	cp.SetCompileTimeValue(c.constant(cp.CompileTimeValue()))
	return cp
}

func (c *DeepCopier) operation(o metadata.Operation) metadata.Operation {
	if o == nil || c.halted() {
		return o
	}
	cp := valueShell[metadata.Operation, *mutable.Operation](c, o)
	if !c.enter(cp) {
		return cp
	}
	cp.SetValue(c.operand(cp.Value()))
	return cp
}

// operand copies the operand of an instruction. Literals, branch offsets
// and nil are kept as they are.
func (c *DeepCopier) operand(v any) any {
	switch v := v.(type) {
	case metadata.TypeReference:
		return c.typeRef(v)
	case metadata.FieldReference:
		return c.fieldRef(v)
	case metadata.MethodReference:
		return c.methodRef(v)
	case metadata.ParameterDefinition:
		if c.owns(v) {
			return c.parameterDefinition(v)
		}
	case metadata.LocalDefinition:
		return c.localDefinition(v)
	}
	return v
}

func (c *DeepCopier) exceptionInformation(e metadata.OperationExceptionInformation) metadata.OperationExceptionInformation {
	if e == nil || c.halted() {
		return e
	}
	cp := valueShell[metadata.OperationExceptionInformation, *mutable.OperationExceptionInformation](c, e)
	if !c.enter(cp) {
		return cp
	}
	cp.SetExceptionType(c.typeRef(cp.ExceptionType()))
	return cp
}
