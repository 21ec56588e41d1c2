package mutator

import (
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

func (c *DeepCopier) customAttribute(a metadata.CustomAttribute) metadata.CustomAttribute {
	if a == nil || c.halted() {
		return a
	}
	cp := valueShell[metadata.CustomAttribute, *mutable.CustomAttribute](c, a)
	if !c.enter(cp) {
		return cp
	}
	cp.SetConstructor(c.methodRef(cp.Constructor()))
	cp.SetArguments(each(cp.Arguments(), c.expression))
	cp.SetNamedArguments(each(cp.NamedArguments(), c.namedArgument))
	cp.SetType(c.typeRef(cp.Type()))
	return cp
}

func (c *DeepCopier) customModifier(m metadata.CustomModifier) metadata.CustomModifier {
	if m == nil || c.halted() {
		return m
	}
	cp := valueShell[metadata.CustomModifier, *mutable.CustomModifier](c, m)
	if !c.enter(cp) {
		return cp
	}
	cp.SetModifier(c.typeRef(cp.Modifier()))
	return cp
}

func (c *DeepCopier) securityAttribute(s metadata.SecurityAttribute) metadata.SecurityAttribute {
	if s == nil || c.halted() {
		return s
	}
	cp := valueShell[metadata.SecurityAttribute, *mutable.SecurityAttribute](c, s)
	if !c.enter(cp) {
		return cp
	}
	cp.SetAttributes(each(cp.Attributes(), c.customAttribute))
	return cp
}

func (c *DeepCopier) marshalling(m metadata.MarshallingInformation) metadata.MarshallingInformation {
	if m == nil || c.halted() {
		return m
	}
	cp := valueShell[metadata.MarshallingInformation, *mutable.MarshallingInformation](c, m)
	if !c.enter(cp) {
		return cp
	}
	cp.SetCustomMarshaller(c.typeRef(cp.CustomMarshaller()))
	cp.SetSafeArrayElementUserDefinedSubtype(c.typeRef(cp.SafeArrayElementUserDefinedSubtype()))
	return cp
}

func (c *DeepCopier) platformInvoke(p metadata.PlatformInvokeInformation) metadata.PlatformInvokeInformation {
	if p == nil || c.halted() {
		return p
	}
	cp := valueShell[metadata.PlatformInvokeInformation, *mutable.PlatformInvokeInformation](c, p)
	if !c.enter(cp) {
		return cp
	}
	cp.SetImportModule(c.moduleRef(cp.ImportModule()))
	return cp
}

func (c *DeepCopier) expression(e metadata.MetadataExpression) metadata.MetadataExpression {
	if e == nil || c.halted() {
		return e
	}
	cp := c.expressionShell(e)
	if !c.enter(cp) {
		return cp
	}
	switch x := cp.(type) {
	case *mutable.MetadataCreateArray:
		x.SetType(c.typeRef(x.Type()))
		x.SetElementType(c.typeRef(x.ElementType()))
		x.SetInitializers(each(x.Initializers(), c.expression))
	case *mutable.MetadataNamedArgument:
		x.SetType(c.typeRef(x.Type()))
		x.SetArgumentValue(c.expression(x.ArgumentValue()))
	case *mutable.MetadataTypeOf:
		x.SetType(c.typeRef(x.Type()))
		x.SetTypeToGet(c.typeRef(x.TypeToGet()))
	case *mutable.MetadataConstant:
		x.SetType(c.typeRef(x.Type()))
	}
	return cp
}

func (c *DeepCopier) constant(k metadata.MetadataConstant) metadata.MetadataConstant {
	if k == nil {
		return nil
	}
	if cp, ok := c.expression(k).(metadata.MetadataConstant); ok {
		return cp
	}
	return k
}

func (c *DeepCopier) namedArgument(n metadata.MetadataNamedArgument) metadata.MetadataNamedArgument {
	if n == nil {
		return nil
	}
	if cp, ok := c.expression(n).(metadata.MetadataNamedArgument); ok {
		return cp
	}
	return n
}
