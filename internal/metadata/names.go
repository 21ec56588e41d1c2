package metadata

import (
	"strconv"
	"strings"
)

// TypeName formats ref in IL assembler notation without the defining unit:
// Ns.Outer`1+Inner, G`1<int32>, T[], T[,], T*, T&, !0, !!0. The generic
// arity suffix is always present on generic named types, so two types that
// differ only in arity get different names.
func TypeName(ref TypeReference) string {
	var b strings.Builder
	writeTypeName(&b, ref, false)
	return b.String()
}

// QualifiedTypeName is TypeName with namespace types prefixed by the name
// of their unit, as in [mscorlib]System.String.
func QualifiedTypeName(ref TypeReference) string {
	var b strings.Builder
	writeTypeName(&b, ref, true)
	return b.String()
}

// NamespaceName returns the dotted name of a namespace reference; the root
// namespace has the empty name.
func NamespaceName(ns UnitNamespaceReference) string {
	nested, ok := ns.(NestedUnitNamespaceReference)
	if !ok {
		return ""
	}
	outer := ""
	if c := nested.ContainingUnitNamespace(); c != nil {
		outer = NamespaceName(c)
	}
	if outer == "" {
		return nested.Name()
	}
	return outer + "." + nested.Name()
}

// MethodName formats a method reference as Type::Name(params).
func MethodName(ref MethodReference) string {
	var b strings.Builder
	if ref.ContainingType() != nil {
		writeTypeName(&b, ref.ContainingType(), false)
		b.WriteString("::")
	}
	b.WriteString(ref.Name())
	if inst, ok := ref.(GenericMethodInstanceReference); ok {
		b.WriteString("<")
		for i, arg := range inst.GenericArguments() {
			if i > 0 {
				b.WriteString(",")
			}
			writeTypeName(&b, arg, false)
		}
		b.WriteString(">")
	} else if n := ref.GenericParameterCount(); n > 0 {
		b.WriteString("`")
		b.WriteString(strconv.Itoa(n))
	}
	writeParameters(&b, ref.Parameters(), false)
	return b.String()
}

// FieldName formats a field reference as Type::Name.
func FieldName(ref FieldReference) string {
	var b strings.Builder
	if ref.ContainingType() != nil {
		writeTypeName(&b, ref.ContainingType(), false)
		b.WriteString("::")
	}
	b.WriteString(ref.Name())
	return b.String()
}

func writeParameters(b *strings.Builder, params []ParameterTypeInformation, qualified bool) {
	b.WriteString("(")
	for i, p := range params {
		if i > 0 {
			b.WriteString(",")
		}
		writeTypeName(b, p.Type(), qualified)
		if p.IsByReference() {
			b.WriteString("&")
		}
	}
	b.WriteString(")")
}

func writeArity(b *strings.Builder, ref NamedTypeReference) {
	if n := ref.GenericParameterCount(); n > 0 {
		b.WriteString("`")
		b.WriteString(strconv.Itoa(n))
	}
}

func writeTypeName(b *strings.Builder, ref TypeReference, qualified bool) {
	switch r := ref.(type) {
	case nil:
		b.WriteString("<nil>")
	case GenericTypeInstanceReference:
		writeTypeName(b, r.GenericType(), qualified)
		b.WriteString("<")
		for i, arg := range r.GenericArguments() {
			if i > 0 {
				b.WriteString(",")
			}
			writeTypeName(b, arg, qualified)
		}
		b.WriteString(">")
	case ArrayTypeReference:
		writeTypeName(b, r.ElementType(), qualified)
		if r.IsVector() {
			b.WriteString("[]")
		} else {
			b.WriteString("[")
			for i := uint32(1); i < r.Rank(); i++ {
				b.WriteString(",")
			}
			b.WriteString("]")
		}
	case PointerTypeReference:
		writeTypeName(b, r.TargetType(), qualified)
		b.WriteString("*")
	case ManagedPointerTypeReference:
		writeTypeName(b, r.TargetType(), qualified)
		b.WriteString("&")
	case ModifiedTypeReference:
		writeTypeName(b, r.UnmodifiedType(), qualified)
		for _, m := range r.CustomModifiers() {
			if m.IsOptional() {
				b.WriteString(" modopt(")
			} else {
				b.WriteString(" modreq(")
			}
			writeTypeName(b, m.Modifier(), qualified)
			b.WriteString(")")
		}
	case FunctionPointerTypeReference:
		b.WriteString("method ")
		writeTypeName(b, r.Type(), qualified)
		b.WriteString(" *")
		writeParameters(b, r.Parameters(), qualified)
	case GenericMethodParameterReference:
		b.WriteString("!!")
		b.WriteString(strconv.Itoa(r.Index()))
	case GenericTypeParameterReference:
		b.WriteString("!")
		b.WriteString(strconv.Itoa(r.Index()))
	case NestedTypeReference:
		writeTypeName(b, r.ContainingType(), qualified)
		b.WriteString("+")
		b.WriteString(r.Name())
		writeArity(b, r)
	case NamespaceTypeReference:
		ns := r.ContainingUnitNamespace()
		if qualified && ns != nil && ns.Unit() != nil {
			b.WriteString("[")
			b.WriteString(ns.Unit().Name())
			b.WriteString("]")
		}
		if ns != nil {
			if name := NamespaceName(ns); name != "" {
				b.WriteString(name)
				b.WriteString(".")
			}
		}
		b.WriteString(r.Name())
		writeArity(b, r)
	case NamedTypeReference:
		b.WriteString(r.Name())
		writeArity(b, r)
	default:
		b.WriteString("<?>")
	}
}
