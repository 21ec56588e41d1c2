// Package intern hands out integer keys for references. Two references get
// the same key exactly when they denote the same entity structurally.
package intern

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/il2js/metamodel/internal/metadata"
)

// Factory maps structural signatures to keys. Keys start at 1; 0 is never
// handed out. A Factory is safe for concurrent use.
type Factory struct {
	mu   sync.Mutex
	keys map[string]uint
}

// New returns an empty factory.
func New() *Factory {
	return &Factory{keys: make(map[string]uint)}
}

func (f *Factory) GetTypeReferenceInternedKey(ref metadata.TypeReference) uint {
	if ref == nil {
		return 0
	}
	return f.key("T:" + TypeSignature(ref))
}

func (f *Factory) GetFieldInternedKey(ref metadata.FieldReference) uint {
	if ref == nil {
		return 0
	}
	return f.key("F:" + FieldSignature(ref))
}

func (f *Factory) GetMethodInternedKey(ref metadata.MethodReference) uint {
	if ref == nil {
		return 0
	}
	return f.key("M:" + MethodSignature(ref))
}

// Len returns the number of keys handed out so far.
func (f *Factory) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys)
}

func (f *Factory) key(sig string) uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	if k, ok := f.keys[sig]; ok {
		return k
	}
	k := uint(len(f.keys) + 1)
	f.keys[sig] = k
	return k
}

// TypeSignature is the structural identity of a type reference. Generic
// parameters are qualified by their owner so !0 of two types differ.
func TypeSignature(ref metadata.TypeReference) string {
	var b strings.Builder
	writeType(&b, ref)
	return b.String()
}

// FieldSignature is the structural identity of a field reference.
func FieldSignature(ref metadata.FieldReference) string {
	var b strings.Builder
	writeType(&b, ref.ContainingType())
	b.WriteString("::")
	b.WriteString(ref.Name())
	b.WriteString(":")
	writeType(&b, ref.Type())
	return b.String()
}

// MethodSignature is the structural identity of a method reference.
func MethodSignature(ref metadata.MethodReference) string {
	var b strings.Builder
	writeMethod(&b, ref)
	return b.String()
}

func writeMethod(b *strings.Builder, ref metadata.MethodReference) {
	if inst, ok := ref.(metadata.GenericMethodInstanceReference); ok && inst.GenericMethod() != nil {
		writeMethod(b, inst.GenericMethod())
		writeArgs(b, inst.GenericArguments())
		return
	}
	writeMethodOwner(b, ref)
	b.WriteString("(")
	for i, p := range ref.Parameters() {
		if i > 0 {
			b.WriteString(",")
		}
		if p.IsByReference() {
			b.WriteString("ref ")
		}
		writeType(b, p.Type())
	}
	if extra := ref.ExtraParameters(); len(extra) > 0 {
		b.WriteString(",...")
		for _, p := range extra {
			b.WriteString(",")
			writeType(b, p.Type())
		}
	}
	b.WriteString("):")
	writeType(b, ref.Type())
}

// writeMethodOwner writes Type::Name`n. It is all that generic method
// parameters refer to, which keeps signatures of methods whose parameters
// mention their own generic parameters finite.
func writeMethodOwner(b *strings.Builder, ref metadata.MethodReference) {
	writeType(b, ref.ContainingType())
	b.WriteString("::")
	b.WriteString(ref.Name())
	if n := ref.GenericParameterCount(); n > 0 {
		b.WriteString("`")
		b.WriteString(strconv.Itoa(n))
	}
}

func writeArgs(b *strings.Builder, args []metadata.TypeReference) {
	b.WriteString("<")
	for i, a := range args {
		if i > 0 {
			b.WriteString(",")
		}
		writeType(b, a)
	}
	b.WriteString(">")
}

func writeType(b *strings.Builder, ref metadata.TypeReference) {
	switch r := ref.(type) {
	case nil:
		b.WriteString("?")
	case metadata.GenericTypeInstanceReference:
		writeType(b, r.GenericType())
		writeArgs(b, r.GenericArguments())
	case metadata.ArrayTypeReference:
		writeType(b, r.ElementType())
		if r.IsVector() {
			b.WriteString("[]")
			return
		}
		b.WriteString("[")
		for i := uint32(0); i < r.Rank(); i++ {
			if i > 0 {
				b.WriteString(",")
			}
			if i < uint32(len(r.LowerBounds())) {
				b.WriteString(strconv.FormatInt(r.LowerBounds()[i], 10))
				b.WriteString("...")
			}
			if i < uint32(len(r.Sizes())) {
				b.WriteString(strconv.FormatUint(r.Sizes()[i], 10))
			}
		}
		b.WriteString("]")
	case metadata.PointerTypeReference:
		writeType(b, r.TargetType())
		b.WriteString("*")
	case metadata.ManagedPointerTypeReference:
		writeType(b, r.TargetType())
		b.WriteString("&")
	case metadata.ModifiedTypeReference:
		writeType(b, r.UnmodifiedType())
		for _, m := range r.CustomModifiers() {
			if m.IsOptional() {
				b.WriteString(" modopt(")
			} else {
				b.WriteString(" modreq(")
			}
			writeType(b, m.Modifier())
			b.WriteString(")")
		}
	case metadata.FunctionPointerTypeReference:
		b.WriteString("method ")
		writeType(b, r.Type())
		b.WriteString(" *(")
		for i, p := range r.Parameters() {
			if i > 0 {
				b.WriteString(",")
			}
			writeType(b, p.Type())
		}
		b.WriteString(")")
	case metadata.GenericMethodParameterReference:
		if m := r.DefiningMethod(); m != nil {
			writeMethodOwner(b, m)
		}
		b.WriteString("!!")
		b.WriteString(strconv.Itoa(r.Index()))
	case metadata.GenericTypeParameterReference:
		writeType(b, r.DefiningType())
		b.WriteString("!")
		b.WriteString(strconv.Itoa(r.Index()))
	case metadata.NestedTypeReference:
		writeType(b, r.ContainingType())
		b.WriteString("/")
		writeName(b, r)
	case metadata.NamespaceTypeReference:
		b.WriteString("[")
		if ns := r.ContainingUnitNamespace(); ns != nil {
			if u := ns.Unit(); u != nil {
				b.WriteString(u.Name())
			}
			b.WriteString("]")
			if name := metadata.NamespaceName(ns); name != "" {
				b.WriteString(name)
				b.WriteString(".")
			}
		} else {
			b.WriteString("]")
		}
		writeName(b, r)
	default:
		fmt.Fprintf(b, "?%T", ref)
	}
}

func writeName(b *strings.Builder, ref metadata.NamedTypeReference) {
	b.WriteString(ref.Name())
	if n := ref.GenericParameterCount(); n > 0 {
		b.WriteString("`")
		b.WriteString(strconv.Itoa(n))
	}
}
