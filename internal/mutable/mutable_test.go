package mutable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/intern"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

// library builds assembly Lib with namespace Lib holding Widget and
// Box`1, Box having a nested type Slot, a field and two methods.
type library struct {
	f      metadata.InternFactory
	asm    *mutable.Assembly
	widget *mutable.NamespaceTypeDefinition
	box    *mutable.NamespaceTypeDefinition
	slot   *mutable.NestedTypeDefinition
	value  *mutable.FieldDefinition
	get    *mutable.MethodDefinition
	set    *mutable.MethodDefinition
}

func newLibrary(t *testing.T) *library {
	t.Helper()
	return newLibraryOn(t, intern.New())
}

// newLibraryOn builds the library on f, so its references can be compared
// with references interned by the same factory.
func newLibraryOn(t *testing.T, f metadata.InternFactory) *library {
	t.Helper()
	l := &library{f: f, asm: mutable.NewAssembly("Lib", metadata.Version{Major: 2})}
	root, ok := l.asm.UnitNamespaceRoot().(*mutable.RootUnitNamespace)
	require.True(t, ok)
	ns := mutable.NewNestedUnitNamespace(root, "Lib")
	root.AddMember(ns)

	l.widget = mutable.NewNamespaceTypeDefinition(ns, "Widget", l.f)
	ns.AddMember(l.widget)

	l.box = mutable.NewNamespaceTypeDefinition(ns, "Box", l.f)
	param := mutable.NewGenericTypeParameter(l.box, "T", 0, l.f)
	l.box.SetGenericParameters([]metadata.GenericTypeParameter{param})
	l.box.SetGenericParameterCount(1)
	ns.AddMember(l.box)

	l.slot = mutable.NewNestedTypeDefinition(l.box, "Slot", l.f)
	l.box.AddNestedType(l.slot)

	l.value = mutable.NewFieldDefinition(l.box, "value", param, l.f)
	l.box.AddField(l.value)

	l.get = mutable.NewMethodDefinition(l.box, "Get", param, l.f)
	l.box.AddMethod(l.get)
	l.set = mutable.NewMethodDefinition(l.box, "Set", nil, l.f)
	l.set.AddParameter(mutable.NewParameterDefinition(l.set, "v", 0, param))
	l.box.AddMethod(l.set)

	l.asm.SetAllTypes([]metadata.NamedTypeDefinition{l.widget, l.box, l.slot})
	return l
}

// ref returns a reference to Lib.name through an assembly reference
// resolved to l.asm, or left unresolved.
func (l *library) ref(name string, arity int, resolved bool) *mutable.NamespaceTypeReference {
	ar := mutable.NewAssemblyReference("Lib", l.asm.Version())
	if resolved {
		ar.SetResolvedAssembly(l.asm)
	}
	ns := mutable.NewNestedUnitNamespaceReference(mutable.NewRootUnitNamespaceReference(ar), "Lib")
	return mutable.NewNamespaceTypeReference(ns, name, arity, l.f)
}

func TestNamespaceTypeReferenceResolves(t *testing.T) {
	l := newLibrary(t)

	assert.Same(t, l.widget, l.ref("Widget", 0, true).ResolvedType())
	assert.Same(t, l.box, l.ref("Box", 1, true).ResolvedType())

	// Arity is part of the name.
	assert.True(t, mutable.IsDummy(l.ref("Box", 0, true).ResolvedType()))
	assert.True(t, mutable.IsDummy(l.ref("Gadget", 0, true).ResolvedType()))
}

func TestUnresolvedUnitYieldsDummies(t *testing.T) {
	l := newLibrary(t)
	r := l.ref("Widget", 0, false)

	ar := r.ContainingUnitNamespace().Unit().(metadata.AssemblyReference)
	assert.Same(t, mutable.DummyAssembly, ar.ResolvedAssembly())
	assert.True(t, mutable.IsDummy(r.ResolvedType()))
}

func TestNestedAndInstanceReferencesResolve(t *testing.T) {
	l := newLibrary(t)
	box := l.ref("Box", 1, true)

	slot := mutable.NewNestedTypeReference(box, "Slot", 0, l.f)
	assert.Same(t, l.slot, slot.ResolvedType())

	inst := mutable.NewGenericTypeInstanceReference(box, []metadata.TypeReference{l.ref("Widget", 0, true)}, l.f)
	assert.Same(t, l.box, inst.ResolvedType())

	specialized := mutable.NewSpecializedNestedTypeReference(inst, slot, l.f)
	assert.Same(t, l.slot, specialized.ResolvedType())
}

func TestMemberReferencesResolve(t *testing.T) {
	l := newLibrary(t)
	box := l.ref("Box", 1, true)

	field := mutable.NewFieldReference(box, "value", nil, l.f)
	assert.Same(t, l.value, field.ResolvedField())
	assert.True(t, mutable.IsDummy(mutable.NewFieldReference(box, "missing", nil, l.f).ResolvedField()))

	get := mutable.NewMethodReference(box, "Get", nil, l.f)
	assert.Same(t, l.get, get.ResolvedMethod())

	// Set takes one parameter; a reference without parameters does not match.
	set := mutable.NewMethodReference(box, "Set", nil, l.f)
	assert.True(t, mutable.IsDummy(set.ResolvedMethod()))
	set.SetParameters([]metadata.ParameterTypeInformation{mutable.NewParameterTypeInformation(set, 0, l.ref("Widget", 0, true))})
	assert.Same(t, l.set, set.ResolvedMethod())
}

func TestDefinitionsResolveToThemselves(t *testing.T) {
	l := newLibrary(t)
	assert.Same(t, l.box, l.box.ResolvedType())
	assert.Same(t, l.value, l.value.ResolvedField())
	assert.Same(t, l.get, l.get.ResolvedMethod())
	assert.Same(t, l.asm, l.asm.ResolvedAssembly())
}

func TestDummies(t *testing.T) {
	for _, d := range []any{
		mutable.DummyAssembly,
		mutable.DummyModule,
		mutable.DummyNamespace,
		mutable.DummyType,
		mutable.DummyMethod,
		mutable.DummyField,
	} {
		assert.True(t, mutable.IsDummy(d), "%T", d)
	}
	assert.False(t, mutable.IsDummy(mutable.NewModule("Core")))
	assert.False(t, mutable.IsDummy(nil))
	assert.False(t, mutable.IsDummy("<dummy>"))

	assert.Equal(t, "<dummy>", mutable.DummyType.Name())
	assert.Same(t, mutable.DummyType, mutable.DummyMethod.ContainingTypeDefinition())
	assert.Same(t, mutable.DummyModule, mutable.DummyNamespace.Unit())
}

func TestCopyDoesNotAliasSlices(t *testing.T) {
	orig := mutable.NewAssemblyReference("Lib", metadata.Version{Major: 1})
	orig.SetPublicKeyToken([]byte{1, 2, 3})
	orig.SetAliases([]string{"lib"})

	cp := &mutable.AssemblyReference{}
	cp.Copy(orig, nil)
	require.Equal(t, orig.PublicKeyToken(), cp.PublicKeyToken())

	cp.PublicKeyToken()[0] = 9
	cp.Aliases()[0] = "other"
	assert.Equal(t, []byte{1, 2, 3}, orig.PublicKeyToken())
	assert.Equal(t, []string{"lib"}, orig.Aliases())
}

func TestCopyTypeDefinitionKeepsChildren(t *testing.T) {
	l := newLibrary(t)

	cp := &mutable.NamespaceTypeDefinition{}
	cp.Copy(l.box, l.f)
	assert.Equal(t, "Box", cp.Name())
	assert.Equal(t, 1, cp.GenericParameterCount())
	require.Len(t, cp.Fields(), 1)
	assert.Same(t, l.value, cp.Fields()[0])

	// The lists are the copy's own.
	cp.AddField(mutable.NewFieldDefinition(cp, "extra", nil, l.f))
	assert.Len(t, l.box.Fields(), 1)
}

func TestSameType(t *testing.T) {
	l := newLibrary(t)
	a := l.ref("Widget", 0, true)
	b := l.ref("Widget", 0, false)

	assert.True(t, mutable.SameType(a, a))
	assert.True(t, mutable.SameType(a, b))
	assert.False(t, mutable.SameType(a, l.ref("Box", 1, true)))
	assert.True(t, mutable.SameType(nil, nil))
	assert.False(t, mutable.SameType(a, nil))
}

func TestGenericParameterDerivability(t *testing.T) {
	h := host.New(host.DefaultCoreAssembly)
	l := newLibraryOn(t, h.InternFactory())
	widget := l.ref("Widget", 0, true)

	p := mutable.NewGenericTypeParameter(l.box, "U", 1, l.f)
	p.SetPlatformType(h.PlatformType())
	assert.False(t, p.IsReferenceType())
	assert.False(t, p.IsValueType())

	// System.Object says nothing about the parameter.
	p.SetConstraints([]metadata.TypeReference{h.Platform().SystemObject()})
	assert.False(t, p.IsReferenceType())

	p.SetConstraints([]metadata.TypeReference{widget})
	assert.True(t, p.IsReferenceType())

	l.widget.SetFlags(metadata.TypeFlags{IsInterface: true})
	p.SetConstraints([]metadata.TypeReference{widget})
	assert.False(t, p.IsReferenceType())

	p.SetGenericFlags(metadata.GenericParameterFlags{MustBeValueType: true})
	assert.True(t, p.IsValueType())
	assert.False(t, p.IsReferenceType())

	// Derivability follows a constraint that is another parameter.
	q := mutable.NewGenericTypeParameter(l.box, "V", 2, l.f)
	q.SetConstraints([]metadata.TypeReference{p})
	assert.True(t, q.IsValueType())

	r := mutable.NewGenericTypeParameter(l.box, "W", 3, l.f)
	r.SetGenericFlags(metadata.GenericParameterFlags{MustBeReferenceType: true})
	q.SetConstraints([]metadata.TypeReference{r})
	assert.True(t, q.IsReferenceType())
	assert.False(t, q.IsValueType())
}

func TestHelperMembersStayPendingWhenPeeked(t *testing.T) {
	l := newLibrary(t)
	first := mutable.NewFieldDefinition(l.box, "<>first", nil, l.f)
	l.box.SetPrivateHelperMembers([]metadata.TypeDefinitionMember{first})

	cp := &mutable.NamespaceTypeDefinition{}
	cp.Copy(l.box, l.f)
	assert.Equal(t, []metadata.TypeDefinitionMember{first}, mutable.HelperMembersOf(cp))

	// Peeking did not take the list over, so the source still shows through.
	second := mutable.NewFieldDefinition(l.box, "<>second", nil, l.f)
	l.box.SetPrivateHelperMembers([]metadata.TypeDefinitionMember{second})
	assert.Equal(t, []metadata.TypeDefinitionMember{second}, cp.PrivateHelperMembers())

	l.box.SetPrivateHelperMembers(nil)
	assert.Equal(t, []metadata.TypeDefinitionMember{second}, cp.PrivateHelperMembers())
	assert.Empty(t, mutable.HelperMembersOf(l.box))
}
