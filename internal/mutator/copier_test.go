package mutator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
	"github.com/il2js/metamodel/internal/mutator"
)

func copyApp(t *testing.T) (orig metadata.Assembly, cp *mutable.Assembly, c *mutator.DeepCopier) {
	t.Helper()
	h, fx := loadFixture(t, appFixture)
	orig = assemblyNamed(t, fx, "App")
	c = mutator.NewDeepCopier(h, mutator.WithTracing(false))
	cp, err := c.CopyAssembly(context.Background(), orig)
	require.NoError(t, err)
	require.NotNil(t, cp)
	return orig, cp, c
}

func TestCopyAssemblyIsFresh(t *testing.T) {
	orig, cp, _ := copyApp(t)

	assert.NotSame(t, orig, cp)
	assert.Equal(t, "App", cp.Name())
	assert.Equal(t, metadata.Version{Major: 1, Minor: 2}, cp.Version())
	assert.Equal(t, orig.Kind(), cp.Kind())

	require.Len(t, cp.AllTypes(), len(orig.AllTypes()))
	for i, td := range cp.AllTypes() {
		assert.NotSame(t, orig.AllTypes()[i], td, "type %s is shared", metadata.TypeName(td))
	}
	assert.NotSame(t, orig.UnitNamespaceRoot(), cp.UnitNamespaceRoot())
	assert.Same(t, cp, cp.UnitNamespaceRoot().Unit())
}

func TestCopyPreservesTypeOrder(t *testing.T) {
	orig, cp, _ := copyApp(t)
	assert.Equal(t, typeNames(orig.AllTypes()), typeNames(cp.AllTypes()))
}

func TestCopyBackPointers(t *testing.T) {
	_, cp, _ := copyApp(t)

	box := typeNamed(t, cp, "Ns.Box`1")
	for _, f := range box.Fields() {
		assert.Same(t, box, f.ContainingTypeDefinition())
	}
	for _, m := range box.Methods() {
		assert.Same(t, box, m.ContainingTypeDefinition())
	}
	require.Len(t, box.NestedTypes(), 1)
	assert.Same(t, box, box.NestedTypes()[0].ContainingTypeDefinition())

	program := typeNamed(t, cp, "Ns.Program")
	main := methodNamed(t, program, "Main")
	require.NotNil(t, main.Body())
	assert.Same(t, main, main.Body().MethodDefinition())
	for _, l := range main.Body().LocalVariables() {
		assert.Same(t, main, l.MethodDefinition())
	}
	for _, p := range main.ParameterDefinitions() {
		assert.Same(t, main, p.ContainingSignature())
	}
}

func TestCopyTerminatesOnCycles(t *testing.T) {
	_, cp, _ := copyApp(t)

	box := typeNamed(t, cp, "Ns.Box`1")
	require.Len(t, box.GenericParameters(), 1)
	param := box.GenericParameters()[0]
	assert.Same(t, box, param.DefiningTypeDefinition())

	// value is typed by the box's own parameter.
	assert.Same(t, param, fieldNamed(t, box, "value").Type())
	assert.Same(t, param, methodNamed(t, box, "Get").Type())
}

func TestCopyOperandsPointIntoCopy(t *testing.T) {
	_, cp, _ := copyApp(t)

	box := typeNamed(t, cp, "Ns.Box`1")
	program := typeNamed(t, cp, "Ns.Program")
	main := methodNamed(t, program, "Main")
	ops := main.Body().Operations()
	require.Len(t, ops, 10)

	newobj, ok := ops[0].Value().(metadata.SpecializedMethodReference)
	require.True(t, ok, "newobj operand is %T", ops[0].Value())
	assert.Same(t, methodNamed(t, box, ".ctor"), newobj.UnspecializedVersion())

	b := main.Body().LocalVariables()[0]
	assert.Same(t, b, ops[1].Value())
	assert.Same(t, b, ops[2].Value())
	assert.Same(t, fieldNamed(t, program, "Count"), ops[4].Value())
	assert.Equal(t, "hello", ops[5].Value())
	assert.Same(t, main.ParameterDefinitions()[0], ops[7].Value())

	assert.Same(t, main, cp.EntryPoint())
}

func TestCopySharesNothingWithSource(t *testing.T) {
	orig, cp, _ := copyApp(t)

	origProgram := typeNamed(t, orig, "Ns.Program")
	program := typeNamed(t, cp, "Ns.Program")

	origCount := fieldNamed(t, origProgram, "Count").Type()
	count := fieldNamed(t, program, "Count").Type()
	assert.NotSame(t, origCount, count)
	assert.Equal(t, "System.Int32", metadata.TypeName(count))

	origMain := methodNamed(t, origProgram, "Main")
	main := methodNamed(t, program, "Main")
	for i, op := range main.Body().Operations() {
		assert.NotSame(t, origMain.Body().Operations()[i], op)
	}
}

func TestCopyKeepsReferenceSharing(t *testing.T) {
	orig, cp, _ := copyApp(t)

	origProgram := typeNamed(t, orig, "Ns.Program")
	origWidget := fieldNamed(t, origProgram, "Other").Type()
	origArray := methodNamed(t, origProgram, "Main").Body().LocalVariables()[1].Type().(metadata.ArrayTypeReference)
	require.Same(t, origWidget, origArray.ElementType(), "fixture shares the reference")

	program := typeNamed(t, cp, "Ns.Program")
	widget := fieldNamed(t, program, "Other").Type()
	array, ok := methodNamed(t, program, "Main").Body().LocalVariables()[1].Type().(metadata.ArrayTypeReference)
	require.True(t, ok)
	assert.Same(t, widget, array.ElementType())
	assert.NotSame(t, origWidget, widget)
	assert.Equal(t, "[Lib]Lib.Widget", metadata.QualifiedTypeName(widget))
}

func TestCopyKeepsForeignResolution(t *testing.T) {
	orig, cp, _ := copyApp(t)

	var origLib, lib metadata.AssemblyReference
	for _, r := range orig.AssemblyReferences() {
		if r.Name() == "Lib" {
			origLib = r
		}
	}
	for _, r := range cp.AssemblyReferences() {
		if r.Name() == "Lib" {
			lib = r
		}
	}
	require.NotNil(t, origLib)
	require.NotNil(t, lib)
	assert.NotSame(t, origLib, lib)
	require.NotNil(t, origLib.ResolvedAssembly())
	assert.Same(t, origLib.ResolvedAssembly(), lib.ResolvedAssembly())
}

func TestCopyModuleOfAssemblyCopiesAssembly(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	orig := assemblyNamed(t, fx, "App")

	c := mutator.NewDeepCopier(h, mutator.WithTracing(false))
	m, err := c.CopyModule(context.Background(), orig)
	require.NoError(t, err)
	assert.Equal(t, "App", m.Name())
	assert.Equal(t, typeNames(orig.AllTypes()), typeNames(m.AllTypes()))
}

func TestCopyPlainModule(t *testing.T) {
	h, fx := loadFixture(t, moduleFixture)
	orig := fx.Unit("Core")

	c := mutator.NewDeepCopier(h, mutator.WithTracing(false))
	cp, err := c.CopyModule(context.Background(), orig)
	require.NoError(t, err)
	require.Len(t, cp.AllTypes(), 1)

	node := cp.AllTypes()[0]
	assert.NotSame(t, orig.AllTypes()[0], node)
	assert.Same(t, node, fieldNamed(t, node, "next").Type())
}

func TestGetMutableCopy(t *testing.T) {
	orig, cp, c := copyApp(t)

	origProgram := typeNamed(t, orig, "Ns.Program")
	got := c.GetMutableCopy(origProgram)
	assert.Same(t, typeNamed(t, cp, "Ns.Program"), got)
	assert.Same(t, got, c.GetMutableCopy(origProgram))

	assert.Nil(t, c.GetMutableCopy(nil))
	assert.Same(t, mutable.DummyType, c.GetMutableCopy(mutable.DummyType))
}

func TestGetMutableCopyAllocatesShell(t *testing.T) {
	h, fx := loadFixture(t, moduleFixture)
	c := mutator.NewDeepCopier(h, mutator.WithTracing(false))

	orig := fx.Unit("Core").AllTypes()[0]
	first := c.GetMutableCopy(orig)
	require.NotNil(t, first)
	assert.NotSame(t, orig, first)
	assert.Same(t, first, c.GetMutableCopy(orig))
}

func TestCopyNilRoot(t *testing.T) {
	h := loadHost()
	c := mutator.NewDeepCopier(h, mutator.WithTracing(false))

	_, err := c.CopyModule(context.Background(), nil)
	assert.ErrorIs(t, err, mutator.ErrNilRoot)
	_, err = c.CopyAssembly(context.Background(), nil)
	assert.ErrorIs(t, err, mutator.ErrNilRoot)
}

func TestCopyCancelledContext(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	c := mutator.NewDeepCopier(h, mutator.WithTracing(false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cp, err := c.CopyAssembly(ctx, assemblyNamed(t, fx, "App"))
	assert.Nil(t, cp)
	assert.ErrorIs(t, err, mutator.ErrTraversalCancelled)
	assert.ErrorIs(t, err, context.Canceled)

	// The copier is usable again afterwards.
	cp, err = c.CopyAssembly(context.Background(), assemblyNamed(t, fx, "App"))
	require.NoError(t, err)
	assert.NotNil(t, cp)
}

func TestCopyAfterStop(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	orig := assemblyNamed(t, fx, "App")
	c := mutator.NewDeepCopier(h, mutator.WithTracing(false))
	c.Stop()
	c.Stop()

	cp, err := c.CopyAssembly(context.Background(), orig)
	require.NoError(t, err)
	assert.NotSame(t, orig, cp)
	assert.Equal(t, "App", cp.Name())
}

func TestCopyIsRepeatable(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	orig := assemblyNamed(t, fx, "App")
	c := mutator.NewDeepCopier(h, mutator.WithTracing(false))

	first, err := c.CopyAssembly(context.Background(), orig)
	require.NoError(t, err)
	second, err := c.CopyAssembly(context.Background(), orig)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.NotSame(t, typeNamed(t, first, "Ns.Program"), typeNamed(t, second, "Ns.Program"))
	assert.Equal(t, typeNames(first.AllTypes()), typeNames(second.AllTypes()))
}

func TestCopyPrivateHelperMembers(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	orig := assemblyNamed(t, fx, "App")
	program, ok := typeNamed(t, orig, "Ns.Program").(*mutable.NamespaceTypeDefinition)
	require.True(t, ok)
	helper := mutable.NewFieldDefinition(program, "<>cache", h.Platform().SystemInt32(), h.InternFactory())
	program.SetPrivateHelperMembers([]metadata.TypeDefinitionMember{helper})

	cp, err := mutator.NewDeepCopier(h, mutator.WithTracing(false)).CopyAssembly(context.Background(), orig)
	require.NoError(t, err)

	copied := typeNamed(t, cp, "Ns.Program")
	require.Len(t, copied.PrivateHelperMembers(), 1)
	field, ok := copied.PrivateHelperMembers()[0].(metadata.FieldDefinition)
	require.True(t, ok)
	assert.NotSame(t, helper, field)
	assert.Equal(t, "<>cache", field.Name())
	assert.Same(t, copied, field.ContainingTypeDefinition())
	assert.Len(t, program.PrivateHelperMembers(), 1)
}

func TestCopyFlatModule(t *testing.T) {
	h := loadHost()
	f := h.InternFactory()
	m := mutable.NewModule("Flat")
	root, ok := m.UnitNamespaceRoot().(*mutable.RootUnitNamespace)
	require.True(t, ok)
	foo := mutable.NewNamespaceTypeDefinition(root, "Foo", f)
	root.AddMember(foo)
	foo.AddField(mutable.NewFieldDefinition(foo, "x", h.Platform().SystemInt32(), f))
	method := mutable.NewMethodDefinition(foo, "M", h.Platform().SystemVoid(), f)
	method.SetBody(mutable.NewMethodBody(method))
	foo.AddMethod(method)
	m.SetAllTypes([]metadata.NamedTypeDefinition{foo})

	cp, err := mutator.NewDeepCopier(h, mutator.WithTracing(false)).CopyModule(context.Background(), m)
	require.NoError(t, err)
	assert.NotSame(t, m, cp)

	require.Len(t, cp.AllTypes(), 1)
	copied := cp.AllTypes()[0]
	assert.Equal(t, "Foo", metadata.TypeName(copied))
	assert.NotSame(t, foo, copied)

	require.Len(t, copied.Fields(), 1)
	x := copied.Fields()[0]
	assert.Equal(t, "x", x.Name())
	assert.True(t, mutable.SameType(h.Platform().SystemInt32(), x.Type()))

	require.Len(t, copied.Methods(), 1)
	mm := copied.Methods()[0]
	assert.Equal(t, "M", mm.Name())
	assert.Empty(t, mm.ParameterDefinitions())
	require.NotNil(t, mm.Body())
	assert.Empty(t, mm.Body().Operations())
}

func TestCopyDeeplyNestedTypes(t *testing.T) {
	const depth = 1000
	h := loadHost()
	f := h.InternFactory()
	m := mutable.NewModule("Deep")
	root, ok := m.UnitNamespaceRoot().(*mutable.RootUnitNamespace)
	require.True(t, ok)
	outer := mutable.NewNamespaceTypeDefinition(root, "Outer", f)
	root.AddMember(outer)

	// Every level holds a field typed by the level around it.
	all := []metadata.NamedTypeDefinition{outer}
	var parent metadata.TypeDefinition = outer
	for i := 0; i < depth; i++ {
		n := mutable.NewNestedTypeDefinition(parent, "Level", f)
		n.AddField(mutable.NewFieldDefinition(n, "up", parent, f))
		switch p := parent.(type) {
		case *mutable.NamespaceTypeDefinition:
			p.AddNestedType(n)
		case *mutable.NestedTypeDefinition:
			p.AddNestedType(n)
		}
		all = append(all, n)
		parent = n
	}
	m.SetAllTypes(all)

	cp, err := mutator.NewDeepCopier(h, mutator.WithTracing(false)).CopyModule(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, cp.AllTypes(), depth+1)

	for i, td := range cp.AllTypes()[1:] {
		container := cp.AllTypes()[i]
		nested, ok := td.(metadata.NestedTypeDefinition)
		require.True(t, ok)
		require.NotSame(t, all[i+1], td)
		require.Same(t, container, nested.ContainingTypeDefinition(), "level %d", i+1)
		require.Same(t, container, td.Fields()[0].Type(), "level %d", i+1)
	}
}
