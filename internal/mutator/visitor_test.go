package mutator_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
	"github.com/il2js/metamodel/internal/mutator"
)

// frozenModule hides the mutable node behind the interface, so the
// visitor treats it as immutable.
type frozenModule struct {
	metadata.Module
}

// renameTo returns a hook replacing every reference named from with to.
func renameTo(from string, to metadata.TypeReference) func(metadata.TypeReference) metadata.TypeReference {
	return func(r metadata.TypeReference) metadata.TypeReference {
		if _, ok := r.(metadata.NamespaceTypeReference); ok && metadata.TypeName(r) == from {
			return to
		}
		return nil
	}
}

func gadgetFor(h *host.Host, widget metadata.TypeReference) metadata.TypeReference {
	ns := widget.(metadata.NamespaceTypeReference).ContainingUnitNamespace()
	return mutable.NewNamespaceTypeReference(ns, "Gadget", 0, h.InternFactory())
}

func TestVisitWithoutHooksKeepsEverything(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	app := assemblyNamed(t, fx, "App")
	program := typeNamed(t, app, "Ns.Program")
	main := methodNamed(t, program, "Main")

	var fieldTypes []metadata.TypeReference
	for _, f := range program.Fields() {
		fieldTypes = append(fieldTypes, f.Type())
	}
	var values []any
	for _, op := range main.Body().Operations() {
		values = append(values, op.Value())
	}
	types := app.AllTypes()

	v := mutator.NewMutatingVisitor(h, false, mutator.WithTracing(false))
	out, err := v.VisitAssembly(context.Background(), app)
	require.NoError(t, err)
	assert.Same(t, app, out)

	for i, f := range program.Fields() {
		assert.Same(t, fieldTypes[i], f.Type(), "field %s", f.Name())
	}
	for i, op := range main.Body().Operations() {
		assert.Equal(t, values[i], op.Value(), "operation %d", i)
	}
	assert.Equal(t, typeNames(types), typeNames(app.AllTypes()))
	for i, td := range app.AllTypes() {
		assert.Same(t, types[i], td)
	}
}

func TestVisitRewritesTypeReference(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	app := assemblyNamed(t, fx, "App")
	program := typeNamed(t, app, "Ns.Program")
	main := methodNamed(t, program, "Main")

	widget := fieldNamed(t, program, "Other").Type()
	count := fieldNamed(t, program, "Count").Type()
	boxOfInt := main.Body().LocalVariables()[0].Type()
	array := main.Body().LocalVariables()[1].Type().(metadata.ArrayTypeReference)
	gadget := gadgetFor(h, widget)

	v := mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithHooks(mutator.Hooks{RewriteTypeReference: renameTo("Lib.Widget", gadget)}))
	_, err := v.VisitAssembly(context.Background(), app)
	require.NoError(t, err)

	assert.Same(t, gadget, fieldNamed(t, program, "Other").Type())
	assert.Same(t, count, fieldNamed(t, program, "Count").Type())
	assert.Same(t, boxOfInt, main.Body().LocalVariables()[0].Type())

	rebuilt, ok := main.Body().LocalVariables()[1].Type().(metadata.ArrayTypeReference)
	require.True(t, ok)
	assert.NotSame(t, array, rebuilt)
	assert.Same(t, gadget, rebuilt.ElementType())
	assert.True(t, rebuilt.IsVector())

	// The original array is left as it was.
	assert.Same(t, widget, array.ElementType())
}

func TestVisitRebuildsSpecializedReferences(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	app := assemblyNamed(t, fx, "App")
	box := typeNamed(t, app, "Ns.Box`1")
	program := typeNamed(t, app, "Ns.Program")
	main := methodNamed(t, program, "Main")

	call := main.Body().Operations()[3]
	before, ok := call.Value().(metadata.SpecializedMethodReference)
	require.True(t, ok, "callvirt operand is %T", call.Value())

	v := mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithHooks(mutator.Hooks{RewriteTypeReference: renameTo("System.Int32", h.Platform().SystemInt64())}))
	_, err := v.VisitAssembly(context.Background(), app)
	require.NoError(t, err)

	after, ok := call.Value().(metadata.SpecializedMethodReference)
	require.True(t, ok)
	assert.NotSame(t, before, after)
	assert.Equal(t, "Ns.Box`1<System.Int32>", metadata.TypeName(before.ContainingType()))
	assert.Equal(t, "Ns.Box`1<System.Int64>", metadata.TypeName(after.ContainingType()))
	assert.Same(t, methodNamed(t, box, "Get"), after.UnspecializedVersion())

	assert.Equal(t, "System.Int64", metadata.TypeName(fieldNamed(t, program, "Count").Type()))
	assert.Equal(t, "Ns.Box`1<System.Int64>", metadata.TypeName(main.Body().LocalVariables()[0].Type()))
}

func TestVisitTypeReferenceIsCached(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	program := typeNamed(t, assemblyNamed(t, fx, "App"), "Ns.Program")
	main := methodNamed(t, program, "Main")
	widget := fieldNamed(t, program, "Other").Type()
	array := main.Body().LocalVariables()[1].Type()
	gadget := gadgetFor(h, widget)

	v := mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithHooks(mutator.Hooks{RewriteTypeReference: renameTo("Lib.Widget", gadget)}))

	first := v.VisitTypeReference(array)
	require.NotSame(t, array, first)
	assert.Same(t, first, v.VisitTypeReference(array))
	assert.Same(t, gadget, v.VisitTypeReference(widget))

	count := fieldNamed(t, program, "Count").Type()
	assert.Same(t, count, v.VisitTypeReference(count))
	assert.Nil(t, v.VisitTypeReference(nil))
}

func TestVisitFieldAndMethodReferences(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	app := assemblyNamed(t, fx, "App")
	program := typeNamed(t, app, "Ns.Program")
	main := methodNamed(t, program, "Main")

	v := mutator.NewMutatingVisitor(h, false, mutator.WithTracing(false))

	// Definitions are never replaced through a reference slot.
	count := fieldNamed(t, program, "Count")
	assert.Same(t, count, v.VisitFieldReference(count))
	assert.Same(t, main, v.VisitMethodReference(main))

	call := main.Body().Operations()[3].Value().(metadata.MethodReference)
	assert.Same(t, call, v.VisitMethodReference(call))
}

func TestVisitObservesEveryNodeOnce(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	app := assemblyNamed(t, fx, "App")

	seen := make(map[any]int)
	v := mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithHooks(mutator.Hooks{Observe: func(n any) { seen[n]++ }}))
	_, err := v.VisitAssembly(context.Background(), app)
	require.NoError(t, err)

	for n, count := range seen {
		assert.Equal(t, 1, count, "%T observed %d times", n, count)
	}
	program := typeNamed(t, app, "Ns.Program")
	assert.Contains(t, seen, any(app))
	assert.Contains(t, seen, any(program))
	assert.Contains(t, seen, any(methodNamed(t, program, "Main")))
	assert.Contains(t, seen, any(fieldNamed(t, program, "Other").Type()))
	for _, r := range app.AssemblyReferences() {
		assert.Contains(t, seen, any(r))
	}
}

func TestVisitImmutableRoot(t *testing.T) {
	h, fx := loadFixture(t, moduleFixture)
	core := fx.Unit("Core")
	node := core.AllTypes()[0]
	frozen := frozenModule{core}

	t.Run("skipped", func(t *testing.T) {
		var seen []any
		v := mutator.NewMutatingVisitor(h, false,
			mutator.WithTracing(false),
			mutator.WithHooks(mutator.Hooks{Observe: func(n any) { seen = append(seen, n) }}))
		out, err := v.VisitModule(context.Background(), frozen)
		require.NoError(t, err)
		assert.Equal(t, frozen, out)
		assert.Equal(t, []any{frozen}, seen)
	})

	t.Run("walked", func(t *testing.T) {
		seen := make(map[any]bool)
		v := mutator.NewMutatingVisitor(h, true,
			mutator.WithTracing(false),
			mutator.WithHooks(mutator.Hooks{
				Observe:              func(n any) { seen[n] = true },
				RewriteTypeReference: renameTo("System.Double", h.Platform().SystemInt64()),
			}))
		_, err := v.VisitModule(context.Background(), frozen)
		require.NoError(t, err)
		assert.True(t, seen[node])
		// Mutable nodes below an immutable one are still rewritten.
		assert.Equal(t, "System.Int64", metadata.TypeName(fieldNamed(t, node, "weight").Type()))
	})
}

func TestVisitAfterStop(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	app := assemblyNamed(t, fx, "App")
	program := typeNamed(t, app, "Ns.Program")
	widget := fieldNamed(t, program, "Other").Type()

	called := false
	v := mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithHooks(mutator.Hooks{RewriteTypeReference: func(r metadata.TypeReference) metadata.TypeReference {
			called = true
			return nil
		}}))
	v.Stop()

	out, err := v.VisitAssembly(context.Background(), app)
	require.NoError(t, err)
	assert.Same(t, app, out)
	assert.False(t, called)
	assert.Same(t, widget, fieldNamed(t, program, "Other").Type())
	assert.Same(t, widget, v.VisitTypeReference(widget))
}

func TestVisitBusy(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	app := assemblyNamed(t, fx, "App")
	lib := assemblyNamed(t, fx, "Lib")

	var v *mutator.MutatingVisitor
	var nested error
	asked := false
	v = mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithHooks(mutator.Hooks{Observe: func(n any) {
			if !asked {
				asked = true
				_, nested = v.VisitAssembly(context.Background(), lib)
			}
		}}))

	_, err := v.VisitAssembly(context.Background(), app)
	require.NoError(t, err)
	assert.ErrorIs(t, nested, mutator.ErrEngineBusy)

	// The engine is idle again once the outer traversal returned.
	_, err = v.VisitAssembly(context.Background(), lib)
	assert.NoError(t, err)
}

func TestVisitCancelledContext(t *testing.T) {
	h, fx := loadFixture(t, moduleFixture)
	v := mutator.NewMutatingVisitor(h, false, mutator.WithTracing(false))

	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(assert.AnError)
	out, err := v.VisitModule(ctx, fx.Unit("Core"))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, mutator.ErrTraversalCancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVisitNilRoot(t *testing.T) {
	v := mutator.NewMutatingVisitor(loadHost(), false)

	_, err := v.VisitModule(context.Background(), nil)
	assert.ErrorIs(t, err, mutator.ErrNilRoot)
	_, err = v.VisitAssembly(context.Background(), nil)
	assert.ErrorIs(t, err, mutator.ErrNilRoot)
}

func TestVisitUnchangedPointerIsKept(t *testing.T) {
	h := loadHost()
	int32Ref := h.Platform().SystemInt32()
	ptr := mutable.NewPointer(int32Ref, h.InternFactory())

	v := mutator.NewMutatingVisitor(h, false, mutator.WithTracing(false))
	assert.Same(t, ptr, v.VisitTypeReference(ptr))

	v = mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithHooks(mutator.Hooks{RewriteTypeReference: renameTo("System.Int32", h.Platform().SystemInt64())}))
	out, ok := v.VisitTypeReference(ptr).(metadata.PointerTypeReference)
	require.True(t, ok)
	assert.NotSame(t, ptr, out)
	assert.Same(t, h.Platform().SystemInt64(), out.TargetType())
	assert.Same(t, int32Ref, ptr.TargetType())
}

func TestVisitRebuildsSpecializedNestedType(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	f := h.InternFactory()
	box := typeNamed(t, assemblyNamed(t, fx, "App"), "Ns.Box`1")
	inst := mutable.NewGenericTypeInstanceReference(box, []metadata.TypeReference{h.Platform().SystemInt32()}, f)
	slot := mutable.NewNestedTypeReference(box, "Slot", 0, f)
	specialized := mutable.NewSpecializedNestedTypeReference(inst, slot, f)

	v := mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithHooks(mutator.Hooks{RewriteTypeReference: renameTo("System.Int32", h.Platform().SystemInt64())}))
	out, ok := v.VisitTypeReference(specialized).(metadata.SpecializedNestedTypeReference)
	require.True(t, ok)

	assert.NotSame(t, specialized, out)
	assert.Equal(t, "Ns.Box`1<System.Int64>", metadata.TypeName(out.ContainingType()))
	assert.Same(t, slot, out.UnspecializedVersion())
	assert.NotEqual(t, specialized.InternedKey(), out.InternedKey())
	assert.Equal(t, "Ns.Box`1<System.Int32>", metadata.TypeName(specialized.ContainingType()))
}

func TestVisitSpecializedMethodReferenceIsCached(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	main := methodNamed(t, typeNamed(t, assemblyNamed(t, fx, "App"), "Ns.Program"), "Main")
	call, ok := main.Body().Operations()[3].Value().(metadata.SpecializedMethodReference)
	require.True(t, ok)

	v := mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithHooks(mutator.Hooks{RewriteTypeReference: renameTo("System.Int32", h.Platform().SystemInt64())}))
	first := v.VisitMethodReference(call)
	require.NotSame(t, call, first)
	assert.Same(t, first, v.VisitMethodReference(call))
	assert.Same(t, first, v.VisitMethodReference(first))
}

func TestVisitKeepsInstanceWhenGenericTypeBecomesUnnamed(t *testing.T) {
	h, fx := loadFixture(t, appFixture)
	main := methodNamed(t, typeNamed(t, assemblyNamed(t, fx, "App"), "Ns.Program"), "Main")
	boxOfInt := main.Body().LocalVariables()[0].Type()
	require.Equal(t, "Ns.Box`1<System.Int32>", metadata.TypeName(boxOfInt))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	v := mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithLogger(logger),
		mutator.WithHooks(mutator.Hooks{RewriteTypeReference: func(r metadata.TypeReference) metadata.TypeReference {
			if metadata.TypeName(r) == "Ns.Box`1" {
				return mutable.NewVector(r, h.InternFactory())
			}
			return nil
		}}))

	assert.Same(t, boxOfInt, v.VisitTypeReference(boxOfInt))
	assert.Contains(t, logs.String(), "generic type rewritten to an unnamed reference")
}
