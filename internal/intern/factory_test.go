package intern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"

	"github.com/il2js/metamodel/internal/intern"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

func namespaceType(f *intern.Factory, unit, ns, name string, arity int) *mutable.NamespaceTypeReference {
	var r metadata.UnitNamespaceReference = mutable.NewRootUnitNamespaceReference(mutable.NewAssemblyReference(unit, metadata.Version{}))
	if ns != "" {
		r = mutable.NewNestedUnitNamespaceReference(r, ns)
	}
	return mutable.NewNamespaceTypeReference(r, name, arity, f)
}

func TestTypeKeysAreStructural(t *testing.T) {
	f := intern.New()

	a := namespaceType(f, "Lib", "Lib", "Widget", 0)
	b := namespaceType(f, "Lib", "Lib", "Widget", 0)
	other := namespaceType(f, "Lib", "Lib", "Gadget", 0)
	elsewhere := namespaceType(f, "App", "Lib", "Widget", 0)
	generic := namespaceType(f, "Lib", "Lib", "Widget", 1)

	assert.NotZero(t, a.InternedKey())
	assert.Equal(t, a.InternedKey(), b.InternedKey())
	assert.NotEqual(t, a.InternedKey(), other.InternedKey())
	assert.NotEqual(t, a.InternedKey(), elsewhere.InternedKey())
	assert.NotEqual(t, a.InternedKey(), generic.InternedKey())
}

func TestCompositeTypeKeys(t *testing.T) {
	f := intern.New()
	widget := namespaceType(f, "Lib", "Lib", "Widget", 0)
	same := namespaceType(f, "Lib", "Lib", "Widget", 0)

	assert.Equal(t, mutable.NewVector(widget, f).InternedKey(), mutable.NewVector(same, f).InternedKey())
	assert.NotEqual(t, mutable.NewVector(widget, f).InternedKey(), mutable.NewMatrix(widget, 2, f).InternedKey())
	assert.NotEqual(t, mutable.NewPointer(widget, f).InternedKey(), mutable.NewManagedPointer(widget, f).InternedKey())
	assert.NotEqual(t, widget.InternedKey(), mutable.NewVector(widget, f).InternedKey())

	box := namespaceType(f, "Lib", "Lib", "Box", 1)
	inst := mutable.NewGenericTypeInstanceReference(box, []metadata.TypeReference{widget}, f)
	again := mutable.NewGenericTypeInstanceReference(box, []metadata.TypeReference{same}, f)
	assert.Equal(t, inst.InternedKey(), again.InternedKey())
	assert.Equal(t, intern.TypeSignature(inst), intern.TypeSignature(again))
}

func TestNilHasNoKey(t *testing.T) {
	f := intern.New()
	assert.Zero(t, f.GetTypeReferenceInternedKey(nil))
	assert.Zero(t, f.GetFieldInternedKey(nil))
	assert.Zero(t, f.GetMethodInternedKey(nil))
	assert.Zero(t, f.Len())
}

func TestMemberKeys(t *testing.T) {
	f := intern.New()
	widget := namespaceType(f, "Lib", "Lib", "Widget", 0)
	int32Type := namespaceType(f, "mscorlib", "System", "Int32", 0)

	a := mutable.NewFieldReference(widget, "count", int32Type, f)
	b := mutable.NewFieldReference(namespaceType(f, "Lib", "Lib", "Widget", 0), "count", int32Type, f)
	c := mutable.NewFieldReference(widget, "size", int32Type, f)
	assert.Equal(t, a.InternedKey(), b.InternedKey())
	assert.NotEqual(t, a.InternedKey(), c.InternedKey())

	m := mutable.NewMethodReference(widget, "Get", int32Type, f)
	n := mutable.NewMethodReference(widget, "Get", int32Type, f)
	assert.Equal(t, m.InternedKey(), n.InternedKey())
	assert.NotEqual(t, m.InternedKey(), a.InternedKey())
}

func TestFactoryConcurrent(t *testing.T) {
	f := intern.New()
	var g errgroup.Group
	keys := make([]uint, 16)
	for i := range keys {
		g.Go(func() error {
			keys[i] = namespaceType(f, "Lib", "Lib", "Widget", 0).InternedKey()
			return nil
		})
	}
	assert.NoError(t, g.Wait())
	for _, k := range keys {
		assert.Equal(t, keys[0], k)
	}
	assert.Equal(t, 1, f.Len())
}
