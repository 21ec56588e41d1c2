package host

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/il2js/metamodel/internal/metadata"
)

func TestNewDefaultsCoreAssembly(t *testing.T) {
	h := New("")
	assert.Equal(t, DefaultCoreAssembly, h.Platform().CoreAssemblyRef().Name())

	h = New("System.Runtime")
	assert.Equal(t, "System.Runtime", h.Platform().CoreAssemblyRef().Name())
	assert.Equal(t, "[System.Runtime]System.Object", metadata.QualifiedTypeName(h.Platform().SystemObject()))
}

func TestPlatformTypesAreCanonical(t *testing.T) {
	h := New(DefaultCoreAssembly)
	p := h.Platform()

	assert.Same(t, p.SystemInt32(), p.Lookup("Int32"))
	assert.Same(t, p.SystemString(), p.Lookup("String"))
	assert.Nil(t, p.Lookup("Widget"))

	assert.True(t, p.SystemInt32().IsValueType())
	assert.False(t, p.SystemString().IsValueType())
	assert.Equal(t, "System.Void", metadata.TypeName(p.SystemVoid()))
	assert.Same(t, p.SystemNamespace(), p.SystemObject().ContainingUnitNamespace())
}

func TestPlatformTypesIntern(t *testing.T) {
	a, b := New(DefaultCoreAssembly), New(DefaultCoreAssembly)

	// Keys are per factory but equal structure gets equal keys within one.
	assert.NotZero(t, a.Platform().SystemInt32().InternedKey())
	assert.Equal(t, a.Platform().SystemInt32().InternedKey(), a.Platform().Lookup("Int32").InternedKey())
	assert.NotEqual(t, a.Platform().SystemInt32().InternedKey(), a.Platform().SystemInt64().InternedKey())
	assert.Equal(t, 2, a.Interned())
	assert.Zero(t, b.Interned())
}

func TestNameTable(t *testing.T) {
	names := NewNameTable()
	k := names.Key("Ns.Box`1")
	assert.Equal(t, 1, k)
	assert.Equal(t, k, names.Key("Ns.Box`1"))
	assert.Equal(t, 2, names.Key("Ns.Program"))
	assert.Equal(t, 2, names.Len())
}

func TestNameTableConcurrent(t *testing.T) {
	names := NewNameTable()
	var g errgroup.Group
	keys := make([][]int, 8)
	for w := range keys {
		g.Go(func() error {
			for i := range 100 {
				keys[w] = append(keys[w], names.Key(fmt.Sprintf("T%d", i)))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 100, names.Len())
	for _, ks := range keys[1:] {
		assert.Equal(t, keys[0], ks)
	}
}
