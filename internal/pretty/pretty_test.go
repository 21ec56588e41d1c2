package pretty_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/il2js/metamodel/internal/fixture"
	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutator"
	"github.com/il2js/metamodel/internal/pretty"
)

const app = `
units:
  - assembly: App
    version: 1.2.0.0
    kind: exe
    references: [Lib, Ghost]
    entrypoint: Ns.Program::Main
    types:
      - name: Ns.Program
        public: true
        static: true
        fields:
          - name: Count
            type: int32
            static: true
        methods:
          - name: Main
            static: true
            locals:
              - name: w
                type: "[Lib]Lib.Widget"
            body:
              - ldc.i4 7
              - "stsfld int32 Ns.Program::Count"
              - ldstr "hi"
              - pop
              - ret
        nested:
          - name: Inner
            public: true
  - assembly: Lib
    types:
      - name: Lib.Widget
        public: true
`

func load(t *testing.T) (*host.Host, metadata.Assembly) {
	t.Helper()
	h := host.New(host.DefaultCoreAssembly)
	fx, err := fixture.Parse("app.yaml", []byte(app), h)
	require.NoError(t, err)
	a, ok := fx.Unit("App").(metadata.Assembly)
	require.True(t, ok)
	return h, a
}

func TestUnitListing(t *testing.T) {
	_, a := load(t)
	out := pretty.Unit(a)

	for _, want := range []string{
		".assembly App 1.2.0.0 (exe)",
		".assembly extern Lib 1.0.0.0\n",
		".assembly extern Ghost 0.0.0.0 // unresolved",
		".class public static Ns.Program",
		"static [mscorlib]System.Int32 Count",
		".locals ([Lib]Lib.Widget w)",
		"IL_0000: ldc.i4 7",
		"IL_0001: stsfld [mscorlib]System.Int32 Ns.Program::Count",
		`IL_0002: ldstr "hi"`,
		"IL_0004: ret",
		".class nested public Inner",
		".entrypoint Ns.Program::Main()",
	} {
		assert.Contains(t, out, want)
	}
}

func TestListingIsStable(t *testing.T) {
	_, a := load(t)
	assert.Equal(t, pretty.Unit(a), pretty.Unit(a))
	assert.Equal(t, pretty.Fingerprint(a), pretty.Fingerprint(a))
}

func TestCopyHasSameFingerprint(t *testing.T) {
	h, a := load(t)
	cp, err := mutator.NewDeepCopier(h, mutator.WithTracing(false)).CopyAssembly(context.Background(), a)
	require.NoError(t, err)

	assert.Equal(t, pretty.Unit(a), pretty.Unit(cp))
	assert.Equal(t, pretty.Fingerprint(a), pretty.Fingerprint(cp))
}

func TestRewriteChangesFingerprint(t *testing.T) {
	h, a := load(t)
	before := pretty.Fingerprint(a)

	v := mutator.NewMutatingVisitor(h, false,
		mutator.WithTracing(false),
		mutator.WithHooks(mutator.Hooks{RewriteTypeReference: func(r metadata.TypeReference) metadata.TypeReference {
			if metadata.TypeName(r) == "System.Int32" {
				return h.Platform().SystemInt64()
			}
			return nil
		}}))
	_, err := v.VisitAssembly(context.Background(), a)
	require.NoError(t, err)

	assert.NotEqual(t, before, pretty.Fingerprint(a))
	assert.Contains(t, pretty.Unit(a), "static [mscorlib]System.Int64 Count")
}
