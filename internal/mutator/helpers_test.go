package mutator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/il2js/metamodel/internal/fixture"
	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/metadata"
)

// appFixture is a small application: a generic box, a program using it
// and a library type referenced from another unit of the fixture.
const appFixture = `
units:
  - assembly: App
    version: 1.2.0.0
    kind: exe
    references: [Lib]
    entrypoint: Ns.Program::Main
    types:
      - name: Ns.Box
        public: true
        generics: [T]
        fields:
          - name: value
            type: "!0"
        methods:
          - name: .ctor
            body: [ret]
          - name: Get
            returns: "!0"
            body:
              - "ldfld !0 Ns.Box::value"
              - ret
        nested:
          - name: Slot
            fields:
              - name: index
                type: int32
      - name: Ns.Program
        static: true
        fields:
          - name: Count
            type: int32
            static: true
          - name: Other
            type: "[Lib]Lib.Widget"
        methods:
          - name: Main
            static: true
            params:
              - name: args
                type: "string[]"
            locals:
              - name: b
                type: Ns.Box<int32>
              - name: w
                type: "[Lib]Lib.Widget[]"
            body:
              - "newobj instance void Ns.Box<int32>::.ctor()"
              - stloc b
              - ldloc b
              - "callvirt instance int32 Ns.Box<int32>::Get()"
              - "stsfld int32 Ns.Program::Count"
              - ldstr "hello"
              - pop
              - ldarg args
              - pop
              - ret
  - assembly: Lib
    types:
      - name: Lib.Widget
        public: true
`

// moduleFixture holds a single plain module.
const moduleFixture = `
units:
  - module: Core
    types:
      - name: Core.Node
        fields:
          - name: next
            type: Core.Node
          - name: weight
            type: float64
`

func loadHost() *host.Host { return host.New(host.DefaultCoreAssembly) }

func loadFixture(t *testing.T, src string) (*host.Host, *fixture.Fixture) {
	t.Helper()
	h := loadHost()
	fx, err := fixture.Parse("test.yaml", []byte(src), h)
	require.NoError(t, err)
	return h, fx
}

func assemblyNamed(t *testing.T, fx *fixture.Fixture, name string) metadata.Assembly {
	t.Helper()
	a, ok := fx.Unit(name).(metadata.Assembly)
	require.Truef(t, ok, "unit %s is not an assembly", name)
	return a
}

func typeNamed(t *testing.T, m metadata.Module, name string) metadata.NamedTypeDefinition {
	t.Helper()
	for _, td := range m.AllTypes() {
		if metadata.TypeName(td) == name {
			return td
		}
	}
	require.FailNowf(t, "type not found", "unit %s has no type %s", m.Name(), name)
	return nil
}

func fieldNamed(t *testing.T, td metadata.TypeDefinition, name string) metadata.FieldDefinition {
	t.Helper()
	for _, f := range td.Fields() {
		if f.Name() == name {
			return f
		}
	}
	require.FailNowf(t, "field not found", "type %s has no field %s", metadata.TypeName(td), name)
	return nil
}

func methodNamed(t *testing.T, td metadata.TypeDefinition, name string) metadata.MethodDefinition {
	t.Helper()
	for _, m := range td.Methods() {
		if m.Name() == name {
			return m
		}
	}
	require.FailNowf(t, "method not found", "type %s has no method %s", metadata.TypeName(td), name)
	return nil
}

func typeNames(types []metadata.NamedTypeDefinition) []string {
	out := make([]string, len(types))
	for i, td := range types {
		out[i] = metadata.TypeName(td)
	}
	return out
}
