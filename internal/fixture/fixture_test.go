package fixture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/il2js/metamodel/internal/diag"
	"github.com/il2js/metamodel/internal/fixture"
	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

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
          - name: Get
            returns: "!0"
            body:
              - "ldfld !0 Ns.Box::value"
              - ret
        nested:
          - name: Slot
      - name: Ns.Program
        static: true
        fields:
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
            body:
              - ldarg args
              - pop
              - ldc.i4 42
              - stloc 0
              - ret
  - assembly: Lib
    types:
      - name: Lib.Widget
        public: true
  - module: Extra
`

func parse(t *testing.T, src string) (*fixture.Fixture, error) {
	t.Helper()
	return fixture.Parse("test.yaml", []byte(src), host.New(host.DefaultCoreAssembly))
}

func mustParse(t *testing.T, src string) *fixture.Fixture {
	t.Helper()
	fx, err := parse(t, src)
	require.NoError(t, err)
	return fx
}

// diagnostics returns the diagnostics carried by a failed parse.
func diagnostics(t *testing.T, err error) []diag.Diagnostic {
	t.Helper()
	require.Error(t, err)
	var fe *fixture.Error
	require.ErrorAs(t, err, &fe)
	require.NotEmpty(t, fe.Diagnostics)
	return fe.Diagnostics
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

func TestParseUnits(t *testing.T) {
	fx := mustParse(t, appFixture)

	require.Len(t, fx.Units, 3)
	assert.Same(t, fx.Units[0], fx.Root())
	assert.Nil(t, fx.Unit("Missing"))

	app, ok := fx.Unit("App").(metadata.Assembly)
	require.True(t, ok)
	assert.Equal(t, metadata.Version{Major: 1, Minor: 2}, app.Version())
	assert.Equal(t, metadata.ModuleKindConsoleApplication, app.Kind())

	lib, ok := fx.Unit("Lib").(metadata.Assembly)
	require.True(t, ok)
	assert.Equal(t, metadata.Version{Major: 1}, lib.Version())

	_, isAssembly := fx.Unit("Extra").(metadata.Assembly)
	assert.False(t, isAssembly)
	assert.Equal(t, "Extra", fx.Unit("Extra").Name())
}

func TestParseTypesInPreOrder(t *testing.T) {
	fx := mustParse(t, appFixture)

	var names []string
	for _, td := range fx.Unit("App").AllTypes() {
		names = append(names, metadata.TypeName(td))
	}
	assert.Equal(t, []string{"Ns.Box`1", "Ns.Box`1+Slot", "Ns.Program"}, names)
}

func TestParseGenericParameterReferences(t *testing.T) {
	fx := mustParse(t, appFixture)
	box := typeNamed(t, fx.Unit("App"), "Ns.Box`1")

	require.Len(t, box.GenericParameters(), 1)
	param := box.GenericParameters()[0]
	assert.Equal(t, "T", param.Name())

	require.Len(t, box.Fields(), 1)
	value := box.Fields()[0]
	assert.Same(t, param, value.Type())

	get := box.Methods()[0]
	assert.Same(t, param, get.Type())
	ops := get.Body().Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, metadata.OpLdfld, ops[0].OperationCode())
	assert.Same(t, value, ops[0].Value())
}

func TestParseCrossUnitReference(t *testing.T) {
	fx := mustParse(t, appFixture)
	program := typeNamed(t, fx.Unit("App"), "Ns.Program")
	widget := typeNamed(t, fx.Unit("Lib"), "Lib.Widget")

	other := program.Fields()[0].Type()
	assert.Equal(t, "[Lib]Lib.Widget", metadata.QualifiedTypeName(other))
	assert.Same(t, widget, other.ResolvedType())

	var lib metadata.AssemblyReference
	for _, r := range fx.Unit("App").AssemblyReferences() {
		if r.Name() == "Lib" {
			lib = r
		}
	}
	require.NotNil(t, lib)
	assert.Same(t, fx.Unit("Lib"), lib.ResolvedAssembly())
}

func TestParseMethodBody(t *testing.T) {
	fx := mustParse(t, appFixture)
	program := typeNamed(t, fx.Unit("App"), "Ns.Program")
	main := program.Methods()[0]

	assert.Same(t, main, fx.Unit("App").EntryPoint())

	body := main.Body()
	require.NotNil(t, body)
	require.Len(t, body.LocalVariables(), 1)
	local := body.LocalVariables()[0]
	assert.Equal(t, "Ns.Box`1<System.Int32>", metadata.TypeName(local.Type()))

	ops := body.Operations()
	require.Len(t, ops, 5)
	assert.Same(t, main.ParameterDefinitions()[0], ops[0].Value())
	assert.Nil(t, ops[1].Value())
	assert.Equal(t, int32(42), ops[2].Value())
	assert.Same(t, local, ops[3].Value())
	for i, op := range ops {
		assert.Equal(t, uint32(i), op.Offset())
	}
}

func TestParseSharesReferences(t *testing.T) {
	fx := mustParse(t, `
units:
  - module: Core
    types:
      - name: Core.Node
        fields:
          - name: a
            type: "[Lib]Lib.Thing"
          - name: b
            type: "[Lib]Lib.Thing[]"
`)
	node := fx.Unit("Core").AllTypes()[0]
	a := node.Fields()[0].Type()
	b, ok := node.Fields()[1].Type().(metadata.ArrayTypeReference)
	require.True(t, ok)
	assert.Same(t, a, b.ElementType())

	// Lib is not part of the fixture, so the reference stays unresolved.
	assert.True(t, mutable.IsDummy(a.ResolvedType()))
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		code    diag.Code
		line    int
		col     int
		message string
	}{
		{
			name: "unknown key",
			src: `
units:
  - assembly: App
    types:
      - name: Ns.A
        colour: red
`,
			code: diag.CodeFixtureUnknownKey, line: 6, col: 9, message: `unknown key "colour"`,
		},
		{
			name: "bad type reference",
			src: `
units:
  - assembly: App
    types:
      - name: Ns.A
        base: Ns.Missing
`,
			code: diag.CodeFixtureBadTypeRef, line: 6, col: 15, message: "unit App declares no type Ns.Missing",
		},
		{
			name: "unknown opcode",
			src: `
units:
  - assembly: App
    types:
      - name: Ns.A
        methods:
          - name: M
            body:
              - frob
`,
			code: diag.CodeFixtureUnknownOpcode, line: 9, col: 17, message: `unknown instruction "frob"`,
		},
		{
			name: "bad operand",
			src: `
units:
  - assembly: App
    types:
      - name: Ns.A
        methods:
          - name: M
            body:
              - ldloc nope
`,
			code: diag.CodeFixtureInvalidOperand, line: 9, col: 23, message: "no local nope",
		},
		{
			name: "duplicate type",
			src: `
units:
  - assembly: App
    types:
      - name: Ns.A
      - name: Ns.A
`,
			code: diag.CodeFixtureDuplicateName, line: 6, col: 9, message: "type Ns.A is declared twice",
		},
		{
			name: "duplicate unit",
			src: `
units:
  - assembly: App
  - module: App
`,
			code: diag.CodeFixtureDuplicateName, line: 4, col: 5, message: `unit "App" is declared twice`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.src)
			d := diagnostics(t, err)[0]
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, diag.StageFixture, d.Stage)
			assert.Equal(t, "test.yaml", d.Span.Filename)
			assert.Equal(t, tt.line, d.Span.Line, "line")
			assert.Equal(t, tt.col, d.Span.Column, "column")
			assert.Contains(t, d.Message, tt.message)
		})
	}
}

func TestParseReportsEveryProblem(t *testing.T) {
	_, err := parse(t, `
units:
  - assembly: App
    types:
      - name: Ns.A
        base: Ns.Missing
        fields:
          - name: f
            type: Ns.AlsoMissing
`)
	diags := diagnostics(t, err)
	require.Len(t, diags, 2)
	assert.Contains(t, err.Error(), "(and 1 more)")
}

func TestParseEmpty(t *testing.T) {
	_, err := parse(t, "")
	d := diagnostics(t, err)[0]
	assert.Equal(t, diag.CodeFixtureMissingKey, d.Code)
	assert.Equal(t, "fixture is empty", d.Message)

	_, err = parse(t, "units: []\n")
	d = diagnostics(t, err)[0]
	assert.Equal(t, "fixture declares no units", d.Message)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(appFixture), 0o644))

	fx, err := fixture.Load(path, host.New(host.DefaultCoreAssembly))
	require.NoError(t, err)
	assert.Len(t, fx.Units, 3)

	_, err = fixture.Load(filepath.Join(dir, "missing.yaml"), host.New(host.DefaultCoreAssembly))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseProperties(t *testing.T) {
	fx := mustParse(t, `
units:
  - assembly: App
    types:
      - name: Ns.Counter
        fields:
          - name: size
            type: int32
        methods:
          - name: get_Size
            returns: int32
            body: ["ldc.i4 0", ret]
          - name: set_Size
            params:
              - name: value
                type: int32
            body: [ret]
        properties:
          - name: Size
            type: int32
            get: get_Size
            set: set_Size
`)
	counter := typeNamed(t, fx.Unit("App"), "Ns.Counter")
	require.Len(t, counter.Properties(), 1)
	size := counter.Properties()[0]
	assert.Equal(t, "Size", size.Name())
	assert.Same(t, counter, size.ContainingTypeDefinition())

	getter, setter := counter.Methods()[0], counter.Methods()[1]
	assert.Same(t, getter, size.Getter())
	assert.Same(t, setter, size.Setter())
	assert.Equal(t, []metadata.MethodReference{getter, setter}, size.Accessors())
}

func TestParsePropertyWithMissingAccessor(t *testing.T) {
	_, err := parse(t, `
units:
  - assembly: App
    types:
      - name: Ns.Counter
        properties:
          - name: Size
            type: int32
            get: get_Size
`)
	d := diagnostics(t, err)[0]
	assert.Equal(t, diag.CodeFixtureBadMemberRef, d.Code)
	assert.Contains(t, d.Message, "property Size: type has no method get_Size")
}
