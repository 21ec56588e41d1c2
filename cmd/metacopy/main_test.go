package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutable"
)

const appFixture = `
units:
  - assembly: App
    references: [Lib]
    types:
      - name: Ns.Program
        public: true
        fields:
          - name: Other
            type: "[Lib]Lib.Widget"
        methods:
          - name: Main
            static: true
            locals:
              - name: w
                type: "[Lib]Lib.Widget[]"
            body: [ret]
  - assembly: Lib
    types:
      - name: Lib.Widget
        public: true
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFindFixtures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "")
	writeFile(t, filepath.Join(dir, "sub", "b.yml"), "")
	writeFile(t, filepath.Join(dir, "sub", "notes.txt"), "")
	writeFile(t, filepath.Join(dir, ".hidden", "c.yaml"), "")
	single := filepath.Join(t.TempDir(), "single.txt")
	writeFile(t, single, "")

	files, err := findFixtures([]string{dir, single})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "sub", "b.yml"),
		single,
	}, files)

	_, err = findFixtures([]string{filepath.Join(dir, "missing")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenamer(t *testing.T) {
	h := host.New(host.DefaultCoreAssembly)
	lib := mutable.NewAssemblyReference("Lib", metadata.Version{Major: 1})
	ns := mutable.NewNestedUnitNamespaceReference(mutable.NewRootUnitNamespaceReference(lib), "Lib")
	widget := mutable.NewNamespaceTypeReference(ns, "Widget", 0, h.InternFactory())
	count := mutable.NewNamespaceTypeReference(ns, "Count", 0, h.InternFactory())
	other := mutable.NewNamespaceTypeReference(ns, "Other", 0, h.InternFactory())

	r := newRenamer(h, map[string]string{
		"Lib.Widget": "Lib.Extra.Gadget",
		"Lib.Count":  "System.Int64",
	})

	gadget := r.rewrite(widget)
	assert.Equal(t, "[Lib]Lib.Extra.Gadget", metadata.QualifiedTypeName(gadget))
	assert.Same(t, gadget, r.rewrite(widget))
	assert.Same(t, h.Platform().SystemInt64(), r.rewrite(count))
	assert.Same(t, other, r.rewrite(other))
	assert.Equal(t, 3, r.count)

	vector := mutable.NewVector(widget, h.InternFactory())
	assert.Same(t, vector, r.rewrite(vector))
}

func TestDumpCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	writeFile(t, path, appFixture)

	out, _, err := run(t, "dump", path)
	require.NoError(t, err)
	assert.Contains(t, out, ".assembly App")
	assert.Contains(t, out, ".assembly Lib")
	assert.Contains(t, out, "[Lib]Lib.Widget Other")
}

func TestCopyCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.yaml"), appFixture)
	writeFile(t, filepath.Join(dir, "nested", "core.yaml"), "units:\n  - module: Core\n")

	out, _, err := run(t, "copy", "--print", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, ": App (1 types)")
	assert.Contains(t, out, ": Core (0 types)")
	assert.Contains(t, out, ".class public Ns.Program")
	assert.Contains(t, out, "Copy results: 2 fixtures, 0 failed")
}

func TestCopyCommandReportsBadFixture(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), "units:\n  - assembly: App\n    colour: red\n")

	out, stderr, err := run(t, "copy", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "Copy results: 1 fixtures, 1 failed")
	assert.Contains(t, stderr, "FIXTURE_UNKNOWN_KEY")
}

func TestRewriteCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	writeFile(t, path, appFixture)

	out, _, err := run(t, "rewrite", "--rename", "Lib.Widget=Lib.Gadget", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[Lib]Lib.Gadget Other")
	assert.Contains(t, out, ".locals ([Lib]Lib.Gadget[] w)")
}

func TestRewriteCommandUsesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	writeFile(t, path, appFixture)
	cfg := filepath.Join(dir, "metacopy.yaml")
	writeFile(t, cfg, "rewrite:\n  renames:\n    Lib.Widget: System.String\n")

	out, _, err := run(t, "--config", cfg, "rewrite", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[mscorlib]System.String Other")
}

func TestRewriteCommandRejectsBadRename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	writeFile(t, path, appFixture)

	_, stderr, err := run(t, "rewrite", "--rename", "Lib.Widget", path)
	require.Error(t, err)
	assert.Contains(t, stderr, "--rename wants From=To")
}

func TestBadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "metacopy.yaml")
	writeFile(t, cfg, "engine:\n  threads: 3\n")

	_, stderr, err := run(t, "--config", cfg, "dump", "whatever.yaml")
	require.Error(t, err)
	assert.Contains(t, stderr, "CONFIG_INVALID_VALUE")
}
