package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/il2js/metamodel/internal/diag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metacopy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.True(t, cfg.Telemetry.Tracing)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
engine:
  visit_immutable: true
  workers: 2
logging:
  level: debug
  format: json
rewrite:
  renames:
    Lib.Widget: Lib.Gadget
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Engine.VisitImmutable)
	assert.Equal(t, 2, cfg.Engine.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Telemetry.Tracing, "unset keys keep their default")
	assert.Equal(t, map[string]string{"Lib.Widget": "Lib.Gadget"}, cfg.Rewrite.Renames)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadEnvironmentWins(t *testing.T) {
	t.Setenv("METACOPY_LOG_LEVEL", "warn")
	t.Setenv("METACOPY_TRACING", "0")

	cfg, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.Tracing)
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "engine:\n  threads: 3\n"))
	require.Error(t, err)

	var d diag.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, diag.CodeConfigInvalidValue, d.Code)
	assert.Contains(t, d.Message, "threads")
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := Load(writeConfig(t, "engine: [\n"))
	var d diag.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, diag.CodeConfigSyntax, d.Code)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"no workers", func(c *Config) { c.Engine.Workers = 0 }, "engine.workers"},
		{"empty rename", func(c *Config) { c.Rewrite.Renames = map[string]string{"A": ""} }, "rewrite.renames"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestNewLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "unit", "App")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"unit":"App"`)
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.EngineOptions(cfg.NewLogger(&bytes.Buffer{}))
	assert.Len(t, opts, 2)
}
