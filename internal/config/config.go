// Package config loads the YAML configuration of the metacopy tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/il2js/metamodel/internal/diag"
	"github.com/il2js/metamodel/internal/mutator"
)

// Config is the top-level configuration.
//
// Thread Safety: Safe to read concurrently. Not safe to modify after
// creation.
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Rewrite   RewriteConfig   `yaml:"rewrite"`
}

// EngineConfig configures the traversal engines.
type EngineConfig struct {
	// VisitImmutable makes the mutating visitor walk immutable nodes
	// read-only so hooks observe them.
	VisitImmutable bool `yaml:"visit_immutable"`
	// Workers bounds how many units are processed at the same time.
	Workers int `yaml:"workers"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

// TelemetryConfig switches OpenTelemetry spans and metrics.
type TelemetryConfig struct {
	Tracing bool `yaml:"tracing"`
}

// RewriteConfig lists type renames applied by the rewrite command. Keys
// and values are full type names such as "System.Int32".
type RewriteConfig struct {
	Renames map[string]string `yaml:"renames"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			VisitImmutable: false,
			Workers:        4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			Tracing: true,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return cfg, err
		}
	}
	loadFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		var te *yaml.TypeError
		if errors.As(err, &te) {
			return diag.Errorf(diag.StageConfig, diag.CodeConfigInvalidValue, diag.Span{Filename: path},
				"%s", strings.Join(te.Errors, "; "))
		}
		return diag.Errorf(diag.StageConfig, diag.CodeConfigSyntax, diag.Span{Filename: path}, "%v", err)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("METACOPY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("METACOPY_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("METACOPY_TRACING"); v != "" {
		cfg.Telemetry.Tracing = v == "true" || v == "1"
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return invalid("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.Engine.Workers < 1 {
		return invalid("engine.workers must be >= 1, got %d", c.Engine.Workers)
	}
	for from, to := range c.Rewrite.Renames {
		if from == "" || to == "" {
			return invalid("rewrite.renames: empty type name in %q -> %q", from, to)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return diag.Errorf(diag.StageConfig, diag.CodeConfigInvalidValue, diag.Span{}, format, args...)
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, invalid("logging.level: unknown level %q", s)
	}
	return l, nil
}

// NewLogger returns a logger writing to w as configured.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// EngineOptions returns the engine options matching c.
func (c Config) EngineOptions(logger *slog.Logger) []mutator.Option {
	return []mutator.Option{
		mutator.WithLogger(logger),
		mutator.WithTracing(c.Telemetry.Tracing),
	}
}
