// Package fixture builds mutable metadata graphs from YAML descriptions
// of assemblies and modules.
//
// A fixture lists units. Each unit declares its types with their generic
// parameters, fields, methods and properties. Method bodies are written as
// IL instructions whose operands use the reference syntax documented in
// refs.go. Units may reference each other by name; such references are
// bound to the declared unit so that resolution works across the fixture.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/il2js/metamodel/internal/diag"
	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/metadata"
)

// Fixture is the result of loading a fixture file.
type Fixture struct {
	// Units in declaration order. Assemblies are *mutable.Assembly, plain
	// modules *mutable.Module.
	Units []metadata.Module

	byName map[string]metadata.Module
}

// Unit returns the unit declared under name, or nil.
func (f *Fixture) Unit(name string) metadata.Module { return f.byName[name] }

// Root returns the first declared unit.
func (f *Fixture) Root() metadata.Module {
	if len(f.Units) == 0 {
		return nil
	}
	return f.Units[0]
}

// Error carries every problem found while loading a fixture.
type Error struct {
	Diagnostics []diag.Diagnostic
}

func (e *Error) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e.Diagnostics[0].Error(), len(e.Diagnostics)-1)
}

// Load reads and builds the fixture at path.
func Load(path string, h *host.Host) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}
	return Parse(path, data, h)
}

// Parse builds the fixture held in data. filename is only used in
// diagnostics.
func Parse(filename string, data []byte, h *host.Host) (*Fixture, error) {
	b := &builder{
		filename: filename,
		host:     h,
		factory:  h.InternFactory(),
		units:    make(map[string]*unitBuilder),
	}
	var spec fileSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			b.errorf(pos{1, 1}, diag.CodeFixtureMissingKey, "fixture is empty")
		} else {
			b.decodeError(err)
		}
		return nil, b.result()
	}
	if len(spec.Units) == 0 {
		b.errorf(pos{1, 1}, diag.CodeFixtureMissingKey, "fixture declares no units")
		return nil, b.result()
	}
	b.build(&spec)
	if err := b.result(); err != nil {
		return nil, err
	}
	return b.fixture(), nil
}

type builder struct {
	filename string
	host     *host.Host
	factory  metadata.InternFactory
	order    []*unitBuilder
	units    map[string]*unitBuilder
	diags    []diag.Diagnostic
}

func (b *builder) span(at pos) diag.Span {
	return diag.Span{Filename: b.filename, Line: at.line, Column: at.col}
}

func (b *builder) errorf(at pos, code diag.Code, format string, args ...any) {
	b.diags = append(b.diags, diag.Errorf(diag.StageFixture, code, b.span(at), format, args...))
}

func (b *builder) result() error {
	if len(b.diags) == 0 {
		return nil
	}
	return &Error{Diagnostics: b.diags}
}

func (b *builder) fixture() *Fixture {
	f := &Fixture{byName: make(map[string]metadata.Module, len(b.order))}
	for _, u := range b.order {
		f.Units = append(f.Units, u.unit)
		f.byName[u.name] = u.unit
	}
	return f
}

var yamlLine = regexp.MustCompile(`^(?:yaml: )?line (\d+): (.*)$`)

// decodeError turns a decoder failure into diagnostics.
func (b *builder) decodeError(err error) {
	var ke *keyError
	if errors.As(err, &ke) {
		b.errorf(ke.at, diag.CodeFixtureUnknownKey, "unknown key %q", ke.key)
		return
	}
	var te *yaml.TypeError
	if errors.As(err, &te) {
		for _, msg := range te.Errors {
			code := diag.CodeFixtureSyntax
			if strings.Contains(msg, "not found in type") {
				code = diag.CodeFixtureUnknownKey
			}
			at, text := splitYAMLError(msg)
			b.errorf(at, code, "%s", text)
		}
		return
	}
	at, text := splitYAMLError(err.Error())
	b.errorf(at, diag.CodeFixtureSyntax, "%s", text)
}

func splitYAMLError(msg string) (pos, string) {
	m := yamlLine.FindStringSubmatch(msg)
	if m == nil {
		return pos{1, 1}, strings.TrimPrefix(msg, "yaml: ")
	}
	line, _ := strconv.Atoi(m[1])
	return pos{line, 1}, m[2]
}

// build runs the passes in order. Every pass sees all declarations of the
// earlier ones across all units, so units may reference each other freely.
func (b *builder) build(spec *fileSpec) {
	for i := range spec.Units {
		b.declareUnit(&spec.Units[i])
	}
	for _, u := range b.order {
		u.linkUnits()
	}
	for _, u := range b.order {
		u.declareTypes()
	}
	for _, u := range b.order {
		u.declareMembers()
	}
	for _, u := range b.order {
		u.defineBodies()
	}
}
