package diag

import "fmt"

// Stage identifies which part of the tool produced the diagnostic.
type Stage string

const (
	StageConfig  Stage = "config"
	StageFixture Stage = "fixture"
	StageEngine  Stage = "engine"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// LabeledSpan is a span with an optional label.
type LabeledSpan struct {
	Span Span
	Label string // e.g. "no type named `Foo` in this module"
	Style string // "primary" or "secondary"
}

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Configuration errors
	CodeConfigSyntax       Code = "CONFIG_SYNTAX"
	CodeConfigInvalidValue Code = "CONFIG_INVALID_VALUE"

	// Fixture errors
	CodeFixtureSyntax          Code = "FIXTURE_SYNTAX"
	CodeFixtureUnknownKey      Code = "FIXTURE_UNKNOWN_KEY"
	CodeFixtureMissingKey      Code = "FIXTURE_MISSING_KEY"
	CodeFixtureBadTypeRef      Code = "FIXTURE_BAD_TYPE_REFERENCE"
	CodeFixtureBadMemberRef    Code = "FIXTURE_BAD_MEMBER_REFERENCE"
	CodeFixtureUnknownOpcode   Code = "FIXTURE_UNKNOWN_OPCODE"
	CodeFixtureUnknownUnit     Code = "FIXTURE_UNKNOWN_UNIT"
	CodeFixtureDuplicateName   Code = "FIXTURE_DUPLICATE_NAME"
	CodeFixtureInvalidOperand  Code = "FIXTURE_INVALID_OPERAND"
	CodeFixtureInvalidGenerics Code = "FIXTURE_INVALID_GENERICS"
)

// Span represents a location in a source file.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a problem reported to the user.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	// LabeledSpans lists spans with labels; the first one is primary.
	LabeledSpans []LabeledSpan
	Notes        []string
	Help         string
}

// Error makes a Diagnostic usable as an error value.
func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s", d.Span, d.Message)
	}
	return d.Message
}

// Errorf returns an error diagnostic for stage at span.
func Errorf(stage Stage, code Code, span Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	}
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
