package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/il2js/metamodel/internal/diag"
)

func TestErrorf(t *testing.T) {
	span := diag.Span{Filename: "units.yaml", Line: 4, Column: 9}
	d := diag.Errorf(diag.StageFixture, diag.CodeFixtureBadTypeRef, span, "no type %s", "Ns.Missing")

	if d.Stage != diag.StageFixture {
		t.Fatalf("expected stage %q, got %q", diag.StageFixture, d.Stage)
	}
	if d.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, d.Severity)
	}
	if d.Code != diag.CodeFixtureBadTypeRef {
		t.Fatalf("expected code %q, got %q", diag.CodeFixtureBadTypeRef, d.Code)
	}
	if want := "units.yaml:4:9: no type Ns.Missing"; d.Error() != want {
		t.Fatalf("expected error %q, got %q", want, d.Error())
	}
}

func TestErrorWithoutSpan(t *testing.T) {
	d := diag.Errorf(diag.StageConfig, diag.CodeConfigInvalidValue, diag.Span{}, "bad value")
	if d.Error() != "bad value" {
		t.Fatalf("expected bare message, got %q", d.Error())
	}
}

func TestBuildersDoNotShareState(t *testing.T) {
	base := diag.Errorf(diag.StageFixture, diag.CodeFixtureSyntax, diag.Span{Line: 1, Column: 1}, "oops")
	a := base.WithNote("first")
	b := base.WithNote("second").WithHelp("try again")

	if len(base.Notes) != 0 {
		t.Fatalf("base diagnostic was modified: %v", base.Notes)
	}
	if len(a.Notes) != 1 || a.Notes[0] != "first" {
		t.Fatalf("unexpected notes on a: %v", a.Notes)
	}
	if b.Help != "try again" || a.Help != "" {
		t.Fatalf("help leaked between diagnostics: a=%q b=%q", a.Help, b.Help)
	}
}

func TestFormatterSourceExcerpt(t *testing.T) {
	src := "units:\n  - assembly: Lib\n    types:\n      - name: Box\n        base: Ns.Missing\n"
	span := diag.Span{Filename: "lib.yaml", Line: 5, Column: 15}
	d := diag.Errorf(diag.StageFixture, diag.CodeFixtureBadTypeRef, span, "unit Lib declares no type Ns.Missing").
		WithNote(`in "Ns.Missing"`)

	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.AddSource("lib.yaml", src)
	f.Format(d)
	out := buf.String()

	for _, want := range []string{
		"error[FIXTURE_BAD_TYPE_REFERENCE]: unit Lib declares no type Ns.Missing",
		"--> lib.yaml:5:15",
		"5 |         base: Ns.Missing",
		"^^^^^^^^^^",
		`= note: in "Ns.Missing"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no colour when writing to a buffer:\n%s", out)
	}
}

func TestFormatterLabeledSpans(t *testing.T) {
	src := "a: int32 string\n"
	d := diag.Errorf(diag.StageFixture, diag.CodeFixtureDuplicateName, diag.Span{}, "clash").
		WithPrimarySpan(diag.Span{Filename: "x.yaml", Line: 1, Column: 4}, "here").
		WithSecondarySpan(diag.Span{Filename: "x.yaml", Line: 1, Column: 10}, "and here")

	var buf bytes.Buffer
	f := diag.NewFormatter(&buf)
	f.AddSource("x.yaml", src)
	f.Format(d)
	out := buf.String()

	if !strings.Contains(out, "^^^^^ ~~~~~~ here; and here") {
		t.Fatalf("unexpected underline:\n%s", out)
	}
}

func TestFormatterMissingSource(t *testing.T) {
	d := diag.Errorf(diag.StageFixture, diag.CodeFixtureSyntax, diag.Span{Filename: "does-not-exist.yaml", Line: 2, Column: 1}, "bad")
	var buf bytes.Buffer
	diag.NewFormatter(&buf).Format(d)
	if !strings.Contains(buf.String(), "--> does-not-exist.yaml:2:1") {
		t.Fatalf("expected location fallback, got:\n%s", buf.String())
	}
}
