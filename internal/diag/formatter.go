package diag

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
	ansiYel   = "\x1b[33m"
)

// Formatter prints diagnostics Rust-style, with the offending source lines
// and underlines.
type Formatter struct {
	w           io.Writer
	color       bool
	sourceCache map[string]string
}

// NewFormatter returns a formatter writing to w. Colour is used only when
// w is a terminal.
func NewFormatter(w io.Writer) *Formatter {
	color := false
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &Formatter{
		w:           w,
		color:       color,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers the text of filename so it need not be read from
// disk.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource loads source text for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

func (f *Formatter) paint(code, s string) string {
	if !f.color {
		return s
	}
	return code + s + ansiReset
}

// Format prints d.
func (f *Formatter) Format(d Diagnostic) {
	spans := collectSpans(d)
	f.printHeader(d)
	if len(spans) == 0 {
		f.printHelp(d)
		return
	}

	byFile := make(map[string][]LabeledSpan)
	var files []string
	for _, s := range spans {
		name := s.Span.Filename
		if _, ok := byFile[name]; !ok {
			files = append(files, name)
		}
		byFile[name] = append(byFile[name], s)
	}
	for _, name := range files {
		src, err := f.LoadSource(name)
		if err != nil || src == "" {
			fmt.Fprintf(f.w, "  %s %s\n", f.paint(ansiBlue, "-->"), byFile[name][0].Span)
			continue
		}
		f.printFileSpans(name, src, byFile[name])
	}
	f.printHelp(d)
}

func collectSpans(d Diagnostic) []LabeledSpan {
	if len(d.LabeledSpans) > 0 {
		return d.LabeledSpans
	}
	if d.Span.IsValid() {
		return []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	return nil
}

func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = string(SeverityError)
	}
	color := ansiRed
	if d.Severity == SeverityWarning {
		color = ansiYel
	}
	if d.Code != "" {
		severity += "[" + string(d.Code) + "]"
	}
	fmt.Fprintf(f.w, "%s: %s\n", f.paint(ansiBold+color, severity), f.paint(ansiBold, d.Message))
}

func (f *Formatter) printFileSpans(filename, src string, spans []LabeledSpan) {
	slices.SortStableFunc(spans, func(a, b LabeledSpan) int {
		if a.Span.Line != b.Span.Line {
			return a.Span.Line - b.Span.Line
		}
		return a.Span.Column - b.Span.Column
	})

	lines := strings.Split(src, "\n")
	byLine := make(map[int][]LabeledSpan)
	for _, s := range spans {
		if s.Span.Line > 0 && s.Span.Line <= len(lines) {
			byLine[s.Span.Line] = append(byLine[s.Span.Line], s)
		}
	}
	if len(byLine) == 0 {
		return
	}

	first := max(1, spans[0].Span.Line-2)
	last := min(len(lines), spans[len(spans)-1].Span.Line+2)
	width := len(fmt.Sprint(last))
	gutter := strings.Repeat(" ", width)

	fmt.Fprintf(f.w, "  %s %s\n", f.paint(ansiBlue, "-->"), spans[0].Span)
	fmt.Fprintf(f.w, " %s %s\n", gutter, f.paint(ansiBlue, "|"))
	for n := first; n <= last; n++ {
		text := lines[n-1]
		fmt.Fprintf(f.w, " %s %s\n", f.paint(ansiBlue, fmt.Sprintf("%*d |", width, n)), text)
		if on := byLine[n]; len(on) > 0 {
			f.printUnderlines(gutter, text, on)
		}
	}
	fmt.Fprintf(f.w, " %s %s\n", gutter, f.paint(ansiBlue, "|"))
}

// printUnderlines marks primary spans with ^ and secondary spans with ~.
// Spans without an extent cover the token starting at their column.
func (f *Formatter) printUnderlines(gutter, text string, spans []LabeledSpan) {
	marks := []byte(strings.Repeat(" ", len(text)))
	var labels []string
	for _, s := range spans {
		mark := byte('~')
		if s.Style == "primary" {
			mark = '^'
		}
		start := max(0, s.Span.Column-1)
		end := start + tokenWidth(text, start, s.Span)
		for i := start; i < end && i < len(marks); i++ {
			if marks[i] == ' ' || mark == '^' {
				marks[i] = mark
			}
		}
		if s.Label != "" {
			labels = append(labels, s.Label)
		}
	}
	line := strings.TrimRight(string(marks), " ")
	if line == "" {
		return
	}
	fmt.Fprintf(f.w, " %s %s %s", gutter, f.paint(ansiBlue, "|"), f.paint(ansiRed, line))
	if len(labels) > 0 {
		fmt.Fprintf(f.w, " %s", f.paint(ansiRed, strings.Join(labels, "; ")))
	}
	fmt.Fprintln(f.w)
}

func tokenWidth(text string, start int, s Span) int {
	if s.End > s.Start {
		return s.End - s.Start
	}
	n := 0
	for i := start; i < len(text) && text[i] != ' ' && text[i] != ','; i++ {
		n++
	}
	return max(1, n)
}

func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  = %s %s\n", f.paint(ansiBold, "note:"), note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "%s %s\n", f.paint(ansiBold, "help:"), d.Help)
	}
}
