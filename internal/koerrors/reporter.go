// SPDX-License-Identifier: Apache-2.0
package koerrors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Pos locates a problem in whatever source produced the IR under
// construction. The core itself has no source text, but a frontend
// collaborator attaches one when it reports a TransformError through the
// same reporter, so the core carries the field rather than discarding it.
type Pos struct {
	Filename string
	Line     int
	Column   int
}

// IRError is a single structured diagnostic: a kind from the stable
// taxonomy, a code, a message, and the construction-time context that
// produced it.
type IRError struct {
	Kind     Kind
	Code     Code
	Message  string
	Pos      Pos
	Function string // qualified "Contract::function" when applicable
	Notes    []string
}

func (e *IRError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]: %s", e.Kind, e.Code, e.Message)
	if e.Function != "" {
		fmt.Fprintf(&b, " (in %s)", e.Function)
	}
	if e.Pos.Line > 0 {
		fmt.Fprintf(&b, " at %s:%d:%d", e.Pos.Filename, e.Pos.Line, e.Pos.Column)
	}
	return b.String()
}

func New(kind Kind, code Code, message string) *IRError {
	return &IRError{Kind: kind, Code: code, Message: message}
}

func (e *IRError) WithFunction(qualified string) *IRError {
	e.Function = qualified
	return e
}

func (e *IRError) WithPos(pos Pos) *IRError {
	e.Pos = pos
	return e
}

func (e *IRError) WithNote(note string) *IRError {
	e.Notes = append(e.Notes, note)
	return e
}

// ValidationError aggregates every structural violation Registry.Validate
// finds across all contracts; it never stops at the first problem, following
// an accumulate-then-report error reporting style.
type ValidationError struct {
	Errors []*IRError
}

func (v *ValidationError) Error() string {
	if len(v.Errors) == 1 {
		return v.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(v.Errors))
	for _, e := range v.Errors {
		fmt.Fprintf(&b, "  - %s\n", e.Error())
	}
	return b.String()
}

func (v *ValidationError) Add(err *IRError) {
	v.Errors = append(v.Errors, err)
}

func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Reporter renders IRErrors with Rust-compiler-style carets, the same way
// source diagnostics get rendered, for callers
// that have source text to show (typically a frontend reporting a
// TransformError via this same package).
type Reporter struct {
	filename string
	source   string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, source: source, lines: strings.Split(source, "\n")}
}

// Format renders a single error. Errors without a source position (the
// common case for pure IR construction failures) get a plain header line,
// followed by an "in <function>" line only when a function is attached.
func (r *Reporter) Format(err *IRError) string {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	levelColor := color.New(color.FgRed, color.Bold).SprintFunc()

	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor(string(err.Kind)), err.Code, err.Message)

	if err.Pos.Line <= 0 || err.Pos.Line > len(r.lines) {
		if err.Function != "" {
			fmt.Fprintf(&b, "  %s %s\n", dim("in"), err.Function)
		}
		return b.String()
	}

	width := lineNumberWidth(err.Pos.Line)
	indent := strings.Repeat(" ", width)
	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, err.Pos.Line, err.Pos.Column)
	fmt.Fprintf(&b, "%s %s\n", indent, dim("│"))
	fmt.Fprintf(&b, "%s %s %s\n", bold(fmt.Sprintf("%*d", width, err.Pos.Line)), dim("│"), r.lines[err.Pos.Line-1])

	marker := strings.Repeat(" ", max(0, err.Pos.Column-1)) + levelColor("^")
	fmt.Fprintf(&b, "%s %s %s\n", indent, dim("│"), marker)

	for _, note := range err.Notes {
		fmt.Fprintf(&b, "%s %s %s %s\n", indent, dim("│"), color.New(color.FgBlue).Sprint("note:"), note)
	}
	return b.String()
}

func (r *Reporter) FormatValidation(v *ValidationError) string {
	var b strings.Builder
	for _, e := range v.Errors {
		b.WriteString(r.Format(e))
	}
	return b.String()
}

func lineNumberWidth(line int) int {
	w := len(fmt.Sprintf("%d", line))
	if w < 3 {
		return 3
	}
	return w
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
