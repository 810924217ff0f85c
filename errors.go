// errors.go: structured failures and their rendering.
//
// A slip failure is an *Error: a kind symbol, an arbitrary payload value,
// the source form under evaluation when it was raised, and the trace of
// application boundaries it crossed while unwinding. Errors double as
// first-class terms (catch-error converts a propagating failure into an
// ordinary Error value), so the struct is the single representation for
// both roles.
//
// Rendering comes in two flavors:
//   - FormatTraceback: "kind: value" plus one "    at FORM [in PROC]" line
//     per boundary, innermost first. Used by dump-traceback and the REPL.
//   - FormatReadError: a caret-annotated snippet for reader diagnostics,
//     pointing at the offending column of the offending line.

package slip

import (
	"fmt"
	"strings"
)

// Error kinds raised by the core. User code can throw any kind it likes;
// these are the ones the evaluator, reader and builtins produce themselves.
const (
	ErrUnbound        = "unbound-symbol"
	ErrNotApplicable  = "not-applicable"
	ErrArity          = "arity-error"
	ErrMalformed      = "malformed-form"
	ErrType           = "type-error"
	ErrArithmetic     = "arithmetic-error"
	ErrIO             = "io-error"
	ErrRead           = "read-error"
	ErrMacroExpansion = "macro-expansion-error"
)

// Frame records one application boundary a failure crossed while
// unwinding: the form whose evaluation was abandoned and, when the form
// applied a named procedure, that procedure's name.
type Frame struct {
	Form Term
	Proc string
}

// Error is a structured slip failure.
//
// Source is the form under evaluation when the failure was raised; it is
// Nil until the innermost application boundary claims it. Trace grows
// innermost-first as the failure unwinds. Line/Col are 1-based reader
// coordinates, meaningful only for read-error kinds.
type Error struct {
	Kind   string
	Value  Term
	Source Term
	Trace  []Frame

	Line, Col int

	incomplete bool // read-error only: more input could complete the form
}

// NewError builds a failure with no source or trace yet; the evaluator
// fills those in as the failure unwinds.
func NewError(kind string, value Term) *Error {
	return &Error{Kind: kind, Value: value}
}

// errf builds a failure whose value is a formatted message string.
func errf(kind, format string, a ...interface{}) *Error {
	return NewError(kind, Str(fmt.Sprintf(format, a...)))
}

// Error implements the Go error interface with the traceback headline.
func (e *Error) Error() string {
	return e.Kind + ": " + DisplayTerm(e.Value)
}

// Term wraps the failure as a first-class value.
func (e *Error) Term() Term { return Term{Tag: TagError, Data: e} }

// attach records that the failure crossed the application boundary for
// form, applying the named procedure. The innermost boundary claims
// Source; outer ones extend the trace.
func (e *Error) attach(form Term, proc string) *Error {
	if e.Source.Tag == TagNil {
		e.Source = form
		return e
	}
	e.Trace = append(e.Trace, Frame{Form: form, Proc: proc})
	return e
}

// FormatTraceback renders the failure for diagnostics: a "kind: value"
// headline, then the source form and each unwound boundary as
// "    at FORM [in PROC]" lines, innermost first.
func FormatTraceback(e *Error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", e.Kind, DisplayTerm(e.Value))
	if e.Source.Tag != TagNil {
		fmt.Fprintf(&b, "    at %s\n", FormatTerm(e.Source))
	}
	for _, f := range e.Trace {
		if f.Proc != "" {
			fmt.Fprintf(&b, "    at %s [in %s]\n", FormatTerm(f.Form), f.Proc)
		} else {
			fmt.Fprintf(&b, "    at %s\n", FormatTerm(f.Form))
		}
	}
	return b.String()
}

// FormatReadError renders a reader failure as a caret-annotated snippet of
// src, labeled with name (a file path or "repl"). Non-read errors fall
// back to the traceback rendering.
func FormatReadError(e *Error, name, src string) string {
	if e.Kind != ErrRead {
		return FormatTraceback(e)
	}
	return prettySnippet(src, "READ ERROR", name, e.Line, e.Col, DisplayTerm(e.Value))
}

// prettySnippet builds a Python-like snippet with a header and a caret.
// It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettySnippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad > len(lineTxt) {
		caretPad = len(lineTxt)
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
