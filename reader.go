// reader.go: text to Terms.
//
// The reader is rune-level and streaming: it pulls exactly as much input
// as the next form needs, so the same type serves files, strings and an
// interactive stdin feeding the read builtin. Positions are 1-based
// line:col, carried on read errors for caret snippets.
//
// Syntax: (), dotted pairs (a . b), 'x `x ,x ,@x reader macros, "strings"
// with \" \\ \n \t escapes, \c character literals plus the named \space
// \tab \newline, ; line comments. Atoms parse as integers, then floats,
// then symbols.

package slip

import (
	"bufio"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/nukata/goarith"
)

// Reader produces Terms from an input stream.
type Reader struct {
	in   *bufio.Reader
	name string
	line int // position of the next unread rune, 1-based
	col  int
}

// NewReader wraps an input stream. name labels diagnostics ("repl", a
// file path).
func NewReader(in io.Reader, name string) *Reader {
	return &Reader{in: bufio.NewReader(in), name: name, line: 1, col: 1}
}

// NewStringReader reads forms from an in-memory string.
func NewStringReader(src, name string) *Reader {
	return NewReader(strings.NewReader(src), name)
}

// IsIncomplete reports whether err is a read failure that more input
// could still complete (an unclosed list or string at end of input). The
// REPL uses it to decide between a continuation prompt and a diagnostic.
func IsIncomplete(err *Error) bool {
	return err != nil && err.incomplete
}

// IsEOF reports whether err is the clean end-of-input signal: a
// read-error whose value is the symbol eof, raised when input ends
// before any form starts.
func IsEOF(err *Error) bool {
	return err != nil && err.Kind == ErrRead && !err.incomplete && Eq(err.Value, Sym("eof"))
}

// Read returns the next form, a clean eof error when input is exhausted,
// or a read-error describing the first syntax problem.
func (r *Reader) Read() (Term, *Error) {
	r.skipSpace()
	if _, ok := r.peek(); !ok {
		return Term{}, r.eofError()
	}
	return r.readForm()
}

// ReadAll reads forms until clean end of input.
func (r *Reader) ReadAll() ([]Term, *Error) {
	var forms []Term
	for {
		form, err := r.Read()
		if err != nil {
			if IsEOF(err) {
				return forms, nil
			}
			return nil, err
		}
		forms = append(forms, form)
	}
}

// ---- rune cursor --------------------------------------------------------

func (r *Reader) peek() (rune, bool) {
	ch, _, err := r.in.ReadRune()
	if err != nil {
		return 0, false
	}
	r.in.UnreadRune()
	return ch, true
}

func (r *Reader) next() (rune, bool) {
	ch, _, err := r.in.ReadRune()
	if err != nil {
		return 0, false
	}
	if ch == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return ch, true
}

func (r *Reader) skipSpace() {
	for {
		ch, ok := r.peek()
		if !ok {
			return
		}
		switch {
		case ch == ';':
			for {
				c, ok := r.next()
				if !ok || c == '\n' {
					break
				}
			}
		case unicode.IsSpace(ch):
			r.next()
		default:
			return
		}
	}
}

// isDelimiter reports runes that terminate an atom.
func isDelimiter(ch rune) bool {
	return unicode.IsSpace(ch) || strings.ContainsRune("()'`,\";", ch)
}

// ---- errors -------------------------------------------------------------

func (r *Reader) eofError() *Error {
	e := NewError(ErrRead, Sym("eof"))
	e.Line, e.Col = r.line, r.col
	return e
}

func (r *Reader) failAt(line, col int, format string, a ...interface{}) *Error {
	e := errf(ErrRead, format, a...)
	e.Line, e.Col = line, col
	return e
}

// failOpenAt marks errors where end of input interrupted a form, so the
// REPL can keep prompting instead of reporting.
func (r *Reader) failOpenAt(line, col int, format string, a ...interface{}) *Error {
	e := r.failAt(line, col, format, a...)
	e.incomplete = true
	return e
}

// ---- forms --------------------------------------------------------------

// subform reads the form required after a reader macro or dot, treating
// end of input as an incomplete form rather than a clean eof.
func (r *Reader) subform() (Term, *Error) {
	r.skipSpace()
	if _, ok := r.peek(); !ok {
		return Term{}, r.failOpenAt(r.line, r.col, "unexpected end of input")
	}
	return r.readForm()
}

func (r *Reader) readForm() (Term, *Error) {
	line, col := r.line, r.col
	ch, _ := r.peek()
	switch ch {
	case '(':
		r.next()
		return r.readList(line, col)
	case ')':
		r.next()
		return Term{}, r.failAt(line, col, "unexpected )")
	case '\'':
		r.next()
		return r.readWrapped("quote")
	case '`':
		r.next()
		return r.readWrapped("quasiquote")
	case ',':
		r.next()
		if c, ok := r.peek(); ok && c == '@' {
			r.next()
			return r.readWrapped("unquote-splicing")
		}
		return r.readWrapped("unquote")
	case '"':
		r.next()
		return r.readString(line, col)
	case '\\':
		r.next()
		return r.readChar(line, col)
	default:
		tok := r.readAtomToken()
		if tok == "." {
			return Term{}, r.failAt(line, col, "unexpected .")
		}
		return atomFromToken(tok), nil
	}
}

func (r *Reader) readWrapped(head string) (Term, *Error) {
	form, err := r.subform()
	if err != nil {
		return Term{}, err
	}
	return List(Sym(head), form), nil
}

func (r *Reader) readList(openLine, openCol int) (Term, *Error) {
	var items []Term
	for {
		r.skipSpace()
		ch, ok := r.peek()
		if !ok {
			return Term{}, r.failOpenAt(openLine, openCol, "unterminated list")
		}
		if ch == ')' {
			r.next()
			return List(items...), nil
		}
		if !isDelimiter(ch) && ch != '\\' {
			line, col := r.line, r.col
			tok := r.readAtomToken()
			if tok == "." {
				if len(items) == 0 {
					return Term{}, r.failAt(line, col, "unexpected .")
				}
				return r.readDottedTail(items, openLine, openCol)
			}
			items = append(items, atomFromToken(tok))
			continue
		}
		form, err := r.readForm()
		if err != nil {
			return Term{}, err
		}
		items = append(items, form)
	}
}

func (r *Reader) readDottedTail(items []Term, openLine, openCol int) (Term, *Error) {
	r.skipSpace()
	if ch, ok := r.peek(); ok && ch == ')' {
		return Term{}, r.failAt(r.line, r.col, "expected form after .")
	}
	tail, err := r.subform()
	if err != nil {
		return Term{}, err
	}
	r.skipSpace()
	ch, ok := r.peek()
	if !ok {
		return Term{}, r.failOpenAt(openLine, openCol, "unterminated list")
	}
	if ch != ')' {
		return Term{}, r.failAt(r.line, r.col, "expected ) after dotted tail")
	}
	r.next()
	out := tail
	for i := len(items) - 1; i >= 0; i-- {
		out = Cons(items[i], out)
	}
	return out, nil
}

func (r *Reader) readString(openLine, openCol int) (Term, *Error) {
	var b strings.Builder
	for {
		ch, ok := r.next()
		if !ok {
			return Term{}, r.failOpenAt(openLine, openCol, "unterminated string")
		}
		switch ch {
		case '"':
			return Str(b.String()), nil
		case '\\':
			escLine, escCol := r.line, r.col
			esc, ok := r.next()
			if !ok {
				return Term{}, r.failOpenAt(openLine, openCol, "unterminated string")
			}
			switch esc {
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				return Term{}, r.failAt(escLine, escCol, "unknown escape \\%c", esc)
			}
		default:
			b.WriteRune(ch)
		}
	}
}

func (r *Reader) readChar(openLine, openCol int) (Term, *Error) {
	first, ok := r.next()
	if !ok {
		return Term{}, r.failOpenAt(openLine, openCol, "unterminated character literal")
	}
	if isDelimiter(first) || first == '\\' {
		return Term{}, r.failAt(openLine, openCol, "malformed character literal")
	}
	name := string(first) + r.readAtomToken()
	if len([]rune(name)) == 1 {
		return Char(first), nil
	}
	switch name {
	case "space":
		return Char(' '), nil
	case "tab":
		return Char('\t'), nil
	case "newline":
		return Char('\n'), nil
	}
	return Term{}, r.failAt(openLine, openCol, "unknown character name \\%s", name)
}

// readAtomToken consumes runes up to the next delimiter.
func (r *Reader) readAtomToken() string {
	var b strings.Builder
	for {
		ch, ok := r.peek()
		if !ok || isDelimiter(ch) || ch == '\\' {
			return b.String()
		}
		r.next()
		b.WriteRune(ch)
	}
}

// atomFromToken classifies an atom: integer, then float, then symbol.
func atomFromToken(tok string) Term {
	if n, ok := parseNumber(tok); ok {
		return Num(n)
	}
	return Sym(tok)
}

func parseNumber(s string) (goarith.Number, bool) {
	z := new(big.Int)
	if _, ok := z.SetString(s, 10); ok {
		return goarith.AsNumber(z), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return goarith.AsNumber(f), true
	}
	return nil, false
}
