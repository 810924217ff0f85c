// printer.go: Terms back to text.
//
// FormatTerm renders the written form: strings quoted, characters as
// literals. DisplayTerm renders for output: strings and characters raw.
// Printing never forces a lazy slot; unforced slots render as a
// #<lazy-cons> placeholder.

package slip

import (
	"strings"

	"github.com/nukata/goarith"
)

// FormatTerm renders t the way the reader would accept it back, where
// possible; opaque values use #<...> notation.
func FormatTerm(t Term) string {
	var b strings.Builder
	writeTerm(&b, t, false)
	return b.String()
}

// DisplayTerm renders t for human output: strings and characters appear
// raw, everything else as in FormatTerm.
func DisplayTerm(t Term) string {
	var b strings.Builder
	writeTerm(&b, t, true)
	return b.String()
}

func writeTerm(b *strings.Builder, t Term, display bool) {
	switch t.Tag {
	case TagNil:
		b.WriteString("()")
	case TagSymbol:
		b.WriteString(t.Data.(string))
	case TagNumber:
		b.WriteString(t.Data.(goarith.Number).String())
	case TagString:
		s := t.Data.(string)
		if display {
			b.WriteString(s)
		} else {
			writeQuoted(b, s)
		}
	case TagChar:
		r := t.Data.(rune)
		if display {
			b.WriteRune(r)
		} else {
			b.WriteString(charLiteral(r))
		}
	case TagPair:
		writePair(b, t.Data.(*Pair), display)
	case TagVector:
		b.WriteByte('[')
		for i, item := range t.Data.([]Term) {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeTerm(b, item, display)
		}
		b.WriteByte(']')
	case TagProc:
		b.WriteString(procLabel(t.Data.(*Proc)))
	case TagError:
		e := t.Data.(*Error)
		b.WriteString("#<error ")
		b.WriteString(e.Kind)
		b.WriteByte(' ')
		writeTerm(b, e.Value, display)
		if e.Source.Tag != TagNil {
			b.WriteString(" from ")
			writeTerm(b, e.Source, display)
		}
		b.WriteByte('>')
	}
}

func writePair(b *strings.Builder, p *Pair, display bool) {
	if p.CarThunk != nil && p.CdrThunk != nil {
		b.WriteString("#<lazy-cons>")
		return
	}
	b.WriteByte('(')
	for {
		if p.CarThunk != nil {
			b.WriteString("#<lazy-cons>")
		} else {
			writeTerm(b, p.Car, display)
		}
		if p.CdrThunk != nil {
			b.WriteString(" . #<lazy-cons>")
			break
		}
		if p.Cdr.Tag == TagNil {
			break
		}
		if p.Cdr.Tag == TagPair {
			next := p.Cdr.Data.(*Pair)
			if next.CarThunk != nil && next.CdrThunk != nil {
				b.WriteString(" . #<lazy-cons>")
				break
			}
			b.WriteByte(' ')
			p = next
			continue
		}
		b.WriteString(" . ")
		writeTerm(b, p.Cdr, display)
		break
	}
	b.WriteByte(')')
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func charLiteral(r rune) string {
	switch r {
	case ' ':
		return `\space`
	case '\t':
		return `\tab`
	case '\n':
		return `\newline`
	}
	return `\` + string(r)
}

func procLabel(p *Proc) string {
	switch p.Kind {
	case ProcBuiltin:
		return "#<builtin:" + p.Name + ">"
	case ProcMacro:
		if p.Name != "" {
			return "#<macro:" + p.Name + ">"
		}
		return "#<macro>"
	default:
		if p.Name != "" {
			return "#<procedure:" + p.Name + ">"
		}
		return "#<procedure>"
	}
}
