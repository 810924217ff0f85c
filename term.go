// term.go: the slip value model.
//
// Code and data share one representation: a Term is a small tagged struct
// whose Data field carries the payload selected by Tag. The zero Term is
// Nil, so optional Term-valued fields (an Error's Source, a missing else
// branch) read as the empty list without a sentinel.

package slip

import (
	"github.com/nukata/goarith"
)

// TermTag discriminates the payload held in Term.Data.
type TermTag int

const (
	TagNil    TermTag = iota // empty list (no payload)
	TagSymbol                // string
	TagNumber                // goarith.Number
	TagString                // string
	TagChar                  // rune
	TagPair                  // *Pair
	TagVector                // []Term
	TagProc                  // *Proc
	TagError                 // *Error
)

// Term is the uniform carrier for every slip value, source forms included.
//
// Invariants:
//   - When Tag==TagNil, Data is nil.
//   - Numbers hold a goarith.Number (int32/int64/bigint/float64, normalized
//     by goarith.AsNumber).
//   - Pairs hold *Pair; either slot of a Pair may still be an unforced
//     thunk (see lazy.go). All other variants are immutable once built.
type Term struct {
	Tag  TermTag
	Data interface{}
}

// Nil is the empty list.
var Nil = Term{Tag: TagNil}

// Primitive constructors.
func Sym(name string) Term      { return Term{Tag: TagSymbol, Data: name} }
func Str(s string) Term         { return Term{Tag: TagString, Data: s} }
func Char(r rune) Term          { return Term{Tag: TagChar, Data: r} }
func Num(n goarith.Number) Term { return Term{Tag: TagNumber, Data: n} }
func Int(i int64) Term          { return Num(goarith.AsNumber(i)) }
func Float(f float64) Term      { return Num(goarith.AsNumber(f)) }
func Vec(items []Term) Term     { return Term{Tag: TagVector, Data: items} }

// Pair is one cons cell. CarThunk/CdrThunk are non-nil while the matching
// slot is still deferred; forcing evaluates the thunk once, stores the
// result in Car/Cdr and drops the thunk (see lazy.go).
type Pair struct {
	Car      Term
	Cdr      Term
	CarThunk *Thunk
	CdrThunk *Thunk
}

// Cons builds an eager pair.
func Cons(car, cdr Term) Term { return Term{Tag: TagPair, Data: &Pair{Car: car, Cdr: cdr}} }

// List builds a proper list from items.
func List(items ...Term) Term {
	out := Nil
	for i := len(items) - 1; i >= 0; i-- {
		out = Cons(items[i], out)
	}
	return out
}

// ProcKind discriminates the applicable value variants. The set is closed:
// every dispatch site switches exhaustively over it.
type ProcKind int

const (
	ProcBuiltin    ProcKind = iota // host Go function
	ProcClosure                    // single clause, captured env
	ProcCaseLambda                 // several clauses dispatched by argument count
	ProcMacro                      // closure applied to unevaluated forms
)

// BuiltinFn is the host signature for builtins. The env is the environment
// of the call site, so builtins like eval and read see the caller's scope.
type BuiltinFn func(args []Term, env *Env) (Term, *Error)

// Clause is one (parameters, body) pairing of a closure, case-lambda or
// macro. Rest, when non-empty, names a variadic trailing parameter that
// collects the remaining arguments as a list.
type Clause struct {
	Params []string
	Rest   string
	Body   []Term
}

// Proc is any applicable value. Kind decides which fields are meaningful:
// builtins carry Fn, everything else carries Clauses and the defining Env.
// Name is filled in by define for anonymous procedures so tracebacks can
// label their frames.
type Proc struct {
	Kind    ProcKind
	Name    string
	Doc     string
	Clauses []Clause
	Env     *Env
	Fn      BuiltinFn
}

// NewBuiltin wraps a host function as an applicable Term.
func NewBuiltin(name string, fn BuiltinFn) Term {
	return Term{Tag: TagProc, Data: &Proc{Kind: ProcBuiltin, Name: name, Fn: fn}}
}

// Accepts reports whether the clause takes n arguments.
func (c *Clause) Accepts(n int) bool {
	if c.Rest != "" {
		return n >= len(c.Params)
	}
	return n == len(c.Params)
}

// Truthy reports how t counts in a conditional. Exactly the symbol false,
// the integer 0, Nil, the empty string and the empty vector are falsey;
// every other value is truthy (0.0 included: only exact integer zero
// fails the test).
func Truthy(t Term) bool {
	switch t.Tag {
	case TagNil:
		return false
	case TagSymbol:
		return t.Data.(string) != "false"
	case TagString:
		return t.Data.(string) != ""
	case TagVector:
		return len(t.Data.([]Term)) != 0
	case TagNumber:
		switch v := t.Data.(goarith.Number).(type) {
		case goarith.Int32:
			return v != 0
		case goarith.Int64:
			return v != 0
		}
	}
	return true
}

// Eq reports shallow identity: numbers compare by numeric value, symbols,
// strings and characters by content, pairs/procedures/errors by pointer,
// vectors by backing storage.
func Eq(a, b Term) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagNil:
		return true
	case TagSymbol, TagString:
		return a.Data.(string) == b.Data.(string)
	case TagChar:
		return a.Data.(rune) == b.Data.(rune)
	case TagNumber:
		return a.Data.(goarith.Number).Cmp(b.Data.(goarith.Number)) == 0
	case TagPair:
		return a.Data.(*Pair) == b.Data.(*Pair)
	case TagProc:
		return a.Data.(*Proc) == b.Data.(*Proc)
	case TagError:
		return a.Data.(*Error) == b.Data.(*Error)
	case TagVector:
		av, bv := a.Data.([]Term), b.Data.([]Term)
		if len(av) != len(bv) {
			return false
		}
		return len(av) == 0 || &av[0] == &bv[0]
	}
	return false
}

// Equal reports deep structural equality over pairs and vectors; atoms fall
// back to Eq. Lazy slots are forced along the way, so the comparison can
// fail the way any evaluation can.
func Equal(a, b Term) (bool, *Error) {
	if a.Tag != b.Tag {
		return false, nil
	}
	switch a.Tag {
	case TagPair:
		ap, bp := a.Data.(*Pair), b.Data.(*Pair)
		if ap == bp {
			return true, nil
		}
		aCar, err := ap.ForceCar()
		if err != nil {
			return false, err
		}
		bCar, err := bp.ForceCar()
		if err != nil {
			return false, err
		}
		if same, err := Equal(aCar, bCar); err != nil || !same {
			return same, err
		}
		aCdr, err := ap.ForceCdr()
		if err != nil {
			return false, err
		}
		bCdr, err := bp.ForceCdr()
		if err != nil {
			return false, err
		}
		return Equal(aCdr, bCdr)
	case TagVector:
		av, bv := a.Data.([]Term), b.Data.([]Term)
		if len(av) != len(bv) {
			return false, nil
		}
		for i := range av {
			if same, err := Equal(av[i], bv[i]); err != nil || !same {
				return same, err
			}
		}
		return true, nil
	}
	return Eq(a, b), nil
}

// String renders the written form, mostly for tests and %v debugging.
func (t Term) String() string { return FormatTerm(t) }

// boolTerm maps a host bool onto the true/false symbols.
func boolTerm(b bool) Term {
	if b {
		return Sym("true")
	}
	return Sym("false")
}

// symName returns the symbol's name, or "" when t is not a symbol.
func symName(t Term) (string, bool) {
	if t.Tag != TagSymbol {
		return "", false
	}
	return t.Data.(string), true
}

// asInt extracts an exact machine integer from a number term.
func asInt(t Term) (int64, bool) {
	if t.Tag != TagNumber {
		return 0, false
	}
	switch v := t.Data.(goarith.Number).(type) {
	case goarith.Int32:
		return int64(v), true
	case goarith.Int64:
		return int64(v), true
	}
	return 0, false
}

// listSlice unrolls a proper list into a slice, forcing lazy tails. It
// fails with the forcing error if a deferred slot fails, and reports
// ok=false for improper lists.
func listSlice(t Term) (items []Term, ok bool, err *Error) {
	for {
		switch t.Tag {
		case TagNil:
			return items, true, nil
		case TagPair:
			p := t.Data.(*Pair)
			car, e := p.ForceCar()
			if e != nil {
				return nil, false, e
			}
			items = append(items, car)
			cdr, e := p.ForceCdr()
			if e != nil {
				return nil, false, e
			}
			t = cdr
		default:
			return items, false, nil
		}
	}
}
