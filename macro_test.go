package slip

import (
	"strings"
	"testing"
)

func Test_Macro_Define_And_Expand(t *testing.T) {
	rt := newRT(t)
	wantSym(t, evalWithRT(t, rt, `(define-macro (twice e) (list 'begin e e))`), "twice")
	wantForm(t, evalWithRT(t, rt, `twice`), "#<macro:twice>")

	evalWithRT(t, rt, `(define n 0)`)
	evalWithRT(t, rt, `(twice (set! n (+ n 1)))`)
	wantInt(t, evalWithRT(t, rt, `n`), 2)
}

func Test_Macro_Receives_Forms_Unevaluated(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt, `(define-macro (quote-it e) (list 'quote e))`)
	// (boom) would fail if evaluated; the macro sees the raw form.
	wantForm(t, evalWithRT(t, rt, `(quote-it (boom 1 2))`), "(boom 1 2)")
}

func Test_Macro_Expansion_Evaluates_In_Call_Scope(t *testing.T) {
	src := `
      (define-macro (m) 'hidden)
      (define hidden 42)
      (m)`
	wantInt(t, evalSrc(t, src), 42)
}

func Test_Macro_Can_Capture_Call_Site_Bindings(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt,
		"(define-macro (swap! a b) `(let ((tmp ,a)) (set! ,a ,b) (set! ,b tmp)))")
	evalWithRT(t, rt, `(define x 1)`)
	evalWithRT(t, rt, `(define y 2)`)
	evalWithRT(t, rt, `(swap! x y)`)
	wantForm(t, evalWithRT(t, rt, `(list x y)`), "(2 1)")

	// No hygiene: a call-site tmp is shadowed by the macro's own.
	evalWithRT(t, rt, `(define tmp 'mine)`)
	evalWithRT(t, rt, `(swap! x y)`)
	wantSym(t, evalWithRT(t, rt, `tmp`), "mine")
	wantForm(t, evalWithRT(t, rt, `(list x y)`), "(1 2)")
}

func Test_Macro_Expand_Builtin_Does_Not_Evaluate(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt, `(define-macro (twice e) (list 'begin e e))`)
	wantForm(t, evalWithRT(t, rt, `(macro-expand '(twice (f)))`), "(begin (f) (f))")

	// Non-macro forms come back untouched.
	wantForm(t, evalWithRT(t, rt, `(macro-expand '(car x))`), "(car x)")
	wantInt(t, evalWithRT(t, rt, `(macro-expand 5)`), 5)
}

func Test_Macro_Expand_Builtin_Rewrites_Heads_To_Fixpoint(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt, `
      (define-macro (m1) '(m2))
      (define-macro (m2) ''done)`)
	wantForm(t, evalWithRT(t, rt, `(macro-expand '(m1))`), "(quote done)")
}

func Test_Macro_Expansion_Failure_Wraps(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt, `(define-macro (bad) (car 7))`)

	_, err := rt.EvalSource(`(bad)`)
	wantErrKind(t, err, ErrMacroExpansion)
	if err.Value.Tag != TagError {
		t.Fatalf("want inner error as value, got %s", FormatTerm(err.Value))
	}
	inner := err.Value.Data.(*Error)
	if inner.Kind != ErrType {
		t.Fatalf("want inner type-error, got %s", inner.Kind)
	}
	wantForm(t, err.Source, "(bad)")
}

func Test_Macro_Arity_Failure_Wraps(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt, `(define-macro (one x) x)`)
	_, err := rt.EvalSource(`(one 1 2)`)
	wantErrKind(t, err, ErrMacroExpansion)
}

func Test_Macro_Is_Not_Applicable_As_Value(t *testing.T) {
	err := evalFail(t, `
      (define-macro (m x) x)
      (apply m '(1))`)
	wantErrKind(t, err, ErrNotApplicable)
}

func Test_Macro_Gensym(t *testing.T) {
	rt := newRT(t)
	wantSym(t, evalWithRT(t, rt, `(eq? (gensym) (gensym))`), "false")

	v := evalWithRT(t, rt, `(gensym)`)
	if v.Tag != TagSymbol || !strings.HasPrefix(v.Data.(string), "#:g") {
		t.Fatalf("want #:g-prefixed symbol, got %s", FormatTerm(v))
	}
}

// --- quasiquote ---------------------------------------------------------------

func Test_Quasiquote_Verbatim_And_Unquote(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt, `(define x 9)`)
	wantForm(t, evalWithRT(t, rt, "`(a b c)"), "(a b c)")
	wantForm(t, evalWithRT(t, rt, "`(a ,x c)"), "(a 9 c)")
	wantForm(t, evalWithRT(t, rt, "`(1 ,(+ 1 1) 3)"), "(1 2 3)")
	wantInt(t, evalWithRT(t, rt, "`,(+ 1 2)"), 3)
	wantSym(t, evalWithRT(t, rt, "`a"), "a")
	wantInt(t, evalWithRT(t, rt, "`5"), 5)
}

func Test_Quasiquote_Unquote_Sees_Local_Scope(t *testing.T) {
	wantForm(t, evalSrc(t, "(let ((x 2)) `(1 ,x))"), "(1 2)")
}

func Test_Quasiquote_Splicing(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt, `(define xs '(2 3))`)
	wantForm(t, evalWithRT(t, rt, "`(1 ,@xs 4)"), "(1 2 3 4)")
	wantForm(t, evalWithRT(t, rt, "`(,@xs)"), "(2 3)")
	wantForm(t, evalWithRT(t, rt, "`(,@'() 1)"), "(1)")
	wantForm(t, evalWithRT(t, rt, "`(1 ,(+ 1 1) ,@(list 3 4) 5)"), "(1 2 3 4 5)")
}

func Test_Quasiquote_Descends_Into_Sublists(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt, `(define x 9)`)
	wantForm(t, evalWithRT(t, rt, "`(a (b ,x) c)"), "(a (b 9) c)")
	wantForm(t, evalWithRT(t, rt, "`((,@(list 1 2)))"), "((1 2))")
}

func Test_Quasiquote_Dotted_Tails(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt, `(define x 9)`)
	wantForm(t, evalWithRT(t, rt, "`(1 . 2)"), "(1 . 2)")
	wantForm(t, evalWithRT(t, rt, "`(1 . ,x)"), "(1 . 9)")
	wantForm(t, evalWithRT(t, rt, "`(1 2 . ,(+ 4 5))"), "(1 2 . 9)")
}

func Test_Quasiquote_Failures(t *testing.T) {
	wantErrKind(t, evalFail(t, "`(1 ,@2)"), ErrType)
	wantErrKind(t, evalFail(t, "`(1 . ,@(list 2))"), ErrMalformed)
	wantErrKind(t, evalFail(t, `(unquote 1)`), ErrMalformed)
	wantErrKind(t, evalFail(t, `(unquote-splicing 1)`), ErrMalformed)
	wantErrKind(t, evalFail(t, `(quasiquote)`), ErrMalformed)
}
