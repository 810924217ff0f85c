package slip

import "testing"

func Test_Vector_Construction(t *testing.T) {
	wantForm(t, evalSrc(t, `(vector)`), "[]")
	wantForm(t, evalSrc(t, `(vector 1 'a "s")`), `[1 a "s"]`)
	wantForm(t, evalSrc(t, `(vector (+ 1 1))`), "[2]")
}

func Test_Vector_MakeVector(t *testing.T) {
	wantForm(t, evalSrc(t, `(make-vector 3)`), "[() () ()]")
	wantForm(t, evalSrc(t, `(make-vector 2 'x)`), "[x x]")
	wantForm(t, evalSrc(t, `(make-vector 0)`), "[]")
	wantErrKind(t, evalFail(t, `(make-vector -1)`), "range-error")
	wantErrKind(t, evalFail(t, `(make-vector 'a)`), ErrType)
}

func Test_Vector_Predicate_And_Length(t *testing.T) {
	wantSym(t, evalSrc(t, `(vector? (vector 1))`), "true")
	wantSym(t, evalSrc(t, `(vector? '(1))`), "false")
	wantInt(t, evalSrc(t, `(vector-length (vector))`), 0)
	wantInt(t, evalSrc(t, `(vector-length (vector 1 2 3))`), 3)
	wantErrKind(t, evalFail(t, `(vector-length '(1))`), ErrType)
}

func Test_Vector_Ref(t *testing.T) {
	wantSym(t, evalSrc(t, `(vector-ref (vector 'a 'b) 1)`), "b")
	wantErrKind(t, evalFail(t, `(vector-ref (vector 'a) 1)`), "range-error")
	wantErrKind(t, evalFail(t, `(vector-ref (vector 'a) -1)`), "range-error")
	wantErrKind(t, evalFail(t, `(vector-ref '(1) 0)`), ErrType)
}

func Test_Vector_SetBang_Mutates_And_Returns_Old(t *testing.T) {
	rt := newRT(t)
	evalWithRT(t, rt, `(define v (vector 'a 'b 'c))`)
	wantSym(t, evalWithRT(t, rt, `(vector-set! v 1 'x)`), "b")
	wantForm(t, evalWithRT(t, rt, `v`), "[a x c]")
	_, err := rt.EvalSource(`(vector-set! v 9 'x)`)
	wantErrKind(t, err, "range-error")
}

func Test_Vector_Shared_Identity(t *testing.T) {
	// Vectors are mutable references; a copy of the binding sees writes.
	rt := newRT(t)
	evalWithRT(t, rt, `(define v (vector 1 2))`)
	evalWithRT(t, rt, `(define w v)`)
	evalWithRT(t, rt, `(vector-set! w 0 9)`)
	wantForm(t, evalWithRT(t, rt, `v`), "[9 2]")
	wantSym(t, evalWithRT(t, rt, `(eq? v w)`), "true")
}

func Test_Vector_List_Conversions(t *testing.T) {
	wantForm(t, evalSrc(t, `(vector->list (vector 1 2 3))`), "(1 2 3)")
	wantForm(t, evalSrc(t, `(vector->list (vector))`), "()")
	wantForm(t, evalSrc(t, `(list->vector '(1 2 3))`), "[1 2 3]")
	wantForm(t, evalSrc(t, `(list->vector '())`), "[]")
	wantErrKind(t, evalFail(t, `(list->vector (cons 1 2))`), ErrType)
	wantErrKind(t, evalFail(t, `(vector->list '(1))`), ErrType)
}
