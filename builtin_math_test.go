package slip

import "testing"

func Test_Math_Addition_And_Product(t *testing.T) {
	wantInt(t, evalSrc(t, `(+)`), 0)
	wantInt(t, evalSrc(t, `(+ 1 2 3)`), 6)
	wantInt(t, evalSrc(t, `(*)`), 1)
	wantInt(t, evalSrc(t, `(* 2 3 4)`), 24)
	wantNum(t, evalSrc(t, `(+ 1 2.5)`), 3.5)
	wantNum(t, evalSrc(t, `(* 2 0.5)`), 1.0)
}

func Test_Math_Subtraction(t *testing.T) {
	wantInt(t, evalSrc(t, `(- 5 3)`), 2)
	wantInt(t, evalSrc(t, `(- 5)`), -5)
	wantInt(t, evalSrc(t, `(- 10 1 2 3 4)`), 0)
	wantErrKind(t, evalFail(t, `(-)`), ErrArity)
}

func Test_Math_Division_Is_Real_Valued(t *testing.T) {
	wantNum(t, evalSrc(t, `(/ 7 2)`), 3.5)
	wantNum(t, evalSrc(t, `(/ 2)`), 0.5)
	wantNum(t, evalSrc(t, `(/ 12 2 3)`), 2)
	wantErrKind(t, evalFail(t, `(/)`), ErrArity)
}

func Test_Math_Division_By_Exact_Zero(t *testing.T) {
	wantErrKind(t, evalFail(t, `(/ 1 0)`), ErrArithmetic)
	wantErrKind(t, evalFail(t, `(/ 2.5 0)`), ErrArithmetic)
	wantErrKind(t, evalFail(t, `(/ 0)`), ErrArithmetic)
}

func Test_Math_Integral_Family(t *testing.T) {
	wantInt(t, evalSrc(t, `(quotient 7 2)`), 3)
	wantInt(t, evalSrc(t, `(remainder 7 2)`), 1)
	wantInt(t, evalSrc(t, `(modulo 7 2)`), 1)

	wantInt(t, evalSrc(t, `(quotient -7 3)`), -2)
	wantInt(t, evalSrc(t, `(remainder -7 3)`), -1)
	wantInt(t, evalSrc(t, `(modulo -7 3)`), 2)
	wantInt(t, evalSrc(t, `(modulo 7 -3)`), -2)
	wantInt(t, evalSrc(t, `(modulo -7 -3)`), -1)

	for _, src := range []string{`(quotient 1 0)`, `(remainder 1 0)`, `(modulo 1 0)`} {
		wantErrKind(t, evalFail(t, src), ErrArithmetic)
	}
	wantErrKind(t, evalFail(t, `(quotient 1)`), ErrArity)
}

func Test_Math_Bignum_Widening(t *testing.T) {
	rt := newRT(t)
	v := evalWithRT(t, rt, `(* 10000000000 10000000000)`)
	wantForm(t, v, "100000000000000000000")
	wantSym(t, evalWithRT(t, rt, `(integer? (* 10000000000 10000000000))`), "true")
	wantSym(t, evalWithRT(t, rt, `(= (* 10000000000 10000000000)
                                    (* 10000000000 10000000000))`), "true")
}

func Test_Math_Comparisons_Chain(t *testing.T) {
	wantSym(t, evalSrc(t, `(= 2 2 2)`), "true")
	wantSym(t, evalSrc(t, `(= 2 2 3)`), "false")
	wantSym(t, evalSrc(t, `(= 2 2.0)`), "true")
	wantSym(t, evalSrc(t, `(< 1 2 3)`), "true")
	wantSym(t, evalSrc(t, `(< 1 3 2)`), "false")
	wantSym(t, evalSrc(t, `(<= 1 1 2)`), "true")
	wantSym(t, evalSrc(t, `(> 3 2 1)`), "true")
	wantSym(t, evalSrc(t, `(>= 3 3 1)`), "true")
	wantSym(t, evalSrc(t, `(< 0.5 1)`), "true")

	wantErrKind(t, evalFail(t, `(= 1)`), ErrArity)
	wantErrKind(t, evalFail(t, `(< 'a 2)`), ErrType)
	wantErrKind(t, evalFail(t, `(+ 1 "x")`), ErrType)
}

func Test_Math_Type_Predicates(t *testing.T) {
	wantSym(t, evalSrc(t, `(number? 1)`), "true")
	wantSym(t, evalSrc(t, `(number? 2.5)`), "true")
	wantSym(t, evalSrc(t, `(number? 'x)`), "false")

	wantSym(t, evalSrc(t, `(integer? 1)`), "true")
	wantSym(t, evalSrc(t, `(integer? 2.5)`), "false")
	wantSym(t, evalSrc(t, `(integer? "3")`), "false")

	wantSym(t, evalSrc(t, `(float? 2.5)`), "true")
	wantSym(t, evalSrc(t, `(float? 1)`), "false")
	wantSym(t, evalSrc(t, `(float? (+ 1 0.5))`), "true")
}
