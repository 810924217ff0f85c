package slip

// Thunk is a suspended expression captured with the environment it must
// eventually be evaluated in.
type Thunk struct {
	Expr Term
	Env  *Env
}

// LazyCons builds a pair whose two slots defer evaluation of the given
// expressions until first access.
func LazyCons(carExpr, cdrExpr Term, env *Env) Term {
	return Term{Tag: TagPair, Data: &Pair{
		CarThunk: &Thunk{Expr: carExpr, Env: env},
		CdrThunk: &Thunk{Expr: cdrExpr, Env: env},
	}}
}

// ForceCar returns the head, evaluating and memoizing its thunk on first
// access. A failed forcing leaves the thunk in place, so the same failure
// reproduces on the next access instead of surfacing a half-written slot.
func (p *Pair) ForceCar() (Term, *Error) {
	if p.CarThunk == nil {
		return p.Car, nil
	}
	v, err := Eval(p.CarThunk.Expr, p.CarThunk.Env)
	if err != nil {
		return Term{}, err
	}
	p.Car = v
	p.CarThunk = nil
	return v, nil
}

// ForceCdr is ForceCar for the tail slot.
func (p *Pair) ForceCdr() (Term, *Error) {
	if p.CdrThunk == nil {
		return p.Cdr, nil
	}
	v, err := Eval(p.CdrThunk.Expr, p.CdrThunk.Env)
	if err != nil {
		return Term{}, err
	}
	p.Cdr = v
	p.CdrThunk = nil
	return v, nil
}

// Forced reports whether both slots hold plain values.
func (p *Pair) Forced() bool { return p.CarThunk == nil && p.CdrThunk == nil }
