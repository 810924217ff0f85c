package slip

import "github.com/nukata/goarith"

// ---- arithmetic built-ins --------------------------------------------------
//
// Numbers are goarith.Number values: machine integers widen to big
// integers on overflow, and integers mix freely with floats. / is the
// real-valued quotient; quotient/remainder/modulo are the integral
// family. Exact zero divisors raise arithmetic-error everywhere; a float
// zero divides through to an IEEE infinity.

func asNumber(t Term) (goarith.Number, *Error) {
	if t.Tag != TagNumber {
		return nil, typeErr(t)
	}
	return t.Data.(goarith.Number), nil
}

func numZero(n goarith.Number) bool {
	return n.Cmp(goarith.AsNumber(0)) == 0
}

// intZero reports an exact integer zero. Real-valued division by a float
// zero follows IEEE and yields an infinity; dividing by an exact zero is
// an arithmetic-error.
func intZero(n goarith.Number) bool {
	switch n.(type) {
	case goarith.Int32, goarith.Int64, *goarith.BigInt:
		return numZero(n)
	}
	return false
}

func registerMathBuiltins(rt *Runtime) {
	rt.Register("+", "",
		func(args []Term, env *Env) (Term, *Error) {
			acc := goarith.AsNumber(0)
			for _, a := range args {
				n, err := asNumber(a)
				if err != nil {
					return Term{}, err
				}
				acc = acc.Add(n)
			}
			return Num(acc), nil
		})

	rt.Register("*", "",
		func(args []Term, env *Env) (Term, *Error) {
			acc := goarith.AsNumber(1)
			for _, a := range args {
				n, err := asNumber(a)
				if err != nil {
					return Term{}, err
				}
				acc = acc.Mul(n)
			}
			return Num(acc), nil
		})

	rt.Register("-", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) == 0 {
				return Term{}, arityErr("-")
			}
			first, err := asNumber(args[0])
			if err != nil {
				return Term{}, err
			}
			if len(args) == 1 {
				return Num(goarith.AsNumber(0).Sub(first)), nil
			}
			acc := first
			for _, a := range args[1:] {
				n, err := asNumber(a)
				if err != nil {
					return Term{}, err
				}
				acc = acc.Sub(n)
			}
			return Num(acc), nil
		})

	rt.Register("/",
		`Real-valued quotient; (/ x) is the reciprocal.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) == 0 {
				return Term{}, arityErr("/")
			}
			first, err := asNumber(args[0])
			if err != nil {
				return Term{}, err
			}
			if len(args) == 1 {
				if intZero(first) {
					return Term{}, errf(ErrArithmetic, "division by zero")
				}
				return Num(goarith.AsNumber(1).RQuo(first)), nil
			}
			acc := first
			for _, a := range args[1:] {
				n, err := asNumber(a)
				if err != nil {
					return Term{}, err
				}
				if intZero(n) {
					return Term{}, errf(ErrArithmetic, "division by zero")
				}
				acc = acc.RQuo(n)
			}
			return Num(acc), nil
		})

	rt.Register("quotient", "",
		func(args []Term, env *Env) (Term, *Error) {
			a, b, err := twoNumbers("quotient", args)
			if err != nil {
				return Term{}, err
			}
			if numZero(b) {
				return Term{}, errf(ErrArithmetic, "division by zero")
			}
			q, _ := a.QuoRem(b)
			return Num(q), nil
		})

	rt.Register("remainder", "",
		func(args []Term, env *Env) (Term, *Error) {
			a, b, err := twoNumbers("remainder", args)
			if err != nil {
				return Term{}, err
			}
			if numZero(b) {
				return Term{}, errf(ErrArithmetic, "division by zero")
			}
			_, r := a.QuoRem(b)
			return Num(r), nil
		})

	rt.Register("modulo",
		`Remainder with the divisor's sign.`,
		func(args []Term, env *Env) (Term, *Error) {
			a, b, err := twoNumbers("modulo", args)
			if err != nil {
				return Term{}, err
			}
			if numZero(b) {
				return Term{}, errf(ErrArithmetic, "division by zero")
			}
			_, r := a.QuoRem(b)
			if !numZero(r) && (r.Cmp(goarith.AsNumber(0)) < 0) != (b.Cmp(goarith.AsNumber(0)) < 0) {
				r = r.Add(b)
			}
			return Num(r), nil
		})

	compare := func(name string, ok func(int) bool) {
		rt.Register(name, "",
			func(args []Term, env *Env) (Term, *Error) {
				if len(args) < 2 {
					return Term{}, arityErr(name)
				}
				prev, err := asNumber(args[0])
				if err != nil {
					return Term{}, err
				}
				for _, a := range args[1:] {
					n, err := asNumber(a)
					if err != nil {
						return Term{}, err
					}
					if !ok(prev.Cmp(n)) {
						return Sym("false"), nil
					}
					prev = n
				}
				return Sym("true"), nil
			})
	}
	compare("=", func(c int) bool { return c == 0 })
	compare("<", func(c int) bool { return c < 0 })
	compare("<=", func(c int) bool { return c <= 0 })
	compare(">", func(c int) bool { return c > 0 })
	compare(">=", func(c int) bool { return c >= 0 })

	rt.Register("number?", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("number?")
			}
			return boolTerm(args[0].Tag == TagNumber), nil
		})

	rt.Register("integer?", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("integer?")
			}
			if args[0].Tag != TagNumber {
				return Sym("false"), nil
			}
			switch args[0].Data.(goarith.Number).(type) {
			case goarith.Int32, goarith.Int64, *goarith.BigInt:
				return Sym("true"), nil
			}
			return Sym("false"), nil
		})

	rt.Register("float?", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("float?")
			}
			if args[0].Tag != TagNumber {
				return Sym("false"), nil
			}
			_, isFloat := args[0].Data.(goarith.Number).(goarith.Float64)
			return boolTerm(isFloat), nil
		})
}

func twoNumbers(name string, args []Term) (goarith.Number, goarith.Number, *Error) {
	if len(args) != 2 {
		return nil, nil, arityErr(name)
	}
	a, err := asNumber(args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := asNumber(args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
