package slip

// ---- pair and list built-ins ---------------------------------------------
//
// car and cdr force lazy slots; cons? does not, so predicates stay free of
// side effects.

func registerListBuiltins(rt *Runtime) {
	rt.Register("cons",
		`Build a pair from a head and a tail.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 2 {
				return Term{}, arityErr("cons")
			}
			return Cons(args[0], args[1]), nil
		})

	rt.Register("car",
		`Head of a pair, forcing it when deferred.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("car")
			}
			if args[0].Tag != TagPair {
				return Term{}, typeErr(args[0])
			}
			return args[0].Data.(*Pair).ForceCar()
		})

	rt.Register("cdr",
		`Tail of a pair, forcing it when deferred.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("cdr")
			}
			if args[0].Tag != TagPair {
				return Term{}, typeErr(args[0])
			}
			return args[0].Data.(*Pair).ForceCdr()
		})

	rt.Register("cons?",
		`Report whether a value is a pair (lazy or eager).`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("cons?")
			}
			return boolTerm(args[0].Tag == TagPair), nil
		})

	rt.Register("list",
		`Build a proper list from the arguments.`,
		func(args []Term, env *Env) (Term, *Error) {
			return List(args...), nil
		})

	rt.Register("eq?",
		`Shallow identity: numbers by value, symbols, strings and
characters by content, pairs by cell.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 2 {
				return Term{}, arityErr("eq?")
			}
			return boolTerm(Eq(args[0], args[1])), nil
		})

	rt.Register("equal?",
		`Deep structural equality over pairs and vectors.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 2 {
				return Term{}, arityErr("equal?")
			}
			same, err := Equal(args[0], args[1])
			if err != nil {
				return Term{}, err
			}
			return boolTerm(same), nil
		})
}
