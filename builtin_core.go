package slip

// ---- core built-ins ----------------------------------------------------

func arityErr(name string) *Error { return NewError(ErrArity, Sym(name)) }
func typeErr(offender Term) *Error { return NewError(ErrType, offender) }

func registerCoreBuiltins(rt *Runtime) {
	rt.Register("eval",
		`Evaluate a term as code in the calling scope.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("eval")
			}
			return Eval(args[0], env)
		})

	rt.Register("apply",
		`Apply a procedure to a list of arguments: (apply f (list 1 2)).`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 2 {
				return Term{}, arityErr("apply")
			}
			items, proper, err := listSlice(args[1])
			if err != nil {
				return Term{}, err
			}
			if !proper {
				return Term{}, typeErr(args[1])
			}
			return Apply(args[0], items, env)
		})

	rt.Register("bound?",
		`Report whether a symbol has a visible binding.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("bound?")
			}
			name, ok := symName(args[0])
			if !ok {
				return Term{}, typeErr(args[0])
			}
			_, bound := env.Lookup(name)
			return boolTerm(bound), nil
		})

	rt.Register("macro-expand",
		`Expand a form's head macros without evaluating the result.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("macro-expand")
			}
			return MacroExpand(args[0], env)
		})

	rt.Register("gensym", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 0 {
				return Term{}, arityErr("gensym")
			}
			return Gensym(), nil
		})
}
