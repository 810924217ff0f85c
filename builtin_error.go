package slip

import "fmt"

// ---- error built-ins --------------------------------------------------------
//
// throw-error raises; the accessors are pure. Raised failures pick up
// their source form at the innermost application boundary, so the error
// leaving throw-error carries no source yet.

func wantError(args []Term, name string) (*Error, *Error) {
	if len(args) != 1 {
		return nil, arityErr(name)
	}
	if args[0].Tag != TagError {
		return nil, typeErr(args[0])
	}
	return args[0].Data.(*Error), nil
}

func registerErrorBuiltins(rt *Runtime) {
	rt.Register("throw-error",
		`Raise a failure: (throw-error 'kind value).`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 2 {
				return Term{}, arityErr("throw-error")
			}
			kind, ok := symName(args[0])
			if !ok {
				return Term{}, typeErr(args[0])
			}
			return Term{}, NewError(kind, args[1])
		})

	rt.Register("error?", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("error?")
			}
			return boolTerm(args[0].Tag == TagError), nil
		})

	rt.Register("error-type",
		`The error's kind, as a symbol.`,
		func(args []Term, env *Env) (Term, *Error) {
			e, err := wantError(args, "error-type")
			if err != nil {
				return Term{}, err
			}
			return Sym(e.Kind), nil
		})

	rt.Register("error-value", "",
		func(args []Term, env *Env) (Term, *Error) {
			e, err := wantError(args, "error-value")
			if err != nil {
				return Term{}, err
			}
			return e.Value, nil
		})

	rt.Register("error-source",
		`The form under evaluation when the error was raised; () when absent.`,
		func(args []Term, env *Env) (Term, *Error) {
			e, err := wantError(args, "error-source")
			if err != nil {
				return Term{}, err
			}
			return e.Source, nil
		})

	rt.Register("error-trace",
		`Unwound application boundaries, innermost first, as (form . name) pairs.`,
		func(args []Term, env *Env) (Term, *Error) {
			e, err := wantError(args, "error-trace")
			if err != nil {
				return Term{}, err
			}
			frames := make([]Term, len(e.Trace))
			for i, f := range e.Trace {
				name := Nil
				if f.Proc != "" {
					name = Sym(f.Proc)
				}
				frames[i] = Cons(f.Form, name)
			}
			return List(frames...), nil
		})

	rt.Register("dump-traceback",
		`Print an error's headline, source and trace.`,
		func(args []Term, env *Env) (Term, *Error) {
			e, err := wantError(args, "dump-traceback")
			if err != nil {
				return Term{}, err
			}
			fmt.Fprint(rt.Out, FormatTraceback(e))
			return Nil, nil
		})
}
