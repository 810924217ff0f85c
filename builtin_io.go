package slip

import "fmt"

// ---- io built-ins -----------------------------------------------------------
//
// Output goes through the runtime's writer and input through its reader,
// so embedders and tests can redirect both.

func registerIOBuiltins(rt *Runtime) {
	display := func(args []Term) string {
		out := ""
		for i, a := range args {
			if i > 0 {
				out += " "
			}
			out += DisplayTerm(a)
		}
		return out
	}

	rt.Register("print",
		`Write the arguments, space separated, without a newline.`,
		func(args []Term, env *Env) (Term, *Error) {
			fmt.Fprint(rt.Out, display(args))
			return Nil, nil
		})

	rt.Register("println",
		`Write the arguments, space separated, with a newline.`,
		func(args []Term, env *Env) (Term, *Error) {
			fmt.Fprintln(rt.Out, display(args))
			return Nil, nil
		})

	rt.Register("newline", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 0 {
				return Term{}, arityErr("newline")
			}
			fmt.Fprintln(rt.Out)
			return Nil, nil
		})

	rt.Register("read",
		`Read the next form from the runtime input. End of input raises a
read-error whose value is the symbol eof.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 0 {
				return Term{}, arityErr("read")
			}
			if rt.In == nil {
				return Term{}, errf(ErrIO, "no input attached")
			}
			return rt.In.Read()
		})

	rt.Register("read-string",
		`Read one form from a string.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("read-string")
			}
			if args[0].Tag != TagString {
				return Term{}, typeErr(args[0])
			}
			return NewStringReader(args[0].Data.(string), "string").Read()
		})

	rt.Register("load-file",
		`Read and evaluate every form of a file against the global scope.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("load-file")
			}
			if args[0].Tag != TagString {
				return Term{}, typeErr(args[0])
			}
			return rt.LoadFile(args[0].Data.(string))
		})
}
