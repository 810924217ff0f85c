package slip

// ---- introspection built-ins --------------------------------------------

// typeName names a term's variant for type-of.
func typeName(t Term) string {
	switch t.Tag {
	case TagNil:
		return "nil"
	case TagSymbol:
		return "symbol"
	case TagNumber:
		return "number"
	case TagString:
		return "string"
	case TagChar:
		return "character"
	case TagPair:
		return "pair"
	case TagVector:
		return "vector"
	case TagProc:
		if t.Data.(*Proc).Kind == ProcMacro {
			return "macro"
		}
		return "procedure"
	case TagError:
		return "error"
	}
	return "unknown"
}

func registerIntrospectionBuiltins(rt *Runtime) {
	rt.Register("type-of",
		`The value's variant, as a symbol.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("type-of")
			}
			return Sym(typeName(args[0])), nil
		})

	rt.Register("doc",
		`A procedure's docstring; () when it has none.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("doc")
			}
			if args[0].Tag != TagProc {
				return Term{}, typeErr(args[0])
			}
			p := args[0].Data.(*Proc)
			if p.Doc == "" {
				return Nil, nil
			}
			return Str(p.Doc), nil
		})

	rt.Register("symbol?", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("symbol?")
			}
			return boolTerm(args[0].Tag == TagSymbol), nil
		})

	rt.Register("char?", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("char?")
			}
			return boolTerm(args[0].Tag == TagChar), nil
		})

	rt.Register("procedure?",
		`True for closures, case-lambdas and builtins; false for macros.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("procedure?")
			}
			ok := args[0].Tag == TagProc && args[0].Data.(*Proc).Kind != ProcMacro
			return boolTerm(ok), nil
		})

	rt.Register("macro?", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("macro?")
			}
			ok := args[0].Tag == TagProc && args[0].Data.(*Proc).Kind == ProcMacro
			return boolTerm(ok), nil
		})
}
