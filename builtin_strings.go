package slip

import "strings"

// ---- string built-ins ------------------------------------------------------
//
// Indices count runes, not bytes. Out-of-range indices raise range-error
// with the offending index as the value.

func wantString(args []Term, i int, name string) (string, *Error) {
	if len(args) <= i {
		return "", arityErr(name)
	}
	if args[i].Tag != TagString {
		return "", typeErr(args[i])
	}
	return args[i].Data.(string), nil
}

func registerStringBuiltins(rt *Runtime) {
	rt.Register("string?", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("string?")
			}
			return boolTerm(args[0].Tag == TagString), nil
		})

	rt.Register("string-length", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("string-length")
			}
			s, err := wantString(args, 0, "string-length")
			if err != nil {
				return Term{}, err
			}
			return Int(int64(len([]rune(s)))), nil
		})

	rt.Register("string-append", "",
		func(args []Term, env *Env) (Term, *Error) {
			var b strings.Builder
			for _, a := range args {
				if a.Tag != TagString {
					return Term{}, typeErr(a)
				}
				b.WriteString(a.Data.(string))
			}
			return Str(b.String()), nil
		})

	rt.Register("substring",
		`(substring s start end) by rune index, end exclusive.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 3 {
				return Term{}, arityErr("substring")
			}
			s, err := wantString(args, 0, "substring")
			if err != nil {
				return Term{}, err
			}
			start, ok := asInt(args[1])
			if !ok {
				return Term{}, typeErr(args[1])
			}
			end, ok := asInt(args[2])
			if !ok {
				return Term{}, typeErr(args[2])
			}
			runes := []rune(s)
			if start < 0 || end < start || end > int64(len(runes)) {
				return Term{}, NewError("range-error", List(args[1], args[2]))
			}
			return Str(string(runes[start:end])), nil
		})

	rt.Register("string-ref",
		`Character at a rune index.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 2 {
				return Term{}, arityErr("string-ref")
			}
			s, err := wantString(args, 0, "string-ref")
			if err != nil {
				return Term{}, err
			}
			i, ok := asInt(args[1])
			if !ok {
				return Term{}, typeErr(args[1])
			}
			runes := []rune(s)
			if i < 0 || i >= int64(len(runes)) {
				return Term{}, NewError("range-error", args[1])
			}
			return Char(runes[i]), nil
		})

	rt.Register("string=?", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 2 {
				return Term{}, arityErr("string=?")
			}
			a, err := wantString(args, 0, "string=?")
			if err != nil {
				return Term{}, err
			}
			b, err := wantString(args, 1, "string=?")
			if err != nil {
				return Term{}, err
			}
			return boolTerm(a == b), nil
		})

	rt.Register("string->symbol", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("string->symbol")
			}
			s, err := wantString(args, 0, "string->symbol")
			if err != nil {
				return Term{}, err
			}
			return Sym(s), nil
		})

	rt.Register("symbol->string", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("symbol->string")
			}
			name, ok := symName(args[0])
			if !ok {
				return Term{}, typeErr(args[0])
			}
			return Str(name), nil
		})

	rt.Register("string->number",
		`Parse a number; false when the text is not numeric.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("string->number")
			}
			s, err := wantString(args, 0, "string->number")
			if err != nil {
				return Term{}, err
			}
			if n, ok := parseNumber(s); ok {
				return Num(n), nil
			}
			return Sym("false"), nil
		})

	rt.Register("number->string", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("number->string")
			}
			n, err := asNumber(args[0])
			if err != nil {
				return Term{}, err
			}
			return Str(n.String()), nil
		})

	rt.Register("string->list",
		`List of the string's characters.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("string->list")
			}
			s, err := wantString(args, 0, "string->list")
			if err != nil {
				return Term{}, err
			}
			runes := []rune(s)
			items := make([]Term, len(runes))
			for i, r := range runes {
				items[i] = Char(r)
			}
			return List(items...), nil
		})

	rt.Register("list->string",
		`String from a list of characters.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("list->string")
			}
			items, proper, err := listSlice(args[0])
			if err != nil {
				return Term{}, err
			}
			if !proper {
				return Term{}, typeErr(args[0])
			}
			var b strings.Builder
			for _, it := range items {
				if it.Tag != TagChar {
					return Term{}, typeErr(it)
				}
				b.WriteRune(it.Data.(rune))
			}
			return Str(b.String()), nil
		})
}
