package slip

// ---- vector built-ins -------------------------------------------------------
//
// Vectors have no reader literal; they are built and taken apart here.
// vector-set! mutates in place, the one mutable structure besides
// environment frames and thunk memoization.

func wantVector(args []Term, i int, name string) ([]Term, *Error) {
	if len(args) <= i {
		return nil, arityErr(name)
	}
	if args[i].Tag != TagVector {
		return nil, typeErr(args[i])
	}
	return args[i].Data.([]Term), nil
}

func registerVectorBuiltins(rt *Runtime) {
	rt.Register("vector",
		`Build a vector from the arguments.`,
		func(args []Term, env *Env) (Term, *Error) {
			items := make([]Term, len(args))
			copy(items, args)
			return Vec(items), nil
		})

	rt.Register("make-vector",
		`(make-vector n fill?) builds an n-element vector.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 && len(args) != 2 {
				return Term{}, arityErr("make-vector")
			}
			n, ok := asInt(args[0])
			if !ok {
				return Term{}, typeErr(args[0])
			}
			if n < 0 {
				return Term{}, NewError("range-error", args[0])
			}
			fill := Nil
			if len(args) == 2 {
				fill = args[1]
			}
			items := make([]Term, n)
			for i := range items {
				items[i] = fill
			}
			return Vec(items), nil
		})

	rt.Register("vector?", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("vector?")
			}
			return boolTerm(args[0].Tag == TagVector), nil
		})

	rt.Register("vector-length", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("vector-length")
			}
			v, err := wantVector(args, 0, "vector-length")
			if err != nil {
				return Term{}, err
			}
			return Int(int64(len(v))), nil
		})

	rt.Register("vector-ref", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 2 {
				return Term{}, arityErr("vector-ref")
			}
			v, err := wantVector(args, 0, "vector-ref")
			if err != nil {
				return Term{}, err
			}
			i, ok := asInt(args[1])
			if !ok {
				return Term{}, typeErr(args[1])
			}
			if i < 0 || i >= int64(len(v)) {
				return Term{}, NewError("range-error", args[1])
			}
			return v[i], nil
		})

	rt.Register("vector-set!",
		`Replace the element at an index; returns the old element.`,
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 3 {
				return Term{}, arityErr("vector-set!")
			}
			v, err := wantVector(args, 0, "vector-set!")
			if err != nil {
				return Term{}, err
			}
			i, ok := asInt(args[1])
			if !ok {
				return Term{}, typeErr(args[1])
			}
			if i < 0 || i >= int64(len(v)) {
				return Term{}, NewError("range-error", args[1])
			}
			old := v[i]
			v[i] = args[2]
			return old, nil
		})

	rt.Register("vector->list", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("vector->list")
			}
			v, err := wantVector(args, 0, "vector->list")
			if err != nil {
				return Term{}, err
			}
			return List(v...), nil
		})

	rt.Register("list->vector", "",
		func(args []Term, env *Env) (Term, *Error) {
			if len(args) != 1 {
				return Term{}, arityErr("list->vector")
			}
			items, proper, err := listSlice(args[0])
			if err != nil {
				return Term{}, err
			}
			if !proper {
				return Term{}, typeErr(args[0])
			}
			out := make([]Term, len(items))
			copy(out, items)
			return Vec(out), nil
		})
}
