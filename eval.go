// eval.go: the evaluator.
//
// OVERVIEW
// ========
// Eval interprets one Term against an Environment. The shape is a single
// iterative loop: tail positions (if/begin/let bodies, and/or tails,
// closure bodies) re-enter the loop by replacing the current form and
// environment instead of recursing, so self- and mutual tail recursion
// run in constant Go stack. Non-tail positions (conditions, arguments,
// non-final body expressions) recurse normally.
//
// Dispatch order for a pair form:
//  1. special forms, recognized by head symbol before anything is
//     evaluated;
//  2. otherwise the head is evaluated: a macro expands (macro.go) and the
//     replacement re-enters the loop in the call-site environment; a
//     procedure has its arguments evaluated left to right and is applied;
//     anything else is not-applicable.
//
// FAILURES
// ========
// Every step returns (Term, *Error) and failures early-return; there is
// no panic-driven unwinding. The innermost application boundary claims
// the failure's Source; each Eval invocation that performed a procedure
// application contributes at most one trace frame on the way out (tail
// calls collapsed into an invocation share its frame, the usual trade of
// tail-call elimination).

package slip

// Eval evaluates form in env until a value or a failure is reached.
//
// Self-evaluating terms (numbers, strings, characters, vectors,
// procedures, errors, Nil) return themselves; symbols resolve through
// env; pairs dispatch as described in the file header.
func Eval(form Term, env *Env) (Term, *Error) {
	// First procedure application performed by this invocation; it labels
	// the single trace frame this invocation contributes on failure.
	var boundForm Term
	var boundProc string
	noted := false

	fail := func(e *Error) (Term, *Error) {
		if noted {
			e.attach(boundForm, boundProc)
		}
		return Term{}, e
	}

	for {
		switch form.Tag {
		case TagSymbol:
			name := form.Data.(string)
			if v, ok := env.Lookup(name); ok {
				return v, nil
			}
			e := NewError(ErrUnbound, form)
			e.Source = form
			return fail(e)
		case TagPair:
			// handled below
		default:
			return form, nil
		}

		p := form.Data.(*Pair)
		head, err := p.ForceCar()
		if err != nil {
			return fail(err)
		}
		rest, err := p.ForceCdr()
		if err != nil {
			return fail(err)
		}
		args, proper, err := listSlice(rest)
		if err != nil {
			return fail(err)
		}
		if !proper {
			return fail(malformedf(form, "improper argument list"))
		}

		if name, ok := symName(head); ok {
			handled, next, nextEnv, result, err := evalSpecial(name, form, args, env)
			if err != nil {
				return fail(err)
			}
			if handled {
				if next == nil {
					return result, nil
				}
				form, env = *next, nextEnv
				continue
			}
		}

		headVal, err := Eval(head, env)
		if err != nil {
			return fail(err)
		}
		if headVal.Tag != TagProc {
			e := NewError(ErrNotApplicable, headVal)
			e.Source = form
			return fail(e)
		}
		proc := headVal.Data.(*Proc)

		if proc.Kind == ProcMacro {
			expanded, err := ExpandMacro(proc, form)
			if err != nil {
				return fail(err)
			}
			form = expanded
			continue
		}

		vals := make([]Term, len(args))
		for i, a := range args {
			v, err := Eval(a, env)
			if err != nil {
				return fail(err)
			}
			vals[i] = v
		}

		if proc.Kind == ProcBuiltin {
			res, err := proc.Fn(vals, env)
			if err != nil {
				return fail(err.attach(form, proc.Name))
			}
			return res, nil
		}

		clause := selectClause(proc, len(vals))
		if clause == nil {
			e := NewError(ErrArity, procNameTerm(proc))
			e.Source = form
			return fail(e)
		}
		frame := bindClause(clause, vals, proc.Env)
		if !noted {
			noted, boundForm, boundProc = true, form, proc.Name
		}
		for _, expr := range clause.Body[:len(clause.Body)-1] {
			if _, err := Eval(expr, frame); err != nil {
				return fail(err)
			}
		}
		form, env = clause.Body[len(clause.Body)-1], frame
	}
}

// evalSpecial handles one special form. handled=false means name is not a
// special form. A non-nil next is a tail position: the Eval loop re-enters
// with (next, nextEnv). Otherwise result is final.
func evalSpecial(name string, form Term, args []Term, env *Env) (handled bool, next *Term, nextEnv *Env, result Term, err *Error) {
	tail := func(t Term, e *Env) (bool, *Term, *Env, Term, *Error) {
		return true, &t, e, Term{}, nil
	}
	done := func(t Term) (bool, *Term, *Env, Term, *Error) {
		return true, nil, nil, t, nil
	}
	bad := func(e *Error) (bool, *Term, *Env, Term, *Error) {
		return true, nil, nil, Term{}, e
	}

	switch name {
	case "quote":
		if len(args) != 1 {
			return bad(malformedf(form, "quote expects one form"))
		}
		return done(args[0])

	case "if":
		if len(args) != 2 && len(args) != 3 {
			return bad(malformedf(form, "if expects a condition, a then form and an optional else form"))
		}
		cond, err := Eval(args[0], env)
		if err != nil {
			return bad(err)
		}
		if Truthy(cond) {
			return tail(args[1], env)
		}
		if len(args) == 3 {
			return tail(args[2], env)
		}
		return done(Nil)

	case "define":
		return evalDefine(form, args, env)

	case "set!":
		if len(args) != 2 {
			return bad(malformedf(form, "set! expects a name and a value"))
		}
		sym, ok := symName(args[0])
		if !ok {
			return bad(malformedf(form, "set! expects a symbol name"))
		}
		val, err := Eval(args[1], env)
		if err != nil {
			return bad(err)
		}
		old, ok := env.Set(sym, val)
		if !ok {
			e := NewError(ErrUnbound, args[0])
			e.Source = form
			return bad(e)
		}
		return done(old)

	case "lambda":
		if len(args) < 2 {
			return bad(malformedf(form, "lambda expects parameters and a body"))
		}
		clause, err := parseClause(form, args[0], args[1:])
		if err != nil {
			return bad(err)
		}
		return done(Term{Tag: TagProc, Data: &Proc{
			Kind:    ProcClosure,
			Clauses: []Clause{clause},
			Env:     env,
		}})

	case "case-lambda":
		return evalCaseLambda(form, args, env)

	case "let":
		return evalLet(form, args, env)

	case "begin":
		if len(args) == 0 {
			return done(Nil)
		}
		for _, expr := range args[:len(args)-1] {
			if _, err := Eval(expr, env); err != nil {
				return bad(err)
			}
		}
		return tail(args[len(args)-1], env)

	case "define-macro":
		return evalDefineMacro(form, args, env)

	case "quasiquote":
		if len(args) != 1 {
			return bad(malformedf(form, "quasiquote expects one form"))
		}
		out, err := evalQuasiquote(args[0], env)
		if err != nil {
			return bad(err)
		}
		return done(out)

	case "unquote", "unquote-splicing":
		return bad(malformedf(form, "%s outside quasiquote", name))

	case "and":
		if len(args) == 0 {
			return done(Sym("true"))
		}
		for _, expr := range args[:len(args)-1] {
			v, err := Eval(expr, env)
			if err != nil {
				return bad(err)
			}
			if !Truthy(v) {
				return done(v)
			}
		}
		return tail(args[len(args)-1], env)

	case "or":
		if len(args) == 0 {
			return done(Sym("false"))
		}
		for _, expr := range args[:len(args)-1] {
			v, err := Eval(expr, env)
			if err != nil {
				return bad(err)
			}
			if Truthy(v) {
				return done(v)
			}
		}
		return tail(args[len(args)-1], env)

	case "lazy-cons":
		if len(args) != 2 {
			return bad(malformedf(form, "lazy-cons expects a head form and a tail form"))
		}
		return done(LazyCons(args[0], args[1], env))

	case "catch-error":
		out := Nil
		for _, expr := range args {
			v, err := Eval(expr, env)
			if err != nil {
				return done(err.Term())
			}
			out = v
		}
		return done(out)
	}

	return false, nil, nil, Term{}, nil
}

func evalDefine(form Term, args []Term, env *Env) (bool, *Term, *Env, Term, *Error) {
	bad := func(e *Error) (bool, *Term, *Env, Term, *Error) {
		return true, nil, nil, Term{}, e
	}
	if len(args) < 1 {
		return bad(malformedf(form, "define expects a name"))
	}

	// (define (name . params) body...)
	if args[0].Tag == TagPair {
		sig := args[0].Data.(*Pair)
		nameTerm, err := sig.ForceCar()
		if err != nil {
			return bad(err)
		}
		name, ok := symName(nameTerm)
		if !ok {
			return bad(malformedf(form, "define expects a symbol name"))
		}
		paramSpec, err := sig.ForceCdr()
		if err != nil {
			return bad(err)
		}
		if len(args) < 2 {
			return bad(malformedf(form, "define expects a body"))
		}
		clause, err := parseClause(form, paramSpec, args[1:])
		if err != nil {
			return bad(err)
		}
		env.Define(name, Term{Tag: TagProc, Data: &Proc{
			Kind:    ProcClosure,
			Name:    name,
			Clauses: []Clause{clause},
			Env:     env,
		}})
		return true, nil, nil, Sym(name), nil
	}

	// (define name expr)
	name, ok := symName(args[0])
	if !ok {
		return bad(malformedf(form, "define expects a symbol name"))
	}
	if len(args) != 2 {
		return bad(malformedf(form, "define expects a name and a value"))
	}
	val, err := Eval(args[1], env)
	if err != nil {
		return bad(err)
	}
	if val.Tag == TagProc {
		if p := val.Data.(*Proc); p.Name == "" {
			p.Name = name
		}
	}
	env.Define(name, val)
	return true, nil, nil, Sym(name), nil
}

func evalDefineMacro(form Term, args []Term, env *Env) (bool, *Term, *Env, Term, *Error) {
	bad := func(e *Error) (bool, *Term, *Env, Term, *Error) {
		return true, nil, nil, Term{}, e
	}
	if len(args) < 2 || args[0].Tag != TagPair {
		return bad(malformedf(form, "define-macro expects (name . params) and a body"))
	}
	sig := args[0].Data.(*Pair)
	nameTerm, err := sig.ForceCar()
	if err != nil {
		return bad(err)
	}
	name, ok := symName(nameTerm)
	if !ok {
		return bad(malformedf(form, "define-macro expects a symbol name"))
	}
	paramSpec, err := sig.ForceCdr()
	if err != nil {
		return bad(err)
	}
	clause, err := parseClause(form, paramSpec, args[1:])
	if err != nil {
		return bad(err)
	}
	env.Define(name, Term{Tag: TagProc, Data: &Proc{
		Kind:    ProcMacro,
		Name:    name,
		Clauses: []Clause{clause},
		Env:     env,
	}})
	return true, nil, nil, Sym(name), nil
}

func evalCaseLambda(form Term, args []Term, env *Env) (bool, *Term, *Env, Term, *Error) {
	bad := func(e *Error) (bool, *Term, *Env, Term, *Error) {
		return true, nil, nil, Term{}, e
	}
	doc := ""
	if len(args) > 0 && args[0].Tag == TagString {
		doc = args[0].Data.(string)
		args = args[1:]
	}
	if len(args) == 0 {
		return bad(malformedf(form, "case-lambda expects at least one clause"))
	}
	clauses := make([]Clause, 0, len(args))
	for _, c := range args {
		if c.Tag != TagPair {
			return bad(malformedf(form, "case-lambda clause must be (params body...)"))
		}
		parts, proper, err := listSlice(c)
		if err != nil {
			return bad(err)
		}
		if !proper || len(parts) < 2 {
			return bad(malformedf(form, "case-lambda clause must be (params body...)"))
		}
		clause, err := parseClause(form, parts[0], parts[1:])
		if err != nil {
			return bad(err)
		}
		clauses = append(clauses, clause)
	}
	return true, nil, nil, Term{Tag: TagProc, Data: &Proc{
		Kind:    ProcCaseLambda,
		Doc:     doc,
		Clauses: clauses,
		Env:     env,
	}}, nil
}

func evalLet(form Term, args []Term, env *Env) (bool, *Term, *Env, Term, *Error) {
	bad := func(e *Error) (bool, *Term, *Env, Term, *Error) {
		return true, nil, nil, Term{}, e
	}
	if len(args) < 1 {
		return bad(malformedf(form, "let expects a binding list"))
	}
	bindings, proper, err := listSlice(args[0])
	if err != nil {
		return bad(err)
	}
	if !proper {
		return bad(malformedf(form, "let expects a binding list"))
	}

	// Binding expressions evaluate in the enclosing environment, so no
	// binding sees its siblings.
	names := make([]string, len(bindings))
	vals := make([]Term, len(bindings))
	for i, b := range bindings {
		parts, proper, err := listSlice(b)
		if err != nil {
			return bad(err)
		}
		if !proper || len(parts) != 2 {
			return bad(malformedf(form, "let binding must be a (name expr) pair"))
		}
		name, ok := symName(parts[0])
		if !ok {
			return bad(malformedf(form, "let binding must name a symbol"))
		}
		v, err := Eval(parts[1], env)
		if err != nil {
			return bad(err)
		}
		names[i], vals[i] = name, v
	}

	frame := NewEnv(env)
	for i, name := range names {
		frame.Define(name, vals[i])
	}
	body := args[1:]
	if len(body) == 0 {
		return true, nil, nil, Nil, nil
	}
	for _, expr := range body[:len(body)-1] {
		if _, err := Eval(expr, frame); err != nil {
			return bad(err)
		}
	}
	last := body[len(body)-1]
	return true, &last, frame, Term{}, nil
}

// evalQuasiquote copies t verbatim except unquote forms, which evaluate,
// and unquote-splicing elements, whose list results splice into place. An
// unquote in tail position ((a . ,x) and ,x itself) evaluates into the
// tail; splicing there has no list to splice into and is malformed.
func evalQuasiquote(t Term, env *Env) (Term, *Error) {
	if t.Tag != TagPair {
		return t, nil
	}

	var items []Term
	tail := Nil
	cur := t
	for cur.Tag == TagPair {
		if payload, kind, err := unquotePayload(cur); err != nil {
			return Term{}, err
		} else if kind == "unquote" {
			v, err := Eval(payload, env)
			if err != nil {
				return Term{}, err
			}
			tail = v
			cur = Nil
			break
		} else if kind == "unquote-splicing" {
			return Term{}, malformedf(cur, "unquote-splicing outside list")
		}

		p := cur.Data.(*Pair)
		elem, err := p.ForceCar()
		if err != nil {
			return Term{}, err
		}
		if payload, kind, err := unquotePayload(elem); err != nil {
			return Term{}, err
		} else if kind == "unquote-splicing" {
			v, err := Eval(payload, env)
			if err != nil {
				return Term{}, err
			}
			spliced, proper, err := listSlice(v)
			if err != nil {
				return Term{}, err
			}
			if !proper {
				e := NewError(ErrType, v)
				e.Source = elem
				return Term{}, e
			}
			items = append(items, spliced...)
		} else {
			v, err := evalQuasiquote(elem, env)
			if err != nil {
				return Term{}, err
			}
			items = append(items, v)
		}
		cur, err = p.ForceCdr()
		if err != nil {
			return Term{}, err
		}
	}

	if cur.Tag != TagNil {
		tail = cur
	}
	out := tail
	for i := len(items) - 1; i >= 0; i-- {
		out = Cons(items[i], out)
	}
	return out, nil
}

// unquotePayload recognizes (unquote x) and (unquote-splicing x) forms,
// returning the payload and which head matched ("" for neither).
func unquotePayload(t Term) (Term, string, *Error) {
	if t.Tag != TagPair {
		return Term{}, "", nil
	}
	p := t.Data.(*Pair)
	head, err := p.ForceCar()
	if err != nil {
		return Term{}, "", err
	}
	name, ok := symName(head)
	if !ok || (name != "unquote" && name != "unquote-splicing") {
		return Term{}, "", nil
	}
	rest, err := p.ForceCdr()
	if err != nil {
		return Term{}, "", err
	}
	args, proper, err := listSlice(rest)
	if err != nil {
		return Term{}, "", err
	}
	if !proper || len(args) != 1 {
		return Term{}, "", malformedf(t, "%s expects one form", name)
	}
	return args[0], name, nil
}

// ---- application helpers --------------------------------------------------

func malformedf(form Term, format string, a ...interface{}) *Error {
	e := errf(ErrMalformed, format, a...)
	e.Source = form
	return e
}

func procNameTerm(p *Proc) Term {
	if p.Name == "" {
		return Nil
	}
	return Sym(p.Name)
}

func selectClause(p *Proc, n int) *Clause {
	for i := range p.Clauses {
		if p.Clauses[i].Accepts(n) {
			return &p.Clauses[i]
		}
	}
	return nil
}

func bindClause(c *Clause, args []Term, parent *Env) *Env {
	frame := NewEnv(parent)
	for i, name := range c.Params {
		frame.Define(name, args[i])
	}
	if c.Rest != "" {
		frame.Define(c.Rest, List(args[len(c.Params):]...))
	}
	return frame
}

// parseClause turns a parameter spec (symbol, proper or dotted symbol
// list) and a body into a Clause. The body must be non-empty.
func parseClause(form, paramSpec Term, body []Term) (Clause, *Error) {
	if len(body) == 0 {
		return Clause{}, malformedf(form, "body must not be empty")
	}
	c := Clause{Body: body}
	switch paramSpec.Tag {
	case TagNil:
		return c, nil
	case TagSymbol:
		c.Rest = paramSpec.Data.(string)
		return c, nil
	case TagPair:
		cur := paramSpec
		for cur.Tag == TagPair {
			p := cur.Data.(*Pair)
			elem, err := p.ForceCar()
			if err != nil {
				return Clause{}, err
			}
			name, ok := symName(elem)
			if !ok {
				return Clause{}, malformedf(form, "parameter must be a symbol")
			}
			c.Params = append(c.Params, name)
			cur, err = p.ForceCdr()
			if err != nil {
				return Clause{}, err
			}
		}
		switch cur.Tag {
		case TagNil:
			return c, nil
		case TagSymbol:
			c.Rest = cur.Data.(string)
			return c, nil
		}
		return Clause{}, malformedf(form, "parameter must be a symbol")
	}
	return Clause{}, malformedf(form, "parameters must be a symbol or a list")
}

// Apply invokes an applicable value on already-evaluated arguments, the
// host-side counterpart of an application form. Macros are not applicable
// this way.
func Apply(fn Term, args []Term, env *Env) (Term, *Error) {
	if fn.Tag != TagProc {
		return Term{}, NewError(ErrNotApplicable, fn)
	}
	proc := fn.Data.(*Proc)
	switch proc.Kind {
	case ProcBuiltin:
		return proc.Fn(args, env)
	case ProcMacro:
		return Term{}, NewError(ErrNotApplicable, fn)
	}
	clause := selectClause(proc, len(args))
	if clause == nil {
		return Term{}, NewError(ErrArity, procNameTerm(proc))
	}
	frame := bindClause(clause, args, proc.Env)
	out := Nil
	for _, expr := range clause.Body {
		v, err := Eval(expr, frame)
		if err != nil {
			return Term{}, err
		}
		out = v
	}
	return out, nil
}
