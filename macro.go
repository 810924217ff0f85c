// macro.go: macro expansion.
//
// A macro is a closure applied to the unevaluated argument terms of its
// call form; the term it returns replaces the call and is evaluated in
// the call-site environment. No alpha-renaming happens anywhere: macro
// output can capture or shadow call-site bindings. quasiquote (eval.go)
// is the template mechanism macro bodies are expected to use.

package slip

import "fmt"

// ExpandMacro performs one expansion of form, whose head evaluated to the
// macro m. The macro body runs in a fresh frame chained to the macro's
// definition environment. Any failure during expansion wraps as a
// macro-expansion-error carrying the inner error as its value.
func ExpandMacro(m *Proc, form Term) (Term, *Error) {
	p := form.Data.(*Pair)
	rest, err := p.ForceCdr()
	if err != nil {
		return wrapExpansion(form, err)
	}
	args, proper, err := listSlice(rest)
	if err != nil {
		return wrapExpansion(form, err)
	}
	if !proper {
		return wrapExpansion(form, malformedf(form, "improper argument list"))
	}
	clause := selectClause(m, len(args))
	if clause == nil {
		e := NewError(ErrArity, procNameTerm(m))
		e.Source = form
		return wrapExpansion(form, e)
	}
	frame := bindClause(clause, args, m.Env)
	out := Nil
	for _, expr := range clause.Body {
		v, err := Eval(expr, frame)
		if err != nil {
			return wrapExpansion(form, err)
		}
		out = v
	}
	return out, nil
}

// MacroExpand rewrites form as long as its head is a symbol bound to a
// macro in env, without evaluating the final result. Subforms are not
// descended into; evaluation expands those when it reaches them.
func MacroExpand(form Term, env *Env) (Term, *Error) {
	for {
		if form.Tag != TagPair {
			return form, nil
		}
		head, err := form.Data.(*Pair).ForceCar()
		if err != nil {
			return Term{}, err
		}
		name, ok := symName(head)
		if !ok {
			return form, nil
		}
		v, bound := env.Lookup(name)
		if !bound || v.Tag != TagProc {
			return form, nil
		}
		m := v.Data.(*Proc)
		if m.Kind != ProcMacro {
			return form, nil
		}
		out, err := ExpandMacro(m, form)
		if err != nil {
			return Term{}, err
		}
		form = out
	}
}

func wrapExpansion(form Term, inner *Error) (Term, *Error) {
	e := NewError(ErrMacroExpansion, inner.Term())
	e.Source = form
	return Term{}, e
}

var gensymCounter = 1000

// Gensym returns a symbol distinct from every previous Gensym result in
// this process. The #:g prefix keeps generated names out of the way of
// ordinary identifiers; macro authors use it to dodge capture by hand.
func Gensym() Term {
	gensymCounter++
	return Sym(fmt.Sprintf("#:g%d", gensymCounter))
}
