package slip

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward; Define always binds in this frame, shadowing outer
// bindings; Set mutates the frame that owns the binding. Frames are
// shared, never owned: a frame stays alive as long as some closure or
// child frame still references it.
type Env struct {
	parent *Env
	table  map[string]Term
}

// NewEnv creates a new frame chained to parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Term)}
}

// Define binds name to v in this frame, inserting or overwriting.
func (e *Env) Define(name string, v Term) {
	e.table[name] = v
}

// Lookup walks outward for the nearest visible binding of name.
func (e *Env) Lookup(name string) (Term, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return Term{}, false
}

// Set replaces the nearest visible binding of name and returns the value
// it held before. It never creates a binding; ok is false when name is
// unbound in every visible frame.
func (e *Env) Set(name string, v Term) (old Term, ok bool) {
	for f := e; f != nil; f = f.parent {
		if prev, bound := f.table[name]; bound {
			f.table[name] = v
			return prev, true
		}
	}
	return Term{}, false
}
