// runtime.go: runtime assembly and file loading.
//
// NewRuntime wires the builtin registries into a fresh global
// environment, binds the true/false/nil symbols and evaluates the
// embedded prelude, so a Runtime is self-contained: no install tree is
// consulted. load-file resolves against the working directory first and
// then each SLIP_PATH entry.

package slip

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"
)

// Version is the interpreter version the driver reports.
const Version = "0.3.0"

// BuildDate is stamped by the linker on release builds.
var BuildDate = "unknown"

// PathEnv names the variable holding extra load-file search directories,
// separated like PATH.
const PathEnv = "SLIP_PATH"

//go:embed prelude.slip
var preludeSource string

// Runtime owns a global environment with builtins and prelude installed,
// plus the streams the io builtins talk to.
type Runtime struct {
	Global *Env
	Out    io.Writer
	In     *Reader
}

// NewRuntime assembles a ready interpreter. Out defaults to stdout; In
// stays nil until the host attaches one (the read builtin reports an
// io-error without it).
func NewRuntime() (*Runtime, error) {
	rt := &Runtime{Global: NewEnv(nil), Out: os.Stdout}

	rt.Global.Define("true", Sym("true"))
	rt.Global.Define("false", Sym("false"))
	rt.Global.Define("nil", Nil)

	registerCoreBuiltins(rt)
	registerMathBuiltins(rt)
	registerListBuiltins(rt)
	registerStringBuiltins(rt)
	registerVectorBuiltins(rt)
	registerErrorBuiltins(rt)
	registerIOBuiltins(rt)
	registerIntrospectionBuiltins(rt)

	if _, err := rt.evalSource(preludeSource, "prelude.slip"); err != nil {
		return nil, fmt.Errorf("prelude: %s", renderLoadFailure("prelude.slip", preludeSource, err))
	}
	return rt, nil
}

// Register installs a builtin under name in the global environment.
func (rt *Runtime) Register(name, doc string, fn BuiltinFn) {
	rt.Global.Define(name, Term{Tag: TagProc, Data: &Proc{
		Kind: ProcBuiltin,
		Name: name,
		Doc:  doc,
		Fn:   fn,
	}})
}

// EvalSource reads and evaluates every form in src against the global
// environment and returns the last value.
func (rt *Runtime) EvalSource(src string) (Term, *Error) {
	return rt.evalSource(src, "source")
}

// EvalTerm evaluates one already-read form against the global environment.
func (rt *Runtime) EvalTerm(form Term) (Term, *Error) {
	return Eval(form, rt.Global)
}

func (rt *Runtime) evalSource(src, name string) (Term, *Error) {
	r := NewStringReader(src, name)
	out := Nil
	for {
		form, err := r.Read()
		if err != nil {
			if IsEOF(err) {
				return out, nil
			}
			return Term{}, err
		}
		v, err := Eval(form, rt.Global)
		if err != nil {
			return Term{}, err
		}
		out = v
	}
}

// LoadFile resolves path, reads the file and evaluates every top-level
// form against the global environment, returning the last value. The
// first failure aborts the load and propagates; read failures carry the
// file position in their message.
func (rt *Runtime) LoadFile(path string) (Term, *Error) {
	resolved, err := resolveLoadPath(path)
	if err != nil {
		return Term{}, err
	}
	data, ioErr := os.ReadFile(resolved)
	if ioErr != nil {
		return Term{}, errf(ErrIO, "%v", ioErr)
	}
	v, err := rt.evalSource(string(data), resolved)
	if err != nil {
		if err.Kind == ErrRead {
			err.Value = Str(fmt.Sprintf("%s:%d:%d: %s", resolved, err.Line, err.Col, DisplayTerm(err.Value)))
		}
		return Term{}, err
	}
	return v, nil
}

func resolveLoadPath(path string) (string, *Error) {
	if filepath.IsAbs(path) {
		if fileExists(path) {
			return path, nil
		}
		return "", errf(ErrIO, "cannot resolve %s", path)
	}
	if fileExists(path) {
		return path, nil
	}
	for _, dir := range filepath.SplitList(env.Str(PathEnv)) {
		if dir == "" {
			continue
		}
		cand := filepath.Join(env.ExpandUser(dir), path)
		if fileExists(cand) {
			return cand, nil
		}
	}
	return "", errf(ErrIO, "cannot resolve %s", path)
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

func renderLoadFailure(name, src string, err *Error) string {
	if err.Kind == ErrRead {
		return FormatReadError(err, name, src)
	}
	return FormatTraceback(err)
}
