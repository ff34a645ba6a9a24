package resolve

import (
	"errors"

	"github.com/ardnew/nana/lang/canon"
)

// Result is the outcome of one resolution run: the program it resolved, the
// arena of contexts, the reference table, and every diagnostic.
type Result struct {
	Program *canon.Program

	// Contexts is the arena indexed by ContextID. The universe context is
	// always first.
	Contexts []*Context

	// Refs maps every reference and projection expression to what it denotes.
	Refs map[*canon.Expr]Resolution

	// Gates maps every gate to the context it introduces. A traced gate maps
	// to its gate context and a zero-trace gate to its block context.
	Gates map[*canon.Gate]ContextID

	// Blocks maps every block to its block context.
	Blocks map[*canon.Block]ContextID

	Diagnostics []*Diagnostic

	order []*canon.Expr

	// Root is the outermost context of the program body.
	Root ContextID
}

// Err returns every diagnostic joined into one error, or nil if there are
// none.
func (r *Result) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}

	errs := make([]error, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		errs[i] = d
	}

	return errors.Join(errs...)
}

// Context returns the context with the given ID, or nil if there is none.
func (r *Result) Context(id ContextID) *Context {
	if id < 0 || int(id) >= len(r.Contexts) {
		return nil
	}

	return r.Contexts[id]
}

// Lookup returns what the reference or projection e denotes.
func (r *Result) Lookup(e *canon.Expr) (Resolution, bool) {
	res, ok := r.Refs[e]

	return res, ok
}

// References returns every resolved expression in the order it was
// cross-referenced.
func (r *Result) References() []*canon.Expr {
	return r.order
}

// DiagnosticsIn returns the diagnostics recorded against context id.
func (r *Result) DiagnosticsIn(id ContextID) []*Diagnostic {
	var out []*Diagnostic

	for _, d := range r.Diagnostics {
		if d.Context == id {
			out = append(out, d)
		}
	}

	return out
}

// Count returns the number of diagnostics of the given kind.
func (r *Result) Count(kind Kind) int {
	n := 0

	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}

	return n
}
