// Package canon defines the canonical tree produced by flattening.
//
// In a canonical tree every gate carries at most one trace: a traced gate
// wraps exactly one inner gate, and a zero-trace gate wraps a block directly.
// Redundant single-value wrapper blocks have been collapsed into their value,
// except where a trace or the program root requires the block to remain.
package canon

import "github.com/ardnew/nana/lang/ast"

// Program is the root of a canonical tree. Its body is never collapsed.
type Program struct {
	Body *Gate
}

// Gate is one level of lexical scoping.
//
// A traced gate has a non-nil Trace and Inner and a nil Block. A zero-trace
// gate has a nil Trace and Inner and a non-nil Block.
type Gate struct {
	Trace *ast.Binder
	Inner *Gate
	Block *Block
}

// Traced reports whether the gate carries a trace.
func (g *Gate) Traced() bool { return g.Trace != nil }

// Innermost returns the zero-trace gate at the end of the chain starting at g.
func (g *Gate) Innermost() *Gate {
	for g.Traced() {
		g = g.Inner
	}

	return g
}

// Traces returns the traces of the chain starting at g, outermost first.
func (g *Gate) Traces() []ast.Binder {
	var traces []ast.Binder

	for ; g.Traced(); g = g.Inner {
		traces = append(traces, *g.Trace)
	}

	return traces
}

// Block is an ordered list of bindings and value entries.
type Block struct {
	Bindings []*Binding
	Values   []*Expr
	Pairs    []*Pair
	Kind     ast.Composition
	Shape    ast.Shape
}

// Pair is a key/value entry of a map shaped block.
type Pair struct {
	Key   *Expr
	Value *Expr
}

// Binding associates a target pattern with a body.
type Binding struct {
	Target *ast.Pattern
	Args   *ast.Pattern
	Body   *Expr
	Mask   ast.Mask
}

// Binder returns the binder of a binding whose target is a bare binder.
func (b *Binding) Binder() (ast.Binder, bool) {
	if b.Target == nil || b.Target.Kind != ast.BindPattern {
		return ast.Binder{}, false
	}

	return b.Target.Binder, true
}

// ExprKind indicates the variant of an [Expr].
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprRef
	ExprGate
	ExprApply
	ExprProject
	ExprMatch
)

// String returns a string representation of the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"

	case ExprRef:
		return "Ref"

	case ExprGate:
		return "Gate"

	case ExprApply:
		return "Apply"

	case ExprProject:
		return "Project"

	case ExprMatch:
		return "Match"

	default:
		return "Unknown"
	}
}

// Expr is any expression of the canonical language.
type Expr struct {
	// Exactly one of these is set based on Kind.
	Gate    *Gate    // ExprGate
	Apply   *Apply   // ExprApply
	Project *Project // ExprProject
	Match   *Match   // ExprMatch
	Ref     ast.Binder
	Literal ast.Literal
	Kind    ExprKind
}

// Apply is a function application.
type Apply struct {
	Func *Expr
	Arg  *Expr
}

// Project is a qualified access `From.Name`.
type Project struct {
	From *Expr
	Name ast.Binder
}

// Match tests On against each arm in order.
type Match struct {
	On   *Expr
	Arms []*Arm
}

// Arm is a single alternative of a [Match].
type Arm struct {
	Pattern *ast.Pattern
	Body    *Expr
}
