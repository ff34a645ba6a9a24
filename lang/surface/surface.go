// Package surface defines the tree produced by the parser, before any
// structural normalization.
//
// Surface trees admit shapes that the canonical tree forbids: gated blocks
// carry an arbitrary number of traces, and a block with a single value and no
// bindings is kept as a redundant wrapper. The flatten package rewrites
// surface trees into canonical trees.
package surface

import "github.com/ardnew/nana/lang/ast"

// Program is the root of a surface tree.
type Program struct {
	Body *Gated
}

// Gated is a block preceded by zero or more trace binders.
type Gated struct {
	Block  *Block
	Traces []ast.Binder
}

// Block is an ordered list of bindings and value entries.
type Block struct {
	Bindings []*Binding
	Values   []*Expr
	Pairs    []*Pair // ShapeMap only
	Kind     ast.Composition
	Shape    ast.Shape
}

// Collapsible reports whether the block is a redundant wrapper around its only
// value: tuple shaped, no bindings, no pairs, and exactly one value.
func (b *Block) Collapsible() bool {
	return b.Shape == ast.ShapeTuple &&
		len(b.Bindings) == 0 &&
		len(b.Pairs) == 0 &&
		len(b.Values) == 1
}

// Pair is a key/value entry of a map shaped block.
type Pair struct {
	Key   *Expr
	Value *Expr
}

// Binding associates a target pattern with a body.
//
// Args is non-nil iff the binding defines a function, in which case Target
// must bind a single identity binder.
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
	// ExprLiteral is a constant.
	ExprLiteral ExprKind = iota

	// ExprRef is a reference to a binder.
	ExprRef

	// ExprBlock is a (possibly gated) block.
	ExprBlock

	// ExprApply applies a function expression to an argument.
	ExprApply

	// ExprProject selects one exposed name out of a block.
	ExprProject

	// ExprMatch selects the first arm whose pattern matches the scrutinee.
	ExprMatch
)

// String returns a string representation of the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"

	case ExprRef:
		return "Ref"

	case ExprBlock:
		return "Block"

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

// Expr is any expression of the surface language.
type Expr struct {
	// Exactly one of these is set based on Kind.
	Gated   *Gated   // ExprBlock
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

// Arm is a single alternative of a [Match]. The binders of Pattern scope over
// Body.
type Arm struct {
	Pattern *ast.Pattern
	Body    *Expr
}
