package surface

import "github.com/ardnew/nana/lang/ast"

// Builder provides a programmatic API for constructing surface trees without
// parsing source text. This is useful for generating programs or for testing.
//
// Example:
//
//	b := surface.NewBuilder()
//	prog := b.Program(
//	    b.Seq(
//	        b.Expose("x", b.Int(1)),
//	        b.Bind("y", b.Ref("x")),
//	    ),
//	)
type Builder struct{}

// NewBuilder creates a new surface tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Program creates a [Program] whose root block carries the given traces.
func (b *Builder) Program(block *Block, traces ...string) *Program {
	return &Program{Body: b.gated(block, traces)}
}

// Seq creates a sequential [Block].
func (b *Builder) Seq(bindings ...*Binding) *Block {
	return &Block{Kind: ast.Sequential, Bindings: bindings}
}

// Sim creates a simultaneous [Block].
func (b *Builder) Sim(bindings ...*Binding) *Block {
	return &Block{Kind: ast.Simultaneous, Bindings: bindings}
}

// Par creates a parallel [Block].
func (b *Builder) Par(bindings ...*Binding) *Block {
	return &Block{Kind: ast.Parallel, Bindings: bindings}
}

// Tuple creates a tuple shaped [Block] holding only values.
func (b *Builder) Tuple(values ...*Expr) *Block {
	return &Block{Shape: ast.ShapeTuple, Values: values}
}

// List creates a list shaped [Block] holding only values.
func (b *Builder) List(values ...*Expr) *Block {
	return &Block{Shape: ast.ShapeList, Values: values}
}

// Set creates a set shaped [Block] holding only values.
func (b *Builder) Set(values ...*Expr) *Block {
	return &Block{Shape: ast.ShapeSet, Values: values}
}

// Map creates a map shaped [Block] holding only pairs.
func (b *Builder) Map(pairs ...*Pair) *Block {
	return &Block{Shape: ast.ShapeMap, Pairs: pairs}
}

// Pair creates a map entry.
func (b *Builder) Pair(key, value *Expr) *Pair {
	return &Pair{Key: key, Value: value}
}

// Yield appends value entries to the block and returns it.
func (blk *Block) Yield(values ...*Expr) *Block {
	blk.Values = append(blk.Values, values...)

	return blk
}

// Bind creates a closed [Binding] of name.
func (b *Builder) Bind(name string, body *Expr) *Binding {
	return b.Binding(ast.ClosedMask(), ast.Bind(name), nil, body)
}

// Expose creates an exposed [Binding] of name.
func (b *Builder) Expose(name string, body *Expr) *Binding {
	return b.Binding(ast.ExposedMask(), ast.Bind(name), nil, body)
}

// Exposing creates a [Binding] of name exposing the names selected by mask.
func (b *Builder) Exposing(name string, mask *ast.Pattern, body *Expr) *Binding {
	return b.Binding(ast.ExposingMask(mask), ast.Bind(name), nil, body)
}

// Open creates a [Binding] of name re-exporting everything body exposes.
func (b *Builder) Open(name string, body *Expr) *Binding {
	return b.Binding(ast.OpenMask(), ast.Bind(name), nil, body)
}

// Func creates a closed function [Binding] of name with the given parameters.
func (b *Builder) Func(name string, args *ast.Pattern, body *Expr) *Binding {
	return b.Binding(ast.ClosedMask(), ast.Bind(name), args, body)
}

// Destructure creates a closed [Binding] of an arbitrary pattern.
func (b *Builder) Destructure(target *ast.Pattern, body *Expr) *Binding {
	return b.Binding(ast.ClosedMask(), target, nil, body)
}

// Binding creates a [Binding] with every field given explicitly.
func (b *Builder) Binding(
	mask ast.Mask,
	target, args *ast.Pattern,
	body *Expr,
) *Binding {
	return &Binding{Target: target, Args: args, Mask: mask, Body: body}
}

// Int creates an integer literal [Expr].
func (b *Builder) Int(i uint64) *Expr { return b.Literal(ast.IntLit(i)) }

// Float creates a floating point literal [Expr].
func (b *Builder) Float(f float64) *Expr { return b.Literal(ast.FloatLit(f)) }

// Str creates a string literal [Expr].
func (b *Builder) Str(s string) *Expr { return b.Literal(ast.StrLit(s)) }

// Raw creates a raw string literal [Expr].
func (b *Builder) Raw(s string) *Expr { return b.Literal(ast.RawLit(s)) }

// Literal creates a literal [Expr].
func (b *Builder) Literal(l ast.Literal) *Expr {
	return &Expr{Kind: ExprLiteral, Literal: l}
}

// Ref creates a reference to an identity binder.
func (b *Builder) Ref(name string) *Expr {
	return b.RefTo(ast.Ident(name))
}

// RefTo creates a reference to binder.
func (b *Builder) RefTo(binder ast.Binder) *Expr {
	return &Expr{Kind: ExprRef, Ref: binder}
}

// Nest creates a block [Expr] without traces.
func (b *Builder) Nest(block *Block) *Expr {
	return b.Gate(block)
}

// Gate creates a block [Expr] carrying the given traces.
func (b *Builder) Gate(block *Block, traces ...string) *Expr {
	return &Expr{Kind: ExprBlock, Gated: b.gated(block, traces)}
}

// Apply creates a function application.
func (b *Builder) Apply(fn, arg *Expr) *Expr {
	return &Expr{Kind: ExprApply, Apply: &Apply{Func: fn, Arg: arg}}
}

// Project creates a qualified access `from.name`.
func (b *Builder) Project(from *Expr, name string) *Expr {
	return &Expr{
		Kind:    ExprProject,
		Project: &Project{From: from, Name: ast.Ident(name)},
	}
}

// Match creates a match expression.
func (b *Builder) Match(on *Expr, arms ...*Arm) *Expr {
	return &Expr{Kind: ExprMatch, Match: &Match{On: on, Arms: arms}}
}

// Arm creates a match arm.
func (b *Builder) Arm(pattern *ast.Pattern, body *Expr) *Arm {
	return &Arm{Pattern: pattern, Body: body}
}

func (b *Builder) gated(block *Block, traces []string) *Gated {
	g := &Gated{Block: block}

	for _, t := range traces {
		g.Traces = append(g.Traces, ast.Ident(t))
	}

	return g
}
