// Package flatten rewrites surface trees into canonical trees.
//
// Flattening is pure and total: it never fails, never mutates its input, and
// rebuilds every node it returns. Three rewrites apply:
//
//   - A tuple shaped block with no bindings and exactly one value collapses to
//     that value, unless the block carries traces.
//   - A trace list [t1, ..., tn] becomes a chain of single-trace gates with t1
//     outermost, terminating in a zero-trace gate around the block.
//   - Patterns are normalized: a one-element tuple pattern collapses to its
//     element, and a list pattern holding exactly one rest marker becomes an
//     append pattern split around it.
package flatten

import (
	"github.com/ardnew/nana/lang/ast"
	"github.com/ardnew/nana/lang/canon"
	"github.com/ardnew/nana/lang/surface"
)

// Program flattens a surface program. The root block is never collapsed.
func Program(p *surface.Program) *canon.Program {
	return &canon.Program{Body: traced(p.Body)}
}

// Expr flattens a surface expression.
func Expr(e *surface.Expr) *canon.Expr {
	switch e.Kind {
	case surface.ExprLiteral:
		return &canon.Expr{Kind: canon.ExprLiteral, Literal: e.Literal}

	case surface.ExprRef:
		return &canon.Expr{Kind: canon.ExprRef, Ref: e.Ref}

	case surface.ExprBlock:
		if len(e.Gated.Traces) == 0 && e.Gated.Block.Collapsible() {
			return Expr(e.Gated.Block.Values[0])
		}

		return &canon.Expr{Kind: canon.ExprGate, Gate: traced(e.Gated)}

	case surface.ExprApply:
		return &canon.Expr{Kind: canon.ExprApply, Apply: &canon.Apply{
			Func: Expr(e.Apply.Func),
			Arg:  Expr(e.Apply.Arg),
		}}

	case surface.ExprProject:
		return &canon.Expr{Kind: canon.ExprProject, Project: &canon.Project{
			From: Expr(e.Project.From),
			Name: e.Project.Name,
		}}

	case surface.ExprMatch:
		return &canon.Expr{Kind: canon.ExprMatch, Match: &canon.Match{
			On: Expr(e.Match.On),
			Arms: each(e.Match.Arms, func(a *surface.Arm) *canon.Arm {
				return &canon.Arm{Pattern: Pattern(a.Pattern), Body: Expr(a.Body)}
			}),
		}}

	default:
		return &canon.Expr{Kind: canon.ExprKind(e.Kind)}
	}
}

// traced builds the gate chain for g, last trace innermost.
func traced(g *surface.Gated) *canon.Gate {
	gate := inner(g)

	for i := len(g.Traces) - 1; i >= 0; i-- {
		trace := g.Traces[i]
		gate = &canon.Gate{Trace: &trace, Inner: gate}
	}

	return gate
}

// inner returns the gate wrapped by the traces of g. When g is traced and its
// block collapses to a gate, that gate replaces the block.
func inner(g *surface.Gated) *canon.Gate {
	if len(g.Traces) > 0 && g.Block.Collapsible() {
		if v := Expr(g.Block.Values[0]); v.Kind == canon.ExprGate {
			return v.Gate
		}
	}

	return &canon.Gate{Block: Block(g.Block)}
}

// Block flattens every entry of a surface block without collapsing it.
func Block(b *surface.Block) *canon.Block {
	return &canon.Block{
		Kind:     b.Kind,
		Shape:    b.Shape,
		Bindings: each(b.Bindings, Binding),
		Values:   each(b.Values, Expr),
		Pairs: each(b.Pairs, func(p *surface.Pair) *canon.Pair {
			return &canon.Pair{Key: Expr(p.Key), Value: Expr(p.Value)}
		}),
	}
}

// Binding flattens a surface binding.
func Binding(b *surface.Binding) *canon.Binding {
	return &canon.Binding{
		Target: Pattern(b.Target),
		Args:   Pattern(b.Args),
		Mask:   mask(b.Mask),
		Body:   Expr(b.Body),
	}
}

func mask(m ast.Mask) ast.Mask {
	return ast.Mask{Kind: m.Kind, Pattern: Pattern(m.Pattern)}
}

// each maps f over s. The result is nil when s is empty.
func each[S, T any](s []S, f func(S) T) []T {
	if len(s) == 0 {
		return nil
	}

	out := make([]T, len(s))
	for i, v := range s {
		out[i] = f(v)
	}

	return out
}
