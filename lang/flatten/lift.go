package flatten

import (
	"github.com/ardnew/nana/lang/canon"
	"github.com/ardnew/nana/lang/surface"
)

// Lift embeds a canonical program into the surface tree. Gate chains merge
// back into trace lists, so Program(Lift(p)) reproduces p whenever p was
// itself produced by Program.
func Lift(p *canon.Program) *surface.Program {
	return &surface.Program{Body: liftGate(p.Body)}
}

// LiftExpr embeds a canonical expression into the surface tree.
func LiftExpr(e *canon.Expr) *surface.Expr {
	switch e.Kind {
	case canon.ExprLiteral:
		return &surface.Expr{Kind: surface.ExprLiteral, Literal: e.Literal}

	case canon.ExprRef:
		return &surface.Expr{Kind: surface.ExprRef, Ref: e.Ref}

	case canon.ExprGate:
		return &surface.Expr{Kind: surface.ExprBlock, Gated: liftGate(e.Gate)}

	case canon.ExprApply:
		return &surface.Expr{Kind: surface.ExprApply, Apply: &surface.Apply{
			Func: LiftExpr(e.Apply.Func),
			Arg:  LiftExpr(e.Apply.Arg),
		}}

	case canon.ExprProject:
		return &surface.Expr{Kind: surface.ExprProject, Project: &surface.Project{
			From: LiftExpr(e.Project.From),
			Name: e.Project.Name,
		}}

	case canon.ExprMatch:
		return &surface.Expr{Kind: surface.ExprMatch, Match: &surface.Match{
			On: LiftExpr(e.Match.On),
			Arms: each(e.Match.Arms, func(a *canon.Arm) *surface.Arm {
				return &surface.Arm{Pattern: a.Pattern, Body: LiftExpr(a.Body)}
			}),
		}}

	default:
		return &surface.Expr{Kind: surface.ExprKind(e.Kind)}
	}
}

func liftGate(g *canon.Gate) *surface.Gated {
	return &surface.Gated{
		Traces: g.Traces(),
		Block:  liftBlock(g.Innermost().Block),
	}
}

func liftBlock(b *canon.Block) *surface.Block {
	return &surface.Block{
		Kind:  b.Kind,
		Shape: b.Shape,
		Bindings: each(b.Bindings, func(bind *canon.Binding) *surface.Binding {
			return &surface.Binding{
				Target: bind.Target,
				Args:   bind.Args,
				Mask:   bind.Mask,
				Body:   LiftExpr(bind.Body),
			}
		}),
		Values: each(b.Values, LiftExpr),
		Pairs: each(b.Pairs, func(p *canon.Pair) *surface.Pair {
			return &surface.Pair{Key: LiftExpr(p.Key), Value: LiftExpr(p.Value)}
		}),
	}
}
