package canon

import (
	"fmt"
	"io"
	"strings"
)

// printer writes an indented outline, remembering the first write error.
type printer struct {
	w     io.Writer
	err   error
	width int
}

func (p *printer) line(depth int, item ...string) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintln(
		p.w,
		strings.Repeat(" ", depth*p.width)+strings.Join(item, " "),
	)
}

// Print writes an indented outline of the program to w. Each nesting level is
// indented by indent spaces (2 if indent is not positive).
func (p *Program) Print(w io.Writer, indent int) error {
	if indent <= 0 {
		indent = 2
	}

	out := &printer{w: w, width: indent}
	out.line(0, "Program")
	out.gate(p.Body, 1)

	return out.err
}

func (p *printer) gate(g *Gate, depth int) {
	for ; g.Traced(); g = g.Inner {
		p.line(depth, "Gate", g.Trace.String())
		depth++
	}

	p.line(depth, "Gate")
	p.block(g.Block, depth+1)
}

func (p *printer) block(b *Block, depth int) {
	p.line(depth, "Block", b.Kind.String(), b.Shape.String())

	for _, bind := range b.Bindings {
		head := []string{"Binding", bind.Target.String()}
		if bind.Args != nil {
			head = append(head, bind.Args.String())
		}

		p.line(depth+1, append(head, bind.Mask.String())...)
		p.expr(bind.Body, depth+2)
	}

	for _, v := range b.Values {
		p.line(depth+1, "Value")
		p.expr(v, depth+2)
	}

	for _, pair := range b.Pairs {
		p.line(depth+1, "Pair")
		p.expr(pair.Key, depth+2)
		p.expr(pair.Value, depth+2)
	}
}

func (p *printer) expr(e *Expr, depth int) {
	switch e.Kind {
	case ExprLiteral:
		p.line(depth, "Literal", e.Literal.String())

	case ExprRef:
		p.line(depth, "Ref", e.Ref.String())

	case ExprGate:
		p.gate(e.Gate, depth)

	case ExprApply:
		p.line(depth, "Apply")
		p.expr(e.Apply.Func, depth+1)
		p.expr(e.Apply.Arg, depth+1)

	case ExprProject:
		p.line(depth, "Project", e.Project.Name.String())
		p.expr(e.Project.From, depth+1)

	case ExprMatch:
		p.line(depth, "Match")
		p.expr(e.Match.On, depth+1)

		for _, arm := range e.Match.Arms {
			p.line(depth+1, "Arm", arm.Pattern.String())
			p.expr(arm.Body, depth+2)
		}

	default:
		p.line(depth, "<unknown>")
	}
}
