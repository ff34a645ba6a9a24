package pattern

import "github.com/ardnew/nana/lang/ast"

// Reason identifies why a pattern is malformed.
type Reason int

const (
	// MultipleRest means a list or append pattern holds more than one rest
	// marker.
	MultipleRest Reason = iota

	// MisplacedRest means a rest marker appears outside the element position
	// of a list or append pattern.
	MisplacedRest
)

// String returns a description of the reason.
func (r Reason) String() string {
	switch r {
	case MultipleRest:
		return "more than one rest marker in one list pattern"

	case MisplacedRest:
		return "rest marker outside a list pattern"

	default:
		return "malformed pattern"
	}
}

// Problem is a malformed sub-pattern.
type Problem struct {
	Pattern *ast.Pattern
	Reason  Reason
}

// Validate returns every problem in p, outermost first. A nil result means p
// is well-formed.
func Validate(p *ast.Pattern) []Problem {
	var out []Problem

	validate(p, false, &out)

	return out
}

func validate(p *ast.Pattern, element bool, out *[]Problem) {
	if p == nil {
		return
	}

	report := func(r Reason) { *out = append(*out, Problem{Pattern: p, Reason: r}) }

	switch p.Kind {
	case ast.RestPattern:
		if !element {
			report(MisplacedRest)
		}

	case ast.ListPattern:
		if countRest(p.Elems) > 1 {
			report(MultipleRest)
		}

		elements(p.Elems, true, out)

	case ast.AppendPattern:
		if countRest(p.Elems)+countRest(p.Tail) > 0 {
			report(MultipleRest)
		}

		elements(p.Elems, true, out)
		validate(p.Rest, true, out)
		elements(p.Tail, true, out)

	case ast.TuplePattern:
		elements(p.Elems, false, out)

	case ast.MapPattern:
		for _, e := range p.Entries {
			validate(e.Value, false, out)
		}

	case ast.AliasPattern:
		validate(p.As, false, out)
		validate(p.Of, false, out)
	}
}

func elements(ps []*ast.Pattern, element bool, out *[]Problem) {
	for _, p := range ps {
		validate(p, element, out)
	}
}

func countRest(ps []*ast.Pattern) int {
	n := 0

	for _, p := range ps {
		if p != nil && p.Kind == ast.RestPattern {
			n++
		}
	}

	return n
}
