package flatten

import "github.com/ardnew/nana/lang/ast"

// Pattern returns the normal form of p. A nil pattern stays nil.
func Pattern(p *ast.Pattern) *ast.Pattern {
	if p == nil {
		return nil
	}

	switch p.Kind {
	case ast.TuplePattern:
		if len(p.Elems) == 1 {
			return Pattern(p.Elems[0])
		}

		return &ast.Pattern{Kind: ast.TuplePattern, Elems: each(p.Elems, Pattern)}

	case ast.ListPattern:
		elems := each(p.Elems, Pattern)

		at, n := -1, 0
		for i, e := range elems {
			if e.Kind == ast.RestPattern {
				at = i
				n++
			}
		}

		if n != 1 {
			return &ast.Pattern{Kind: ast.ListPattern, Elems: elems}
		}

		return &ast.Pattern{
			Kind:  ast.AppendPattern,
			Elems: nilIfEmpty(elems[:at]),
			Rest:  elems[at],
			Tail:  nilIfEmpty(elems[at+1:]),
		}

	case ast.AppendPattern:
		return &ast.Pattern{
			Kind:  ast.AppendPattern,
			Elems: each(p.Elems, Pattern),
			Rest:  Pattern(p.Rest),
			Tail:  each(p.Tail, Pattern),
		}

	case ast.MapPattern:
		return &ast.Pattern{
			Kind: ast.MapPattern,
			Entries: each(p.Entries, func(e ast.Entry) ast.Entry {
				return ast.Entry{Key: e.Key, Value: Pattern(e.Value)}
			}),
		}

	case ast.ExposurePattern:
		return &ast.Pattern{
			Kind:    ast.ExposurePattern,
			Exposes: each(p.Exposes, func(b ast.Binder) ast.Binder { return b }),
			All:     p.All,
		}

	case ast.AliasPattern:
		return &ast.Pattern{
			Kind: ast.AliasPattern,
			As:   Pattern(p.As),
			Of:   Pattern(p.Of),
		}

	default:
		q := *p

		return &q
	}
}

func nilIfEmpty(ps []*ast.Pattern) []*ast.Pattern {
	if len(ps) == 0 {
		return nil
	}

	return ps
}
