// Package pattern enumerates, validates, and selects the binders of patterns.
package pattern

import "github.com/ardnew/nana/lang/ast"

// Binders returns the binders introduced by p in order of appearance.
//
// Tuple, list, and map patterns concatenate their elements. An append pattern
// yields its head, then the named remainder, then its tail. An alias yields
// the alias binders before the aliased pattern's. Wildcards, unnamed rests,
// literals, and the wildcard exposure contribute nothing.
func Binders(p *ast.Pattern) []ast.Binder {
	var out []ast.Binder

	walk(p, func(b ast.Binder) { out = append(out, b) })

	return out
}

func walk(p *ast.Pattern, yield func(ast.Binder)) {
	if p == nil {
		return
	}

	switch p.Kind {
	case ast.BindPattern, ast.RestPattern:
		if p.Binder.Introduces() {
			yield(p.Binder)
		}

	case ast.ListPattern, ast.TuplePattern:
		for _, e := range p.Elems {
			walk(e, yield)
		}

	case ast.AppendPattern:
		for _, e := range p.Elems {
			walk(e, yield)
		}

		walk(p.Rest, yield)

		for _, e := range p.Tail {
			walk(e, yield)
		}

	case ast.MapPattern:
		for _, e := range p.Entries {
			walk(e.Value, yield)
		}

	case ast.ExposurePattern:
		for _, b := range p.Exposes {
			if b.Introduces() {
				yield(b)
			}
		}

	case ast.AliasPattern:
		walk(p.As, yield)
		walk(p.Of, yield)
	}
}

// Duplicates returns every binder introduced more than once by p, once per
// repeated occurrence.
func Duplicates(p *ast.Pattern) []ast.Binder {
	var (
		dup  []ast.Binder
		seen = map[string]bool{}
	)

	for _, b := range Binders(p) {
		if seen[b.Key()] {
			dup = append(dup, b)
		}

		seen[b.Key()] = true
	}

	return dup
}
