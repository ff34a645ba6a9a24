package pattern

import "github.com/ardnew/nana/lang/ast"

// Selection is a name selected by an exposing mask: Export is the name made
// visible to the parent and Member the key of the source name it denotes.
type Selection struct {
	Member string
	Export ast.Binder
}

// Select returns the names selected by an exposing mask pattern, and whether
// the pattern also selects every exposed name.
//
// A bare binder selects the member of the same name. A map entry `key: name`
// selects member key and exports it as name, which is how an exposed name is
// renamed. Any other pattern selects the selections of its sub-patterns.
func Select(p *ast.Pattern) ([]Selection, bool) {
	var (
		out []Selection
		all bool
	)

	sel(p, &out, &all)

	return out, all
}

func sel(p *ast.Pattern, out *[]Selection, all *bool) {
	if p == nil {
		return
	}

	same := func(b ast.Binder) {
		if b.Introduces() {
			*out = append(*out, Selection{Member: b.Key(), Export: b})
		}
	}

	switch p.Kind {
	case ast.BindPattern, ast.RestPattern:
		same(p.Binder)

	case ast.ExposurePattern:
		*all = *all || p.All

		for _, b := range p.Exposes {
			same(b)
		}

	case ast.ListPattern, ast.TuplePattern:
		for _, e := range p.Elems {
			sel(e, out, all)
		}

	case ast.AppendPattern:
		for _, e := range p.Elems {
			sel(e, out, all)
		}

		sel(p.Rest, out, all)

		for _, e := range p.Tail {
			sel(e, out, all)
		}

	case ast.MapPattern:
		for _, e := range p.Entries {
			if e.Value != nil && e.Value.Kind == ast.BindPattern {
				member := e.Key.Text
				if e.Key.Kind != ast.Str && e.Key.Kind != ast.Raw {
					member = e.Key.String()
				}

				export := e.Value.Binder
				if !export.Introduces() {
					export = ast.Ident(member)
				}

				*out = append(*out, Selection{Member: member, Export: export})

				continue
			}

			sel(e.Value, out, all)
		}

	case ast.AliasPattern:
		sel(p.As, out, all)
		sel(p.Of, out, all)
	}
}
