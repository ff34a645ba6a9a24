package resolve

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ardnew/nana/lang/ast"
	"github.com/ardnew/nana/lang/canon"
	"github.com/ardnew/nana/lang/pattern"
)

// importAll binds the imports of every block before references are
// resolved. The imports of a binding can depend on names imported by a later
// sibling of a simultaneous or parallel block, so the pass repeats until it
// binds nothing new. Diagnostics are reported only by the pass that follows,
// once every lazily computed result is discarded.
func (r *resolver) importAll() {
	r.quiet = true

	for {
		before := r.imported

		r.resetLazy()

		for id := range r.res.Contexts {
			r.ensureImports(ContextID(id))
		}

		if r.imported == before {
			break
		}
	}

	r.quiet = false
	r.resetLazy()
}

// resetLazy discards every memoized import, export and target. Imported
// names stay bound.
func (r *resolver) resetLazy() {
	clear(r.importing)
	clear(r.exposing)
	clear(r.exportState)
	clear(r.exports)
	clear(r.targetState)
	clear(r.targets)

	for _, c := range r.res.Contexts {
		c.Exposed = nil
	}
}

// ensureImports binds the names exported by the exposing and open bindings
// of a block into the block itself, each at the position of its binding.
func (r *resolver) ensureImports(id ContextID) {
	if r.importing[id] != pending || r.context(id).Kind != BlockContext {
		return
	}

	r.importing[id] = running
	defer func() { r.importing[id] = done }()

	for i, bind := range r.blocks[id].Bindings {
		if bind.Mask.Kind == ast.Exposing || bind.Mask.Kind == ast.Open {
			r.bindImports(id, i)
		}
	}
}

// bindImports binds the names imported by binding i of block id. A name the
// binding imported in an earlier pass is refreshed in place.
func (r *resolver) bindImports(id ContextID, i int) {
	site := Site{Context: id, Binding: i}
	bind := r.blocks[id].Bindings[i]
	c := r.context(id)

exports:
	for _, ex := range r.bindingExports(id, i) {
		key := ex.Name.Key()
		at := c.index[key]

		for _, k := range at {
			if n := &c.Names[k]; n.Origin == Imported && n.Site == site {
				n.Source = &ex

				continue exports
			}
		}

		if len(at) > 0 {
			sites := make([]Site, 0, len(at)+1)
			for _, k := range at {
				sites = append(sites, c.Names[k].Site)
			}

			sites = append(sites, site)
			slices.SortFunc(sites, func(a, b Site) int {
				return cmp.Compare(a.Binding, b.Binding)
			})

			r.report(&Diagnostic{
				Kind:    DuplicateBinding,
				Name:    key,
				Context: id,
				Sites:   sites,
				Detail:  "imported by " + bind.Mask.String(),
			})

			continue
		}

		c.bind(Name{Binder: ex.Name, Site: site, Origin: Imported, Source: &ex})
		r.imported++
	}
}

// exposed returns the exposed set of a context, computing it on first use.
// A gate exposes what its inner content exposes. A block exposes the union of
// what its bindings export, first export of each name winning.
func (r *resolver) exposed(id ContextID) []Export {
	c := r.context(id)

	if r.exposing[id] != pending {
		return c.Exposed
	}

	r.exposing[id] = running
	defer func() { r.exposing[id] = done }()

	switch c.Kind {
	case GateContext:
		c.Exposed = slices.Clone(r.exposed(r.traceTarget[id]))

	case BlockContext:
		seen := map[string]bool{}

		for i := range r.blocks[id].Bindings {
			for _, ex := range r.bindingExports(id, i) {
				if key := ex.Name.Key(); !seen[key] {
					seen[key] = true
					c.Exposed = append(c.Exposed, ex)
				}
			}
		}
	}

	return c.Exposed
}

// member returns the export of id with the given visible key.
func (r *resolver) member(id ContextID, key string) (Export, bool) {
	for _, ex := range r.exposed(id) {
		if ex.Name.Key() == key {
			return ex, true
		}
	}

	return Export{}, false
}

// bindingExports returns the names binding i of block id makes visible to
// its block, according to its mask.
func (r *resolver) bindingExports(id ContextID, i int) []Export {
	site := Site{Context: id, Binding: i}

	switch r.exportState[site] {
	case done:
		return r.exports[site]

	case running:
		return nil
	}

	r.exportState[site] = running

	bind := r.blocks[id].Bindings[i]

	var out []Export

	switch bind.Mask.Kind {
	case ast.Exposed:
		for _, b := range pattern.Binders(bind.Target) {
			out = append(out, Export{
				Name:   b,
				Member: b.Key(),
				Source: site,
				Target: r.target(Name{Binder: b, Site: site, Origin: Declared}),
			})
		}

	case ast.Exposing:
		out = r.selectExports(site, bind)

	case ast.Open:
		if vc := r.valueOf(site, bind); vc != NoContext {
			out = slices.Clone(r.exposed(vc))
		}
	}

	r.exports[site] = out
	r.exportState[site] = done

	return out
}

// selectExports returns the names exposed by the value of an exposing
// binding that its mask pattern selects, renamed as the pattern says. Names
// the value keeps private cannot be selected.
func (r *resolver) selectExports(site Site, bind *canon.Binding) []Export {
	sels, all := pattern.Select(bind.Mask.Pattern)

	vc := r.valueOf(site, bind)
	if vc == NoContext {
		out := make([]Export, 0, len(sels))
		for _, s := range sels {
			out = append(out, Export{
				Name:   s.Export,
				Member: s.Member,
				Source: site,
				Target: NoContext,
			})
		}

		return out
	}

	exposed := r.exposed(vc)

	var (
		out  []Export
		seen = map[string]bool{}
	)

	for _, s := range sels {
		ex, ok := r.member(vc, s.Member)
		if !ok {
			keys := make([]string, 0, len(exposed))
			for _, e := range exposed {
				keys = append(keys, e.Name.Key())
			}

			r.report(&Diagnostic{
				Kind:        UnresolvedName,
				Name:        s.Member,
				Context:     site.Context,
				Sites:       []Site{site},
				Detail:      fmt.Sprintf("not exposed by the value of %s", bind.Target),
				Suggestions: suggest(s.Member, keys),
			})

			continue
		}

		seen[s.Export.Key()] = true
		ex.Name = s.Export
		out = append(out, ex)
	}

	if all {
		for _, ex := range exposed {
			if key := ex.Name.Key(); !seen[key] {
				seen[key] = true
				out = append(out, ex)
			}
		}
	}

	return out
}

// valueOf returns the context of the value bound by a binding, or NoContext
// for functions and values without a statically known context.
func (r *resolver) valueOf(site Site, bind *canon.Binding) ContextID {
	if bind.Args != nil {
		return NoContext
	}

	return r.valueContext(site.Context, site.Binding, bind.Body)
}

// valueContext returns the context e evaluates to when evaluated at slot of
// context ctx. It never reports diagnostics: references are reported when
// they are cross-referenced.
func (r *resolver) valueContext(ctx ContextID, slot int, e *canon.Expr) ContextID {
	switch e.Kind {
	case canon.ExprGate:
		return r.res.Gates[e.Gate]

	case canon.ExprRef:
		n, _, _, status := r.lookup(ctx, slot, e.Ref.Key())
		if status != found {
			return NoContext
		}

		return r.target(n)

	case canon.ExprProject:
		from := r.valueContext(ctx, slot, e.Project.From)
		if from == NoContext {
			return NoContext
		}

		if ex, ok := r.member(from, e.Project.Name.Key()); ok {
			return ex.Target
		}
	}

	return NoContext
}

// target returns the context name n statically denotes.
func (r *resolver) target(n Name) ContextID {
	switch n.Origin {
	case Imported:
		return n.Source.Target

	case Traced:
		return r.traceTarget[n.Site.Context]

	case Declared:
		return r.declaredTarget(n)

	default:
		return NoContext
	}
}

// declaredTarget returns the context of the value bound to a declared name.
// Only a name that is the whole target of a non-function binding denotes a
// context.
func (r *resolver) declaredTarget(n Name) ContextID {
	site := n.Site

	switch r.targetState[site] {
	case done:
		return r.targets[site]

	case running:
		return NoContext
	}

	r.targetState[site] = running

	t := NoContext

	bind := r.blocks[site.Context].Bindings[site.Binding]
	if b, ok := bind.Binder(); ok && b == n.Binder {
		t = r.valueOf(site, bind)
	}

	r.targets[site] = t
	r.targetState[site] = done

	return t
}
