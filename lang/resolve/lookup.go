package resolve

import (
	"fmt"

	"github.com/ardnew/nana/lang/canon"
)

// ResolutionKind indicates the outcome of resolving one reference.
type ResolutionKind int

const (
	// Bound references denote a statically known name.
	Bound ResolutionKind = iota

	// Dynamic projections select a member of a value whose context is only
	// known at evaluation time, such as the result of an application.
	Dynamic

	// Failed references produced a diagnostic.
	Failed
)

// String returns a string representation of the resolution kind.
func (k ResolutionKind) String() string {
	switch k {
	case Bound:
		return "bound"

	case Dynamic:
		return "dynamic"

	case Failed:
		return "failed"

	default:
		return "unknown"
	}
}

// Resolution is what one reference or projection denotes.
type Resolution struct {
	// Export is the exposed member a projection selects.
	Export *Export

	// Name is the name a reference denotes.
	Name Name

	// Context is where Name was found, or the projected context.
	Context ContextID

	// Depth counts the contexts searched outward before Name was found.
	Depth int

	Kind ResolutionKind
}

type lookupStatus int

const (
	notFound lookupStatus = iota
	found
	illegal
)

// lookup searches for key from slot of context from, then outward through
// every enclosing context. A hit on a parallel sibling stops the search.
func (r *resolver) lookup(
	from ContextID,
	slot int,
	key string,
) (Name, ContextID, int, lookupStatus) {
	depth := 0

	for id := from; id != NoContext; depth++ {
		r.ensureImports(id)

		c := r.context(id)
		for _, i := range c.index[key] {
			ok, sibling := c.visible(i, slot)
			if sibling {
				return c.Names[i], id, depth, illegal
			}

			if ok {
				return c.Names[i], id, depth, found
			}
		}

		id, slot = c.Parent, c.Slot
	}

	return Name{}, NoContext, depth, notFound
}

func (r *resolver) record(e *canon.Expr, res Resolution) {
	if _, ok := r.res.Refs[e]; !ok {
		r.res.order = append(r.res.order, e)
	}

	r.res.Refs[e] = res
}

func (r *resolver) walkGate(g *canon.Gate) {
	for ; g.Traced(); g = g.Inner {
		r.context(r.res.Gates[g]).State = CrossReferenced
	}

	id := r.res.Gates[g]
	b := g.Block

	for i, bind := range b.Bindings {
		if p, ok := r.params[bind]; ok {
			r.walkExpr(bind.Body, p, 0)
			r.context(p).State = CrossReferenced

			continue
		}

		r.walkExpr(bind.Body, id, i)
	}

	for _, v := range b.Values {
		r.walkExpr(v, id, len(b.Bindings))
	}

	for _, p := range b.Pairs {
		r.walkExpr(p.Key, id, len(b.Bindings))
		r.walkExpr(p.Value, id, len(b.Bindings))
	}

	r.context(id).State = CrossReferenced
}

func (r *resolver) walkExpr(e *canon.Expr, ctx ContextID, slot int) {
	switch e.Kind {
	case canon.ExprRef:
		r.resolveRef(e, ctx, slot)

	case canon.ExprGate:
		r.walkGate(e.Gate)

	case canon.ExprApply:
		r.walkExpr(e.Apply.Func, ctx, slot)
		r.walkExpr(e.Apply.Arg, ctx, slot)

	case canon.ExprProject:
		r.walkExpr(e.Project.From, ctx, slot)
		r.resolveProject(e, ctx, slot)

	case canon.ExprMatch:
		r.walkExpr(e.Match.On, ctx, slot)

		for _, arm := range e.Match.Arms {
			id := r.arms[arm]
			r.walkExpr(arm.Body, id, 0)
			r.context(id).State = CrossReferenced
		}
	}
}

func (r *resolver) resolveRef(e *canon.Expr, ctx ContextID, slot int) {
	key := e.Ref.Key()

	name, at, depth, status := r.lookup(ctx, slot, key)
	switch status {
	case found:
		r.record(e, Resolution{Kind: Bound, Name: name, Context: at, Depth: depth})

	case illegal:
		r.report(&Diagnostic{
			Kind:    IllegalSiblingReference,
			Name:    key,
			Context: at,
			Sites:   []Site{name.Site},
		})
		r.record(e, Resolution{Kind: Failed, Name: name, Context: at, Depth: depth})

	default:
		r.report(&Diagnostic{
			Kind:        UnresolvedName,
			Name:        key,
			Context:     ctx,
			Suggestions: suggest(key, r.visibleKeys(ctx)),
		})
		r.record(e, Resolution{Kind: Failed, Context: NoContext, Depth: depth})
	}
}

func (r *resolver) resolveProject(e *canon.Expr, ctx ContextID, slot int) {
	key := e.Project.Name.Key()
	from := e.Project.From

	if from.Kind == canon.ExprLiteral {
		r.report(&Diagnostic{
			Kind:    UnresolvedName,
			Name:    key,
			Context: ctx,
			Detail:  fmt.Sprintf("literal %s has no members", from.Literal),
		})
		r.record(e, Resolution{Kind: Failed, Context: NoContext})

		return
	}

	target := r.valueContext(ctx, slot, from)
	if target == NoContext {
		r.record(e, Resolution{Kind: Dynamic, Context: NoContext})

		return
	}

	if ex, ok := r.member(target, key); ok {
		r.record(e, Resolution{Kind: Bound, Export: &ex, Context: target})

		return
	}

	var keys []string
	for _, ex := range r.exposed(target) {
		keys = append(keys, ex.Name.Key())
	}

	r.report(&Diagnostic{
		Kind:        UnresolvedName,
		Name:        key,
		Context:     ctx,
		Detail:      fmt.Sprintf("not exposed by %s", r.context(target).Path),
		Suggestions: suggest(key, keys),
	})
	r.record(e, Resolution{Kind: Failed, Context: target})
}

// visibleKeys returns the keys of every name in ctx and its enclosing
// contexts, nearest first, without duplicates.
func (r *resolver) visibleKeys(ctx ContextID) []string {
	var (
		keys []string
		seen = map[string]bool{}
	)

	for id := ctx; id != NoContext; id = r.context(id).Parent {
		for _, n := range r.context(id).Names {
			if key := n.Binder.Key(); !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}

	return keys
}
