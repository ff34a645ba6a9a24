package resolve

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/ardnew/nana/lang/ast"
	"github.com/ardnew/nana/lang/canon"
	"github.com/ardnew/nana/lang/pattern"
	"github.com/ardnew/nana/log"
)

// Option configures a resolution run.
type Option func(*resolver)

// WithLogger sets the logger that receives trace records of each phase.
func WithLogger(logger log.Logger) Option {
	return func(r *resolver) {
		r.log = logger
	}
}

// WithPredeclared adds names to the universe context above the root.
func WithPredeclared(names ...string) Option {
	return func(r *resolver) {
		r.predeclared = append(r.predeclared, names...)
	}
}

// progress guards lazily computed, memoized results against re-entry.
type progress int

const (
	pending progress = iota
	running
	done
)

type resolver struct {
	ctx         context.Context
	res         *Result
	log         log.Logger
	predeclared []string

	blocks      map[ContextID]*canon.Block
	params      map[*canon.Binding]ContextID
	arms        map[*canon.Arm]ContextID
	traceTarget map[ContextID]ContextID

	importing map[ContextID]progress
	exposing  map[ContextID]progress

	exportState map[Site]progress
	exports     map[Site][]Export

	targetState map[Site]progress
	targets     map[Site]ContextID

	// imported counts the names bound by imports.
	imported int

	// quiet drops diagnostics while imports are bound repeatedly.
	quiet bool
}

// Resolve builds the contexts of prog, resolves every reference, and computes
// every exposed set.
//
// Resolution never stops early: every diagnostic of the program is recorded
// in the returned [Result], and [Result.Err] reports whether there were any.
func Resolve(ctx context.Context, prog *canon.Program, opts ...Option) *Result {
	r := &resolver{
		ctx: ctx,
		res: &Result{
			Program: prog,
			Refs:    map[*canon.Expr]Resolution{},
			Gates:   map[*canon.Gate]ContextID{},
			Blocks:  map[*canon.Block]ContextID{},
		},
		blocks:      map[ContextID]*canon.Block{},
		params:      map[*canon.Binding]ContextID{},
		arms:        map[*canon.Arm]ContextID{},
		traceTarget: map[ContextID]ContextID{},
		importing:   map[ContextID]progress{},
		exposing:    map[ContextID]progress{},
		exportState: map[Site]progress{},
		exports:     map[Site][]Export{},
		targetState: map[Site]progress{},
		targets:     map[Site]ContextID{},
	}

	for _, opt := range opts {
		opt(r)
	}

	universe := r.newContext(UniverseContext, NoContext, 0, "")
	for _, name := range r.predeclared {
		r.context(universe).bind(Name{
			Binder: ast.Ident(name),
			Site:   Site{Context: universe, Binding: NoBinding},
			Origin: Predeclared,
		})
	}

	r.context(universe).State = Collected

	r.res.Root = r.collectGate(prog.Body, universe, 0, "root")
	r.log.TraceContext(ctx, "collected",
		slog.Int("contexts", len(r.res.Contexts)),
		slog.Int("diagnostics", len(r.res.Diagnostics)))

	r.importAll()
	r.log.TraceContext(ctx, "imported", slog.Int("names", r.imported))

	r.context(universe).State = CrossReferenced
	r.walkGate(prog.Body)
	r.log.TraceContext(ctx, "cross-referenced",
		slog.Int("references", len(r.res.order)),
		slog.Int("diagnostics", len(r.res.Diagnostics)))

	for id := ContextID(len(r.res.Contexts) - 1); id >= 0; id-- {
		r.ensureImports(id)
		r.exposed(id)
		r.context(id).State = Resolved
	}

	r.log.DebugContext(ctx, "resolved",
		slog.Int("contexts", len(r.res.Contexts)),
		slog.Int("references", len(r.res.order)),
		slog.Int("diagnostics", len(r.res.Diagnostics)))

	return r.res
}

func (r *resolver) context(id ContextID) *Context {
	return r.res.Contexts[id]
}

func (r *resolver) newContext(
	kind ContextKind,
	parent ContextID,
	slot int,
	segment string,
) ContextID {
	id := ContextID(len(r.res.Contexts))
	c := &Context{ID: id, Kind: kind, Parent: parent, Slot: slot, Path: segment}

	if parent != NoContext {
		p := r.context(parent)
		p.Children = append(p.Children, id)

		if p.Path != "" {
			c.Path = p.Path + "/" + segment
		}
	}

	r.res.Contexts = append(r.res.Contexts, c)

	r.log.TraceContext(r.ctx, "context",
		slog.Int("id", int(id)),
		slog.String("kind", kind.String()),
		slog.String("path", c.Path))

	return id
}

func (r *resolver) report(d *Diagnostic) {
	if r.quiet {
		return
	}

	if d.Path == "" && d.Context != NoContext {
		d.Path = r.context(d.Context).Path
	}

	r.res.Diagnostics = append(r.res.Diagnostics, d)

	r.log.TraceContext(r.ctx, "diagnostic", slog.Any("diagnostic", d))
}

// collectGate creates the contexts of a gate chain and everything nested in
// it, and returns the outermost one.
func (r *resolver) collectGate(
	g *canon.Gate,
	parent ContextID,
	slot int,
	label string,
) ContextID {
	outer, prev := NoContext, NoContext

	segment := label
	for ; g.Traced(); g = g.Inner {
		id := r.newContext(GateContext, parent, slot, segment+"@"+g.Trace.String())
		r.context(id).bind(Name{
			Binder: *g.Trace,
			Site:   Site{Context: id, Binding: NoBinding},
			Origin: Traced,
		})
		r.context(id).State = Collected
		r.res.Gates[g] = id

		if prev != NoContext {
			r.traceTarget[prev] = id
		} else {
			outer = id
		}

		prev, parent, slot, segment = id, id, 0, ""
	}

	if segment == "" {
		segment = "{}"
	}

	id := r.collectBlock(g.Block, parent, slot, segment)
	r.res.Gates[g] = id

	if prev != NoContext {
		r.traceTarget[prev] = id

		return outer
	}

	return id
}

func (r *resolver) collectBlock(
	b *canon.Block,
	parent ContextID,
	slot int,
	segment string,
) ContextID {
	id := r.newContext(BlockContext, parent, slot, segment)
	c := r.context(id)
	c.Composition = b.Kind
	c.Bindings = len(b.Bindings)
	r.blocks[id] = b
	r.res.Blocks[b] = id

	for i, bind := range b.Bindings {
		site := Site{Context: id, Binding: i}

		r.validate(site, bind.Target)
		r.validate(site, bind.Args)
		r.validate(site, bind.Mask.Pattern)

		if bind.Args != nil {
			if binder, ok := bind.Binder(); !ok || binder.Kind != ast.Identity {
				r.report(&Diagnostic{
					Kind:    IllegalFunctionBinder,
					Name:    bind.Target.String(),
					Context: id,
					Sites:   []Site{site},
				})
			}
		}

		for _, binder := range pattern.Binders(bind.Target) {
			c.bind(Name{Binder: binder, Site: site, Origin: Declared})
		}
	}

	r.duplicates(c)
	c.State = Collected

	for i, bind := range b.Bindings {
		label := bindingLabel(bind, i)
		scope, s := id, i

		if bind.Args != nil {
			scope = r.newContext(ParamsContext, id, i, label+"()")
			pc := r.context(scope)

			for _, binder := range pattern.Binders(bind.Args) {
				pc.bind(Name{
					Binder: binder,
					Site:   Site{Context: scope, Binding: NoBinding},
					Origin: Param,
				})
			}

			r.duplicates(pc)
			pc.State = Collected
			r.params[bind] = scope
			s, label = 0, "="
		}

		r.collectExpr(bind.Body, scope, s, label)
	}

	for k, v := range b.Values {
		r.collectExpr(v, id, len(b.Bindings), "#"+strconv.Itoa(k))
	}

	for k, p := range b.Pairs {
		r.collectExpr(p.Key, id, len(b.Bindings), "#"+strconv.Itoa(k))
		r.collectExpr(p.Value, id, len(b.Bindings), "#"+strconv.Itoa(k))
	}

	return id
}

func (r *resolver) collectExpr(
	e *canon.Expr,
	parent ContextID,
	slot int,
	label string,
) {
	switch e.Kind {
	case canon.ExprGate:
		r.collectGate(e.Gate, parent, slot, label)

	case canon.ExprApply:
		r.collectExpr(e.Apply.Func, parent, slot, label)
		r.collectExpr(e.Apply.Arg, parent, slot, label)

	case canon.ExprProject:
		r.collectExpr(e.Project.From, parent, slot, label)

	case canon.ExprMatch:
		r.collectExpr(e.Match.On, parent, slot, label)

		for k, arm := range e.Match.Arms {
			id := r.newContext(ArmContext, parent, slot, label+"|"+strconv.Itoa(k))
			c := r.context(id)
			site := Site{Context: id, Binding: NoBinding}

			r.validate(site, arm.Pattern)

			for _, binder := range pattern.Binders(arm.Pattern) {
				c.bind(Name{Binder: binder, Site: site, Origin: Matched})
			}

			r.duplicates(c)
			c.State = Collected
			r.arms[arm] = id
			r.collectExpr(arm.Body, id, 0, "=")
		}
	}
}

// validate reports every malformed sub-pattern of p.
func (r *resolver) validate(site Site, p *ast.Pattern) {
	for _, problem := range pattern.Validate(p) {
		r.report(&Diagnostic{
			Kind:    MalformedPattern,
			Name:    problem.Pattern.String(),
			Detail:  problem.Reason.String(),
			Context: site.Context,
			Sites:   []Site{site},
		})
	}
}

// duplicates reports one diagnostic for every name c binds more than once,
// listing every site that binds it.
func (r *resolver) duplicates(c *Context) {
	seen := map[string]bool{}

	for _, n := range c.Names {
		key := n.Binder.Key()

		at := c.index[key]
		if len(at) < 2 || seen[key] {
			continue
		}

		seen[key] = true

		sites := make([]Site, len(at))
		for i, k := range at {
			sites[i] = c.Names[k].Site
		}

		r.report(&Diagnostic{
			Kind:    DuplicateBinding,
			Name:    key,
			Context: c.ID,
			Sites:   sites,
		})
	}
}

func bindingLabel(b *canon.Binding, i int) string {
	if binder, ok := b.Binder(); ok {
		return binder.String()
	}

	if b.Target != nil {
		return b.Target.String()
	}

	return "#" + strconv.Itoa(i)
}
