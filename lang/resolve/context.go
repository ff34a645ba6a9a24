package resolve

import (
	"github.com/ardnew/nana/lang/ast"
)

// ContextID indexes a [Context] in the arena of a [Result].
type ContextID int

// NoContext is the parent of the universe context, and the target of names
// whose value has no statically known context.
const NoContext ContextID = -1

// NoBinding is the binding index of a [Site] that is not a binding of a
// block: a trace, a parameter, a match arm, or a predeclared name.
const NoBinding = -1

// Site locates where a name is introduced.
type Site struct {
	Context ContextID
	Binding int
}

// ContextKind indicates what introduced a [Context].
type ContextKind int

const (
	// UniverseContext holds the predeclared names. It is the parent of the
	// root.
	UniverseContext ContextKind = iota

	// GateContext binds one trace to the content it wraps.
	GateContext

	// BlockContext holds the bindings of one block.
	BlockContext

	// ParamsContext holds the parameters of one function binding.
	ParamsContext

	// ArmContext holds the binders of one match arm.
	ArmContext
)

// String returns a string representation of the context kind.
func (k ContextKind) String() string {
	switch k {
	case UniverseContext:
		return "universe"

	case GateContext:
		return "gate"

	case BlockContext:
		return "block"

	case ParamsContext:
		return "params"

	case ArmContext:
		return "arm"

	default:
		return "unknown"
	}
}

// State is the resolution progress of a [Context].
type State int

const (
	Unresolved      State = iota // unresolved
	Collected                    // collected
	CrossReferenced              // cross-referenced
	Resolved                     // resolved
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"

	case Collected:
		return "collected"

	case CrossReferenced:
		return "cross-referenced"

	case Resolved:
		return "resolved"

	default:
		return "unknown"
	}
}

// Origin indicates how a [Name] entered its context.
type Origin int

const (
	// Declared names are introduced by the target of a binding.
	Declared Origin = iota

	// Traced names are the trace of a gate.
	Traced

	// Param names are introduced by the parameters of a function binding.
	Param

	// Matched names are introduced by the pattern of a match arm.
	Matched

	// Predeclared names belong to the universe context.
	Predeclared

	// Imported names are brought into a block by an exposing or open binding.
	Imported
)

// String returns a string representation of the origin.
func (o Origin) String() string {
	switch o {
	case Declared:
		return "declared"

	case Traced:
		return "traced"

	case Param:
		return "param"

	case Matched:
		return "matched"

	case Predeclared:
		return "predeclared"

	case Imported:
		return "imported"

	default:
		return "unknown"
	}
}

// Name is one name bound in a [Context].
//
// Site is where the name is introduced into the context. For imported names
// it is the importing binding, and Source describes the exported member.
type Name struct {
	Source *Export
	Binder ast.Binder
	Site   Site
	Origin Origin
}

// Export is one name a context makes visible to projections and to the
// enclosing block of an open or exposing binding.
type Export struct {
	// Name is the visible name, which differs from Member when renamed.
	Name ast.Binder

	// Member is the key of the name in the context that defines it.
	Member string

	// Source is the site of the binding that defines Member.
	Source Site

	// Target is the context the member denotes, or NoContext if it is not
	// statically known.
	Target ContextID
}

// Context is the resolved lexical environment of one scope.
//
// A Context is created once during collection and only grows imports and
// exposed names until it reaches [Resolved]. Parent links are arena indices
// and never own the parent.
type Context struct {
	Names    []Name
	Exposed  []Export
	Children []ContextID
	Path     string
	index    map[string][]int
	ID       ContextID
	Parent   ContextID

	// Slot is the binding index within the parent block this context is
	// nested in. Value entries use the number of bindings of that block, so
	// every binding precedes them.
	Slot int

	// Bindings is the number of bindings of a block context.
	Bindings    int
	Kind        ContextKind
	Composition ast.Composition
	State       State
}

// Lookup returns the first name bound in c with the given key.
func (c *Context) Lookup(key string) (Name, bool) {
	if at := c.index[key]; len(at) > 0 {
		return c.Names[at[0]], true
	}

	return Name{}, false
}

// Exports returns the exported name with the given visible key.
func (c *Context) Exports(key string) (Export, bool) {
	for _, e := range c.Exposed {
		if e.Name.Key() == key {
			return e, true
		}
	}

	return Export{}, false
}

func (c *Context) bind(n Name) {
	if c.index == nil {
		c.index = map[string][]int{}
	}

	key := n.Binder.Key()
	c.index[key] = append(c.index[key], len(c.Names))
	c.Names = append(c.Names, n)
}

// visible reports whether the name bound at Names[i] can be seen from slot.
// A sibling hit in a parallel block is reported separately as illegal.
func (c *Context) visible(i, slot int) (ok, illegal bool) {
	if c.Kind != BlockContext {
		return true, false
	}

	at := c.Names[i].Site.Binding
	if at == NoBinding || slot >= c.Bindings {
		return true, false
	}

	switch c.Composition {
	case ast.Sequential:
		return at < slot, false

	case ast.Parallel:
		if at == slot {
			return false, false
		}

		return false, true

	default:
		return true, false
	}
}
