package ast

import "strings"

// PatternKind indicates the variant of a [Pattern].
type PatternKind uint8

const (
	// BindPattern matches anything and binds it to Binder.
	BindPattern PatternKind = iota // binder

	// RestPattern matches the remainder of a list. Binder is the arbitrary
	// binder when the remainder is not named.
	RestPattern // rest

	// LiteralPattern matches the constant Literal.
	LiteralPattern // literal

	// ListPattern matches a list element-wise using Elems.
	ListPattern // list

	// AppendPattern matches a list split around Rest: Elems is the head and
	// Tail the tail.
	AppendPattern // append

	// TuplePattern matches a tuple positionally using Elems.
	TuplePattern // tuple

	// MapPattern matches map entries by key using Entries.
	MapPattern // map

	// ExposurePattern selects the names in Exposes, or every name when All is
	// set.
	ExposurePattern // exposure

	// AliasPattern binds the whole value with As and destructures it with Of.
	AliasPattern // alias
)

// Entry is a keyed sub-pattern of a [MapPattern].
type Entry struct {
	Value *Pattern
	Key   Literal
}

// Pattern is used both for parameter lists and destructuring bindings.
type Pattern struct {
	Rest    *Pattern   // AppendPattern
	As      *Pattern   // AliasPattern
	Of      *Pattern   // AliasPattern
	Elems   []*Pattern // ListPattern, TuplePattern, AppendPattern (head)
	Tail    []*Pattern // AppendPattern
	Entries []Entry    // MapPattern
	Exposes []Binder   // ExposurePattern
	Literal Literal    // LiteralPattern
	Binder  Binder     // BindPattern, RestPattern
	All     bool       // ExposurePattern
	Kind    PatternKind
}

// Bind returns a pattern binding an identity binder.
func Bind(name string) *Pattern {
	return BindTo(Ident(name))
}

// BindTo returns a pattern binding b.
func BindTo(b Binder) *Pattern {
	return &Pattern{Kind: BindPattern, Binder: b}
}

// Wild returns the pattern matching anything without binding it.
func Wild() *Pattern {
	return BindTo(Any())
}

// Rest returns a rest marker. An empty name leaves the remainder unnamed.
func Rest(name string) *Pattern {
	if name == "" {
		return &Pattern{Kind: RestPattern, Binder: Any()}
	}

	return &Pattern{Kind: RestPattern, Binder: Ident(name)}
}

// Lit returns a pattern matching a constant.
func Lit(l Literal) *Pattern {
	return &Pattern{Kind: LiteralPattern, Literal: l}
}

// List returns a fixed arity list pattern.
func List(elems ...*Pattern) *Pattern {
	return &Pattern{Kind: ListPattern, Elems: elems}
}

// Append returns a list pattern split around rest.
func Append(head []*Pattern, rest *Pattern, tail []*Pattern) *Pattern {
	return &Pattern{Kind: AppendPattern, Elems: head, Rest: rest, Tail: tail}
}

// Tuple returns a positional tuple pattern.
func Tuple(elems ...*Pattern) *Pattern {
	return &Pattern{Kind: TuplePattern, Elems: elems}
}

// Map returns a keyed map pattern.
func Map(entries ...Entry) *Pattern {
	return &Pattern{Kind: MapPattern, Entries: entries}
}

// Expose returns an exposure pattern selecting the given names.
func Expose(names ...string) *Pattern {
	exposes := make([]Binder, 0, len(names))
	for _, name := range names {
		exposes = append(exposes, Ident(name))
	}

	return &Pattern{Kind: ExposurePattern, Exposes: exposes}
}

// ExposeAll returns the wildcard exposure pattern.
func ExposeAll() *Pattern {
	return &Pattern{Kind: ExposurePattern, All: true}
}

// Alias returns a pattern that binds the whole value with as and also
// destructures it with of.
func Alias(as, of *Pattern) *Pattern {
	return &Pattern{Kind: AliasPattern, As: as, Of: of}
}

// String returns the pattern in source form.
func (p *Pattern) String() string {
	if p == nil {
		return "<nil>"
	}

	var sb strings.Builder

	p.write(&sb)

	return sb.String()
}

func (p *Pattern) write(sb *strings.Builder) {
	seq := func(open, sep, close string, elems ...[]*Pattern) {
		sb.WriteString(open)

		n := 0
		for _, part := range elems {
			for _, e := range part {
				if n > 0 {
					sb.WriteString(sep)
				}

				e.write(sb)
				n++
			}
		}

		sb.WriteString(close)
	}

	switch p.Kind {
	case BindPattern:
		sb.WriteString(p.Binder.String())

	case RestPattern:
		sb.WriteString("..")

		if p.Binder.Introduces() {
			sb.WriteString(p.Binder.String())
		}

	case LiteralPattern:
		sb.WriteString(p.Literal.String())

	case ListPattern:
		seq("[", ", ", "]", p.Elems)

	case AppendPattern:
		seq("[", ", ", "]", p.Elems, []*Pattern{p.Rest}, p.Tail)

	case TuplePattern:
		seq("(", ", ", ")", p.Elems)

	case MapPattern:
		sb.WriteString("{")

		for i, e := range p.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(e.Key.String())
			sb.WriteString(": ")
			e.Value.write(sb)
		}

		sb.WriteString("}")

	case ExposurePattern:
		sb.WriteString("<")

		if p.All {
			sb.WriteString("..")
		}

		for i, b := range p.Exposes {
			if i > 0 || p.All {
				sb.WriteString("; ")
			}

			sb.WriteString(b.String())
		}

		sb.WriteString(">")

	case AliasPattern:
		sb.WriteString("(")
		p.As.write(sb)
		sb.WriteString(" = ")
		p.Of.write(sb)
		sb.WriteString(")")
	}
}
