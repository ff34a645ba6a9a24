package ast

//go:generate go tool stringer -linecomment -type BinderKind,LiteralKind,PatternKind,MaskKind,Composition,Shape -output ast_string.go

import "strconv"

// BinderKind indicates the shape of a [Binder].
type BinderKind uint8

const (
	Identity  BinderKind = iota // identity
	Anonymous                   // anonymous
	Arbitrary                   // arbitrary
)

// AnonymousSep separates the name of an anonymous binder from its suffix.
const AnonymousSep = "#"

// Wildcard is the printed form of the arbitrary binder.
const Wildcard = "_"

// Binder is a name usable as a reference or introduced as a binding target.
type Binder struct {
	Name   string
	Suffix int // Anonymous only
	Kind   BinderKind
}

// Ident returns an identity binder.
func Ident(name string) Binder {
	return Binder{Kind: Identity, Name: name}
}

// Anon returns an anonymous binder with the given disambiguating suffix.
func Anon(name string, suffix int) Binder {
	return Binder{Kind: Anonymous, Name: name, Suffix: suffix}
}

// Any returns the arbitrary binder.
func Any() Binder {
	return Binder{Kind: Arbitrary}
}

// Introduces reports whether the binder introduces a name when it appears in
// binding position.
func (b Binder) Introduces() bool { return b.Kind != Arbitrary }

// Key returns the lookup key of the binder. Anonymous binders never collide
// with identity binders because their key contains [AnonymousSep].
func (b Binder) Key() string {
	switch b.Kind {
	case Anonymous:
		return b.Name + AnonymousSep + strconv.Itoa(b.Suffix)

	case Arbitrary:
		return Wildcard

	default:
		return b.Name
	}
}

// String returns the printed form of the binder.
func (b Binder) String() string { return b.Key() }
