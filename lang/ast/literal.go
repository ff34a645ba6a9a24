package ast

import "strconv"

// LiteralKind indicates the type of a [Literal].
type LiteralKind uint8

const (
	Int   LiteralKind = iota // int
	Float                    // float
	Str                      // str
	Raw                      // raw
)

// Literal is an immutable constant.
// Exactly one of the value fields is meaningful, based on Kind.
type Literal struct {
	Text  string  // Str, Raw
	Int   uint64  // Int
	Float float64 // Float
	Kind  LiteralKind
}

// IntLit returns an integer literal.
func IntLit(i uint64) Literal { return Literal{Kind: Int, Int: i} }

// FloatLit returns a floating point literal.
func FloatLit(f float64) Literal { return Literal{Kind: Float, Float: f} }

// StrLit returns a string literal.
func StrLit(s string) Literal { return Literal{Kind: Str, Text: s} }

// RawLit returns a raw (unescaped) string literal.
func RawLit(s string) Literal { return Literal{Kind: Raw, Text: s} }

// Native returns the literal as a native Go value.
func (l Literal) Native() any {
	switch l.Kind {
	case Int:
		return l.Int

	case Float:
		return l.Float

	default:
		return l.Text
	}
}

// String returns the literal in source form.
func (l Literal) String() string {
	switch l.Kind {
	case Int:
		return strconv.FormatUint(l.Int, 10)

	case Float:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)

	case Raw:
		return "`" + l.Text + "`"

	default:
		return strconv.Quote(l.Text)
	}
}
