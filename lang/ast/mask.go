package ast

// MaskKind indicates the visibility policy of a [Mask].
type MaskKind uint8

const (
	// Closed bindings are private to their own scope.
	Closed MaskKind = iota // closed

	// Exposed bindings make every introduced name visible to the parent.
	Exposed // exposed

	// Exposing bindings make exactly the names selected by the mask pattern
	// visible to the parent.
	Exposing // exposing

	// Open bindings re-export every name the bound value itself exposes.
	Open // open
)

// Mask is the visibility policy attached to a binding.
type Mask struct {
	Pattern *Pattern // Exposing only
	Kind    MaskKind
}

// ClosedMask returns the private mask.
func ClosedMask() Mask { return Mask{Kind: Closed} }

// ExposedMask returns the mask exposing every introduced name.
func ExposedMask() Mask { return Mask{Kind: Exposed} }

// ExposingMask returns the mask exposing the names selected by p.
func ExposingMask(p *Pattern) Mask { return Mask{Kind: Exposing, Pattern: p} }

// OpenMask returns the mask re-exporting the bound value's exposure.
func OpenMask() Mask { return Mask{Kind: Open} }

// String returns the binding operator for the mask.
func (m Mask) String() string {
	switch m.Kind {
	case Exposed:
		return ":="

	case Exposing:
		return ":" + m.Pattern.String() + "="

	case Open:
		return ":..="

	default:
		return "="
	}
}
