package resolve

import (
	"fmt"
	"log/slog"
	"strings"
)

// Kind classifies a [Diagnostic].
type Kind int

const (
	// UnresolvedName means a reference matches no visible binding, or a
	// projection names a member its target does not expose.
	UnresolvedName Kind = iota

	// DuplicateBinding means two bindings of one block introduce the same
	// name.
	DuplicateBinding

	// IllegalSiblingReference means a binding of a parallel block refers to a
	// sibling binding.
	IllegalSiblingReference

	// MalformedPattern means a rest marker is repeated or misplaced.
	MalformedPattern

	// IllegalFunctionBinder means a function binding is not named by an
	// identity binder.
	IllegalFunctionBinder
)

// String returns the name of the diagnostic kind.
func (k Kind) String() string {
	switch k {
	case UnresolvedName:
		return "UnresolvedName"

	case DuplicateBinding:
		return "DuplicateBinding"

	case IllegalSiblingReference:
		return "IllegalSiblingReference"

	case MalformedPattern:
		return "MalformedPattern"

	case IllegalFunctionBinder:
		return "IllegalFunctionBinder"

	default:
		return "Unknown"
	}
}

func (k Kind) message() string {
	switch k {
	case UnresolvedName:
		return "unresolved name"

	case DuplicateBinding:
		return "duplicate binding"

	case IllegalSiblingReference:
		return "illegal reference to sibling binding"

	case MalformedPattern:
		return "malformed pattern"

	case IllegalFunctionBinder:
		return "function binding requires an identity binder"

	default:
		return "unknown diagnostic"
	}
}

// Diagnostic is a language error recorded against the context it occurred
// in. Diagnostics never abort resolution.
type Diagnostic struct {
	Name        string
	Detail      string
	Path        string
	Sites       []Site
	Suggestions []string
	Context     ContextID
	Kind        Kind
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var sb strings.Builder

	sb.WriteString(d.Kind.message())

	if d.Name != "" {
		fmt.Fprintf(&sb, " %q", d.Name)
	}

	if d.Path != "" {
		fmt.Fprintf(&sb, " in %s", d.Path)
	}

	if d.Detail != "" {
		fmt.Fprintf(&sb, ": %s", d.Detail)
	}

	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&sb, " (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	return sb.String()
}

// LogValue implements slog.LogValuer.
func (d *Diagnostic) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", d.Kind.String()),
		slog.Int("context", int(d.Context)),
	}

	if d.Name != "" {
		attrs = append(attrs, slog.String("name", d.Name))
	}

	if d.Path != "" {
		attrs = append(attrs, slog.String("path", d.Path))
	}

	if d.Detail != "" {
		attrs = append(attrs, slog.String("detail", d.Detail))
	}

	if len(d.Sites) > 0 {
		sites := make([]string, len(d.Sites))
		for i, s := range d.Sites {
			sites[i] = s.String()
		}

		attrs = append(attrs, slog.Any("sites", sites))
	}

	if len(d.Suggestions) > 0 {
		attrs = append(attrs, slog.Any("suggestions", d.Suggestions))
	}

	return slog.GroupValue(attrs...)
}

// String returns the site as "context:binding".
func (s Site) String() string {
	if s.Binding == NoBinding {
		return fmt.Sprintf("%d", s.Context)
	}

	return fmt.Sprintf("%d:%d", s.Context, s.Binding)
}
