package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects how a [Unit] is rendered.
type Format int

const (
	// FormatFlat renders the canonical tree as an indented outline.
	FormatFlat Format = iota

	// FormatResolved renders the context tree as an indented outline.
	FormatResolved

	// FormatJSON renders the canonical tree and its resolution as JSON.
	FormatJSON

	// FormatYAML renders the canonical tree and its resolution as YAML.
	FormatYAML
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatFlat:
		return "flat"

	case FormatResolved:
		return "resolved"

	case FormatJSON:
		return "json"

	case FormatYAML:
		return "yaml"

	default:
		return "unknown"
	}
}

var formats = []Format{FormatFlat, FormatResolved, FormatJSON, FormatYAML}

// Formats returns an iterator over the names of every format.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range formats {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for _, f := range formats {
		if f.String() == name {
			return f, nil
		}
	}

	return 0, ErrInvalidFormat.
		With(slog.String("format", s)).
		With(slog.String("valid", strings.Join(slices.Collect(Formats()), ", ")))
}

// Write renders the unit to w in the given format.
func (u *Unit) Write(ctx context.Context, w io.Writer, f Format, indent int) error {
	switch f {
	case FormatFlat:
		return u.Print(w, indent)

	case FormatResolved:
		return u.Result.Print(w, indent)

	case FormatJSON:
		return u.FormatJSON(ctx, w, indent)

	case FormatYAML:
		return u.FormatYAML(ctx, w, indent)

	default:
		return ErrInvalidFormat.With(slog.Int("format", int(f)))
	}
}

// Print writes the canonical tree of the unit as an indented outline.
func (u *Unit) Print(w io.Writer, indent int) error {
	return u.Canon.Print(w, indent)
}

// ToMap converts the unit to native Go types.
func (u *Unit) ToMap() map[string]any {
	m := map[string]any{
		"source":  u.Source,
		"program": u.Canon.ToMap(),
	}

	if u.Result != nil {
		m["resolution"] = u.Result.ToMap()
	}

	return m
}

// MarshalJSON implements json.Marshaler for Unit.
func (u *Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.ToMap())
}

// FormatJSON writes the unit as JSON to the writer.
func (u *Unit) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(u, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(u)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the unit as YAML to the writer.
func (u *Unit) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, u.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
