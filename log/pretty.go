package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// prettyLayout selects how a [prettyHandler] arranges the fields of a record.
type prettyLayout int

const (
	// prettyText writes each record on one line as unquoted key=value pairs.
	prettyText prettyLayout = iota

	// prettyJSON writes each record as an indented multiline object with
	// unquoted values.
	prettyJSON
)

// palette holds the styles used to colorize log output. Styles are bound to
// the renderer of the output, so they emit no escape sequences unless the
// output is a terminal.
type palette struct {
	key, str, num, yes, no, dur, time, null lipgloss.Style
	trace, debug, info, warn, err           lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)

	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   color("8"),
		str:   color("6"),
		num:   color("3"),
		yes:   color("2"),
		no:    color("1"),
		dur:   color("5"),
		time:  color("4"),
		null:  color("8"),
		trace: color("8"),
		debug: color("4"),
		info:  color("2"),
		warn:  color("3"),
		err:   color("1").Bold(true),
	}
}

// level renders the name of a log level in the color of its severity.
func (p palette) level(l slog.Level) string {
	style := p.trace

	switch {
	case l >= slog.LevelError:
		style = p.err
	case l >= slog.LevelWarn:
		style = p.warn
	case l >= slog.LevelInfo:
		style = p.info
	case l >= slog.LevelDebug:
		style = p.debug
	}

	return style.Render(Level(l).String())
}

// value renders a resolved attribute value in the color of its kind.
func (p palette) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return p.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")

	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())

	case slog.KindTime:
		return p.time.Render(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		switch a := v.Any().(type) {
		case nil:
			return p.null.Render("null")
		case slog.Level:
			return p.level(a)
		case error:
			return p.no.Render(a.Error())
		}
	}

	return p.str.Render(v.String())
}

// field is an attribute whose key is qualified by its enclosing groups.
type field struct {
	key string
	val slog.Value
}

// prettyHandler implements a colorized [slog.Handler]. Groups are flattened
// into dotted keys, and values implementing [slog.LogValuer] are resolved
// before they are written.
type prettyHandler struct {
	opts   slog.HandlerOptions
	pal    palette
	mu     *sync.Mutex
	w      io.Writer
	prefix string
	attrs  []field
	layout prettyLayout
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	layout prettyLayout,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		pal:    newPalette(w),
		mu:     &sync.Mutex{},
		w:      w,
		layout: layout,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		a := slog.Time(slog.TimeKey, r.Time)
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key != "" {
			fields = append(fields, field{a.Key, a.Value})
		}
	}

	fields = append(fields, field{slog.LevelKey, slog.AnyValue(r.Level)})

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields, field{
				slog.SourceKey,
				slog.StringValue(fmt.Sprintf("%s:%d", src.File, src.Line)),
			})
		}
	}

	fields = append(fields, field{slog.MessageKey, slog.StringValue(r.Message)})
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, h.prefix, a)

		return true
	})

	buf := new(bytes.Buffer)

	switch h.layout {
	case prettyJSON:
		h.writeJSON(buf, fields)
	default:
		h.writeText(buf, fields)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = make([]field, len(h.attrs), len(h.attrs)+len(attrs))
	copy(c.attrs, h.attrs)

	for _, a := range attrs {
		c.attrs = flatten(c.attrs, h.prefix, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// flatten appends a to fields with its key qualified by prefix, expanding
// groups recursively. Empty attributes are dropped, and the attributes of a
// group with an empty key are inlined.
func flatten(fields []field, prefix string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() != slog.KindGroup {
		return append(fields, field{prefix + a.Key, a.Value})
	}

	if a.Key != "" {
		prefix += a.Key + "."
	}

	for _, g := range a.Value.Group() {
		fields = flatten(fields, prefix, g)
	}

	return fields
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(f.key))
		buf.WriteByte('=')
		buf.WriteString(h.pal.value(f.val))
	}
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, fields []field) {
	buf.WriteString("{\n")

	for i, f := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.pal.key.Render(f.key))
		buf.WriteString(": ")
		buf.WriteString(h.pal.value(f.val))
	}

	buf.WriteString("\n}")
}
