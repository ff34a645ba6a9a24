package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)  // trace
	LevelDebug Level = Level(slog.LevelDebug) // debug
	LevelInfo  Level = Level(slog.LevelInfo)  // info
	LevelWarn  Level = Level(slog.LevelWarn)  // warn
	LevelError Level = Level(slog.LevelError) // error
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels returns an iterator over the names of all defined log levels, from
// least to most severe.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for level := range slices.Values(levels) {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel parses the name of a log level, ignoring case.
// Besides "trace", any string accepted by [slog.Level.UnmarshalText] is valid,
// such as "warn" or "debug+2". Invalid strings yield [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	for _, level := range levels {
		if strings.EqualFold(s, level.String()) {
			return level
		}
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatJSON

var formats = []Format{FormatJSON, FormatText}

// Formats returns an iterator over the names of all defined log formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for format := range slices.Values(formats) {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat parses the name of a log format, ignoring case.
// Invalid strings yield [DefaultFormat].
func ParseFormat(s string) Format {
	s = strings.TrimSpace(s)

	for _, format := range formats {
		if strings.EqualFold(s, format.String()) {
			return format
		}
	}

	return DefaultFormat
}

// FormatTime defines a function that formats a time.Time value as a string.
// An empty result omits the timestamp.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the default used when no valid time layout is provided.
const DefaultTimeLayout = time.RFC3339

// DefaultCaller is the default setting for including caller information
// in log output.
const DefaultCaller = false

// DefaultPretty is the default setting for pretty printing log output.
const DefaultPretty = true

// config holds the configuration options for a Logger.
type config struct {
	mutex      *sync.RWMutex
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// makeConfig creates a new config with defaults applied, overridden by any
// provided options.
func makeConfig(w io.Writer, opts ...Option) config {
	return apply(config{mutex: &sync.RWMutex{}}, append([]Option{WithDefaults(w)}, opts...)...)
}

// clone creates a copy of the config with a separate mutex and applies any
// provided options.
func (c config) clone(opts ...Option) config {
	c.mutex = &sync.RWMutex{}

	return apply(c, opts...)
}

// handlerOptions returns the options shared by every handler of c.
func (c config) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}
}

// replaceAttr formats the built-in time and level attributes. It drops the
// time attribute when the time layout is disabled, and names the trace level
// instead of printing "DEBUG-4".
func (c config) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.TimeKey:
		t, ok := a.Value.Any().(time.Time)
		if !ok || c.formatTime == nil {
			return a
		}

		formatted := c.formatTime(t)
		if formatted == "" {
			return slog.Attr{}
		}

		return slog.String(slog.TimeKey, formatted)

	case slog.LevelKey:
		if level, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(slog.LevelKey, strings.ToUpper(Level(level).String()))
		}
	}

	return a
}

// handler creates a slog.Handler based on the current configuration.
// The optional opts can be used to override specific configuration values.
func (c config) handler(opts ...Option) slog.Handler {
	override := apply(c, opts...)
	ho := override.handlerOptions()

	switch {
	case override.pretty && override.format == FormatJSON:
		return newPrettyHandler(override.output, ho, prettyJSON)

	case override.pretty && override.format == FormatText:
		return newPrettyHandler(override.output, ho, prettyText)

	case override.format == FormatJSON:
		return slog.NewJSONHandler(override.output, ho)

	case override.format == FormatText:
		return slog.NewTextHandler(override.output, ho)

	default:
		return slog.DiscardHandler
	}
}

// Option configures a Logger.
type Option func(config) config

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// set returns an [Option] that applies fn to a config while holding its
// mutex, creating the mutex if the config has none.
func set(fn func(c *config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		} else {
			c.mutex.Lock()
			defer c.mutex.Unlock()
		}

		fn(&c)

		return c
	}
}

// WithDefaults returns a functional option that sets the default configuration.
// The default configuration is [DefaultTimeLayout], [DefaultLevel],
// [DefaultFormat], [DefaultCaller], and [DefaultPretty].
func WithDefaults(w io.Writer) Option {
	formatTime := makeFormatTimeFunc(DefaultTimeLayout)

	return set(func(c *config) {
		c.output = orDiscard(w)
		c.formatTime = formatTime
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty
	})
}

// WithOutput returns a functional option that sets the output [io.Writer]
// for log messages.
// If a nil writer is provided, [io.Discard] is used instead.
func WithOutput(w io.Writer) Option {
	return set(func(c *config) { c.output = orDiscard(w) })
}

// WithLevel returns a functional option that sets the minimum log level.
// Messages below this level are discarded.
func WithLevel(level Level) Option {
	return set(func(c *config) { c.level = level })
}

// WithFormat returns a functional option that sets the output format
// for log messages.
func WithFormat(format Format) Option {
	return set(func(c *config) { c.format = format })
}

// WithTimeLayout returns a functional option that sets the layout used to
// format log timestamps.
//
// The layout string can be one of the named layouts from the [time] package
// (for example, "RFC3339" or "Kitchen"), matched ignoring case and
// punctuation. Otherwise, it is passed verbatim to [time.Time.Format].
//
// If the layout is blank or "none", timestamps are omitted.
func WithTimeLayout(layout string) Option {
	formatTime := makeFormatTimeFunc(layout)

	return set(func(c *config) { c.formatTime = formatTime })
}

// WithCaller returns a functional option that controls whether caller
// information is included in log output.
func WithCaller(enable bool) Option {
	return set(func(c *config) { c.caller = enable })
}

// WithPretty returns a functional option that controls whether log output
// is pretty printed. Pretty output is colorized when the output is a terminal.
// Text records are written on one line without quotes. JSON records are
// written as indented multiline objects.
func WithPretty(enable bool) Option {
	return set(func(c *config) { c.pretty = enable })
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}

	return w
}

// timeLayout maps the normalized names of layouts to their definition.
var timeLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
	"ms":          time.StampMilli,
	"us":          time.StampMicro,
	"ns":          time.StampNano,
	"none":        "",
}

// normalizeLayout reduces a layout name to lowercase letters and digits.
func normalizeLayout(layout string) string {
	return strings.Map(
		func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}

			return -1
		},
		strings.ToLower(layout),
	)
}

func makeFormatTimeFunc(layout string) FormatTime {
	name := normalizeLayout(layout)
	if std, ok := timeLayout[name]; ok {
		layout = std
	}

	if name == "" || layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
