package profile

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Config describes a profiling session.
type Config struct {
	// Mode names the profile to record. See [Modes].
	Mode string

	// Dir is the base output directory.
	Dir string

	// Label, if set, names a subdirectory of Dir so that profiles of different
	// commands do not overwrite each other.
	Label string

	// Quiet suppresses the messages printed when profiling starts and stops.
	Quiet bool
}

// Option applies a configuration option to a [Config].
type Option func(*Config)

// New returns a [Config] with opts applied in order.
func New(opts ...Option) Config {
	var c Config

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithMode returns an option that sets the profiling mode.
func WithMode(mode string) Option {
	return func(c *Config) { c.Mode = strings.ToLower(strings.TrimSpace(mode)) }
}

// WithDir returns an option that sets the base output directory.
func WithDir(dir string) Option {
	return func(c *Config) { c.Dir = dir }
}

// WithLabel returns an option that sets the output subdirectory label.
func WithLabel(label string) Option {
	return func(c *Config) { c.Label = label }
}

// WithQuiet returns an option that sets the quiet flag.
func WithQuiet(quiet bool) Option {
	return func(c *Config) { c.Quiet = quiet }
}

// Path returns the directory profiles are written to.
//
// The label is reduced to its words of letters and digits joined by '-'.
// Placeholders such as "<source>" in a kong command path are dropped, so
// "fmt resolved <source>" is written under "fmt-resolved".
func (c Config) Path() string {
	var words []string

	for _, field := range strings.Fields(c.Label) {
		if strings.HasPrefix(field, "<") {
			continue
		}

		words = append(words, strings.FieldsFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})...)
	}

	if len(words) == 0 {
		return c.Dir
	}

	return filepath.Join(c.Dir, strings.ToLower(strings.Join(words, "-")))
}

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Start begins recording the profile described by c.
//
// If the build tag pprof is unset, or the mode is empty or unknown, Start
// returns a no-op [Stopper]. Stop is always safely callable.
func (c Config) Start() Stopper {
	if c.Mode == "" {
		return ignore{}
	}

	return start(c.Mode, c.Path(), c.Quiet)
}

type ignore struct{}

func (ignore) Stop() {}
