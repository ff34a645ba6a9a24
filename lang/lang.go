package lang

import (
	"log/slog"

	"github.com/ardnew/nana/lang/resolve"
	"github.com/ardnew/nana/log"
)

// DefaultMaxDepth is the default maximum nesting depth of a surface document.
// Users may modify this before decoding to change the default.
var DefaultMaxDepth = 256

// DefaultSource names documents decoded without [WithSource].
const DefaultSource = "<input>"

// config holds the pipeline options.
type config struct {
	logger      log.Logger
	source      string
	predeclared []string
	maxDepth    int
}

// Option configures decoding and compilation.
type Option func(*config)

// WithMaxDepth sets the maximum nesting depth of a decoded document.
// A depth of zero or less disables the limit.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithPredeclared adds names that resolve in every program without being
// bound by it.
func WithPredeclared(names ...string) Option {
	return func(c *config) {
		c.predeclared = append(c.predeclared, names...)
	}
}

// WithSource names the document in errors and log records.
func WithSource(name string) Option {
	return func(c *config) {
		c.source = name
	}
}

func makeConfig(opts ...Option) config {
	c := config{
		source:   DefaultSource,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// resolveOptions translates the pipeline options for the resolver.
func (c config) resolveOptions() []resolve.Option {
	return []resolve.Option{
		resolve.WithLogger(c.logger.With(slog.String("source", c.source))),
		resolve.WithPredeclared(c.predeclared...),
	}
}
