package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/nana/lang"
	"github.com/ardnew/nana/log"
)

// Fmt compiles a source document and renders it in the chosen format.
type Fmt struct {
	Flat     Flat     `cmd:"" default:"withargs" help:"Format as an outline of the canonical tree (default)."`
	Resolved Resolved `cmd:""                    help:"Format as an outline of the resolved contexts."`
	JSON     JSON     `cmd:""                    help:"Format the canonical tree and resolution as JSON."`
	YAML     YAML     `cmd:""                    help:"Format the canonical tree and resolution as YAML."`
}

// FormatArgs holds the arguments shared by every format.
type FormatArgs struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Source document, a name on the search path, or '-' for stdin." name:"source"`
}

// run compiles the source document and writes it in format f.
//
// Diagnostics do not prevent rendering. They are logged and the rendered
// document shows them.
func (r *FormatArgs) run(ctx context.Context, f lang.Format) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	c, err := compileOne(ctx, r.Source)
	if err != nil {
		return err
	}

	if c.failed() {
		return lang.WrapError(c.err).
			With(slog.String("format", f.String()))
	}

	if n := len(c.unit.Diagnostics()); n > 0 {
		log.WarnContext(ctx, "rendering document with diagnostics",
			slog.String("source", c.name),
			slog.Int("diagnostics", n),
		)
	}

	return c.unit.Write(ctx, stdout(ctx), f, r.Indent)
}

// Flat formats a document as an outline of its canonical tree.
type Flat struct {
	FormatArgs `embed:""`
}

// Run executes the flat command.
func (f *Flat) Run(ctx context.Context) error {
	return f.run(ctx, lang.FormatFlat)
}

// Resolved formats a document as an outline of its contexts.
type Resolved struct {
	FormatArgs `embed:""`
}

// Run executes the resolved command.
func (f *Resolved) Run(ctx context.Context) error {
	return f.run(ctx, lang.FormatResolved)
}

// JSON formats a compiled document as JSON.
type JSON struct {
	FormatArgs `embed:""`
}

// Run executes the json command.
func (f *JSON) Run(ctx context.Context) error {
	return f.run(ctx, lang.FormatJSON)
}

// YAML formats a compiled document as YAML.
type YAML struct {
	FormatArgs `embed:""`
}

// Run executes the yaml command.
func (f *YAML) Run(ctx context.Context) error {
	return f.run(ctx, lang.FormatYAML)
}
