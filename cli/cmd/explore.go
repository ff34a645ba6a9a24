package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/nana/cli/cmd/explore"
	"github.com/ardnew/nana/lang"
	"github.com/ardnew/nana/log"
)

// Explore compiles a source document and browses its contexts interactively.
type Explore struct {
	Source string `arg:"" default:"-" help:"Source document, a name on the search path, or '-' for stdin." name:"source"`
}

// Run executes the explore command.
func (e *Explore) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	c, err := compileOne(ctx, e.Source)
	if err != nil {
		return err
	}

	if c.failed() {
		return lang.WrapError(c.err).
			With(slog.String("command", "explore"))
	}

	cacheDir := os.TempDir()
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			cacheDir = dir
		}
	}

	return explore.Run(ctx, c.unit, cacheDir, log.Default())
}
