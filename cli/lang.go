package cli

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/nana/cli/cmd"
	"github.com/ardnew/nana/lang"
	"github.com/ardnew/nana/log"
	"github.com/ardnew/nana/pkg"
)

// langConfig holds the flags that configure the compiler pipeline and the
// search for source documents.
type langConfig struct {
	Include     []string `help:"Search these directories for source documents before ${pathEnv}." placeholder:"DIR"  short:"I"`
	Predeclared []string `help:"Names that resolve in every program without being bound."        placeholder:"NAME"`
	MaxDepth    int      `default:"${maxDepth}" help:"Maximum nesting depth of a document (0 is unlimited)."`
}

func (*langConfig) vars() kong.Vars {
	return kong.Vars{
		"pathEnv":  pkg.PathEnv,
		"maxDepth": strconv.Itoa(lang.DefaultMaxDepth),
	}
}

func (*langConfig) group() kong.Group {
	var group kong.Group

	group.Key = "lang"
	group.Title = "Language options"

	return group
}

// start stores the pipeline options and the search path in ctx for use by
// commands.
func (f *langConfig) start(ctx context.Context) context.Context {
	dirs := pkg.SearchPath(f.Include...)

	log.DebugContext(ctx, "pipeline configured",
		slog.Any("search", dirs),
		slog.Any("predeclared", f.Predeclared),
		slog.Int("max_depth", f.MaxDepth),
	)

	ctx = cmd.WithSearchPath(ctx, dirs)

	return cmd.WithOptions(ctx,
		lang.WithLogger(log.Default()),
		lang.WithMaxDepth(f.MaxDepth),
		lang.WithPredeclared(f.Predeclared...),
	)
}
