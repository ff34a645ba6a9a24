//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/nana/log"
	"github.com/ardnew/nana/pkg"
	"github.com/ardnew/nana/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                                 type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(slices.Sorted(slices.Values(profile.Modes())), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

// start starts profiling if configured. Profiles of each command are written
// to their own subdirectory of Dir.
func (f pprofConfig) start(ctx context.Context, command string) (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	cfg := profile.New(
		profile.WithMode(f.Mode),
		profile.WithDir(f.Dir),
		profile.WithLabel(command),
		profile.WithQuiet(true),
	)

	log.DebugContext(ctx, "pprof start",
		slog.String("mode", cfg.Mode),
		slog.String("path", cfg.Path()),
	)

	profiler := cfg.Start()

	return func() {
		profiler.Stop()
		log.DebugContext(ctx, "pprof stop",
			slog.String("mode", cfg.Mode),
			slog.String("path", cfg.Path()),
		)
	}
}
