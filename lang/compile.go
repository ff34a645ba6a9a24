package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/nana/lang/canon"
	"github.com/ardnew/nana/lang/flatten"
	"github.com/ardnew/nana/lang/resolve"
	"github.com/ardnew/nana/lang/surface"
)

// Unit is one document carried through the whole pipeline.
type Unit struct {
	Surface *surface.Program
	Canon   *canon.Program
	Result  *resolve.Result
	Source  string
}

// CompileReader reads a surface document from r and compiles it.
func CompileReader(ctx context.Context, r io.Reader, opts ...Option) (*Unit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		cfg := makeConfig(opts...)

		return nil, ErrReadInput.Wrap(err).With(slog.String("source", cfg.source))
	}

	return Compile(ctx, data, opts...)
}

// Compile decodes, flattens, and resolves a surface document.
//
// A document that fails to decode returns a nil Unit. A document that
// decodes returns its Unit even when resolution reports diagnostics, in
// which case the error wraps [ErrResolve] and every diagnostic.
func Compile(ctx context.Context, data []byte, opts ...Option) (*Unit, error) {
	prog, err := Decode(ctx, data, opts...)
	if err != nil {
		return nil, err
	}

	return CompileProgram(ctx, prog, opts...)
}

// CompileProgram flattens and resolves a surface program.
func CompileProgram(
	ctx context.Context,
	prog *surface.Program,
	opts ...Option,
) (*Unit, error) {
	cfg := makeConfig(opts...)

	u := &Unit{Surface: prog, Source: cfg.source}

	u.Canon = flatten.Program(prog)
	cfg.logger.TraceContext(ctx, "flattened", slog.String("source", cfg.source))

	u.Result = resolve.Resolve(ctx, u.Canon, cfg.resolveOptions()...)

	if err := u.Result.Err(); err != nil {
		return u, ErrResolve.Wrap(err).
			With(slog.String("source", cfg.source)).
			With(slog.Int("diagnostics", len(u.Result.Diagnostics)))
	}

	return u, nil
}

// Diagnostics returns the diagnostics of the unit, or nil if it was not
// resolved.
func (u *Unit) Diagnostics() []*resolve.Diagnostic {
	if u == nil || u.Result == nil {
		return nil
	}

	return u.Result.Diagnostics
}
