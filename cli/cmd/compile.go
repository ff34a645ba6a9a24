package cmd

import (
	"context"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/nana/lang"
	"github.com/ardnew/nana/log"
	"github.com/ardnew/nana/pkg"
)

// compiled is the outcome of one document carried through the pipeline.
//
// A document that fails to decode has a nil unit and a non-nil err. A
// document with diagnostics has both.
type compiled struct {
	unit *lang.Unit
	err  error
	name string
}

// failed reports whether the document did not decode.
func (c compiled) failed() bool { return c.unit == nil && c.err != nil }

// compileAll runs the pipeline over each document concurrently and returns
// the outcomes in the order of docs. Only cancellation of ctx is returned
// as an error; pipeline failures are recorded per document.
func compileAll(ctx context.Context, docs []document) ([]compiled, error) {
	out := make([]compiled, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			opts := append(slices.Clip(optionsFrom(ctx)), lang.WithSource(doc.name))

			unit, err := lang.Compile(ctx, doc.data, opts...)
			out[i] = compiled{unit: unit, err: err, name: doc.name}

			log.DebugContext(ctx, "compiled",
				slog.String("source", doc.name),
				slog.Int("diagnostics", len(unit.Diagnostics())),
				slog.Bool("decoded", unit != nil),
			)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// compileOne reads and compiles a single source document.
func compileOne(ctx context.Context, source string) (compiled, error) {
	docs, err := readDocuments(ctx, []string{source})
	if err != nil {
		return compiled{}, err
	}

	if len(docs) == 0 {
		return compiled{}, pkg.ErrNoSource
	}

	results, err := compileAll(ctx, docs)
	if err != nil {
		return compiled{}, err
	}

	return results[0], nil
}
