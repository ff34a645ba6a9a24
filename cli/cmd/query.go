package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/nana/lang/resolve"
	"github.com/ardnew/nana/log"
	"github.com/ardnew/nana/pkg"
)

// Query selects the diagnostics or contexts of source documents for which a
// boolean expression holds.
//
// Diagnostics expose kind, name, path, detail, context, sites, suggestions,
// message, and source. Contexts expose id, kind, path, parent, state,
// composition, names, exposed, bound, exposes, diagnostics, and source.
type Query struct {
	Contexts bool     `help:"Query contexts instead of diagnostics."`
	JSON     bool     `help:"Write the selected subjects as JSON."`
	Expr     string   `arg:"" help:"Boolean expression evaluated for each subject." name:"expr"`
	Sources  []string `arg:"" default:"-" help:"Source documents, names on the search path, or '-' for stdin." name:"source"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := compileQuery(q.Expr, q.Contexts)
	if err != nil {
		return err
	}

	docs, err := readDocuments(ctx, q.Sources)
	if err != nil {
		return err
	}

	results, err := compileAll(ctx, docs)
	if err != nil {
		return err
	}

	var selected []map[string]any

	for _, r := range results {
		if r.failed() {
			log.WarnContext(ctx, "skipped document",
				slog.String("source", r.name),
				log.Err(r.err),
			)

			continue
		}

		for _, env := range subjects(r, q.Contexts) {
			ok, err := evalQuery(prog, env)
			if err != nil {
				return err
			}

			if ok {
				selected = append(selected, env)
			}
		}
	}

	log.DebugContext(ctx, "query evaluated",
		slog.String("expr", q.Expr),
		slog.Int("selected", len(selected)),
	)

	if q.JSON {
		data, err := json.Marshal(selected)
		if err != nil {
			return pkg.ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintln(stdout(ctx), string(data))

		return err
	}

	return writeSelected(stdout(ctx), selected, q.Contexts)
}

// compileQuery type-checks the expression against the environment of one
// subject kind.
func compileQuery(code string, contexts bool) (*vm.Program, error) {
	env := diagnosticEnv("", &resolve.Diagnostic{})
	if contexts {
		env = contextEnv("", &resolve.Result{}, &resolve.Context{})
	}

	prog, err := expr.Compile(code, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, pkg.ErrInvalidQuery.Wrap(err)
	}

	return prog, nil
}

func evalQuery(prog *vm.Program, env map[string]any) (bool, error) {
	out, err := expr.Run(prog, env)
	if err != nil {
		return false, pkg.ErrInvalidQuery.Wrap(err)
	}

	ok, _ := out.(bool)

	return ok, nil
}

// subjects returns the environment of every diagnostic or context of a
// compiled document.
func subjects(r compiled, contexts bool) []map[string]any {
	var envs []map[string]any

	if !contexts {
		for _, d := range r.unit.Diagnostics() {
			envs = append(envs, diagnosticEnv(r.name, d))
		}

		return envs
	}

	for _, c := range r.unit.Result.Contexts {
		envs = append(envs, contextEnv(r.name, r.unit.Result, c))
	}

	return envs
}

func diagnosticEnv(source string, d *resolve.Diagnostic) map[string]any {
	env := d.ToNative()
	env["source"] = source

	return env
}

// contextEnv extends the native form of a context with flat name lists and
// the number of diagnostics recorded against it. Keys that the native form
// omits when empty are always present.
func contextEnv(source string, res *resolve.Result, c *resolve.Context) map[string]any {
	env := c.ToNative()
	env["source"] = source

	for _, key := range []string{"names", "exposed"} {
		if _, ok := env[key]; !ok {
			env[key] = []any{}
		}
	}

	if _, ok := env["composition"]; !ok {
		env["composition"] = ""
	}

	var (
		bound   pkg.TypeCast[resolve.Name, any]   = func(n resolve.Name) any { return n.Binder.String() }
		exposes pkg.TypeCast[resolve.Export, any] = func(e resolve.Export) any { return e.Name.String() }
	)

	env["bound"] = bound.Collect(c.Names...)
	env["exposes"] = exposes.Collect(c.Exposed...)
	env["diagnostics"] = len(res.DiagnosticsIn(c.ID))

	return env
}

// writeSelected writes one line per selected subject.
func writeSelected(w io.Writer, selected []map[string]any, contexts bool) error {
	var sb strings.Builder

	for _, env := range selected {
		if contexts {
			fmt.Fprintf(&sb, "%v: [%v] %v %v\n",
				env["source"], env["id"], env["kind"], env["path"])
		} else {
			fmt.Fprintf(&sb, "%v: %v\n", env["source"], env["message"])
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}
