package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/ardnew/nana/lang/resolve"
	"github.com/ardnew/nana/pkg"
)

// Check compiles each source document and reports its diagnostics.
type Check struct {
	JSON    bool     `help:"Report diagnostics as JSON."`
	Indent  int      `default:"2"    help:"Indent width for JSON output"                short:"i"`
	Color   string   `default:"auto" enum:"auto,always,never" help:"Colorize the report (${enum})."`
	Sources []string `arg:"" default:"-" help:"Source documents, names on the search path, or '-' for stdin." name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	docs, err := readDocuments(ctx, c.Sources)
	if err != nil {
		return err
	}

	results, err := compileAll(ctx, docs)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	if c.JSON {
		err = writeReportJSON(w, results, c.Indent)
	} else {
		err = writeReport(w, results, newStyles(w, colorEnabled(w, c.Color)))
	}

	if err != nil {
		return err
	}

	diags, failed := tally(results)
	if diags > 0 || failed > 0 {
		return pkg.ErrCheckFailed.Wrapf(
			"%d diagnostics, %d documents not decoded", diags, failed)
	}

	return nil
}

// tally counts the diagnostics of every document and the documents that did
// not decode.
func tally(results []compiled) (diags, failed int) {
	for _, r := range results {
		if r.failed() {
			failed++
		}

		diags += len(r.unit.Diagnostics())
	}

	return diags, failed
}

// colorEnabled reports whether output to w is colorized in the given mode.
func colorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true

	case "never":
		return false
	}

	f, ok := w.(*os.File)

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// styles renders the parts of a report.
type styles struct {
	source lipgloss.Style
	kind   lipgloss.Style
	ok     lipgloss.Style
	fail   lipgloss.Style
	hint   lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)

	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return styles{
		source: r.NewStyle().Bold(true),
		kind:   r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		ok:     r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		hint:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// writeReport writes one line per diagnostic, or one line per document that
// did not decode or has no diagnostics.
func writeReport(w io.Writer, results []compiled, s styles) error {
	var sb strings.Builder

	for _, r := range results {
		src := s.source.Render(r.name + ":")

		switch {
		case r.failed():
			fmt.Fprintf(&sb, "%s %s %v\n", src, s.fail.Render("error:"), r.err)

		case len(r.unit.Diagnostics()) == 0:
			fmt.Fprintf(&sb, "%s %s %s\n", src, s.ok.Render("ok"),
				s.hint.Render(fmt.Sprintf("(%d contexts, %d references)",
					len(r.unit.Result.Contexts), len(r.unit.Result.Refs))))

		default:
			for _, d := range r.unit.Diagnostics() {
				fmt.Fprintf(&sb, "%s %s %v\n", src, s.kind.Render(d.Kind.String()+":"), d)
			}
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// writeReportJSON writes a JSON array with one object per document.
func writeReportJSON(w io.Writer, results []compiled, indent int) error {
	var native pkg.TypeCast[*resolve.Diagnostic, any] = func(d *resolve.Diagnostic) any {
		return d.ToNative()
	}

	report := make([]map[string]any, len(results))

	for i, r := range results {
		entry := map[string]any{
			"source":      r.name,
			"ok":          r.err == nil,
			"diagnostics": native.Collect(r.unit.Diagnostics()...),
		}

		if r.failed() {
			entry["error"] = r.err.Error()
		}

		report[i] = entry
	}

	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(report, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(report)
	}

	if err != nil {
		return pkg.ErrJSONMarshal.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
