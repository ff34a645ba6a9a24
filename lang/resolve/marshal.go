package resolve

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ardnew/nana/lang/canon"
)

// MarshalJSON implements json.Marshaler for Result.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// ToMap converts the contexts, references, and diagnostics of the result to
// native Go types.
func (r *Result) ToMap() map[string]any {
	contexts := make([]any, len(r.Contexts))
	for i, c := range r.Contexts {
		contexts[i] = c.ToNative()
	}

	refs := make([]any, 0, len(r.order))
	for _, e := range r.order {
		refs = append(refs, r.referenceNative(e))
	}

	diags := make([]any, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		diags[i] = d.ToNative()
	}

	return map[string]any{
		"root":        int(r.Root),
		"contexts":    contexts,
		"references":  refs,
		"diagnostics": diags,
	}
}

func (r *Result) referenceNative(e *canon.Expr) map[string]any {
	res := r.Refs[e]

	m := map[string]any{"kind": res.Kind.String()}

	switch e.Kind {
	case canon.ExprRef:
		m["ref"] = e.Ref.String()

		if res.Kind != Failed || res.Context != NoContext {
			m["site"] = res.Name.Site.String()
			m["origin"] = res.Name.Origin.String()
			m["depth"] = res.Depth
		}

	case canon.ExprProject:
		m["project"] = e.Project.Name.String()

		if res.Export != nil {
			m["site"] = res.Export.Source.String()
		}
	}

	if c := r.Context(res.Context); c != nil {
		m["context"] = c.Path
	}

	return m
}

// ToNative converts a context to native Go types.
func (c *Context) ToNative() map[string]any {
	m := map[string]any{
		"id":     int(c.ID),
		"kind":   c.Kind.String(),
		"path":   c.Path,
		"parent": int(c.Parent),
		"state":  c.State.String(),
	}

	if c.Kind == BlockContext {
		m["composition"] = c.Composition.String()
	}

	if len(c.Names) > 0 {
		names := make([]any, len(c.Names))
		for i, n := range c.Names {
			names[i] = map[string]any{
				"name":   n.Binder.String(),
				"origin": n.Origin.String(),
				"site":   n.Site.String(),
			}
		}

		m["names"] = names
	}

	if len(c.Exposed) > 0 {
		exposed := make([]any, len(c.Exposed))
		for i, e := range c.Exposed {
			exposed[i] = map[string]any{
				"name":   e.Name.String(),
				"member": e.Member,
				"source": e.Source.String(),
				"target": int(e.Target),
			}
		}

		m["exposed"] = exposed
	}

	return m
}

// ToNative converts a diagnostic to native Go types. The keys match the
// fields visible to query expressions.
func (d *Diagnostic) ToNative() map[string]any {
	sites := make([]string, len(d.Sites))
	for i, s := range d.Sites {
		sites[i] = s.String()
	}

	suggestions := d.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}

	return map[string]any{
		"kind":        d.Kind.String(),
		"name":        d.Name,
		"path":        d.Path,
		"detail":      d.Detail,
		"context":     int(d.Context),
		"sites":       sites,
		"suggestions": suggestions,
		"message":     d.Error(),
	}
}

// Print writes an indented outline of the context tree to w, starting at the
// universe context.
func (r *Result) Print(w io.Writer, indent int) error {
	if indent <= 0 {
		indent = 2
	}

	if len(r.Contexts) == 0 {
		return nil
	}

	return r.printContext(w, 0, 0, indent)
}

func (r *Result) printContext(w io.Writer, id ContextID, depth, indent int) error {
	c := r.Contexts[id]
	prefix := strings.Repeat(" ", depth*indent)

	head := fmt.Sprintf("%s[%d] %s", prefix, c.ID, c.Kind)
	if c.Kind == BlockContext {
		head += " " + c.Composition.String()
	}

	if c.Path != "" {
		head += " " + c.Path
	}

	if _, err := fmt.Fprintln(w, head); err != nil {
		return err
	}

	for _, n := range c.Names {
		line := fmt.Sprintf("%s%s- %s (%s %s)", prefix, strings.Repeat(" ", indent),
			n.Binder, n.Origin, n.Site)

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(c.Exposed) > 0 {
		names := make([]string, len(c.Exposed))
		for i, e := range c.Exposed {
			names[i] = e.Name.String()
			if e.Member != e.Name.Key() {
				names[i] += "<-" + e.Member
			}
		}

		line := fmt.Sprintf("%s%sexposes %s", prefix, strings.Repeat(" ", indent),
			strings.Join(names, ", "))

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for _, child := range c.Children {
		if err := r.printContext(w, child, depth+1, indent); err != nil {
			return err
		}
	}

	return nil
}
