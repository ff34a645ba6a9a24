package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/nana/lang/ast"
	"github.com/ardnew/nana/lang/surface"
)

// RestPrefix marks a rest pattern in the short string form of a pattern.
const RestPrefix = ".."

// DecodeReader reads a surface document from r and decodes it.
func DecodeReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*surface.Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Decode(ctx, data, opts...)
}

// Decode decodes a YAML or JSON surface document into a surface program.
//
// The document root is a block mapping with the optional keys traces, kind,
// shape, bindings, values, and pairs. Bare integers and floats are literals,
// bare strings are references, and every other expression is a mapping with
// exactly one key naming its kind. Patterns use the same scheme, with the
// short forms "x", "_", "..", and "..xs".
func Decode(
	ctx context.Context,
	data []byte,
	opts ...Option,
) (*surface.Program, error) {
	cfg := makeConfig(opts...)

	var doc any

	err := yaml.UnmarshalContext(ctx, data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("source", cfg.source))
	}

	if doc == nil {
		doc = yaml.MapSlice{}
	}

	d := &decoder{
		b:        surface.NewBuilder(),
		maxDepth: cfg.maxDepth,
	}

	block, traces, err := d.block(doc, "root")
	if err != nil {
		return nil, err
	}

	prog := d.b.Program(block, traces...)

	cfg.logger.TraceContext(ctx, "decoded",
		slog.String("source", cfg.source),
		slog.Int("bindings", len(block.Bindings)),
		slog.Int("nodes", d.nodes))

	return prog, nil
}

type decoder struct {
	b        *surface.Builder
	chain    []string
	maxDepth int
	nodes    int
}

// enter descends into the node named seg.
func (d *decoder) enter(seg string) error {
	d.chain = append(d.chain, seg)
	d.nodes++

	if d.maxDepth > 0 && len(d.chain) > d.maxDepth {
		return ErrMaxDepthExceeded.
			With(slog.Int("depth", len(d.chain))).
			With(slog.Int("max_depth", d.maxDepth)).
			With(slog.String("chain", d.path()))
	}

	return nil
}

func (d *decoder) leave() {
	d.chain = d.chain[:len(d.chain)-1]
}

func (d *decoder) path() string {
	return strings.Join(d.chain, " → ")
}

func (d *decoder) invalid(format string, args ...any) error {
	return ErrInvalidNode.
		Wrap(fmt.Errorf(format, args...)).
		With(slog.String("path", d.path()))
}

// items returns the entries of a mapping node in document order.
func items(v any) ([]yaml.MapItem, bool) {
	switch m := v.(type) {
	case yaml.MapSlice:
		return m, true

	case map[string]any:
		out := make([]yaml.MapItem, 0, len(m))
		for _, k := range slices.Sorted(maps.Keys(m)) {
			out = append(out, yaml.MapItem{Key: k, Value: m[k]})
		}

		return out, true

	default:
		return nil, false
	}
}

// fields returns the entries of a mapping node keyed by name, rejecting any
// key not in allowed.
func (d *decoder) fields(v any, what string, allowed ...string) (map[string]any, error) {
	entries, ok := items(v)
	if !ok {
		return nil, d.invalid("%s must be a mapping, got %s", what, describe(v))
	}

	out := make(map[string]any, len(entries))

	for _, e := range entries {
		key, ok := e.Key.(string)
		if !ok || !slices.Contains(allowed, key) {
			return nil, d.invalid("unknown %s key %v (want one of %s)",
				what, e.Key, strings.Join(allowed, ", "))
		}

		out[key] = e.Value
	}

	return out, nil
}

// single returns the only entry of a mapping node.
func (d *decoder) single(v any, what string) (string, any, error) {
	entries, ok := items(v)
	if !ok || len(entries) != 1 {
		return "", nil, d.invalid("%s must be a mapping with exactly one key, got %s",
			what, describe(v))
	}

	key, ok := entries[0].Key.(string)
	if !ok {
		return "", nil, d.invalid("%s key must be a string, got %v", what, entries[0].Key)
	}

	return key, entries[0].Value, nil
}

func (d *decoder) list(v any, what string) ([]any, error) {
	switch l := v.(type) {
	case nil:
		return nil, nil

	case []any:
		return l, nil

	default:
		return nil, d.invalid("%s must be a sequence, got %s", what, describe(v))
	}
}

func (d *decoder) str(v any, what string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", d.invalid("%s must be a string, got %s", what, describe(v))
	}

	return s, nil
}

func (d *decoder) block(v any, seg string) (*surface.Block, []string, error) {
	if err := d.enter(seg); err != nil {
		return nil, nil, err
	}
	defer d.leave()

	f, err := d.fields(v, "block",
		"traces", "kind", "shape", "bindings", "values", "pairs")
	if err != nil {
		return nil, nil, err
	}

	blk := &surface.Block{}

	if s, ok := f["kind"]; ok {
		if blk.Kind, err = d.composition(s); err != nil {
			return nil, nil, err
		}
	}

	if s, ok := f["shape"]; ok {
		if blk.Shape, err = d.shape(s); err != nil {
			return nil, nil, err
		}
	}

	var traces []string

	ts, err := d.list(f["traces"], "traces")
	if err != nil {
		return nil, nil, err
	}

	for _, t := range ts {
		name, err := d.str(t, "trace")
		if err != nil {
			return nil, nil, err
		}

		traces = append(traces, name)
	}

	bs, err := d.list(f["bindings"], "bindings")
	if err != nil {
		return nil, nil, err
	}

	for i, b := range bs {
		bind, err := d.binding(b, "bindings["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, nil, err
		}

		blk.Bindings = append(blk.Bindings, bind)
	}

	vs, err := d.list(f["values"], "values")
	if err != nil {
		return nil, nil, err
	}

	for i, v := range vs {
		e, err := d.expr(v, "values["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, nil, err
		}

		blk.Values = append(blk.Values, e)
	}

	ps, err := d.list(f["pairs"], "pairs")
	if err != nil {
		return nil, nil, err
	}

	for i, p := range ps {
		pair, err := d.pair(p, "pairs["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, nil, err
		}

		blk.Pairs = append(blk.Pairs, pair)
	}

	if len(blk.Pairs) > 0 {
		if _, ok := f["shape"]; !ok {
			blk.Shape = ast.ShapeMap
		}
	}

	return blk, traces, nil
}

func (d *decoder) composition(v any) (ast.Composition, error) {
	s, err := d.str(v, "kind")
	if err != nil {
		return 0, err
	}

	for _, c := range []ast.Composition{ast.Sequential, ast.Simultaneous, ast.Parallel} {
		if c.String() == s {
			return c, nil
		}
	}

	return 0, d.invalid("unknown block kind %q", s)
}

func (d *decoder) shape(v any) (ast.Shape, error) {
	s, err := d.str(v, "shape")
	if err != nil {
		return 0, err
	}

	for _, sh := range []ast.Shape{ast.ShapeTuple, ast.ShapeList, ast.ShapeSet, ast.ShapeMap} {
		if sh.String() == s {
			return sh, nil
		}
	}

	return 0, d.invalid("unknown block shape %q", s)
}

func (d *decoder) pair(v any, seg string) (*surface.Pair, error) {
	if err := d.enter(seg); err != nil {
		return nil, err
	}
	defer d.leave()

	f, err := d.fields(v, "pair", "key", "value")
	if err != nil {
		return nil, err
	}

	key, err := d.expr(f["key"], "key")
	if err != nil {
		return nil, err
	}

	value, err := d.expr(f["value"], "value")
	if err != nil {
		return nil, err
	}

	return d.b.Pair(key, value), nil
}

func (d *decoder) binding(v any, seg string) (*surface.Binding, error) {
	if err := d.enter(seg); err != nil {
		return nil, err
	}
	defer d.leave()

	f, err := d.fields(v, "binding", "bind", "pattern", "args", "mask", "body")
	if err != nil {
		return nil, err
	}

	var target *ast.Pattern

	name, named := f["bind"]
	pat, patterned := f["pattern"]

	switch {
	case named && patterned:
		return nil, d.invalid("binding has both bind and pattern")

	case named:
		s, err := d.str(name, "bind")
		if err != nil {
			return nil, err
		}

		target = ast.Bind(s)

	case patterned:
		if target, err = d.pattern(pat, "pattern"); err != nil {
			return nil, err
		}

	default:
		return nil, d.invalid("binding needs bind or pattern")
	}

	var args *ast.Pattern
	if a, ok := f["args"]; ok {
		if args, err = d.pattern(a, "args"); err != nil {
			return nil, err
		}
	}

	mask := ast.ClosedMask()
	if m, ok := f["mask"]; ok {
		if mask, err = d.mask(m); err != nil {
			return nil, err
		}
	}

	b, ok := f["body"]
	if !ok {
		return nil, d.invalid("binding needs a body")
	}

	body, err := d.expr(b, "body")
	if err != nil {
		return nil, err
	}

	return d.b.Binding(mask, target, args, body), nil
}

func (d *decoder) mask(v any) (ast.Mask, error) {
	if s, ok := v.(string); ok {
		switch s {
		case ast.Closed.String():
			return ast.ClosedMask(), nil

		case ast.Exposed.String():
			return ast.ExposedMask(), nil

		case ast.Open.String():
			return ast.OpenMask(), nil

		default:
			return ast.Mask{}, d.invalid("unknown mask %q", s)
		}
	}

	f, err := d.fields(v, "mask", ast.Exposing.String())
	if err != nil {
		return ast.Mask{}, err
	}

	p, ok := f[ast.Exposing.String()]
	if !ok {
		return ast.Mask{}, d.invalid("mask mapping needs %s", ast.Exposing)
	}

	sel, err := d.pattern(p, "mask")
	if err != nil {
		return ast.Mask{}, err
	}

	return ast.ExposingMask(sel), nil
}

func (d *decoder) expr(v any, seg string) (*surface.Expr, error) {
	if err := d.enter(seg); err != nil {
		return nil, err
	}
	defer d.leave()

	if v == nil {
		return nil, d.invalid("missing expression")
	}

	if l, ok, err := d.number(v); ok || err != nil {
		return d.b.Literal(l), err
	}

	if s, ok := v.(string); ok {
		return d.b.Ref(s), nil
	}

	key, val, err := d.single(v, "expression")
	if err != nil {
		return nil, err
	}

	switch key {
	case "int", "float":
		l, ok, err := d.number(val)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, d.invalid("%s must be a number, got %s", key, describe(val))
		}

		return d.b.Literal(l), nil

	case "str", "raw":
		s, err := d.str(val, key)
		if err != nil {
			return nil, err
		}

		if key == "raw" {
			return d.b.Raw(s), nil
		}

		return d.b.Str(s), nil

	case "ref":
		s, err := d.str(val, key)
		if err != nil {
			return nil, err
		}

		return d.b.Ref(s), nil

	case "anon":
		b, err := d.anon(val)
		if err != nil {
			return nil, err
		}

		return d.b.RefTo(b), nil

	case "block":
		blk, traces, err := d.block(val, key)
		if err != nil {
			return nil, err
		}

		return d.b.Gate(blk, traces...), nil

	case "apply":
		f, err := d.fields(val, key, "func", "arg")
		if err != nil {
			return nil, err
		}

		fn, err := d.expr(f["func"], "func")
		if err != nil {
			return nil, err
		}

		arg, err := d.expr(f["arg"], "arg")
		if err != nil {
			return nil, err
		}

		return d.b.Apply(fn, arg), nil

	case "project":
		f, err := d.fields(val, key, "from", "name")
		if err != nil {
			return nil, err
		}

		from, err := d.expr(f["from"], "from")
		if err != nil {
			return nil, err
		}

		name, err := d.str(f["name"], "name")
		if err != nil {
			return nil, err
		}

		return d.b.Project(from, name), nil

	case "match":
		return d.match(val)

	default:
		return nil, d.invalid("unknown expression kind %q", key)
	}
}

func (d *decoder) match(v any) (*surface.Expr, error) {
	f, err := d.fields(v, "match", "on", "arms")
	if err != nil {
		return nil, err
	}

	on, err := d.expr(f["on"], "on")
	if err != nil {
		return nil, err
	}

	as, err := d.list(f["arms"], "arms")
	if err != nil {
		return nil, err
	}

	arms := make([]*surface.Arm, 0, len(as))

	for i, a := range as {
		arm, err := d.arm(a, "arms["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}

		arms = append(arms, arm)
	}

	return d.b.Match(on, arms...), nil
}

func (d *decoder) arm(v any, seg string) (*surface.Arm, error) {
	if err := d.enter(seg); err != nil {
		return nil, err
	}
	defer d.leave()

	f, err := d.fields(v, "arm", "pattern", "body")
	if err != nil {
		return nil, err
	}

	p, err := d.pattern(f["pattern"], "pattern")
	if err != nil {
		return nil, err
	}

	body, err := d.expr(f["body"], "body")
	if err != nil {
		return nil, err
	}

	return d.b.Arm(p, body), nil
}

func (d *decoder) anon(v any) (ast.Binder, error) {
	f, err := d.fields(v, "anon", "name", "suffix")
	if err != nil {
		return ast.Binder{}, err
	}

	name, err := d.str(f["name"], "name")
	if err != nil {
		return ast.Binder{}, err
	}

	l, ok, err := d.number(f["suffix"])
	if err != nil {
		return ast.Binder{}, err
	}

	if !ok || l.Kind != ast.Int || l.Int > math.MaxInt32 {
		return ast.Binder{}, d.invalid("anon suffix must be a small integer")
	}

	return ast.Anon(name, int(l.Int)), nil
}

// number converts a numeric scalar to a literal. ok is false when v is not a
// number.
func (d *decoder) number(v any) (ast.Literal, bool, error) {
	switch n := v.(type) {
	case uint64:
		return ast.IntLit(n), true, nil

	case uint:
		return ast.IntLit(uint64(n)), true, nil

	case int:
		return d.signed(int64(n))

	case int64:
		return d.signed(n)

	case float64:
		return ast.FloatLit(n), true, nil

	default:
		return ast.Literal{}, false, nil
	}
}

func (d *decoder) signed(n int64) (ast.Literal, bool, error) {
	if n < 0 {
		return ast.Literal{}, true, d.invalid("integer literal %d is negative", n)
	}

	return ast.IntLit(uint64(n)), true, nil
}

func (d *decoder) pattern(v any, seg string) (*ast.Pattern, error) {
	if err := d.enter(seg); err != nil {
		return nil, err
	}
	defer d.leave()

	if s, ok := v.(string); ok {
		switch {
		case s == ast.Wildcard:
			return ast.Wild(), nil

		case strings.HasPrefix(s, RestPrefix):
			return ast.Rest(strings.TrimPrefix(s, RestPrefix)), nil

		case s == "":
			return nil, d.invalid("empty pattern name")

		default:
			return ast.Bind(s), nil
		}
	}

	key, val, err := d.single(v, "pattern")
	if err != nil {
		return nil, err
	}

	switch key {
	case "bind":
		s, err := d.str(val, key)
		if err != nil {
			return nil, err
		}

		return ast.Bind(s), nil

	case "anon":
		b, err := d.anon(val)
		if err != nil {
			return nil, err
		}

		return ast.BindTo(b), nil

	case "rest":
		if val == nil {
			return ast.Rest(""), nil
		}

		s, err := d.str(val, key)
		if err != nil {
			return nil, err
		}

		return ast.Rest(s), nil

	case "lit":
		l, err := d.literal(val)
		if err != nil {
			return nil, err
		}

		return ast.Lit(l), nil

	case "list", "tuple":
		elems, err := d.patterns(val, key)
		if err != nil {
			return nil, err
		}

		if key == "list" {
			return ast.List(elems...), nil
		}

		return ast.Tuple(elems...), nil

	case "append":
		return d.appendPattern(val)

	case "map":
		return d.mapPattern(val)

	case "expose":
		return d.expose(val)

	case "alias":
		f, err := d.fields(val, key, "as", "of")
		if err != nil {
			return nil, err
		}

		as, err := d.pattern(f["as"], "as")
		if err != nil {
			return nil, err
		}

		of, err := d.pattern(f["of"], "of")
		if err != nil {
			return nil, err
		}

		return ast.Alias(as, of), nil

	default:
		return nil, d.invalid("unknown pattern kind %q", key)
	}
}

func (d *decoder) patterns(v any, what string) ([]*ast.Pattern, error) {
	l, err := d.list(v, what)
	if err != nil || len(l) == 0 {
		return nil, err
	}

	out := make([]*ast.Pattern, 0, len(l))

	for i, e := range l {
		p, err := d.pattern(e, what+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, nil
}

func (d *decoder) appendPattern(v any) (*ast.Pattern, error) {
	f, err := d.fields(v, "append", "head", "rest", "tail")
	if err != nil {
		return nil, err
	}

	head, err := d.patterns(f["head"], "head")
	if err != nil {
		return nil, err
	}

	rest := ast.Rest("")
	if r, ok := f["rest"]; ok {
		if rest, err = d.pattern(r, "rest"); err != nil {
			return nil, err
		}
	}

	tail, err := d.patterns(f["tail"], "tail")
	if err != nil {
		return nil, err
	}

	return ast.Append(head, rest, tail), nil
}

func (d *decoder) mapPattern(v any) (*ast.Pattern, error) {
	entries, ok := items(v)
	if !ok {
		return nil, d.invalid("map pattern must be a mapping, got %s", describe(v))
	}

	out := make([]ast.Entry, 0, len(entries))

	for _, e := range entries {
		key, err := d.literal(e.Key)
		if err != nil {
			return nil, err
		}

		p, err := d.pattern(e.Value, key.String())
		if err != nil {
			return nil, err
		}

		out = append(out, ast.Entry{Key: key, Value: p})
	}

	return ast.Map(out...), nil
}

func (d *decoder) expose(v any) (*ast.Pattern, error) {
	if s, ok := v.(string); ok && s == RestPrefix {
		return ast.ExposeAll(), nil
	}

	l, err := d.list(v, "expose")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(l))

	for _, n := range l {
		s, err := d.str(n, "exposed name")
		if err != nil {
			return nil, err
		}

		names = append(names, s)
	}

	return ast.Expose(names...), nil
}

// literal converts a scalar to a literal. Strings become string literals.
func (d *decoder) literal(v any) (ast.Literal, error) {
	if s, ok := v.(string); ok {
		return ast.StrLit(s), nil
	}

	l, ok, err := d.number(v)
	if err != nil {
		return ast.Literal{}, err
	}

	if !ok {
		return ast.Literal{}, d.invalid("literal must be a number or string, got %s", describe(v))
	}

	return l, nil
}

// describe names the kind of a decoded node for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"

	case bool:
		return "boolean"

	case string:
		return "string"

	case []any:
		return "sequence"

	case yaml.MapSlice, map[string]any:
		return "mapping"

	default:
		return fmt.Sprintf("%T", v)
	}
}
