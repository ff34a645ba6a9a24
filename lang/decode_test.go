package lang

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ardnew/nana/lang/ast"
	"github.com/ardnew/nana/lang/canon"
	"github.com/ardnew/nana/lang/flatten"
	"github.com/ardnew/nana/lang/surface"
)

func outline(t *testing.T, p *surface.Program) string {
	t.Helper()

	var sb strings.Builder
	if err := flatten.Program(p).Print(&sb, 2); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	return sb.String()
}

func TestDecode(t *testing.T) {
	b := surface.NewBuilder()

	tests := []struct {
		name string
		doc  string
		want *surface.Program
	}{
		{
			name: "empty document",
			doc:  ``,
			want: b.Program(&surface.Block{}),
		},
		{
			name: "bindings and values",
			doc: `
bindings:
  - bind: x
    body: 1
  - bind: y
    mask: exposed
    body: x
values:
  - {str: hi}
  - 2.5
`,
			want: b.Program(b.Seq(
				b.Bind("x", b.Int(1)),
				b.Expose("y", b.Ref("x")),
			).Yield(b.Str("hi"), b.Float(2.5))),
		},
		{
			name: "traces functions and masks",
			doc: `
traces: [self]
kind: simultaneous
bindings:
  - bind: f
    args: {tuple: [a, _]}
    body: {apply: {func: a, arg: {raw: r}}}
  - pattern: {list: [h, ..t]}
    body: {ref: input}
  - bind: m
    mask: {exposing: {expose: [p, q]}}
    body: {block: {bindings: [{bind: p, body: 1}]}}
  - bind: o
    mask: open
    body: {block: {traces: [inner], values: [{project: {from: self, name: f}}]}}
`,
			want: b.Program(b.Sim(
				b.Func("f", ast.Tuple(ast.Bind("a"), ast.Wild()), b.Apply(b.Ref("a"), b.Raw("r"))),
				b.Destructure(ast.List(ast.Bind("h"), ast.Rest("t")), b.Ref("input")),
				b.Exposing("m", ast.Expose("p", "q"), b.Nest(b.Seq(b.Bind("p", b.Int(1))))),
				b.Open("o", b.Gate(b.Tuple(b.Project(b.Ref("self"), "f")), "inner")),
			), "self"),
		},
		{
			name: "match arms",
			doc: `
values:
  - match:
      on: v
      arms:
        - pattern: {lit: 0}
          body: {str: zero}
        - pattern: {append: {head: [x], rest: ..more}}
          body: more
        - pattern: {alias: {as: whole, of: {map: {k: v2, 1: _}}}}
          body: whole
        - pattern: {anon: {name: tmp, suffix: 2}}
          body: {anon: {name: tmp, suffix: 2}}
`,
			want: b.Program(b.Seq().Yield(b.Match(
				b.Ref("v"),
				b.Arm(ast.Lit(ast.IntLit(0)), b.Str("zero")),
				b.Arm(ast.Append([]*ast.Pattern{ast.Bind("x")}, ast.Rest("more"), nil), b.Ref("more")),
				b.Arm(ast.Alias(ast.Bind("whole"), ast.Map(
					ast.Entry{Key: ast.StrLit("k"), Value: ast.Bind("v2")},
					ast.Entry{Key: ast.IntLit(1), Value: ast.Wild()},
				)), b.Ref("whole")),
				b.Arm(ast.BindTo(ast.Anon("tmp", 2)), b.RefTo(ast.Anon("tmp", 2))),
			))),
		},
		{
			name: "map shaped block",
			doc: `
bindings: [{bind: k, body: {str: key}}]
pairs: [{key: k, value: 1}]
`,
			want: func() *surface.Program {
				blk := b.Seq(b.Bind("k", b.Str("key")))
				blk.Shape = ast.ShapeMap
				blk.Pairs = []*surface.Pair{b.Pair(b.Ref("k"), b.Int(1))}

				return b.Program(blk)
			}(),
		},
		{
			name: "json document",
			doc:  `{"bindings": [{"bind": "x", "body": 1}], "values": ["x"]}`,
			want: b.Program(b.Seq(b.Bind("x", b.Int(1))).Yield(b.Ref("x"))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(context.Background(), []byte(tt.doc))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode() =\n%s\nwant\n%s", outline(t, got), outline(t, tt.want))
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		opts []Option
		want error
	}{
		{"malformed yaml", `values: [1, 2`, nil, ErrDecode},
		{"missing body", `bindings: [{bind: x}]`, nil, ErrInvalidNode},
		{"bind and pattern", `bindings: [{bind: x, pattern: y, body: 1}]`, nil, ErrInvalidNode},
		{"boolean value", `values: [true]`, nil, ErrInvalidNode},
		{"negative integer", `values: [-1]`, nil, ErrInvalidNode},
		{"unknown kind", `kind: sideways`, nil, ErrInvalidNode},
		{"unknown shape", `shape: cube`, nil, ErrInvalidNode},
		{"unknown block key", `bogus: 1`, nil, ErrInvalidNode},
		{"unknown expression", `values: [{lambda: x}]`, nil, ErrInvalidNode},
		{"two expression keys", `values: [{str: a, raw: b}]`, nil, ErrInvalidNode},
		{"missing argument", `values: [{apply: {func: f}}]`, nil, ErrInvalidNode},
		{"unknown pattern", `bindings: [{pattern: {set: [a]}, body: 1}]`, nil, ErrInvalidNode},
		{"unknown mask", `bindings: [{bind: x, mask: hidden, body: 1}]`, nil, ErrInvalidNode},
		{"root not a mapping", `[1, 2]`, nil, ErrInvalidNode},
		{
			"too deep",
			`values: [{block: {values: [{block: {values: [1]}}]}}]`,
			[]Option{WithMaxDepth(3)},
			ErrMaxDepthExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(context.Background(), []byte(tt.doc), tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecode_DepthChain(t *testing.T) {
	doc := `values: [{block: {values: [{block: {values: [1]}}]}}]`

	_, err := Decode(context.Background(), []byte(doc), WithMaxDepth(4))

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Decode() error = %v, want *Error", err)
	}

	var chain string
	for _, a := range e.Attrs() {
		if a.Key == "chain" {
			chain = a.Value.String()
		}
	}

	want := "root → values[0] → block → values[0] → block"
	if chain != want {
		t.Errorf("chain = %q, want %q", chain, want)
	}
}

func TestDecode_Unlimited(t *testing.T) {
	doc := strings.Repeat(`{block: {values: [`, 40) + `1` + strings.Repeat(`]}}`, 40)

	prog, err := Decode(context.Background(), []byte(`values: [`+doc+`]`), WithMaxDepth(0))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	// every nested single-value tuple collapses
	values := flatten.Program(prog).Body.Block.Values
	if len(values) != 1 || values[0].Kind != canon.ExprLiteral {
		t.Errorf("flattened values = %v, want one literal", values)
	}
}
