package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/nana/lang/ast"
	"github.com/ardnew/nana/lang/canon"
	"github.com/ardnew/nana/lang/flatten"
	"github.com/ardnew/nana/lang/surface"
	"github.com/ardnew/nana/log"
)

func resolveProgram(p *surface.Program, opts ...Option) *Result {
	return Resolve(context.Background(), flatten.Program(p), opts...)
}

func kinds(res *Result) []Kind {
	var out []Kind
	for _, d := range res.Diagnostics {
		out = append(out, d.Kind)
	}

	return out
}

func exposedNames(c *Context) []string {
	var out []string
	for _, e := range c.Exposed {
		out = append(out, e.Name.Key())
	}

	return out
}

func nameKeys(c *Context) []string {
	var out []string
	for _, n := range c.Names {
		out = append(out, n.Binder.Key())
	}

	return out
}

// refs returns the resolution of every reference to name in res, in order.
func refs(res *Result, name string) []Resolution {
	var out []Resolution

	for _, e := range res.References() {
		if e.Kind == canon.ExprRef && e.Ref.Key() == name {
			out = append(out, res.Refs[e])
		}
	}

	return out
}

func TestSequentialNoForwardReference(t *testing.T) {
	b := surface.NewBuilder()

	for n := 2; n <= 5; n++ {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				bindings := make([]*surface.Binding, n)
				for k := range bindings {
					bindings[k] = b.Bind(string(rune('a'+k)), b.Int(uint64(k)))
				}

				target := string(rune('a' + j))
				bindings[i] = b.Bind(string(rune('a'+i)), b.Ref(target))

				res := resolveProgram(b.Program(b.Seq(bindings...)))

				if got := kinds(res); !reflect.DeepEqual(got, []Kind{UnresolvedName}) {
					t.Fatalf("n=%d i=%d j=%d: diagnostics = %v, want [UnresolvedName]", n, i, j, got)
				}

				if res.Diagnostics[0].Name != target {
					t.Errorf("n=%d i=%d j=%d: name = %q, want %q",
						n, i, j, res.Diagnostics[0].Name, target)
				}
			}
		}
	}
}

func TestSequentialVisibility(t *testing.T) {
	b := surface.NewBuilder()

	tests := []struct {
		name  string
		block *surface.Block
		want  []Kind
	}{
		{
			"backward reference",
			b.Seq(b.Bind("a", b.Int(1)), b.Bind("b", b.Ref("a"))),
			nil,
		},
		{
			"self reference",
			b.Seq(b.Bind("a", b.Ref("a"))),
			[]Kind{UnresolvedName},
		},
		{
			"value sees every binding",
			b.Seq(b.Bind("a", b.Int(1)), b.Bind("b", b.Int(2))).Yield(b.Ref("a"), b.Ref("b")),
			nil,
		},
		{
			"pair sees every binding",
			func() *surface.Block {
				blk := b.Seq(b.Bind("k", b.Str("key")))
				blk.Shape = ast.ShapeMap
				blk.Pairs = []*surface.Pair{b.Pair(b.Ref("k"), b.Ref("k"))}

				return blk
			}(),
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolveProgram(b.Program(tt.block))
			if got := kinds(res); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("diagnostics = %v, want %v", res.Diagnostics, tt.want)
			}
		})
	}
}

func TestSimultaneousMutualVisibility(t *testing.T) {
	b := surface.NewBuilder()

	for n := 1; n <= 4; n++ {
		bindings := make([]*surface.Binding, n)
		for k := range bindings {
			// every binding references every binding, itself included
			var body *surface.Expr = b.Ref(string(rune('a' + n - 1)))
			for j := n - 2; j >= 0; j-- {
				body = b.Apply(b.Ref(string(rune('a'+j))), body)
			}

			bindings[k] = b.Bind(string(rune('a'+k)), body)
		}

		res := resolveProgram(b.Program(b.Sim(bindings...)))
		if err := res.Err(); err != nil {
			t.Errorf("n=%d: Err() = %v", n, err)
		}

		if got := len(res.References()); got != n*n {
			t.Errorf("n=%d: resolved %d references, want %d", n, got, n*n)
		}
	}
}

func TestParallelIsolation(t *testing.T) {
	b := surface.NewBuilder()

	t.Run("sibling reference", func(t *testing.T) {
		for n := 2; n <= 4; n++ {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if i == j {
						continue
					}

					bindings := make([]*surface.Binding, n)
					for k := range bindings {
						bindings[k] = b.Bind(string(rune('a'+k)), b.Int(uint64(k)))
					}

					sibling := string(rune('a' + j))
					bindings[i] = b.Bind(string(rune('a'+i)), b.Ref(sibling))

					// an outer binding of the same name must not hide the error
					outer := b.Seq(
						b.Bind(sibling, b.Int(0)),
						b.Bind("p", b.Nest(b.Par(bindings...))),
					)

					res := resolveProgram(b.Program(outer))
					if got := kinds(res); !reflect.DeepEqual(got, []Kind{IllegalSiblingReference}) {
						t.Fatalf("n=%d i=%d j=%d: diagnostics = %v", n, i, j, res.Diagnostics)
					}

					if d := res.Diagnostics[0]; d.Name != sibling {
						t.Errorf("name = %q, want %q", d.Name, sibling)
					}
				}
			}
		}
	})

	t.Run("own name resolves outward", func(t *testing.T) {
		res := resolveProgram(b.Program(b.Seq(
			b.Bind("a", b.Int(1)),
			b.Bind("p", b.Nest(b.Par(b.Bind("a", b.Ref("a"))))),
		)))

		if err := res.Err(); err != nil {
			t.Fatalf("Err() = %v", err)
		}

		got := refs(res, "a")
		if len(got) != 1 || got[0].Kind != Bound || got[0].Depth != 1 {
			t.Errorf("resolution = %+v, want bound one level out", got)
		}
	})

	t.Run("values see every binding", func(t *testing.T) {
		res := resolveProgram(b.Program(
			b.Par(b.Bind("a", b.Int(1)), b.Bind("b", b.Int(2))).Yield(b.Ref("a"), b.Ref("b")),
		))

		if err := res.Err(); err != nil {
			t.Errorf("Err() = %v", err)
		}
	})
}

func diagnosticNames(res *Result) []string {
	var out []string
	for _, d := range res.Diagnostics {
		out = append(out, d.Name)
	}

	slices.Sort(out)

	return out
}

func TestExposingMask(t *testing.T) {
	b := surface.NewBuilder()

	t.Run("exposed members", func(t *testing.T) {
		value := b.Nest(b.Seq(
			b.Expose("a", b.Int(1)),
			b.Expose("b", b.Int(2)),
			b.Expose("c", b.Int(3)),
		))

		res := resolveProgram(b.Program(
			b.Seq(b.Exposing("x", ast.Expose("a", "b"), value)).
				Yield(b.Ref("a"), b.Ref("b"), b.Ref("c")),
		))

		root := res.Context(res.Root)
		if got := exposedNames(root); !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("exposed = %v, want [a b]", got)
		}

		if got := kinds(res); !reflect.DeepEqual(got, []Kind{UnresolvedName}) {
			t.Fatalf("diagnostics = %v, want [UnresolvedName]", res.Diagnostics)
		}

		if d := res.Diagnostics[0]; d.Name != "c" {
			t.Errorf("unresolved = %q, want c", d.Name)
		}

		for _, name := range []string{"a", "b"} {
			got := refs(res, name)
			if len(got) != 1 || got[0].Kind != Bound || got[0].Name.Origin != Imported {
				t.Errorf("%s resolution = %+v, want bound import", name, got)
			}
		}
	})

	t.Run("closed members", func(t *testing.T) {
		value := b.Nest(b.Seq(
			b.Bind("a", b.Int(1)),
			b.Bind("b", b.Int(2)),
			b.Bind("c", b.Int(3)),
		))

		res := resolveProgram(b.Program(
			b.Seq(b.Exposing("x", ast.Expose("a", "b"), value)).
				Yield(b.Ref("a"), b.Ref("b"), b.Ref("c")),
		))

		if got := exposedNames(res.Context(res.Root)); len(got) != 0 {
			t.Errorf("exposed = %v, want none", got)
		}

		want := []Kind{UnresolvedName, UnresolvedName, UnresolvedName, UnresolvedName, UnresolvedName}
		if got := kinds(res); !reflect.DeepEqual(got, want) {
			t.Fatalf("diagnostics = %v, want %v", res.Diagnostics, want)
		}

		if got := diagnosticNames(res); !reflect.DeepEqual(got, []string{"a", "a", "b", "b", "c"}) {
			t.Errorf("unresolved = %v, want each selection and each reference", got)
		}
	})

	t.Run("closed member beside exposed", func(t *testing.T) {
		res := resolveProgram(b.Program(
			b.Seq(b.Exposing("x", ast.Expose("secret"), b.Nest(b.Seq(
				b.Bind("secret", b.Int(1)),
				b.Expose("pub", b.Int(2)),
			)))).Yield(b.Ref("secret")),
		))

		if got := exposedNames(res.Context(res.Root)); len(got) != 0 {
			t.Errorf("exposed = %v, want none", got)
		}

		if got := diagnosticNames(res); !reflect.DeepEqual(got, []string{"secret", "secret"}) {
			t.Errorf("diagnostics = %v, want secret unresolved at the mask and the reference", res.Diagnostics)
		}

		if _, ok := res.Context(res.Root).Lookup("secret"); ok {
			t.Error("closed name imported into the parent")
		}
	})

	t.Run("rename", func(t *testing.T) {
		res := resolveProgram(b.Program(
			b.Seq(b.Exposing(
				"x",
				ast.Map(ast.Entry{Key: ast.StrLit("a"), Value: ast.Bind("alpha")}),
				b.Nest(b.Seq(b.Expose("a", b.Int(1)))),
			)).Yield(b.Ref("alpha")),
		))

		if err := res.Err(); err != nil {
			t.Fatalf("Err() = %v", err)
		}

		ex := res.Context(res.Root).Exposed
		if len(ex) != 1 || ex[0].Name.Key() != "alpha" || ex[0].Member != "a" {
			t.Errorf("exposed = %+v, want alpha renamed from a", ex)
		}
	})

	t.Run("missing member", func(t *testing.T) {
		res := resolveProgram(b.Program(b.Seq(
			b.Exposing("x", ast.Expose("zz"), b.Nest(b.Seq(b.Expose("a", b.Int(1))))),
		)))

		if got := kinds(res); !reflect.DeepEqual(got, []Kind{UnresolvedName}) {
			t.Fatalf("diagnostics = %v, want [UnresolvedName]", res.Diagnostics)
		}

		if d := res.Diagnostics[0]; d.Name != "zz" {
			t.Errorf("name = %q, want zz", d.Name)
		}
	})

	t.Run("later bindings see imports", func(t *testing.T) {
		res := resolveProgram(b.Program(b.Seq(
			b.Bind("before", b.Ref("a")),
			b.Exposing("x", ast.Expose("a"), b.Nest(b.Seq(b.Expose("a", b.Int(1))))),
			b.Bind("after", b.Ref("a")),
		)))

		if got := kinds(res); !reflect.DeepEqual(got, []Kind{UnresolvedName}) {
			t.Errorf("diagnostics = %v, want one unresolved reference before the import", res.Diagnostics)
		}
	})

	t.Run("select all", func(t *testing.T) {
		res := resolveProgram(b.Program(b.Seq(
			b.Exposing("x", ast.ExposeAll(), b.Nest(b.Seq(
				b.Expose("a", b.Int(1)),
				b.Bind("hidden", b.Int(0)),
				b.Expose("b", b.Int(2)),
			))),
		)))

		if got := exposedNames(res.Context(res.Root)); !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("exposed = %v, want [a b]", got)
		}

		if err := res.Err(); err != nil {
			t.Errorf("Err() = %v", err)
		}
	})
}

// permutations returns every ordering of items.
func permutations[T any](items []T) [][]T {
	if len(items) <= 1 {
		return [][]T{slices.Clone(items)}
	}

	var out [][]T

	for i := range items {
		rest := slices.Concat(items[:i:i], items[i+1:])
		for _, p := range permutations(rest) {
			out = append(out, append([]T{items[i]}, p...))
		}
	}

	return out
}

func TestSimultaneousImportOrder(t *testing.T) {
	b := surface.NewBuilder()

	lib := func() *surface.Binding {
		return b.Bind("lib", b.Nest(b.Seq(b.Expose("s", b.Nest(b.Seq(b.Expose("f", b.Int(1))))))))
	}

	for _, tt := range []struct {
		name  string
		outer bool
		names []string
	}{
		{"sibling value", false, []string{"f", "lib", "m", "s", "x"}},
		{"enclosing value", true, []string{"f", "m", "s", "x"}},
	} {
		siblings := []*surface.Binding{
			b.Exposing("x", ast.Expose("s"), b.Ref("lib")),
			b.Open("m", b.Ref("s")),
		}
		if !tt.outer {
			siblings = append(siblings, lib())
		}

		for _, order := range permutations(siblings) {
			block := b.Sim(order...).Yield(b.Ref("f"))

			prog := b.Program(block)
			if tt.outer {
				prog = b.Program(b.Seq(lib(), b.Bind("p", b.Nest(block))))
			}

			res := resolveProgram(prog)

			if err := res.Err(); err != nil {
				t.Errorf("%s: Err() = %v", tt.name, err)

				continue
			}

			var sim *Context
			for _, c := range res.Contexts {
				if c.Kind == BlockContext && c.Composition == ast.Simultaneous {
					sim = c
				}
			}

			if sim == nil {
				t.Fatalf("%s: no simultaneous context", tt.name)
			}

			if got := slices.Sorted(slices.Values(nameKeys(sim))); !reflect.DeepEqual(got, tt.names) {
				t.Errorf("%s: names = %v, want %v", tt.name, got, tt.names)
			}

			if got := slices.Sorted(slices.Values(exposedNames(sim))); !reflect.DeepEqual(got, []string{"f", "s"}) {
				t.Errorf("%s: exposed = %v, want [f s]", tt.name, got)
			}

			if got := refs(res, "f"); len(got) != 1 || got[0].Kind != Bound || got[0].Name.Origin != Imported {
				t.Errorf("%s: f resolution = %+v, want bound import", tt.name, got)
			}
		}
	}
}

func TestParallelImportOrder(t *testing.T) {
	b := surface.NewBuilder()

	for _, reverse := range []bool{false, true} {
		siblings := []*surface.Binding{
			b.Exposing("x", ast.Expose("s"), b.Ref("lib")),
			b.Open("m", b.Ref("s")),
		}

		if reverse {
			slices.Reverse(siblings)
		}

		res := resolveProgram(b.Program(b.Seq(
			b.Bind("lib", b.Nest(b.Seq(b.Expose("s", b.Int(1))))),
			b.Bind("p", b.Nest(b.Par(siblings...))),
		)))

		if got := kinds(res); !reflect.DeepEqual(got, []Kind{IllegalSiblingReference}) {
			t.Errorf("reverse=%v: diagnostics = %v, want [IllegalSiblingReference]", reverse, res.Diagnostics)

			continue
		}

		if d := res.Diagnostics[0]; d.Name != "s" {
			t.Errorf("reverse=%v: name = %q, want s", reverse, d.Name)
		}
	}
}

func TestOpenReexportsOneLevel(t *testing.T) {
	b := surface.NewBuilder()

	inner := b.Nest(b.Seq(b.Expose("x", b.Int(1))))
	value := b.Nest(b.Seq(b.Expose("n", inner)))

	res := resolveProgram(b.Program(
		b.Seq(b.Open("m", value)).Yield(
			b.Ref("n"),
			b.Project(b.Ref("n"), "x"),
			b.Project(b.Project(b.Ref("m"), "n"), "x"),
			b.Ref("x"),
			b.Project(b.Ref("m"), "x"),
		),
	))

	root := res.Context(res.Root)
	if got := exposedNames(root); !reflect.DeepEqual(got, []string{"n"}) {
		t.Errorf("exposed = %v, want [n]", got)
	}

	want := []Kind{UnresolvedName, UnresolvedName}
	if got := kinds(res); !reflect.DeepEqual(got, want) {
		t.Fatalf("diagnostics = %v, want %v", res.Diagnostics, want)
	}

	if res.Diagnostics[0].Name != "x" || res.Diagnostics[1].Name != "x" {
		t.Errorf("diagnostics = %v, want both for x", res.Diagnostics)
	}

	var bound int
	for _, e := range res.References() {
		if e.Kind == canon.ExprProject && res.Refs[e].Kind == Bound {
			bound++
		}
	}

	if bound != 3 {
		t.Errorf("bound projections = %d, want 3", bound)
	}
}

func TestOpenReference(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(b.Sim(
		b.Open("m", b.Ref("lib")),
		b.Bind("lib", b.Nest(b.Seq(b.Expose("f", b.Int(1)), b.Bind("hidden", b.Int(2))))),
	).Yield(b.Ref("f"), b.Ref("hidden"))))

	if got := exposedNames(res.Context(res.Root)); !reflect.DeepEqual(got, []string{"f"}) {
		t.Errorf("exposed = %v, want [f]", got)
	}

	if got := kinds(res); !reflect.DeepEqual(got, []Kind{UnresolvedName}) ||
		res.Diagnostics[0].Name != "hidden" {
		t.Errorf("diagnostics = %v, want hidden unresolved", res.Diagnostics)
	}
}

func TestRestMarker(t *testing.T) {
	b := surface.NewBuilder()

	t.Run("two rests", func(t *testing.T) {
		res := resolveProgram(b.Program(b.Seq(b.Destructure(
			ast.List(ast.Bind("x"), ast.Rest(""), ast.Bind("y"), ast.Rest("")),
			b.Nest(b.List(b.Int(1), b.Int(2))),
		))))

		if got := kinds(res); !reflect.DeepEqual(got, []Kind{MalformedPattern}) {
			t.Errorf("diagnostics = %v, want [MalformedPattern]", res.Diagnostics)
		}
	})

	t.Run("one rest", func(t *testing.T) {
		res := resolveProgram(b.Program(b.Seq(b.Destructure(
			ast.List(ast.Bind("x"), ast.Rest("rest"), ast.Bind("y")),
			b.Nest(b.List(b.Int(1), b.Int(2))),
		)).Yield(b.Ref("x"), b.Ref("rest"), b.Ref("y"))))

		if err := res.Err(); err != nil {
			t.Fatalf("Err() = %v", err)
		}

		if got := nameKeys(res.Context(res.Root)); !reflect.DeepEqual(got, []string{"x", "rest", "y"}) {
			t.Errorf("names = %v, want [x rest y]", got)
		}
	})

	t.Run("misplaced rest", func(t *testing.T) {
		res := resolveProgram(b.Program(b.Seq(
			b.Func("f", ast.Tuple(ast.Bind("a"), ast.Rest("more")), b.Ref("a")),
		)))

		if got := kinds(res); !reflect.DeepEqual(got, []Kind{MalformedPattern}) {
			t.Errorf("diagnostics = %v, want [MalformedPattern]", res.Diagnostics)
		}
	})
}

func TestDuplicateBinding(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(b.Par(
		b.Bind("a", b.Int(1)),
		b.Bind("a", b.Int(2)),
		b.Bind("c", b.Nest(b.Seq(b.Bind("d", b.Int(3))).Yield(b.Ref("d"), b.Ref("e")))),
	)))

	want := []Kind{DuplicateBinding, UnresolvedName}
	if got := kinds(res); !reflect.DeepEqual(got, want) {
		t.Fatalf("diagnostics = %v, want %v", res.Diagnostics, want)
	}

	d := res.Diagnostics[0]
	wantSites := []Site{{Context: res.Root, Binding: 0}, {Context: res.Root, Binding: 1}}

	if d.Name != "a" || !reflect.DeepEqual(d.Sites, wantSites) {
		t.Errorf("duplicate = %+v, want a at %v", d, wantSites)
	}

	if got := refs(res, "d"); len(got) != 1 || got[0].Kind != Bound {
		t.Errorf("d resolution = %+v, want bound", got)
	}

	for _, c := range res.Contexts {
		if c.State != Resolved {
			t.Errorf("context %d state = %v, want %v", c.ID, c.State, Resolved)
		}
	}
}

func TestDuplicateWithinPattern(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(b.Seq(
		b.Destructure(ast.Tuple(ast.Bind("a"), ast.Bind("a")), b.Ref("pair")),
	)))

	if got := res.Count(DuplicateBinding); got != 1 {
		t.Errorf("duplicates = %d, want 1", got)
	}
}

func TestIllegalFunctionBinder(t *testing.T) {
	b := surface.NewBuilder()

	tests := []struct {
		name   string
		target *ast.Pattern
		want   []Kind
	}{
		{"identity", ast.Bind("f"), nil},
		{"wildcard", ast.Wild(), []Kind{IllegalFunctionBinder}},
		{"anonymous", ast.BindTo(ast.Anon("f", 1)), []Kind{IllegalFunctionBinder}},
		{"destructuring", ast.Tuple(ast.Bind("f"), ast.Bind("g")), []Kind{IllegalFunctionBinder}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolveProgram(b.Program(b.Seq(
				b.Binding(ast.ClosedMask(), tt.target, ast.Bind("x"), b.Ref("x")),
			)))

			if got := kinds(res); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("diagnostics = %v, want %v", res.Diagnostics, tt.want)
			}
		})
	}
}

func TestNearestScopeWins(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(b.Seq(
		b.Bind("x", b.Int(1)),
		b.Bind("y", b.Nest(b.Seq(b.Bind("x", b.Int(2))).Yield(b.Ref("x")))),
	)))

	if err := res.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	got := refs(res, "x")
	if len(got) != 1 || got[0].Depth != 0 || got[0].Context == res.Root {
		t.Errorf("x resolution = %+v, want the inner binding", got)
	}
}

func TestTraceProjection(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(
		b.Seq(b.Expose("x", b.Int(1)), b.Bind("y", b.Int(2))).
			Yield(b.Project(b.Ref("t"), "x"), b.Project(b.Ref("t"), "y")),
		"t",
	))

	if c := res.Context(res.Root); c.Kind != GateContext {
		t.Fatalf("root kind = %v, want %v", c.Kind, GateContext)
	}

	if got := exposedNames(res.Context(res.Root)); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("gate exposed = %v, want [x]", got)
	}

	if got := kinds(res); !reflect.DeepEqual(got, []Kind{UnresolvedName}) {
		t.Fatalf("diagnostics = %v, want [UnresolvedName]", res.Diagnostics)
	}

	if d := res.Diagnostics[0]; d.Name != "y" || !strings.Contains(d.Detail, "not exposed") {
		t.Errorf("diagnostic = %v, want y not exposed", d)
	}
}

func TestGateChainContexts(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(b.Seq(
		b.Bind("g", b.Gate(b.Seq(b.Expose("v", b.Int(1))).Yield(b.Ref("a"), b.Ref("b")), "a", "b")),
	).Yield(b.Project(b.Ref("g"), "v"))))

	if err := res.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	var gates int
	for _, c := range res.Contexts {
		if c.Kind == GateContext {
			gates++

			if got := exposedNames(c); !reflect.DeepEqual(got, []string{"v"}) {
				t.Errorf("gate %s exposed = %v, want [v]", c.Path, got)
			}
		}
	}

	if gates != 2 {
		t.Errorf("gate contexts = %d, want 2", gates)
	}
}

func TestPredeclared(t *testing.T) {
	b := surface.NewBuilder()
	prog := func() *surface.Program {
		return b.Program(b.Seq().Yield(b.Apply(b.Ref("+"), b.Nest(b.Tuple(b.Int(1), b.Int(2))))))
	}

	if err := resolveProgram(prog(), WithPredeclared("+")).Err(); err != nil {
		t.Errorf("with predeclared: Err() = %v", err)
	}

	if got := kinds(resolveProgram(prog())); !reflect.DeepEqual(got, []Kind{UnresolvedName}) {
		t.Errorf("without predeclared: diagnostics = %v", got)
	}
}

func TestSuggestions(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(b.Seq(
		b.Bind("count", b.Int(1)),
		b.Bind("total", b.Int(2)),
	).Yield(b.Ref("cnt"))))

	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}

	d := res.Diagnostics[0]
	if !slices.Contains(d.Suggestions, "count") {
		t.Errorf("suggestions = %v, want count", d.Suggestions)
	}

	if !strings.Contains(d.Error(), "did you mean count") {
		t.Errorf("Error() = %q", d.Error())
	}
}

func TestFunctionsAndMatch(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(b.Seq(
		b.Func("f", ast.Tuple(ast.Bind("a"), ast.Bind("b")), b.Apply(b.Ref("a"), b.Ref("b"))),
		b.Bind("r", b.Match(
			b.Apply(b.Ref("f"), b.Int(1)),
			b.Arm(ast.List(ast.Bind("h"), ast.Rest("tl")), b.Apply(b.Ref("h"), b.Ref("tl"))),
			b.Arm(ast.Wild(), b.Ref("h")),
		)),
	).Yield(b.Ref("a"))))

	want := []Kind{UnresolvedName, UnresolvedName}
	if got := kinds(res); !reflect.DeepEqual(got, want) {
		t.Fatalf("diagnostics = %v, want %v", res.Diagnostics, want)
	}

	if res.Diagnostics[0].Name != "h" || res.Diagnostics[1].Name != "a" {
		t.Errorf("diagnostics = %v, want h then a", res.Diagnostics)
	}

	var params, arms int
	for _, c := range res.Contexts {
		switch c.Kind {
		case ParamsContext:
			params++
		case ArmContext:
			arms++
		}
	}

	if params != 1 || arms != 2 {
		t.Errorf("params = %d, arms = %d; want 1, 2", params, arms)
	}
}

func TestDynamicProjection(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(b.Seq(
		b.Func("f", ast.Bind("x"), b.Ref("x")),
	).Yield(b.Project(b.Apply(b.Ref("f"), b.Int(1)), "field"), b.Project(b.Int(3), "field"))))

	if got := kinds(res); !reflect.DeepEqual(got, []Kind{UnresolvedName}) {
		t.Fatalf("diagnostics = %v, want only the literal projection", res.Diagnostics)
	}

	var dynamic int
	for _, e := range res.References() {
		if res.Refs[e].Kind == Dynamic {
			dynamic++
		}
	}

	if dynamic != 1 {
		t.Errorf("dynamic projections = %d, want 1", dynamic)
	}
}

func TestErrorsDoNotStopSiblings(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(b.Seq(
		b.Bind("a", b.Ref("missing1")),
		b.Bind("b", b.Nest(b.Seq(b.Bind("c", b.Ref("missing2"))).Yield(b.Ref("c")))),
	)))

	if got := res.Count(UnresolvedName); got != 2 {
		t.Errorf("unresolved = %d, want 2", got)
	}

	if got := refs(res, "c"); len(got) != 1 || got[0].Kind != Bound {
		t.Errorf("c resolution = %+v, want bound", got)
	}

	var diag *Diagnostic
	if !errors.As(res.Err(), &diag) {
		t.Errorf("Err() = %v, want a *Diagnostic", res.Err())
	}
}

func TestImportCollision(t *testing.T) {
	b := surface.NewBuilder()

	res := resolveProgram(b.Program(b.Seq(
		b.Bind("a", b.Int(0)),
		b.Exposing("x", ast.Expose("a"), b.Nest(b.Seq(b.Expose("a", b.Int(1))))),
	)))

	if got := kinds(res); !reflect.DeepEqual(got, []Kind{DuplicateBinding}) {
		t.Errorf("diagnostics = %v, want [DuplicateBinding]", res.Diagnostics)
	}
}

func TestResultOutput(t *testing.T) {
	b := surface.NewBuilder()

	var logs bytes.Buffer

	res := resolveProgram(
		b.Program(b.Seq(b.Expose("x", b.Int(1))).Yield(b.Ref("y")), "t"),
		WithLogger(log.Make(&logs, log.WithLevel(log.LevelTrace), log.WithPretty(false))),
	)

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, key := range []string{"root", "contexts", "references", "diagnostics"} {
		if _, ok := m[key]; !ok {
			t.Errorf("output is missing %q", key)
		}
	}

	var sb strings.Builder
	if err := res.Print(&sb, 2); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	if !strings.Contains(sb.String(), "exposes x") {
		t.Errorf("Print() =\n%s\nwant exposes x", sb.String())
	}

	if !strings.Contains(logs.String(), "cross-referenced") {
		t.Errorf("trace log is missing the cross-reference phase:\n%s", logs.String())
	}
}
