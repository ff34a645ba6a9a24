package lang

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ardnew/nana/lang/resolve"
	"github.com/ardnew/nana/log"
)

const libraryDoc = `
kind: sequential
traces: [self]
bindings:
  - bind: n
    body: 1
  - bind: lib
    mask: exposed
    body:
      block:
        bindings:
          - {bind: inc, args: x, mask: exposed, body: {apply: {func: "+", arg: x}}}
  - pattern: {list: [head, ..tail]}
    body: input
values:
  - {project: {from: lib, name: inc}}
  - {project: {from: self, name: lib}}
`

func TestCompile(t *testing.T) {
	u, err := Compile(context.Background(), []byte(libraryDoc),
		WithPredeclared("+", "input"), WithSource("library.yaml"))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if u.Source != "library.yaml" {
		t.Errorf("Source = %q, want library.yaml", u.Source)
	}

	if u.Surface == nil || u.Canon == nil || u.Result == nil {
		t.Fatalf("Compile() returned an incomplete unit: %+v", u)
	}

	if got := len(u.Diagnostics()); got != 0 {
		t.Errorf("diagnostics = %v, want none", u.Diagnostics())
	}

	root := u.Result.Context(u.Result.Root)
	if root.Kind != resolve.GateContext {
		t.Errorf("root kind = %v, want gate", root.Kind)
	}
}

func TestCompile_Diagnostics(t *testing.T) {
	u, err := Compile(context.Background(), []byte(libraryDoc))
	if !errors.Is(err, ErrResolve) {
		t.Fatalf("Compile() error = %v, want ErrResolve", err)
	}

	if u == nil {
		t.Fatal("Compile() returned no unit alongside resolution errors")
	}

	if got := len(u.Diagnostics()); got != 2 {
		t.Errorf("diagnostics = %v, want 2", u.Diagnostics())
	}

	var d *resolve.Diagnostic
	if !errors.As(err, &d) || d.Kind != resolve.UnresolvedName {
		t.Errorf("errors.As() = %v, want an unresolved name", d)
	}
}

func TestCompile_ImportChain(t *testing.T) {
	for _, n := range []int{1, 2, 8} {
		u, err := Compile(context.Background(), []byte(chainDoc(n)))
		if err != nil {
			t.Errorf("chain of %d: Compile() error = %v", n, err)

			continue
		}

		root := u.Result.Context(u.Result.Root)
		if got := len(root.Exposed); got != n {
			t.Errorf("chain of %d: exposed %d names, want %d", n, got, n)
		}
	}
}

func TestCompile_DecodeFailure(t *testing.T) {
	u, err := Compile(context.Background(), []byte(`values: [true]`))
	if !errors.Is(err, ErrInvalidNode) {
		t.Errorf("Compile() error = %v, want ErrInvalidNode", err)
	}

	if u != nil {
		t.Errorf("Compile() unit = %v, want nil", u)
	}

	if got := u.Diagnostics(); got != nil {
		t.Errorf("nil unit diagnostics = %v, want nil", got)
	}
}

func TestCompileReader(t *testing.T) {
	t.Run("reads document", func(t *testing.T) {
		u, err := CompileReader(context.Background(),
			strings.NewReader(`bindings: [{bind: x, body: 1}]`))
		if err != nil {
			t.Fatalf("CompileReader() error = %v", err)
		}

		if u.Source != DefaultSource {
			t.Errorf("Source = %q, want %q", u.Source, DefaultSource)
		}
	})

	t.Run("read failure", func(t *testing.T) {
		_, err := CompileReader(context.Background(),
			iotest.ErrReader(errors.New("disk on fire")))
		if !errors.Is(err, ErrReadInput) {
			t.Errorf("CompileReader() error = %v, want ErrReadInput", err)
		}

		if !strings.Contains(err.Error(), "disk on fire") {
			t.Errorf("Error() = %q, want the cause", err.Error())
		}
	})
}

func TestCompile_Logging(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false))

	_, err := Compile(context.Background(), []byte(libraryDoc),
		WithLogger(logger), WithPredeclared("+", "input"), WithSource("lib"))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	for _, msg := range []string{"decoded", "flattened", "collected", "resolved"} {
		if !strings.Contains(buf.String(), `"msg":"`+msg+`"`) {
			t.Errorf("log is missing %q", msg)
		}
	}

	if !strings.Contains(buf.String(), `"source":"lib"`) {
		t.Errorf("log records do not carry the source:\n%s", buf.String())
	}
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	err := ErrDecode.Wrap(cause)

	if !errors.Is(err, ErrDecode) {
		t.Error("wrapped error does not match its sentinel")
	}

	if errors.Is(err, ErrResolve) {
		t.Error("wrapped error matches an unrelated sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("wrapped error does not match its cause")
	}

	if got, want := err.Error(), "failed to decode document: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if WrapError(err) != err {
		t.Error("WrapError() rewrapped an *Error")
	}

	if got := WrapError(cause).Error(); got != "boom" {
		t.Errorf("WrapError().Error() = %q, want boom", got)
	}

	with := err.With()
	if !errors.Is(with, ErrDecode) {
		t.Error("With() lost the sentinel")
	}
}
