package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// record decodes the single JSON record written to buf.
func record(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode record %q: %v", buf.String(), err)
	}

	return rec
}

func TestMake_Defaults(t *testing.T) {
	l := Make(nil)

	if l.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", l.Level(), DefaultLevel)
	}

	if l.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", l.Format(), DefaultFormat)
	}

	if l.caller != DefaultCaller || l.pretty != DefaultPretty {
		t.Errorf("caller=%v pretty=%v", l.caller, l.pretty)
	}

	// nil output discards
	l.Error("unit failed")
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		log   func(Logger)
		want  bool
	}{
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("context created") }, true},
		{"trace at debug", LevelDebug, func(l Logger) { l.Trace("context created") }, false},
		{"debug at debug", LevelDebug, func(l Logger) { l.Debug("flattened") }, true},
		{"info at warn", LevelWarn, func(l Logger) { l.Info("compiled") }, false},
		{"warn at warn", LevelWarn, func(l Logger) { l.Warn("diagnostics") }, true},
		{"error at error", LevelError, func(l Logger) { l.Error("decode failed") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level), WithPretty(false)))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v: %q", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_LevelNames(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelTrace), WithPretty(false), WithTimeLayout("none"))
	l.Trace("context created")

	rec := record(t, &buf)
	if rec["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", rec["level"])
	}

	if _, ok := rec["time"]; ok {
		t.Errorf("time present with layout none: %v", rec)
	}
}

func TestLogger_Formats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		l := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
		l.Info("compiled", slog.String("source", "main.yaml"), slog.Int("contexts", 3))

		rec := record(t, &buf)
		if rec["msg"] != "compiled" || rec["source"] != "main.yaml" || rec["contexts"] != 3.0 {
			t.Errorf("record = %v", rec)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		l := Make(&buf, WithFormat(FormatText), WithPretty(false))
		l.Info("compiled", slog.String("source", "main.yaml"))

		out := buf.String()
		for _, want := range []string{"level=INFO", "msg=compiled", "source=main.yaml"} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q missing %q", out, want)
			}
		}
	})
}

func TestLogger_Caller(t *testing.T) {
	for _, enable := range []bool{true, false} {
		var buf bytes.Buffer

		l := Make(&buf, WithCaller(enable), WithPretty(false))
		l.Info("compiled")

		if _, ok := record(t, &buf)[slog.SourceKey]; ok != enable {
			t.Errorf("WithCaller(%v): source present = %v", enable, ok)
		}
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithPretty(false))
	unit := base.With(slog.String("unit", "main.yaml"))
	unit.Warn("unresolved name", Err(errors.New("did you mean lib")))

	rec := record(t, &buf)
	if rec["unit"] != "main.yaml" {
		t.Errorf("unit = %v", rec["unit"])
	}

	if rec["error"] != "did you mean lib" {
		t.Errorf("error = %v", rec["error"])
	}

	buf.Reset()
	base.Warn("unresolved name")

	if _, ok := record(t, &buf)["unit"]; ok {
		t.Error("With modified the original logger")
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelInfo))
	verbose := base.Wrap(WithLevel(LevelTrace), WithFormat(FormatText))

	if verbose.Level() != LevelTrace || verbose.Format() != FormatText {
		t.Errorf("wrapped: level=%v format=%v", verbose.Level(), verbose.Format())
	}

	if base.Level() != LevelInfo || base.Format() != FormatJSON {
		t.Errorf("base changed: level=%v format=%v", base.Level(), base.Format())
	}

	if verbose.mutex == base.mutex {
		t.Error("wrapped logger shares the config mutex")
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("context created")
	l.Info("compiled")
	l.ErrorContext(context.Background(), "decode failed")

	if w := l.With(slog.String("unit", "main.yaml")); w.Logger != nil {
		t.Error("With on the zero Logger created a handler")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("zero Logger: level=%v format=%v", l.Level(), l.Format())
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var (
		buf syncBuffer
		wg  sync.WaitGroup
	)

	l := Make(&buf, WithPretty(false))

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			l.With(slog.Int("worker", i)).Info("compiled")
			_ = l.Wrap(WithLevel(LevelDebug)).Level()
		}()
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 16 {
		t.Errorf("wrote %d records, want 16", n)
	}
}

func TestPackage_DefaultLogger(t *testing.T) {
	original := defaultLog
	t.Cleanup(func() { defaultLog = original })

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithPretty(false))

	tests := []struct {
		level string
		log   func(string, ...slog.Attr)
	}{
		{"TRACE", Trace},
		{"DEBUG", Debug},
		{"INFO", Info},
		{"WARN", Warn},
		{"ERROR", Error},
		{"INFO", func(msg string, attrs ...slog.Attr) {
			InfoContext(context.Background(), msg, attrs...)
		}},
	}

	for _, tt := range tests {
		buf.Reset()
		tt.log("resolved", slog.String("source", "lib.yaml"))

		rec := record(t, &buf)
		if rec["level"] != tt.level || rec["msg"] != "resolved" || rec["source"] != "lib.yaml" {
			t.Errorf("record = %v, want level %s", rec, tt.level)
		}
	}

	if Default().Level() != LevelTrace {
		t.Errorf("Default().Level() = %v", Default().Level())
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func BenchmarkLogger_Info(b *testing.B) {
	l := Make(nil, WithPretty(false))

	for b.Loop() {
		l.Info("compiled", slog.String("source", "main.yaml"))
	}
}

func BenchmarkLogger_Trace_Disabled(b *testing.B) {
	l := Make(nil)

	for b.Loop() {
		l.Trace("context created", slog.Int("id", 1))
	}
}
