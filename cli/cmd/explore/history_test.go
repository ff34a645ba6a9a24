package explore

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_WriteLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}

	for _, line := range []string{"lib", "  ", "inc", "inc", "gate", "lib"} {
		if _, err := h.Write(line); err != nil {
			t.Fatalf("Write(%q) error = %v", line, err)
		}
	}

	want := []string{"inc", "gate", "lib"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistory_GetLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), baseHistory)
	if err := os.WriteFile(path, []byte("first\n\nsecond\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	tests := []struct {
		index   int
		want    string
		wantErr error
	}{
		{index: 0, want: "first"},
		{index: 1, want: "second"},
		{index: 2, wantErr: ErrOutOfBounds},
		{index: -1, wantErr: ErrOutOfBounds},
	}

	for _, tt := range tests {
		got, err := h.GetLine(tt.index)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("GetLine(%d) error = %v, want %v", tt.index, err, tt.wantErr)
		}

		if got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
