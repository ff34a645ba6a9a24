package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/nana/pkg"
)

func TestCheckRun(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"clean.yaml":   cleanDoc,
		"broken.yaml":  brokenDoc,
		"invalid.yaml": invalidDoc,
	})

	tests := []struct {
		name    string
		sources []string
		want    []string
		wantErr bool
	}{
		{
			name:    "clean",
			sources: []string{"clean.yaml"},
			want:    []string{"clean.yaml: ok ("},
		},
		{
			name:    "diagnostics",
			sources: []string{"clean.yaml", "broken.yaml"},
			want: []string{
				"clean.yaml: ok",
				`broken.yaml: UnresolvedName: unresolved name "y"`,
				`broken.yaml: UnresolvedName: unresolved name "z"`,
			},
			wantErr: true,
		},
		{
			name:    "decode failure",
			sources: []string{"invalid.yaml"},
			want:    []string{"invalid.yaml: error:"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			ctx := WithSearchPath(testContext(t, &out, nil), []string{dir})

			check := &Check{Color: "never", Sources: tt.sources}

			err := check.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check.Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr && !errors.Is(err, pkg.ErrCheckFailed) {
				t.Errorf("Check.Run() error = %v, want ErrCheckFailed", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output is missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestCheckRun_JSON(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"clean.yaml":   cleanDoc,
		"broken.yaml":  brokenDoc,
		"invalid.yaml": invalidDoc,
	})

	var out bytes.Buffer

	check := &Check{
		JSON: true,
		Sources: []string{
			filepath.Join(dir, "clean.yaml"),
			filepath.Join(dir, "broken.yaml"),
			filepath.Join(dir, "invalid.yaml"),
		},
	}

	err := check.Run(testContext(t, &out, nil))
	if !errors.Is(err, pkg.ErrCheckFailed) {
		t.Fatalf("Check.Run() error = %v, want ErrCheckFailed", err)
	}

	var report []struct {
		Source      string           `json:"source"`
		Error       string           `json:"error"`
		Diagnostics []map[string]any `json:"diagnostics"`
		OK          bool             `json:"ok"`
	}

	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}

	if len(report) != 3 {
		t.Fatalf("report has %d entries, want 3", len(report))
	}

	if !report[0].OK || len(report[0].Diagnostics) != 0 {
		t.Errorf("clean entry = %+v", report[0])
	}

	if report[1].OK || len(report[1].Diagnostics) != 2 ||
		report[1].Diagnostics[0]["kind"] != "UnresolvedName" {
		t.Errorf("broken entry = %+v", report[1])
	}

	if report[2].OK || report[2].Error == "" {
		t.Errorf("invalid entry = %+v", report[2])
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		mode string
		w    io.Writer
		want bool
	}{
		{"always", &buf, true},
		{"never", os.Stdout, false},
		{"auto", &buf, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if got := colorEnabled(tt.w, tt.mode); got != tt.want {
				t.Errorf("colorEnabled(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}
