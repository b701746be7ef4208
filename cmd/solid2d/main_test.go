package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScene = `
objects:
  - use: union
    children:
      - use: square
        args: [2]
      - use: translate
        args: [[1, 1]]
        children:
          - use: square
            args: [2]
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunOutputs(t *testing.T) {
	path := writeFile(t, "scene.yaml", testScene)
	tests := []struct {
		output string
		want   string
	}{
		{"area", "7\n"},
		{"bbox", "[0, 0, 0] - [3, 3, 0]"},
		{"wkt", "MULTIPOLYGON"},
		{"tree", "  union() {\n    square(size = [2, 2], center = false);\n"},
		{"outlines", "contour:\n"},
		{"geojson", `"sanitized":false`},
	}
	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run([]string{"-output", tt.output, path}, &stdout, &stderr); err != nil {
				t.Fatalf("run() error = %v (stderr %s)", err, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", stdout.String(), tt.want)
			}
		})
	}
}

func TestRunMeshBackend(t *testing.T) {
	path := writeFile(t, "scene.yaml", "objects:\n  - use: square\n    args: [[4, 3]]\n")
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-backend", "mesh", "-output", "area", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := stdout.String(); got != "12\n" {
		t.Errorf("area = %q, want 12", got)
	}
}

func TestRunRootModifier(t *testing.T) {
	path := writeFile(t, "scene.yaml", `
objects:
  - use: square
    args: [10]
  - use: square
    args: [1]
    modifier: "!"
`)
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-output", "area", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := stdout.String(); got != "1\n" {
		t.Errorf("area = %q, want only the '!' subtree", got)
	}
}

func TestRunFeatureGate(t *testing.T) {
	path := writeFile(t, "scene.yaml", "objects:\n  - use: fill\n    children:\n      - use: square\n")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-output", "area", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if stdout.String() != "0\n" || !strings.Contains(stderr.String(), "experimental module is not enabled") {
		t.Errorf("disabled fill: stdout %q stderr %q", stdout.String(), stderr.String())
	}

	stdout.Reset()
	stderr.Reset()
	cfg := writeFile(t, "solid.toml", "[features]\nenable = [\"fill\"]\n")
	if err := run([]string{"-config", cfg, "-output", "area", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if stdout.String() != "1\n" {
		t.Errorf("enabled fill area = %q, want 1", stdout.String())
	}
}

func TestRunEnableList(t *testing.T) {
	path := writeFile(t, "scene.yaml", "objects:\n  - use: fill\n    children:\n      - use: square\n")
	tests := []string{"fill", " fill ", "fill, ", ", fill,,"}
	for _, enable := range tests {
		t.Run(enable, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run([]string{"-enable", enable, "-output", "area", path}, &stdout, &stderr); err != nil {
				t.Fatalf("run(-enable %q) error = %v", enable, err)
			}
			if stdout.String() != "1\n" {
				t.Errorf("run(-enable %q) area = %q, want 1", enable, stdout.String())
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	path := writeFile(t, "scene.yaml", "objects: []\n")
	tests := []struct {
		name string
		args []string
	}{
		{"no scene", nil},
		{"bad backend", []string{"-backend", "cgal", path}},
		{"bad feature", []string{"-enable", "nope", path}},
		{"bad feature after space", []string{"-enable", "fill, nope", path}},
		{"bad output", []string{"-output", "svg", path}},
		{"missing scene", []string{filepath.Join(t.TempDir(), "none.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(tt.args, &stdout, &stderr); err == nil {
				t.Error("run() error = nil, want error")
			}
		})
	}
	var stdout, stderr bytes.Buffer
	if err := run(nil, &stdout, &stderr); !errors.Is(err, errUsage) {
		t.Errorf("run(nil) error = %v, want usage", err)
	}
}
