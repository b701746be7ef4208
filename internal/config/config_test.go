package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/solid/feature"
	"github.com/gogpu/solid/geometry"
)

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
[render]
backend = "mesh"

[features]
enable = ["fill"]

[log]
level = "debug"
format = "json"
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	s, err := c.RenderSettings()
	if err != nil {
		t.Fatalf("RenderSettings() error = %v", err)
	}
	if s.Backend3D != geometry.BackendMesh {
		t.Errorf("Backend3D = %v, want %v", s.Backend3D, geometry.BackendMesh)
	}
	if len(c.Features.Enable) != 1 || c.Features.Enable[0] != "fill" {
		t.Errorf("Features.Enable = %v, want [fill]", c.Features.Enable)
	}

	var buf bytes.Buffer
	logger, err := c.NewLogger(&buf)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Debug("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("log output = %q, want a JSON debug record", buf.String())
	}
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if c.Render != Default().Render || c.Log != Default().Log || len(c.Features.Enable) != 0 {
		t.Errorf("Parse(nil) = %+v, want defaults", c)
	}
	s, _ := c.RenderSettings()
	if s != geometry.DefaultRenderSettings() {
		t.Errorf("RenderSettings() = %+v, want %+v", s, geometry.DefaultRenderSettings())
	}

	var buf bytes.Buffer
	logger, _ := c.NewLogger(&buf)
	logger.Info("quiet")
	logger.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Errorf("log output = %q, want warn level text", buf.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"unknown backend", "[render]\nbackend = \"cgal\"\n", true},
		{"unknown level", "[log]\nlevel = \"loud\"\n", true},
		{"unknown format", "[log]\nformat = \"xml\"\n", true},
		{"unknown key", "[render]\nbackend = \"mesh\"\nspeed = 3\n", false},
		{"bad syntax", "[render\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, want %v (err = %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestApplyFeatures(t *testing.T) {
	set := feature.NewSet()
	fill := set.Register("fill", "")

	c := Default()
	c.Features.Enable = []string{"fill"}
	if err := c.ApplyFeatures(set); err != nil {
		t.Fatalf("ApplyFeatures() error = %v", err)
	}
	if !fill.Enabled() {
		t.Error("fill not enabled")
	}

	c.Features.Enable = []string{"nope"}
	if err := c.ApplyFeatures(set); !errors.Is(err, feature.ErrUnknownFeature) {
		t.Errorf("ApplyFeatures() error = %v, want ErrUnknownFeature", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solid.toml")
	if err := os.WriteFile(path, []byte("[render]\nbackend = \"mesh\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Render.Backend != "mesh" {
		t.Errorf("Render.Backend = %q, want mesh", c.Render.Backend)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}
