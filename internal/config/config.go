// Package config loads the TOML configuration of the solid2d tool.
//
//	[render]
//	backend = "constrained"   # or "mesh"
//
//	[features]
//	enable = ["fill"]
//
//	[log]
//	level = "warn"            # debug, info, warn, error
//	format = "text"           # or "json"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/solid/feature"
	"github.com/gogpu/solid/geometry"
)

// ErrInvalid is returned for configuration values that parse but make no
// sense.
var ErrInvalid = errors.New("config: invalid value")

// Config is the root of the configuration file.
type Config struct {
	Render   Render   `toml:"render"`
	Features Features `toml:"features"`
	Log      Log      `toml:"log"`
}

// Render selects how geometry is tessellated.
type Render struct {
	Backend string `toml:"backend"`
}

// Features lists experimental features to turn on.
type Features struct {
	Enable []string `toml:"enable"`
}

// Log configures the diagnostics logger.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Render: Render{Backend: geometry.BackendConstrained.String()},
		Log:    Log{Level: "warn", Format: "text"},
	}
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML on top of Default. Unknown keys are errors.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that TOML typing cannot.
func (c Config) Validate() error {
	if _, err := geometry.ParseBackend3D(c.Render.Backend); err != nil {
		return fmt.Errorf("%w: render.backend: %w", ErrInvalid, err)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// RenderSettings returns the tessellation settings.
func (c Config) RenderSettings() (geometry.RenderSettings, error) {
	b, err := geometry.ParseBackend3D(c.Render.Backend)
	if err != nil {
		return geometry.RenderSettings{}, fmt.Errorf("%w: render.backend: %w", ErrInvalid, err)
	}
	return geometry.RenderSettings{Backend3D: b}, nil
}

// ApplyFeatures turns on the configured features in set.
func (c Config) ApplyFeatures(set *feature.Set) error {
	if err := set.Enable(c.Features.Enable...); err != nil {
		return fmt.Errorf("config: features.enable: %w", err)
	}
	return nil
}

// NewLogger builds a logger writing to w with the configured level and
// format.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if c.Log.Level == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return l, nil
}
