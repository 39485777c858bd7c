// Package config handles gocut configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/philipparndt/gocut/pkg/geometry"
)

// Config holds all settings.
type Config struct {
	Cut     CutConfig     `yaml:"cut"`
	Output  OutputConfig  `yaml:"output"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// CutConfig holds cutter settings.
type CutConfig struct {
	// Tolerance is the crossing parameter margin, a fraction of the length
	// of the edge being split.
	Tolerance        float64 `yaml:"tolerance"`
	AllowOriginPlane bool    `yaml:"allow_origin_plane"`
	Verify           bool    `yaml:"verify"`
	// VerifyTolerance is a distance from the plane, in mesh units per unit
	// of normal length, within which a vertex counts as on the plane when
	// verifying or classifying.
	VerifyTolerance float64 `yaml:"verify_tolerance"`
}

// OutputConfig holds where and how the cut mesh is written.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // obj, stl or empty to follow the extension
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Cut: CutConfig{
			Tolerance:       geometry.DefaultTolerance,
			VerifyTolerance: 1e-6,
		},
		Output: OutputConfig{
			Path: "output.obj",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values a config file or flag may have broken.
func (c *Config) Validate() error {
	if c.Cut.Tolerance < 0 || c.Cut.Tolerance >= 0.5 {
		return fmt.Errorf("cut.tolerance must be in [0, 0.5), got %g", c.Cut.Tolerance)
	}
	if c.Cut.VerifyTolerance < 0 {
		return fmt.Errorf("cut.verify_tolerance must not be negative, got %g", c.Cut.VerifyTolerance)
	}
	switch c.Output.Format {
	case "", "obj", "stl":
	default:
		return fmt.Errorf("output.format must be obj or stl, got %q", c.Output.Format)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}
