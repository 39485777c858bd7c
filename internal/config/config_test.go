package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Cut.Tolerance != 1e-5 {
		t.Errorf("expected tolerance 1e-5, got %g", cfg.Cut.Tolerance)
	}
	if cfg.Cut.AllowOriginPlane {
		t.Error("expected origin plane guard to be on by default")
	}
	if cfg.Cut.VerifyTolerance != 1e-6 {
		t.Errorf("expected verify tolerance 1e-6, got %g", cfg.Cut.VerifyTolerance)
	}
	if cfg.Output.Path != "output.obj" {
		t.Errorf("expected output path output.obj, got %s", cfg.Output.Path)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "gocut.yaml")

	yamlContent := `
cut:
  tolerance: 0.001
  allow_origin_plane: true
  verify: true
  verify_tolerance: 0.01

output:
  path: "sliced.stl"
  format: stl

watch:
  debounce: 2s

logging:
  level: "debug"
  log_file: "gocut.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Cut.Tolerance != 0.001 {
		t.Errorf("expected tolerance 0.001, got %g", cfg.Cut.Tolerance)
	}
	if cfg.Cut.VerifyTolerance != 0.01 {
		t.Errorf("expected verify tolerance 0.01, got %g", cfg.Cut.VerifyTolerance)
	}
	if !cfg.Cut.AllowOriginPlane || !cfg.Cut.Verify {
		t.Errorf("expected cut flags to be set, got %+v", cfg.Cut)
	}
	if cfg.Output.Path != "sliced.stl" || cfg.Output.Format != "stl" {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "gocut.log" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Cut.Tolerance != 1e-5 || cfg.Output.Path != "output.obj" {
		t.Errorf("defaults should survive a partial file, got %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	invalidYAML := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalidYAML, []byte("cut:\n  tolerance: not a number\n  invalid syntax here\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(invalidYAML); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}

	badValue := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badValue, []byte("output:\n  format: ply\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(badValue); err == nil {
		t.Error("expected validation error for unknown format, got nil")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error loading missing explicit file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative tolerance", func(c *Config) { c.Cut.Tolerance = -1 }},
		{"tolerance too large", func(c *Config) { c.Cut.Tolerance = 0.5 }},
		{"negative verify tolerance", func(c *Config) { c.Cut.VerifyTolerance = -1e-3 }},
		{"empty output", func(c *Config) { c.Output.Path = "" }},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("logging:\n  level: error\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != FileName {
		t.Errorf("expected to find %s in current directory, got %q", FileName, path)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load discovered config: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected discovered config to apply, got level %s", cfg.Logging.Level)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gocut.yaml")

	cfg := Default()
	cfg.Output.Format = "stl"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: saved %+v, loaded %+v", cfg, loaded)
	}
}
