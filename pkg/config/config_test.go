package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/pixelgrid/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Grid.MinColumns != 16 {
		t.Errorf("min_columns = %d, want 16", cfg.Grid.MinColumns)
	}
	if cfg.Grid.CellSize != 14 {
		t.Errorf("cell_size = %v, want 14", cfg.Grid.CellSize)
	}
	if cfg.Style.Gap != 2 || cfg.Style.CornerRadius != 2 {
		t.Errorf("gap/corner = %v/%v, want 2/2", cfg.Style.Gap, cfg.Style.CornerRadius)
	}
	if cfg.Style.BaseFill != "#1e293b" || cfg.Style.HighlightFill != "#38bdf8" {
		t.Errorf("fills = %s/%s", cfg.Style.BaseFill, cfg.Style.HighlightFill)
	}
	if cfg.Debounce() != 150*time.Millisecond {
		t.Errorf("Debounce() = %v, want 150ms", cfg.Debounce())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelgrid.toml")

	original := DefaultConfig()
	original.Pattern = "cross"
	original.Rotation = 30
	original.Grid.CellSize = 20
	original.Style.HighlightFill = "#f97316"
	original.Server.AllowAll = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Pattern != "cross" {
		t.Errorf("pattern: got %q, want %q", loaded.Pattern, "cross")
	}
	if loaded.Rotation != 30 {
		t.Errorf("rotation: got %v, want 30", loaded.Rotation)
	}
	if loaded.Grid.CellSize != 20 {
		t.Errorf("cell_size: got %v, want 20", loaded.Grid.CellSize)
	}
	if loaded.Grid.MinColumns != 16 {
		t.Errorf("min_columns: got %d, want 16", loaded.Grid.MinColumns)
	}
	if loaded.Style.HighlightFill != "#f97316" {
		t.Errorf("highlight_fill: got %q", loaded.Style.HighlightFill)
	}
	if !loaded.Server.AllowAll {
		t.Error("allow_all: got false, want true")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelgrid.yaml")
	data := "pattern: line\ngrid:\n  min_columns: 8\nstyle:\n  gap: 0\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pattern != "line" {
		t.Errorf("pattern: got %q, want line", cfg.Pattern)
	}
	if cfg.Grid.MinColumns != 8 {
		t.Errorf("min_columns: got %d, want 8", cfg.Grid.MinColumns)
	}
	if cfg.Style.Gap != 0 {
		t.Errorf("gap: got %v, want 0", cfg.Style.Gap)
	}
	if cfg.Grid.CellSize != 14 {
		t.Errorf("cell_size: got %v, want default 14", cfg.Grid.CellSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if err != nil {
		t.Fatalf("Load on missing file returned error: %v", err)
	}
	if cfg.Pattern != DefaultConfig().Pattern {
		t.Errorf("expected defaults, got pattern %q", cfg.Pattern)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelgrid.ini")
	if err := os.WriteFile(path, []byte("pattern=ring"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(.ini) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestLoadMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelgrid.toml")
	if err := os.WriteFile(path, []byte("pattern = \n[grid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load on malformed TOML should fail")
	}
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[grid]\ncell_size = -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want the raw values", err)
	}
	if cfg.Grid.CellSize != -5 {
		t.Fatalf("cell_size = %v, want -5", cfg.Grid.CellSize)
	}
	if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Validate() = %v, want code %q", err, errors.ErrCodeInvalidConfig)
	}

	// A flag override applied after Load makes the configuration usable.
	cfg.Grid.CellSize = 20
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after override = %v", err)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PIXELGRID_PATTERN", "checker")
	t.Setenv("PIXELGRID_GRID__CELL_SIZE", "24")
	t.Setenv("PIXELGRID_SERVER__ADDR", ":9000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pattern != "checker" {
		t.Errorf("pattern: got %q, want checker", cfg.Pattern)
	}
	if cfg.Grid.CellSize != 24 {
		t.Errorf("cell_size: got %v, want 24", cfg.Grid.CellSize)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr: got %q, want :9000", cfg.Server.Addr)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode errors.Code
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown pattern", func(c *Config) { c.Pattern = "spiral" }, errors.ErrCodeInvalidPattern},
		{"zero width", func(c *Config) { c.Viewport.Width = 0 }, errors.ErrCodeInvalidConfig},
		{"negative cell size", func(c *Config) { c.Grid.CellSize = -1 }, errors.ErrCodeInvalidConfig},
		{"no columns", func(c *Config) { c.Grid.MinColumns = 0 }, errors.ErrCodeInvalidConfig},
		{"negative gap", func(c *Config) { c.Style.Gap = -2 }, errors.ErrCodeInvalidConfig},
		{"bad color", func(c *Config) { c.Style.BaseFill = "slate" }, errors.ErrCodeInvalidConfig},
		{"bad background", func(c *Config) { c.Style.Background = "#12" }, errors.ErrCodeInvalidConfig},
		{"opacity above one", func(c *Config) { c.Style.StrokeOpacity = 1.5 }, errors.ErrCodeInvalidConfig},
		{"negative debounce", func(c *Config) { c.Grid.DebounceMS = -1 }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("Validate() = %v, want code %q", err, tt.wantCode)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.StrokeMultiplier = 2

	s := cfg.GridSettings()
	if s.TargetCellSize != 14 || s.MinColumns != 16 {
		t.Errorf("GridSettings() = %+v", s)
	}
	if got := s.StrokeMultiplier(); got != 2 {
		t.Errorf("StrokeMultiplier() = %v, want 2", got)
	}

	style := cfg.RenderStyle()
	if style.Fill(true) != "#38bdf8" || style.Fill(false) != "#1e293b" {
		t.Errorf("RenderStyle() fills = %q/%q", style.Fill(true), style.Fill(false))
	}
	if cfg.CacheTTL() != 24*time.Hour {
		t.Errorf("CacheTTL() = %v, want 24h", cfg.CacheTTL())
	}
}
