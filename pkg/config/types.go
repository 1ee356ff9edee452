package config

import (
	"time"

	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/render"
)

// Config is the top-level pixelgrid configuration, read from pixelgrid.toml
// or pixelgrid.yaml.
type Config struct {
	Pattern  string         `toml:"pattern" koanf:"pattern"`
	Rotation float64        `toml:"rotation" koanf:"rotation"`
	Viewport ViewportConfig `toml:"viewport" koanf:"viewport"`
	Grid     GridConfig     `toml:"grid" koanf:"grid"`
	Style    StyleConfig    `toml:"style" koanf:"style"`
	Server   ServerConfig   `toml:"server" koanf:"server"`
	Cache    CacheConfig    `toml:"cache" koanf:"cache"`
}

// ViewportConfig is the viewport used by one-shot renders.
type ViewportConfig struct {
	Width  float64 `toml:"width" koanf:"width"`
	Height float64 `toml:"height" koanf:"height"`
}

// GridConfig holds the layout settings.
type GridConfig struct {
	CellSize         float64 `toml:"cell_size" koanf:"cell_size"`
	MinColumns       int     `toml:"min_columns" koanf:"min_columns"`
	StrokeMultiplier float64 `toml:"stroke_multiplier" koanf:"stroke_multiplier"`
	DebounceMS       int     `toml:"debounce_ms" koanf:"debounce_ms"`
}

// StyleConfig holds the cell style.
type StyleConfig struct {
	Gap           float64 `toml:"gap" koanf:"gap"`
	CornerRadius  float64 `toml:"corner_radius" koanf:"corner_radius"`
	BaseFill      string  `toml:"base_fill" koanf:"base_fill"`
	HighlightFill string  `toml:"highlight_fill" koanf:"highlight_fill"`
	StrokeOpacity float64 `toml:"stroke_opacity" koanf:"stroke_opacity"`
	Background    string  `toml:"background" koanf:"background"`
}

// ServerConfig holds the live viewer settings.
type ServerConfig struct {
	Addr     string `toml:"addr" koanf:"addr"`
	AllowAll bool   `toml:"allow_all" koanf:"allow_all"`
}

// CacheConfig selects the frame cache backend.
type CacheConfig struct {
	Dir      string `toml:"dir" koanf:"dir"`
	Redis    string `toml:"redis" koanf:"redis"`
	TTLHours int    `toml:"ttl_hours" koanf:"ttl_hours"`
	Disabled bool   `toml:"disabled" koanf:"disabled"`
}

// Default values not owned by the grid or render packages.
const (
	DefaultWidth    = 800.0
	DefaultHeight   = 600.0
	DefaultAddr     = ":8080"
	DefaultTTLHours = 24
)

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	style := render.DefaultStyle()
	return &Config{
		Pattern: "ring",
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Grid: GridConfig{
			CellSize:         grid.DefaultCellSize,
			MinColumns:       grid.DefaultMinColumns,
			StrokeMultiplier: grid.DefaultStrokeMultiplier,
			DebounceMS:       150,
		},
		Style: StyleConfig{
			Gap:           style.Gap,
			CornerRadius:  style.CornerRadius,
			BaseFill:      style.BaseFill,
			HighlightFill: style.HighlightFill,
			StrokeOpacity: style.StrokeOpacity,
		},
		Server: ServerConfig{Addr: DefaultAddr},
		Cache:  CacheConfig{TTLHours: DefaultTTLHours},
	}
}

// GridSettings converts the grid section for grid.Compute.
func (c *Config) GridSettings() grid.Settings {
	return grid.Settings{
		TargetCellSize:   c.Grid.CellSize,
		MinColumns:       c.Grid.MinColumns,
		StrokeMultiplier: grid.Const(c.Grid.StrokeMultiplier),
	}
}

// RenderStyle converts the style section for render.NewDriver.
func (c *Config) RenderStyle() render.Style {
	return render.Style{
		Gap:           c.Style.Gap,
		CornerRadius:  c.Style.CornerRadius,
		BaseFill:      c.Style.BaseFill,
		HighlightFill: c.Style.HighlightFill,
		StrokeOpacity: c.Style.StrokeOpacity,
	}
}

// Debounce returns the resize quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Grid.DebounceMS) * time.Millisecond
}

// CacheTTL returns the frame cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}
