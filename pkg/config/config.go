// Package config loads pixelgrid configuration.
//
// Values are layered: DefaultConfig, then a TOML or YAML file, then
// PIXELGRID_* environment variables, then any command-line flags the caller
// applies before calling Validate. Nested keys in environment variables are
// separated by a double underscore:
//
//	PIXELGRID_PATTERN=cross
//	PIXELGRID_GRID__CELL_SIZE=20
//	PIXELGRID_SERVER__ADDR=:9000
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/patterns"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "PIXELGRID_"

// Load reads configuration from path, then overlays environment variable
// overrides. A missing file is not an error; an empty path skips the file.
// Load does not validate: callers apply their flag overrides first and then
// call Validate.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			parser, err := parserFor(path)
			if err != nil {
				return nil, err
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decoding config")
	}
	return cfg, nil
}

// envKey maps PIXELGRID_GRID__CELL_SIZE to grid.cell_size.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOMLParser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config file %q: use .toml, .yaml, or .yml", path)
	}
}

// Save writes the configuration to path as TOML.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if _, err := patterns.Lookup(c.Pattern); err != nil {
		return err
	}

	checks := []error{
		errors.ValidatePositive("viewport.width", c.Viewport.Width),
		errors.ValidatePositive("viewport.height", c.Viewport.Height),
		errors.ValidatePositive("grid.cell_size", c.Grid.CellSize),
		errors.ValidatePositive("grid.stroke_multiplier", c.Grid.StrokeMultiplier),
		errors.ValidateNonNegative("style.gap", c.Style.Gap),
		errors.ValidateNonNegative("style.corner_radius", c.Style.CornerRadius),
		errors.ValidateColor("style.base_fill", c.Style.BaseFill),
		errors.ValidateColor("style.highlight_fill", c.Style.HighlightFill),
	}
	for _, err := range checks {
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration")
		}
	}

	if c.Grid.MinColumns < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid.min_columns must be at least 1, got %d", c.Grid.MinColumns)
	}
	if c.Grid.DebounceMS < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid.debounce_ms must be non-negative")
	}
	if c.Style.StrokeOpacity < 0 || c.Style.StrokeOpacity > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "style.stroke_opacity must be between 0 and 1, got %v", c.Style.StrokeOpacity)
	}
	if c.Style.Background != "" {
		if err := errors.ValidateColor("style.background", c.Style.Background); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration")
		}
	}
	if c.Cache.TTLHours < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl_hours must be non-negative")
	}
	return nil
}
