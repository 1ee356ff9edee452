// Package pipeline renders one-shot grid frames with caching.
//
// A render takes a configuration (pattern, viewport, rotation, grid settings,
// and style), binds one engine per requested format to an in-memory page,
// and collects the committed frames:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// The CLI's render command and the live server's frame endpoint both go
// through a Runner, so they share cache keys and defaults.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pixelgrid/pkg/config"
	"github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/grid"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatTXT  = "txt"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatTXT:  true,
	FormatJSON: true,
}

// DefaultScale is the PNG pixel density.
const DefaultScale = 2.0

// Options contains the configuration for one render.
type Options struct {
	// Config supplies pattern, viewport, rotation, layout, and style.
	// Nil means config.DefaultConfig().
	Config *config.Config

	Formats []string // defaults to svg
	Scale   float64  // PNG scale, defaults to DefaultScale
	Refresh bool     // skip cache reads

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a render.
type Result struct {
	Metrics   grid.Metrics
	Status    string
	Artifacts map[string][]byte
	Stats     Stats
	CacheHit  bool // whether every artifact came from the cache
}

// Stats contains render timing.
type Stats struct {
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if err := errors.ValidateFormat(format, ValidFormats); err != nil {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, txt, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates the options and
// their configuration. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		o.Config = config.DefaultConfig()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}
