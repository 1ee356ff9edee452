package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pixelgrid/pkg/cache"
	"github.com/matzehuels/pixelgrid/pkg/engine"
	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/observability"
	"github.com/matzehuels/pixelgrid/pkg/page"
	"github.com/matzehuels/pixelgrid/pkg/patterns"
	"github.com/matzehuels/pixelgrid/pkg/render"
)

// Element identifiers of the page a Runner renders into.
const (
	statusID   = "hud"
	rotationID = "rotation"
)

// Runner renders frames with caching.
//
// The Runner holds no per-render state, so multiple goroutines can safely
// use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render produces every requested format, serving from the cache when all of
// them are present.
func (r *Runner) Render(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	cfg := opts.Config

	pattern, err := patterns.Lookup(cfg.Pattern)
	if err != nil {
		return nil, err
	}

	configHash, err := cache.HashJSON(cfg)
	if err != nil {
		return nil, fmt.Errorf("hash config: %w", err)
	}
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.FrameKey(cache.FrameKeyOpts{
			ConfigHash: configHash,
			Pattern:    cfg.Pattern,
			Width:      cfg.Viewport.Width,
			Height:     cfg.Viewport.Height,
			Rotation:   cfg.Rotation,
			Format:     format,
			Scale:      opts.Scale,
		})
	}

	start := time.Now()
	result := &Result{Artifacts: make(map[string][]byte, len(opts.Formats))}

	if !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, keys); ok {
			result.Artifacts = artifacts
			result.CacheHit = true
			result.Metrics = grid.Compute(cfg.Viewport.Width, cfg.Viewport.Height, cfg.GridSettings(), func() float64 { return cfg.Rotation })
			result.Status = render.DefaultStatus(result.Metrics)
			result.Stats.RenderTime = time.Since(start)
			opts.Logger.Debug("served frame from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	p := page.New(cfg.Viewport.Width, cfg.Viewport.Height)
	p.AddInput(rotationID, strconv.FormatFloat(cfg.Rotation, 'f', -1, 64))
	p.AddOutput(statusID)

	outputs := make(map[string]output, len(opts.Formats))
	for _, format := range opts.Formats {
		out, err := newOutput(format, cfg, opts.Scale)
		if err != nil {
			return nil, err
		}
		p.AddSurface(format, out.surface)
		outputs[format] = out
	}

	for _, format := range opts.Formats {
		e, err := engine.Init(p, engine.Options{
			SurfaceID:  format,
			StatusID:   statusID,
			RotationID: rotationID,
			Settings:   cfg.GridSettings(),
			Style:      cfg.RenderStyle(),
			Hooks:      pattern.Hooks,
			Logger:     opts.Logger,
		})
		if err != nil {
			return nil, err
		}
		result.Metrics = e.Metrics()
		e.Close()

		data, err := outputs[format].bytes()
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	result.Status = p.Text(statusID)
	result.Stats.RenderTime = time.Since(start)

	ttl := cfg.CacheTTL()
	for format, data := range result.Artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, ttl); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}

	opts.Logger.Info("rendered frame",
		"pattern", cfg.Pattern,
		"cols", result.Metrics.Columns,
		"rows", result.Metrics.Rows,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// lookup returns all artifacts if every key hits.
func (r *Runner) lookup(ctx context.Context, keys map[string]string) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(keys))
	for format, key := range keys {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, format)
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, format)
		artifacts[format] = data
	}
	return artifacts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
