package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/pixelgrid/pkg/config"
	"github.com/matzehuels/pixelgrid/pkg/engine"
	"github.com/matzehuels/pixelgrid/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatTXT:  "text/plain; charset=utf-8",
	pipeline.FormatJSON: "application/json",
}

// handleFrame serves GET /api/frame.{format}?w=&h=&pattern=&rotation=&cell=.
// Missing or unparseable numbers fall back to the base configuration.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	cfg := frameConfig(s.cfg.Grid, r)
	res, err := s.cfg.Runner.Render(r.Context(), pipeline.Options{
		Config:  cfg,
		Formats: []string{format},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	cacheStatus := "MISS"
	if res.CacheHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("X-Grid-Columns", strconv.Itoa(res.Metrics.Columns))
	w.Header().Set("X-Grid-Rows", strconv.Itoa(res.Metrics.Rows))
	_, _ = w.Write(res.Artifacts[format])
}

// frameConfig copies base and applies the request's query overrides.
func frameConfig(base *config.Config, r *http.Request) *config.Config {
	cfg := *base
	q := r.URL.Query()
	if p := q.Get("pattern"); p != "" {
		cfg.Pattern = p
	}
	cfg.Viewport.Width = engine.ParseNumber(q.Get("w"), base.Viewport.Width)
	cfg.Viewport.Height = engine.ParseNumber(q.Get("h"), base.Viewport.Height)
	cfg.Rotation = engine.ParseNumber(q.Get("rotation"), base.Rotation)
	cfg.Grid.CellSize = engine.ParseNumber(q.Get("cell"), base.Grid.CellSize)
	return &cfg
}
