// Package server implements the live grid viewer.
//
// Each websocket connection gets its own in-memory page and engine, so every
// browser tab has an independent grid with its own resize debounce. Browsers
// send viewport and input changes; the server pushes each committed frame as
// SVG markup with its status line and metrics.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/pixelgrid/pkg/buildinfo"
	"github.com/matzehuels/pixelgrid/pkg/config"
	"github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/patterns"
	"github.com/matzehuels/pixelgrid/pkg/pipeline"
	"github.com/matzehuels/pixelgrid/pkg/session"
)

// DefaultCleanupInterval is how often expired sessions are reaped.
const DefaultCleanupInterval = time.Minute

// Config holds server configuration.
type Config struct {
	Addr     string // listen address, e.g. ":8080"
	AllowAll bool   // allow all CORS origins (dev mode)

	// Grid is the base configuration for every viewer and frame request.
	Grid *config.Config

	Runner   *pipeline.Runner // renders /api/frame.*; a cacheless runner if nil
	Sessions session.Store    // a memory store if nil
	Logger   *log.Logger

	CleanupInterval time.Duration
}

// Server is the live viewer.
type Server struct {
	cfg        Config
	logger     *log.Logger
	router     chi.Router
	httpServer *http.Server

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a server; it does not listen until Start.
func New(cfg Config) *Server {
	if cfg.Grid == nil {
		cfg.Grid = config.DefaultConfig()
	}
	if cfg.Addr == "" {
		cfg.Addr = cfg.Grid.Server.Addr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewMemoryStore()
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		stop:   make(chan struct{}),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleLive)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/patterns", s.handlePatterns)
		r.Get("/sessions", s.handleSessions)
		r.Get("/frame.{format}", s.handleFrame)
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured address and reaps expired
// sessions in the background. It blocks until the server stops.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go s.cleanupLoop()

	s.logger.Info("pixelgrid server listening", "addr", s.cfg.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) cleanupLoop() {
	t := time.NewTicker(s.cfg.CleanupInterval)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			n, err := s.cfg.Sessions.Cleanup(context.Background())
			if err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
			} else if n > 0 {
				s.logger.Debug("reaped sessions", "count", n)
			}
		}
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get(),
	})
}

type patternInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	all := patterns.All()
	out := make([]patternInfo, len(all))
	for i, p := range all {
		out[i] = patternInfo{Name: p.Name, Description: p.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	list, err := s.cfg.Sessions.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps coded errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPattern,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
