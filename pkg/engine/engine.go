package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/observability"
	"github.com/matzehuels/pixelgrid/pkg/render"
)

const (
	// DefaultSurfaceID is used when Options.SurfaceID is empty.
	DefaultSurfaceID = "grid"

	// DefaultDebounce is the resize quiet period.
	DefaultDebounce = 150 * time.Millisecond
)

// Rebuild triggers, as reported to observability hooks and the debug log.
const (
	TriggerInit     = "init"
	TriggerInput    = "input"
	TriggerResize   = "resize"
	TriggerExplicit = "explicit"
)

// Document is the host an engine draws into. *page.Page implements it.
type Document interface {
	Surface(id string) (render.Surface, bool)
	Output(id string) (render.Output, bool)
	Value(id string) (string, bool)
	Size() (width, height float64)
	OnInput(id string, fn func()) (remove func())
	OnResize(fn func()) (remove func())
}

// Options configure an engine. All fields are optional.
type Options struct {
	SurfaceID  string // drawing surface; DefaultSurfaceID if empty
	StatusID   string // text output for the status line
	RotationID string // input holding the rotation
	CellSizeID string // input holding the target cell size

	Settings grid.Settings
	Style    render.Style // zero value means render.DefaultStyle()
	Hooks    render.Hooks

	// Debounce is the resize quiet period; DefaultDebounce if zero.
	Debounce time.Duration

	// OnRebuild runs after each frame is committed and the status published.
	OnRebuild func(m grid.Metrics)

	Logger *log.Logger
}

// Engine is a live grid bound to one document.
type Engine struct {
	id       string
	doc      Document
	opts     Options
	driver   *render.Driver
	surface  render.Surface
	status   render.Output
	logger   *log.Logger
	debounce time.Duration

	mu       sync.Mutex // serializes rebuilds
	metrics  grid.Metrics
	rebuilds int
	stopped  bool // set by Close; deferred resizes no longer draw

	timerMu sync.Mutex
	timer   *time.Timer
	closed  bool
	detach  []func()
}

// Init binds a new engine to doc and renders the first frame.
//
// When the surface is missing, Init returns nil and an error with code
// errors.ErrCodeMissingSurface; no listener is attached and nothing is drawn.
func Init(doc Document, opts Options) (*Engine, error) {
	if opts.SurfaceID == "" {
		opts.SurfaceID = DefaultSurfaceID
	}
	surface, ok := doc.Surface(opts.SurfaceID)
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingSurface, "no drawing surface with id %q", opts.SurfaceID)
	}

	if opts.Style == (render.Style{}) {
		opts.Style = render.DefaultStyle()
	}
	if opts.Settings.TargetCellSize <= 0 {
		opts.Settings.TargetCellSize = grid.DefaultCellSize
	}
	if opts.Settings.MinColumns <= 0 {
		opts.Settings.MinColumns = grid.DefaultMinColumns
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	e := &Engine{
		id:       uuid.NewString(),
		doc:      doc,
		opts:     opts,
		driver:   render.NewDriver(opts.Style, opts.Hooks),
		surface:  surface,
		logger:   logger,
		debounce: opts.Debounce,
	}
	if opts.StatusID != "" {
		if out, ok := doc.Output(opts.StatusID); ok {
			e.status = out
		}
	}

	for _, id := range []string{opts.RotationID, opts.CellSizeID} {
		if id == "" {
			continue
		}
		if remove := doc.OnInput(id, func() { e.rebuild(TriggerInput) }); remove != nil {
			e.detach = append(e.detach, remove)
		}
	}
	e.detach = append(e.detach, doc.OnResize(e.Resize))

	e.rebuild(TriggerInit)
	return e, nil
}

// ID returns the engine's unique identifier.
func (e *Engine) ID() string { return e.id }

// Metrics returns the snapshot of the most recent rebuild.
func (e *Engine) Metrics() grid.Metrics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.metrics
}

// Rebuilds returns how many rebuilds have run.
func (e *Engine) Rebuilds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rebuilds
}

// Rebuild recomputes the grid and redraws the surface now.
func (e *Engine) Rebuild() {
	e.rebuild(TriggerExplicit)
}

// Resize signals a viewport change. The rebuild runs once no further Resize
// has arrived for the debounce period; each call cancels the pending one.
func (e *Engine) Resize() {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()
	if e.closed {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.fireResize)
	observability.Rebuild().OnResizeDeferred(context.Background(), e.id)
}

func (e *Engine) fireResize() {
	if !e.isClosed() {
		e.rebuild(TriggerResize)
	}
}

func (e *Engine) isClosed() bool {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()
	return e.closed
}

// Close cancels a pending resize rebuild and detaches all listeners. Once it
// returns, no deferred resize draws to the surface. It is safe to call more
// than once, but not from inside a render hook.
func (e *Engine) Close() {
	e.timerMu.Lock()
	if e.closed {
		e.timerMu.Unlock()
		return
	}
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	detach := e.detach
	e.detach = nil
	e.timerMu.Unlock()

	for _, remove := range detach {
		remove()
	}

	// Waits out a resize rebuild that passed the closed check.
	e.mu.Lock()
	e.stopped = true
	e.mu.Unlock()
}

func (e *Engine) rebuild(trigger string) {
	ctx := context.Background()
	start := time.Now()

	m, ok := e.render(ctx, trigger)
	if !ok {
		return
	}

	elapsed := time.Since(start)
	e.logger.Debug("rebuilt grid",
		"engine", e.id,
		"trigger", trigger,
		"cols", m.Columns,
		"rows", m.Rows,
		"cell", m.CellSize,
		"duration", elapsed)
	observability.Rebuild().OnRebuildComplete(ctx, e.id, m.Columns, m.Rows, elapsed)

	if e.opts.OnRebuild != nil {
		e.opts.OnRebuild(m)
	}
}

// render draws one frame under the engine lock. A deferred resize is dropped
// when the engine closed while it waited.
func (e *Engine) render(ctx context.Context, trigger string) (grid.Metrics, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if trigger == TriggerResize && e.stopped {
		return grid.Metrics{}, false
	}
	observability.Rebuild().OnRebuildStart(ctx, e.id, trigger)

	w, h := e.doc.Size()
	m := grid.Compute(w, h, e.settings(), e.rotation())
	e.driver.Render(e.surface, m, e.status)
	e.metrics = m
	e.rebuilds++
	return m, true
}

// settings returns the configured settings with the cell-size input applied.
func (e *Engine) settings() grid.Settings {
	s := e.opts.Settings
	if e.opts.CellSizeID != "" {
		if v, ok := e.doc.Value(e.opts.CellSizeID); ok {
			if size := ParseNumber(v, s.TargetCellSize); size > 0 {
				s.TargetCellSize = size
			}
		}
	}
	return s
}

// rotation returns the rotation source, or nil when none is configured.
func (e *Engine) rotation() func() float64 {
	if e.opts.RotationID == "" {
		return nil
	}
	return func() float64 {
		v, ok := e.doc.Value(e.opts.RotationID)
		if !ok {
			return 0
		}
		return ParseNumber(v, 0)
	}
}
