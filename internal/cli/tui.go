package cli

import (
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pixelgrid/pkg/config"
	"github.com/matzehuels/pixelgrid/pkg/engine"
	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/page"
	"github.com/matzehuels/pixelgrid/pkg/patterns"
	"github.com/matzehuels/pixelgrid/pkg/render/sink"
)

// Element identifiers on the watch page.
const (
	watchSurfaceID  = "grid"
	watchStatusID   = "hud"
	watchRotationID = "rotation"
	watchCellSizeID = "cell-size"
)

const (
	// hudLines is the number of terminal rows below the grid.
	hudLines = 2

	rotationStep = 15.0
	cellSizeStep = 2.0
	minCellSize  = 2.0
)

var hudStyle = lipgloss.NewStyle().Foreground(colorGray)

// frameMsg carries the metrics of a committed frame into the update loop.
type frameMsg grid.Metrics

// WatchModel is the bubbletea model for the live terminal grid.
//
// Terminal resizes are forwarded to the page viewport and reach the engine
// through its debounced resize path, so a drag produces one redraw. Each
// terminal cell pair stands for pxPerCell viewport pixels.
type WatchModel struct {
	cfg       *config.Config
	page      *page.Page
	term      *sink.Terminal
	engine    *engine.Engine
	frames    chan grid.Metrics
	pattern   string
	pxPerCell float64

	metrics grid.Metrics
	err     error
}

// NewWatchModel creates a watch model and renders the first frame.
func NewWatchModel(cfg *config.Config) (*WatchModel, error) {
	m := &WatchModel{
		cfg:       cfg,
		page:      page.New(cfg.Viewport.Width, cfg.Viewport.Height),
		term:      sink.NewTerminal(),
		frames:    make(chan grid.Metrics, 1),
		pattern:   cfg.Pattern,
		pxPerCell: cfg.Grid.CellSize,
	}
	if m.pxPerCell <= 0 {
		m.pxPerCell = grid.DefaultCellSize
	}
	m.page.AddSurface(watchSurfaceID, m.term)
	m.page.AddOutput(watchStatusID)
	m.page.AddInput(watchRotationID, formatNumber(cfg.Rotation))
	m.page.AddInput(watchCellSizeID, formatNumber(m.pxPerCell))

	if err := m.start(); err != nil {
		return nil, err
	}
	return m, nil
}

// start binds a fresh engine for the current pattern, closing any previous one.
func (m *WatchModel) start() error {
	p, err := patterns.Lookup(m.pattern)
	if err != nil {
		return err
	}
	if m.engine != nil {
		m.engine.Close()
	}
	e, err := engine.Init(m.page, engine.Options{
		SurfaceID:  watchSurfaceID,
		StatusID:   watchStatusID,
		RotationID: watchRotationID,
		CellSizeID: watchCellSizeID,
		Settings:   m.cfg.GridSettings(),
		Style:      m.cfg.RenderStyle(),
		Hooks:      p.Hooks,
		Debounce:   m.cfg.Debounce(),
		OnRebuild:  m.publish,
	})
	if err != nil {
		return err
	}
	m.engine = e
	m.metrics = e.Metrics()
	return nil
}

// publish hands the latest frame to the update loop, replacing an unread one.
func (m *WatchModel) publish(g grid.Metrics) {
	for {
		select {
		case m.frames <- g:
			return
		default:
			select {
			case <-m.frames:
			default:
			}
		}
	}
}

func (m *WatchModel) waitForFrame() tea.Msg {
	return frameMsg(<-m.frames)
}

// Init starts listening for committed frames.
func (m *WatchModel) Init() tea.Cmd {
	return m.waitForFrame
}

// Update handles frames, terminal resizes, and key presses.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.metrics = grid.Metrics(msg)
		return m, m.waitForFrame

	case tea.WindowSizeMsg:
		rows := max(msg.Height-hudLines, 1)
		cols := max(msg.Width/2, 1)
		m.page.SetSize(float64(cols)*m.pxPerCell, float64(rows)*m.pxPerCell)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.engine.Close()
			return m, tea.Quit
		case "left", "h":
			m.adjust(watchRotationID, -rotationStep, 0)
		case "right", "l":
			m.adjust(watchRotationID, rotationStep, 0)
		case "+", "=":
			m.adjust(watchCellSizeID, cellSizeStep, m.pxPerCell)
		case "-", "_":
			m.adjust(watchCellSizeID, -cellSizeStep, m.pxPerCell)
		case "p", "tab":
			m.nextPattern()
		case "r":
			m.engine.Rebuild()
		}
	}
	return m, nil
}

// adjust adds delta to a numeric input; the engine rebuilds immediately.
func (m *WatchModel) adjust(id string, delta, def float64) {
	v, _ := m.page.Value(id)
	next := engine.ParseNumber(v, def) + delta
	if id == watchCellSizeID {
		next = max(next, minCellSize)
	} else {
		next = normalizeDegrees(next)
	}
	m.page.SetValue(id, formatNumber(next))
}

func (m *WatchModel) nextPattern() {
	names := patterns.Names()
	i := 0
	for j, n := range names {
		if n == m.pattern {
			i = (j + 1) % len(names)
			break
		}
	}
	m.pattern = names[i]
	if err := m.start(); err != nil {
		m.err = err
	}
}

// View renders the grid with the status line and key help below it.
func (m *WatchModel) View() string {
	var b strings.Builder
	b.WriteString(m.term.String())
	b.WriteString("\n")

	status := m.page.Text(watchStatusID)
	if m.err != nil {
		status = m.err.Error()
	}
	b.WriteString(StyleHighlight.Render(m.pattern) + " " + hudStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ rotate  +/- cell size  p pattern  r redraw  q quit"))
	return b.String()
}

// Metrics returns the metrics of the last frame seen by the update loop.
func (m *WatchModel) Metrics() grid.Metrics { return m.metrics }

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func normalizeDegrees(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	if v >= 360 {
		return 0
	}
	return v
}
