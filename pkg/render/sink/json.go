package sink

import (
	"encoding/json"
	"sync"

	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/render"
)

// JSON is a surface that records the frame as data.
type JSON struct {
	pending jsonFrame

	mu    sync.RWMutex
	frame []byte
	err   error
}

type jsonFrame struct {
	Metrics  grid.Metrics  `json:"metrics"`
	Cells    []jsonCell    `json:"cells"`
	Overlays []jsonOverlay `json:"overlays,omitempty"`
}

type jsonCell struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Size      float64 `json:"size"`
	Fill      string  `json:"fill"`
	Highlight bool    `json:"highlight,omitempty"`
}

type jsonOverlay struct {
	Kind    string    `json:"kind"` // "line" or "circle"
	Points  []float64 `json:"points"`
	Color   string    `json:"color"`
	Width   float64   `json:"width"`
	Opacity float64   `json:"opacity,omitempty"`
}

// NewJSON returns an empty JSON surface.
func NewJSON() *JSON { return &JSON{} }

// Reset starts a new frame for m.
func (j *JSON) Reset(m grid.Metrics) {
	j.pending = jsonFrame{Metrics: m, Cells: make([]jsonCell, 0, m.TotalCells)}
}

// DrawCell records one cell.
func (j *JSON) DrawCell(c render.CellShape) {
	j.pending.Cells = append(j.pending.Cells, jsonCell{
		Row: c.Row, Col: c.Col,
		X: c.X, Y: c.Y, Size: c.Size,
		Fill:      c.Fill,
		Highlight: c.Highlight,
	})
}

// DrawLine records a line as [x1, y1, x2, y2].
func (j *JSON) DrawLine(x1, y1, x2, y2 float64, st render.Stroke) {
	j.pending.Overlays = append(j.pending.Overlays, jsonOverlay{
		Kind: "line", Points: []float64{x1, y1, x2, y2},
		Color: st.Color, Width: st.Width, Opacity: st.Opacity,
	})
}

// DrawCircle records a circle as [cx, cy, r].
func (j *JSON) DrawCircle(cx, cy, r float64, st render.Stroke) {
	j.pending.Overlays = append(j.pending.Overlays, jsonOverlay{
		Kind: "circle", Points: []float64{cx, cy, r},
		Color: st.Color, Width: st.Width, Opacity: st.Opacity,
	})
}

// Commit marshals the frame and publishes it.
func (j *JSON) Commit() {
	data, err := json.MarshalIndent(j.pending, "", "  ")

	j.mu.Lock()
	defer j.mu.Unlock()
	j.err = err
	if err == nil {
		j.frame = data
	}
}

// Bytes returns the last committed document.
func (j *JSON) Bytes() []byte {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.frame
}

// Err reports the marshal error of the last commit, if any.
func (j *JSON) Err() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.err
}

var (
	_ render.Surface   = (*JSON)(nil)
	_ render.Committer = (*JSON)(nil)
)
