package sink

import (
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pixelgrid/pkg/geom"
	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/render"
)

// Glyphs used by the terminal surface. Each cell is two columns wide so the
// grid stays roughly square in a monospace font.
const (
	glyphCell   = "██"
	glyphStroke = "▓▓"
	glyphEmpty  = "  "
)

type termCell struct {
	color string
	glyph string
}

// Terminal is a surface that renders each grid cell as colored text.
//
// Overlay lines and circles cannot be drawn between character cells, so they
// are rasterized onto the cells their stroke covers.
type Terminal struct {
	m     grid.Metrics
	cells [][]termCell

	mu    sync.RWMutex
	frame string
}

// NewTerminal returns an empty terminal surface.
func NewTerminal() *Terminal { return &Terminal{} }

// Reset allocates one character cell per grid cell.
func (t *Terminal) Reset(m grid.Metrics) {
	t.m = m
	t.cells = make([][]termCell, m.Rows)
	for r := range t.cells {
		t.cells[r] = make([]termCell, m.Columns)
	}
}

// DrawCell records the fill of one cell.
func (t *Terminal) DrawCell(c render.CellShape) {
	if !t.inside(c.Row, c.Col) {
		return
	}
	glyph := glyphCell
	if c.Size <= 0 {
		glyph = glyphEmpty
	}
	t.cells[c.Row][c.Col] = termCell{color: c.Fill, glyph: glyph}
}

// DrawLine marks every cell whose center lies within half the stroke width
// of the segment.
func (t *Terminal) DrawLine(x1, y1, x2, y2 float64, st render.Stroke) {
	reach := max(st.Width/2, t.m.CellSize/2)
	t.stroke(st.Color, func(cx, cy float64) bool {
		return geom.DistanceToSegment(cx, cy, x1, y1, x2, y2) <= reach
	})
}

// DrawCircle marks every cell whose center lies within half the stroke width
// of the circle outline.
func (t *Terminal) DrawCircle(cx, cy, r float64, st render.Stroke) {
	reach := max(st.Width/2, t.m.CellSize/2)
	center := geom.Point{X: cx, Y: cy}
	t.stroke(st.Color, func(px, py float64) bool {
		return math.Abs(geom.Distance(geom.Point{X: px, Y: py}, center)-r) <= reach
	})
}

func (t *Terminal) stroke(color string, hit func(cx, cy float64) bool) {
	for row := range t.cells {
		for col := range t.cells[row] {
			if hit(t.m.CellCenter(row, col)) {
				t.cells[row][col] = termCell{color: color, glyph: glyphStroke}
			}
		}
	}
}

// Commit renders the recorded cells and publishes the text.
func (t *Terminal) Commit() {
	styles := make(map[string]lipgloss.Style)
	var b strings.Builder
	for row, cells := range t.cells {
		if row > 0 {
			b.WriteByte('\n')
		}
		for _, c := range cells {
			if c.glyph == "" {
				b.WriteString(glyphEmpty)
				continue
			}
			st, ok := styles[c.color]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(c.color))
				styles[c.color] = st
			}
			b.WriteString(st.Render(c.glyph))
		}
	}

	t.mu.Lock()
	t.frame = b.String()
	t.mu.Unlock()
}

// String returns the last committed frame.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frame
}

func (t *Terminal) inside(row, col int) bool {
	return row >= 0 && row < len(t.cells) && col >= 0 && col < len(t.cells[row])
}

var (
	_ render.Surface   = (*Terminal)(nil)
	_ render.Committer = (*Terminal)(nil)
)
