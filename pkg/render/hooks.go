package render

import (
	"fmt"
	"math"

	"github.com/matzehuels/pixelgrid/pkg/geom"
	"github.com/matzehuels/pixelgrid/pkg/grid"
)

// Helpers exposes geometry to predicates and overlays.
type Helpers struct {
	DistanceToSegment func(px, py, x1, y1, x2, y2 float64) float64
}

// DefaultHelpers returns the helpers backed by package geom.
func DefaultHelpers() Helpers {
	return Helpers{DistanceToSegment: geom.DistanceToSegment}
}

// CellContext describes one cell during a rebuild. Highlight is false while
// the predicate itself runs.
type CellContext struct {
	Row, Col  int
	CX, CY    float64
	Metrics   grid.Metrics
	Highlight bool
	Helpers   Helpers
}

// OverlayContext is handed to DrawOverlay once all cells are drawn.
type OverlayContext struct {
	Surface Surface
	Metrics grid.Metrics
	Style   Style
	Helpers Helpers
}

type (
	// Predicate decides whether a cell uses the highlight fill. It must not
	// mutate shared state.
	Predicate func(c CellContext) bool

	// CellHook runs after a cell is drawn. Its result is ignored.
	CellHook func(c CellContext)

	// OverlayHook draws decoration above the cells.
	OverlayHook func(o OverlayContext)

	// BuildHook observes the start or end of a rebuild.
	BuildHook func(m grid.Metrics)

	// StatusFunc formats the status line for a rebuild.
	StatusFunc func(m grid.Metrics) string
)

// Hooks are the optional extension points of a rebuild. A nil field is
// skipped, except Status, which falls back to DefaultStatus.
type Hooks struct {
	IsHighlighted Predicate
	OnCell        CellHook
	DrawOverlay   OverlayHook
	OnBuildStart  BuildHook
	OnBuildEnd    BuildHook
	Status        StatusFunc
}

// DefaultStatus summarizes the grid size and the rounded cell size.
func DefaultStatus(m grid.Metrics) string {
	return fmt.Sprintf("Grid: %d × %d (%d blocks). Block: %dpx.",
		m.Columns, m.Rows, m.TotalCells, int(math.Round(m.CellSize)))
}
