package render

import "github.com/matzehuels/pixelgrid/pkg/grid"

// Surface is a 2D drawing target owned by a Driver for the length of one
// rebuild.
type Surface interface {
	// Reset discards everything drawn so far and sizes the surface to the
	// viewport described by m.
	Reset(m grid.Metrics)
	// DrawCell draws one grid cell.
	DrawCell(c CellShape)
	// DrawLine strokes a straight line.
	DrawLine(x1, y1, x2, y2 float64, s Stroke)
	// DrawCircle strokes a circle outline.
	DrawCircle(cx, cy, r float64, s Stroke)
}

// Committer is implemented by surfaces that publish a frame only once it is
// complete. Commit is called after the last draw call of a rebuild.
type Committer interface {
	Commit()
}

// Output receives the status text of each rebuild.
type Output interface {
	SetText(text string)
}

// CellShape is the visible footprint of one cell.
type CellShape struct {
	Row, Col  int
	X, Y      float64 // top-left of the footprint, already inset
	Size      float64
	Radius    float64 // corner rounding
	Fill      string
	Highlight bool
}

// Stroke describes how a line or outline is painted.
type Stroke struct {
	Color   string
	Width   float64
	Opacity float64 // 0 means fully opaque
}
