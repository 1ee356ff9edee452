package grid

import "math"

const (
	// DefaultMinColumns is the column floor applied when Settings.MinColumns is unset.
	DefaultMinColumns = 16

	// DefaultCellSize is the target cell size in pixels.
	DefaultCellSize = 14.0

	// DefaultStrokeMultiplier scales the cell size into the reference stroke width.
	DefaultStrokeMultiplier = 3.0

	// minRadiusInset is the smallest distance kept between the reference
	// circle and the grid edge.
	minRadiusInset = 6.0
)

// Multiplier yields the stroke-width multiplier. It is evaluated once per
// Compute call, which lets callers vary the stroke with time or viewport.
type Multiplier func() float64

// Const returns a Multiplier that always yields v.
func Const(v float64) Multiplier { return func() float64 { return v } }

// Settings are the sizing inputs of the layout engine.
type Settings struct {
	TargetCellSize   float64    // desired cell edge in pixels
	MinColumns       int        // lower bound on the column count
	StrokeMultiplier Multiplier // nil means DefaultStrokeMultiplier
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		TargetCellSize:   DefaultCellSize,
		MinColumns:       DefaultMinColumns,
		StrokeMultiplier: Const(DefaultStrokeMultiplier),
	}
}

// Metrics is the immutable geometry snapshot of one rebuild.
type Metrics struct {
	ViewportWidth  float64 `json:"viewport_width"`
	ViewportHeight float64 `json:"viewport_height"`
	Columns        int     `json:"columns"`
	Rows           int     `json:"rows"`
	CellSize       float64 `json:"cell_size"`
	TotalCells     int     `json:"total_cells"`
	GridWidth      float64 `json:"grid_width"`
	GridHeight     float64 `json:"grid_height"`
	CenterX        float64 `json:"center_x"`
	CenterY        float64 `json:"center_y"`
	Radius         float64 `json:"radius"`
	RadiusCells    int     `json:"radius_cells"`
	StrokeWidth    float64 `json:"stroke_width"`
	Rotation       float64 `json:"rotation"`
}

// Compute derives the grid metrics for a width×height viewport.
//
// rotation is read once; a nil source yields 0. Non-positive viewport sizes
// are treated as one pixel and unset settings fall back to their defaults, so
// Compute never fails.
func Compute(width, height float64, s Settings, rotation func() float64) Metrics {
	width = max(width, 1)
	height = max(height, 1)

	target := s.TargetCellSize
	if !(target > 0) || math.IsInf(target, 0) {
		target = DefaultCellSize
	}
	minCols := s.MinColumns
	if minCols < 1 {
		minCols = DefaultMinColumns
	}

	cols := max(minCols, int(math.Floor(width/target)))
	cellSize := width / float64(cols)
	rows := max(1, int(math.Floor(height/cellSize)))

	gridWidth := float64(cols) * cellSize
	gridHeight := float64(rows) * cellSize

	radiusCells := RadiusCells(gridWidth, gridHeight, cellSize)

	m := Metrics{
		ViewportWidth:  width,
		ViewportHeight: height,
		Columns:        cols,
		Rows:           rows,
		CellSize:       cellSize,
		TotalCells:     rows * cols,
		GridWidth:      gridWidth,
		GridHeight:     gridHeight,
		CenterX:        AlignCenter(gridWidth, cellSize),
		CenterY:        AlignCenter(gridHeight, cellSize),
		Radius:         float64(radiusCells) * cellSize,
		RadiusCells:    radiusCells,
		StrokeWidth:    cellSize * strokeMultiplier(s.StrokeMultiplier),
	}
	if rotation != nil {
		m.Rotation = rotation()
	}
	return m
}

// AlignCenter rounds the midpoint of extent to the nearest cell boundary and
// clamps it to [cellSize/2, extent-cellSize/2].
func AlignCenter(extent, cellSize float64) float64 {
	c := math.Round(extent/2/cellSize) * cellSize
	lo, hi := cellSize/2, extent-cellSize/2
	return max(lo, min(hi, c))
}

// RadiusCells returns the reference radius as a whole number of cells:
// min(gridWidth, gridHeight)/2 - max(6, cellSize), rounded to the nearest
// cell and never negative.
func RadiusCells(gridWidth, gridHeight, cellSize float64) int {
	r := min(gridWidth, gridHeight)/2 - max(minRadiusInset, cellSize)
	return max(0, int(math.Round(r/cellSize)))
}

func strokeMultiplier(m Multiplier) float64 {
	if m == nil {
		return DefaultStrokeMultiplier
	}
	return m()
}

// CellOrigin returns the top-left corner of the cell at (row, col).
func (m Metrics) CellOrigin(row, col int) (x, y float64) {
	return float64(col) * m.CellSize, float64(row) * m.CellSize
}

// CellCenter returns the center of the cell at (row, col).
func (m Metrics) CellCenter(row, col int) (cx, cy float64) {
	x, y := m.CellOrigin(row, col)
	return x + m.CellSize/2, y + m.CellSize/2
}

// CellAt returns the grid coordinate containing the pixel (x, y) and whether
// that pixel lies inside the grid extent.
func (m Metrics) CellAt(x, y float64) (row, col int, ok bool) {
	if x < 0 || y < 0 || x >= m.GridWidth || y >= m.GridHeight {
		return 0, 0, false
	}
	return int(y / m.CellSize), int(x / m.CellSize), true
}
