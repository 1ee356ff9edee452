package render

// Default style values.
const (
	DefaultGap           = 2.0
	DefaultCornerRadius  = 2.0
	DefaultBaseFill      = "#1e293b"
	DefaultHighlightFill = "#38bdf8"
	DefaultStrokeOpacity = 0.25
)

// Style holds the fixed visual parameters of the cells.
type Style struct {
	Gap           float64 // spacing subtracted from each cell's footprint
	CornerRadius  float64
	BaseFill      string
	HighlightFill string
	StrokeOpacity float64 // suggested opacity for overlay strokes
}

// DefaultStyle returns the slate/sky palette with a two pixel gap.
func DefaultStyle() Style {
	return Style{
		Gap:           DefaultGap,
		CornerRadius:  DefaultCornerRadius,
		BaseFill:      DefaultBaseFill,
		HighlightFill: DefaultHighlightFill,
		StrokeOpacity: DefaultStrokeOpacity,
	}
}

// Fill returns the fill color for a cell.
func (s Style) Fill(highlight bool) string {
	if highlight {
		return s.HighlightFill
	}
	return s.BaseFill
}

// Footprint returns the visible size of a cell and the inset that centers it
// within its slot.
func (s Style) Footprint(cellSize float64) (size, inset float64) {
	size = max(0, cellSize-s.Gap)
	return size, (cellSize - size) / 2
}
