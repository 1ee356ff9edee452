package render

import "github.com/matzehuels/pixelgrid/pkg/grid"

// Driver renders metrics snapshots with a fixed style and hook set.
type Driver struct {
	style   Style
	hooks   Hooks
	helpers Helpers
}

// NewDriver returns a driver for the given style and hooks.
func NewDriver(style Style, hooks Hooks) *Driver {
	if hooks.Status == nil {
		hooks.Status = DefaultStatus
	}
	return &Driver{style: style, hooks: hooks, helpers: DefaultHelpers()}
}

// Style returns the driver's cell style.
func (d *Driver) Style() Style { return d.style }

// Status formats the status line for m.
func (d *Driver) Status(m grid.Metrics) string { return d.hooks.Status(m) }

// Render draws every cell of m onto s and publishes the status text to out,
// which may be nil.
func (d *Driver) Render(s Surface, m grid.Metrics, out Output) {
	h := d.hooks

	s.Reset(m)

	if h.OnBuildStart != nil {
		h.OnBuildStart(m)
	}

	size, inset := d.style.Footprint(m.CellSize)
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Columns; col++ {
			x, y := m.CellOrigin(row, col)
			c := CellContext{
				Row:     row,
				Col:     col,
				CX:      x + m.CellSize/2,
				CY:      y + m.CellSize/2,
				Metrics: m,
				Helpers: d.helpers,
			}
			if h.IsHighlighted != nil {
				c.Highlight = h.IsHighlighted(c)
			}

			s.DrawCell(CellShape{
				Row:       row,
				Col:       col,
				X:         x + inset,
				Y:         y + inset,
				Size:      size,
				Radius:    d.style.CornerRadius,
				Fill:      d.style.Fill(c.Highlight),
				Highlight: c.Highlight,
			})

			if h.OnCell != nil {
				h.OnCell(c)
			}
		}
	}

	if h.DrawOverlay != nil {
		h.DrawOverlay(OverlayContext{Surface: s, Metrics: m, Style: d.style, Helpers: d.helpers})
	}

	if h.OnBuildEnd != nil {
		h.OnBuildEnd(m)
	}

	if c, ok := s.(Committer); ok {
		c.Commit()
	}

	if out != nil {
		out.SetText(h.Status(m))
	}
}
