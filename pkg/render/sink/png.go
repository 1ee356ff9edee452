package sink

import (
	"bytes"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"

	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/render"
)

// PNGOption configures a [PNG] surface.
type PNGOption func(*PNG)

// WithScale sets the pixel density (default 1; 2 renders at double resolution).
func WithScale(scale float64) PNGOption {
	return func(p *PNG) {
		if scale > 0 {
			p.scale = scale
		}
	}
}

// WithPNGBackground fills the canvas before the cells are drawn.
func WithPNGBackground(color string) PNGOption { return func(p *PNG) { p.background = color } }

// PNG is a raster surface backed by a gg drawing context.
type PNG struct {
	scale      float64
	background string

	dc  *gg.Context
	err error

	mu    sync.RWMutex
	frame []byte
}

// NewPNG returns an empty PNG surface.
func NewPNG(opts ...PNGOption) *PNG {
	p := &PNG{scale: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reset allocates a fresh canvas sized to the viewport.
func (p *PNG) Reset(m grid.Metrics) {
	w := int(math.Ceil(m.ViewportWidth * p.scale))
	h := int(math.Ceil(m.ViewportHeight * p.scale))
	p.dc = gg.NewContext(max(w, 1), max(h, 1))
	p.dc.Scale(p.scale, p.scale)
	p.err = nil
	if p.background != "" {
		p.setColor(p.background, 1)
		p.dc.Clear()
	}
}

// DrawCell fills one rounded square.
func (p *PNG) DrawCell(c render.CellShape) {
	if c.Size <= 0 {
		return
	}
	p.dc.DrawRoundedRectangle(c.X, c.Y, c.Size, c.Size, c.Radius)
	p.setColor(c.Fill, 1)
	p.dc.Fill()
}

// DrawLine strokes a line with round caps.
func (p *PNG) DrawLine(x1, y1, x2, y2 float64, st render.Stroke) {
	p.dc.SetLineCapRound()
	p.dc.SetLineWidth(st.Width)
	p.setColor(st.Color, opacity(st.Opacity))
	p.dc.DrawLine(x1, y1, x2, y2)
	p.dc.Stroke()
}

// DrawCircle strokes a circle outline.
func (p *PNG) DrawCircle(cx, cy, r float64, st render.Stroke) {
	p.dc.SetLineWidth(st.Width)
	p.setColor(st.Color, opacity(st.Opacity))
	p.dc.DrawCircle(cx, cy, r)
	p.dc.Stroke()
}

// Commit encodes the canvas and publishes it.
func (p *PNG) Commit() {
	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		p.err = err
		return
	}
	p.mu.Lock()
	p.frame = buf.Bytes()
	p.mu.Unlock()
}

// Bytes returns the last committed image, or nil before the first commit.
func (p *PNG) Bytes() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.frame
}

// Err reports the encoding error of the last commit, if any.
func (p *PNG) Err() error { return p.err }

func (p *PNG) setColor(hex string, alpha float64) {
	r, g, b := parseColor(hex).RGB255()
	p.dc.SetColor(color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))})
}

var (
	_ render.Surface   = (*PNG)(nil)
	_ render.Committer = (*PNG)(nil)
)
