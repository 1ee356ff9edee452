package sink

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/render"
)

// SVGOption configures an [SVG] surface.
type SVGOption func(*SVG)

// WithID sets the id attribute of the root <svg> element.
func WithID(id string) SVGOption { return func(s *SVG) { s.id = id } }

// WithBackground paints a full-size background rectangle before the cells.
func WithBackground(color string) SVGOption { return func(s *SVG) { s.background = color } }

// SVG is a surface that produces SVG markup.
type SVG struct {
	id         string
	background string

	pending bytes.Buffer

	mu    sync.RWMutex
	frame []byte
}

// NewSVG returns an empty SVG surface.
func NewSVG(opts ...SVGOption) *SVG {
	s := &SVG{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset starts a new frame sized to the viewport.
func (s *SVG) Reset(m grid.Metrics) {
	s.pending.Reset()
	w, h := num(m.ViewportWidth), num(m.ViewportHeight)
	fmt.Fprintf(&s.pending, `<svg xmlns="http://www.w3.org/2000/svg"`)
	if s.id != "" {
		fmt.Fprintf(&s.pending, ` id="%s"`, EscapeXML(s.id))
	}
	fmt.Fprintf(&s.pending, ` width="%s" height="%s" viewBox="0 0 %s %s" data-cols="%d" data-rows="%d">`+"\n",
		w, h, w, h, m.Columns, m.Rows)
	if s.background != "" {
		fmt.Fprintf(&s.pending, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(s.background))
	}
}

// DrawCell writes one <rect>.
func (s *SVG) DrawCell(c render.CellShape) {
	fmt.Fprintf(&s.pending, `  <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"`,
		num(c.X), num(c.Y), num(c.Size), num(c.Size), num(c.Radius), EscapeXML(c.Fill))
	if c.Highlight {
		s.pending.WriteString(` class="hl"`)
	}
	s.pending.WriteString("/>\n")
}

// DrawLine writes one <line> with round caps.
func (s *SVG) DrawLine(x1, y1, x2, y2 float64, st render.Stroke) {
	fmt.Fprintf(&s.pending, `  <line x1="%s" y1="%s" x2="%s" y2="%s"%s stroke-linecap="round"/>`+"\n",
		num(x1), num(y1), num(x2), num(y2), strokeAttrs(st))
}

// DrawCircle writes one unfilled <circle>.
func (s *SVG) DrawCircle(cx, cy, r float64, st render.Stroke) {
	fmt.Fprintf(&s.pending, `  <circle cx="%s" cy="%s" r="%s" fill="none"%s/>`+"\n",
		num(cx), num(cy), num(r), strokeAttrs(st))
}

// Commit closes the document and publishes it.
func (s *SVG) Commit() {
	s.pending.WriteString("</svg>\n")
	frame := bytes.Clone(s.pending.Bytes())

	s.mu.Lock()
	s.frame = frame
	s.mu.Unlock()
}

// Bytes returns the last committed document, or nil before the first commit.
func (s *SVG) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

func strokeAttrs(st render.Stroke) string {
	attrs := fmt.Sprintf(` stroke="%s" stroke-width="%s"`, EscapeXML(st.Color), num(st.Width))
	if o := opacity(st.Opacity); o < 1 {
		attrs += fmt.Sprintf(` stroke-opacity="%s"`, num(o))
	}
	return attrs
}

var (
	_ render.Surface   = (*SVG)(nil)
	_ render.Committer = (*SVG)(nil)
)
