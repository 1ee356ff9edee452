package page

import (
	"sync"

	"github.com/matzehuels/pixelgrid/pkg/render"
)

// Page is an in-memory document. The zero value is not usable; call New.
type Page struct {
	mu       sync.RWMutex
	width    float64
	height   float64
	surfaces map[string]render.Surface
	inputs   map[string]*Input
	outputs  map[string]*Output
	resize   listeners
}

// New returns an empty page with the given viewport size.
func New(width, height float64) *Page {
	return &Page{
		width:    width,
		height:   height,
		surfaces: make(map[string]render.Surface),
		inputs:   make(map[string]*Input),
		outputs:  make(map[string]*Output),
	}
}

// AddSurface registers s under id, replacing any previous surface.
func (p *Page) AddSurface(id string, s render.Surface) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.surfaces[id] = s
}

// Surface looks up a drawing surface.
func (p *Page) Surface(id string) (render.Surface, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.surfaces[id]
	return s, ok && s != nil
}

// AddInput registers a text input with an initial value and returns it.
func (p *Page) AddInput(id, value string) *Input {
	in := &Input{value: value}
	p.mu.Lock()
	p.inputs[id] = in
	p.mu.Unlock()
	return in
}

// Input looks up a text input.
func (p *Page) Input(id string) (*Input, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	in, ok := p.inputs[id]
	return in, ok
}

// Value returns the current value of input id.
func (p *Page) Value(id string) (string, bool) {
	in, ok := p.Input(id)
	if !ok {
		return "", false
	}
	return in.Value(), true
}

// SetValue changes input id and fires its change listeners. It reports
// whether the input exists.
func (p *Page) SetValue(id, value string) bool {
	in, ok := p.Input(id)
	if ok {
		in.Set(value)
	}
	return ok
}

// OnInput registers fn as a change listener on input id. The returned
// function removes it; it is nil when the input does not exist.
func (p *Page) OnInput(id string, fn func()) (remove func()) {
	in, ok := p.Input(id)
	if !ok {
		return nil
	}
	return in.OnChange(fn)
}

// AddOutput registers a text output and returns it.
func (p *Page) AddOutput(id string) *Output {
	out := &Output{}
	p.mu.Lock()
	p.outputs[id] = out
	p.mu.Unlock()
	return out
}

// Output looks up a text output.
func (p *Page) Output(id string) (render.Output, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out, ok := p.outputs[id]
	if !ok {
		return nil, false
	}
	return out, true
}

// Text returns the current text of output id, or "" if there is none.
func (p *Page) Text(id string) string {
	p.mu.RLock()
	out, ok := p.outputs[id]
	p.mu.RUnlock()
	if !ok {
		return ""
	}
	return out.Text()
}

// Size returns the viewport size.
func (p *Page) Size() (width, height float64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.width, p.height
}

// SetSize changes the viewport and fires the resize listeners, even when the
// size is unchanged.
func (p *Page) SetSize(width, height float64) {
	p.mu.Lock()
	p.width, p.height = width, height
	p.mu.Unlock()
	p.resize.fire()
}

// OnResize registers fn as a resize listener. The returned function removes it.
func (p *Page) OnResize(fn func()) (remove func()) {
	return p.resize.add(fn)
}

// ResizeListeners returns the number of attached resize listeners.
func (p *Page) ResizeListeners() int { return p.resize.len() }
