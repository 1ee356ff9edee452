// Package patterns provides named highlight patterns for the grid.
//
// Each pattern is a render.Hooks value pairing a highlight predicate with an
// optional overlay. Radial and linear patterns are sized from the metrics'
// reference center, radius, and stroke width, and follow the metrics'
// rotation in degrees:
//
//	p, err := patterns.Lookup("ring")
//	if err != nil {
//	    return err
//	}
//	driver := render.NewDriver(render.DefaultStyle(), p.Hooks)
package patterns

import (
	"math"
	"sort"

	"github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/geom"
	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/render"
)

// Default is the pattern used when none is named.
const Default = "ring"

// Pattern is a named set of hooks.
type Pattern struct {
	Name        string
	Description string
	Hooks       render.Hooks
}

var registry = map[string]Pattern{
	"none": {
		Name:        "none",
		Description: "plain grid, no highlight",
	},
	"ring": {
		Name:        "ring",
		Description: "circle of the reference radius around the center",
		Hooks:       render.Hooks{IsHighlighted: onRing, DrawOverlay: drawRing},
	},
	"line": {
		Name:        "line",
		Description: "diameter through the center, turned by the rotation",
		Hooks:       render.Hooks{IsHighlighted: onSegments(lineSegments), DrawOverlay: drawSegments(lineSegments)},
	},
	"cross": {
		Name:        "cross",
		Description: "two perpendicular diameters, turned by the rotation",
		Hooks:       render.Hooks{IsHighlighted: onSegments(crossSegments), DrawOverlay: drawSegments(crossSegments)},
	},
	"diagonal": {
		Name:        "diagonal",
		Description: "cells where row equals column",
		Hooks:       render.Hooks{IsHighlighted: func(c render.CellContext) bool { return c.Row == c.Col }},
	},
	"checker": {
		Name:        "checker",
		Description: "alternating checkerboard",
		Hooks:       render.Hooks{IsHighlighted: func(c render.CellContext) bool { return (c.Row+c.Col)%2 == 0 }},
	},
}

// Lookup returns the pattern registered under name. An empty name selects
// Default.
func Lookup(name string) (Pattern, error) {
	if name == "" {
		name = Default
	}
	p, ok := registry[name]
	if !ok {
		return Pattern{}, errors.New(errors.ErrCodeInvalidPattern, "unknown pattern %q", name)
	}
	return p, nil
}

// Names returns the registered pattern names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered pattern, sorted by name.
func All() []Pattern {
	names := Names()
	out := make([]Pattern, len(names))
	for i, name := range names {
		out[i] = registry[name]
	}
	return out
}

func onRing(c render.CellContext) bool {
	m := c.Metrics
	d := math.Hypot(c.CX-m.CenterX, c.CY-m.CenterY)
	return math.Abs(d-m.Radius) <= m.StrokeWidth/2
}

func drawRing(o render.OverlayContext) {
	m := o.Metrics
	if m.Radius <= 0 {
		return
	}
	o.Surface.DrawCircle(m.CenterX, m.CenterY, m.Radius, overlayStroke(o))
}

type segment struct{ a, b geom.Point }

// lineSegments is the diameter along the rotation angle.
func lineSegments(m grid.Metrics) []segment {
	return []segment{diameter(m, m.Rotation)}
}

func crossSegments(m grid.Metrics) []segment {
	return []segment{diameter(m, m.Rotation), diameter(m, m.Rotation+90)}
}

func diameter(m grid.Metrics, deg float64) segment {
	c := geom.Point{X: m.CenterX, Y: m.CenterY}
	a := geom.Point{X: c.X - m.Radius, Y: c.Y}
	b := geom.Point{X: c.X + m.Radius, Y: c.Y}
	return segment{geom.Rotate(a, c, deg), geom.Rotate(b, c, deg)}
}

func onSegments(segs func(grid.Metrics) []segment) render.Predicate {
	return func(c render.CellContext) bool {
		for _, s := range segs(c.Metrics) {
			if c.Helpers.DistanceToSegment(c.CX, c.CY, s.a.X, s.a.Y, s.b.X, s.b.Y) <= c.Metrics.StrokeWidth/2 {
				return true
			}
		}
		return false
	}
}

func drawSegments(segs func(grid.Metrics) []segment) render.OverlayHook {
	return func(o render.OverlayContext) {
		st := overlayStroke(o)
		for _, s := range segs(o.Metrics) {
			o.Surface.DrawLine(s.a.X, s.a.Y, s.b.X, s.b.Y, st)
		}
	}
}

func overlayStroke(o render.OverlayContext) render.Stroke {
	return render.Stroke{
		Color:   o.Style.HighlightFill,
		Width:   o.Metrics.StrokeWidth,
		Opacity: o.Style.StrokeOpacity,
	}
}
