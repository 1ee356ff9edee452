// Package geom provides the small set of planar geometry helpers shared by
// highlight predicates and overlay hooks.
//
// Predicates and overlays that agree on one distance notion can select
// exactly the cells a drawn stroke passes over:
//
//	d := geom.DistanceToSegment(cx, cy, x1, y1, x2, y2)
//	highlight := d <= m.StrokeWidth/2
package geom

import "math"

// DistanceToSegment returns the shortest Euclidean distance from the point
// (px, py) to the segment (x1, y1)-(x2, y2).
//
// The projection parameter is clamped to [0, 1], so the closest point always
// lies on the segment and never on its extension. A zero-length segment has
// its squared length floored to 1, which collapses the projection onto
// (x1, y1).
func DistanceToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		lengthSq = 1
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lengthSq
	t = max(0, min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}

// Point is a position in surface pixel space.
type Point struct {
	X, Y float64
}

// Rotate returns p rotated by deg degrees (clockwise in screen space, where
// y grows downward) around the center c.
func Rotate(p, c Point, deg float64) Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-c.X, p.Y-c.Y
	return Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
