package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestDistanceToSegment(t *testing.T) {
	tests := []struct {
		name                   string
		px, py, x1, y1, x2, y2 float64
		want                   float64
	}{
		{
			name: "degenerate segment at point",
			px:   3, py: 4, x1: 3, y1: 4, x2: 3, y2: 4,
			want: 0,
		},
		{
			name: "degenerate segment away from point",
			px:   3, py: 4, x1: 0, y1: 0, x2: 0, y2: 0,
			want: 5,
		},
		{
			name: "perpendicular to midpoint",
			px:   5, py: 3, x1: 0, y1: 0, x2: 10, y2: 0,
			want: 3,
		},
		{
			name: "beyond second endpoint",
			px:   13, py: 4, x1: 0, y1: 0, x2: 10, y2: 0,
			want: 5,
		},
		{
			name: "before first endpoint",
			px:   -3, py: -4, x1: 0, y1: 0, x2: 10, y2: 0,
			want: 5,
		},
		{
			name: "on segment",
			px:   2, py: 2, x1: 0, y1: 0, x2: 4, y2: 4,
			want: 0,
		},
		{
			name: "diagonal segment",
			px:   0, py: 4, x1: 0, y1: 0, x2: 4, y2: 4,
			want: math.Sqrt(8),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToSegment(tt.px, tt.py, tt.x1, tt.y1, tt.x2, tt.y2)
			if math.Abs(got-tt.want) > eps {
				t.Errorf("DistanceToSegment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceToSegmentNonNegative(t *testing.T) {
	for px := -20.0; px <= 20; px += 2.5 {
		for py := -20.0; py <= 20; py += 2.5 {
			if d := DistanceToSegment(px, py, -5, 3, 7, -9); d < 0 {
				t.Fatalf("DistanceToSegment(%v, %v) = %v, want >= 0", px, py, d)
			}
		}
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name string
		p, c Point
		deg  float64
		want Point
	}{
		{"zero", Point{10, 0}, Point{0, 0}, 0, Point{10, 0}},
		{"quarter turn", Point{10, 0}, Point{0, 0}, 90, Point{0, 10}},
		{"half turn around center", Point{15, 5}, Point{10, 5}, 180, Point{5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.p, tt.c, tt.deg)
			if math.Abs(got.X-tt.want.X) > eps || math.Abs(got.Y-tt.want.Y) > eps {
				t.Errorf("Rotate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(Point{0, 0}, Point{3, 4}); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}
