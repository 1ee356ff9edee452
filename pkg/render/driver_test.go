package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/pixelgrid/pkg/grid"
)

// recorder is a Surface that keeps every draw call.
type recorder struct {
	events  []string
	cells   []CellShape
	lines   int
	circles int
	resets  int
	commits int
}

func (r *recorder) Reset(grid.Metrics) {
	r.resets++
	r.cells = nil
	r.events = append(r.events, "reset")
}

func (r *recorder) DrawCell(c CellShape) {
	r.cells = append(r.cells, c)
	r.events = append(r.events, "cell")
}

func (r *recorder) DrawLine(x1, y1, x2, y2 float64, s Stroke) {
	r.lines++
	r.events = append(r.events, "line")
}

func (r *recorder) DrawCircle(cx, cy, rad float64, s Stroke) {
	r.circles++
	r.events = append(r.events, "circle")
}

func (r *recorder) Commit() {
	r.commits++
	r.events = append(r.events, "commit")
}

type textOutput struct{ text string }

func (o *textOutput) SetText(s string) { o.text = s }

func fourByFour() grid.Metrics {
	return grid.Compute(56, 56, grid.Settings{TargetCellSize: 14, MinColumns: 4}, nil)
}

func TestRenderDiagonal(t *testing.T) {
	m := fourByFour()
	if m.Columns != 4 || m.Rows != 4 {
		t.Fatalf("metrics = %dx%d, want 4x4", m.Columns, m.Rows)
	}

	d := NewDriver(DefaultStyle(), Hooks{
		IsHighlighted: func(c CellContext) bool { return c.Row == c.Col },
	})
	rec := &recorder{}
	d.Render(rec, m, nil)

	if len(rec.cells) != 16 {
		t.Fatalf("drew %d cells, want 16", len(rec.cells))
	}

	highlighted := 0
	for _, c := range rec.cells {
		want := c.Row == c.Col
		if c.Highlight != want {
			t.Errorf("cell (%d,%d) highlight = %v, want %v", c.Row, c.Col, c.Highlight, want)
		}
		wantFill := DefaultBaseFill
		if want {
			wantFill = DefaultHighlightFill
			highlighted++
		}
		if c.Fill != wantFill {
			t.Errorf("cell (%d,%d) fill = %s, want %s", c.Row, c.Col, c.Fill, wantFill)
		}
	}
	if highlighted != 4 {
		t.Errorf("highlighted = %d, want 4", highlighted)
	}
}

func TestRenderNoPredicateUsesBaseFill(t *testing.T) {
	rec := &recorder{}
	NewDriver(DefaultStyle(), Hooks{}).Render(rec, fourByFour(), nil)

	for _, c := range rec.cells {
		if c.Highlight || c.Fill != DefaultBaseFill {
			t.Fatalf("cell (%d,%d) = %+v, want base fill", c.Row, c.Col, c)
		}
	}
}

func TestRenderRowMajorOrder(t *testing.T) {
	m := grid.Compute(30, 20, grid.Settings{TargetCellSize: 10, MinColumns: 3}, nil)
	rec := &recorder{}
	NewDriver(DefaultStyle(), Hooks{}).Render(rec, m, nil)

	i := 0
	for row := 0; row < m.Rows; row++ {
		for col := 0; col < m.Columns; col++ {
			c := rec.cells[i]
			if c.Row != row || c.Col != col {
				t.Fatalf("cells[%d] = (%d,%d), want (%d,%d)", i, c.Row, c.Col, row, col)
			}
			i++
		}
	}
}

func TestRenderFootprintCentered(t *testing.T) {
	m := fourByFour()
	style := DefaultStyle()
	style.Gap = 4
	rec := &recorder{}
	NewDriver(style, Hooks{}).Render(rec, m, nil)

	c := rec.cells[5] // row 1, col 1
	if c.Size != 10 {
		t.Errorf("Size = %v, want 10", c.Size)
	}
	if c.X != 16 || c.Y != 16 {
		t.Errorf("origin = (%v,%v), want (16,16)", c.X, c.Y)
	}
	if c.Radius != DefaultCornerRadius {
		t.Errorf("Radius = %v, want %v", c.Radius, DefaultCornerRadius)
	}
}

func TestRenderGapLargerThanCell(t *testing.T) {
	style := DefaultStyle()
	style.Gap = 100
	size, inset := style.Footprint(14)
	if size != 0 || inset != 7 {
		t.Errorf("Footprint(14) = (%v, %v), want (0, 7)", size, inset)
	}
}

func TestRenderSequence(t *testing.T) {
	m := grid.Compute(20, 10, grid.Settings{TargetCellSize: 10, MinColumns: 2}, nil)

	var seq []string
	var seen []grid.Metrics
	hooks := Hooks{
		OnBuildStart: func(got grid.Metrics) {
			seq = append(seq, "start")
			seen = append(seen, got)
		},
		IsHighlighted: func(c CellContext) bool {
			seq = append(seq, "predicate")
			seen = append(seen, c.Metrics)
			return c.Col == 1
		},
		OnCell: func(c CellContext) {
			seq = append(seq, "cell")
			seen = append(seen, c.Metrics)
			if c.Highlight != (c.Col == 1) {
				t.Errorf("OnCell(%d,%d) highlight = %v", c.Row, c.Col, c.Highlight)
			}
		},
		DrawOverlay: func(o OverlayContext) {
			seq = append(seq, "overlay")
			seen = append(seen, o.Metrics)
			o.Surface.DrawLine(0, 0, o.Metrics.GridWidth, o.Metrics.GridHeight, Stroke{Color: "#fff", Width: 1})
		},
		OnBuildEnd: func(got grid.Metrics) {
			seq = append(seq, "end")
			seen = append(seen, got)
		},
		Status: func(got grid.Metrics) string {
			seq = append(seq, "status")
			seen = append(seen, got)
			return "ok"
		},
	}

	rec := &recorder{}
	out := &textOutput{}
	NewDriver(DefaultStyle(), hooks).Render(rec, m, out)

	want := []string{"start", "predicate", "cell", "predicate", "cell", "overlay", "end", "status"}
	if strings.Join(seq, ",") != strings.Join(want, ",") {
		t.Errorf("hook order = %v, want %v", seq, want)
	}

	wantEvents := []string{"reset", "cell", "cell", "line", "commit"}
	if strings.Join(rec.events, ",") != strings.Join(wantEvents, ",") {
		t.Errorf("surface events = %v, want %v", rec.events, wantEvents)
	}

	for i, got := range seen {
		if got != m {
			t.Errorf("hook %d saw metrics %+v, want %+v", i, got, m)
		}
	}
	if out.text != "ok" {
		t.Errorf("status = %q, want %q", out.text, "ok")
	}
}

func TestRenderReplacesPreviousFrame(t *testing.T) {
	rec := &recorder{}
	d := NewDriver(DefaultStyle(), Hooks{})
	d.Render(rec, fourByFour(), nil)
	d.Render(rec, fourByFour(), nil)

	if rec.resets != 2 {
		t.Errorf("resets = %d, want 2", rec.resets)
	}
	if len(rec.cells) != 16 {
		t.Errorf("cells after second rebuild = %d, want 16", len(rec.cells))
	}
}

func TestDefaultStatus(t *testing.T) {
	got := DefaultStatus(fourByFour())
	want := "Grid: 4 × 4 (16 blocks). Block: 14px."
	if got != want {
		t.Errorf("DefaultStatus() = %q, want %q", got, want)
	}
}

func TestRenderPublishesDefaultStatus(t *testing.T) {
	out := &textOutput{}
	NewDriver(DefaultStyle(), Hooks{}).Render(&recorder{}, fourByFour(), out)
	if !strings.HasPrefix(out.text, "Grid: 4 × 4") {
		t.Errorf("status = %q, want default summary", out.text)
	}
}

func TestHelpersDistance(t *testing.T) {
	h := DefaultHelpers()
	if got := h.DistanceToSegment(5, 3, 0, 0, 10, 0); got != 3 {
		t.Errorf("DistanceToSegment() = %v, want 3", got)
	}
}
