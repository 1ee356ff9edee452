package engine

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/page"
	"github.com/matzehuels/pixelgrid/pkg/render"
	"github.com/matzehuels/pixelgrid/pkg/render/sink"
)

const testDebounce = 40 * time.Millisecond

func newPage(w, h float64) (*page.Page, *sink.SVG) {
	p := page.New(w, h)
	svg := sink.NewSVG()
	p.AddSurface("grid", svg)
	p.AddOutput("hud")
	return p, svg
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestInitMissingSurface(t *testing.T) {
	p := page.New(100, 100)
	rot := p.AddInput("rotation", "0")
	p.AddOutput("hud")

	e, err := Init(p, Options{RotationID: "rotation", StatusID: "hud"})
	if e != nil {
		t.Error("Init() should return a nil engine")
	}
	if !errors.Is(err, errors.ErrCodeMissingSurface) {
		t.Fatalf("Init() error = %v, want %s", err, errors.ErrCodeMissingSurface)
	}
	if n := p.ResizeListeners(); n != 0 {
		t.Errorf("ResizeListeners() = %d, want 0", n)
	}
	if n := rot.Listeners(); n != 0 {
		t.Errorf("rotation listeners = %d, want 0", n)
	}
	if got := p.Text("hud"); got != "" {
		t.Errorf("status = %q, want empty", got)
	}
}

func TestInitRendersFirstFrame(t *testing.T) {
	p, svg := newPage(56, 56)
	e, err := Init(p, Options{
		StatusID: "hud",
		Settings: grid.Settings{TargetCellSize: 14, MinColumns: 4},
		Hooks: render.Hooks{
			IsHighlighted: func(c render.CellContext) bool { return c.Row == c.Col },
		},
	})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer e.Close()

	if e.Rebuilds() != 1 {
		t.Errorf("Rebuilds() = %d, want 1", e.Rebuilds())
	}
	if got := bytes.Count(svg.Bytes(), []byte(`class="hl"`)); got != 4 {
		t.Errorf("highlighted cells = %d, want 4", got)
	}
	if got := bytes.Count(svg.Bytes(), []byte("<rect")); got != 16 {
		t.Errorf("cells = %d, want 16", got)
	}
	want := "Grid: 4 × 4 (16 blocks). Block: 14px."
	if got := p.Text("hud"); got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
	if m := e.Metrics(); m.Columns != 4 || m.Rows != 4 {
		t.Errorf("Metrics() = %d×%d, want 4×4", m.Columns, m.Rows)
	}
}

func TestInputChangeRebuildsImmediately(t *testing.T) {
	p, _ := newPage(840, 600)
	p.AddInput("rotation", "0")

	var seen []float64
	e, err := Init(p, Options{
		RotationID: "rotation",
		Debounce:   testDebounce,
		Hooks: render.Hooks{
			OnBuildStart: func(m grid.Metrics) { seen = append(seen, m.Rotation) },
		},
	})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer e.Close()

	p.SetValue("rotation", "30")
	if e.Rebuilds() != 2 {
		t.Fatalf("Rebuilds() = %d after input, want 2", e.Rebuilds())
	}
	if got := e.Metrics().Rotation; got != 30 {
		t.Errorf("Rotation = %v, want 30", got)
	}

	p.SetValue("rotation", "not a number")
	if got := e.Metrics().Rotation; got != 0 {
		t.Errorf("Rotation = %v for bad input, want 0", got)
	}

	want := []float64{0, 30, 0}
	if len(seen) != len(want) {
		t.Fatalf("OnBuildStart rotations = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("rotation[%d] = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestCellSizeInput(t *testing.T) {
	p, _ := newPage(840, 600)
	p.AddInput("cell-size", "28")

	e, err := Init(p, Options{CellSizeID: "cell-size"})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer e.Close()

	tests := []struct {
		value    string
		wantCols int
	}{
		{"28", 30},
		{"junk", 60},
		{"", 60},
		{"0", 60},
		{"-5", 60},
		{"Infinity", 60},
		{" 42 ", 20},
	}
	for _, tt := range tests {
		p.SetValue("cell-size", tt.value)
		if got := e.Metrics().Columns; got != tt.wantCols {
			t.Errorf("cell-size %q: Columns = %d, want %d", tt.value, got, tt.wantCols)
		}
	}
}

func TestCellSizeInputKeepsConfiguredDefault(t *testing.T) {
	p, _ := newPage(840, 600)
	p.AddInput("cell-size", "20")

	e, err := Init(p, Options{
		CellSizeID: "cell-size",
		Settings:   grid.Settings{TargetCellSize: 20, MinColumns: 16},
	})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer e.Close()

	for _, value := range []string{"20", "-5", "-Infinity", "Infinity", "NaN", "junk"} {
		p.SetValue("cell-size", value)
		if got := e.Metrics().Columns; got != 42 {
			t.Errorf("cell-size %q: Columns = %d, want 42", value, got)
		}
	}
}

func TestPanickingHookReleasesEngine(t *testing.T) {
	p, _ := newPage(840, 600)
	fail := false
	e, err := Init(p, Options{Hooks: render.Hooks{
		OnBuildStart: func(grid.Metrics) {
			if fail {
				panic("hook failed")
			}
		},
	}})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer e.Close()

	fail = true
	func() {
		defer func() {
			if recover() == nil {
				t.Error("Rebuild() did not propagate the hook panic")
			}
		}()
		e.Rebuild()
	}()
	fail = false

	done := make(chan struct{})
	go func() {
		e.Rebuild()
		_ = e.Metrics()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("engine stayed locked after a hook panic")
	}
	if got := e.Rebuilds(); got != 2 {
		t.Errorf("Rebuilds() = %d, want 2", got)
	}
}

func TestResizeFiringAfterCloseIsDropped(t *testing.T) {
	p, _ := newPage(840, 600)
	e, err := Init(p, Options{Debounce: testDebounce})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	e.Close()

	// A timer that fired just before Close stopped it.
	e.fireResize()
	if _, ok := e.render(context.Background(), TriggerResize); ok {
		t.Error("render() ran a resize rebuild on a closed engine")
	}
	if got := e.Rebuilds(); got != 1 {
		t.Errorf("Rebuilds() = %d, want 1", got)
	}
}

func TestResizeBurstRebuildsOnce(t *testing.T) {
	p, _ := newPage(840, 600)
	e, err := Init(p, Options{Debounce: testDebounce})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer e.Close()

	for i := 0; i < 10; i++ {
		p.SetSize(float64(400+i*10), 300)
	}
	if e.Rebuilds() != 1 {
		t.Errorf("Rebuilds() = %d during burst, want 1", e.Rebuilds())
	}

	waitFor(t, "debounced rebuild", func() bool { return e.Rebuilds() == 2 })
	time.Sleep(3 * testDebounce)
	if e.Rebuilds() != 2 {
		t.Errorf("Rebuilds() = %d after burst, want 2", e.Rebuilds())
	}
	if got := e.Metrics().ViewportWidth; got != 490 {
		t.Errorf("ViewportWidth = %v, want last size 490", got)
	}
}

func TestCloseCancelsPendingResize(t *testing.T) {
	p, _ := newPage(840, 600)
	p.AddInput("rotation", "0")
	e, err := Init(p, Options{RotationID: "rotation", Debounce: testDebounce})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	p.SetSize(100, 100)
	e.Close()
	e.Close()
	time.Sleep(3 * testDebounce)

	if e.Rebuilds() != 1 {
		t.Errorf("Rebuilds() = %d, want 1", e.Rebuilds())
	}
	if n := p.ResizeListeners(); n != 0 {
		t.Errorf("ResizeListeners() = %d after Close, want 0", n)
	}
	p.SetValue("rotation", "10")
	if e.Rebuilds() != 1 {
		t.Errorf("input change after Close rebuilt the grid")
	}
}

func TestIndependentEngines(t *testing.T) {
	p, _ := newPage(840, 600)
	p.AddSurface("second", sink.NewSVG())

	a, err := Init(p, Options{Debounce: testDebounce})
	if err != nil {
		t.Fatalf("Init(a) error = %v", err)
	}
	defer a.Close()
	b, err := Init(p, Options{SurfaceID: "second", Debounce: 2 * testDebounce})
	if err != nil {
		t.Fatalf("Init(b) error = %v", err)
	}
	defer b.Close()

	if a.ID() == b.ID() {
		t.Error("engines share an ID")
	}

	p.SetSize(500, 400)
	p.SetSize(600, 400)
	waitFor(t, "both engines", func() bool { return a.Rebuilds() == 2 && b.Rebuilds() == 2 })

	other, _ := newPage(300, 300)
	c, err := Init(other, Options{Debounce: testDebounce})
	if err != nil {
		t.Fatalf("Init(c) error = %v", err)
	}
	defer c.Close()

	c.Resize()
	waitFor(t, "engine c", func() bool { return c.Rebuilds() == 2 })
	if a.Rebuilds() != 2 || b.Rebuilds() != 2 {
		t.Errorf("resize on another page rebuilt a=%d b=%d", a.Rebuilds(), b.Rebuilds())
	}
}

func TestRebuildIsDeterministic(t *testing.T) {
	p, svg := newPage(840, 600)
	var rebuilt []grid.Metrics
	e, err := Init(p, Options{OnRebuild: func(m grid.Metrics) { rebuilt = append(rebuilt, m) }})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer e.Close()

	first := append([]byte(nil), svg.Bytes()...)
	e.Rebuild()

	if len(rebuilt) != 2 {
		t.Fatalf("OnRebuild calls = %d, want 2", len(rebuilt))
	}
	if rebuilt[0] != rebuilt[1] {
		t.Errorf("metrics differ between rebuilds: %+v vs %+v", rebuilt[0], rebuilt[1])
	}
	if !bytes.Equal(first, svg.Bytes()) {
		t.Error("frames differ between rebuilds with unchanged inputs")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		def  float64
		want float64
	}{
		{"12", 14, 12},
		{" 7.5 ", 14, 7.5},
		{"-30", 0, -30},
		{"1e2", 0, 100},
		{"", 14, 14},
		{"abc", 14, 14},
		{"12px", 14, 14},
		{"0", 14, 14},
		{"NaN", 3, 3},
		{"Inf", 3, 3},
	}
	for _, tt := range tests {
		if got := ParseNumber(tt.in, tt.def); got != tt.want {
			t.Errorf("ParseNumber(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}
