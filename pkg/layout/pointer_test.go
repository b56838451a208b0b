package layout

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/render"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func click(e *Engine, p r2.Vec, hold time.Duration) {
	e.PointerDown(p, t0)
	e.PointerUp(p, t0.Add(hold))
}

func TestClickTogglesSelection(t *testing.T) {
	s := settings.Defaults()
	s.MarkedNodes = true
	e := newEngine(t, s, []string{"a"})
	e.SetPosition("a", r2.Vec{X: 200, Y: 200})

	click(e, r2.Vec{X: 205, Y: 200}, 100*time.Millisecond)
	if a, _ := e.Node("a"); !a.Selected {
		t.Fatal("click did not select a")
	}
	click(e, r2.Vec{X: 205, Y: 200}, 100*time.Millisecond)
	if a, _ := e.Node("a"); a.Selected {
		t.Fatal("second click did not deselect a")
	}
	click(e, r2.Vec{X: 205, Y: 200}, 300*time.Millisecond)
	if a, _ := e.Node("a"); a.Selected {
		t.Error("long press selected a")
	}
	click(e, r2.Vec{X: 260, Y: 200}, 50*time.Millisecond)
	if a, _ := e.Node("a"); a.Selected {
		t.Error("click beside the node selected it")
	}
}

func TestClickAppliesMarkColor(t *testing.T) {
	tests := []struct {
		name  string
		start int
		mark  int
		want  int
	}{
		{"set", 0, 5, 5},
		{"replace", 4, 6, 6},
		{"clear", 7, settings.MarkColorClear, 0},
		{"default keeps", 7, settings.MarkColorDefault, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings.Defaults()
			s.MarkColor = tt.mark
			e := newEngine(t, s, []string{"a"})
			e.SetPosition("a", r2.Vec{X: 200, Y: 200})
			e.nodes["a"].MarkColor = tt.start

			click(e, r2.Vec{X: 200, Y: 200}, 10*time.Millisecond)
			if a, _ := e.Node("a"); a.MarkColor != tt.want {
				t.Errorf("mark = %d, want %d", a.MarkColor, tt.want)
			}
		})
	}
}

func TestDragFollowsPointerOnTick(t *testing.T) {
	s := settings.Defaults()
	s.LockMode = true
	e := newEngine(t, s, []string{"a"})
	e.SetPosition("a", r2.Vec{X: 200, Y: 200})

	e.PointerDown(r2.Vec{X: 200, Y: 200}, t0)
	if u, ok := e.Dragged(); !ok || u != "a" {
		t.Fatalf("dragged = %q, %v", u, ok)
	}
	e.PointerMove(r2.Vec{X: 400, Y: 350})
	e.Tick()
	if a, _ := e.Node("a"); a.Pos != (r2.Vec{X: 400, Y: 350}) {
		t.Errorf("a = %v, want under the pointer", a.Pos)
	}

	e.PointerMove(r2.Vec{X: -50, Y: 1000})
	e.Tick()
	if a, _ := e.Node("a"); a.Pos != (r2.Vec{X: s.NodeRadius, Y: 600 - s.NodeRadius}) {
		t.Errorf("a = %v, want clamped one radius inside", a.Pos)
	}

	e.PointerLeave()
	if _, ok := e.Dragged(); ok {
		t.Error("leave did not end the drag")
	}
}

func TestNodeAtPrefersLastAndSkipsConcealed(t *testing.T) {
	edges := snapshot(t, []string{"a", "b"})
	pc := snapshot(t, []string{"hidden"})
	e := New(WithRand(seeded()))
	e.UpdateGraph(graph.Merge(map[int]graph.TestCase{1: {Edges: edges, ParentChild: pc}}))
	for _, u := range []string{"a", "b", "hidden"} {
		e.SetPosition(u, r2.Vec{X: 100, Y: 100})
	}

	if u, ok := e.NodeAt(r2.Vec{X: 101, Y: 101}); !ok || u != "b" {
		t.Errorf("NodeAt = %q, %v, want b", u, ok)
	}
	if _, ok := e.NodeAt(r2.Vec{X: 300, Y: 300}); ok {
		t.Error("hit on empty canvas")
	}
}

func TestPenStrokes(t *testing.T) {
	s := settings.Defaults()
	s.DrawMode = settings.DrawPen
	s.PenThickness = 4
	s.PenTransparency = 25
	e := newEngine(t, s, []string{"a"})
	e.SetPosition("a", r2.Vec{X: 100, Y: 100})

	e.PointerDown(r2.Vec{X: 300, Y: 300}, t0)
	for i := 1; i <= 8; i++ {
		e.PointerMove(r2.Vec{X: 300 + float64(i), Y: 300})
	}
	e.PointerUp(r2.Vec{X: 308, Y: 300}, t0.Add(time.Second))

	if _, ok := e.Dragged(); ok {
		t.Error("pen mode started a drag")
	}
	strokes := e.Annotations().Strokes()
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	if strokes[0].Width != 4 || math.Abs(strokes[0].Alpha-0.75) > 1e-9 {
		t.Errorf("stroke style = width %g alpha %g", strokes[0].Width, strokes[0].Alpha)
	}

	scene := e.Scene()
	if len(scene.Annotations) != 1 {
		t.Errorf("scene annotations = %d, want 1", len(scene.Annotations))
	}
	if scene.Indicator == nil || scene.Indicator.Radius != 2 || scene.Indicator.Dashed {
		t.Errorf("pen indicator = %+v", scene.Indicator)
	}
}

func TestPenColorWrapsOutOfRangeMark(t *testing.T) {
	s := settings.Defaults()
	s.DrawMode = settings.DrawPen
	s.MarkColor = settings.MarkColorLast + 1
	e := newEngine(t, s, []string{"a"})

	e.PointerDown(r2.Vec{X: 300, Y: 300}, t0)
	for i := 1; i <= 8; i++ {
		e.PointerMove(r2.Vec{X: 300 + float64(i), Y: 300})
	}
	e.PointerUp(r2.Vec{X: 308, Y: 300}, t0.Add(time.Second))

	strokes := e.Annotations().Strokes()
	if len(strokes) != 1 || len(strokes[0].Segments) == 0 {
		t.Fatalf("strokes = %+v, want one stroke with segments", strokes)
	}
	want := render.Hex(e.Theme().PenColor(s.MarkColor))
	if got := render.Hex(strokes[0].Segments[0].Color); got != want {
		t.Errorf("segment color = %s, want %s", got, want)
	}
}

func TestEraserRemovesStrokes(t *testing.T) {
	s := settings.Defaults()
	s.DrawMode = settings.DrawPen
	now := t0
	e := New(WithRand(seeded()), WithSettings(s), WithClock(func() time.Time { return now }))

	e.PointerDown(r2.Vec{X: 100, Y: 100}, t0)
	for i := range 8 {
		e.PointerMove(r2.Vec{X: 100 + float64(i%3), Y: 100})
	}
	e.PointerUp(r2.Vec{X: 100, Y: 100}, t0)
	if e.Annotations().Len() != 1 {
		t.Fatalf("strokes = %d, want 1", e.Annotations().Len())
	}

	s.DrawMode = settings.DrawErase
	e.UpdateSettings(s)
	e.PointerDown(r2.Vec{X: 101, Y: 100}, t0)
	if e.Annotations().Len() != 0 {
		t.Errorf("strokes after erase = %d, want 0", e.Annotations().Len())
	}

	now = t0.Add(700 * time.Millisecond)
	in := e.Scene().Indicator
	if in == nil || !in.Dashed || in.Radius != s.EraserRadius {
		t.Fatalf("erase indicator = %+v", in)
	}
	if math.Abs(in.Phase-2) > 1e-9 {
		t.Errorf("phase = %g, want 2", in.Phase)
	}

	e.PointerUp(r2.Vec{X: 101, Y: 100}, now)
	if in := e.Scene().Indicator; in == nil || in.Phase != 0 {
		t.Errorf("indicator after release = %+v, want phase 0", in)
	}
	e.PointerLeave()
	if e.Scene().Indicator != nil {
		t.Error("indicator shown after the pointer left")
	}
}
