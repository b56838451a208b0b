package layout

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func snapshot(t *testing.T, nodes []string, edges ...string) graph.Snapshot {
	t.Helper()
	s, err := graph.FromEdges(nodes, edges, nil, nil)
	if err != nil {
		t.Fatalf("FromEdges: %v", err)
	}
	return s
}

func newEngine(t *testing.T, s settings.Settings, nodes []string, edges ...string) *Engine {
	t.Helper()
	e := New(WithRand(seeded()), WithSize(800, 600), WithSettings(s))
	e.UpdateGraph(graph.Single(snapshot(t, nodes, edges...)))
	return e
}

func TestNewEngineIsEmpty(t *testing.T) {
	e := New()
	if len(e.Nodes()) != 0 {
		t.Fatalf("nodes = %v, want none", e.Nodes())
	}
	w, h := e.Size()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("size = %gx%g, want %gx%g", w, h, DefaultWidth, DefaultHeight)
	}
	e.Tick()
	if got := e.Scene(); len(got.Nodes) != 0 || len(got.Edges) != 0 {
		t.Errorf("empty engine produced %d nodes and %d edges", len(got.Nodes), len(got.Edges))
	}
}

func TestPlacementInCentralHalf(t *testing.T) {
	ids := make([]string, 200)
	for i := range ids {
		ids[i] = string(rune('a'+i%26)) + string(rune('A'+i/26))
	}
	e := newEngine(t, settings.Defaults(), ids)
	for _, u := range ids {
		n, ok := e.Node(u)
		if !ok {
			t.Fatalf("node %s missing", u)
		}
		if n.Pos.X < 200 || n.Pos.X > 600 || n.Pos.Y < 150 || n.Pos.Y > 450 {
			t.Errorf("node %s at %v, want inside the central half", u, n.Pos)
		}
	}
}

func TestPlacementReusesLastDeletedPosition(t *testing.T) {
	e := newEngine(t, settings.Defaults(), []string{"a", "b"})
	e.SetPosition("b", r2.Vec{X: 123, Y: 321})

	e.UpdateGraph(graph.Single(snapshot(t, []string{"a", "c"})))
	c, _ := e.Node("c")
	if c.Pos != (r2.Vec{X: 123, Y: 321}) {
		t.Errorf("c placed at %v, want the deleted node's position", c.Pos)
	}
	if _, ok := e.Node("b"); ok {
		t.Error("deleted node b still present")
	}

	e.UpdateGraph(graph.Single(snapshot(t, []string{"a", "c", "d"})))
	d, _ := e.Node("d")
	if d.Pos == (r2.Vec{X: 123, Y: 321}) {
		t.Error("placement hint used twice")
	}
}

func TestUpdateGraphKeepsSurvivingState(t *testing.T) {
	e := newEngine(t, settings.Defaults(), []string{"a", "b"}, "a b")
	e.SetPosition("a", r2.Vec{X: 50, Y: 60})
	e.nodes["a"].MarkColor = 4

	e.UpdateGraph(graph.Single(snapshot(t, []string{"a", "b", "c"}, "a b", "b c")))
	a, _ := e.Node("a")
	if a.Pos != (r2.Vec{X: 50, Y: 60}) || a.MarkColor != 4 {
		t.Errorf("a = %+v, want position and mark preserved", a)
	}
	if got := e.Nodes(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("order = %v", got)
	}
}

func TestAdjacencySkipsUnknownEndpoints(t *testing.T) {
	e := New(WithRand(seeded()))
	e.UpdateGraph(graph.Merged{Snapshot: graph.Snapshot{
		Nodes: []string{"a", "b", "c"},
		Edges: []string{"a b 0", "a zz 0", "bad", "b b 0", "c a 0", "c a 1"},
	}})

	if len(e.edges) != 4 {
		t.Fatalf("kept %d edges, want 4: %v", len(e.edges), e.edges)
	}
	for u, vs := range e.adj {
		for _, v := range vs {
			if !slices.Contains(e.rev[v], u) {
				t.Errorf("%s in adj[%s] but %s not in rev[%s]", v, u, u, v)
			}
		}
	}
	for v, us := range e.rev {
		for _, u := range us {
			if !slices.Contains(e.adj[u], v) {
				t.Errorf("%s in rev[%s] but %s not in adj[%s]", u, v, v, u)
			}
		}
	}
	if _, ok := e.rev["zz"]; ok || slices.Contains(e.adj["a"], "zz") {
		t.Error("unknown endpoint zz reached the adjacency")
	}
	if slices.Contains(e.fullAdj["b"], "b") {
		t.Error("fullAdj contains a self loop")
	}
	for u, vs := range e.fullAdj {
		for _, v := range vs {
			if !slices.Contains(e.fullAdj[v], u) {
				t.Errorf("fullAdj not symmetric for %s-%s", u, v)
			}
		}
	}
	if got := e.maxIndex["c a"]; got != 1 {
		t.Errorf("max index of c-a = %d, want 1", got)
	}
}

func TestRadiusGrowsWithDegree(t *testing.T) {
	s := settings.Defaults()
	e := newEngine(t, s, []string{"hub", "x", "y", "z"}, "hub x", "hub y", "z hub", "hub hub")
	hub, _ := e.Node("hub")
	if want := s.NodeRadius * 1.3; math.Abs(hub.Radius-want) > 1e-9 {
		t.Errorf("hub radius = %g, want %g", hub.Radius, want)
	}

	s.NodeRadius = 20
	e.UpdateSettings(s)
	x, _ := e.Node("x")
	if want := 22.0; math.Abs(x.Radius-want) > 1e-9 {
		t.Errorf("leaf radius after settings change = %g, want %g", x.Radius, want)
	}
}

func TestConcealedNodesAreKeptButHidden(t *testing.T) {
	edges := snapshot(t, []string{"1", "2"}, "1 2")
	pc := snapshot(t, []string{"p1", "p2"}, "p1 p2")
	m := graph.Merge(map[int]graph.TestCase{1: {Edges: edges, ParentChild: pc, InputFormat: graph.FormatEdges}})

	e := New(WithRand(seeded()))
	e.UpdateGraph(m)
	if len(e.Nodes()) != 4 {
		t.Fatalf("nodes = %v, want 4", e.Nodes())
	}
	scene := e.Scene()
	if len(scene.Nodes) != 2 || len(scene.Edges) != 1 {
		t.Errorf("scene has %d nodes and %d edges, want 2 and 1", len(scene.Nodes), len(scene.Edges))
	}
	if _, ok := e.Positions()["p1"]; ok {
		t.Error("concealed node recorded for hit testing")
	}
	if vs := e.VisibleSnapshot(); len(vs.Nodes) != 2 {
		t.Errorf("visible snapshot nodes = %v", vs.Nodes)
	}
}

func TestSetDirectedRebuildsOverlays(t *testing.T) {
	s := settings.Defaults()
	s.ShowComponents = true
	e := newEngine(t, s, []string{"a", "b", "c"}, "a b", "b c")

	if got := e.Overlays().Colors; got["a"] != got["c"] {
		t.Errorf("undirected components split a path: %v", got)
	}
	e.SetDirected(true)
	if got := e.Overlays().Colors; got["a"] == got["c"] {
		t.Errorf("directed path should have singleton SCCs: %v", got)
	}
	if !e.Settings().Directed {
		t.Error("settings not updated")
	}
}

func TestResizeRebuildsGrid(t *testing.T) {
	s := settings.Defaults()
	s.GridMode = true
	e := newEngine(t, s, []string{"a", "b", "c", "d", "e", "f", "g", "h"})

	wide := e.Overlays().Grid
	if wide == nil {
		t.Fatal("grid overlay missing")
	}
	e.Resize(200, 800)
	tall := e.Overlays().Grid
	if tall.Cols >= wide.Cols {
		t.Errorf("cols after resize to portrait = %d, want fewer than %d", tall.Cols, wide.Cols)
	}
}
