package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/graphdraw/pkg/settings"
)

func TestAdaptiveMultipliers(t *testing.T) {
	tests := []struct {
		name         string
		nodes, edges int
		want         Multipliers
	}{
		{"empty", 0, 0, Multipliers{2.0, 1.5, 0.7}},
		{"single node", 1, 0, Multipliers{2.0, 1.5, 0.7}},
		{"ten nodes ring", 10, 10, Multipliers{
			Isolated:  2.0 + 0.1 + 0.2*(2.0/3),
			Center:    1.5 + 0.05 + 0.1*(2.0/3),
			Periphery: 0.7 - 0.02 - 0.05*(2.0/3),
		}},
		{"dense floors periphery", 10, 100, Multipliers{
			Isolated:  2.0 + 0.1 + 0.2*(20.0/3),
			Center:    1.5 + 0.05 + 0.1*(20.0/3),
			Periphery: 0.4,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdaptiveMultipliers(tt.nodes, tt.edges)
			if math.Abs(got.Isolated-tt.want.Isolated) > 1e-9 ||
				math.Abs(got.Center-tt.want.Center) > 1e-9 ||
				math.Abs(got.Periphery-tt.want.Periphery) > 1e-9 {
				t.Errorf("AdaptiveMultipliers(%d, %d) = %+v, want %+v", tt.nodes, tt.edges, got, tt.want)
			}
			if got.Isolated < got.Center || got.Center < got.Periphery {
				t.Errorf("multipliers out of order: %+v", got)
			}
		})
	}
}

func TestMultiplierClassification(t *testing.T) {
	m := Multipliers{Isolated: 3, Center: 2, Periphery: 1}
	tests := []struct {
		a, b int
		want float64
	}{
		{1, 1, 3},
		{3, 4, 2},
		{1, 3, 1},
		{2, 2, 1},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := m.For(tt.a, tt.b); got != tt.want {
			t.Errorf("For(%d, %d) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEdgeLength(t *testing.T) {
	s := settings.Defaults()
	e := newEngine(t, s, []string{"a", "b", "c", "d"}, "a b", "c d", "d a")

	base := s.NodeDist()
	// a and d have degree 2, b and c degree 1: every edge is peripheral.
	want := math.Max(base*e.Multipliers().Periphery, minEdgeLength)
	if got := e.EdgeLength("a", "b"); math.Abs(got-want) > 1e-9 {
		t.Errorf("EdgeLength(a, b) = %g, want %g", got, want)
	}
	if e.EdgeLength("b", "a") != e.EdgeLength("a", "b") {
		t.Error("edge length depends on argument order")
	}

	s.NodeRadius = 1
	s.EdgeLength = 0
	e.UpdateSettings(s)
	if got := e.EdgeLength("a", "b"); got != minEdgeLength {
		t.Errorf("EdgeLength after shrinking = %g, want the floor %g", got, minEdgeLength)
	}
}

func TestEdgeLengthIgnoresConcealedNeighbors(t *testing.T) {
	e := newEngine(t, settings.Defaults(), []string{"a", "b", "x"}, "a b", "a x")
	e.conceal["x"] = true
	clear(e.lengths)
	if got, want := e.degree("a"), 1; got != want {
		t.Fatalf("degree(a) = %d, want %d", got, want)
	}
	want := math.Max(settings.Defaults().NodeDist()*e.Multipliers().Isolated, minEdgeLength)
	if got := e.EdgeLength("a", "b"); math.Abs(got-want) > 1e-9 {
		t.Errorf("EdgeLength(a, b) = %g, want isolated length %g", got, want)
	}
}
