package spatial

import (
	"fmt"
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func positions(m map[string]r2.Vec) func(string) r2.Vec {
	return func(id string) r2.Vec { return m[id] }
}

func TestBucketSize(t *testing.T) {
	tests := []struct {
		name string
		n    int
		w, h float64
		want float64
	}{
		{"one node", 1, 100, 100, 100},
		{"four nodes", 4, 100, 100, 50},
		{"no nodes", 0, 100, 400, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.n)
			for i := range ids {
				ids[i] = fmt.Sprint(i)
			}
			ix := Build(ids, func(string) r2.Vec { return r2.Vec{} }, tt.w, tt.h)
			if got := ix.BucketSize(); got != tt.want {
				t.Errorf("BucketSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNearExcludesSelf(t *testing.T) {
	pos := map[string]r2.Vec{"a": {X: 10, Y: 10}, "b": {X: 12, Y: 10}}
	ix := Build([]string{"a", "b"}, positions(pos), 100, 100)

	got := ix.Near("a", pos["a"], []string{"a", "b"})
	if !slices.Equal(got, []string{"b"}) {
		t.Errorf("Near() = %v, want [b]", got)
	}
}

// lattice spreads 100 nodes on a 10x10 grid with one node per bucket.
func lattice() ([]string, map[string]r2.Vec) {
	pos := map[string]r2.Vec{}
	var ids []string
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			id := fmt.Sprintf("%d_%d", i, j)
			ids = append(ids, id)
			pos[id] = r2.Vec{X: float64(i)*100 + 50, Y: float64(j)*100 + 50}
		}
	}
	return ids, pos
}

func TestNearIncludesDistantNeighbors(t *testing.T) {
	ids, pos := lattice()
	ix := Build(ids, positions(pos), 1000, 1000)

	got := ix.Near("5_5", pos["5_5"], []string{"9_9"})

	if !slices.Contains(got, "9_9") {
		t.Error("topological neighbor 9_9 missing from candidates")
	}
	if slices.Contains(got, "5_5") {
		t.Error("candidates contain the node itself")
	}
	// Rings 0..4 hold 40 other nodes, ring 5 brings 18 more.
	if len(got) != 59 {
		t.Errorf("len(Near()) = %d, want 59", len(got))
	}
	if len(got) < MinCandidates {
		t.Errorf("len(Near()) = %d, want at least %d", len(got), MinCandidates)
	}
}

func TestNearStopsAtMaxRing(t *testing.T) {
	ids, pos := lattice()
	ix := Build(ids, positions(pos), 1000, 1000)

	// A corner reaches 21 buckets within five rings; 20 besides its own.
	got := ix.Near("0_0", pos["0_0"], []string{"9_9"})
	if len(got) != 21 {
		t.Errorf("len(Near()) = %d, want 21", len(got))
	}
	if !slices.Contains(got, "9_9") {
		t.Error("topological neighbor 9_9 missing from candidates")
	}
	if slices.Contains(got, "6_0") {
		t.Error("bucket beyond the last ring was searched")
	}
}

func TestNearRingOrder(t *testing.T) {
	pos := map[string]r2.Vec{
		"center": {X: 150, Y: 150},
		"same":   {X: 160, Y: 160},
		"right":  {X: 250, Y: 150},
		"corner": {X: 250, Y: 250},
	}
	ix := Build([]string{"center", "corner", "right", "same"}, positions(pos), 400, 400)

	got := ix.Near("center", pos["center"], nil)
	if len(got) == 0 || got[0] != "same" {
		t.Errorf("Near() = %v, want same-bucket node first", got)
	}
	if !slices.Contains(got, "corner") {
		t.Errorf("Near() = %v, want corner within two rings", got)
	}
}

func TestNearNoDuplicates(t *testing.T) {
	pos := map[string]r2.Vec{"a": {X: 1, Y: 1}, "b": {X: 2, Y: 2}}
	ix := Build([]string{"a", "b"}, positions(pos), 10, 10)

	got := ix.Near("a", pos["a"], []string{"b", "b"})
	if !slices.Equal(got, []string{"b"}) {
		t.Errorf("Near() = %v, want [b]", got)
	}
}
