package graph

import (
	"maps"
	"slices"
)

// InputFormat names the live encoding of a test case.
type InputFormat string

const (
	FormatEdges       InputFormat = "edges"
	FormatParentChild InputFormat = "parentChild"
)

// TestCase holds both encodings of one test case's graph.
type TestCase struct {
	Edges       Snapshot    `json:"graphEdges"`
	ParentChild Snapshot    `json:"graphParChild"`
	InputFormat InputFormat `json:"inputFormat"`
}

// Active returns the live encoding.
func (tc TestCase) Active() Snapshot {
	if tc.InputFormat == FormatParentChild {
		return tc.ParentChild
	}
	return tc.Edges
}

// Inactive returns the encoding whose nodes are concealed.
func (tc TestCase) Inactive() Snapshot {
	if tc.InputFormat == FormatParentChild {
		return tc.Edges
	}
	return tc.ParentChild
}

// Conceal marks nodes that are kept in the engine but neither laid out nor
// drawn.
type Conceal map[string]bool

// Merged is the union of several test cases as the engine consumes it.
type Merged struct {
	Snapshot Snapshot
	Conceal  Conceal
	// NodeCase maps each live node to the position of its test case in Cases.
	NodeCase map[string]int
	// Cases lists the test-case numbers in merge order.
	Cases []int
}

// Merge unions all test cases in ascending test-case number order. Nodes of
// each inactive encoding are reported in the conceal set. A node listed more
// than once keeps its first position; later adjacency entries for the same
// node replace earlier ones.
func Merge(cases map[int]TestCase) Merged {
	out := Merged{
		Snapshot: Empty(),
		Conceal:  Conceal{},
		NodeCase: map[string]int{},
	}
	seen := map[string]bool{}

	for idx, num := range slices.Sorted(maps.Keys(cases)) {
		tc := cases[num]
		out.Cases = append(out.Cases, num)

		for _, u := range tc.Inactive().Nodes {
			out.Conceal[u] = true
		}
		for _, u := range tc.Active().Nodes {
			out.NodeCase[u] = idx
		}

		for _, g := range []Snapshot{tc.Edges, tc.ParentChild} {
			for _, u := range g.Nodes {
				if !seen[u] {
					seen[u] = true
					out.Snapshot.Nodes = append(out.Snapshot.Nodes, u)
				}
			}
			out.Snapshot.Edges = append(out.Snapshot.Edges, g.Edges...)
			maps.Copy(out.Snapshot.Adj, g.Adj)
			maps.Copy(out.Snapshot.Rev, g.Rev)
			maps.Copy(out.Snapshot.EdgeLabels, g.EdgeLabels)
			maps.Copy(out.Snapshot.NodeLabels, g.NodeLabels)
		}
	}
	return out
}

// Single wraps one snapshot as a one-case merge with nothing concealed.
func Single(s Snapshot) Merged {
	return Merge(map[int]TestCase{1: {Edges: s, ParentChild: Empty(), InputFormat: FormatEdges}})
}
