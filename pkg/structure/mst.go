package structure

import (
	"sort"
	"strconv"

	"github.com/matzehuels/graphdraw/pkg/graph"
)

// IsInteger reports whether label is the canonical decimal form of an
// integer: "12" and "-3" qualify, "007", "+3" and "1.5" do not.
func IsInteger(label string) bool {
	n, err := strconv.Atoi(label)
	return err == nil && strconv.Itoa(n) == label
}

// EdgesNumeric reports whether every edge of g carries an integer label.
// A graph without edges is numeric.
func EdgesNumeric(g graph.Snapshot) bool {
	for _, e := range g.Edges {
		label, ok := g.EdgeLabels[e]
		if !ok || !IsInteger(label) {
			return false
		}
	}
	return true
}

type weightedEdge struct {
	parsedEdge
	weight int
}

// MinimumSpanningForest runs Kruskal's algorithm over g treated as an
// undirected multigraph weighted by integer edge labels. The result marks
// the chosen edge keys; one tree is produced per connected component.
// Equal weights keep edge input order. When any edge lacks an integer label
// ok is false and no forest is returned.
func MinimumSpanningForest(g graph.Snapshot) (mst map[string]bool, ok bool) {
	if !EdgesNumeric(g) {
		return nil, false
	}

	keys := edgeKeys(g)
	edges := make([]weightedEdge, 0, len(keys))
	for _, k := range keys {
		if k.U == k.V {
			continue
		}
		w, _ := strconv.Atoi(g.EdgeLabels[k.raw])
		edges = append(edges, weightedEdge{parsedEdge: k, weight: w})
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].weight < edges[j].weight
	})

	parent := make(map[string]string, len(g.Nodes))
	rank := make(map[string]int, len(g.Nodes))
	for _, u := range g.Nodes {
		parent[u] = u
	}
	find := func(u string) string {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}

	mst = map[string]bool{}
	for _, e := range edges {
		ru, rv := find(e.U), find(e.V)
		if ru == rv {
			continue
		}
		switch {
		case rank[ru] < rank[rv]:
			parent[ru] = rv
		case rank[ru] > rank[rv]:
			parent[rv] = ru
		default:
			parent[rv] = ru
			rank[ru]++
		}
		mst[e.raw] = true
	}
	return mst, true
}
