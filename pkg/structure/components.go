package structure

import (
	"cmp"
	"slices"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/graphdraw/pkg/graph"
)

// Components labels the connected components of g, ignoring edge direction.
// Component ids start at 0 and are assigned in order of each component's
// first node.
func Components(g graph.Snapshot) map[string]int {
	index := nodeIndex(g)
	ug := simple.NewUndirectedGraph()
	for i := range g.Nodes {
		ug.AddNode(simple.Node(i))
	}
	for _, u := range g.Nodes {
		for _, v := range g.Adj[u] {
			iv, ok := index[v]
			if !ok || u == v {
				continue
			}
			ug.SetEdge(ug.NewEdge(simple.Node(index[u]), simple.Node(iv)))
		}
	}
	return label(g, topo.ConnectedComponents(ug))
}

// StronglyConnected labels the strongly connected components of g using
// Tarjan's algorithm, numbered like [Components].
func StronglyConnected(g graph.Snapshot) map[string]int {
	index := nodeIndex(g)
	dg := simple.NewDirectedGraph()
	for i := range g.Nodes {
		dg.AddNode(simple.Node(i))
	}
	for _, u := range g.Nodes {
		for _, v := range g.Adj[u] {
			iv, ok := index[v]
			if !ok || u == v {
				continue
			}
			dg.SetEdge(dg.NewEdge(simple.Node(index[u]), simple.Node(iv)))
		}
	}
	return label(g, topo.TarjanSCC(dg))
}

// nodeIndex maps node ids to their position in g.Nodes, which doubles as
// the gonum node id.
func nodeIndex(g graph.Snapshot) map[string]int64 {
	index := make(map[string]int64, len(g.Nodes))
	for i, u := range g.Nodes {
		index[u] = int64(i)
	}
	return index
}

// label numbers groups by their earliest member in g.Nodes.
func label(g graph.Snapshot, groups [][]gonum.Node) map[string]int {
	first := make([]int64, len(groups))
	for i, group := range groups {
		first[i] = int64(len(g.Nodes))
		for _, n := range group {
			first[i] = min(first[i], n.ID())
		}
	}
	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return cmp.Compare(first[a], first[b]) })

	comp := make(map[string]int, len(g.Nodes))
	for id, i := range order {
		for _, n := range groups[i] {
			comp[g.Nodes[n.ID()]] = id
		}
	}
	return comp
}

// Count returns the number of distinct component ids in comp.
func Count(comp map[string]int) int {
	ids := map[int]bool{}
	for _, c := range comp {
		ids[c] = true
	}
	return len(ids)
}
