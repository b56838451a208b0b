package structure

import "github.com/matzehuels/graphdraw/pkg/graph"

// Layer is a node's 1-based depth and the number of layers in its component.
type Layer struct {
	Depth    int
	MaxDepth int
}

// Bipartite 2-colors g over its symmetrized adjacency by depth-first search.
// Colors are 1 and 2; layers place color 1 on depth 1 and color 2 on depth 2.
// When the graph has an odd cycle (a self loop counts as one) ok is false and
// both maps are nil.
func Bipartite(g graph.Snapshot) (colors map[string]int, layers map[string]Layer, ok bool) {
	full := Undirected(g)
	colors = make(map[string]int, len(g.Nodes))
	ok = true

	for _, u := range g.Nodes {
		for _, v := range g.Adj[u] {
			if u == v {
				return nil, nil, false
			}
		}
	}

	var visit func(u string)
	visit = func(u string) {
		for _, v := range full[u] {
			switch colors[v] {
			case 0:
				colors[v] = 3 - colors[u]
				visit(v)
			case colors[u]:
				ok = false
			}
		}
	}
	for _, u := range g.Nodes {
		if colors[u] == 0 {
			colors[u] = 1
			visit(u)
		}
	}
	if !ok {
		return nil, nil, false
	}

	layers = make(map[string]Layer, len(colors))
	for u, c := range colors {
		layers[u] = Layer{Depth: c, MaxDepth: 2}
	}
	return colors, layers, true
}
