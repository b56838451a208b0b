package structure

import "github.com/matzehuels/graphdraw/pkg/graph"

type incidence struct {
	to string
	id int // index into the parsed edge list
}

// Bridges finds the bridges and cut vertices of g treated as an undirected
// multigraph. Parallel edges between the same pair are never bridges. The
// bridge map is keyed by the edge strings of g; self loops are ignored.
func Bridges(g graph.Snapshot) (cuts map[string]bool, bridges map[string]bool) {
	keys := edgeKeys(g)
	inc := make(map[string][]incidence, len(g.Nodes))
	for id, k := range keys {
		if k.U == k.V {
			continue
		}
		inc[k.U] = append(inc[k.U], incidence{to: k.V, id: id})
		inc[k.V] = append(inc[k.V], incidence{to: k.U, id: id})
	}

	cuts = map[string]bool{}
	bridges = map[string]bool{}
	disc := make(map[string]int, len(g.Nodes))
	low := make(map[string]int, len(g.Nodes))
	timer := 0

	var visit func(u string, parentEdge int)
	visit = func(u string, parentEdge int) {
		timer++
		disc[u], low[u] = timer, timer
		children := 0

		for _, e := range inc[u] {
			if e.id == parentEdge {
				continue
			}
			if disc[e.to] != 0 {
				low[u] = min(low[u], disc[e.to])
				continue
			}
			children++
			visit(e.to, e.id)
			low[u] = min(low[u], low[e.to])

			if low[e.to] > disc[u] {
				bridges[keys[e.id].raw] = true
			}
			if parentEdge >= 0 && low[e.to] >= disc[u] {
				cuts[u] = true
			}
		}
		if parentEdge < 0 && children > 1 {
			cuts[u] = true
		}
	}

	for _, u := range g.Nodes {
		if disc[u] == 0 {
			visit(u, -1)
		}
	}
	return cuts, bridges
}
