package structure

import (
	"github.com/emirpasic/gods/queues/arrayqueue"

	"github.com/matzehuels/graphdraw/pkg/graph"
)

// TreeLayers assigns every node its breadth-first depth from the first node
// of its component (roots have depth 1) and records each component's depth
// count. Edges that are not part of the BFS forest, including self loops and
// extra parallel edges, are returned as back edges keyed by edge string.
func TreeLayers(g graph.Snapshot) (layers map[string]Layer, backedges map[string]bool) {
	full := Undirected(g)
	depth := make(map[string]int, len(g.Nodes))
	parent := make(map[string]string, len(g.Nodes))
	layers = make(map[string]Layer, len(g.Nodes))

	for _, root := range g.Nodes {
		if depth[root] != 0 {
			continue
		}
		depth[root] = 1
		members := []string{root}
		maxDepth := 1

		q := arrayqueue.New()
		q.Enqueue(root)
		for !q.Empty() {
			item, _ := q.Dequeue()
			u := item.(string)
			for _, v := range full[u] {
				if depth[v] != 0 {
					continue
				}
				depth[v] = depth[u] + 1
				parent[v] = u
				maxDepth = max(maxDepth, depth[v])
				members = append(members, v)
				q.Enqueue(v)
			}
		}
		for _, u := range members {
			layers[u] = Layer{Depth: depth[u], MaxDepth: maxDepth}
		}
	}

	backedges = map[string]bool{}
	claimed := map[[2]string]bool{}
	for _, e := range edgeKeys(g) {
		p := pair(e.U, e.V)
		isTree := e.U != e.V && (parent[e.V] == e.U || parent[e.U] == e.V)
		if isTree && !claimed[p] {
			claimed[p] = true
			continue
		}
		backedges[e.raw] = true
	}
	return layers, backedges
}
