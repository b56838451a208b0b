package structure

import (
	"github.com/matzehuels/graphdraw/pkg/graph"
)

// Undirected returns the symmetrized adjacency of g restricted to its nodes:
// each unordered pair appears once per endpoint and self loops are dropped.
// Neighbor order follows the first time the pair is seen in node order.
func Undirected(g graph.Snapshot) map[string][]string {
	full := make(map[string][]string, len(g.Nodes))
	seen := make(map[string]map[string]bool, len(g.Nodes))
	for _, u := range g.Nodes {
		full[u] = []string{}
		seen[u] = map[string]bool{}
	}
	for _, u := range g.Nodes {
		for _, v := range g.Adj[u] {
			if u == v || seen[v] == nil || seen[u][v] {
				continue
			}
			seen[u][v] = true
			seen[v][u] = true
			full[u] = append(full[u], v)
			full[v] = append(full[v], u)
		}
	}
	return full
}

// parsedEdge is an edge of the snapshot together with the key it was
// listed under; overlays are keyed by that raw string.
type parsedEdge struct {
	graph.EdgeKey
	raw string
}

// edgeKeys parses the snapshot's edges, dropping malformed keys and edges
// whose endpoints are not declared nodes.
func edgeKeys(g graph.Snapshot) []parsedEdge {
	known := make(map[string]bool, len(g.Nodes))
	for _, u := range g.Nodes {
		known[u] = true
	}
	keys := make([]parsedEdge, 0, len(g.Edges))
	for _, e := range g.Edges {
		k, err := graph.ParseEdgeKey(e)
		if err != nil || !known[k.U] || !known[k.V] {
			continue
		}
		keys = append(keys, parsedEdge{EdgeKey: k, raw: e})
	}
	return keys
}

// pair returns an order-independent key for the endpoints of an edge.
func pair(u, v string) [2]string {
	if u > v {
		u, v = v, u
	}
	return [2]string{u, v}
}
