package graph

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/graphdraw/pkg/errors"
)

// =============================================================================
// Edge Keys
// =============================================================================

// EdgeKey identifies one edge between an ordered node pair.
type EdgeKey struct {
	U, V string
	K    int // multiplicity index; distinguishes parallel edges
}

// ParseEdgeKey parses "u v" or "u v k".
func ParseEdgeKey(s string) (EdgeKey, error) {
	parts := strings.Fields(s)
	switch len(parts) {
	case 2:
		return EdgeKey{U: parts[0], V: parts[1]}, nil
	case 3:
		k, err := strconv.Atoi(parts[2])
		if err != nil || k < 0 {
			return EdgeKey{}, errors.New(errors.ErrCodeInvalidGraph, "edge %q: invalid multiplicity index", s)
		}
		return EdgeKey{U: parts[0], V: parts[1], K: k}, nil
	default:
		return EdgeKey{}, errors.New(errors.ErrCodeInvalidGraph, "edge %q: want \"u v\" or \"u v k\"", s)
	}
}

// String formats the key as "u v k".
func (e EdgeKey) String() string {
	return e.U + " " + e.V + " " + strconv.Itoa(e.K)
}

// Base returns the "u v" prefix shared by all parallel edges of the pair.
func (e EdgeKey) Base() string {
	return e.U + " " + e.V
}

// =============================================================================
// Snapshot
// =============================================================================

// Snapshot is one graph as handed to the layout engine.
type Snapshot struct {
	Nodes      []string            `json:"nodes"`
	Edges      []string            `json:"edges"`
	Adj        map[string][]string `json:"adj"`
	Rev        map[string][]string `json:"rev"`
	EdgeLabels map[string]string   `json:"edgeLabels"`
	NodeLabels map[string]string   `json:"nodeLabels"`
}

// Empty returns a snapshot with no nodes and initialized maps.
func Empty() Snapshot {
	return Snapshot{
		Nodes:      []string{},
		Edges:      []string{},
		Adj:        map[string][]string{},
		Rev:        map[string][]string{},
		EdgeLabels: map[string]string{},
		NodeLabels: map[string]string{},
	}
}

// FromEdges builds a snapshot from a node list and "u v [k]" edge strings,
// deriving adjacency and reverse adjacency. Edge keys are normalized to the
// three-field form; edges without an explicit index are numbered in input
// order per ordered pair. Labels keyed by "u v" are moved to "u v 0".
func FromEdges(nodes, edges []string, edgeLabels, nodeLabels map[string]string) (Snapshot, error) {
	s := Empty()
	s.Nodes = append(s.Nodes, nodes...)
	for _, u := range nodes {
		s.Adj[u] = []string{}
		s.Rev[u] = []string{}
	}

	next := map[string]int{}
	for _, raw := range edges {
		key, err := ParseEdgeKey(raw)
		if err != nil {
			return Snapshot{}, err
		}
		if len(strings.Fields(raw)) == 2 {
			key.K = next[key.Base()]
		}
		next[key.Base()] = max(next[key.Base()], key.K+1)

		s.Edges = append(s.Edges, key.String())
		if !slices.Contains(s.Adj[key.U], key.V) {
			s.Adj[key.U] = append(s.Adj[key.U], key.V)
		}
		if !slices.Contains(s.Rev[key.V], key.U) {
			s.Rev[key.V] = append(s.Rev[key.V], key.U)
		}
		if label, ok := edgeLabels[raw]; ok {
			s.EdgeLabels[key.String()] = label
		}
	}
	for k, v := range nodeLabels {
		s.NodeLabels[k] = v
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Validate checks referential integrity: node ids are well formed and unique,
// and every edge or label key refers to a declared node.
func (s Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Nodes))
	for _, u := range s.Nodes {
		if err := errors.ValidateNodeID(u); err != nil {
			return err
		}
		if seen[u] {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node %q", u)
		}
		seen[u] = true
	}
	for _, e := range s.Edges {
		key, err := ParseEdgeKey(e)
		if err != nil {
			return err
		}
		if !seen[key.U] || !seen[key.V] {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %q references an unknown node", e)
		}
	}
	for k := range s.EdgeLabels {
		key, err := ParseEdgeKey(k)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge label key")
		}
		if !seen[key.U] || !seen[key.V] {
			return errors.New(errors.ErrCodeInvalidGraph, "label for edge %q references an unknown node", k)
		}
	}
	for k := range s.NodeLabels {
		if !seen[k] {
			return errors.New(errors.ErrCodeInvalidGraph, "label for unknown node %q", k)
		}
	}
	for _, m := range []map[string][]string{s.Adj, s.Rev} {
		for u, vs := range m {
			if !seen[u] {
				return errors.New(errors.ErrCodeInvalidGraph, "adjacency lists unknown node %q", u)
			}
			for _, v := range vs {
				if !seen[v] {
					return errors.New(errors.ErrCodeInvalidGraph, "adjacency of %q lists unknown node %q", u, v)
				}
			}
		}
	}
	if !s.Consistent() {
		return errors.New(errors.ErrCodeInvalidGraph, "adjacency and reverse adjacency disagree")
	}
	return nil
}

// Consistent reports whether v ∈ adj[u] ⇔ u ∈ rev[v] for every pair.
func (s Snapshot) Consistent() bool {
	for u, vs := range s.Adj {
		for _, v := range vs {
			if !slices.Contains(s.Rev[v], u) {
				return false
			}
		}
	}
	for v, us := range s.Rev {
		for _, u := range us {
			if !slices.Contains(s.Adj[u], v) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy so callers can hand the engine a snapshot they
// keep mutating.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Nodes:      slices.Clone(s.Nodes),
		Edges:      slices.Clone(s.Edges),
		Adj:        make(map[string][]string, len(s.Adj)),
		Rev:        make(map[string][]string, len(s.Rev)),
		EdgeLabels: make(map[string]string, len(s.EdgeLabels)),
		NodeLabels: make(map[string]string, len(s.NodeLabels)),
	}
	for k, v := range s.Adj {
		out.Adj[k] = slices.Clone(v)
	}
	for k, v := range s.Rev {
		out.Rev[k] = slices.Clone(v)
	}
	for k, v := range s.EdgeLabels {
		out.EdgeLabels[k] = v
	}
	for k, v := range s.NodeLabels {
		out.NodeLabels[k] = v
	}
	return out
}

// String summarizes the snapshot for logs.
func (s Snapshot) String() string {
	return fmt.Sprintf("graph(%d nodes, %d edges)", len(s.Nodes), len(s.Edges))
}
