package structure

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphdraw/pkg/graph"
)

// build creates a snapshot from "u v" edges, declaring nodes in the given order.
func build(t *testing.T, nodes []string, edges ...string) graph.Snapshot {
	t.Helper()
	s, err := graph.FromEdges(nodes, edges, nil, nil)
	require.NoError(t, err)
	return s
}

// labelled creates a snapshot whose edges carry the given labels in order.
func labelled(t *testing.T, nodes []string, edges []string, labels []string) graph.Snapshot {
	t.Helper()
	s := build(t, nodes, edges...)
	for i, l := range labels {
		s.EdgeLabels[s.Edges[i]] = l
	}
	return s
}

// seq returns the node ids "1".."n".
func seq(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i + 1)
	}
	return out
}
