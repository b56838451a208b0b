package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBipartiteEvenCycle(t *testing.T) {
	g := build(t, seq(4), "1 2", "2 3", "3 4", "4 1")

	colors, layers, ok := Bipartite(g)
	require.True(t, ok)

	assert.Equal(t, 1, colors["1"])
	assert.Equal(t, 2, colors["2"])
	assert.Equal(t, 1, colors["3"])
	assert.Equal(t, 2, colors["4"])
	for u, l := range layers {
		assert.Equal(t, colors[u], l.Depth, "depth of %s", u)
		assert.Equal(t, 2, l.MaxDepth)
	}
}

func TestBipartiteOddCycle(t *testing.T) {
	g := build(t, seq(5), "1 2", "2 3", "3 4", "4 5", "5 1")

	colors, layers, ok := Bipartite(g)
	assert.False(t, ok)
	assert.Nil(t, colors)
	assert.Nil(t, layers)
}

func TestBipartiteSelfLoop(t *testing.T) {
	g := build(t, seq(2), "1 2", "2 2")

	_, _, ok := Bipartite(g)
	assert.False(t, ok)
}

func TestBipartiteIgnoresDirection(t *testing.T) {
	// 1->2, 3->2, 3->1 is a triangle once direction is dropped.
	g := build(t, seq(3), "1 2", "3 2", "3 1")

	_, _, ok := Bipartite(g)
	assert.False(t, ok)
}

func TestBipartiteForest(t *testing.T) {
	g := build(t, seq(5), "1 2", "1 3", "4 5")

	colors, _, ok := Bipartite(g)
	require.True(t, ok)
	assert.Len(t, colors, 5)
	assert.Equal(t, 1, colors["4"], "each component root starts with color 1")
	assert.Equal(t, 2, colors["5"])
}
