package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBridgesCycle(t *testing.T) {
	g := build(t, seq(5), "1 2", "2 3", "3 4", "4 5", "5 1")

	cuts, bridges := Bridges(g)

	assert.Empty(t, bridges)
	assert.Empty(t, cuts)
}

func TestBridgesPath(t *testing.T) {
	g := build(t, seq(4), "1 2", "2 3", "3 4")

	cuts, bridges := Bridges(g)

	assert.Len(t, bridges, 3)
	for _, e := range g.Edges {
		assert.True(t, bridges[e], "edge %s should be a bridge", e)
	}
	assert.Equal(t, map[string]bool{"2": true, "3": true}, cuts)
}

func TestBridgesTwoCyclesJoined(t *testing.T) {
	// Triangles 1-2-3 and 4-5-6 joined by 3-4.
	g := build(t, seq(6), "1 2", "2 3", "3 1", "3 4", "4 5", "5 6", "6 4")

	cuts, bridges := Bridges(g)

	assert.Equal(t, map[string]bool{"3 4 0": true}, bridges)
	assert.Equal(t, map[string]bool{"3": true, "4": true}, cuts)
}

func TestBridgesParallelEdges(t *testing.T) {
	g := build(t, seq(3), "1 2", "1 2", "2 3")

	_, bridges := Bridges(g)

	assert.False(t, bridges["1 2 0"])
	assert.False(t, bridges["1 2 1"])
	assert.True(t, bridges["2 3 0"])
}

func TestBridgesStarRoot(t *testing.T) {
	g := build(t, seq(4), "1 2", "1 3", "1 4")

	cuts, bridges := Bridges(g)

	assert.Len(t, bridges, 3)
	assert.Equal(t, map[string]bool{"1": true}, cuts)
}
