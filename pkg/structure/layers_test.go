package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreeLayersTree(t *testing.T) {
	g := build(t, seq(5), "1 2", "1 3", "2 4", "4 5")

	layers, backedges := TreeLayers(g)

	assert.Empty(t, backedges)
	assert.Equal(t, Layer{Depth: 1, MaxDepth: 4}, layers["1"])
	assert.Equal(t, Layer{Depth: 2, MaxDepth: 4}, layers["2"])
	assert.Equal(t, Layer{Depth: 2, MaxDepth: 4}, layers["3"])
	assert.Equal(t, Layer{Depth: 3, MaxDepth: 4}, layers["4"])
	assert.Equal(t, Layer{Depth: 4, MaxDepth: 4}, layers["5"])
}

func TestTreeLayersCycle(t *testing.T) {
	g := build(t, seq(4), "1 2", "2 3", "3 4", "4 1")

	layers, backedges := TreeLayers(g)

	assert.Equal(t, map[string]bool{"3 4 0": true}, backedges)
	assert.Equal(t, 3, layers["3"].Depth)
	assert.Equal(t, 2, layers["4"].Depth)
}

func TestTreeLayersPerComponentDepth(t *testing.T) {
	g := build(t, seq(5), "1 2", "2 3", "4 5")

	layers, _ := TreeLayers(g)

	assert.Equal(t, 3, layers["1"].MaxDepth)
	assert.Equal(t, 2, layers["4"].MaxDepth)
	assert.Equal(t, 1, layers["4"].Depth)
}

func TestTreeLayersMultiAndSelfLoop(t *testing.T) {
	g := build(t, seq(2), "1 2", "2 1", "2 2")

	_, backedges := TreeLayers(g)

	assert.Equal(t, map[string]bool{"2 1 0": true, "2 2 0": true}, backedges)
}
