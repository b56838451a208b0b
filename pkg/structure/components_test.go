package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponents(t *testing.T) {
	g := build(t, seq(7), "1 2", "2 3", "5 4", "6 6")

	comp := Components(g)

	assert.Equal(t, 4, Count(comp))
	assert.Equal(t, comp["1"], comp["2"])
	assert.Equal(t, comp["1"], comp["3"])
	assert.Equal(t, comp["4"], comp["5"])
	assert.NotEqual(t, comp["1"], comp["4"])
	assert.Equal(t, 0, comp["1"])
	assert.Equal(t, 1, comp["4"])
	assert.Equal(t, 2, comp["6"])
	assert.Equal(t, 3, comp["7"])
}

func TestComponentsNumberedByFirstNode(t *testing.T) {
	g := build(t, seq(5), "5 3", "4 1", "3 2")

	comp := Components(g)

	assert.Equal(t, map[string]int{"1": 0, "4": 0, "2": 1, "3": 1, "5": 1}, comp)
}

func TestComponentsEmpty(t *testing.T) {
	comp := Components(build(t, nil))
	assert.Empty(t, comp)
}

func TestStronglyConnected(t *testing.T) {
	// 1 -> 2 -> 3 -> 1 is a cycle; 3 -> 4 leaves it; 4 <-> 5 is another SCC.
	g := build(t, seq(6), "1 2", "2 3", "3 1", "3 4", "4 5", "5 4")

	comp := StronglyConnected(g)

	assert.Equal(t, 3, Count(comp))
	assert.Equal(t, comp["1"], comp["2"])
	assert.Equal(t, comp["2"], comp["3"])
	assert.Equal(t, comp["4"], comp["5"])
	assert.NotEqual(t, comp["3"], comp["4"])
	assert.Equal(t, 0, comp["1"], "ids follow first member order")
	assert.Equal(t, 1, comp["4"])
	assert.Equal(t, 2, comp["6"])
}

func TestStronglyConnectedChain(t *testing.T) {
	g := build(t, seq(4), "1 2", "2 3", "3 4", "4 4")

	comp := StronglyConnected(g)
	assert.Equal(t, 4, Count(comp))
}

func TestUndirected(t *testing.T) {
	g := build(t, seq(3), "1 2", "2 1", "2 3", "3 3")

	full := Undirected(g)

	assert.Equal(t, []string{"2"}, full["1"])
	assert.Equal(t, []string{"1", "3"}, full["2"])
	assert.Equal(t, []string{"2"}, full["3"])
}
