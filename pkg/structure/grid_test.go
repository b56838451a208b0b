package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridSquare(t *testing.T) {
	g := build(t, seq(9), "1 2", "2 3")

	layout := Grid(g, 1)

	assert.Equal(t, 3, layout.Cols)
	assert.Equal(t, 3, layout.Rows)
	assert.Len(t, layout.Cells, 9)

	used := map[Cell]bool{}
	for _, c := range layout.Cells {
		assert.False(t, used[c], "cell %v used twice", c)
		used[c] = true
		assert.Less(t, c.X, layout.Cols)
		assert.Less(t, c.Y, layout.Rows)
	}
}

func TestGridWide(t *testing.T) {
	layout := Grid(build(t, seq(8)), 2)

	assert.Equal(t, 4, layout.Cols)
	assert.Equal(t, 2, layout.Rows)
}

func TestGridBFSOrder(t *testing.T) {
	// 1 is connected to 4, so 4 is placed right after 1.
	g := build(t, seq(4), "1 4")

	layout := Grid(g, 1)

	assert.Equal(t, Cell{X: 0, Y: 0}, layout.Cells["1"])
	assert.Equal(t, Cell{X: 1, Y: 0}, layout.Cells["4"])
	assert.Equal(t, Cell{X: 0, Y: 1}, layout.Cells["2"])
}

func TestGridDegenerate(t *testing.T) {
	assert.Empty(t, Grid(build(t, nil), 1).Cells)

	layout := Grid(build(t, seq(3)), 0)
	assert.Equal(t, 2, layout.Cols)
}
