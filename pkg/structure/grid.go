package structure

import (
	"math"

	"github.com/emirpasic/gods/queues/arrayqueue"

	"github.com/matzehuels/graphdraw/pkg/graph"
)

// Cell is an integer grid coordinate; X grows right, Y grows down.
type Cell struct {
	X, Y int
}

// GridLayout is a raster placement of nodes.
type GridLayout struct {
	Cells map[string]Cell
	Cols  int
	Rows  int
}

// Grid places the nodes of g on a grid whose column/row ratio approximates
// aspect (canvas width over height). Nodes are laid out row by row in
// breadth-first order so neighbors tend to land in nearby cells.
func Grid(g graph.Snapshot, aspect float64) GridLayout {
	n := len(g.Nodes)
	if n == 0 {
		return GridLayout{Cells: map[string]Cell{}}
	}
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	cols := int(math.Ceil(math.Sqrt(float64(n) * aspect)))
	cols = min(max(cols, 1), n)
	rows := (n + cols - 1) / cols

	full := Undirected(g)
	cells := make(map[string]Cell, n)
	i := 0
	place := func(u string) {
		cells[u] = Cell{X: i % cols, Y: i / cols}
		i++
	}

	for _, root := range g.Nodes {
		if _, ok := cells[root]; ok {
			continue
		}
		place(root)
		q := arrayqueue.New()
		q.Enqueue(root)
		for !q.Empty() {
			item, _ := q.Dequeue()
			for _, v := range full[item.(string)] {
				if _, ok := cells[v]; !ok {
					place(v)
					q.Enqueue(v)
				}
			}
		}
	}
	return GridLayout{Cells: cells, Cols: cols, Rows: rows}
}
