package layout

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// placementMargin keeps new and misplaced nodes this far inside the
	// canvas, independent of the configured radius.
	placementMargin = 16.0
	// placementTries bounds the resampling of a random coordinate.
	placementTries = 10
)

// SimNode is the simulation state of one node.
type SimNode struct {
	Pos  r2.Vec
	Vel  r2.Vec
	Disp r2.Vec // pending collision displacement, eased into Pos

	// MarkColor is a palette index from settings.MarkColorFirst, or zero
	// when the node is unmarked.
	MarkColor int
	Selected  bool

	// Radius is resolved from the configured radius and the degree.
	Radius float64
}

// syncNodes adds and removes SimNodes so the engine holds exactly ids.
// The last removed node's position is kept as a placement hint for the
// next node that appears.
func (e *Engine) syncNodes(ids []string) {
	want := make(map[string]bool, len(ids))
	for _, u := range ids {
		want[u] = true
	}
	for _, u := range e.order {
		if want[u] {
			continue
		}
		if n, ok := e.nodes[u]; ok {
			p := n.Pos
			e.lastDeleted = &p
			delete(e.nodes, u)
		}
	}

	order := make([]string, 0, len(ids))
	for _, u := range ids {
		if _, ok := e.nodes[u]; ok {
			if !slices.Contains(order, u) {
				order = append(order, u)
			}
			continue
		}
		pos := e.randomPosition()
		if e.lastDeleted != nil {
			pos = *e.lastDeleted
			e.lastDeleted = nil
		}
		e.nodes[u] = &SimNode{Pos: pos, Radius: e.settings.NodeRadius}
		order = append(order, u)
	}
	e.order = order
}

// randomPosition samples a point in the central half of the canvas,
// resampling each axis while it falls within placementMargin of the border.
func (e *Engine) randomPosition() r2.Vec {
	sample := func(extent float64) float64 {
		v := e.rng.Float64()*extent/2 + extent/4
		for i := 0; i < placementTries && (v <= placementMargin || v >= extent-placementMargin); i++ {
			v = e.rng.Float64()*extent/2 + extent/4
		}
		return v
	}
	return r2.Vec{X: sample(e.width), Y: sample(e.height)}
}

// inBounds reports whether p lies inside the canvas shrunk by
// placementMargin.
func (e *Engine) inBounds(p r2.Vec) bool {
	return p.X >= placementMargin && p.X+placementMargin <= e.width &&
		p.Y >= placementMargin && p.Y+placementMargin <= e.height
}

// resetMisplaced clamps nodes that left the canvas back inside it. NaN
// positions are replaced by a fresh random position.
func (e *Engine) resetMisplaced() {
	for _, u := range e.order {
		n := e.nodes[u]
		if e.inBounds(n.Pos) {
			continue
		}
		if math.IsNaN(n.Pos.X) || math.IsNaN(n.Pos.Y) {
			n.Pos = e.randomPosition()
			n.Vel = r2.Vec{}
			continue
		}
		n.Pos = r2.Vec{
			X: clamp(n.Pos.X, placementMargin, e.width-placementMargin),
			Y: clamp(n.Pos.Y, placementMargin, e.height-placementMargin),
		}
	}
}

// updateRadii resolves every node's radius: the configured radius grows
// by ten percent per distinct neighbor.
func (e *Engine) updateRadii() {
	for u, n := range e.nodes {
		n.Radius = e.settings.NodeRadius * (1 + 0.1*float64(len(e.fullAdj[u])))
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
