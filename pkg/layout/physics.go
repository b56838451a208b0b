package layout

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/observability"
	"github.com/matzehuels/graphdraw/pkg/spatial"
)

const (
	friction    = 0.05
	maxVelocity = 100.0

	minPairDistance = 10.0
	repulsion       = 150_000.0
	springScale     = 100_000.0
	springExponent  = 1.6

	// fieldDistance is both the reach of the boundary field and the margin
	// kept free around layer rows and grid cells.
	fieldDistance = 50.0
	fieldScale    = 500_000.0

	targetExponent = 1.75
	targetScale    = 100.0

	easing       = 0.15
	easingDecay  = 0.85
	easingCutoff = 0.1
)

// Tick advances the simulation by one frame. Nodes that left the canvas
// are clamped back and the dragged node follows the pointer even when the
// layout is locked.
func (e *Engine) Tick() {
	if len(e.order) == 0 {
		return
	}
	start := time.Now()

	e.resetMisplaced()
	e.applyDrag()
	if !e.settings.LockMode {
		e.step()
	}

	observability.Engine().OnTick(len(e.order), time.Since(start))
}

// step updates velocities and positions of all free visible nodes in graph
// order. Each node sees the positions already updated earlier in the same
// step; candidates are gathered from positions at its start.
func (e *Engine) step() {
	visible := make([]string, 0, len(e.order))
	for _, u := range e.order {
		if !e.conceal[u] {
			visible = append(visible, u)
		}
	}
	ix := spatial.Build(visible, func(id string) r2.Vec { return e.nodes[id].Pos }, e.width, e.height)
	candidates := make(map[string][]string, len(visible))
	for _, u := range visible {
		candidates[u] = ix.Near(u, e.nodes[u].Pos, e.fullAdj[u])
	}

	for _, u := range visible {
		n := e.nodes[u]
		if n.Selected && e.settings.FixedMode {
			continue
		}
		if e.settings.CollisionAvoidance {
			e.collide(u, n)
		}
		n.ease()

		for _, v := range candidates[u] {
			if !e.visible(v) || v == u {
				continue
			}
			d := r2.Sub(e.nodes[v].Pos, n.Pos)
			dist := math.Max(r2.Norm(d), minPairDistance)

			aMag := repulsion / (2 * math.Pow(dist, 4.5))
			if e.adjSet[[2]string{u, v}] || e.adjSet[[2]string{v, u}] {
				rest := e.EdgeLength(u, v)
				aMag = math.Pow(math.Abs(dist-rest), springExponent) / springScale
				if dist >= rest {
					aMag = -aMag
				}
			}
			n.Vel = damp(r2.Sub(n.Vel, r2.Scale(aMag, d)))
		}

		n.Vel = damp(r2.Add(n.Vel, e.boundaryField(n.Pos)))
		e.pullToTarget(u, n)
		n.Pos = r2.Add(n.Pos, n.Vel)
	}
}

// boundaryField pushes nodes within fieldDistance of a border toward the
// center, growing with the square of the distance to the center.
func (e *Engine) boundaryField(p r2.Vec) r2.Vec {
	field := func(x, extent float64) float64 {
		if math.Min(x, extent-x) > fieldDistance {
			return 0
		}
		d := extent/2 - x
		sign := 1.0
		if d < 0 {
			sign = -1
		}
		return d * d * sign / fieldScale
	}
	return r2.Vec{X: field(p.X, e.width), Y: field(p.Y, e.height)}
}

// pullToTarget overrides velocity components for nodes with a layer row or
// a grid cell. Layers win over the grid.
func (e *Engine) pullToTarget(u string, n *SimNode) {
	nodeDist := e.settings.NodeDist()
	if e.overlays.Layers != nil {
		layer, ok := e.overlays.Layers[u]
		if !ok {
			return
		}
		n.Vel.Y = 0
		height := nodeDist * 4 / 5
		if layer.MaxDepth > 0 && float64(layer.MaxDepth)*height >= e.height-2*fieldDistance {
			height = (e.height - 2*fieldDistance) / float64(layer.MaxDepth)
		}
		target := fieldDistance + (float64(layer.Depth)-0.5)*height
		n.Vel.Y = dampScalar(n.Vel.Y + spring(n.Pos.Y, target))
		return
	}
	if grid := e.overlays.Grid; grid != nil {
		cell, ok := grid.Cells[u]
		if !ok {
			return
		}
		side := nodeDist * 4 / 5
		w, h := side, side
		if grid.Cols > 0 && float64(grid.Cols)*side > e.width-2*fieldDistance {
			w = (e.width - 2*fieldDistance) / float64(grid.Cols)
		}
		if grid.Rows > 0 && float64(grid.Rows)*side > e.height-2*fieldDistance {
			h = (e.height - 2*fieldDistance) / float64(grid.Rows)
		}
		target := r2.Vec{X: float64(cell.X)*w + fieldDistance, Y: float64(cell.Y)*h + fieldDistance}
		n.Vel = damp(r2.Add(n.Vel, r2.Vec{X: spring(n.Pos.X, target.X), Y: spring(n.Pos.Y, target.Y)}))
	}
}

// spring returns the acceleration from x toward target.
func spring(x, target float64) float64 {
	a := math.Pow(math.Abs(x-target), targetExponent) / targetScale
	if x > target {
		return -a
	}
	return a
}

// collide accumulates a displacement away from every visible node closer
// than the minimum distance.
func (e *Engine) collide(u string, n *SimNode) {
	minDistance := n.Radius * e.settings.MinNodeDistance
	strength := e.settings.CollisionStrength * 2
	for _, v := range e.order {
		if v == u || e.conceal[v] {
			continue
		}
		away := r2.Sub(n.Pos, e.nodes[v].Pos)
		dist := r2.Norm(away)
		if dist <= 0 || dist >= minDistance {
			continue
		}
		n.Disp = r2.Add(n.Disp, r2.Scale((minDistance-dist)*strength/dist, away))
	}
}

// ease moves the node by a fraction of its pending displacement and decays
// the rest.
func (n *SimNode) ease() {
	if n.Disp == (r2.Vec{}) {
		return
	}
	n.Pos = r2.Add(n.Pos, r2.Scale(easing, n.Disp))
	n.Disp = r2.Scale(easingDecay, n.Disp)
	if math.Abs(n.Disp.X) < easingCutoff {
		n.Disp.X = 0
	}
	if math.Abs(n.Disp.Y) < easingCutoff {
		n.Disp.Y = 0
	}
}

func damp(v r2.Vec) r2.Vec {
	return r2.Vec{X: dampScalar(v.X), Y: dampScalar(v.Y)}
}

func dampScalar(x float64) float64 {
	return clamp(x*(1-friction), -maxVelocity, maxVelocity)
}
