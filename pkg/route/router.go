package route

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// SafetyMargin is added to a node's radius when testing whether it
	// blocks a segment.
	SafetyMargin = 25.0
	// Bulge is the perpendicular offset of the control point of an
	// unobstructed edge.
	Bulge = 15.0

	repulsionReach    = 50.0
	repulsionStrength = 60.0
	cubicRepulsion    = 0.8
)

// Obstacle is a node that edges should avoid.
type Obstacle struct {
	ID     string
	Pos    r2.Vec
	Radius float64
}

// Curve is a straight, quadratic or cubic Bezier segment depending on the
// number of control points (zero, one or two).
type Curve struct {
	Start    r2.Vec
	Controls []r2.Vec
	End      r2.Vec
}

// Route returns the curve for an edge from start to end. Nodes whose ID is
// listed in skip are ignored; callers pass the edge's endpoints there.
func Route(start, end r2.Vec, nodes []Obstacle, skip ...string) Curve {
	return Curve{
		Start:    start,
		Controls: ControlPoints(start, end, Obstacles(start, end, nodes, skip...)),
		End:      end,
	}
}

// Obstacles returns the positions of nodes that lie within radius +
// SafetyMargin of the segment and whose projection falls on it. A
// zero-length segment has no obstacles.
func Obstacles(start, end r2.Vec, nodes []Obstacle, skip ...string) []r2.Vec {
	line := r2.Sub(end, start)
	length := r2.Norm(line)
	if length == 0 {
		return nil
	}
	dir := r2.Scale(1/length, line)

	var out []r2.Vec
next:
	for _, n := range nodes {
		for _, id := range skip {
			if n.ID == id {
				continue next
			}
		}
		proj := r2.Dot(r2.Sub(n.Pos, start), dir)
		if proj < 0 || proj > length {
			continue
		}
		closest := r2.Add(start, r2.Scale(proj, dir))
		if r2.Norm(r2.Sub(n.Pos, closest)) < n.Radius+SafetyMargin {
			out = append(out, n.Pos)
		}
	}
	return out
}

// ControlPoints synthesizes Bezier control points for a segment given the
// obstacle positions returned by [Obstacles].
//
// Without obstacles the single control point sits Bulge pixels to the left
// of the chord midpoint (an empty slice for a zero-length chord). With one
// obstacle the control point is the midpoint displaced by the repulsion
// vector. With more, two control points sit at 1/3 and 2/3 of the chord,
// each displaced by 80% of the repulsion.
func ControlPoints(start, end r2.Vec, obstacles []r2.Vec) []r2.Vec {
	mid := midpoint(start, end)
	line := r2.Sub(end, start)

	if len(obstacles) == 0 {
		perp := r2.Vec{X: -line.Y, Y: line.X}
		if r2.Norm(perp) == 0 {
			return nil
		}
		return []r2.Vec{r2.Add(mid, r2.Scale(Bulge, r2.Unit(perp)))}
	}

	rep := repulsion(mid, obstacles)
	if len(obstacles) == 1 {
		return []r2.Vec{r2.Add(mid, rep)}
	}
	if r2.Norm(line) == 0 {
		return []r2.Vec{mid, mid}
	}
	push := r2.Scale(cubicRepulsion, rep)
	return []r2.Vec{
		r2.Add(r2.Add(start, r2.Scale(1.0/3, line)), push),
		r2.Add(r2.Add(start, r2.Scale(2.0/3, line)), push),
	}
}

// repulsion sums unit vectors pointing from each obstacle toward mid,
// weighted linearly by proximity and zero beyond repulsionReach.
func repulsion(mid r2.Vec, obstacles []r2.Vec) r2.Vec {
	var total r2.Vec
	for _, o := range obstacles {
		away := r2.Sub(mid, o)
		d := r2.Norm(away)
		if d == 0 {
			continue
		}
		scale := math.Max(0, repulsionReach-d) / repulsionReach * repulsionStrength
		total = r2.Add(total, r2.Scale(scale/d, away))
	}
	return total
}

func midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}

// Midpoint returns the point of the curve at t = 0.5.
func (c Curve) Midpoint() r2.Vec {
	switch len(c.Controls) {
	case 0:
		return midpoint(c.Start, c.End)
	case 1:
		// (1-t)^2 P0 + 2(1-t)t P1 + t^2 P2
		return r2.Add(r2.Scale(0.25, r2.Add(c.Start, c.End)), r2.Scale(0.5, c.Controls[0]))
	default:
		// (1-t)^3 P0 + 3(1-t)^2 t P1 + 3(1-t) t^2 P2 + t^3 P3
		return r2.Add(
			r2.Scale(0.125, r2.Add(c.Start, c.End)),
			r2.Scale(0.375, r2.Add(c.Controls[0], c.Controls[1])),
		)
	}
}

// Tangent returns the derivative of the curve at t = 0.5. It is not
// normalized and may be the zero vector.
func (c Curve) Tangent() r2.Vec {
	switch len(c.Controls) {
	case 0:
		return r2.Sub(c.End, c.Start)
	case 1:
		// 2(1-t)(P1-P0) + 2t(P2-P1)
		return r2.Sub(c.End, c.Start)
	default:
		// 3(1-t)^2(P1-P0) + 6(1-t)t(P2-P1) + 3t^2(P3-P2)
		a := r2.Scale(0.75, r2.Sub(c.Controls[0], c.Start))
		b := r2.Scale(1.5, r2.Sub(c.Controls[1], c.Controls[0]))
		d := r2.Scale(0.75, r2.Sub(c.End, c.Controls[1]))
		return r2.Add(r2.Add(a, b), d)
	}
}

// Shift returns a copy of the curve whose t = 0.5 point is moved by off
// while the endpoints stay put. A straight curve becomes quadratic.
func (c Curve) Shift(off r2.Vec) Curve {
	if off == (r2.Vec{}) {
		return c
	}
	out := Curve{Start: c.Start, End: c.End}
	switch len(c.Controls) {
	case 0:
		out.Controls = []r2.Vec{r2.Add(midpoint(c.Start, c.End), r2.Scale(2, off))}
	case 1:
		out.Controls = []r2.Vec{r2.Add(c.Controls[0], r2.Scale(2, off))}
	default:
		push := r2.Scale(4.0/3, off)
		out.Controls = []r2.Vec{r2.Add(c.Controls[0], push), r2.Add(c.Controls[1], push)}
	}
	return out
}
