package route

import "gonum.org/v1/gonum/spatial/r2"

// Offset factors applied to the chord's perpendicular for parallel edges.
const (
	LabelFactor = 0.37
	ArrowFactor = 0.375
)

// MultiEdgeOffset returns the displacement of the index-th parallel edge
// between start and end. Index 0 is not displaced; odd indices go to one
// side and even indices to the other, each pair further out than the last.
// The offset scales with the chord length.
func MultiEdgeOffset(start, end r2.Vec, index int, factor float64) r2.Vec {
	if index <= 0 || start == end {
		return r2.Vec{}
	}
	perp := r2.Vec{X: start.Y - end.Y, Y: end.X - start.X}
	side := 1.0
	if index%2 == 0 {
		side = -1
	}
	return r2.Scale(factor*side*float64((index+1)/2), perp)
}

// LabelOffset returns where an edge label sits relative to the curve
// midpoint: the parallel-edge offset plus sep pixels along the chord's
// left normal, or its right normal when flip is set.
func LabelOffset(start, end r2.Vec, index int, sep float64, flip bool) r2.Vec {
	if start == end {
		return r2.Vec{}
	}
	off := MultiEdgeOffset(start, end, index, LabelFactor)
	normal := r2.Unit(r2.Vec{X: start.Y - end.Y, Y: end.X - start.X})
	if flip {
		sep = -sep
	}
	return r2.Add(off, r2.Scale(sep, normal))
}
