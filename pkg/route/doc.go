// Package route computes curved paths for edges drawn between two node
// centers.
//
// Every edge is a Bezier curve. With nothing in the way it bends slightly
// to one side so that opposite edges between the same pair stay apart. When
// other nodes sit close to the straight segment, the curve is pushed away
// from them: one obstacle gives a quadratic curve, two or more give a cubic
// one. Midpoints and tangents are evaluated exactly at t = 0.5 and are used
// for label and arrowhead placement.
//
// All coordinates are canvas pixels with y growing downward.
package route
