package layout

import "math"

// minEdgeLength is the floor for any adaptive rest length.
const minEdgeLength = 10.0

// Multipliers scale the base edge length by the kind of edge.
type Multipliers struct {
	Isolated  float64 // both endpoints are leaves
	Center    float64 // both endpoints have degree above two
	Periphery float64 // everything else
}

// AdaptiveMultipliers derives the multipliers from graph size and average
// degree. Larger and denser graphs spread isolated and central edges
// further and pull peripheral ones in.
func AdaptiveMultipliers(nodes, edges int) Multipliers {
	if nodes <= 0 {
		return Multipliers{Isolated: 2.0, Center: 1.5, Periphery: 0.7}
	}
	avgDegree := 2 * float64(edges) / float64(nodes)
	size := math.Log10(float64(nodes))
	density := avgDegree / 3
	return Multipliers{
		Isolated:  math.Max(2.0+0.1*size+0.2*density, 1.5),
		Center:    math.Max(1.5+0.05*size+0.1*density, 1.2),
		Periphery: math.Max(0.7-0.02*size-0.05*density, 0.4),
	}
}

// For picks the multiplier for an edge whose endpoints have degrees a and b.
func (m Multipliers) For(a, b int) float64 {
	switch {
	case a == 1 && b == 1:
		return m.Isolated
	case a > 2 && b > 2:
		return m.Center
	default:
		return m.Periphery
	}
}

func (e *Engine) updateMultipliers() {
	e.mult = AdaptiveMultipliers(len(e.order), len(e.edges))
	clear(e.lengths)
}

// degree counts the visible distinct neighbors of u, self loops excluded.
func (e *Engine) degree(u string) int {
	d := 0
	for _, v := range e.fullAdj[u] {
		if v != u && !e.conceal[v] {
			d++
		}
	}
	return d
}

// EdgeLength returns the rest length of the spring between u and v. Values
// are memoized per unordered pair until the graph or the size settings
// change.
func (e *Engine) EdgeLength(u, v string) float64 {
	key := [2]string{u, v}
	if v < u {
		key = [2]string{v, u}
	}
	if l, ok := e.lengths[key]; ok {
		return l
	}
	mult := e.mult.For(e.degree(u), e.degree(v))
	l := math.Max(e.settings.NodeDist()*mult, minEdgeLength)
	e.lengths[key] = l
	return l
}
