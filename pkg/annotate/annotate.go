// Package annotate keeps free-hand pen strokes drawn over the graph.
//
// A stroke is sampled from pointer moves: every fourth move closes a
// quadratic segment from the point two samples back, through the previous
// sample, to the current pointer. This smooths jittery input without
// buffering a whole stroke. The eraser removes segments near the pointer.
package annotate

import (
	"image/color"
	"math/rand/v2"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/render"
)

// Style is the pen state captured when a stroke begins.
type Style struct {
	Color color.Color
	Width float64
	Alpha float64
	// Rainbow, when set, replaces Color with a hue that advances on every
	// pointer sample.
	Rainbow func(hue float64) color.Color
}

// Segment is one quadratic piece of a stroke.
type Segment struct {
	From, Ctrl, To r2.Vec
	Color          color.Color
}

// Stroke is one continuous pen gesture.
type Stroke struct {
	ID       uuid.UUID
	Width    float64
	Alpha    float64
	Segments []Segment
}

// Layer holds all strokes of a drawing. It is not safe for concurrent use.
type Layer struct {
	strokes []*Stroke
	active  *Stroke
	style   Style

	samples    int
	last       r2.Vec
	secondLast r2.Vec
	hue        float64
	rng        *rand.Rand
}

// NewLayer returns an empty layer. rng drives the rainbow hue steps; nil
// uses a randomly seeded source.
func NewLayer(rng *rand.Rand) *Layer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Layer{rng: rng}
}

// Begin starts a stroke at p. A stroke already in progress is ended.
func (l *Layer) Begin(p r2.Vec, style Style) uuid.UUID {
	l.End()
	l.active = &Stroke{ID: uuid.New(), Width: style.Width, Alpha: style.Alpha}
	l.strokes = append(l.strokes, l.active)
	l.style = style
	l.samples = 0
	l.last, l.secondLast = p, p
	l.sample(p)
	return l.active.ID
}

// Extend feeds a pointer sample into the active stroke. It is a no-op when
// no stroke is active.
func (l *Layer) Extend(p r2.Vec) {
	if l.active == nil {
		return
	}
	l.sample(p)
}

// End finishes the active stroke. Strokes without segments are dropped.
func (l *Layer) End() {
	if l.active != nil && len(l.active.Segments) == 0 {
		l.strokes = l.strokes[:len(l.strokes)-1]
	}
	l.active = nil
}

// Drawing reports whether a stroke is in progress.
func (l *Layer) Drawing() bool {
	return l.active != nil
}

func (l *Layer) sample(p r2.Vec) {
	c := l.style.Color
	if l.style.Rainbow != nil {
		c = l.style.Rainbow(l.hue)
		l.hue += float64(l.rng.IntN(3) + 1)
	}
	if l.samples%2 == 0 {
		if l.samples == 0 {
			l.active.Segments = append(l.active.Segments, Segment{
				From: l.secondLast, Ctrl: l.last, To: p, Color: c,
			})
		}
		l.secondLast, l.last = l.last, p
	}
	l.samples = (l.samples + 1) % 4
}

// Erase removes every segment that passes within radius of p and returns
// how many were removed. Strokes left empty are dropped.
func (l *Layer) Erase(p r2.Vec, radius float64) int {
	removed := 0
	kept := l.strokes[:0]
	for _, s := range l.strokes {
		segs := s.Segments[:0]
		for _, seg := range s.Segments {
			if seg.near(p, radius) {
				removed++
				continue
			}
			segs = append(segs, seg)
		}
		s.Segments = segs
		if len(segs) > 0 || s == l.active {
			kept = append(kept, s)
		}
	}
	l.strokes = kept
	return removed
}

// near samples the segment and reports whether any sample lies within r
// of p.
func (s Segment) near(p r2.Vec, r float64) bool {
	for i := 0; i <= 4; i++ {
		t := float64(i) / 4
		u := 1 - t
		q := r2.Add(r2.Add(r2.Scale(u*u, s.From), r2.Scale(2*u*t, s.Ctrl)), r2.Scale(t*t, s.To))
		if r2.Norm(r2.Sub(q, p)) <= r {
			return true
		}
	}
	return false
}

// Clear removes all strokes.
func (l *Layer) Clear() {
	l.strokes = nil
	l.active = nil
}

// Strokes returns a copy of the strokes in drawing order.
func (l *Layer) Strokes() []Stroke {
	out := make([]Stroke, len(l.strokes))
	for i, s := range l.strokes {
		out[i] = *s
		out[i].Segments = append([]Segment(nil), s.Segments...)
	}
	return out
}

// Len returns the number of strokes.
func (l *Layer) Len() int {
	return len(l.strokes)
}

// Draw paints every stroke. It leaves the canvas alpha at the last
// stroke's value; callers reset it.
func (l *Layer) Draw(c render.Canvas) {
	for _, s := range l.strokes {
		c.SetAlpha(s.Alpha)
		c.SetLineWidth(s.Width)
		c.SetLineDash(nil)
		for _, seg := range s.Segments {
			c.SetStrokeColor(seg.Color)
			c.BeginPath()
			c.MoveTo(seg.From.X, seg.From.Y)
			c.QuadraticCurveTo(seg.Ctrl.X, seg.Ctrl.Y, seg.To.X, seg.To.Y)
			c.Stroke()
		}
	}
}

var _ render.Drawer = (*Layer)(nil)
