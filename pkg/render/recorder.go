package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Call is one recorded Canvas invocation.
type Call struct {
	Op   string
	Args []float64
	Text string
}

func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Op)
	if c.Text != "" {
		fmt.Fprintf(&b, " %q", c.Text)
	}
	for _, a := range c.Args {
		fmt.Fprintf(&b, " %.2f", a)
	}
	return b.String()
}

// Recorder is a Canvas that stores every call. It is meant for tests and
// for debugging scene output.
type Recorder struct {
	Calls []Call
}

// Ops returns the operation names in call order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was called.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Texts returns the strings passed to FillText in call order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == "FillText" {
			out = append(out, c.Text)
		}
	}
	return out
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

func (r *Recorder) add(op string, args ...float64) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
}

func (r *Recorder) BeginPath()          { r.add("BeginPath") }
func (r *Recorder) MoveTo(x, y float64) { r.add("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.add("LineTo", x, y) }
func (r *Recorder) QuadraticCurveTo(cx, cy, x, y float64) {
	r.add("QuadraticCurveTo", cx, cy, x, y)
}
func (r *Recorder) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.add("BezierCurveTo", c1x, c1y, c2x, c2y, x, y)
}
func (r *Recorder) Arc(x, y, radius, start, end float64) { r.add("Arc", x, y, radius, start, end) }
func (r *Recorder) ClosePath()                           { r.add("ClosePath") }
func (r *Recorder) Stroke()                              { r.add("Stroke") }
func (r *Recorder) Fill()                                { r.add("Fill") }
func (r *Recorder) FillText(s string, x, y float64) {
	r.Calls = append(r.Calls, Call{Op: "FillText", Args: []float64{x, y}, Text: s})
}
func (r *Recorder) SetLineWidth(w float64)      { r.add("SetLineWidth", w) }
func (r *Recorder) SetLineDash(dash []float64)  { r.add("SetLineDash", dash...) }
func (r *Recorder) SetStrokeColor(c color.Color) { r.Calls = append(r.Calls, Call{Op: "SetStrokeColor", Text: Hex(c)}) }
func (r *Recorder) SetFillColor(c color.Color)   { r.Calls = append(r.Calls, Call{Op: "SetFillColor", Text: Hex(c)}) }
func (r *Recorder) SetFont(size float64)        { r.add("SetFont", size) }
func (r *Recorder) SetTextAlign(a Align)        { r.add("SetTextAlign", float64(a)) }
func (r *Recorder) SetTextBaseline(b Baseline)  { r.add("SetTextBaseline", float64(b)) }
func (r *Recorder) SetAlpha(a float64)          { r.add("SetAlpha", a) }

var _ Canvas = (*Recorder)(nil)
