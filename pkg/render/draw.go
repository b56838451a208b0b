package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/fonts"
)

const (
	roleOffset     = 15.0 // distance from the node rim to the role caption
	textYOffset    = 1.0
	minRoleFont    = 8.0
	indicatorWidth = 2.0
	boxWidth       = 2.0
)

var (
	backedgeDash = []float64{2, 10}
	boxDash      = []float64{2, 4}
)

// Draw paints the scene: edges, then nodes and their label badges, then
// test-case boxes, annotations and finally the pointer indicator.
func Draw(c Canvas, s Scene, t Theme) {
	c.SetAlpha(1)
	c.SetLineDash(nil)
	for _, e := range s.Edges {
		drawEdge(c, s, t, e)
	}
	drawNodes(c, s, t)
	for _, b := range s.Boxes {
		drawBox(c, s, t, b)
	}
	for _, a := range s.Annotations {
		a.Draw(c)
		c.SetAlpha(1)
	}
	if s.Indicator != nil {
		drawIndicator(c, *s.Indicator)
	}
}

// Clear paints the whole canvas with the theme background.
func Clear(c Canvas, s Scene, t Theme) {
	c.SetFillColor(t.Background)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(s.Width, 0)
	c.LineTo(s.Width, s.Height)
	c.LineTo(0, s.Height)
	c.ClosePath()
	c.Fill()
}

func drawEdge(c Canvas, s Scene, t Theme, e Edge) {
	if e.Dashed {
		c.SetLineDash(backedgeDash)
	}
	c.SetStrokeColor(t.Edge)
	c.SetLineWidth(e.Width)
	if e.Bridge {
		bridge(c, e.Curve.Start, e.Curve.End, e.BridgeGap)
	} else {
		curve(c, e)
	}
	c.SetLineDash(nil)

	if e.Arrow != nil {
		arrow(c, t, *e.Arrow)
	}
	if e.Label != "" {
		c.SetTextBaseline(BaselineMiddle)
		c.SetTextAlign(AlignCenter)
		c.SetFont(s.FontSize)
		c.SetFillColor(t.EdgeLabel)
		c.FillText(e.Label, e.LabelPos.X, e.LabelPos.Y)
	}
}

func curve(c Canvas, e Edge) {
	cv := e.Curve
	c.BeginPath()
	c.MoveTo(cv.Start.X, cv.Start.Y)
	switch len(cv.Controls) {
	case 0:
		c.LineTo(cv.End.X, cv.End.Y)
	case 1:
		p := cv.Controls[0]
		c.QuadraticCurveTo(p.X, p.Y, cv.End.X, cv.End.Y)
	default:
		p, q := cv.Controls[0], cv.Controls[1]
		c.BezierCurveTo(p.X, p.Y, q.X, q.Y, cv.End.X, cv.End.Y)
	}
	c.Stroke()
}

// bridge draws two straight rails gap apart.
func bridge(c Canvas, a, b r2.Vec, gap float64) {
	d := r2.Sub(b, a)
	if r2.Norm(d) == 0 {
		return
	}
	n := r2.Scale(gap/2, r2.Unit(r2.Vec{X: -d.Y, Y: d.X}))
	for _, off := range []r2.Vec{n, r2.Scale(-1, n)} {
		p, q := r2.Add(a, off), r2.Add(b, off)
		c.BeginPath()
		c.MoveTo(p.X, p.Y)
		c.LineTo(q.X, q.Y)
		c.Stroke()
	}
}

func arrow(c Canvas, t Theme, a Arrow) {
	if r2.Norm(a.Dir) == 0 {
		return
	}
	left := r2.Sub(a.Tip, r2.Scale(a.Size, rotate(a.Dir, math.Pi/6)))
	right := r2.Sub(a.Tip, r2.Scale(a.Size, rotate(a.Dir, -math.Pi/6)))

	c.SetLineWidth(a.Width)
	c.SetStrokeColor(t.Edge)
	c.SetFillColor(t.Edge)
	c.BeginPath()
	c.MoveTo(a.Tip.X, a.Tip.Y)
	c.LineTo(left.X, left.Y)
	c.LineTo(right.X, right.Y)
	c.LineTo(a.Tip.X, a.Tip.Y)
	c.Fill()
	c.Stroke()
}

func rotate(v r2.Vec, theta float64) r2.Vec {
	sin, cos := math.Sincos(theta)
	return r2.Vec{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

func drawNodes(c Canvas, s Scene, t Theme) {
	for _, n := range s.Nodes {
		c.SetLineWidth(2 * s.BorderHalf)
		c.SetStrokeColor(t.Stroke)
		if n.Hexagon {
			hexagon(c, n, s.BorderHalf)
		} else {
			circle(c, n, s.BorderHalf)
		}

		c.SetTextBaseline(BaselineMiddle)
		c.SetTextAlign(AlignCenter)
		c.SetFont(s.FontSize + 2)
		c.SetFillColor(t.Text)
		c.FillText(n.Text, n.Pos.X, n.Pos.Y+textYOffset)

		if n.Role != "" {
			c.SetFont(math.Max(minRoleFont, s.FontSize-4))
			c.SetFillColor(t.Role)
			c.FillText(n.Role, n.Pos.X, n.Pos.Y+n.Radius+roleOffset)
		}
	}
	for _, n := range s.Nodes {
		if n.Label != "" {
			octagon(c, s, t, n)
		}
	}
}

func circle(c Canvas, n Node, borderHalf float64) {
	c.BeginPath()
	c.Arc(n.Pos.X, n.Pos.Y, n.Radius, 0, 2*math.Pi)
	paint(c, n, borderHalf)
	if n.Border == BorderDouble {
		c.BeginPath()
		c.Arc(n.Pos.X, n.Pos.Y, inner(n.Radius, borderHalf), 0, 2*math.Pi)
		c.Stroke()
	}
}

func hexagon(c Canvas, n Node, borderHalf float64) {
	polygon(c, n.Pos, n.Radius, 6, 0)
	paint(c, n, borderHalf)
	if n.Border == BorderDouble {
		polygon(c, n.Pos, inner(n.Radius, borderHalf), 6, 0)
		c.Stroke()
	}
}

// paint fills the current path when the node has a fill and strokes it.
func paint(c Canvas, n Node, borderHalf float64) {
	if n.Fill != nil {
		c.SetFillColor(n.Fill)
		c.Fill()
	}
	if n.Border == BorderBold {
		c.SetLineWidth(4 * borderHalf)
	}
	c.Stroke()
	c.SetLineWidth(2 * borderHalf)
}

func inner(r, borderHalf float64) float64 {
	return math.Max(r-4*borderHalf, r/2)
}

func polygon(c Canvas, center r2.Vec, r float64, sides int, phase float64) {
	c.BeginPath()
	for i := range sides {
		a := phase + 2*math.Pi*float64(i)/float64(sides)
		x, y := center.X+r*math.Cos(a), center.Y+r*math.Sin(a)
		if i == 0 {
			c.MoveTo(x, y)
		} else {
			c.LineTo(x, y)
		}
	}
	c.ClosePath()
}

// octagon draws the node label in a badge at the node's upper right.
func octagon(c Canvas, s Scene, t Theme, n Node) {
	center := r2.Add(n.Pos, r2.Vec{X: n.Radius, Y: -n.Radius})
	r := math.Max(s.FontSize*0.9, fonts.TextWidth(n.Label, s.FontSize)/2+4)

	c.SetLineWidth(2 * s.BorderHalf)
	c.SetStrokeColor(t.NodeLabel)
	c.SetFillColor(t.Background)
	polygon(c, center, r, 8, math.Pi/8)
	c.Fill()
	c.Stroke()

	c.SetTextBaseline(BaselineMiddle)
	c.SetTextAlign(AlignCenter)
	c.SetFont(s.FontSize)
	c.SetFillColor(t.NodeLabel)
	c.FillText(n.Label, center.X, center.Y+textYOffset)
}

func drawBox(c Canvas, s Scene, t Theme, b Box) {
	c.SetLineWidth(boxWidth)
	c.SetStrokeColor(b.Color)
	c.SetLineDash(boxDash)

	c.SetTextBaseline(BaselineMiddle)
	c.SetTextAlign(AlignLeft)
	c.SetFont(s.FontSize)
	c.SetFillColor(t.Text)
	c.FillText(b.Caption, b.CaptionPos.X, b.CaptionPos.Y)

	c.BeginPath()
	c.MoveTo(b.Min.X, b.Min.Y)
	c.LineTo(b.Min.X, b.Max.Y)
	c.LineTo(b.Max.X, b.Max.Y)
	c.LineTo(b.Max.X, b.Min.Y)
	c.LineTo(b.Min.X, b.Min.Y)
	c.Stroke()
	c.SetLineDash(nil)
}

func drawIndicator(c Canvas, in Indicator) {
	c.SetLineWidth(indicatorWidth)
	c.SetStrokeColor(in.Color)
	if in.Dashed {
		c.SetLineDash(backedgeDash)
	}
	c.BeginPath()
	c.Arc(in.Center.X, in.Center.Y, in.Radius, in.Phase, in.Phase+2*math.Pi)
	c.Stroke()
	c.SetLineDash(nil)
}
