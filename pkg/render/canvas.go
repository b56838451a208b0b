package render

import "image/color"

// Align is the horizontal anchor of FillText.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Baseline is the vertical anchor of FillText.
type Baseline int

const (
	BaselineMiddle Baseline = iota
	BaselineAlphabetic
	BaselineTop
)

// Canvas is the imperative drawing contract used by [Draw]. The current
// path is built with the path methods and painted by Stroke or Fill; both
// keep the path so a shape can be filled and then stroked. BeginPath
// discards it.
//
// Angles passed to Arc are in radians, clockwise in screen space.
type Canvas interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cx, cy, x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	Arc(x, y, r, start, end float64)
	ClosePath()

	Stroke()
	Fill()
	FillText(s string, x, y float64)

	SetLineWidth(w float64)
	SetLineDash(dash []float64)
	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetFont(size float64)
	SetTextAlign(a Align)
	SetTextBaseline(b Baseline)
	SetAlpha(a float64)
}
