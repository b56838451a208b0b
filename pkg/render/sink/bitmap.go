package sink

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/matzehuels/graphdraw/pkg/fonts"
	"github.com/matzehuels/graphdraw/pkg/render"
)

// BitmapOption configures a Bitmap.
type BitmapOption func(*bitmapConfig)

type bitmapConfig struct {
	scale float64
}

// WithScale renders at scale times the logical size (default 1).
func WithScale(s float64) BitmapOption {
	return func(c *bitmapConfig) {
		if s > 0 {
			c.scale = s
		}
	}
}

// Bitmap is a raster canvas.
//
// gg transforms path coordinates but not line widths, dash lengths or glyph
// sizes, so those are multiplied by the scale here.
type Bitmap struct {
	dc       *gg.Context
	scale    float64
	stroke   color.Color
	fill     color.Color
	alpha    float64
	font     float64
	align    render.Align
	baseline render.Baseline
}

// NewBitmap returns a transparent canvas of logical size w by h.
func NewBitmap(w, h int, opts ...BitmapOption) *Bitmap {
	cfg := bitmapConfig{scale: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	dc := gg.NewContext(int(float64(w)*cfg.scale), int(float64(h)*cfg.scale))
	dc.Scale(cfg.scale, cfg.scale)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return &Bitmap{
		dc:     dc,
		scale:  cfg.scale,
		stroke: color.Black,
		fill:   color.Black,
		alpha:  1,
		font:   12,
	}
}

func (b *Bitmap) BeginPath()          { b.dc.ClearPath() }
func (b *Bitmap) MoveTo(x, y float64) { b.dc.MoveTo(x, y) }
func (b *Bitmap) LineTo(x, y float64) { b.dc.LineTo(x, y) }
func (b *Bitmap) ClosePath()          { b.dc.ClosePath() }

func (b *Bitmap) QuadraticCurveTo(cx, cy, x, y float64) {
	b.dc.QuadraticTo(cx, cy, x, y)
}

func (b *Bitmap) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	b.dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

func (b *Bitmap) Arc(x, y, r, start, end float64) {
	b.dc.DrawArc(x, y, r, start, end)
}

func (b *Bitmap) Stroke() {
	b.dc.SetColor(withAlpha(b.stroke, b.alpha))
	b.dc.StrokePreserve()
}

func (b *Bitmap) Fill() {
	b.dc.SetColor(withAlpha(b.fill, b.alpha))
	b.dc.FillPreserve()
}

// FillText draws s with the fill color. Text does not touch the current path.
func (b *Bitmap) FillText(s string, x, y float64) {
	face, err := fonts.Face(b.font * b.scale)
	if err != nil {
		return
	}
	b.dc.SetFontFace(face)
	b.dc.SetColor(withAlpha(b.fill, b.alpha))
	b.dc.DrawStringAnchored(s, x, y, anchorX(b.align), anchorY(b.baseline))
}

func (b *Bitmap) SetLineWidth(w float64) { b.dc.SetLineWidth(w * b.scale) }

func (b *Bitmap) SetLineDash(dash []float64) {
	scaled := make([]float64, len(dash))
	for i, d := range dash {
		scaled[i] = d * b.scale
	}
	b.dc.SetDash(scaled...)
}

func (b *Bitmap) SetStrokeColor(c color.Color)      { b.stroke = c }
func (b *Bitmap) SetFillColor(c color.Color)        { b.fill = c }
func (b *Bitmap) SetFont(size float64)              { b.font = size }
func (b *Bitmap) SetTextAlign(a render.Align)       { b.align = a }
func (b *Bitmap) SetTextBaseline(l render.Baseline) { b.baseline = l }
func (b *Bitmap) SetAlpha(a float64)                { b.alpha = clamp01(a) }

// Image returns the rendered image.
func (b *Bitmap) Image() image.Image {
	return b.dc.Image()
}

// EncodePNG writes the image as PNG.
func (b *Bitmap) EncodePNG(w io.Writer) error {
	return b.dc.EncodePNG(w)
}

// anchorX and anchorY translate canvas text anchors into gg's fractional
// anchors, where y is measured from the baseline.
func anchorX(a render.Align) float64 {
	switch a {
	case render.AlignLeft:
		return 0
	case render.AlignRight:
		return 1
	default:
		return 0.5
	}
}

func anchorY(b render.Baseline) float64 {
	switch b {
	case render.BaselineAlphabetic:
		return 0
	case render.BaselineTop:
		return 1
	default:
		return 0.5
	}
}

func withAlpha(c color.Color, alpha float64) color.Color {
	if c == nil {
		return color.Transparent
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*alpha + 0.5)
	return n
}

func clamp01(a float64) float64 {
	return min(max(a, 0), 1)
}

var _ render.Canvas = (*Bitmap)(nil)
