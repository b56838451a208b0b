package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/graphdraw/pkg/fonts"
	"github.com/matzehuels/graphdraw/pkg/render"
)

// SVG is a vector canvas. Each Stroke or Fill emits one <path> element with
// the current path; FillText emits a <text> element.
type SVG struct {
	buf    bytes.Buffer
	canvas *svg.SVG
	closed bool

	path    strings.Builder
	current bool // the path has a current point
	cx, cy  float64

	stroke   color.Color
	fill     color.Color
	alpha    float64
	width    float64
	dash     []float64
	font     float64
	align    render.Align
	baseline render.Baseline
}

// NewSVG starts a document of size w by h.
func NewSVG(w, h int) *SVG {
	s := &SVG{
		stroke: color.Black,
		fill:   color.Black,
		alpha:  1,
		width:  1,
		font:   12,
	}
	s.canvas = svg.New(&s.buf)
	s.canvas.Start(w, h)
	return s
}

func (s *SVG) BeginPath() {
	s.path.Reset()
	s.current = false
}

func (s *SVG) MoveTo(x, y float64) {
	s.cmd('M', x, y)
	s.current = true
	s.cx, s.cy = x, y
}

func (s *SVG) LineTo(x, y float64) {
	if !s.current {
		s.MoveTo(x, y)
		return
	}
	s.cmd('L', x, y)
	s.cx, s.cy = x, y
}

func (s *SVG) QuadraticCurveTo(cx, cy, x, y float64) {
	if !s.current {
		s.MoveTo(cx, cy)
	}
	s.cmd('Q', cx, cy, x, y)
	s.cx, s.cy = x, y
}

func (s *SVG) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !s.current {
		s.MoveTo(c1x, c1y)
	}
	s.cmd('C', c1x, c1y, c2x, c2y, x, y)
	s.cx, s.cy = x, y
}

// Arc appends a clockwise arc. Like the HTML canvas, a line joins the
// current point to the arc's start. Sweeps are split into half turns since
// an SVG arc command cannot describe a full circle.
func (s *SVG) Arc(x, y, r, start, end float64) {
	sweep := end - start
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	}
	sx, sy := x+r*math.Cos(start), y+r*math.Sin(start)
	if s.current {
		s.LineTo(sx, sy)
	} else {
		s.MoveTo(sx, sy)
	}
	if r <= 0 || sweep <= 0 {
		return
	}
	steps := int(math.Ceil(sweep / math.Pi))
	for i := 1; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		ex, ey := x+r*math.Cos(a), y+r*math.Sin(a)
		fmt.Fprintf(&s.path, "A%s %s 0 0 1 %s %s ", num(r), num(r), num(ex), num(ey))
		s.cx, s.cy = ex, ey
	}
}

func (s *SVG) ClosePath() {
	if s.current {
		s.path.WriteString("Z ")
	}
}

func (s *SVG) Stroke() {
	if s.path.Len() == 0 {
		return
	}
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%s;stroke-linecap:round;stroke-linejoin:round",
		render.Hex(s.stroke), num(render.Alpha(s.stroke)*s.alpha), num(s.width))
	if len(s.dash) > 0 {
		parts := make([]string, len(s.dash))
		for i, d := range s.dash {
			parts[i] = num(d)
		}
		style += ";stroke-dasharray:" + strings.Join(parts, ",")
	}
	s.canvas.Path(strings.TrimSpace(s.path.String()), style)
}

func (s *SVG) Fill() {
	if s.path.Len() == 0 {
		return
	}
	style := fmt.Sprintf("fill:%s;fill-opacity:%s;stroke:none",
		render.Hex(s.fill), num(render.Alpha(s.fill)*s.alpha))
	s.canvas.Path(strings.TrimSpace(s.path.String()), style)
}

func (s *SVG) FillText(t string, x, y float64) {
	style := fmt.Sprintf("fill:%s;fill-opacity:%s;font-size:%spx;font-family:%s;text-anchor:%s;dominant-baseline:%s",
		render.Hex(s.fill), num(render.Alpha(s.fill)*s.alpha), num(s.font), fonts.FontFamily,
		textAnchor(s.align), dominantBaseline(s.baseline))
	// svgo only takes integer text coordinates.
	s.canvas.Gtransform("translate(" + num(x) + "," + num(y) + ")")
	s.canvas.Text(0, 0, t, style)
	s.canvas.Gend()
}

func (s *SVG) SetLineWidth(w float64)            { s.width = w }
func (s *SVG) SetLineDash(dash []float64)        { s.dash = append(s.dash[:0], dash...) }
func (s *SVG) SetStrokeColor(c color.Color)      { s.stroke = c }
func (s *SVG) SetFillColor(c color.Color)        { s.fill = c }
func (s *SVG) SetFont(size float64)              { s.font = size }
func (s *SVG) SetTextAlign(a render.Align)       { s.align = a }
func (s *SVG) SetTextBaseline(b render.Baseline) { s.baseline = b }
func (s *SVG) SetAlpha(a float64)                { s.alpha = clamp01(a) }

// Bytes closes the document and returns it. Drawing after Bytes has no
// effect on the returned document.
func (s *SVG) Bytes() []byte {
	if !s.closed {
		s.canvas.End()
		s.closed = true
	}
	return s.buf.Bytes()
}

// WriteTo closes the document and writes it to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}

func (s *SVG) cmd(op byte, args ...float64) {
	s.path.WriteByte(op)
	for i, a := range args {
		if i > 0 {
			s.path.WriteByte(' ')
		}
		s.path.WriteString(num(a))
	}
	s.path.WriteByte(' ')
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	r := math.Round(f*100) / 100
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func textAnchor(a render.Align) string {
	switch a {
	case render.AlignLeft:
		return "start"
	case render.AlignRight:
		return "end"
	default:
		return "middle"
	}
}

func dominantBaseline(b render.Baseline) string {
	switch b {
	case render.BaselineAlphabetic:
		return "alphabetic"
	case render.BaselineTop:
		return "hanging"
	default:
		return "middle"
	}
}

var _ render.Canvas = (*SVG)(nil)
