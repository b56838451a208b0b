package layout

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/annotate"
	"github.com/matzehuels/graphdraw/pkg/render"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

const (
	// ClickThreshold is the longest press that still counts as a click.
	ClickThreshold = 200 * time.Millisecond

	// eraserPeriod is the time for the dashed eraser ring to turn one radian.
	eraserPeriod = 350 * time.Millisecond
)

type pointer struct {
	pos     r2.Vec
	inside  bool
	dragged string
	pressed time.Time
	erasing bool
}

// PointerDown handles a press at p. In node mode the topmost visible node
// under p starts being dragged; in pen mode a stroke begins and in erase
// mode strokes near p are removed.
func (e *Engine) PointerDown(p r2.Vec, at time.Time) {
	e.pointer.pos, e.pointer.inside = p, true

	switch e.settings.DrawMode {
	case settings.DrawPen:
		e.annotations.Begin(p, e.penStyle())
		return
	case settings.DrawErase:
		e.pointer.erasing = true
		e.pointer.pressed = at
		e.annotations.Erase(p, e.settings.EraserRadius)
		return
	}

	if e.pointer.dragged == "" {
		e.pointer.pressed = at
	}
	if u, ok := e.NodeAt(p); ok {
		e.pointer.dragged = u
	}
}

// PointerMove handles pointer motion. The dragged node itself is moved on
// the next Tick.
func (e *Engine) PointerMove(p r2.Vec) {
	e.pointer.pos, e.pointer.inside = p, true
	switch e.settings.DrawMode {
	case settings.DrawPen:
		e.annotations.Extend(p)
	case settings.DrawErase:
		if e.pointer.erasing {
			e.annotations.Erase(p, e.settings.EraserRadius)
		}
	}
}

// PointerUp ends a drag, stroke or erase. A press on a node released
// within ClickThreshold is a click: it toggles selection when marking is
// enabled and applies or clears the current mark color.
func (e *Engine) PointerUp(p r2.Vec, at time.Time) {
	e.pointer.pos = p
	e.endStroke()

	u := e.pointer.dragged
	e.pointer.dragged = ""
	n, ok := e.nodes[u]
	if !ok || at.Sub(e.pointer.pressed) > ClickThreshold {
		return
	}
	if e.settings.MarkedNodes {
		n.Selected = !n.Selected
	}
	switch {
	case e.settings.MarkColor == settings.MarkColorClear:
		n.MarkColor = 0
	case e.settings.MarkColor >= settings.MarkColorFirst:
		n.MarkColor = e.settings.MarkColor
	}
}

// PointerLeave cancels any drag, stroke or erase and hides the indicator.
func (e *Engine) PointerLeave() {
	e.pointer.dragged = ""
	e.pointer.inside = false
	e.endStroke()
}

func (e *Engine) endStroke() {
	e.annotations.End()
	e.pointer.erasing = false
}

// Dragged returns the node being dragged, if any.
func (e *Engine) Dragged() (string, bool) {
	return e.pointer.dragged, e.pointer.dragged != ""
}

// NodeAt returns the last visible node in graph order whose disc contains p.
func (e *Engine) NodeAt(p r2.Vec) (string, bool) {
	hit := ""
	for _, u := range e.order {
		if e.conceal[u] {
			continue
		}
		n := e.nodes[u]
		if r2.Norm(r2.Sub(n.Pos, p)) <= n.Radius {
			hit = u
		}
	}
	return hit, hit != ""
}

// applyDrag pins the dragged node to the pointer, kept one radius inside
// the canvas.
func (e *Engine) applyDrag() {
	n, ok := e.nodes[e.pointer.dragged]
	if !ok {
		return
	}
	r := e.settings.NodeRadius
	n.Pos = r2.Vec{
		X: clamp(e.pointer.pos.X, r, e.width-r),
		Y: clamp(e.pointer.pos.Y, r, e.height-r),
	}
}

// penStyle captures the pen settings for a new stroke. Pen colors come from
// the opposite theme so strokes contrast with marked nodes.
func (e *Engine) penStyle() annotate.Style {
	s := e.settings
	theme := e.Theme()
	style := annotate.Style{
		Color: theme.Edge,
		Width: s.PenThickness,
		Alpha: 1 - s.PenTransparency/100,
	}
	switch {
	case s.MarkColor >= settings.MarkColorFirst:
		style.Color = theme.PenColor(s.MarkColor)
	case s.MarkColor == settings.MarkColorClear:
		style.Rainbow = theme.Rainbow
	}
	return style
}

// indicator returns the pen or eraser cursor ring, or nil in node mode or
// while the pointer is outside the canvas.
func (e *Engine) indicator() *render.Indicator {
	if !e.pointer.inside {
		return nil
	}
	opposite := render.ThemeFor(!e.settings.DarkMode)
	switch e.settings.DrawMode {
	case settings.DrawErase:
		phase := 0.0
		if e.pointer.erasing {
			phase = math.Mod(float64(e.now().Sub(e.pointer.pressed))/float64(eraserPeriod), 2*math.Pi)
		}
		return &render.Indicator{
			Center: e.pointer.pos,
			Radius: e.settings.EraserRadius,
			Color:  opposite.NodeLabel,
			Dashed: true,
			Phase:  phase,
		}
	case settings.DrawPen:
		return &render.Indicator{
			Center: e.pointer.pos,
			Radius: e.settings.PenThickness / 2,
			Color:  opposite.NodeLabelOutline,
		}
	}
	return nil
}
