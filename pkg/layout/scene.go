package layout

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/observability"
	"github.com/matzehuels/graphdraw/pkg/render"
	"github.com/matzehuels/graphdraw/pkg/route"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

// boxPadding is the gap between a test case's outermost node rims and its
// bounding box.
const boxPadding = 52.0

var (
	rolePattern   = regexp.MustCompile(`\(([^)]+)\)`)
	parenPattern  = regexp.MustCompile(`\([^)]*\)`)
	suffixPattern = regexp.MustCompile(`_\d+$`)
)

// Theme returns the palette for the current dark mode setting.
func (e *Engine) Theme() render.Theme {
	return render.ThemeFor(e.settings.DarkMode)
}

// Render clears c and draws the current frame onto it.
func (e *Engine) Render(c render.Canvas) {
	start := time.Now()
	scene := e.Scene()
	theme := e.Theme()
	render.Clear(c, scene, theme)
	render.Draw(c, scene, theme)
	observability.Engine().OnRender(len(scene.Edges)+len(scene.Nodes)+len(scene.Boxes), time.Since(start))
}

// Scene resolves the current frame's geometry and records the hit-test
// tables returned by [Engine.Positions] and [Engine.EdgeLabelPositions].
func (e *Engine) Scene() render.Scene {
	s := e.settings
	scene := render.Scene{
		Width:      e.width,
		Height:     e.height,
		FontSize:   s.FontSize,
		BorderHalf: s.NodeBorderWidthHalf,
	}
	scene.Edges = e.sceneEdges()
	scene.Nodes = e.sceneNodes()
	if s.TestCaseBoundingBoxes {
		scene.Boxes = e.sceneBoxes()
	}
	if e.annotations.Len() > 0 {
		scene.Annotations = []render.Drawer{e.annotations}
	}
	scene.Indicator = e.indicator()
	return scene
}

// =============================================================================
// Edges
// =============================================================================

func (e *Engine) obstacles() []route.Obstacle {
	out := make([]route.Obstacle, 0, len(e.order))
	for _, u := range e.order {
		if e.conceal[u] {
			continue
		}
		n := e.nodes[u]
		out = append(out, route.Obstacle{ID: u, Pos: n.Pos, Radius: n.Radius})
	}
	return out
}

func (e *Engine) sceneEdges() []render.Edge {
	s := e.settings
	o := e.overlays
	obstacles := e.obstacles()
	e.labelPositions = make(map[string]r2.Vec)

	out := make([]render.Edge, 0, len(e.edges))
	for _, key := range e.edges {
		if !e.visible(key.U) || !e.visible(key.V) {
			continue
		}
		maxIndex := e.maxIndex[key.Base()]
		if !s.MultiedgeMode && key.K != maxIndex {
			continue
		}
		k := key.String()

		start, end := e.nodes[key.U].Pos, e.nodes[key.V].Pos
		reversed := false
		if key.U > key.V {
			start, end = end, start
			reversed = true
		}
		index := 0
		if s.MultiedgeMode {
			index = key.K
		}

		curve := route.Route(start, end, obstacles, key.U, key.V)
		mid := curve.Midpoint()
		curve = curve.Shift(route.MultiEdgeOffset(start, end, index, route.ArrowFactor))

		edge := render.Edge{
			Key:       k,
			Curve:     curve,
			Width:     s.NodeBorderWidthHalf,
			Dashed:    s.TreeMode && o.Backedges != nil && (index != 0 || o.Backedges[k]),
			Bridge:    s.ShowBridges && o.Bridges != nil && maxIndex == 0 && o.Bridges[k],
			BridgeGap: s.NodeRadius / 4,
		}
		if e.edgeNumeric && s.ShowMSTs && o.MST[k] {
			edge.Width *= 2
		}

		if s.Directed {
			dir := r2.Unit(curve.Tangent())
			if math.IsNaN(dir.X) || math.IsNaN(dir.Y) {
				dir = r2.Vec{}
			}
			if reversed {
				dir = r2.Scale(-1, dir)
			}
			edge.Arrow = &render.Arrow{
				Tip:   curve.Midpoint(),
				Dir:   dir,
				Size:  s.NodeRadius / 2,
				Width: 1.5 * edge.Width,
			}
		}

		if label, ok := e.edgeLabels[k]; ok {
			flip := reversed && !s.MultiedgeMode
			pos := r2.Add(mid, route.LabelOffset(start, end, index, s.EdgeLabelSeparation, flip))
			edge.Label = label
			edge.LabelPos = pos
			e.labelPositions[k] = pos
		}
		out = append(out, edge)
	}
	return out
}

// =============================================================================
// Nodes
// =============================================================================

func (e *Engine) sceneNodes() []render.Node {
	s := e.settings
	theme := e.Theme()
	e.positions = make(map[string]r2.Vec, len(e.order))

	out := make([]render.Node, 0, len(e.order))
	for _, u := range e.order {
		if e.conceal[u] {
			continue
		}
		n := e.nodes[u]
		node := render.Node{
			ID:      u,
			Pos:     n.Pos,
			Radius:  n.Radius,
			Hexagon: s.ShowBridges && e.overlays.Cuts[u],
			Label:   e.nodeLabels[u],
		}
		if e.overlays.Colors != nil {
			node.Fill = theme.FillColor(e.overlays.Colors[u])
		}
		if n.MarkColor >= settings.MarkColorFirst {
			node.Fill = theme.MarkColor(n.MarkColor)
		}
		if n.Selected {
			node.Border = render.BorderBold
			if s.MarkBorder == settings.BorderDouble {
				node.Border = render.BorderDouble
			}
		}
		node.Text, node.Role = NodeText(u, s.LabelOffset)

		e.positions[u] = n.Pos
		out = append(out, node)
	}
	return out
}

// StripNode removes the "_<n>" suffix that keeps equal ids of different
// test cases apart.
func StripNode(id string) string {
	return suffixPattern.ReplaceAllString(id, "")
}

// NodeText returns the text drawn inside a node and the role caption drawn
// under it. Integer ids are shifted by offset; other ids lose any
// parenthesized part, which becomes the role.
func NodeText(id string, offset int) (text, role string) {
	s := StripNode(id)
	if n, err := strconv.Atoi(s); err == nil && strconv.Itoa(n) == s {
		text = strconv.Itoa(n + offset)
	} else {
		text = strings.TrimSpace(parenPattern.ReplaceAllString(s, ""))
	}
	if m := rolePattern.FindStringSubmatch(id); m != nil {
		role = m[1]
	}
	return text, role
}

// =============================================================================
// Test-Case Boxes
// =============================================================================

// sceneBoxes draws one box per test case around its visible nodes, in
// merge order.
func (e *Engine) sceneBoxes() []render.Box {
	type bounds struct {
		min, max r2.Vec
		ok       bool
	}
	all := make([]bounds, len(e.cases))
	for _, u := range e.order {
		c, ok := e.nodeCase[u]
		if !ok || c < 0 || c >= len(all) || e.conceal[u] {
			continue
		}
		p := e.nodes[u].Pos
		b := &all[c]
		if !b.ok {
			b.min, b.max, b.ok = p, p, true
			continue
		}
		b.min = r2.Vec{X: math.Min(b.min.X, p.X), Y: math.Min(b.min.Y, p.Y)}
		b.max = r2.Vec{X: math.Max(b.max.X, p.X), Y: math.Max(b.max.Y, p.Y)}
	}

	theme := e.Theme()
	pad := boxPadding + e.settings.NodeRadius
	fs := e.settings.FontSize
	var out []render.Box
	for i, b := range all {
		if !b.ok {
			continue
		}
		box := render.Box{
			Min:     r2.Sub(b.min, r2.Vec{X: pad, Y: pad}),
			Max:     r2.Add(b.max, r2.Vec{X: pad, Y: pad}),
			Color:   theme.FillColor(i),
			Caption: "#" + strconv.Itoa(i+1),
		}
		y := b.max.Y + pad + fs
		if above := b.min.Y - pad - fs; above >= 10 {
			y = above
		}
		box.CaptionPos = r2.Vec{X: box.Min.X, Y: y}
		out = append(out, box)
	}
	return out
}
