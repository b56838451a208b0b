package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/render"
)

// Points per inch in Graphviz coordinates.
const dpi = 72

// Options configures DOT export.
type Options struct {
	// Directed emits a digraph with "->" edges.
	Directed bool
	// Pinned fixes every node at its simulated position. Rendering a pinned
	// graph uses the neato engine so the positions survive.
	Pinned bool
	// Roles appends the node role ("parent", "child", ...) to its label.
	Roles bool
}

// ToDOT converts one frame to Graphviz DOT. Node fills, cut-vertex shapes,
// selection borders, dashed back edges, MST widths and edge labels carry
// over from the scene.
func ToDOT(s render.Scene, t render.Theme, opts Options) string {
	var buf bytes.Buffer
	kind, arrow := "graph", "--"
	if opts.Directed {
		kind, arrow = "digraph", "->"
	}

	fmt.Fprintf(&buf, "%s G {\n", kind)
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", render.Hex(t.Background))
	if opts.Pinned {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  splines=true;\n")
	}
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=%q, color=%q, fontcolor=%q, fontsize=%s];\n",
		render.Hex(t.Background), render.Hex(t.Stroke), render.Hex(t.Text), num(s.FontSize))
	fmt.Fprintf(&buf, "  edge [color=%q, fontcolor=%q];\n", render.Hex(t.Edge), render.Hex(t.EdgeLabel))
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, s, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		key, err := graph.ParseEdgeKey(e.Key)
		if err != nil {
			continue
		}
		fmt.Fprintf(&buf, "  %q %s %q", key.U, arrow, key.V)
		if attrs := edgeAttrs(e, s, t); len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n render.Node, s render.Scene, opts Options) []string {
	label := n.Text
	if opts.Roles && n.Role != "" {
		label += "\n" + n.Role
	}
	if n.Label != "" {
		label += "\n[" + n.Label + "]"
	}

	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("width=%s", num(2*n.Radius/dpi)),
		"fixedsize=true",
	}
	if n.Hexagon {
		attrs = append(attrs, "shape=hexagon")
	}
	if n.Fill != nil {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", render.Hex(n.Fill)))
	}
	switch n.Border {
	case render.BorderDouble:
		attrs = append(attrs, "peripheries=2")
	case render.BorderBold:
		attrs = append(attrs, fmt.Sprintf("penwidth=%s", num(4*s.BorderHalf)))
	}
	if opts.Pinned {
		// Graphviz puts the origin at the bottom left.
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", num(n.Pos.X), num(s.Height-n.Pos.Y)))
	}
	return attrs
}

func edgeAttrs(e render.Edge, s render.Scene, t render.Theme) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if e.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	if e.Bridge {
		attrs = append(attrs, fmt.Sprintf("color=\"%s:%s:%s\"", render.Hex(t.Edge), render.Hex(t.Background), render.Hex(t.Edge)))
	}
	if e.Width != s.BorderHalf {
		attrs = append(attrs, fmt.Sprintf("penwidth=%s", num(e.Width)))
	}
	return attrs
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz. opts must match the
// options the DOT was produced with.
func RenderSVG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG, opts)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG, opts)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format, opts Options) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if opts.Pinned {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
