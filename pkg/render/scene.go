package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/route"
)

// Scene is one frame of fully resolved geometry.
type Scene struct {
	Width, Height float64
	FontSize      float64
	BorderHalf    float64 // half of the node border width; edges use it as their base width

	Edges       []Edge
	Nodes       []Node
	Boxes       []Box
	Annotations []Drawer
	Indicator   *Indicator
}

// Drawer paints itself onto a canvas. Annotation layers implement it.
type Drawer interface {
	Draw(c Canvas)
}

// Edge is one visible edge.
type Edge struct {
	Key       string      // "u v k"
	Curve     route.Curve // already shifted for parallel edges
	Width     float64
	Dashed    bool
	Bridge    bool    // drawn as two straight rails instead of the curve
	BridgeGap float64 // distance between the rails
	Arrow     *Arrow  // nil for undirected drawings
	Label     string
	LabelPos  r2.Vec
}

// Arrow is an arrowhead drawn as a filled triangle.
type Arrow struct {
	Tip   r2.Vec
	Dir   r2.Vec // unit vector the arrowhead points along
	Size  float64
	Width float64
}

// Border selects how a node outline is drawn.
type Border int

const (
	BorderPlain Border = iota
	BorderDouble
	BorderBold
)

// Node is one visible node.
type Node struct {
	ID      string
	Pos     r2.Vec
	Radius  float64
	Fill    color.Color // nil leaves the interior unpainted
	Border  Border
	Hexagon bool   // cut vertices are drawn as hexagons
	Text    string // text inside the node
	Role    string // caption under the node
	Label   string // node label shown in an octagon badge
}

// Box is a dashed rectangle around the nodes of one test case.
type Box struct {
	Min, Max   r2.Vec
	Color      color.Color
	Caption    string
	CaptionPos r2.Vec
}

// Indicator is the pen or eraser cursor ring.
type Indicator struct {
	Center r2.Vec
	Radius float64
	Color  color.Color
	Dashed bool
	Phase  float64 // rotation in radians; animates the dashed eraser ring
}
