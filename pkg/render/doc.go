// Package render turns resolved scene geometry into drawing calls.
//
// # Overview
//
// Drawing is split in two halves. The layout engine resolves everything
// that depends on simulation state (node centers, radii, fill colors, edge
// curves, arrowhead and label anchors, bounding boxes) into a [Scene]. [Draw]
// then walks the scene and issues imperative calls against a [Canvas].
//
// A [Canvas] is the small path-and-text contract that every backend
// implements:
//
//   - path construction: BeginPath, MoveTo, LineTo, QuadraticCurveTo,
//     BezierCurveTo, Arc, ClosePath
//   - painting: Stroke, Fill, FillText
//   - state: line width and dash, stroke and fill color, font size, text
//     alignment and baseline, global alpha
//
// The bitmap and SVG backends live in the [sink] subpackage. [Recorder]
// captures calls for tests.
//
// # Themes
//
// [Light] and [Dark] carry the colors for strokes, text, labels and the two
// ten-color palettes: fill colors indexed by component and mark colors
// indexed by the user's chosen mark.
//
// [sink]: github.com/matzehuels/graphdraw/pkg/render/sink
package render
