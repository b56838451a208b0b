// Package layout implements the layout engine: it owns one simulated node per
// graph node, advances a force-directed simulation one frame at a time and
// resolves each frame into a [render.Scene].
//
// # Lifecycle
//
// An [Engine] is created empty with [New] and fed graphs through
// [Engine.UpdateGraph]. Nodes that survive an update keep their position and
// velocity; removed nodes are forgotten except for the position of the last
// one, which the next new node inherits. That makes renaming a node in the
// input feel like editing it in place.
//
// Every frame the caller invokes [Engine.Tick] and then [Engine.Render] (or
// [Engine.Scene] to get the geometry without drawing). The engine is not
// safe for concurrent use; package animate serializes access.
//
// # Forces
//
// Each tick applies, per visible node:
//
//   - collision easing that pushes overlapping nodes apart
//   - pairwise repulsion against spatially close nodes and a spring along
//     each edge whose rest length adapts to the degrees of its endpoints
//   - a boundary field near the canvas border
//   - a spring toward a layer row (tree and bipartite modes) or a grid cell
//
// Velocities are damped by friction and clamped, so a tick never produces
// NaN or runaway positions even for coincident nodes.
//
// # Overlays
//
// Structural analyses from package structure (components, bipartite
// coloring, bridges, spanning forests, BFS layers, grid cells) are computed
// over the visible graph whenever the graph, the direction or a relevant
// setting changes. They feed both the forces and the scene. Each rebuild is
// a full O(V+E) pass with no incremental maintenance, which bounds the graph
// sizes that stay interactive.
package layout
