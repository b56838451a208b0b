// Package nodelink exports layout frames as Graphviz node-link diagrams.
//
// # Usage
//
// Convert a frame to DOT, then render it:
//
//	scene := engine.Scene()
//	dot := nodelink.ToDOT(scene, engine.Theme(), nodelink.Options{Directed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot, opts)
//	png, err := nodelink.RenderPNG(ctx, dot, opts)
//
// # Options
//
//   - Directed: emit a digraph instead of an undirected graph
//   - Pinned: keep the simulated node positions (neato with pinned pos)
//   - Roles: append "(parent)", "(child)" and similar roles to node labels
//
// Without Pinned, Graphviz lays the graph out itself with dot, which is
// useful as a second opinion on a layout that the force simulation has
// not settled yet.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which runs Graphviz in
// process through WebAssembly; no system Graphviz install is needed.
package nodelink
