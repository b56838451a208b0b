// Package pkg holds the libraries behind graphdraw, the layout and analysis
// engine of an interactive graph editor.
//
// # Overview
//
// A graph arrives as test cases, each carrying an edge-list and a
// parent/child encoding of which one is live. The engine keeps one simulated
// node per graph node, advances a force simulation at 90 frames per second
// and resolves each frame into a scene that any canvas can draw.
//
// # Architecture
//
//	exported document (JSON)
//	         ↓
//	    [graph] (snapshots, test cases, merge)
//	         ↓
//	    [layout] (simulation, overlays, pointer input)
//	      ↙     ↘
//	[structure]  [route] + [spatial]
//	         ↓
//	    [render] scene → [render/sink] PNG, SVG
//	                   → [render/nodelink] DOT, Graphviz
//
// # Packages
//
// [graph] - Snapshots, edge keys with multiplicity indexes, test-case
// documents and their JSON encoding.
//
// [layout] - The engine: graph sync, forces, adaptive edge lengths, tree and
// grid and bipartite targets, selection and drag, pen strokes, scene output.
//
// [structure] - Pure graph algorithms behind the overlays: connected and
// strongly connected components, bipartiteness, bridges and cut vertices,
// BFS tree layers with back edges, grid placement, minimum spanning forests.
//
// [spatial] - Bucket grid that narrows the repulsion candidates of a node.
//
// [route] - Bezier routing of edges around nodes, parallel-edge offsets and
// label placement.
//
// [render] - The abstract [render.Canvas], scene types, themes and the
// drawing routine shared by every backend.
//
// [annotate] - Freehand pen strokes layered above the graph.
//
// [animate] - Cooperative frame loop that serializes engine mutations with
// ticks.
//
// [settings] - Editor switches and physics constants, read from TOML.
//
// [cache] - File, Redis and null caches for rendered artifacts.
//
// [errors], [observability], [buildinfo], [fonts] - Shared infrastructure.
//
// # Quick Start
//
//	doc, _ := graph.ReadFile("graph.json")
//	e := layout.New(layout.WithSize(800, 600))
//	e.UpdateGraph(graph.Merge(doc.TestCases))
//	for range 900 {
//	    e.Tick()
//	}
//	svg := sink.NewSVG(800, 600)
//	e.Render(svg)
//	os.WriteFile("graph.svg", svg.Bytes(), 0644)
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/layout
// [structure]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/structure
// [spatial]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/spatial
// [route]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/route
// [render]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/render
// [render.Canvas]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/render#Canvas
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/render/nodelink
// [annotate]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/annotate
// [animate]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/animate
// [settings]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/settings
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/buildinfo
// [fonts]: https://pkg.go.dev/github.com/matzehuels/graphdraw/pkg/fonts
package pkg
