// Package structure computes the structural overlays drawn on top of a graph.
//
// Every function here is a pure function of a [graph.Snapshot]: it reads the
// node order, the directed adjacency and (where needed) the edge list and
// labels, and returns fresh maps. Nothing is cached or patched
// incrementally; callers recompute an overlay whenever the node or edge set,
// the direction flag or the toggle that enables it changes.
//
// # Overlays
//
//   - [Bipartite]: 2-coloring plus a two-layer [Layer] map
//   - [Components]: undirected connected components
//   - [StronglyConnected]: strongly connected components for directed graphs
//   - [Bridges]: bridges and cut vertices (undirected)
//   - [MinimumSpanningForest]: Kruskal forest over integer edge labels
//   - [TreeLayers]: BFS depth per component plus back edges
//   - [Grid]: BFS-order raster placement sized to an aspect ratio
//
// All traversals visit nodes in snapshot order and neighbors in adjacency
// order, so results are deterministic for a given snapshot.
package structure
