package layout

import (
	"time"

	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/observability"
	"github.com/matzehuels/graphdraw/pkg/structure"
)

// Overlays holds the structural analyses that modulate forces and drawing.
// A nil map means the overlay is inactive.
type Overlays struct {
	Colors    map[string]int // component, SCC or bipartite color per node
	Layers    map[string]structure.Layer
	Grid      *structure.GridLayout
	Backedges map[string]bool // keyed by "u v k"
	Cuts      map[string]bool
	Bridges   map[string]bool // keyed by "u v k"
	MST       map[string]bool // keyed by "u v k"
}

// Active names the overlays that are present.
func (o Overlays) Active() []string {
	var out []string
	add := func(name string, on bool) {
		if on {
			out = append(out, name)
		}
	}
	add("colors", o.Colors != nil)
	add("layers", o.Layers != nil)
	add("grid", o.Grid != nil)
	add("backedges", o.Backedges != nil)
	add("cuts", o.Cuts != nil)
	add("bridges", o.Bridges != nil)
	add("mst", o.MST != nil)
	return out
}

// rebuildOverlays recomputes every overlay from scratch over the visible
// graph. Later analyses replace the colors and layers of earlier ones:
// components override bipartite colors and tree layers override
// bipartite layers.
func (e *Engine) rebuildOverlays() {
	start := time.Now()
	var o Overlays
	s := e.settings
	g := e.VisibleSnapshot()

	colors, layers, ok := structure.Bipartite(g)
	e.bipartite = ok
	e.edgeNumeric = structure.EdgesNumeric(g)

	if s.BipartiteMode && ok {
		o.Colors, o.Layers = colors, layers
	}

	if s.Directed {
		if s.ShowComponents {
			o.Colors = structure.StronglyConnected(g)
		}
	} else {
		if s.ShowComponents {
			o.Colors = structure.Components(g)
		}
		if s.TreeMode {
			o.Layers, o.Backedges = structure.TreeLayers(g)
		}
		if s.GridMode {
			aspect := 1.0
			if e.height > 0 {
				aspect = e.width / e.height
			}
			grid := structure.Grid(g, aspect)
			o.Grid = &grid
		}
		if s.ShowBridges {
			o.Cuts, o.Bridges = structure.Bridges(g)
		}
		if s.ShowMSTs {
			if mst, ok := structure.MinimumSpanningForest(g); ok {
				o.MST = mst
			}
		}
	}

	e.overlays = o
	active := o.Active()
	e.logger.Debug("overlays rebuilt", "active", active, "bipartite", e.bipartite, "numeric", e.edgeNumeric)
	observability.Engine().OnOverlayRebuild(active, time.Since(start))
}

// VisibleSnapshot returns the graph restricted to nodes that are not
// concealed, with edges normalized to "u v k".
func (e *Engine) VisibleSnapshot() graph.Snapshot {
	s := graph.Empty()
	for _, u := range e.order {
		if e.conceal[u] {
			continue
		}
		s.Nodes = append(s.Nodes, u)
		s.Adj[u] = []string{}
		s.Rev[u] = []string{}
		if l, ok := e.nodeLabels[u]; ok {
			s.NodeLabels[u] = l
		}
	}
	for _, u := range s.Nodes {
		for _, v := range e.adj[u] {
			if e.visible(v) {
				s.Adj[u] = append(s.Adj[u], v)
				s.Rev[v] = append(s.Rev[v], u)
			}
		}
	}
	for _, key := range e.edges {
		if !e.visible(key.U) || !e.visible(key.V) {
			continue
		}
		k := key.String()
		s.Edges = append(s.Edges, k)
		if l, ok := e.edgeLabels[k]; ok {
			s.EdgeLabels[k] = l
		}
	}
	return s
}
