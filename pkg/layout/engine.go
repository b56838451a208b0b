package layout

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphdraw/pkg/annotate"
	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/observability"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

// Default canvas extent used until the first Resize.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Engine is the layout engine. The zero value is not usable; call [New].
type Engine struct {
	width, height float64
	settings      settings.Settings
	logger        *log.Logger
	rng           *rand.Rand
	now           func() time.Time

	// graph state
	order    []string
	nodes    map[string]*SimNode
	edges    []graph.EdgeKey
	maxIndex map[string]int // "u v" -> largest multiplicity index
	adjSet   map[[2]string]bool
	adj      map[string][]string
	rev      map[string][]string
	fullAdj  map[string][]string
	conceal  graph.Conceal
	nodeCase map[string]int
	cases    []int

	edgeLabels map[string]string
	nodeLabels map[string]string

	lastDeleted *r2.Vec

	mult    Multipliers
	lengths map[[2]string]float64

	overlays    Overlays
	bipartite   bool
	edgeNumeric bool

	positions      map[string]r2.Vec
	labelPositions map[string]r2.Vec

	annotations *annotate.Layer
	pointer     pointer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for graph sync and overlay rebuilds.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRand sets the source used for new node placement and pen rainbow
// hues. Tests and headless renders pass a seeded source.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithSize sets the initial canvas extent.
func WithSize(width, height float64) Option {
	return func(e *Engine) {
		e.width, e.height = width, height
	}
}

// WithSettings sets the initial settings.
func WithSettings(s settings.Settings) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// WithClock replaces time.Now. It drives the eraser indicator animation.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New returns an engine with no nodes.
func New(opts ...Option) *Engine {
	e := &Engine{
		width:    DefaultWidth,
		height:   DefaultHeight,
		settings: settings.Defaults(),
		logger:   log.Default(),
		now:      time.Now,
		nodes:    map[string]*SimNode{},
		conceal:  graph.Conceal{},
		nodeCase: map[string]int{},
		lengths:  map[[2]string]float64{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.annotations = annotate.NewLayer(e.rng)
	e.mult = AdaptiveMultipliers(0, 0)
	e.rebuildAdjacency(nil)
	return e
}

// =============================================================================
// Graph Sync
// =============================================================================

// UpdateGraph synchronizes the engine with a merged graph. Nodes present
// before and after keep their simulation state. Edges that reference an
// unknown node or cannot be parsed are ignored.
func (e *Engine) UpdateGraph(m graph.Merged) {
	start := time.Now()
	s := m.Snapshot

	e.syncNodes(s.Nodes)

	e.edges = e.edges[:0]
	for _, raw := range s.Edges {
		key, err := graph.ParseEdgeKey(raw)
		if err != nil {
			e.logger.Debug("skipping edge", "edge", raw, "err", err)
			continue
		}
		e.edges = append(e.edges, key)
	}
	e.rebuildAdjacency(s.Adj)

	e.conceal = graph.Conceal{}
	for u, hidden := range m.Conceal {
		if hidden {
			e.conceal[u] = true
		}
	}
	e.nodeCase = make(map[string]int, len(m.NodeCase))
	for u, c := range m.NodeCase {
		e.nodeCase[u] = c
	}
	e.cases = slices.Clone(m.Cases)
	e.edgeLabels = make(map[string]string, len(s.EdgeLabels))
	for k, v := range s.EdgeLabels {
		if key, err := graph.ParseEdgeKey(k); err == nil {
			e.edgeLabels[key.String()] = v
		}
	}
	e.nodeLabels = make(map[string]string, len(s.NodeLabels))
	for k, v := range s.NodeLabels {
		e.nodeLabels[k] = v
	}

	e.rebuildOverlays()
	e.updateMultipliers()
	e.updateRadii()

	e.logger.Debug("graph updated", "nodes", len(e.order), "edges", len(e.edges), "concealed", len(e.conceal))
	observability.Engine().OnGraphUpdate(len(e.order), len(e.edges), time.Since(start))
}

// rebuildAdjacency derives adj, rev and fullAdj from the parsed edge list.
// The snapshot's own adjacency only contributes neighbor order for nodes
// it lists; pairs are always taken from edges.
func (e *Engine) rebuildAdjacency(order map[string][]string) {
	e.adj = make(map[string][]string, len(e.order))
	e.rev = make(map[string][]string, len(e.order))
	e.fullAdj = make(map[string][]string, len(e.order))
	e.adjSet = map[[2]string]bool{}
	e.maxIndex = map[string]int{}
	for _, u := range e.order {
		e.adj[u] = []string{}
		e.rev[u] = []string{}
		e.fullAdj[u] = []string{}
	}

	kept := e.edges[:0]
	for _, key := range e.edges {
		if e.nodes[key.U] == nil || e.nodes[key.V] == nil {
			continue
		}
		kept = append(kept, key)
		if k, ok := e.maxIndex[key.Base()]; !ok || key.K > k {
			e.maxIndex[key.Base()] = key.K
		}
		if e.adjSet[[2]string{key.U, key.V}] {
			continue
		}
		e.adjSet[[2]string{key.U, key.V}] = true
		e.adj[key.U] = append(e.adj[key.U], key.V)
		e.rev[key.V] = append(e.rev[key.V], key.U)
		if key.U == key.V {
			continue
		}
		if !slices.Contains(e.fullAdj[key.U], key.V) {
			e.fullAdj[key.U] = append(e.fullAdj[key.U], key.V)
			e.fullAdj[key.V] = append(e.fullAdj[key.V], key.U)
		}
	}
	e.edges = kept

	for u, vs := range order {
		if _, ok := e.adj[u]; !ok {
			continue
		}
		sorted := make([]string, 0, len(e.adj[u]))
		for _, v := range vs {
			if e.adjSet[[2]string{u, v}] && !slices.Contains(sorted, v) {
				sorted = append(sorted, v)
			}
		}
		for _, v := range e.adj[u] {
			if !slices.Contains(sorted, v) {
				sorted = append(sorted, v)
			}
		}
		e.adj[u] = sorted
	}
}

// =============================================================================
// Settings & Extent
// =============================================================================

// UpdateSettings replaces the settings. Overlays are rebuilt and radii and
// edge lengths recomputed.
func (e *Engine) UpdateSettings(s settings.Settings) {
	prev := e.settings
	e.settings = s
	if prev.EdgeLength != s.EdgeLength || prev.NodeRadius != s.NodeRadius {
		clear(e.lengths)
	}
	if prev.DrawMode != s.DrawMode {
		e.endStroke()
	}
	e.rebuildOverlays()
	e.updateRadii()
}

// SetDirected switches between directed and undirected semantics.
func (e *Engine) SetDirected(directed bool) {
	if e.settings.Directed == directed {
		return
	}
	e.settings.Directed = directed
	e.rebuildOverlays()
}

// Resize sets the canvas extent. Grid placement depends on the aspect
// ratio, so it is recomputed when active.
func (e *Engine) Resize(width, height float64) {
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height
	if e.settings.GridMode && !e.settings.Directed {
		e.rebuildOverlays()
	}
}

// Settings returns the current settings.
func (e *Engine) Settings() settings.Settings { return e.settings }

// Size returns the canvas extent.
func (e *Engine) Size() (width, height float64) { return e.width, e.height }

// =============================================================================
// Public State
// =============================================================================

// Nodes returns the node ids in graph order, concealed ones included.
func (e *Engine) Nodes() []string {
	return slices.Clone(e.order)
}

// Node returns a copy of the simulation state of u.
func (e *Engine) Node(u string) (SimNode, bool) {
	n, ok := e.nodes[u]
	if !ok {
		return SimNode{}, false
	}
	return *n, true
}

// SetPosition moves u to p and stops it. It reports whether u exists.
func (e *Engine) SetPosition(u string, p r2.Vec) bool {
	n, ok := e.nodes[u]
	if !ok {
		return false
	}
	n.Pos = p
	n.Vel = r2.Vec{}
	return true
}

// Positions returns the node centers recorded by the last Scene call, for
// hit testing.
func (e *Engine) Positions() map[string]r2.Vec {
	out := make(map[string]r2.Vec, len(e.positions))
	for k, v := range e.positions {
		out[k] = v
	}
	return out
}

// EdgeLabelPositions returns the edge label anchors recorded by the last
// Scene call, keyed by "u v k".
func (e *Engine) EdgeLabelPositions() map[string]r2.Vec {
	out := make(map[string]r2.Vec, len(e.labelPositions))
	for k, v := range e.labelPositions {
		out[k] = v
	}
	return out
}

// IsBipartite reports whether the visible graph is 2-colorable.
func (e *Engine) IsBipartite() bool { return e.bipartite }

// IsEdgeNumeric reports whether every visible edge has an integer label.
func (e *Engine) IsEdgeNumeric() bool { return e.edgeNumeric }

// Overlays returns the current structural overlays. The maps are shared;
// callers must not modify them.
func (e *Engine) Overlays() Overlays { return e.overlays }

// Annotations returns the pen layer.
func (e *Engine) Annotations() *annotate.Layer { return e.annotations }

// Multipliers returns the current adaptive edge-length multipliers.
func (e *Engine) Multipliers() Multipliers { return e.mult }

func (e *Engine) visible(u string) bool {
	return e.nodes[u] != nil && !e.conceal[u]
}
