package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphdraw/pkg/animate"
	"github.com/matzehuels/graphdraw/pkg/cache"
	"github.com/matzehuels/graphdraw/pkg/errors"
	"github.com/matzehuels/graphdraw/pkg/graph"
	"github.com/matzehuels/graphdraw/pkg/layout"
	"github.com/matzehuels/graphdraw/pkg/observability"
	"github.com/matzehuels/graphdraw/pkg/render/nodelink"
	"github.com/matzehuels/graphdraw/pkg/render/sink"
	"github.com/matzehuels/graphdraw/pkg/settings"
)

// Output formats.
const (
	formatPNG      = "png"
	formatSVG      = "svg"
	formatDOT      = "dot"
	formatGraphviz = "graphviz" // DOT rendered by Graphviz with pinned positions
	formatJSON     = "json"     // final positions
)

const (
	defaultWidth  = 800
	defaultHeight = 600
	defaultTicks  = 900 // ten seconds of animation
	defaultSeed   = 42
	maxTicks      = 100_000
)

// formatExt maps formats to file extensions.
var formatExt = map[string]string{
	formatPNG:      ".png",
	formatSVG:      ".svg",
	formatDOT:      ".dot",
	formatGraphviz: ".gv.svg",
	formatJSON:     ".json",
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if _, ok := formatExt[f]; !ok {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be png, svg, dot, graphviz or json)", f)
		}
	}
	return nil
}

// =============================================================================
// Job
// =============================================================================

// job is one headless layout run: a document, the settings it is drawn
// with, and the simulation parameters.
type job struct {
	doc      graph.Document
	hash     string // hash of the raw document bytes
	settings settings.Settings
	width    float64
	height   float64
	ticks    int
	seed     uint64
	scale    float64 // PNG pixel density
}

// newJob decodes a document. Settings embedded in the document apply on top
// of base.
func newJob(data []byte, base settings.Settings) (*job, error) {
	doc, err := graph.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if len(doc.TestCases) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "document has no test cases")
	}
	s, err := settings.FromJSON(doc.Settings, base)
	if err != nil {
		return nil, err
	}
	return &job{
		doc:      doc,
		hash:     cache.Hash(data),
		settings: s,
		width:    defaultWidth,
		height:   defaultHeight,
		ticks:    defaultTicks,
		seed:     defaultSeed,
		scale:    1,
	}, nil
}

// loadJob reads a document file.
func loadJob(path string, base settings.Settings) (*job, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return newJob(data, base)
}

func (j *job) validate() error {
	if j.width < 100 || j.height < 100 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas must be at least 100x100, got %gx%g", j.width, j.height)
	}
	if j.ticks < 0 || j.ticks > maxTicks {
		return errors.New(errors.ErrCodeInvalidInput, "ticks must be within [0, %d], got %d", maxTicks, j.ticks)
	}
	if j.scale <= 0 || j.scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be within (0, 8], got %g", j.scale)
	}
	return j.settings.Validate()
}

// engine builds an engine for the job with a deterministic random source.
func (j *job) engine(logger *log.Logger) *layout.Engine {
	e := layout.New(
		layout.WithLogger(logger),
		layout.WithRand(rand.New(rand.NewPCG(j.seed, j.seed^0x9e3779b97f4a7c15))),
		layout.WithSize(j.width, j.height),
		layout.WithSettings(j.settings),
	)
	e.UpdateGraph(graph.Merge(j.doc.TestCases))
	return e
}

// settingsHash identifies the settings in cache keys.
func (j *job) settingsHash() string {
	var buf bytes.Buffer
	if err := settings.Save(j.settings, &buf); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}

// simulate advances e by ticks frames through an animation loop driven by a
// synthetic 90 Hz clock. progress, if set, is called every FPS frames.
func simulate(ctx context.Context, e *layout.Engine, ticks int, progress func(done int)) error {
	loop := animate.New(e, animate.NewManualSource())
	start := time.Unix(0, 0)
	for i := range ticks {
		if i%animate.FPS == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if progress != nil && i > 0 {
				progress(i)
			}
		}
		loop.Step(start.Add(time.Duration(i) * time.Second / animate.FPS))
	}
	return nil
}

// =============================================================================
// Artifacts
// =============================================================================

// artifact is one rendered output.
type artifact struct {
	Format string
	Data   []byte
	Cached bool
}

// renderer renders jobs through a cache.
type renderer struct {
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

func newRenderer(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *renderer {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &renderer{cache: c, keyer: keyer, logger: logger}
}

// render produces every requested format. The simulation runs at most once
// and only if some format is not cached.
func (r *renderer) render(ctx context.Context, j *job, formats []string, progress func(done int)) ([]artifact, error) {
	settingsHash := j.settingsHash()
	out := make([]artifact, 0, len(formats))
	var e *layout.Engine

	for _, format := range formats {
		key := r.keyer.RenderKey(j.hash, cache.RenderKeyOpts{
			Format:   format,
			Width:    j.width,
			Height:   j.height,
			Ticks:    j.ticks,
			Seed:     j.seed,
			Scale:    j.scale,
			Settings: settingsHash,
		})

		data, hit, err := r.cache.Get(ctx, key)
		if err != nil {
			r.logger.Warn("cache read failed", "format", format, "err", err)
		}
		if hit {
			observability.Cache().OnCacheHit(ctx, string(cache.KindRender))
			out = append(out, artifact{Format: format, Data: data, Cached: true})
			continue
		}
		observability.Cache().OnCacheMiss(ctx, string(cache.KindRender))

		if e == nil {
			e = j.engine(r.logger)
			if err := simulate(ctx, e, j.ticks, progress); err != nil {
				return nil, err
			}
		}
		data, err = encode(ctx, e, j, format)
		if err != nil {
			return nil, err
		}
		if err := r.cache.Set(ctx, key, data, cache.KindRender.TTL()); err != nil {
			r.logger.Warn("cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, string(cache.KindRender), len(data))
		}
		out = append(out, artifact{Format: format, Data: data})
	}
	return out, nil
}

// encode draws the engine's current frame in one format.
func encode(ctx context.Context, e *layout.Engine, j *job, format string) ([]byte, error) {
	w, h := e.Size()
	switch format {
	case formatPNG:
		b := sink.NewBitmap(int(w), int(h), sink.WithScale(j.scale))
		e.Render(b)
		var buf bytes.Buffer
		if err := b.EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), nil
	case formatSVG:
		s := sink.NewSVG(int(w), int(h))
		e.Render(s)
		return s.Bytes(), nil
	case formatDOT:
		return []byte(nodelink.ToDOT(e.Scene(), e.Theme(), dotOptions(e))), nil
	case formatGraphviz:
		opts := dotOptions(e)
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(e.Scene(), e.Theme(), opts), opts)
	case formatJSON:
		return json.MarshalIndent(positionsOf(e), "", "  ")
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s", format)
}

func dotOptions(e *layout.Engine) nodelink.Options {
	return nodelink.Options{Directed: e.Settings().Directed, Pinned: true, Roles: true}
}

// positions is the JSON export of a settled layout.
type positions struct {
	Width      float64               `json:"width"`
	Height     float64               `json:"height"`
	Nodes      map[string][2]float64 `json:"nodes"`
	EdgeLabels map[string][2]float64 `json:"edgeLabels,omitempty"`
	Overlays   []string              `json:"overlays"`
	Bipartite  bool                  `json:"bipartite"`
}

func positionsOf(e *layout.Engine) positions {
	w, h := e.Size()
	out := positions{
		Width:      w,
		Height:     h,
		Nodes:      map[string][2]float64{},
		EdgeLabels: map[string][2]float64{},
		Overlays:   e.Overlays().Active(),
		Bipartite:  e.IsBipartite(),
	}
	// Label positions are recorded while drawing.
	_ = e.Scene()
	for u, p := range e.Positions() {
		out.Nodes[u] = [2]float64{p.X, p.Y}
	}
	for k, p := range e.EdgeLabelPositions() {
		out.EdgeLabels[k] = [2]float64{p.X, p.Y}
	}
	if out.Overlays == nil {
		out.Overlays = []string{}
	}
	return out
}

// outputPath returns the file for format. A single format writes to base
// as given; several formats replace base's extension per format.
func outputPath(base, format string, multiple bool) string {
	if !multiple {
		return base
	}
	// Longest extension first so ".gv.svg" wins over ".svg".
	for _, f := range []string{formatGraphviz, formatPNG, formatSVG, formatDOT, formatJSON} {
		if ext := formatExt[f]; strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	return base + formatExt[format]
}
