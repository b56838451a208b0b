// Package cache stores rendered frames and analysis reports keyed by the
// graph document and the options that produced them.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared storage for several serve instances
//   - [NullCache]: stores nothing, for --no-cache
//
// Keys come from a [Keyer] and start with the [Kind] of artifact they name;
// wrap a keyer in [NewScopedKeyer] to give a caller its own namespace.
// A backend that cannot be reached fails with an error carrying
// errors.ErrCodeUnavailable.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte store with per-entry expiry. A zero TTL never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backend can serve requests.
	Ping(ctx context.Context) error
	Close() error
}

// Kind names the artifact an entry holds.
type Kind string

const (
	KindRender   Kind = "render"
	KindAnalysis Kind = "analysis"
	// KindUnknown is reported for keys not built by a Keyer.
	KindUnknown Kind = "unknown"
)

// Default TTLs.
const (
	RenderTTL   = 7 * 24 * time.Hour
	AnalysisTTL = 24 * time.Hour
)

// TTL is the default lifetime of an artifact of kind k.
func (k Kind) TTL() time.Duration {
	switch k {
	case KindRender:
		return RenderTTL
	case KindAnalysis:
		return AnalysisTTL
	}
	return 0
}

// RenderKeyOpts are the inputs that change a rendered frame besides the
// graph itself.
type RenderKeyOpts struct {
	Format   string  `json:"format"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Ticks    int     `json:"ticks"`
	Seed     uint64  `json:"seed"`
	Scale    float64 `json:"scale"`
	Settings string  `json:"settings"` // hash of the settings document
}

// String formats k for logs.
func (k RenderKeyOpts) String() string {
	return fmt.Sprintf("%s %gx%g ticks=%d seed=%d", k.Format, k.Width, k.Height, k.Ticks, k.Seed)
}

// AnalysisKeyOpts are the inputs that change an analysis report.
type AnalysisKeyOpts struct {
	Directed bool   `json:"directed"`
	Format   string `json:"format"`
}

// Keyer builds cache keys.
type Keyer interface {
	RenderKey(graphHash string, opts RenderKeyOpts) string
	AnalysisKey(graphHash string, opts AnalysisKeyOpts) string
}

// DefaultKeyer builds keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return artifactKey(KindRender, graphHash, opts)
}

func (DefaultKeyer) AnalysisKey(graphHash string, opts AnalysisKeyOpts) string {
	return artifactKey(KindAnalysis, graphHash, opts)
}
