// Package animate drives a layout engine at a fixed frame rate.
//
// A [Loop] is the only goroutine that touches its engine. Other goroutines
// (input handlers, HTTP requests, a terminal UI) hand it mutations with
// [Loop.Enqueue]; they are applied at the next frame boundary, before the
// tick. Frames never overlap: a slow frame delays the next one instead of
// running concurrently with it.
package animate

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/emirpasic/gods/queues/arrayqueue"

	"github.com/matzehuels/graphdraw/pkg/layout"
	"github.com/matzehuels/graphdraw/pkg/render"
)

// FPS is the frame rate of the interactive view.
const FPS = 90

// Mutation changes engine state between frames.
type Mutation func(e *layout.Engine)

// Loop owns an engine and advances it one frame per tick of its source.
type Loop struct {
	engine *layout.Engine
	source FrameSource
	canvas func() render.Canvas
	frame  func(n uint64, at time.Time)
	logger *log.Logger

	mu      sync.Mutex
	pending *arrayqueue.Queue
	frames  uint64
}

// Option configures a Loop.
type Option func(*Loop)

// WithCanvas renders every frame onto the canvas returned by newCanvas.
// Without it frames only tick.
func WithCanvas(newCanvas func() render.Canvas) Option {
	return func(l *Loop) { l.canvas = newCanvas }
}

// WithFrameHook calls fn after every frame with the frame count.
func WithFrameHook(fn func(n uint64, at time.Time)) Option {
	return func(l *Loop) { l.frame = fn }
}

// WithLogger sets the loop's logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New returns a loop over e. A nil source ticks at [FPS].
func New(e *layout.Engine, source FrameSource, opts ...Option) *Loop {
	if source == nil {
		source = NewTickerSource(FPS)
	}
	l := &Loop{
		engine:  e,
		source:  source,
		logger:  log.Default(),
		pending: arrayqueue.New(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Enqueue schedules m for the next frame boundary. It is safe to call from
// any goroutine.
func (l *Loop) Enqueue(m Mutation) {
	l.mu.Lock()
	l.pending.Enqueue(m)
	l.mu.Unlock()
}

// Resize schedules a canvas resize.
func (l *Loop) Resize(width, height float64) {
	l.Enqueue(func(e *layout.Engine) { e.Resize(width, height) })
}

// Frames returns the number of frames completed.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Step runs one frame synchronously: pending mutations, Tick, then Render
// when a canvas is configured. It must not be called while Run is active.
func (l *Loop) Step(at time.Time) {
	for _, m := range l.drain() {
		m(l.engine)
	}
	l.engine.Tick()
	if l.canvas != nil {
		if c := l.canvas(); c != nil {
			l.engine.Render(c)
		}
	}

	l.mu.Lock()
	l.frames++
	n := l.frames
	l.mu.Unlock()
	if l.frame != nil {
		l.frame(n, at)
	}
}

func (l *Loop) drain() []Mutation {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending.Empty() {
		return nil
	}
	out := make([]Mutation, 0, l.pending.Size())
	for !l.pending.Empty() {
		v, _ := l.pending.Dequeue()
		out = append(out, v.(Mutation))
	}
	return out
}

// Run steps the loop on every frame from the source until ctx is done. It
// stops the source before returning ctx's error.
func (l *Loop) Run(ctx context.Context) error {
	defer l.source.Stop()
	l.logger.Debug("animation loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("animation loop stopped", "frames", l.Frames())
			return ctx.Err()
		case at := <-l.source.Frames():
			l.Step(at)
		}
	}
}
