package animate

import (
	"sync"
	"time"
)

// FrameSource delivers frame times. Implementations must stop sending once
// Stop returns.
type FrameSource interface {
	Frames() <-chan time.Time
	Stop()
}

// TickerSource fires at a fixed rate from a time.Ticker.
type TickerSource struct {
	ticker *time.Ticker
}

// NewTickerSource returns a source firing hz times per second. Values
// below one fall back to [FPS].
func NewTickerSource(hz float64) *TickerSource {
	if hz < 1 {
		hz = FPS
	}
	return &TickerSource{ticker: time.NewTicker(time.Duration(float64(time.Second) / hz))}
}

func (s *TickerSource) Frames() <-chan time.Time { return s.ticker.C }

func (s *TickerSource) Stop() { s.ticker.Stop() }

// ManualSource fires only when told to. Tests and the terminal UI use it to
// drive frames from their own clock.
type ManualSource struct {
	ch   chan time.Time
	once sync.Once
	done chan struct{}
}

// NewManualSource returns an idle manual source.
func NewManualSource() *ManualSource {
	return &ManualSource{ch: make(chan time.Time), done: make(chan struct{})}
}

func (s *ManualSource) Frames() <-chan time.Time { return s.ch }

// Fire delivers one frame and blocks until a loop receives it. It returns
// false if the source was stopped first.
func (s *ManualSource) Fire(at time.Time) bool {
	select {
	case s.ch <- at:
		return true
	case <-s.done:
		return false
	}
}

func (s *ManualSource) Stop() {
	s.once.Do(func() { close(s.done) })
}
