package effect

import (
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
	"github.com/chrissbarr/pixelclock/internal/filter"
)

// Timeout bounds an effect that may never finish on its own.
type Timeout struct {
	inner Effect
	clock clock.Source
	limit time.Duration
	start time.Time
}

// NewTimeout wraps inner so that it finishes after limit at the latest.
func NewTimeout(inner Effect, src clock.Source, limit time.Duration) *Timeout {
	return &Timeout{inner: inner, clock: src, limit: limit, start: src.Now()}
}

func (t *Timeout) Run() canvas.Canvas { return t.inner.Run() }

func (t *Timeout) Finished() bool {
	return t.inner.Finished() || t.clock.Now().Sub(t.start) > t.limit
}

func (t *Timeout) Reset() {
	t.inner.Reset()
	t.start = t.clock.Now()
}

// Inner returns the wrapped effect.
func (t *Timeout) Inner() Effect { return t.inner }

// Filtered post-processes every frame of inner.
type Filtered struct {
	inner  Effect
	filter filter.Filter
}

func NewFiltered(inner Effect, f filter.Filter) *Filtered {
	return &Filtered{inner: inner, filter: f}
}

func (f *Filtered) Run() canvas.Canvas {
	frame := f.inner.Run()
	if f.filter == nil {
		return frame
	}
	return f.filter.Apply(frame)
}

func (f *Filtered) Finished() bool { return f.inner.Finished() }
func (f *Filtered) Reset()         { f.inner.Reset() }
