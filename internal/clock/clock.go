// Package clock provides the time source consumed by effects and modes.
package clock

import (
	"sync"
	"time"
)

// Source reports the current wall-clock time.
type Source interface {
	Now() time.Time
}

// System reads the host clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// TimeOfDay is a wall-clock reading decomposed for clock faces.
type TimeOfDay struct {
	Hour12 int // 1..12
	Hour24 int // 0..23
	Minute int
	Second int
}

// Decompose splits t into the fields a clock face renders.
func Decompose(t time.Time) TimeOfDay {
	h := t.Hour()
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return TimeOfDay{
		Hour12: h12,
		Hour24: h,
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Manual is a Source that only moves when told to. Tests use it to step
// effects deterministically.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock reading start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Set jumps the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}
