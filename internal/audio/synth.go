package audio

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Synth generates plausible-looking Characteristics without any audio: a
// slow loudness drift, a pulse on every beat, and a spectrum tilted towards
// the bass. It stands in for a real source in demos.
type Synth struct {
	rng   *rand.Rand
	feed  *Feed
	bands int
	bpm   float64
	phase float64
	drift float64
}

func NewSynth(feed *Feed, seed int64) *Synth {
	return &Synth{
		rng:   rand.New(rand.NewSource(seed)),
		feed:  feed,
		bands: DefaultBands,
		bpm:   120,
	}
}

// Next produces the record for a step of dt.
func (s *Synth) Next(dt time.Duration) Characteristics {
	s.phase += dt.Seconds() * s.bpm / 60
	s.phase -= math.Floor(s.phase)
	s.drift += (s.rng.Float64() - 0.5) * 0.1
	s.drift = math.Max(-1, math.Min(1, s.drift))

	beat := math.Exp(-6 * s.phase)
	base := -22 + 6*s.drift + 14*beat

	c := Characteristics{
		LeftDB:   base + (s.rng.Float64()-0.5)*3,
		RightDB:  base + (s.rng.Float64()-0.5)*3,
		Spectrum: make([]float64, s.bands),
	}
	for i := range c.Spectrum {
		tilt := 1 - 0.7*float64(i)/float64(s.bands)
		v := tilt*(0.35+0.65*beat) + (s.rng.Float64()-0.5)*0.25
		c.Spectrum[i] = math.Max(0, math.Min(1, v))
	}
	return c
}

// Run pushes a record every interval until ctx is cancelled.
func (s *Synth) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.feed.Push(s.Next(interval))
		}
	}
}
