// Package effect holds the animations the display cycles through: clock
// faces, text scrollers, particle and gravity toys, audio visualizers and
// the Game of Life.
//
// Effects are polled. Run renders the next frame and returns a copy the
// caller may keep; effects only ever compare against their clock and never
// block. Finished reports a natural cycle boundary such as a scroller
// leaving the screen, but an effect keeps running if polled past it.
package effect

import (
	"math/rand"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
)

// Effect is a polled animation.
type Effect interface {
	Run() canvas.Canvas
	Finished() bool
	Reset()
}

// interval fires at most once per period.
type interval struct {
	clock  clock.Source
	period time.Duration
	last   time.Time
}

func newInterval(src clock.Source, period time.Duration) interval {
	return interval{clock: src, period: period, last: src.Now()}
}

func (iv *interval) due() bool {
	now := iv.clock.Now()
	if now.Sub(iv.last) < iv.period {
		return false
	}
	iv.last = now
	return true
}

func (iv *interval) reset() {
	iv.last = iv.clock.Now()
}

// ColourGenerator supplies the colour for each newly drawn pixel.
type ColourGenerator func() canvas.Colour

// Solid always returns c.
func Solid(c canvas.Colour) ColourGenerator {
	return func() canvas.Colour { return c }
}

// Palette cycles through colours in order.
func Palette(colours ...canvas.Colour) ColourGenerator {
	if len(colours) == 0 {
		return Solid(canvas.White)
	}
	i := 0
	return func() canvas.Colour {
		c := colours[i%len(colours)]
		i++
		return c
	}
}

// RandomHue returns fully saturated colours of random hue.
func RandomHue(rng *rand.Rand) ColourGenerator {
	return func() canvas.Colour {
		return canvas.FromHSV(rng.Float64(), 1, 1)
	}
}

// HueCycle returns the hue reached after speed turns per second since the
// generator was created.
func HueCycle(src clock.Source, speed float64) ColourGenerator {
	start := src.Now()
	return func() canvas.Colour {
		return canvas.FromHSV(src.Now().Sub(start).Seconds()*speed, 1, 1)
	}
}

func orWhite(gen ColourGenerator) ColourGenerator {
	if gen == nil {
		return Solid(canvas.White)
	}
	return gen
}
