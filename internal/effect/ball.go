package effect

import (
	"math"
	"math/rand"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
)

// BouncingBall moves a single pixel around the canvas, reflecting off the
// edges and leaving a fading trail. The colour changes on every bounce.
type BouncingBall struct {
	canvas   canvas.Canvas
	rng      *rand.Rand
	interval interval
	x, y     float64
	vx, vy   float64
	colour   canvas.Colour
	bounces  int

	// Speed is in pixels per step.
	Speed float64
	// Trail scales the previous frame every step.
	Trail      float64
	MaxBounces int
	Colour     ColourGenerator
}

func NewBouncingBall(w, h int, src clock.Source, rng *rand.Rand, every time.Duration, maxBounces int, gen ColourGenerator) *BouncingBall {
	b := &BouncingBall{
		canvas:     canvas.New(w, h),
		rng:        rng,
		interval:   newInterval(src, every),
		Speed:      0.6,
		Trail:      0.6,
		MaxBounces: maxBounces,
		Colour:     orWhite(gen),
	}
	b.Reset()
	return b
}

func (b *BouncingBall) Reset() {
	b.canvas.Clear()
	b.bounces = 0
	b.x = b.rng.Float64() * float64(max(b.canvas.Width()-1, 0))
	b.y = b.rng.Float64() * float64(max(b.canvas.Height()-1, 0))
	// Keep clear of the axes so the ball does not slide along an edge.
	angle := (0.15 + 0.2*b.rng.Float64()) * math.Pi
	angle += float64(b.rng.Intn(4)) * math.Pi / 2
	b.vx = math.Cos(angle) * b.Speed
	b.vy = math.Sin(angle) * b.Speed
	b.colour = b.Colour()
	b.interval.reset()
}

// reflect folds p back into [0, limit] and reports whether it bounced.
func reflect(p, v *float64, limit float64) bool {
	if limit <= 0 {
		*p = 0
		return false
	}
	switch {
	case *p < 0:
		*p = -*p
	case *p > limit:
		*p = 2*limit - *p
	default:
		return false
	}
	*v = -*v
	*p = math.Max(0, math.Min(limit, *p))
	return true
}

func (b *BouncingBall) step() {
	b.x += b.vx
	b.y += b.vy
	hitX := reflect(&b.x, &b.vx, float64(b.canvas.Width()-1))
	hitY := reflect(&b.y, &b.vy, float64(b.canvas.Height()-1))
	if hitX || hitY {
		b.bounces++
		b.colour = b.Colour()
	}

	b.canvas = b.canvas.Map(func(_, _ int, c canvas.Colour) canvas.Colour {
		c = c.Scale(b.Trail)
		if c.Brightness() < 0.05 {
			return canvas.Black
		}
		return c
	})
	b.canvas.SetXY(int(math.Round(b.x)), int(math.Round(b.y)), b.colour)
}

func (b *BouncingBall) Run() canvas.Canvas {
	if b.interval.due() {
		b.step()
	}
	return b.canvas.Clone()
}

// Bounces returns the number of edge hits since the last reset.
func (b *BouncingBall) Bounces() int { return b.bounces }

func (b *BouncingBall) Finished() bool {
	return b.MaxBounces > 0 && b.bounces >= b.MaxBounces
}
