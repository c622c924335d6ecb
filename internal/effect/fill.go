package effect

import (
	"math/rand"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
)

// Mask limits where a fill may place pixels.
type Mask func(x, y int) bool

// RandomFill lights one random empty pixel per interval until the masked
// region is full.
type RandomFill struct {
	canvas   canvas.Canvas
	rng      *rand.Rand
	interval interval

	Colour ColourGenerator
	Mask   Mask
}

func NewRandomFill(w, h int, src clock.Source, rng *rand.Rand, every time.Duration, gen ColourGenerator) *RandomFill {
	return &RandomFill{
		canvas:   canvas.New(w, h),
		rng:      rng,
		interval: newInterval(src, every),
		Colour:   orWhite(gen),
	}
}

// SetCanvas replaces the working canvas with a copy of c.
func (f *RandomFill) SetCanvas(c canvas.Canvas) {
	f.canvas = c.Clone()
}

// Spawn lights one pixel immediately. It reports false when there is no
// room left.
func (f *RandomFill) Spawn() bool {
	return spawn(&f.canvas, f.rng, f.Colour, f.Mask)
}

func (f *RandomFill) Run() canvas.Canvas {
	if f.interval.due() {
		f.Spawn()
	}
	return f.canvas.Clone()
}

func (f *RandomFill) Finished() bool {
	return len(emptyCells(&f.canvas, f.Mask)) == 0
}

func (f *RandomFill) Reset() {
	f.canvas.Clear()
	f.interval.reset()
}

func emptyCells(c *canvas.Canvas, mask Mask) []int {
	var out []int
	for y := range c.Height() {
		for x := range c.Width() {
			if mask != nil && !mask(x, y) {
				continue
			}
			if c.GetXY(x, y).IsBlack() {
				out = append(out, y*c.Width()+x)
			}
		}
	}
	return out
}

func spawn(c *canvas.Canvas, rng *rand.Rand, gen ColourGenerator, mask Mask) bool {
	free := emptyCells(c, mask)
	if len(free) == 0 {
		return false
	}
	c.Set(free[rng.Intn(len(free))], orWhite(gen)())
	return true
}
