package effect

import (
	"math/rand"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
)

// Direction is the way pixels fall.
type Direction int

const (
	Down Direction = iota
	Up
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "down"
	}
}

// axes maps fall coordinates onto the canvas. Depth 0 is the leading edge
// pixels fall towards; across runs along that edge.
type axes struct {
	dir  Direction
	w, h int
}

func axesOf(c *canvas.Canvas, d Direction) axes {
	return axes{dir: d, w: c.Width(), h: c.Height()}
}

func (a axes) depth() int {
	if a.dir == Left || a.dir == Right {
		return a.w
	}
	return a.h
}

func (a axes) across() int {
	if a.dir == Left || a.dir == Right {
		return a.h
	}
	return a.w
}

func (a axes) xy(across, depth int) (int, int) {
	switch a.dir {
	case Up:
		return across, depth
	case Left:
		return depth, across
	case Right:
		return a.w - 1 - depth, across
	default:
		return across, a.h - 1 - depth
	}
}

// fall moves every lit pixel one step towards the leading edge if the
// cell ahead of it is empty. Scanning starts at the edge, so a pixel moves
// at most once per pass. With fallOut, pixels on the edge are removed. It
// reports whether anything changed.
func fall(c *canvas.Canvas, d Direction, fallOut bool) bool {
	a := axesOf(c, d)
	moved := false
	if fallOut {
		for i := range a.across() {
			x, y := a.xy(i, 0)
			if !c.GetXY(x, y).IsBlack() {
				c.SetXY(x, y, canvas.Black)
				moved = true
			}
		}
	}
	for depth := 1; depth < a.depth(); depth++ {
		for i := range a.across() {
			x, y := a.xy(i, depth)
			px := c.GetXY(x, y)
			if px.IsBlack() {
				continue
			}
			nx, ny := a.xy(i, depth-1)
			if !c.GetXY(nx, ny).IsBlack() {
				continue
			}
			c.SetXY(nx, ny, px)
			c.SetXY(x, y, canvas.Black)
			moved = true
		}
	}
	return moved
}

// Gravity pulls the pixels of a supplied canvas towards one edge, one cell
// per interval. It finishes once a pass moves nothing.
type Gravity struct {
	canvas   canvas.Canvas
	interval interval
	settled  bool
	// pending runs the first pass of a new fall without waiting.
	pending bool

	Direction Direction
	FallOut   bool
}

func NewGravity(src clock.Source, every time.Duration, dir Direction, fallOut bool) *Gravity {
	return &Gravity{
		interval:  newInterval(src, every),
		Direction: dir,
		FallOut:   fallOut,
	}
}

// SetCanvas starts a new fall from a copy of c.
func (g *Gravity) SetCanvas(c canvas.Canvas) {
	g.canvas = c.Clone()
	g.settled = false
	g.pending = true
	g.interval.reset()
}

// Step runs one pass immediately and reports whether anything moved.
func (g *Gravity) Step() bool {
	moved := fall(&g.canvas, g.Direction, g.FallOut)
	if !moved {
		g.settled = true
	}
	return moved
}

func (g *Gravity) Run() canvas.Canvas {
	if !g.settled && (g.pending || g.interval.due()) {
		if g.pending {
			g.pending = false
			g.interval.reset()
		}
		g.Step()
	}
	return g.canvas.Clone()
}

func (g *Gravity) Finished() bool { return g.settled }

func (g *Gravity) Reset() {
	g.canvas.Clear()
	g.settled = false
	g.pending = true
	g.interval.reset()
}

// GravityFill drops random pixels from the far edge and lets them pile up
// until the canvas is full.
type GravityFill struct {
	canvas   canvas.Canvas
	rng      *rand.Rand
	interval interval

	Direction Direction
	Colour    ColourGenerator
}

func NewGravityFill(w, h int, src clock.Source, rng *rand.Rand, every time.Duration, dir Direction, gen ColourGenerator) *GravityFill {
	return &GravityFill{
		canvas:    canvas.New(w, h),
		rng:       rng,
		interval:  newInterval(src, every),
		Direction: dir,
		Colour:    orWhite(gen),
	}
}

// spawnEdge accepts only cells opposite the leading edge.
func (g *GravityFill) spawnEdge() Mask {
	a := axesOf(&g.canvas, g.Direction)
	far := a.depth() - 1
	return func(x, y int) bool {
		for i := range a.across() {
			if ex, ey := a.xy(i, far); ex == x && ey == y {
				return true
			}
		}
		return false
	}
}

func (g *GravityFill) Run() canvas.Canvas {
	if g.interval.due() && !g.canvas.Full() {
		if !fall(&g.canvas, g.Direction, false) {
			spawn(&g.canvas, g.rng, g.Colour, g.spawnEdge())
		}
	}
	return g.canvas.Clone()
}

func (g *GravityFill) Finished() bool { return g.canvas.Full() }

func (g *GravityFill) Reset() {
	g.canvas.Clear()
	g.interval.reset()
}

type drop struct {
	across int
	depth  int
	target int
	colour canvas.Colour
}

// GravityFillTemplate rebuilds a template image by dropping its pixels in
// from the far edge. Each drop lands on the unfilled lit template cell
// nearest the leading edge of its column, so columns stack up from the
// bottom.
type GravityFillTemplate struct {
	template canvas.Canvas
	filled   canvas.Canvas
	drops    []drop
	rng      *rand.Rand
	interval interval

	Direction Direction
	// Colour overrides the template's colours when set.
	Colour ColourGenerator
}

func NewGravityFillTemplate(template canvas.Canvas, src clock.Source, rng *rand.Rand, every time.Duration, dir Direction) *GravityFillTemplate {
	g := &GravityFillTemplate{
		rng:       rng,
		interval:  newInterval(src, every),
		Direction: dir,
	}
	g.SetTemplate(template)
	return g
}

// SetTemplate restarts the fill towards t.
func (g *GravityFillTemplate) SetTemplate(t canvas.Canvas) {
	g.template = t.Clone()
	g.filled = canvas.New(t.Width(), t.Height())
	g.drops = nil
	g.interval.reset()
}

// Template returns a copy of the target image.
func (g *GravityFillTemplate) Template() canvas.Canvas { return g.template.Clone() }

// nextTarget returns the depth of the next cell to fill in column i, or -1.
func (g *GravityFillTemplate) nextTarget(a axes, i int) int {
	for depth := range a.depth() {
		x, y := a.xy(i, depth)
		if !g.template.GetXY(x, y).IsBlack() && g.filled.GetXY(x, y).IsBlack() {
			return depth
		}
	}
	return -1
}

func (g *GravityFillTemplate) step() {
	a := axesOf(&g.template, g.Direction)

	kept := g.drops[:0]
	for _, d := range g.drops {
		d.depth--
		if d.depth <= d.target {
			x, y := a.xy(d.across, d.target)
			g.filled.SetXY(x, y, d.colour)
			continue
		}
		kept = append(kept, d)
	}
	g.drops = kept

	busy := make(map[int]bool, len(g.drops))
	for _, d := range g.drops {
		busy[d.across] = true
	}
	var open []int
	for i := range a.across() {
		if !busy[i] && g.nextTarget(a, i) >= 0 {
			open = append(open, i)
		}
	}
	if len(open) == 0 {
		return
	}
	i := open[g.rng.Intn(len(open))]
	target := g.nextTarget(a, i)
	x, y := a.xy(i, target)
	col := g.template.GetXY(x, y)
	if g.Colour != nil {
		col = g.Colour()
	}
	g.drops = append(g.drops, drop{across: i, depth: a.depth() - 1, target: target, colour: col})
	if target == a.depth()-1 {
		// Lands where it spawns.
		g.drops = g.drops[:len(g.drops)-1]
		g.filled.SetXY(x, y, col)
	}
}

func (g *GravityFillTemplate) Run() canvas.Canvas {
	if g.interval.due() && !g.Finished() {
		g.step()
	}
	out := g.filled.Clone()
	a := axesOf(&out, g.Direction)
	for _, d := range g.drops {
		x, y := a.xy(d.across, d.depth)
		out.SetXY(x, y, d.colour)
	}
	return out
}

func (g *GravityFillTemplate) Finished() bool {
	if len(g.drops) > 0 {
		return false
	}
	a := axesOf(&g.template, g.Direction)
	for i := range a.across() {
		if g.nextTarget(a, i) >= 0 {
			return false
		}
	}
	return true
}

func (g *GravityFillTemplate) Reset() {
	g.SetTemplate(g.template)
}
