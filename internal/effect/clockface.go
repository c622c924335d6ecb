package effect

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
)

// FormatTime renders the time as HH:MM. In 12 hour mode the hour is
// padded with a space so the layout does not shift.
func FormatTime(t clock.TimeOfDay, hour24 bool) string {
	if hour24 {
		return fmt.Sprintf("%02d:%02d", t.Hour24, t.Minute)
	}
	return fmt.Sprintf("%2d:%02d", t.Hour12, t.Minute)
}

// renderTime draws FormatTime(t) centred on c. Digits take digits' colours
// in turn; the colon is drawn in colon's colour, which may be black to hide
// it.
func renderTime(c *canvas.Canvas, t clock.TimeOfDay, hour24 bool, digits []canvas.Colour, colon canvas.Colour) {
	text := FormatTime(t, hour24)
	font := canvas.Font3x5
	colours := make([]canvas.Colour, 0, len(text))
	n := 0
	for _, r := range text {
		if r == ':' {
			colours = append(colours, colon)
			continue
		}
		colours = append(colours, digits[n%len(digits)])
		n++
	}
	x := (c.Width() - font.TextWidth(text, 1)) / 2
	y := (c.Height() - font.Height) / 2
	c.ShowCharacters(text, colours, x, y, 1, font)
}

type minute struct{ hour, minute int }

func minuteOf(t clock.TimeOfDay) minute { return minute{t.Hour24, t.Minute} }

// digitColours draws one colour per digit plus one for the colon.
func digitColours(gen ColourGenerator) ([]canvas.Colour, canvas.Colour) {
	digits := make([]canvas.Colour, 4)
	for i := range digits {
		digits[i] = gen()
	}
	return digits, digits[0]
}

// SimpleClockFace shows HH:MM with a colon that blinks off on odd seconds.
// It finishes when the minute changes.
type SimpleClockFace struct {
	canvas  canvas.Canvas
	clock   clock.Source
	shown   minute
	painted minute
	digits  []canvas.Colour
	colon   canvas.Colour

	Hour24 bool
	Colour ColourGenerator
}

func NewSimpleClockFace(w, h int, src clock.Source, hour24 bool, gen ColourGenerator) *SimpleClockFace {
	f := &SimpleClockFace{
		canvas: canvas.New(w, h),
		clock:  src,
		Hour24: hour24,
		Colour: orWhite(gen),
	}
	f.Reset()
	return f
}

func (f *SimpleClockFace) Run() canvas.Canvas {
	t := clock.Decompose(f.clock.Now())
	if m := minuteOf(t); m != f.painted {
		f.painted = m
		f.digits, f.colon = digitColours(f.Colour)
	}
	colon := f.colon
	if t.Second%2 == 1 {
		colon = canvas.Black
	}
	f.canvas.Clear()
	renderTime(&f.canvas, t, f.Hour24, f.digits, colon)
	return f.canvas.Clone()
}

func (f *SimpleClockFace) Finished() bool {
	return minuteOf(clock.Decompose(f.clock.Now())) != f.shown
}

func (f *SimpleClockFace) Reset() {
	f.shown = minuteOf(clock.Decompose(f.clock.Now()))
	f.painted = f.shown
	f.digits, f.colon = digitColours(f.Colour)
}

// ClockPhase is the stage a GravityClockFace is in.
type ClockPhase int

const (
	Filling ClockPhase = iota
	Showing
	Draining
)

func (p ClockPhase) String() string {
	switch p {
	case Showing:
		return "showing"
	case Draining:
		return "draining"
	default:
		return "filling"
	}
}

// GravityClockFace builds the time out of falling pixels. When the minute
// changes the digits drop off the bottom and the new time falls in.
type GravityClockFace struct {
	w, h    int
	clock   clock.Source
	fill    *GravityFillTemplate
	drain   *Gravity
	phase   ClockPhase
	shown   minute
	changed bool

	Hour24 bool
	Colour ColourGenerator
}

func NewGravityClockFace(w, h int, src clock.Source, rng *rand.Rand, every time.Duration, hour24 bool, gen ColourGenerator) *GravityClockFace {
	f := &GravityClockFace{
		w:      w,
		h:      h,
		clock:  src,
		drain:  NewGravity(src, every, Down, true),
		Hour24: hour24,
		Colour: orWhite(gen),
	}
	f.fill = NewGravityFillTemplate(canvas.New(w, h), src, rng, every, Down)
	f.Reset()
	return f
}

func (f *GravityClockFace) Phase() ClockPhase { return f.phase }

func (f *GravityClockFace) template() canvas.Canvas {
	t := clock.Decompose(f.clock.Now())
	f.shown = minuteOf(t)
	c := canvas.New(f.w, f.h)
	digits, colon := digitColours(f.Colour)
	renderTime(&c, t, f.Hour24, digits, colon)
	return c
}

func (f *GravityClockFace) Run() canvas.Canvas {
	switch f.phase {
	case Filling:
		frame := f.fill.Run()
		if f.fill.Finished() {
			f.phase = Showing
		}
		return frame
	case Showing:
		if minuteOf(clock.Decompose(f.clock.Now())) != f.shown {
			f.drain.SetCanvas(f.fill.Template())
			f.phase = Draining
		}
		return f.fill.Template()
	default:
		frame := f.drain.Run()
		if f.drain.Finished() {
			f.fill.SetTemplate(f.template())
			f.phase = Filling
			f.changed = true
		}
		return frame
	}
}

// Finished reports a completed change: the old time has drained and the
// new one has filled in.
func (f *GravityClockFace) Finished() bool {
	return f.changed && f.phase == Showing
}

func (f *GravityClockFace) Reset() {
	f.fill.SetTemplate(f.template())
	f.phase = Filling
	f.changed = false
}
