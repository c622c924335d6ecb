package effect

import (
	"math/rand"
	"testing"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
	"github.com/chrissbarr/pixelclock/internal/filter"
)

var epoch = time.Date(2024, 1, 1, 12, 34, 0, 0, time.UTC)

type stubEffect struct {
	frame    canvas.Canvas
	finished bool
	resets   int
}

func (s *stubEffect) Run() canvas.Canvas { return s.frame.Clone() }
func (s *stubEffect) Finished() bool     { return s.finished }
func (s *stubEffect) Reset()             { s.resets++ }

func TestPaletteCycles(t *testing.T) {
	gen := Palette(canvas.Red, canvas.Green)
	got := []canvas.Colour{gen(), gen(), gen()}
	if got[0] != canvas.Red || got[1] != canvas.Green || got[2] != canvas.Red {
		t.Fatalf("unexpected palette order %v", got)
	}
	if Palette()() != canvas.White {
		t.Fatal("expected an empty palette to give white")
	}
}

func TestRandomHueIsDeterministic(t *testing.T) {
	a := RandomHue(rand.New(rand.NewSource(4)))
	b := RandomHue(rand.New(rand.NewSource(4)))
	for range 5 {
		if a() != b() {
			t.Fatal("expected equal seeds to give equal colours")
		}
	}
}

func TestHueCycleAdvancesWithClock(t *testing.T) {
	clk := clock.NewManual(epoch)
	gen := HueCycle(clk, 1)
	if gen() != canvas.Red {
		t.Fatal("expected hue 0 at start")
	}
	clk.Advance(time.Second / 3)
	if got := gen(); got != canvas.Green {
		t.Fatalf("expected green a third of a turn later, got %v", got)
	}
}

func TestTimeout(t *testing.T) {
	clk := clock.NewManual(epoch)
	inner := &stubEffect{frame: canvas.New(2, 2)}
	to := NewTimeout(inner, clk, time.Second)
	if to.Inner() != inner {
		t.Fatal("expected Inner to return the wrapped effect")
	}

	clk.Advance(time.Second)
	if to.Finished() {
		t.Fatal("expected timeout to allow the full limit")
	}
	clk.Advance(time.Millisecond)
	if !to.Finished() {
		t.Fatal("expected timeout to finish past the limit")
	}
	to.Reset()
	if to.Finished() || inner.resets != 1 {
		t.Fatal("expected reset to restart the timer and the inner effect")
	}
	inner.finished = true
	if !to.Finished() {
		t.Fatal("expected an inner finish to pass through")
	}
}

func TestFilteredLeavesInnerFrameAlone(t *testing.T) {
	frame := canvas.New(2, 1)
	frame.SetXY(0, 0, canvas.White)
	inner := &stubEffect{frame: frame}
	f := NewFiltered(inner, filter.SolidColour{Colour: canvas.Red})

	out := f.Run()
	if out.GetXY(0, 0) != canvas.Red || out.GetXY(1, 0) != canvas.Black {
		t.Fatalf("expected lit pixel recoloured, got %v", out.GetXY(0, 0))
	}
	if inner.frame.GetXY(0, 0) != canvas.White {
		t.Fatal("expected inner frame untouched")
	}
}

func TestRandomFillFillsAndHonoursMask(t *testing.T) {
	clk := clock.NewManual(epoch)
	f := NewRandomFill(4, 2, clk, rand.New(rand.NewSource(1)), 10*time.Millisecond, Solid(canvas.Blue))
	for i := range 8 {
		if !f.Spawn() {
			t.Fatalf("expected spawn %d to find room", i)
		}
	}
	if f.Spawn() || !f.Finished() {
		t.Fatal("expected a full canvas to stop spawning")
	}

	f.Reset()
	f.Mask = func(_, y int) bool { return y == 0 }
	for range 20 {
		clk.Advance(10 * time.Millisecond)
		f.Run()
	}
	out := f.Run()
	if !f.Finished() {
		t.Fatal("expected masked region to fill")
	}
	for x := range 4 {
		if out.GetXY(x, 0) != canvas.Blue || !out.GetXY(x, 1).IsBlack() {
			t.Fatalf("expected only the top row filled, column %d", x)
		}
	}
}

func TestBouncingBallStaysInBoundsAndFinishes(t *testing.T) {
	clk := clock.NewManual(epoch)
	b := NewBouncingBall(17, 5, clk, rand.New(rand.NewSource(9)), 10*time.Millisecond, 3, Palette(canvas.Red, canvas.Green))
	for i := 0; i < 5000 && !b.Finished(); i++ {
		clk.Advance(10 * time.Millisecond)
		out := b.Run()
		if out.Empty() {
			t.Fatal("expected the ball to be visible")
		}
		if b.x < 0 || b.x > 16 || b.y < 0 || b.y > 4 {
			t.Fatalf("ball left the canvas at (%v, %v)", b.x, b.y)
		}
	}
	if !b.Finished() || b.Bounces() < 3 {
		t.Fatalf("expected 3 bounces, got %d", b.Bounces())
	}
	b.Reset()
	if b.Finished() {
		t.Fatal("expected reset to clear the bounce count")
	}
}
