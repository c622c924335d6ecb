package effect

import (
	"math/rand"
	"testing"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
)

func TestTextScrollerCrossesCanvas(t *testing.T) {
	clk := clock.NewManual(epoch)
	s := NewTextScroller(5, 5, clk, step, "1", canvas.Red)

	if out := s.Run(); !out.Empty() {
		t.Fatal("expected text to start off-canvas right")
	}
	// Width 5 plus glyph width 3 means 8 steps to leave on the left.
	for i := range 7 {
		clk.Advance(step)
		s.Run()
		if s.Finished() {
			t.Fatalf("finished early after %d steps", i+1)
		}
	}
	clk.Advance(step)
	if out := s.Run(); !s.Finished() || !out.Empty() {
		t.Fatal("expected text fully off-canvas and finished")
	}
	clk.Advance(step)
	s.Run()
	if !s.Finished() {
		t.Fatal("expected scroller to stay finished until reset")
	}
	s.Reset()
	if s.Finished() {
		t.Fatal("expected reset to restart the scroll")
	}
}

func TestTextScrollerShowsTextMidway(t *testing.T) {
	clk := clock.NewManual(epoch)
	s := NewTextScroller(5, 5, clk, step, "1", canvas.Green)
	var out canvas.Canvas
	for range 4 {
		clk.Advance(step)
		out = s.Run()
	}
	// Offset 1: '1' top row is 010, so column 2.
	if out.GetXY(2, 0) != canvas.Green {
		t.Fatalf("expected glyph at offset 1, got %v", out.GetXY(2, 0))
	}
}

func TestRepeatingTextScrollerQueriesProvider(t *testing.T) {
	clk := clock.NewManual(epoch)
	calls := 0
	provider := func() string {
		calls++
		return "1"
	}
	r := NewRepeatingTextScroller(5, 5, clk, step, provider, 2)
	for i := 0; i < 100 && !r.Finished(); i++ {
		clk.Advance(step)
		r.Run()
	}
	if !r.Finished() || r.Passes() != 2 {
		t.Fatalf("expected 2 passes, got %d", r.Passes())
	}
	if calls != 2 {
		t.Fatalf("expected provider called once per pass, got %d", calls)
	}
}

func TestSimpleClockFace(t *testing.T) {
	clk := clock.NewManual(epoch)
	f := NewSimpleClockFace(17, 5, clk, true, Solid(canvas.Cyan))

	out := f.Run()
	if out.GetXY(8, 1) != canvas.Cyan {
		t.Fatal("expected the colon lit on an even second")
	}
	if out.GetXY(1, 0) != canvas.Cyan {
		t.Fatal("expected the first digit drawn")
	}
	clk.Advance(time.Second)
	if out := f.Run(); !out.GetXY(8, 1).IsBlack() {
		t.Fatal("expected the colon hidden on an odd second")
	}
	if f.Finished() {
		t.Fatal("expected no finish within the minute")
	}
	clk.Advance(59 * time.Second)
	if !f.Finished() {
		t.Fatal("expected a finish once the minute changed")
	}
	f.Reset()
	if f.Finished() {
		t.Fatal("expected reset to adopt the current minute")
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		tod    clock.TimeOfDay
		hour24 bool
		want   string
	}{
		{clock.TimeOfDay{Hour12: 12, Hour24: 0, Minute: 5}, true, "00:05"},
		{clock.TimeOfDay{Hour12: 12, Hour24: 0, Minute: 5}, false, "12:05"},
		{clock.TimeOfDay{Hour12: 9, Hour24: 21, Minute: 30}, false, " 9:30"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.tod, tt.hour24); got != tt.want {
			t.Fatalf("FormatTime(%+v, %v) = %q, want %q", tt.tod, tt.hour24, got, tt.want)
		}
	}
}

func TestGravityClockFaceCycle(t *testing.T) {
	clk := clock.NewManual(epoch)
	f := NewGravityClockFace(17, 5, clk, rand.New(rand.NewSource(3)), step, true, Solid(canvas.Orange))

	waitFor := func(phase ClockPhase) canvas.Canvas {
		t.Helper()
		var out canvas.Canvas
		for range 5000 {
			clk.Advance(step)
			out = f.Run()
			if f.Phase() == phase {
				return out
			}
		}
		t.Fatalf("never reached phase %v", phase)
		return out
	}

	waitFor(Showing)
	shown := f.Run()
	want := canvas.New(17, 5)
	renderTime(&want, clock.Decompose(epoch), true, []canvas.Colour{canvas.Orange}, canvas.Orange)
	if !shown.Equal(want) {
		t.Fatal("expected the filled face to show 12:34")
	}
	if f.Finished() {
		t.Fatal("expected the first fill not to count as a change")
	}

	clk.Set(epoch.Add(time.Minute))
	f.Run()
	if f.Phase() != Draining {
		t.Fatalf("expected draining after the minute changed, got %v", f.Phase())
	}
	waitFor(Showing)
	if !f.Finished() {
		t.Fatal("expected a finish after the change cycle")
	}
}
