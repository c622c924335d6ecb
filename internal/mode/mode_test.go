package mode

import (
	"math"
	"testing"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
	"github.com/chrissbarr/pixelclock/internal/filter"
	"github.com/chrissbarr/pixelclock/internal/input"
	"github.com/chrissbarr/pixelclock/internal/life"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type stubMode struct {
	name     string
	frame    canvas.Canvas
	bindLeft bool
	entered  int
	exited   int
	leftTaps int
}

func (s *stubMode) Name() string { return s.name }

func (s *stubMode) MoveInto(b *Bindings) {
	s.entered++
	if s.bindLeft {
		b.On(input.Left, input.Tap, func() { s.leftTaps++ })
	}
}

func (s *stubMode) Run() canvas.Canvas { return s.frame.Clone() }
func (s *stubMode) MoveOut()           { s.exited++ }

type stubEffect struct {
	frame    canvas.Canvas
	finished bool
	resets   int
}

func (s *stubEffect) Run() canvas.Canvas { return s.frame.Clone() }
func (s *stubEffect) Finished() bool     { return s.finished }
func (s *stubEffect) Reset()             { s.resets++ }

func solid(w, h int, c canvas.Colour) canvas.Canvas {
	out := canvas.New(w, h)
	out.Fill(c)
	return out
}

func TestEase(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.25, 0.0625}, {0.5, 0.5}, {0.75, 0.9375}, {1, 1}, {2, 1},
	}
	for _, tt := range tests {
		if got := Ease(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("Ease(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := Ease(float64(i) / 100)
		if v < prev {
			t.Fatalf("expected Ease to be monotonic at %d", i)
		}
		prev = v
	}
}

func TestManagerCyclesAndWraps(t *testing.T) {
	d := input.NewDispatcher()
	a := &stubMode{name: "a", bindLeft: true}
	b := &stubMode{name: "b"}
	c := &stubMode{name: "c"}
	m := NewManager(4, 2, d, nil, a, b, c)

	if m.Active() != a || a.entered != 1 {
		t.Fatal("expected the first mode entered on construction")
	}
	if !d.Bound(input.Left, input.Tap) || !d.Bound(input.Mode, input.Tap) {
		t.Fatal("expected mode and manager bindings")
	}

	for range 3 {
		m.CycleMode()
	}
	if m.Index() != 0 || m.Active() != a {
		t.Fatalf("expected to wrap back to the first mode, got %d", m.Index())
	}
	if a.exited != 1 || b.entered != 1 || b.exited != 1 || c.entered != 1 || a.entered != 2 {
		t.Fatal("expected each mode entered and left once per pass")
	}
}

func TestManagerClearsBindingsOnCycle(t *testing.T) {
	d := input.NewDispatcher()
	a := &stubMode{name: "a", bindLeft: true}
	b := &stubMode{name: "b"}
	m := NewManager(4, 2, d, nil, a, b)

	if !m.Dispatch(input.Mode, input.Tap) || m.Index() != 1 {
		t.Fatal("expected the mode button to cycle")
	}
	if d.Bound(input.Left, input.Tap) {
		t.Fatal("expected the previous mode's handlers cleared")
	}
	if m.Dispatch(input.Left, input.Tap) || a.leftTaps != 0 {
		t.Fatal("expected an unbound dispatch to be a no-op")
	}
	if !d.Bound(input.Mode, input.Tap) {
		t.Fatal("expected the mode button rebound after the cycle")
	}
}

func TestManagerAppliesSettings(t *testing.T) {
	settings := DefaultSettings()
	settings.Brightness = 0.5
	settings.Filters = []filter.Filter{filter.SolidColour{Colour: canvas.Red}}
	settings.FilterIndex = 0
	mode := &stubMode{name: "a", frame: solid(2, 2, canvas.White)}
	m := NewManager(2, 2, input.NewDispatcher(), settings, mode)

	out := m.Run()
	if out.GetXY(0, 0) != canvas.Red.Scale(0.5) {
		t.Fatalf("expected filter then brightness, got %v", out.GetXY(0, 0))
	}
	if mode.frame.GetXY(0, 0) != canvas.White {
		t.Fatal("expected the mode's frame untouched")
	}
	if settings.FilterName() != "solid" {
		t.Fatalf("unexpected filter name %q", settings.FilterName())
	}

	empty := NewManager(3, 1, input.NewDispatcher(), nil)
	if out := empty.Run(); out.Width() != 3 || !out.Empty() {
		t.Fatal("expected a blank frame with no modes")
	}
	empty.CycleMode()
}

func galleryFixture(clk clock.Source) (*EffectsMode, *stubEffect, *stubEffect, *stubEffect) {
	red := &stubEffect{frame: solid(4, 1, canvas.Red)}
	green := &stubEffect{frame: solid(4, 1, canvas.Green)}
	blue := &stubEffect{frame: solid(4, 1, canvas.Blue)}
	settings := DefaultSettings()
	settings.AutoAdvance = false
	g := NewEffectsMode(4, 1, clk, settings, time.Second,
		Entry{Name: "red", Effect: red},
		Entry{Name: "green", Effect: green},
		Entry{Name: "blue", Effect: blue},
	)
	return g, red, green, blue
}

func TestGalleryTransition(t *testing.T) {
	clk := clock.NewManual(epoch)
	g, _, green, _ := galleryFixture(clk)
	d := input.NewDispatcher()
	NewManager(4, 1, d, nil, g)

	d.Dispatch(input.Right, input.Tap)
	if g.State() != Transition || green.resets != 1 {
		t.Fatal("expected a transition that resets the target")
	}
	if out := g.Run(); out.GetXY(0, 0) != canvas.Red || out.GetXY(3, 0) != canvas.Red {
		t.Fatal("expected the current effect at the start of the slide")
	}

	clk.Advance(500 * time.Millisecond)
	out := g.Run()
	if out.GetXY(1, 0) != canvas.Red || out.GetXY(2, 0) != canvas.Green {
		t.Fatalf("expected a half-way split, got %v %v", out.GetXY(1, 0), out.GetXY(2, 0))
	}
	g.Slide(1)
	if g.Index() != 0 {
		t.Fatal("expected a slide during a transition to be ignored")
	}

	clk.Advance(500 * time.Millisecond)
	out = g.Run()
	if g.State() != Stable || g.Index() != 1 || g.Current().Name != "green" {
		t.Fatal("expected the gallery to settle on the next effect")
	}
	if out.GetXY(0, 0) != canvas.Green {
		t.Fatal("expected the next effect shown")
	}
}

func TestGalleryWrapsBackwards(t *testing.T) {
	clk := clock.NewManual(epoch)
	g, _, _, blue := galleryFixture(clk)
	g.Slide(-1)
	clk.Advance(500 * time.Millisecond)
	out := g.Run()
	if out.GetXY(1, 0) != canvas.Blue || out.GetXY(2, 0) != canvas.Red {
		t.Fatalf("expected the window moving left, got %v %v", out.GetXY(1, 0), out.GetXY(2, 0))
	}
	clk.Advance(time.Second)
	g.Run()
	if g.Index() != 2 || blue.resets != 1 {
		t.Fatalf("expected to wrap to the last effect, got %d", g.Index())
	}
}

func TestGalleryAutoAdvance(t *testing.T) {
	clk := clock.NewManual(epoch)
	g, red, _, _ := galleryFixture(clk)
	red.finished = true
	g.Run()
	if g.State() != Stable {
		t.Fatal("expected no advance with auto-advance off")
	}
	g.settings.AutoAdvance = true
	g.Run()
	if g.State() != Transition {
		t.Fatal("expected a finished effect to start a transition")
	}
	g.MoveOut()
	if g.State() != Stable || g.Index() != 1 {
		t.Fatal("expected leaving the mode to complete the transition")
	}
}

func TestClockfaceModeSwitchesFaces(t *testing.T) {
	settings := DefaultSettings()
	a := &stubEffect{frame: solid(2, 1, canvas.Red)}
	b := &stubEffect{frame: solid(2, 1, canvas.Blue)}
	m := NewClockfaceMode(2, 1, settings, Face{Name: "simple", Effect: a}, Face{Name: "gravity", Effect: b})
	d := input.NewDispatcher()
	NewManager(2, 1, d, settings, m)

	if out := m.Run(); out.GetXY(0, 0) != canvas.Red || a.resets != 1 {
		t.Fatal("expected the first face reset and shown")
	}
	d.Dispatch(input.Right, input.Tap)
	if out := m.Run(); out.GetXY(0, 0) != canvas.Blue || b.resets != 1 {
		t.Fatal("expected the second face after Right")
	}
	d.Dispatch(input.Right, input.Tap)
	if settings.ClockStyle != 0 {
		t.Fatalf("expected the style to wrap, got %d", settings.ClockStyle)
	}
	d.Dispatch(input.Left, input.Tap)
	if settings.ClockStyle != 1 || m.Face().Name != "gravity" {
		t.Fatal("expected Left to wrap backwards")
	}
	if len(settings.ClockStyles) != 2 {
		t.Fatal("expected the face names published to settings")
	}
}

func TestClockfaceModeWithoutFacesIsDark(t *testing.T) {
	m := NewClockfaceMode(17, 5, DefaultSettings())
	out := m.Run()
	if out.Width() != 17 || out.Height() != 5 || !out.Empty() {
		t.Fatalf("expected a dark 17x5 frame, got %dx%d", out.Width(), out.Height())
	}
}

func TestSettingsPageStack(t *testing.T) {
	settings := DefaultSettings()
	d := input.NewDispatcher()
	s := NewSettingsMode(17, 5, settings, func() []life.Score {
		return []life.Score{{Seed: 1, Lifespan: 321}, {Seed: 2, Lifespan: 99}}
	})
	NewManager(17, 5, d, settings, s)

	if s.Depth() != 1 || s.Highlighted().Title != "brightness" {
		t.Fatal("expected the menu with brightness highlighted")
	}
	if d.Bound(input.Select, input.LongPress) {
		t.Fatal("expected no back binding on the menu")
	}
	d.Dispatch(input.Select, input.Tap)
	if s.Depth() != 2 || s.Top().Title != "brightness" {
		t.Fatal("expected Select to open the page")
	}
	if !d.Bound(input.Mode, input.Tap) || d.Bound(input.Select, input.Tap) {
		t.Fatal("expected bindings rebuilt for the page")
	}
	for range 3 {
		d.Dispatch(input.Left, input.Tap)
	}
	if math.Abs(settings.Brightness-0.7) > 1e-9 {
		t.Fatalf("expected brightness 0.7, got %v", settings.Brightness)
	}
	if out := s.Run(); out.Empty() {
		t.Fatal("expected the brightness page to draw")
	}
	d.Dispatch(input.Select, input.LongPress)
	if s.Depth() != 1 {
		t.Fatal("expected a long press to go back")
	}
	s.Pop()
	if s.Depth() != 1 {
		t.Fatal("expected the menu never popped")
	}

	// Move to the scores page.
	for range 4 {
		d.Dispatch(input.Right, input.Tap)
	}
	d.Dispatch(input.Select, input.Tap)
	if s.Top().Title != "life scores" {
		t.Fatalf("expected the scores page, got %q", s.Top().Title)
	}
	first := s.Run()
	d.Dispatch(input.Right, input.Tap)
	if second := s.Run(); second.Equal(first) {
		t.Fatal("expected Right to show the next score")
	}
}

func TestSettingsFilterCycle(t *testing.T) {
	settings := DefaultSettings()
	settings.Filters = []filter.Filter{filter.SolidColour{Colour: canvas.Red}, filter.Brightness{Level: 0.5}}
	s := NewSettingsMode(17, 5, settings, nil)
	page := s.filterPage()

	page.Right()
	if settings.FilterIndex != 0 {
		t.Fatalf("expected first filter, got %d", settings.FilterIndex)
	}
	c := canvas.New(17, 5)
	page.Render(&c)
	if c.GetXY(0, 0) != canvas.Red || !c.Full() {
		t.Fatal("expected a preview of the filter")
	}
	page.Right()
	page.Right()
	if settings.FilterIndex != -1 {
		t.Fatalf("expected to wrap to no filter, got %d", settings.FilterIndex)
	}
	page.Left()
	if settings.FilterIndex != 1 {
		t.Fatalf("expected Left to wrap to the last filter, got %d", settings.FilterIndex)
	}
}
