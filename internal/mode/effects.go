package mode

import (
	"math"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
	"github.com/chrissbarr/pixelclock/internal/effect"
	"github.com/chrissbarr/pixelclock/internal/input"
	"github.com/chrissbarr/pixelclock/internal/logging"
)

// Ease is a cubic ease-in-out over t in [0, 1].
func Ease(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 4 * t * t * t
	default:
		u := 2*t - 2
		return 1 + 0.5*u*u*u
	}
}

// Entry is a named gallery effect.
type Entry struct {
	Name   string
	Effect effect.Effect
}

// GalleryState is whether the gallery is showing one effect or sliding
// between two.
type GalleryState int

const (
	Stable GalleryState = iota
	Transition
)

func (s GalleryState) String() string {
	if s == Transition {
		return "transition"
	}
	return "stable"
}

// EffectsMode is a gallery of effects. Left and Right slide to the
// neighbouring effect; with auto-advance on, a finished effect slides to the
// next on its own.
type EffectsMode struct {
	entries  []Entry
	settings *Settings
	clock    clock.Source
	width    int
	height   int
	index    int
	state    GalleryState
	dir      int
	start    time.Time

	Duration time.Duration
}

func NewEffectsMode(w, h int, src clock.Source, settings *Settings, duration time.Duration, entries ...Entry) *EffectsMode {
	return &EffectsMode{
		entries:  entries,
		settings: settings,
		clock:    src,
		width:    w,
		height:   h,
		Duration: duration,
	}
}

func (m *EffectsMode) Name() string        { return "effects" }
func (m *EffectsMode) Index() int          { return m.index }
func (m *EffectsMode) State() GalleryState { return m.state }

// Current returns the entry being shown, or the zero Entry when empty.
func (m *EffectsMode) Current() Entry {
	if len(m.entries) == 0 {
		return Entry{}
	}
	return m.entries[m.index]
}

func (m *EffectsMode) wrap(i int) int {
	n := len(m.entries)
	return ((i % n) + n) % n
}

// Slide starts a transition towards the neighbour in direction dir (+1 or
// -1). It is ignored while a transition is running.
func (m *EffectsMode) Slide(dir int) {
	if m.state == Transition || len(m.entries) < 2 {
		return
	}
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}
	m.dir = dir
	m.state = Transition
	m.start = m.clock.Now()
	target := m.entries[m.wrap(m.index+dir)]
	target.Effect.Reset()
	logging.Logger().Debug("gallery transition", "from", m.Current().Name, "to", target.Name)
}

func (m *EffectsMode) MoveInto(b *Bindings) {
	b.On(input.Left, input.Tap, func() { m.Slide(-1) })
	b.On(input.Right, input.Tap, func() { m.Slide(1) })
	b.On(input.Select, input.Tap, func() { m.settings.AutoAdvance = !m.settings.AutoAdvance })
	m.state = Stable
	if len(m.entries) > 0 {
		m.Current().Effect.Reset()
	}
}

func (m *EffectsMode) MoveOut() {
	if m.state == Transition {
		m.index = m.wrap(m.index + m.dir)
		m.state = Stable
	}
}

func (m *EffectsMode) Run() canvas.Canvas {
	if len(m.entries) == 0 {
		return canvas.New(m.width, m.height)
	}
	if m.state == Transition {
		return m.runTransition()
	}
	cur := m.Current().Effect
	frame := cur.Run()
	if m.settings.AutoAdvance && cur.Finished() {
		m.Slide(1)
	}
	return frame
}

// runTransition lays previous, current and next side by side on a strip
// three screens wide and crops a screen-sized window sliding from the
// middle towards the target. Only the current effect and the target run;
// the other side stays dark.
func (m *EffectsMode) runTransition() canvas.Canvas {
	t := 1.0
	if m.Duration > 0 {
		t = float64(m.clock.Now().Sub(m.start)) / float64(m.Duration)
	}
	if t >= 1 {
		m.index = m.wrap(m.index + m.dir)
		m.state = Stable
		return m.Current().Effect.Run()
	}

	w := m.width
	strip := canvas.New(3*w, m.height)
	strip = canvas.Blit(strip, m.Current().Effect.Run(), w, 0)
	target := m.entries[m.wrap(m.index+m.dir)].Effect.Run()
	strip = canvas.Blit(strip, target, w+m.dir*w, 0)

	offset := w + int(math.Round(float64(m.dir)*Ease(t)*float64(w)))
	return canvas.Crop(strip, offset, 0, w, m.height)
}
