package mode

import (
	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/effect"
	"github.com/chrissbarr/pixelclock/internal/input"
)

// Face is a named clock face.
type Face struct {
	Name   string
	Effect effect.Effect
}

// ClockfaceMode shows one clock face; Left and Right step through them.
// The chosen face is the ClockStyle setting, so the settings page and this
// mode stay in step.
type ClockfaceMode struct {
	faces    []Face
	settings *Settings
	shown    int
	width    int
	height   int
}

// NewClockfaceMode publishes the face names as the clock styles. With no
// faces the mode shows a dark w×h frame.
func NewClockfaceMode(w, h int, settings *Settings, faces ...Face) *ClockfaceMode {
	settings.ClockStyles = settings.ClockStyles[:0]
	for _, f := range faces {
		settings.ClockStyles = append(settings.ClockStyles, f.Name)
	}
	return &ClockfaceMode{faces: faces, settings: settings, shown: -1, width: w, height: h}
}

func (m *ClockfaceMode) Name() string { return "clock" }

func (m *ClockfaceMode) current() int {
	if len(m.faces) == 0 {
		return -1
	}
	i := m.settings.ClockStyle % len(m.faces)
	if i < 0 {
		i += len(m.faces)
	}
	return i
}

// Face returns the active face.
func (m *ClockfaceMode) Face() Face {
	if i := m.current(); i >= 0 {
		return m.faces[i]
	}
	return Face{}
}

func (m *ClockfaceMode) step(delta int) {
	if len(m.faces) == 0 {
		return
	}
	m.settings.ClockStyle = (m.current() + delta + len(m.faces)) % len(m.faces)
}

func (m *ClockfaceMode) MoveInto(b *Bindings) {
	b.On(input.Left, input.Tap, func() { m.step(-1) })
	b.On(input.Right, input.Tap, func() { m.step(1) })
	m.shown = -1
}

func (m *ClockfaceMode) Run() canvas.Canvas {
	i := m.current()
	if i < 0 {
		return canvas.New(m.width, m.height)
	}
	if i != m.shown {
		m.faces[i].Effect.Reset()
		m.shown = i
	}
	return m.faces[i].Effect.Run()
}

func (m *ClockfaceMode) MoveOut() {}
