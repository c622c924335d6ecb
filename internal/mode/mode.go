// Package mode sequences what the display shows. A Manager owns a ring of
// modes; exactly one is active and owns the buttons until the mode button
// moves on to the next.
package mode

import (
	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/filter"
	"github.com/chrissbarr/pixelclock/internal/input"
	"github.com/chrissbarr/pixelclock/internal/logging"
)

// Mode is one top-level screen.
type Mode interface {
	Name() string
	// MoveInto activates the mode. It binds its buttons through b.
	MoveInto(b *Bindings)
	Run() canvas.Canvas
	MoveOut()
}

// Bindings is the button surface handed to the active mode. Reset clears
// every handler and restores the manager's own ones, so a mode can rebind
// from scratch whenever its screen changes.
type Bindings struct {
	d      *input.Dispatcher
	global func(*input.Dispatcher)
}

func (b *Bindings) On(btn input.Button, ev input.Event, fn func()) {
	b.d.On(btn, ev, fn)
}

func (b *Bindings) Reset() {
	b.d.Clear()
	if b.global != nil {
		b.global(b.d)
	}
}

// Settings are the user-adjustable values shared between modes.
type Settings struct {
	// Brightness scales every frame, in (0, 1].
	Brightness float64
	// Filters are the selectable post filters; FilterIndex -1 selects none.
	Filters     []filter.Filter
	FilterIndex int
	// ClockStyles names the clock faces; ClockStyle indexes them.
	ClockStyles []string
	ClockStyle  int
	AutoAdvance bool
}

// DefaultSettings returns full brightness with no filter.
func DefaultSettings() *Settings {
	return &Settings{Brightness: 1, FilterIndex: -1, AutoAdvance: true}
}

// Filter returns the selected post filter, or nil.
func (s *Settings) Filter() filter.Filter {
	if s.FilterIndex < 0 || s.FilterIndex >= len(s.Filters) {
		return nil
	}
	return s.Filters[s.FilterIndex]
}

// FilterName names the selected filter.
func (s *Settings) FilterName() string {
	if f := s.Filter(); f != nil {
		return f.Name()
	}
	return "none"
}

// Chain is the filter applied to every frame: the selected filter, then
// brightness.
func (s *Settings) Chain() filter.Chain {
	return filter.Chain{s.Filter(), filter.Brightness{Level: s.Brightness}}
}

// Manager runs the active mode and switches modes on the mode button.
type Manager struct {
	modes      []Mode
	index      int
	dispatcher *input.Dispatcher
	bindings   *Bindings
	settings   *Settings
	width      int
	height     int
}

// NewManager activates the first of modes.
func NewManager(w, h int, d *input.Dispatcher, settings *Settings, modes ...Mode) *Manager {
	if settings == nil {
		settings = DefaultSettings()
	}
	m := &Manager{
		modes:      modes,
		dispatcher: d,
		settings:   settings,
		width:      w,
		height:     h,
	}
	m.bindings = &Bindings{d: d, global: m.bindGlobal}
	m.bindings.Reset()
	if len(m.modes) > 0 {
		m.modes[0].MoveInto(m.bindings)
	}
	return m
}

func (m *Manager) bindGlobal(d *input.Dispatcher) {
	d.On(input.Mode, input.Tap, m.CycleMode)
}

func (m *Manager) Index() int                    { return m.index }
func (m *Manager) Len() int                      { return len(m.modes) }
func (m *Manager) Settings() *Settings           { return m.settings }
func (m *Manager) Dispatcher() *input.Dispatcher { return m.dispatcher }

// Active returns the current mode, or nil with no modes.
func (m *Manager) Active() Mode {
	if len(m.modes) == 0 {
		return nil
	}
	return m.modes[m.index]
}

// CycleMode leaves the current mode and enters the next, wrapping at the
// end.
func (m *Manager) CycleMode() {
	if len(m.modes) == 0 {
		return
	}
	from := m.modes[m.index]
	from.MoveOut()
	m.index = (m.index + 1) % len(m.modes)
	m.bindings.Reset()
	to := m.modes[m.index]
	to.MoveInto(m.bindings)
	logging.Logger().Debug("mode switch", "from", from.Name(), "to", to.Name())
}

// Dispatch forwards a button event to whatever is bound.
func (m *Manager) Dispatch(b input.Button, e input.Event) bool {
	return m.dispatcher.Dispatch(b, e)
}

// Run renders the active mode through the settings filters.
func (m *Manager) Run() canvas.Canvas {
	active := m.Active()
	if active == nil {
		return canvas.New(m.width, m.height)
	}
	return m.settings.Chain().Apply(active.Run())
}
