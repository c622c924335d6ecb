// Package ui runs the clock inside a terminal: a bubbletea program whose
// tick drives the mode manager and whose keys stand in for the buttons.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chrissbarr/pixelclock/internal/logging"
	"github.com/chrissbarr/pixelclock/internal/mode"
	"github.com/chrissbarr/pixelclock/internal/sink"
)

// volumeStep is how far one volume key moves the speaker volume.
const volumeStep = 0.1

// Controls steer a stream playing through the speakers.
type Controls interface {
	TogglePause()
	Paused() bool
	Volume() float64
	SetVolume(v float64)
}

// Audio describes the optional sound source behind the visualizers.
type Audio struct {
	Title string
	// Progress returns the playback position in [0, 1]. Nil hides the bar.
	Progress func() float64
	// Controls is nil unless the stream is audible; without it the pause
	// and volume keys are disabled.
	Controls Controls
	// Done closes when the stream ends.
	Done <-chan struct{}
}

// Model is the bubbletea model for the pixel clock.
type Model struct {
	manager  *mode.Manager
	sink     *sink.Terminal
	interval time.Duration
	audio    Audio

	keys     *keyMap
	help     help.Model
	progress progress.Model

	frames   uint64
	ended    bool
	quitting bool
	err      error
	width    int
}

// New creates a model that renders m at fps frames per second.
func New(m *mode.Manager, s *sink.Terminal, fps int, a Audio) Model {
	keys := defaultKeyMap()
	audible := a.Controls != nil
	keys.Pause.SetEnabled(audible)
	keys.VolumeUp.SetEnabled(audible)
	keys.VolumeDown.SetEnabled(audible)
	return Model{
		manager:  m,
		sink:     s,
		interval: time.Second / time.Duration(max(fps, 1)),
		audio:    a,
		keys:     keys,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error { return m.err }

// Frames returns how many frames have been shown.
func (m Model) Frames() uint64 { return m.frames }

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), waitDone(m.audio.Done), tea.SetWindowTitle("pixelclock"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		if err := m.sink.Show(m.manager.Run()); err != nil {
			m.err = fmt.Errorf("showing frame: %w", err)
			m.quitting = true
			return m, tea.Quit
		}
		m.frames++
		return m, tickCmd(m.interval)

	case audioEndedMsg:
		m.ended = true
		logging.Logger().Info("audio ended", "title", m.audio.Title)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = max(min(msg.Width-4, 40), 10)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		m.audio.Controls.TogglePause()
		return m, nil
	case key.Matches(msg, m.keys.VolumeUp):
		m.audio.Controls.SetVolume(m.audio.Controls.Volume() + volumeStep)
		return m, nil
	case key.Matches(msg, m.keys.VolumeDown):
		m.audio.Controls.SetVolume(m.audio.Controls.Volume() - volumeStep)
		return m, nil
	}
	if b, ev, ok := m.keys.button(msg); ok {
		if !m.manager.Dispatch(b, ev) {
			logging.Logger().Debug("unbound button", "button", b, "event", ev)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + headerStyle.Render("pixelclock") + "\n\n")

	status := "no modes"
	if active := m.manager.Active(); active != nil {
		status = fmt.Sprintf("%s  %d/%d", active.Name(), m.manager.Index()+1, m.manager.Len())
	}
	if name := m.manager.Settings().FilterName(); name != "" {
		status += "  filter " + name
	}
	b.WriteString("  " + titleStyle.Render(status) + "\n\n")

	for _, line := range strings.Split(matrixStyle.Render(m.sink.View()), "\n") {
		b.WriteString("  " + line + "\n")
	}

	if m.audio.Title != "" {
		state := "now playing"
		c := m.audio.Controls
		switch {
		case m.ended:
			state = "ended"
		case c != nil && c.Paused():
			state = "paused"
		}
		line := state + "  " + m.audio.Title
		if c != nil {
			line += fmt.Sprintf("  vol %d%%", int(math.Round(c.Volume()*100)))
		}
		b.WriteString("\n  " + statusStyle.Render(line) + "\n")
		if m.audio.Progress != nil {
			b.WriteString("  " + m.progress.ViewAs(m.audio.Progress()) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n  " + errorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n  " + timeStyle.Render(fmt.Sprintf("frame %d", m.frames)) + "\n")
	b.WriteString("  " + m.help.View(m.keys) + "\n")
	return b.String()
}
