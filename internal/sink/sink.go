// Package sink is where finished frames leave the effects core.
package sink

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/chrissbarr/pixelclock/internal/canvas"
)

// Sink receives display-sized frames.
type Sink interface {
	Show(frame canvas.Canvas) error
}

const (
	litCell  = "██"
	darkCell = "· "
)

var darkStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#333333"})

// Terminal renders frames as rows of coloured two-cell blocks.
type Terminal struct {
	width  int
	height int

	mu   sync.Mutex
	last string
}

// NewTerminal returns a sink for a w×h display.
func NewTerminal(w, h int) *Terminal {
	t := &Terminal{width: w, height: h}
	t.last = t.render(canvas.New(w, h))
	return t
}

func (t *Terminal) Width() int  { return t.width }
func (t *Terminal) Height() int { return t.height }

// Show renders frame, cropped or padded with black to the display size.
func (t *Terminal) Show(frame canvas.Canvas) error {
	if frame.Width() != t.width || frame.Height() != t.height {
		frame = canvas.Crop(frame, 0, 0, t.width, t.height)
	}
	out := t.render(frame)
	t.mu.Lock()
	t.last = out
	t.mu.Unlock()
	return nil
}

// View returns the most recently shown frame.
func (t *Terminal) View() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

func (t *Terminal) render(frame canvas.Canvas) string {
	var b strings.Builder
	for y := range t.height {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range t.width {
			b.WriteString(cell(frame.GetXY(x, y)))
		}
	}
	return b.String()
}

func cell(c canvas.Colour) string {
	if c.IsBlack() {
		return darkStyle.Render(darkCell)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(litCell)
}
