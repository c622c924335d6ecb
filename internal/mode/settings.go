package mode

import (
	"fmt"
	"math"
	"strconv"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/input"
	"github.com/chrissbarr/pixelclock/internal/life"
	"github.com/chrissbarr/pixelclock/internal/logging"
)

// Page is one settings screen. Left and Right adjust its value; Render
// draws it.
type Page struct {
	Title string
	// Label is the short name shown in the menu.
	Label  string
	Left   func()
	Right  func()
	Render func(c *canvas.Canvas)
}

// SettingsMode is a stack of pages rooted at a menu. Select opens the
// highlighted page and a long press on Select goes back. Every push and pop
// rebinds the buttons for the new top page.
type SettingsMode struct {
	width    int
	height   int
	settings *Settings
	scores   func() []life.Score
	bindings *Bindings
	root     *Page
	items    []*Page
	cursor   int
	stack    []*Page
	scoreIdx int
}

// NewSettingsMode builds the menu. scores may be nil when no life effect
// is configured.
func NewSettingsMode(w, h int, settings *Settings, scores func() []life.Score) *SettingsMode {
	m := &SettingsMode{width: w, height: h, settings: settings, scores: scores}
	m.items = []*Page{
		m.brightnessPage(),
		m.filterPage(),
		m.clockPage(),
		m.autoAdvancePage(),
		m.scoresPage(),
	}
	m.root = &Page{
		Title: "menu",
		Left:  func() { m.cursor = (m.cursor + len(m.items) - 1) % len(m.items) },
		Right: func() { m.cursor = (m.cursor + 1) % len(m.items) },
		Render: func(c *canvas.Canvas) {
			m.text(c, m.items[m.cursor].Label, canvas.White)
		},
	}
	m.stack = []*Page{m.root}
	return m
}

func (m *SettingsMode) Name() string { return "settings" }

// Top returns the visible page.
func (m *SettingsMode) Top() *Page { return m.stack[len(m.stack)-1] }

// Depth returns the number of stacked pages, 1 at the menu.
func (m *SettingsMode) Depth() int { return len(m.stack) }

// Highlighted returns the menu entry under the cursor.
func (m *SettingsMode) Highlighted() *Page { return m.items[m.cursor] }

// Push shows p on top of the stack.
func (m *SettingsMode) Push(p *Page) {
	m.stack = append(m.stack, p)
	logging.Logger().Debug("settings page", "open", p.Title)
	m.bind()
}

// Pop returns to the previous page. The menu itself is never popped.
func (m *SettingsMode) Pop() {
	if len(m.stack) <= 1 {
		return
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.bind()
}

func (m *SettingsMode) bind() {
	if m.bindings == nil {
		return
	}
	b := m.bindings
	b.Reset()
	top := m.Top()
	b.On(input.Left, input.Tap, top.Left)
	b.On(input.Right, input.Tap, top.Right)
	if top == m.root {
		b.On(input.Select, input.Tap, func() { m.Push(m.Highlighted()) })
	} else {
		b.On(input.Select, input.LongPress, m.Pop)
	}
}

func (m *SettingsMode) MoveInto(b *Bindings) {
	m.bindings = b
	m.stack = m.stack[:1]
	m.bind()
}

func (m *SettingsMode) MoveOut() {
	m.bindings = nil
}

func (m *SettingsMode) Run() canvas.Canvas {
	c := canvas.New(m.width, m.height)
	if top := m.Top(); top.Render != nil {
		top.Render(&c)
	}
	return c
}

func (m *SettingsMode) text(c *canvas.Canvas, s string, col canvas.Colour) {
	font := canvas.Font3x5
	x := (c.Width() - font.TextWidth(s, 1)) / 2
	y := (c.Height() - font.Height) / 2
	c.ShowCharacters(s, []canvas.Colour{col}, x, y, 1, font)
}

func (m *SettingsMode) brightnessPage() *Page {
	s := m.settings
	adjust := func(delta float64) {
		v := math.Round((s.Brightness+delta)*10) / 10
		s.Brightness = math.Max(0.1, math.Min(1, v))
	}
	return &Page{
		Title: "brightness",
		Label: "BRI",
		Left:  func() { adjust(-0.1) },
		Right: func() { adjust(0.1) },
		Render: func(c *canvas.Canvas) {
			m.text(c, fmt.Sprintf("%d%%", int(math.Round(s.Brightness*100))), canvas.Yellow)
		},
	}
}

func (m *SettingsMode) filterPage() *Page {
	s := m.settings
	cycle := func(delta int) {
		// -1 is "no filter", so there are len+1 choices.
		n := len(s.Filters) + 1
		s.FilterIndex = (s.FilterIndex+1+delta+n)%n - 1
	}
	return &Page{
		Title: "filter",
		Label: "FLT",
		Left:  func() { cycle(-1) },
		Right: func() { cycle(1) },
		Render: func(c *canvas.Canvas) {
			f := s.Filter()
			if f == nil {
				m.text(c, "OFF", canvas.White)
				return
			}
			c.Fill(canvas.White)
			*c = f.Apply(*c)
		},
	}
}

func (m *SettingsMode) clockPage() *Page {
	s := m.settings
	cycle := func(delta int) {
		if n := len(s.ClockStyles); n > 0 {
			s.ClockStyle = ((s.ClockStyle+delta)%n + n) % n
		}
	}
	return &Page{
		Title: "clock style",
		Label: "CLK",
		Left:  func() { cycle(-1) },
		Right: func() { cycle(1) },
		Render: func(c *canvas.Canvas) {
			m.text(c, "C"+strconv.Itoa(s.ClockStyle+1), canvas.Cyan)
		},
	}
}

func (m *SettingsMode) autoAdvancePage() *Page {
	s := m.settings
	toggle := func() { s.AutoAdvance = !s.AutoAdvance }
	return &Page{
		Title: "auto advance",
		Label: "AUT",
		Left:  toggle,
		Right: toggle,
		Render: func(c *canvas.Canvas) {
			if s.AutoAdvance {
				m.text(c, "ON", canvas.Green)
				return
			}
			m.text(c, "OFF", canvas.Red)
		},
	}
}

func (m *SettingsMode) lifeScores() []life.Score {
	if m.scores == nil {
		return nil
	}
	return m.scores()
}

func (m *SettingsMode) scoresPage() *Page {
	move := func(delta int) {
		if n := len(m.lifeScores()); n > 0 {
			m.scoreIdx = ((m.scoreIdx+delta)%n + n) % n
		}
	}
	return &Page{
		Title: "life scores",
		Label: "GOL",
		Left:  func() { move(-1) },
		Right: func() { move(1) },
		Render: func(c *canvas.Canvas) {
			scores := m.lifeScores()
			if len(scores) == 0 {
				m.text(c, "-", canvas.Purple)
				return
			}
			sc := scores[min(m.scoreIdx, len(scores)-1)]
			m.text(c, strconv.Itoa(sc.Lifespan), canvas.Purple)
		},
	}
}
