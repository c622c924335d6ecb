package effect

import (
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
)

// TextScroller moves a line of text from just past the right edge until it
// has left the canvas on the left.
type TextScroller struct {
	canvas   canvas.Canvas
	interval interval
	text     string
	offset   int

	Colours []canvas.Colour
	Font    *canvas.Font
	Spacing int
}

func NewTextScroller(w, h int, src clock.Source, every time.Duration, text string, colours ...canvas.Colour) *TextScroller {
	s := &TextScroller{
		canvas:   canvas.New(w, h),
		interval: newInterval(src, every),
		text:     text,
		Colours:  colours,
		Font:     canvas.Font3x5,
		Spacing:  1,
	}
	s.Reset()
	return s
}

// SetText replaces the text and restarts the scroll.
func (s *TextScroller) SetText(text string) {
	s.text = text
	s.Reset()
}

func (s *TextScroller) Text() string { return s.text }

func (s *TextScroller) width() int {
	return s.Font.TextWidth(s.text, s.Spacing)
}

func (s *TextScroller) Run() canvas.Canvas {
	if !s.Finished() && s.interval.due() {
		s.offset--
	}
	s.canvas.Clear()
	y := (s.canvas.Height() - s.Font.Height) / 2
	s.canvas.ShowCharacters(s.text, s.Colours, s.offset, y, s.Spacing, s.Font)
	return s.canvas.Clone()
}

func (s *TextScroller) Finished() bool {
	return s.offset <= -s.width()
}

func (s *TextScroller) Reset() {
	s.offset = s.canvas.Width()
	s.interval.reset()
}

// RepeatingTextScroller scrolls the provider's text repeatedly, asking for
// fresh text before every pass. Repeats of 0 scrolls forever.
type RepeatingTextScroller struct {
	scroller *TextScroller
	provider func() string
	passes   int

	Repeats int
}

func NewRepeatingTextScroller(w, h int, src clock.Source, every time.Duration, provider func() string, repeats int, colours ...canvas.Colour) *RepeatingTextScroller {
	return &RepeatingTextScroller{
		scroller: NewTextScroller(w, h, src, every, provider(), colours...),
		provider: provider,
		Repeats:  repeats,
	}
}

// Passes returns the number of completed passes since the last reset.
func (r *RepeatingTextScroller) Passes() int { return r.passes }

func (r *RepeatingTextScroller) Run() canvas.Canvas {
	if r.scroller.Finished() && !r.Finished() {
		r.passes++
		if !r.Finished() {
			r.scroller.SetText(r.provider())
		}
	}
	return r.scroller.Run()
}

func (r *RepeatingTextScroller) Finished() bool {
	return r.Repeats > 0 && r.passes >= r.Repeats
}

func (r *RepeatingTextScroller) Reset() {
	r.passes = 0
	r.scroller.SetText(r.provider())
}
