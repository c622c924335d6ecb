package effect

import (
	"math"
	"time"

	"github.com/chrissbarr/pixelclock/internal/audio"
	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
)

// listener is the part every visualizer shares: a feed and how many of its
// newest records to average.
type listener struct {
	feed    *audio.Feed
	average int
}

func newListener(feed *audio.Feed, average int) listener {
	if average < 1 {
		average = 3
	}
	return listener{feed: feed, average: min(average, audio.MaxAverage)}
}

func (l listener) sample() audio.Characteristics {
	if l.feed == nil {
		return audio.Characteristics{LeftDB: audio.SilenceDB, RightDB: audio.SilenceDB}
	}
	return l.feed.Average(l.average)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// resample linearly interpolates bins across n columns.
func resample(bins []float64, n int) []float64 {
	out := make([]float64, n)
	if len(bins) == 0 || n == 0 {
		return out
	}
	if len(bins) == 1 || n == 1 {
		for i := range out {
			out[i] = bins[0]
		}
		return out
	}
	last := len(bins) - 1
	for c := range n {
		frac := float64(c) / float64(n-1) * float64(last)
		lo := int(frac)
		hi := min(lo+1, last)
		t := frac - float64(lo)
		out[c] = bins[lo]*(1-t) + bins[hi]*t
	}
	return out
}

// SpectrumDisplay draws one spring-smoothed bar per column of the spectrum.
// Bars are coloured by height on the heat gradient, with the top pixel
// dimmed by the bar's fractional part.
type SpectrumDisplay struct {
	listener
	canvas canvas.Canvas
	smooth levelSprings
}

func NewSpectrumDisplay(w, h int, feed *audio.Feed, average, fps int) *SpectrumDisplay {
	d := &SpectrumDisplay{
		listener: newListener(feed, average),
		canvas:   canvas.New(w, h),
		smooth:   newLevelSprings(fps, w, 8.5, 0.72),
	}
	return d
}

func (d *SpectrumDisplay) Run() canvas.Canvas {
	w, h := d.canvas.Width(), d.canvas.Height()
	targets := resample(d.sample().Spectrum, w)
	d.canvas.Clear()
	for x, v := range d.smooth.stepAll(targets) {
		level := v * float64(h)
		for row := range h {
			fill := clamp01(level - float64(row))
			if fill <= 0 {
				break
			}
			c := canvas.Heat(float64(row) / math.Max(float64(h-1), 1))
			d.canvas.SetXY(x, h-1-row, c.Scale(fill))
		}
	}
	return d.canvas.Clone()
}

func (d *SpectrumDisplay) Finished() bool { return false }

func (d *SpectrumDisplay) Reset() {
	d.smooth.reset()
	d.canvas.Clear()
}

// VolumeDisplay draws the left channel as a bar across the top half and
// the right channel across the bottom half.
type VolumeDisplay struct {
	listener
	canvas canvas.Canvas
	smooth levelSprings
}

func NewVolumeDisplay(w, h int, feed *audio.Feed, average, fps int) *VolumeDisplay {
	d := &VolumeDisplay{
		listener: newListener(feed, average),
		canvas:   canvas.New(w, h),
		smooth:   newLevelSprings(fps, 2, 10, 0.8),
	}
	return d
}

func (d *VolumeDisplay) bar(level float64, top, rows int) {
	w := d.canvas.Width()
	length := level * float64(w)
	for x := range w {
		fill := clamp01(length - float64(x))
		if fill <= 0 {
			break
		}
		c := canvas.Heat(float64(x) / math.Max(float64(w-1), 1)).Scale(fill)
		for y := top; y < top+rows; y++ {
			d.canvas.SetXY(x, y, c)
		}
	}
}

func (d *VolumeDisplay) Run() canvas.Canvas {
	s := d.sample()
	levels := d.smooth.stepAll([]float64{audio.Level(s.LeftDB), audio.Level(s.RightDB)})
	left, right := levels[0], levels[1]

	h := d.canvas.Height()
	rows := max(h/2, 1)
	d.canvas.Clear()
	d.bar(left, 0, rows)
	d.bar(right, h-rows, rows)
	return d.canvas.Clone()
}

func (d *VolumeDisplay) Finished() bool { return false }

func (d *VolumeDisplay) Reset() {
	d.smooth.reset()
	d.canvas.Clear()
}

// VolumeGraph scrolls a history of the mono level from right to left, one
// column per interval.
type VolumeGraph struct {
	listener
	canvas   canvas.Canvas
	interval interval
	history  []float64
}

func NewVolumeGraph(w, h int, feed *audio.Feed, average int, src clock.Source, every time.Duration) *VolumeGraph {
	return &VolumeGraph{
		listener: newListener(feed, average),
		canvas:   canvas.New(w, h),
		interval: newInterval(src, every),
		history:  make([]float64, w),
	}
}

func (g *VolumeGraph) Run() canvas.Canvas {
	if g.interval.due() && len(g.history) > 0 {
		copy(g.history, g.history[1:])
		g.history[len(g.history)-1] = audio.Level(g.sample().MonoDB())
	}

	h := g.canvas.Height()
	g.canvas.Clear()
	for x, level := range g.history {
		height := level * float64(h)
		c := canvas.Heat(level)
		for row := range h {
			fill := clamp01(height - float64(row))
			if fill <= 0 {
				break
			}
			g.canvas.SetXY(x, h-1-row, c.Scale(fill))
		}
	}
	return g.canvas.Clone()
}

func (g *VolumeGraph) Finished() bool { return false }

func (g *VolumeGraph) Reset() {
	clear(g.history)
	g.interval.reset()
}

// AudioWaterfall is a scrolling spectrogram. The newest spectrum enters at
// the top and older rows sink and darken.
type AudioWaterfall struct {
	listener
	canvas   canvas.Canvas
	interval interval
	smooth   levelSprings
	history  [][]float64
}

func NewAudioWaterfall(w, h int, feed *audio.Feed, average int, src clock.Source, every time.Duration) *AudioWaterfall {
	wf := &AudioWaterfall{
		listener: newListener(feed, average),
		canvas:   canvas.New(w, h),
		interval: newInterval(src, every),
		smooth:   newLevelSprings(int(time.Second/max(every, time.Millisecond)), w, 8.5, 0.72),
		history:  make([][]float64, h),
	}
	for r := range wf.history {
		wf.history[r] = make([]float64, w)
	}
	return wf
}

func (wf *AudioWaterfall) Run() canvas.Canvas {
	h := len(wf.history)
	if wf.interval.due() && h > 0 {
		line := wf.smooth.stepAll(resample(wf.sample().Spectrum, wf.canvas.Width()))
		for r := h - 1; r > 0; r-- {
			copy(wf.history[r], wf.history[r-1])
		}
		copy(wf.history[0], line)
	}

	for r, row := range wf.history {
		age := float64(r) / float64(h)
		for x, v := range row {
			if v < 0.08 {
				wf.canvas.SetXY(x, r, canvas.Black)
				continue
			}
			c := canvas.Heat(v).Scale(math.Max(v, 0.3))
			wf.canvas.SetXY(x, r, canvas.Lerp(c, canvas.Black, age*0.65))
		}
	}
	return wf.canvas.Clone()
}

func (wf *AudioWaterfall) Finished() bool { return false }

func (wf *AudioWaterfall) Reset() {
	for _, row := range wf.history {
		clear(row)
	}
	wf.smooth.reset()
	wf.canvas.Clear()
	wf.interval.reset()
}
