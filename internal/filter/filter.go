// Package filter implements post-process transforms applied to a rendered
// canvas before it reaches the display.
package filter

import (
	"math"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
)

// Filter transforms a frame. Apply never modifies its argument; it returns
// a new canvas.
type Filter interface {
	Name() string
	Apply(in canvas.Canvas) canvas.Canvas
}

// SolidColour recolours every lit pixel. With PreserveLuminance the new
// colour is scaled by the original pixel's brightness, so dim pixels stay
// dim.
type SolidColour struct {
	Colour            canvas.Colour
	PreserveLuminance bool
}

func (f SolidColour) Name() string { return "solid" }

func (f SolidColour) Apply(in canvas.Canvas) canvas.Canvas {
	return in.Map(func(_, _ int, c canvas.Colour) canvas.Colour {
		if c.IsBlack() {
			return c
		}
		if f.PreserveLuminance {
			return f.Colour.Scale(c.Brightness())
		}
		return f.Colour
	})
}

// Axis selects the coordinate a RainbowWave travels along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// RainbowWave paints lit pixels with a hue that advances with position and
// time.
type RainbowWave struct {
	clock clock.Source
	start time.Time

	Axis Axis
	// Speed is hue turns per second.
	Speed float64
	// Wavelength is the number of pixels spanning one full hue turn.
	Wavelength        float64
	PreserveLuminance bool
}

// NewRainbowWave returns a wave along axis that starts at the current time.
func NewRainbowWave(src clock.Source, axis Axis, speed, wavelength float64, preserveLuminance bool) *RainbowWave {
	if wavelength <= 0 {
		wavelength = 17
	}
	return &RainbowWave{
		clock:             src,
		start:             src.Now(),
		Axis:              axis,
		Speed:             speed,
		Wavelength:        wavelength,
		PreserveLuminance: preserveLuminance,
	}
}

func (f *RainbowWave) Name() string {
	if f.Axis == AxisY {
		return "rainbow-y"
	}
	return "rainbow-x"
}

// Hue returns the wave's hue at position pos.
func (f *RainbowWave) Hue(pos int) float64 {
	elapsed := f.clock.Now().Sub(f.start).Seconds()
	return float64(pos)/f.Wavelength + elapsed*f.Speed
}

func (f *RainbowWave) Apply(in canvas.Canvas) canvas.Canvas {
	return in.Map(func(x, y int, c canvas.Colour) canvas.Colour {
		if c.IsBlack() {
			return c
		}
		pos := x
		if f.Axis == AxisY {
			pos = y
		}
		v := 1.0
		if f.PreserveLuminance {
			v = c.Brightness()
		}
		return canvas.FromHSV(f.Hue(pos), 1, v)
	})
}

// HSVTest replaces the frame with a calibration gradient: hue across the
// width, value falling down the rows. With a non-zero Drift the hue slides
// over time.
type HSVTest struct {
	clock clock.Source
	start time.Time
	Drift float64
}

func NewHSVTest(src clock.Source, drift float64) *HSVTest {
	return &HSVTest{clock: src, start: src.Now(), Drift: drift}
}

func (f *HSVTest) Name() string { return "hsv-test" }

func (f *HSVTest) Apply(in canvas.Canvas) canvas.Canvas {
	w, h := in.Width(), in.Height()
	offset := 0.0
	if f.Drift != 0 {
		offset = f.clock.Now().Sub(f.start).Seconds() * f.Drift
	}
	return in.Map(func(x, y int, _ canvas.Colour) canvas.Colour {
		hue := float64(x)/math.Max(float64(w), 1) + offset
		v := 1.0
		if h > 1 {
			v = 1 - 0.75*float64(y)/float64(h-1)
		}
		return canvas.FromHSV(hue, 1, v)
	})
}

// Brightness scales the whole frame.
type Brightness struct {
	Level float64
}

func (f Brightness) Name() string { return "brightness" }

func (f Brightness) Apply(in canvas.Canvas) canvas.Canvas {
	if f.Level >= 1 {
		return in.Clone()
	}
	return in.Map(func(_, _ int, c canvas.Colour) canvas.Colour {
		return c.Scale(f.Level)
	})
}

// Chain applies filters in order. Nil entries are skipped.
type Chain []Filter

func (ch Chain) Name() string { return "chain" }

func (ch Chain) Apply(in canvas.Canvas) canvas.Canvas {
	out := in.Clone()
	for _, f := range ch {
		if f == nil {
			continue
		}
		out = f.Apply(out)
	}
	return out
}
