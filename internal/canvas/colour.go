package canvas

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Colour is one RGB pixel value. The zero value is Black, which effects
// treat as an empty cell.
type Colour struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black  = Colour{}
	White  = Colour{R: 255, G: 255, B: 255}
	Red    = Colour{R: 255}
	Green  = Colour{G: 255}
	Blue   = Colour{B: 255}
	Yellow = Colour{R: 255, G: 255}
	Cyan   = Colour{G: 255, B: 255}
	Purple = Colour{R: 255, B: 255}
	Orange = Colour{R: 255, G: 140}
)

// RGB builds a Colour from channel values.
func RGB(r, g, b uint8) Colour {
	return Colour{R: r, G: g, B: b}
}

// IsBlack reports whether every channel is zero.
func (c Colour) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Scale multiplies every channel by f, clamping to the channel range.
func (c Colour) Scale(f float64) Colour {
	if f <= 0 {
		return Black
	}
	return Colour{
		R: clampChannel(float64(c.R) * f),
		G: clampChannel(float64(c.G) * f),
		B: clampChannel(float64(c.B) * f),
	}
}

// Brightness returns the HSV value of c in [0, 1].
func (c Colour) Brightness() float64 {
	return float64(c.MaxChannel()) / 255
}

// MaxChannel returns the largest channel value.
func (c Colour) MaxChannel() uint8 {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return m
}

// HSV returns hue in [0, 1) and saturation and value in [0, 1].
func (c Colour) HSV() (h, s, v float64) {
	h, s, v = c.colorful().Hsv()
	return h / 360, s, v
}

// Hex formats c as #rrggbb.
func (c Colour) Hex() string {
	return c.colorful().Hex()
}

func (c Colour) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FromHSV converts hue (in turns, wrapped into [0, 1)), saturation and value
// to a Colour.
func FromHSV(h, s, v float64) Colour {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	r, g, b := colorful.Hsv(h*360, clamp01(s), clamp01(v)).Clamped().RGB255()
	return Colour{R: r, G: g, B: b}
}

// Lerp interpolates linearly from a to b; t is clamped to [0, 1].
func Lerp(a, b Colour, t float64) Colour {
	t = clamp01(t)
	return Colour{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// Heat maps t in [0, 1] onto a cold-to-hot gradient used by the audio
// visualizers.
func Heat(t float64) Colour {
	t = clamp01(t)
	switch {
	case t < 0.25:
		return Lerp(Colour{R: 16, G: 25, B: 70}, Colour{R: 0, G: 174, B: 255}, t/0.25)
	case t < 0.5:
		return Lerp(Colour{R: 0, G: 174, B: 255}, Colour{R: 20, G: 255, B: 161}, (t-0.25)/0.25)
	case t < 0.75:
		return Lerp(Colour{R: 20, G: 255, B: 161}, Colour{R: 255, G: 230, B: 92}, (t-0.5)/0.25)
	default:
		return Lerp(Colour{R: 255, G: 230, B: 92}, Colour{R: 255, G: 80, B: 60}, (t-0.75)/0.25)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
