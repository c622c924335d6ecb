// Package canvas implements the pixel grid every effect draws into.
package canvas

// Canvas is a fixed-size grid of colours stored row-major, index y*width+x.
//
// Draws outside the grid are dropped and reads outside it return Black.
// Effects routinely draw partly off-canvas while something slides in, so
// clipping is silent.
type Canvas struct {
	width  int
	height int
	pixels []Colour
}

// New returns a black canvas of the given size. Negative sizes are treated
// as zero.
func New(width, height int) Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Canvas{
		width:  width,
		height: height,
		pixels: make([]Colour, width*height),
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }
func (c *Canvas) Len() int    { return len(c.pixels) }

// Clone returns an independent copy of c.
func (c *Canvas) Clone() Canvas {
	out := Canvas{width: c.width, height: c.height, pixels: make([]Colour, len(c.pixels))}
	copy(out.pixels, c.pixels)
	return out
}

// InBounds reports whether (x, y) addresses a pixel.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// SetXY colours the pixel at (x, y).
func (c *Canvas) SetXY(x, y int, col Colour) {
	if !c.InBounds(x, y) {
		return
	}
	c.pixels[y*c.width+x] = col
}

// GetXY returns the pixel at (x, y).
func (c *Canvas) GetXY(x, y int) Colour {
	if !c.InBounds(x, y) {
		return Black
	}
	return c.pixels[y*c.width+x]
}

// Set colours the pixel at linear index i.
func (c *Canvas) Set(i int, col Colour) {
	if i < 0 || i >= len(c.pixels) {
		return
	}
	c.pixels[i] = col
}

// Get returns the pixel at linear index i.
func (c *Canvas) Get(i int) Colour {
	if i < 0 || i >= len(c.pixels) {
		return Black
	}
	return c.pixels[i]
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col Colour) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// Clear blacks out the canvas.
func (c *Canvas) Clear() {
	c.Fill(Black)
}

// ContainsColour reports whether any pixel equals col.
func (c *Canvas) ContainsColour(col Colour) bool {
	for _, p := range c.pixels {
		if p == col {
			return true
		}
	}
	return false
}

// LitCount returns the number of non-black pixels.
func (c *Canvas) LitCount() int {
	n := 0
	for _, p := range c.pixels {
		if !p.IsBlack() {
			n++
		}
	}
	return n
}

// Full reports whether no pixel is black.
func (c *Canvas) Full() bool {
	return !c.ContainsColour(Black)
}

// Empty reports whether every pixel is black.
func (c *Canvas) Empty() bool {
	return c.LitCount() == 0
}

// Equal reports whether c and o have the same size and pixels.
func (c *Canvas) Equal(o Canvas) bool {
	if c.width != o.width || c.height != o.height {
		return false
	}
	for i, p := range c.pixels {
		if o.pixels[i] != p {
			return false
		}
	}
	return true
}

// Map returns a copy of c with fn applied to every pixel.
func (c *Canvas) Map(fn func(x, y int, col Colour) Colour) Canvas {
	out := c.Clone()
	for y := range c.height {
		for x := range c.width {
			i := y*c.width + x
			out.pixels[i] = fn(x, y, c.pixels[i])
		}
	}
	return out
}

// Blit returns a copy of bg with fg drawn over it, fg's origin placed at
// (dx, dy). Parts of fg that fall outside bg are dropped.
func Blit(bg, fg Canvas, dx, dy int) Canvas {
	out := bg.Clone()
	for y := range fg.height {
		ty := y + dy
		if ty < 0 || ty >= out.height {
			continue
		}
		for x := range fg.width {
			tx := x + dx
			if tx < 0 || tx >= out.width {
				continue
			}
			out.pixels[ty*out.width+tx] = fg.pixels[y*fg.width+x]
		}
	}
	return out
}

// Crop returns a w×h canvas sampled from in starting at (x, y). Samples
// outside in come back black.
func Crop(in Canvas, x, y, w, h int) Canvas {
	out := New(w, h)
	for oy := range out.height {
		for ox := range out.width {
			out.pixels[oy*out.width+ox] = in.GetXY(x+ox, y+oy)
		}
	}
	return out
}
