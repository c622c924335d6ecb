package canvas

// DrawGlyph draws g with its top-left corner at (x, y).
func (c *Canvas) DrawGlyph(g Glyph, x, y int, col Colour) {
	for row, bits := range g.Rows {
		for gx := range g.Width {
			if bits&(1<<uint(g.Width-1-gx)) != 0 {
				c.SetXY(x+gx, y+row, col)
			}
		}
	}
}

// ShowCharacters renders text starting at column xOffset and row yOffset.
// Characters take colours from colours in turn (white when none are given)
// and are separated by spacing blank columns. Drawing stops once the pen
// passes the right edge. The full pixel width of text is returned either way.
func (c *Canvas) ShowCharacters(text string, colours []Colour, xOffset, yOffset, spacing int, font *Font) int {
	if font == nil {
		font = Font3x5
	}
	x := xOffset
	i := 0
	for _, r := range text {
		if x > c.width {
			return font.TextWidth(text, spacing)
		}
		col := White
		if len(colours) > 0 {
			col = colours[i%len(colours)]
		}
		g := font.Glyph(r)
		c.DrawGlyph(g, x, yOffset, col)
		x += g.Width + spacing
		i++
	}
	return font.TextWidth(text, spacing)
}
