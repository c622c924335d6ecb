package canvas

import "unicode"

// Glyph is one bitmap character. Each row holds Width bits, the most
// significant of which is the leftmost pixel.
type Glyph struct {
	Width int
	Rows  []uint8
}

// Font is a fixed-height bitmap font with per-glyph widths.
type Font struct {
	Height int
	// Blank is the width used for runes the font has no glyph for.
	Blank  int
	glyphs map[rune]Glyph
}

// Glyph returns the glyph for r. Lower-case letters fall back to upper case
// and unknown runes to a blank cell.
func (f *Font) Glyph(r rune) Glyph {
	if g, ok := f.glyphs[r]; ok {
		return g
	}
	if g, ok := f.glyphs[unicode.ToUpper(r)]; ok {
		return g
	}
	return Glyph{Width: f.Blank, Rows: make([]uint8, f.Height)}
}

// TextWidth returns the pixel width of text with spacing columns between
// characters.
func (f *Font) TextWidth(text string, spacing int) int {
	w := 0
	n := 0
	for _, r := range text {
		if n > 0 {
			w += spacing
		}
		w += f.Glyph(r).Width
		n++
	}
	return w
}

func g3(rows ...uint8) Glyph { return Glyph{Width: 3, Rows: rows} }
func g1(rows ...uint8) Glyph { return Glyph{Width: 1, Rows: rows} }
func g5(rows ...uint8) Glyph { return Glyph{Width: 5, Rows: rows} }

// Font3x5 covers digits, upper-case letters and common punctuation.
var Font3x5 = &Font{
	Height: 5,
	Blank:  3,
	glyphs: map[rune]Glyph{
		'0': g3(7, 5, 5, 5, 7),
		'1': g3(2, 6, 2, 2, 7),
		'2': g3(7, 1, 7, 4, 7),
		'3': g3(7, 1, 7, 1, 7),
		'4': g3(5, 5, 7, 1, 1),
		'5': g3(7, 4, 7, 1, 7),
		'6': g3(7, 4, 7, 5, 7),
		'7': g3(7, 1, 1, 1, 1),
		'8': g3(7, 5, 7, 5, 7),
		'9': g3(7, 5, 7, 1, 7),
		'A': g3(2, 5, 7, 5, 5),
		'B': g3(6, 5, 6, 5, 6),
		'C': g3(3, 4, 4, 4, 3),
		'D': g3(6, 5, 5, 5, 6),
		'E': g3(7, 4, 6, 4, 7),
		'F': g3(7, 4, 6, 4, 4),
		'G': g3(3, 4, 5, 5, 3),
		'H': g3(5, 5, 7, 5, 5),
		'I': g3(7, 2, 2, 2, 7),
		'J': g3(1, 1, 1, 5, 2),
		'K': g3(5, 5, 6, 5, 5),
		'L': g3(4, 4, 4, 4, 7),
		'M': g3(5, 7, 7, 5, 5),
		'N': g3(6, 5, 5, 5, 5),
		'O': g3(2, 5, 5, 5, 2),
		'P': g3(6, 5, 6, 4, 4),
		'Q': g3(2, 5, 5, 6, 3),
		'R': g3(6, 5, 6, 5, 5),
		'S': g3(3, 4, 2, 1, 6),
		'T': g3(7, 2, 2, 2, 2),
		'U': g3(5, 5, 5, 5, 7),
		'V': g3(5, 5, 5, 5, 2),
		'W': g3(5, 5, 7, 7, 5),
		'X': g3(5, 5, 2, 5, 5),
		'Y': g3(5, 5, 2, 2, 2),
		'Z': g3(7, 1, 2, 4, 7),
		' ': g3(0, 0, 0, 0, 0),
		'-': g3(0, 0, 7, 0, 0),
		'?': g3(7, 1, 2, 0, 2),
		'%': g3(5, 1, 2, 4, 5),
		'/': g3(1, 1, 2, 4, 4),
		'+': g3(0, 2, 7, 2, 0),
		'_': g3(0, 0, 0, 0, 7),
		'<': g3(1, 2, 4, 2, 1),
		'>': g3(4, 2, 1, 2, 4),
		':': g1(0, 1, 0, 1, 0),
		'.': g1(0, 0, 0, 0, 1),
		'!': g1(1, 1, 1, 0, 1),
		'\'': g1(1, 1, 0, 0, 0),
	},
}

// Font5x5 is a larger digit font for clock faces on taller matrices.
var Font5x5 = &Font{
	Height: 5,
	Blank:  5,
	glyphs: map[rune]Glyph{
		'0': g5(14, 17, 17, 17, 14),
		'1': g5(4, 12, 4, 4, 14),
		'2': g5(30, 1, 14, 16, 31),
		'3': g5(30, 1, 6, 1, 30),
		'4': g5(18, 18, 31, 2, 2),
		'5': g5(31, 16, 30, 1, 30),
		'6': g5(14, 16, 30, 17, 14),
		'7': g5(31, 1, 2, 4, 4),
		'8': g5(14, 17, 14, 17, 14),
		'9': g5(14, 17, 15, 1, 14),
		' ': {Width: 2, Rows: []uint8{0, 0, 0, 0, 0}},
		':': g1(0, 1, 0, 1, 0),
	},
}
