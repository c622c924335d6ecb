package canvas

import "testing"

func TestSetGetRoundTrip(t *testing.T) {
	c := New(17, 5)
	col := RGB(10, 20, 30)
	for y := range c.Height() {
		for x := range c.Width() {
			c.SetXY(x, y, col)
			if got := c.GetXY(x, y); got != col {
				t.Fatalf("GetXY(%d,%d) = %v, want %v", x, y, got, col)
			}
		}
	}
}

func TestOutOfRangeDrawsAreClipped(t *testing.T) {
	c := New(4, 3)
	c.SetXY(-1, 0, Red)
	c.SetXY(4, 0, Red)
	c.SetXY(0, 3, Red)
	c.Set(99, Red)
	if !c.Empty() {
		t.Fatal("expected out-of-range draws to be ignored")
	}
	if got := c.GetXY(10, 10); got != Black {
		t.Fatalf("expected black for out-of-range read, got %v", got)
	}
}

func TestFillContainsColour(t *testing.T) {
	c := New(5, 5)
	c.Fill(Green)
	if !c.ContainsColour(Green) {
		t.Fatal("expected filled colour to be present")
	}
	if c.ContainsColour(Red) || c.ContainsColour(Black) {
		t.Fatal("expected no other colour after fill")
	}
	if !c.Full() {
		t.Fatal("expected filled canvas to be full")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := New(2, 2)
	b := a.Clone()
	b.SetXY(0, 0, Red)
	if a.GetXY(0, 0) != Black {
		t.Fatal("expected clone to not alias the original")
	}
}

func TestBlitContainment(t *testing.T) {
	bg := New(6, 4)
	bg.Fill(Blue)
	fg := New(3, 3)
	fg.Fill(Red)
	fg.SetXY(1, 1, Green)

	for _, off := range [][2]int{{0, 0}, {2, 1}, {4, 2}, {-1, -1}, {-5, 0}, {7, 7}} {
		dx, dy := off[0], off[1]
		out := Blit(bg, fg, dx, dy)
		for y := range bg.Height() {
			for x := range bg.Width() {
				fx, fy := x-dx, y-dy
				want := Blue
				if fg.InBounds(fx, fy) {
					want = fg.GetXY(fx, fy)
				}
				if got := out.GetXY(x, y); got != want {
					t.Fatalf("offset %v: pixel (%d,%d) = %v, want %v", off, x, y, got, want)
				}
			}
		}
	}
	if bg.ContainsColour(Red) {
		t.Fatal("expected Blit to leave the background untouched")
	}
}

func TestCropGuardsOutOfRange(t *testing.T) {
	in := New(4, 4)
	in.Fill(Yellow)
	out := Crop(in, 2, 2, 4, 4)
	if out.Width() != 4 || out.Height() != 4 {
		t.Fatalf("unexpected crop size %dx%d", out.Width(), out.Height())
	}
	if out.GetXY(0, 0) != Yellow || out.GetXY(1, 1) != Yellow {
		t.Fatal("expected in-range samples to be copied")
	}
	if out.GetXY(2, 0) != Black || out.GetXY(3, 3) != Black {
		t.Fatal("expected out-of-range samples to be black")
	}
}

func TestLerpAndScale(t *testing.T) {
	mid := Lerp(Black, RGB(200, 100, 50), 0.5)
	if mid != RGB(100, 50, 25) {
		t.Fatalf("unexpected midpoint %v", mid)
	}
	if got := Lerp(Black, White, 3); got != White {
		t.Fatalf("expected t to clamp, got %v", got)
	}
	if got := RGB(200, 100, 0).Scale(2); got != RGB(255, 200, 0) {
		t.Fatalf("expected clamped scale, got %v", got)
	}
	if got := White.Scale(0); got != Black {
		t.Fatalf("expected zero scale to produce black, got %v", got)
	}
}

func TestBrightnessFollowsMaxChannel(t *testing.T) {
	c := RGB(10, 204, 51)
	if c.MaxChannel() != 204 {
		t.Fatalf("expected max channel 204, got %d", c.MaxChannel())
	}
	if c.Brightness() != 0.8 {
		t.Fatalf("expected brightness 0.8, got %v", c.Brightness())
	}
	if Black.Brightness() != 0 || White.Brightness() != 1 {
		t.Fatal("expected black at 0 and white at 1")
	}
}

func TestFromHSVPrimaries(t *testing.T) {
	if got := FromHSV(0, 1, 1); got != Red {
		t.Fatalf("hue 0 = %v, want red", got)
	}
	if got := FromHSV(1.0/3, 1, 1); got != Green {
		t.Fatalf("hue 1/3 = %v, want green", got)
	}
	if got := FromHSV(-1.0/3, 1, 1); got != Blue {
		t.Fatalf("hue -1/3 = %v, want blue", got)
	}
}

func TestShowCharacters(t *testing.T) {
	c := New(17, 5)
	if w := c.ShowCharacters("12:34", []Colour{Red, Green}, 0, 0, 1, Font3x5); w != 17 {
		t.Fatalf("expected rendered width 17, got %d", w)
	}

	// '1' top row is 010 in red.
	if c.GetXY(1, 0) != Red || c.GetXY(0, 0) != Black {
		t.Fatal("expected first glyph drawn in first colour")
	}
	// '2' starts at column 4 in green.
	if c.GetXY(4, 0) != Green {
		t.Fatalf("expected second glyph in second colour, got %v", c.GetXY(4, 0))
	}
	// ':' at column 8, rows 1 and 3, colour cycles back to red.
	if c.GetXY(8, 1) != Red || c.GetXY(8, 0) != Black {
		t.Fatal("expected colon dots at column 8")
	}
	if w := Font3x5.TextWidth("12:34", 1); w != 17 {
		t.Fatalf("expected text width 17, got %d", w)
	}
}

func TestShowCharactersClipsOffCanvas(t *testing.T) {
	c := New(5, 5)
	if w := c.ShowCharacters("888", nil, 30, 0, 1, Font3x5); w != 11 {
		t.Fatalf("expected full width 11 while off-canvas, got %d", w)
	}
	c.ShowCharacters("888", nil, -2, 0, 1, Font3x5)
	if c.GetXY(0, 0) != White {
		t.Fatal("expected partially visible glyph to be drawn")
	}
}
