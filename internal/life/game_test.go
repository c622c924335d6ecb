package life

import (
	"reflect"
	"testing"
)

func pattern(w, h int, cells ...[2]int) []bool {
	out := make([]bool, w*h)
	for _, c := range cells {
		out[c[1]*w+c[0]] = true
	}
	return out
}

func noWrap(w, h int) Rules {
	return Rules{Width: w, Height: h, StaleSteps: DefaultStaleSteps}
}

func TestLoneCellDies(t *testing.T) {
	g := NewGameFromCells(noWrap(5, 5), pattern(5, 5, [2]int{2, 2}))
	if !g.Alive() {
		t.Fatal("expected seeded game to start alive")
	}
	g.Step()
	if g.LiveCount() != 0 {
		t.Fatalf("expected lone cell to die, %d alive", g.LiveCount())
	}
	if g.Alive() {
		t.Fatal("expected empty board to be dead")
	}
}

func TestBlockStillLifeIsStable(t *testing.T) {
	start := pattern(5, 5, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 2})
	g := NewGameFromCells(noWrap(5, 5), start)
	for range 10 {
		g.Step()
		if got := g.AliveCells(); !reflect.DeepEqual(got, start) {
			t.Fatalf("expected block unchanged after generation %d", g.Generation())
		}
	}
	if g.Alive() {
		t.Fatal("expected a still life to be flagged as frozen")
	}
	if g.Lifespan() != 1 {
		t.Fatalf("expected frozen detection on the first step, lifespan %d", g.Lifespan())
	}
}

func TestGliderTranslatesUnwrapped(t *testing.T) {
	glider := [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	g := NewGameFromCells(noWrap(12, 12), pattern(12, 12, glider...))
	for range 4 {
		g.Step()
	}
	var moved [][2]int
	for _, c := range glider {
		moved = append(moved, [2]int{c[0] + 1, c[1] + 1})
	}
	if got, want := g.AliveCells(), pattern(12, 12, moved...); !reflect.DeepEqual(got, want) {
		t.Fatal("expected glider shifted by (1,1) after four generations")
	}
	if !g.Alive() {
		t.Fatal("expected glider to still count as alive")
	}
}

func TestEdgeCellsHaveFewerNeighboursWithoutWrap(t *testing.T) {
	// A vertical line on the left edge: with wrap the right column would
	// contribute neighbours, without it the line just oscillates.
	cells := pattern(4, 3, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})
	g := NewGameFromCells(noWrap(4, 3), cells)
	g.Step()
	want := pattern(4, 3, [2]int{0, 1}, [2]int{1, 1})
	if got := g.AliveCells(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected unwrapped generation: %v", got)
	}

	w := NewGameFromCells(Rules{Width: 4, Height: 3, Wrap: true}, cells)
	w.Step()
	if reflect.DeepEqual(w.AliveCells(), want) {
		t.Fatal("expected wrapping to change the neighbour counts")
	}
}

func TestBirthGenerationMarksNewCells(t *testing.T) {
	g := NewGameFromCells(noWrap(5, 5), pattern(5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2}))
	g.Step()
	if got := g.Cell(2, 2); got != 1 {
		t.Fatalf("expected survivor to keep birth generation 1, got %d", got)
	}
	if got := g.Cell(2, 1); got != 2 {
		t.Fatalf("expected newborn to carry generation 2, got %d", got)
	}
	if got := g.Cell(1, 2); got != 0 {
		t.Fatalf("expected dead cell to be 0, got %d", got)
	}
}

func TestBlinkerDetectedAsRepeating(t *testing.T) {
	blinker := pattern(5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
	g := NewGameFromCells(Rules{Width: 5, Height: 5, StaleSteps: 2}, blinker)

	g.Step()
	if g.StaleTicks() != 0 || !g.Alive() {
		t.Fatal("expected first phase change to be unique")
	}
	g.Step()
	if g.StaleTicks() != 1 {
		t.Fatalf("expected repeat detected on second tick, stale=%d", g.StaleTicks())
	}
	if !g.Alive() {
		t.Fatal("expected blinker alive until the stale threshold")
	}
	g.Step()
	if g.Alive() {
		t.Fatal("expected blinker dead once stale threshold reached")
	}
	if g.Lifespan() != 3 {
		t.Fatalf("expected lifespan 3, got %d", g.Lifespan())
	}
}

func TestBlinkerDiesAfterDefaultStaleSteps(t *testing.T) {
	blinker := pattern(5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	g := NewGameFromCells(noWrap(5, 5), blinker)
	got := g.Run(1000)
	if want := DefaultStaleSteps + 1; got != want {
		t.Fatalf("expected lifespan %d, got %d", want, got)
	}
}

func TestRunStopsAtTickCap(t *testing.T) {
	glider := [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	// On a big torus a glider never repeats within the cap.
	g := NewGameFromCells(Rules{Width: 40, Height: 40, Wrap: true}, pattern(40, 40, glider...))
	if got := g.Run(50); got != 50 {
		t.Fatalf("expected run to stop at 50 ticks, got %d", got)
	}
	if !g.Alive() {
		t.Fatal("expected capped game to still be alive")
	}
	if g.HistoryLen() != 51 {
		t.Fatalf("expected one hash per state, got %d", g.HistoryLen())
	}
	g.Run(150)
	if g.HistoryLen() != historyLimit {
		t.Fatalf("expected history bounded at %d, got %d", historyLimit, g.HistoryLen())
	}
}

func TestNewGameSeeding(t *testing.T) {
	rules := DefaultRules(100, 100)
	a := NewGame(rules, 1234)
	b := NewGame(rules, 1234)
	if !reflect.DeepEqual(a.Cells(), b.Cells()) {
		t.Fatal("expected equal seeds to produce equal boards")
	}
	n := a.LiveCount()
	// Expectation is 10000/11 ≈ 909.
	if n < 700 || n > 1150 {
		t.Fatalf("expected roughly one cell in eleven alive, got %d", n)
	}
	if a.Seed() != 1234 {
		t.Fatalf("expected seed to be recorded, got %d", a.Seed())
	}
}

func TestEmptySeedIsDead(t *testing.T) {
	g := NewGameFromCells(noWrap(3, 3), nil)
	if g.Alive() {
		t.Fatal("expected empty board to start dead")
	}
	if got := g.Run(10); got != 0 {
		t.Fatalf("expected zero lifespan, got %d", got)
	}
}
