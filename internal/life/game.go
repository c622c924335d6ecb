// Package life is the Game of Life simulation behind the life effect. It
// tracks pattern history to detect still lifes and oscillators, and scores
// seeds by how long they survive.
package life

import (
	"hash/fnv"
	"math/rand"
)

const (
	// DefaultStaleSteps is how many consecutive repeating generations are
	// tolerated before a simulation is declared dead.
	DefaultStaleSteps = 20

	// seedOdds gives each cell a 1 in seedOdds chance of starting alive.
	seedOdds = 11

	// historyLimit bounds the retained pattern hashes.
	historyLimit = 100
	// minMatchWindow is the smallest number of trailing hashes a new state
	// is compared against.
	minMatchWindow = 20
)

// Rules fix the board a Game runs on.
type Rules struct {
	Width  int
	Height int
	Wrap   bool
	// StaleSteps is the number of consecutive non-unique generations after
	// which the simulation counts as dead.
	StaleSteps int
}

// DefaultRules returns wrapping rules for a w×h board.
func DefaultRules(w, h int) Rules {
	return Rules{Width: w, Height: h, Wrap: true, StaleSteps: DefaultStaleSteps}
}

func (r Rules) normalized() Rules {
	if r.Width < 1 {
		r.Width = 1
	}
	if r.Height < 1 {
		r.Height = 1
	}
	if r.StaleSteps < 1 {
		r.StaleSteps = DefaultStaleSteps
	}
	return r
}

// Game is one simulation instance.
//
// Cells hold the generation at which each cell was born, 0 meaning dead.
// The seeded population is generation 1.
type Game struct {
	rules      Rules
	seed       uint32
	cells      []uint32
	generation uint32
	alive      bool
	history    []uint64
	stale      int
	lifespan   int
}

// NewGame seeds a game from seed. Each cell is independently alive with
// probability 1/11.
func NewGame(rules Rules, seed uint32) *Game {
	rules = rules.normalized()
	rng := rand.New(rand.NewSource(int64(seed)))
	g := newGame(rules, seed)
	for i := range g.cells {
		if rng.Intn(seedOdds) == 0 {
			g.cells[i] = 1
		}
	}
	g.start()
	return g
}

// NewGameFromCells builds a game from an explicit aliveness pattern given in
// row-major order. Missing entries are dead.
func NewGameFromCells(rules Rules, alive []bool) *Game {
	rules = rules.normalized()
	g := newGame(rules, 0)
	for i := range g.cells {
		if i < len(alive) && alive[i] {
			g.cells[i] = 1
		}
	}
	g.start()
	return g
}

func newGame(rules Rules, seed uint32) *Game {
	return &Game{
		rules:      rules,
		seed:       seed,
		cells:      make([]uint32, rules.Width*rules.Height),
		generation: 1,
		alive:      true,
	}
}

func (g *Game) start() {
	if g.LiveCount() == 0 {
		g.alive = false
		return
	}
	g.history = append(g.history, g.hash())
}

func (g *Game) Rules() Rules       { return g.rules }
func (g *Game) Seed() uint32       { return g.seed }
func (g *Game) Alive() bool        { return g.alive }
func (g *Game) Generation() uint32 { return g.generation }
func (g *Game) StaleTicks() int    { return g.stale }
func (g *Game) HistoryLen() int    { return len(g.history) }
func (g *Game) Width() int         { return g.rules.Width }
func (g *Game) Height() int        { return g.rules.Height }

// Lifespan is the number of generations stepped while the game was alive.
func (g *Game) Lifespan() int { return g.lifespan }

// Cell returns the birth generation of the cell at (x, y), 0 when dead or
// out of range.
func (g *Game) Cell(x, y int) uint32 {
	if x < 0 || x >= g.rules.Width || y < 0 || y >= g.rules.Height {
		return 0
	}
	return g.cells[y*g.rules.Width+x]
}

// Cells returns a copy of the birth-generation grid.
func (g *Game) Cells() []uint32 {
	out := make([]uint32, len(g.cells))
	copy(out, g.cells)
	return out
}

// AliveCells returns the aliveness pattern in row-major order.
func (g *Game) AliveCells() []bool {
	out := make([]bool, len(g.cells))
	for i, c := range g.cells {
		out[i] = c != 0
	}
	return out
}

// LiveCount returns the number of live cells.
func (g *Game) LiveCount() int {
	n := 0
	for _, c := range g.cells {
		if c != 0 {
			n++
		}
	}
	return n
}

func (g *Game) neighbours(x, y int) int {
	w, h := g.rules.Width, g.rules.Height
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.rules.Wrap {
				nx = (nx + w) % w
				ny = (ny + h) % h
			} else if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if g.cells[ny*w+nx] != 0 {
				n++
			}
		}
	}
	return n
}

// Step advances one generation and re-evaluates liveness. A dead game can
// still be stepped; once cleared, the alive flag stays cleared.
func (g *Game) Step() {
	w, h := g.rules.Width, g.rules.Height
	next := make([]uint32, len(g.cells))
	born := g.generation + 1
	for y := range h {
		for x := range w {
			i := y*w + x
			n := g.neighbours(x, y)
			switch {
			case g.cells[i] != 0 && (n == 2 || n == 3):
				next[i] = g.cells[i]
			case g.cells[i] == 0 && n == 3:
				next[i] = born
			}
		}
	}
	g.cells = next
	g.generation = born

	if !g.alive {
		return
	}
	g.lifespan++
	g.checkLiveness()
}

func (g *Game) checkLiveness() {
	if g.LiveCount() == 0 {
		g.alive = false
		return
	}

	h := g.hash()
	if n := len(g.history); n > 0 && g.history[n-1] == h {
		// Still life.
		g.alive = false
		return
	}

	if g.seenRecently(h) {
		g.stale++
		if g.stale >= g.rules.StaleSteps {
			g.alive = false
			return
		}
	} else {
		g.stale = 0
	}

	g.history = append(g.history, h)
	if len(g.history) > historyLimit {
		g.history = g.history[len(g.history)-historyLimit:]
	}
}

func (g *Game) matchWindow() int {
	return max(g.rules.StaleSteps, minMatchWindow)
}

func (g *Game) seenRecently(h uint64) bool {
	start := len(g.history) - g.matchWindow()
	if start < 0 {
		start = 0
	}
	for _, prev := range g.history[start:] {
		if prev == h {
			return true
		}
	}
	return false
}

// hash folds the aliveness pattern, ignoring birth generations.
func (g *Game) hash() uint64 {
	hf := fnv.New64a()
	var buf [1]byte
	for _, c := range g.cells {
		buf[0] = 0
		if c != 0 {
			buf[0] = 1
		}
		hf.Write(buf[:])
	}
	return hf.Sum64()
}

// Run steps the game until it dies or maxTicks generations have passed and
// returns its lifespan.
func (g *Game) Run(maxTicks int) int {
	for g.alive && g.lifespan < maxTicks {
		g.Step()
	}
	return g.lifespan
}
