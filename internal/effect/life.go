package effect

import (
	"math/rand"
	"time"

	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
	"github.com/chrissbarr/pixelclock/internal/filter"
	"github.com/chrissbarr/pixelclock/internal/life"
)

// LifeOptions configure a GameOfLife effect. Zero durations and factors are
// replaced with defaults.
type LifeOptions struct {
	Rules        life.Rules
	TickInterval time.Duration

	// FadeOnDeath dims dead cells instead of clearing them and lets the
	// final pattern fade out once the game dies.
	FadeOnDeath   bool
	FadeInterval  time.Duration
	FadeFactor    float64
	FadeThreshold float64

	Colour ColourGenerator
	Filter filter.Filter

	SearchBudget  time.Duration
	MaxTicks      int
	MaxCandidates int
}

// DefaultLifeOptions returns fading, randomly coloured life on a w×h torus.
func DefaultLifeOptions(w, h int) LifeOptions {
	return LifeOptions{
		Rules:         life.DefaultRules(w, h),
		TickInterval:  150 * time.Millisecond,
		FadeOnDeath:   true,
		FadeInterval:  40 * time.Millisecond,
		FadeFactor:    0.8,
		FadeThreshold: 0.05,
		SearchBudget:  life.DefaultSearchBudget,
		MaxTicks:      life.DefaultMaxTicks,
		MaxCandidates: life.DefaultMaxCandidates,
	}
}

func (o LifeOptions) withDefaults() LifeOptions {
	def := DefaultLifeOptions(o.Rules.Width, o.Rules.Height)
	if o.TickInterval <= 0 {
		o.TickInterval = def.TickInterval
	}
	if o.FadeInterval <= 0 {
		o.FadeInterval = def.FadeInterval
	}
	if o.FadeFactor <= 0 || o.FadeFactor >= 1 {
		o.FadeFactor = def.FadeFactor
	}
	if o.FadeThreshold <= 0 {
		o.FadeThreshold = def.FadeThreshold
	}
	if o.SearchBudget <= 0 {
		o.SearchBudget = def.SearchBudget
	}
	return o
}

// LifeState is the phase of a GameOfLife effect.
type LifeState int

const (
	LifeAlive LifeState = iota
	LifeDeadInstant
	LifeDeadFading
)

func (s LifeState) String() string {
	switch s {
	case LifeDeadInstant:
		return "dead"
	case LifeDeadFading:
		return "fading"
	default:
		return "alive"
	}
}

// GameOfLife renders a Game of Life seeded from the best seeds found so
// far. Every reset runs another short seed search, so the retained scores
// improve the longer the effect is used.
type GameOfLife struct {
	opts     LifeOptions
	canvas   canvas.Canvas
	game     *life.Game
	board    *life.ScoreBoard
	searcher *life.Searcher
	rng      *rand.Rand
	tick     interval
	fade     interval
	state    LifeState
}

func NewGameOfLife(opts LifeOptions, src clock.Source, rng *rand.Rand) *GameOfLife {
	opts = opts.withDefaults()
	if opts.Colour == nil {
		opts.Colour = RandomHue(rng)
	}
	board := life.NewScoreBoard(life.DefaultBoardCapacity)
	searcher := life.NewSearcher(opts.Rules, board, src, rng)
	searcher.Budget = opts.SearchBudget
	if opts.MaxTicks > 0 {
		searcher.MaxTicks = opts.MaxTicks
	}
	if opts.MaxCandidates > 0 {
		searcher.MaxCandidates = opts.MaxCandidates
	}
	return &GameOfLife{
		opts:     opts,
		canvas:   canvas.New(opts.Rules.Width, opts.Rules.Height),
		board:    board,
		searcher: searcher,
		rng:      rng,
		tick:     newInterval(src, opts.TickInterval),
		fade:     newInterval(src, opts.FadeInterval),
	}
}

// Reset searches for seeds and starts a game from one of the best.
func (l *GameOfLife) Reset() {
	l.Start(l.searcher.NextSeed())
}

// Start begins a game from seed without searching.
func (l *GameOfLife) Start(seed uint32) {
	l.StartGame(life.NewGame(l.opts.Rules, seed))
}

// StartGame adopts g as the running game.
func (l *GameOfLife) StartGame(g *life.Game) {
	l.game = g
	l.canvas.Clear()
	l.state = LifeAlive
	l.tick.reset()
	l.fade.reset()
	l.stamp()
	if !g.Alive() {
		l.die()
	}
}

func (l *GameOfLife) Game() *life.Game     { return l.game }
func (l *GameOfLife) State() LifeState     { return l.state }
func (l *GameOfLife) Scores() []life.Score { return l.board.Scores() }

// stamp colours newly live cells and handles cells that died.
func (l *GameOfLife) stamp() {
	gen := l.game.Generation()
	for y := range l.game.Height() {
		for x := range l.game.Width() {
			born := l.game.Cell(x, y)
			switch {
			case born != 0 && (born == gen || l.canvas.GetXY(x, y).IsBlack()):
				l.canvas.SetXY(x, y, l.opts.Colour())
			case born == 0 && !l.opts.FadeOnDeath:
				l.canvas.SetXY(x, y, canvas.Black)
			}
		}
	}
}

// dim scales faded pixels, dead cells only while the game is alive.
func (l *GameOfLife) dim(all bool) {
	for y := range l.canvas.Height() {
		for x := range l.canvas.Width() {
			if !all && l.game.Cell(x, y) != 0 {
				continue
			}
			c := l.canvas.GetXY(x, y)
			if c.IsBlack() {
				continue
			}
			c = c.Scale(l.opts.FadeFactor)
			if c.Brightness() <= l.opts.FadeThreshold {
				c = canvas.Black
			}
			l.canvas.SetXY(x, y, c)
		}
	}
}

func (l *GameOfLife) die() {
	if l.opts.FadeOnDeath {
		l.state = LifeDeadFading
		return
	}
	l.state = LifeDeadInstant
}

func (l *GameOfLife) Run() canvas.Canvas {
	if l.game != nil {
		switch l.state {
		case LifeAlive:
			if l.tick.due() {
				l.game.Step()
				l.stamp()
				if !l.game.Alive() {
					l.die()
				}
			}
			if l.opts.FadeOnDeath && l.fade.due() {
				l.dim(false)
			}
		case LifeDeadFading:
			if l.fade.due() {
				l.dim(true)
			}
		}
	}

	out := l.canvas.Clone()
	if l.opts.Filter != nil {
		out = l.opts.Filter.Apply(out)
	}
	return out
}

func (l *GameOfLife) Finished() bool {
	if l.game == nil {
		return true
	}
	switch l.state {
	case LifeDeadInstant:
		return true
	case LifeDeadFading:
		return l.canvas.Empty()
	default:
		return false
	}
}
