package life

import (
	"math/rand"
	"time"

	"github.com/chrissbarr/pixelclock/internal/clock"
	"github.com/chrissbarr/pixelclock/internal/logging"
)

const (
	DefaultSearchBudget  = 50 * time.Millisecond
	DefaultMaxTicks      = 5000
	DefaultMaxCandidates = 500
)

// Searcher looks for long-lived seeds by running candidate games headlessly
// and recording their scores.
type Searcher struct {
	Rules  Rules
	Board  *ScoreBoard
	Clock  clock.Source
	Budget time.Duration
	// MaxTicks caps a single candidate so oscillators that slip past cycle
	// detection cannot run forever.
	MaxTicks int
	// MaxCandidates caps one search when the clock does not advance.
	MaxCandidates int

	rng *rand.Rand
}

// NewSearcher returns a searcher with default limits drawing candidate
// seeds from rng.
func NewSearcher(rules Rules, board *ScoreBoard, src clock.Source, rng *rand.Rand) *Searcher {
	return &Searcher{
		Rules:         rules,
		Board:         board,
		Clock:         src,
		Budget:        DefaultSearchBudget,
		MaxTicks:      DefaultMaxTicks,
		MaxCandidates: DefaultMaxCandidates,
		rng:           rng,
	}
}

// Search runs candidates until the budget or the candidate cap is spent and
// returns how many ran. At least one candidate always runs.
func (s *Searcher) Search() int {
	start := s.Clock.Now()
	maxTicks := s.MaxTicks
	if maxTicks < 1 {
		maxTicks = DefaultMaxTicks
	}
	n := 0
	for {
		seed := s.rng.Uint32()
		g := NewGame(s.Rules, seed)
		s.Board.Add(Score{Seed: seed, Lifespan: g.Run(maxTicks)})
		n++
		if s.MaxCandidates > 0 && n >= s.MaxCandidates {
			break
		}
		if s.Clock.Now().Sub(start) >= s.Budget {
			break
		}
	}
	if best, ok := s.Board.Best(); ok {
		logging.Logger().Debug("life seed search",
			"candidates", n,
			"retained", s.Board.Len(),
			"best_seed", best.Seed,
			"best_lifespan", best.Lifespan,
		)
	}
	return n
}

// NextSeed searches, then picks a retained seed at random. With nothing
// retained it falls back to a fresh random seed.
func (s *Searcher) NextSeed() uint32 {
	s.Search()
	if sc, ok := s.Board.Pick(s.rng); ok {
		return sc.Seed
	}
	return s.rng.Uint32()
}
