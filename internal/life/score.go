package life

import (
	"math/rand"
	"sort"
)

// DefaultBoardCapacity is how many best scores a ScoreBoard keeps.
const DefaultBoardCapacity = 20

// Score records how long a seed survived.
type Score struct {
	Seed     uint32
	Lifespan int
}

// ScoreBoard keeps the longest-lived scores seen so far, longest first.
// Equal lifespans may repeat.
type ScoreBoard struct {
	capacity int
	scores   []Score
}

// NewScoreBoard returns an empty board holding up to capacity scores.
func NewScoreBoard(capacity int) *ScoreBoard {
	if capacity < 1 {
		capacity = DefaultBoardCapacity
	}
	return &ScoreBoard{capacity: capacity}
}

func (b *ScoreBoard) Capacity() int { return b.capacity }
func (b *ScoreBoard) Len() int      { return len(b.scores) }

// Add records s. When the board is full, s replaces the shortest-lived
// entry only if it lived strictly longer; Add reports whether s was kept.
func (b *ScoreBoard) Add(s Score) bool {
	if len(b.scores) >= b.capacity {
		if s.Lifespan <= b.scores[len(b.scores)-1].Lifespan {
			return false
		}
		b.scores = b.scores[:len(b.scores)-1]
	}
	i := sort.Search(len(b.scores), func(i int) bool {
		return b.scores[i].Lifespan < s.Lifespan
	})
	b.scores = append(b.scores, Score{})
	copy(b.scores[i+1:], b.scores[i:])
	b.scores[i] = s
	return true
}

// Scores returns a copy of the retained scores, longest first.
func (b *ScoreBoard) Scores() []Score {
	out := make([]Score, len(b.scores))
	copy(out, b.scores)
	return out
}

// Best returns the longest-lived score.
func (b *ScoreBoard) Best() (Score, bool) {
	if len(b.scores) == 0 {
		return Score{}, false
	}
	return b.scores[0], true
}

// Pick returns a uniformly random retained score. ok is false when the
// board is empty.
func (b *ScoreBoard) Pick(rng *rand.Rand) (s Score, ok bool) {
	if len(b.scores) == 0 {
		return Score{}, false
	}
	return b.scores[rng.Intn(len(b.scores))], true
}
