package effect

import "github.com/charmbracelet/harmonica"

// levelSprings eases a fixed row of normalised levels towards new targets,
// one damped spring per level. Outputs stay in [0, 1] even when a spring
// overshoots.
type levelSprings struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newLevelSprings(fps, n int, frequency, damping float64) levelSprings {
	return levelSprings{
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), frequency, damping),
		pos:    make([]float64, n),
		vel:    make([]float64, n),
	}
}

// stepAll advances every spring one frame towards targets and returns the
// clamped positions. Missing targets pull towards zero.
func (s *levelSprings) stepAll(targets []float64) []float64 {
	out := make([]float64, len(s.pos))
	for i := range s.pos {
		target := 0.0
		if i < len(targets) {
			target = clamp01(targets[i])
		}
		s.pos[i], s.vel[i] = s.spring.Update(s.pos[i], s.vel[i], target)
		out[i] = clamp01(s.pos[i])
	}
	return out
}

func (s *levelSprings) reset() {
	clear(s.pos)
	clear(s.vel)
}
