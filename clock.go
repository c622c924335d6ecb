package main

import (
	"math/rand"
	"time"

	"github.com/chrissbarr/pixelclock/internal/audio"
	"github.com/chrissbarr/pixelclock/internal/canvas"
	"github.com/chrissbarr/pixelclock/internal/clock"
	"github.com/chrissbarr/pixelclock/internal/config"
	"github.com/chrissbarr/pixelclock/internal/effect"
	"github.com/chrissbarr/pixelclock/internal/filter"
	"github.com/chrissbarr/pixelclock/internal/input"
	"github.com/chrissbarr/pixelclock/internal/mode"
)

const (
	scrollInterval = 80 * time.Millisecond
	fillInterval   = 60 * time.Millisecond
	graphInterval  = 50 * time.Millisecond
	// visualizerAverage is how many feed records a visualizer smooths over.
	visualizerAverage = 3
)

// app is the assembled clock: the manager plus the pieces tests look at.
type app struct {
	manager  *mode.Manager
	settings *mode.Settings
	clock    *mode.ClockfaceMode
	gallery  *mode.EffectsMode
	menu     *mode.SettingsMode
	life     *effect.GameOfLife
}

// buildClock wires every effect into the three modes. Each random effect
// gets its own generator derived from seed.
func buildClock(cfg config.Config, src clock.Source, feed *audio.Feed, nowPlaying string, seed int64) *app {
	w, h := cfg.Width, cfg.Height
	next := seed
	newRand := func() *rand.Rand {
		next++
		return rand.New(rand.NewSource(next))
	}

	settings := mode.DefaultSettings()
	settings.Filters = []filter.Filter{
		filter.NewRainbowWave(src, filter.AxisX, 0.25, float64(w), true),
		filter.NewRainbowWave(src, filter.AxisY, 0.4, float64(h), true),
		filter.SolidColour{Colour: canvas.Orange, PreserveLuminance: true},
		filter.NewHSVTest(src, 0.05),
	}

	faces := []mode.Face{
		{Name: "simple", Effect: effect.NewSimpleClockFace(w, h, src, cfg.Hour24, effect.HueCycle(src, 0.02))},
		{Name: "gravity", Effect: effect.NewGravityClockFace(w, h, src, newRand(), fillInterval, cfg.Hour24, effect.RandomHue(newRand()))},
	}

	lifeOpts := effect.DefaultLifeOptions(w, h)
	lifeOpts.Rules.Wrap = cfg.LifeWrap
	lifeOpts.Rules.StaleSteps = cfg.LifeStale
	lifeOpts.Colour = effect.RandomHue(newRand())
	life := effect.NewGameOfLife(lifeOpts, src, newRand())

	timeout := func(e effect.Effect) effect.Effect {
		return effect.NewTimeout(e, src, cfg.GalleryTimeout)
	}
	rainbow := filter.NewRainbowWave(src, filter.AxisX, 0.5, float64(w), false)

	entries := []mode.Entry{
		{Name: "life", Effect: life},
		{Name: "spectrum", Effect: timeout(effect.NewSpectrumDisplay(w, h, feed, visualizerAverage, cfg.FPS))},
		{Name: "gravity fill", Effect: effect.NewGravityFill(w, h, src, newRand(), fillInterval, effect.Down, effect.RandomHue(newRand()))},
		{Name: "volume", Effect: timeout(effect.NewVolumeDisplay(w, h, feed, visualizerAverage, cfg.FPS))},
		{Name: "random fill", Effect: effect.NewRandomFill(w, h, src, newRand(), fillInterval, effect.Palette(canvas.Red, canvas.Green, canvas.Blue, canvas.Yellow))},
		{Name: "volume graph", Effect: timeout(effect.NewVolumeGraph(w, h, feed, visualizerAverage, src, graphInterval))},
		{Name: "bouncing ball", Effect: effect.NewBouncingBall(w, h, src, newRand(), 30*time.Millisecond, 12, effect.RandomHue(newRand()))},
		{Name: "waterfall", Effect: timeout(effect.NewAudioWaterfall(w, h, feed, visualizerAverage, src, graphInterval))},
		{Name: "rainbow rain", Effect: effect.NewFiltered(effect.NewGravityFill(w, h, src, newRand(), fillInterval, effect.Left, effect.Solid(canvas.White)), rainbow)},
	}
	if nowPlaying != "" {
		entries = append(entries, mode.Entry{
			Name: "now playing",
			Effect: effect.NewRepeatingTextScroller(w, h, src, scrollInterval,
				func() string { return nowPlaying }, 2, canvas.Cyan, canvas.Purple),
		})
	}
	entries = append(entries, mode.Entry{
		Name: "banner",
		Effect: effect.NewRepeatingTextScroller(w, h, src, scrollInterval, func() string {
			return "PIXELCLOCK " + effect.FormatTime(clock.Decompose(src.Now()), cfg.Hour24)
		}, 1, canvas.White, canvas.Orange),
	})

	a := &app{
		settings: settings,
		clock:    mode.NewClockfaceMode(w, h, settings, faces...),
		gallery:  mode.NewEffectsMode(w, h, src, settings, cfg.TransitionDuration, entries...),
		life:     life,
	}
	a.menu = mode.NewSettingsMode(w, h, settings, life.Scores)
	a.manager = mode.NewManager(w, h, input.NewDispatcher(), settings, a.clock, a.gallery, a.menu)
	return a
}
