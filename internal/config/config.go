// Package config holds the command-line configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/chrissbarr/pixelclock/internal/audio/decode"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is everything main needs to assemble the clock.
type Config struct {
	Width  int
	Height int
	FPS    int

	// Audio is a file whose sound drives the visualizers.
	Audio string
	// Play sends Audio to the speakers instead of consuming it silently.
	Play bool
	// Synth feeds the visualizers generated levels when no file is given.
	Synth bool

	LogFile  string
	LogLevel string

	// Seed seeds every random source; 0 picks one from the clock.
	Seed     int64
	Hour24   bool
	LifeWrap bool
	// LifeStale is the number of repeating generations a game may run.
	LifeStale int

	GalleryTimeout     time.Duration
	TransitionDuration time.Duration
}

// Default returns the 17×5 clock defaults.
func Default() Config {
	return Config{
		Width:              17,
		Height:             5,
		FPS:                30,
		LogLevel:           "info",
		Hour24:             true,
		LifeWrap:           true,
		LifeStale:          20,
		GalleryTimeout:     20 * time.Second,
		TransitionDuration: 600 * time.Millisecond,
	}
}

// Parse reads flags from args (without the program name) over the
// defaults and validates the result.
func Parse(args []string) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet("pixelclock", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.IntVar(&cfg.Width, "width", cfg.Width, "matrix width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "matrix height in pixels")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	fs.StringVar(&cfg.Audio, "audio", "", "audio file (mp3, wav, flac, ogg) for the visualizers")
	fs.BoolVar(&cfg.Play, "play", false, "play -audio through the speakers")
	fs.BoolVar(&cfg.Synth, "synth", false, "drive the visualizers with generated levels")
	fs.StringVar(&cfg.LogFile, "log", "", "write logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 uses the clock)")
	fs.BoolVar(&cfg.Hour24, "24h", cfg.Hour24, "24 hour clock")
	fs.BoolVar(&cfg.LifeWrap, "life-wrap", cfg.LifeWrap, "wrap the Game of Life board at the edges")
	fs.IntVar(&cfg.LifeStale, "life-stale", cfg.LifeStale, "repeating generations before a game counts as dead")
	fs.DurationVar(&cfg.GalleryTimeout, "gallery-timeout", cfg.GalleryTimeout, "longest time an effect stays in the gallery")
	fs.DurationVar(&cfg.TransitionDuration, "transition", cfg.TransitionDuration, "gallery slide duration")

	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected argument %q", ErrInvalid, fs.Arg(0))
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and combinations.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FPS < 1 || c.FPS > 240:
		return fmt.Errorf("%w: fps %d out of range 1-240", ErrInvalid, c.FPS)
	case c.LifeStale < 1:
		return fmt.Errorf("%w: life-stale must be positive", ErrInvalid)
	case c.GalleryTimeout <= 0:
		return fmt.Errorf("%w: gallery-timeout must be positive", ErrInvalid)
	case c.TransitionDuration < 0:
		return fmt.Errorf("%w: transition must not be negative", ErrInvalid)
	case c.Play && c.Audio == "":
		return fmt.Errorf("%w: -play needs -audio", ErrInvalid)
	case c.Audio != "" && c.Synth:
		return fmt.Errorf("%w: -audio and -synth are exclusive", ErrInvalid)
	case c.Audio != "" && !decode.Supported(c.Audio):
		return fmt.Errorf("%w: unsupported audio file %q", ErrInvalid, c.Audio)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// FrameInterval is the time between frames.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(c.FPS, 1))
}
