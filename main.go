package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chrissbarr/pixelclock/internal/audio"
	"github.com/chrissbarr/pixelclock/internal/clock"
	"github.com/chrissbarr/pixelclock/internal/config"
	"github.com/chrissbarr/pixelclock/internal/logging"
	"github.com/chrissbarr/pixelclock/internal/sink"
	"github.com/chrissbarr/pixelclock/internal/ui"
)

// feedCapacity covers a few seconds of analysis at 30 records a second.
const feedCapacity = 128

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logging.Logger().Info("starting", "width", cfg.Width, "height", cfg.Height, "fps", cfg.FPS, "seed", seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := audio.NewFeed(feedCapacity)
	src, err := startAudio(ctx, cfg, feed, seed)
	if err != nil {
		return err
	}

	app := buildClock(cfg, clock.System{}, feed, src.title, seed)
	model := ui.New(app.manager, sink.NewTerminal(cfg.Width, cfg.Height), cfg.FPS, src.uiAudio())

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	cancel()
	audioErr := src.close()
	if err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	if m, ok := final.(ui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return audioErr
}

func setupLogging(cfg config.Config) (func(), error) {
	if cfg.LogFile == "" {
		return func() {}, nil
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() {
		logging.SetLogger(nil)
		f.Close()
	}, nil
}

// ignoreCancel drops the error a worker returns when it is told to stop.
func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
