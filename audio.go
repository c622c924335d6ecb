package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/chrissbarr/pixelclock/internal/audio"
	"github.com/chrissbarr/pixelclock/internal/audio/decode"
	"github.com/chrissbarr/pixelclock/internal/audio/playback"
	"github.com/chrissbarr/pixelclock/internal/config"
	"github.com/chrissbarr/pixelclock/internal/logging"
	"github.com/chrissbarr/pixelclock/internal/ui"
)

// audioSource is whatever feeds the visualizers: a decoded file (played or
// silently drained), the synth, or nothing.
type audioSource struct {
	title  string
	stream *decode.Stream
	ring   *audio.RingBuffer
	player speaker
	done   chan struct{}

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// speaker is the part of a playback.Player the clock drives.
type speaker interface {
	ui.Controls
	Done() <-chan struct{}
	Position() time.Duration
	Close()
}

var newSpeaker = func(r io.Reader, f playback.Format) (speaker, error) {
	p, err := playback.New(r, f)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func startAudio(ctx context.Context, cfg config.Config, feed *audio.Feed, seed int64) (*audioSource, error) {
	src := &audioSource{}

	switch {
	case cfg.Synth:
		synth := audio.NewSynth(feed, seed)
		src.spawn("synth", func() error { return synth.Run(ctx, cfg.FrameInterval()) })

	case cfg.Audio != "":
		if err := src.openFile(ctx, cfg, feed); err != nil {
			return nil, err
		}
	}
	return src, nil
}

func (s *audioSource) openFile(ctx context.Context, cfg config.Config, feed *audio.Feed) error {
	stream, err := decode.Open(cfg.Audio)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cfg.Audio, err)
	}
	s.stream = stream
	s.title = decode.Title(cfg.Audio)
	s.ring = audio.NewRingBuffer(audio.RingSize(stream.ChannelCount()))
	tap := audio.NewTap(stream, s.ring)

	logging.Logger().Info("audio opened",
		"path", stream.Path,
		"sample_rate", stream.SampleRate(),
		"channels", stream.ChannelCount(),
		"play", cfg.Play,
	)

	if cfg.Play {
		p, err := newSpeaker(tap, playback.Format{
			SampleRate: stream.SampleRate(),
			Channels:   stream.ChannelCount(),
		})
		if err != nil {
			stream.Close()
			return fmt.Errorf("starting playback: %w", err)
		}
		s.player = p
	} else {
		s.done = make(chan struct{})
		s.spawn("drain", func() error {
			defer close(s.done)
			return audio.Drain(ctx, tap, stream.BytesPerSecond(), stream.FrameBytes())
		})
	}

	pipeline := audio.NewPipeline(s.ring, feed, stream.ChannelCount())
	s.spawn("pipeline", func() error { return pipeline.Run(ctx) })
	return nil
}

func (s *audioSource) spawn(name string, fn func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := ignoreCancel(fn()); err != nil {
			logging.Logger().Warn("audio worker failed", "worker", name, "err", err)
			s.mu.Lock()
			s.errs = append(s.errs, fmt.Errorf("%s: %w", name, err))
			s.mu.Unlock()
		}
	}()
}

// progress is the fraction of the stream consumed so far. A speaker
// reports what it has played; otherwise the tap counts what was drained.
func (s *audioSource) progress() float64 {
	total := s.stream.Length()
	if total <= 0 {
		return 0
	}
	done := float64(s.ring.Written())
	if s.player != nil {
		done = s.player.Position().Seconds() * float64(s.stream.BytesPerSecond())
	}
	return min(done/float64(total), 1)
}

func (s *audioSource) uiAudio() ui.Audio {
	a := ui.Audio{Title: s.title}
	if s.stream == nil {
		return a
	}
	if s.stream.Length() > 0 {
		a.Progress = s.progress
	}
	a.Done = s.done
	if s.player != nil {
		a.Controls = s.player
		a.Done = s.player.Done()
	}
	return a
}

// close waits for the workers, which must already have been cancelled, and
// releases the stream.
func (s *audioSource) close() error {
	if s.player != nil {
		s.player.Close()
	}
	s.wg.Wait()
	if s.stream != nil {
		if err := s.stream.Close(); err != nil {
			s.errs = append(s.errs, fmt.Errorf("closing audio: %w", err))
		}
	}
	return errors.Join(s.errs...)
}
