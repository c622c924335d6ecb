// Package playback sends a PCM stream to the speakers through oto.
package playback

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Format describes interleaved 16-bit LE PCM.
type Format struct {
	SampleRate int
	Channels   int
}

func (f Format) bytesPerSec() int {
	return f.SampleRate * f.Channels * 2
}

var (
	otoCtx    *oto.Context
	otoFormat Format
	otoOnce   sync.Once
	otoErr    error
)

// oto allows a single context per process, so the first stream's format
// wins and later streams must match it.
func outputContext(f Format) (*oto.Context, error) {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   f.SampleRate,
			ChannelCount: f.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if otoErr == nil {
			<-ready
			otoFormat = f
		}
	})
	if otoErr != nil {
		return nil, fmt.Errorf("initialising audio output: %w", otoErr)
	}
	if otoFormat != f {
		return nil, fmt.Errorf("audio output is %d Hz/%dch, stream is %d Hz/%dch",
			otoFormat.SampleRate, otoFormat.Channels, f.SampleRate, f.Channels)
	}
	return otoCtx, nil
}

// countingReader tracks how many bytes oto has pulled.
type countingReader struct {
	r   io.Reader
	mu  sync.Mutex
	pos int64
	eof bool
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	if err != nil {
		cr.eof = true
	}
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) state() (int64, bool) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos, cr.eof
}

// Player plays one stream to completion.
type Player struct {
	format  Format
	counter *countingReader
	player  *oto.Player
	volume  float64
	paused  bool
	closed  bool
	done    chan struct{}
	mu      sync.Mutex
}

// New starts playing r immediately.
func New(r io.Reader, f Format) (*Player, error) {
	ctx, err := outputContext(f)
	if err != nil {
		return nil, err
	}
	p := &Player{
		format:  f,
		counter: &countingReader{r: r},
		volume:  0.8,
		done:    make(chan struct{}),
	}
	p.player = ctx.NewPlayer(p.counter)
	p.player.SetVolume(p.volume)
	p.player.Play()
	go p.monitor()
	return p, nil
}

func (p *Player) monitor() {
	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return
		}
		_, eof := p.counter.state()
		playing := p.player.IsPlaying()
		p.mu.Unlock()

		if eof && !playing {
			close(p.done)
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// Done closes when the stream has been played out.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// TogglePause toggles between playing and paused.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.player.Play()
	} else {
		p.player.Pause()
	}
	p.paused = !p.paused
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Position returns how much audio has been handed to the device.
func (p *Player) Position() time.Duration {
	pos, _ := p.counter.state()
	return time.Duration(float64(pos) / float64(p.format.bytesPerSec()) * float64(time.Second))
}

// SetVolume sets the volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = max(0, min(1, v))
	p.player.SetVolume(p.volume)
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Close stops playback. It is safe to call more than once.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.player.Pause()
}
