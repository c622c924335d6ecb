package audio

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/chrissbarr/pixelclock/internal/logging"
)

// Tap copies everything read through it into a RingBuffer, so the analysis
// loop sees what the consumer (speaker or Drain) is pulling.
type Tap struct {
	r    io.Reader
	ring *RingBuffer
}

func NewTap(r io.Reader, ring *RingBuffer) *Tap {
	return &Tap{r: r, ring: ring}
}

func (t *Tap) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		t.ring.Write(p[:n])
	}
	return n, err
}

// Drain consumes r at bytesPerSec so a tapped stream advances in real time
// without a speaker attached. It returns nil at end of stream and ctx.Err()
// on cancellation.
func Drain(ctx context.Context, r io.Reader, bytesPerSec, frameBytes int) error {
	const slice = 20 * time.Millisecond
	chunk := bytesPerSec / int(time.Second/slice)
	if frameBytes > 1 {
		chunk -= chunk % frameBytes
	}
	if chunk < frameBytes {
		chunk = max(frameBytes, 1)
	}
	buf := make([]byte, chunk)

	ticker := time.NewTicker(slice)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return err
		}
	}
}

// Pipeline periodically analyses the newest tapped PCM window and pushes
// the result into a Feed.
type Pipeline struct {
	ring     *RingBuffer
	analyzer *Analyzer
	feed     *Feed
	interval time.Duration
	lastSeen uint64
}

// NewPipeline wires ring to feed through an analyzer for channels-channel
// PCM.
func NewPipeline(ring *RingBuffer, feed *Feed, channels int) *Pipeline {
	return &Pipeline{
		ring:     ring,
		analyzer: NewAnalyzer(channels, DefaultBands),
		feed:     feed,
		interval: time.Second / 30,
	}
}

// RingSize is a ring capacity comfortably larger than one analysis window.
func RingSize(channels int) int {
	return defaultFFTSize * max(channels, 1) * 2 * 4
}

// Step analyses the newest window once. It reports false when no new PCM
// arrived since the previous call.
func (p *Pipeline) Step() bool {
	written := p.ring.Written()
	if written == p.lastSeen {
		return false
	}
	p.lastSeen = written
	pcm := p.ring.Latest(p.analyzer.WindowBytes(), p.analyzer.FrameBytes())
	if len(pcm) == 0 {
		return false
	}
	p.feed.Push(p.analyzer.Analyze(Samples(pcm)))
	return true
}

// Run calls Step on every interval until ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	logging.Logger().Info("audio pipeline started", "interval", p.interval)
	defer logging.Logger().Info("audio pipeline stopped")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Step()
		}
	}
}
