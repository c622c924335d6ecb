// Package audio is the boundary between an audio source and the visualizer
// effects. A producer goroutine pushes Characteristics into a Feed; effects
// read short averaged snapshots from it.
package audio

import (
	"math"
	"sync"
)

const (
	// SilenceDB is reported for channels with no signal and for empty
	// averages.
	SilenceDB = -96.0
	// FloorDB is the quietest level the visualizers show.
	FloorDB = -40.0
	// MaxAverage bounds how many recent samples a reader may average.
	MaxAverage = 5
)

// Characteristics summarises one analysis window.
type Characteristics struct {
	LeftDB  float64
	RightDB float64
	// Spectrum holds band magnitudes normalised to [0, 1], low bands first.
	Spectrum []float64
}

func (c Characteristics) clone() Characteristics {
	out := c
	if c.Spectrum != nil {
		out.Spectrum = make([]float64, len(c.Spectrum))
		copy(out.Spectrum, c.Spectrum)
	}
	return out
}

// MonoDB returns the louder of the two channels.
func (c Characteristics) MonoDB() float64 {
	return math.Max(c.LeftDB, c.RightDB)
}

// Feed is a fixed-capacity history of Characteristics. Push evicts the
// oldest record once full. All access is serialised; readers get copies.
type Feed struct {
	mu      sync.Mutex
	records []Characteristics
	next    int
	count   int
}

// NewFeed returns a feed retaining up to capacity records.
func NewFeed(capacity int) *Feed {
	if capacity < 1 {
		capacity = 1
	}
	return &Feed{records: make([]Characteristics, capacity)}
}

// Push appends c as the newest record.
func (f *Feed) Push(c Characteristics) {
	c = c.clone()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[f.next] = c
	f.next = (f.next + 1) % len(f.records)
	if f.count < len(f.records) {
		f.count++
	}
}

// Len returns the number of retained records.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// Capacity returns the maximum number of retained records.
func (f *Feed) Capacity() int {
	return len(f.records)
}

// Recent returns copies of up to k newest records, oldest first.
func (f *Feed) Recent(k int) []Characteristics {
	f.mu.Lock()
	defer f.mu.Unlock()
	if k > f.count {
		k = f.count
	}
	if k <= 0 {
		return nil
	}
	out := make([]Characteristics, k)
	size := len(f.records)
	start := (f.next - k + size) % size
	for i := range k {
		out[i] = f.records[(start+i)%size].clone()
	}
	return out
}

// Average returns the mean of up to k (at most MaxAverage) newest records.
// An empty feed averages to silence with no spectrum.
func (f *Feed) Average(k int) Characteristics {
	if k > MaxAverage {
		k = MaxAverage
	}
	recent := f.Recent(k)
	if len(recent) == 0 {
		return Characteristics{LeftDB: SilenceDB, RightDB: SilenceDB}
	}

	bins := 0
	for _, r := range recent {
		bins = max(bins, len(r.Spectrum))
	}
	avg := Characteristics{Spectrum: make([]float64, bins)}
	for _, r := range recent {
		avg.LeftDB += r.LeftDB
		avg.RightDB += r.RightDB
		for i, v := range r.Spectrum {
			avg.Spectrum[i] += v
		}
	}
	n := float64(len(recent))
	avg.LeftDB /= n
	avg.RightDB /= n
	for i := range avg.Spectrum {
		avg.Spectrum[i] /= n
	}
	return avg
}

// Clear drops every record.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next = 0
	f.count = 0
}

// Level maps a dB reading onto [0, 1] above FloorDB, compressing the range
// so loud passages do not peg the display.
func Level(db float64) float64 {
	if math.IsNaN(db) || db <= FloorDB {
		return 0
	}
	level := (db - FloorDB) / -FloorDB
	if level > 1 {
		level = 1
	}
	return level
}

// DB converts an RMS amplitude in [0, 1] to decibels, bottoming out at
// SilenceDB.
func DB(rms float64) float64 {
	if rms < 1e-6 {
		return SilenceDB
	}
	return math.Max(20*math.Log10(rms), SilenceDB)
}
