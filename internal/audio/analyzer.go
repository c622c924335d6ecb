package audio

import (
	"encoding/binary"
	"math"
)

const (
	defaultFFTSize = 1024
	// DefaultBands matches the width of the 17-column matrix minus a gutter.
	DefaultBands = 16
	defaultDecay = 0.3
)

// Analyzer turns interleaved 16-bit PCM into Characteristics: per-channel
// RMS in dB and a log-banded, smoothed magnitude spectrum.
type Analyzer struct {
	channels int
	numBands int
	fftSize  int
	decay    float64
	bands    []float64
	real     []float64
	imag     []float64
}

// NewAnalyzer returns an analyzer for PCM with the given channel count.
func NewAnalyzer(channels, numBands int) *Analyzer {
	if channels < 1 {
		channels = 2
	}
	if numBands < 1 {
		numBands = DefaultBands
	}
	return &Analyzer{
		channels: channels,
		numBands: numBands,
		fftSize:  defaultFFTSize,
		decay:    defaultDecay,
		bands:    make([]float64, numBands),
		real:     make([]float64, defaultFFTSize),
		imag:     make([]float64, defaultFFTSize),
	}
}

// WindowBytes is the PCM byte count one Analyze call consumes.
func (a *Analyzer) WindowBytes() int {
	return a.fftSize * a.channels * 2
}

// FrameBytes is the size of one interleaved sample frame.
func (a *Analyzer) FrameBytes() int {
	return a.channels * 2
}

// Samples decodes little-endian 16-bit PCM.
func Samples(pcm []byte) []int16 {
	out := make([]int16, len(pcm)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	return out
}

// Analyze processes interleaved samples. Short input still yields levels;
// the spectrum only updates once a full FFT window is available.
func (a *Analyzer) Analyze(samples []int16) Characteristics {
	left, right := a.levels(samples)
	a.spectrum(samples)

	out := Characteristics{
		LeftDB:   DB(left),
		RightDB:  DB(right),
		Spectrum: make([]float64, a.numBands),
	}
	maxVal := 0.01
	for _, v := range a.bands {
		maxVal = math.Max(maxVal, v)
	}
	for i, v := range a.bands {
		out.Spectrum[i] = v / maxVal
	}
	return out
}

func (a *Analyzer) levels(samples []int16) (left, right float64) {
	var leftSum, rightSum float64
	frames := len(samples) / a.channels
	if frames == 0 {
		return 0, 0
	}
	for i := range frames {
		l := float64(samples[i*a.channels]) / 32768.0
		r := l
		if a.channels > 1 {
			r = float64(samples[i*a.channels+1]) / 32768.0
		}
		leftSum += l * l
		rightSum += r * r
	}
	return math.Sqrt(leftSum / float64(frames)), math.Sqrt(rightSum / float64(frames))
}

func (a *Analyzer) spectrum(samples []int16) {
	if len(samples) < a.fftSize*a.channels {
		return
	}

	for i := range a.fftSize {
		var mono float64
		for ch := range a.channels {
			mono += float64(samples[i*a.channels+ch])
		}
		mono /= 32768.0 * float64(a.channels)
		w := 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(a.fftSize-1)))
		a.real[i] = mono * w
		a.imag[i] = 0
	}

	fft(a.real, a.imag)

	maxBin := a.fftSize / 2
	for b := range a.numBands {
		lo := int(math.Pow(float64(maxBin), float64(b)/float64(a.numBands)))
		hi := int(math.Pow(float64(maxBin), float64(b+1)/float64(a.numBands)))
		if lo < 1 {
			lo = 1
		}
		if hi <= lo {
			hi = lo + 1
		}
		if hi > maxBin {
			hi = maxBin
		}

		sum := 0.0
		count := 0
		for i := lo; i < hi; i++ {
			sum += math.Hypot(a.real[i], a.imag[i])
			count++
		}
		var mag float64
		if count > 0 {
			mag = sum / float64(count)
		}
		a.bands[b] = a.bands[b]*a.decay + mag*(1-a.decay)
	}
}
