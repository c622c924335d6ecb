// Package decode turns audio files into interleaved 16-bit little-endian
// PCM for the analysis tap.
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// Decoder yields 16-bit LE PCM.
type Decoder interface {
	io.Reader
	SampleRate() int
	ChannelCount() int
	// Length is the total PCM byte count, or 0 when unknown.
	Length() int64
}

// Stream is an open file with its decoder.
type Stream struct {
	Decoder
	Path string
	file *os.File
}

// BytesPerSecond is the PCM byte rate of the stream.
func (s *Stream) BytesPerSecond() int {
	return s.SampleRate() * s.ChannelCount() * 2
}

// FrameBytes is the size of one interleaved sample frame.
func (s *Stream) FrameBytes() int {
	return s.ChannelCount() * 2
}

// Close releases the underlying file.
func (s *Stream) Close() error {
	return s.file.Close()
}

// Supported reports whether path has an extension Open can decode.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav", ".flac", ".ogg":
		return true
	}
	return false
}

// Open picks a decoder by file extension.
func Open(path string) (*Stream, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, fmt.Errorf("unsupported format: %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening audio: %w", err)
	}

	var dec Decoder
	switch ext {
	case ".mp3":
		dec, err = newMP3(f)
	case ".wav":
		dec, err = newWAV(f)
	case ".flac":
		dec, err = newFLAC(f)
	case ".ogg":
		dec, err = newOGG(f)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Stream{Decoder: dec, Path: path, file: f}, nil
}

// pending holds converted PCM that did not fit in the caller's buffer.
type pending struct {
	buf []byte
}

func (p *pending) drain(dst []byte) (int, bool) {
	if len(p.buf) == 0 {
		return 0, false
	}
	n := copy(dst, p.buf)
	p.buf = p.buf[n:]
	return n, true
}

func (p *pending) deliver(dst, raw []byte) int {
	n := copy(dst, raw)
	if n < len(raw) {
		p.buf = raw[n:]
	}
	return n
}

func putSample(raw []byte, i int, sample int) {
	if sample > 32767 {
		sample = 32767
	} else if sample < -32768 {
		sample = -32768
	}
	binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(sample)))
}

type mp3Decoder struct {
	dec *mp3.Decoder
}

func newMP3(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) SampleRate() int            { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int          { return 2 }
func (d *mp3Decoder) Length() int64              { return d.dec.Length() }

type wavDecoder struct {
	pending
	r        io.Reader
	rate     int
	channels int
	depth    int
	length   int64
}

func newWAV(f *os.File) (*wavDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	depth := int(dec.BitDepth)
	switch depth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported WAV bit depth %d", depth)
	}
	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, fmt.Errorf("invalid WAV channel count %d", channels)
	}
	srcFrame := int64(channels * depth / 8)

	return &wavDecoder{
		r:        f,
		rate:     int(dec.SampleRate),
		channels: channels,
		depth:    depth,
		length:   dec.PCMLen() / srcFrame * int64(channels) * 2,
	}, nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}

	width := d.depth / 8
	want := max(len(p)/2, 1)
	src := make([]byte, want*width)
	n, err := io.ReadFull(d.r, src)
	samples := n / width
	if samples == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, samples*2)
	for i := range samples {
		off := i * width
		var s int
		switch d.depth {
		case 8:
			s = (int(src[off]) - 128) << 8
		case 16:
			s = int(int16(binary.LittleEndian.Uint16(src[off:])))
		case 24:
			v := int32(src[off]) | int32(src[off+1])<<8 | int32(src[off+2])<<16
			if v&0x800000 != 0 {
				v |= ^0xFFFFFF
			}
			s = int(v >> 8)
		case 32:
			s = int(int32(binary.LittleEndian.Uint32(src[off:])) >> 16)
		}
		putSample(raw, i, s)
	}

	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return d.deliver(p, raw), err
}

func (d *wavDecoder) SampleRate() int   { return d.rate }
func (d *wavDecoder) ChannelCount() int { return d.channels }
func (d *wavDecoder) Length() int64     { return d.length }

type flacDecoder struct {
	pending
	stream   *flac.Stream
	rate     int
	channels int
	bps      int
	length   int64
}

func newFLAC(f *os.File) (*flacDecoder, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	info := stream.Info
	channels := int(info.NChannels)
	return &flacDecoder{
		stream:   stream,
		rate:     int(info.SampleRate),
		channels: channels,
		bps:      int(info.BitsPerSample),
		length:   int64(info.NSamples) * int64(channels) * 2,
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	n := int(frame.Subframes[0].NSamples)
	raw := make([]byte, n*d.channels*2)
	for i := range n {
		for ch := range d.channels {
			s := int(frame.Subframes[ch].Samples[i])
			switch {
			case d.bps > 16:
				s >>= d.bps - 16
			case d.bps < 16:
				s <<= 16 - d.bps
			}
			putSample(raw, i*d.channels+ch, s)
		}
	}
	return d.deliver(p, raw), nil
}

func (d *flacDecoder) SampleRate() int   { return d.rate }
func (d *flacDecoder) ChannelCount() int { return d.channels }
func (d *flacDecoder) Length() int64     { return d.length }

type oggDecoder struct {
	pending
	reader *oggvorbis.Reader
}

func newOGG(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	return &oggDecoder{reader: reader}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	if n, ok := d.drain(p); ok {
		return n, nil
	}

	samples := make([]float32, max(len(p)/2, 1))
	n, err := d.reader.Read(samples)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}

	raw := make([]byte, n*2)
	for i, s := range samples[:n] {
		putSample(raw, i, int(s*32767))
	}
	return d.deliver(p, raw), err
}

func (d *oggDecoder) SampleRate() int   { return d.reader.SampleRate() }
func (d *oggDecoder) ChannelCount() int { return d.reader.Channels() }
func (d *oggDecoder) Length() int64 {
	return d.reader.Length() * int64(d.reader.Channels()) * 2
}
