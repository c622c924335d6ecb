package audio

import "sync"

// RingBuffer keeps the most recent PCM bytes seen by a Tap. The decoder
// side writes while the analysis loop reads.
type RingBuffer struct {
	buf     []byte
	w       int
	len     int
	written uint64
	mu      sync.Mutex
}

// NewRingBuffer creates a ring buffer holding size bytes.
func NewRingBuffer(size int) *RingBuffer {
	if size < 1 {
		size = 1
	}
	return &RingBuffer{buf: make([]byte, size)}
}

// Write appends p, overwriting the oldest bytes when full. It never fails.
func (rb *RingBuffer) Write(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	size := len(rb.buf)
	src := p
	if len(src) > size {
		src = src[len(src)-size:]
		rb.w = (rb.w + len(p) - size) % size
	}
	for _, b := range src {
		rb.buf[rb.w] = b
		rb.w = (rb.w + 1) % size
	}
	rb.len = min(rb.len+len(p), size)
	rb.written += uint64(len(p))
	return len(p), nil
}

// Latest returns up to n of the most recent bytes, truncated down to a
// multiple of align so sample frames are never split.
func (rb *RingBuffer) Latest(n, align int) []byte {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if n > rb.len {
		n = rb.len
	}
	if align > 1 {
		n -= n % align
	}
	if n <= 0 {
		return nil
	}

	size := len(rb.buf)
	out := make([]byte, n)
	start := (rb.w - n + size) % size
	for i := range n {
		out[i] = rb.buf[(start+i)%size]
	}
	return out
}

// Written returns the total bytes ever written, which lets readers notice
// when nothing new has arrived.
func (rb *RingBuffer) Written() uint64 {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.written
}

// Reset empties the buffer.
func (rb *RingBuffer) Reset() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.w = 0
	rb.len = 0
}
