package audio

import "math"

// fft transforms re/im in place with an iterative radix-2 FFT. Both slices
// must have the same power-of-two length.
func fft(re, im []float64) {
	n := len(re)
	if n <= 1 {
		return
	}

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		theta := -2 * math.Pi / float64(size)
		// Twiddle factors advance by rotation instead of calling Sincos for
		// every butterfly.
		stepRe, stepIm := math.Cos(theta), math.Sin(theta)
		for start := 0; start < n; start += size {
			wr, wi := 1.0, 0.0
			for k := range half {
				a := start + k
				b := a + half
				tr := wr*re[b] - wi*im[b]
				ti := wr*im[b] + wi*re[b]
				re[b] = re[a] - tr
				im[b] = im[a] - ti
				re[a] += tr
				im[a] += ti
				wr, wi = wr*stepRe-wi*stepIm, wr*stepIm+wi*stepRe
			}
		}
	}
}
