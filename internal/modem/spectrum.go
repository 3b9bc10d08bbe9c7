package modem

import (
	"math"
	"math/cmplx"
)

// Spectrum computes the single-sided magnitude spectrum of a waveform
// sampled at rate Hz. The input is zero-padded to the next power of two
// for the radix-2 FFT; magnitudes are normalized by the original sample
// count and doubled to fold in the negative frequencies. Returned slices
// hold one entry per bin from DC up to (not including) Nyquist.
func Spectrum(signal []float64, rate float64) (freqs, mags []float64) {
	if len(signal) == 0 {
		return nil, nil
	}

	n := nextPow2(len(signal))
	if n < 2 {
		n = 2 // a one-sample waveform still gets a DC bin
	}
	x := make([]complex128, n)
	for i, s := range signal {
		x[i] = complex(s, 0)
	}
	fft(x)

	half := n / 2
	freqs = make([]float64, half)
	mags = make([]float64, half)
	scale := 2 / float64(len(signal))
	for k := 0; k < half; k++ {
		freqs[k] = float64(k) * rate / float64(n)
		mags[k] = scale * cmplx.Abs(x[k])
	}
	mags[0] /= 2 // DC has no mirror image
	return freqs, mags
}

// fft runs an in-place iterative Cooley-Tukey radix-2 transform.
// len(x) must be a power of two.
func fft(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}
	bitReverse(x)
	for size := 2; size <= n; size <<= 1 {
		halfSize := size >> 1
		wn := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for j := 0; j < halfSize; j++ {
				u := x[start+j]
				v := w * x[start+j+halfSize]
				x[start+j] = u + v
				x[start+j+halfSize] = u - v
				w *= wn
			}
		}
	}
}

func bitReverse(x []complex128) {
	n := len(x)
	bits := 0
	for tmp := n; tmp > 1; tmp >>= 1 {
		bits++
	}
	for i := 0; i < n; i++ {
		j := reverseBits(i, bits)
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
}

func reverseBits(x, bits int) int {
	result := 0
	for i := 0; i < bits; i++ {
		result = (result << 1) | (x & 1)
		x >>= 1
	}
	return result
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
