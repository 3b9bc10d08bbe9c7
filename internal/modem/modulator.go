package modem

import (
	"fmt"
	"math"
)

// Modulate synthesizes the transmitted waveform for the given bits.
// It returns the time grid and the signal, aligned one to one. The grid
// covers [0, Tb*n) with SamplesPerBit evenly spaced samples per bit
// interval, where n is the bit count after any QPSK padding.
//
// Each symbol occupies a right-open window [k*Tb, (k+1)*Tb); windows are
// written on disjoint index ranges so bit edges are never assigned twice.
func Modulate(bits []byte, p Params) (t, signal []float64, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if len(bits) == 0 {
		return nil, nil, fmt.Errorf("%w: empty bit slice", ErrNoBits)
	}

	// QPSK pairs bits, so pad with a trailing 0 to an even length
	// before sizing the grid. The grid must be sized after padding or
	// the window count and pair count drift apart.
	if p.Scheme == QPSK && len(bits)%2 != 0 {
		padded := make([]byte, len(bits)+1)
		copy(padded, bits)
		bits = padded
	}

	n := p.SamplesPerBit * len(bits)
	rate := p.SampleRate()
	t = make([]float64, n)
	for i := range t {
		t[i] = float64(i) / rate
	}
	signal = make([]float64, n)

	switch p.Scheme {
	case ASK:
		modulateASK(bits, p, t, signal)
	case BPSK:
		modulateBPSK(bits, p, t, signal)
	case QPSK:
		modulateQPSK(bits, p, t, signal)
	case FSK:
		modulateFSK(bits, p, t, signal)
	case DPSK:
		modulateDPSK(bits, p, t, signal)
	default:
		return nil, nil, fmt.Errorf("%w: unknown scheme %d", ErrConfig, p.Scheme)
	}
	return t, signal, nil
}

// qpskPhase maps a 2-bit symbol index (first bit high) to its carrier
// phase. The '10' and '11' entries are intentionally swapped relative to
// rotational order; the constellation mapper mirrors this exact table.
var qpskPhase = [4]float64{
	math.Pi / 4,     // 00
	3 * math.Pi / 4, // 01
	7 * math.Pi / 4, // 10
	5 * math.Pi / 4, // 11
}

func modulateASK(bits []byte, p Params, t, signal []float64) {
	for k, b := range bits {
		if b == 0 {
			continue // a '0' window transmits nothing
		}
		lo := k * p.SamplesPerBit
		for i := lo; i < lo+p.SamplesPerBit; i++ {
			signal[i] = p.Amplitude * math.Sin(2*math.Pi*p.CarrierFreq*t[i])
		}
	}
}

func modulateBPSK(bits []byte, p Params, t, signal []float64) {
	for k, b := range bits {
		phase := 0.0
		if b == 1 {
			phase = math.Pi
		}
		lo := k * p.SamplesPerBit
		for i := lo; i < lo+p.SamplesPerBit; i++ {
			signal[i] = p.Amplitude * math.Sin(2*math.Pi*p.CarrierFreq*t[i]+phase)
		}
	}
}

func modulateQPSK(bits []byte, p Params, t, signal []float64) {
	// One window per bit pair, each Tb wide. With half as many windows
	// as bit intervals, the tail of the grid stays at zero.
	for k := 0; k < len(bits)/2; k++ {
		sym := bits[2*k]<<1 | bits[2*k+1]
		phase := qpskPhase[sym]
		lo := k * p.SamplesPerBit
		for i := lo; i < lo+p.SamplesPerBit; i++ {
			signal[i] = p.Amplitude * math.Sin(2*math.Pi*p.CarrierFreq*t[i]+phase)
		}
	}
}

func modulateFSK(bits []byte, p Params, t, signal []float64) {
	f0 := p.CarrierFreq - p.FreqSep/2
	f1 := p.CarrierFreq + p.FreqSep/2
	for k, b := range bits {
		f := f0
		if b == 1 {
			f = f1
		}
		lo := k * p.SamplesPerBit
		for i := lo; i < lo+p.SamplesPerBit; i++ {
			signal[i] = p.Amplitude * math.Sin(2*math.Pi*f*t[i])
		}
	}
}

func modulateDPSK(bits []byte, p Params, t, signal []float64) {
	// The phase carries across windows: each '1' flips it by pi before
	// its window is written, each '0' leaves it alone. Window k depends
	// on every bit before it, so this loop is sequential by nature.
	phase := 0.0
	for k, b := range bits {
		if b == 1 {
			phase = math.Mod(phase+math.Pi, 2*math.Pi)
		}
		lo := k * p.SamplesPerBit
		for i := lo; i < lo+p.SamplesPerBit; i++ {
			signal[i] = p.Amplitude * math.Sin(2*math.Pi*p.CarrierFreq*t[i]+phase)
		}
	}
}
