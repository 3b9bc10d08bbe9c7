package modem

import "math/rand"

// Result holds everything one synthesis pass produces.
type Result struct {
	Time          []float64 `json:"time"`
	Transmitted   []float64 `json:"transmitted"`
	Received      []float64 `json:"received"`
	Constellation []Point   `json:"constellation"`
	SpectrumFreqs []float64 `json:"spectrumFreqs"`
	SpectrumMags  []float64 `json:"spectrumMags"`
}

// Synthesize runs the full pipeline for one parameter change: parse the
// bit stream, modulate it, pass the waveform through the AWGN channel,
// and derive the scheme's constellation and the received spectrum.
// It is a pure function of its inputs; reusing a rand.Rand seeded the
// same way reproduces the received waveform bit for bit.
func Synthesize(bitStream string, p Params, rng *rand.Rand) (*Result, error) {
	bits, err := ParseBits(bitStream)
	if err != nil {
		return nil, err
	}

	t, tx, err := Modulate(bits, p)
	if err != nil {
		return nil, err
	}

	rx := AddNoise(tx, p.SNRdB, rng)
	freqs, mags := Spectrum(rx, p.SampleRate())

	return &Result{
		Time:          t,
		Transmitted:   tx,
		Received:      rx,
		Constellation: Constellation(p),
		SpectrumFreqs: freqs,
		SpectrumMags:  mags,
	}, nil
}
