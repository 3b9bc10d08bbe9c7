package modem

import (
	"math"
	"math/rand"
)

// AddNoise returns signal plus additive white Gaussian noise scaled so
// the result has the requested signal-to-noise ratio in dB. The rng is
// caller-supplied so a run can be reproduced from a fixed seed.
//
// A silent input (zero mean-square power, e.g. an all-zero ASK stream)
// yields zero noise power, so the output equals the input exactly.
func AddNoise(signal []float64, snrDB float64, rng *rand.Rand) []float64 {
	out := make([]float64, len(signal))
	sigPower := meanPower(signal)
	if sigPower == 0 {
		copy(out, signal)
		return out
	}

	noisePower := sigPower / math.Pow(10, snrDB/10)
	sigma := math.Sqrt(noisePower)
	for i, s := range signal {
		out[i] = s + sigma*rng.NormFloat64()
	}
	return out
}

// meanPower returns the mean squared amplitude of the signal.
func meanPower(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	var sum float64
	for _, s := range signal {
		sum += s * s
	}
	return sum / float64(len(signal))
}
