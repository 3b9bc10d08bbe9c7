package modem

import "fmt"

// Params holds one immutable simulation parameter set. All fields are
// read once per synthesis pass; nothing is cached between passes.
type Params struct {
	Scheme        Scheme
	BitRate       float64 // bits per second
	Amplitude     float64 // carrier peak amplitude
	CarrierFreq   float64 // Hz
	SamplesPerBit int     // sampling density per bit interval
	SNRdB         float64 // target signal-to-noise ratio, may be negative
	FreqSep       float64 // Hz between the two FSK tones, FSK only
}

// DefaultParams returns the parameter set the visualizer starts with.
func DefaultParams() Params {
	return Params{
		Scheme:        ASK,
		BitRate:       5,
		Amplitude:     3.0,
		CarrierFreq:   10,
		SamplesPerBit: 300,
		SNRdB:         25,
		FreqSep:       6.0,
	}
}

// BitDuration returns Tb, the duration of one bit interval in seconds.
func (p Params) BitDuration() float64 {
	return 1 / p.BitRate
}

// SampleRate returns the effective sampling rate of the waveform in Hz.
func (p Params) SampleRate() float64 {
	return float64(p.SamplesPerBit) * p.BitRate
}

// Validate checks the parameter set for values the synthesis math cannot
// handle. Range clamping of slider-style inputs is the caller's job; this
// only rejects what would produce a degenerate or infinite grid.
func (p Params) Validate() error {
	if p.BitRate <= 0 {
		return fmt.Errorf("%w: bit rate must be positive, got %g", ErrConfig, p.BitRate)
	}
	if p.Amplitude <= 0 {
		return fmt.Errorf("%w: amplitude must be positive, got %g", ErrConfig, p.Amplitude)
	}
	if p.CarrierFreq <= 0 {
		return fmt.Errorf("%w: carrier frequency must be positive, got %g", ErrConfig, p.CarrierFreq)
	}
	if p.SamplesPerBit <= 0 {
		return fmt.Errorf("%w: samples per bit must be positive, got %d", ErrConfig, p.SamplesPerBit)
	}
	if p.Scheme == FSK && p.FreqSep <= 0 {
		return fmt.Errorf("%w: FSK requires a positive frequency separation", ErrConfig)
	}
	return nil
}
