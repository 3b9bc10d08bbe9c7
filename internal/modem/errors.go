package modem

import "errors"

// Synthesis errors. Callers can match them with errors.Is to decide
// whether bad user input or a bad parameter set aborted the run.
var (
	// ErrNoBits reports a bit-stream input with no '0' or '1' characters.
	ErrNoBits = errors.New("bit stream contains no binary digits")

	// ErrConfig reports a missing or out-of-range simulation parameter.
	ErrConfig = errors.New("invalid simulation parameters")
)
