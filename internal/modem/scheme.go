package modem

import (
	"fmt"
	"strings"
)

// Scheme identifies a digital modulation scheme.
type Scheme int

const (
	ASK Scheme = iota // amplitude shift keying
	BPSK              // binary phase shift keying
	QPSK              // quadrature phase shift keying, 2 bits per symbol
	FSK               // frequency shift keying
	DPSK              // differential phase shift keying
)

// Schemes lists every supported scheme in display order.
var Schemes = []Scheme{ASK, BPSK, QPSK, FSK, DPSK}

// BitsPerSymbol returns the number of bits carried by one symbol window.
func (s Scheme) BitsPerSymbol() int {
	if s == QPSK {
		return 2
	}
	return 1
}

// String returns the scheme name.
func (s Scheme) String() string {
	switch s {
	case ASK:
		return "ASK"
	case BPSK:
		return "BPSK"
	case QPSK:
		return "QPSK"
	case FSK:
		return "FSK"
	case DPSK:
		return "DPSK"
	default:
		return "Unknown"
	}
}

// ParseScheme converts a scheme name (case-insensitive) into a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ASK":
		return ASK, nil
	case "BPSK":
		return BPSK, nil
	case "QPSK":
		return QPSK, nil
	case "FSK":
		return FSK, nil
	case "DPSK":
		return DPSK, nil
	default:
		return 0, fmt.Errorf("%w: unknown scheme %q", ErrConfig, name)
	}
}
