package modem

import "fmt"

// ParseBits extracts the binary digits from a raw bit-stream string.
// Any character other than '0' or '1' is ignored, so inputs like
// "1011 0011" or "1,0,1" are accepted. An input with no binary digits
// at all fails with ErrNoBits.
func ParseBits(raw string) ([]byte, error) {
	bits := make([]byte, 0, len(raw))
	for _, c := range raw {
		switch c {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		}
	}
	if len(bits) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoBits, raw)
	}
	return bits, nil
}
