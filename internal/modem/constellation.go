package modem

import "math"

// Point is one ideal constellation coordinate with its symbol label.
type Point struct {
	Label string  `json:"label"`
	I     float64 `json:"i"`
	Q     float64 `json:"q"`
}

// Constellation returns the ideal symbol positions for the scheme,
// independent of any bit stream. ASK and BPSK scale with the carrier
// amplitude; QPSK and DPSK are plotted on the unit circle.
//
// FSK has no true I/Q constellation. As a plotting convenience its two
// instantaneous tone frequencies go on the I axis with Q fixed at zero.
func Constellation(p Params) []Point {
	switch p.Scheme {
	case ASK:
		return []Point{
			{Label: "0", I: 0, Q: 0},
			{Label: "1", I: p.Amplitude, Q: 0},
		}
	case BPSK:
		return []Point{
			{Label: "0", I: p.Amplitude, Q: 0},
			{Label: "1", I: -p.Amplitude, Q: 0},
		}
	case QPSK:
		// Same phase table as the modulator, in symbol order 00 01 11 10.
		return []Point{
			phasePoint("00", math.Pi/4),
			phasePoint("01", 3*math.Pi/4),
			phasePoint("11", 5*math.Pi/4),
			phasePoint("10", 7*math.Pi/4),
		}
	case FSK:
		return []Point{
			{Label: "0", I: p.CarrierFreq - p.FreqSep/2, Q: 0},
			{Label: "1", I: p.CarrierFreq + p.FreqSep/2, Q: 0},
		}
	case DPSK:
		return []Point{
			phasePoint("0", 0),
			phasePoint("1", math.Pi),
		}
	default:
		return nil
	}
}

func phasePoint(label string, phase float64) Point {
	return Point{Label: label, I: math.Cos(phase), Q: math.Sin(phase)}
}
