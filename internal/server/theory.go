package server

import "modviz/internal/modem"

// Theory is the explanatory text shown alongside a scheme's plots.
type Theory struct {
	Description   string   `json:"description"`
	Advantages    []string `json:"advantages"`
	Disadvantages []string `json:"disadvantages"`
	Applications  []string `json:"applications"`
}

var theory = map[modem.Scheme]Theory{
	modem.ASK: {
		Description:   "Amplitude Shift Keying (ASK) represents binary data by switching the carrier amplitude between two levels.",
		Advantages:    []string{"Simple to implement", "Low bandwidth requirement"},
		Disadvantages: []string{"Sensitive to noise", "Less power-efficient"},
		Applications:  []string{"Optical fiber communication", "AM radio transmission"},
	},
	modem.BPSK: {
		Description:   "Binary Phase Shift Keying (BPSK) represents bits '0' and '1' by phase shifts of 0° and 180°.",
		Advantages:    []string{"Robust to noise", "Simple coherent demodulation"},
		Disadvantages: []string{"Low data rate", "Requires coherent receiver"},
		Applications:  []string{"Satellite communication", "RFID systems"},
	},
	modem.QPSK: {
		Description:   "Quadrature PSK (QPSK) encodes two bits per symbol, creating four phase states (45°, 135°, 225°, 315°).",
		Advantages:    []string{"Higher data rate than BPSK", "Bandwidth efficient"},
		Disadvantages: []string{"More complex receiver design", "Phase ambiguity issues"},
		Applications:  []string{"Wi-Fi (802.11)", "3G/4G LTE"},
	},
	modem.FSK: {
		Description:   "Frequency Shift Keying (FSK) transmits binary data by shifting the carrier between two frequencies.",
		Advantages:    []string{"Resistant to amplitude noise", "Simple demodulation techniques"},
		Disadvantages: []string{"Requires larger bandwidth", "Slower data rates"},
		Applications:  []string{"Modems", "Low-frequency radio communication"},
	},
	modem.DPSK: {
		Description:   "Differential PSK (DPSK) encodes bits using phase differences between successive symbols.",
		Advantages:    []string{"No coherent reference required", "Simpler demodulation than PSK"},
		Disadvantages: []string{"Slightly higher error rate than BPSK", "Phase error propagation"},
		Applications:  []string{"Wireless LANs", "Optical communication systems"},
	},
}

// TheoryFor returns the theory entry for a scheme.
func TheoryFor(s modem.Scheme) Theory {
	return theory[s]
}
