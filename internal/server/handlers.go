package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"modviz/internal/audio"
	"modviz/internal/config"
	"modviz/internal/modem"
)

// Slider ranges for the web UI controls. Out-of-range requests are clamped
// into these bounds rather than rejected; the synthesis core assumes its
// numeric inputs went through range-limited controls.
const (
	minBitRate, maxBitRate             = 1.0, 20.0
	minAmplitude, maxAmplitude         = 1.0, 10.0
	minCarrierFreq, maxCarrierFreq     = 1.0, 50.0
	minSamplesPerBit, maxSamplesPerBit = 50, 1000
	minSNRdB, maxSNRdB                 = -5.0, 40.0
	minFreqSep, maxFreqSep             = 2.0, 20.0
)

// Handlers holds the HTTP API handlers.
type Handlers struct {
	wsHub    *WSHub
	defaults config.Defaults
	player   *audio.Player // nil when audio output is disabled
	playMu   sync.Mutex
}

// NewHandlers creates new API handlers. A nil player disables the
// playback endpoints.
func NewHandlers(cfg *config.Config, player *audio.Player) *Handlers {
	return &Handlers{
		wsHub:    NewWSHub(),
		defaults: cfg.Defaults,
		player:   player,
	}
}

// SimulateRequest carries one parameter set from the UI. Omitted fields
// fall back to the configured defaults.
type SimulateRequest struct {
	Bits          *string  `json:"bits"`
	Scheme        *string  `json:"scheme"`
	BitRate       *float64 `json:"bitRate"`
	Amplitude     *float64 `json:"amplitude"`
	CarrierFreq   *float64 `json:"carrierFrequency"`
	SamplesPerBit *int     `json:"samplesPerBit"`
	SNRdB         *float64 `json:"snrDb"`
	FreqSep       *float64 `json:"frequencySeparation"`
	Seed          *int64   `json:"seed"`
}

// resolve merges a request with the defaults, clamps the slider-backed
// values, and builds the random source for the noise injector.
func (h *Handlers) resolve(req SimulateRequest) (bits string, p modem.Params, rng *rand.Rand, err error) {
	d := h.defaults

	bits = d.Bits
	if req.Bits != nil {
		bits = *req.Bits
	}

	schemeName := d.Scheme
	if req.Scheme != nil {
		schemeName = *req.Scheme
	}
	scheme, err := modem.ParseScheme(schemeName)
	if err != nil {
		return "", modem.Params{}, nil, err
	}

	p = modem.Params{
		Scheme:        scheme,
		BitRate:       clampFloat(req.BitRate, d.BitRate, minBitRate, maxBitRate),
		Amplitude:     clampFloat(req.Amplitude, d.Amplitude, minAmplitude, maxAmplitude),
		CarrierFreq:   clampFloat(req.CarrierFreq, d.CarrierFreq, minCarrierFreq, maxCarrierFreq),
		SamplesPerBit: clampInt(req.SamplesPerBit, d.SamplesPerBit, minSamplesPerBit, maxSamplesPerBit),
		SNRdB:         clampFloat(req.SNRdB, d.SNRdB, minSNRdB, maxSNRdB),
		FreqSep:       clampFloat(req.FreqSep, d.FreqSep, minFreqSep, maxFreqSep),
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	return bits, p, rand.New(rand.NewSource(seed)), nil
}

func (h *Handlers) simulate(req SimulateRequest) (*modem.Result, error) {
	bits, p, rng, err := h.resolve(req)
	if err != nil {
		return nil, err
	}
	return modem.Synthesize(bits, p, rng)
}

// HandleSimulate runs one synthesis pass and returns the arrays the UI
// plots: time grid, clean and noisy waveforms, constellation, spectrum.
func (h *Handlers) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Parse request: %v", err), http.StatusBadRequest)
		return
	}

	res, err := h.simulate(req)
	if err != nil {
		h.wsHub.BroadcastLog("error", fmt.Sprintf("Simulation failed: %v", err))
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// HandleSchemes lists the supported modulation schemes.
func (h *Handlers) HandleSchemes(w http.ResponseWriter, r *http.Request) {
	type schemeInfo struct {
		Name          string `json:"name"`
		BitsPerSymbol int    `json:"bitsPerSymbol"`
	}
	var out []schemeInfo
	for _, s := range modem.Schemes {
		out = append(out, schemeInfo{Name: s.String(), BitsPerSymbol: s.BitsPerSymbol()})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// HandleTheory serves the explanatory text for one scheme, or for all
// schemes when no scheme query parameter is given.
func (h *Handlers) HandleTheory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	name := r.URL.Query().Get("scheme")
	if name == "" {
		all := make(map[string]Theory, len(modem.Schemes))
		for _, s := range modem.Schemes {
			all[s.String()] = TheoryFor(s)
		}
		json.NewEncoder(w).Encode(all)
		return
	}

	scheme, err := modem.ParseScheme(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	json.NewEncoder(w).Encode(TheoryFor(scheme))
}

// HandlePlay synthesizes the requested waveform and plays the noisy
// version through the default output device in the background.
func (h *Handlers) HandlePlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.player == nil {
		http.Error(w, "Audio output disabled", http.StatusServiceUnavailable)
		return
	}

	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Parse request: %v", err), http.StatusBadRequest)
		return
	}

	bits, p, rng, err := h.resolve(req)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}
	res, err := modem.Synthesize(bits, p, rng)
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	go func() {
		h.playMu.Lock()
		defer h.playMu.Unlock()

		h.wsHub.BroadcastStatus("playing", fmt.Sprintf("Playing %s waveform (%d samples)", p.Scheme, len(res.Received)))
		if err := h.player.Play(res.Received, p.SampleRate()); err != nil {
			h.wsHub.BroadcastStatus("error", fmt.Sprintf("Playback failed: %v", err))
			return
		}
		h.wsHub.BroadcastStatus("idle", "Playback finished")
	}()

	json.NewEncoder(w).Encode(map[string]string{
		"status": "playing",
	})
}

// HandleDevices lists available audio output devices.
func (h *Handlers) HandleDevices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.player == nil {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "disabled",
		})
		return
	}

	devices, err := audio.ListDevices()
	if err != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"devices":   devices,
		"hasOutput": audio.HasOutputDevice(),
	})
}

// HandleWebSocket upgrades the connection and re-simulates on every
// parameter message the client sends, replying on the same connection.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // Upgrade already wrote the error response
	}

	h.wsHub.AddClient(conn)

	go func() {
		defer h.wsHub.RemoveClient(conn)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var req SimulateRequest
			if err := json.Unmarshal(data, &req); err != nil {
				h.wsHub.Send(conn, WSMessage{Type: "error", Payload: map[string]string{
					"message": fmt.Sprintf("parse request: %v", err),
				}})
				continue
			}

			res, err := h.simulate(req)
			if err != nil {
				h.wsHub.Send(conn, WSMessage{Type: "error", Payload: map[string]string{
					"message": err.Error(),
				}})
				continue
			}
			h.wsHub.Send(conn, WSMessage{Type: "simulation", Payload: res})
		}
	}()
}

// errorStatus maps synthesis errors onto HTTP status codes: bad user
// input is 422, a bad parameter set is 400.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, modem.ErrNoBits):
		return http.StatusUnprocessableEntity
	case errors.Is(err, modem.ErrConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func clampFloat(override *float64, def, lo, hi float64) float64 {
	v := def
	if override != nil {
		v = *override
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(override *int, def, lo, hi int) int {
	v := def
	if override != nil {
		v = *override
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
