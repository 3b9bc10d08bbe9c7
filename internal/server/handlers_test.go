package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"modviz/internal/config"
	"modviz/internal/modem"
)

func testHandlers() *Handlers {
	return NewHandlers(config.Default(), nil)
}

func postSimulate(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.HandleSimulate(w, req)
	return w
}

func TestHandleSimulate_OK(t *testing.T) {
	w := postSimulate(t, testHandlers(), `{"bits":"1010","scheme":"BPSK","seed":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var res modem.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}

	want := 4 * config.Default().Defaults.SamplesPerBit
	if len(res.Transmitted) != want || len(res.Received) != want {
		t.Errorf("waveform lengths %d/%d, want %d", len(res.Transmitted), len(res.Received), want)
	}
	if len(res.Constellation) != 2 {
		t.Errorf("BPSK constellation has %d points, want 2", len(res.Constellation))
	}
}

func TestHandleSimulate_DefaultsApply(t *testing.T) {
	// An empty request simulates the configured defaults: 8 ASK bits.
	w := postSimulate(t, testHandlers(), `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var res modem.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if want := 8 * config.Default().Defaults.SamplesPerBit; len(res.Transmitted) != want {
		t.Errorf("got %d samples, want %d", len(res.Transmitted), want)
	}
}

func TestHandleSimulate_ClampsRanges(t *testing.T) {
	// samplesPerBit below the slider floor is pulled up to 50.
	w := postSimulate(t, testHandlers(), `{"bits":"1010","scheme":"ASK","samplesPerBit":5,"seed":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var res modem.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if want := 4 * minSamplesPerBit; len(res.Transmitted) != want {
		t.Errorf("got %d samples, want %d (clamped)", len(res.Transmitted), want)
	}
}

func TestHandleSimulate_InvalidBits(t *testing.T) {
	w := postSimulate(t, testHandlers(), `{"bits":"abcxyz"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status %d, want 422", w.Code)
	}
}

func TestHandleSimulate_UnknownScheme(t *testing.T) {
	w := postSimulate(t, testHandlers(), `{"bits":"1010","scheme":"16-QAM"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestHandleSimulate_BadJSON(t *testing.T) {
	w := postSimulate(t, testHandlers(), `{"bits":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestHandleSimulate_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	w := httptest.NewRecorder()
	testHandlers().HandleSimulate(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status %d, want 405", w.Code)
	}
}

func TestHandleSimulate_Deterministic(t *testing.T) {
	h := testHandlers()
	body := `{"bits":"10110011","scheme":"DPSK","snrDb":5,"seed":42}`

	a := postSimulate(t, h, body)
	b := postSimulate(t, h, body)
	if a.Body.String() != b.Body.String() {
		t.Error("identical seeded requests produced different responses")
	}
}

func TestHandleSchemes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/schemes", nil)
	w := httptest.NewRecorder()
	testHandlers().HandleSchemes(w, req)

	var out []struct {
		Name          string `json:"name"`
		BitsPerSymbol int    `json:"bitsPerSymbol"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 5 {
		t.Fatalf("%d schemes, want 5", len(out))
	}
	for _, s := range out {
		want := 1
		if s.Name == "QPSK" {
			want = 2
		}
		if s.BitsPerSymbol != want {
			t.Errorf("%s: bitsPerSymbol %d, want %d", s.Name, s.BitsPerSymbol, want)
		}
	}
}

func TestHandleTheory(t *testing.T) {
	h := testHandlers()

	req := httptest.NewRequest(http.MethodGet, "/api/theory?scheme=QPSK", nil)
	w := httptest.NewRecorder()
	h.HandleTheory(w, req)

	var one Theory
	if err := json.Unmarshal(w.Body.Bytes(), &one); err != nil {
		t.Fatal(err)
	}
	if one.Description == "" || len(one.Applications) == 0 {
		t.Errorf("incomplete QPSK theory entry: %+v", one)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/theory", nil)
	w = httptest.NewRecorder()
	h.HandleTheory(w, req)

	var all map[string]Theory
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("%d theory entries, want 5", len(all))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/theory?scheme=QAM", nil)
	w = httptest.NewRecorder()
	h.HandleTheory(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown scheme: status %d, want 400", w.Code)
	}
}

func TestHandlePlay_AudioDisabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/play", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	testHandlers().HandlePlay(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status %d, want 503", w.Code)
	}
}

func TestHandleDevices_AudioDisabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/devices", nil)
	w := httptest.NewRecorder()
	testHandlers().HandleDevices(w, req)

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["status"] != "disabled" {
		t.Errorf("status %v, want disabled", out["status"])
	}
}

func TestHandleSimulate_ErrorReachesClients(t *testing.T) {
	// A failed REST simulation is logged to connected WebSocket clients.
	h := testHandlers()
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if w := postSimulate(t, h, `{"bits":"abcxyz"}`); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", w.Code)
	}

	var msg struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "log" || msg.Payload["level"] != "error" {
		t.Errorf("got %q/%q message, want log/error", msg.Type, msg.Payload["level"])
	}
}

func TestWebSocket_SimulateRoundTrip(t *testing.T) {
	h := testHandlers()
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"bits":"101","scheme":"ASK","seed":2}`)); err != nil {
		t.Fatal(err)
	}

	var msg struct {
		Type    string       `json:"type"`
		Payload modem.Result `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "simulation" {
		t.Fatalf("message type %q, want simulation", msg.Type)
	}
	if want := 3 * config.Default().Defaults.SamplesPerBit; len(msg.Payload.Received) != want {
		t.Errorf("received %d samples, want %d", len(msg.Payload.Received), want)
	}

	// Garbage in, error message out, connection stays up.
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"bits":"xyz"}`)); err != nil {
		t.Fatal(err)
	}
	var errMsg struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&errMsg); err != nil {
		t.Fatal(err)
	}
	if errMsg.Type != "error" {
		t.Errorf("message type %q, want error", errMsg.Type)
	}
}
