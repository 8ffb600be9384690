package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garysibanda/howitzer-simulator/core"
	"github.com/garysibanda/howitzer-simulator/model"
)

func newTestServer() *Server {
	terrain := core.FlatTerrain{TargetPos: model.Position{X: 100000}}
	return NewServer(core.NewSimulationEngine(terrain), nil)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestStateBeforeFirstShot(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodGet, "/state", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var state stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Phase != "idle" {
		t.Fatalf("phase = %q, want idle", state.Phase)
	}
	if state.ShotsAttempted != 0 || state.Score != 0 {
		t.Fatalf("fresh engine should have no shots, got %+v", state)
	}
	if state.LastShot != nil {
		t.Fatal("fresh engine should have no last shot")
	}
	if state.Target.X != 100000 {
		t.Fatalf("target x = %v, want 100000", state.Target.X)
	}
}

func TestFireAcceptsAimOverrides(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodPost, "/fire", map[string]float64{
		"elevationDegrees": 60,
		"muzzleVelocity":   500,
	})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
	}

	var state stateResponse
	stateRec := doJSON(t, s, http.MethodGet, "/state", nil)
	if err := json.Unmarshal(stateRec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Phase != "firing" {
		t.Fatalf("phase = %q, want firing", state.Phase)
	}
	if state.ElevationDegrees != 60 {
		t.Fatalf("elevation = %v, want 60", state.ElevationDegrees)
	}
	if state.MuzzleVelocity != 500 {
		t.Fatalf("muzzle velocity = %v, want 500", state.MuzzleVelocity)
	}
	if state.ShotsAttempted != 1 {
		t.Fatalf("shots attempted = %d, want 1", state.ShotsAttempted)
	}
}

func TestFireConflictsWhileInFlight(t *testing.T) {
	s := newTestServer()
	if rec := doJSON(t, s, http.MethodPost, "/fire", nil); rec.Code != http.StatusAccepted {
		t.Fatalf("first fire status = %d, want 202", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/fire", nil); rec.Code != http.StatusConflict {
		t.Fatalf("second fire status = %d, want 409", rec.Code)
	}
}

func TestFireRejectsBadBody(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/fire", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/fire", map[string]float64{"muzzleVelocity": -1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative muzzle velocity status = %d, want 400", rec.Code)
	}
}

func TestTrajectoryGrowsWithTicks(t *testing.T) {
	s := newTestServer()
	if rec := doJSON(t, s, http.MethodPost, "/fire", nil); rec.Code != http.StatusAccepted {
		t.Fatalf("fire status = %d", rec.Code)
	}

	s.LockEngine(func(se *core.SimulationEngine) {
		for i := 0; i < 5; i++ {
			if err := se.Tick(0.5); err != nil {
				t.Fatalf("Tick failed: %v", err)
			}
		}
	})

	rec := doJSON(t, s, http.MethodGet, "/trajectory", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var samples []trajectorySample
	if err := json.Unmarshal(rec.Body.Bytes(), &samples); err != nil {
		t.Fatalf("decode trajectory: %v", err)
	}
	// Launch sample plus five ticks.
	if len(samples) != 6 {
		t.Fatalf("samples = %d, want 6", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Time <= samples[i-1].Time {
			t.Fatalf("trajectory times not increasing at %d", i)
		}
	}
}

func TestResetClearsScoreboard(t *testing.T) {
	s := newTestServer()
	if rec := doJSON(t, s, http.MethodPost, "/fire", nil); rec.Code != http.StatusAccepted {
		t.Fatalf("fire status = %d", rec.Code)
	}

	rec := doJSON(t, s, http.MethodPost, "/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", rec.Code)
	}

	var state stateResponse
	stateRec := doJSON(t, s, http.MethodGet, "/state", nil)
	if err := json.Unmarshal(stateRec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Phase != "idle" || state.ShotsAttempted != 0 {
		t.Fatalf("state after reset = %+v, want idle with zero shots", state)
	}
}

func TestMethodRouting(t *testing.T) {
	s := newTestServer()
	if rec := doJSON(t, s, http.MethodGet, "/fire", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /fire status = %d, want 405", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/state", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /state status = %d, want 405", rec.Code)
	}
}
