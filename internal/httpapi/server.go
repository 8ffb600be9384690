package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/garysibanda/howitzer-simulator/core"
	"github.com/garysibanda/howitzer-simulator/internal/logging"
	"github.com/garysibanda/howitzer-simulator/model"
)

// Server exposes a small JSON control surface over a simulation engine.
// The engine itself is single-threaded, so the server serializes all
// access behind one mutex; the run loop must use LockEngine around its own
// ticking.
type Server struct {
	mu     sync.Mutex
	engine *core.SimulationEngine
	log    logging.Logger
}

// NewServer wraps an engine. A nil logger disables logging.
func NewServer(engine *core.SimulationEngine, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{engine: engine, log: log}
}

// LockEngine runs fn with exclusive access to the engine. The simulation
// run loop uses this to tick safely alongside HTTP handlers.
func (s *Server) LockEngine(fn func(*core.SimulationEngine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/fire", s.handleFire).Methods(http.MethodPost)
	r.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/trajectory", s.handleTrajectory).Methods(http.MethodGet)
	r.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	return r
}

type fireRequest struct {
	ElevationDegrees *float64 `json:"elevationDegrees,omitempty"`
	MuzzleVelocity   *float64 `json:"muzzleVelocity,omitempty"`
}

type positionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type velocityJSON struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type shotReportJSON struct {
	Hit            bool         `json:"hit"`
	ImpactPosition positionJSON `json:"impactPosition"`
	TargetDistance float64      `json:"targetDistanceMeters"`
	FlightTime     float64      `json:"flightTimeSeconds"`
	MaxAltitude    float64      `json:"maxAltitudeMeters"`
	TotalDistance  float64      `json:"totalDistanceMeters"`
}

type stateResponse struct {
	Phase            string          `json:"phase"`
	SimTime          float64         `json:"simTimeSeconds"`
	Position         positionJSON    `json:"position"`
	Velocity         velocityJSON    `json:"velocity"`
	Speed            float64         `json:"speedMps"`
	Altitude         float64         `json:"altitudeMeters"`
	ElevationDegrees float64         `json:"elevationDegrees"`
	MuzzleVelocity   float64         `json:"muzzleVelocityMps"`
	Target           positionJSON    `json:"target"`
	Score            int             `json:"score"`
	ShotsAttempted   int             `json:"shotsAttempted"`
	HitRate          float64         `json:"hitRate"`
	LastShot         *shotReportJSON `json:"lastShot,omitempty"`
}

type trajectorySample struct {
	Position positionJSON `json:"position"`
	Velocity velocityJSON `json:"velocity"`
	Time     float64      `json:"timeSeconds"`
}

func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	var req fireRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.engine.Howitzer()
	if req.ElevationDegrees != nil {
		h.SetElevationDegrees(*req.ElevationDegrees)
	}
	if req.MuzzleVelocity != nil {
		if err := h.SetMuzzleVelocity(*req.MuzzleVelocity); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := s.engine.Fire(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	s.writeJSON(w, http.StatusAccepted, map[string]any{
		"round":            s.engine.ShotsAttempted(),
		"elevationDegrees": h.Elevation().Degrees(),
		"muzzleVelocity":   h.MuzzleVelocity(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.engine.Projectile()
	h := s.engine.Howitzer()
	resp := stateResponse{
		Phase:            s.engine.Phase().String(),
		SimTime:          s.engine.SimTime(),
		Position:         toPositionJSON(p.Position()),
		Velocity:         velocityJSON{DX: p.Velocity().DX, DY: p.Velocity().DY},
		Speed:            p.Speed(),
		Altitude:         p.Altitude(),
		ElevationDegrees: h.Elevation().Degrees(),
		MuzzleVelocity:   h.MuzzleVelocity(),
		Target:           toPositionJSON(s.engine.Terrain().Target()),
		Score:            s.engine.Score(),
		ShotsAttempted:   s.engine.ShotsAttempted(),
		HitRate:          s.engine.HitRate(),
	}
	if last := s.engine.LastShot(); last != nil {
		resp.LastShot = &shotReportJSON{
			Hit:            last.Hit,
			ImpactPosition: toPositionJSON(last.ImpactPosition),
			TargetDistance: last.TargetDistance,
			FlightTime:     last.FlightTime,
			MaxAltitude:    last.MaxAltitude,
			TotalDistance:  last.TotalDistance,
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	path := s.engine.Projectile().Path()
	samples := make([]trajectorySample, 0, len(path))
	for _, fs := range path {
		samples = append(samples, trajectorySample{
			Position: toPositionJSON(fs.Pos),
			Velocity: velocityJSON{DX: fs.V.DX, DY: fs.V.DY},
			Time:     fs.T,
		})
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, samples)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.engine.Reset()
	s.mu.Unlock()

	s.log.Info(r.Context(), "simulation reset via api")
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn(context.Background(), "failed to encode response", logging.String("error", err.Error()))
	}
}

func toPositionJSON(p model.Position) positionJSON {
	return positionJSON{X: p.X, Y: p.Y}
}
