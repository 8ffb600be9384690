package core

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/garysibanda/howitzer-simulator/internal/logging"
	"github.com/garysibanda/howitzer-simulator/model"
)

// DefaultHitTolerance is how close to the target an impact must land to
// count as a hit, in meters.
const DefaultHitTolerance = 175.0

// Phase describes what the engine is currently doing.
type Phase int

const (
	// PhaseIdle means no shell is in flight; the gun can fire.
	PhaseIdle Phase = iota
	// PhaseFiring means a shell is in flight and ticks advance it.
	PhaseFiring
	// PhaseLanded means the last shell has impacted; its report is
	// available and the gun can fire again.
	PhaseLanded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFiring:
		return "firing"
	case PhaseLanded:
		return "landed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ShotReport summarizes a completed flight.
type ShotReport struct {
	Hit            bool
	ImpactPosition model.Position
	TargetDistance float64
	FlightTime     float64
	MaxAltitude    float64
	TotalDistance  float64
}

// MetricsRecorder receives simulation events for export. The engine treats
// it as optional; a nil recorder disables recording.
type MetricsRecorder interface {
	RecordShot()
	RecordHit()
	RecordTick(altitude, speed float64)
	RecordImpact(targetDistance, flightTime float64)
}

// TerrainRegenerator is implemented by terrains that can produce a fresh
// landscape after a hit.
type TerrainRegenerator interface {
	Reset(seed int64)
}

// SimulationEngine coordinates one howitzer, one projectile, and the
// terrain through the fire → advance → impact cycle, keeping score across
// shots. It is single-threaded: callers drive it via Fire and Tick.
type SimulationEngine struct {
	howitzer   *Howitzer
	projectile *Projectile
	terrain    Terrain

	simTime      float64
	phase        Phase
	hitTolerance float64

	score          int
	shotsAttempted int
	lastShot       *ShotReport

	tickListeners []func(simTime float64)

	log     logging.Logger
	metrics MetricsRecorder

	shotCtx  context.Context
	shotSpan trace.Span
}

// EngineOption configures a SimulationEngine.
type EngineOption func(*SimulationEngine)

// WithLogger attaches a structured logger.
func WithLogger(log logging.Logger) EngineOption {
	return func(se *SimulationEngine) { se.log = log }
}

// WithMetricsRecorder attaches a metrics sink.
func WithMetricsRecorder(m MetricsRecorder) EngineOption {
	return func(se *SimulationEngine) { se.metrics = m }
}

// WithHitTolerance overrides the hit radius around the target, in meters.
func WithHitTolerance(meters float64) EngineOption {
	return func(se *SimulationEngine) { se.hitTolerance = meters }
}

// NewSimulationEngine wires an engine over the given terrain. When the
// terrain can place a gun, the howitzer starts there; otherwise it starts at
// the origin.
func NewSimulationEngine(terrain Terrain, opts ...EngineOption) *SimulationEngine {
	se := &SimulationEngine{
		howitzer:     NewHowitzer(),
		projectile:   NewProjectile(),
		terrain:      terrain,
		hitTolerance: DefaultHitTolerance,
		log:          logging.Noop(),
	}
	for _, opt := range opts {
		opt(se)
	}

	if placer, ok := terrain.(*HillTerrain); ok {
		se.howitzer.SetPosition(placer.PlaceHowitzer())
	}
	return se
}

// Howitzer exposes the aiming state.
func (se *SimulationEngine) Howitzer() *Howitzer { return se.howitzer }

// Projectile exposes the shell in flight, for rendering and inspection.
func (se *SimulationEngine) Projectile() *Projectile { return se.projectile }

// Terrain exposes the ground collaborator.
func (se *SimulationEngine) Terrain() Terrain { return se.terrain }

// SimTime returns the accumulated simulation time of the current flight.
func (se *SimulationEngine) SimTime() float64 { return se.simTime }

// Phase returns the current engine phase.
func (se *SimulationEngine) Phase() Phase { return se.phase }

// Score returns the number of hits so far.
func (se *SimulationEngine) Score() int { return se.score }

// ShotsAttempted returns the number of shots fired so far.
func (se *SimulationEngine) ShotsAttempted() int { return se.shotsAttempted }

// HitRate returns hits over attempts, or 0 before the first shot.
func (se *SimulationEngine) HitRate() float64 {
	if se.shotsAttempted == 0 {
		return 0
	}
	return float64(se.score) / float64(se.shotsAttempted)
}

// LastShot returns the report of the most recently completed flight, or nil.
func (se *SimulationEngine) LastShot() *ShotReport { return se.lastShot }

// RegisterTickListener adds a callback invoked after every completed tick
// while a shell is in flight.
func (se *SimulationEngine) RegisterTickListener(fn func(simTime float64)) {
	se.tickListeners = append(se.tickListeners, fn)
}

// Fire launches a shell with the current aiming state. Simulation time
// restarts at zero for the new flight. Firing while a shell is already in
// flight or with a gun that cannot fire is rejected.
func (se *SimulationEngine) Fire(ctx context.Context) error {
	if se.phase == PhaseFiring {
		return fmt.Errorf("cannot fire: shell already in flight")
	}
	if !se.howitzer.CanFire() {
		return fmt.Errorf("cannot fire: muzzle velocity is zero")
	}

	se.simTime = 0
	se.shotsAttempted++
	se.lastShot = nil

	if err := se.projectile.Fire(
		se.howitzer.Position(),
		se.howitzer.Elevation(),
		se.howitzer.MuzzleVelocity(),
		se.simTime,
	); err != nil {
		return err
	}
	se.howitzer.RecordFiring(se.simTime)
	se.phase = PhaseFiring

	ctx, shotID := logging.EnsureShotID(ctx)
	se.shotCtx, se.shotSpan = otel.Tracer("howitzer-simulator/core").Start(ctx, "shot",
		trace.WithAttributes(
			attribute.String("shot.id", shotID),
			attribute.Float64("shot.elevation_deg", se.howitzer.Elevation().Degrees()),
			attribute.Float64("shot.muzzle_velocity_mps", se.howitzer.MuzzleVelocity()),
		))

	if se.metrics != nil {
		se.metrics.RecordShot()
	}
	se.log.Info(se.shotCtx, "shot fired",
		logging.Float64("elevation_deg", se.howitzer.Elevation().Degrees()),
		logging.Float64("muzzle_velocity_mps", se.howitzer.MuzzleVelocity()),
		logging.Int("round", se.shotsAttempted),
	)
	return nil
}

// Tick advances the simulation by dt seconds. While a shell is in flight it
// integrates the projectile and resolves terrain impact; otherwise it is a
// no-op. dt must be positive.
func (se *SimulationEngine) Tick(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("tick %v must be positive", dt)
	}
	if se.phase != PhaseFiring {
		return nil
	}

	se.simTime += dt
	if err := se.projectile.Advance(se.simTime); err != nil {
		return err
	}

	if se.metrics != nil {
		se.metrics.RecordTick(se.projectile.Altitude(), se.projectile.Speed())
	}
	for _, fn := range se.tickListeners {
		fn(se.simTime)
	}

	// The terrain elevation check is the authoritative impact decision; the
	// projectile's own ground-datum check only flips its active flag.
	pos := se.projectile.Position()
	if pos.Y <= se.terrain.ElevationMeters(pos) {
		se.resolveImpact(pos)
	}
	return nil
}

// RunFlight fires and then ticks at a fixed step until the shell lands,
// returning the shot report. maxTicks bounds runaway flights.
func (se *SimulationEngine) RunFlight(ctx context.Context, dt float64, maxTicks int) (*ShotReport, error) {
	if err := se.Fire(ctx); err != nil {
		return nil, err
	}
	for i := 0; i < maxTicks && se.phase == PhaseFiring; i++ {
		if err := se.Tick(dt); err != nil {
			return nil, err
		}
	}
	if se.phase == PhaseFiring {
		return nil, fmt.Errorf("shell still in flight after %d ticks", maxTicks)
	}
	return se.lastShot, nil
}

// resolveImpact closes out the current flight: hit/miss decision, score
// bookkeeping, terrain regeneration on a hit, and projectile reset.
func (se *SimulationEngine) resolveImpact(impact model.Position) {
	target := se.terrain.Target()
	distance := impact.DistanceTo(target)
	hit := distance < se.hitTolerance

	report := &ShotReport{
		Hit:            hit,
		ImpactPosition: impact,
		TargetDistance: distance,
		FlightTime:     se.projectile.FlightTime(),
		MaxAltitude:    se.projectile.MaxAltitude(),
		TotalDistance:  se.projectile.TotalDistance(),
	}
	se.lastShot = report
	se.phase = PhaseLanded

	if hit {
		se.score++
		if regen, ok := se.terrain.(TerrainRegenerator); ok {
			regen.Reset(int64(se.shotsAttempted))
			if placer, ok := se.terrain.(*HillTerrain); ok {
				se.howitzer.SetPosition(placer.PlaceHowitzer())
			}
		}
	}

	if se.metrics != nil {
		se.metrics.RecordImpact(distance, report.FlightTime)
		if hit {
			se.metrics.RecordHit()
		}
	}

	ctx := se.shotCtx
	if ctx == nil {
		ctx = context.Background()
	}
	se.log.Info(ctx, "shell landed",
		logging.Any("hit", hit),
		logging.Float64("target_distance_m", distance),
		logging.Float64("flight_time_s", report.FlightTime),
		logging.Float64("max_altitude_m", report.MaxAltitude),
		logging.Float64("downrange_m", report.TotalDistance),
	)
	if se.shotSpan != nil {
		se.shotSpan.SetAttributes(
			attribute.Bool("shot.hit", hit),
			attribute.Float64("shot.target_distance_m", distance),
			attribute.Float64("shot.flight_time_s", report.FlightTime),
		)
		se.shotSpan.End()
		se.shotSpan = nil
		se.shotCtx = nil
	}

	se.projectile.Reset()
}

// Reset clears the current flight and score without touching the terrain.
func (se *SimulationEngine) Reset() {
	se.simTime = 0
	se.phase = PhaseIdle
	se.score = 0
	se.shotsAttempted = 0
	se.lastShot = nil
	if se.shotSpan != nil {
		se.shotSpan.End()
		se.shotSpan = nil
		se.shotCtx = nil
	}
	se.projectile.Reset()
	se.howitzer.Reset()
}

// NewGame resets everything and regenerates the terrain when it supports it.
func (se *SimulationEngine) NewGame(seed int64) {
	se.Reset()
	if regen, ok := se.terrain.(TerrainRegenerator); ok {
		regen.Reset(seed)
	}
	if placer, ok := se.terrain.(*HillTerrain); ok {
		se.howitzer.SetPosition(placer.PlaceHowitzer())
	}
}
