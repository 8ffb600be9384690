package core

import (
	"fmt"
	"math"

	"github.com/garysibanda/howitzer-simulator/model"
)

// Default M795 shell specifications (155 mm caliber).
const (
	DefaultProjectileMass   = 46.7     // kg
	DefaultProjectileRadius = 0.077545 // m
)

// Projectile owns the time-ordered flight history of a single shell and
// advances it through the atmosphere. It is exclusively owned by its caller;
// nothing here is safe for concurrent use.
type Projectile struct {
	mass   float64
	radius float64
	active bool
	path   []model.FlightState
}

// NewProjectile creates a projectile with the default M795 specifications.
func NewProjectile() *Projectile {
	return &Projectile{
		mass:   DefaultProjectileMass,
		radius: DefaultProjectileRadius,
	}
}

// NewCustomProjectile creates a projectile with the given mass (kg) and
// radius (m). Both must be positive.
func NewCustomProjectile(mass, radius float64) (*Projectile, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("projectile mass %v must be positive", mass)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("projectile radius %v must be positive", radius)
	}
	return &Projectile{mass: mass, radius: radius}, nil
}

// Mass returns the projectile mass in kg.
func (p *Projectile) Mass() float64 { return p.mass }

// Radius returns the projectile radius in m.
func (p *Projectile) Radius() float64 { return p.radius }

// SetMass replaces the mass; non-positive values are rejected.
func (p *Projectile) SetMass(mass float64) error {
	if mass <= 0 {
		return fmt.Errorf("projectile mass %v must be positive", mass)
	}
	p.mass = mass
	return nil
}

// SetRadius replaces the radius; non-positive values are rejected.
func (p *Projectile) SetRadius(radius float64) error {
	if radius <= 0 {
		return fmt.Errorf("projectile radius %v must be positive", radius)
	}
	p.radius = radius
	return nil
}

// Reset restores the default mass and radius, deactivates the projectile,
// and discards the flight history.
func (p *Projectile) Reset() {
	p.mass = DefaultProjectileMass
	p.radius = DefaultProjectileRadius
	p.active = false
	p.path = nil
}

// Fire launches the projectile from pos along angle at muzzleVelocity m/s,
// seeding the flight history with a single sample at time t0. Any prior
// history is discarded.
func (p *Projectile) Fire(pos model.Position, angle model.Angle, muzzleVelocity, t0 float64) error {
	if muzzleVelocity < 0 {
		return fmt.Errorf("muzzle velocity %v must not be negative", muzzleVelocity)
	}
	if t0 < 0 {
		return fmt.Errorf("fire time %v must not be negative", t0)
	}

	p.path = p.path[:0]
	p.path = append(p.path, model.FlightState{
		Pos: pos,
		V:   model.VelocityFromAngle(angle, muzzleVelocity),
		T:   t0,
	})
	p.active = true
	return nil
}

// Advance steps the projectile forward to simTime using forward-Euler
// kinematics with the pre-step velocity and the combined gravity + drag
// acceleration, appending the new sample to the flight history. It is a
// no-op when the projectile is not flying or when the time step would be
// zero or negative (ticks may legitimately arrive out of order at the
// boundary). The projectile deactivates itself once it crosses the ground
// datum; the terrain-aware impact decision belongs to the simulation engine
// and overrides this simplified check.
func (p *Projectile) Advance(simTime float64) error {
	if !p.active || len(p.path) == 0 {
		return nil
	}

	current := p.path[len(p.path)-1]
	dt := simTime - current.T
	if dt <= 0 {
		return nil
	}

	total, err := p.totalAcceleration(current)
	if err != nil {
		return err
	}

	next := model.FlightState{
		Pos: current.Pos.Advance(current.V, total, dt),
		V:   current.V.ApplyAcceleration(total, dt),
		T:   simTime,
	}
	p.path = append(p.path, next)

	if next.Pos.Y < 0 {
		p.active = false
	}
	return nil
}

// totalAcceleration combines gravity, always straight down with a magnitude
// from the altitude table, with drag opposing the current velocity.
func (p *Projectile) totalAcceleration(s model.FlightState) (model.Acceleration, error) {
	altitude := math.Max(0, s.Pos.Y)

	gravity := model.Acceleration{DDX: 0, DDY: -GravityFromAltitude(altitude)}

	drag, err := p.dragAcceleration(s)
	if err != nil {
		return model.Acceleration{}, err
	}
	return gravity.Add(drag), nil
}

// dragAcceleration derives the aerodynamic deceleration at the sample's
// altitude and speed, applied opposite the velocity's unit direction so drag
// always opposes motion regardless of travel direction. Zero speed
// short-circuits before any division.
func (p *Projectile) dragAcceleration(s model.FlightState) (model.Acceleration, error) {
	altitude := math.Max(0, s.Pos.Y)
	speed := s.V.Speed()
	if speed == 0 {
		return model.Acceleration{}, nil
	}

	density := DensityFromAltitude(altitude)
	mach, err := MachFromSpeed(speed, altitude)
	if err != nil {
		return model.Acceleration{}, err
	}
	dragCoeff := DragFromMach(mach)

	force, err := ForceFromDrag(density, dragCoeff, p.radius, speed)
	if err != nil {
		return model.Acceleration{}, err
	}
	magnitude, err := AccelerationFromForce(force, p.mass)
	if err != nil {
		return model.Acceleration{}, err
	}

	return model.Acceleration{
		DDX: -magnitude * (s.V.DX / speed),
		DDY: -magnitude * (s.V.DY / speed),
	}, nil
}

// IsFlying reports whether the projectile is active with a recorded history.
func (p *Projectile) IsFlying() bool {
	return p.active && len(p.path) > 0
}

// Position returns the latest recorded position, or the origin when the
// history is empty.
func (p *Projectile) Position() model.Position {
	if len(p.path) == 0 {
		return model.Position{}
	}
	return p.path[len(p.path)-1].Pos
}

// Velocity returns the latest recorded velocity, or zero when the history is
// empty.
func (p *Projectile) Velocity() model.Velocity {
	if len(p.path) == 0 {
		return model.Velocity{}
	}
	return p.path[len(p.path)-1].V
}

// Speed returns the latest recorded speed in m/s.
func (p *Projectile) Speed() float64 {
	return p.Velocity().Speed()
}

// Altitude returns the latest recorded altitude, floored at the ground
// datum.
func (p *Projectile) Altitude() float64 {
	if len(p.path) == 0 {
		return 0
	}
	return math.Max(0, p.path[len(p.path)-1].Pos.Y)
}

// FlightTime returns the elapsed time between the first and last samples,
// or 0 with fewer than two samples.
func (p *Projectile) FlightTime() float64 {
	if len(p.path) < 2 {
		return 0
	}
	return p.path[len(p.path)-1].T - p.path[0].T
}

// TotalDistance returns the horizontal distance between the first and last
// samples, or 0 with fewer than two samples.
func (p *Projectile) TotalDistance() float64 {
	if len(p.path) < 2 {
		return 0
	}
	return math.Abs(p.path[len(p.path)-1].Pos.X - p.path[0].Pos.X)
}

// MaxAltitude returns the highest altitude over the whole flight history,
// floored at 0.
func (p *Projectile) MaxAltitude() float64 {
	maxAlt := 0.0
	for _, s := range p.path {
		maxAlt = math.Max(maxAlt, s.Pos.Y)
	}
	return maxAlt
}

// Path returns the recorded flight history, oldest first. The returned
// slice is shared with the projectile and must not be mutated; it is
// invalidated by the next Fire or Reset.
func (p *Projectile) Path() []model.FlightState {
	return p.path
}
