package core

import (
	"fmt"
	"math"

	"github.com/garysibanda/howitzer-simulator/model"
)

// Default M777 howitzer specifications.
const (
	DefaultMuzzleVelocity  = 827.0 // m/s
	DefaultElevationDeg    = 45.0  // degrees from vertical
	DefaultMinElevationDeg = 0.0
	DefaultMaxElevationDeg = 85.0
	barrelLengthMeters     = 6.0
)

// Howitzer supplies the aiming state for a shot: where the gun sits, which
// way the barrel points, and how fast a shell leaves it. The elevation angle
// is measured from vertical (0° = straight up) and clamped to a configurable
// range.
type Howitzer struct {
	position       model.Position
	elevation      model.Angle
	muzzleVelocity float64

	minElevationDeg float64
	maxElevationDeg float64

	lastFireTime float64
	roundsFired  int
}

// NewHowitzer creates a howitzer with the default M777 specifications.
func NewHowitzer() *Howitzer {
	return &Howitzer{
		elevation:       model.NewAngle(DefaultElevationDeg),
		muzzleVelocity:  DefaultMuzzleVelocity,
		minElevationDeg: DefaultMinElevationDeg,
		maxElevationDeg: DefaultMaxElevationDeg,
		lastFireTime:    -1,
	}
}

// Position returns where the howitzer sits on the field.
func (h *Howitzer) Position() model.Position { return h.position }

// SetPosition moves the howitzer.
func (h *Howitzer) SetPosition(pos model.Position) { h.position = pos }

// Elevation returns the barrel's current elevation angle.
func (h *Howitzer) Elevation() model.Angle { return h.elevation }

// MuzzleVelocity returns the shell exit speed in m/s.
func (h *Howitzer) MuzzleVelocity() float64 { return h.muzzleVelocity }

// SetMuzzleVelocity replaces the muzzle velocity; non-positive values are
// rejected.
func (h *Howitzer) SetMuzzleVelocity(v float64) error {
	if v <= 0 {
		return fmt.Errorf("muzzle velocity %v must be positive", v)
	}
	h.muzzleVelocity = v
	return nil
}

// SetElevationDegrees points the barrel at the given angle from vertical,
// clamping into the allowed range.
func (h *Howitzer) SetElevationDegrees(degrees float64) {
	h.elevation = model.NewAngle(h.clampDegrees(degrees))
}

// SetElevationBounds replaces the allowed elevation range and re-clamps the
// current elevation. min must not exceed max.
func (h *Howitzer) SetElevationBounds(minDeg, maxDeg float64) error {
	if minDeg > maxDeg {
		return fmt.Errorf("elevation bounds [%v, %v] are inverted", minDeg, maxDeg)
	}
	h.minElevationDeg = minDeg
	h.maxElevationDeg = maxDeg
	h.SetElevationDegrees(h.elevationDegrees())
	return nil
}

// Rotate tilts the barrel by the given radians (positive moves it away from
// vertical). Rotations that would leave the allowed range clamp to the
// nearest bound instead of being skipped entirely.
func (h *Howitzer) Rotate(radians float64) {
	h.SetElevationDegrees(h.elevationDegrees() + radians*(180.0/math.Pi))
}

// Raise moves the barrel toward vertical by the given radians, regardless of
// which side of vertical it currently leans; a negative delta lowers it.
func (h *Howitzer) Raise(radians float64) {
	if h.elevation.IsRight() {
		h.Rotate(-radians)
	} else {
		h.Rotate(radians)
	}
}

// CanFire reports whether the gun is able to launch a shell.
func (h *Howitzer) CanFire() bool { return h.muzzleVelocity > 0 }

// RecordFiring notes that a round left the barrel at the given simulation
// time.
func (h *Howitzer) RecordFiring(simTime float64) {
	h.lastFireTime = simTime
	h.roundsFired++
}

// RoundsFired returns the number of rounds fired since the last reset.
func (h *Howitzer) RoundsFired() int { return h.roundsFired }

// LastFireTime returns the simulation time of the last shot, or -1 if the
// gun has not fired.
func (h *Howitzer) LastFireTime() float64 { return h.lastFireTime }

// MuzzlePosition returns the tip of the barrel, offset from the gun position
// along the elevation angle by the barrel length.
func (h *Howitzer) MuzzlePosition() model.Position {
	return model.Position{
		X: h.position.X + barrelLengthMeters*h.elevation.Dx(),
		Y: h.position.Y + barrelLengthMeters*h.elevation.Dy(),
	}
}

// MuzzleVelocityVector returns the launch velocity the current aiming state
// would impart to a shell.
func (h *Howitzer) MuzzleVelocityVector() model.Velocity {
	return model.VelocityFromAngle(h.elevation, h.muzzleVelocity)
}

// EstimateRange returns the flat-ground vacuum-ballistics range for the
// current aiming state, R = v²·sin(2θ)/g. It ignores drag, so it
// overestimates real travel; useful as a first aiming hint only.
func (h *Howitzer) EstimateRange() float64 {
	theta := h.elevation.Radians()
	g := GravityFromAltitude(0)
	return h.muzzleVelocity * h.muzzleVelocity * math.Sin(2*theta) / g
}

// Reset restores the default aiming state and firing statistics.
func (h *Howitzer) Reset() {
	h.elevation = model.NewAngle(DefaultElevationDeg)
	h.muzzleVelocity = DefaultMuzzleVelocity
	h.lastFireTime = -1
	h.roundsFired = 0
}

// elevationDegrees returns the elevation as a signed value in [-180, 180)
// so clamping arithmetic behaves near zero.
func (h *Howitzer) elevationDegrees() float64 {
	deg := h.elevation.Degrees()
	if deg >= 180 {
		deg -= 360
	}
	return deg
}

func (h *Howitzer) clampDegrees(degrees float64) float64 {
	if degrees < h.minElevationDeg {
		return h.minElevationDeg
	}
	if degrees > h.maxElevationDeg {
		return h.maxElevationDeg
	}
	return degrees
}
