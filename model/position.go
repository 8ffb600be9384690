package model

import "math"

// positionEpsilon is the tolerance used when comparing positions.
const positionEpsilon = 1e-10

// Position is a point in the firing plane, in meters. X is downrange
// distance from the field origin, Y is altitude above the ground datum.
// Y may be transiently negative while a collision is being resolved.
type Position struct {
	X float64
	Y float64
}

// Add returns p + rhs.
func (p Position) Add(rhs Position) Position {
	return Position{X: p.X + rhs.X, Y: p.Y + rhs.Y}
}

// Sub returns p - rhs.
func (p Position) Sub(rhs Position) Position {
	return Position{X: p.X - rhs.X, Y: p.Y - rhs.Y}
}

// Scale returns p multiplied component-wise by the scalar.
func (p Position) Scale(scalar float64) Position {
	return Position{X: p.X * scalar, Y: p.Y * scalar}
}

// DistanceTo returns the straight-line distance to other, in meters.
func (p Position) DistanceTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsOrigin reports whether p is at the field origin.
func (p Position) IsOrigin() bool {
	return math.Abs(p.X) < positionEpsilon && math.Abs(p.Y) < positionEpsilon
}

// Advance applies one kinematic step with the pre-step velocity and the
// combined acceleration over dt seconds:
//
//	p' = p + v·dt + ½·a·dt²
func (p Position) Advance(v Velocity, a Acceleration, dt float64) Position {
	return Position{
		X: p.X + v.DX*dt + 0.5*a.DDX*dt*dt,
		Y: p.Y + v.DY*dt + 0.5*a.DDY*dt*dt,
	}
}

// Equal compares two positions within positionEpsilon.
func (p Position) Equal(rhs Position) bool {
	return math.Abs(p.X-rhs.X) < positionEpsilon && math.Abs(p.Y-rhs.Y) < positionEpsilon
}
