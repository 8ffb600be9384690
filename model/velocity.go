package model

import "math"

// velocityEpsilon is the tolerance used when comparing velocities.
const velocityEpsilon = 1e-10

// Velocity is a rate of motion in the firing plane, in m/s.
type Velocity struct {
	DX float64
	DY float64
}

// VelocityFromAngle builds a velocity with the given magnitude pointing
// along angle:
//
//	dx = magnitude·sin θ
//	dy = magnitude·cos θ
func VelocityFromAngle(angle Angle, magnitude float64) Velocity {
	return Velocity{
		DX: magnitude * angle.Dx(),
		DY: magnitude * angle.Dy(),
	}
}

// Speed returns the Euclidean norm of the velocity, in m/s.
func (v Velocity) Speed() float64 {
	return math.Sqrt(v.DX*v.DX + v.DY*v.DY)
}

// Direction returns the angle the velocity points along, with up as zero.
func (v Velocity) Direction() Angle {
	return AngleFromComponents(v.DX, v.DY)
}

// Add returns v + rhs.
func (v Velocity) Add(rhs Velocity) Velocity {
	return Velocity{DX: v.DX + rhs.DX, DY: v.DY + rhs.DY}
}

// Sub returns v - rhs.
func (v Velocity) Sub(rhs Velocity) Velocity {
	return Velocity{DX: v.DX - rhs.DX, DY: v.DY - rhs.DY}
}

// Scale returns v multiplied component-wise by the scalar.
func (v Velocity) Scale(scalar float64) Velocity {
	return Velocity{DX: v.DX * scalar, DY: v.DY * scalar}
}

// Reverse returns the velocity pointing the opposite way.
func (v Velocity) Reverse() Velocity {
	return Velocity{DX: -v.DX, DY: -v.DY}
}

// ApplyAcceleration returns the velocity after accelerating for dt seconds:
//
//	v' = v + a·dt
func (v Velocity) ApplyAcceleration(a Acceleration, dt float64) Velocity {
	return Velocity{DX: v.DX + a.DDX*dt, DY: v.DY + a.DDY*dt}
}

// IsZero reports whether both components are exactly zero.
func (v Velocity) IsZero() bool {
	return v.DX == 0 && v.DY == 0
}

// KineticEnergy returns ½·m·|v|² in joules.
func (v Velocity) KineticEnergy(mass float64) float64 {
	speed := v.Speed()
	return 0.5 * mass * speed * speed
}

// Equal compares two velocities within velocityEpsilon.
func (v Velocity) Equal(rhs Velocity) bool {
	return math.Abs(v.DX-rhs.DX) < velocityEpsilon && math.Abs(v.DY-rhs.DY) < velocityEpsilon
}
