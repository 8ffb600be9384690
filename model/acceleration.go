package model

import "math"

// Acceleration is a rate of velocity change in the firing plane, in m/s².
// It represents the instantaneous sum of the gravitational and drag
// contributions for a single integration step and is never persisted.
type Acceleration struct {
	DDX float64
	DDY float64
}

// AccelerationFromAngle builds an acceleration with the given magnitude
// pointing along angle, using the same decomposition as Velocity.
func AccelerationFromAngle(angle Angle, magnitude float64) Acceleration {
	return Acceleration{
		DDX: magnitude * angle.Dx(),
		DDY: magnitude * angle.Dy(),
	}
}

// Add returns a + rhs.
func (a Acceleration) Add(rhs Acceleration) Acceleration {
	return Acceleration{DDX: a.DDX + rhs.DDX, DDY: a.DDY + rhs.DDY}
}

// Sub returns a - rhs.
func (a Acceleration) Sub(rhs Acceleration) Acceleration {
	return Acceleration{DDX: a.DDX - rhs.DDX, DDY: a.DDY - rhs.DDY}
}

// Scale returns a multiplied component-wise by the scalar.
func (a Acceleration) Scale(scalar float64) Acceleration {
	return Acceleration{DDX: a.DDX * scalar, DDY: a.DDY * scalar}
}

// Magnitude returns the Euclidean norm of the acceleration.
func (a Acceleration) Magnitude() float64 {
	return math.Sqrt(a.DDX*a.DDX + a.DDY*a.DDY)
}

// IsZero reports whether both components are exactly zero.
func (a Acceleration) IsZero() bool {
	return a.DDX == 0 && a.DDY == 0
}
