package model

import "math"

// angleEpsilon is the tolerance used when comparing angles for equality.
const angleEpsilon = 1e-6

// Angle is a direction in the firing plane, stored in radians and always
// normalized to [0, 2π). Zero points straight up; positive angles rotate
// clockwise, so π/2 points downrange (right) and π points straight down.
type Angle struct {
	radians float64
}

// NewAngle constructs an angle from degrees.
func NewAngle(degrees float64) Angle {
	return Angle{radians: normalizeRadians(degrees * (math.Pi / 180.0))}
}

// AngleFromRadians constructs an angle from a radian value, normalizing it.
func AngleFromRadians(radians float64) Angle {
	return Angle{radians: normalizeRadians(radians)}
}

// AngleFromComponents derives the direction of the (dx, dy) vector. With up
// as zero the arguments to atan2 are deliberately swapped relative to the
// usual x-axis convention.
func AngleFromComponents(dx, dy float64) Angle {
	return Angle{radians: normalizeRadians(math.Atan2(dx, dy))}
}

// Preset directions.
func AngleUp() Angle    { return Angle{radians: 0} }
func AngleRight() Angle { return Angle{radians: math.Pi / 2} }
func AngleDown() Angle  { return Angle{radians: math.Pi} }
func AngleLeft() Angle  { return Angle{radians: 3 * math.Pi / 2} }

// Radians returns the normalized radian value in [0, 2π).
func (a Angle) Radians() float64 { return a.radians }

// Degrees returns the angle in degrees, in [0, 360).
func (a Angle) Degrees() float64 { return a.radians * (180.0 / math.Pi) }

// Dx returns the horizontal component of the unit vector pointing along a.
//
//	dy = cos a
//	dx = sin a
func (a Angle) Dx() float64 { return math.Sin(a.radians) }

// Dy returns the vertical component of the unit vector pointing along a.
func (a Angle) Dy() float64 { return math.Cos(a.radians) }

// IsRight reports whether the angle points into the right half-plane,
// strictly between up (0) and down (π).
func (a Angle) IsRight() bool { return a.radians > 0 && a.radians < math.Pi }

// IsLeft reports whether the angle points into the left half-plane,
// strictly between down (π) and up (2π).
func (a Angle) IsLeft() bool { return a.radians > math.Pi && a.radians < 2*math.Pi }

// AddDegrees returns the angle rotated by the given degrees, normalized.
func (a Angle) AddDegrees(degrees float64) Angle {
	return AngleFromRadians(a.radians + degrees*(math.Pi/180.0))
}

// SubDegrees returns the angle rotated by the negated degrees, normalized.
func (a Angle) SubDegrees(degrees float64) Angle {
	return a.AddDegrees(-degrees)
}

// AddRadians returns the angle rotated by the given radians, normalized.
func (a Angle) AddRadians(radians float64) Angle {
	return AngleFromRadians(a.radians + radians)
}

// Add returns the sum of two angles, normalized.
func (a Angle) Add(rhs Angle) Angle {
	return AngleFromRadians(a.radians + rhs.radians)
}

// Sub returns the difference of two angles, normalized.
func (a Angle) Sub(rhs Angle) Angle {
	return AngleFromRadians(a.radians - rhs.radians)
}

// Opposite returns the angle rotated by 180°.
func (a Angle) Opposite() Angle {
	return AngleFromRadians(a.radians + math.Pi)
}

// ShortestRotationTo returns the signed rotation in (−π, π] that takes a to
// target by the shortest path. Positive means clockwise.
func (a Angle) ShortestRotationTo(target Angle) float64 {
	diff := target.radians - a.radians
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}

// IsClockwiseTo reports whether the shortest rotation to target is clockwise.
func (a Angle) IsClockwiseTo(target Angle) bool {
	return a.ShortestRotationTo(target) > 0
}

// Equal compares two angles within angleEpsilon.
func (a Angle) Equal(rhs Angle) bool {
	return math.Abs(a.radians-rhs.radians) < angleEpsilon
}

// normalizeRadians wraps any radian value into [0, 2π).
func normalizeRadians(radians float64) float64 {
	radians = math.Mod(radians, 2*math.Pi)
	if radians < 0 {
		radians += 2 * math.Pi
	}
	return radians
}
