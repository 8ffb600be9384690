package core

import (
	"fmt"
	"math"
)

// Mapping is one (domain, range) pair of an empirical lookup table.
type Mapping struct {
	Domain float64
	Range  float64
}

// The atmospheric reference tables below cover sea level through 80 km and
// the M795 drag curve covers Mach 0 through 5. Each table is sorted
// ascending by domain; InterpolateTable relies on that ordering and does not
// re-validate it.

// gravityTable maps altitude in meters to gravitational acceleration in m/s².
var gravityTable = []Mapping{
	{0.0, 9.807},
	{1000.0, 9.804},
	{2000.0, 9.801},
	{3000.0, 9.797},
	{4000.0, 9.794},
	{5000.0, 9.791},
	{6000.0, 9.788},
	{7000.0, 9.785},
	{8000.0, 9.782},
	{9000.0, 9.779},
	{10000.0, 9.776},
	{15000.0, 9.761},
	{20000.0, 9.745},
	{25000.0, 9.730},
	{30000.0, 9.715},
	{40000.0, 9.684},
	{50000.0, 9.654},
	{60000.0, 9.624},
	{70000.0, 9.594},
	{80000.0, 9.564},
}

// densityTable maps altitude in meters to air density in kg/m³.
var densityTable = []Mapping{
	{0.0, 1.225},
	{1000.0, 1.112},
	{2000.0, 1.007},
	{3000.0, 0.9093},
	{4000.0, 0.8194},
	{5000.0, 0.7364},
	{6000.0, 0.6601},
	{7000.0, 0.5900},
	{8000.0, 0.5258},
	{9000.0, 0.4671},
	{10000.0, 0.4135},
	{15000.0, 0.1948},
	{20000.0, 0.08891},
	{25000.0, 0.04008},
	{30000.0, 0.01841},
	{40000.0, 0.003996},
	{50000.0, 0.001027},
	{60000.0, 0.0003097},
	{70000.0, 0.0000828},
	{80000.0, 0.0000185},
}

// speedSoundTable maps altitude in meters to the speed of sound in m/s.
var speedSoundTable = []Mapping{
	{0.0, 340.0},
	{1000.0, 336.0},
	{2000.0, 332.0},
	{3000.0, 328.0},
	{4000.0, 324.0},
	{5000.0, 320.0},
	{6000.0, 316.0},
	{7000.0, 312.0},
	{8000.0, 308.0},
	{9000.0, 303.0},
	{10000.0, 299.0},
	{15000.0, 295.0},
	{20000.0, 295.0},
	{25000.0, 295.0},
	{30000.0, 305.0},
	{40000.0, 324.0},
	{50000.0, 337.0},
	{60000.0, 319.0},
	{70000.0, 289.0},
	{80000.0, 269.0},
}

// dragTable maps Mach number to the drag coefficient of an M795 shell. The
// transonic rise peaks at 0.4483 near Mach 1.06 and tapers afterward.
var dragTable = []Mapping{
	{0.0, 0.0},
	{0.1, 0.0543},
	{0.3, 0.1629},
	{0.5, 0.1659},
	{0.7, 0.2031},
	{0.89, 0.2597},
	{0.92, 0.3010},
	{0.96, 0.3287},
	{0.98, 0.4002},
	{1.00, 0.4258},
	{1.02, 0.4335},
	{1.06, 0.4483},
	{1.24, 0.4064},
	{1.53, 0.3663},
	{1.99, 0.2897},
	{2.87, 0.2297},
	{2.89, 0.2306},
	{5.00, 0.2656},
}

// LinearInterpolation finds the value at d on the line through (d0, r0) and
// (d1, r1):
//
//	r = r0 + (r1 - r0)·(d - d0)/(d1 - d0)
//
// d0 and d1 must differ.
func LinearInterpolation(d0, r0, d1, r1, d float64) float64 {
	return r0 + (r1-r0)*(d-d0)/(d1-d0)
}

// InterpolateTable evaluates a piecewise-linear table at domain. Queries
// outside the table's span clamp to the first or last range value rather
// than extrapolating. The table must be non-empty and sorted ascending by
// domain; this is a precondition, not validated here.
func InterpolateTable(table []Mapping, domain float64) float64 {
	if domain <= table[0].Domain {
		return table[0].Range
	}
	last := len(table) - 1
	if domain >= table[last].Domain {
		return table[last].Range
	}

	// Binary search for the bracketing pair with
	// table[left].Domain <= domain < table[right].Domain.
	left, right := 0, last
	for left < right-1 {
		mid := left + (right-left)/2
		if table[mid].Domain <= domain {
			left = mid
		} else {
			right = mid
		}
	}

	return LinearInterpolation(
		table[left].Domain, table[left].Range,
		table[right].Domain, table[right].Range,
		domain)
}

// GravityFromAltitude returns gravitational acceleration in m/s² at the
// given altitude in meters.
func GravityFromAltitude(altitude float64) float64 {
	return InterpolateTable(gravityTable, altitude)
}

// DensityFromAltitude returns air density in kg/m³ at the given altitude in
// meters.
func DensityFromAltitude(altitude float64) float64 {
	return InterpolateTable(densityTable, altitude)
}

// SpeedSoundFromAltitude returns the speed of sound in m/s at the given
// altitude in meters.
func SpeedSoundFromAltitude(altitude float64) float64 {
	return InterpolateTable(speedSoundTable, altitude)
}

// DragFromMach returns the M795 drag coefficient at the given Mach number.
func DragFromMach(mach float64) float64 {
	return InterpolateTable(dragTable, mach)
}

// MachFromSpeed converts a speed in m/s at the given altitude to a Mach
// number. It fails if the speed of sound resolves to zero or negative,
// which the fixed table cannot produce; an error here means the table has
// been corrupted.
func MachFromSpeed(speed, altitude float64) (float64, error) {
	speedSound := SpeedSoundFromAltitude(altitude)
	if speedSound <= 0 {
		return 0, fmt.Errorf("speed of sound %v at altitude %v must be positive", speedSound, altitude)
	}
	return speed / speedSound, nil
}

// AreaFromRadius returns the cross-sectional area π·r² in m². The radius
// must not be negative.
func AreaFromRadius(radius float64) (float64, error) {
	if radius < 0 {
		return 0, fmt.Errorf("radius %v must not be negative", radius)
	}
	return math.Pi * radius * radius, nil
}

// ForceFromDrag returns the drag force in newtons:
//
//	force = ½·density·drag·area·speed²
//
// density (kg/m³), drag coefficient, radius (m), and speed (m/s, a
// magnitude) must all be non-negative.
func ForceFromDrag(density, drag, radius, speed float64) (float64, error) {
	if density < 0 {
		return 0, fmt.Errorf("density %v must not be negative", density)
	}
	if drag < 0 {
		return 0, fmt.Errorf("drag coefficient %v must not be negative", drag)
	}
	if speed < 0 {
		return 0, fmt.Errorf("speed %v must not be negative", speed)
	}
	area, err := AreaFromRadius(radius)
	if err != nil {
		return 0, err
	}
	return 0.5 * density * drag * area * speed * speed, nil
}

// AccelerationFromForce returns the acceleration in m/s² imparted by force
// (N) on mass (kg). The mass must be positive.
func AccelerationFromForce(force, mass float64) (float64, error) {
	if mass <= 0 {
		return 0, fmt.Errorf("mass %v must be positive", mass)
	}
	return force / mass, nil
}

// VelocityFromAcceleration returns the velocity in m/s imparted by a
// constant acceleration (m/s²) over t seconds. Time must not be negative.
func VelocityFromAcceleration(acceleration, t float64) (float64, error) {
	if t < 0 {
		return 0, fmt.Errorf("time %v must not be negative", t)
	}
	return acceleration * t, nil
}
