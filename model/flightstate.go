package model

// FlightState is one recorded moment of a projectile's trajectory: where it
// was, how fast it was moving, and when. States are immutable once recorded;
// a projectile's flight history is a time-ascending sequence of them.
type FlightState struct {
	Pos Position
	V   Velocity
	T   float64 // simulation time, seconds
}
