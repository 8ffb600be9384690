package core

import (
	"math"
	"testing"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v (tol %v)", name, got, want, tol)
	}
}

func TestLinearInterpolation(t *testing.T) {
	approx(t, "midpoint", LinearInterpolation(0, 0, 10, 100, 5), 50, 1e-9)
	approx(t, "quarter", LinearInterpolation(0, 8, 4, 0, 1), 6, 1e-9)
	approx(t, "descending range", LinearInterpolation(2, 10, 6, 2, 4), 6, 1e-9)
}

func TestInterpolateTableClampsOutsideSpan(t *testing.T) {
	approx(t, "gravity below span", GravityFromAltitude(-500), 9.807, 1e-9)
	approx(t, "gravity above span", GravityFromAltitude(120000), 9.564, 1e-9)
	approx(t, "density below span", DensityFromAltitude(-1), 1.225, 1e-9)
	approx(t, "density above span", DensityFromAltitude(90000), 0.0000185, 1e-12)
	approx(t, "drag below span", DragFromMach(-0.5), 0.0, 1e-9)
	approx(t, "drag above span", DragFromMach(7), 0.2656, 1e-9)
}

func TestInterpolateTableAtTablePoints(t *testing.T) {
	approx(t, "gravity sea level", GravityFromAltitude(0), 9.807, 1e-9)
	approx(t, "gravity 10km", GravityFromAltitude(10000), 9.776, 1e-9)
	approx(t, "density 5km", DensityFromAltitude(5000), 0.7364, 1e-9)
	approx(t, "speed of sound 9km", SpeedSoundFromAltitude(9000), 303, 1e-9)
	approx(t, "drag transonic peak", DragFromMach(1.06), 0.4483, 1e-9)
}

func TestInterpolateTableBetweenPoints(t *testing.T) {
	approx(t, "gravity 500m", GravityFromAltitude(500), 9.8055, 1e-9)
	approx(t, "gravity 200m", GravityFromAltitude(200), 9.8064, 1e-9)
	approx(t, "density 200m", DensityFromAltitude(200), 1.2024, 1e-9)
	approx(t, "speed of sound 500m", SpeedSoundFromAltitude(500), 338, 1e-9)
	approx(t, "drag mach 0.2", DragFromMach(0.2), 0.1086, 1e-9)
}

func TestMachFromSpeed(t *testing.T) {
	mach, err := MachFromSpeed(340, 0)
	if err != nil {
		t.Fatalf("MachFromSpeed(340, 0) returned error: %v", err)
	}
	approx(t, "mach at sea level", mach, 1.0, 1e-9)

	mach, err = MachFromSpeed(0, 0)
	if err != nil {
		t.Fatalf("MachFromSpeed(0, 0) returned error: %v", err)
	}
	approx(t, "mach at rest", mach, 0, 1e-9)
}

func TestAreaFromRadius(t *testing.T) {
	area, err := AreaFromRadius(1)
	if err != nil {
		t.Fatalf("AreaFromRadius(1) returned error: %v", err)
	}
	approx(t, "unit circle area", area, math.Pi, 1e-9)

	area, err = AreaFromRadius(0)
	if err != nil {
		t.Fatalf("AreaFromRadius(0) returned error: %v", err)
	}
	approx(t, "zero radius area", area, 0, 1e-9)

	if _, err := AreaFromRadius(-1); err == nil {
		t.Fatal("AreaFromRadius(-1) should fail")
	}
}

func TestForceFromDrag(t *testing.T) {
	force, err := ForceFromDrag(2, 0.5, 1, 10)
	if err != nil {
		t.Fatalf("ForceFromDrag returned error: %v", err)
	}
	approx(t, "drag force", force, 50*math.Pi, 1e-9)

	for _, tc := range []struct {
		name                         string
		density, drag, radius, speed float64
	}{
		{"negative density", -1, 0.5, 1, 10},
		{"negative drag", 2, -0.5, 1, 10},
		{"negative radius", 2, 0.5, -1, 10},
		{"negative speed", 2, 0.5, 1, -10},
	} {
		if _, err := ForceFromDrag(tc.density, tc.drag, tc.radius, tc.speed); err == nil {
			t.Errorf("ForceFromDrag with %s should fail", tc.name)
		}
	}
}

func TestAccelerationFromForce(t *testing.T) {
	a, err := AccelerationFromForce(10, 2)
	if err != nil {
		t.Fatalf("AccelerationFromForce returned error: %v", err)
	}
	approx(t, "acceleration", a, 5, 1e-9)

	if _, err := AccelerationFromForce(10, 0); err == nil {
		t.Fatal("AccelerationFromForce with zero mass should fail")
	}
	if _, err := AccelerationFromForce(10, -3); err == nil {
		t.Fatal("AccelerationFromForce with negative mass should fail")
	}
}

func TestVelocityFromAcceleration(t *testing.T) {
	v, err := VelocityFromAcceleration(3, 2)
	if err != nil {
		t.Fatalf("VelocityFromAcceleration returned error: %v", err)
	}
	approx(t, "velocity", v, 6, 1e-9)

	if _, err := VelocityFromAcceleration(3, -1); err == nil {
		t.Fatal("VelocityFromAcceleration with negative time should fail")
	}
}
