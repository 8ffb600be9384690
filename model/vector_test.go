package model

import (
	"math"
	"testing"
)

func TestPosition_Arithmetic(t *testing.T) {
	p := Position{X: 1, Y: 2}
	q := Position{X: 3, Y: -4}

	if got := p.Add(q); !got.Equal(Position{X: 4, Y: -2}) {
		t.Fatalf("add: got %+v", got)
	}
	if got := p.Sub(q); !got.Equal(Position{X: -2, Y: 6}) {
		t.Fatalf("sub: got %+v", got)
	}
	if got := p.Scale(2.5); !got.Equal(Position{X: 2.5, Y: 5}) {
		t.Fatalf("scale: got %+v", got)
	}
	// Commutativity expected by the kinematics formulas.
	if !p.Add(q).Equal(q.Add(p)) {
		t.Fatalf("add should be commutative")
	}
}

func TestPosition_DistanceTo(t *testing.T) {
	p := Position{X: 0, Y: 0}
	q := Position{X: 3, Y: 4}
	if d := p.DistanceTo(q); math.Abs(d-5) > 1e-12 {
		t.Fatalf("distance: got %v, want 5", d)
	}
	if d := q.DistanceTo(p); math.Abs(d-5) > 1e-12 {
		t.Fatalf("distance should be symmetric, got %v", d)
	}
}

func TestPosition_Advance(t *testing.T) {
	p := Position{X: 100, Y: 200}
	v := Velocity{DX: 10, DY: -5}
	a := Acceleration{DDX: 2, DDY: -9.8}

	got := p.Advance(v, a, 2.0)
	want := Position{X: 100 + 10*2 + 0.5*2*4, Y: 200 - 5*2 - 0.5*9.8*4}
	if !got.Equal(want) {
		t.Fatalf("advance: got %+v, want %+v", got, want)
	}

	// Zero dt leaves the position unchanged.
	if !p.Advance(v, a, 0).Equal(p) {
		t.Fatalf("advance with dt=0 should be identity")
	}
}

func TestVelocity_SpeedAndDirection(t *testing.T) {
	v := Velocity{DX: 3, DY: 4}
	if s := v.Speed(); math.Abs(s-5) > 1e-12 {
		t.Fatalf("speed: got %v, want 5", s)
	}
	if !(Velocity{DX: 10, DY: 0}).Direction().Equal(AngleRight()) {
		t.Fatalf("(10,0) should point right")
	}
	if !(Velocity{DX: 0, DY: 10}).Direction().Equal(AngleUp()) {
		t.Fatalf("(0,10) should point up")
	}
}

func TestVelocity_FromAngle(t *testing.T) {
	cases := []struct {
		degrees   float64
		magnitude float64
		dx, dy    float64
	}{
		{90, 100, 100, 0},
		{0, 100, 0, 100},
		{-90, 100, -100, 0},
		{180, 50, 0, -50},
	}
	for _, c := range cases {
		v := VelocityFromAngle(NewAngle(c.degrees), c.magnitude)
		if math.Abs(v.DX-c.dx) > 1e-9 || math.Abs(v.DY-c.dy) > 1e-9 {
			t.Fatalf("fromAngle(%v°, %v): got (%v, %v), want (%v, %v)",
				c.degrees, c.magnitude, v.DX, v.DY, c.dx, c.dy)
		}
	}
}

func TestVelocity_ApplyAcceleration(t *testing.T) {
	v := Velocity{DX: 50, DY: 0}
	a := Acceleration{DDX: -0.5, DDY: -9.8}
	got := v.ApplyAcceleration(a, 1.0)
	if !got.Equal(Velocity{DX: 49.5, DY: -9.8}) {
		t.Fatalf("apply acceleration: got %+v", got)
	}
}

func TestVelocity_KineticEnergy(t *testing.T) {
	v := Velocity{DX: 3, DY: 4}
	if e := v.KineticEnergy(2); math.Abs(e-25) > 1e-12 {
		t.Fatalf("kinetic energy: got %v, want 25", e)
	}
}

func TestVelocity_ReverseAndZero(t *testing.T) {
	v := Velocity{DX: 1, DY: -2}
	if !v.Reverse().Equal(Velocity{DX: -1, DY: 2}) {
		t.Fatalf("reverse: got %+v", v.Reverse())
	}
	if v.IsZero() {
		t.Fatalf("non-zero velocity reported as zero")
	}
	if !(Velocity{}).IsZero() {
		t.Fatalf("zero velocity not reported as zero")
	}
}

func TestAcceleration_Combine(t *testing.T) {
	gravity := Acceleration{DDX: 0, DDY: -9.807}
	drag := Acceleration{DDX: -0.3, DDY: 0.1}
	total := gravity.Add(drag)
	want := Acceleration{DDX: -0.3, DDY: -9.707}
	if math.Abs(total.DDX-want.DDX) > 1e-12 || math.Abs(total.DDY-want.DDY) > 1e-12 {
		t.Fatalf("combine: got %+v, want %+v", total, want)
	}
	if !gravity.Add(drag).Sub(drag).Sub(gravity).IsZero() {
		t.Fatalf("add/sub should cancel exactly")
	}
}

func TestAcceleration_FromAngleMagnitude(t *testing.T) {
	a := AccelerationFromAngle(AngleDown(), 9.8)
	if math.Abs(a.DDX) > 1e-12 || math.Abs(a.DDY+9.8) > 1e-9 {
		t.Fatalf("down 9.8: got %+v", a)
	}
	if m := a.Magnitude(); math.Abs(m-9.8) > 1e-9 {
		t.Fatalf("magnitude: got %v, want 9.8", m)
	}
}
