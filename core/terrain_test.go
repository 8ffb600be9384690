package core

import (
	"testing"

	"github.com/garysibanda/howitzer-simulator/model"
)

func TestFlatTerrain(t *testing.T) {
	terrain := FlatTerrain{Elevation: 12, TargetPos: model.Position{X: 5000, Y: 12}}

	approx(t, "elevation", terrain.ElevationMeters(model.Position{X: 123}), 12, 1e-9)
	approx(t, "target x", terrain.Target().X, 5000, 1e-9)
}

func TestHillTerrainDeterministicPerSeed(t *testing.T) {
	a := NewHillTerrain(30000, 42)
	b := NewHillTerrain(30000, 42)

	for _, x := range []float64{0, 1000, 7500, 15000, 29999} {
		pos := model.Position{X: x}
		if a.ElevationMeters(pos) != b.ElevationMeters(pos) {
			t.Fatalf("same seed produced different elevation at x=%v", x)
		}
	}
	if a.Target() != b.Target() {
		t.Fatalf("same seed produced different targets: %v vs %v", a.Target(), b.Target())
	}
}

func TestHillTerrainResetChangesLandscape(t *testing.T) {
	terrain := NewHillTerrain(30000, 1)
	before := terrain.Target()

	terrain.Reset(2)
	if terrain.Target() == before {
		t.Fatal("new seed should move the target")
	}
}

func TestHillTerrainElevationNonNegative(t *testing.T) {
	terrain := NewHillTerrain(30000, 7)
	for x := 0.0; x < terrain.Width(); x += 250 {
		if h := terrain.ElevationMeters(model.Position{X: x}); h < 0 {
			t.Fatalf("elevation %v at x=%v is below the datum", h, x)
		}
	}
}

func TestHillTerrainPlacement(t *testing.T) {
	terrain := NewHillTerrain(30000, 9)

	target := terrain.Target()
	if target.X < 0.55*terrain.Width() || target.X > 0.95*terrain.Width() {
		t.Fatalf("target x=%v outside the downrange band", target.X)
	}
	approx(t, "target on ground", target.Y, terrain.ElevationMeters(target), 1e-9)

	gun := terrain.PlaceHowitzer()
	if gun.X < 0.05*terrain.Width() || gun.X > 0.35*terrain.Width() {
		t.Fatalf("howitzer x=%v outside the near band", gun.X)
	}
	approx(t, "howitzer on ground", gun.Y, terrain.ElevationMeters(gun), 1e-9)
}
