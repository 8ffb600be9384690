package core

import (
	"math"
	"math/rand"

	"github.com/garysibanda/howitzer-simulator/model"
)

// Terrain supplies ground elevation and the target location. The simulation
// engine treats its elevation as the authoritative impact surface.
type Terrain interface {
	// ElevationMeters returns the ground height at the horizontal
	// coordinate of pos.
	ElevationMeters(pos model.Position) float64
	// Target returns the point a shot must land near to count as a hit.
	Target() model.Position
}

// FlatTerrain is level ground at a fixed elevation with a fixed target.
// Useful for tests and aiming drills.
type FlatTerrain struct {
	Elevation float64
	TargetPos model.Position
}

func (t FlatTerrain) ElevationMeters(model.Position) float64 { return t.Elevation }
func (t FlatTerrain) Target() model.Position                 { return t.TargetPos }

// HillTerrain is a rolling-hills elevation profile built from a seeded sum
// of sinusoids across a field of the given width. The same seed always
// produces the same landscape, which keeps replays and tests deterministic.
type HillTerrain struct {
	width  float64
	seed   int64
	target model.Position

	amplitudes []float64
	periods    []float64
	phases     []float64
}

// NewHillTerrain generates a landscape over [0, widthMeters) and places the
// target on it at a random downrange position.
func NewHillTerrain(widthMeters float64, seed int64) *HillTerrain {
	t := &HillTerrain{width: widthMeters, seed: seed}
	t.generate()
	return t
}

// generate rebuilds the sinusoid stack and re-places the target.
func (t *HillTerrain) generate() {
	rng := rand.New(rand.NewSource(t.seed))

	const layers = 4
	t.amplitudes = make([]float64, layers)
	t.periods = make([]float64, layers)
	t.phases = make([]float64, layers)
	for i := 0; i < layers; i++ {
		// Longer periods carry taller hills.
		t.periods[i] = t.width / float64(uint(1)<<uint(i)) / (1.5 + rng.Float64())
		t.amplitudes[i] = t.periods[i] * (0.02 + 0.03*rng.Float64())
		t.phases[i] = rng.Float64() * 2 * math.Pi
	}

	// Keep the target away from the field edges.
	targetX := t.width * (0.55 + 0.4*rng.Float64())
	t.target = model.Position{X: targetX, Y: t.heightAt(targetX)}
}

// Reset regenerates the landscape with a new seed.
func (t *HillTerrain) Reset(seed int64) {
	t.seed = seed
	t.generate()
}

func (t *HillTerrain) heightAt(x float64) float64 {
	h := 0.0
	for i := range t.amplitudes {
		h += t.amplitudes[i] * math.Sin(2*math.Pi*x/t.periods[i]+t.phases[i])
	}
	// Shift so the lowest plausible ground still sits above the datum.
	offset := 0.0
	for _, a := range t.amplitudes {
		offset += a
	}
	return h + offset
}

// ElevationMeters returns the ground height at the horizontal coordinate of
// pos.
func (t *HillTerrain) ElevationMeters(pos model.Position) float64 {
	return t.heightAt(pos.X)
}

// Target returns the current target point on the landscape.
func (t *HillTerrain) Target() model.Position { return t.target }

// Width returns the field width in meters.
func (t *HillTerrain) Width() float64 { return t.width }

// PlaceHowitzer returns a ground-level gun position in the near portion of
// the field, clear of the target.
func (t *HillTerrain) PlaceHowitzer() model.Position {
	rng := rand.New(rand.NewSource(t.seed + 1))
	x := t.width * (0.05 + 0.3*rng.Float64())
	return model.Position{X: x, Y: t.heightAt(x)}
}
