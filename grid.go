package tessera

import (
	"math"
	"math/rand"
)

const (
	// lowerBound and upperBound delimit the normalized coordinate space.
	lowerBound = 0.0
	upperBound = 100.0
)

// Grid is an ordered sequence of points. The order matters:
// triangles returned by the triangulator reference points by their index.
type Grid []Point

// latticeValues returns the lattice coordinates 0, step, 2*step... on one axis.
// The upper bound is always included, even if step does not divide it.
func latticeValues(step int) []float64 {
	values := make([]float64, 0, int(upperBound)/step+2)
	for v := 0; v < int(upperBound); v += step {
		values = append(values, float64(v))
	}
	return append(values, upperBound)
}

// NewGrid generates a jittered lattice over the [0, 100] space.
// Every lattice value strictly inside the (0, 100) interval is moved by floor(jitter*u - jitter/2),
// where u is drawn from rng, then clamped back into the space. The boundary values are never moved,
// so the convex hull of the grid is the whole box. Points are emitted column by column:
// the outer loop iterates over the X axis and the inner one over the Y axis.
func NewGrid(step, jitter int, rng *rand.Rand) (Grid, error) {
	if step <= 0 || step > int(upperBound) {
		return nil, invalidf("grid step %d outside of (0, %v]", step, upperBound)
	}
	if jitter < 0 {
		return nil, invalidf("negative jitter %d", jitter)
	}
	if rng == nil {
		return nil, invalidf("missing randomness source")
	}

	values := latticeValues(step)
	grid := make(Grid, 0, len(values)*len(values))

	for _, x := range values {
		for _, y := range values {
			grid = append(grid, Point{
				X: perturb(x, jitter, rng),
				Y: perturb(y, jitter, rng),
			})
		}
	}
	return grid, nil
}

// perturb applies the jitter to an inner lattice value.
func perturb(v float64, jitter int, rng *rand.Rand) float64 {
	if v <= lowerBound || v >= upperBound {
		return v
	}
	j := float64(jitter)
	v += math.Floor(j*rng.Float64() - j/2)

	return clamp(v, lowerBound, upperBound)
}

// RectGrid returns the cells of a uniform mosaic with the given step.
// Cells start at multiples of step below 100; the last column and row are trimmed at the boundary.
func RectGrid(step int) ([]RectCell, error) {
	if step <= 0 || step > int(upperBound) {
		return nil, invalidf("mosaic step %d outside of (0, %v]", step, upperBound)
	}
	values := latticeValues(step)
	values = values[:len(values)-1]

	rects := make([]RectCell, 0, len(values)*len(values))
	for _, x := range values {
		for _, y := range values {
			rects = append(rects, RectCell{
				X:      x,
				Y:      y,
				Width:  Min(float64(step), upperBound-x),
				Height: Min(float64(step), upperBound-y),
			})
		}
	}
	return rects, nil
}
