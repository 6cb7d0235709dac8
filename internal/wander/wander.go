// Package wander produces a smooth perlin-noise path for the anchor while
// nobody is moving the pointer.
package wander

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Noise parameters
const (
	alpha   = 2.0
	beta    = 2.0
	octaves = 3
	step    = 0.01 // Noise-space advance per frame
	gain    = 1.6  // Stretches the noise, which rarely reaches ±1
	margin  = 0.1  // Fraction of the canvas kept clear on every side
)

// Wanderer walks the anchor around a width x height canvas
type Wanderer struct {
	noise         *perlin.Perlin
	width, height float64
	t             float64
}

// New returns a wanderer whose path is fixed by seed
func New(width, height float64, seed int64) *Wanderer {
	return &Wanderer{
		noise:  perlin.NewPerlin(alpha, beta, octaves, seed),
		width:  width,
		height: height,
	}
}

// Next advances the path by one frame and returns the new target
func (w *Wanderer) Next() (x, y float64) {
	w.t += step
	// Offsets keep the samples off the lattice where perlin noise is zero
	nx := w.noise.Noise2D(w.t, 0.37)
	ny := w.noise.Noise2D(w.t+71.3, 5.11)
	return w.project(nx, w.width), w.project(ny, w.height)
}

func (w *Wanderer) project(n, size float64) float64 {
	n = math.Max(-1, math.Min(1, n*gain))
	half := size * (0.5 - margin)
	return size/2 + n*half
}
