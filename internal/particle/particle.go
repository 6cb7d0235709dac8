package particle

import (
	"math/rand"
)

// Radius limits for generated particles
const (
	MinRadius = 4.0
	MaxRadius = 16.0
)

// Particle struct: Represents a single circular node
type Particle struct {
	Index  int     // Position in the set, 0 is the anchor
	Radius float64 // Fixed at creation
	X, Y   float64 // Position
	PX, PY float64 // Previous position (Verlet)
	Fixed  bool    // Not moved by forces, snaps to (PX, PY)
	Charge float64 // Resolved when the simulation starts
}

// IsAnchor reports whether p is the draggable anchor
func (p *Particle) IsAnchor() bool {
	return p.Index == 0
}

// NewSet creates n particles with radii uniform in [minR, maxR) and random
// positions inside width x height. Particle 0 becomes the fixed zero-radius anchor.
func NewSet(n int, width, height, minR, maxR float64, rng *rand.Rand) []*Particle {
	ps := make([]*Particle, n)
	for i := range ps {
		x := rng.Float64() * width
		y := rng.Float64() * height
		ps[i] = &Particle{
			Index:  i,
			Radius: minR + rng.Float64()*(maxR-minR),
			X:      x,
			Y:      y,
			PX:     x,
			PY:     y,
		}
	}
	if n > 0 {
		ps[0].Radius = 0
		ps[0].Fixed = true
	}
	return ps
}
