package force

import (
	"log"
	"math"

	"gonum.org/v1/gonum/spatial/barneshut"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/node-collision-go/internal/particle"
)

// ChargeMode selects which particles carry the configured charge
type ChargeMode string

const (
	// ChargeAnchor charges only the anchor, the swarm is pushed around by it
	ChargeAnchor ChargeMode = "anchor"
	// ChargeParticles charges every particle except the anchor
	ChargeParticles ChargeMode = "particles"
)

// ParseChargeMode validates a mode name; empty means ChargeAnchor
func ParseChargeMode(s string) (ChargeMode, error) {
	switch ChargeMode(s) {
	case "", ChargeAnchor:
		return ChargeAnchor, nil
	case ChargeParticles:
		return ChargeParticles, nil
	}
	return "", invalidf("unknown charge mode %q", s)
}

// chargeOf returns the charge particle i carries under mode
func (m ChargeMode) chargeOf(i int, charge float64) float64 {
	anchor := i == 0
	if m == ChargeParticles {
		anchor = !anchor
	}
	if anchor {
		return charge
	}
	return 0
}

// body adapts a particle to barneshut.Particle2. Mass is the charge magnitude.
type body struct {
	p    *particle.Particle
	mass float64
}

func (b *body) Coord2() r2.Vec { return r2.Vec{X: b.p.X, Y: b.p.Y} }
func (b *body) Mass() float64  { return b.mass }

// chargeField accumulates inverse-square charge kicks with a Barnes-Hut plane
type chargeField struct {
	theta   float64
	sign    float64 // -1 repulsive, +1 attractive
	bodies  []body
	sources []barneshut.Particle2
	plane   barneshut.Plane
	warned  bool
}

func newChargeField(ps []*particle.Particle, theta float64) *chargeField {
	cf := &chargeField{
		theta:  theta,
		bodies: make([]body, len(ps)),
	}
	for i, p := range ps {
		cf.bodies[i] = body{p: p, mass: math.Abs(p.Charge)}
		if p.Charge == 0 {
			continue
		}
		// One sign per layout keeps the aggregated centres meaningful
		cf.sign = math.Copysign(1, p.Charge)
		cf.sources = append(cf.sources, &cf.bodies[i])
	}
	cf.plane.Particles = cf.sources
	return cf
}

// apply shifts the previous position of every non-fixed particle by
// alpha * charge / d² along the line to each source.
func (cf *chargeField) apply(alpha float64) {
	if len(cf.sources) == 0 {
		return
	}

	exact := false
	if err := cf.plane.Reset(); err != nil {
		if !cf.warned {
			log.Printf("charge: barnes-hut plane rejected, using exact sum: %v", err)
			cf.warned = true
		}
		exact = true
	}

	for i := range cf.bodies {
		b := &cf.bodies[i]
		if b.p.Fixed {
			continue
		}
		var f r2.Vec
		if exact {
			f = cf.exactOn(b)
		} else {
			f = cf.plane.ForceOn(b, cf.theta, cf.kick)
		}
		b.p.PX -= f.X * alpha
		b.p.PY -= f.Y * alpha
	}
}

// kick is the barneshut.Force2 for charge: v points from the target to the source
func (cf *chargeField) kick(_, _ barneshut.Particle2, _, m2 float64, v r2.Vec) r2.Vec {
	d2 := r2.Norm2(v)
	if d2 == 0 {
		return r2.Vec{}
	}
	return r2.Scale(cf.sign*m2/d2, v)
}

func (cf *chargeField) exactOn(b *body) r2.Vec {
	var f r2.Vec
	pv := b.Coord2()
	for _, s := range cf.sources {
		if s == barneshut.Particle2(b) {
			continue
		}
		f = r2.Add(f, cf.kick(b, s, b.mass, s.Mass(), r2.Sub(s.Coord2(), pv)))
	}
	return f
}
