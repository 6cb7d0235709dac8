// Package force drives the node layout: gravity toward the canvas centre,
// charge, Verlet integration with friction, and one collision pass per tick.
// A Simulation is not safe for concurrent use; hosts call it from their frame loop.
package force

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/olivierh59500/node-collision-go/internal/collide"
	"github.com/olivierh59500/node-collision-go/internal/particle"
)

// Cooling schedule
const (
	AlphaStart = 0.1   // Alpha set by Start and Resume
	AlphaDecay = 0.99  // Per-tick multiplier
	AlphaMin   = 0.005 // Below this the layout rests
)

// Layout defaults
const (
	DefaultCharge        = -1500.0
	DefaultGravity       = 0.05
	DefaultWidth         = 960.0
	DefaultHeight        = 500.0
	DefaultParticleCount = 200
	DefaultFriction      = 0.9
	DefaultTheta         = 0.8
)

// Options tunes a Simulation beyond the Initialize parameters
type Options struct {
	Friction   float64
	Theta      float64
	Padding    float64
	MinRadius  float64
	MaxRadius  float64
	ChargeMode ChargeMode
	Seed       int64 // 0 seeds from the clock
}

// DefaultOptions returns the reference tuning
func DefaultOptions() Options {
	return Options{
		Friction:   DefaultFriction,
		Theta:      DefaultTheta,
		Padding:    collide.DefaultPadding,
		MinRadius:  particle.MinRadius,
		MaxRadius:  particle.MaxRadius,
		ChargeMode: ChargeAnchor,
	}
}

// ParticleState is the drawable part of a particle
type ParticleState struct {
	Index  int
	X, Y   float64
	Radius float64
}

// Snapshot is an immutable copy of the layout after one tick
type Snapshot struct {
	Tick       uint64
	Alpha      float64
	Collisions int
	Particles  []ParticleState
}

// Simulation struct: Holds the layout state
type Simulation struct {
	clock    FrameClock
	opts     Options
	rng      *rand.Rand
	resolver *collide.Resolver

	Width, Height float64
	Gravity       float64
	Charge        float64

	particles []*particle.Particle
	field     *chargeField

	initialized bool
	started     bool
	detach      func()
	alpha       float64
	tick        uint64
	collisions  int

	tickFns []func(Snapshot)
	endFns  []func()
}

// NewSimulation creates an uninitialized simulation driven by clock
func NewSimulation(clock FrameClock, opts Options) *Simulation {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulation{
		clock:    clock,
		opts:     opts,
		rng:      rand.New(rand.NewSource(seed)),
		resolver: collide.NewResolver(opts.Padding),
	}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// Initialize creates count particles on a width x height canvas. Particle 0
// is the anchor. It must be called exactly once, before Start.
func (s *Simulation) Initialize(count int, width, height, gravity, charge float64) error {
	if s.initialized {
		return ErrAlreadyInitialized
	}
	switch {
	case count < 1:
		return invalidf("particle count %d", count)
	case !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0):
		return invalidf("canvas %vx%v", width, height)
	case math.IsNaN(gravity) || math.IsNaN(charge):
		return invalidf("gravity %v, charge %v", gravity, charge)
	case s.opts.MinRadius < 0 || s.opts.MaxRadius < s.opts.MinRadius:
		return invalidf("radius range [%v,%v)", s.opts.MinRadius, s.opts.MaxRadius)
	}

	s.Width, s.Height = width, height
	s.Gravity, s.Charge = gravity, charge
	s.particles = particle.NewSet(count, width, height, s.opts.MinRadius, s.opts.MaxRadius, s.rng)
	s.initialized = true
	return nil
}

// Start resolves charges and begins ticking on the frame clock. Calling it
// again is a no-op; use Resume to wake a resting layout.
func (s *Simulation) Start() error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.started {
		return nil
	}
	for i, p := range s.particles {
		p.Charge = s.opts.ChargeMode.chargeOf(i, s.Charge)
	}
	s.field = newChargeField(s.particles, s.opts.Theta)
	s.started = true
	s.wake()
	return nil
}

// Resume reheats the layout and reattaches it to the clock if it had come to rest
func (s *Simulation) Resume() error {
	if !s.started {
		return ErrNotInitialized
	}
	s.wake()
	return nil
}

func (s *Simulation) wake() {
	s.alpha = AlphaStart
	if s.detach == nil {
		s.detach = s.clock.Attach(s.Step)
	}
}

// Stop detaches from the clock and cools the layout to zero
func (s *Simulation) Stop() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	s.alpha = 0
}

// SetAnchorTarget moves the anchor's previous position; the next step lands it there
func (s *Simulation) SetAnchorTarget(x, y float64) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	a := s.particles[0]
	a.PX, a.PY = x, y
	return nil
}

// OnTick registers fn to receive a snapshot after every step
func (s *Simulation) OnTick(fn func(Snapshot)) {
	s.tickFns = append(s.tickFns, fn)
}

// OnEnd registers fn to run when the layout comes to rest
func (s *Simulation) OnEnd(fn func()) {
	s.endFns = append(s.endFns, fn)
}

// Running reports whether the simulation is attached to its clock
func (s *Simulation) Running() bool {
	return s.detach != nil
}

// Alpha returns the current cooling parameter
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// Particles returns the live particle set
func (s *Simulation) Particles() []*particle.Particle {
	return s.particles
}

// Step advances the layout by one tick. It reports true once the layout has
// cooled below AlphaMin, which detaches it from a FrameClock.
func (s *Simulation) Step() bool {
	if !s.started || s.alpha == 0 {
		return true
	}
	s.alpha *= AlphaDecay
	if s.alpha < AlphaMin {
		s.alpha = 0
		if s.detach != nil {
			s.detach()
			s.detach = nil
		}
		for _, fn := range s.endFns {
			fn()
		}
		return true
	}

	s.applyGravity()
	s.field.apply(s.alpha)
	s.integrate()
	s.collisions = s.resolver.Resolve(s.particles)
	s.tick++

	if len(s.tickFns) > 0 {
		snap := s.Snapshot()
		for _, fn := range s.tickFns {
			fn(snap)
		}
	}
	return false
}

// applyGravity pulls every free particle a fraction alpha*gravity toward the centre
func (s *Simulation) applyGravity() {
	k := s.alpha * s.Gravity
	if k == 0 {
		return
	}
	cx, cy := s.Width/2, s.Height/2
	for _, p := range s.particles {
		if p.Fixed {
			continue
		}
		p.X += (cx - p.X) * k
		p.Y += (cy - p.Y) * k
	}
}

// integrate applies position Verlet with friction; fixed particles snap to (PX, PY)
func (s *Simulation) integrate() {
	f := s.opts.Friction
	for _, p := range s.particles {
		if p.Fixed {
			p.X, p.Y = p.PX, p.PY
			continue
		}
		px, py := p.PX, p.PY
		p.PX, p.PY = p.X, p.Y
		p.X -= (px - p.X) * f
		p.Y -= (py - p.Y) * f
	}
}

// Snapshot copies the current layout
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       s.tick,
		Alpha:      s.alpha,
		Collisions: s.collisions,
		Particles:  make([]ParticleState, len(s.particles)),
	}
	for i, p := range s.particles {
		snap.Particles[i] = ParticleState{Index: p.Index, X: p.X, Y: p.Y, Radius: p.Radius}
	}
	return snap
}
