package force

import (
	"errors"
	"math"
	"testing"

	"github.com/olivierh59500/node-collision-go/internal/particle"
)

func newTestSimulation(t *testing.T, opts Options) (*Simulation, *Frames) {
	t.Helper()
	frames := NewFrames()
	opts.Seed = 42
	s := NewSimulation(frames, opts)
	if err := s.Initialize(DefaultParticleCount, DefaultWidth, DefaultHeight, DefaultGravity, DefaultCharge); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s, frames
}

func TestInitializeAnchorAndRadii(t *testing.T) {
	s, _ := newTestSimulation(t, DefaultOptions())
	ps := s.Particles()
	if len(ps) != DefaultParticleCount {
		t.Fatalf("got %d particles, want %d", len(ps), DefaultParticleCount)
	}
	if a := ps[0]; a.Radius != 0 || !a.Fixed {
		t.Errorf("anchor = %+v", *a)
	}
	for _, p := range ps[1:] {
		if p.Radius < particle.MinRadius || p.Radius >= particle.MaxRadius {
			t.Errorf("particle %d radius %v outside [4,16)", p.Index, p.Radius)
		}
	}
}

func TestInitializeErrors(t *testing.T) {
	tests := []struct {
		name          string
		count         int
		width, height float64
		opts          func(*Options)
		want          error
	}{
		{"zero count", 0, 960, 500, nil, ErrInvalidConfig},
		{"negative width", 10, -1, 500, nil, ErrInvalidConfig},
		{"zero height", 10, 960, 0, nil, ErrInvalidConfig},
		{"NaN width", 10, math.NaN(), 500, nil, ErrInvalidConfig},
		{"inverted radii", 10, 960, 500, func(o *Options) { o.MinRadius, o.MaxRadius = 10, 2 }, ErrInvalidConfig},
		{"valid", 1, 10, 10, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			s := NewSimulation(NewFrames(), opts)
			err := s.Initialize(tt.count, tt.width, tt.height, DefaultGravity, DefaultCharge)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInitializeTwice(t *testing.T) {
	s, _ := newTestSimulation(t, DefaultOptions())
	if err := s.Initialize(5, 100, 100, 0, 0); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Initialize = %v, want ErrAlreadyInitialized", err)
	}
}

func TestResumeBeforeStart(t *testing.T) {
	s := NewSimulation(NewFrames(), DefaultOptions())
	if err := s.Resume(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Resume before Initialize = %v, want ErrNotInitialized", err)
	}

	s, _ = newTestSimulation(t, DefaultOptions())
	if err := s.Resume(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Resume before Start = %v, want ErrNotInitialized", err)
	}
}

func TestStartBeforeInitialize(t *testing.T) {
	s := NewSimulation(NewFrames(), DefaultOptions())
	if err := s.Start(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Start = %v, want ErrNotInitialized", err)
	}
	if err := s.SetAnchorTarget(1, 2); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("SetAnchorTarget = %v, want ErrNotInitialized", err)
	}
}

func TestStartTwiceSingleLoop(t *testing.T) {
	s, frames := newTestSimulation(t, DefaultOptions())
	ticks := 0
	s.OnTick(func(Snapshot) { ticks++ })

	for i := 0; i < 2; i++ {
		if err := s.Start(); err != nil {
			t.Fatalf("Start #%d: %v", i+1, err)
		}
	}
	if frames.Len() != 1 {
		t.Fatalf("attached %d loops, want 1", frames.Len())
	}
	frames.Frame()
	if ticks != 1 {
		t.Errorf("got %d ticks in one frame, want 1", ticks)
	}
}

func TestResumeWhileRunningKeepsOneLoop(t *testing.T) {
	s, frames := newTestSimulation(t, DefaultOptions())
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	frames.Frame()
	if err := s.Resume(); err != nil {
		t.Fatal(err)
	}
	if frames.Len() != 1 {
		t.Errorf("attached %d loops after Resume, want 1", frames.Len())
	}
	if s.Alpha() != AlphaStart {
		t.Errorf("alpha = %v, want %v", s.Alpha(), AlphaStart)
	}
}

func TestCoolsToRestAndResumes(t *testing.T) {
	s, frames := newTestSimulation(t, DefaultOptions())
	ticks, ends := 0, 0
	s.OnTick(func(Snapshot) { ticks++ })
	s.OnEnd(func() { ends++ })
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000 && frames.Len() > 0; i++ {
		frames.Frame()
	}
	if s.Running() || frames.Len() != 0 {
		t.Fatal("layout never came to rest")
	}
	// 0.1 * 0.99^n drops under 0.005 at n = 299
	if ticks != 298 {
		t.Errorf("got %d ticks before rest, want 298", ticks)
	}
	if ends != 1 || s.Alpha() != 0 {
		t.Errorf("ends = %d, alpha = %v", ends, s.Alpha())
	}

	frames.Frame()
	if ticks != 298 {
		t.Error("ticked while resting")
	}

	if err := s.Resume(); err != nil {
		t.Fatal(err)
	}
	frames.Frame()
	if ticks != 299 || !s.Running() {
		t.Errorf("Resume did not restart ticking: ticks=%d running=%v", ticks, s.Running())
	}
}

func TestSetAnchorTargetMovesAnchor(t *testing.T) {
	s, frames := newTestSimulation(t, DefaultOptions())
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	a := s.Particles()[0]
	before := [2]float64{a.X, a.Y}
	// Well outside the canvas, no particle can reach it in one step
	target := [2]float64{-400, -300}

	if err := s.SetAnchorTarget(target[0], target[1]); err != nil {
		t.Fatal(err)
	}
	frames.Frame()

	if a.X == before[0] && a.Y == before[1] {
		t.Fatal("anchor stayed at its old position")
	}
	if a.X != target[0] || a.Y != target[1] {
		t.Errorf("anchor at (%v,%v), want %v", a.X, a.Y, target)
	}
}

func TestGravityPullsTowardCentre(t *testing.T) {
	opts := DefaultOptions()
	s, frames := newTestSimulation(t, opts)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	// Push the anchor far away so its charge is negligible
	s.SetAnchorTarget(1e6, 1e6)

	spread := func() float64 {
		sum := 0.0
		for _, p := range s.Particles()[1:] {
			sum += math.Hypot(p.X-DefaultWidth/2, p.Y-DefaultHeight/2)
		}
		return sum
	}
	before := spread()
	for i := 0; i < 50; i++ {
		frames.Frame()
	}
	if after := spread(); after >= before {
		t.Errorf("mean distance to centre %v -> %v, want decrease", before, after)
	}
}

func TestRadiiStableAcrossTicks(t *testing.T) {
	s, frames := newTestSimulation(t, DefaultOptions())
	radii := make([]float64, len(s.Particles()))
	for i, p := range s.Particles() {
		radii[i] = p.Radius
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		frames.Frame()
	}
	for i, p := range s.Particles() {
		if p.Radius != radii[i] {
			t.Errorf("particle %d radius changed", i)
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("particle %d has NaN position", i)
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s, frames := newTestSimulation(t, DefaultOptions())
	var last Snapshot
	s.OnTick(func(snap Snapshot) { last = snap })
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	frames.Frame()

	if last.Tick != 1 || len(last.Particles) != DefaultParticleCount {
		t.Fatalf("snapshot tick=%d len=%d", last.Tick, len(last.Particles))
	}
	first := last
	x := first.Particles[5].X
	frames.Frame()
	if last.Tick != 2 {
		t.Fatalf("snapshot tick = %d, want 2", last.Tick)
	}
	if first.Particles[5].X != x {
		t.Error("earlier snapshot changed after the next tick")
	}
	last.Particles[5].X = -1
	if s.Particles()[5].X == -1 {
		t.Error("writing to a snapshot changed the layout")
	}
}

func TestStopDetaches(t *testing.T) {
	s, frames := newTestSimulation(t, DefaultOptions())
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Stop()
	if s.Running() || frames.Len() != 0 {
		t.Fatal("Stop left the simulation attached")
	}
	if !s.Step() {
		t.Error("Step after Stop should report rest")
	}
	if err := s.Resume(); err != nil || frames.Len() != 1 {
		t.Errorf("Resume after Stop: err=%v loops=%d", err, frames.Len())
	}
}

func TestChargeModes(t *testing.T) {
	tests := []struct {
		mode       ChargeMode
		anchor     float64
		nonAnchors float64
	}{
		{ChargeAnchor, DefaultCharge, 0},
		{ChargeParticles, 0, DefaultCharge},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			opts := DefaultOptions()
			opts.ChargeMode = tt.mode
			s, _ := newTestSimulation(t, opts)
			if err := s.Start(); err != nil {
				t.Fatal(err)
			}
			ps := s.Particles()
			if ps[0].Charge != tt.anchor {
				t.Errorf("anchor charge = %v, want %v", ps[0].Charge, tt.anchor)
			}
			for _, p := range ps[1:] {
				if p.Charge != tt.nonAnchors {
					t.Fatalf("particle %d charge = %v, want %v", p.Index, p.Charge, tt.nonAnchors)
				}
			}
		})
	}
}

func TestParseChargeMode(t *testing.T) {
	for in, want := range map[string]ChargeMode{"": ChargeAnchor, "anchor": ChargeAnchor, "particles": ChargeParticles} {
		got, err := ParseChargeMode(in)
		if err != nil || got != want {
			t.Errorf("ParseChargeMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseChargeMode("all"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
