// Package sound plays a short blip when a tick resolves a burst of collisions
package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/olivierh59500/node-collision-go/internal/force"
)

// Impact tuning
const (
	SampleRate      = beep.SampleRate(44100)
	BlipDuration    = 40 * time.Millisecond
	DefaultBurst    = 25  // Collisions in one tick that count as an impact
	DefaultCooldown = 20  // Ticks between two blips
	baseFreq        = 220.0
	freqPerHit      = 4.0
	maxFreq         = 880.0
)

// Player plays a tone
type Player interface {
	Play(freq float64, d time.Duration)
}

// Speaker plays tones on the default audio device
type Speaker struct {
	rate beep.SampleRate
}

// OpenSpeaker initialises the audio device
func OpenSpeaker() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	return &Speaker{rate: SampleRate}, nil
}

// Play queues a sine blip; tones the generator rejects are dropped
func (s *Speaker) Play(freq float64, d time.Duration) {
	sine, err := generators.SineTone(s.rate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(s.rate.N(d), sine))
}

// Close releases the audio device
func (s *Speaker) Close() {
	speaker.Close()
}

// Impacts listens to ticks and sonifies collision bursts
type Impacts struct {
	player   Player
	burst    int
	cooldown int
	wait     int
}

// NewImpacts returns a listener playing through p
func NewImpacts(p Player, burst, cooldown int) *Impacts {
	return &Impacts{player: p, burst: burst, cooldown: cooldown}
}

// Observe is a force.Simulation tick listener
func (im *Impacts) Observe(snap force.Snapshot) {
	if im.wait > 0 {
		im.wait--
		return
	}
	if snap.Collisions < im.burst {
		return
	}
	im.player.Play(Frequency(snap.Collisions), BlipDuration)
	im.wait = im.cooldown
}

// Frequency maps a collision count to a pitch, capped at maxFreq
func Frequency(collisions int) float64 {
	f := baseFreq + float64(collisions)*freqPerHit
	if f > maxFreq {
		return maxFreq
	}
	return f
}
