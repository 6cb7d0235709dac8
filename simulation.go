package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/olivierh59500/node-collision-go/internal/force"
	"github.com/olivierh59500/node-collision-go/internal/palette"
	"github.com/olivierh59500/node-collision-go/internal/pointer"
)

var (
	background  = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	statusColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// Game struct: Adapts the force layout to Ebitengine
type Game struct {
	sim     *force.Simulation
	frames  *force.Frames
	tracker *pointer.Tracker
	colors  *palette.Ordinal
	snap    force.Snapshot

	Width, Height int
	ShowStatus    bool
}

// NewGame binds a window host to sim. Ebitengine's Update drives frames.
func NewGame(sim *force.Simulation, frames *force.Frames, tracker *pointer.Tracker, colors *palette.Ordinal) *Game {
	g := &Game{
		sim:        sim,
		frames:     frames,
		tracker:    tracker,
		colors:     colors,
		snap:       sim.Snapshot(),
		Width:      int(sim.Width),
		Height:     int(sim.Height),
		ShowStatus: true,
	}
	sim.OnTick(func(snap force.Snapshot) { g.snap = snap })
	return g
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.ShowStatus = !g.ShowStatus
	}

	// Pointer first so the anchor lands on this frame's step
	mx, my := ebiten.CursorPosition()
	if err := g.tracker.Drive(g.sim, float64(mx), float64(my)); err != nil {
		return fmt.Errorf("driving anchor: %w", err)
	}

	g.frames.Frame()
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, p := range g.snap.Particles {
		if p.Index == 0 {
			continue
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), g.colors.ForParticle(p.Index), true)
	}

	if g.ShowStatus {
		status := fmt.Sprintf("tick %d  alpha %.3f  collisions %d  TPS %.0f", g.snap.Tick, g.snap.Alpha, g.snap.Collisions, ebiten.ActualTPS())
		if g.tracker.Wandering() {
			status += "  wandering"
		}
		text.Draw(screen, status, basicfont.Face7x13, 8, 18, statusColor)
	}
}

// Layout returns the canvas size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Width, g.Height
}
