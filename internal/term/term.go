// Package term renders the layout in a terminal. The canvas is scaled into
// the screen's cells and mouse motion drives the anchor.
package term

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/node-collision-go/internal/force"
	"github.com/olivierh59500/node-collision-go/internal/palette"
	"github.com/olivierh59500/node-collision-go/internal/pointer"
)

// Glyphs by radius
const (
	smallGlyph = '•'
	largeGlyph = '●'
	largeFrom  = 10.0
)

// Surface draws snapshots on a tcell screen
type Surface struct {
	screen  tcell.Screen
	sim     *force.Simulation
	frames  *force.Frames
	tracker *pointer.Tracker
	colors  *palette.Ordinal

	width, height float64
	snap          force.Snapshot

	mouseX, mouseY float64
	hasMouse       bool
}

// New binds a surface to sim. The screen must already be initialised.
func New(screen tcell.Screen, sim *force.Simulation, frames *force.Frames, tracker *pointer.Tracker, colors *palette.Ordinal) *Surface {
	s := &Surface{
		screen:  screen,
		sim:     sim,
		frames:  frames,
		tracker: tracker,
		colors:  colors,
		width:   sim.Width,
		height:  sim.Height,
		snap:    sim.Snapshot(),
	}
	sim.OnTick(func(snap force.Snapshot) { s.snap = snap })
	screen.EnableMouse(tcell.MouseMotionEvents)
	return s
}

// Run drives frames at tps until the user quits or ctx ends
func (s *Surface) Run(ctx context.Context, tps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if s.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := s.Frame(); err != nil {
				return err
			}
		}
	}
}

// HandleEvent applies one input event and reports whether the user asked to quit
func (s *Surface) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return true
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		s.mouseX, s.mouseY = s.ToCanvas(col, row)
		s.hasMouse = true
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return false
}

// Frame feeds the pointer to the layout, advances the clock and redraws
func (s *Surface) Frame() error {
	x, y := -1.0, -1.0
	if s.hasMouse {
		x, y = s.mouseX, s.mouseY
	}
	if err := s.tracker.Drive(s.sim, x, y); err != nil {
		return fmt.Errorf("driving anchor: %w", err)
	}
	s.frames.Frame()
	s.Draw()
	return nil
}

// Draw renders the latest snapshot
func (s *Surface) Draw() {
	s.screen.Clear()
	for _, p := range s.snap.Particles {
		if p.Index == 0 {
			continue
		}
		col, row, ok := s.ToCell(p.X, p.Y)
		if !ok {
			continue
		}
		glyph := smallGlyph
		if p.Radius >= largeFrom {
			glyph = largeGlyph
		}
		c := s.colors.ForParticle(p.Index)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		s.screen.SetContent(col, row, glyph, nil, style)
	}
	s.drawStatus()
	s.screen.Show()
}

func (s *Surface) drawStatus() {
	_, rows := s.screen.Size()
	if rows == 0 {
		return
	}
	status := fmt.Sprintf(" tick %d  alpha %.3f  collisions %d  [q] quit", s.snap.Tick, s.snap.Alpha, s.snap.Collisions)
	if s.tracker.Wandering() {
		status += "  wandering"
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, r := range status {
		s.screen.SetContent(i, rows-1, r, nil, style)
	}
}

// ToCell maps canvas coordinates to a cell; ok is false off screen
func (s *Surface) ToCell(x, y float64) (col, row int, ok bool) {
	cols, rows := s.screen.Size()
	if x < 0 || y < 0 || x >= s.width || y >= s.height || cols == 0 || rows == 0 {
		return 0, 0, false
	}
	return int(x / s.width * float64(cols)), int(y / s.height * float64(rows)), true
}

// ToCanvas maps a cell to the canvas coordinates of its centre
func (s *Surface) ToCanvas(col, row int) (x, y float64) {
	cols, rows := s.screen.Size()
	if cols == 0 || rows == 0 {
		return -1, -1
	}
	x = (float64(col) + 0.5) * s.width / float64(cols)
	y = (float64(row) + 0.5) * s.height / float64(rows)
	return x, y
}

// Open creates and initialises the default terminal screen
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	log.Printf("terminal opened")
	return screen, nil
}
