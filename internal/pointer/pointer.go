// Package pointer turns raw cursor samples into anchor moves
package pointer

import (
	"github.com/olivierh59500/node-collision-go/internal/wander"
)

// Anchor is the part of the layout a pointer can drive
type Anchor interface {
	SetAnchorTarget(x, y float64) error
	Resume() error
}

// Tracker filters one cursor sample per frame. Samples outside the surface
// or identical to the previous one are not moves. After idleFrames frames
// without a move the wanderer, if any, takes over until the pointer moves again.
type Tracker struct {
	width, height float64
	idleFrames    int
	wander        *wander.Wanderer

	lastX, lastY float64
	seen         bool
	idle         int
}

// NewTracker returns a tracker for a width x height surface. w may be nil.
func NewTracker(width, height float64, idleFrames int, w *wander.Wanderer) *Tracker {
	return &Tracker{
		width:      width,
		height:     height,
		idleFrames: idleFrames,
		wander:     w,
	}
}

// Observe records a sample and returns the anchor target for this frame, if any
func (t *Tracker) Observe(x, y float64) (tx, ty float64, ok bool) {
	inside := x >= 0 && y >= 0 && x < t.width && y < t.height
	if inside && (!t.seen || x != t.lastX || y != t.lastY) {
		t.seen = true
		t.lastX, t.lastY = x, y
		t.idle = 0
		return x, y, true
	}

	t.idle++
	if t.Wandering() {
		tx, ty = t.wander.Next()
		return tx, ty, true
	}
	return 0, 0, false
}

// Wandering reports whether the wanderer currently drives the anchor
func (t *Tracker) Wandering() bool {
	return t.wander != nil && t.idle >= t.idleFrames
}

// Drive observes a sample and, on a move, retargets the anchor and wakes the layout
func (t *Tracker) Drive(a Anchor, x, y float64) error {
	tx, ty, ok := t.Observe(x, y)
	if !ok {
		return nil
	}
	if err := a.SetAnchorTarget(tx, ty); err != nil {
		return err
	}
	return a.Resume()
}
