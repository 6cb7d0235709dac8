package force

// FrameClock calls an attached step once per frame until the step reports
// done or the returned detach func is called.
type FrameClock interface {
	Attach(step func() (done bool)) (detach func())
}

type frameEntry struct {
	id   uint64
	step func() bool
}

// Frames is a FrameClock advanced by the host loop: ebiten's Update, a
// terminal ticker, or a test.
type Frames struct {
	seq     uint64
	entries []frameEntry
}

// NewFrames returns an empty clock
func NewFrames() *Frames {
	return &Frames{}
}

// Attach registers step for every following frame
func (f *Frames) Attach(step func() bool) func() {
	f.seq++
	id := f.seq
	f.entries = append(f.entries, frameEntry{id: id, step: step})
	return func() { f.remove(id) }
}

// Frame runs every attached step once and returns how many ran.
// Steps attached during the frame start on the next one.
func (f *Frames) Frame() int {
	current := make([]frameEntry, len(f.entries))
	copy(current, f.entries)

	ran := 0
	for _, e := range current {
		if !f.attached(e.id) {
			continue
		}
		ran++
		if e.step() {
			f.remove(e.id)
		}
	}
	return ran
}

// Len returns the number of attached steps
func (f *Frames) Len() int {
	return len(f.entries)
}

func (f *Frames) attached(id uint64) bool {
	for _, e := range f.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

func (f *Frames) remove(id uint64) {
	for i, e := range f.entries {
		if e.id == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return
		}
	}
}
