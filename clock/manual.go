package clock

// Manual is a Scheduler that only advances when told to. Tests use it to
// drive animations deterministically.
type Manual struct {
	queue
	frames int
}

// NewManual creates an empty Manual scheduler.
func NewManual() *Manual {
	return new(Manual)
}

// RequestFrame implements Scheduler.
func (m *Manual) RequestFrame(fn func()) Handle {
	return m.request(fn)
}

// CancelFrame implements Scheduler.
func (m *Manual) CancelFrame(h Handle) {
	m.cancel(h)
}

// Pending reports the number of queued callbacks.
func (m *Manual) Pending() int {
	return m.len()
}

// Frames reports how many frames ran callbacks so far.
func (m *Manual) Frames() int {
	return m.frames
}

// Step runs one frame and returns the number of callbacks it ran.
func (m *Manual) Step() int {
	ran := m.frame()
	if ran > 0 {
		m.frames++
	}
	return ran
}

// Drain steps until nothing is pending or max frames ran, and returns the
// number of frames stepped.
func (m *Manual) Drain(max int) int {
	n := 0
	for n < max && m.Pending() > 0 {
		m.Step()
		n++
	}
	return n
}
