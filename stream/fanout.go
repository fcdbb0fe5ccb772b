package stream

import "github.com/matt-g-everett/sketchtx/trace"

// Fanout forwards every update to each of its sinks in order.
type Fanout []trace.Sink

var (
	_ trace.Sink    = Fanout(nil)
	_ trace.Flusher = Fanout(nil)
)

func (f Fanout) Prepare(s trace.Segment) {
	for _, sink := range f {
		sink.Prepare(s)
	}
}

func (f Fanout) Draw(s trace.Segment) {
	for _, sink := range f {
		sink.Draw(s)
	}
}

func (f Fanout) Clear(s trace.Segment) {
	for _, sink := range f {
		sink.Clear(s)
	}
}

// Flush flushes the sinks that batch.
func (f Fanout) Flush() {
	for _, sink := range f {
		if fl, ok := sink.(trace.Flusher); ok {
			fl.Flush()
		}
	}
}
