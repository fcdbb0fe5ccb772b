package trace

// A Sink applies computed progress to whatever renders the drawing.
type Sink interface {
	// Prepare sets a segment up for drawing (dash pattern of Length,
	// nothing revealed). It is called once per segment before the first
	// Draw and again when the segment's length is remeasured.
	Prepare(s Segment)
	// Draw reveals s.Progress of the segment.
	Draw(s Segment)
	// Clear undoes everything Prepare and Draw applied.
	Clear(s Segment)
}

// A Flusher is a Sink that batches updates. Flush is called after every
// trace of the timeline.
type Flusher interface {
	Flush()
}

// NopSink discards every update.
type NopSink struct{}

func (NopSink) Prepare(Segment) {}
func (NopSink) Draw(Segment)    {}
func (NopSink) Clear(Segment)   {}
