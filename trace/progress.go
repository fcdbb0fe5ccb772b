package trace

import "math"

// Trace computes the progress of every segment at frame and returns the
// indices of the segments whose eased progress changed since the last call.
//
// anim shapes the animation as a whole: it is applied to frame/FrameLength
// and the result, scaled back to frames, drives every segment. path then
// shapes each segment's own progress. Nil easings are linear.
func (t *Timeline) Trace(frame float64, anim, path Easing) []int {
	if anim == nil {
		anim = Linear
	}
	if path == nil {
		path = Linear
	}

	virtual := anim(frame/t.FrameLength) * t.FrameLength

	var changed []int
	for i, s := range t.Segments {
		var progress float64
		switch {
		case virtual >= s.StartAt+s.Duration:
			progress = 1
		case virtual > s.StartAt:
			progress = (virtual - s.StartAt) / s.Duration
		}
		progress = path(math.Max(0, math.Min(1, progress)))
		if s.traced && s.Progress == progress {
			continue
		}
		s.Progress = progress
		s.traced = true
		changed = append(changed, i)
	}
	return changed
}

// Invalidate forgets the cached progress of every segment so the next Trace
// reports all of them.
func (t *Timeline) Invalidate() {
	for _, s := range t.Segments {
		s.traced = false
	}
}

// Progress returns the cached progress of every segment, in timeline order.
func (t *Timeline) Progress() []float64 {
	out := make([]float64, len(t.Segments))
	for i, s := range t.Segments {
		out[i] = s.Progress
	}
	return out
}
