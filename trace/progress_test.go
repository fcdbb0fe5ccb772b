package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	newTimeline := func(t *testing.T, policy Policy) *Timeline {
		tl, err := Build(strokes(logoLengths...), Layout{Policy: policy, Duration: 200})
		require.NoError(t, err)
		return tl
	}

	t.Run("a fresh timeline reports nothing at frame zero", func(t *testing.T) {
		tl := newTimeline(t, OneByOne)
		assert.Empty(t, tl.Trace(0, Linear, Linear))
	})

	t.Run("sync segments share their progress", func(t *testing.T) {
		tl := newTimeline(t, Sync)
		changed := tl.Trace(50, Linear, Linear)
		assert.Len(t, changed, 6)
		for _, p := range tl.Progress() {
			assert.Equal(t, 0.25, p)
		}
	})

	t.Run("unchanged eased values are not reported", func(t *testing.T) {
		tl := newTimeline(t, OneByOne)
		require.NotEmpty(t, tl.Trace(250, Linear, Linear))
		assert.Empty(t, tl.Trace(300, Linear, Linear), "both frames clamp to 1")

		// Only the first window moves between these two frames.
		assert.Equal(t, []int{0}, newTimeline(t, OneByOne).Trace(10, Linear, Linear))
	})

	t.Run("animation easing warps the whole timeline", func(t *testing.T) {
		tl := newTimeline(t, Sync)
		tl.Trace(100, EaseIn, Linear)
		assert.InDelta(t, 0.125, tl.Segments[0].Progress, 1e-12)
	})

	t.Run("path easing applies per segment", func(t *testing.T) {
		tl := newTimeline(t, Sync)
		tl.Trace(100, Linear, EaseOut)
		assert.InDelta(t, 0.875, tl.Segments[3].Progress, 1e-12)
	})

	t.Run("progress is monotonic for identity easing", func(t *testing.T) {
		for _, policy := range allPolicies {
			tl := newTimeline(t, policy)
			last := make([]float64, len(tl.Segments))
			for frame := 0.0; frame <= tl.FrameLength; frame += 0.5 {
				tl.Trace(frame, nil, nil)
				for i, p := range tl.Progress() {
					assert.GreaterOrEqual(t, p, last[i], "%s frame %v segment %d", policy, frame, i)
					assert.LessOrEqual(t, p, 1.0)
					last[i] = p
				}
			}
			tl.Trace(tl.FrameLength, nil, nil)
			for _, p := range tl.Progress() {
				assert.Equal(t, 1.0, p, policy.String())
			}
		}
	})

	t.Run("invalidate reports every segment again", func(t *testing.T) {
		tl := newTimeline(t, Delayed)
		tl.Trace(200, Linear, Linear)
		assert.Empty(t, tl.Trace(200, Linear, Linear))
		tl.Invalidate()
		assert.Len(t, tl.Trace(200, Linear, Linear), 6)
	})
}
