package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual(t *testing.T) {
	t.Run("runs callbacks in request order", func(t *testing.T) {
		m := NewManual()
		log := []string{}
		m.RequestFrame(func() { log = append(log, "a") })
		m.RequestFrame(func() { log = append(log, "b") })

		assert.Equal(t, 2, m.Step())
		assert.Equal(t, []string{"a", "b"}, log)
		assert.Equal(t, 0, m.Pending())
	})

	t.Run("defers callbacks requested during a frame", func(t *testing.T) {
		m := NewManual()
		count := 0
		var again func()
		again = func() {
			count++
			if count < 3 {
				m.RequestFrame(again)
			}
		}
		m.RequestFrame(again)

		assert.Equal(t, 1, m.Step())
		assert.Equal(t, 1, count)
		assert.Equal(t, 2, m.Drain(10))
		assert.Equal(t, 3, count)
		assert.Equal(t, 3, m.Frames())
	})

	t.Run("cancelled callbacks never run", func(t *testing.T) {
		m := NewManual()
		ran := false
		var second Handle
		m.RequestFrame(func() { m.CancelFrame(second) })
		second = m.RequestFrame(func() { ran = true })

		m.Step()
		assert.False(t, ran)

		m.CancelFrame(second)
		m.CancelFrame(Handle(999))
	})

	t.Run("handles are unique and non-zero", func(t *testing.T) {
		m := NewManual()
		h1 := m.RequestFrame(func() {})
		h2 := m.RequestFrame(func() {})
		assert.NotZero(t, h1)
		assert.NotEqual(t, h1, h2)
	})
}

func TestLoop(t *testing.T) {
	t.Run("default frame rate", func(t *testing.T) {
		l := NewLoop(0)
		frameRate := DefaultFrameRate
		assert.Equal(t, time.Duration(float64(time.Second)/frameRate), l.Interval())
	})

	t.Run("runs frames and calls on one goroutine", func(t *testing.T) {
		l := NewLoop(1000)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		stopped := make(chan error, 1)
		go func() { stopped <- l.Run(ctx) }()

		fired := make(chan struct{})
		require.NoError(t, l.Do(ctx, func() {
			l.RequestFrame(func() { close(fired) })
		}))

		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatal("frame callback did not run")
		}

		cancel()
		assert.ErrorIs(t, <-stopped, context.Canceled)
	})

	t.Run("Do gives up when the context ends", func(t *testing.T) {
		l := NewLoop(60)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, l.Do(ctx, func() {}), context.Canceled)
	})
}
