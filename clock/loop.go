package clock

import (
	"context"
	"time"
)

// DefaultFrameRate gives a frame roughly every 33ms.
const DefaultFrameRate = 30.0

// Loop is a ticker-paced Scheduler. Frame callbacks and functions passed to
// Do all run on the goroutine that called Run.
type Loop struct {
	queue
	interval time.Duration
	calls    chan func()
}

// NewLoop creates a Loop ticking frameRate times per second.
func NewLoop(frameRate float64) *Loop {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	l := new(Loop)
	l.interval = time.Duration(float64(time.Second) / frameRate)
	l.calls = make(chan func())
	return l
}

// Interval returns the time between two frames.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// RequestFrame implements Scheduler.
func (l *Loop) RequestFrame(fn func()) Handle {
	return l.request(fn)
}

// CancelFrame implements Scheduler.
func (l *Loop) CancelFrame(h Handle) {
	l.cancel(h)
}

// Do runs fn on the loop goroutine and waits for it to return. It returns
// ctx.Err() if the context ends before fn could be handed to the loop.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	call := func() {
		defer close(done)
		fn()
	}
	select {
	case l.calls <- call:
	case <-ctx.Done():
		return ctx.Err()
	}
	<-done
	return nil
}

// Run drives frames until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.frame()
		case call := <-l.calls:
			call()
		}
	}
}
