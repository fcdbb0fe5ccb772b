// Package clock provides the frame scheduling capability animations are
// driven by. A Scheduler runs callbacks "before the next frame", one batch
// per frame, always on a single goroutine.
package clock

import (
	"sort"
	"sync"
)

// Handle identifies a pending frame callback. The zero Handle is never issued.
type Handle uint64

// Scheduler requests and cancels frame callbacks.
type Scheduler interface {
	// RequestFrame queues fn to run on the next frame.
	RequestFrame(fn func()) Handle
	// CancelFrame removes a pending callback. Cancelling a handle that has
	// already run, or was never issued, is a no-op.
	CancelFrame(h Handle)
}

// queue holds the pending callbacks shared by Loop and Manual.
type queue struct {
	mu      sync.Mutex
	last    Handle
	pending map[Handle]func()
}

func (q *queue) request(fn func()) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == nil {
		q.pending = make(map[Handle]func())
	}
	q.last++
	q.pending[q.last] = fn
	return q.last
}

func (q *queue) cancel(h Handle) {
	q.mu.Lock()
	delete(q.pending, h)
	q.mu.Unlock()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// frame runs every callback that was pending when the frame began, in
// request order. Callbacks requested while the frame runs wait for the next
// one; callbacks cancelled while it runs are skipped. It returns the number
// of callbacks run.
func (q *queue) frame() int {
	q.mu.Lock()
	handles := make([]Handle, 0, len(q.pending))
	for h := range q.pending {
		handles = append(handles, h)
	}
	q.mu.Unlock()
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	ran := 0
	for _, h := range handles {
		q.mu.Lock()
		fn, ok := q.pending[h]
		delete(q.pending, h)
		q.mu.Unlock()
		if !ok {
			continue
		}
		fn()
		ran++
	}
	return ran
}
