// Package dispatch runs closures one at a time on a dedicated goroutine.
//
// A Queue is the control thread of an upgrade console and the delivery
// thread of a feature listener: everything posted to one Queue runs in
// order, never concurrently with anything else posted to the same Queue.
package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/golang-collections/go-datastructures/queue"
)

// defaultHint is the initial capacity of the backing queue
const defaultHint = 16

// Queue is a serial executor.
type Queue struct {
	items     *queue.Queue
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
}

// NewQueue starts a Queue. Close must be called to release its goroutine.
func NewQueue() *Queue {
	q := &Queue{
		items: queue.New(defaultHint),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		items, err := q.items.Get(1)
		if err != nil {
			// disposed
			return
		}
		for _, item := range items {
			item.(func())()
		}
	}
}

// Post schedules fn. It returns false once the Queue is closed.
func (q *Queue) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	return q.items.Put(fn) == nil
}

// Sync posts fn and waits until it has run. It returns false when the
// Queue is closed before fn could run.
// Sync must not be called from a closure running on the same Queue.
func (q *Queue) Sync(fn func()) bool {
	ran := make(chan struct{})
	if !q.Post(func() { fn(); close(ran) }) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-q.done:
		select {
		case <-ran:
			return true
		default:
			return false
		}
	}
}

// Close stops the Queue. Closures not yet started are dropped. Close does
// not wait for a running closure, so it is safe to call from one.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.closed.Store(true)
		q.items.Dispose()
	})
}

// Done is closed when the Queue goroutine has exited.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	return q.closed.Load()
}
