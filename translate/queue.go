package translate

import (
	"context"
	"errors"
	"sync"

	"github.com/spetersoncode/agui/events"
)

// ErrQueueClosed is returned by Put and Get after the queue is closed
// and drained.
var ErrQueueClosed = errors.New("translate: queue closed")

const defaultQueueSize = 256

// Queue is the per-run output channel between event producers and the
// transport. The run loop and any number of heartbeat goroutines append
// to it; one consumer drains it. Events are delivered in append order.
//
// Put on a closed queue returns ErrQueueClosed instead of panicking, so
// a heartbeat firing into a torn-down run degrades to a logged error.
type Queue struct {
	ch   chan events.Event
	done chan struct{}
	once sync.Once
}

// NewQueue creates a queue with the given buffer size. A size of zero or
// less selects a default.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue{
		ch:   make(chan events.Event, size),
		done: make(chan struct{}),
	}
}

// Put appends one event. It blocks while the buffer is full and returns
// ErrQueueClosed once the queue has been closed.
func (q *Queue) Put(ev events.Event) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}
	select {
	case q.ch <- ev:
		return nil
	case <-q.done:
		return ErrQueueClosed
	}
}

// Get removes and returns the next event. It blocks until an event is
// available, the context is done, or the queue is closed and drained.
func (q *Queue) Get(ctx context.Context) (events.Event, error) {
	// Drain buffered events even after close.
	select {
	case ev := <-q.ch:
		return ev, nil
	default:
	}
	select {
	case ev := <-q.ch:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.done:
		select {
		case ev := <-q.ch:
			return ev, nil
		default:
			return nil, ErrQueueClosed
		}
	}
}

// Close marks the queue closed. Buffered events remain readable via Get;
// subsequent Puts fail. Safe to call more than once.
func (q *Queue) Close() {
	q.once.Do(func() {
		close(q.done)
	})
}
