// Package heartbeat emits periodic progress events for long-running
// tool executions.
//
// An [Emitter] writes ACTIVITY_SNAPSHOT events to a run's output queue
// so a connected client keeps receiving data while a tool call blocks
// the translation loop. Each execution gets an immediate "starting"
// snapshot, a "processing" snapshot per interval tick, and a terminal
// "complete" or "error" snapshot. Snapshots carry replace=true and a
// call-scoped message id, so renderers overwrite the previous heartbeat
// in place instead of accumulating a list.
//
// Heartbeats are best effort: delivery failures are logged and
// swallowed, and they must never affect the tool call they describe.
package heartbeat

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/spetersoncode/agui/events"
	"github.com/spetersoncode/agui/translate"
)

// ErrInvalidInterval is returned by New for a non-positive interval.
var ErrInvalidInterval = errors.New("heartbeat: interval must be positive")

// DefaultActivityType is the activity type stamped on snapshots unless
// overridden with WithActivityType.
const DefaultActivityType = "TOOL_EXECUTION"

// Emitter manages one heartbeat task per in-flight tool execution. All
// methods are safe for concurrent use. An Emitter constructed with a
// nil queue is a no-op: no channel means no consumer, not an error.
type Emitter struct {
	queue        *translate.Queue
	interval     time.Duration
	activityType string
	log          *slog.Logger

	mu     sync.Mutex
	tasks  map[string]*task
	closed bool
}

type task struct {
	stop chan struct{}
	done chan struct{}
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithActivityType overrides the activity type on emitted snapshots.
func WithActivityType(activityType string) Option {
	return func(e *Emitter) {
		e.activityType = activityType
	}
}

// WithLogger sets the logger for swallowed delivery failures. The
// default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(e *Emitter) {
		e.log = log
	}
}

// New creates an Emitter writing to q every interval. A nil q produces
// a no-op emitter; a non-positive interval is a configuration error.
func New(q *translate.Queue, interval time.Duration, opts ...Option) (*Emitter, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	e := &Emitter{
		queue:        q,
		interval:     interval,
		activityType: DefaultActivityType,
		log:          slog.Default(),
		tasks:        make(map[string]*task),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Begin starts heartbeating for one tool execution. It emits the
// "starting" snapshot immediately and then ticks until Complete, Fail,
// or Close. An empty callID gets a generated one; the id actually used
// is returned so the caller can hand it to Complete or Fail. Beginning
// an id that is already running is a no-op.
func (e *Emitter) Begin(callID, toolName string) string {
	if callID == "" {
		callID = events.GenerateToolCallID()
	}
	if e.queue == nil {
		return callID
	}

	e.mu.Lock()
	if e.closed || e.tasks[callID] != nil {
		e.mu.Unlock()
		return callID
	}
	t := &task{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	e.tasks[callID] = t
	e.mu.Unlock()

	e.emit(callID, map[string]any{
		"status": "starting",
		"tool":   toolName,
	})
	go e.run(callID, toolName, t)
	return callID
}

func (e *Emitter) run(callID, toolName string, t *task) {
	defer close(t.done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	started := time.Now()
	n := 0

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			n++
			e.emit(callID, map[string]any{
				"status":          "processing",
				"tool":            toolName,
				"heartbeat":       n,
				"elapsed_seconds": time.Since(started).Seconds(),
			})
		}
	}
}

// Complete stops the heartbeat for callID, waits for its task to exit,
// and emits the "complete" snapshot. Unknown ids are a no-op.
func (e *Emitter) Complete(callID, toolName string) {
	if !e.cancel(callID) {
		return
	}
	e.emit(callID, map[string]any{
		"status": "complete",
		"tool":   toolName,
	})
}

// Fail stops the heartbeat for callID, waits for its task to exit, and
// emits the "error" snapshot. Unknown ids are a no-op.
func (e *Emitter) Fail(callID, toolName string, err error) {
	if !e.cancel(callID) {
		return
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	e.emit(callID, map[string]any{
		"status": "error",
		"tool":   toolName,
		"error":  msg,
	})
}

// cancel stops the task for callID and waits for it. It reports whether
// a task was running.
func (e *Emitter) cancel(callID string) bool {
	e.mu.Lock()
	t := e.tasks[callID]
	delete(e.tasks, callID)
	e.mu.Unlock()
	if t == nil {
		return false
	}
	close(t.stop)
	<-t.done
	return true
}

// Close cancels every outstanding heartbeat task and waits for them.
// No terminal snapshots are emitted; Close is for run teardown, where
// the queue is about to go away. The emitter accepts no new Begins
// afterwards.
func (e *Emitter) Close() {
	e.mu.Lock()
	e.closed = true
	tasks := make([]*task, 0, len(e.tasks))
	for _, t := range e.tasks {
		tasks = append(tasks, t)
	}
	clear(e.tasks)
	e.mu.Unlock()

	for _, t := range tasks {
		close(t.stop)
		<-t.done
	}
}

func (e *Emitter) emit(callID string, content map[string]any) {
	ev := events.NewActivitySnapshotEvent("heartbeat_"+callID, e.activityType, content)
	if err := e.queue.Put(ev); err != nil {
		e.log.Warn("heartbeat delivery failed", "toolCallId", callID, "error", err)
	}
}
