package state

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the revert task needs.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks. SystemClock is the real one; tests
// substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

var SystemClock Clock = systemClock{}

// DelayedTask runs one callback after a fixed delay. Scheduling again
// cancels whatever is still pending, so at most one callback is in flight.
type DelayedTask struct {
	clock    Clock
	delay    time.Duration
	run      func()
	dispatch func(func())
	pending  Timer
	gen      uint64
	mu       sync.Mutex
}

func NewDelayedTask(clock Clock, delay time.Duration, run func()) *DelayedTask {
	return NewDispatchedTask(clock, delay, nil, run)
}

// NewDispatchedTask is NewDelayedTask with run handed to dispatch, for
// callers that must run it on another goroutine. The task is checked again
// once dispatch gets to it, so a Schedule or Cancel made while the callback
// was queued still wins.
func NewDispatchedTask(clock Clock, delay time.Duration, dispatch func(func()), run func()) *DelayedTask {
	if clock == nil {
		clock = SystemClock
	}
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &DelayedTask{clock: clock, delay: delay, run: run, dispatch: dispatch}
}

// Schedule (re)arms the task.
func (t *DelayedTask) Schedule() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		t.pending.Stop()
	}
	t.gen++
	gen := t.gen
	t.pending = t.clock.AfterFunc(t.delay, func() {
		// A callback that lost the race with Stop must not run.
		if !t.current(gen) {
			return
		}
		t.dispatch(func() {
			if !t.claim(gen) {
				return
			}
			t.run()
		})
	})
}

func (t *DelayedTask) current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gen == t.gen
}

// claim marks the task done if gen is still the latest schedule.
func (t *DelayedTask) claim(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return false
	}
	t.pending = nil
	return true
}

// Cancel drops the pending callback, if any.
func (t *DelayedTask) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.gen++
}

func (t *DelayedTask) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}
