package timing

import (
	"sync"
	"time"
)

// Task is a fire-once delayed callback with idempotent cancellation.
// Rescheduling replaces any pending run, so a Task can back a "reset the
// idle timer on every interaction" pattern without leaking timers.
type Task struct {
	mu    sync.Mutex
	clock Clock
	timer Timer
	done  bool
}

// NewTask creates an idle task bound to the given clock.
func NewTask(clock Clock) *Task {
	return &Task{clock: clock}
}

// Schedule arranges fn to run after d, replacing any pending run.
// Scheduling on a cancelled task is a no-op.
func (t *Task) Schedule(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = t.clock.AfterFunc(d, func() {
		t.mu.Lock()
		cancelled := t.done
		t.mu.Unlock()
		if !cancelled {
			fn()
		}
	})
}

// Cancel stops any pending run. After Cancel returns, fn never fires.
func (t *Task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Interval is a repeating callback with pause/resume and permanent stop.
// Pausing drops ticks rather than queueing them: resuming always starts a
// fresh full period, never a catch-up burst.
type Interval struct {
	mu      sync.Mutex
	clock   Clock
	every   time.Duration
	fn      func()
	timer   Timer
	paused  bool
	stopped bool
}

// NewInterval starts a repeating callback firing every period on clock.
// The returned Interval is already running.
func NewInterval(clock Clock, every time.Duration, fn func()) *Interval {
	iv := &Interval{clock: clock, every: every, fn: fn}
	iv.mu.Lock()
	iv.arm()
	iv.mu.Unlock()
	return iv
}

// arm schedules the next tick. Caller must hold mu.
func (iv *Interval) arm() {
	iv.timer = iv.clock.AfterFunc(iv.every, iv.tick)
}

func (iv *Interval) tick() {
	iv.mu.Lock()
	if iv.stopped || iv.paused {
		iv.mu.Unlock()
		return
	}
	iv.arm()
	fn := iv.fn
	iv.mu.Unlock()
	fn()
}

// Pause suspends ticking until Resume. Idempotent.
func (iv *Interval) Pause() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.stopped || iv.paused {
		return
	}
	iv.paused = true
	if iv.timer != nil {
		iv.timer.Stop()
	}
}

// Resume restarts ticking with a fresh full period.
func (iv *Interval) Resume() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.stopped || !iv.paused {
		return
	}
	iv.paused = false
	iv.arm()
}

// Stop permanently halts the interval. After Stop returns, fn never fires.
func (iv *Interval) Stop() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.stopped = true
	if iv.timer != nil {
		iv.timer.Stop()
		iv.timer = nil
	}
}
