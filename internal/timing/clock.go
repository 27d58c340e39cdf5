// Package timing provides the cancellable scheduling primitives shared by
// every timer-driven widget: an injectable clock, a fire-once task, and a
// pausable repeating interval. Widgets never call time.AfterFunc directly;
// routing all scheduling through one abstraction keeps disposal semantics
// uniform and makes timing behavior testable with a mock clock.
package timing

import (
	"sync"
	"time"
)

// Timer is a cancellable scheduled callback handle.
type Timer interface {
	// Stop prevents the callback from firing. Returns false if it already
	// fired or was already stopped.
	Stop() bool
}

// Clock abstracts wall-clock time and callback scheduling.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemClock is the real clock backed by the time package.
type SystemClock struct{}

// NewSystemClock returns a Clock backed by real time.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time with monotonic clock reading.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn to run after d on its own goroutine.
func (c *SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool {
	return s.t.Stop()
}

// MockClock is a controllable time source for testing. Scheduled callbacks
// fire synchronously from Advance in deadline order, so tests can step
// through timer interleavings deterministically.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	timers  []*mockTimer
}

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

// NewMockClock creates a mock clock starting at the given time.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: start}
}

// Now returns the current mocked time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// AfterFunc registers fn to fire once the mock time advances past d.
func (m *MockClock) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &mockTimer{clock: m, deadline: m.current.Add(d), fn: fn}
	m.timers = append(m.timers, t)
	return t
}

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the mock time forward, firing due callbacks in deadline
// order. Callbacks run without the clock lock held so they may schedule
// follow-up timers (interval chaining relies on this).
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.current.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var next *mockTimer
		for _, t := range m.timers {
			if t.fired || t.stopped || t.deadline.After(target) {
				continue
			}
			if next == nil || t.deadline.Before(next.deadline) {
				next = t
			}
		}
		if next == nil {
			m.current = target
			m.mu.Unlock()
			return
		}
		next.fired = true
		if next.deadline.After(m.current) {
			m.current = next.deadline
		}
		fn := next.fn
		m.mu.Unlock()
		fn()
	}
}

// Pending reports how many scheduled callbacks have neither fired nor been
// stopped. Used by leak-regression tests.
func (m *MockClock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}
