// Package widget implements the interactive pieces of the deck: the
// auto-advancing selector, comparison slider, counting stat display,
// one-shot reveals, the accordion, and the decorative shape animator.
// Every widget owns its state exclusively, takes an injected timing.Clock,
// and guarantees that no callback fires after Dispose.
package widget

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"pitchdeck/internal/timing"
)

// ErrIndexOutOfRange is returned by Select and Toggle for indices outside
// the widget's range.
var ErrIndexOutOfRange = errors.New("index out of range")

// Selector cycles an active index on a timer, wrapping at total. Manual
// selection preempts the cycle and pauses it for an idle timeout; leaving
// the viewport stops the cadence without queueing catch-up ticks.
type Selector struct {
	mu       sync.Mutex
	total    int
	active   int
	paused   bool // user interacted, waiting out the idle timeout
	visible  bool
	disposed bool

	idleTimeout time.Duration

	auto   *timing.Interval
	resume *timing.Task
}

// NewSelector creates a running selector over total entries.
func NewSelector(clock timing.Clock, total int, interval, idleTimeout time.Duration) (*Selector, error) {
	if total < 1 {
		return nil, fmt.Errorf("selector: total must be >= 1, got %d", total)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("selector: interval must be positive, got %v", interval)
	}
	s := &Selector{
		total:       total,
		visible:     true,
		idleTimeout: idleTimeout,
		resume:      timing.NewTask(clock),
	}
	s.auto = timing.NewInterval(clock, interval, func() { s.advance() })
	return s, nil
}

func (s *Selector) advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || s.paused || !s.visible {
		return
	}
	s.active = (s.active + 1) % s.total
}

// Active returns the current index.
func (s *Selector) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Total returns the number of entries.
func (s *Selector) Total() int {
	return s.total
}

// Select sets the active index directly and suspends auto-advance for the
// idle timeout. Out-of-range indices leave the state untouched.
func (s *Selector) Select(index int) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}
	if index < 0 || index >= s.total {
		s.mu.Unlock()
		return fmt.Errorf("selector: select %d of %d: %w", index, s.total, ErrIndexOutOfRange)
	}
	s.active = index
	s.paused = true
	s.reconcileLocked()
	idle := s.idleTimeout
	s.mu.Unlock()

	s.resume.Schedule(idle, func() {
		s.mu.Lock()
		s.paused = false
		s.reconcileLocked()
		s.mu.Unlock()
	})
	return nil
}

// Next advances manually (wrapping), with the same pause semantics as Select.
func (s *Selector) Next() {
	s.mu.Lock()
	next := (s.active + 1) % s.total
	s.mu.Unlock()
	_ = s.Select(next)
}

// Prev steps backwards (wrapping), with the same pause semantics as Select.
func (s *Selector) Prev() {
	s.mu.Lock()
	prev := (s.active - 1 + s.total) % s.total
	s.mu.Unlock()
	_ = s.Select(prev)
}

// SetVisible gates the auto-advance cadence on viewport visibility.
// Re-entering the viewport resumes on a fresh period, never a catch-up.
func (s *Selector) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || s.visible == visible {
		return
	}
	s.visible = visible
	s.reconcileLocked()
}

// reconcileLocked pauses or resumes the underlying interval to match the
// visible/paused flags. Caller must hold mu.
func (s *Selector) reconcileLocked() {
	if s.disposed {
		return
	}
	if s.visible && !s.paused {
		s.auto.Resume()
	} else {
		s.auto.Pause()
	}
}

// Dispose cancels the auto-advance timer and any pending un-pause.
// After Dispose returns, the active index never changes again.
func (s *Selector) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
	s.auto.Stop()
	s.resume.Cancel()
}
