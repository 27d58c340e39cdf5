package widget

import (
	"fmt"
	"math"
	"sync"
	"time"

	"pitchdeck/internal/timing"
)

// counterFrameEvery is the value-update cadence while a count is running.
const counterFrameEvery = 16 * time.Millisecond

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(float64) float64

// EaseLinear is the identity easing.
func EaseLinear(p float64) float64 { return p }

// EaseOutQuad decelerates towards the end of the count.
func EaseOutQuad(p float64) float64 { return 1 - (1-p)*(1-p) }

// EaseOutCubic decelerates harder; the default for stat counters.
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// Counter animates a displayed integer from 0 to a target over a fixed
// duration. It arms once, on first visibility, and never re-runs; the
// final value is exactly the target despite floor-based interpolation.
type Counter struct {
	mu       sync.Mutex
	clock    timing.Clock
	target   int
	duration time.Duration
	ease     Easing

	started  bool
	startAt  time.Time
	value    int
	done     bool
	disposed bool

	frames *timing.Interval
}

// NewCounter creates an idle counter. It starts on the first SetVisible(true).
func NewCounter(clock timing.Clock, target int, duration time.Duration, ease Easing) (*Counter, error) {
	if target < 0 {
		return nil, fmt.Errorf("counter: target must be >= 0, got %d", target)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("counter: duration must be positive, got %v", duration)
	}
	if ease == nil {
		ease = EaseOutCubic
	}
	return &Counter{
		clock:    clock,
		target:   target,
		duration: duration,
		ease:     ease,
	}, nil
}

// SetVisible arms the count on the first true. Later visibility changes,
// in either direction, are ignored: the animation is one-shot.
func (c *Counter) SetVisible(visible bool) {
	if !visible {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.disposed {
		return
	}
	c.started = true
	c.startAt = c.clock.Now()
	c.frames = timing.NewInterval(c.clock, counterFrameEvery, func() { c.step() })
}

func (c *Counter) step() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done || c.disposed {
		return
	}
	p := float64(c.clock.Now().Sub(c.startAt)) / float64(c.duration)
	if p >= 1 {
		c.value = c.target
		c.done = true
		if c.frames != nil {
			c.frames.Stop()
		}
		return
	}
	next := int(math.Floor(c.ease(p) * float64(c.target)))
	// Floored eased progress is non-decreasing for monotone easings, but
	// never let a misbehaved easing walk the display backwards.
	if next > c.value {
		c.value = next
	}
}

// Value returns the currently displayed integer.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Done reports whether the count has landed on the target.
func (c *Counter) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Target returns the final value the counter is heading for.
func (c *Counter) Target() int {
	return c.target
}

// Dispose stops the frame loop mid-flight. The displayed value freezes
// wherever it was; no further updates occur.
func (c *Counter) Dispose() {
	c.mu.Lock()
	c.disposed = true
	frames := c.frames
	c.mu.Unlock()
	if frames != nil {
		frames.Stop()
	}
}
