package widget

import (
	"math"
	"sync"
	"time"

	"pitchdeck/internal/timing"
)

// sliderFrameEvery is the demo animation sampling cadence.
const sliderFrameEvery = 33 * time.Millisecond

// Slider tracks a 0–100 comparison position. Until the first drag it runs
// a cosine demo oscillation as an affordance hint; the first drag hands
// control to the pointer permanently.
type Slider struct {
	mu             sync.Mutex
	clock          timing.Clock
	start          time.Time
	position       float64
	userControlled bool
	dragging       bool

	// Demo oscillation parameters.
	period   time.Duration
	center   float64
	amplitude float64

	// Horizontal bounds of the widget in pointer coordinates.
	originX float64
	width   float64

	demo *timing.Interval
}

// SliderOption configures a Slider.
type SliderOption func(*Slider)

// WithDemoCycle sets the demo oscillation period and sweep range.
func WithDemoCycle(period time.Duration, lo, hi float64) SliderOption {
	return func(s *Slider) {
		s.period = period
		s.center = (lo + hi) / 2
		s.amplitude = (hi - lo) / 2
	}
}

// NewSlider creates a slider mid-track and starts the idle demo loop.
func NewSlider(clock timing.Clock, opts ...SliderOption) *Slider {
	s := &Slider{
		clock:     clock,
		start:     clock.Now(),
		position:  50,
		period:    4 * time.Second,
		center:    50,
		amplitude: 30,
		width:     100,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.demo = timing.NewInterval(clock, sliderFrameEvery, func() { s.demoStep() })
	return s
}

// demoPositionAt is the idle oscillation as a pure function of elapsed
// time: a cosine sweep so t=0 starts at the top of the range.
func (s *Slider) demoPositionAt(elapsed time.Duration) float64 {
	phase := 2 * math.Pi * elapsed.Seconds() / s.period.Seconds()
	return clamp(s.center+s.amplitude*math.Cos(phase), 0, 100)
}

func (s *Slider) demoStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userControlled {
		return
	}
	s.position = s.demoPositionAt(s.clock.Now().Sub(s.start))
}

// Position returns the current 0–100 position.
func (s *Slider) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// UserControlled reports whether a drag has taken over from the demo.
func (s *Slider) UserControlled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userControlled
}

// SetBounds records the widget's horizontal extent in pointer coordinates.
// Widths below one cell are ignored.
func (s *Slider) SetBounds(originX, width float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width < 1 {
		return
	}
	s.originX = originX
	s.width = width
}

// PointerDown starts a drag at the given pointer x.
func (s *Slider) PointerDown(clientX float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = true
}

// PointerMove updates the position while a drag is active. The first move
// of the first drag permanently retires the demo loop. Pointer positions
// outside the bounds still track, clamped to the track ends.
func (s *Slider) PointerMove(clientX float64) {
	s.mu.Lock()
	if !s.dragging {
		s.mu.Unlock()
		return
	}
	if !s.userControlled {
		s.userControlled = true
		defer s.demo.Stop()
	}
	s.position = clamp((clientX-s.originX)/s.width*100, 0, 100)
	s.mu.Unlock()
}

// PointerUp ends the active drag. Control stays with the user.
func (s *Slider) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = false
}

// Nudge moves the position by delta (keyboard control). Takes over from
// the demo the same way a drag does.
func (s *Slider) Nudge(delta float64) {
	s.mu.Lock()
	if !s.userControlled {
		s.userControlled = true
		defer s.demo.Stop()
	}
	s.position = clamp(s.position+delta, 0, 100)
	s.mu.Unlock()
}

// Dispose stops the demo loop. After Dispose returns, the position only
// ever changes through pointer input, and only if callers keep routing it.
func (s *Slider) Dispose() {
	s.demo.Stop()
	s.mu.Lock()
	s.dragging = false
	s.mu.Unlock()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
