package widget

import (
	"fmt"
	"math"
	"sync"
	"time"

	"pitchdeck/internal/timing"
)

// Shape describes one ambient background shape. Anchors are fractions of
// the surface so resizing keeps the composition stable. Phase staggers
// otherwise-identical shapes; all motion is a deterministic function of
// elapsed time, so two runs of the same config look identical.
type Shape struct {
	AnchorX float64 `yaml:"anchor_x"` // 0..1 fraction of width
	AnchorY float64 `yaml:"anchor_y"` // 0..1 fraction of height
	Size    float64 `yaml:"size"`     // radius as a fraction of the smaller dimension
	Sides   int     `yaml:"sides"`    // polygon sides, >= 3
	Phase   float64 `yaml:"phase"`    // per-shape phase offset, radians
	Spin    float64 `yaml:"spin"`     // rotation speed, radians/second
	Drift   float64 `yaml:"drift"`    // orbit amplitude as a fraction of the surface
	Color   string  `yaml:"color"`    // hex color, passed through to the renderer
}

// Validate rejects configs that would glitch silently mid-loop.
func (s Shape) Validate() error {
	if s.Sides < 3 {
		return fmt.Errorf("shape: %d sides, need at least 3", s.Sides)
	}
	if s.AnchorX < 0 || s.AnchorX > 1 || s.AnchorY < 0 || s.AnchorY > 1 {
		return fmt.Errorf("shape: anchor (%.2f, %.2f) outside [0,1]", s.AnchorX, s.AnchorY)
	}
	if s.Size <= 0 {
		return fmt.Errorf("shape: size must be positive, got %.3f", s.Size)
	}
	if s.Drift < 0 {
		return fmt.Errorf("shape: drift must be >= 0, got %.3f", s.Drift)
	}
	return nil
}

// DrawCommand is one shape's placement for a single frame.
type DrawCommand struct {
	X        float64
	Y        float64
	Radius   float64
	Rotation float64
	Opacity  float64
	Sides    int
	Color    string
}

// FrameAt computes the draw list for a surface of the given size at a
// given elapsed time. Pure: no clock, no randomness, so frames are
// snapshot-testable at fixed times.
func FrameAt(shapes []Shape, width, height float64, elapsed time.Duration) []DrawCommand {
	t := elapsed.Seconds()
	minDim := math.Min(width, height)
	cmds := make([]DrawCommand, len(shapes))
	for i, s := range shapes {
		cmds[i] = DrawCommand{
			X:        s.AnchorX*width + s.Drift*width*math.Sin(t*0.5+s.Phase),
			Y:        s.AnchorY*height + s.Drift*height*math.Cos(t*0.35+s.Phase),
			Radius:   s.Size * minDim,
			Rotation: t*s.Spin + s.Phase,
			Opacity:  0.35 + 0.25*math.Sin(t*0.8+s.Phase),
			Sides:    s.Sides,
			Color:    s.Color,
		}
	}
	return cmds
}

// canvasFrameEvery is the redraw cadence of the ambient animation.
const canvasFrameEvery = 50 * time.Millisecond

// Animator runs the continuous redraw loop, handing each frame's draw
// list to a sink. It has no terminal state other than Stop.
type Animator struct {
	mu      sync.Mutex
	clock   timing.Clock
	start   time.Time
	shapes  []Shape
	width   float64
	height  float64
	stopped bool

	frames *timing.Interval
	sink   func([]DrawCommand)
}

// StartAnimator validates the shape config and begins the frame loop.
// The sink receives every frame until Stop.
func StartAnimator(clock timing.Clock, width, height float64, shapes []Shape, sink func([]DrawCommand)) (*Animator, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("animator: no shapes configured")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("animator: invalid surface %gx%g", width, height)
	}
	if sink == nil {
		return nil, fmt.Errorf("animator: nil sink")
	}
	for i, s := range shapes {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("animator: shape %d: %w", i, err)
		}
	}
	a := &Animator{
		clock:  clock,
		start:  clock.Now(),
		shapes: append([]Shape(nil), shapes...),
		width:  width,
		height: height,
		sink:   sink,
	}
	a.frames = timing.NewInterval(clock, canvasFrameEvery, func() { a.frame() })
	return a, nil
}

func (a *Animator) frame() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	cmds := FrameAt(a.shapes, a.width, a.height, a.clock.Now().Sub(a.start))
	sink := a.sink
	a.mu.Unlock()

	sink(cmds)
}

// Resize rescales the surface. Anchors are fractional, so the composition
// keeps its proportions at the new size.
func (a *Animator) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("animator: invalid surface %gx%g", width, height)
	}
	a.mu.Lock()
	a.width = width
	a.height = height
	a.mu.Unlock()
	return nil
}

// Stop cancels the frame loop. No draw call happens after Stop returns.
func (a *Animator) Stop() {
	a.mu.Lock()
	a.stopped = true
	a.mu.Unlock()
	a.frames.Stop()
}
