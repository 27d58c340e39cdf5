package widget

import (
	"fmt"
	"sync"
	"time"

	"pitchdeck/internal/timing"
)

// NoPanel is the Accordion open index when every panel is collapsed.
const NoPanel = -1

// Accordion tracks which single panel of a fixed list is open. Opening a
// panel closes the previous one in the same step; two panels are never
// open at once. An optional affordance auto-opens panel 0 after a delay,
// unless the user has touched a panel first.
type Accordion struct {
	mu         sync.Mutex
	panels     int
	open       int
	interacted bool
	disposed   bool
	auto       *timing.Task
}

// NewAccordion creates a fully collapsed accordion. If autoOpenDelay is
// positive, panel 0 opens by itself after that delay as a usage hint.
func NewAccordion(clock timing.Clock, panels int, autoOpenDelay time.Duration) (*Accordion, error) {
	if panels < 1 {
		return nil, fmt.Errorf("accordion: need at least one panel, got %d", panels)
	}
	a := &Accordion{
		panels: panels,
		open:   NoPanel,
		auto:   timing.NewTask(clock),
	}
	if autoOpenDelay > 0 {
		a.auto.Schedule(autoOpenDelay, a.autoOpen)
	}
	return a, nil
}

func (a *Accordion) autoOpen() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.interacted || a.disposed || a.open != NoPanel {
		return
	}
	a.open = 0
}

// Toggle opens panel index, or closes it if it is the open one. The first
// call permanently disables the auto-open affordance.
func (a *Accordion) Toggle(index int) error {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return nil
	}
	if index < 0 || index >= a.panels {
		a.mu.Unlock()
		return fmt.Errorf("accordion: toggle %d of %d: %w", index, a.panels, ErrIndexOutOfRange)
	}
	a.interacted = true
	if a.open == index {
		a.open = NoPanel
	} else {
		a.open = index
	}
	a.mu.Unlock()

	a.auto.Cancel()
	return nil
}

// Open returns the open panel index, or NoPanel.
func (a *Accordion) Open() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open
}

// Panels returns the fixed panel count.
func (a *Accordion) Panels() int {
	return a.panels
}

// Dispose cancels the pending auto-open, if any.
func (a *Accordion) Dispose() {
	a.mu.Lock()
	a.disposed = true
	a.mu.Unlock()
	a.auto.Cancel()
}
