package widget

import "sync"

// Reveal is the one-shot enter-viewport flag behind fade/slide-in
// section animations. Once revealed, always revealed: re-entering the
// viewport never replays the animation for the same instance.
type Reveal struct {
	mu       sync.Mutex
	revealed bool
	onReveal func() // may be nil
}

// NewReveal creates an unrevealed flag. onReveal fires exactly once, on
// the first visible transition.
func NewReveal(onReveal func()) *Reveal {
	return &Reveal{onReveal: onReveal}
}

// SetVisible records a visibility change. The first true trips the reveal
// and returns true; every other call returns false.
func (r *Reveal) SetVisible(visible bool) bool {
	if !visible {
		return false
	}
	r.mu.Lock()
	if r.revealed {
		r.mu.Unlock()
		return false
	}
	r.revealed = true
	fn := r.onReveal
	r.mu.Unlock()

	if fn != nil {
		fn()
	}
	return true
}

// Revealed reports whether the reveal has tripped.
func (r *Reveal) Revealed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revealed
}
