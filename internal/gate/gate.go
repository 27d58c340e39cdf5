// Package gate implements the passphrase screen in front of the deck.
// It is access friction, not authentication: a case-sensitive match against
// a small fixed allowlist, with no lockout, no attempt counting, and no
// persistence across restarts.
package gate

import (
	"errors"
	"strings"
	"sync"
	"time"

	"pitchdeck/internal/timing"

	"github.com/google/uuid"
)

// Stage is the access flow state.
type Stage int

const (
	StageLocked Stage = iota
	StageSplash
	StageUnlocked
)

func (s Stage) String() string {
	switch s {
	case StageLocked:
		return "locked"
	case StageSplash:
		return "splash"
	case StageUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// ErrDenied is returned by Submit for any candidate outside the allowlist.
// Denial is always recoverable; callers simply prompt again.
var ErrDenied = errors.New("passphrase not recognized")

// Credential is one allowlist entry. Role only branches cosmetic behavior
// (accent color, analytics flag) and never gates content.
type Credential struct {
	Phrase string
	Role   string
}

// Grant records a successful submission.
type Grant struct {
	ID   string
	Role string
	At   time.Time
}

// Keeper runs the Locked → Splash → Unlocked flow. The splash step is
// skipped when its duration is zero. Unlocked is terminal for the life of
// the process.
type Keeper struct {
	mu          sync.Mutex
	clock       timing.Clock
	creds       []Credential
	splashFor   time.Duration
	stage       Stage
	grant       *Grant
	splash      *timing.Task
	onGrant     func(Grant) // injected side-effect port, may be nil
	onUnlock    func()      // fires when the splash step completes, may be nil
}

// Option configures a Keeper.
type Option func(*Keeper)

// WithSplash enables the timed splash step before Unlocked.
func WithSplash(d time.Duration) Option {
	return func(k *Keeper) { k.splashFor = d }
}

// WithOnGrant installs the side-effect port invoked once on success
// (e.g. setting an analytics suppression flag). Never invoked on denial.
func WithOnGrant(fn func(Grant)) Option {
	return func(k *Keeper) { k.onGrant = fn }
}

// WithOnUnlock installs a callback fired when the flow reaches Unlocked,
// including via splash auto-dismiss.
func WithOnUnlock(fn func()) Option {
	return func(k *Keeper) { k.onUnlock = fn }
}

// NewKeeper creates a locked Keeper over the given allowlist.
func NewKeeper(clock timing.Clock, creds []Credential, opts ...Option) (*Keeper, error) {
	if len(creds) == 0 {
		return nil, errors.New("gate: at least one credential required")
	}
	for _, c := range creds {
		if strings.TrimSpace(c.Phrase) == "" {
			return nil, errors.New("gate: empty passphrase in allowlist")
		}
	}
	k := &Keeper{
		clock:  clock,
		creds:  creds,
		stage:  StageLocked,
		splash: timing.NewTask(clock),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Stage returns the current flow stage.
func (k *Keeper) Stage() Stage {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.stage
}

// Grant returns the recorded grant, or nil while locked.
func (k *Keeper) Grant() *Grant {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.grant
}

// Submit checks a candidate against the allowlist. Surrounding whitespace
// is trimmed before comparison; the match itself is case-sensitive. On the
// first success the flow moves to Splash (or straight to Unlocked) and the
// grant side effect fires. Submitting after unlock returns the existing
// grant unchanged.
func (k *Keeper) Submit(candidate string) (*Grant, error) {
	k.mu.Lock()
	if k.stage != StageLocked {
		g := k.grant
		k.mu.Unlock()
		return g, nil
	}

	trimmed := strings.TrimSpace(candidate)
	var matched *Credential
	for i := range k.creds {
		if k.creds[i].Phrase == trimmed {
			matched = &k.creds[i]
			break
		}
	}
	if matched == nil {
		k.mu.Unlock()
		return nil, ErrDenied
	}

	grant := &Grant{
		ID:   uuid.NewString(),
		Role: matched.Role,
		At:   k.clock.Now(),
	}
	k.grant = grant

	var unlockNow bool
	if k.splashFor > 0 {
		k.stage = StageSplash
		k.splash.Schedule(k.splashFor, k.finishSplash)
	} else {
		k.stage = StageUnlocked
		unlockNow = true
	}
	onGrant := k.onGrant
	onUnlock := k.onUnlock
	k.mu.Unlock()

	if onGrant != nil {
		onGrant(*grant)
	}
	if unlockNow && onUnlock != nil {
		onUnlock()
	}
	return grant, nil
}

func (k *Keeper) finishSplash() {
	k.mu.Lock()
	if k.stage != StageSplash {
		k.mu.Unlock()
		return
	}
	k.stage = StageUnlocked
	onUnlock := k.onUnlock
	k.mu.Unlock()

	if onUnlock != nil {
		onUnlock()
	}
}

// SkipSplash dismisses the splash step early (keypress-to-continue).
func (k *Keeper) SkipSplash() {
	k.splash.Cancel()
	k.mu.Lock()
	recreate := k.stage == StageSplash
	k.mu.Unlock()
	if recreate {
		k.finishSplash()
	}
}

// Dispose cancels the pending splash transition. The stage freezes where
// it is; no callback fires afterwards.
func (k *Keeper) Dispose() {
	k.splash.Cancel()
}
