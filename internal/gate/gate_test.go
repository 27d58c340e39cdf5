package gate

import (
	"errors"
	"testing"
	"time"

	"pitchdeck/internal/timing"
)

func newTestKeeper(t *testing.T, clock timing.Clock, opts ...Option) *Keeper {
	t.Helper()
	k, err := NewKeeper(clock, []Credential{
		{Phrase: "nescotpitch2026", Role: "staff"},
		{Phrase: "investor-preview", Role: "investor"},
	}, opts...)
	if err != nil {
		t.Fatalf("NewKeeper: %v", err)
	}
	return k
}

func TestSubmit_GrantsOnlyAllowlistedPhrases(t *testing.T) {
	cases := []struct {
		name      string
		candidate string
		granted   bool
		role      string
	}{
		{"exact match", "nescotpitch2026", true, "staff"},
		{"second credential", "investor-preview", true, "investor"},
		{"whitespace padded", "  nescotpitch2026\t", true, "staff"},
		{"wrong phrase", "wrong", false, ""},
		{"empty string", "", false, ""},
		{"case differs", "NescotPitch2026", false, ""},
		{"internal whitespace", "nescot pitch2026", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clock := timing.NewMockClock(time.Unix(0, 0))
			k := newTestKeeper(t, clock)
			grant, err := k.Submit(tc.candidate)
			if tc.granted {
				if err != nil {
					t.Fatalf("expected grant, got %v", err)
				}
				if grant.Role != tc.role {
					t.Errorf("role = %q, want %q", grant.Role, tc.role)
				}
				if k.Stage() != StageUnlocked {
					t.Errorf("stage = %v, want unlocked", k.Stage())
				}
			} else {
				if !errors.Is(err, ErrDenied) {
					t.Fatalf("expected ErrDenied, got %v", err)
				}
				if k.Stage() != StageLocked {
					t.Errorf("stage = %v, want locked after denial", k.Stage())
				}
			}
		})
	}
}

func TestSubmit_DenialIsRetryable(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	k := newTestKeeper(t, clock)

	for i := 0; i < 10; i++ {
		if _, err := k.Submit("wrong"); !errors.Is(err, ErrDenied) {
			t.Fatalf("attempt %d: expected ErrDenied, got %v", i, err)
		}
	}
	if _, err := k.Submit("nescotpitch2026"); err != nil {
		t.Fatalf("grant after denials failed: %v", err)
	}
}

func TestSubmit_SplashAutoDismisses(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	unlocked := 0
	k := newTestKeeper(t, clock,
		WithSplash(3*time.Second),
		WithOnUnlock(func() { unlocked++ }),
	)

	if _, err := k.Submit("nescotpitch2026"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if k.Stage() != StageSplash {
		t.Fatalf("stage = %v, want splash", k.Stage())
	}

	clock.Advance(2999 * time.Millisecond)
	if k.Stage() != StageSplash {
		t.Fatal("splash dismissed early")
	}
	clock.Advance(1 * time.Millisecond)
	if k.Stage() != StageUnlocked {
		t.Fatalf("stage = %v, want unlocked after splash duration", k.Stage())
	}
	if unlocked != 1 {
		t.Errorf("onUnlock fired %d times, want 1", unlocked)
	}
}

func TestSubmit_GrantSideEffectFiresOnce(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	var grants []Grant
	k := newTestKeeper(t, clock, WithOnGrant(func(g Grant) {
		grants = append(grants, g)
	}))

	first, err := k.Submit("investor-preview")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// Unlocked is terminal; resubmitting returns the same grant and does
	// not re-fire the side effect.
	second, err := k.Submit("nescotpitch2026")
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if second.ID != first.ID {
		t.Error("resubmit after unlock produced a new grant")
	}
	if len(grants) != 1 {
		t.Errorf("side effect fired %d times, want 1", len(grants))
	}
	if grants[0].Role != "investor" {
		t.Errorf("side effect role = %q, want investor", grants[0].Role)
	}
	if grants[0].ID == "" {
		t.Error("grant ID is empty")
	}
}

func TestSkipSplash(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	k := newTestKeeper(t, clock, WithSplash(5*time.Second))

	if _, err := k.Submit("nescotpitch2026"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	k.SkipSplash()
	if k.Stage() != StageUnlocked {
		t.Fatalf("stage = %v, want unlocked after skip", k.Stage())
	}

	// The original splash timer must not fire anything later.
	clock.Advance(time.Minute)
	if clock.Pending() != 0 {
		t.Errorf("pending timers after skip: %d", clock.Pending())
	}
}

func TestDispose_CancelsSplashTransition(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	k := newTestKeeper(t, clock, WithSplash(3*time.Second))

	if _, err := k.Submit("nescotpitch2026"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	k.Dispose()

	clock.Advance(time.Hour)
	if k.Stage() != StageSplash {
		t.Errorf("disposed keeper still transitioned: stage = %v", k.Stage())
	}
	if clock.Pending() != 0 {
		t.Errorf("pending timers after dispose: %d", clock.Pending())
	}
}

func TestNewKeeper_RejectsEmptyAllowlist(t *testing.T) {
	clock := timing.NewMockClock(time.Unix(0, 0))
	if _, err := NewKeeper(clock, nil); err == nil {
		t.Error("expected error for empty allowlist")
	}
	if _, err := NewKeeper(clock, []Credential{{Phrase: "  "}}); err == nil {
		t.Error("expected error for blank passphrase")
	}
}
