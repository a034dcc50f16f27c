package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBreaker_Transitions(t *testing.T) {
	b := New(Config{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1})

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	ctx := context.Background()
	boom := errors.New("connection refused")
	calls := 0
	fail := func(context.Context) error { calls++; return boom }
	ok := func(context.Context) error { calls++; return nil }

	if err := b.Do(ctx, fail); !errors.Is(err, boom) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Do(ctx, fail)
	if state := b.State(); state != StateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Do(ctx, ok); !errors.Is(err, ErrOpen) {
		t.Fatalf("expected open error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected open breaker to skip the call, got %d calls", calls)
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != StateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}
	if err := b.Do(ctx, ok); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b := New(Config{FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenProbes: 1})

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	ctx := context.Background()
	boom := errors.New("timeout")
	_ = b.Do(ctx, func(context.Context) error { return boom })

	now = now.Add(2 * time.Second)
	_ = b.Do(ctx, func(context.Context) error { return boom })
	if state := b.State(); state != StateOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestBreaker_CanceledContextIsNotAFailure(t *testing.T) {
	b := New(Config{FailureThreshold: 1})

	err := b.Do(context.Background(), func(context.Context) error { return context.Canceled })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after canceled call, got %s", state)
	}
}

func TestNew_NormalizesConfig(t *testing.T) {
	b := New(Config{})
	if b.cfg != DefaultConfig() {
		t.Fatalf("expected default config, got %+v", b.cfg)
	}
}
