package verify

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestSim(cfg SimConfig) *Sim {
	return NewSim(NewStore(), cfg)
}

func TestCheckFirstAnswerWins(t *testing.T) {
	sim := newTestSim(SimConfig{})
	ctx := context.Background()

	first, err := sim.Check(ctx, "q1", "a")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !first.IsCorrect || first.CorrectAnswerID != "a" || first.CheckedAnswerID != "a" {
		t.Errorf("first = %+v", first)
	}

	second, err := sim.Check(ctx, "q1", "b")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if second.IsCorrect {
		t.Error("a later answer must not displace the fixed correct answer")
	}
	if second.CorrectAnswerID != "a" || second.CheckedAnswerID != "b" {
		t.Errorf("second = %+v", second)
	}
}

func TestCheckIndependentQuestions(t *testing.T) {
	sim := newTestSim(SimConfig{})
	ctx := context.Background()

	if out, _ := sim.Check(ctx, "q1", "a"); !out.IsCorrect {
		t.Error("q1 first check should be correct")
	}
	if out, _ := sim.Check(ctx, "q2", "b"); !out.IsCorrect {
		t.Error("q2 fixes its answer independently")
	}
}

func TestCheckMemoization(t *testing.T) {
	// FailureRate 1 makes every non-memoized check fail, so a success on
	// a repeated pair can only come from the cache.
	sim := newTestSim(SimConfig{Rand: func() float64 { return 0.5 }})
	ctx := context.Background()

	want, err := sim.Check(ctx, "q1", "a")
	if err != nil {
		t.Fatalf("prime: %v", err)
	}

	sim.cfg.FailureRate = 1
	got, err := sim.Check(ctx, "q1", "a")
	if err != nil {
		t.Fatalf("memoized check should skip failure injection: %v", err)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	// An uncached pair still hits the failure path.
	if _, err := sim.Check(ctx, "q1", "b"); err == nil {
		t.Error("uncached pair should fail at rate 1")
	}
}

func TestCheckDisableCache(t *testing.T) {
	store := NewStore()
	cached := NewSim(store, SimConfig{})
	uncached := NewSim(store, SimConfig{DisableCache: true, Rand: func() float64 { return 0.5 }})
	ctx := context.Background()

	if _, err := cached.Check(ctx, "q1", "a"); err != nil {
		t.Fatalf("prime: %v", err)
	}

	// The uncached client skips the memo in both directions but still
	// sees the shared fixed answer.
	uncached.cfg.FailureRate = 1
	if _, err := uncached.Check(ctx, "q1", "a"); err == nil {
		t.Error("cache-bypassing client should not read the memo")
	}

	uncached.cfg.FailureRate = 0
	out, err := uncached.Check(ctx, "q1", "b")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if out.IsCorrect || out.CorrectAnswerID != "a" {
		t.Errorf("shared fixed answer not visible: %+v", out)
	}
}

func TestCheckTransientFailure(t *testing.T) {
	sim := newTestSim(SimConfig{FailureRate: 0.5, Rand: func() float64 { return 0.1 }})
	_, err := sim.Check(context.Background(), "q1", "a")
	if err == nil {
		t.Fatal("want injected failure")
	}
	var transient *TransientError
	if !errors.As(err, &transient) {
		t.Errorf("err = %v, want *TransientError", err)
	}
	if IsCancellation(err) {
		t.Error("transient failure must not look like cancellation")
	}
}

func TestCheckCancellation(t *testing.T) {
	sim := newTestSim(SimConfig{Delay: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := sim.Check(ctx, "q1", "a")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
		if !IsCancellation(err) {
			t.Error("IsCancellation should report true")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("check did not honor cancellation")
	}
}

func TestCheckPreCanceledContext(t *testing.T) {
	sim := newTestSim(SimConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sim.Check(ctx, "q1", "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestCheckMissingIDs(t *testing.T) {
	sim := newTestSim(SimConfig{})
	if _, err := sim.Check(context.Background(), "", "a"); err == nil {
		t.Error("empty question id should fail")
	}
	if _, err := sim.Check(context.Background(), "q1", ""); err == nil {
		t.Error("empty answer id should fail")
	}
}

func TestIsCancellation(t *testing.T) {
	if IsCancellation(nil) {
		t.Error("nil is not a cancellation")
	}
	if IsCancellation(errors.New("other")) {
		t.Error("arbitrary errors are not cancellations")
	}
	if !IsCancellation(context.DeadlineExceeded) {
		t.Error("deadline exceeded is a cancellation")
	}
	wrapped := &TransientError{Err: context.Canceled}
	if !IsCancellation(wrapped) {
		t.Error("wrapped cancellation should unwrap")
	}
}
