package verify

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// SimConfig tunes the simulated verifier.
type SimConfig struct {
	// Delay is the simulated latency for a non-memoized check.
	Delay time.Duration

	// FailureRate in [0,1] injects transient failures with that
	// probability, even for pairs that would otherwise succeed.
	FailureRate float64

	// DisableCache makes checks through this client skip the memoization
	// cache in both directions. Clients sharing a Store still see each
	// other's fixed answers.
	DisableCache bool

	// Rand overrides the failure-injection source. Tests pin it.
	Rand func() float64
}

// DefaultSimConfig mimics a reasonably snappy remote verifier.
func DefaultSimConfig() SimConfig {
	return SimConfig{Delay: 600 * time.Millisecond}
}

// Sim is the reference Client: it resolves after a configurable delay,
// injects transient failures, memoizes successful outcomes per
// (question, answer) pair, and fixes each question's correct answer to
// whichever answer id is checked first.
type Sim struct {
	store *Store
	cfg   SimConfig
}

var _ Client = (*Sim)(nil)

// NewSim creates a simulated verifier over the given store.
func NewSim(store *Store, cfg SimConfig) *Sim {
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}
	return &Sim{store: store, cfg: cfg}
}

// Check implements Client.
func (s *Sim) Check(ctx context.Context, questionID, answerID string) (*Outcome, error) {
	if questionID == "" || answerID == "" {
		return nil, fmt.Errorf("verify: missing question or answer id")
	}

	// Memoized pairs resolve instantly, skipping the simulated remote step.
	if !s.cfg.DisableCache {
		if out, ok := s.store.lookup(questionID, answerID); ok {
			return &out, nil
		}
	}

	if s.cfg.Delay > 0 {
		timer := time.NewTimer(s.cfg.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.cfg.FailureRate > 0 && s.cfg.Rand() < s.cfg.FailureRate {
		return nil, &TransientError{Err: errors.New("verification service unavailable")}
	}

	correct := s.store.fixAnswer(questionID, answerID)
	out := Outcome{
		IsCorrect:       answerID == correct,
		CorrectAnswerID: correct,
		CheckedAnswerID: answerID,
	}
	if !s.cfg.DisableCache {
		s.store.memoize(questionID, answerID, out)
	}
	return &out, nil
}
