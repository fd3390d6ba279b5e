// Package verify defines the answer-verification contract and a local
// simulation of it. Checking an answer is the only suspending operation
// in the question lifecycle: it resolves after a delay, may fail
// transiently, and honors context cancellation. Callers must treat a
// canceled check as "do nothing", never as an error to surface.
package verify

import (
	"context"
	"errors"
	"fmt"
)

// Outcome is the immutable snapshot of one completed check. The correct
// answer id is authoritative only for the lifetime of one question
// instance.
type Outcome struct {
	IsCorrect       bool
	CorrectAnswerID string
	CheckedAnswerID string
}

// Client checks whether a selected answer is correct for a question.
// Implementations resolve asynchronously with respect to the caller's
// event loop and must return ctx.Err() when the context is canceled
// before resolution.
type Client interface {
	Check(ctx context.Context, questionID, answerID string) (*Outcome, error)
}

// TransientError indicates a retryable verification failure, distinct
// from cancellation. Re-invoking the check with the same selection is
// the expected recovery.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("verification failed: %v", e.Err)
	}
	return "verification failed"
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsCancellation reports whether err is a cancellation-flavored failure,
// which callers silently ignore.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
