package question

import "github.com/abhisek/quizter/internal/verify"

// checkDoneMsg is sent when a verification call resolves. The sequence
// number and question id stamp the request so stale resolutions are
// discarded at the Update site.
type checkDoneMsg struct {
	seq        int
	questionID string
	outcome    *verify.Outcome
	err        error
}
