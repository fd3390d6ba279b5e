package question

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizter/internal/quiz"
	"github.com/abhisek/quizter/internal/richdoc"
	"github.com/abhisek/quizter/internal/telemetry"
	"github.com/abhisek/quizter/internal/verify"
)

// stubClient resolves checks synchronously with a fixed correct answer.
type stubClient struct {
	correct string
	err     error
	calls   int
	lastCtx context.Context
}

func (c *stubClient) Check(ctx context.Context, questionID, answerID string) (*verify.Outcome, error) {
	c.calls++
	c.lastCtx = ctx
	if c.err != nil {
		return nil, c.err
	}
	return &verify.Outcome{
		IsCorrect:       answerID == c.correct,
		CorrectAnswerID: c.correct,
		CheckedAnswerID: answerID,
	}, nil
}

type fakeEvents struct {
	checks []telemetry.CheckEventData
	faults []telemetry.FaultEventData
}

func (f *fakeEvents) AppendCheckEvent(_ context.Context, d telemetry.CheckEventData) error {
	f.checks = append(f.checks, d)
	return nil
}

func (f *fakeEvents) AppendFaultEvent(_ context.Context, d telemetry.FaultEventData) error {
	f.faults = append(f.faults, d)
	return nil
}

func testDeck() *quiz.Deck {
	return &quiz.Deck{
		Title: "Test Deck",
		Questions: []quiz.Question{
			{
				ID:   "q1",
				Stem: richdoc.Content{Plain: "first?"},
				Options: []quiz.AnswerOption{
					{ID: "a", Content: richdoc.Content{Plain: "A"}},
					{ID: "b", Content: richdoc.Content{Plain: "B"}},
				},
				Explanation: &richdoc.Content{Plain: "because"},
			},
			{
				ID:   "q2",
				Stem: richdoc.Content{Plain: "second?"},
				Options: []quiz.AnswerOption{
					{ID: "x", Content: richdoc.Content{Plain: "X"}},
					{ID: "y", Content: richdoc.Content{Plain: "Y"}},
				},
			},
		},
	}
}

func newTestScreen(client verify.Client) *Screen {
	return New(Options{
		Deck:     testDeck(),
		Verifier: client,
	})
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enterKey() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

// selectAndCheck selects the option under the cursor and starts a check,
// returning the pending command.
func selectAndCheck(t *testing.T, s *Screen) tea.Cmd {
	t.Helper()
	s.Update(enterKey())
	_, cmd := s.Update(keyPress('c'))
	if cmd == nil {
		t.Fatal("check should produce a command")
	}
	return cmd
}

// resolve runs the pending check command and returns its resolution,
// unwrapping the spinner tick batched alongside it.
func resolve(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return msg
	}
	for _, c := range batch {
		if m := c(); m != nil {
			if _, ok := m.(checkDoneMsg); ok {
				return m
			}
		}
	}
	t.Fatal("batch did not contain a check resolution")
	return nil
}

func TestCheckSuccessReveals(t *testing.T) {
	client := &stubClient{correct: "a"}
	s := newTestScreen(client)

	if s.revealed() {
		t.Fatal("nothing revealed before any check")
	}

	cmd := selectAndCheck(t, s)
	if s.status != statusChecking {
		t.Fatalf("status = %v, want checking", s.status)
	}
	if s.revealed() {
		t.Error("nothing revealed while checking")
	}

	s.Update(resolve(t, cmd))
	if !s.revealed() {
		t.Fatal("success with result should reveal")
	}
	if !s.result.IsCorrect || s.result.CorrectAnswerID != "a" {
		t.Errorf("result = %+v", s.result)
	}

	_, total, correct := s.Progress()
	if total != 2 || correct != 1 {
		t.Errorf("progress = %d/%d", correct, total)
	}
}

func TestCheckRequiresSelection(t *testing.T) {
	s := newTestScreen(&stubClient{correct: "a"})
	if _, cmd := s.Update(keyPress('c')); cmd != nil {
		t.Error("check without a selection should be a no-op")
	}
}

func TestSelectionIgnoredWhileChecking(t *testing.T) {
	s := newTestScreen(&stubClient{correct: "a"})
	selectAndCheck(t, s)

	s.Update(keyPress('j')) // move cursor to option b
	s.Update(enterKey())
	if s.selected != "a" {
		t.Errorf("selected = %q, selection must be frozen while checking", s.selected)
	}
}

func TestCheckIgnoredWhileChecking(t *testing.T) {
	client := &stubClient{correct: "a"}
	s := newTestScreen(client)
	selectAndCheck(t, s)

	if _, cmd := s.Update(keyPress('c')); cmd != nil {
		t.Error("a second check must not start while one is in flight")
	}
}

func TestReselectClearsStaleOutcome(t *testing.T) {
	s := newTestScreen(&stubClient{correct: "a"})
	cmd := selectAndCheck(t, s)
	s.Update(resolve(t, cmd))
	if !s.revealed() {
		t.Fatal("setup: expected revealed")
	}

	s.Update(keyPress('j'))
	s.Update(enterKey())
	if s.revealed() {
		t.Error("reselection must clear the stale outcome")
	}
	if s.status != statusIdle || s.result != nil {
		t.Errorf("status = %v, result = %v", s.status, s.result)
	}
	if s.selected != "b" {
		t.Errorf("selected = %q, want b", s.selected)
	}
}

func TestStaleSeqDiscarded(t *testing.T) {
	s := newTestScreen(&stubClient{correct: "a"})
	selectAndCheck(t, s)
	staleSeq := s.seq

	// Simulate an error landing, then a retry superseding it.
	s.Update(checkDoneMsg{seq: staleSeq, questionID: "q1", err: errors.New("down")})
	if s.status != statusError {
		t.Fatalf("status = %v, want error", s.status)
	}
	_, cmd := s.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("retry should start a new check")
	}

	// The first request's resolution arrives late and must be dropped.
	s.Update(checkDoneMsg{
		seq:        staleSeq,
		questionID: "q1",
		outcome:    &verify.Outcome{IsCorrect: true, CorrectAnswerID: "a", CheckedAnswerID: "a"},
	})
	if s.status != statusChecking {
		t.Errorf("status = %v, stale resolution must not land", s.status)
	}
	if s.revealed() {
		t.Error("stale success must not reveal")
	}
}

func TestQuestionChangeDiscardsInFlight(t *testing.T) {
	client := &stubClient{correct: "a"}
	s := newTestScreen(client)
	cmd := selectAndCheck(t, s)
	msg := resolve(t, cmd) // request issued; hold the resolution back

	s.Update(keyPress('n')) // advance to q2
	if s.Question().ID != "q2" {
		t.Fatalf("question = %q, want q2", s.Question().ID)
	}
	if client.lastCtx.Err() == nil {
		t.Error("question change must cancel the in-flight check")
	}
	if s.status != statusIdle || s.selected != "" {
		t.Errorf("session state not reset: status=%v selected=%q", s.status, s.selected)
	}

	// The old question's resolution is stale on both counts.
	s.Update(msg)
	if s.status != statusIdle || s.revealed() {
		t.Error("resolution for a previous question must be dropped")
	}
}

func TestCancellationSilentlyIgnored(t *testing.T) {
	s := newTestScreen(&stubClient{correct: "a"})
	selectAndCheck(t, s)

	s.Update(checkDoneMsg{seq: s.seq, questionID: "q1", err: context.Canceled})
	if s.status != statusChecking {
		t.Errorf("status = %v, cancellation must not change state", s.status)
	}
	if s.checkErr != "" {
		t.Errorf("checkErr = %q, cancellation must not surface", s.checkErr)
	}
}

func TestErrorNormalization(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"transient", &verify.TransientError{Err: errors.New("503")}, "Couldn't check your answer. Please try again."},
		{"opaque", errors.New("weird internal detail"), genericCheckError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestScreen(&stubClient{correct: "a"})
			selectAndCheck(t, s)
			s.Update(checkDoneMsg{seq: s.seq, questionID: "q1", err: tc.err})
			if s.status != statusError {
				t.Fatalf("status = %v, want error", s.status)
			}
			if s.checkErr != tc.want {
				t.Errorf("checkErr = %q, want %q", s.checkErr, tc.want)
			}
			if s.revealed() {
				t.Error("errors must not reveal correctness")
			}
		})
	}
}

func TestTeardownCancels(t *testing.T) {
	client := &stubClient{correct: "a"}
	s := newTestScreen(client)
	cmd := selectAndCheck(t, s)
	resolve(t, cmd) // request issued

	s.Teardown()
	if client.lastCtx.Err() == nil {
		t.Error("teardown must cancel the in-flight check")
	}
}

func TestTelemetryEvents(t *testing.T) {
	events := &fakeEvents{}
	s := New(Options{
		Deck:     testDeck(),
		Verifier: &stubClient{correct: "a"},
		Events:   events,
	})

	cmd := selectAndCheck(t, s)
	s.Update(resolve(t, cmd))
	if len(events.checks) != 1 {
		t.Fatalf("check events = %d, want 1", len(events.checks))
	}
	if events.checks[0].QuestionID != "q1" || !events.checks[0].Correct {
		t.Errorf("check event = %+v", events.checks[0])
	}

	s.Update(enterKey()) // reselect, back to idle
	cmd = selectAndCheck(t, s)
	s.Update(checkDoneMsg{seq: s.seq, questionID: "q1", err: errors.New("down")})
	if len(events.faults) != 1 {
		t.Fatalf("fault events = %d, want 1", len(events.faults))
	}
	if events.faults[0].Source != "verify" {
		t.Errorf("fault source = %q", events.faults[0].Source)
	}
}

func TestUpgradeCallback(t *testing.T) {
	upgraded := false
	s := New(Options{
		Deck:     testDeck(),
		Verifier: &stubClient{correct: "a"},
		Settings: quiz.Settings{DemoMode: true, Entitlement: quiz.EntitlementFree},
		OnUpgrade: func() {
			upgraded = true
		},
	})

	// q1 has an explanation, so demo gating is active.
	s.Update(keyPress('u'))
	if !upgraded {
		t.Error("upgrade key should invoke the callback in demo mode")
	}
}

func TestUpgradeInactiveOutsideDemo(t *testing.T) {
	upgraded := false
	s := New(Options{
		Deck:      testDeck(),
		Verifier:  &stubClient{correct: "a"},
		OnUpgrade: func() { upgraded = true },
	})
	s.Update(keyPress('u'))
	if upgraded {
		t.Error("upgrade callback must not fire outside demo mode")
	}
}

func TestViewRevealMarkers(t *testing.T) {
	s := newTestScreen(&stubClient{correct: "a"})
	// Select the wrong answer.
	s.Update(keyPress('j'))
	cmd := selectAndCheck(t, s)
	s.Update(resolve(t, cmd))

	if !s.revealed() {
		t.Fatal("setup: expected revealed")
	}
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("view should render")
	}
	// Both the correct marker and the checked-wrong marker appear.
	if !containsAll(view, "✓", "✗") {
		t.Errorf("revealed view missing markers:\n%s", view)
	}
}

func TestViewObscuresExplanationInDemo(t *testing.T) {
	s := New(Options{
		Deck:     testDeck(),
		Verifier: &stubClient{correct: "a"},
		Settings: quiz.Settings{DemoMode: true, Entitlement: quiz.EntitlementFree},
	})
	cmd := selectAndCheck(t, s)
	s.Update(resolve(t, cmd))

	view := s.View(80, 24)
	if !containsAll(view, "▒", "Upgrade") {
		t.Errorf("demo view should obscure the explanation:\n%s", view)
	}
	if strings.Contains(view, "because") {
		t.Error("demo view must not show explanation text")
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
