// Package question implements the interactive lifecycle of one
// multiple-choice question at a time: answer selection, asynchronous
// correctness check, and explanation reveal. The screen owns the
// per-question session state and sequences concurrent check requests so
// only the latest is ever honored.
package question

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/quizter/internal/quiz"
	"github.com/abhisek/quizter/internal/render"
	"github.com/abhisek/quizter/internal/router"
	"github.com/abhisek/quizter/internal/screen"
	"github.com/abhisek/quizter/internal/screens/summary"
	"github.com/abhisek/quizter/internal/telemetry"
	"github.com/abhisek/quizter/internal/ui/layout"
	"github.com/abhisek/quizter/internal/ui/theme"
	"github.com/abhisek/quizter/internal/verify"
)

// checkStatus is the check lifecycle state: idle → checking →
// {success | error}, with success/error collapsing back to idle on
// reselection.
type checkStatus int

const (
	statusIdle checkStatus = iota
	statusChecking
	statusSuccess
	statusError
)

// genericCheckError is shown when a failure carries no usable message.
const genericCheckError = "Something went wrong. Please try again."

// Options wires the screen's collaborators.
type Options struct {
	Deck     *quiz.Deck
	Verifier verify.Client
	Events   telemetry.EventRepo // nil discards telemetry
	Settings quiz.Settings

	// OnUpgrade runs when the user activates the demo-mode upgrade
	// call-to-action. Opaque to this package.
	OnUpgrade func()

	// OnFault receives every non-swallowed rendering fault and every
	// terminal verification error, in addition to the telemetry log.
	OnFault func(render.Fault)
}

// Screen implements screen.Screen for playing a deck.
type Screen struct {
	opts      Options
	sessionID string

	index int // current question within the deck

	// Per-question session state. Reset whenever the question changes.
	cursor   int    // keyboard-highlighted option
	selected string // selected answer id, "" when none
	status   checkStatus
	checkErr string
	result   *verify.Outcome

	// seq stamps check requests; a resolution whose stamp is not the
	// current value is stale and ignored. Bumped on question change and
	// teardown so stragglers can never land.
	seq    int
	cancel context.CancelFunc

	spin spinner.Model

	results map[string]bool // questionID -> was answered correctly
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Teardowner = (*Screen)(nil)

// New creates a question screen for the given deck.
func New(opts Options) *Screen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Hint
	return &Screen{
		opts:      opts,
		sessionID: uuid.New().String(),
		spin:      sp,
		results:   make(map[string]bool),
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.opts.Deck.Title
}

// Question returns the active question.
func (s *Screen) Question() *quiz.Question {
	return &s.opts.Deck.Questions[s.index]
}

// Progress reports (current index, total, correct so far) for the header.
func (s *Screen) Progress() (int, int, int) {
	correct := 0
	for _, ok := range s.results {
		if ok {
			correct++
		}
	}
	return s.index + 1, len(s.opts.Deck.Questions), correct
}

// revealed reports whether the answer list shows correctness markers and
// the explanation becomes visible. Active exactly when a check succeeded
// and its result is present, never during checking or after an error.
func (s *Screen) revealed() bool {
	return s.status == statusSuccess && s.result != nil
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.status == statusChecking:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.status == statusError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "↑↓ Enter", Description: "Reselect"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.revealed():
		hints := []layout.KeyHint{
			{Key: "N", Description: "Next question"},
		}
		if s.demoGated() {
			hints = append(hints, layout.KeyHint{Key: "U", Description: "Upgrade"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "C", Description: "Check"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkDoneMsg:
		return s.handleCheckDone(msg)
	case spinner.TickMsg:
		if s.status != statusChecking {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := s.Question()

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(q.Options)-1 {
			s.cursor++
		}
	case "enter", "space":
		s.selectAnswer(q.Options[s.cursor].ID)
	case "c", "r":
		return s, s.startCheck()
	case "n":
		return s.advance(1)
	case "p":
		return s.advance(-1)
	case "u":
		if s.demoGated() && s.opts.OnUpgrade != nil {
			s.opts.OnUpgrade()
		}
	}
	return s, nil
}

// selectAnswer applies the select-answer transition: ignored while a
// check is in flight; otherwise records the selection and, when a prior
// check had finished, collapses the stale outcome back to idle.
func (s *Screen) selectAnswer(answerID string) {
	if s.status == statusChecking {
		return
	}
	s.selected = answerID
	if s.status == statusSuccess || s.status == statusError {
		s.status = statusIdle
		s.result = nil
		s.checkErr = ""
	}
}

// startCheck applies the invoke-check transition. No-op without a
// selection or while already checking. A new check supersedes any prior
// in-flight one: the old context is canceled and the sequence counter
// advances so the old resolution is guaranteed stale.
func (s *Screen) startCheck() tea.Cmd {
	if s.selected == "" || s.status == statusChecking {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.seq++
	seq := s.seq
	questionID := s.Question().ID
	answerID := s.selected

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.status = statusChecking
	s.checkErr = ""
	s.result = nil

	verifier := s.opts.Verifier
	check := func() tea.Msg {
		outcome, err := verifier.Check(ctx, questionID, answerID)
		return checkDoneMsg{seq: seq, questionID: questionID, outcome: outcome, err: err}
	}
	return tea.Batch(check, s.spin.Tick)
}

// handleCheckDone applies a verification resolution, subject to the
// staleness guards: cancellations are always silent, and a resolution is
// dropped when a later request superseded it or the active question has
// changed since issuance.
func (s *Screen) handleCheckDone(msg checkDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil && verify.IsCancellation(msg.err) {
		return s, nil
	}
	if msg.seq != s.seq || msg.questionID != s.Question().ID {
		return s, nil
	}

	if msg.err != nil {
		s.status = statusError
		s.checkErr = checkErrorMessage(msg.err)
		s.reportFault(render.Fault{Msg: s.checkErr}, "verify")
		return s, nil
	}

	s.status = statusSuccess
	s.result = msg.outcome
	s.results[msg.questionID] = msg.outcome.IsCorrect

	if s.opts.Events != nil {
		_ = s.opts.Events.AppendCheckEvent(context.Background(), telemetry.CheckEventData{
			SessionID:  s.sessionID,
			QuestionID: msg.questionID,
			AnswerID:   msg.outcome.CheckedAnswerID,
			Correct:    msg.outcome.IsCorrect,
		})
	}
	return s, nil
}

// advance moves to another question. Changing the active question
// cancels any in-flight check, resets the session state, and bumps the
// sequence counter so a straggling resolution is stale on arrival.
// Advancing past the last question ends the deck.
func (s *Screen) advance(delta int) (screen.Screen, tea.Cmd) {
	next := s.index + delta
	if next < 0 {
		return s, nil
	}
	if next >= len(s.opts.Deck.Questions) {
		return s.finish()
	}
	s.resetSession()
	s.index = next
	return s, nil
}

func (s *Screen) resetSession() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.cursor = 0
	s.selected = ""
	s.status = statusIdle
	s.checkErr = ""
	s.result = nil
}

func (s *Screen) finish() (screen.Screen, tea.Cmd) {
	total := len(s.opts.Deck.Questions)
	correct := 0
	for _, ok := range s.results {
		if ok {
			correct++
		}
	}
	title := s.opts.Deck.Title
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: summary.New(title, total, correct),
		}
	}
}

// Teardown cancels any in-flight check. No state mutation is observable
// afterwards: the canceled resolution is silent and the bumped sequence
// keeps anything else stale.
func (s *Screen) Teardown() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
}

func (s *Screen) demoGated() bool {
	return s.opts.Settings.DemoMode && s.Question().HasExplanation()
}

// faultObserver builds the fault callback for one render source. Faults
// go to the embedding observer and to the telemetry log.
func (s *Screen) faultObserver(source string) render.FaultFunc {
	return func(f render.Fault) {
		s.reportFault(f, source)
	}
}

func (s *Screen) reportFault(f render.Fault, source string) {
	if s.opts.OnFault != nil {
		s.opts.OnFault(f)
	}
	if s.opts.Events != nil {
		_ = s.opts.Events.AppendFaultEvent(context.Background(), telemetry.FaultEventData{
			SessionID: s.sessionID,
			Source:    source,
			Message:   f.Msg,
			NodeType:  f.NodeType,
		})
	}
}

// checkErrorMessage normalizes a non-cancellation check failure to a
// user-facing message.
func checkErrorMessage(err error) string {
	var transient *verify.TransientError
	if errors.As(err, &transient) {
		return "Couldn't check your answer. Please try again."
	}
	return genericCheckError
}
