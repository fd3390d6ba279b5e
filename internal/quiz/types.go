// Package quiz defines the question model and deck loading. A deck is an
// authored JSON file of multiple-choice questions whose stems, option
// bodies, and explanations are rich documents (or plain strings as
// shorthand for a one-paragraph document).
package quiz

import (
	"fmt"

	"github.com/abhisek/quizter/internal/richdoc"
)

// AnswerOption is one selectable answer. IDs are unique within a
// question.
type AnswerOption struct {
	ID      string          `json:"id"`
	Content richdoc.Content `json:"content"`
}

// Question is a single multiple-choice question.
type Question struct {
	ID      string          `json:"id"`
	Stem    richdoc.Content `json:"stem"`
	Options []AnswerOption  `json:"options"`

	// Explanation is shown after a successful check. Nil means no
	// explanation is available.
	Explanation *richdoc.Content `json:"explanation,omitempty"`
}

// Option returns the option with the given id, or nil.
func (q *Question) Option(id string) *AnswerOption {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// HasExplanation reports whether the question carries explanation
// content.
func (q *Question) HasExplanation() bool {
	return q.Explanation != nil && !q.Explanation.IsZero()
}

// Deck is an ordered set of questions played in sequence.
type Deck struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// validate enforces the structural invariants the schema cannot express:
// id uniqueness across questions and within each question's options.
func (d *Deck) validate() error {
	if len(d.Questions) == 0 {
		return fmt.Errorf("deck %q has no questions", d.Title)
	}
	seen := make(map[string]bool, len(d.Questions))
	for i := range d.Questions {
		q := &d.Questions[i]
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true

		optSeen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if optSeen[opt.ID] {
				return fmt.Errorf("question %q: duplicate option id %q", q.ID, opt.ID)
			}
			optSeen[opt.ID] = true
		}
	}
	return nil
}
