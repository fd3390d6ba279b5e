// Package summary shows the end-of-deck results screen.
package summary

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizter/internal/router"
	"github.com/abhisek/quizter/internal/screen"
	"github.com/abhisek/quizter/internal/ui/components"
	"github.com/abhisek/quizter/internal/ui/layout"
	"github.com/abhisek/quizter/internal/ui/theme"
)

// Screen displays the final score for a completed deck.
type Screen struct {
	deckTitle string
	total     int
	correct   int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a summary screen.
func New(deckTitle string, total, correct int) *Screen {
	return &Screen{deckTitle: deckTitle, total: total, correct: correct}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Results"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "backspace":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	pct := 0.0
	if s.total > 0 {
		pct = float64(s.correct) / float64(s.total)
	}

	barWidth := width / 2
	if barWidth < 20 {
		barWidth = 20
	}

	var verdict string
	switch {
	case pct >= 0.9:
		verdict = theme.Correct.Render("Excellent work!")
	case pct >= 0.6:
		verdict = theme.Body.Render("Good effort. Review the ones you missed.")
	default:
		verdict = theme.Hint.Render("Keep practicing. You'll get there.")
	}

	content := theme.Title.Render(s.deckTitle) + "\n\n" +
		theme.Body.Render(fmt.Sprintf("You answered %d of %d correctly.", s.correct, s.total)) + "\n\n" +
		components.NewProgressBar("Score", pct, true, barWidth).View() + "\n\n" +
		verdict

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
