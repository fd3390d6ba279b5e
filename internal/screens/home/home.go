// Package home is the landing screen: deck overview and entry menu.
package home

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizter/internal/router"
	"github.com/abhisek/quizter/internal/screen"
	"github.com/abhisek/quizter/internal/screens/question"
	"github.com/abhisek/quizter/internal/ui/components"
	"github.com/abhisek/quizter/internal/ui/layout"
	"github.com/abhisek/quizter/internal/ui/theme"
)

// Screen is the main menu.
type Screen struct {
	opts question.Options
	menu components.Menu
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the home screen. The options are handed unchanged to each
// quiz session started from the menu.
func New(opts question.Options) *Screen {
	s := &Screen{opts: opts}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label: "Start quiz",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: question.New(s.opts)}
				}
			},
		},
		{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	})
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Home"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	menu, cmd := s.menu.Update(msg)
	s.menu = menu
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	deck := s.opts.Deck

	info := theme.Subtitle.Render(fmt.Sprintf("%d questions", len(deck.Questions)))
	if s.opts.Settings.DemoMode {
		info += "\n" + theme.Hint.Render("Demo mode: explanations are locked")
	}

	content := theme.Title.Render(deck.Title) + "\n" +
		info + "\n\n" +
		s.menu.View()

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
