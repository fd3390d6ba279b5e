package question

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizter/internal/quiz"
	"github.com/abhisek/quizter/internal/render"
	"github.com/abhisek/quizter/internal/render/frag"
	"github.com/abhisek/quizter/internal/ui/paint"
	"github.com/abhisek/quizter/internal/ui/theme"
)

const contentPadding = 4

func (s *Screen) View(width, height int) string {
	q := s.Question()
	innerWidth := width - 2*contentPadding
	if innerWidth < 20 {
		innerWidth = 20
	}

	var b strings.Builder

	b.WriteString(s.viewStem(q, innerWidth))
	b.WriteString("\n\n")
	b.WriteString(s.viewOptions(q))
	b.WriteString("\n")
	b.WriteString(s.viewStatus())

	if s.revealed() && q.HasExplanation() {
		b.WriteString("\n\n")
		b.WriteString(s.viewExplanation(q, innerWidth))
	}

	return lipgloss.NewStyle().
		Padding(1, contentPadding).
		Render(b.String())
}

func (s *Screen) viewStem(q *quiz.Question, width int) string {
	out := render.Contained(s.faultObserver("stem"), func() *frag.Fragment {
		return render.Render(q.Stem, render.Config{
			Variant: render.Block,
			OnFault: s.faultObserver("stem"),
		})
	})
	return paint.Paint(out, width)
}

func (s *Screen) viewOptions(q *quiz.Question) string {
	var b strings.Builder
	for i, opt := range q.Options {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.viewOption(i, opt))
	}
	return b.String()
}

// viewOption renders a single answer row. Correctness markers only
// appear once a check has succeeded; before that the row shows cursor
// and selection state only.
func (s *Screen) viewOption(i int, opt quiz.AnswerOption) string {
	out := render.Contained(s.faultObserver("option"), func() *frag.Fragment {
		return render.Render(opt.Content, render.Config{
			Variant: render.Inline,
			OnFault: s.faultObserver("option"),
		})
	})
	label := paint.Inline(out)

	cursor := "  "
	if i == s.cursor {
		cursor = "▸ "
	}

	marker := "( )"
	style := theme.Unselected
	if opt.ID == s.selected {
		marker = "(•)"
		style = theme.Selected
	}

	suffix := ""
	if s.revealed() {
		switch {
		case opt.ID == s.result.CorrectAnswerID:
			style = theme.Correct
			suffix = "  ✓"
		case opt.ID == s.result.CheckedAnswerID && !s.result.IsCorrect:
			style = theme.Incorrect
			suffix = "  ✗"
		}
	}

	return "  " + style.Render(cursor+marker+" "+label+suffix)
}

func (s *Screen) viewStatus() string {
	switch s.status {
	case statusChecking:
		return "  " + s.spin.View() + theme.Hint.Render("Checking…")
	case statusError:
		return theme.Incorrect.Render("  " + s.checkErr)
	case statusSuccess:
		if s.result.IsCorrect {
			return theme.Correct.Render("  Correct!")
		}
		return theme.Incorrect.Render("  Not quite.")
	default:
		if s.selected == "" {
			return theme.Hint.Render("  Select an answer, then press C to check.")
		}
		return theme.Hint.Render("  Press C to check your answer.")
	}
}

// viewExplanation renders the explanation panel. In demo mode the text
// is still rendered but visually obscured, with an upgrade prompt
// underneath.
func (s *Screen) viewExplanation(q *quiz.Question, width int) string {
	out := render.Contained(s.faultObserver("explanation"), func() *frag.Fragment {
		return render.Render(*q.Explanation, render.Config{
			Variant: render.Block,
			OnFault: s.faultObserver("explanation"),
		})
	})

	heading := theme.Heading.Render("Explanation")
	if s.demoGated() {
		body := theme.Obscured.Render(obscure(out.PlainText(), width))
		cta := theme.Hint.Render("Upgrade to see explanations. Press U to upgrade.")
		return heading + "\n" + body + "\n" + cta
	}
	return heading + "\n" + paint.Paint(out, width)
}

// obscure replaces every non-space rune of text with a block glyph,
// wrapped to width, so the shape of the explanation shows through
// without the content.
func obscure(text string, width int) string {
	masked := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' {
			return r
		}
		return '▒'
	}, text)
	if width > 0 {
		return lipgloss.NewStyle().Width(width).Render(masked)
	}
	return masked
}
