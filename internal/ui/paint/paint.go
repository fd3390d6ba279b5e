// Package paint converts presentational fragment trees into styled
// terminal output. It is the terminal counterpart of an HTML serializer:
// block elements become padded line groups, inline elements become
// styled runs, and math/raw payloads pass through with accent styling.
package paint

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizter/internal/render/frag"
	"github.com/abhisek/quizter/internal/ui/theme"
)

// Paint renders a fragment tree. Width bounds paragraph wrapping and
// rule length; pass 0 for unbounded.
func Paint(f *frag.Fragment, width int) string {
	p := painter{width: width}
	out := p.block(f)
	return strings.Trim(out, "\n")
}

// Inline renders a fragment tree as a single styled run with no block
// structure, for embedding in a larger line (answer options).
func Inline(f *frag.Fragment) string {
	p := painter{}
	return p.inline(f)
}

type painter struct {
	width int
}

// block renders f as block-level content: a sequence of line groups
// separated by blank lines.
func (p painter) block(f *frag.Fragment) string {
	if f == nil {
		return ""
	}
	if f.Kind != frag.KindElement {
		return p.inline(f)
	}

	switch f.Tag {
	case "", "doc":
		var blocks []string
		for _, c := range f.Children {
			if b := p.block(c); b != "" {
				blocks = append(blocks, b)
			}
		}
		return strings.Join(blocks, "\n\n")

	case "p":
		return p.wrap(p.inlineChildren(f))

	case "h1", "h2", "h3", "h4", "h5", "h6":
		return theme.Heading.Render(p.inlineChildren(f))

	case "ul":
		return p.list(f, func(int) string { return "  • " })

	case "ol":
		return p.list(f, func(i int) string { return fmt.Sprintf("  %d. ", i+1) })

	case "pre":
		var b strings.Builder
		for i, line := range strings.Split(f.PlainText(), "\n") {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("    " + theme.CodeInline.Render(line))
		}
		return b.String()

	case "blockquote":
		inner := p.block(frag.Group(f.Children...))
		var b strings.Builder
		for i, line := range strings.Split(inner, "\n") {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(theme.Quote.Render("│ " + line))
		}
		return b.String()

	case "hr":
		n := p.width
		if n <= 0 || n > 60 {
			n = 40
		}
		return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", n))

	case "div":
		if class, _ := f.Attr("class"); strings.Contains(class, "math-display") {
			return theme.Math.Render(p.inlineChildren(f))
		}
		if class, _ := f.Attr("class"); class == "render-fallback" {
			return theme.Fallback.Render("⚠ " + p.inlineChildren(f))
		}
		var blocks []string
		for _, c := range f.Children {
			if b := p.block(c); b != "" {
				blocks = append(blocks, b)
			}
		}
		return strings.Join(blocks, "\n\n")

	default:
		return p.inline(f)
	}
}

// list renders li children with the given bullet prefix; non-li children
// fall back to block rendering.
func (p painter) list(f *frag.Fragment, prefix func(i int) string) string {
	var b strings.Builder
	idx := 0
	for _, c := range f.Children {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if c.Kind == frag.KindElement && c.Tag == "li" {
			b.WriteString(prefix(idx) + p.inlineChildren(c))
			idx++
		} else {
			b.WriteString(p.block(c))
		}
	}
	return b.String()
}

// inline renders f as a styled run.
func (p painter) inline(f *frag.Fragment) string {
	if f == nil {
		return ""
	}
	switch f.Kind {
	case frag.KindText:
		return f.Text
	case frag.KindRaw:
		return f.Text
	}

	switch f.Tag {
	case "strong":
		return lipgloss.NewStyle().Bold(true).Render(p.inlineChildren(f))
	case "em":
		return lipgloss.NewStyle().Italic(true).Render(p.inlineChildren(f))
	case "s":
		return lipgloss.NewStyle().Strikethrough(true).Render(p.inlineChildren(f))
	case "code":
		return theme.CodeInline.Render(p.inlineChildren(f))
	case "a":
		text := theme.LinkText.Render(p.inlineChildren(f))
		if href, ok := f.Attr("href"); ok && href != "#" {
			return text + theme.LinkURL.Render(" ("+href+")")
		}
		return text
	case "br":
		return "\n"
	case "img":
		alt, _ := f.Attr("alt")
		if alt == "" {
			alt = "image"
		}
		return theme.Hint.Render("[" + alt + "]")
	case "span":
		class, _ := f.Attr("class")
		switch {
		case strings.Contains(class, "math-fallback"):
			return p.inlineChildren(f)
		case class == "math-error":
			return theme.MathError.Render(p.inlineChildren(f))
		case strings.Contains(class, "math"):
			return theme.Math.Render(p.inlineChildren(f))
		case class == "unsupported-node":
			t, _ := f.Attr("data-node-type")
			return theme.Fallback.Render("[unsupported: " + t + "]")
		}
		return p.inlineChildren(f)
	default:
		return p.inlineChildren(f)
	}
}

func (p painter) inlineChildren(f *frag.Fragment) string {
	var b strings.Builder
	for _, c := range f.Children {
		b.WriteString(p.inline(c))
	}
	return b.String()
}

func (p painter) wrap(s string) string {
	if p.width > 0 {
		return lipgloss.NewStyle().Width(p.width).Render(s)
	}
	return s
}
