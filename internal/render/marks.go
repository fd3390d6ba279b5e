package render

import (
	"github.com/abhisek/quizter/internal/render/frag"
	"github.com/abhisek/quizter/internal/richdoc"
)

// ApplyMarks folds an ordered mark sequence over a rendered fragment,
// each mark wrapping everything accumulated so far. Unknown mark types
// pass the content through unchanged; an empty sequence is the identity.
func ApplyMarks(marks []richdoc.Mark, content *frag.Fragment) *frag.Fragment {
	out := content
	for _, m := range marks {
		switch m.Type {
		case "bold":
			out = frag.El("strong", out)
		case "italic":
			out = frag.El("em", out)
		case "strike":
			out = frag.El("s", out)
		case "code":
			out = frag.El("code", out)
		case "link":
			href, ok := m.StringAttr("href")
			if !ok {
				href = "#"
			}
			a := frag.El("a", out).WithAttr("href", href)
			if target, _ := m.StringAttr("target"); target == "_blank" {
				// New-tab links must not leak the opener.
				a.WithAttr("target", "_blank").WithAttr("rel", "noreferrer noopener")
			}
			out = a
		}
	}
	return out
}
