package render

import (
	"fmt"

	"github.com/abhisek/quizter/internal/mathtex"
	"github.com/abhisek/quizter/internal/render/frag"
)

// RenderMath converts a notation string to a fragment via the given
// engine. Success wraps the engine's markup in an inline or display
// container. Every failure mode (nil engine, engine error, engine
// panic) degrades to a fallback fragment showing the raw notation plus
// a visible failure marker. Math failures are terminal and self-healing:
// they are swallowed here and never reach the fault callback or a
// containment boundary.
func RenderMath(latex string, display bool, engine mathtex.Engine) *frag.Fragment {
	markup, err := renderGuarded(latex, display, engine)
	if err != nil {
		return mathFallback(latex)
	}
	if display {
		return frag.El("div", frag.Raw(markup)).WithAttr("class", "math math-display")
	}
	return frag.El("span", frag.Raw(markup)).WithAttr("class", "math math-inline")
}

// renderGuarded invokes the engine with a panic guard, since the engine
// is caller-supplied and outside this package's control.
func renderGuarded(latex string, display bool, engine mathtex.Engine) (markup string, err error) {
	if engine == nil {
		return "", mathtex.ErrNoEngine
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("math engine panic: %v", r)
		}
	}()
	return engine.RenderToString(latex, mathtex.Options{Display: display})
}

func mathFallback(latex string) *frag.Fragment {
	return frag.El("span",
		frag.Text(latex),
		frag.El("span", frag.Text(" (failed to render)")).WithAttr("class", "math-error"),
	).WithAttr("class", "math math-fallback")
}
