package render

import (
	"fmt"

	"github.com/abhisek/quizter/internal/render/frag"
)

// Contained runs a render function inside a scoped fault barrier. A panic
// from the subtree is recovered, reported once to onFault, and replaced
// by a fixed fallback panel; content rendered outside the barrier is
// unaffected. Math fallbacks never reach here (they are absorbed at the
// point of failure), so anything caught by a boundary is a genuine
// defect worth reporting.
func Contained(onFault FaultFunc, renderFn func() *frag.Fragment) (out *frag.Fragment) {
	defer func() {
		if r := recover(); r != nil {
			onFault.report(Fault{Msg: fmt.Sprintf("render failed: %v", r)})
			out = FallbackPanel()
		}
	}()
	return renderFn()
}

// FallbackPanel is the fixed presentation substituted for a subtree whose
// rendering failed.
func FallbackPanel() *frag.Fragment {
	return frag.El("div", frag.Text("This content could not be displayed.")).
		WithAttr("class", "render-fallback")
}
