// Package render turns rich document trees into presentational fragment
// trees. Rendering is a pure function of its inputs, completes without
// suspending, and never lets a recoverable failure escape as a panic:
// unsupported content is reported through the fault callback and replaced
// with a placeholder, and math failures degrade in place.
package render

import (
	"github.com/abhisek/quizter/internal/mathtex"
	"github.com/abhisek/quizter/internal/render/frag"
	"github.com/abhisek/quizter/internal/richdoc"
)

// Variant selects the rendering mode.
type Variant int

const (
	// Block produces structural elements: paragraphs, headings, and
	// lists as block-level containers.
	Block Variant = iota

	// Inline collapses structural nodes into text-flow wrappers, for
	// embedding a document inside running text (answer-option bodies).
	// Leaf rules behave identically in both variants.
	Inline
)

// Config configures a render call. The zero value renders in block mode
// with the process-default math engine and discards faults.
type Config struct {
	Variant Variant
	OnFault FaultFunc
	Engine  mathtex.Engine
}

// Render renders document content to a fragment tree. Plain-string
// content is normalized to a one-paragraph document first.
func Render(content richdoc.Content, cfg Config) *frag.Fragment {
	return RenderNode(content.Node(), cfg)
}

// RenderNode renders a document tree from the given root.
func RenderNode(node *richdoc.Node, cfg Config) *frag.Fragment {
	engine := cfg.Engine
	if engine == nil {
		engine = mathtex.DefaultFunc
	}
	rc := renderCtx{variant: cfg.Variant, onFault: cfg.OnFault, engine: engine}
	if f := rc.node(node); f != nil {
		return f
	}
	return frag.Group()
}
