package render

import (
	"fmt"

	"github.com/abhisek/quizter/internal/mathtex"
	"github.com/abhisek/quizter/internal/render/frag"
	"github.com/abhisek/quizter/internal/richdoc"
)

// renderCtx bundles the per-render context threaded through the
// dispatch: the variant, the fault callback, and the math engine.
type renderCtx struct {
	variant Variant
	onFault FaultFunc
	engine  mathtex.Engine
}

func (rc renderCtx) fault(nodeType, msg string) {
	rc.onFault.report(Fault{Msg: msg, NodeType: nodeType})
}

// node dispatches a single node to its rendering rule. The type set is
// closed: every recognized tag has an explicit case, and the default
// case reports the unknown type and substitutes a neutral placeholder.
// Rules return nil for nodes that render to nothing.
func (rc renderCtx) node(n *richdoc.Node) *frag.Fragment {
	if n == nil {
		return nil
	}

	switch n.Type {
	case "doc":
		return frag.Group(rc.children(n.Content)...)

	case "paragraph":
		if rc.variant == Inline {
			return frag.El("span", rc.children(n.Content)...)
		}
		return frag.El("p", rc.children(n.Content)...)

	case "heading":
		if rc.variant == Inline {
			// Heading level has no meaning in running text.
			return frag.El("span", rc.children(n.Content)...)
		}
		level := n.IntAttr("level", 2)
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}
		return frag.El(fmt.Sprintf("h%d", level), rc.children(n.Content)...)

	case "text":
		return ApplyMarks(n.Marks, frag.Text(n.Text))

	case "hardBreak":
		return frag.El("br")

	case "bulletList":
		if rc.variant == Inline {
			return frag.Group(rc.inlineList(n.Content)...)
		}
		return frag.El("ul", rc.children(n.Content)...)

	case "orderedList":
		if rc.variant == Inline {
			return frag.Group(rc.inlineList(n.Content)...)
		}
		return frag.El("ol", rc.children(n.Content)...)

	case "listItem":
		if rc.variant == Inline {
			return frag.El("span", rc.children(n.Content)...)
		}
		return frag.El("li", rc.children(n.Content)...)

	case "codeBlock":
		text := n.InnerText()
		if rc.variant == Inline {
			return frag.El("code", frag.Text(text))
		}
		return frag.El("pre", frag.Text(text))

	case "blockquote":
		if rc.variant == Inline {
			return frag.El("span", rc.children(n.Content)...)
		}
		return frag.El("blockquote", rc.children(n.Content)...)

	case "horizontalRule":
		if rc.variant == Inline {
			return nil
		}
		return frag.El("hr")

	case "image":
		src, ok := n.StringAttr("src")
		if !ok {
			rc.fault(n.Type, "Image node is missing src")
			return nil
		}
		img := frag.El("img").WithAttr("src", src)
		if alt, ok := n.StringAttr("alt"); ok {
			img.WithAttr("alt", alt)
		}
		return img

	case "math_inline":
		return RenderMath(mathSource(n), false, rc.engine)

	case "math_block":
		// Display math keeps its block container even inside running text.
		return RenderMath(mathSource(n), true, rc.engine)

	default:
		rc.fault(n.Type, fmt.Sprintf("Unsupported node type: %s", n.Type))
		return frag.El("span").
			WithAttr("class", "unsupported-node").
			WithAttr("data-node-type", n.Type)
	}
}

// children renders a child sequence in order, dropping omitted nodes.
func (rc renderCtx) children(nodes []*richdoc.Node) []*frag.Fragment {
	out := make([]*frag.Fragment, 0, len(nodes))
	for _, n := range nodes {
		if f := rc.node(n); f != nil {
			out = append(out, f)
		}
	}
	return out
}

// inlineList renders list items as a bullet-separated run of text: a
// separator between consecutive items, none after the last. A listItem's
// own content is flattened into the run rather than double-wrapped.
func (rc renderCtx) inlineList(items []*richdoc.Node) []*frag.Fragment {
	var out []*frag.Fragment
	for _, item := range items {
		var rendered []*frag.Fragment
		if item != nil && item.Type == "listItem" {
			rendered = rc.children(item.Content)
		} else if f := rc.node(item); f != nil {
			rendered = []*frag.Fragment{f}
		}
		if len(rendered) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, frag.Text(" • "))
		}
		out = append(out, rendered...)
	}
	return out
}

// mathSource resolves the notation string for a math node: node text
// first, then the latex attribute, then the text attribute.
func mathSource(n *richdoc.Node) string {
	if n.Text != "" {
		return n.Text
	}
	if latex, ok := n.StringAttr("latex"); ok {
		return latex
	}
	if text, ok := n.StringAttr("text"); ok {
		return text
	}
	return ""
}
