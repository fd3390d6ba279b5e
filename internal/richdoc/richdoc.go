// Package richdoc defines the structured rich-text document model: a tree
// of typed nodes carrying text, marks, attributes, and embedded math
// notation. Trees are read-only once constructed; the renderer never
// mutates them.
package richdoc

import (
	"encoding/json"
	"fmt"
)

// Node is a single tagged node of a document tree.
//
// A node with Text set is a leaf and carries no Content. A node without
// Text is either a container (Content present, possibly empty) or an
// attrs-only leaf such as an image, a rule, or a math node. Each node is
// owned by exactly one parent.
type Node struct {
	Type    string         `json:"type"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark is an inline decoration attached to a text leaf (bold, link, ...).
// Unknown mark types are inert: the text passes through unchanged.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// StringAttr returns the named attribute if it is a string.
func (n *Node) StringAttr(key string) (string, bool) {
	return stringAttr(n.Attrs, key)
}

// IntAttr returns the named attribute as an int, or def when the
// attribute is absent or not numeric. JSON decoding yields float64 for
// numbers, so both forms are accepted.
func (n *Node) IntAttr(key string, def int) int {
	switch v := n.Attrs[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}

// StringAttr returns the named mark attribute if it is a string.
func (m Mark) StringAttr(key string) (string, bool) {
	return stringAttr(m.Attrs, key)
}

func stringAttr(attrs map[string]any, key string) (string, bool) {
	v, ok := attrs[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// InnerText returns the node's own text, or the concatenation of all
// descendant text when the node has no direct text payload.
func (n *Node) InnerText() string {
	if n == nil {
		return ""
	}
	if n.Text != "" {
		return n.Text
	}
	var out string
	for _, child := range n.Content {
		out += child.InnerText()
	}
	return out
}

// FromString wraps plain text in a single-paragraph document. This is the
// normalization applied to string content before rendering.
func FromString(text string) *Node {
	return &Node{
		Type: "doc",
		Content: []*Node{
			{
				Type:    "paragraph",
				Content: []*Node{{Type: "text", Text: text}},
			},
		},
	}
}

// Content is the union type used for question stems, answer-option
// bodies, and explanations: either a plain string (shorthand for a
// one-paragraph document) or a full document tree.
type Content struct {
	Plain string
	Doc   *Node
}

// IsZero reports whether the content carries neither form.
func (c Content) IsZero() bool {
	return c.Plain == "" && c.Doc == nil
}

// Node normalizes the content to a document tree.
func (c Content) Node() *Node {
	if c.Doc != nil {
		return c.Doc
	}
	return FromString(c.Plain)
}

// UnmarshalJSON accepts either a JSON string or a document object.
func (c *Content) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &c.Plain)
	}
	c.Doc = new(Node)
	if err := json.Unmarshal(data, c.Doc); err != nil {
		return fmt.Errorf("document content: %w", err)
	}
	return nil
}

// MarshalJSON emits the compact form: a bare string when possible.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.Doc != nil {
		return json.Marshal(c.Doc)
	}
	return json.Marshal(c.Plain)
}
