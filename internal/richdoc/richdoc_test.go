package richdoc

import (
	"encoding/json"
	"testing"
)

func TestContentUnmarshalString(t *testing.T) {
	var c Content
	if err := json.Unmarshal([]byte(`"hello world"`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Plain != "hello world" {
		t.Errorf("Plain = %q, want %q", c.Plain, "hello world")
	}
	if c.Doc != nil {
		t.Error("Doc should be nil for string content")
	}
}

func TestContentUnmarshalDoc(t *testing.T) {
	data := []byte(`{
		"type": "doc",
		"content": [
			{"type": "paragraph", "content": [{"type": "text", "text": "hi"}]}
		]
	}`)
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Doc == nil {
		t.Fatal("Doc should be set for object content")
	}
	if c.Doc.Type != "doc" {
		t.Errorf("Type = %q, want doc", c.Doc.Type)
	}
	if got := c.Doc.InnerText(); got != "hi" {
		t.Errorf("InnerText = %q, want hi", got)
	}
}

func TestContentUnmarshalInvalid(t *testing.T) {
	var c Content
	if err := json.Unmarshal([]byte(`{`), &c); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestContentNodeNormalizesString(t *testing.T) {
	c := Content{Plain: "plain text"}
	n := c.Node()
	if n.Type != "doc" {
		t.Fatalf("Type = %q, want doc", n.Type)
	}
	if len(n.Content) != 1 || n.Content[0].Type != "paragraph" {
		t.Fatal("want a single paragraph child")
	}
	if got := n.InnerText(); got != "plain text" {
		t.Errorf("InnerText = %q, want %q", got, "plain text")
	}
}

func TestContentMarshalRoundTrip(t *testing.T) {
	c := Content{Plain: "just text"}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"just text"` {
		t.Errorf("marshal = %s, want bare string", data)
	}
}

func TestContentIsZero(t *testing.T) {
	if !(Content{}).IsZero() {
		t.Error("empty content should be zero")
	}
	if (Content{Plain: "x"}).IsZero() {
		t.Error("plain content should not be zero")
	}
	if (Content{Doc: &Node{Type: "doc"}}).IsZero() {
		t.Error("doc content should not be zero")
	}
}

func TestIntAttr(t *testing.T) {
	n := &Node{Type: "heading", Attrs: map[string]any{
		"level":  float64(3), // JSON numbers decode as float64
		"direct": 4,
		"bad":    "nope",
	}}
	if got := n.IntAttr("level", 2); got != 3 {
		t.Errorf("level = %d, want 3", got)
	}
	if got := n.IntAttr("direct", 2); got != 4 {
		t.Errorf("direct = %d, want 4", got)
	}
	if got := n.IntAttr("bad", 2); got != 2 {
		t.Errorf("bad = %d, want default 2", got)
	}
	if got := n.IntAttr("missing", 2); got != 2 {
		t.Errorf("missing = %d, want default 2", got)
	}
}

func TestStringAttr(t *testing.T) {
	n := &Node{Type: "image", Attrs: map[string]any{"src": "a.png", "n": 1.0}}
	if v, ok := n.StringAttr("src"); !ok || v != "a.png" {
		t.Errorf("src = %q, %v", v, ok)
	}
	if _, ok := n.StringAttr("n"); ok {
		t.Error("non-string attr should not be returned")
	}
	if _, ok := n.StringAttr("missing"); ok {
		t.Error("missing attr should not be returned")
	}
}

func TestInnerText(t *testing.T) {
	n := &Node{Type: "doc", Content: []*Node{
		{Type: "paragraph", Content: []*Node{
			{Type: "text", Text: "a"},
			{Type: "text", Text: "b"},
		}},
		{Type: "paragraph", Content: []*Node{{Type: "text", Text: "c"}}},
	}}
	if got := n.InnerText(); got != "abc" {
		t.Errorf("InnerText = %q, want abc", got)
	}

	var nilNode *Node
	if got := nilNode.InnerText(); got != "" {
		t.Errorf("nil InnerText = %q, want empty", got)
	}
}
