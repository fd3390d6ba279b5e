// Package frag provides the presentational tree produced by the document
// renderer. A Fragment is either an element with a tag, attributes, and
// children, a plain-text leaf, or a raw-markup leaf (pre-rendered math).
//
// Fragments are cheap value trees: renderers build them, the terminal
// painter (internal/ui/paint) or tests consume them. Two renders of the
// same document yield structurally equal fragments.
package frag

import (
	"strings"
)

// Kind discriminates the three fragment forms.
type Kind int

const (
	KindElement Kind = iota
	KindText
	KindRaw
)

// Attr is a single ordered key/value attribute on an element.
type Attr struct {
	Key string
	Val string
}

// Fragment is one node of a presentational tree.
type Fragment struct {
	Kind     Kind
	Tag      string // element tag for KindElement: "p", "strong", "a", ...
	Attrs    []Attr
	Text     string // payload for KindText and KindRaw
	Children []*Fragment
}

// El creates an element fragment. Nil children are skipped, which lets
// rendering rules drop omitted nodes without special cases.
func El(tag string, children ...*Fragment) *Fragment {
	f := &Fragment{Kind: KindElement, Tag: tag}
	f.Append(children...)
	return f
}

// Group creates an anonymous element that renders as its children in
// sequence with no wrapper of its own.
func Group(children ...*Fragment) *Fragment {
	return El("", children...)
}

// Text creates a plain-text leaf.
func Text(s string) *Fragment {
	return &Fragment{Kind: KindText, Text: s}
}

// Raw creates a raw-markup leaf. The painter passes it through verbatim.
func Raw(markup string) *Fragment {
	return &Fragment{Kind: KindRaw, Text: markup}
}

// WithAttr appends an attribute and returns the fragment for chaining.
func (f *Fragment) WithAttr(key, val string) *Fragment {
	f.Attrs = append(f.Attrs, Attr{Key: key, Val: val})
	return f
}

// Attr returns the value of the named attribute.
func (f *Fragment) Attr(key string) (string, bool) {
	for _, a := range f.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Append adds children, skipping nils.
func (f *Fragment) Append(children ...*Fragment) {
	for _, c := range children {
		if c != nil {
			f.Children = append(f.Children, c)
		}
	}
}

// PlainText concatenates all text and raw payloads in document order.
func (f *Fragment) PlainText() string {
	if f == nil {
		return ""
	}
	if f.Kind != KindElement {
		return f.Text
	}
	var b strings.Builder
	for _, c := range f.Children {
		b.WriteString(c.PlainText())
	}
	return b.String()
}

// Find returns the first fragment (depth-first, self included) with the
// given element tag, or nil.
func (f *Fragment) Find(tag string) *Fragment {
	if f == nil {
		return nil
	}
	if f.Kind == KindElement && f.Tag == tag {
		return f
	}
	for _, c := range f.Children {
		if hit := c.Find(tag); hit != nil {
			return hit
		}
	}
	return nil
}

// FindAll returns every fragment (depth-first, self included) with the
// given element tag.
func (f *Fragment) FindAll(tag string) []*Fragment {
	if f == nil {
		return nil
	}
	var out []*Fragment
	if f.Kind == KindElement && f.Tag == tag {
		out = append(out, f)
	}
	for _, c := range f.Children {
		out = append(out, c.FindAll(tag)...)
	}
	return out
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// String renders the fragment as HTML-ish markup. Intended for debugging
// and golden assertions, not for serving.
func (f *Fragment) String() string {
	var b strings.Builder
	f.write(&b)
	return b.String()
}

func (f *Fragment) write(b *strings.Builder) {
	switch f.Kind {
	case KindText:
		b.WriteString(escaper.Replace(f.Text))
	case KindRaw:
		b.WriteString(f.Text)
	case KindElement:
		if f.Tag == "" {
			for _, c := range f.Children {
				c.write(b)
			}
			return
		}
		b.WriteByte('<')
		b.WriteString(f.Tag)
		for _, a := range f.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Key)
			b.WriteString(`="`)
			b.WriteString(escaper.Replace(a.Val))
			b.WriteByte('"')
		}
		if len(f.Children) == 0 && voidTags[f.Tag] {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for _, c := range f.Children {
			c.write(b)
		}
		b.WriteString("</")
		b.WriteString(f.Tag)
		b.WriteByte('>')
	}
}

var voidTags = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
}
