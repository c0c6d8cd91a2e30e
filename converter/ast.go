package converter

import (
	"fmt"
	"strings"
)

// TextTag is the tag carried by text-run leaves.
const TextTag = "#text"

// Node represents any node in the DocBook tree: an element (para, section,
// emphasis, ...) or a text run.
type Node struct {
	Tag      string            `json:"tag"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// Text builds a text-run leaf.
func Text(s string) Node {
	return Node{Tag: TextTag, Text: s}
}

// Element builds an element node.
func Element(tag string, attrs map[string]string, children ...Node) Node {
	return Node{Tag: tag, Attrs: attrs, Children: children}
}

// IsText reports whether n is a text-run leaf.
func (n Node) IsText() bool {
	return n.Tag == TextTag
}

// Attr returns the attribute value and whether it was present.
func (n Node) Attr(name string) (string, bool) {
	if n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// GetStringAttr returns the first non-blank attribute among names, or fallback.
func (n Node) GetStringAttr(fallback string, names ...string) string {
	for _, name := range names {
		if v, ok := n.Attr(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return fallback
}

// RequireAttr returns the first non-blank attribute among names or a
// MissingAttributeError naming the first candidate.
func (n Node) RequireAttr(names ...string) (string, error) {
	if v := n.GetStringAttr("", names...); v != "" {
		return v, nil
	}
	attr := ""
	if len(names) > 0 {
		attr = names[0]
	}
	return "", &MissingAttributeError{Element: n.Tag, Attribute: attr}
}

// ID returns the element identifier (xml:id or id).
func (n Node) ID() string {
	return n.GetStringAttr("", "xml:id", "id")
}

// Child returns the first child element with one of the given tags.
func (n Node) Child(tags ...string) (Node, bool) {
	for _, child := range n.Children {
		for _, tag := range tags {
			if child.Tag == tag {
				return child, true
			}
		}
	}
	return Node{}, false
}

// ChildrenByTag returns all child elements with one of the given tags.
func (n Node) ChildrenByTag(tags ...string) []Node {
	var out []Node
	for _, child := range n.Children {
		for _, tag := range tags {
			if child.Tag == tag {
				out = append(out, child)
				break
			}
		}
	}
	return out
}

// Find returns the first descendant (depth-first, excluding n) with the tag.
func (n Node) Find(tag string) (Node, bool) {
	for _, child := range n.Children {
		if child.Tag == tag {
			return child, true
		}
		if found, ok := child.Find(tag); ok {
			return found, true
		}
	}
	return Node{}, false
}

// TextContent concatenates the text of every descendant text run.
func (n Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n Node) writeText(sb *strings.Builder) {
	for _, child := range n.Children {
		if child.IsText() {
			sb.WriteString(child.Text)
			continue
		}
		child.writeText(sb)
	}
}

// Validate checks the text-leaf/element invariant for the whole tree.
func (n Node) Validate() error {
	return n.validate("/" + n.Tag)
}

func (n Node) validate(path string) error {
	switch {
	case n.Tag == "":
		return &MalformedTreeError{Path: path, Reason: "element without tag"}
	case n.IsText():
		if len(n.Children) > 0 {
			return &MalformedTreeError{Path: path, Reason: "text run with children"}
		}
		if len(n.Attrs) > 0 {
			return &MalformedTreeError{Path: path, Reason: "text run with attributes"}
		}
		return nil
	case n.Text != "":
		return &MalformedTreeError{Path: path, Reason: "element with text payload"}
	}

	for i, child := range n.Children {
		if err := child.validate(fmt.Sprintf("%s/%s[%d]", path, child.Tag, i)); err != nil {
			return err
		}
	}
	return nil
}
