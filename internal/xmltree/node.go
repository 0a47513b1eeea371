// Package xmltree parses XML documents into an immutable element tree and
// indexes every element under a canonical dotted path.
package xmltree

import "strings"

// Attr is one attribute in document order.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is one element of a parsed document. Name is the local tag name with
// any namespace prefix stripped; Text is only set on leaves.
type Node struct {
	Name     string
	Space    string
	Attrs    []Attr
	Children []*Node
	Text     string
	Path     string
}

// IsLeaf reports whether the node has no element children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// TrimmedText returns the leaf text without surrounding whitespace.
func (n *Node) TrimmedText() string {
	return strings.TrimSpace(n.Text)
}

// Child returns the first direct child with the given local name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Label is the path, or the tag name for the document element whose path is
// empty.
func (n *Node) Label() string {
	if n.Path != "" {
		return n.Path
	}
	return n.Name
}
