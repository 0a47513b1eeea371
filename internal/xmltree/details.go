package xmltree

import "strconv"

// ChildPreview summarizes one direct child: its trimmed text, or its child
// count when it is not a leaf.
type ChildPreview struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Summary string `json:"summary"`
}

// Details is the inspection view of a single node.
type Details struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Attrs    []Attr         `json:"attributes,omitempty"`
	Children []ChildPreview `json:"children,omitempty"`
	Value    string         `json:"value,omitempty"`
	EMV      *EMVInfo       `json:"emv,omitempty"`
}

// Describe builds the detail view of n.
func Describe(n *Node, ancestors []*Node) Details {
	d := Details{
		Name:  n.Name,
		Path:  n.Path,
		Attrs: n.Attrs,
		EMV:   DescribeEMV(n, ancestors),
	}
	for _, c := range n.Children {
		summary := c.TrimmedText()
		if !c.IsLeaf() {
			summary = "(" + strconv.Itoa(len(c.Children)) + " children)"
		}
		d.Children = append(d.Children, ChildPreview{Name: c.Name, Path: c.Path, Summary: summary})
	}
	if n.IsLeaf() {
		d.Value = n.TrimmedText()
	}
	return d
}

// Describe looks up path and builds its detail view.
func (t *IndexedTree) Describe(path string) (Details, bool) {
	n, ok := t.Lookup(path)
	if !ok {
		return Details{}, false
	}
	return Describe(n, t.Ancestors(n)), true
}
