package xmltree

import "strings"

// IndexEntry pairs a canonical path with its node.
type IndexEntry struct {
	Path  string
	Node  *Node
	Depth int
}

// IndexedTree is a path-addressed copy of a parsed document. Entries are in
// pre-order document order.
type IndexedTree struct {
	Root    *Node
	entries []IndexEntry
	byPath  map[string]int
	parent  map[*Node]*Node
}

type indexFrame struct {
	src    *Node
	parent *Node
	path   string
	depth  int
}

// Index copies root into a new tree whose nodes carry canonical paths. The
// input tree is left untouched, so indexing it again yields identical paths.
// Traversal uses an explicit stack and is safe for arbitrarily deep input.
func Index(root *Node) *IndexedTree {
	t := &IndexedTree{
		byPath: make(map[string]int),
		parent: make(map[*Node]*Node),
	}
	if root == nil {
		return t
	}

	stack := []indexFrame{{src: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &Node{
			Name:  f.src.Name,
			Space: f.src.Space,
			Attrs: append([]Attr(nil), f.src.Attrs...),
			Text:  f.src.Text,
			Path:  f.path,
		}
		if f.parent == nil {
			t.Root = n
		} else {
			f.parent.Children = append(f.parent.Children, n)
			t.parent[n] = f.parent
		}
		t.byPath[n.Path] = len(t.entries)
		t.entries = append(t.entries, IndexEntry{Path: n.Path, Node: n, Depth: f.depth})

		segs := siblingSegments(f.src.Children)
		for i := len(f.src.Children) - 1; i >= 0; i-- {
			stack = append(stack, indexFrame{
				src:    f.src.Children[i],
				parent: n,
				path:   joinPath(n.Path, segs[i]),
				depth:  f.depth + 1,
			})
		}
	}
	return t
}

// Load parses and indexes document text.
func Load(text string) (*IndexedTree, error) {
	root, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Index(root), nil
}

// Len returns the number of indexed nodes.
func (t *IndexedTree) Len() int {
	return len(t.entries)
}

// Entries returns the flat index in document order.
func (t *IndexedTree) Entries() []IndexEntry {
	return append([]IndexEntry(nil), t.entries...)
}

// Lookup finds a node by canonical path.
func (t *IndexedTree) Lookup(path string) (*Node, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return nil, false
	}
	return t.entries[i].Node, true
}

// Parent returns the owning parent of n, or nil for the document element.
func (t *IndexedTree) Parent(n *Node) *Node {
	return t.parent[n]
}

// Ancestors returns n's ancestors, outermost first.
func (t *IndexedTree) Ancestors(n *Node) []*Node {
	var chain []*Node
	for p := t.parent[n]; p != nil; p = t.parent[p] {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Walk visits every node in document order with its ancestor chain. The
// ancestors slice is only valid for the duration of the call.
func (t *IndexedTree) Walk(fn func(n *Node, ancestors []*Node)) {
	chain := make([]*Node, 0, 16)
	for _, e := range t.entries {
		chain = chain[:e.Depth]
		fn(e.Node, chain)
		chain = append(chain, e.Node)
	}
}

// Search returns the entries whose label contains query, case-insensitively,
// in document order. An empty query matches everything.
func (t *IndexedTree) Search(query string) []IndexEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return t.Entries()
	}
	var out []IndexEntry
	for _, e := range t.entries {
		if strings.Contains(strings.ToLower(e.Node.Label()), q) {
			out = append(out, e)
		}
	}
	return out
}
