// Package validation runs structural rules over an indexed document and
// collects findings by canonical path.
package validation

import (
	"slices"

	"github.com/wiratR/batch-transaction-viewer/internal/xmltree"
)

// Finding is one rule violation at a canonical path.
type Finding struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Map groups finding messages by canonical path.
type Map map[string][]string

// Paths returns the flagged paths in sorted order.
func (m Map) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Count returns the total number of messages.
func (m Map) Count() int {
	n := 0
	for _, msgs := range m {
		n += len(msgs)
	}
	return n
}

// Engine evaluates a fixed rule list.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine over rules, or over DefaultRules when none are
// given.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Validate walks the tree and returns a fresh map. A path collects each
// message at most once. The document element has no addressable path, so
// findings on it are not reported.
func (e *Engine) Validate(tree *xmltree.IndexedTree) Map {
	out := Map{}
	if tree == nil {
		return out
	}
	tree.Walk(func(n *xmltree.Node, ancestors []*xmltree.Node) {
		for _, rule := range e.rules {
			for _, f := range rule(n, ancestors) {
				if f.Path == "" || slices.Contains(out[f.Path], f.Message) {
					continue
				}
				out[f.Path] = append(out[f.Path], f.Message)
			}
		}
	})
	return out
}

var defaultEngine = NewEngine()

// Validate runs the default rule set.
func Validate(tree *xmltree.IndexedTree) Map {
	return defaultEngine.Validate(tree)
}
