package xmltree

import (
	"strconv"
	"strings"
)

// PathSeparator joins canonical path segments.
const PathSeparator = "."

// siblingSegments returns the path segment of every child, in order. A name
// shared by more than one sibling is suffixed with its 1-based ordinal among
// same-named siblings; a unique name is left bare. A name containing the
// separator is bracketed, so "a.b" becomes "[a.b]" and cannot collide with
// the path of a nested "a" > "b". This is the only place the rule is
// computed.
func siblingSegments(children []*Node) []string {
	counts := make(map[string]int, len(children))
	for _, c := range children {
		counts[c.Name]++
	}
	seen := make(map[string]int, len(counts))
	segs := make([]string, len(children))
	for i, c := range children {
		base := c.Name
		if strings.Contains(base, PathSeparator) {
			base = "[" + base + "]"
		}
		if counts[c.Name] < 2 {
			segs[i] = base
			continue
		}
		seen[c.Name]++
		segs[i] = base + "[" + strconv.Itoa(seen[c.Name]) + "]"
	}
	return segs
}

// segmentOf returns the segment of child among siblings, or "" when child is
// not one of them.
func segmentOf(siblings []*Node, child *Node) string {
	for i, seg := range siblingSegments(siblings) {
		if siblings[i] == child {
			return seg
		}
	}
	return ""
}

// canonicalize recomputes the path of node from its ancestor chain, outermost
// first. ancestors[0] is the document element, which contributes no segment.
// Index assigns paths incrementally; this is the per-node form used to
// cross-check it in tests.
func canonicalize(node *Node, ancestors []*Node) string {
	if len(ancestors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ancestors))
	for i := 1; i < len(ancestors); i++ {
		parts = append(parts, segmentOf(ancestors[i-1].Children, ancestors[i]))
	}
	parts = append(parts, segmentOf(ancestors[len(ancestors)-1].Children, node))
	return strings.Join(parts, PathSeparator)
}

func joinPath(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + PathSeparator + segment
}
