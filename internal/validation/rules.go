package validation

import (
	"strings"

	"github.com/wiratR/batch-transaction-viewer/internal/xmltree"
)

// Messages reported by the built-in rules.
const (
	MsgEmptyOrZero = "Empty or zero value"
	MsgEMVNotHex   = "EMV value must be HEX"
)

// Rule inspects one node and reports findings. Rules are pure: no I/O, no
// state, nothing beyond the node and its ancestor chain.
type Rule func(n *xmltree.Node, ancestors []*xmltree.Node) []Finding

// DefaultRules returns the built-in rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{EmptyOrZeroLeaf, EMVHexValue}
}

// EmptyOrZeroLeaf flags leaves whose trimmed text is empty or only zeros.
func EmptyOrZeroLeaf(n *xmltree.Node, _ []*xmltree.Node) []Finding {
	if !n.IsLeaf() {
		return nil
	}
	v := n.TrimmedText()
	if v == "" || strings.Trim(v, "0") == "" {
		return []Finding{{Path: n.Path, Message: MsgEmptyOrZero}}
	}
	return nil
}

// EMVHexValue flags the direct "value" child of an emvTag element, or of any
// element under emvTags, when its text is not hexadecimal.
func EMVHexValue(n *xmltree.Node, ancestors []*xmltree.Node) []Finding {
	if !xmltree.InEMVContext(n, ancestors) {
		return nil
	}
	value := n.Child("value")
	if value == nil {
		return nil
	}
	v := value.TrimmedText()
	if v != "" && !xmltree.IsHex(v) {
		return []Finding{{Path: value.Path, Message: MsgEMVNotHex}}
	}
	return nil
}
