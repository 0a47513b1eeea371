package xmltree

import (
	"encoding/hex"
	"strings"
)

const (
	emvTagName  = "emvTag"
	emvTagsName = "emvTags"
)

// EMVInfo is the decoded view of an EMV tag element.
type EMVInfo struct {
	Tag   string `json:"tag,omitempty"`
	Hex   string `json:"hex,omitempty"`
	ASCII string `json:"ascii,omitempty"`
}

// InEMVContext reports whether n is an emvTag element or sits under an
// emvTags element. Names compare on local names only.
func InEMVContext(n *Node, ancestors []*Node) bool {
	if n.Name == emvTagName {
		return true
	}
	for _, a := range ancestors {
		if a.Name == emvTagsName {
			return true
		}
	}
	return false
}

// IsHex reports whether s is non-empty and made only of [0-9a-fA-F].
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// HexToASCII renders hex-encoded bytes as text, printing non-printable bytes
// as '.'. A trailing odd nibble is decoded on its own. Returns "" when s is
// not hex.
func HexToASCII(s string) string {
	if !IsHex(s) {
		return ""
	}
	if len(s)%2 == 1 {
		s = s[:len(s)-1] + "0" + s[len(s)-1:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		if c >= 0x20 && c <= 0x7e {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// DescribeEMV extracts the tag name and hex value of an EMV element. It
// returns nil outside an EMV context or when there is nothing to show.
func DescribeEMV(n *Node, ancestors []*Node) *EMVInfo {
	if !InEMVContext(n, ancestors) {
		return nil
	}
	info := &EMVInfo{}
	if name := n.Child("name"); name != nil {
		info.Tag = name.TrimmedText()
	}
	if value := n.Child("value"); value != nil {
		if v := value.TrimmedText(); IsHex(v) {
			info.Hex = v
			info.ASCII = HexToASCII(v)
		}
	}
	if *info == (EMVInfo{}) {
		return nil
	}
	return info
}
