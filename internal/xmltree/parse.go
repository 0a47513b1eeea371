package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError reports malformed document text. No partial tree accompanies it.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("xml parse error at line %d: %s", e.Line, e.Message)
	}
	return "xml parse error: " + e.Message
}

// Parse builds an element tree from UTF-8 XML text.
func Parse(text string) (*Node, error) {
	if !utf8.ValidString(text) {
		return nil, &ParseError{Message: "invalid UTF-8 encoding"}
	}

	decoder := xml.NewDecoder(strings.NewReader(text))
	decoder.Strict = true

	var (
		stack      []*Node
		texts      []*strings.Builder
		root       *Node
		rootClosed bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(err, decoder)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, parseErrorAt(decoder, fmt.Sprintf("unexpected element <%s> after document end", t.Name.Local))
			}
			elem := &Node{
				Name:  t.Name.Local,
				Space: t.Name.Space,
				Attrs: convertAttrs(t.Attr),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)
			texts = append(texts, &strings.Builder{})

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, parseErrorAt(decoder, fmt.Sprintf("unexpected closing tag </%s>", t.Name.Local))
			}
			top := stack[len(stack)-1]
			if top.IsLeaf() {
				top.Text = texts[len(texts)-1].String()
			}
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
			if len(stack) == 0 {
				rootClosed = true
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorableOutsideRoot(string(t)) {
					return nil, parseErrorAt(decoder, "unexpected character data outside root element")
				}
				continue
			}
			texts[len(texts)-1].Write(t)
		}
	}

	if len(stack) > 0 {
		return nil, parseErrorAt(decoder, fmt.Sprintf("unclosed element <%s>", stack[len(stack)-1].Name))
	}
	if root == nil {
		return nil, &ParseError{Message: "document has no root element"}
	}
	return root, nil
}

func convertAttrs(in []xml.Attr) []Attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(in))
	for _, a := range in {
		name := a.Name.Local
		if a.Name.Space == "xmlns" {
			name = "xmlns:" + a.Name.Local
		}
		out = append(out, Attr{Name: name, Value: a.Value})
	}
	return out
}

func isIgnorableOutsideRoot(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func toParseError(err error, decoder *xml.Decoder) *ParseError {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Message: syntaxErr.Msg, Line: syntaxErr.Line}
	}
	line, _ := decoder.InputPos()
	return &ParseError{Message: err.Error(), Line: line}
}

func parseErrorAt(decoder *xml.Decoder, msg string) *ParseError {
	line, _ := decoder.InputPos()
	return &ParseError{Message: msg, Line: line}
}
