package xmltree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("builds tree with local names, attributes and leaf text", func(t *testing.T) {
		root, err := Parse(`<?xml version="1.0" encoding="UTF-8"?>
<b:batch xmlns:b="urn:batch" id="7">
  <b:header><count>2</count></b:header>
  <txn seq="1">  4111  </txn>
</b:batch>`)
		require.NoError(t, err)

		assert.Equal(t, "batch", root.Name)
		assert.Equal(t, "urn:batch", root.Space)
		assert.Equal(t, []Attr{{Name: "xmlns:b", Value: "urn:batch"}, {Name: "id", Value: "7"}}, root.Attrs)
		require.Len(t, root.Children, 2)
		assert.Equal(t, "header", root.Children[0].Name)
		assert.Equal(t, "2", root.Children[0].Children[0].Text)
		assert.Equal(t, "  4111  ", root.Children[1].Text)
		assert.Equal(t, "4111", root.Children[1].TrimmedText())
	})

	t.Run("text is dropped on non-leaf elements", func(t *testing.T) {
		root, err := Parse(`<a>mixed<b>x</b>content</a>`)
		require.NoError(t, err)
		assert.Empty(t, root.Text)
		assert.Equal(t, "x", root.Children[0].Text)
	})

	t.Run("cdata counts as text", func(t *testing.T) {
		root, err := Parse(`<a><![CDATA[<raw>]]></a>`)
		require.NoError(t, err)
		assert.Equal(t, "<raw>", root.Text)
	})

	failures := []struct {
		name  string
		input string
	}{
		{name: "mismatched tags", input: `<a><b></a></b>`},
		{name: "unclosed root", input: `<a><b></b>`},
		{name: "empty document", input: ``},
		{name: "whitespace only", input: "  \n "},
		{name: "second root", input: `<a/><b/>`},
		{name: "text after root", input: `<a/>trailing`},
		{name: "invalid utf-8", input: "<a>\xff\xfe</a>"},
		{name: "undeclared entity", input: `<a>&nope;</a>`},
	}
	for _, tc := range failures {
		t.Run("fails on "+tc.name, func(t *testing.T) {
			root, err := Parse(tc.input)
			assert.Nil(t, root, "no partial tree on failure")
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.NotEmpty(t, perr.Message)
		})
	}

	t.Run("syntax error carries line", func(t *testing.T) {
		_, err := Parse("<a>\n<b>\n</a>")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 3, perr.Line)
		assert.Contains(t, perr.Error(), "line 3")
	})
}
