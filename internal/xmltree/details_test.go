package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	tree, err := Load(`<batch>
  <txn id="9" kind="sale">
    <pan>4111</pan>
    <emvTags>
      <emvTag><name>9F02</name><value>414243</value></emvTag>
      <emvTag><name>5F2A</name><value>xyz</value></emvTag>
    </emvTags>
  </txn>
</batch>`)
	require.NoError(t, err)

	t.Run("non-leaf lists attributes and child previews", func(t *testing.T) {
		d, ok := tree.Describe("txn")
		require.True(t, ok)
		assert.Equal(t, []Attr{{Name: "id", Value: "9"}, {Name: "kind", Value: "sale"}}, d.Attrs)
		assert.Equal(t, []ChildPreview{
			{Name: "pan", Path: "txn.pan", Summary: "4111"},
			{Name: "emvTags", Path: "txn.emvTags", Summary: "(2 children)"},
		}, d.Children)
		assert.Empty(t, d.Value)
		assert.Nil(t, d.EMV)
	})

	t.Run("leaf shows trimmed value", func(t *testing.T) {
		d, ok := tree.Describe("txn.pan")
		require.True(t, ok)
		assert.Equal(t, "4111", d.Value)
	})

	t.Run("emv tag decodes hex and ascii", func(t *testing.T) {
		d, ok := tree.Describe("txn.emvTags.emvTag[1]")
		require.True(t, ok)
		require.NotNil(t, d.EMV)
		assert.Equal(t, EMVInfo{Tag: "9F02", Hex: "414243", ASCII: "ABC"}, *d.EMV)
	})

	t.Run("emv tag with non-hex value keeps only the tag name", func(t *testing.T) {
		d, ok := tree.Describe("txn.emvTags.emvTag[2]")
		require.True(t, ok)
		require.NotNil(t, d.EMV)
		assert.Equal(t, EMVInfo{Tag: "5F2A"}, *d.EMV)
	})

	t.Run("unknown path", func(t *testing.T) {
		_, ok := tree.Describe("nope")
		assert.False(t, ok)
	})
}

func TestHexHelpers(t *testing.T) {
	assert.True(t, IsHex("4A1F"))
	assert.True(t, IsHex("deadBEEF"))
	assert.False(t, IsHex("4A1G"))
	assert.False(t, IsHex(""))
	assert.False(t, IsHex("4A 1F"))

	assert.Equal(t, "ABC", HexToASCII("414243"))
	assert.Equal(t, "A..", HexToASCII("41000A"))
	assert.Equal(t, "A.", HexToASCII("41A"), "odd trailing nibble decodes alone")
	assert.Empty(t, HexToASCII("zz"))
}
