package denylist

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	entries := []Entry{
		{PAN: "p1", Removed: "true", ReasonIDs: []string{"10", "20"}, ReasonLabels: []string{"lost"}},
		{PAN: "p2", Removed: "false", RemovedPresent: "true", ReasonIDs: []string{}, ReasonLabels: []string{}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	want := "pan,removed,removed_present,reason_ids,reason_labels\n" +
		"p1,true,,\"10,20\",lost\n" +
		"p2,false,true,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSONNormalizesBack(t *testing.T) {
	catalog := ReasonCatalog{"10": "Lost", "20": "Stolen"}
	entries := []Entry{
		{PAN: "p1", Removed: "true", RemovedPresent: "true", ReasonIDs: []string{"10", "20"}, ReasonLabels: []string{"Lost", "Stolen"}},
		{PAN: "p2", Removed: "", RemovedPresent: "", ReasonIDs: []string{}, ReasonLabels: []string{}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, catalog, entries))

	res, err := NormalizeJSON(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ShapeList, res.Shape)
	assert.Equal(t, catalog, res.Reasons)
	assert.Equal(t, entries, res.Entries)
}

func TestWriteJSONKeepsCommasInLabels(t *testing.T) {
	entries := []Entry{
		{PAN: "p1", Removed: "true", ReasonIDs: []string{"10"}, ReasonLabels: []string{"lost, card", "stolen"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, ReasonCatalog{"10": "lost, card"}, entries))

	res, err := NormalizeJSON(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, entries, res.Entries)
	assert.Equal(t, "lost, card", res.Reasons["10"])
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil, nil))
	assert.JSONEq(t, `{"reasons":{},"entries":[]}`, buf.String())
}
