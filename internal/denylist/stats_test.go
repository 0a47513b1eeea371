package denylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		assert.Equal(t, Stats{}, ComputeStats(nil, nil))
	})

	t.Run("counts", func(t *testing.T) {
		entries := []Entry{
			entry("p1", "true", "lost"),
			entry("p2", "TRUE", "lost", "stolen"),
			entry("p3", "false"),
			entry("p4", ""),
		}
		st := ComputeStats(entries, nil)
		assert.Equal(t, Stats{Count: 4, RemovedTrueCount: 2, DistinctReasonCount: 2}, st)
		assert.Equal(t, 2, st.RemovedOtherCount())
	})

	t.Run("ids resolve through the catalog when labels are missing", func(t *testing.T) {
		entries := []Entry{
			{PAN: "p1", ReasonIDs: []string{"10"}},
			{PAN: "p2", ReasonIDs: []string{"99"}},
			{PAN: "p3", ReasonIDs: []string{"20"}, ReasonLabels: []string{"Lost"}},
		}
		st := ComputeStats(entries, ReasonCatalog{"10": "Lost"})
		// Lost and UNKNOWN(99)
		assert.Equal(t, 2, st.DistinctReasonCount)
	})
}

func TestDistinctReasons(t *testing.T) {
	entries := []Entry{
		entry("p1", "", "b", "A"),
		entry("p2", "", "a", "b"),
		entry("p3", ""),
	}
	assert.Equal(t, []string{"A", "a", "b"}, DistinctReasons(entries))
	assert.Equal(t, []string{}, DistinctReasons(nil))
}

func TestCountByReason(t *testing.T) {
	entries := []Entry{
		{PAN: "p1", ReasonIDs: []string{"10", "2"}},
		{PAN: "p2", ReasonIDs: []string{"10", "10"}},
		{PAN: "p3", ReasonIDs: []string{"x"}},
	}

	got := CountByReason(entries, ReasonCatalog{"10": "Lost"})

	assert.Equal(t, []ReasonCount{
		{ID: "2", Label: "UNKNOWN(2)", Count: 1},
		{ID: "10", Label: "Lost", Count: 2},
		{ID: "x", Label: "UNKNOWN(x)", Count: 1},
	}, got)
}

func TestCatalogIDs(t *testing.T) {
	assert.Equal(t, []string{"2", "10", "b"}, CatalogIDs(ReasonCatalog{"10": "x", "b": "y", "2": "z"}))
}

func TestLookup(t *testing.T) {
	entries := []Entry{entry("4111", "true"), entry("4222", "false")}

	got, ok := Lookup(entries, "4222")
	assert.True(t, ok)
	assert.Equal(t, "false", got.Removed)

	_, ok = Lookup(entries, "411")
	assert.False(t, ok)
}
