package denylist

import (
	"cmp"
	"slices"
	"strconv"

	pstrings "github.com/wiratR/batch-transaction-viewer/pkg/platform/strings"
)

// Stats summarizes an entry set.
type Stats struct {
	Count               int `json:"count"`
	RemovedTrueCount    int `json:"removedTrueCount"`
	DistinctReasonCount int `json:"distinctReasonCount"`
}

// RemovedOtherCount is the number of entries not marked removed=true.
func (s Stats) RemovedOtherCount() int {
	return s.Count - s.RemovedTrueCount
}

// ComputeStats counts entries, removed=true entries and distinct reasons.
// An entry's reasons are its labels, or its ids resolved through catalog
// when it carries no labels.
func ComputeStats(entries []Entry, catalog ReasonCatalog) Stats {
	st := Stats{Count: len(entries)}
	reasons := make(map[string]struct{})
	for _, e := range entries {
		if e.IsRemoved() {
			st.RemovedTrueCount++
		}
		for _, r := range resolvedReasons(e, catalog) {
			reasons[r] = struct{}{}
		}
	}
	st.DistinctReasonCount = len(reasons)
	return st
}

func resolvedReasons(e Entry, catalog ReasonCatalog) []string {
	if len(e.ReasonLabels) > 0 {
		return e.ReasonLabels
	}
	out := make([]string, 0, len(e.ReasonIDs))
	for _, id := range e.ReasonIDs {
		out = append(out, catalog.Label(id))
	}
	return out
}

// DistinctReasons returns every reason label in entries, deduplicated and
// sorted. Comparison is case-sensitive.
func DistinctReasons(entries []Entry) []string {
	var all []string
	for _, e := range entries {
		all = append(all, e.ReasonLabels...)
	}
	out := pstrings.DedupeAndTrim(all)
	if out == nil {
		out = []string{}
	}
	slices.Sort(out)
	return out
}

// ReasonCount is the number of entries citing one reason id.
type ReasonCount struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountByReason counts entries per reason id, ordered by id. Ids missing from
// catalog are labeled UNKNOWN(id).
func CountByReason(entries []Entry, catalog ReasonCatalog) []ReasonCount {
	counts := make(map[string]int)
	for _, e := range entries {
		for _, id := range pstrings.DedupeAndTrim(e.ReasonIDs) {
			counts[id]++
		}
	}
	out := make([]ReasonCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, ReasonCount{ID: id, Label: catalog.Label(id), Count: n})
	}
	slices.SortFunc(out, func(a, b ReasonCount) int { return compareIDs(a.ID, b.ID) })
	return out
}

// CatalogIDs returns the catalog's ids ordered like CountByReason.
func CatalogIDs(catalog ReasonCatalog) []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, compareIDs)
	return ids
}

// compareIDs orders numeric ids numerically ahead of non-numeric ones, which
// compare lexically.
func compareIDs(a, b string) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		return cmp.Compare(ai, bi)
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// Lookup returns the first entry whose PAN equals pan exactly.
func Lookup(entries []Entry, pan string) (Entry, bool) {
	for _, e := range entries {
		if e.PAN == pan {
			return e, true
		}
	}
	return Entry{}, false
}
