package denylist

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// RemovedState selects entries by their normalized removed field.
type RemovedState string

const (
	RemovedAll   RemovedState = "all"
	RemovedTrue  RemovedState = "true"
	RemovedFalse RemovedState = "false"
)

// ReasonAll disables the reason filter.
const ReasonAll = "all"

// SortKey names the column an entry list is ordered by.
type SortKey string

const (
	SortByPAN     SortKey = "pan"
	SortByRemoved SortKey = "removed"
	SortByReasons SortKey = "reasons"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Criteria is a conjunction of filters. Zero values match everything.
type Criteria struct {
	Text    string       `json:"text"`
	Removed RemovedState `json:"removed"`
	Reason  string       `json:"reason"`
}

// QueryParams combines filtering and ordering.
type QueryParams struct {
	Criteria
	Key       SortKey   `json:"sort"`
	Direction Direction `json:"dir"`
}

// View is a filtered, sorted projection of an entry set with its stats.
type View struct {
	Entries []Entry `json:"entries"`
	Stats   Stats   `json:"stats"`
	// Reasons lists the labels of the unfiltered set, for building filter choices.
	Reasons []string `json:"reasons"`
}

// ParseRemovedState accepts all/true/false in any case; blank means all.
func ParseRemovedState(s string) (RemovedState, error) {
	switch st := RemovedState(strings.ToLower(strings.TrimSpace(s))); st {
	case "", RemovedAll:
		return RemovedAll, nil
	case RemovedTrue, RemovedFalse:
		return st, nil
	default:
		return "", fmt.Errorf("invalid removed filter %q: want all, true or false", s)
	}
}

// ParseSortKey accepts pan/removed/reasons; blank means pan.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByPAN, nil
	case SortByPAN, SortByRemoved, SortByReasons:
		return k, nil
	default:
		return "", fmt.Errorf("invalid sort key %q: want pan, removed or reasons", s)
	}
}

// ParseDirection accepts asc/desc; blank means asc.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Asc, nil
	case Asc, Desc:
		return d, nil
	default:
		return "", fmt.Errorf("invalid sort direction %q: want asc or desc", s)
	}
}

// Filter returns the entries matching every criterion, in input order.
func Filter(entries []Entry, c Criteria) []Entry {
	text := strings.ToLower(strings.TrimSpace(c.Text))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if text != "" && !strings.Contains(strings.ToLower(e.PAN), text) {
			continue
		}
		if c.Removed != "" && c.Removed != RemovedAll && !foldEqual(e.Removed, string(c.Removed)) {
			continue
		}
		if c.Reason != "" && c.Reason != ReasonAll && !slices.Contains(e.ReasonLabels, c.Reason) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Sort returns a stably sorted copy of entries. Equal keys keep their input
// order in both directions. Unknown keys leave the order unchanged.
func Sort(entries []Entry, key SortKey, dir Direction) []Entry {
	out := slices.Clone(entries)
	if out == nil {
		out = []Entry{}
	}
	compare := comparator(key)
	if compare == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		if dir == Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

func comparator(key SortKey) func(a, b Entry) int {
	switch key {
	case SortByPAN:
		return func(a, b Entry) int {
			return cmp.Compare(strings.ToLower(a.PAN), strings.ToLower(b.PAN))
		}
	case SortByRemoved:
		return func(a, b Entry) int {
			return cmp.Compare(removedRank(a), removedRank(b))
		}
	case SortByReasons:
		return func(a, b Entry) int {
			return cmp.Compare(reasonsKey(a), reasonsKey(b))
		}
	default:
		return nil
	}
}

// removedRank orders removed=true ahead of false and absent.
func removedRank(e Entry) int {
	if e.IsRemoved() {
		return 0
	}
	return 1
}

func reasonsKey(e Entry) string {
	return strings.ToLower(strings.Join(e.ReasonLabels, ","))
}

// Query filters, sorts and summarizes entries in one pass. Nothing is cached;
// every call recomputes the view from entries.
func Query(entries []Entry, catalog ReasonCatalog, q QueryParams) View {
	matched := Filter(entries, q.Criteria)
	key := q.Key
	if key == "" {
		key = SortByPAN
	}
	sorted := Sort(matched, key, q.Direction)
	return View{
		Entries: sorted,
		Stats:   ComputeStats(sorted, catalog),
		Reasons: DistinctReasons(entries),
	}
}

func foldEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}
