// Package denylist normalizes heterogeneous deny-list payloads into one
// canonical entry model and answers filter, sort and aggregate queries over it.
package denylist

// Normalized values of the tri-state boolean fields.
const (
	BoolTrue   = "true"
	BoolFalse  = "false"
	BoolAbsent = ""
)

// Entry is one canonical deny-list record. PAN is never empty; it may be a
// surrogate token rather than a card number.
type Entry struct {
	PAN            string   `json:"pan"`
	Removed        string   `json:"removed"`
	RemovedPresent string   `json:"removedPresent"`
	ReasonIDs      []string `json:"reasonIds"`
	ReasonLabels   []string `json:"reasonLabels"`
}

// IsRemoved reports whether the entry carries removed=true.
func (e Entry) IsRemoved() bool {
	return foldEqual(e.Removed, BoolTrue)
}

// ReasonCatalog maps reason codes to human labels.
type ReasonCatalog map[string]string

// Label returns the catalog label for id, or UNKNOWN(id).
func (c ReasonCatalog) Label(id string) string {
	if label, ok := c[id]; ok {
		return label
	}
	return "UNKNOWN(" + id + ")"
}

// Result is the output of a normalization pass.
type Result struct {
	Entries []Entry       `json:"entries"`
	Reasons ReasonCatalog `json:"reasons"`
	Shape   Shape         `json:"shape"`
}
