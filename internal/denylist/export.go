package denylist

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// CSVHeader is the column order of WriteCSV.
var CSVHeader = []string{"pan", "removed", "removed_present", "reason_ids", "reason_labels"}

// exportRow is the flat CSV record. Ids and labels are comma-joined, so a
// value that itself contains a comma does not survive a CSV round trip.
type exportRow struct {
	PAN            string `json:"pan"`
	Removed        string `json:"removed"`
	RemovedPresent string `json:"removed_present"`
	ReasonIDs      string `json:"reason_ids"`
	ReasonLabels   string `json:"reason_labels"`
}

func rowOf(e Entry) exportRow {
	return exportRow{
		PAN:            e.PAN,
		Removed:        e.Removed,
		RemovedPresent: e.RemovedPresent,
		ReasonIDs:      strings.Join(e.ReasonIDs, ","),
		ReasonLabels:   strings.Join(e.ReasonLabels, ","),
	}
}

// WriteCSV writes entries with a header row.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		r := rowOf(e)
		if err := cw.Write([]string{r.PAN, r.Removed, r.RemovedPresent, r.ReasonIDs, r.ReasonLabels}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// jsonRow is a list-shape record. Ids and labels stay arrays, so a JSON
// export normalizes back to the same entries.
type jsonRow struct {
	PAN            string   `json:"pan"`
	Removed        string   `json:"removed"`
	RemovedPresent string   `json:"removed_present"`
	ReasonIDs      []string `json:"reason_ids"`
	ReasonLabels   []string `json:"reason_labels"`
}

func jsonRowOf(e Entry) jsonRow {
	return jsonRow{
		PAN:            e.PAN,
		Removed:        e.Removed,
		RemovedPresent: e.RemovedPresent,
		ReasonIDs:      append([]string{}, e.ReasonIDs...),
		ReasonLabels:   append([]string{}, e.ReasonLabels...),
	}
}

type exportDocument struct {
	Reasons ReasonCatalog `json:"reasons"`
	Entries []jsonRow     `json:"entries"`
}

// WriteJSON writes the catalog and entries as an indented list-shape payload.
func WriteJSON(w io.Writer, catalog ReasonCatalog, entries []Entry) error {
	doc := exportDocument{Reasons: catalog, Entries: make([]jsonRow, 0, len(entries))}
	if doc.Reasons == nil {
		doc.Reasons = ReasonCatalog{}
	}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, jsonRowOf(e))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write json export: %w", err)
	}
	return nil
}
