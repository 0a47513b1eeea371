package denylist

import (
	"slices"
)

// Normalize reconciles a decoded payload into canonical entries and a reason
// catalog. It never fails: unrecognized payloads yield zero entries and an
// empty catalog. The result shares no memory with payload.
func Normalize(payload any) Result {
	return normalize(jsonValue(payload))
}

// NormalizeJSON decodes and normalizes the external reader's JSON output.
func NormalizeJSON(data []byte) (Result, error) {
	payload, err := Decode(data)
	if err != nil {
		return Result{}, err
	}
	return normalize(payload), nil
}

func normalize(payload any) Result {
	c := classify(payload)
	res := Result{
		Entries: []Entry{},
		Reasons: reasonCatalog(c.reasons),
		Shape:   c.shape,
	}

	switch c.shape {
	case ShapeList:
		for _, item := range c.list {
			rec, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if e, ok := entryFrom(rec, ""); ok {
				res.Entries = append(res.Entries, e)
			}
		}
	case ShapeMap:
		// Object key order is not preserved by decoding, so map-shaped
		// payloads are emitted in PAN key order.
		keys := make([]string, 0, len(c.byPAN))
		for k := range c.byPAN {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			rec, ok := c.byPAN[k].(map[string]any)
			if !ok {
				rec = map[string]any{}
			}
			if e, ok := entryFrom(rec, k); ok {
				res.Entries = append(res.Entries, e)
			}
		}
	}
	return res
}

func entryFrom(rec map[string]any, key string) (Entry, bool) {
	pan := resolvePAN(rec, key)
	if pan == "" {
		return Entry{}, false
	}
	return Entry{
		PAN:            pan,
		Removed:        boolField(rec[fieldRemoved]),
		RemovedPresent: boolField(rec[fieldRemovedPresent]),
		ReasonIDs:      listField(rec[fieldReasonIDs]),
		ReasonLabels:   listField(rec[fieldReasonLabels]),
	}, true
}

func reasonCatalog(raw map[string]any) ReasonCatalog {
	catalog := make(ReasonCatalog, len(raw))
	for k, v := range raw {
		if s, ok := scalarString(v); ok {
			catalog[k] = s
		}
	}
	return catalog
}
