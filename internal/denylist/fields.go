package denylist

import (
	"encoding/json"
	"strconv"
	"strings"

	pstrings "github.com/wiratR/batch-transaction-viewer/pkg/platform/strings"
)

// Record field names emitted by the external reader.
const (
	fieldPAN            = "pan"
	fieldSurrogatePAN   = "surrogate_pan"
	fieldRemoved        = "removed"
	fieldRemovedPresent = "removed_present"
	fieldReasonIDs      = "reason_ids"
	fieldReasonLabels   = "reason_labels"
)

// scalarString renders a JSON scalar. Objects, arrays and null report false.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return numberString(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// numberString prints a JSON number in shortest decimal form, so 10, 10.0
// and 1e1 all become "10".
func numberString(n json.Number) string {
	if !strings.ContainsAny(n.String(), ".eE") {
		return n.String()
	}
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

// resolvePAN returns the first non-empty of pan, surrogate_pan and key.
func resolvePAN(rec map[string]any, key string) string {
	pan, _ := scalarString(rec[fieldPAN])
	surrogate, _ := scalarString(rec[fieldSurrogatePAN])
	return strings.TrimSpace(pstrings.FirstNonEmpty(pan, surrogate, key))
}

// boolField normalizes a tri-state boolean: native bools become
// "true"/"false", strings pass through verbatim, anything else is absent.
func boolField(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	default:
		return BoolAbsent
	}
}

// listField normalizes an array or comma-separated string into trimmed,
// non-empty strings. The result is never nil.
func listField(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := scalarString(item)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return pstrings.SplitList(t)
	default:
		return []string{}
	}
}
