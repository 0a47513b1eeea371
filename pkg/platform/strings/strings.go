// Package strings provides string-list helpers for loosely typed input.
package strings

import (
	"strings"
)

// TrimNonEmpty trims every element and drops the empty ones. Order and
// duplicates are preserved.
//
// Example:
//
//	TrimNonEmpty([]string{" 10 ", "", "20", "10"})
//	// Returns: []string{"10", "20", "10"}
func TrimNonEmpty(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// SplitList splits a comma-separated string into trimmed, non-empty parts.
//
// Example:
//
//	SplitList("lost, stolen,,")
//	// Returns: []string{"lost", "stolen"}
func SplitList(s string) []string {
	return TrimNonEmpty(strings.Split(s, ","))
}

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// FirstNonEmpty returns the first value that is not blank after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
