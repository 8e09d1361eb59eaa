// Package filter implements the list-view narrowing every dashboard table
// shares: an optional categorical filter applied first, then a
// case-insensitive substring search over a small fixed set of fields.
package filter

import (
	"strconv"
	"strings"
)

// CategoryAll is the categorical filter value that selects everything.
const CategoryAll = "all"

// Spec describes how one collection is narrowed.
type Spec[T any] struct {
	// Baseline drops records before any filtering (e.g. the wallet user
	// picker never shows admins). Nil means keep everything.
	Baseline func(T) bool
	// SearchFields returns the values the query is substring-matched
	// against, already stringified. Ids go through FormatID.
	SearchFields func(T) []string
	// Categories maps a filter key to its predicate. Keys outside the map
	// (other than "all" / empty) match nothing.
	Categories map[string]func(T) bool
}

// Apply narrows items. Order is preserved; the input slice is never
// mutated; a nil collection yields an empty result. An empty or
// whitespace-only query applies no search predicate.
func Apply[T any](items []T, s Spec[T], category, query string) []T {
	out := make([]T, 0, len(items))

	var catPred func(T) bool
	if category != "" && category != CategoryAll {
		catPred = s.Categories[category]
		if catPred == nil {
			// Unknown category: fixed enumerated sets only, nothing matches.
			return out
		}
	}

	q := strings.ToLower(strings.TrimSpace(query))

	for _, it := range items {
		if s.Baseline != nil && !s.Baseline(it) {
			continue
		}
		if catPred != nil && !catPred(it) {
			continue
		}
		if q != "" && !matches(s.SearchFields(it), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matches(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// FormatID renders a numeric id for substring matching, so searching "1"
// finds ids 1, 12 and 21.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ServiceKey derives the categorical key from a service name: lowercased,
// runs of whitespace replaced with single hyphens ("Game Account" →
// "game-account").
func ServiceKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
