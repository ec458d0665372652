package service

import (
	"sort"
	"strings"

	"github.com/riskintel/riskintel-backend/internal/records/domain"
)

// ListParams carries the filter and sort options a record list accepts.
// Query matching is case and whitespace insensitive; reference filters
// restrict by company or sector id. Sort names are per resource, with
// recency as the shared default.
type ListParams struct {
	Query     string
	Sort      string
	CompanyID string
	SectorID  string
}

// Shared sort mode names. Each service documents which ones it accepts;
// unknown values fall back to recency, never an error.
const (
	SortRecent = "recent"
	SortName   = "name"
	SortCity   = "city"
	SortRole   = "role"
	SortLevel  = "level"
	SortScore  = "score"
)

// matchesAny reports whether any field contains the normalized query as a
// substring. The query must already be normalized by the caller.
func matchesAny(query string, fields ...string) bool {
	for _, field := range fields {
		if containsNormalized(field, query) {
			return true
		}
	}
	return false
}

func containsNormalized(field, query string) bool {
	normalized := domain.NormalizeKey(field)
	if normalized == "" {
		return false
	}
	return strings.Contains(normalized, query)
}

// filterRecords keeps the items the predicate accepts, preserving order
func filterRecords[T any](items []*T, keep func(*T) bool) []*T {
	filtered := make([]*T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// sortByText sorts alphabetically by the key function, with the name
// function breaking ties. Stable so equal rows keep their recency order.
func sortByText[T any](items []*T, key, name func(*T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := domain.NormalizeKey(key(items[i])), domain.NormalizeKey(key(items[j]))
		if a != b {
			return a < b
		}
		return domain.NormalizeKey(name(items[i])) < domain.NormalizeKey(name(items[j]))
	})
}

// sortByValueDesc sorts highest value first, with the name function
// breaking ties alphabetically.
func sortByValueDesc[T any](items []*T, value func(*T) float64, name func(*T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := value(items[i]), value(items[j])
		if a != b {
			return a > b
		}
		return domain.NormalizeKey(name(items[i])) < domain.NormalizeKey(name(items[j]))
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
