package domain

import "strings"

// NormalizeKey reduces a label to its duplicate-check form: surrounding
// whitespace trimmed, inner runs of whitespace collapsed to single spaces,
// and everything lowercased. "Alfa", "alfa " and "ALFA" all normalize to
// the same key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// TrimOptional trims a free-text field and returns nil when nothing is left,
// so optional columns store NULL instead of empty strings.
func TrimOptional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
