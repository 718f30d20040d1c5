package toc

import (
	"strings"
)

// Clean trims leading and trailing whitespace. A record text that is empty
// after Clean is never committed.
func Clean(s string) string {
	return strings.TrimSpace(s)
}

// Fold normalizes a tag for duplicate detection: trim, then lowercase.
// Internal whitespace is significant, so "Youth  Club" and "Youth Club"
// are distinct tags. The folded form is compared; the cleaned (unfolded)
// form is stored.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
