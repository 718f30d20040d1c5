package editor

import (
	"github.com/pkeller/tocedit/internal/toc"
)

// TagSet is the collection store for the audience tags. Tags are bare
// strings; identity is value plus position, and the folded (trimmed,
// lowercased) value is unique within the set.
type TagSet []string

// Add appends a tag. Empty-after-trim input and case-insensitive duplicates
// are silent no-ops; a duplicate is a non-event, not an error.
func (s *TagSet) Add(value string) bool {
	value = toc.Clean(value)
	if value == "" {
		return false
	}
	folded := toc.Fold(value)
	for _, t := range *s {
		if toc.Fold(t) == folded {
			return false
		}
	}
	*s = append(*s, value)
	return true
}

// Remove deletes the tag at the given position. Out-of-range positions are
// a no-op.
func (s *TagSet) Remove(index int) bool {
	if index < 0 || index >= len(*s) {
		return false
	}
	*s = append((*s)[:index], (*s)[index+1:]...)
	return true
}

// Contains reports whether the set already holds the folded form of value.
func (s TagSet) Contains(value string) bool {
	folded := toc.Fold(value)
	for _, t := range s {
		if toc.Fold(t) == folded {
			return true
		}
	}
	return false
}
