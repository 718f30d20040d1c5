package editor

import (
	"github.com/pkeller/tocedit/internal/toc"
)

// TextList is the collection store for a flat ordered list of text records.
// Mutations report whether they changed anything; every no-op rule from the
// editing contract (empty-after-trim input, absent id) is applied here.
type TextList []toc.TextRecord

// Add appends a record with the given id. Empty-after-trim text is a
// silent no-op.
func (l *TextList) Add(id, text string) bool {
	text = toc.Clean(text)
	if text == "" {
		return false
	}
	*l = append(*l, toc.TextRecord{ID: id, Text: text})
	return true
}

// Update replaces the text of the record with the given id. Absent ids and
// empty-after-trim text keep the prior value.
func (l TextList) Update(id, text string) bool {
	text = toc.Clean(text)
	if text == "" {
		return false
	}
	for i := range l {
		if l[i].ID == id {
			l[i].Text = text
			return true
		}
	}
	return false
}

// Delete removes the record with the given id, preserving the order of the
// survivors. Absent ids are a no-op.
func (l *TextList) Delete(id string) bool {
	for i := range *l {
		if (*l)[i].ID == id {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the record with the given id.
func (l TextList) Find(id string) (toc.TextRecord, bool) {
	for _, r := range l {
		if r.ID == id {
			return r, true
		}
	}
	return toc.TextRecord{}, false
}
