package editor

import (
	"github.com/pkeller/tocedit/internal/toc"
)

// OutcomeTree is the collection store for the two-level direct-outcome tree.
// Sub-outcomes are owned by their parent record, so deleting an outcome is
// the single step that cascades to every child.
type OutcomeTree []toc.Outcome

// Add appends an outcome with the given id. New outcomes start collapsed
// with no sub-outcomes. Empty-after-trim titles are a silent no-op.
func (t *OutcomeTree) Add(id, title string) bool {
	title = toc.Clean(title)
	if title == "" {
		return false
	}
	*t = append(*t, toc.Outcome{ID: id, Title: title})
	return true
}

// UpdateTitle replaces the title of the outcome with the given id. Absent
// ids and empty-after-trim titles keep the prior value.
func (t OutcomeTree) UpdateTitle(id, title string) bool {
	title = toc.Clean(title)
	if title == "" {
		return false
	}
	for i := range t {
		if t[i].ID == id {
			t[i].Title = title
			return true
		}
	}
	return false
}

// Delete removes the outcome with the given id together with all of its
// sub-outcomes. It returns the number of cascaded children so the cascade
// is observable, and false when the id is absent.
func (t *OutcomeTree) Delete(id string) (int, bool) {
	for i := range *t {
		if (*t)[i].ID == id {
			subs := len((*t)[i].SubOutcomes)
			*t = append((*t)[:i], (*t)[i+1:]...)
			return subs, true
		}
	}
	return 0, false
}

// Toggle flips the expanded flag of the outcome with the given id. The flag
// is independent per outcome; toggling is not a document mutation.
func (t OutcomeTree) Toggle(id string) bool {
	for i := range t {
		if t[i].ID == id {
			t[i].Expanded = !t[i].Expanded
			return true
		}
	}
	return false
}

// AddChild appends a sub-outcome with the given child id under parentID.
// Absent parents and empty-after-trim text are silent no-ops.
func (t OutcomeTree) AddChild(parentID, childID, text string) bool {
	text = toc.Clean(text)
	if text == "" {
		return false
	}
	for i := range t {
		if t[i].ID == parentID {
			t[i].SubOutcomes = append(t[i].SubOutcomes, toc.SubOutcome{ID: childID, Text: text})
			return true
		}
	}
	return false
}

// DeleteChild removes the sub-outcome childID from parentID. Absent parents
// or children are a no-op.
func (t OutcomeTree) DeleteChild(parentID, childID string) bool {
	for i := range t {
		if t[i].ID != parentID {
			continue
		}
		subs := t[i].SubOutcomes
		for j := range subs {
			if subs[j].ID == childID {
				t[i].SubOutcomes = append(subs[:j], subs[j+1:]...)
				return true
			}
		}
		return false
	}
	return false
}

// Find returns the outcome with the given id.
func (t OutcomeTree) Find(id string) (toc.Outcome, bool) {
	for _, o := range t {
		if o.ID == id {
			return o, true
		}
	}
	return toc.Outcome{}, false
}

// FindChild returns the sub-outcome childID under parentID.
func (t OutcomeTree) FindChild(parentID, childID string) (toc.SubOutcome, bool) {
	o, ok := t.Find(parentID)
	if !ok {
		return toc.SubOutcome{}, false
	}
	for _, s := range o.SubOutcomes {
		if s.ID == childID {
			return s, true
		}
	}
	return toc.SubOutcome{}, false
}
