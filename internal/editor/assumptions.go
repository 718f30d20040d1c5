package editor

import (
	"github.com/pkeller/tocedit/internal/toc"
)

// AssumptionTable is the collection store for the assumption rows.
type AssumptionTable []toc.Assumption

// Add appends a row with the given id. Empty-after-trim descriptions are a
// silent no-op; a certainty outside the enumeration falls back to the
// default rating.
func (t *AssumptionTable) Add(id, description string, certainty toc.Certainty) bool {
	description = toc.Clean(description)
	if description == "" {
		return false
	}
	if !certainty.Valid() {
		certainty = toc.DefaultCertainty
	}
	*t = append(*t, toc.Assumption{ID: id, Description: description, Certainty: certainty})
	return true
}

// Update patches the row with the given id. Only supplied fields are
// replaced; an empty-after-trim description or invalid certainty keeps the
// prior value. Absent ids are a no-op.
func (t AssumptionTable) Update(id string, description *string, certainty *toc.Certainty) bool {
	for i := range t {
		if t[i].ID != id {
			continue
		}
		changed := false
		if description != nil {
			if d := toc.Clean(*description); d != "" {
				t[i].Description = d
				changed = true
			}
		}
		if certainty != nil && certainty.Valid() {
			t[i].Certainty = *certainty
			changed = true
		}
		return changed
	}
	return false
}

// Delete removes the row with the given id. Absent ids are a no-op.
func (t *AssumptionTable) Delete(id string) bool {
	for i := range *t {
		if (*t)[i].ID == id {
			*t = append((*t)[:i], (*t)[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the row with the given id.
func (t AssumptionTable) Find(id string) (toc.Assumption, bool) {
	for _, a := range t {
		if a.ID == id {
			return a, true
		}
	}
	return toc.Assumption{}, false
}
