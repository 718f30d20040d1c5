package toc

// Document is the full theory-of-change document as edited and persisted.
// Field names match the snapshot schema exactly; the document is serialized
// as a single JSON blob under a fixed storage key.
type Document struct {
	// Reason is the free-text "reason we exist" statement
	Reason string `json:"reason"`

	// Tags is the ordered set of audience tags, unique case-insensitively
	Tags []string `json:"tags"`

	// Assumptions is the "what we believe to be true" table
	Assumptions []Assumption `json:"assumptions"`

	// Programmes is the flat list of programmes (zone of control)
	Programmes []TextRecord `json:"programmes"`

	// DirectOutcomes is the two-level outcome tree (zone of direct influence)
	DirectOutcomes []Outcome `json:"directOutcomes"`

	// IndirectOutcomes is the flat list of indirect outcomes
	IndirectOutcomes []TextRecord `json:"indirectOutcomes"`

	// UltimateOutcomes is the flat list of ultimate impact statements
	UltimateOutcomes []TextRecord `json:"ultimateOutcomes"`

	// Meta carries snapshot metadata, stamped on save
	Meta Meta `json:"meta"`
}

// Meta is the snapshot metadata block.
type Meta struct {
	// SavedAt is the save timestamp in RFC 3339 form; empty until first save
	SavedAt string `json:"savedAt"`
}

// TextRecord is a uniquely identified single-line text entry.
type TextRecord struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Clone returns a deep copy of the document. Collection slices and the
// sub-outcome lists are copied so the result shares no mutable state with
// the receiver. Empty slices stay empty (not nil) so the serialized form
// keeps its arrays.
func (d Document) Clone() Document {
	out := d
	out.Tags = cloneSlice(d.Tags)
	out.Assumptions = cloneSlice(d.Assumptions)
	out.Programmes = cloneSlice(d.Programmes)
	out.IndirectOutcomes = cloneSlice(d.IndirectOutcomes)
	out.UltimateOutcomes = cloneSlice(d.UltimateOutcomes)
	if d.DirectOutcomes != nil {
		out.DirectOutcomes = make([]Outcome, len(d.DirectOutcomes))
		for i, o := range d.DirectOutcomes {
			oc := o
			oc.SubOutcomes = cloneSlice(o.SubOutcomes)
			out.DirectOutcomes[i] = oc
		}
	}
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
