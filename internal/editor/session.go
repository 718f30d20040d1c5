package editor

import (
	"github.com/pkeller/tocedit/internal/toc"
)

// Collection names the record sets that support inline editing. Each
// collection carries at most one active edit session at a time; sessions in
// different collections are independent.
type Collection string

const (
	CollectionAssumptions Collection = "assumptions"
	CollectionOutcomes    Collection = "outcomes"
	CollectionIndirect    Collection = "indirectOutcomes"
	CollectionUltimate    Collection = "ultimateOutcomes"
)

// KnownCollection reports whether c names an editable collection.
func KnownCollection(c Collection) bool {
	switch c {
	case CollectionAssumptions, CollectionOutcomes, CollectionIndirect, CollectionUltimate:
		return true
	}
	return false
}

// Draft holds the transient field values of an edit in progress. Text
// carries the description/title/text field; Certainty applies only to
// assumption edits.
type Draft struct {
	Text      string        `json:"text"`
	Certainty toc.Certainty `json:"certainty,omitempty"`
}

// Session is the inline edit state for one collection: either idle or
// editing exactly one record.
type Session struct {
	ActiveID string `json:"active_id,omitempty"`
	Draft    Draft  `json:"draft"`
}

// Editing reports whether a record edit is in progress.
func (s Session) Editing() bool {
	return s.ActiveID != ""
}

// start opens a session on the given record, seeding the draft from its
// current content. Any prior session in this collection is discarded first
// (start-cancels-active policy).
func (s *Session) start(id string, draft Draft) {
	s.ActiveID = id
	s.Draft = draft
}

// clear returns the session to idle, discarding the draft.
func (s *Session) clear() {
	*s = Session{}
}
