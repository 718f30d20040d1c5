// Package editor implements the editable collection state model for a
// theory-of-change document: the collection stores, view windows, inline
// edit sessions, and the dirty flag that gates the save action.
package editor

import (
	"github.com/pkeller/tocedit/internal/toc"
)

// Editor owns one document and is its sole mutator. Every successful
// mutation marks the document dirty; view movement (paging, expand toggles)
// and cancelled edits never do. The flag clears only when a save is
// confirmed via MarkSaved.
type Editor struct {
	doc   toc.Document
	ids   IDGenerator
	dirty bool

	assumptionPage int
	listExpanded   map[Collection]bool
	sessions       map[Collection]*Session
}

// New creates an editor over a fresh copy of doc with the dirty flag clear.
func New(doc toc.Document, ids IDGenerator) *Editor {
	return Restore(doc, false, ids)
}

// Restore creates an editor from a previously loaded working state,
// reinstating its dirty flag.
func Restore(doc toc.Document, dirty bool, ids IDGenerator) *Editor {
	return &Editor{
		doc:            doc.Clone(),
		ids:            ids,
		dirty:          dirty,
		assumptionPage: 1,
		listExpanded:   make(map[Collection]bool),
		sessions:       make(map[Collection]*Session),
	}
}

// Document returns a deep copy of the current document state.
func (e *Editor) Document() toc.Document {
	return e.doc.Clone()
}

// Dirty reports whether unsaved mutations exist since the last save.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// MarkSaved records a confirmed save: the save timestamp is taken into the
// document and the dirty flag clears. Call only after the storage write
// succeeded.
func (e *Editor) MarkSaved(savedAt string) {
	e.doc.Meta.SavedAt = savedAt
	e.dirty = false
}

func (e *Editor) markDirty() {
	e.dirty = true
}

// Reason

// SetReason replaces the free-text reason statement. Setting the same value
// again is a no-op.
func (e *Editor) SetReason(text string) bool {
	if e.doc.Reason == text {
		return false
	}
	e.doc.Reason = text
	e.markDirty()
	return true
}

// Reason returns the current reason statement.
func (e *Editor) Reason() string {
	return e.doc.Reason
}

// Tags

// AddTag appends an audience tag. Empty input and case-insensitive
// duplicates are silent no-ops and do not mark dirty.
func (e *Editor) AddTag(value string) bool {
	if (*TagSet)(&e.doc.Tags).Add(value) {
		e.markDirty()
		return true
	}
	return false
}

// RemoveTag deletes the tag at the given position.
func (e *Editor) RemoveTag(index int) bool {
	if (*TagSet)(&e.doc.Tags).Remove(index) {
		e.markDirty()
		return true
	}
	return false
}

// Tags returns the current tag set in order.
func (e *Editor) Tags() []string {
	return append([]string(nil), e.doc.Tags...)
}

// Assumptions

// AddAssumption appends a row and moves the table cursor to the page that
// now contains it (the last page).
func (e *Editor) AddAssumption(description string, certainty toc.Certainty) (toc.Assumption, bool) {
	id := e.ids.NewID()
	table := (*AssumptionTable)(&e.doc.Assumptions)
	if !table.Add(id, description, certainty) {
		return toc.Assumption{}, false
	}
	// The new row lands on the last page; move the cursor there.
	e.assumptionPage = Paginate(len(e.doc.Assumptions), 1).TotalPages
	e.markDirty()
	a, _ := table.Find(id)
	return a, true
}

// UpdateAssumption patches the row with the given id.
func (e *Editor) UpdateAssumption(id string, description *string, certainty *toc.Certainty) bool {
	if AssumptionTable(e.doc.Assumptions).Update(id, description, certainty) {
		e.markDirty()
		return true
	}
	return false
}

// DeleteAssumption removes the row with the given id and clamps the table
// cursor back into range.
func (e *Editor) DeleteAssumption(id string) bool {
	if !(*AssumptionTable)(&e.doc.Assumptions).Delete(id) {
		return false
	}
	e.assumptionPage = Paginate(len(e.doc.Assumptions), e.assumptionPage).Page
	e.markDirty()
	return true
}

// SetPage moves the assumption table cursor. The page is clamped into
// range; moving the cursor is not a document mutation.
func (e *Editor) SetPage(page int) {
	e.assumptionPage = Paginate(len(e.doc.Assumptions), page).Page
}

// AssumptionWindow returns the current table window.
func (e *Editor) AssumptionWindow() Window {
	return Paginate(len(e.doc.Assumptions), e.assumptionPage)
}

// VisibleAssumptions returns the rows on the current page.
func (e *Editor) VisibleAssumptions() []toc.Assumption {
	w := e.AssumptionWindow()
	return append([]toc.Assumption(nil), e.doc.Assumptions[w.Start:w.End]...)
}

// Assumptions returns all rows in order.
func (e *Editor) Assumptions() []toc.Assumption {
	return append([]toc.Assumption(nil), e.doc.Assumptions...)
}

// Direct outcomes

// AddOutcome appends a collapsed outcome with no sub-outcomes.
func (e *Editor) AddOutcome(title string) (toc.Outcome, bool) {
	id := e.ids.NewID()
	tree := (*OutcomeTree)(&e.doc.DirectOutcomes)
	if !tree.Add(id, title) {
		return toc.Outcome{}, false
	}
	e.markDirty()
	o, _ := tree.Find(id)
	return o, true
}

// UpdateOutcome replaces the title of the outcome with the given id.
func (e *Editor) UpdateOutcome(id, title string) bool {
	if OutcomeTree(e.doc.DirectOutcomes).UpdateTitle(id, title) {
		e.markDirty()
		return true
	}
	return false
}

// DeleteOutcome removes the outcome with the given id and cascades to all
// of its sub-outcomes. It returns the number of children removed.
func (e *Editor) DeleteOutcome(id string) (int, bool) {
	subs, ok := (*OutcomeTree)(&e.doc.DirectOutcomes).Delete(id)
	if !ok {
		return 0, false
	}
	e.markDirty()
	return subs, true
}

// ToggleExpanded flips the expand flag of one outcome. Expansion is view
// state and never marks dirty.
func (e *Editor) ToggleExpanded(id string) bool {
	return OutcomeTree(e.doc.DirectOutcomes).Toggle(id)
}

// AddChild appends a sub-outcome under parentID.
func (e *Editor) AddChild(parentID, text string) (toc.SubOutcome, bool) {
	id := e.ids.NewID()
	tree := OutcomeTree(e.doc.DirectOutcomes)
	if !tree.AddChild(parentID, id, text) {
		return toc.SubOutcome{}, false
	}
	e.markDirty()
	s, _ := tree.FindChild(parentID, id)
	return s, true
}

// DeleteChild removes the sub-outcome childID from parentID.
func (e *Editor) DeleteChild(parentID, childID string) bool {
	if OutcomeTree(e.doc.DirectOutcomes).DeleteChild(parentID, childID) {
		e.markDirty()
		return true
	}
	return false
}

// Outcomes returns the outcome tree.
func (e *Editor) Outcomes() []toc.Outcome {
	out := make([]toc.Outcome, len(e.doc.DirectOutcomes))
	for i, o := range e.doc.DirectOutcomes {
		oc := o
		oc.SubOutcomes = append([]toc.SubOutcome(nil), o.SubOutcomes...)
		out[i] = oc
	}
	return out
}

// Flat text lists (indirect and ultimate outcomes)

func (e *Editor) list(col Collection) *TextList {
	switch col {
	case CollectionIndirect:
		return (*TextList)(&e.doc.IndirectOutcomes)
	case CollectionUltimate:
		return (*TextList)(&e.doc.UltimateOutcomes)
	}
	return nil
}

// AddItem appends a record to the indirect or ultimate list.
func (e *Editor) AddItem(col Collection, text string) (toc.TextRecord, bool) {
	l := e.list(col)
	if l == nil {
		return toc.TextRecord{}, false
	}
	id := e.ids.NewID()
	if !l.Add(id, text) {
		return toc.TextRecord{}, false
	}
	e.markDirty()
	r, _ := l.Find(id)
	return r, true
}

// UpdateItem replaces the text of one record in the given list.
func (e *Editor) UpdateItem(col Collection, id, text string) bool {
	l := e.list(col)
	if l == nil {
		return false
	}
	if l.Update(id, text) {
		e.markDirty()
		return true
	}
	return false
}

// DeleteItem removes one record from the given list.
func (e *Editor) DeleteItem(col Collection, id string) bool {
	l := e.list(col)
	if l == nil {
		return false
	}
	if l.Delete(id) {
		e.markDirty()
		return true
	}
	return false
}

// Items returns all records of the given list; for CollectionOutcomes and
// unknown collections it returns nil.
func (e *Editor) Items(col Collection) []toc.TextRecord {
	l := e.list(col)
	if l == nil {
		return nil
	}
	return append([]toc.TextRecord(nil), *l...)
}

// Programmes returns the read-only programme list.
func (e *Editor) Programmes() []toc.TextRecord {
	return append([]toc.TextRecord(nil), e.doc.Programmes...)
}

// ToggleExpandedView flips the show-more state of the given list. View
// state only; never dirty.
func (e *Editor) ToggleExpandedView(col Collection) {
	if e.list(col) == nil {
		return
	}
	e.listExpanded[col] = !e.listExpanded[col]
}

// ItemPreview returns the current visible window of the given list.
func (e *Editor) ItemPreview(col Collection) Preview {
	l := e.list(col)
	if l == nil {
		return Preview{}
	}
	return PreviewOf(len(*l), e.listExpanded[col])
}

// VisibleItems returns the records of the given list that the current
// preview shows.
func (e *Editor) VisibleItems(col Collection) []toc.TextRecord {
	l := e.list(col)
	if l == nil {
		return nil
	}
	p := PreviewOf(len(*l), e.listExpanded[col])
	return append([]toc.TextRecord(nil), (*l)[:p.Visible]...)
}

// Edit sessions

func (e *Editor) session(col Collection) *Session {
	s, ok := e.sessions[col]
	if !ok {
		s = &Session{}
		e.sessions[col] = s
	}
	return s
}

// Session returns the current edit session of the given collection.
func (e *Editor) Session(col Collection) Session {
	return *e.session(col)
}

// StartEdit opens an edit session on the given record, seeding the draft
// from its current content. A session already active in the same collection
// is cancelled first; sessions in other collections are untouched. Unknown
// ids are a no-op.
func (e *Editor) StartEdit(col Collection, id string) bool {
	switch col {
	case CollectionAssumptions:
		a, ok := AssumptionTable(e.doc.Assumptions).Find(id)
		if !ok {
			return false
		}
		e.session(col).start(id, Draft{Text: a.Description, Certainty: a.Certainty})
	case CollectionOutcomes:
		o, ok := OutcomeTree(e.doc.DirectOutcomes).Find(id)
		if !ok {
			return false
		}
		e.session(col).start(id, Draft{Text: o.Title})
	case CollectionIndirect, CollectionUltimate:
		r, ok := e.list(col).Find(id)
		if !ok {
			return false
		}
		e.session(col).start(id, Draft{Text: r.Text})
	default:
		return false
	}
	return true
}

// UpdateDraft replaces the draft of an active session. Draft typing is
// transient state and never marks dirty. Idle sessions ignore it.
func (e *Editor) UpdateDraft(col Collection, draft Draft) {
	s := e.session(col)
	if !s.Editing() {
		return
	}
	s.Draft = draft
}

// CommitEdit resolves an active session by applying its draft through the
// owning store. An empty-after-trim draft discards the edit instead, which
// is equivalent to cancel: the prior value stays and nothing marks dirty.
func (e *Editor) CommitEdit(col Collection) bool {
	s := e.session(col)
	if !s.Editing() {
		return false
	}
	id, draft := s.ActiveID, s.Draft
	s.clear()
	if toc.Clean(draft.Text) == "" {
		return false
	}
	switch col {
	case CollectionAssumptions:
		c := draft.Certainty
		return e.UpdateAssumption(id, &draft.Text, &c)
	case CollectionOutcomes:
		return e.UpdateOutcome(id, draft.Text)
	case CollectionIndirect, CollectionUltimate:
		return e.UpdateItem(col, id, draft.Text)
	}
	return false
}

// CancelEdit discards an active session without mutating the record.
func (e *Editor) CancelEdit(col Collection) {
	e.session(col).clear()
}
