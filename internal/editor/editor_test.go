package editor

import (
	"testing"

	"github.com/pkeller/tocedit/internal/toc"
)

func newTestEditor() *Editor {
	return New(toc.Seed(), &Sequence{Prefix: "id"})
}

func TestEditor_StartsClean(t *testing.T) {
	ed := newTestEditor()
	if ed.Dirty() {
		t.Error("fresh editor should start clean")
	}
}

func TestEditor_Restore_ReinstatesDirty(t *testing.T) {
	ed := Restore(toc.Seed(), true, &Sequence{Prefix: "id"})
	if !ed.Dirty() {
		t.Error("Restore(dirty=true) should reinstate the flag")
	}
}

func TestEditor_SetReason(t *testing.T) {
	ed := newTestEditor()

	if !ed.SetReason("Because young people lack support") {
		t.Fatal("SetReason = false, want true")
	}
	if !ed.Dirty() {
		t.Error("SetReason should mark dirty")
	}
	if ed.Reason() != "Because young people lack support" {
		t.Errorf("Reason = %q", ed.Reason())
	}

	// Re-setting the same value is a non-event.
	ed.MarkSaved("2025-06-01T12:00:00Z")
	if ed.SetReason("Because young people lack support") {
		t.Error("SetReason(same value) = true, want no-op")
	}
	if ed.Dirty() {
		t.Error("no-op SetReason should not mark dirty")
	}
}

func TestEditor_Tags_DuplicateDoesNotDirty(t *testing.T) {
	ed := newTestEditor()

	if !ed.AddTag("Youth") {
		t.Fatal("AddTag = false, want true")
	}
	ed.MarkSaved("2025-06-01T12:00:00Z")

	if ed.AddTag("youth") {
		t.Error("AddTag(duplicate) = true, want no-op")
	}
	if ed.Dirty() {
		t.Error("rejected duplicate should not mark dirty")
	}
	if got := ed.Tags(); len(got) != 1 || got[0] != "Youth" {
		t.Errorf("Tags = %v, want [Youth]", got)
	}
}

func TestEditor_AddAssumption_JumpsToLastPage(t *testing.T) {
	ed := newTestEditor()

	for i := 0; i < PageSize; i++ {
		if _, ok := ed.AddAssumption("row", toc.CertaintyVery); !ok {
			t.Fatal("AddAssumption = false, want true")
		}
	}
	if w := ed.AssumptionWindow(); w.Page != 1 || w.TotalPages != 1 {
		t.Fatalf("window = %+v, want single page", w)
	}

	// The sixth row opens page two and the cursor follows it.
	added, ok := ed.AddAssumption("overflow row", toc.CertaintyUncertain)
	if !ok {
		t.Fatal("AddAssumption = false, want true")
	}
	w := ed.AssumptionWindow()
	if w.Page != 2 || w.TotalPages != 2 {
		t.Errorf("window = %+v, want cursor on page 2 of 2", w)
	}
	visible := ed.VisibleAssumptions()
	if len(visible) != 1 || visible[0].ID != added.ID {
		t.Errorf("visible rows = %+v, want just the new row", visible)
	}
}

func TestEditor_DeleteAssumption_ClampsPage(t *testing.T) {
	ed := newTestEditor()

	var lastID string
	for i := 0; i < PageSize+1; i++ {
		a, _ := ed.AddAssumption("row", toc.CertaintyVery)
		lastID = a.ID
	}
	if w := ed.AssumptionWindow(); w.Page != 2 {
		t.Fatalf("window = %+v, want page 2", w)
	}

	// Deleting the only row on page two pulls the cursor back to page one.
	if !ed.DeleteAssumption(lastID) {
		t.Fatal("DeleteAssumption = false, want true")
	}
	w := ed.AssumptionWindow()
	if w.Page != 1 || w.TotalPages != 1 {
		t.Errorf("window = %+v, want clamp to page 1", w)
	}
	if len(ed.VisibleAssumptions()) != PageSize {
		t.Errorf("visible rows = %d, want %d", len(ed.VisibleAssumptions()), PageSize)
	}
}

func TestEditor_SetPage_NeverDirties(t *testing.T) {
	ed := newTestEditor()
	for i := 0; i < PageSize+1; i++ {
		ed.AddAssumption("row", toc.CertaintyVery)
	}
	ed.MarkSaved("2025-06-01T12:00:00Z")

	ed.SetPage(1)
	ed.SetPage(2)
	ed.SetPage(99)
	if ed.Dirty() {
		t.Error("paging should never mark dirty")
	}
	if w := ed.AssumptionWindow(); w.Page != 2 {
		t.Errorf("Page = %d, want clamp to 2", w.Page)
	}
}

func TestEditor_DeleteOutcome_ReportsCascade(t *testing.T) {
	ed := newTestEditor()

	o, _ := ed.AddOutcome("Outcome A")
	ed.AddChild(o.ID, "Sub B")
	ed.AddChild(o.ID, "Sub C")

	subs, ok := ed.DeleteOutcome(o.ID)
	if !ok {
		t.Fatal("DeleteOutcome = false, want true")
	}
	if subs != 2 {
		t.Errorf("cascaded children = %d, want 2", subs)
	}

	for _, remaining := range ed.Outcomes() {
		if remaining.ID == o.ID {
			t.Error("deleted outcome still present")
		}
	}
}

func TestEditor_ToggleExpanded_NeverDirties(t *testing.T) {
	ed := newTestEditor()
	ed.MarkSaved("2025-06-01T12:00:00Z")

	id := ed.Outcomes()[0].ID
	if !ed.ToggleExpanded(id) {
		t.Fatal("ToggleExpanded = false, want true")
	}
	if ed.Dirty() {
		t.Error("expansion toggles should never mark dirty")
	}
	if !ed.Outcomes()[0].Expanded {
		t.Error("outcome should be expanded")
	}
}

func TestEditor_ItemPreview_SixItems(t *testing.T) {
	ed := newTestEditor()

	// Seed has three indirect outcomes; grow the list to six.
	for i := 0; i < 3; i++ {
		if _, ok := ed.AddItem(CollectionIndirect, "extra outcome"); !ok {
			t.Fatal("AddItem = false, want true")
		}
	}

	p := ed.ItemPreview(CollectionIndirect)
	if p.Visible != PreviewSize || !p.HasMore || p.Expanded {
		t.Fatalf("collapsed preview = %+v, want 3 visible with toggle", p)
	}
	if got := len(ed.VisibleItems(CollectionIndirect)); got != PreviewSize {
		t.Errorf("visible items = %d, want %d", got, PreviewSize)
	}

	ed.ToggleExpandedView(CollectionIndirect)
	p = ed.ItemPreview(CollectionIndirect)
	if p.Visible != 6 || !p.Expanded {
		t.Fatalf("expanded preview = %+v, want all 6 visible", p)
	}

	ed.ToggleExpandedView(CollectionIndirect)
	p = ed.ItemPreview(CollectionIndirect)
	if p.Visible != PreviewSize || p.Expanded {
		t.Errorf("re-collapsed preview = %+v, want 3 visible", p)
	}
}

func TestEditor_ToggleExpandedView_NeverDirties(t *testing.T) {
	ed := newTestEditor()
	ed.MarkSaved("2025-06-01T12:00:00Z")

	ed.ToggleExpandedView(CollectionIndirect)
	ed.ToggleExpandedView(CollectionUltimate)
	if ed.Dirty() {
		t.Error("preview toggles should never mark dirty")
	}
}

func TestEditor_Items_UnknownCollection(t *testing.T) {
	ed := newTestEditor()

	if got := ed.Items(Collection("bogus")); got != nil {
		t.Errorf("Items(bogus) = %v, want nil", got)
	}
	if _, ok := ed.AddItem(Collection("bogus"), "text"); ok {
		t.Error("AddItem(bogus) = true, want no-op")
	}
	if ed.Dirty() {
		t.Error("rejected AddItem should not mark dirty")
	}
}

func TestEditor_Programmes_ReadOnlyView(t *testing.T) {
	ed := newTestEditor()

	progs := ed.Programmes()
	if len(progs) != 1 {
		t.Fatalf("len(Programmes) = %d, want 1", len(progs))
	}
	progs[0].Text = "changed"
	if ed.Programmes()[0].Text == "changed" {
		t.Error("mutating the returned slice changed the document")
	}
}

func TestEditor_Document_IsACopy(t *testing.T) {
	ed := newTestEditor()

	doc := ed.Document()
	doc.Reason = "changed"
	doc.IndirectOutcomes[0].Text = "changed"

	if ed.Reason() == "changed" {
		t.Error("mutating the returned document changed the editor state")
	}
	if ed.Items(CollectionIndirect)[0].Text == "changed" {
		t.Error("mutating the returned document changed the editor lists")
	}
}
