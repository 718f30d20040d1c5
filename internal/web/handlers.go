package web

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/pkeller/tocedit/internal/config"
	"github.com/pkeller/tocedit/internal/editor"
	"github.com/pkeller/tocedit/internal/errors"
	"github.com/pkeller/tocedit/internal/snapshot"
	"github.com/pkeller/tocedit/internal/storage"
	"github.com/pkeller/tocedit/internal/toc"
)

// Handlers contains HTTP route handlers for the web UI. The editor is a
// single shared instance; the mutex serializes handler access so request
// concurrency cannot interleave mutations.
type Handlers struct {
	mu       sync.Mutex
	ed       *editor.Editor
	store    storage.Store
	cfg      *config.Config
	renderer *Renderer
}

// HandleDocument handles GET /, the document page.
func (h *Handlers) HandleDocument(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc := h.ed.Document()
	data := DocumentPageData{
		PageData: PageData{
			Title:   "Theory of change",
			Version: h.renderer.version,
		},
		ReasonHTML:        renderMarkdown(doc.Reason),
		ReasonRaw:         doc.Reason,
		Tags:              h.ed.Tags(),
		Assumptions:       h.ed.VisibleAssumptions(),
		Window:            h.ed.AssumptionWindow(),
		Certainties:       toc.Certainties(),
		AssumptionSession: h.ed.Session(editor.CollectionAssumptions),
		Outcomes:          h.ed.Outcomes(),
		OutcomeSession:    h.ed.Session(editor.CollectionOutcomes),
		Programmes:        h.ed.Programmes(),
		Indirect: ListView{
			Name:    editor.CollectionIndirect,
			Label:   "Indirect outcomes",
			Zone:    "Zone of indirect influence",
			Items:   h.ed.VisibleItems(editor.CollectionIndirect),
			Preview: h.ed.ItemPreview(editor.CollectionIndirect),
			Session: h.ed.Session(editor.CollectionIndirect),
		},
		Ultimate: ListView{
			Name:    editor.CollectionUltimate,
			Label:   "Ultimate impact",
			Zone:    "Zone of contribution",
			Items:   h.ed.VisibleItems(editor.CollectionUltimate),
			Preview: h.ed.ItemPreview(editor.CollectionUltimate),
			Session: h.ed.Session(editor.CollectionUltimate),
		},
		Dirty:      h.ed.Dirty(),
		SavedAt:    doc.Meta.SavedAt,
		SaveFailed: r.URL.Query().Get("save") == "failed",
	}

	h.renderer.renderPage(w, "document", data)
}

// redirectHome sends the browser back to the document page.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSetReason handles POST /reason.
func (h *Handlers) HandleSetReason(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ed.SetReason(r.FormValue("text"))
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleAddTag handles POST /tags/add.
func (h *Handlers) HandleAddTag(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ed.AddTag(r.FormValue("value"))
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleRemoveTag handles POST /tags/remove.
func (h *Handlers) HandleRemoveTag(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("index must be an integer"))
		return
	}
	h.mu.Lock()
	h.ed.RemoveTag(index)
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleAddAssumption handles POST /assumptions/add.
func (h *Handlers) HandleAddAssumption(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ed.AddAssumption(r.FormValue("description"), toc.ParseCertainty(r.FormValue("certainty")))
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleDeleteAssumption handles POST /assumptions/delete.
func (h *Handlers) HandleDeleteAssumption(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ed.DeleteAssumption(r.FormValue("id"))
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleSetPage handles POST /assumptions/page.
func (h *Handlers) HandleSetPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.FormValue("page"))
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("page must be an integer"))
		return
	}
	h.mu.Lock()
	h.ed.SetPage(page)
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleAddOutcome handles POST /outcomes/add.
func (h *Handlers) HandleAddOutcome(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ed.AddOutcome(r.FormValue("title"))
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleDeleteOutcome handles POST /outcomes/delete.
func (h *Handlers) HandleDeleteOutcome(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ed.DeleteOutcome(r.FormValue("id"))
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleToggleOutcome handles POST /outcomes/toggle.
func (h *Handlers) HandleToggleOutcome(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ed.ToggleExpanded(r.FormValue("id"))
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleAddChild handles POST /outcomes/subs/add.
func (h *Handlers) HandleAddChild(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ed.AddChild(r.FormValue("parent_id"), r.FormValue("text"))
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleDeleteChild handles POST /outcomes/subs/delete.
func (h *Handlers) HandleDeleteChild(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.ed.DeleteChild(r.FormValue("parent_id"), r.FormValue("child_id"))
	h.mu.Unlock()
	redirectHome(w, r)
}

// listCollection maps the list form value onto one of the two flat
// outcome lists.
func listCollection(s string) (editor.Collection, bool) {
	col := editor.Collection(s)
	return col, col == editor.CollectionIndirect || col == editor.CollectionUltimate
}

// HandleAddItem handles POST /items/add.
func (h *Handlers) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	col, ok := listCollection(r.FormValue("list"))
	if !ok {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("list must be one of: indirectOutcomes, ultimateOutcomes"))
		return
	}
	h.mu.Lock()
	h.ed.AddItem(col, r.FormValue("text"))
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleDeleteItem handles POST /items/delete.
func (h *Handlers) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	col, ok := listCollection(r.FormValue("list"))
	if !ok {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("list must be one of: indirectOutcomes, ultimateOutcomes"))
		return
	}
	h.mu.Lock()
	h.ed.DeleteItem(col, r.FormValue("id"))
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleToggleExpandedView handles POST /items/toggle.
func (h *Handlers) HandleToggleExpandedView(w http.ResponseWriter, r *http.Request) {
	col, ok := listCollection(r.FormValue("list"))
	if !ok {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("list must be one of: indirectOutcomes, ultimateOutcomes"))
		return
	}
	h.mu.Lock()
	h.ed.ToggleExpandedView(col)
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleStartEdit handles POST /edit/start. The request addresses one
// record, so a stale id comes back as a 404 rather than a silent no-op.
func (h *Handlers) HandleStartEdit(w http.ResponseWriter, r *http.Request) {
	col := editor.Collection(r.FormValue("collection"))
	if !editor.KnownCollection(col) {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("unknown collection"))
		return
	}
	id := r.FormValue("id")
	h.mu.Lock()
	started := h.ed.StartEdit(col, id)
	h.mu.Unlock()
	if !started {
		h.renderer.renderError(w, r, errors.NewNotFound(id))
		return
	}
	redirectHome(w, r)
}

// HandleCommitEdit handles POST /edit/commit. The submitted form carries
// the final draft; it replaces the session draft before the commit so the
// state machine sees exactly what the user sent.
func (h *Handlers) HandleCommitEdit(w http.ResponseWriter, r *http.Request) {
	col := editor.Collection(r.FormValue("collection"))
	if !editor.KnownCollection(col) {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("unknown collection"))
		return
	}
	draft := editor.Draft{Text: r.FormValue("text")}
	if col == editor.CollectionAssumptions {
		draft.Certainty = toc.ParseCertainty(r.FormValue("certainty"))
	}
	h.mu.Lock()
	h.ed.UpdateDraft(col, draft)
	h.ed.CommitEdit(col)
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleCancelEdit handles POST /edit/cancel.
func (h *Handlers) HandleCancelEdit(w http.ResponseWriter, r *http.Request) {
	col := editor.Collection(r.FormValue("collection"))
	h.mu.Lock()
	h.ed.CancelEdit(col)
	h.mu.Unlock()
	redirectHome(w, r)
}

// HandleSave handles POST /save. The dirty flag clears only after the
// storage write is confirmed; a failed write leaves it set and surfaces a
// notice on the document page so the user can retry.
func (h *Handlers) HandleSave(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.ed.Dirty() {
		redirectHome(w, r)
		return
	}

	doc, err := snapshot.Save(h.store, h.cfg.SnapshotKey, h.ed.Document(), time.Now())
	if err != nil {
		http.Redirect(w, r, "/?save=failed", http.StatusSeeOther)
		return
	}
	h.ed.MarkSaved(doc.Meta.SavedAt)
	_ = snapshot.ClearWorking(h.store, h.cfg.SnapshotKey)
	redirectHome(w, r)
}
