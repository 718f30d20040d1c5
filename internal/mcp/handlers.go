package mcp

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pkeller/tocedit/internal/config"
	"github.com/pkeller/tocedit/internal/editor"
	"github.com/pkeller/tocedit/internal/errors"
	"github.com/pkeller/tocedit/internal/snapshot"
	"github.com/pkeller/tocedit/internal/storage"
	"github.com/pkeller/tocedit/internal/toc"
)

// Handlers holds dependencies for MCP tool handlers. Each mutating call
// loads the editing session, applies one editor operation, and writes the
// working state back; the mutex keeps calls from interleaving.
type Handlers struct {
	mu    sync.Mutex
	store storage.Store
	cfg   *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store storage.Store, cfg *config.Config) *Handlers {
	return &Handlers{store: store, cfg: cfg}
}

func (h *Handlers) loadEditor() *editor.Editor {
	doc, dirty := snapshot.LoadSession(h.store, h.cfg.SnapshotKey, toc.Seed())
	return editor.Restore(doc, dirty, editor.NewULIDGenerator())
}

func (h *Handlers) persist(ed *editor.Editor) error {
	return snapshot.StoreWorking(h.store, h.cfg.SnapshotKey, snapshot.WorkingState{
		Document: ed.Document(),
		Dirty:    ed.Dirty(),
	})
}

// mutate runs op against a freshly loaded editor under the lock and writes
// the working state back so the session survives across calls.
func (h *Handlers) mutate(op func(ed *editor.Editor) (any, error)) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ed := h.loadEditor()
	payload, err := op(ed)
	if err != nil {
		return errorResult(err), nil
	}
	if err := h.persist(ed); err != nil {
		return errorResult(err), nil
	}
	return successResult(payload)
}

// Request types for each tool

// ReasonSetRequest represents the arguments for toc_reason_set.
type ReasonSetRequest struct {
	Text string `json:"text"`
}

// TagAddRequest represents the arguments for toc_tag_add.
type TagAddRequest struct {
	Value string `json:"value"`
}

// TagRemoveRequest represents the arguments for toc_tag_remove.
type TagRemoveRequest struct {
	Index int `json:"index"`
}

// AssumptionAddRequest represents the arguments for toc_assumption_add.
type AssumptionAddRequest struct {
	Description string `json:"description"`
	Certainty   string `json:"certainty,omitempty"`
}

// AssumptionUpdateRequest represents the arguments for toc_assumption_update.
type AssumptionUpdateRequest struct {
	ID          string  `json:"id"`
	Description *string `json:"description,omitempty"`
	Certainty   *string `json:"certainty,omitempty"`
}

// AssumptionDeleteRequest represents the arguments for toc_assumption_delete.
type AssumptionDeleteRequest struct {
	ID string `json:"id"`
}

// OutcomeAddRequest represents the arguments for toc_outcome_add.
type OutcomeAddRequest struct {
	Title string `json:"title"`
}

// OutcomeUpdateRequest represents the arguments for toc_outcome_update.
type OutcomeUpdateRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// OutcomeDeleteRequest represents the arguments for toc_outcome_delete.
type OutcomeDeleteRequest struct {
	ID string `json:"id"`
}

// SubOutcomeAddRequest represents the arguments for toc_suboutcome_add.
type SubOutcomeAddRequest struct {
	OutcomeID string `json:"outcome_id"`
	Text      string `json:"text"`
}

// SubOutcomeDeleteRequest represents the arguments for toc_suboutcome_delete.
type SubOutcomeDeleteRequest struct {
	OutcomeID string `json:"outcome_id"`
	SubID     string `json:"sub_id"`
}

// ItemAddRequest represents the arguments for toc_item_add.
type ItemAddRequest struct {
	List string `json:"list"`
	Text string `json:"text"`
}

// ItemUpdateRequest represents the arguments for toc_item_update.
type ItemUpdateRequest struct {
	List string `json:"list"`
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ItemDeleteRequest represents the arguments for toc_item_delete.
type ItemDeleteRequest struct {
	List string `json:"list"`
	ID   string `json:"id"`
}

// parseListName maps the list argument onto an editable collection.
func parseListName(s string) (editor.Collection, error) {
	switch s {
	case "indirect":
		return editor.CollectionIndirect, nil
	case "ultimate":
		return editor.CollectionUltimate, nil
	}
	return "", errors.NewInvalidRequest("list must be one of: indirect, ultimate")
}

// changePayload is the JSON shape mutating tools return.
type changePayload struct {
	Changed bool `json:"changed"`
	Dirty   bool `json:"dirty"`
	Record  any  `json:"record,omitempty"`
}

// Handler implementations

// HandleGet handles the toc_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ed := h.loadEditor()
	return successResult(map[string]any{
		"document": ed.Document(),
		"dirty":    ed.Dirty(),
	})
}

// HandleStatus handles the toc_status tool call.
func (h *Handlers) HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ed := h.loadEditor()
	return successResult(map[string]any{
		"dirty":    ed.Dirty(),
		"saved_at": ed.Document().Meta.SavedAt,
	})
}

// HandleReasonSet handles the toc_reason_set tool call.
func (h *Handlers) HandleReasonSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ReasonSetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		changed := ed.SetReason(input.Text)
		return changePayload{Changed: changed, Dirty: ed.Dirty()}, nil
	})
}

// HandleTagAdd handles the toc_tag_add tool call.
func (h *Handlers) HandleTagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TagAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		changed := ed.AddTag(input.Value)
		return changePayload{Changed: changed, Dirty: ed.Dirty(), Record: ed.Tags()}, nil
	})
}

// HandleTagRemove handles the toc_tag_remove tool call.
func (h *Handlers) HandleTagRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TagRemoveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		changed := ed.RemoveTag(input.Index)
		return changePayload{Changed: changed, Dirty: ed.Dirty(), Record: ed.Tags()}, nil
	})
}

// HandleAssumptionAdd handles the toc_assumption_add tool call.
func (h *Handlers) HandleAssumptionAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AssumptionAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		a, changed := ed.AddAssumption(input.Description, toc.ParseCertainty(input.Certainty))
		p := changePayload{Changed: changed, Dirty: ed.Dirty()}
		if changed {
			p.Record = a
		}
		return p, nil
	})
}

// HandleAssumptionUpdate handles the toc_assumption_update tool call.
func (h *Handlers) HandleAssumptionUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AssumptionUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var certainty *toc.Certainty
	if input.Certainty != nil {
		c := toc.ParseCertainty(*input.Certainty)
		certainty = &c
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		changed := ed.UpdateAssumption(input.ID, input.Description, certainty)
		return changePayload{Changed: changed, Dirty: ed.Dirty()}, nil
	})
}

// HandleAssumptionDelete handles the toc_assumption_delete tool call.
func (h *Handlers) HandleAssumptionDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AssumptionDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		changed := ed.DeleteAssumption(input.ID)
		return changePayload{Changed: changed, Dirty: ed.Dirty()}, nil
	})
}

// HandleOutcomeAdd handles the toc_outcome_add tool call.
func (h *Handlers) HandleOutcomeAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[OutcomeAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		o, changed := ed.AddOutcome(input.Title)
		p := changePayload{Changed: changed, Dirty: ed.Dirty()}
		if changed {
			p.Record = o
		}
		return p, nil
	})
}

// HandleOutcomeUpdate handles the toc_outcome_update tool call.
func (h *Handlers) HandleOutcomeUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[OutcomeUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		changed := ed.UpdateOutcome(input.ID, input.Title)
		return changePayload{Changed: changed, Dirty: ed.Dirty()}, nil
	})
}

// HandleOutcomeDelete handles the toc_outcome_delete tool call.
func (h *Handlers) HandleOutcomeDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[OutcomeDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		subs, changed := ed.DeleteOutcome(input.ID)
		return map[string]any{
			"changed":      changed,
			"dirty":        ed.Dirty(),
			"subs_removed": subs,
		}, nil
	})
}

// HandleSubOutcomeAdd handles the toc_suboutcome_add tool call.
func (h *Handlers) HandleSubOutcomeAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SubOutcomeAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		s, changed := ed.AddChild(input.OutcomeID, input.Text)
		p := changePayload{Changed: changed, Dirty: ed.Dirty()}
		if changed {
			p.Record = s
		}
		return p, nil
	})
}

// HandleSubOutcomeDelete handles the toc_suboutcome_delete tool call.
func (h *Handlers) HandleSubOutcomeDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SubOutcomeDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		changed := ed.DeleteChild(input.OutcomeID, input.SubID)
		return changePayload{Changed: changed, Dirty: ed.Dirty()}, nil
	})
}

// HandleItemAdd handles the toc_item_add tool call.
func (h *Handlers) HandleItemAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ItemAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	col, err := parseListName(input.List)
	if err != nil {
		return errorResult(err), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		r, changed := ed.AddItem(col, input.Text)
		p := changePayload{Changed: changed, Dirty: ed.Dirty()}
		if changed {
			p.Record = r
		}
		return p, nil
	})
}

// HandleItemUpdate handles the toc_item_update tool call.
func (h *Handlers) HandleItemUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ItemUpdateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	col, err := parseListName(input.List)
	if err != nil {
		return errorResult(err), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		changed := ed.UpdateItem(col, input.ID, input.Text)
		return changePayload{Changed: changed, Dirty: ed.Dirty()}, nil
	})
}

// HandleItemDelete handles the toc_item_delete tool call.
func (h *Handlers) HandleItemDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ItemDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	col, err := parseListName(input.List)
	if err != nil {
		return errorResult(err), nil
	}

	return h.mutate(func(ed *editor.Editor) (any, error) {
		changed := ed.DeleteItem(col, input.ID)
		return changePayload{Changed: changed, Dirty: ed.Dirty()}, nil
	})
}

// HandleSave handles the toc_save tool call. The dirty flag clears only
// after the snapshot write is confirmed; a failed write leaves it set so
// the save can be retried.
func (h *Handlers) HandleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ed := h.loadEditor()
	if !ed.Dirty() {
		return successResult(map[string]any{
			"saved":  false,
			"reason": "no unsaved changes",
		})
	}

	doc, err := snapshot.Save(h.store, h.cfg.SnapshotKey, ed.Document(), time.Now())
	if err != nil {
		return errorResult(err), nil
	}
	ed.MarkSaved(doc.Meta.SavedAt)
	if err := snapshot.ClearWorking(h.store, h.cfg.SnapshotKey); err != nil {
		// The snapshot is already written, so the save itself succeeded.
		// Rewrite the envelope as clean so the next load does not report
		// stale unsaved changes, and surface the cleanup failure.
		_ = h.persist(ed)
		return successResult(map[string]any{
			"saved":    true,
			"saved_at": doc.Meta.SavedAt,
			"warning":  "saved, but clearing the working state failed: " + err.Error(),
		})
	}

	return successResult(map[string]any{
		"saved":    true,
		"saved_at": doc.Meta.SavedAt,
	})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if eErr, ok := err.(*errors.EditorError); ok {
		errorObj := map[string]any{
			"code":    eErr.Code,
			"message": eErr.Message,
			"status":  eErr.Status,
		}
		if eErr.Code != errors.ErrInternal && eErr.Details != nil {
			errorObj["details"] = eErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
