package snapshot

import (
	"encoding/json"

	"github.com/pkeller/tocedit/internal/errors"
	"github.com/pkeller/tocedit/internal/storage"
	"github.com/pkeller/tocedit/internal/toc"
)

// WorkingState is the unsaved editing state carried between CLI
// invocations: the document as currently edited plus its dirty flag. It
// lives under its own key next to the snapshot and is only promoted into
// the snapshot by an explicit save.
type WorkingState struct {
	Document toc.Document `json:"document"`
	Dirty    bool         `json:"dirty"`
}

// WorkingKey derives the working-state key from the snapshot key.
func WorkingKey(key string) string {
	return key + ".working"
}

// StoreWorking writes the working state next to the snapshot.
func StoreWorking(store storage.Store, key string, ws WorkingState) error {
	b, err := json.Marshal(ws)
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := store.Set(WorkingKey(key), string(b)); err != nil {
		return errors.NewPersistenceFailure(err)
	}
	return nil
}

// ClearWorking drops the working state, typically after a successful save.
func ClearWorking(store storage.Store, key string) error {
	if err := store.Delete(WorkingKey(key)); err != nil {
		return errors.NewPersistenceFailure(err)
	}
	return nil
}

// LoadSession resolves the state an editing session starts from: the
// working state when one exists, otherwise the last saved snapshot,
// otherwise the seed. The returned dirty flag matches the loaded state.
func LoadSession(store storage.Store, key string, seed toc.Document) (toc.Document, bool) {
	blob, ok, err := store.Get(WorkingKey(key))
	if err == nil && ok {
		var ws WorkingState
		if err := json.Unmarshal([]byte(blob), &ws); err == nil {
			return ws.Document, ws.Dirty
		}
	}
	return Load(store, key, seed), false
}
