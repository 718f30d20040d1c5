// Package snapshot serializes the document to and from the storage backend.
// The document is one opaque JSON blob under a fixed key; a missing or
// unparsable blob and an absent key are indistinguishable to callers, both
// yielding the fallback.
package snapshot

import (
	"encoding/json"
	"time"

	"github.com/pkeller/tocedit/internal/errors"
	"github.com/pkeller/tocedit/internal/storage"
	"github.com/pkeller/tocedit/internal/toc"
)

// DefaultKey is the fixed storage key for the persisted document.
const DefaultKey = "theory_of_change"

// Encode serializes the document.
func Encode(doc toc.Document) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a serialized document.
func Decode(blob string) (toc.Document, error) {
	var doc toc.Document
	if err := json.Unmarshal([]byte(blob), &doc); err != nil {
		return toc.Document{}, err
	}
	return doc, nil
}

// Save stamps the document with now and writes it under key, overwriting
// any prior snapshot. Storage failures come back as a persistence-failure
// error; the caller must not clear its dirty state unless Save returns nil.
func Save(store storage.Store, key string, doc toc.Document, now time.Time) (toc.Document, error) {
	doc = doc.Clone()
	doc.Meta.SavedAt = now.UTC().Format(time.RFC3339)
	blob, err := Encode(doc)
	if err != nil {
		return toc.Document{}, errors.NewInternal(err)
	}
	if err := store.Set(key, blob); err != nil {
		return toc.Document{}, errors.NewPersistenceFailure(err)
	}
	return doc, nil
}

// Load reads the snapshot under key. An absent key, a failing read, or an
// unparsable blob all yield fallback; loading never raises.
func Load(store storage.Store, key string, fallback toc.Document) toc.Document {
	blob, ok, err := store.Get(key)
	if err != nil || !ok {
		return fallback
	}
	doc, err := Decode(blob)
	if err != nil {
		return fallback
	}
	return doc
}
