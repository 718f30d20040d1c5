package storage

import "sync"

// Memory is an in-memory Store suitable for tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string

	// FailSet and FailDelete, when true, make every Set or Delete return an
	// error. Tests use them to exercise the persistence-failure paths.
	FailSet    bool
	FailDelete bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value for key and whether the key exists.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set writes the value for key.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet {
		return errSetUnavailable
	}
	m.data[key] = value
	return nil
}

// Delete removes the key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDelete {
		return errDeleteUnavailable
	}
	delete(m.data, key)
	return nil
}

// Close is a no-op for the memory driver.
func (m *Memory) Close() error { return nil }
