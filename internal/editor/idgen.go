package editor

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator produces record identifiers. Identifiers are opaque, unique
// per document and never reused; the generator is injected so uniqueness
// does not depend on wall-clock resolution.
type IDGenerator interface {
	NewID() string
}

// ULIDGenerator issues lexicographically sortable ULIDs.
type ULIDGenerator struct {
	mu sync.Mutex
}

// NewULIDGenerator creates a ULID-backed generator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// NewID returns a fresh ULID string.
func (g *ULIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Sequence is a deterministic counter generator for tests and seed data.
type Sequence struct {
	Prefix string
	n      int
}

// NewID returns Prefix followed by the next counter value.
func (s *Sequence) NewID() string {
	s.n++
	return fmt.Sprintf("%s%d", s.Prefix, s.n)
}
