package interner

import (
	"slices"
	"sync"

	"golang.org/x/exp/constraints"
)

// Sync is an Interner guarded by a single lock, for use from multiple goroutines.
// The forward table, reverse table and arena are always updated together.
type Sync[I constraints.Integer] struct {
	mu sync.RWMutex
	in *Interner[I]
}

// NewSync creates an empty Sync interner.
func NewSync[I constraints.Integer](opts ...Option) *Sync[I] {
	return &Sync[I]{in: New[I](opts...)}
}

// Intern returns the identifier for text, assigning one if needed.
func (s *Sync[I]) Intern(text string) (I, error) {
	s.mu.RLock()
	id, ok := s.in.Lookup(text)
	s.mu.RUnlock()
	if ok {
		return id, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.Intern(text)
}

// InternBytes is Intern for byte input.
func (s *Sync[I]) InternBytes(text []byte) (I, error) {
	s.mu.RLock()
	id, ok := s.in.forward[string(text)]
	s.mu.RUnlock()
	if ok {
		return id, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.in.InternBytes(text)
}

// Lookup returns the identifier for text without interning it.
func (s *Sync[I]) Lookup(text string) (I, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Lookup(text)
}

// Resolve returns the text that produced id.
func (s *Sync[I]) Resolve(id I) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Resolve(id)
}

// Len returns the number of distinct strings.
func (s *Sync[I]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Len()
}

// Stats returns a snapshot of the interner's size.
func (s *Sync[I]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.in.Stats()
}

// Snapshot returns every interned string in identifier order.
func (s *Sync[I]) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.in.reverse)
}
