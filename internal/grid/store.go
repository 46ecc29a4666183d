package grid

import (
	"sync/atomic"
)

// Store holds the current layout snapshot. Readers always observe a complete
// snapshot; publishing replaces the pointer.
type Store struct {
	current    atomic.Pointer[Layout]
	generation atomic.Uint64
}

// NewStore creates a store holding initial, which may be nil.
func NewStore(initial *Layout) *Store {
	s := &Store{}
	if initial != nil {
		s.Publish(initial)
	}
	return s
}

// Load returns the current snapshot, or nil before the first publish.
func (s *Store) Load() *Layout {
	return s.current.Load()
}

// Publish stamps l with the next generation and makes it current. l must not
// be modified afterwards.
func (s *Store) Publish(l *Layout) uint64 {
	gen := s.generation.Add(1)
	l.Generation = gen
	s.current.Store(l)
	return gen
}

// Generation returns the generation of the current snapshot.
func (s *Store) Generation() uint64 {
	if l := s.current.Load(); l != nil {
		return l.Generation
	}
	return 0
}
