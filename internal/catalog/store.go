package catalog

import (
	"sync"

	"github.com/google/uuid"
)

// Store is an in-memory item registry. Editor sessions are not persisted,
// so neither is the catalog.
type Store struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Item
	order []uuid.UUID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{items: make(map[uuid.UUID]*Item)}
}

// Add registers an item.
func (s *Store) Add(it *Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[it.ID]; !ok {
		s.order = append(s.order, it.ID)
	}
	s.items[it.ID] = it
}

// Get returns the item with the given id, or nil.
func (s *Store) Get(id uuid.UUID) *Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[id]
}

// List returns all items in insertion order.
func (s *Store) List() []*Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}
