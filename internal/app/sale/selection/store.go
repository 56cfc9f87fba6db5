package selection

import (
	"sort"
	"sync"
)

// Store is the session-lifetime set of selected item identifiers.
// All mutation goes through Toggle, SelectAll and Clear; reads are safe from any goroutine.
type Store struct {
	mu       sync.RWMutex
	selected map[string]struct{}
}

// NewStore returns an empty selection.
func NewStore() *Store {
	return &Store{selected: make(map[string]struct{})}
}

// Toggle flips membership of id and reports whether it is selected afterwards.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false
	}
	s.selected[id] = struct{}{}
	return true
}

// SelectAll replaces the selection with exactly ids.
func (s *Store) SelectAll(ids []string) {
	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}

	s.mu.Lock()
	s.selected = next
	s.mu.Unlock()
}

// Clear empties the selection.
func (s *Store) Clear() {
	s.mu.Lock()
	s.selected = make(map[string]struct{})
	s.mu.Unlock()
}

func (s *Store) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[id]
	return ok
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

// IDs returns the selected identifiers sorted, so callers get a stable order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	s.mu.RUnlock()

	sort.Strings(out)
	return out
}
