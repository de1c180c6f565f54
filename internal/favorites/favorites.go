// Package favorites tracks the dogs the user has marked as candidates.
// The set is independent of the catalog: ids survive filter and page
// changes and are only dropped on logout.
package favorites

import (
	"slices"
	"sync"
)

// Set is a concurrency-safe set of dog ids.
type Set struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// New returns an empty set.
func New() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// Toggle adds id when absent and removes it when present. It reports
// whether id is a favorite afterwards.
func (s *Set) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains reports whether id is a favorite.
func (s *Set) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the favorites sorted.
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of favorites.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Clear removes every favorite.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.ids)
}
