package state

import (
	"sort"
	"sync"

	"github.com/coolify-tools/docker-status-monitor/internal/domain"
)

// Entry is the last-observed record for one tracked container. Entries are
// replaced wholesale on every cycle, never mutated in place.
type Entry struct {
	LastStatus domain.Status
	Snapshot   domain.ContainerSnapshot
}

// MemoryStore holds the tracked container entries between cycles. It lives
// for the process lifetime only; nothing is persisted across restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
	}
}

// Get returns the entry for a container id, if tracked.
func (s *MemoryStore) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	return entry, ok
}

// ReplaceAll swaps the store contents for the given entries. Ids absent
// from the new set are gone after the call.
func (s *MemoryStore) ReplaceAll(entries map[string]Entry) {
	next := make(map[string]Entry, len(entries))
	for id, entry := range entries {
		next[id] = entry
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = next
}

// Ids returns the tracked container ids in ascending order.
func (s *MemoryStore) Ids() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of tracked containers.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
