package storage

import (
	"sort"
	"sync"
)

// SavedStates holds encoded face snapshots by face ID while faces are torn
// down and rebuilt. Entries are consumed on read.
type SavedStates struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewSavedStates returns an empty bundle.
func NewSavedStates() *SavedStates {
	return &SavedStates{entries: make(map[string][]byte)}
}

// Put stores a copy of data under id, replacing any previous entry.
func (states *SavedStates) Put(id string, data []byte) {
	states.mu.Lock()
	defer states.mu.Unlock()
	states.entries[id] = append([]byte(nil), data...)
}

// Take removes and returns the entry for id.
func (states *SavedStates) Take(id string) ([]byte, bool) {
	states.mu.Lock()
	defer states.mu.Unlock()
	data, ok := states.entries[id]
	if ok {
		delete(states.entries, id)
	}
	return data, ok
}

// IDs returns the stored face IDs in sorted order.
func (states *SavedStates) IDs() []string {
	states.mu.Lock()
	defer states.mu.Unlock()
	ids := make([]string, 0, len(states.entries))
	for id := range states.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
