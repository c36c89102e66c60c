package preview

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Documents are stored encoded so
// callers never share a Document with the store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores doc under sessionID, replacing any earlier document.
func (s *MemoryStore) Put(_ context.Context, sessionID string, doc *types.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.entries[sessionID] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Get returns the document for sessionID or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*types.Document, error) {
	s.mu.Lock()
	entry, ok := s.entries[sessionID]
	if ok && !s.now().Before(entry.expiresAt) {
		delete(s.entries, sessionID)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	var doc types.Document
	if err := json.Unmarshal(entry.data, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()
	return &doc, nil
}

// Delete removes the document for sessionID.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.entries)
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// sweep drops expired entries. Caller holds mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
