// Package store keeps per-user pending drafts. State is process-lifetime
// only: a restart drops every half-answered conversation, which is the
// documented contract.
package store

import (
	"sync"

	"github.com/mfcoelho/finbot-backend/internal/models"
)

// PendingStore holds at most one incomplete draft per user. Writes are
// last-write-wins; entries live until resolved or cancelled, with no TTL.
type PendingStore struct {
	mu     sync.RWMutex
	drafts map[string]models.Draft
}

func NewPendingStore() *PendingStore {
	return &PendingStore{
		drafts: make(map[string]models.Draft),
	}
}

// Get returns a copy of the user's pending draft, if any.
func (s *PendingStore) Get(userID string) (models.Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[userID]
	return draft, ok
}

func (s *PendingStore) Set(userID string, draft models.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[userID] = draft
}

func (s *PendingStore) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
}
