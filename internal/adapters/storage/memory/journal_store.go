package memory

import (
	"sync"

	"github.com/mindflow/sanctuary/internal/domain"
)

type JournalStore struct {
	mu      sync.RWMutex
	entries []*domain.JournalEntry
}

func NewJournalStore() *JournalStore {
	return &JournalStore{}
}

func (s *JournalStore) AppendJournalEntry(entry *domain.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	return nil
}

// ListJournalEntries returns the most recent entries, newest first.
func (s *JournalStore) ListJournalEntries(limit int) ([]*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]*domain.JournalEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}
