// Package journal stores free-form reflections a user writes between
// conversations and decorates each entry with a model-generated
// reflection and mood tags.
package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mindflow/sanctuary/internal/domain"
	"github.com/mindflow/sanctuary/internal/observability"
)

type Service struct {
	store    domain.JournalStore
	analyzer domain.JournalAnalyzer
	timeout  time.Duration
	now      func() time.Time
}

func NewService(store domain.JournalStore, analyzer domain.JournalAnalyzer, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Service{
		store:    store,
		analyzer: analyzer,
		timeout:  timeout,
		now:      time.Now,
	}
}

type AddEntryInput struct {
	SessionID domain.SessionID
	Text      string
}

// AddEntry saves a journal entry. The reflection is best-effort: if the
// analyzer is unreachable the entry is stored bare rather than rejected.
func (s *Service) AddEntry(ctx context.Context, in AddEntryInput) (*domain.JournalEntry, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("journal: entry text is empty")
	}

	entry := &domain.JournalEntry{
		ID:        domain.JournalEntryID(uuid.NewString()),
		SessionID: in.SessionID,
		CreatedAt: s.now(),
		Text:      text,
	}

	reflectCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	reflection, moods, err := s.analyzer.Reflect(reflectCtx, text)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("journal reflection unavailable, storing entry bare", "error", err)
	} else {
		entry.Reflection = reflection
		entry.Moods = moods
	}

	if err := s.store.AppendJournalEntry(entry); err != nil {
		return nil, fmt.Errorf("journal: saving entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns the most recent entries, newest first. A limit of
// zero or less returns all of them.
func (s *Service) ListEntries(_ context.Context, limit int) ([]*domain.JournalEntry, error) {
	entries, err := s.store.ListJournalEntries(limit)
	if err != nil {
		return nil, fmt.Errorf("journal: listing entries: %w", err)
	}
	return entries, nil
}
