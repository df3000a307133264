package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/mindflow/sanctuary/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	sess := &domain.Session{ID: "s1", CreatedAt: time.Now()}

	if err := store.CreateSession(sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := store.CreateSession(sess); err == nil {
		t.Fatal("expected error for duplicate session id")
	}

	got, err := store.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.ID != "s1" {
		t.Errorf("id = %q", got.ID)
	}

	if _, err := store.GetSession("missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	if err := store.UpdateSession(&domain.Session{ID: "missing"}); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("update err = %v, want ErrSessionNotFound", err)
	}
}

func TestJournalStoreNewestFirstWithLimit(t *testing.T) {
	store := NewJournalStore()
	for _, id := range []string{"a", "b", "c"} {
		if err := store.AppendJournalEntry(&domain.JournalEntry{ID: domain.JournalEntryID(id)}); err != nil {
			t.Fatalf("AppendJournalEntry: %v", err)
		}
	}

	all, err := store.ListJournalEntries(0)
	if err != nil {
		t.Fatalf("ListJournalEntries: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" || all[2].ID != "a" {
		t.Errorf("order = %v, want newest first", ids(all))
	}

	limited, _ := store.ListJournalEntries(2)
	if len(limited) != 2 || limited[0].ID != "c" {
		t.Errorf("limited = %v", ids(limited))
	}

	over, _ := store.ListJournalEntries(10)
	if len(over) != 3 {
		t.Errorf("over-limit list returned %d entries", len(over))
	}
}

func ids(entries []*domain.JournalEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = string(e.ID)
	}
	return out
}
