package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	memstore "github.com/mindflow/sanctuary/internal/adapters/storage/memory"
)

type reflectFunc func(ctx context.Context, text string) (string, []string, error)

func (f reflectFunc) Reflect(ctx context.Context, text string) (string, []string, error) {
	return f(ctx, text)
}

func TestAddEntryWithReflection(t *testing.T) {
	analyzer := reflectFunc(func(_ context.Context, text string) (string, []string, error) {
		return "That sounds like a lot to carry.", []string{"tired", "hopeful"}, nil
	})
	svc := NewService(memstore.NewJournalStore(), analyzer, time.Second)

	entry, err := svc.AddEntry(context.Background(), AddEntryInput{Text: "long day at work"})
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry id missing")
	}
	if entry.Reflection == "" || len(entry.Moods) != 2 {
		t.Errorf("reflection not attached: %+v", entry)
	}
}

func TestAddEntrySurvivesAnalyzerFailure(t *testing.T) {
	analyzer := reflectFunc(func(context.Context, string) (string, []string, error) {
		return "", nil, errors.New("model unavailable")
	})
	store := memstore.NewJournalStore()
	svc := NewService(store, analyzer, time.Second)

	entry, err := svc.AddEntry(context.Background(), AddEntryInput{Text: "writing anyway"})
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if entry.Reflection != "" {
		t.Errorf("reflection = %q, want empty on failure", entry.Reflection)
	}

	stored, err := store.ListJournalEntries(0)
	if err != nil {
		t.Fatalf("ListJournalEntries: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d entries, want 1", len(stored))
	}
}

func TestAddEntryRejectsEmptyText(t *testing.T) {
	svc := NewService(memstore.NewJournalStore(), reflectFunc(func(context.Context, string) (string, []string, error) {
		return "", nil, nil
	}), time.Second)

	if _, err := svc.AddEntry(context.Background(), AddEntryInput{Text: "  \n "}); err == nil {
		t.Fatal("expected error for empty entry")
	}
}

func TestListEntriesNewestFirst(t *testing.T) {
	analyzer := reflectFunc(func(context.Context, string) (string, []string, error) {
		return "noted", nil, nil
	})
	svc := NewService(memstore.NewJournalStore(), analyzer, time.Second)
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		if _, err := svc.AddEntry(ctx, AddEntryInput{Text: text}); err != nil {
			t.Fatalf("AddEntry(%q): %v", text, err)
		}
	}

	entries, err := svc.ListEntries(ctx, 2)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Text != "third" || entries[1].Text != "second" {
		t.Errorf("order = [%q %q], want newest first", entries[0].Text, entries[1].Text)
	}
}
