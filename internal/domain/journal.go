package domain

import "time"

// JournalEntryID identifies a journal entry.
type JournalEntryID string

// JournalEntry is one free-writing entry plus the AI reflection generated
// for it. Like everything else in the product, entries live only in memory
// for the lifetime of the process.
type JournalEntry struct {
	ID        JournalEntryID `json:"id"`
	SessionID SessionID      `json:"session_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Text is what the user wrote.
	Text string `json:"text"`

	// Reflection is the model's gentle reading of the entry. When the
	// analysis call fails it holds a fixed supportive fallback.
	Reflection string `json:"reflection"`

	// Mood labels the model picked out of the entry, if any.
	Moods []string `json:"moods,omitempty"`
}

// JournalStore defines the minimum operations for the in-memory journal.
type JournalStore interface {
	AppendJournalEntry(entry *JournalEntry) error
	ListJournalEntries(limit int) ([]*JournalEntry, error)
}
