package llm

import (
	"testing"

	"google.golang.org/genai"

	"github.com/mindflow/sanctuary/internal/domain"
)

func TestHistoryContentsRoleMapping(t *testing.T) {
	history := []*domain.ConversationTurn{
		{Role: domain.RoleAssistant, Text: "How are you feeling?"},
		{Role: domain.RoleUser, Text: "A bit overwhelmed."},
	}

	contents := historyContents(history)
	if len(contents) != 2 {
		t.Fatalf("got %d contents, want 2", len(contents))
	}
	if contents[0].Role != genai.RoleModel {
		t.Errorf("assistant turn role = %q, want %q", contents[0].Role, genai.RoleModel)
	}
	if contents[1].Role != genai.RoleUser {
		t.Errorf("user turn role = %q, want %q", contents[1].Role, genai.RoleUser)
	}
	if len(contents[1].Parts) != 1 || contents[1].Parts[0].Text != "A bit overwhelmed." {
		t.Errorf("user turn parts = %+v", contents[1].Parts)
	}
}

func TestHistoryContentsEmpty(t *testing.T) {
	if got := historyContents(nil); got != nil {
		t.Fatalf("expected nil for empty history, got %v", got)
	}
}
