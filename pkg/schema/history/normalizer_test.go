package history

import (
	"fmt"
	"testing"

	"ai-schemadesign-be/internal/entity"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		messages  []entity.ConversationMessage
		wantLen   int
		wantRoles []string
	}{
		{
			name:     "nil history",
			messages: nil,
			wantLen:  0,
		},
		{
			name:     "empty history",
			messages: []entity.ConversationMessage{},
			wantLen:  0,
		},
		{
			name: "roles mapped and order preserved",
			messages: []entity.ConversationMessage{
				{Role: "user", Text: "first"},
				{Role: "model", Text: "second"},
				{Role: "user", Text: "third"},
			},
			wantLen:   3,
			wantRoles: []string{"user", "model", "user"},
		},
		{
			name: "unknown role defaults to user",
			messages: []entity.ConversationMessage{
				{Role: "assistant", Text: "hello"},
			},
			wantLen:   1,
			wantRoles: []string{"user"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.messages)

			if got == nil {
				t.Fatal("Normalize returned nil, want empty slice")
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			for i, role := range tt.wantRoles {
				if got[i].Role != role {
					t.Errorf("message %d role = %q, want %q", i, got[i].Role, role)
				}
			}
			for i := range got {
				if got[i].Content != tt.messages[len(tt.messages)-tt.wantLen+i].Text {
					t.Errorf("message %d content out of order", i)
				}
			}
		})
	}
}

func TestNormalizeDropsDiagramPayload(t *testing.T) {
	messages := []entity.ConversationMessage{
		{Role: "model", Text: "summary", Diagram: `{"entities":[]}`},
	}

	got := Normalize(messages)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Content != "summary" {
		t.Errorf("content = %q, want text only", got[0].Content)
	}
}

func TestNormalizeCapsWindow(t *testing.T) {
	messages := make([]entity.ConversationMessage, maxTurns+5)
	for i := range messages {
		messages[i] = entity.ConversationMessage{Role: "user", Text: fmt.Sprintf("msg-%d", i)}
	}

	got := Normalize(messages)

	if len(got) != maxTurns {
		t.Fatalf("len = %d, want %d", len(got), maxTurns)
	}
	// Most recent turns survive.
	if got[len(got)-1].Content != fmt.Sprintf("msg-%d", maxTurns+4) {
		t.Errorf("last message = %q, want the newest one", got[len(got)-1].Content)
	}
}
