package store

import (
	"testing"

	"github.com/google/uuid"

	"ai-schemadesign-be/internal/entity"
)

func TestResolveChatRef(t *testing.T) {
	ref, err := ResolveChatRef(ChatRefNew)
	if err != nil {
		t.Fatalf("resolve %q: %v", ChatRefNew, err)
	}
	if !ref.Unsaved {
		t.Fatal("expected Unsaved for the new sentinel")
	}
	if ref.Id == uuid.Nil {
		t.Fatal("expected a minted id for the new sentinel")
	}

	other, err := ResolveChatRef(ChatRefNew)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if other.Id == ref.Id {
		t.Fatal("each resolution of the sentinel must mint a distinct id")
	}

	existing := uuid.New()
	ref, err = ResolveChatRef(existing.String())
	if err != nil {
		t.Fatalf("resolve existing: %v", err)
	}
	if ref.Unsaved {
		t.Fatal("existing id must not be flagged Unsaved")
	}
	if ref.Id != existing {
		t.Fatalf("id mismatch: got %s want %s", ref.Id, existing)
	}

	if _, err := ResolveChatRef("garbage"); err == nil {
		t.Fatal("expected error for a malformed id")
	}
}

func TestNewSessionSeedsDefaultDialect(t *testing.T) {
	s := NewSession("abc")

	if s.ChatId != "abc" {
		t.Fatalf("unexpected chat id %q", s.ChatId)
	}
	if got, ok := s.Schemas[DefaultDialect]; !ok || got != "" {
		t.Fatalf("expected empty default dialect entry, got %q (present=%v)", got, ok)
	}
	if len(s.History) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(s.History))
	}

	s.Append(entity.ConversationMessage{Id: "m1", Role: "user", Text: "hola"})
	s.Append(entity.ConversationMessage{Id: "m2", Role: "model", Text: "hola!"})
	if len(s.History) != 2 || s.History[0].Id != "m1" || s.History[1].Id != "m2" {
		t.Fatalf("append order broken: %+v", s.History)
	}
}

func TestIsSupportedDialect(t *testing.T) {
	tests := []struct {
		dialect string
		want    bool
	}{
		{DialectSQL, true},
		{DialectMongo, true},
		{"oracle", false},
		{"", false},
		{"SQL", false},
	}
	for _, tt := range tests {
		if got := IsSupportedDialect(tt.dialect); got != tt.want {
			t.Errorf("IsSupportedDialect(%q) = %v, want %v", tt.dialect, got, tt.want)
		}
	}
}
