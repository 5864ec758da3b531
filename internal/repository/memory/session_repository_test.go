package memory

import (
	"testing"

	"ai-schemadesign-be/internal/entity"
	"ai-schemadesign-be/pkg/store"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	repo := NewSessionRepository()

	if _, found := repo.Get("missing"); found {
		t.Fatal("expected miss for unknown session")
	}

	session := store.NewSession("abc")
	session.Append(entity.ConversationMessage{Id: "m1", Role: "user", Text: "hola"})
	repo.Save(session)

	got, found := repo.Get("abc")
	if !found {
		t.Fatal("expected session to be found after Save")
	}
	if len(got.History) != 1 || got.History[0].Text != "hola" {
		t.Fatalf("unexpected history: %+v", got.History)
	}

	repo.Delete("abc")
	if _, found := repo.Get("abc"); found {
		t.Fatal("expected session to be gone after Delete")
	}
}

func TestSessionRepository_TryBeginTurn(t *testing.T) {
	repo := NewSessionRepository()

	session, err := repo.TryBeginTurn("chat-1")
	if err != nil {
		t.Fatalf("first TryBeginTurn: %v", err)
	}
	if !session.Busy {
		t.Fatal("expected session to be marked busy")
	}
	if session.Schemas[store.DefaultDialect] != "" {
		t.Fatalf("expected default dialect seeded empty, got %q", session.Schemas[store.DefaultDialect])
	}

	if _, err := repo.TryBeginTurn("chat-1"); err != store.ErrTurnInProgress {
		t.Fatalf("expected ErrTurnInProgress, got %v", err)
	}

	repo.EndTurn("chat-1")
	if _, err := repo.TryBeginTurn("chat-1"); err != nil {
		t.Fatalf("TryBeginTurn after EndTurn: %v", err)
	}
}

func TestSessionRepository_EndTurnMissingSession(t *testing.T) {
	repo := NewSessionRepository()
	repo.EndTurn("never-existed") // must not panic
}

func TestSessionRepository_Rekey(t *testing.T) {
	repo := NewSessionRepository()

	session := store.NewSession(store.ChatRefNew)
	session.Append(entity.ConversationMessage{Id: "m1", Role: "user", Text: "crea una tabla"})
	repo.Save(session)

	repo.Rekey(store.ChatRefNew, "permanent-id")

	if _, found := repo.Get(store.ChatRefNew); found {
		t.Fatal("expected old key to be removed")
	}
	got, found := repo.Get("permanent-id")
	if !found {
		t.Fatal("expected session under new key")
	}
	if got.ChatId != "permanent-id" {
		t.Fatalf("ChatId not updated, got %q", got.ChatId)
	}
	if len(got.History) != 1 {
		t.Fatalf("history lost on rekey: %+v", got.History)
	}

	repo.Rekey("never-existed", "whatever") // no-op, must not panic
}
