package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-schemadesign-be/pkg/llm"
)

func TestChat(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []geminiCandidate{
				{Content: &geminiContent{Parts: []geminiPart{{Text: "ok"}}, Role: "model"}},
			},
		})
	}))
	defer server.Close()

	p := NewGeminiProvider("test-key", "")
	p.BaseURL = server.URL

	got, err := p.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "hola"},
		{Role: "assistant", Content: "respuesta"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("response = %q, want ok", got)
	}
	if gotPath != "/models/"+defaultModel+":generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if len(gotBody.Contents) != 2 {
		t.Fatalf("sent %d contents, want 2", len(gotBody.Contents))
	}
	// assistant is not a Gemini role
	if gotBody.Contents[1].Role != "model" {
		t.Errorf("role = %q, want model", gotBody.Contents[1].Role)
	}
}

func TestChatNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewGeminiProvider("k", "")
	p.BaseURL = server.URL

	if _, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "x"}}); err == nil {
		t.Fatal("want error on non-200 status")
	}
}

func TestChatEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiResponse{})
	}))
	defer server.Close()

	p := NewGeminiProvider("k", "")
	p.BaseURL = server.URL

	if _, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "x"}}); err == nil {
		t.Fatal("want error on empty candidate list")
	}
}
