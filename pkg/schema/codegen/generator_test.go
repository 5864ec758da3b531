package codegen

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-schemadesign-be/pkg/llm"
)

type stubProvider struct {
	response string
	err      error
	prompts  []string
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestCleanScript(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "doubled terminator normalized",
			input: "CREATE TABLE users (id INT);;CREATE TABLE posts (id INT);",
			want:  "CREATE TABLE users (id INT);\nCREATE TABLE posts (id INT);",
		},
		{
			name:  "every occurrence replaced",
			input: "A;;B;;C",
			want:  "A;\nB;\nC",
		},
		{
			name:  "sql fence stripped",
			input: "```sql\nCREATE TABLE t (id INT);\n```",
			want:  "CREATE TABLE t (id INT);",
		},
		{
			name:  "clean script untouched",
			input: "CREATE TABLE t (id INT);",
			want:  "CREATE TABLE t (id INT);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanScript(tt.input); got != tt.want {
				t.Errorf("CleanScript() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateAppliesCleanup(t *testing.T) {
	g := NewGenerator(log.New(io.Discard, "", 0))
	provider := &stubProvider{response: "```sql\nCREATE TABLE a (id INT);;CREATE TABLE b (id INT);\n```"}

	script, err := g.Generate(context.Background(), provider, `{"entities":[]}`, "sql")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(script, ";;") {
		t.Errorf("doubled terminator survived cleanup: %q", script)
	}
	if strings.Contains(script, "```") {
		t.Errorf("markdown fence survived cleanup: %q", script)
	}
	if len(provider.prompts) != 1 || !strings.Contains(provider.prompts[0], "sql script") {
		t.Errorf("dialect not threaded into the prompt: %v", provider.prompts)
	}
}

func TestGeneratePropagatesTransportError(t *testing.T) {
	g := NewGenerator(log.New(io.Discard, "", 0))
	transportErr := errors.New("timeout")

	_, err := g.Generate(context.Background(), &stubProvider{err: transportErr}, "{}", "sql")
	if !errors.Is(err, transportErr) {
		t.Fatalf("want transport error, got %v", err)
	}
}
