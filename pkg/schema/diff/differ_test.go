package diff

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-schemadesign-be/internal/constant"
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

func TestDiffUsesBothDiagrams(t *testing.T) {
	d := NewDiffer(log.New(io.Discard, "", 0))
	provider := &stubProvider{response: "Se agregó la entidad posts."}

	summary, err := d.Diff(context.Background(), provider, `{"v":1}`, `{"v":2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Se agregó la entidad posts." {
		t.Errorf("summary = %q, want verbatim model output", summary)
	}
	if len(provider.prompts) != 1 {
		t.Fatalf("model calls = %d, want exactly 1", len(provider.prompts))
	}
	if !strings.Contains(provider.prompts[0], `{"v":1}`) || !strings.Contains(provider.prompts[0], `{"v":2}`) {
		t.Errorf("prompt missing a diagram version: %s", provider.prompts[0])
	}
}

func TestDiffEmptyModelOutputFallsBack(t *testing.T) {
	d := NewDiffer(log.New(io.Discard, "", 0))

	summary, err := d.Diff(context.Background(), &stubProvider{response: "  \n"}, "{}", "{}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != constant.SummaryNoChanges {
		t.Errorf("summary = %q, want fixed no-changes text", summary)
	}
}

func TestDiffPropagatesTransportError(t *testing.T) {
	d := NewDiffer(log.New(io.Discard, "", 0))
	transportErr := errors.New("dns failure")

	_, err := d.Diff(context.Background(), &stubProvider{err: transportErr}, "{}", "{}")
	if !errors.Is(err, transportErr) {
		t.Fatalf("want transport error, got %v", err)
	}
}
