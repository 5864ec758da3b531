package synth

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/pkg/llm"
)

type stubProvider struct {
	response string
	err      error
	history  []llm.Message
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.history = history
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func TestSynthesizeMessageLayout(t *testing.T) {
	s := NewSynthesizer(log.New(io.Discard, "", 0))
	provider := &stubProvider{response: `{"entities":[]}`}
	prior := []llm.Message{
		{Role: llm.RoleUser, Content: "quiero un blog"},
		{Role: llm.RoleModel, Content: "listo"},
	}

	diagram, err := s.Synthesize(context.Background(), provider, prior, "agrega comentarios")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diagram != `{"entities":[]}` {
		t.Errorf("diagram = %q", diagram)
	}

	// priming pair + prior history + new utterance
	if len(provider.history) != 5 {
		t.Fatalf("sent %d messages, want 5", len(provider.history))
	}
	if provider.history[0].Content != constant.DiagramInitialUserPromptV1 {
		t.Error("priming prompt is not the first message")
	}
	if provider.history[1].Role != llm.RoleModel {
		t.Error("priming acknowledgement is not a model turn")
	}
	last := provider.history[len(provider.history)-1]
	if last.Role != llm.RoleUser || last.Content != "agrega comentarios" {
		t.Errorf("last message = %+v, want the new utterance as a user turn", last)
	}
}

func TestSynthesizeStripsFences(t *testing.T) {
	s := NewSynthesizer(log.New(io.Discard, "", 0))
	provider := &stubProvider{response: "```json\n{\"entities\":[]}\n```"}

	diagram, err := s.Synthesize(context.Background(), provider, nil, "hola")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diagram != `{"entities":[]}` {
		t.Errorf("diagram = %q, fences not stripped", diagram)
	}
}

func TestSynthesizePropagatesTransportError(t *testing.T) {
	s := NewSynthesizer(log.New(io.Discard, "", 0))
	transportErr := errors.New("reset by peer")

	_, err := s.Synthesize(context.Background(), &stubProvider{err: transportErr}, nil, "hola")
	if !errors.Is(err, transportErr) {
		t.Fatalf("want transport error, got %v", err)
	}
}
