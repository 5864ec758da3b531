package synth

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/pkg/llm"
)

// Synthesizer sends the normalized conversation plus the new utterance to
// the model and returns the resulting diagram document as raw text. It does
// not validate well-formedness; that is the differ's and generator's
// concern.
type Synthesizer struct {
	logger *log.Logger
}

func NewSynthesizer(logger *log.Logger) *Synthesizer {
	return &Synthesizer{logger: logger}
}

func (s *Synthesizer) Synthesize(
	ctx context.Context,
	provider llm.LLMProvider,
	normalizedHistory []llm.Message,
	utterance string,
) (string, error) {
	contents := make([]llm.Message, 0, len(normalizedHistory)+3)

	// Priming pair goes first so later turns cannot displace the output
	// contract.
	contents = append(contents,
		llm.Message{Role: llm.RoleUser, Content: constant.DiagramInitialUserPromptV1},
		llm.Message{Role: llm.RoleModel, Content: constant.DiagramInitialModelPromptV1},
	)
	contents = append(contents, normalizedHistory...)
	contents = append(contents, llm.Message{Role: llm.RoleUser, Content: utterance})

	response, err := provider.Chat(ctx, contents)
	if err != nil {
		return "", fmt.Errorf("diagram synthesis call failed: %w", err)
	}

	diagram := stripMarkdownFences(response)
	s.logger.Printf("[SYNTH] Produced diagram of %d bytes", len(diagram))
	return diagram, nil
}

func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
