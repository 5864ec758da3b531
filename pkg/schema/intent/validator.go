package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/pkg/llm"
)

// Result is the outcome of the in-domain check. A rejection is a content
// decision, not an error; Message is ready to be shown as an assistant turn.
type Result struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
}

// Validator classifies whether an utterance belongs to schema design before
// the orchestrator spends a full synthesis call on it.
type Validator struct {
	logger *log.Logger
}

func NewValidator(logger *log.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate is a read-only classification. A transport failure surfaces as an
// error so the caller can show a transient-error message instead of a
// content rejection.
func (v *Validator) Validate(ctx context.Context, provider llm.LLMProvider, utterance string) (*Result, error) {
	prompt := fmt.Sprintf(constant.ValidateIntentPromptV1, utterance)

	response, err := provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil, fmt.Errorf("intent validation call failed: %w", err)
	}

	cleaned := stripMarkdownFences(response)

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		// A model that cannot follow the JSON contract should not cost the
		// user their turn; let synthesis decide what to do with the input.
		v.logger.Printf("[WARN] Intent response not parseable, accepting turn: %v | raw: %s", err, cleaned)
		return &Result{IsValid: true}, nil
	}

	return &result, nil
}

func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
