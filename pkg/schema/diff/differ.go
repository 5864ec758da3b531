package diff

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/pkg/llm"
)

// Differ produces a human-readable summary of what changed between two
// diagram documents. It is the most expensive model call in a turn; the
// orchestrator only invokes it once both diagrams exist and differ by value.
type Differ struct {
	logger *log.Logger
}

func NewDiffer(logger *log.Logger) *Differ {
	return &Differ{logger: logger}
}

func (d *Differ) Diff(ctx context.Context, provider llm.LLMProvider, previous, next string) (string, error) {
	prompt := fmt.Sprintf(constant.DiffDiagramsPromptV1, previous, next)

	summary, err := provider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("diagram diff call failed: %w", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		// A silent model still owes the user an explanation of their turn.
		summary = constant.SummaryNoChanges
	}
	d.logger.Printf("[DIFF] Summary of %d bytes", len(summary))
	return summary, nil
}
