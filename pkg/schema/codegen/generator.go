package codegen

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-schemadesign-be/internal/constant"
	"ai-schemadesign-be/pkg/llm"
)

// Generator converts a diagram document into a target script for a named
// dialect. The return contract is dialect-agnostic so new dialects only
// touch configuration, not the orchestrator.
type Generator struct {
	logger *log.Logger
}

func NewGenerator(logger *log.Logger) *Generator {
	return &Generator{logger: logger}
}

func (g *Generator) Generate(ctx context.Context, provider llm.LLMProvider, diagram, dialect string) (string, error) {
	prompt := fmt.Sprintf(constant.GenerateScriptPromptV1, dialect, diagram)

	script, err := provider.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("script generation call failed for dialect %s: %w", dialect, err)
	}

	script = CleanScript(script)
	g.logger.Printf("[CODEGEN] Generated %s script of %d bytes", dialect, len(script))
	return script, nil
}

// CleanScript strips markdown fences and normalizes doubled statement
// terminators (a known generation artifact) to terminator+newline. Textual
// cleanup only, no parsing.
func CleanScript(script string) string {
	script = strings.TrimSpace(script)
	script = strings.TrimPrefix(script, "```sql")
	script = strings.TrimPrefix(script, "```javascript")
	script = strings.TrimPrefix(script, "```")
	script = strings.TrimSuffix(script, "```")
	script = strings.TrimSpace(script)
	return strings.ReplaceAll(script, ";;", ";\n")
}
