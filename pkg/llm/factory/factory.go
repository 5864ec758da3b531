package factory

import (
	"fmt"

	"ai-schemadesign-be/pkg/llm"
	"ai-schemadesign-be/pkg/llm/gemini"
	"ai-schemadesign-be/pkg/llm/ollama"
)

// ProviderFactory builds an LLMProvider for a given API key. The key is
// resolved per turn from credential storage, so providers are constructed
// per turn rather than once at bootstrap.
type ProviderFactory interface {
	NewProvider(apiKey string) llm.LLMProvider
}

type providerFactory struct {
	providerType string
	modelName    string
	baseURL      string
}

func NewProviderFactory(providerType, modelName, baseURL string) (ProviderFactory, error) {
	switch providerType {
	case "gemini", "ollama":
		return &providerFactory{
			providerType: providerType,
			modelName:    modelName,
			baseURL:      baseURL,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

func (f *providerFactory) NewProvider(apiKey string) llm.LLMProvider {
	switch f.providerType {
	case "ollama":
		baseURL := f.baseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, f.modelName)
	default:
		return gemini.NewGeminiProvider(apiKey, f.modelName)
	}
}
