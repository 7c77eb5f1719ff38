package llm

import (
	"fmt"

	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/infrastructure/llm/ollamalocal"
	"agent-genesis/internal/infrastructure/llm/openrouter"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
)

type ProviderConfig struct {
	Provider string

	OpenRouterAPIKey string
	OpenRouterModel  string

	OllamaModel     string
	OllamaServerURL string
}

// NewProvider selects the completion backend. Unknown providers are a
// startup error, not a runtime fallback.
func NewProvider(cfg ProviderConfig) (output.LLMPort, error) {
	switch cfg.Provider {
	case "", ProviderOpenRouter:
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("openrouter provider requires an API key")
		}
		return openrouter.New(openrouter.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)), nil
	case ProviderOllama:
		return ollamalocal.New(ollamalocal.Config{
			Model:     cfg.OllamaModel,
			ServerURL: cfg.OllamaServerURL,
		})
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}
