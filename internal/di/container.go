package di

import (
	"fmt"

	"agent-genesis/internal/application/port/input"
	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/infrastructure/artifact"
	"agent-genesis/internal/infrastructure/llm"
	"agent-genesis/internal/infrastructure/logger"
	"agent-genesis/internal/usecase/configbuilder"
	"agent-genesis/internal/usecase/orchestrator"
	"agent-genesis/internal/usecase/qualitygate"
	"agent-genesis/internal/usecase/retryplanner"
)

type Container struct {
	Builder input.AgentBuilder
	Logger  output.LoggerPort
}

type Config struct {
	Provider         string
	OpenRouterAPIKey string
	OpenRouterModel  string
	OllamaModel      string
	OllamaServerURL  string
	ArtifactDir      string
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter("genesis")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	provider, err := llm.NewProvider(llm.ProviderConfig{
		Provider:         cfg.Provider,
		OpenRouterAPIKey: cfg.OpenRouterAPIKey,
		OpenRouterModel:  cfg.OpenRouterModel,
		OllamaModel:      cfg.OllamaModel,
		OllamaServerURL:  cfg.OllamaServerURL,
	})
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	gate := qualitygate.New(
		llm.NewQuestionGenerator(provider, log),
		llm.NewAgentProbe(provider, log),
		llm.NewResponseScorer(provider, log),
		log,
	)

	uc := orchestrator.New(
		llm.NewIntentExtractor(provider, log),
		configbuilder.New(log),
		llm.NewModelAdvisor(provider, log),
		gate,
		retryplanner.New(),
		artifact.NewEmitter(cfg.ArtifactDir, log),
		log,
	)

	return &Container{
		Builder: uc,
		Logger:  log,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
