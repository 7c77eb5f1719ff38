package llm

import (
	"context"
	"fmt"

	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/domain/entity"
	"agent-genesis/internal/infrastructure/prompts"
)

var _ output.ModelAdvisor = (*ModelAdvisor)(nil)

// ModelAdvisor asks the model-of-models which execution parameters suit the
// configured agent.
type ModelAdvisor struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func NewModelAdvisor(llm output.LLMPort, logger output.LoggerPort) *ModelAdvisor {
	return &ModelAdvisor{llm: llm, logger: logger}
}

type advisorPayload struct {
	ModelName     string  `json:"model_name"`
	ContextWindow int     `json:"context_window"`
	Temperature   float32 `json:"temperature"`
	Reasoning     string  `json:"reasoning"`
	CostPer1K     float64 `json:"estimated_cost_per_1k_tokens"`
}

func (p *advisorPayload) validate() error {
	if p.ModelName == "" {
		return fmt.Errorf("missing model_name")
	}
	if p.ContextWindow <= 0 {
		return fmt.Errorf("context_window must be positive, got %d", p.ContextWindow)
	}
	if p.Temperature < 0 || p.Temperature > 1 {
		return fmt.Errorf("temperature %v outside [0,1]", p.Temperature)
	}
	if p.CostPer1K < 0 {
		return fmt.Errorf("negative cost estimate %v", p.CostPer1K)
	}
	return nil
}

func (a *ModelAdvisor) Recommend(ctx context.Context, cfg *entity.AgentConfiguration) (*entity.ModelParams, error) {
	prompt, err := prompts.AdvisorPrompt(cfg)
	if err != nil {
		return nil, err
	}

	var payload advisorPayload
	tokens, err := generateJSON(ctx, a.llm, a.logger, output.CompletionRequest{
		System:      prompts.AdvisorSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.0,
	}, &payload, payload.validate)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Model recommended", "model", payload.ModelName, "reasoning", payload.Reasoning)

	return &entity.ModelParams{
		Name:          payload.ModelName,
		ContextWindow: payload.ContextWindow,
		Temperature:   payload.Temperature,
		CostPer1K:     payload.CostPer1K,
		Reasoning:     payload.Reasoning,
		Usage:         entity.Usage{Tokens: tokens},
	}, nil
}
