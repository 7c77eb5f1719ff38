package llm

import (
	"context"
	"fmt"

	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/domain/entity"
	"agent-genesis/internal/infrastructure/prompts"
)

var _ output.IntentExtractor = (*IntentExtractor)(nil)

// IntentExtractor turns a raw instruction into a structured intent via one
// model call, validating the payload at the boundary.
type IntentExtractor struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func NewIntentExtractor(llm output.LLMPort, logger output.LoggerPort) *IntentExtractor {
	return &IntentExtractor{llm: llm, logger: logger}
}

type intentPayload struct {
	Role            string   `json:"role"`
	Capabilities    []string `json:"capabilities"`
	Constraints     []string `json:"constraints"`
	SuccessCriteria string   `json:"success_criteria"`
	Complexity      string   `json:"complexity"`
}

func (p *intentPayload) validate() error {
	if p.Role == "" {
		return fmt.Errorf("missing role")
	}
	if len(p.Capabilities) == 0 {
		return fmt.Errorf("missing capabilities")
	}
	if p.SuccessCriteria == "" {
		return fmt.Errorf("missing success_criteria")
	}
	switch entity.Complexity(p.Complexity) {
	case entity.ComplexityLow, entity.ComplexityMedium, entity.ComplexityHigh:
	default:
		return fmt.Errorf("invalid complexity %q", p.Complexity)
	}
	return nil
}

func (e *IntentExtractor) Extract(ctx context.Context, instruction string) (*entity.Intent, error) {
	prompt, err := prompts.IntentPrompt(instruction)
	if err != nil {
		return nil, err
	}

	var payload intentPayload
	tokens, err := generateJSON(ctx, e.llm, e.logger, output.CompletionRequest{
		System:      prompts.IntentSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.0,
	}, &payload, payload.validate)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Intent extracted", "role", payload.Role, "complexity", payload.Complexity)

	return &entity.Intent{
		Role:            payload.Role,
		Capabilities:    payload.Capabilities,
		Constraints:     payload.Constraints,
		SuccessCriteria: payload.SuccessCriteria,
		Complexity:      entity.Complexity(payload.Complexity),
		Usage:           entity.Usage{Tokens: tokens},
	}, nil
}
