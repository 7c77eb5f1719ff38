package llm

import (
	"context"
	"fmt"
	"strings"

	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/domain/entity"
	"agent-genesis/internal/infrastructure/prompts"
)

var _ output.AgentProbe = (*AgentProbe)(nil)

// AgentProbe is the reasoner role: the agent under test answers one probe
// question using its own instruction template and selected temperature.
type AgentProbe struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func NewAgentProbe(llm output.LLMPort, logger output.LoggerPort) *AgentProbe {
	return &AgentProbe{llm: llm, logger: logger}
}

func (p *AgentProbe) Answer(ctx context.Context, cfg *entity.AgentConfiguration, q entity.ProbeQuestion) (string, error) {
	prompt, err := prompts.ProbePrompt(q)
	if err != nil {
		return "", err
	}

	resp, err := p.llm.Complete(ctx, output.CompletionRequest{
		System:      cfg.Instruction,
		Prompt:      prompt,
		Temperature: cfg.Model.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("probe answer failed: %w", err)
	}

	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		return "", fmt.Errorf("empty probe answer")
	}

	p.logger.Debug("Probe answered", "agent_id", cfg.ID, "difficulty", q.Difficulty, "answer_len", len(answer))
	return answer, nil
}
