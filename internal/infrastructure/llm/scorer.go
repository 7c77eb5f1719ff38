package llm

import (
	"context"
	"fmt"

	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/domain/entity"
	"agent-genesis/internal/infrastructure/prompts"
)

var _ output.ResponseScorer = (*ResponseScorer)(nil)

// ResponseScorer judges an answer against the expected one via an evaluator
// model call.
type ResponseScorer struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func NewResponseScorer(llm output.LLMPort, logger output.LoggerPort) *ResponseScorer {
	return &ResponseScorer{llm: llm, logger: logger}
}

type scorePayload struct {
	Correct   bool    `json:"correct"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

func (p *scorePayload) validate() error {
	if p.Score < 0 || p.Score > 1 {
		return fmt.Errorf("score %v outside [0,1]", p.Score)
	}
	return nil
}

func (s *ResponseScorer) Score(ctx context.Context, q entity.ProbeQuestion, answer string) (*entity.ProbeScore, error) {
	prompt, err := prompts.ScorerPrompt(q, answer)
	if err != nil {
		return nil, err
	}

	var payload scorePayload
	_, err = generateJSON(ctx, s.llm, s.logger, output.CompletionRequest{
		System:      prompts.ScorerSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.0,
	}, &payload, payload.validate)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Answer scored", "correct", payload.Correct, "score", payload.Score)
	return &entity.ProbeScore{Correct: payload.Correct, Score: payload.Score}, nil
}
