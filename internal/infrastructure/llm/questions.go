package llm

import (
	"context"
	"fmt"

	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/domain/entity"
	"agent-genesis/internal/infrastructure/prompts"
)

const questionCount = 5

var _ output.QuestionGenerator = (*QuestionGenerator)(nil)

// QuestionGenerator plays the challenger role: it asks the model for a
// fixed-size probe set spanning the three difficulty bands. A malformed or
// miscalibrated set retries the generation call before giving up.
type QuestionGenerator struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func NewQuestionGenerator(llm output.LLMPort, logger output.LoggerPort) *QuestionGenerator {
	return &QuestionGenerator{llm: llm, logger: logger}
}

type questionPayload struct {
	Question       string  `json:"question"`
	ExpectedAnswer string  `json:"expected_answer"`
	Difficulty     float64 `json:"difficulty"`
}

func (g *QuestionGenerator) Generate(ctx context.Context, cfg *entity.AgentConfiguration) ([]entity.ProbeQuestion, error) {
	prompt, err := prompts.QuestionsPrompt(cfg, questionCount)
	if err != nil {
		return nil, err
	}

	var payload []questionPayload
	validate := func() error {
		return validateQuestions(payload)
	}

	// Slight temperature for probe diversity; the verdict math downstream
	// is fully deterministic.
	_, err = generateJSON(ctx, g.llm, g.logger, output.CompletionRequest{
		System:      prompts.QuestionsSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.7,
	}, &payload, validate)
	if err != nil {
		return nil, err
	}

	questions := make([]entity.ProbeQuestion, 0, len(payload))
	for _, q := range payload {
		questions = append(questions, entity.ProbeQuestion{
			Text:           q.Question,
			ExpectedAnswer: q.ExpectedAnswer,
			Difficulty:     q.Difficulty,
		})
	}

	g.logger.Info("Probe questions generated", "agent_id", cfg.ID, "count", len(questions))
	return questions, nil
}

func validateQuestions(payload []questionPayload) error {
	if len(payload) != questionCount {
		return fmt.Errorf("expected %d questions, got %d", questionCount, len(payload))
	}

	bands := map[string]int{}
	for i, q := range payload {
		if q.Question == "" || q.ExpectedAnswer == "" {
			return fmt.Errorf("question %d missing text or expected answer", i+1)
		}
		band := entity.ProbeQuestion{Difficulty: q.Difficulty}.Band()
		if band == "" {
			return fmt.Errorf("question %d difficulty %.2f outside every band", i+1, q.Difficulty)
		}
		bands[band]++
	}
	for _, band := range []string{"easy", "medium", "hard"} {
		if bands[band] == 0 {
			return fmt.Errorf("no %s-band question in probe set", band)
		}
	}
	return nil
}
