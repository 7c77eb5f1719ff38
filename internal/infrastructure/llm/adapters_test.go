package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/domain/entity"
)

// recordingLLM captures the last request so tests can inspect the prompt
// wiring.
type recordingLLM struct {
	content string
	lastReq output.CompletionRequest
}

func (r *recordingLLM) Complete(ctx context.Context, req output.CompletionRequest) (*output.CompletionResponse, error) {
	r.lastReq = req
	return &output.CompletionResponse{Content: r.content, Tokens: 5}, nil
}

func TestIntentExtractor_Extract(t *testing.T) {
	llm := &fakeLLM{responses: []string{`{
		"role": "data_analyst",
		"capabilities": ["csv_processing", "statistics"],
		"constraints": ["must_use_python"],
		"success_criteria": "accurate summaries",
		"complexity": "medium"
	}`}}

	intent, err := NewIntentExtractor(llm, testLogger{}).Extract(context.Background(), "Create a data analyst agent")

	require.NoError(t, err)
	assert.Equal(t, "data_analyst", intent.Role)
	assert.Equal(t, []string{"csv_processing", "statistics"}, intent.Capabilities)
	assert.Equal(t, entity.ComplexityMedium, intent.Complexity)
	assert.Equal(t, 10, intent.Usage.Tokens)
}

func TestIntentExtractor_RejectsInvalidComplexity(t *testing.T) {
	bad := `{"role": "r", "capabilities": ["c"], "success_criteria": "s", "complexity": "extreme"}`
	llm := &fakeLLM{responses: []string{bad, bad, bad}}

	_, err := NewIntentExtractor(llm, testLogger{}).Extract(context.Background(), "Create a data analyst agent")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid complexity")
}

func TestIntentExtractor_RejectsSplitPayloads(t *testing.T) {
	// Neither reply is a complete intent; the retry loop must not stitch
	// the role of the first onto the capabilities of the second.
	first := `{"role": "data_analyst"}`
	second := `{"capabilities": ["csv"], "success_criteria": "ok", "complexity": "low"}`
	llm := &fakeLLM{responses: []string{first, second, second}}

	_, err := NewIntentExtractor(llm, testLogger{}).Extract(context.Background(), "Create a data analyst agent")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing role")
}

func TestIntentExtractor_RejectsMissingRole(t *testing.T) {
	bad := `{"capabilities": ["c"], "success_criteria": "s", "complexity": "low"}`
	llm := &fakeLLM{responses: []string{bad, bad, bad}}

	_, err := NewIntentExtractor(llm, testLogger{}).Extract(context.Background(), "Create a data analyst agent")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing role")
}

func TestModelAdvisor_Recommend(t *testing.T) {
	llm := &fakeLLM{responses: []string{`{
		"model_name": "openai/gpt-4o-mini",
		"context_window": 128000,
		"temperature": 0.2,
		"estimated_cost_per_1k_tokens": 0.00015,
		"reasoning": "cheap and capable for structured analysis"
	}`}}

	params, err := NewModelAdvisor(llm, testLogger{}).Recommend(context.Background(), &entity.AgentConfiguration{
		ID: "agent-1", Role: "data_analyst",
	})

	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", params.Name)
	assert.Equal(t, 128000, params.ContextWindow)
	assert.InDelta(t, 0.2, float64(params.Temperature), 1e-6)
}

func TestModelAdvisor_RejectsOutOfRangeTemperature(t *testing.T) {
	bad := `{"model_name": "m", "context_window": 1000, "temperature": 1.5, "estimated_cost_per_1k_tokens": 0.1}`
	llm := &fakeLLM{responses: []string{bad, bad, bad}}

	_, err := NewModelAdvisor(llm, testLogger{}).Recommend(context.Background(), &entity.AgentConfiguration{ID: "a"})

	require.Error(t, err)
}

func TestQuestionGenerator_Generate(t *testing.T) {
	llm := &fakeLLM{responses: []string{`[
		{"question": "q1", "expected_answer": "a1", "difficulty": 0.2},
		{"question": "q2", "expected_answer": "a2", "difficulty": 0.3},
		{"question": "q3", "expected_answer": "a3", "difficulty": 0.5},
		{"question": "q4", "expected_answer": "a4", "difficulty": 0.7},
		{"question": "q5", "expected_answer": "a5", "difficulty": 0.9}
	]`}}

	questions, err := NewQuestionGenerator(llm, testLogger{}).Generate(context.Background(), &entity.AgentConfiguration{
		ID: "agent-1", Role: "data_analyst", Capabilities: []string{"csv_processing"},
	})

	require.NoError(t, err)
	require.Len(t, questions, 5)
	assert.Equal(t, "q1", questions[0].Text)
	assert.Equal(t, "a1", questions[0].ExpectedAnswer)
	assert.Equal(t, "easy", questions[0].Band())
	assert.Equal(t, "hard", questions[4].Band())
}

func TestValidateQuestions(t *testing.T) {
	valid := []questionPayload{
		{Question: "q1", ExpectedAnswer: "a1", Difficulty: 0.2},
		{Question: "q2", ExpectedAnswer: "a2", Difficulty: 0.3},
		{Question: "q3", ExpectedAnswer: "a3", Difficulty: 0.5},
		{Question: "q4", ExpectedAnswer: "a4", Difficulty: 0.7},
		{Question: "q5", ExpectedAnswer: "a5", Difficulty: 0.9},
	}

	assert.NoError(t, validateQuestions(valid))

	t.Run("wrong count", func(t *testing.T) {
		err := validateQuestions(valid[:4])
		assert.ErrorContains(t, err, "expected 5 questions")
	})

	t.Run("difficulty in no band", func(t *testing.T) {
		bad := append([]questionPayload(nil), valid...)
		bad[2].Difficulty = 0.45
		err := validateQuestions(bad)
		assert.ErrorContains(t, err, "outside every band")
	})

	t.Run("band not covered", func(t *testing.T) {
		bad := append([]questionPayload(nil), valid...)
		bad[0].Difficulty = 0.5
		bad[1].Difficulty = 0.5
		err := validateQuestions(bad)
		assert.ErrorContains(t, err, "no easy-band question")
	})

	t.Run("empty expected answer", func(t *testing.T) {
		bad := append([]questionPayload(nil), valid...)
		bad[3].ExpectedAnswer = ""
		err := validateQuestions(bad)
		assert.ErrorContains(t, err, "missing text or expected answer")
	})
}

func TestResponseScorer_Score(t *testing.T) {
	llm := &fakeLLM{responses: []string{`{"correct": true, "score": 0.85, "reasoning": "matches expected"}`}}

	score, err := NewResponseScorer(llm, testLogger{}).Score(context.Background(),
		entity.ProbeQuestion{Text: "q1", ExpectedAnswer: "a1", Difficulty: 0.5}, "a1")

	require.NoError(t, err)
	assert.True(t, score.Correct)
	assert.Equal(t, 0.85, score.Score)
}

func TestResponseScorer_RejectsOutOfRangeScore(t *testing.T) {
	bad := `{"correct": true, "score": 1.2}`
	llm := &fakeLLM{responses: []string{bad, bad, bad}}

	_, err := NewResponseScorer(llm, testLogger{}).Score(context.Background(),
		entity.ProbeQuestion{Text: "q1", ExpectedAnswer: "a1", Difficulty: 0.5}, "a1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [0,1]")
}

func TestAgentProbe_RejectsEmptyAnswer(t *testing.T) {
	llm := &fakeLLM{responses: []string{"   "}}

	_, err := NewAgentProbe(llm, testLogger{}).Answer(context.Background(),
		&entity.AgentConfiguration{ID: "a", Instruction: "You are a data analyst."},
		entity.ProbeQuestion{Text: "q1"})

	require.Error(t, err)
}

func TestAgentProbe_UsesInstructionAsSystemPrompt(t *testing.T) {
	llm := &recordingLLM{content: "the answer"}

	answer, err := NewAgentProbe(llm, testLogger{}).Answer(context.Background(),
		&entity.AgentConfiguration{
			ID:          "a",
			Instruction: "You are a data analyst.",
			Model:       entity.ModelParams{Temperature: 0.4},
		},
		entity.ProbeQuestion{Text: "q1"})

	require.NoError(t, err)
	assert.Equal(t, "the answer", answer)
	assert.Equal(t, "You are a data analyst.", llm.lastReq.System)
	assert.InDelta(t, 0.4, float64(llm.lastReq.Temperature), 1e-6)
}
