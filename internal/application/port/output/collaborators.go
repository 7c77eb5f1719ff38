package output

import (
	"context"

	"agent-genesis/internal/domain/entity"
)

// IntentExtractor turns a natural-language instruction into a structured intent.
type IntentExtractor interface {
	Extract(ctx context.Context, instruction string) (*entity.Intent, error)
}

// ConfigBuilder assembles the initial agent configuration from an intent.
type ConfigBuilder interface {
	Build(ctx context.Context, intent *entity.Intent) (*entity.AgentConfiguration, error)
}

// ModelAdvisor recommends execution-model parameters for a configuration.
type ModelAdvisor interface {
	Recommend(ctx context.Context, cfg *entity.AgentConfiguration) (*entity.ModelParams, error)
}

// QuestionGenerator produces the probe questions for one quality-gate attempt.
type QuestionGenerator interface {
	Generate(ctx context.Context, cfg *entity.AgentConfiguration) ([]entity.ProbeQuestion, error)
}

// AgentProbe asks the agent under test to answer one question using its
// current instruction template and selected model.
type AgentProbe interface {
	Answer(ctx context.Context, cfg *entity.AgentConfiguration, q entity.ProbeQuestion) (string, error)
}

// ResponseScorer judges one answer against the question's expected answer.
type ResponseScorer interface {
	Score(ctx context.Context, q entity.ProbeQuestion, answer string) (*entity.ProbeScore, error)
}

// ArtifactEmitter persists an accepted configuration as an executable agent
// artifact and returns its registration record. Invoked exactly once per
// accepted build.
type ArtifactEmitter interface {
	Emit(ctx context.Context, cfg *entity.AgentConfiguration, verdict entity.Verdict) (*entity.Registration, error)
}
