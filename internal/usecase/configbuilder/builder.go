package configbuilder

import (
	"context"

	"github.com/google/uuid"

	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/domain/entity"
	"agent-genesis/internal/infrastructure/prompts"
)

var _ output.ConfigBuilder = (*Builder)(nil)

// Builder assembles the initial agent configuration from a structured
// intent. The identifier is assigned here exactly once and survives every
// later mutation.
type Builder struct {
	logger output.LoggerPort
}

func New(logger output.LoggerPort) *Builder {
	return &Builder{logger: logger}
}

func (b *Builder) Build(ctx context.Context, intent *entity.Intent) (*entity.AgentConfiguration, error) {
	instruction, err := prompts.GenerateInstruction(intent)
	if err != nil {
		return nil, err
	}

	cfg := &entity.AgentConfiguration{
		ID:              uuid.NewString(),
		Role:            intent.Role,
		Capabilities:    append([]string(nil), intent.Capabilities...),
		Constraints:     append([]string(nil), intent.Constraints...),
		Instruction:     instruction,
		SuccessCriteria: intent.SuccessCriteria,
	}
	cfg.Metadata.AddStage("config_builder", entity.Usage{})

	b.logger.Debug("Initial configuration assembled", "agent_id", cfg.ID, "role", cfg.Role)
	return cfg, nil
}
