package input

import (
	"context"

	"agent-genesis/internal/domain/entity"
)

// AgentBuilder drives one full build: validation, the staged pipeline,
// the bounded QA loop and artifact emission. The returned outcome is
// always structured; only validation and upstream failures surface as
// errors.
type AgentBuilder interface {
	Build(ctx context.Context, instruction string) (*entity.Outcome, error)
}
