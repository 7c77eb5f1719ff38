package orchestrator

import (
	"context"
	"strings"

	"agent-genesis/internal/application/port/input"
	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/domain/entity"
	"agent-genesis/internal/usecase/retryplanner"
)

const (
	maxAttempts       = 3
	minInstructionLen = 10
	maxInstructionLen = 5000
)

var _ input.AgentBuilder = (*UseCase)(nil)

// QualityGate is the acceptance test consulted once per attempt.
type QualityGate interface {
	Evaluate(ctx context.Context, cfg *entity.AgentConfiguration) (*entity.Verdict, error)
}

// RetryPlanner rewrites the configuration between attempts.
type RetryPlanner interface {
	Adjust(cfg *entity.AgentConfiguration, attempt int, verdict entity.Verdict) (*entity.AgentConfiguration, entity.MutationStrategy)
}

// UseCase sequences the build pipeline: validation, the three single-shot
// stages, the bounded QA/retry loop and artifact emission. It owns the
// single configuration instance and its mutation lineage.
type UseCase struct {
	intent  output.IntentExtractor
	builder output.ConfigBuilder
	advisor output.ModelAdvisor
	gate    QualityGate
	planner RetryPlanner
	emitter output.ArtifactEmitter
	logger  output.LoggerPort
}

func New(
	intent output.IntentExtractor,
	builder output.ConfigBuilder,
	advisor output.ModelAdvisor,
	gate QualityGate,
	planner RetryPlanner,
	emitter output.ArtifactEmitter,
	logger output.LoggerPort,
) *UseCase {
	return &UseCase{
		intent:  intent,
		builder: builder,
		advisor: advisor,
		gate:    gate,
		planner: planner,
		emitter: emitter,
		logger:  logger,
	}
}

// Build turns a natural-language instruction into a validated agent.
// Escalation after exhausted attempts is returned as a structured outcome,
// never as an error; only validation and upstream failures surface as errors.
func (uc *UseCase) Build(ctx context.Context, instruction string) (*entity.Outcome, error) {
	uc.logger.Info("Build started", "instruction_length", len(instruction))

	if verr := validateInstruction(instruction); verr != nil {
		uc.logger.Warn("Instruction rejected", "reason", verr.Reason)
		return &entity.Outcome{Status: entity.OutcomeRejected, Reason: verr.Error()}, nil
	}

	intent, err := uc.intent.Extract(ctx, instruction)
	if err != nil {
		return nil, &entity.UpstreamError{Stage: "intent_extractor", Err: err}
	}

	cfg, err := uc.builder.Build(ctx, intent)
	if err != nil {
		return nil, &entity.UpstreamError{Stage: "config_builder", Err: err}
	}
	cfg.Metadata.AddStage("intent_extractor", intent.Usage)
	uc.logger.Info("Configuration built", "agent_id", cfg.ID, "role", cfg.Role)

	params, err := uc.advisor.Recommend(ctx, cfg)
	if err != nil {
		return nil, &entity.UpstreamError{Stage: "model_advisor", Err: err}
	}
	cfg.Model = *params
	cfg.Metadata.AddStage("model_advisor", params.Usage)
	uc.logger.Info("Model selected", "agent_id", cfg.ID, "model", params.Name)

	return uc.runRetryLoop(ctx, cfg)
}

// loopState is the explicit retry state machine of the QA loop.
type loopState int

const (
	stateAwaitQA loopState = iota
	stateMutate
	stateAccepted
	stateEscalated
)

func (uc *UseCase) runRetryLoop(ctx context.Context, cfg *entity.AgentConfiguration) (*entity.Outcome, error) {
	var (
		attempts []entity.AttemptRecord
		verdict  *entity.Verdict
		attempt  = 1
		state    = stateAwaitQA
	)

	for state == stateAwaitQA || state == stateMutate {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch state {
		case stateAwaitQA:
			v, err := uc.gate.Evaluate(ctx, cfg)
			if err != nil {
				return nil, err
			}
			verdict = v
			attempts = append(attempts, entity.AttemptRecord{
				Index:         attempt,
				Configuration: *cfg.Clone(),
				Verdict:       *v,
			})

			switch {
			case v.Accepted:
				state = stateAccepted
			case attempt < maxAttempts:
				state = stateMutate
			default:
				state = stateEscalated
			}

		case stateMutate:
			next, strategy := uc.planner.Adjust(cfg, attempt, *verdict)
			attempts[len(attempts)-1].Mutation = strategy
			uc.logger.Info("Configuration mutated for retry",
				"agent_id", cfg.ID, "failed_attempt", attempt, "strategy", string(strategy))
			cfg = next
			attempt++
			state = stateAwaitQA
		}
	}

	if state == stateEscalated {
		reason := verdict.Rationale + "; " + retryplanner.Advisory(*verdict)
		uc.logger.Warn("Build escalated", "agent_id", cfg.ID, "attempts", len(attempts), "reason", reason)
		return &entity.Outcome{
			Status:        entity.OutcomeEscalated,
			Configuration: cfg,
			Verdict:       verdict,
			Attempts:      attempts,
			Reason:        reason,
		}, nil
	}

	reg, err := uc.emitter.Emit(ctx, cfg, *verdict)
	if err != nil {
		return nil, &entity.UpstreamError{Stage: "artifact_emitter", Err: err}
	}
	uc.logger.Info("Build accepted",
		"agent_id", cfg.ID, "attempts", len(attempts), "artifact", reg.ArtifactLocation)

	return &entity.Outcome{
		Status:        entity.OutcomeAccepted,
		Configuration: cfg,
		Verdict:       verdict,
		Registration:  reg,
		Attempts:      attempts,
	}, nil
}

// validateInstruction enforces the fail-fast preconditions. No external
// collaborator runs when it fails.
func validateInstruction(instruction string) *entity.ValidationError {
	if strings.TrimSpace(instruction) == "" {
		return &entity.ValidationError{Reason: "instruction cannot be empty"}
	}
	if len(instruction) < minInstructionLen {
		return &entity.ValidationError{Reason: "instruction too short: provide detailed requirements (min 10 chars)"}
	}
	if len(instruction) > maxInstructionLen {
		return &entity.ValidationError{Reason: "instruction too long: please be more concise (max 5000 chars)"}
	}
	return nil
}
