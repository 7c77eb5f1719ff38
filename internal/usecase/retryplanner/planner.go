package retryplanner

import (
	"fmt"
	"strings"

	"agent-genesis/internal/domain/entity"
)

// Labels appended by the attempt-2 revision strategy.
const (
	capContinuousLearning = "continuous_learning"
	conPrioritizeAccuracy = "prioritize_accuracy_over_speed"
)

// Planner rewrites a configuration between QA attempts. It is stateless and
// deterministic: the same (configuration, attempt, verdict) input always
// produces the same output, and the input is never mutated.
type Planner struct{}

func New() *Planner {
	return &Planner{}
}

// Adjust returns the configuration for the next attempt together with the
// strategy applied. attempt is the 1-based index of the attempt that just
// failed. Attempt 1 refines the instruction template only; attempt 2
// revises the capability and constraint sets; from attempt 3 on no mutation
// happens inside the loop (the advisory for the reviewer lives in the
// escalation rationale instead).
func (p *Planner) Adjust(cfg *entity.AgentConfiguration, attempt int, verdict entity.Verdict) (*entity.AgentConfiguration, entity.MutationStrategy) {
	next := cfg.Clone()

	switch attempt {
	case 1:
		next.Instruction += refinementSuffix(verdict)
		return next, entity.MutationRefineInstruction
	case 2:
		if !reviseSets(next, verdict) {
			// Empty delta: proceed unchanged, the loop is bounded by
			// attempt count rather than convergence.
			return next, entity.MutationNone
		}
		return next, entity.MutationReviseCapabilities
	default:
		return next, entity.MutationNone
	}
}

// refinementSuffix derives extra instruction-template guidance from the
// verdict, addressing the failure class the probes exposed.
func refinementSuffix(verdict entity.Verdict) string {
	var b strings.Builder
	b.WriteString("\n\nIMPORTANT: Pay special attention to edge cases and complex scenarios. ")
	b.WriteString("Provide detailed reasoning for challenging questions.")

	if hasFailedBelow(verdict, 0.5) {
		b.WriteString("\nFocus on demonstrating strong understanding of fundamental concepts. ")
		b.WriteString("Ensure accuracy in basic operations before tackling complex problems.")
	}
	for _, r := range verdict.Results {
		if !r.Correct {
			b.WriteString(fmt.Sprintf("\nPreviously missed (difficulty %.1f): %s", r.Question.Difficulty, r.Question.Text))
		}
	}
	return b.String()
}

// reviseSets applies the attempt-2 strategy and reports whether anything
// actually changed. Low average adds a capability implied by wrong answers;
// an overconfident low-variance failure curbs overreach with a constraint.
func reviseSets(cfg *entity.AgentConfiguration, verdict entity.Verdict) bool {
	changed := false
	if verdict.AverageScore < 0.6 && !cfg.HasCapability(capContinuousLearning) {
		cfg.Capabilities = append(cfg.Capabilities, capContinuousLearning)
		changed = true
	}
	if verdict.Variance < 0.15 && !cfg.HasConstraint(conPrioritizeAccuracy) {
		cfg.Constraints = append(cfg.Constraints, conPrioritizeAccuracy)
		changed = true
	}
	return changed
}

// Advisory is the attempt-3 suggestion for the human reviewer. Never
// applied automatically.
func Advisory(verdict entity.Verdict) string {
	if verdict.PassRate >= 0.8 {
		return "advisory: agent passes almost everything; increase task complexity or probe difficulty before retrying"
	}
	return "advisory: consider simplifying the task or providing more specific instructions before retrying"
}

func hasFailedBelow(verdict entity.Verdict, difficulty float64) bool {
	for _, r := range verdict.Results {
		if !r.Correct && r.Question.Difficulty < difficulty {
			return true
		}
	}
	return false
}
