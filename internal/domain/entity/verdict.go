package entity

// Verdict is the pass/fail judgment and supporting statistics for one
// quality-gate attempt.
type Verdict struct {
	AverageScore float64
	PassRate     float64
	Variance     float64
	Accepted     bool
	Rationale    string
	Results      []ProbeResult
}

// BernoulliVariance computes p(1-p) for the pass/fail indicator.
// It peaks at 0.25 when p=0.5, the capability frontier the gate targets.
func BernoulliVariance(p float64) float64 {
	return p * (1 - p)
}

// AttemptRecord is one entry of the audit trail: the configuration snapshot
// an attempt ran with, the verdict it produced, and the mutation applied
// before the next attempt (empty on the final one).
type AttemptRecord struct {
	Index         int
	Configuration AgentConfiguration
	Verdict       Verdict
	Mutation      MutationStrategy
}

// MutationStrategy names how the retry planner rewrote the configuration.
type MutationStrategy string

const (
	MutationNone               MutationStrategy = ""
	MutationRefineInstruction  MutationStrategy = "refine_instruction"
	MutationReviseCapabilities MutationStrategy = "revise_capabilities"
)
