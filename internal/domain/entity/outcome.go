package entity

// OutcomeStatus tags the terminal result of a build.
type OutcomeStatus string

const (
	OutcomeAccepted  OutcomeStatus = "accepted"
	OutcomeEscalated OutcomeStatus = "escalated"
	OutcomeRejected  OutcomeStatus = "rejected"
)

// Registration is the record returned after an artifact is persisted.
type Registration struct {
	ArtifactLocation string
	RegistrationID   string
}

// Outcome is the structured result of one build. Escalation is a normal
// outcome, not an error: the caller routes it to human review.
type Outcome struct {
	Status        OutcomeStatus
	Configuration *AgentConfiguration
	Verdict       *Verdict
	Registration  *Registration
	Attempts      []AttemptRecord
	Reason        string
}

// Report is the flat observable surface handed back to callers.
type Report struct {
	Success          bool     `yaml:"success"`
	AgentID          string   `yaml:"agent_id"`
	Role             string   `yaml:"role"`
	Capabilities     []string `yaml:"capabilities,omitempty"`
	ArtifactLocation string   `yaml:"artifact_location,omitempty"`
	RegistrationID   string   `yaml:"registration_id,omitempty"`
	AverageScore     float64  `yaml:"average_score"`
	Variance         float64  `yaml:"variance"`
	Attempts         int      `yaml:"attempts"`
	Reason           string   `yaml:"reason,omitempty"`
}

// Report flattens the outcome for callers and log sinks.
func (o *Outcome) Report() Report {
	r := Report{
		Success:  o.Status == OutcomeAccepted,
		Attempts: len(o.Attempts),
		Reason:   o.Reason,
	}
	if o.Configuration != nil {
		r.AgentID = o.Configuration.ID
		r.Role = o.Configuration.Role
		r.Capabilities = append([]string(nil), o.Configuration.Capabilities...)
	}
	if o.Verdict != nil {
		r.AverageScore = o.Verdict.AverageScore
		r.Variance = o.Verdict.Variance
	}
	if o.Registration != nil {
		r.ArtifactLocation = o.Registration.ArtifactLocation
		r.RegistrationID = o.Registration.RegistrationID
	}
	return r
}
