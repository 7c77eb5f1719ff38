package entity

// Complexity is the advisor's estimate of how demanding the requested agent is.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Intent is the structured form of a natural-language instruction.
type Intent struct {
	Role            string
	Capabilities    []string
	Constraints     []string
	SuccessCriteria string
	Complexity      Complexity
	Usage           Usage
}

// ModelParams holds the execution-model parameters recommended for an agent.
type ModelParams struct {
	Name          string
	ContextWindow int
	Temperature   float32
	CostPer1K     float64
	Reasoning     string
	Usage         Usage
}

// Usage accounts tokens and cost of a single external stage.
type Usage struct {
	Tokens  int
	CostUSD float64
}

// Metadata is the accumulating bag of counters and stage provenance
// threaded through the pipeline alongside the configuration.
type Metadata struct {
	TotalTokens int
	TotalCost   float64
	Stages      []string
}

// AddStage records that a stage ran and folds its usage into the totals.
func (m *Metadata) AddStage(name string, u Usage) {
	m.Stages = append(m.Stages, name)
	m.TotalTokens += u.Tokens
	m.TotalCost += u.CostUSD
}

// AgentConfiguration is the record threaded through the build pipeline.
// ID is assigned once at construction and never changes across retries;
// capabilities, constraints and the instruction template may be rewritten
// between attempts.
type AgentConfiguration struct {
	ID              string
	Role            string
	Capabilities    []string
	Constraints     []string
	Instruction     string
	SuccessCriteria string
	Model           ModelParams
	Metadata        Metadata
}

// Clone returns a deep copy so mutations never leak into retained snapshots.
func (c *AgentConfiguration) Clone() *AgentConfiguration {
	out := *c
	out.Capabilities = append([]string(nil), c.Capabilities...)
	out.Constraints = append([]string(nil), c.Constraints...)
	out.Metadata.Stages = append([]string(nil), c.Metadata.Stages...)
	return &out
}

// HasCapability reports whether the capability label is already present.
func (c *AgentConfiguration) HasCapability(label string) bool {
	for _, v := range c.Capabilities {
		if v == label {
			return true
		}
	}
	return false
}

// HasConstraint reports whether the constraint label is already present.
func (c *AgentConfiguration) HasConstraint(label string) bool {
	for _, v := range c.Constraints {
		if v == label {
			return true
		}
	}
	return false
}
