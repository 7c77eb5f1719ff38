package entity

// Difficulty bands for generated probe questions.
const (
	DifficultyEasyMin   = 0.2
	DifficultyEasyMax   = 0.4 // exclusive
	DifficultyMediumMin = 0.5
	DifficultyMediumMax = 0.6
	DifficultyHardMin   = 0.6 // exclusive
	DifficultyHardMax   = 0.9
)

// ProbeQuestion is one generated test item. Immutable once generated
// for a single quality-gate invocation.
type ProbeQuestion struct {
	Text           string
	ExpectedAnswer string
	Difficulty     float64
}

// Band returns which difficulty band the question falls in, or "" when it
// sits outside every band.
func (q ProbeQuestion) Band() string {
	switch {
	case q.Difficulty >= DifficultyEasyMin && q.Difficulty < DifficultyEasyMax:
		return "easy"
	case q.Difficulty >= DifficultyMediumMin && q.Difficulty <= DifficultyMediumMax:
		return "medium"
	case q.Difficulty > DifficultyHardMin && q.Difficulty <= DifficultyHardMax:
		return "hard"
	}
	return ""
}

// ProbeScore is the scorer's judgment of a single answer.
type ProbeScore struct {
	Correct bool
	Score   float64
}

// ProbeResult pairs a question with the agent's answer and its score.
type ProbeResult struct {
	Question ProbeQuestion
	Answer   string
	Correct  bool
	Score    float64
}
