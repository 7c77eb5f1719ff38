package qualitygate

import (
	"fmt"
	"strings"

	"agent-genesis/internal/domain/entity"
)

// rationale renders the human-readable explanation attached to a verdict,
// naming which acceptance clause failed and folding in a short analysis of
// the failure pattern.
func rationale(accepted bool, clause failedClause, avg, variance float64, results []entity.ProbeResult) string {
	if accepted {
		return fmt.Sprintf("agent passed all quality checks (avg=%.2f, variance=%.3f)", avg, variance)
	}

	var parts []string
	switch clause {
	case clauseCompetence:
		parts = append(parts, competenceText(avg))
	case clauseCalibration:
		parts = append(parts, calibrationText(variance))
	case clauseBoth:
		parts = append(parts, competenceText(avg), calibrationText(variance))
	}

	if fb := failureFeedback(results); fb != "" {
		parts = append(parts, fb)
	}
	return strings.Join(parts, "; ")
}

func competenceText(avg float64) string {
	return fmt.Sprintf("agent scored below competence threshold (avg=%.2f < %.2f)", avg, minAverageScore)
}

func calibrationText(variance float64) string {
	switch {
	case variance == 0:
		return fmt.Sprintf("difficulty not calibrated (variance=%.3f, expected ~0.25): all probes answered identically", variance)
	case variance < varianceMin:
		return fmt.Sprintf("difficulty not calibrated (variance=%.3f, expected ~0.25): probes too easy or too hard", variance)
	default:
		return fmt.Sprintf("difficulty not calibrated (variance=%.3f, expected ~0.25): performance too inconsistent", variance)
	}
}

// failureFeedback summarizes which probes failed and at what difficulty,
// so the retry planner can target the failure class.
func failureFeedback(results []entity.ProbeResult) string {
	var failedEasy, failedHard, failedTotal int
	for _, r := range results {
		if r.Correct {
			continue
		}
		failedTotal++
		if r.Question.Difficulty < 0.5 {
			failedEasy++
		}
		if r.Question.Difficulty >= 0.7 {
			failedHard++
		}
	}
	if failedTotal == 0 {
		return ""
	}

	var parts []string
	if failedEasy > 0 {
		parts = append(parts, fmt.Sprintf("failed %d easy probe(s): fundamental gaps detected", failedEasy))
	}
	if failedHard > 0 {
		parts = append(parts, fmt.Sprintf("failed %d hard probe(s): expected at capability frontier", failedHard))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("failed %d mid-difficulty probe(s)", failedTotal))
	}
	return strings.Join(parts, "; ")
}
