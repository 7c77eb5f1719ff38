package qualitygate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"agent-genesis/internal/application/port/output"
	"agent-genesis/internal/domain/entity"
)

const (
	probeCount = 5

	minAverageScore = 0.6
	varianceMin     = 0.15
	varianceMax     = 0.35
)

// Gate evaluates a candidate configuration with generated probe questions
// and computes the acceptance verdict. It holds no state across attempts.
type Gate struct {
	questions output.QuestionGenerator
	probe     output.AgentProbe
	scorer    output.ResponseScorer
	logger    output.LoggerPort
}

func New(
	questions output.QuestionGenerator,
	probe output.AgentProbe,
	scorer output.ResponseScorer,
	logger output.LoggerPort,
) *Gate {
	return &Gate{
		questions: questions,
		probe:     probe,
		scorer:    scorer,
		logger:    logger,
	}
}

// Evaluate runs one full quality-gate attempt: generate 5 probes, collect
// and score the answers, then derive the verdict. Probe evaluations are
// independent and run concurrently; results are aggregated before the
// verdict is computed.
func (g *Gate) Evaluate(ctx context.Context, cfg *entity.AgentConfiguration) (*entity.Verdict, error) {
	g.logger.Info("QA attempt started", "agent_id", cfg.ID, "role", cfg.Role)

	questions, err := g.questions.Generate(ctx, cfg)
	if err != nil {
		return nil, &entity.UpstreamError{Stage: "question_generator", Err: err}
	}
	if len(questions) != probeCount {
		return nil, &entity.UpstreamError{
			Stage: "question_generator",
			Err:   fmt.Errorf("expected %d probe questions, got %d", probeCount, len(questions)),
		}
	}

	results := make([]entity.ProbeResult, len(questions))
	grp, gctx := errgroup.WithContext(ctx)
	for i, q := range questions {
		grp.Go(func() error {
			answer, err := g.probe.Answer(gctx, cfg, q)
			if err != nil {
				return &entity.UpstreamError{Stage: "agent_probe", Err: err}
			}
			score, err := g.scorer.Score(gctx, q, answer)
			if err != nil {
				return &entity.UpstreamError{Stage: "response_scorer", Err: err}
			}
			results[i] = entity.ProbeResult{
				Question: q,
				Answer:   answer,
				Correct:  score.Correct,
				Score:    score.Score,
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	verdict := buildVerdict(results)
	g.logger.Info("QA attempt complete",
		"agent_id", cfg.ID,
		"accepted", verdict.Accepted,
		"average_score", verdict.AverageScore,
		"pass_rate", verdict.PassRate,
		"variance", verdict.Variance,
	)
	return &verdict, nil
}

func buildVerdict(results []entity.ProbeResult) entity.Verdict {
	var passed int
	var scoreSum float64
	for _, r := range results {
		if r.Correct {
			passed++
		}
		scoreSum += r.Score
	}

	p := float64(passed) / float64(len(results))
	variance := entity.BernoulliVariance(p)
	avg := scoreSum / float64(len(results))

	accepted, clause := decide(avg, variance)

	return entity.Verdict{
		AverageScore: avg,
		PassRate:     p,
		Variance:     variance,
		Accepted:     accepted,
		Rationale:    rationale(accepted, clause, avg, variance, results),
		Results:      results,
	}
}

// decide applies the acceptance rule. Both clauses are required: the
// competence clause (average score) and the calibration clause (Bernoulli
// variance near the capability frontier).
func decide(avg, variance float64) (bool, failedClause) {
	competent := avg >= minAverageScore
	calibrated := variance >= varianceMin && variance <= varianceMax

	switch {
	case competent && calibrated:
		return true, clauseNone
	case !competent && !calibrated:
		return false, clauseBoth
	case !competent:
		return false, clauseCompetence
	default:
		return false, clauseCalibration
	}
}

type failedClause int

const (
	clauseNone failedClause = iota
	clauseCompetence
	clauseCalibration
	clauseBoth
)
