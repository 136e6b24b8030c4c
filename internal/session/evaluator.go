package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/entity"
	"ai-interview-be/pkg/interviewer"
)

const (
	// Each recorded flag costs a fixed slice of the integrity score.
	flagPenalty = 15

	// Transcript turns beyond this are left out of the evaluation prompt.
	maxEvaluationTurns = 10

	RecommendationModerateFit    = "Moderate fit"
	RecommendationCannotEvaluate = "Cannot Evaluate - No Responses"
	RecommendationUnfitIntegrity = "Unfit - Integrity Violation"
)

// ComputeIntegrityScore is the authoritative integrity score. Whatever the
// model claims for its own integrity section is overwritten with this.
func ComputeIntegrityScore(flagCount int) int {
	score := 100 - flagPenalty*flagCount
	if score < 0 {
		return 0
	}
	return score
}

// CannotEvaluateResult is the fixed report for sessions where the candidate
// never answered anything. No model call is made for these.
func CannotEvaluateResult(flags []entity.IntegrityFlag) *entity.Evaluation {
	return &entity.Evaluation{
		Recommendation: RecommendationCannotEvaluate,
		OverallScore:   0,
		IntegrityScore: entity.IntegrityScore{
			Score: ComputeIntegrityScore(len(flags)),
			Flags: flags,
		},
	}
}

// TerminationResult is the fixed report written when a critical violation
// ends the session.
func TerminationResult(reason string, flags []entity.IntegrityFlag) *entity.Evaluation {
	return &entity.Evaluation{
		Recommendation: RecommendationUnfitIntegrity,
		Reason:         reason,
		OverallScore:   0,
		IntegrityScore: entity.IntegrityScore{
			Score: 0,
			Flags: flags,
		},
	}
}

// BuildEvaluationPrompt renders the report request from the stored
// transcript, bounded to the first turns so the prompt stays a fixed size.
func BuildEvaluationPrompt(questions []string, flagCount int) string {
	if len(questions) > maxEvaluationTurns {
		questions = questions[:maxEvaluationTurns]
	}

	var transcript strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&transcript, "%d. %s\n", i+1, q)
	}
	return constant.EvaluationPrompt(transcript.String(), flagCount)
}

// ParseEvaluation decodes the model's report. A reply that does not parse
// as the expected JSON degrades to a neutral result carrying the raw text.
// Either way the integrity section is replaced with the locally computed
// score and the recorded flags.
func ParseEvaluation(raw string, flags []entity.IntegrityFlag) *entity.Evaluation {
	cleaned := interviewer.CleanJSON(raw)

	var evaluation entity.Evaluation
	if err := json.Unmarshal([]byte(cleaned), &evaluation); err != nil {
		evaluation = entity.Evaluation{
			Recommendation: RecommendationModerateFit,
			OverallScore:   50,
			RawText:        raw,
		}
	}

	suspicious := evaluation.IntegrityScore.SuspiciousMoments
	evaluation.IntegrityScore = entity.IntegrityScore{
		Score:             ComputeIntegrityScore(len(flags)),
		SuspiciousMoments: suspicious,
		Flags:             flags,
	}
	return &evaluation
}
