package domain

import "math"

// Score bounds and the pass threshold for graded answers.
const (
	MinScore     = 0
	MaxScore     = 100
	PassingScore = 70
)

// GradeOutcome is the result of grading a single answer.
//
// IsCorrect is always derived from the score; any boolean reported by the
// grading service is discarded. IsPassingScore(Score) always equals IsCorrect.
type GradeOutcome struct {
	IsCorrect           bool   `json:"isCorrect"`
	Score               int    `json:"score"`
	Feedback            string `json:"feedback"`
	SuggestedCorrection string `json:"suggestedCorrection,omitempty"`

	// Fallback is true when the outcome came from the deterministic comparator
	// rather than the grading service.
	Fallback bool `json:"fallback"`
}

// NewGradeOutcome builds a normalized outcome. Correctness is decided on the
// clamped raw score; the stored score is then rounded without crossing
// PassingScore, so 69.5 is stored as 69 and fails.
func NewGradeOutcome(score float64, feedback, suggestedCorrection string) GradeOutcome {
	raw := clampRaw(score)
	correct := raw >= PassingScore
	return GradeOutcome{
		IsCorrect:           correct,
		Score:               roundScore(raw, correct),
		Feedback:            feedback,
		SuggestedCorrection: suggestedCorrection,
	}
}

// clampRaw clamps score into [MinScore, MaxScore]. NaN is treated as MinScore.
func clampRaw(score float64) float64 {
	switch {
	case math.IsNaN(score), score < MinScore:
		return MinScore
	case score > MaxScore:
		return MaxScore
	}
	return score
}

func roundScore(raw float64, correct bool) int {
	s := int(math.Round(raw))
	if !correct && s >= PassingScore {
		return PassingScore - 1
	}
	return s
}

// IsPassingScore reports whether score counts as a correct answer.
func IsPassingScore(score int) bool {
	return score >= PassingScore
}
