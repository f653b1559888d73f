package quiz

import (
	"math"

	"github.com/phrazzld/vocab-drill/internal/domain"
)

// Summary is the result of a completed session.
type Summary struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
	MeanScore  int `json:"mean_score"`
}

// Summarize computes the summary of a session with total questions from its
// answer history. Percentage and MeanScore are rounded to whole numbers.
func Summarize(history []domain.AnswerRecord, total int) Summary {
	s := Summary{Total: total}

	scoreSum := 0
	for _, a := range history {
		if a.IsCorrect {
			s.Correct++
		}
		scoreSum += a.Score
	}

	if total > 0 {
		s.Percentage = int(math.Round(float64(s.Correct) / float64(total) * 100))
	}
	if len(history) > 0 {
		s.MeanScore = int(math.Round(float64(scoreSum) / float64(len(history))))
	}
	return s
}
