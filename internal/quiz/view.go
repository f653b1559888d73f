package quiz

import (
	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
)

// QuestionView is the learner-facing form of a generated question.
// Translation stays empty until the question has been answered.
type QuestionView struct {
	WordID       uuid.UUID `json:"word_id"`
	OriginalWord string    `json:"original_word"`
	Sentence     string    `json:"sentence"`
	Translation  string    `json:"translation,omitempty"`
}

// View is an immutable snapshot of a controller.
type View struct {
	State            State                `json:"state"`
	SessionID        uuid.UUID            `json:"session_id"`
	DeckID           uuid.UUID            `json:"deck_id"`
	Direction        domain.Direction     `json:"direction,omitempty"`
	SentenceLanguage string               `json:"sentence_language,omitempty"`
	AnswerLanguage   string               `json:"answer_language,omitempty"`
	RightToLeft      bool                 `json:"right_to_left"`
	QuestionIndex    int                  `json:"question_index"`
	TotalQuestions   int                  `json:"total_questions"`
	Question         *QuestionView        `json:"question,omitempty"`
	LastOutcome      *domain.GradeOutcome `json:"last_outcome,omitempty"`
	CorrectSoFar     int                  `json:"correct_so_far"`
	Summary          *Summary             `json:"summary,omitempty"`
	LastError        string               `json:"last_error,omitempty"`
}
