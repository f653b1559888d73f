package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for AnswerRecord
var (
	ErrEmptyAnswerID        = errors.New("answer ID cannot be empty")
	ErrEmptyAnswerSessionID = errors.New("answer session ID cannot be empty")
	ErrEmptyAnswerWordID    = errors.New("answer word ID cannot be empty")
)

// AnswerRecord is the graded answer to one question of a session. Records
// are appended once per question in question order and never mutated.
//
// The ID is minted when the record is created so that persisting it can be
// retried without producing duplicate rows.
type AnswerRecord struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	WordID     uuid.UUID `json:"word_id"`
	UserAnswer string    `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	Score      int       `json:"score"`
	Feedback   string    `json:"feedback"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAnswerRecord creates the record of answering the question for wordID
// with outcome.
func NewAnswerRecord(sessionID, wordID uuid.UUID, userAnswer string, outcome GradeOutcome) *AnswerRecord {
	return &AnswerRecord{
		ID:         uuid.New(),
		SessionID:  sessionID,
		WordID:     wordID,
		UserAnswer: userAnswer,
		IsCorrect:  outcome.IsCorrect,
		Score:      outcome.Score,
		Feedback:   outcome.Feedback,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate checks if the AnswerRecord has valid data.
func (a *AnswerRecord) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAnswerID
	}
	if a.SessionID == uuid.Nil {
		return ErrEmptyAnswerSessionID
	}
	if a.WordID == uuid.Nil {
		return ErrEmptyAnswerWordID
	}
	return nil
}
