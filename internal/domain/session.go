package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuizTypeSentence is the only quiz type produced by this engine.
const QuizTypeSentence = "sentence"

// Common validation errors for QuizSession
var (
	ErrEmptySessionID        = errors.New("session ID cannot be empty")
	ErrEmptySessionUserID    = errors.New("session user ID cannot be empty")
	ErrEmptySessionDeckID    = errors.New("session deck ID cannot be empty")
	ErrInvalidTotalQuestions = errors.New("session total questions must be positive")
)

// QuizSession is one run of generated questions from configuration to
// completion.
//
// TotalQuestions is fixed at creation. CorrectAnswers and CompletedAt are
// written exactly once, when the session is finalized; a session whose
// CompletedAt is nil is in progress or abandoned and must not be counted in
// accuracy statistics.
type QuizSession struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	DeckID         uuid.UUID  `json:"deck_id"`
	QuizType       string     `json:"quiz_type"`
	Direction      Direction  `json:"direction"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// NewQuizSession creates a new, not yet completed session.
func NewQuizSession(userID, deckID uuid.UUID, direction Direction, totalQuestions int) (*QuizSession, error) {
	s := &QuizSession{
		ID:             uuid.New(),
		UserID:         userID,
		DeckID:         deckID,
		QuizType:       QuizTypeSentence,
		Direction:      direction,
		TotalQuestions: totalQuestions,
		CorrectAnswers: 0,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks if the QuizSession has valid data.
func (s *QuizSession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySessionID
	}
	if s.UserID == uuid.Nil {
		return ErrEmptySessionUserID
	}
	if s.DeckID == uuid.Nil {
		return ErrEmptySessionDeckID
	}
	if !s.Direction.Valid() {
		return ErrInvalidDirection
	}
	if s.TotalQuestions <= 0 {
		return ErrInvalidTotalQuestions
	}
	if s.CorrectAnswers < 0 || s.CorrectAnswers > s.TotalQuestions {
		return ErrCorrectAnswersOutOfRange
	}
	return nil
}

// IsCompleted reports whether the session has been finalized.
func (s *QuizSession) IsCompleted() bool {
	return s.CompletedAt != nil
}

// Complete finalizes the session with its correct-answer count.
func (s *QuizSession) Complete(correctAnswers int, at time.Time) error {
	if s.IsCompleted() {
		return ErrSessionAlreadyCompleted
	}
	if correctAnswers < 0 || correctAnswers > s.TotalQuestions {
		return fmt.Errorf("%w: %d of %d", ErrCorrectAnswersOutOfRange, correctAnswers, s.TotalQuestions)
	}

	completedAt := at.UTC()
	s.CorrectAnswers = correctAnswers
	s.CompletedAt = &completedAt
	return nil
}
