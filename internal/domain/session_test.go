package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewQuizSession(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	deckID := uuid.New()

	session, err := NewQuizSession(userID, deckID, DirectionSourceToTarget, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if session.ID == uuid.Nil {
		t.Error("Expected non-nil session ID")
	}
	if session.TotalQuestions != 5 {
		t.Errorf("Expected 5 total questions, got %d", session.TotalQuestions)
	}
	if session.CorrectAnswers != 0 {
		t.Errorf("Expected 0 correct answers, got %d", session.CorrectAnswers)
	}
	if session.CompletedAt != nil {
		t.Error("Expected nil CompletedAt for a new session")
	}
	if session.QuizType != QuizTypeSentence {
		t.Errorf("Expected quiz type %q, got %q", QuizTypeSentence, session.QuizType)
	}

	if _, err := NewQuizSession(userID, deckID, DirectionSourceToTarget, 0); err != ErrInvalidTotalQuestions {
		t.Errorf("Expected %v, got %v", ErrInvalidTotalQuestions, err)
	}
	if _, err := NewQuizSession(uuid.Nil, deckID, DirectionSourceToTarget, 3); err != ErrEmptySessionUserID {
		t.Errorf("Expected %v, got %v", ErrEmptySessionUserID, err)
	}
	if _, err := NewQuizSession(userID, deckID, Direction("sideways"), 3); err != ErrInvalidDirection {
		t.Errorf("Expected %v, got %v", ErrInvalidDirection, err)
	}
}

func TestQuizSessionComplete(t *testing.T) {
	t.Parallel()

	session, err := NewQuizSession(uuid.New(), uuid.New(), DirectionTargetToSource, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := session.Complete(6, time.Now()); !errors.Is(err, ErrCorrectAnswersOutOfRange) {
		t.Errorf("Expected out of range error, got %v", err)
	}
	if err := session.Complete(-1, time.Now()); !errors.Is(err, ErrCorrectAnswersOutOfRange) {
		t.Errorf("Expected out of range error, got %v", err)
	}
	if session.IsCompleted() {
		t.Fatal("Session must not be completed after rejected attempts")
	}

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := session.Complete(3, at); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !session.IsCompleted() || !session.CompletedAt.Equal(at) {
		t.Errorf("Expected CompletedAt %v, got %v", at, session.CompletedAt)
	}
	if session.CorrectAnswers != 3 {
		t.Errorf("Expected 3 correct answers, got %d", session.CorrectAnswers)
	}

	if err := session.Complete(1, time.Now()); err != ErrSessionAlreadyCompleted {
		t.Errorf("Expected %v, got %v", ErrSessionAlreadyCompleted, err)
	}
	if session.CorrectAnswers != 3 || !session.CompletedAt.Equal(at) {
		t.Error("Completed session must not change on a second Complete")
	}
}
