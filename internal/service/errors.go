package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/vocab-drill/internal/quiz"
	"github.com/phrazzld/vocab-drill/internal/store"
)

// Sentinel errors returned by the service layer. The API layer maps them to
// status codes.
var (
	// ErrNotOwned indicates the deck belongs to another learner.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrDeckNotFound indicates the requested deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrNoActiveQuiz indicates the learner has no quiz to act on.
	ErrNoActiveQuiz = errors.New("no active quiz")

	// ErrQuizInProgress indicates the learner must finish or reset the current
	// quiz before starting another.
	ErrQuizInProgress = errors.New("a quiz is already in progress")
)

// ServiceError wraps an unexpected failure with the operation that caused it.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quiz service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("quiz service %s failed: %s", e.Operation, e.Message)
}

// Unwrap supports errors.Is and errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err for operation. Known sentinels are returned as
// they are so callers can match them directly.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrDeckNotFound):
		return ErrDeckNotFound
	case errors.Is(err, ErrNotOwned),
		errors.Is(err, ErrDeckNotFound),
		errors.Is(err, ErrNoActiveQuiz),
		errors.Is(err, ErrQuizInProgress),
		errors.Is(err, quiz.ErrNoWords):
		return err
	}

	return &ServiceError{Operation: operation, Message: message, Err: err}
}
