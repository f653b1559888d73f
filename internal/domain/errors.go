package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDirection is returned when a direction value is not recognized.
	ErrInvalidDirection = errors.New("invalid quiz direction")

	// ErrInvalidScore is returned when a grade score cannot be interpreted.
	ErrInvalidScore = errors.New("invalid score")

	// ErrSessionAlreadyCompleted is returned when a session is finalized twice.
	ErrSessionAlreadyCompleted = errors.New("quiz session already completed")

	// ErrCorrectAnswersOutOfRange is returned when a correct-answer count falls
	// outside [0, total questions].
	ErrCorrectAnswersOutOfRange = errors.New("correct answers out of range")
)
