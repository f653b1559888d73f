package quiz

import "errors"

var (
	// ErrNoWords is returned when a quiz is requested over an empty word list.
	ErrNoWords = errors.New("no words available for a quiz")

	// ErrInvalidState is returned when an operation is not allowed in the
	// session's current state.
	ErrInvalidState = errors.New("operation not allowed in current quiz state")

	// ErrBusy is returned while generation or another external call is in
	// flight.
	ErrBusy = errors.New("quiz is busy")

	// ErrEmptyAnswer is returned for blank answers.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrGradingInProgress is returned when an answer is submitted while the
	// previous one is still being graded.
	ErrGradingInProgress = errors.New("an answer is already being graded")
)
