// Package service contains the application use cases. QuizService owns the
// per-learner quiz controllers and loads decks through the store interfaces,
// so the API layer never touches persistence or the quiz state machine
// directly.
package service
