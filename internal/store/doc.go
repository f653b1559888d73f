// Package store defines the persistence boundaries of the quiz engine.
//
// SessionStore records quiz sessions and their answers; DeckStore reads the
// decks and words that quizzes draw from. Implementations live in
// internal/platform/postgres. Errors returned by implementations wrap the
// sentinels declared here so callers can classify them with errors.Is.
package store
