package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
)

// SessionStore persists quiz sessions and their graded answers.
//
// All writes are idempotent on the entity ID so a caller may safely retry a
// write whose outcome is unknown.
type SessionStore interface {
	// CreateSession stores a new, not yet completed session. The session's ID
	// identifies it in later calls.
	CreateSession(ctx context.Context, session *domain.QuizSession) error

	// RecordAnswer appends one graded answer to its session.
	RecordAnswer(ctx context.Context, answer *domain.AnswerRecord) error

	// CompleteSession records the final correct-answer count and completion
	// time. Returns ErrSessionNotFound if the session does not exist and
	// ErrSessionAlreadyCompleted if its completion was already recorded.
	CompleteSession(ctx context.Context, sessionID uuid.UUID, correctAnswers int, completedAt time.Time) error
}
