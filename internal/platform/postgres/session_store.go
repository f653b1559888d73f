package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
	"github.com/phrazzld/vocab-drill/internal/store"
)

// PostgresSessionStore implements store.SessionStore.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.SessionStore = (*PostgresSessionStore)(nil)

// NewPostgresSessionStore creates a session store on db. If logger is nil, a
// default logger is used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// CreateSession implements store.SessionStore.CreateSession. Re-inserting an
// existing ID is a no-op so the write can be retried.
func (s *PostgresSessionStore) CreateSession(ctx context.Context, session *domain.QuizSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.WarnContext(ctx, "session validation failed during create",
			slog.Any("error", err),
			slog.String("session_id", session.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO quiz_sessions
			(id, user_id, deck_id, quiz_type, direction, total_questions, correct_answers, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.DeckID,
		session.QuizType,
		string(session.Direction),
		session.TotalQuestions,
		session.CorrectAnswers,
		session.CreatedAt,
		session.CompletedAt,
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to create quiz session",
			slog.Any("error", err),
			slog.String("session_id", session.ID.String()))
		return MapError(err)
	}

	log.DebugContext(ctx, "quiz session created",
		slog.String("session_id", session.ID.String()),
		slog.Int("total_questions", session.TotalQuestions))
	return nil
}

// RecordAnswer implements store.SessionStore.RecordAnswer.
func (s *PostgresSessionStore) RecordAnswer(ctx context.Context, answer *domain.AnswerRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := answer.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO quiz_answers
			(id, session_id, word_id, user_answer, is_correct, score, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		answer.ID,
		answer.SessionID,
		answer.WordID,
		answer.UserAnswer,
		answer.IsCorrect,
		answer.Score,
		answer.Feedback,
		answer.CreatedAt,
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to record quiz answer",
			slog.Any("error", err),
			slog.String("session_id", answer.SessionID.String()),
			slog.String("answer_id", answer.ID.String()))
		return MapError(err)
	}

	log.DebugContext(ctx, "quiz answer recorded",
		slog.String("session_id", answer.SessionID.String()),
		slog.Int("score", answer.Score))
	return nil
}

// CompleteSession implements store.SessionStore.CompleteSession. Completion
// is written once; a second call reports store.ErrSessionAlreadyCompleted.
func (s *PostgresSessionStore) CompleteSession(
	ctx context.Context,
	sessionID uuid.UUID,
	correctAnswers int,
	completedAt time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE quiz_sessions
		SET correct_answers = $2, completed_at = $3
		WHERE id = $1 AND completed_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, sessionID, correctAnswers, completedAt.UTC())
	if err != nil {
		log.ErrorContext(ctx, "failed to complete quiz session",
			slog.Any("error", err),
			slog.String("session_id", sessionID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrSessionNotFound); err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			return err
		}
		return s.explainMissedCompletion(ctx, sessionID)
	}

	log.DebugContext(ctx, "quiz session completed",
		slog.String("session_id", sessionID.String()),
		slog.Int("correct_answers", correctAnswers))
	return nil
}

// explainMissedCompletion distinguishes an unknown session from one that was
// already completed.
func (s *PostgresSessionStore) explainMissedCompletion(ctx context.Context, sessionID uuid.UUID) error {
	var completedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT completed_at FROM quiz_sessions WHERE id = $1`, sessionID,
	).Scan(&completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrSessionNotFound
	}
	if err != nil {
		return MapError(err)
	}
	if completedAt.Valid {
		return store.ErrSessionAlreadyCompleted
	}
	return fmt.Errorf("%w: session %s was not updated", store.ErrUpdateFailed, sessionID)
}

// WithTx returns a store that runs its statements in tx.
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) *PostgresSessionStore {
	return &PostgresSessionStore{db: tx, logger: s.logger}
}
