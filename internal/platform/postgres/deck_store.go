package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
	"github.com/phrazzld/vocab-drill/internal/store"
)

// PostgresDeckStore implements store.DeckStore.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.DeckStore = (*PostgresDeckStore)(nil)

// NewPostgresDeckStore creates a deck store on db. If logger is nil, a
// default logger is used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// GetDeck implements store.DeckStore.GetDeck.
func (s *PostgresDeckStore) GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, source_language, target_language, created_at
		FROM decks
		WHERE id = $1
	`
	var deck domain.Deck
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&deck.ID,
		&deck.UserID,
		&deck.Name,
		&deck.SourceLanguage,
		&deck.TargetLanguage,
		&deck.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.DebugContext(ctx, "deck not found", slog.String("deck_id", id.String()))
		return nil, store.ErrDeckNotFound
	}
	if err != nil {
		log.ErrorContext(ctx, "failed to get deck", slog.Any("error", err), slog.String("deck_id", id.String()))
		return nil, MapError(err)
	}
	return &deck, nil
}

// ListWords implements store.DeckStore.ListWords.
func (s *PostgresDeckStore) ListWords(ctx context.Context, deckID uuid.UUID) ([]domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, word_type, source_term, target_term, details, created_at
		FROM words
		WHERE deck_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		log.ErrorContext(ctx, "failed to list words", slog.Any("error", err), slog.String("deck_id", deckID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	words := make([]domain.Word, 0)
	for rows.Next() {
		var (
			w       domain.Word
			details []byte
		)
		if err := rows.Scan(&w.ID, &w.DeckID, &w.WordType, &w.SourceTerm, &w.TargetTerm, &details, &w.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &w.Details); err != nil {
				log.WarnContext(ctx, "ignoring unreadable word details",
					slog.String("word_id", w.ID.String()),
					slog.Any("error", err))
			}
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.DebugContext(ctx, "listed deck words", slog.String("deck_id", deckID.String()), slog.Int("count", len(words)))
	return words, nil
}

// CreateDeckWithWords implements store.DeckStore.CreateDeckWithWords. The
// caller provides atomicity by running it on a transaction-scoped store
// (see WithTx and store.RunInTransaction).
func (s *PostgresDeckStore) CreateDeckWithWords(ctx context.Context, deck *domain.Deck, words []domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decks (id, user_id, name, source_language, target_language, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, deck.ID, deck.UserID, deck.Name, deck.SourceLanguage, deck.TargetLanguage, deck.CreatedAt)
	if err != nil {
		log.ErrorContext(ctx, "failed to create deck", slog.Any("error", err), slog.String("deck_id", deck.ID.String()))
		return MapError(err)
	}

	for i := range words {
		w := &words[i]
		if err := w.Validate(); err != nil {
			return fmt.Errorf("%w: word %d: %w", store.ErrInvalidEntity, i, err)
		}

		var details []byte
		if w.Details != nil {
			if details, err = json.Marshal(w.Details); err != nil {
				return fmt.Errorf("%w: word %d details: %v", store.ErrInvalidEntity, i, err)
			}
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO words (id, deck_id, word_type, source_term, target_term, details, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, w.ID, w.DeckID, w.WordType, w.SourceTerm, w.TargetTerm, details, w.CreatedAt)
		if err != nil {
			log.ErrorContext(ctx, "failed to create word",
				slog.Any("error", err),
				slog.String("deck_id", deck.ID.String()),
				slog.Int("index", i))
			return MapError(err)
		}
	}

	log.InfoContext(ctx, "deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", deck.UserID.String()),
		slog.Int("word_count", len(words)))
	return nil
}

// WithTx implements store.DeckStore.WithTx.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{db: tx, logger: s.logger}
}
