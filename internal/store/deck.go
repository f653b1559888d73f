package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
)

// DeckStore reads and imports vocabulary decks.
type DeckStore interface {
	// GetDeck retrieves a deck by its ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListWords returns every word of a deck ordered by creation time.
	// Returns an empty slice for an empty deck.
	ListWords(ctx context.Context, deckID uuid.UUID) ([]domain.Word, error)

	// CreateDeckWithWords stores a deck and its words atomically.
	CreateDeckWithWords(ctx context.Context, deck *domain.Deck, words []domain.Word) error

	// WithTx returns a DeckStore that runs its statements in tx.
	WithTx(tx *sql.Tx) DeckStore
}
