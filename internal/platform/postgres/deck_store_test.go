package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckStore_GetDeck(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresDeckStore(db, nil)

		deckID, userID := uuid.New(), uuid.New()
		created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM decks").
			WithArgs(deckID).
			WillReturnRows(sqlmock.NewRows(
				[]string{"id", "user_id", "name", "source_language", "target_language", "created_at"},
			).AddRow(deckID.String(), userID.String(), "Basics", "English", "Arabic", created))

		deck, err := s.GetDeck(context.Background(), deckID)
		require.NoError(t, err)
		assert.Equal(t, deckID, deck.ID)
		assert.Equal(t, userID, deck.UserID)
		assert.Equal(t, "Arabic", deck.TargetLanguage)
		assert.Equal(t, created, deck.CreatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresDeckStore(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM decks").WillReturnError(sql.ErrNoRows)

		_, err := s.GetDeck(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrDeckNotFound)
	})
}

func TestDeckStore_ListWords(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresDeckStore(db, nil)

	deckID := uuid.New()
	w1, w2 := uuid.New(), uuid.New()
	now := time.Now().UTC()
	cols := []string{"id", "deck_id", "word_type", "source_term", "target_term", "details", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM words").
		WithArgs(deckID).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(w1.String(), deckID.String(), "noun", "book", "كِتَاب", []byte(`{"plural":"كُتُب"}`), now).
			AddRow(w2.String(), deckID.String(), "verb", "to write", "كَتَبَ", nil, now))

	words, err := s.ListWords(context.Background(), deckID)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, w1, words[0].ID)
	assert.Equal(t, "كُتُب", words[0].Details["plural"])
	assert.Equal(t, "to write", words[1].SourceTerm)
	assert.Nil(t, words[1].Details)
}

func TestDeckStore_ListWords_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresDeckStore(db, nil)

	mock.ExpectQuery("SELECT (.+) FROM words").
		WillReturnRows(sqlmock.NewRows([]string{"id", "deck_id", "word_type", "source_term", "target_term", "details", "created_at"}))

	words, err := s.ListWords(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, words)
	assert.Empty(t, words)
}

func TestDeckStore_CreateDeckWithWords(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresDeckStore(db, nil)

	deck, err := domain.NewDeck(uuid.New(), "Travel", "English", "Spanish")
	require.NoError(t, err)
	word, err := domain.NewWord(deck.ID, domain.WordTypeNoun, "train", "tren", map[string]any{"gender": "m"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO decks").
		WithArgs(deck.ID, deck.UserID, "Travel", "English", "Spanish", deck.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO words").
		WithArgs(word.ID, deck.ID, "noun", "train", "tren", []byte(`{"gender":"m"}`), word.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).CreateDeckWithWords(ctx, deck, []domain.Word{*word})
	})
	require.NoError(t, err)
}

func TestDeckStore_CreateDeckWithWords_InvalidWordRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresDeckStore(db, nil)

	deck, err := domain.NewDeck(uuid.New(), "Travel", "English", "Spanish")
	require.NoError(t, err)
	bad := domain.Word{ID: uuid.New(), DeckID: deck.ID, SourceTerm: "train"}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO decks").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).CreateDeckWithWords(ctx, deck, []domain.Word{bad})
	})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrEmptyTargetTerm)
}
