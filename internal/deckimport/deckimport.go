// Package deckimport loads vocabulary decks from the legacy JSON word-list
// format into the deck store.
//
// A file holds an array of entries:
//
//	[{"id": 1, "deck_id": "quranic-arabic", "word_type": "noun",
//	  "source_term": "كِتَاب", "target_term": "book", "details": {...}}]
//
// Entry IDs and deck_id slugs are not preserved. Every entry becomes a word of
// one new deck owned by the importing user.
package deckimport

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
	"github.com/phrazzld/vocab-drill/internal/store"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultWordType is assigned to entries without a word_type.
const DefaultWordType = "unknown"

var (
	// ErrEmptyDeck is returned for a file without entries.
	ErrEmptyDeck = errors.New("deck file has no entries")

	// ErrMalformedFile is returned when the file is not a JSON entry array.
	ErrMalformedFile = errors.New("malformed deck file")
)

// Entry is one word of a deck file.
type Entry struct {
	ID         json.Number    `json:"id"`
	DeckID     string         `json:"deck_id"`
	WordType   string         `json:"word_type"`
	SourceTerm string         `json:"source_term"`
	TargetTerm string         `json:"target_term"`
	Details    map[string]any `json:"details"`
}

// Parse decodes a deck file.
func Parse(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var entries []Entry
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyDeck
	}
	return entries, nil
}

// DeckName derives a display name: the first deck_id slug in title case, or
// the file name without its extension.
func DeckName(entries []Entry, path string) string {
	for _, e := range entries {
		slug := strings.TrimSpace(e.DeckID)
		if slug == "" {
			continue
		}
		words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
		return cases.Title(language.Und).String(strings.Join(words, " "))
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Options describe the deck being created.
type Options struct {
	UserID         uuid.UUID
	Name           string
	SourceLanguage string
	TargetLanguage string
}

// Build turns entries into a validated deck and its words.
func Build(entries []Entry, opts Options) (*domain.Deck, []domain.Word, error) {
	deck, err := domain.NewDeck(opts.UserID, opts.Name, opts.SourceLanguage, opts.TargetLanguage)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid deck: %w", err)
	}

	words := make([]domain.Word, 0, len(entries))
	for i, e := range entries {
		wordType := strings.TrimSpace(e.WordType)
		if wordType == "" {
			wordType = DefaultWordType
		}
		w, err := domain.NewWord(deck.ID, wordType, e.SourceTerm, e.TargetTerm, e.Details)
		if err != nil {
			return nil, nil, fmt.Errorf("entry %d (id %s): %w", i, e.ID, err)
		}
		words = append(words, *w)
	}
	return deck, words, nil
}

// Importer stores decks atomically.
type Importer struct {
	db     *sql.DB
	decks  store.DeckStore
	logger *slog.Logger
}

// NewImporter creates an Importer. decks must be bound to db.
func NewImporter(db *sql.DB, decks store.DeckStore, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{
		db:     db,
		decks:  decks,
		logger: log.With(slog.String("component", "deck_importer")),
	}
}

// Import parses data and stores the resulting deck in one transaction. The
// deck name defaults to DeckName(entries, path) when opts.Name is empty.
func (im *Importer) Import(ctx context.Context, data []byte, path string, opts Options) (*domain.Deck, error) {
	entries, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.Name) == "" {
		opts.Name = DeckName(entries, path)
	}

	deck, words, err := Build(entries, opts)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithLogger(ctx, im.logger)
	err = store.RunInTransaction(ctx, im.db, func(ctx context.Context, tx *sql.Tx) error {
		return im.decks.WithTx(tx).CreateDeckWithWords(ctx, deck, words)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store deck %q: %w", deck.Name, err)
	}

	im.logger.InfoContext(ctx, "deck imported",
		slog.String("deck_id", deck.ID.String()),
		slog.String("name", deck.Name),
		slog.Int("words", len(words)))
	return deck, nil
}
