package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Word classes commonly found in imported decks. Any other tag is accepted.
const (
	WordTypeNoun      = "noun"
	WordTypeVerb      = "verb"
	WordTypeAdjective = "adjective"
	WordTypeParticle  = "particle"
)

// Common validation errors for Word
var (
	ErrEmptyWordID     = errors.New("word ID cannot be empty")
	ErrEmptyWordDeckID = errors.New("word deck ID cannot be empty")
	ErrEmptySourceTerm = errors.New("word source term cannot be empty")
	ErrEmptyTargetTerm = errors.New("word target term cannot be empty")
)

// Word is a single vocabulary item owned by a deck. It is treated as immutable
// for the duration of a quiz session.
type Word struct {
	ID         uuid.UUID      `json:"id"`
	DeckID     uuid.UUID      `json:"deck_id"`
	WordType   string         `json:"word_type"`
	SourceTerm string         `json:"source_term"`
	TargetTerm string         `json:"target_term"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewWord creates a new Word belonging to deckID.
func NewWord(deckID uuid.UUID, wordType, sourceTerm, targetTerm string, details map[string]any) (*Word, error) {
	w := &Word{
		ID:         uuid.New(),
		DeckID:     deckID,
		WordType:   strings.TrimSpace(wordType),
		SourceTerm: strings.TrimSpace(sourceTerm),
		TargetTerm: strings.TrimSpace(targetTerm),
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWordID
	}
	if w.DeckID == uuid.Nil {
		return ErrEmptyWordDeckID
	}
	if w.SourceTerm == "" {
		return ErrEmptySourceTerm
	}
	if w.TargetTerm == "" {
		return ErrEmptyTargetTerm
	}
	return nil
}
