package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Deck
var (
	ErrEmptyDeckID         = errors.New("deck ID cannot be empty")
	ErrEmptyDeckUserID     = errors.New("deck user ID cannot be empty")
	ErrEmptyDeckName       = errors.New("deck name cannot be empty")
	ErrEmptySourceLanguage = errors.New("deck source language cannot be empty")
	ErrEmptyTargetLanguage = errors.New("deck target language cannot be empty")
)

// Deck is a named vocabulary list owned by a user, pairing a source language
// with a target language.
type Deck struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewDeck creates a new Deck for userID.
func NewDeck(userID uuid.UUID, name, sourceLanguage, targetLanguage string) (*Deck, error) {
	d := &Deck{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           strings.TrimSpace(name),
		SourceLanguage: strings.TrimSpace(sourceLanguage),
		TargetLanguage: strings.TrimSpace(targetLanguage),
		CreatedAt:      time.Now().UTC(),
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDeckID
	}
	if d.UserID == uuid.Nil {
		return ErrEmptyDeckUserID
	}
	if d.Name == "" {
		return ErrEmptyDeckName
	}
	if d.SourceLanguage == "" {
		return ErrEmptySourceLanguage
	}
	if d.TargetLanguage == "" {
		return ErrEmptyTargetLanguage
	}
	return nil
}

// OwnedBy reports whether the deck belongs to userID.
func (d *Deck) OwnedBy(userID uuid.UUID) bool {
	return d.UserID == userID
}
