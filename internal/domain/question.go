package domain

import "github.com/google/uuid"

// GeneratedQuestion is one practice sentence produced for a selected word.
// WordID is a back-reference to the word, not ownership. OriginalWord is the
// tested term in the sentence language.
type GeneratedQuestion struct {
	WordID       uuid.UUID `json:"wordId"`
	OriginalWord string    `json:"originalWord"`
	Sentence     string    `json:"sentence"`
	Translation  string    `json:"translation"`
}
