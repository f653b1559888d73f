package domain

import "fmt"

// Direction describes which language the tested sentence is shown in and which
// language the learner must answer in. It is fixed for a session.
type Direction string

// Supported directions.
const (
	DirectionSourceToTarget Direction = "source_to_target"
	DirectionTargetToSource Direction = "target_to_source"
)

// ParseDirection converts a raw string into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	switch d {
	case DirectionSourceToTarget, DirectionTargetToSource:
		return true
	default:
		return false
	}
}

// SentenceLanguage returns the language generated sentences are written in.
func (d Direction) SentenceLanguage(deck *Deck) string {
	if d == DirectionTargetToSource {
		return deck.TargetLanguage
	}
	return deck.SourceLanguage
}

// AnswerLanguage returns the language the learner translates into.
func (d Direction) AnswerLanguage(deck *Deck) string {
	if d == DirectionTargetToSource {
		return deck.SourceLanguage
	}
	return deck.TargetLanguage
}

// DisplayedTerm returns the term of w that is shown as the word being tested.
// The opposite-direction term is never displayed.
func (d Direction) DisplayedTerm(w Word) string {
	if d == DirectionTargetToSource {
		return w.TargetTerm
	}
	return w.SourceTerm
}
