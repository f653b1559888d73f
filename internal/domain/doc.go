// Package domain contains the core quiz entities of the application: decks and
// their vocabulary words, translation directions, generated questions, grade
// outcomes, answer records and quiz sessions. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
