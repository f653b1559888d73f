// Package quiz runs sentence-translation quiz sessions.
//
// A Controller owns one learner's session for one deck and drives it through
// configuring, generating, active, grading, answered and complete. Word
// selection, sentence generation, grading and persistence are injected so the
// state machine can be exercised without a network or database.
package quiz
