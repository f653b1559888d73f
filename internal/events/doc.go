// Package events carries quiz-session lifecycle milestones to observers.
//
// The quiz controller emits a SessionEvent when a session starts, an answer is
// graded, generation or a persistence write fails, and a session completes.
// Observers such as the metrics collector subscribe to a Bus, optionally for a
// subset of event types, so that the quiz logic never knows who is listening.
package events
