package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session lifecycle event types.
const (
	SessionStarted    = "session_started"
	GenerationFailed  = "generation_failed"
	AnswerGraded      = "answer_graded"
	SessionCompleted  = "session_completed"
	PersistenceFailed = "persistence_failed"
)

// SessionEvent records one lifecycle milestone of a quiz session.
type SessionEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the session lifecycle event types
	Type string `json:"type"`

	// SessionID is uuid.Nil for events raised before a session exists,
	// such as GenerationFailed.
	SessionID uuid.UUID `json:"session_id"`
	UserID    uuid.UUID `json:"user_id"`

	// Payload contains event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *SessionEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewSessionEvent creates a SessionEvent with the given type and payload.
// A nil payload produces an event without one.
func NewSessionEvent(eventType string, sessionID, userID uuid.UUID, payload any) (*SessionEvent, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &SessionEvent{
		ID:        uuid.New(),
		Type:      eventType,
		SessionID: sessionID,
		UserID:    userID,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// AnswerGradedPayload accompanies AnswerGraded events.
type AnswerGradedPayload struct {
	QuestionIndex int  `json:"question_index"`
	Score         int  `json:"score"`
	IsCorrect     bool `json:"is_correct"`
	Fallback      bool `json:"fallback"`
}

// SessionCompletedPayload accompanies SessionCompleted events.
type SessionCompletedPayload struct {
	CorrectAnswers int `json:"correct_answers"`
	TotalQuestions int `json:"total_questions"`
	Percentage     int `json:"percentage"`
}

// PersistenceFailedPayload accompanies PersistenceFailed events.
type PersistenceFailedPayload struct {
	Operation string `json:"operation"`
	Error     string `json:"error"`
}

// GenerationFailedPayload accompanies GenerationFailed events.
type GenerationFailedPayload struct {
	Reason string `json:"reason"`
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *SessionEvent) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *SessionEvent) error
}
