package quiz

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/domain"
	"github.com/phrazzld/vocab-drill/internal/events"
	"github.com/phrazzld/vocab-drill/internal/generation"
	"github.com/stretchr/testify/mock"
)

// MockSessionStore is a testify mock for store.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateSession(ctx context.Context, session *domain.QuizSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionStore) RecordAnswer(ctx context.Context, answer *domain.AnswerRecord) error {
	return m.Called(ctx, answer).Error(0)
}

func (m *MockSessionStore) CompleteSession(ctx context.Context, sessionID uuid.UUID, correct int, completedAt time.Time) error {
	return m.Called(ctx, sessionID, correct, completedAt).Error(0)
}

// echoGenerator returns one question per requested word, using the word's
// target term as the reference translation.
type echoGenerator struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (g *echoGenerator) Generate(_ context.Context, req generation.SentenceRequest) ([]domain.GeneratedQuestion, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	out := make([]domain.GeneratedQuestion, len(req.Words))
	for i, w := range req.Words {
		out[i] = domain.GeneratedQuestion{
			WordID:       w.ID,
			OriginalWord: req.Direction.DisplayedTerm(w),
			Sentence:     "sentence with " + req.Direction.DisplayedTerm(w),
			Translation:  "translation " + w.TargetTerm,
		}
	}
	return out, nil
}

// scriptedGrader returns outcomes in order and records requests.
type scriptedGrader struct {
	mu       sync.Mutex
	outcomes []domain.GradeOutcome
	requests []generation.GradeRequest

	// gate, when set, blocks Grade until closed.
	gate    chan struct{}
	entered chan struct{}
}

func (g *scriptedGrader) Grade(_ context.Context, req generation.GradeRequest) domain.GradeOutcome {
	if g.entered != nil {
		g.entered <- struct{}{}
	}
	if g.gate != nil {
		<-g.gate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if len(g.outcomes) == 0 {
		return domain.NewGradeOutcome(100, "ok", "")
	}
	o := g.outcomes[0]
	g.outcomes = g.outcomes[1:]
	return o
}

// recordingEmitter keeps every emitted event.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.SessionEvent
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.SessionEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *recordingEmitter) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Type
	}
	return out
}
