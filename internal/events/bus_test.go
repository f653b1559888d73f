package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/vocab-drill/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(t *testing.T, eventType string) *SessionEvent {
	t.Helper()
	event, err := NewSessionEvent(eventType, uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	return event
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus(nil)
	assert.NoError(t, bus.EmitEvent(context.Background(), newEvent(t, SessionStarted)))
}

func TestBus_DeliversToEverySubscriber(t *testing.T) {
	bus := NewBus(nil)
	all := &MockEventHandler{}
	also := &MockEventHandler{}
	bus.Subscribe(all)
	bus.Subscribe(also)

	event := newEvent(t, SessionCompleted)
	require.NoError(t, bus.EmitEvent(context.Background(), event))

	assert.Equal(t, 1, all.HandledCount)
	assert.Equal(t, 1, also.HandledCount)
	assert.Equal(t, event, all.LastEvent)
}

func TestBus_FiltersByType(t *testing.T) {
	bus := NewBus(nil)
	failures := &MockEventHandler{}
	bus.Subscribe(failures, PersistenceFailed, GenerationFailed)

	ctx := context.Background()
	require.NoError(t, bus.EmitEvent(ctx, newEvent(t, SessionStarted)))
	require.NoError(t, bus.EmitEvent(ctx, newEvent(t, AnswerGraded)))
	assert.Equal(t, 0, failures.HandledCount)

	require.NoError(t, bus.EmitEvent(ctx, newEvent(t, PersistenceFailed)))
	assert.Equal(t, 1, failures.HandledCount)
	assert.Equal(t, PersistenceFailed, failures.LastEvent.Type)
}

func TestBus_JoinsHandlerFailures(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	bus := NewBus(log)

	errMetrics := errors.New("metrics unavailable")
	errAudit := errors.New("audit unavailable")
	failing := &MockEventHandler{HandlerError: errMetrics}
	healthy := &MockEventHandler{}
	alsoFailing := &MockEventHandler{HandlerError: errAudit}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)
	bus.Subscribe(alsoFailing)

	event := newEvent(t, AnswerGraded)
	err := bus.EmitEvent(context.Background(), event)

	require.Error(t, err)
	assert.ErrorIs(t, err, errMetrics)
	assert.ErrorIs(t, err, errAudit)
	assert.Equal(t, 1, healthy.HandledCount, "a failing handler does not stop delivery")
	assert.Equal(t, 1, alsoFailing.HandledCount)

	logger.AssertLogContains(t, buf, "session event not fully handled")
	logger.AssertLogContains(t, buf, event.SessionID.String())
}

func TestBus_RejectsNilEvent(t *testing.T) {
	assert.Error(t, NewBus(nil).EmitEvent(context.Background(), nil))
}
