package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/phrazzld/vocab-drill/internal/platform/logger"
)

// Bus delivers session events synchronously, in subscription order, to the
// handlers subscribed to their type.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

type subscription struct {
	handler EventHandler
	types   []string // empty means every type
}

func (s subscription) wants(eventType string) bool {
	return len(s.types) == 0 || slices.Contains(s.types, eventType)
}

var _ EventEmitter = (*Bus)(nil)

// NewBus creates an empty Bus. Handler failures are logged through the
// request logger when one is in the context, else through log.
func NewBus(log *slog.Logger) *Bus {
	if log == nil {
		log = slog.Default()
	}
	return &Bus{logger: log.With(slog.String("component", "session_events"))}
}

// Subscribe registers handler for the given event types, or for every type
// when none are given.
func (b *Bus) Subscribe(handler EventHandler, types ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{handler: handler, types: slices.Clone(types)})
}

// EmitEvent delivers event to every matching handler. A failing handler does
// not stop delivery; all failures are joined into the returned error.
func (b *Bus) EmitEvent(ctx context.Context, event *SessionEvent) error {
	if event == nil {
		return errors.New("cannot emit a nil session event")
	}

	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if !sub.wants(event.Type) {
			continue
		}
		if err := sub.handler.HandleEvent(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("%s handler: %w", event.Type, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}

	err := errors.Join(errs...)
	logger.FromContextOrDefault(ctx, b.logger).WarnContext(ctx, "session event not fully handled",
		slog.String("event_type", event.Type),
		slog.String("session_id", event.SessionID.String()),
		slog.String("user_id", event.UserID.String()),
		slog.Int("failed_handlers", len(errs)),
		slog.Any("error", err))
	return err
}
