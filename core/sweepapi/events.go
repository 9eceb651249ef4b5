package sweepapi

import (
	"sync"

	"go.uber.org/zap"

	"github.com/reservefi/sweeper-sdk/core/types"
)

// ZapEventSink writes audit events to a zap logger.
type ZapEventSink struct {
	logger *zap.Logger
}

var _ types.EventSink = (*ZapEventSink)(nil)

// NewZapEventSink creates a sink logging at info level.
func NewZapEventSink(logger *zap.Logger) *ZapEventSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapEventSink{logger: logger}
}

func (s *ZapEventSink) Emit(event types.Event) {
	s.logger.Info("audit event",
		zap.String("kind", string(event.Kind())),
		zap.String("event_id", event.ID().String()),
		zap.Any("event", event),
	)
}

// MemoryEventSink collects events in order. Used by tests and by callers
// that post-process the audit trail of one invocation.
type MemoryEventSink struct {
	mu     sync.Mutex
	events []types.Event
}

var _ types.EventSink = (*MemoryEventSink)(nil)

func NewMemoryEventSink() *MemoryEventSink {
	return &MemoryEventSink{}
}

func (s *MemoryEventSink) Emit(event types.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// Events returns a snapshot of everything emitted so far.
func (s *MemoryEventSink) Events() []types.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Event, len(s.events))
	copy(out, s.events)
	return out
}

// MultiEventSink fans one event out to several sinks, in order.
type MultiEventSink struct {
	sinks []types.EventSink
}

var _ types.EventSink = (*MultiEventSink)(nil)

func NewMultiEventSink(sinks ...types.EventSink) *MultiEventSink {
	return &MultiEventSink{sinks: sinks}
}

func (s *MultiEventSink) Emit(event types.Event) {
	for _, sink := range s.sinks {
		sink.Emit(event)
	}
}
