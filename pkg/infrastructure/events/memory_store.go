package events

import (
	"log/slog"
	"sync"
)

// DefaultRetention is how many recent events a store keeps for reading back.
const DefaultRetention = 256

// InMemoryEventStore delivers calculation events to subscribers and keeps
// a fixed window of the most recent ones, so a long --watch session does
// not grow without bound.
//
// Subscribers are notified synchronously, in subscription order, after the
// event is stored, so a handler observes events in append order.
type InMemoryEventStore struct {
	mutex       sync.RWMutex
	retention   int
	recent      []Event
	dropped     int
	versions    map[string]int
	subscribers map[string][]EventHandler
	logger      *slog.Logger
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return NewInMemoryEventStoreWithLogger(nil)
}

// NewInMemoryEventStoreWithLogger reports handler failures to logger;
// nil uses slog.Default().
func NewInMemoryEventStoreWithLogger(logger *slog.Logger) *InMemoryEventStore {
	return NewInMemoryEventStoreWithRetention(DefaultRetention, logger)
}

// NewInMemoryEventStoreWithRetention keeps at most retention events; a
// value below 1 keeps none and the store only fans out.
func NewInMemoryEventStoreWithRetention(retention int, logger *slog.Logger) *InMemoryEventStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventStore{
		retention:   max(0, retention),
		versions:    make(map[string]int),
		subscribers: make(map[string][]EventHandler),
		logger:      logger,
	}
}

var _ EventStore = (*InMemoryEventStore)(nil)

// AppendEvent versions event within streamID, retains it and notifies
// subscribers of its type.
func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()

	s.versions[streamID]++
	stored := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: s.versions[streamID],
	}

	if s.retention > 0 {
		if len(s.recent) == s.retention {
			copy(s.recent, s.recent[1:])
			s.recent = s.recent[:len(s.recent)-1]
			s.dropped++
		}
		s.recent = append(s.recent, stored)
	} else {
		s.dropped++
	}

	handlers := append([]EventHandler(nil), s.subscribers[stored.EventType]...)
	s.mutex.Unlock()

	s.notifySubscribers(handlers, stored)
	return nil
}

// ReadEvents returns the retained events of streamID with a version of at
// least fromVersion, oldest first.
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := []Event{}
	for _, e := range s.recent {
		if e.StreamID() == streamID && e.Version() >= fromVersion {
			out = append(out, e)
		}
	}
	return out, nil
}

// ReadAllEvents returns retained events from the absolute append position
// fromPosition onwards. Positions that fell out of the window are skipped.
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	start := max(0, fromPosition-s.dropped)
	if start >= len(s.recent) {
		return []Event{}, nil
	}
	return append([]Event(nil), s.recent[start:]...), nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
	return nil
}

func (s *InMemoryEventStore) notifySubscribers(handlers []EventHandler, event Event) {
	for _, handler := range handlers {
		if !handler.CanHandle(event.Type()) {
			continue
		}
		if err := handler.Handle(event); err != nil {
			s.logger.Error("event handler failed", "event", event.Type(), "stream", event.StreamID(), "err", err)
		}
	}
}
