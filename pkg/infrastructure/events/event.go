package events

import (
	"time"
)

// Event is one recorded calculation outcome.
type Event interface {
	Type() string
	StreamID() string
	Data() any
	Timestamp() time.Time
	// Version counts events within the stream, starting at 1.
	Version() int
}

// EventHandler receives events it has subscribed to. A handler error is
// logged by the store and never reaches the publisher.
type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// EventStore is what the calculator service publishes to and what the
// metrics recorder subscribes to.
type EventStore interface {
	AppendEvent(streamID string, event Event) error
	Subscribe(eventTypes []string, handler EventHandler) error
}

// BaseEvent is the stored form of every event. Payloads are the value
// types in calc_events.go.
type BaseEvent struct {
	EventType    string
	Stream       string
	EventData    any
	EventTime    time.Time
	EventVersion int
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) StreamID() string     { return e.Stream }
func (e BaseEvent) Data() any            { return e.EventData }
func (e BaseEvent) Timestamp() time.Time { return e.EventTime }
func (e BaseEvent) Version() int         { return e.EventVersion }

// NewEvent stamps data with the current time. The store assigns the
// stream version on append.
func NewEvent(eventType, streamID string, data any) Event {
	return BaseEvent{
		EventType: eventType,
		Stream:    streamID,
		EventData: data,
		EventTime: time.Now(),
	}
}
