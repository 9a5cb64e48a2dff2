// Package pubsub fans events out to any number of subscribers. Publishing
// never blocks: a subscriber that falls behind loses events, and the broker
// counts what was dropped.
package pubsub

import (
	"context"
	"time"
)

// EventType names what an event carries.
type EventType string

const (
	EntryEvent         EventType = "entry" // a log entry
	StageStartedEvent  EventType = "stage_started"
	StageFinishedEvent EventType = "stage_finished"
	LinkEvent          EventType = "link"
)

// Event is one published payload. Seq increases by one per Publish call on
// a broker, so a subscriber can detect gaps left by dropped events.
type Event[T any] struct {
	Seq       uint64
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
