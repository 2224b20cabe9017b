// Package pubsub delivers change notifications to in-process subscribers.
//
// A document publishes the identity of every top-level it creates, updates or removes on a
// Broker[string]; the logger publishes formatted lines the same way.
package pubsub

import (
	"context"
	"time"
)

// EventType names the kind of change an event reports.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Event is one published change. Seq increases by one per Publish on a broker, so a subscriber
// can tell how many events it missed.
type Event[T any] struct {
	Seq     uint64
	Type    EventType
	Payload T
	Time    time.Time
}

// Subscriber opens subscriptions, optionally limited to some event types.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context, types ...EventType) <-chan Event[T]
}

// Publisher publishes events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
