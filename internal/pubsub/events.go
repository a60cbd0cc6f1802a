// Package pubsub provides a small generic publish/subscribe broker used to
// fan registration lifecycle events and log lines out to interested listeners.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	SubmittedEvent EventType = "submitted"
	SucceededEvent EventType = "succeeded"
	FailedEvent    EventType = "failed"
	LoggedEvent    EventType = "logged"
)

// Event carries a typed payload together with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes payloads of a single type.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
