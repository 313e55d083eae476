package workers

import (
	"context"

	"storefront-server/internal/clients/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// EventMessage is the domain event envelope read from the topic.
type EventMessage = kafka.EventMessage

// EventProcessor handles one event. Implementations must be idempotent: an
// event whose Process call failed is redelivered after a restart.
type EventProcessor interface {
	Process(ctx context.Context, event EventMessage) error
	Name() string
}

// EventConsumer feeds a topic into an EventProcessor.
type EventConsumer interface {
	// Start blocks until Stop is called or ctx is cancelled.
	Start(ctx context.Context) error
	// Stop drains in-flight events and returns after shutdown.
	Stop()
}

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}
