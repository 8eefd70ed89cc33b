package events

import "context"

// Publisher sends ledger lifecycle events to an external broker.
type Publisher interface {
	// Publish serializes the event and writes it to the topic.
	Publish(ctx context.Context, topic string, event any) error
	// Close releases broker connections.
	Close() error
}

// NoopPublisher discards every event. Used when no brokers are configured.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) Publish(ctx context.Context, topic string, event any) error { return nil }

func (NoopPublisher) Close() error { return nil }
