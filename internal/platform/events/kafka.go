package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// EntryPostedEvent is emitted when a journal entry transitions to POSTED.
type EntryPostedEvent struct {
	EntryID        string    `json:"entryID"`
	OrganizationID string    `json:"organizationID"`
	EntryNumber    string    `json:"entryNumber"`
	EntryDate      time.Time `json:"entryDate"`
	PostedBy       string    `json:"postedBy"`
	PostedAt       time.Time `json:"postedAt"`
}

// EntryReversedEvent is emitted when a posted entry is reversed.
type EntryReversedEvent struct {
	OriginalEntryID  string    `json:"originalEntryID"`
	ReversingEntryID string    `json:"reversingEntryID"`
	OrganizationID   string    `json:"organizationID"`
	ReversedBy       string    `json:"reversedBy"`
	ReversedAt       time.Time `json:"reversedAt"`
}

// KafkaPublisher writes ledger events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher for the given brokers.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Publish serializes the event as JSON and writes it to the topic.
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for topic %s: %w", topic, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: payload,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish event to topic %s: %w", topic, err)
	}
	return nil
}

// Close releases broker connections.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
