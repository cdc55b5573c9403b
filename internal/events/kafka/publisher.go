// Package kafka publishes transaction events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/uniformhub/account-service/internal/events"
)

// Publisher writes transaction events to Kafka, keyed by transaction id so
// updates to one transaction stay ordered within a partition.
type Publisher struct {
	writer *kafkago.Writer
}

// NewPublisher wraps an existing Kafka writer.
func NewPublisher(writer *kafkago.Writer) *Publisher {
	return &Publisher{writer: writer}
}

// Publish marshals the event as JSON and appends it to the topic.
func (p *Publisher) Publish(ctx context.Context, event events.TransactionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transaction event: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(event.TransactionID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish transaction event: %w", err)
	}
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
