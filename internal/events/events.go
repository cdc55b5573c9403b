package events

import (
	"context"
	"log/slog"
	"time"
)

const (
	// KindTransactionCompleted marks a ledger movement that reached a
	// terminal successful state.
	KindTransactionCompleted = "transaction_completed"
	// KindTransactionPending marks a movement awaiting gateway settlement.
	KindTransactionPending = "transaction_pending"
)

// TransactionEvent describes a ledger movement for downstream consumers.
type TransactionEvent struct {
	Kind          string    `json:"kind"`
	TransactionID string    `json:"transaction_id"`
	SenderID      *string   `json:"sender_id,omitempty"`
	ReceiverID    *string   `json:"receiver_id,omitempty"`
	Amount        int64     `json:"amount"`
	PaymentType   string    `json:"payment_type"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher delivers transaction events to downstream systems.
type Publisher interface {
	Publish(ctx context.Context, event TransactionEvent) error
}

// LogPublisher is a stub implementation that writes events to the logger.
// It backs development mode when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher constructs a logging publisher stub.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish writes the event to the structured logger.
func (p *LogPublisher) Publish(_ context.Context, event TransactionEvent) error {
	if p == nil || p.logger == nil {
		return nil
	}
	p.logger.Info("transaction event",
		"kind", event.Kind,
		"transaction_id", event.TransactionID,
		"amount", event.Amount,
		"payment_type", event.PaymentType,
		"status", event.Status)
	return nil
}
