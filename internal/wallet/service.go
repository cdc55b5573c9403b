package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uniformhub/account-service/internal/events"
	"github.com/uniformhub/account-service/internal/gateway"
	"github.com/uniformhub/account-service/internal/transaction"
)

// Engine is the slice of the ledger engine the wallet service drives. The
// full engine in internal/ledger satisfies it.
type Engine interface {
	Deposit(ctx context.Context, accountID string, amount int64) (Wallet, transaction.Transaction, error)
	Withdraw(ctx context.Context, accountID string, amount int64) (Wallet, transaction.Transaction, error)
	Transfer(ctx context.Context, senderID, receiverID string, amount int64, note string) ([]transaction.Transaction, error)
	WalletByAccount(ctx context.Context, accountID string) (Wallet, error)
	Wallets(ctx context.Context) ([]Wallet, error)
}

// Service coordinates wallet movements: it drives the ledger engine,
// requests gateway disbursements for money leaving the platform and emits
// events for downstream consumers.
type Service struct {
	engine    Engine
	processor gateway.Processor
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService wires a wallet service.
func NewService(engine Engine, processor gateway.Processor, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{engine: engine, processor: processor, publisher: publisher, logger: logger}
}

// Deposit credits an account's wallet and records a completed deposit.
func (s *Service) Deposit(ctx context.Context, accountID string, amount int64) (Wallet, error) {
	w, tx, err := s.engine.Deposit(ctx, accountID, amount)
	if err != nil {
		return Wallet{}, err
	}
	s.emit(ctx, events.KindTransactionCompleted, tx)
	return w, nil
}

// Withdraw debits an account's wallet, records a pending withdrawal and asks
// the gateway to pay the funds out. The gateway reference is logged for
// reconciliation; settlement arrives later through a status update.
func (s *Service) Withdraw(ctx context.Context, accountID string, amount int64) (Wallet, error) {
	w, tx, err := s.engine.Withdraw(ctx, accountID, amount)
	if err != nil {
		return Wallet{}, err
	}

	receipt, err := s.processor.RequestDisbursement(ctx, gateway.DisbursementRequest{
		AccountID: accountID,
		Email:     tx.SenderName,
		Amount:    amount,
	})
	if err != nil {
		// The ledger already holds the pending withdrawal; the gateway
		// request can be retried from the transaction record.
		s.logger.Error("disbursement request failed", "transaction_id", tx.ID, "error", err)
	} else {
		s.logger.Info("disbursement requested", "transaction_id", tx.ID, "reference", receipt.Reference, "code", receipt.Code)
	}

	s.emit(ctx, events.KindTransactionPending, tx)
	return w, nil
}

// Transfer moves funds between two accounts and reports the resulting
// transaction records, outgoing side first.
func (s *Service) Transfer(ctx context.Context, senderID, receiverID string, amount int64, note string) ([]transaction.Transaction, error) {
	records, err := s.engine.Transfer(ctx, senderID, receiverID, amount, note)
	if err != nil {
		return nil, err
	}
	for _, tx := range records {
		s.emit(ctx, events.KindTransactionCompleted, tx)
	}
	return records, nil
}

// Get returns the wallet belonging to an account.
func (s *Service) Get(ctx context.Context, accountID string) (Wallet, error) {
	return s.engine.WalletByAccount(ctx, accountID)
}

// List returns every wallet.
func (s *Service) List(ctx context.Context) ([]Wallet, error) {
	return s.engine.Wallets(ctx)
}

// emit publishes a transaction event. Delivery failures are logged, never
// surfaced: the ledger write already committed.
func (s *Service) emit(ctx context.Context, kind string, tx transaction.Transaction) {
	if s.publisher == nil {
		return
	}
	event := events.TransactionEvent{
		Kind:          kind,
		TransactionID: tx.ID,
		SenderID:      tx.SenderID,
		ReceiverID:    tx.ReceiverID,
		Amount:        tx.Amount,
		PaymentType:   string(tx.PaymentType),
		Status:        string(tx.Status),
		OccurredAt:    tx.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish transaction event", "transaction_id", tx.ID, "error", fmt.Errorf("publish: %w", err))
	}
}
