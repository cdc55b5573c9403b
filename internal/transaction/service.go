package transaction

import "context"

// Ledger is the slice of the ledger engine the transaction read side needs.
type Ledger interface {
	TransactionByID(ctx context.Context, id string) (Transaction, error)
	Transactions(ctx context.Context) ([]Transaction, error)
	TransactionsByAccount(ctx context.Context, accountID string) ([]Transaction, error)
	TransactionsByWallet(ctx context.Context, walletID string) ([]Transaction, error)
	UpdateTransactionStatus(ctx context.Context, id string, status Status, gatewayCode, gatewayMessage *string) (Transaction, error)
}

// Service exposes the transaction log read side and gateway-driven status
// updates.
type Service struct {
	ledger Ledger
}

// NewService wires a transaction service.
func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// Get returns a single transaction by id.
func (s *Service) Get(ctx context.Context, id string) (Transaction, error) {
	return s.ledger.TransactionByID(ctx, id)
}

// List returns every transaction, oldest first.
func (s *Service) List(ctx context.Context) ([]Transaction, error) {
	return s.ledger.Transactions(ctx)
}

// ListByAccount returns the transactions an account participated in, as
// sender or receiver.
func (s *Service) ListByAccount(ctx context.Context, accountID string) ([]Transaction, error) {
	return s.ledger.TransactionsByAccount(ctx, accountID)
}

// ListByWallet returns the transactions recorded against a wallet.
func (s *Service) ListByWallet(ctx context.Context, walletID string) ([]Transaction, error) {
	return s.ledger.TransactionsByWallet(ctx, walletID)
}

// UpdateStatus applies a gateway settlement result to a transaction. The raw
// status string is validated before it reaches the ledger.
func (s *Service) UpdateStatus(ctx context.Context, id, rawStatus string, gatewayCode, gatewayMessage *string) (Transaction, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return Transaction{}, err
	}
	return s.ledger.UpdateTransactionStatus(ctx, id, status, gatewayCode, gatewayMessage)
}

// Summary aggregates the whole transaction log.
type Summary struct {
	TotalTransactions int   `json:"total_transactions"`
	TotalAmount       int64 `json:"total_amount"`
	CompletedCount    int   `json:"completed_count"`
	PendingCount      int   `json:"pending_count"`
}

// Summarize computes log-wide totals in memory.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	all, err := s.ledger.Transactions(ctx)
	if err != nil {
		return Summary{}, err
	}
	return summarize(all), nil
}

// SummarizeAccount computes totals over the transactions an account took part
// in, as sender or receiver.
func (s *Service) SummarizeAccount(ctx context.Context, accountID string) (Summary, error) {
	records, err := s.ledger.TransactionsByAccount(ctx, accountID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(records), nil
}

func summarize(records []Transaction) Summary {
	var out Summary
	out.TotalTransactions = len(records)
	for _, tx := range records {
		out.TotalAmount += tx.Amount
		switch tx.Status {
		case StatusCompleted:
			out.CompletedCount++
		case StatusPending:
			out.PendingCount++
		}
	}
	return out
}
