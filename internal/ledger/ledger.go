package ledger

import (
	"context"

	"github.com/uniformhub/account-service/internal/transaction"
	"github.com/uniformhub/account-service/internal/wallet"
)

// The operation sentinels are declared in the wallet and transaction
// packages, next to the types they concern, and re-exported here so engine
// callers can keep matching through this package.
var (
	ErrInvalidAmount       = wallet.ErrInvalidAmount
	ErrSameAccountTransfer = wallet.ErrSameAccountTransfer
	ErrWalletNotFound      = wallet.ErrNotFound
	ErrInsufficientBalance = wallet.ErrInsufficientBalance
	ErrTransactionNotFound = transaction.ErrNotFound
	ErrAccountNotFound     = wallet.ErrAccountNotFound
)

// AccountDirectory resolves account ids to display labels for transaction
// records. The directory is how the ledger sees the account subsystem; it
// returns ErrAccountNotFound for unknown ids.
type AccountDirectory interface {
	Lookup(ctx context.Context, accountID string) (email string, err error)
}

// DirectoryFunc adapts a plain function to the AccountDirectory interface.
type DirectoryFunc func(ctx context.Context, accountID string) (string, error)

// Lookup calls f.
func (f DirectoryFunc) Lookup(ctx context.Context, accountID string) (string, error) {
	return f(ctx, accountID)
}

// Engine performs all balance-mutating wallet operations with transactional
// guarantees, and serves the read side of wallets and their transaction
// records. Each mutation writes the wallet row(s) and the derived transaction
// record(s) as a single unit: either all of it lands or none of it does.
type Engine interface {
	// CreateWallet provisions a zero-balance wallet for the account. It is
	// idempotent: creating an existing wallet returns the current one.
	CreateWallet(ctx context.Context, accountID string) (wallet.Wallet, error)

	// Deposit credits the account's wallet and records one COMPLETED DEPOSIT
	// transaction owned by it.
	Deposit(ctx context.Context, accountID string, amount int64) (wallet.Wallet, transaction.Transaction, error)

	// Withdraw debits the account's wallet and records one PENDING WITHDRAW
	// transaction owned by it. Withdrawals start pending because the external
	// disbursement settles asynchronously.
	Withdraw(ctx context.Context, accountID string, amount int64) (wallet.Wallet, transaction.Transaction, error)

	// Transfer moves funds between two wallets and records two COMPLETED
	// TRANSFER transactions, one owned by each wallet, sender's first.
	Transfer(ctx context.Context, senderID, receiverID string, amount int64, note string) ([]transaction.Transaction, error)

	WalletByAccount(ctx context.Context, accountID string) (wallet.Wallet, error)
	Wallets(ctx context.Context) ([]wallet.Wallet, error)

	TransactionByID(ctx context.Context, id string) (transaction.Transaction, error)
	Transactions(ctx context.Context) ([]transaction.Transaction, error)
	TransactionsByAccount(ctx context.Context, accountID string) ([]transaction.Transaction, error)
	TransactionsByWallet(ctx context.Context, walletID string) ([]transaction.Transaction, error)

	// UpdateTransactionStatus overwrites status and gateway fields
	// unconditionally; there is no state-machine guard on the prior status.
	UpdateTransactionStatus(ctx context.Context, id string, status transaction.Status, gatewayCode, gatewayMessage *string) (transaction.Transaction, error)
}
