package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/uniformhub/account-service/internal/transaction"
	"github.com/uniformhub/account-service/internal/wallet"
)

type inMemoryEngine struct {
	mu           sync.Mutex
	dir          AccountDirectory
	byAccount    map[string]*wallet.Wallet
	byWalletID   map[string]*wallet.Wallet
	transactions []transaction.Transaction
	byTxID       map[string]int
}

// NewInMemory creates a concurrency-safe in-memory ledger engine. It backs
// unit tests and DB-less development mode.
func NewInMemory(dir AccountDirectory) Engine {
	return &inMemoryEngine{
		dir:        dir,
		byAccount:  make(map[string]*wallet.Wallet),
		byWalletID: make(map[string]*wallet.Wallet),
		byTxID:     make(map[string]int),
	}
}

func (e *inMemoryEngine) CreateWallet(ctx context.Context, accountID string) (wallet.Wallet, error) {
	if _, err := e.dir.Lookup(ctx, accountID); err != nil {
		return wallet.Wallet{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if w, ok := e.byAccount[accountID]; ok {
		return *w, nil
	}
	w := &wallet.Wallet{
		ID:        uuid.NewString(),
		AccountID: accountID,
		CreatedAt: time.Now().UTC(),
	}
	e.byAccount[accountID] = w
	e.byWalletID[w.ID] = w
	return *w, nil
}

func (e *inMemoryEngine) Deposit(ctx context.Context, accountID string, amount int64) (wallet.Wallet, transaction.Transaction, error) {
	if amount <= 0 {
		return wallet.Wallet{}, transaction.Transaction{}, ErrInvalidAmount
	}
	email, err := e.dir.Lookup(ctx, accountID)
	if err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	w, ok := e.byAccount[accountID]
	if !ok {
		return wallet.Wallet{}, transaction.Transaction{}, ErrWalletNotFound
	}
	w.Balance += amount

	tx := e.record(transaction.Transaction{
		ReceiverID:   &accountID,
		SenderName:   transaction.SystemParty,
		ReceiverName: email,
		Amount:       amount,
		PaymentType:  transaction.TypeDeposit,
		Note:         "Deposit to wallet",
		Status:       transaction.StatusCompleted,
		WalletID:     w.ID,
	})
	return *w, tx, nil
}

func (e *inMemoryEngine) Withdraw(ctx context.Context, accountID string, amount int64) (wallet.Wallet, transaction.Transaction, error) {
	if amount <= 0 {
		return wallet.Wallet{}, transaction.Transaction{}, ErrInvalidAmount
	}
	email, err := e.dir.Lookup(ctx, accountID)
	if err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	w, ok := e.byAccount[accountID]
	if !ok {
		return wallet.Wallet{}, transaction.Transaction{}, ErrWalletNotFound
	}
	if w.Balance < amount {
		return wallet.Wallet{}, transaction.Transaction{}, ErrInsufficientBalance
	}
	w.Balance -= amount

	tx := e.record(transaction.Transaction{
		SenderID:     &accountID,
		SenderName:   email,
		ReceiverName: transaction.SystemParty,
		Amount:       amount,
		PaymentType:  transaction.TypeWithdraw,
		Note:         "Withdraw from wallet",
		Status:       transaction.StatusPending,
		WalletID:     w.ID,
	})
	return *w, tx, nil
}

func (e *inMemoryEngine) Transfer(ctx context.Context, senderID, receiverID string, amount int64, note string) ([]transaction.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if senderID == receiverID {
		return nil, ErrSameAccountTransfer
	}
	senderEmail, err := e.dir.Lookup(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiverEmail, err := e.dir.Lookup(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sender, ok := e.byAccount[senderID]
	if !ok {
		return nil, ErrWalletNotFound
	}
	receiver, ok := e.byAccount[receiverID]
	if !ok {
		return nil, ErrWalletNotFound
	}
	if sender.Balance < amount {
		return nil, ErrInsufficientBalance
	}

	sender.Balance -= amount
	receiver.Balance += amount

	base := transaction.Transaction{
		SenderID:     &senderID,
		ReceiverID:   &receiverID,
		SenderName:   senderEmail,
		ReceiverName: receiverEmail,
		Amount:       amount,
		PaymentType:  transaction.TypeTransfer,
		Status:       transaction.StatusCompleted,
	}

	out := base
	out.Note = "Transfer out: " + note
	out.WalletID = sender.ID
	senderTx := e.record(out)

	in := base
	in.Note = "Transfer in: " + note
	in.WalletID = receiver.ID
	receiverTx := e.record(in)

	return []transaction.Transaction{senderTx, receiverTx}, nil
}

// record assigns identity and creation time, then appends. Caller holds mu.
func (e *inMemoryEngine) record(tx transaction.Transaction) transaction.Transaction {
	tx.ID = uuid.NewString()
	tx.CreatedAt = time.Now().UTC()
	e.byTxID[tx.ID] = len(e.transactions)
	e.transactions = append(e.transactions, tx)
	return tx
}

func (e *inMemoryEngine) WalletByAccount(_ context.Context, accountID string) (wallet.Wallet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, ok := e.byAccount[accountID]
	if !ok {
		return wallet.Wallet{}, ErrWalletNotFound
	}
	return *w, nil
}

func (e *inMemoryEngine) Wallets(_ context.Context) ([]wallet.Wallet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]wallet.Wallet, 0, len(e.byAccount))
	for _, w := range e.byAccount {
		out = append(out, *w)
	}
	return out, nil
}

func (e *inMemoryEngine) TransactionByID(_ context.Context, id string) (transaction.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.byTxID[id]
	if !ok {
		return transaction.Transaction{}, ErrTransactionNotFound
	}
	return e.transactions[idx], nil
}

func (e *inMemoryEngine) Transactions(_ context.Context) ([]transaction.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]transaction.Transaction, len(e.transactions))
	copy(out, e.transactions)
	return out, nil
}

func (e *inMemoryEngine) TransactionsByAccount(_ context.Context, accountID string) ([]transaction.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []transaction.Transaction
	for _, tx := range e.transactions {
		if (tx.SenderID != nil && *tx.SenderID == accountID) || (tx.ReceiverID != nil && *tx.ReceiverID == accountID) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (e *inMemoryEngine) TransactionsByWallet(_ context.Context, walletID string) ([]transaction.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.byWalletID[walletID]; !ok {
		return nil, ErrWalletNotFound
	}
	var out []transaction.Transaction
	for _, tx := range e.transactions {
		if tx.WalletID == walletID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (e *inMemoryEngine) UpdateTransactionStatus(_ context.Context, id string, status transaction.Status, gatewayCode, gatewayMessage *string) (transaction.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.byTxID[id]
	if !ok {
		return transaction.Transaction{}, ErrTransactionNotFound
	}
	e.transactions[idx].Status = status
	e.transactions[idx].GatewayCode = gatewayCode
	e.transactions[idx].GatewayMessage = gatewayMessage
	return e.transactions[idx], nil
}
