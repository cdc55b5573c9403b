package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uniformhub/account-service/internal/transaction"
	"github.com/uniformhub/account-service/internal/wallet"
)

// PostgresEngine persists wallets and transaction records in PostgreSQL.
// Every mutating operation runs in a single database transaction with the
// affected wallet rows locked, so the balance write and the transaction-record
// write commit or roll back together.
type PostgresEngine struct {
	db *pgxpool.Pool
}

// NewPostgres constructs a Postgres-backed ledger engine.
func NewPostgres(db *pgxpool.Pool) *PostgresEngine {
	return &PostgresEngine{db: db}
}

const walletColumns = `id, account_id, balance, pending_balance, created_at`

const txColumns = `id, sender_id, receiver_id, sender_name, receiver_name, amount,
        payment_type, note, created_at, status, gateway_code, gateway_message, wallet_id`

// CreateWallet provisions a zero-balance wallet for the account, keeping the
// existing one when called twice.
func (e *PostgresEngine) CreateWallet(ctx context.Context, accountID string) (wallet.Wallet, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return wallet.Wallet{}, ErrAccountNotFound
	}
	_, err = e.db.Exec(ctx, `INSERT INTO wallets (id, account_id, balance, pending_balance, created_at)
        VALUES ($1, $2, 0, 0, $3)
        ON CONFLICT (account_id) DO NOTHING`, uuid.New(), id, time.Now().UTC())
	if err != nil {
		return wallet.Wallet{}, fmt.Errorf("create wallet: %w", err)
	}
	return e.WalletByAccount(ctx, accountID)
}

// Deposit credits the wallet and records a COMPLETED DEPOSIT transaction.
func (e *PostgresEngine) Deposit(ctx context.Context, accountID string, amount int64) (wallet.Wallet, transaction.Transaction, error) {
	if amount <= 0 {
		return wallet.Wallet{}, transaction.Transaction{}, ErrInvalidAmount
	}

	tx, err := e.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, fmt.Errorf("begin deposit: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	w, err := lockWallet(ctx, tx, accountID)
	if err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, err
	}
	email, err := accountEmail(ctx, tx, accountID)
	if err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, err
	}

	w.Balance += amount
	if err := writeBalance(ctx, tx, w); err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, err
	}

	rec := transaction.Transaction{
		ReceiverID:   &accountID,
		SenderName:   transaction.SystemParty,
		ReceiverName: email,
		Amount:       amount,
		PaymentType:  transaction.TypeDeposit,
		Note:         "Deposit to wallet",
		Status:       transaction.StatusCompleted,
		WalletID:     w.ID,
	}
	rec, err = insertTransaction(ctx, tx, rec)
	if err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, fmt.Errorf("commit deposit: %w", err)
	}
	return w, rec, nil
}

// Withdraw debits the wallet and records a PENDING WITHDRAW transaction. The
// balance check happens before any write; no partial withdrawal is possible.
func (e *PostgresEngine) Withdraw(ctx context.Context, accountID string, amount int64) (wallet.Wallet, transaction.Transaction, error) {
	if amount <= 0 {
		return wallet.Wallet{}, transaction.Transaction{}, ErrInvalidAmount
	}

	tx, err := e.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, fmt.Errorf("begin withdraw: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	w, err := lockWallet(ctx, tx, accountID)
	if err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, err
	}
	if w.Balance < amount {
		return wallet.Wallet{}, transaction.Transaction{}, ErrInsufficientBalance
	}
	email, err := accountEmail(ctx, tx, accountID)
	if err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, err
	}

	w.Balance -= amount
	if err := writeBalance(ctx, tx, w); err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, err
	}

	rec := transaction.Transaction{
		SenderID:     &accountID,
		SenderName:   email,
		ReceiverName: transaction.SystemParty,
		Amount:       amount,
		PaymentType:  transaction.TypeWithdraw,
		Note:         "Withdraw from wallet",
		Status:       transaction.StatusPending,
		WalletID:     w.ID,
	}
	rec, err = insertTransaction(ctx, tx, rec)
	if err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return wallet.Wallet{}, transaction.Transaction{}, fmt.Errorf("commit withdraw: %w", err)
	}
	return w, rec, nil
}

// Transfer moves funds between two wallets inside one database transaction.
// Wallet rows are locked in ascending account-id order regardless of transfer
// direction, so two opposing transfers on the same pair cannot deadlock.
func (e *PostgresEngine) Transfer(ctx context.Context, senderID, receiverID string, amount int64, note string) ([]transaction.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if senderID == receiverID {
		return nil, ErrSameAccountTransfer
	}

	tx, err := e.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	first, second := senderID, receiverID
	if receiverID < senderID {
		first, second = receiverID, senderID
	}
	locked := make(map[string]wallet.Wallet, 2)
	for _, accountID := range []string{first, second} {
		w, err := lockWallet(ctx, tx, accountID)
		if err != nil {
			return nil, err
		}
		locked[accountID] = w
	}
	sender := locked[senderID]
	receiver := locked[receiverID]

	if sender.Balance < amount {
		return nil, ErrInsufficientBalance
	}

	senderEmail, err := accountEmail(ctx, tx, senderID)
	if err != nil {
		return nil, err
	}
	receiverEmail, err := accountEmail(ctx, tx, receiverID)
	if err != nil {
		return nil, err
	}

	sender.Balance -= amount
	receiver.Balance += amount
	if err := writeBalance(ctx, tx, sender); err != nil {
		return nil, err
	}
	if err := writeBalance(ctx, tx, receiver); err != nil {
		return nil, err
	}

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
	senderTx, err := insertTransaction(ctx, tx, out)
	if err != nil {
		return nil, err
	}

	in := base
	in.Note = "Transfer in: " + note
	in.WalletID = receiver.ID
	receiverTx, err := insertTransaction(ctx, tx, in)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transfer: %w", err)
	}
	return []transaction.Transaction{senderTx, receiverTx}, nil
}

// WalletByAccount fetches the wallet owned by the account.
func (e *PostgresEngine) WalletByAccount(ctx context.Context, accountID string) (wallet.Wallet, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return wallet.Wallet{}, ErrWalletNotFound
	}
	row := e.db.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE account_id = $1`, id)
	w, err := scanWallet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return wallet.Wallet{}, ErrWalletNotFound
	}
	return w, err
}

// Wallets lists every wallet.
func (e *PostgresEngine) Wallets(ctx context.Context) ([]wallet.Wallet, error) {
	rows, err := e.db.Query(ctx, `SELECT `+walletColumns+` FROM wallets ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var out []wallet.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// TransactionByID fetches a single transaction record.
func (e *PostgresEngine) TransactionByID(ctx context.Context, id string) (transaction.Transaction, error) {
	txID, err := uuid.Parse(id)
	if err != nil {
		return transaction.Transaction{}, ErrTransactionNotFound
	}
	row := e.db.QueryRow(ctx, `SELECT `+txColumns+` FROM transactions WHERE id = $1`, txID)
	rec, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return transaction.Transaction{}, ErrTransactionNotFound
	}
	return rec, err
}

// Transactions lists every transaction record in insertion order.
func (e *PostgresEngine) Transactions(ctx context.Context) ([]transaction.Transaction, error) {
	return e.queryTransactions(ctx, `SELECT `+txColumns+` FROM transactions ORDER BY created_at`)
}

// TransactionsByAccount lists transactions where the account is sender or receiver.
func (e *PostgresEngine) TransactionsByAccount(ctx context.Context, accountID string) ([]transaction.Transaction, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	return e.queryTransactions(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE sender_id = $1 OR receiver_id = $1 ORDER BY created_at`, id)
}

// TransactionsByWallet lists transactions owned by the wallet.
func (e *PostgresEngine) TransactionsByWallet(ctx context.Context, walletID string) ([]transaction.Transaction, error) {
	id, err := uuid.Parse(walletID)
	if err != nil {
		return nil, ErrWalletNotFound
	}
	return e.queryTransactions(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE wallet_id = $1 ORDER BY created_at`, id)
}

// UpdateTransactionStatus overwrites the status and gateway passthrough fields.
func (e *PostgresEngine) UpdateTransactionStatus(ctx context.Context, id string, status transaction.Status, gatewayCode, gatewayMessage *string) (transaction.Transaction, error) {
	txID, err := uuid.Parse(id)
	if err != nil {
		return transaction.Transaction{}, ErrTransactionNotFound
	}
	row := e.db.QueryRow(ctx, `UPDATE transactions
        SET status = $2, gateway_code = $3, gateway_message = $4
        WHERE id = $1
        RETURNING `+txColumns, txID, string(status), gatewayCode, gatewayMessage)
	rec, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return transaction.Transaction{}, ErrTransactionNotFound
	}
	return rec, err
}

func (e *PostgresEngine) queryTransactions(ctx context.Context, sql string, args ...any) ([]transaction.Transaction, error) {
	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []transaction.Transaction
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func lockWallet(ctx context.Context, tx pgx.Tx, accountID string) (wallet.Wallet, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return wallet.Wallet{}, ErrWalletNotFound
	}
	row := tx.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE account_id = $1 FOR UPDATE`, id)
	w, err := scanWallet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return wallet.Wallet{}, ErrWalletNotFound
	}
	return w, err
}

func accountEmail(ctx context.Context, tx pgx.Tx, accountID string) (string, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return "", ErrAccountNotFound
	}
	var email string
	if err := tx.QueryRow(ctx, `SELECT email FROM accounts WHERE id = $1`, id).Scan(&email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrAccountNotFound
		}
		return "", fmt.Errorf("lookup account %s: %w", accountID, err)
	}
	return email, nil
}

func writeBalance(ctx context.Context, tx pgx.Tx, w wallet.Wallet) error {
	walletID, err := uuid.Parse(w.ID)
	if err != nil {
		return fmt.Errorf("wallet id %q: %w", w.ID, err)
	}
	if _, err := tx.Exec(ctx, `UPDATE wallets SET balance = $2, pending_balance = $3 WHERE id = $1`,
		walletID, w.Balance, w.PendingBalance); err != nil {
		return fmt.Errorf("update wallet %s: %w", w.ID, err)
	}
	return nil
}

func insertTransaction(ctx context.Context, tx pgx.Tx, rec transaction.Transaction) (transaction.Transaction, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()

	var senderID, receiverID *uuid.UUID
	if rec.SenderID != nil {
		id, err := uuid.Parse(*rec.SenderID)
		if err != nil {
			return transaction.Transaction{}, ErrAccountNotFound
		}
		senderID = &id
	}
	if rec.ReceiverID != nil {
		id, err := uuid.Parse(*rec.ReceiverID)
		if err != nil {
			return transaction.Transaction{}, ErrAccountNotFound
		}
		receiverID = &id
	}

	if _, err := tx.Exec(ctx, `INSERT INTO transactions
        (id, sender_id, receiver_id, sender_name, receiver_name, amount,
         payment_type, note, created_at, status, gateway_code, gateway_message, wallet_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		uuid.MustParse(rec.ID), senderID, receiverID, rec.SenderName, rec.ReceiverName, rec.Amount,
		string(rec.PaymentType), rec.Note, rec.CreatedAt, string(rec.Status),
		rec.GatewayCode, rec.GatewayMessage, uuid.MustParse(rec.WalletID)); err != nil {
		return transaction.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWallet(row rowScanner) (wallet.Wallet, error) {
	var (
		w         wallet.Wallet
		id        uuid.UUID
		accountID uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &accountID, &w.Balance, &w.PendingBalance, &createdAt); err != nil {
		return wallet.Wallet{}, err
	}
	w.ID = id.String()
	w.AccountID = accountID.String()
	w.CreatedAt = createdAt.UTC()
	return w, nil
}

func scanTransaction(row rowScanner) (transaction.Transaction, error) {
	var (
		rec         transaction.Transaction
		id          uuid.UUID
		senderID    *uuid.UUID
		receiverID  *uuid.UUID
		paymentType string
		status      string
		createdAt   time.Time
		walletID    uuid.UUID
	)
	if err := row.Scan(&id, &senderID, &receiverID, &rec.SenderName, &rec.ReceiverName, &rec.Amount,
		&paymentType, &rec.Note, &createdAt, &status, &rec.GatewayCode, &rec.GatewayMessage, &walletID); err != nil {
		return transaction.Transaction{}, err
	}
	rec.ID = id.String()
	if senderID != nil {
		s := senderID.String()
		rec.SenderID = &s
	}
	if receiverID != nil {
		s := receiverID.String()
		rec.ReceiverID = &s
	}
	rec.PaymentType = transaction.PaymentType(paymentType)
	rec.Status = transaction.Status(status)
	rec.CreatedAt = createdAt.UTC()
	rec.WalletID = walletID.String()
	return rec, nil
}
