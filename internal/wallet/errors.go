package wallet

import (
	"errors"

	"github.com/uniformhub/account-service/internal/transaction"
)

// Operation sentinels for wallet movements. They live next to the Wallet
// type so handlers can match on them without depending on an engine
// implementation; the ledger package re-exports them under its own names.
var (
	// ErrInvalidAmount occurs when a movement is requested with a
	// non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrSameAccountTransfer occurs when sender and receiver of a transfer
	// are the same account.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

	// ErrNotFound indicates no wallet exists for the given account.
	ErrNotFound = transaction.ErrWalletNotFound

	// ErrInsufficientBalance indicates the wallet balance does not cover the
	// requested amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAccountNotFound indicates a referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")
)
