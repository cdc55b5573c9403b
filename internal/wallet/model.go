package wallet

import "time"

// Wallet is the per-account balance record. Balances are integer minor
// currency units and never go negative. Each account owns exactly one wallet,
// linked through AccountID.
type Wallet struct {
	ID             string
	AccountID      string
	Balance        int64
	PendingBalance int64
	CreatedAt      time.Time
}
