package ledger

import "context"

// StaticDirectory is a test helper implementing AccountDirectory over a fixed
// account-id to email map.
type StaticDirectory map[string]string

// Lookup resolves the account email or reports ErrAccountNotFound.
func (d StaticDirectory) Lookup(_ context.Context, accountID string) (string, error) {
	email, ok := d[accountID]
	if !ok {
		return "", ErrAccountNotFound
	}
	return email, nil
}

// SeedBalance is a test helper that sets the balance of an account's wallet
// when using the in-memory engine.
func SeedBalance(e Engine, accountID string, balance int64) {
	if mem, ok := e.(*inMemoryEngine); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		if w, ok := mem.byAccount[accountID]; ok {
			w.Balance = balance
		}
	}
}
