package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/uniformhub/account-service/internal/ledger"
	"github.com/uniformhub/account-service/internal/transaction"
)

const (
	schoolID   = "11111111-1111-1111-1111-111111111111"
	designerID = "22222222-2222-2222-2222-222222222222"
)

func newTestService(t *testing.T) (*transaction.Service, ledger.Engine) {
	t.Helper()
	engine := ledger.NewInMemory(ledger.StaticDirectory{
		schoolID:   "school@example.com",
		designerID: "designer@example.com",
	})
	ctx := context.Background()
	for _, id := range []string{schoolID, designerID} {
		if _, err := engine.CreateWallet(ctx, id); err != nil {
			t.Fatalf("create wallet %s: %v", id, err)
		}
	}
	return transaction.NewService(engine), engine
}

func TestSummarize(t *testing.T) {
	svc, engine := newTestService(t)
	ctx := context.Background()

	// Two completed deposits, one pending withdrawal, one transfer pair.
	if _, _, err := engine.Deposit(ctx, schoolID, 1000); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, _, err := engine.Deposit(ctx, designerID, 500); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, _, err := engine.Withdraw(ctx, schoolID, 200); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := engine.Transfer(ctx, schoolID, designerID, 300, "order 42"); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	summary, err := svc.Summarize(ctx)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.TotalTransactions != 5 {
		t.Fatalf("total transactions = %d, want 5", summary.TotalTransactions)
	}
	if summary.TotalAmount != 1000+500+200+300+300 {
		t.Fatalf("total amount = %d", summary.TotalAmount)
	}
	if summary.CompletedCount != 4 {
		t.Fatalf("completed = %d, want 4", summary.CompletedCount)
	}
	if summary.PendingCount != 1 {
		t.Fatalf("pending = %d, want 1", summary.PendingCount)
	}
}

func TestSummarizeAccount(t *testing.T) {
	svc, engine := newTestService(t)
	ctx := context.Background()

	if _, _, err := engine.Deposit(ctx, schoolID, 1000); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, _, err := engine.Deposit(ctx, designerID, 500); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := engine.Transfer(ctx, schoolID, designerID, 300, "order 42"); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	// The designer sees their own deposit plus both transfer legs.
	summary, err := svc.SummarizeAccount(ctx, designerID)
	if err != nil {
		t.Fatalf("summarize account: %v", err)
	}
	if summary.TotalTransactions != 3 {
		t.Fatalf("total transactions = %d, want 3", summary.TotalTransactions)
	}
	if summary.TotalAmount != 500+300+300 {
		t.Fatalf("total amount = %d", summary.TotalAmount)
	}
	if summary.CompletedCount != 3 || summary.PendingCount != 0 {
		t.Fatalf("counts = %d/%d", summary.CompletedCount, summary.PendingCount)
	}
}

func TestSummarizeEmptyLog(t *testing.T) {
	svc, _ := newTestService(t)
	summary, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary != (transaction.Summary{}) {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestUpdateStatusValidatesInput(t *testing.T) {
	svc, engine := newTestService(t)
	ctx := context.Background()

	_, tx, err := engine.Withdraw(ctx, schoolID, 0)
	if !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, _, err := engine.Deposit(ctx, schoolID, 100); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, tx, err = engine.Withdraw(ctx, schoolID, 50); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, tx.ID, "SETTLED", nil, nil); !errors.Is(err, transaction.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	code, msg := "00", "approved"
	updated, err := svc.UpdateStatus(ctx, tx.ID, "completed", &code, &msg)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != transaction.StatusCompleted {
		t.Fatalf("status = %s", updated.Status)
	}
	if updated.GatewayCode == nil || *updated.GatewayCode != "00" {
		t.Fatalf("gateway code = %v", updated.GatewayCode)
	}
}

func TestUpdateStatusUnknownTransaction(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.UpdateStatus(context.Background(), "99999999-9999-9999-9999-999999999999", "FAILED", nil, nil); !errors.Is(err, transaction.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByWallet(t *testing.T) {
	svc, engine := newTestService(t)
	ctx := context.Background()

	w, _, err := engine.Deposit(ctx, schoolID, 100)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := engine.Transfer(ctx, schoolID, designerID, 40, "sample kit"); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	records, err := svc.ListByWallet(ctx, w.ID)
	if err != nil {
		t.Fatalf("list by wallet: %v", err)
	}
	// Deposit plus the outgoing transfer side belong to the school wallet.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, tx := range records {
		if tx.WalletID != w.ID {
			t.Fatalf("record %s belongs to wallet %s", tx.ID, tx.WalletID)
		}
	}
}
