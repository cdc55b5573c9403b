package wallet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/uniformhub/account-service/internal/events"
	"github.com/uniformhub/account-service/internal/gateway"
	"github.com/uniformhub/account-service/internal/ledger"
	"github.com/uniformhub/account-service/internal/logging"
	"github.com/uniformhub/account-service/internal/wallet"
)

type recordingProcessor struct {
	requests []gateway.DisbursementRequest
	err      error
}

func (p *recordingProcessor) RequestDisbursement(_ context.Context, input gateway.DisbursementRequest) (gateway.Receipt, error) {
	p.requests = append(p.requests, input)
	if p.err != nil {
		return gateway.Receipt{}, p.err
	}
	return gateway.Receipt{Reference: "ref-1", Code: "00", Message: "approved"}, nil
}

type recordingPublisher struct {
	published []events.TransactionEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.TransactionEvent) error {
	p.published = append(p.published, event)
	return nil
}

const (
	schoolID   = "11111111-1111-1111-1111-111111111111"
	designerID = "22222222-2222-2222-2222-222222222222"
)

func newTestService(t *testing.T) (*wallet.Service, *recordingProcessor, *recordingPublisher) {
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
	proc := &recordingProcessor{}
	pub := &recordingPublisher{}
	return wallet.NewService(engine, proc, pub, logging.Discard()), proc, pub
}

func TestDepositPublishesCompletedEvent(t *testing.T) {
	svc, proc, pub := newTestService(t)
	ctx := context.Background()

	w, err := svc.Deposit(ctx, schoolID, 500)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if w.Balance != 500 {
		t.Fatalf("balance = %d", w.Balance)
	}
	if len(proc.requests) != 0 {
		t.Fatalf("deposit should not touch the gateway, got %d requests", len(proc.requests))
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.published))
	}
	ev := pub.published[0]
	if ev.Kind != events.KindTransactionCompleted || ev.Amount != 500 {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestWithdrawRequestsDisbursement(t *testing.T) {
	svc, proc, pub := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, schoolID, 500); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
	w, err := svc.Withdraw(ctx, schoolID, 200)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if w.Balance != 300 {
		t.Fatalf("balance = %d", w.Balance)
	}
	if len(proc.requests) != 1 {
		t.Fatalf("expected 1 disbursement request, got %d", len(proc.requests))
	}
	req := proc.requests[0]
	if req.AccountID != schoolID || req.Email != "school@example.com" || req.Amount != 200 {
		t.Fatalf("unexpected disbursement request %+v", req)
	}
	last := pub.published[len(pub.published)-1]
	if last.Kind != events.KindTransactionPending {
		t.Fatalf("expected pending event, got %s", last.Kind)
	}
}

func TestWithdrawInsufficientSkipsGateway(t *testing.T) {
	svc, proc, pub := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Withdraw(ctx, schoolID, 200); !errors.Is(err, wallet.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if len(proc.requests) != 0 {
		t.Fatalf("gateway should not be called, got %d requests", len(proc.requests))
	}
	if len(pub.published) != 0 {
		t.Fatalf("no events expected, got %d", len(pub.published))
	}
}

func TestWithdrawSucceedsWhenGatewayFails(t *testing.T) {
	svc, proc, _ := newTestService(t)
	proc.err = errors.New("gateway timeout")
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, schoolID, 500); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
	w, err := svc.Withdraw(ctx, schoolID, 200)
	if err != nil {
		t.Fatalf("withdraw should not fail on gateway error: %v", err)
	}
	if w.Balance != 300 {
		t.Fatalf("balance = %d", w.Balance)
	}
}

func TestTransferPublishesBothRecords(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, schoolID, 1000); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}
	pub.published = nil

	records, err := svc.Transfer(ctx, schoolID, designerID, 400, "spring uniforms")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if len(pub.published) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.published))
	}
	for _, ev := range pub.published {
		if ev.Kind != events.KindTransactionCompleted || ev.Amount != 400 {
			t.Fatalf("unexpected event %+v", ev)
		}
	}
}

func TestMissingWalletError(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "33333333-3333-3333-3333-333333333333")
	if !errors.Is(err, wallet.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, ledger.ErrWalletNotFound) {
		t.Fatalf("engine error does not match the wallet sentinel: %v", err)
	}
}
