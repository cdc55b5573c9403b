package transaction_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/uniformhub/account-service/internal/transaction"
)

func TestListByWalletUnknownWallet(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.ListByWallet(context.Background(), "99999999-9999-9999-9999-999999999999"); !errors.Is(err, transaction.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}

	h := transaction.NewHandler(svc)
	app := fiber.New()
	app.Get("/wallets/by-id/:walletID/transactions", h.ListByWallet)

	req := httptest.NewRequest(fiber.MethodGet, "/wallets/by-id/99999999-9999-9999-9999-999999999999/transactions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusNotFound)
	}
}
