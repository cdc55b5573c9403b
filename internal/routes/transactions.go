package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/uniformhub/account-service/internal/transaction"
)

// RegisterTransactionRoutes wires transaction log endpoints.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler) {
	r.Get("/transactions", h.List)
	r.Get("/transactions/summary", h.Summary)
	r.Get("/transactions/:id", h.Get)
	r.Put("/transactions/:id/status", h.UpdateStatus)
	r.Get("/accounts/:accountID/transactions", h.ListByAccount)
	r.Get("/accounts/:accountID/transactions/summary", h.AccountSummary)
	r.Get("/wallets/by-id/:walletID/transactions", h.ListByWallet)
}
