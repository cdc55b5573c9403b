package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/uniformhub/account-service/internal/wallet"
)

// RegisterWalletRoutes wires wallet-related endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallets", h.List)
	r.Get("/wallets/:accountID", h.Get)
	r.Post("/wallets/:accountID/deposit", h.Deposit)
	r.Post("/wallets/:accountID/withdraw", h.Withdraw)
	r.Post("/wallets/transfer", h.Transfer)
}
