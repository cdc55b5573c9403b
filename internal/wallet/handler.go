package wallet

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes wallet endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type walletResponse struct {
	ID             string `json:"id"`
	AccountID      string `json:"account_id"`
	Balance        int64  `json:"balance"`
	PendingBalance int64  `json:"pending_balance"`
	CreatedAt      string `json:"created_at"`
}

func toResponse(w Wallet) walletResponse {
	return walletResponse{
		ID:             w.ID,
		AccountID:      w.AccountID,
		Balance:        w.Balance,
		PendingBalance: w.PendingBalance,
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
	}
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// Deposit credits an account's wallet.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	w, err := h.service.Deposit(c.UserContext(), c.Params("accountID"), req.Amount)
	if err != nil {
		return mapLedgerError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(w))
}

// Withdraw debits an account's wallet and starts a payout.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	w, err := h.service.Withdraw(c.UserContext(), c.Params("accountID"), req.Amount)
	if err != nil {
		return mapLedgerError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(w))
}

type transferRequest struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Amount     int64  `json:"amount"`
	Note       string `json:"note"`
}

type transferRecord struct {
	ID     string `json:"id"`
	Note   string `json:"note"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

// Transfer moves funds between two accounts.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	records, err := h.service.Transfer(c.UserContext(), req.SenderID, req.ReceiverID, req.Amount, req.Note)
	if err != nil {
		return mapLedgerError(err)
	}
	out := make([]transferRecord, 0, len(records))
	for _, tx := range records {
		out = append(out, transferRecord{ID: tx.ID, Note: tx.Note, Amount: tx.Amount, Status: string(tx.Status)})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"records": out})
}

// Get returns the wallet for an account.
func (h *Handler) Get(c *fiber.Ctx) error {
	w, err := h.service.Get(c.UserContext(), c.Params("accountID"))
	if err != nil {
		return mapLedgerError(err)
	}
	return c.Status(http.StatusOK).JSON(toResponse(w))
}

// List returns every wallet.
func (h *Handler) List(c *fiber.Ctx) error {
	wallets, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]walletResponse, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, toResponse(w))
	}
	return c.Status(http.StatusOK).JSON(out)
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrSameAccountTransfer),
		errors.Is(err, ErrInsufficientBalance):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrAccountNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
