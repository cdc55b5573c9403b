package transaction

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes transaction log endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a transaction HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transactionResponse struct {
	ID             string  `json:"id"`
	SenderID       *string `json:"sender_id,omitempty"`
	ReceiverID     *string `json:"receiver_id,omitempty"`
	SenderName     string  `json:"sender_name"`
	ReceiverName   string  `json:"receiver_name"`
	Amount         int64   `json:"amount"`
	PaymentType    string  `json:"payment_type"`
	Note           string  `json:"note,omitempty"`
	CreatedAt      string  `json:"created_at"`
	Status         string  `json:"status"`
	GatewayCode    *string `json:"gateway_code,omitempty"`
	GatewayMessage *string `json:"gateway_message,omitempty"`
	WalletID       string  `json:"wallet_id"`
}

func toResponse(tx Transaction) transactionResponse {
	return transactionResponse{
		ID:             tx.ID,
		SenderID:       tx.SenderID,
		ReceiverID:     tx.ReceiverID,
		SenderName:     tx.SenderName,
		ReceiverName:   tx.ReceiverName,
		Amount:         tx.Amount,
		PaymentType:    string(tx.PaymentType),
		Note:           tx.Note,
		CreatedAt:      tx.CreatedAt.Format(time.RFC3339),
		Status:         string(tx.Status),
		GatewayCode:    tx.GatewayCode,
		GatewayMessage: tx.GatewayMessage,
		WalletID:       tx.WalletID,
	}
}

func toResponses(records []Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(records))
	for _, tx := range records {
		out = append(out, toResponse(tx))
	}
	return out
}

// Get returns a single transaction.
func (h *Handler) Get(c *fiber.Ctx) error {
	tx, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(tx))
}

// List returns every transaction.
func (h *Handler) List(c *fiber.Ctx) error {
	records, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponses(records))
}

// ListByAccount returns the transactions an account took part in.
func (h *Handler) ListByAccount(c *fiber.Ctx) error {
	records, err := h.service.ListByAccount(c.UserContext(), c.Params("accountID"))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponses(records))
}

// ListByWallet returns the transactions recorded against a wallet.
func (h *Handler) ListByWallet(c *fiber.Ctx) error {
	records, err := h.service.ListByWallet(c.UserContext(), c.Params("walletID"))
	if err != nil {
		if errors.Is(err, ErrWalletNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponses(records))
}

type updateStatusRequest struct {
	Status         string  `json:"status"`
	GatewayCode    *string `json:"gateway_code"`
	GatewayMessage *string `json:"gateway_message"`
}

// UpdateStatus applies a gateway settlement result.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tx, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status, req.GatewayCode, req.GatewayMessage)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(toResponse(tx))
}

// Summary returns log-wide totals.
func (h *Handler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summarize(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(summary)
}

// AccountSummary returns totals over one account's transactions.
func (h *Handler) AccountSummary(c *fiber.Ctx) error {
	summary, err := h.service.SummarizeAccount(c.UserContext(), c.Params("accountID"))
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(summary)
}
