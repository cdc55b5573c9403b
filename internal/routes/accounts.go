package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/uniformhub/account-service/internal/account"
)

// RegisterAccountRoutes wires account management endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/accounts", h.Create)
	r.Get("/accounts", h.List)
	r.Get("/accounts/:id", h.Get)
	r.Put("/accounts/:id/status", h.UpdateStatus)
	r.Delete("/accounts/:id", h.Delete)
}
