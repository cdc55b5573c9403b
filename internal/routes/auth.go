package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/uniformhub/account-service/internal/auth"
)

// RegisterAuthRoutes wires authentication endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Get("/google/url", h.GoogleURL)
	group.Get("/google/callback", h.GoogleCallback)
}
