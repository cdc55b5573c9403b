package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/uniformhub/account-service/internal/account"
)

// Handler exposes login endpoints.
type Handler struct {
	svc *Service
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and returns an access token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	pair, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(pair)
}

// GoogleURL hands the client the Google consent page URL.
func (h *Handler) GoogleURL(c *fiber.Ctx) error {
	state := uuid.NewString()
	return c.Status(http.StatusOK).JSON(fiber.Map{"url": h.svc.GoogleURL(state), "state": state})
}

// GoogleCallback completes the OAuth code flow and returns an access token.
func (h *Handler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return fiber.NewError(http.StatusBadRequest, "code is required")
	}
	pair, err := h.svc.LoginWithGoogle(c.UserContext(), code)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnverifiedEmail), errors.Is(err, account.ErrInvalidCredentials):
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		default:
			return fiber.NewError(http.StatusBadGateway, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(pair)
}
