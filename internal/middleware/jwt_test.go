package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/uniformhub/account-service/internal/account"
	"github.com/uniformhub/account-service/internal/auth"
)

func setupAuthApp(t *testing.T, issuer *auth.TokenIssuer) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/admin", JWTAuth(issuer), RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"account_id": c.Locals(LocalAccountID)})
	})
	return app
}

func TestJWTAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", "account-service-test", time.Hour)
	app := setupAuthApp(t, issuer)

	req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireRole(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", "account-service-test", time.Hour)
	app := setupAuthApp(t, issuer)

	adminToken, _, err := issuer.Generate(account.Account{ID: "11111111-1111-1111-1111-111111111111", Email: "ops@example.com", Role: account.RoleAdmin})
	if err != nil {
		t.Fatalf("generate admin token: %v", err)
	}
	schoolToken, _, err := issuer.Generate(account.Account{ID: "22222222-2222-2222-2222-222222222222", Email: "school@example.com", Role: account.RoleSchool})
	if err != nil {
		t.Fatalf("generate school token: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("admin: expected 200, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+schoolToken)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("school on admin route: expected 403, got %d", resp.StatusCode)
	}
}
