package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/uniformhub/account-service/internal/account"
	"github.com/uniformhub/account-service/internal/auth"
	"github.com/uniformhub/account-service/internal/config"
	"github.com/uniformhub/account-service/internal/events"
	"github.com/uniformhub/account-service/internal/gateway"
	"github.com/uniformhub/account-service/internal/ledger"
	"github.com/uniformhub/account-service/internal/middleware"
	"github.com/uniformhub/account-service/internal/transaction"
	"github.com/uniformhub/account-service/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
	Events events.Publisher
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cfg.IsDev() {
		// Plain text access log for local runs: [HH:MM:SS] 200 -  145ms METHOD /path
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Storage backends: Postgres in real deployments, in-memory in DB-less
	// development mode.
	var accountRepo account.Repository
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
	} else {
		accountRepo = account.NewMemoryRepository()
	}

	var engine ledger.Engine
	if d.DB != nil {
		engine = ledger.NewPostgres(d.DB)
	} else {
		engine = ledger.NewInMemory(ledger.DirectoryFunc(func(ctx context.Context, accountID string) (string, error) {
			acc, err := accountRepo.FindByID(ctx, accountID)
			if err != nil {
				return "", ledger.ErrAccountNotFound
			}
			return acc.Email, nil
		}))
	}

	publisher := d.Events
	if publisher == nil {
		publisher = events.NewLogPublisher(d.Logger)
	}

	// Services and handlers
	accountSvc := account.NewService(accountRepo, engine, d.Logger)
	issuer := auth.NewTokenIssuer(d.Cfg.JWTSecret, d.Cfg.JWTIssuer, d.Cfg.AccessTTL)
	authSvc := auth.NewService(accountSvc, issuer, auth.NewGoogleOAuth(d.Cfg), d.Logger)
	walletSvc := wallet.NewService(engine, gateway.StaticProcessor{}, publisher, d.Logger)
	txSvc := transaction.NewService(engine)

	accountHandler := account.NewHandler(accountSvc)
	authHandler := auth.NewHandler(authSvc)
	walletHandler := wallet.NewHandler(walletSvc)
	txHandler := transaction.NewHandler(txSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRateMax)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Authenticated routes
	jwtmw := middleware.JWTAuth(issuer)
	protected := api.Group("", jwtmw)
	protected.Get("/me", func(c *fiber.Ctx) error {
		accountID, _ := c.Locals(middleware.LocalAccountID).(string)
		if accountID == "" {
			return c.SendStatus(http.StatusUnauthorized)
		}
		acc, err := accountSvc.Get(c.UserContext(), accountID)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "account not found")
		}
		w, _ := walletSvc.Get(c.UserContext(), accountID)
		return c.JSON(fiber.Map{
			"account_id":    acc.ID,
			"email":         acc.Email,
			"role":          acc.Role,
			"status":        acc.Status,
			"register_date": acc.RegisterDate,
			"wallet_id":     w.ID,
			"balance":       w.Balance,
		})
	})

	// Back-office routes
	admin := protected.Group("", middleware.RequireRole(string(account.RoleAdmin)))
	RegisterAccountRoutes(admin, accountHandler)
	RegisterWalletRoutes(admin, walletHandler)
	RegisterTransactionRoutes(admin, txHandler)

	return nil
}
