package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/uniformhub/account-service/internal/ledger"
)

var (
	// ErrEmailTaken indicates a registration attempt with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation indicates a malformed registration or update request.
	ErrValidation = errors.New("invalid account request")
)

// Service owns account lifecycle operations. Every new account gets a wallet
// in the same call that registers it.
type Service struct {
	repo   Repository
	engine ledger.Engine
	logger *slog.Logger
}

// NewService wires an account service.
func NewService(repo Repository, engine ledger.Engine, logger *slog.Logger) *Service {
	return &Service{repo: repo, engine: engine, logger: logger}
}

// CreateParams carries the inputs for registering an account.
type CreateParams struct {
	Email        string
	Password     string
	Role         Role
	RegisterType RegisterType
}

// Create registers a new account, hashes its password and provisions its
// wallet. Google-registered accounts carry no password.
func (s *Service) Create(ctx context.Context, p CreateParams) (Account, error) {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return Account{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	switch p.Role {
	case RoleAdmin, RoleDesigner, RoleSchool, RoleGarment:
	default:
		return Account{}, fmt.Errorf("%w: unknown role %q", ErrValidation, p.Role)
	}
	if p.RegisterType == "" {
		p.RegisterType = RegisterManual
	}

	if _, err := s.repo.FindByEmail(ctx, p.Email); err == nil {
		return Account{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Account{}, err
	}

	var hash []byte
	if p.RegisterType == RegisterManual {
		if len(p.Password) < 8 {
			return Account{}, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return Account{}, fmt.Errorf("hash password: %w", err)
		}
	}

	acc := Account{
		ID:           uuid.NewString(),
		Email:        p.Email,
		PasswordHash: hash,
		Role:         p.Role,
		RegisterType: p.RegisterType,
		Status:       StatusActive,
		RegisterDate: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, acc); err != nil {
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	if _, err := s.engine.CreateWallet(ctx, acc.ID); err != nil {
		return Account{}, fmt.Errorf("provision wallet: %w", err)
	}

	s.logger.Info("account created", "account_id", acc.ID, "role", acc.Role, "register_type", acc.RegisterType)
	return acc, nil
}

// Authenticate checks an email/password pair and returns the matching active
// account. Lookup failures and password mismatches are indistinguishable to
// the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	acc, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if acc.Status != StatusActive {
		return Account{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)) != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acc, nil
}

// Get returns an account by id.
func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByEmail returns an account by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (Account, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// List returns every non-admin account.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Account, 0, len(all))
	for _, acc := range all {
		if acc.Role == RoleAdmin {
			continue
		}
		out = append(out, acc)
	}
	return out, nil
}

// UpdateStatus sets an account's lifecycle status.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Account, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return Account{}, err
	}
	s.logger.Info("account status updated", "account_id", id, "status", status)
	return s.repo.FindByID(ctx, id)
}

// Delete soft-deletes an account by marking it deleted. Its wallet and
// transaction history remain untouched.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.UpdateStatus(ctx, id, StatusDeleted); err != nil {
		return err
	}
	s.logger.Info("account deleted", "account_id", id)
	return nil
}
