package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uniformhub/account-service/internal/account"
)

// ErrUnverifiedEmail indicates a Google login whose email Google has not
// verified.
var ErrUnverifiedEmail = errors.New("google email not verified")

// Service issues tokens for password and Google logins.
type Service struct {
	accounts *account.Service
	tokens   *TokenIssuer
	google   GoogleConnector
	logger   *slog.Logger
}

// NewService wires the auth service.
func NewService(accounts *account.Service, tokens *TokenIssuer, google GoogleConnector, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, tokens: tokens, google: google, logger: logger}
}

// TokenPair is the response to a successful login.
type TokenPair struct {
	AccountID   string `json:"account_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login validates an email/password pair and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, error) {
	acc, err := s.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return TokenPair{}, err
	}
	return s.issue(acc)
}

// GoogleURL returns the consent page URL for the given state value.
func (s *Service) GoogleURL(state string) string {
	return s.google.ConsentURL(state)
}

// LoginWithGoogle completes the OAuth code flow. First-time Google users are
// registered on the fly with the school role.
func (s *Service) LoginWithGoogle(ctx context.Context, code string) (TokenPair, error) {
	profile, err := s.google.FetchProfile(ctx, code)
	if err != nil {
		return TokenPair{}, err
	}
	if !profile.VerifiedEmail {
		return TokenPair{}, ErrUnverifiedEmail
	}

	acc, err := s.accounts.GetByEmail(ctx, profile.Email)
	switch {
	case err == nil:
	case errors.Is(err, account.ErrNotFound):
		acc, err = s.accounts.Create(ctx, account.CreateParams{
			Email:        profile.Email,
			Role:         account.RoleSchool,
			RegisterType: account.RegisterGoogle,
		})
		if err != nil {
			return TokenPair{}, fmt.Errorf("register google account: %w", err)
		}
		s.logger.Info("google account registered", "account_id", acc.ID, "email", acc.Email)
	default:
		return TokenPair{}, err
	}

	if acc.Status != account.StatusActive {
		return TokenPair{}, account.ErrInvalidCredentials
	}
	return s.issue(acc)
}

func (s *Service) issue(acc account.Account) (TokenPair, error) {
	token, exp, err := s.tokens.Generate(acc)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccountID:   acc.ID,
		Email:       acc.Email,
		Role:        string(acc.Role),
		AccessToken: token,
		ExpiresIn:   int64(time.Until(exp).Seconds()),
	}, nil
}
