package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uniformhub/account-service/internal/account"
	"github.com/uniformhub/account-service/internal/ledger"
	"github.com/uniformhub/account-service/internal/logging"
)

type fakeGoogle struct {
	profile GoogleProfile
	err     error
}

func (f fakeGoogle) ConsentURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (f fakeGoogle) FetchProfile(context.Context, string) (GoogleProfile, error) {
	return f.profile, f.err
}

func newTestService(t *testing.T, google GoogleConnector) (*Service, *account.Service) {
	t.Helper()
	repo := account.NewMemoryRepository()
	engine := ledger.NewInMemory(ledger.DirectoryFunc(func(ctx context.Context, accountID string) (string, error) {
		acc, err := repo.FindByID(ctx, accountID)
		if err != nil {
			return "", ledger.ErrAccountNotFound
		}
		return acc.Email, nil
	}))
	accounts := account.NewService(repo, engine, logging.Discard())
	issuer := NewTokenIssuer("test-secret", "account-service-test", time.Hour)
	return NewService(accounts, issuer, google, logging.Discard()), accounts
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, accounts := newTestService(t, fakeGoogle{})
	ctx := context.Background()

	if _, err := accounts.Create(ctx, account.CreateParams{Email: "school@example.com", Password: "correct-horse", Role: account.RoleSchool}); err != nil {
		t.Fatalf("create: %v", err)
	}

	pair, err := svc.Login(ctx, "school@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.ExpiresIn <= 0 {
		t.Fatalf("expires_in = %d", pair.ExpiresIn)
	}

	claims, err := svc.tokens.Parse(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Subject != pair.AccountID {
		t.Fatalf("subject = %s, want %s", claims.Subject, pair.AccountID)
	}
	if claims.Email != "school@example.com" || claims.Role != "school" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, accounts := newTestService(t, fakeGoogle{})
	ctx := context.Background()

	if _, err := accounts.Create(ctx, account.CreateParams{Email: "school@example.com", Password: "correct-horse", Role: account.RoleSchool}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Login(ctx, "school@example.com", "wrong"); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGoogleLoginRegistersNewAccount(t *testing.T) {
	svc, accounts := newTestService(t, fakeGoogle{profile: GoogleProfile{Email: "new.school@example.com", VerifiedEmail: true, Name: "New School"}})
	ctx := context.Background()

	pair, err := svc.LoginWithGoogle(ctx, "auth-code")
	if err != nil {
		t.Fatalf("google login: %v", err)
	}

	acc, err := accounts.GetByEmail(ctx, "new.school@example.com")
	if err != nil {
		t.Fatalf("account not registered: %v", err)
	}
	if acc.RegisterType != account.RegisterGoogle {
		t.Fatalf("register type = %s", acc.RegisterType)
	}
	if acc.Role != account.RoleSchool {
		t.Fatalf("role = %s", acc.Role)
	}
	if pair.AccountID != acc.ID {
		t.Fatalf("token issued for %s, want %s", pair.AccountID, acc.ID)
	}
}

func TestGoogleLoginReusesExistingAccount(t *testing.T) {
	svc, accounts := newTestService(t, fakeGoogle{profile: GoogleProfile{Email: "designer@example.com", VerifiedEmail: true}})
	ctx := context.Background()

	created, err := accounts.Create(ctx, account.CreateParams{Email: "designer@example.com", Password: "correct-horse", Role: account.RoleDesigner})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pair, err := svc.LoginWithGoogle(ctx, "auth-code")
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	if pair.AccountID != created.ID {
		t.Fatalf("token issued for %s, want %s", pair.AccountID, created.ID)
	}
	if pair.Role != "designer" {
		t.Fatalf("role = %s", pair.Role)
	}
}

func TestGoogleLoginRejectsUnverifiedEmail(t *testing.T) {
	svc, _ := newTestService(t, fakeGoogle{profile: GoogleProfile{Email: "shady@example.com", VerifiedEmail: false}})
	if _, err := svc.LoginWithGoogle(context.Background(), "auth-code"); !errors.Is(err, ErrUnverifiedEmail) {
		t.Fatalf("expected ErrUnverifiedEmail, got %v", err)
	}
}

func TestTokenIssuerRejectsTampering(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "account-service-test", time.Hour)
	token, _, err := issuer.Generate(account.Account{ID: "11111111-1111-1111-1111-111111111111", Email: "a@example.com", Role: account.RoleSchool})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewTokenIssuer("other-secret", "account-service-test", time.Hour)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
	if _, err := issuer.Parse(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for mangled token, got %v", err)
	}

	expired := NewTokenIssuer("test-secret", "account-service-test", -time.Minute)
	tok, _, err := expired.Generate(account.Account{ID: "11111111-1111-1111-1111-111111111111", Email: "a@example.com", Role: account.RoleSchool})
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}
	if _, err := issuer.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
