package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/uniformhub/account-service/internal/config"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProfile is the subset of the Google userinfo response the service
// needs to register or look up an account.
type GoogleProfile struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleConnector drives the OAuth code flow against Google.
type GoogleConnector interface {
	ConsentURL(state string) string
	FetchProfile(ctx context.Context, code string) (GoogleProfile, error)
}

// GoogleOAuth implements GoogleConnector against the real Google endpoints.
type GoogleOAuth struct {
	conf *oauth2.Config
}

// NewGoogleOAuth builds the connector from service configuration.
func NewGoogleOAuth(cfg config.Config) *GoogleOAuth {
	return &GoogleOAuth{conf: &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}}
}

// ConsentURL returns the Google consent page URL for the given state.
func (g *GoogleOAuth) ConsentURL(state string) string {
	return g.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// FetchProfile exchanges the authorization code and fetches the user profile.
func (g *GoogleOAuth) FetchProfile(ctx context.Context, code string) (GoogleProfile, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	resp, err := g.conf.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return GoogleProfile{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return GoogleProfile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if profile.Email == "" {
		return GoogleProfile{}, errors.New("userinfo response missing email")
	}
	return profile, nil
}
