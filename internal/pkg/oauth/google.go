package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleService drives the Google OAuth2 login flow: building the
// consent redirect, exchanging the callback code, and fetching the
// authenticated user's profile.
type GoogleService interface {
	GenerateState(userAgent string) string
	RedirectURL(state string) string
	VerifyToken(ctx context.Context, code string) (*oauth2.Token, error)
	VerifyUser(ctx context.Context, token *oauth2.Token) (GoogleInformation, error)
}

// GoogleInformation is the subset of the userinfo payload the login
// flow needs.
type GoogleInformation struct {
	GoogleID      string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
}

type googleServiceImpl struct {
	config *oauth2.Config
}

func NewGoogleService(clientID string, clientSecret string, redirectURL string, scopes []string) GoogleService {
	return &googleServiceImpl{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateState builds an opaque state token bound to the caller's
// user agent, so the callback can be checked against the browser that
// started the flow.
func (g *googleServiceImpl) GenerateState(userAgent string) string {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return ""
	}
	raw := base64.URLEncoding.EncodeToString(nonce) + "." + userAgent
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func (g *googleServiceImpl) RedirectURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (g *googleServiceImpl) VerifyToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}
	return token, nil
}

func (g *googleServiceImpl) VerifyUser(ctx context.Context, token *oauth2.Token) (GoogleInformation, error) {
	resp, err := g.config.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return GoogleInformation{}, fmt.Errorf("failed to fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleInformation{}, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var info GoogleInformation
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return GoogleInformation{}, fmt.Errorf("failed to decode google userinfo: %w", err)
	}
	return info, nil
}
