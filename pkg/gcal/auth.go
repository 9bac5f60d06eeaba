// Package gcal is the Google Calendar collaborator: token handling and the
// single-day event fetch the reconciliation pipeline consumes.
package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// OAuthConfig builds the desktop-flow OAuth2 config from client credentials.
func OAuthConfig(clientID, clientSecret string) (*oauth2.Config, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("gcal: GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       []string{calendar.CalendarReadonlyScope},
		Endpoint:     google.Endpoint,
	}, nil
}

// OAuthConfigFromEnv builds the OAuth2 config from the conventional
// environment variables.
func OAuthConfigFromEnv() (*oauth2.Config, error) {
	return OAuthConfig(os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"))
}

// Exchange trades an authorization code for a token.
func Exchange(ctx context.Context, config *oauth2.Config, authCode string) (*oauth2.Token, error) {
	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	return tok, nil
}

// SaveToken writes a token file with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("gcal: write token file: %w", err)
	}
	return nil
}

// TokenProvider supplies and invalidates the cached credential.
type TokenProvider interface {
	// Token returns the cached token, or an AuthError when none exists.
	Token(ctx context.Context) (*oauth2.Token, error)
	// Invalidate discards the cached access token so the next Token call
	// forces a refresh; the refresh token survives.
	Invalidate() error
}

// FileTokenProvider caches the OAuth token in a JSON file, the same shape the
// auth flow writes.
type FileTokenProvider struct {
	Path string
}

func (p *FileTokenProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &AuthError{Err: fmt.Errorf("no token at %s; run the auth command", p.Path)}
		}
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, &AuthError{Err: fmt.Errorf("unreadable token file %s: %w", p.Path, err)}
	}
	if tok.RefreshToken == "" && tok.AccessToken == "" {
		return nil, &AuthError{Err: fmt.Errorf("empty token file %s", p.Path)}
	}
	return tok, nil
}

// Invalidate blanks the cached access token in place. Subsequent use goes
// through the refresh token; if that is gone too the next Token call
// surfaces an AuthError.
func (p *FileTokenProvider) Invalidate() error {
	tok, err := p.Token(context.Background())
	if err != nil {
		return err
	}
	if tok.AccessToken == "" {
		return nil
	}
	tok.AccessToken = ""
	return SaveToken(p.Path, tok)
}
