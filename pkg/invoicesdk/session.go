package invoicesdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// refreshBuffer is how long before expiry the session refreshes.
const refreshBuffer = 30 * time.Second

// Session is an authenticated user. It refreshes the access token with the
// refresh token whenever the access token is about to expire. Safe for
// concurrent use.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(client *SDKClient, tokens *TokenResponse) *Session {
	s := &Session{
		client:       client,
		refreshToken: tokens.RefreshToken,
	}
	s.setAccess(tokens)
	return s
}

// setAccess must be called with mu held, or before the session is shared.
func (s *Session) setAccess(tokens *TokenResponse) {
	s.accessToken = tokens.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(tokens.ExpiresIn)*time.Second - refreshBuffer)
}

func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.accessToken, nil
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.refreshToken == "" {
		return fmt.Errorf("access token expired and no refresh token available")
	}

	tokens, err := s.client.RefreshTokens(ctx, s.refreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	s.setAccess(tokens)
	return nil
}

// Refresh fetches a new access token now, regardless of expiry.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

// Logout revokes the current access token. The session is unusable until
// Refresh is called.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.RLock()
	token := s.accessToken
	s.mu.RUnlock()

	resp, err := s.client.doRequest(ctx, http.MethodPost, "/auth/logout", token, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the refresh token the session was opened with.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}
