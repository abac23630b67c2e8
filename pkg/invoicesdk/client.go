package invoicesdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the unauthenticated endpoints and opens Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a user account.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register", "", req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusCreated)
}

// LoginTokens exchanges credentials for a token pair.
func (c *SDKClient) LoginTokens(ctx context.Context, email, password string) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var tokens TokenResponse
	if err := decodeJSON(resp, &tokens, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Login authenticates and returns a Session that refreshes its access token
// automatically.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	tokens, err := c.LoginTokens(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return newSession(c, tokens), nil
}

// RefreshTokens trades a refresh token for a new access token.
func (c *SDKClient) RefreshTokens(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/refresh", refreshToken, nil)
	if err != nil {
		return nil, err
	}

	var tokens TokenResponse
	if err := decodeJSON(resp, &tokens, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// NewSessionFromTokens resumes a session from previously issued tokens.
// expiresIn is the remaining access token lifetime in seconds.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	return newSession(c, &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	})
}
