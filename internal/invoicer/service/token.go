package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/revocation"
	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
	"github.com/aussiebroadwan/invoicer/pkg/slogx"
)

// TokenType is reported alongside every issued access token.
const TokenType = "Bearer"

type TokenService struct {
	KeyManager *jwtx.KeyManager
	Registry   revocation.Registry
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// Issue mints an access and refresh token for userID.
func (s *TokenService) Issue(ctx context.Context, userID int64) (domain.TokenPair, error) {
	now := s.now()
	sub := strconv.FormatInt(userID, 10)

	access, err := s.KeyManager.Sign(jwtx.NewClaims(sub, jwtx.TokenUseAccess, s.Issuer, s.accessTTL(), now))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.KeyManager.Sign(jwtx.NewClaims(sub, jwtx.TokenUseRefresh, s.Issuer, s.refreshTTL(), now))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	slogx.FromContext(ctx).Info("tokens issued", "user_id", userID)
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenType,
		ExpiresIn:    s.accessTTL(),
	}, nil
}

// Refresh mints a new access token for the subject of an already verified
// refresh token. The refresh token itself stays valid until it expires.
func (s *TokenService) Refresh(ctx context.Context, refresh jwtx.Claims) (domain.TokenPair, error) {
	if err := refresh.ValidateTokenUse(jwtx.TokenUseRefresh); err != nil {
		return domain.TokenPair{}, err
	}

	access, err := s.KeyManager.Sign(jwtx.NewClaims(refresh.Subject, jwtx.TokenUseAccess, s.Issuer, s.accessTTL(), s.now()))
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	slogx.FromContext(ctx).Debug("access token refreshed", "sub", refresh.Subject)
	return domain.TokenPair{
		AccessToken: access,
		TokenType:   TokenType,
		ExpiresIn:   s.accessTTL(),
	}, nil
}

// Logout revokes exactly the presented token. Other tokens of the same user
// keep working.
func (s *TokenService) Logout(ctx context.Context, claims jwtx.Claims) error {
	if err := s.Registry.Revoke(ctx, claims.ID, claims.ExpiresAtTime()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	slogx.FromContext(ctx).Info("token revoked", "jti", claims.ID)
	return nil
}
