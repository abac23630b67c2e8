package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token lifetimes. Services may override both.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Token use values carried in the token_use claim. An access token is only
// accepted where an access token is expected, and likewise for refresh.
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

var ErrTokenUse = errors.New("jwtx: wrong token use")

// Claims are the registered claims plus the token use discriminator.
type Claims struct {
	jwt.RegisteredClaims

	TokenUse string `json:"token_use"`
}

// NewClaims builds claims for subject with a fresh jti.
func NewClaims(subject, use, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TokenUse: use,
	}
}

// NewJTI returns a random UUIDv4 for the "jti" claim.
func NewJTI() string {
	return uuid.NewString()
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateTokenUse rejects a token minted for another purpose.
func (c *Claims) ValidateTokenUse(expected string) error {
	if expected == "" {
		return nil
	}
	if c.TokenUse != expected {
		return ErrTokenUse
	}
	return nil
}

// ExpiresAtTime returns the exp claim, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
