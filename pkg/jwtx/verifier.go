package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrMissingKID  = errors.New("jwtx: missing kid")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// DefaultLeeway absorbs small clock differences on exp and nbf.
const DefaultLeeway = 5 * time.Second

// KeySetVerifier checks signatures against a KeySet. The header alg must
// match the algorithm the kid was registered with, so an HMAC token can never
// be checked against a published public key.
type KeySetVerifier struct {
	keys   *KeySet
	issuer string
	leeway time.Duration
}

// NewVerifier returns a verifier that requires iss == issuer (when set).
func NewVerifier(keys *KeySet, issuer string) *KeySetVerifier {
	return &KeySetVerifier{keys: keys, issuer: issuer, leeway: DefaultLeeway}
}

// WithLeeway returns a copy of v using leeway for exp and nbf.
func (v *KeySetVerifier) WithLeeway(leeway time.Duration) *KeySetVerifier {
	c := *v
	c.leeway = leeway
	return &c
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *KeySetVerifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{AlgorithmEdDSA, AlgorithmHS256}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrMissingKID
		}

		alg, key, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("jwtx: unknown kid %q: %w", kid, err)
		}
		if t.Method.Alg() != alg {
			return nil, ErrAlgMismatch
		}
		return key, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if claims.Subject == "" || claims.ID == "" {
		return Claims{}, ErrInvalidClaim
	}

	return *claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %v", ErrNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	default:
		return fmt.Errorf("jwtx: parse or verify: %w", err)
	}
}
