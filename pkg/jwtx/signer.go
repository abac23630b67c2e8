package jwtx

import (
	"crypto/ed25519"
	"fmt"

	"github.com/aussiebroadwan/invoicer/pkg/cryptox"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)

	// VerifyKey is the key a verifier needs for tokens from this signer: the
	// public key for asymmetric algorithms, the shared secret for HMAC.
	VerifyKey() any

	Validate() error
}

// JWKPublisher is implemented by signers whose verification key is safe to
// publish in a JWKS.
type JWKPublisher interface {
	PublicJWK() JWK
}

// NewSignerEdDSA creates an EdDSA signer for key.
func NewSignerEdDSA(kid string, key ed25519.PrivateKey) (Signer, error) {
	return newEdDSASigner(kid, key)
}

// NewSignerEdDSAFromPEM creates an EdDSA signer from a PKCS8 PEM block.
func NewSignerEdDSAFromPEM(kid string, pemKey []byte) (Signer, error) {
	key, err := cryptox.ParseEd25519PEM(pemKey)
	if err != nil {
		return nil, fmt.Errorf("jwtx: %w", err)
	}
	return newEdDSASigner(kid, key)
}

// NewSignerHS256 creates an HMAC-SHA256 signer from a shared secret of at
// least MinHS256SecretSize bytes.
func NewSignerHS256(kid string, secret []byte) (Signer, error) {
	return newHS256Signer(kid, secret)
}
