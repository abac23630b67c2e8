package jwtx

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
)

// JWK represents a public key in JSON Web Key format (RFC 7517). Only the
// OKP fields used by Ed25519 are modelled.
type JWK struct {
	Kty string `json:"kty"`           // key type: "OKP"
	Use string `json:"use,omitempty"` // "sig"
	Alg string `json:"alg,omitempty"` // "EdDSA"
	Kid string `json:"kid,omitempty"`

	Crv string `json:"crv,omitempty"` // "Ed25519"
	X   string `json:"x,omitempty"`   // base64url public key
}

// JWKS is a JSON Web Key Set (RFC 7517).
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// NewEd25519JWK builds a JWK for an Ed25519 public key.
func NewEd25519JWK(kid, use, alg string, pub ed25519.PublicKey) JWK {
	return JWK{
		Kty: "OKP",
		Use: use,
		Alg: alg,
		Kid: kid,
		Crv: "Ed25519",
		X:   base64.RawURLEncoding.EncodeToString(pub),
	}
}

// PublicKey decodes the JWK into an ed25519.PublicKey.
func (j JWK) PublicKey() (ed25519.PublicKey, error) {
	if j.Kty != "OKP" {
		return nil, errors.New("jwtx: unsupported kty " + j.Kty)
	}
	if j.Crv != "Ed25519" {
		return nil, errors.New("jwtx: unsupported OKP curve " + j.Crv)
	}
	xb, err := base64.RawURLEncoding.DecodeString(j.X)
	if err != nil {
		return nil, err
	}
	if len(xb) != ed25519.PublicKeySize {
		return nil, errors.New("jwtx: invalid Ed25519 public key size")
	}
	return ed25519.PublicKey(xb), nil
}

// PEM converts the JWK to a PKIX "PUBLIC KEY" block, handy for pasting into
// jwt.io.
func (j JWK) PEM() (string, error) {
	pub, err := j.PublicKey()
	if err != nil {
		return "", err
	}

	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}

	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}
