package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

const pemTypePrivateKey = "PRIVATE KEY"

var ErrInvalidKey = errors.New("cryptox: invalid Ed25519 key")

// GenerateEd25519Key returns a fresh signing key. Signing keys live in memory
// only and are never written to disk.
func GenerateEd25519Key() (ed25519.PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate Ed25519 key: %w", err)
	}
	return key, nil
}

// MarshalEd25519PEM encodes key as a PKCS8 PEM block.
func MarshalEd25519PEM(key ed25519.PrivateKey) ([]byte, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, ErrInvalidKey
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to marshal PKCS8 key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: pemTypePrivateKey, Bytes: der}), nil
}

// ParseEd25519PEM reads a PKCS8 PEM block holding an Ed25519 private key.
func ParseEd25519PEM(b []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, fmt.Errorf("%w: invalid PEM", ErrInvalidKey)
	}
	if block.Type != pemTypePrivateKey {
		return nil, fmt.Errorf("%w: expected %s block, got %q", ErrInvalidKey, pemTypePrivateKey, block.Type)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	key, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an Ed25519 key", ErrInvalidKey)
	}
	return key, nil
}
