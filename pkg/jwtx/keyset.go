package jwtx

import (
	"errors"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

type keyEntry struct {
	alg string
	key any
}

// KeySet holds every verification key by kid. It is safe for concurrent use
// by the verifier and the JWKS handler.
type KeySet struct {
	mu   sync.RWMutex
	jwks JWKS
	keys map[string]keyEntry
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{
		jwks: JWKS{Keys: []JWK{}},
		keys: make(map[string]keyEntry),
	}
}

// AddSigner registers a signer's verification key. Only signers that
// implement JWKPublisher show up in PublicJWKS.
func (k *KeySet) AddSigner(s Signer) error {
	if err := s.Validate(); err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.keys[s.KID()] = keyEntry{alg: s.Alg(), key: s.VerifyKey()}
	if pub, ok := s.(JWKPublisher); ok {
		k.jwks.Keys = append(k.jwks.Keys, pub.PublicJWK())
	}
	return nil
}

// AddJWK adds a published Ed25519 key, typically fetched from a remote JWKS.
func (k *KeySet) AddJWK(j JWK) error {
	pub, err := j.PublicKey()
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	alg := j.Alg
	if alg == "" {
		alg = AlgorithmEdDSA
	}
	k.keys[j.Kid] = keyEntry{alg: alg, key: pub}
	k.jwks.Keys = append(k.jwks.Keys, j)
	return nil
}

// Get returns the algorithm and key registered for kid.
func (k *KeySet) Get(kid string) (string, any, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	e, ok := k.keys[kid]
	if !ok {
		return "", nil, ErrNoKey
	}
	return e.alg, e.key, nil
}

// PublicJWKS returns a snapshot of the publishable keys.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()

	keys := make([]JWK, len(k.jwks.Keys))
	copy(keys, k.jwks.Keys)
	return JWKS{Keys: keys}
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}
