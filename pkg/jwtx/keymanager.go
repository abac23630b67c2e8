package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/invoicer/pkg/cryptox"
)

// Supported JWT signing algorithms
const (
	AlgorithmEdDSA = "EdDSA"
	AlgorithmHS256 = "HS256"
)

// KeyManager wires signers, the KeySet they publish into and a Verifier
// over that KeySet.
type KeyManager struct {
	Verifier  Verifier
	KeySet    *KeySet
	algorithm string

	signers []Signer
	mu      sync.RWMutex
}

// KeyManagerOptions configures the KeyManager for a specific use case.
type KeyManagerOptions struct {
	// Algorithm is AlgorithmEdDSA or AlgorithmHS256.
	Algorithm string

	// Issuer is the iss claim minted into and required from every token.
	Issuer string

	// NumKeys is how many ephemeral EdDSA keys to generate. Defaults to 1,
	// capped at 10. Ignored for HS256.
	NumKeys int

	// Secret is the shared HS256 secret, at least MinHS256SecretSize bytes.
	Secret []byte

	// PrivateKeyPEM is a PKCS8 Ed25519 key. When set, EdDSA signs with this
	// one persistent key instead of generating NumKeys ephemeral ones.
	PrivateKeyPEM []byte
}

// NewKeyManager builds a KeyManager for opts.Algorithm.
//
// Without PrivateKeyPEM, EdDSA keys are generated in memory and never
// persisted, so tokens do not survive a restart. HS256 derives a stable kid from the secret so replicas
// sharing it accept each other's tokens.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	var (
		signers []Signer
		err     error
	)
	switch opts.Algorithm {
	case AlgorithmEdDSA:
		if len(opts.PrivateKeyPEM) > 0 {
			var s Signer
			s, err = NewSignerEdDSAFromPEM(pemKeyID(opts.PrivateKeyPEM), opts.PrivateKeyPEM)
			signers = []Signer{s}
			break
		}
		signers, err = generateEdDSASigners(opts.NumKeys)
	case AlgorithmHS256:
		var s Signer
		s, err = NewSignerHS256(secretKeyID(opts.Secret), opts.Secret)
		signers = []Signer{s}
	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: EdDSA, HS256)", opts.Algorithm)
	}
	if err != nil {
		return nil, err
	}

	keyset := NewKeySet()
	for i, s := range signers {
		if err := keyset.AddSigner(s); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add signer %d to keyset: %w", i+1, err)
		}
	}

	return &KeyManager{
		Verifier:  NewVerifier(keyset, opts.Issuer),
		KeySet:    keyset,
		algorithm: opts.Algorithm,
		signers:   signers,
	}, nil
}

func generateEdDSASigners(n int) ([]Signer, error) {
	if n <= 0 {
		n = 1
	}
	if n > 10 {
		n = 10
	}

	signers := make([]Signer, 0, n)
	for i := 0; i < n; i++ {
		kid, err := generateRandomKeyID()
		if err != nil {
			return nil, err
		}

		key, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate EdDSA key: %w", err)
		}

		s, err := NewSignerEdDSA(kid, key)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to load signer %d: %w", i+1, err)
		}
		signers = append(signers, s)
	}
	return signers, nil
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string {
	return km.algorithm
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner returns one of the signing keys at random.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// Sign signs claims with one of the active keys.
func (km *KeyManager) Sign(claims Claims) (string, error) {
	s := km.GetSigner()
	if s == nil {
		return "", fmt.Errorf("jwtx: no signing key loaded")
	}
	return s.Sign(claims)
}

// generateRandomKeyID creates a random key identifier of the form
// "invoicer-{128-bit token}".
func generateRandomKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to generate key ID: %w", err)
	}
	return "invoicer-" + token, nil
}

func secretKeyID(secret []byte) string {
	return "hs256-" + cryptox.Fingerprint(secret)[:16]
}

func pemKeyID(pemKey []byte) string {
	return "ed25519-" + cryptox.Fingerprint(pemKey)[:16]
}
