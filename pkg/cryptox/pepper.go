package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

// The pepper is a server-side secret appended to every password before
// hashing. It is read from a file and created there on first use.
var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile string
)

// SetPepperPath sets the pepper file and forgets any pepper already loaded.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	pepperFile = file
	pepper = ""
}

// LoadPepper loads (or creates) the pepper now so a misconfigured path fails
// at startup rather than on the first login.
func LoadPepper() error {
	_, err := currentPepper()
	return err
}

func currentPepper() (string, error) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper, nil
	}
	if pepperFile == "" {
		return "", errors.New("cryptox: pepper path not set")
	}

	p, err := loadOrGeneratePepper(pepperFile)
	if err != nil {
		return "", err
	}
	pepper = p
	return pepper, nil
}

// loadOrGeneratePepper loads the pepper from file or generates one if not found.
func loadOrGeneratePepper(file string) (string, error) {
	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return "", err
	}

	b, err := os.ReadFile(file)
	switch {
	case err == nil:
		if len(b) == 0 {
			return "", errors.New("cryptox: pepper file is empty")
		}
		return string(b), nil
	case !errors.Is(err, os.ErrNotExist):
		return "", err
	}

	raw := make([]byte, keyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	p := base64.RawURLEncoding.EncodeToString(raw)

	if err := os.WriteFile(file, []byte(p), 0600); err != nil {
		return "", err
	}
	return p, nil
}
