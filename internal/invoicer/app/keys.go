package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
)

// InitKeys creates the KeyManager for the configured algorithm.
//
// Without a key file, EdDSA keys are generated on startup and kept only in
// memory, so every token issued before a restart stops verifying. A key file
// or the HS256 shared secret keeps tokens valid across restarts.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	logger.Info("initializing key manager",
		"algorithm", cfg.Algorithm,
		"num_keys", cfg.NumKeys,
		"key_file", cfg.KeyFile,
	)

	var pemKey []byte
	if cfg.KeyFile != "" {
		b, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read signing key: %w", err)
		}
		pemKey = b
	}

	keyManager, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Algorithm:     cfg.Algorithm,
		Issuer:        cfg.Issuer,
		NumKeys:       cfg.NumKeys,
		Secret:        []byte(cfg.JWTSecret),
		PrivateKeyPEM: pemKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("signing keys loaded",
		"algorithm", keyManager.Algorithm(),
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)

	if keyManager.Algorithm() == jwtx.AlgorithmEdDSA && cfg.KeyFile == "" {
		logger.Warn("signing keys are ephemeral, tokens issued before a restart are no longer valid")
	}

	return keyManager, nil
}
