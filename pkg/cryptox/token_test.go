package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 50 {
		tok, err := GenerateToken(TokenSize128)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(tok)
		require.NoError(t, err)
		require.Len(t, raw, TokenSize128)

		require.NotContains(t, seen, tok)
		seen[tok] = struct{}{}
	}

	for _, size := range []int{0, -8} {
		_, err := GenerateToken(size)
		require.Error(t, err, "size %d", size)
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	secret := []byte("shared-hs256-secret")
	require.Equal(t, Fingerprint(secret), Fingerprint(secret))
	require.NotEqual(t, Fingerprint(secret), Fingerprint([]byte("another-secret")))
	require.Len(t, Fingerprint(secret), 43)
}
