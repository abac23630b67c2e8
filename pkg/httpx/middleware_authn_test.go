package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/invoicer/pkg/httpx"
	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const issuer = "invoicer-test"

type revokedSet struct {
	ids map[string]bool
	err error
}

func (r revokedSet) IsRevoked(_ context.Context, id string) (bool, error) {
	return r.ids[id], r.err
}

func newKeyManager(t *testing.T) *jwtx.KeyManager {
	t.Helper()
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmEdDSA,
		Issuer:    issuer,
	})
	require.NoError(t, err)
	return km
}

func mint(t *testing.T, km *jwtx.KeyManager, sub, use string, ttl time.Duration) (string, jwtx.Claims) {
	t.Helper()
	c := jwtx.NewClaims(sub, use, issuer, ttl, time.Now())
	tok, err := km.Sign(c)
	require.NoError(t, err)
	return tok, c
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	km := newKeyManager(t)
	access, accessClaims := mint(t, km, "42", jwtx.TokenUseAccess, time.Minute)
	revoked, revokedClaims := mint(t, km, "42", jwtx.TokenUseAccess, time.Minute)
	refresh, _ := mint(t, km, "42", jwtx.TokenUseRefresh, time.Minute)
	expired, _ := mint(t, km, "42", jwtx.TokenUseAccess, -time.Hour)
	badSubject, _ := mint(t, km, "alice", jwtx.TokenUseAccess, time.Minute)
	foreign, _ := mint(t, newKeyManager(t), "42", jwtx.TokenUseAccess, time.Minute)

	reg := revokedSet{ids: map[string]bool{revokedClaims.ID: true}}

	tests := []struct {
		name     string
		header   string
		registry httpx.RevocationChecker
		status   int
		errMsg   string
	}{
		{"no header", "", reg, http.StatusUnauthorized, httpx.MsgMissingToken},
		{"wrong scheme", "Basic " + access, reg, http.StatusUnauthorized, httpx.MsgMissingToken},
		{"empty bearer", "Bearer ", reg, http.StatusUnauthorized, httpx.MsgMissingToken},
		{"garbage token", "Bearer not.a.jwt", reg, http.StatusUnauthorized, httpx.MsgInvalidToken},
		{"expired", "Bearer " + expired, reg, http.StatusUnauthorized, httpx.MsgInvalidToken},
		{"other signer", "Bearer " + foreign, reg, http.StatusUnauthorized, httpx.MsgInvalidToken},
		{"refresh token", "Bearer " + refresh, reg, http.StatusUnauthorized, httpx.MsgInvalidToken},
		{"non numeric subject", "Bearer " + badSubject, reg, http.StatusUnauthorized, httpx.MsgInvalidToken},
		{"revoked", "Bearer " + revoked, reg, http.StatusUnauthorized, httpx.MsgTokenRevoked},
		{"registry down", "Bearer " + access, revokedSet{err: errors.New("boom")}, http.StatusInternalServerError, httpx.MsgInternal},
		{"valid", "Bearer " + access, reg, http.StatusOK, ""},
		{"lowercase scheme", "bearer " + access, reg, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got httpx.Identity
			h := httpx.AuthnMiddleware(km.Verifier, tt.registry, jwtx.TokenUseAccess)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					id, ok := httpx.IdentityFromContext(r.Context())
					require.True(t, ok)
					got = id
					w.WriteHeader(http.StatusOK)
				}),
			)

			req := httptest.NewRequest(http.MethodGet, "/clients/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			if tt.errMsg == "" {
				require.Equal(t, int64(42), got.UserID)
				require.Equal(t, accessClaims.ID, got.TokenID)
				require.Equal(t, jwtx.TokenUseAccess, got.Claims.TokenUse)
				return
			}

			var body httpx.ErrorBody
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.Equal(t, tt.errMsg, body.Error)
			if tt.status == http.StatusUnauthorized {
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
			}
		})
	}
}

func TestIdentityFromContextEmpty(t *testing.T) {
	t.Parallel()
	_, ok := httpx.IdentityFromContext(context.Background())
	require.False(t, ok)
}
