package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/revocation"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) (*service.TokenService, *revocation.Memory) {
	t.Helper()

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmEdDSA,
		Issuer:    "invoicer-test",
	})
	require.NoError(t, err)

	reg := revocation.NewMemory()
	return &service.TokenService{
		KeyManager: km,
		Registry:   reg,
		Issuer:     "invoicer-test",
		AccessTTL:  5 * time.Minute,
	}, reg
}

func TestTokenServiceIssue(t *testing.T) {
	t.Parallel()

	svc, _ := newTokenService(t)
	pair, err := svc.Issue(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "Bearer", pair.TokenType)
	require.Equal(t, 5*time.Minute, pair.ExpiresIn)

	access, err := svc.KeyManager.Verifier.Verify(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "7", access.Subject)
	require.Equal(t, jwtx.TokenUseAccess, access.TokenUse)

	refresh, err := svc.KeyManager.Verifier.Verify(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, jwtx.TokenUseRefresh, refresh.TokenUse)
	require.NotEqual(t, access.ID, refresh.ID)
	require.WithinDuration(t, time.Now().Add(jwtx.DefaultRefreshTokenTTL), refresh.ExpiresAtTime(), 5*time.Second)
}

func TestTokenServiceRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTokenService(t)
	pair, err := svc.Issue(ctx, 7)
	require.NoError(t, err)

	refreshClaims, err := svc.KeyManager.Verifier.Verify(pair.RefreshToken)
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, refreshClaims)
	require.NoError(t, err)
	require.Empty(t, next.RefreshToken)

	access, err := svc.KeyManager.Verifier.Verify(next.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "7", access.Subject)

	accessClaims, err := svc.KeyManager.Verifier.Verify(pair.AccessToken)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, accessClaims)
	require.ErrorIs(t, err, jwtx.ErrTokenUse)
}

func TestTokenServiceLogoutRevokesOnlyThatToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, reg := newTokenService(t)

	first, err := svc.Issue(ctx, 7)
	require.NoError(t, err)
	second, err := svc.Issue(ctx, 7)
	require.NoError(t, err)

	c1, err := svc.KeyManager.Verifier.Verify(first.AccessToken)
	require.NoError(t, err)
	c2, err := svc.KeyManager.Verifier.Verify(second.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, c1))
	require.NoError(t, svc.Logout(ctx, c1))

	revoked, err := reg.IsRevoked(ctx, c1.ID)
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = reg.IsRevoked(ctx, c2.ID)
	require.NoError(t, err)
	require.False(t, revoked)
	require.Equal(t, 1, reg.Len())
}
