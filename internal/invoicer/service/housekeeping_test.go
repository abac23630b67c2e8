package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/revocation"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweepsExpiredRevocations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		retain  bool
		removed int
		left    int
	}{
		{"sweeps when not retaining", false, 1, 1},
		{"keeps everything when retaining", true, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := revocation.NewMemory()
			require.NoError(t, reg.Revoke(ctx, "old", time.Now().Add(-time.Hour)))
			require.NoError(t, reg.Revoke(ctx, "live", time.Now().Add(time.Hour)))

			hk := service.NewHousekeepingService(newStore(t), reg, logger, 0, tt.retain)
			require.Equal(t, time.Hour, hk.Interval)
			require.Equal(t, tt.removed, hk.RunOnce(ctx))
			require.Equal(t, tt.left, reg.Len())
		})
	}
}

func TestHousekeepingStartStop(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := revocation.NewMemory()
	require.NoError(t, reg.Revoke(context.Background(), "old", time.Now().Add(-time.Hour)))

	hk := service.NewHousekeepingService(newStore(t), reg, logger, time.Hour, false)
	hk.Start()
	require.Eventually(t, func() bool { return reg.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
	hk.Stop()
}
