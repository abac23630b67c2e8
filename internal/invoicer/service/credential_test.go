package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/stretchr/testify/require"
)

func TestCredentialService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := &service.CredentialService{Store: newStore(t)}

	id, err := svc.Register(ctx, "alice@example.com", "Abcdef1!", "Alice")
	require.NoError(t, err)
	require.Positive(t, id)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice@example.com", "Other1!x", "Alice Again")
		require.ErrorIs(t, err, service.ErrConflict)
	})

	t.Run("email is case sensitive", func(t *testing.T) {
		other, err := svc.Register(ctx, "Alice@example.com", "Abcdef1!", "")
		require.NoError(t, err)
		require.NotEqual(t, id, other)
	})

	t.Run("verify succeeds", func(t *testing.T) {
		got, err := svc.Verify(ctx, "alice@example.com", "Abcdef1!")
		require.NoError(t, err)
		require.Equal(t, id, got)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, errWrong := svc.Verify(ctx, "alice@example.com", "wrong")
		_, errUnknown := svc.Verify(ctx, "nobody@example.com", "Abcdef1!")

		require.ErrorIs(t, errWrong, service.ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, service.ErrInvalidCredentials)
		require.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("register does not enforce strength", func(t *testing.T) {
		_, err := svc.Register(ctx, "weak@example.com", "abc", "")
		require.NoError(t, err)
	})
}
