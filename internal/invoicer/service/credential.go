package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/pkg/cryptox"
	"github.com/aussiebroadwan/invoicer/pkg/slogx"
)

// CredentialService registers users and checks their passwords. It does not
// enforce password strength; callers validate input first.
type CredentialService struct {
	Store store.Store
}

// Register stores a new user and returns its id. An email that is already
// registered yields ErrConflict.
func (s *CredentialService) Register(ctx context.Context, email, password, name string) (int64, error) {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	var id int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
			return ErrConflict
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		u, err := tx.Users().CreateUser(ctx, domain.User{
			Email:        email,
			Name:         name,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrConflict
			}
			return err
		}
		id = u.ID
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrConflict) {
			l.Error("failed to register user", "error", err)
		}
		return 0, err
	}

	l.Info("user registered", "user_id", id)
	return id, nil
}

// Verify returns the id of the user owning email when password matches.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *CredentialService) Verify(ctx context.Context, email, password string) (int64, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return 0, err
		}
		// Spend the same argon2 work as a real check.
		if dummy, derr := cryptox.DummyHash(); derr == nil {
			_ = cryptox.VerifyPassword(password, dummy)
		}
		return 0, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login rejected", "user_id", u.ID)
			return 0, ErrInvalidCredentials
		}
		return 0, fmt.Errorf("verify password: %w", err)
	}
	return u.ID, nil
}
