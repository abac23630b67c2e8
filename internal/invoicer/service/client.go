package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/pkg/slogx"
)

// ClientService manages clients on behalf of a single owner per call.
type ClientService struct {
	Store store.Store
}

func (s *ClientService) List(ctx context.Context, owner store.Owner) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx, owner)
}

func (s *ClientService) Get(ctx context.Context, owner store.Owner, id int64) (domain.Client, error) {
	c, err := s.Store.Clients().GetClient(ctx, owner, id)
	return c, translate(err)
}

// Create validates in and stores it under owner. Client emails are unique
// across all owners.
func (s *ClientService) Create(ctx context.Context, owner store.Owner, in domain.NewClient) (domain.Client, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Client{}, invalidField("name", "name is required")
	}
	if v := domain.ValidateEmail(in.Email); !v.OK {
		return domain.Client{}, invalidField("email", v.Reason)
	}

	var out domain.Client
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		taken, err := tx.Clients().ClientEmailTaken(ctx, in.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrConflict
		}

		out, err = tx.Clients().CreateClient(ctx, owner, domain.Client{
			Name:  name,
			Email: in.Email,
			Phone: in.Phone,
		})
		return err
	})
	if err != nil {
		return domain.Client{}, translate(err)
	}

	slogx.FromContext(ctx).Info("client created", "client_id", out.ID)
	return out, nil
}

// Update applies the present fields of patch. Changing the email re-checks
// uniqueness, a null phone clears it.
func (s *ClientService) Update(ctx context.Context, owner store.Owner, id int64, patch domain.ClientPatch) (domain.Client, error) {
	var out domain.Client
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Clients().GetClient(ctx, owner, id)
		if err != nil {
			return err
		}

		if patch.Name.Set {
			name := strings.TrimSpace(patch.Name.Value)
			if patch.Name.Null || name == "" {
				return invalidField("name", "name is required")
			}
			c.Name = name
		}

		if patch.Email.Set {
			if patch.Email.Null {
				return invalidField("email", "email is required")
			}
			if patch.Email.Value != c.Email {
				if v := domain.ValidateEmail(patch.Email.Value); !v.OK {
					return invalidField("email", v.Reason)
				}
				taken, err := tx.Clients().ClientEmailTaken(ctx, patch.Email.Value, c.ID)
				if err != nil {
					return err
				}
				if taken {
					return ErrConflict
				}
				c.Email = patch.Email.Value
			}
		}

		if patch.Phone.Set {
			c.Phone = patch.Phone.Ptr()
		}

		out, err = tx.Clients().UpdateClient(ctx, owner, c)
		return err
	})
	if err != nil {
		return domain.Client{}, translate(err)
	}
	return out, nil
}

// Delete removes the client and all of its invoices atomically.
func (s *ClientService) Delete(ctx context.Context, owner store.Owner, id int64) error {
	var removed int64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Clients().GetClient(ctx, owner, id); err != nil {
			return err
		}

		n, err := tx.Invoices().DeleteClientInvoices(ctx, owner, id)
		if err != nil {
			return err
		}
		removed = n

		return tx.Clients().DeleteClient(ctx, owner, id)
	})
	if err != nil {
		return translate(err)
	}

	slogx.FromContext(ctx).Info("client deleted", "client_id", id, "invoices_deleted", removed)
	return nil
}

// translate maps store sentinels onto service ones and passes everything
// else through.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrConflict
	default:
		return err
	}
}
