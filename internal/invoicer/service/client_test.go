package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/stretchr/testify/require"
)

func TestClientServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)
	svc := &service.ClientService{Store: st}
	alice := seedUser(t, st, "alice@example.com")
	bob := seedUser(t, st, "bob@example.com")

	c, err := svc.Create(ctx, alice, domain.NewClient{Name: "  Acme  ", Email: "billing@acme.test"})
	require.NoError(t, err)
	require.Equal(t, "Acme", c.Name)
	require.Nil(t, c.Phone)
	require.Equal(t, alice.UserID(), c.OwnerID)

	tests := []struct {
		name  string
		in    domain.NewClient
		err   error
		field string
	}{
		{"missing name", domain.NewClient{Email: "x@acme.test"}, service.ErrInvalidFormat, "name"},
		{"blank name", domain.NewClient{Name: "   ", Email: "x@acme.test"}, service.ErrInvalidFormat, "name"},
		{"bad email", domain.NewClient{Name: "X", Email: "nope"}, service.ErrInvalidFormat, "email"},
		{"email taken by same owner", domain.NewClient{Name: "X", Email: "billing@acme.test"}, service.ErrConflict, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, alice, tt.in)
			require.ErrorIs(t, err, tt.err)
			if tt.field != "" {
				var fe *service.FieldError
				require.ErrorAs(t, err, &fe)
				require.Equal(t, tt.field, fe.Field)
			}
		})
	}

	t.Run("email is unique across owners", func(t *testing.T) {
		_, err := svc.Create(ctx, bob, domain.NewClient{Name: "Bob Co", Email: "billing@acme.test"})
		require.ErrorIs(t, err, service.ErrConflict)
	})
}

func TestClientServiceCreateConcurrentEmail(t *testing.T) {
	t.Parallel()

	const workers = 20

	st := newStore(t)
	svc := &service.ClientService{Store: st}
	owners := []store.Owner{
		seedUser(t, st, "alice@example.com"),
		seedUser(t, st, "bob@example.com"),
	}

	var (
		wg   sync.WaitGroup
		errs = make([]error, workers)
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), owners[i%len(owners)], domain.NewClient{
				Name:  fmt.Sprintf("Client %d", i),
				Email: "same@example.com",
			})
		}()
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, service.ErrConflict)
	}
	require.Equal(t, 1, created)
}

func TestClientServiceUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)
	svc := &service.ClientService{Store: st}
	alice := seedUser(t, st, "alice@example.com")
	bob := seedUser(t, st, "bob@example.com")

	c, err := svc.Create(ctx, alice, domain.NewClient{Name: "Acme", Email: "a@acme.test", Phone: ptr("555")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, domain.NewClient{Name: "Other", Email: "b@other.test"})
	require.NoError(t, err)

	t.Run("absent fields stay", func(t *testing.T) {
		got, err := svc.Update(ctx, alice, c.ID, domain.ClientPatch{Name: domain.Some("Acme Ltd")})
		require.NoError(t, err)
		require.Equal(t, "Acme Ltd", got.Name)
		require.Equal(t, "a@acme.test", got.Email)
		require.Equal(t, "555", *got.Phone)
	})

	t.Run("same email is not a conflict", func(t *testing.T) {
		_, err := svc.Update(ctx, alice, c.ID, domain.ClientPatch{Email: domain.Some("a@acme.test")})
		require.NoError(t, err)
	})

	t.Run("email owned by another user conflicts", func(t *testing.T) {
		_, err := svc.Update(ctx, alice, c.ID, domain.ClientPatch{Email: domain.Some("b@other.test")})
		require.ErrorIs(t, err, service.ErrConflict)
	})

	t.Run("null phone clears", func(t *testing.T) {
		got, err := svc.Update(ctx, alice, c.ID, domain.ClientPatch{Phone: domain.Null[string]()})
		require.NoError(t, err)
		require.Nil(t, got.Phone)
	})

	t.Run("null name rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, alice, c.ID, domain.ClientPatch{Name: domain.Null[string]()})
		require.ErrorIs(t, err, service.ErrInvalidFormat)
	})

	t.Run("other owner sees not found", func(t *testing.T) {
		_, err := svc.Update(ctx, bob, c.ID, domain.ClientPatch{Name: domain.Some("Hijacked")})
		require.ErrorIs(t, err, service.ErrNotFound)

		got, err := svc.Get(ctx, alice, c.ID)
		require.NoError(t, err)
		require.Equal(t, "Acme Ltd", got.Name)
	})
}

func TestClientServiceDeleteCascades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)
	clients := &service.ClientService{Store: st}
	invoices := &service.InvoiceService{Store: st}
	alice := seedUser(t, st, "alice@example.com")
	bob := seedUser(t, st, "bob@example.com")

	c, err := clients.Create(ctx, alice, domain.NewClient{Name: "Acme", Email: "a@acme.test"})
	require.NoError(t, err)
	keep, err := clients.Create(ctx, alice, domain.NewClient{Name: "Keep", Email: "k@acme.test"})
	require.NoError(t, err)

	var ids []int64
	for range 3 {
		inv, err := invoices.Create(ctx, alice, domain.NewInvoice{ClientID: c.ID, Amount: ptr(10.0)})
		require.NoError(t, err)
		ids = append(ids, inv.ID)
	}
	kept, err := invoices.Create(ctx, alice, domain.NewInvoice{ClientID: keep.ID, Amount: ptr(1.0)})
	require.NoError(t, err)

	require.ErrorIs(t, clients.Delete(ctx, bob, c.ID), service.ErrNotFound)

	require.NoError(t, clients.Delete(ctx, alice, c.ID))
	_, err = clients.Get(ctx, alice, c.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	for _, id := range ids {
		_, err := invoices.Get(ctx, alice, id)
		require.ErrorIs(t, err, service.ErrNotFound)
	}

	_, err = invoices.Get(ctx, alice, kept.ID)
	require.NoError(t, err)

	require.ErrorIs(t, clients.Delete(ctx, alice, c.ID), service.ErrNotFound)
}
