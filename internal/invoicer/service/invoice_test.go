package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	svc        *service.InvoiceService
	alice, bob store.Owner
	aliceC     domain.Client
	bobC       domain.Client
}

func newInvoiceFixture(t *testing.T) invoiceFixture {
	t.Helper()

	ctx := context.Background()
	st := newStore(t)
	clients := &service.ClientService{Store: st}

	f := invoiceFixture{
		svc:   &service.InvoiceService{Store: st},
		alice: seedUser(t, st, "alice@example.com"),
		bob:   seedUser(t, st, "bob@example.com"),
	}

	var err error
	f.aliceC, err = clients.Create(ctx, f.alice, domain.NewClient{Name: "Acme", Email: "a@acme.test"})
	require.NoError(t, err)
	f.bobC, err = clients.Create(ctx, f.bob, domain.NewClient{Name: "Bobco", Email: "b@bob.test"})
	require.NoError(t, err)
	return f
}

func TestInvoiceServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newInvoiceFixture(t)

	t.Run("defaults", func(t *testing.T) {
		inv, err := f.svc.Create(ctx, f.alice, domain.NewInvoice{ClientID: f.aliceC.ID, Amount: ptr(99.5)})
		require.NoError(t, err)
		require.Equal(t, "unpaid", inv.Status)
		require.Nil(t, inv.DueDate)
		require.Nil(t, inv.Description)
	})

	t.Run("all fields", func(t *testing.T) {
		inv, err := f.svc.Create(ctx, f.alice, domain.NewInvoice{
			ClientID:    f.aliceC.ID,
			Amount:      ptr(10.0),
			Description: ptr("Consulting"),
			DueDate:     ptr("2025-01-31"),
			Status:      ptr("overdue-ish"),
		})
		require.NoError(t, err)
		require.Equal(t, "2025-01-31", inv.DueDate.String())
		require.Equal(t, "overdue-ish", inv.Status)
	})

	t.Run("statuses are kept as sent", func(t *testing.T) {
		for _, status := range []string{"", "paid", "PAID"} {
			inv, err := f.svc.Create(ctx, f.alice, domain.NewInvoice{ClientID: f.aliceC.ID, Amount: ptr(1.0), Status: ptr(status)})
			require.NoError(t, err)
			require.Equal(t, status, inv.Status)

			got, err := f.svc.Get(ctx, f.alice, inv.ID)
			require.NoError(t, err)
			require.Equal(t, status, got.Status)
		}
	})

	t.Run("empty due date means none", func(t *testing.T) {
		inv, err := f.svc.Create(ctx, f.alice, domain.NewInvoice{ClientID: f.aliceC.ID, Amount: ptr(1.0), DueDate: ptr("")})
		require.NoError(t, err)
		require.Nil(t, inv.DueDate)
	})

	t.Run("bad due date", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.alice, domain.NewInvoice{ClientID: f.aliceC.ID, Amount: ptr(1.0), DueDate: ptr("2024-13-40")})
		require.ErrorIs(t, err, service.ErrInvalidFormat)
		require.EqualError(t, err, service.MsgDueDateFormat)
	})

	t.Run("missing amount", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.alice, domain.NewInvoice{ClientID: f.aliceC.ID})
		require.ErrorIs(t, err, service.ErrInvalidFormat)
	})

	t.Run("foreign client is not found before validation", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.alice, domain.NewInvoice{ClientID: f.bobC.ID, DueDate: ptr("garbage")})
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("missing client", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.alice, domain.NewInvoice{Amount: ptr(1.0)})
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestInvoiceServiceUpdatePreservesAbsentFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newInvoiceFixture(t)

	inv, err := f.svc.Create(ctx, f.alice, domain.NewInvoice{
		ClientID:    f.aliceC.ID,
		Amount:      ptr(250.0),
		Description: ptr("Design"),
		DueDate:     ptr("2025-06-01"),
	})
	require.NoError(t, err)

	got, err := f.svc.Update(ctx, f.alice, inv.ID, domain.InvoicePatch{Status: domain.Some("paid")})
	require.NoError(t, err)
	require.Equal(t, "paid", got.Status)
	require.Equal(t, 250.0, got.Amount)
	require.Equal(t, "Design", *got.Description)
	require.Equal(t, "2025-06-01", got.DueDate.String())

	t.Run("empty due date clears", func(t *testing.T) {
		got, err := f.svc.Update(ctx, f.alice, inv.ID, domain.InvoicePatch{DueDate: domain.Some("")})
		require.NoError(t, err)
		require.Nil(t, got.DueDate)
	})

	t.Run("null due date clears", func(t *testing.T) {
		_, err := f.svc.Update(ctx, f.alice, inv.ID, domain.InvoicePatch{DueDate: domain.Some("2025-07-01")})
		require.NoError(t, err)
		got, err := f.svc.Update(ctx, f.alice, inv.ID, domain.InvoicePatch{DueDate: domain.Null[string]()})
		require.NoError(t, err)
		require.Nil(t, got.DueDate)
	})

	t.Run("bad due date leaves invoice untouched", func(t *testing.T) {
		_, err := f.svc.Update(ctx, f.alice, inv.ID, domain.InvoicePatch{
			Amount:  domain.Some(1.0),
			DueDate: domain.Some("31/12/2025"),
		})
		require.ErrorIs(t, err, service.ErrInvalidFormat)

		got, err := f.svc.Get(ctx, f.alice, inv.ID)
		require.NoError(t, err)
		require.Equal(t, 250.0, got.Amount)
	})

	t.Run("null amount and status rejected", func(t *testing.T) {
		_, err := f.svc.Update(ctx, f.alice, inv.ID, domain.InvoicePatch{Amount: domain.Null[float64]()})
		require.ErrorIs(t, err, service.ErrInvalidFormat)
		_, err = f.svc.Update(ctx, f.alice, inv.ID, domain.InvoicePatch{Status: domain.Null[string]()})
		require.ErrorIs(t, err, service.ErrInvalidFormat)
	})

	t.Run("null description clears", func(t *testing.T) {
		got, err := f.svc.Update(ctx, f.alice, inv.ID, domain.InvoicePatch{Description: domain.Null[string]()})
		require.NoError(t, err)
		require.Nil(t, got.Description)
	})
}

func TestInvoiceServiceIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newInvoiceFixture(t)

	inv, err := f.svc.Create(ctx, f.alice, domain.NewInvoice{ClientID: f.aliceC.ID, Amount: ptr(5.0)})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, f.bob, inv.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	_, err = f.svc.Update(ctx, f.bob, inv.ID, domain.InvoicePatch{Status: domain.Some("paid")})
	require.ErrorIs(t, err, service.ErrNotFound)
	require.ErrorIs(t, f.svc.Delete(ctx, f.bob, inv.ID), service.ErrNotFound)

	list, err := f.svc.List(ctx, f.bob, ptr(f.aliceC.ID))
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = f.svc.List(ctx, f.alice, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.svc.Delete(ctx, f.alice, inv.ID))
	require.ErrorIs(t, f.svc.Delete(ctx, f.alice, inv.ID), service.ErrNotFound)
}
