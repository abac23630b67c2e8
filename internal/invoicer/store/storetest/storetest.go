// Package storetest holds behaviour tests shared by every store driver.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/stretchr/testify/require"
)

// Factory returns a migrated, empty store. It is called once per subtest.
type Factory func(t *testing.T) store.Store

// Run exercises the full store contract against the driver built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("client isolation", func(t *testing.T) { testClientIsolation(t, newStore(t)) })
	t.Run("client email uniqueness", func(t *testing.T) { testClientEmail(t, newStore(t)) })
	t.Run("invoices", func(t *testing.T) { testInvoices(t, newStore(t)) })
	t.Run("invoice status verbatim", func(t *testing.T) { testInvoiceStatusVerbatim(t, newStore(t)) })
	t.Run("invoice isolation", func(t *testing.T) { testInvoiceIsolation(t, newStore(t)) })
	t.Run("client cascade", func(t *testing.T) { testClientCascade(t, newStore(t)) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
	t.Run("concurrent client email", func(t *testing.T) { testConcurrentClientEmail(t, newStore(t)) })
}

func mustUser(t *testing.T, s store.Store, email string) store.Owner {
	t.Helper()
	u, err := s.Users().CreateUser(context.Background(), domain.User{
		Email:        email,
		Name:         email,
		PasswordHash: "argon2:dummy",
	})
	require.NoError(t, err)
	return store.OwnedBy(u.ID)
}

func mustClient(t *testing.T, s store.Store, owner store.Owner, email string) domain.Client {
	t.Helper()
	c, err := s.Clients().CreateClient(context.Background(), owner, domain.Client{
		Name:  "Client " + email,
		Email: email,
	})
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T { return &v }

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	u, err := s.Users().CreateUser(ctx, domain.User{
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "argon2:hash",
	})
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	require.Equal(t, "Alice", u.Name)
	require.False(t, u.CreatedAt.IsZero())

	byEmail, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.Equal(t, "argon2:hash", byEmail.PasswordHash)

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", byID.Email)

	_, err = s.Users().CreateUser(ctx, domain.User{Email: "alice@example.com", PasswordHash: "x"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByID(ctx, u.ID+100)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testClientIsolation(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustUser(t, s, "alice@example.com")
	bob := mustUser(t, s, "bob@example.com")

	c, err := s.Clients().CreateClient(ctx, alice, domain.Client{
		Name:  "Acme",
		Email: "billing@acme.test",
		Phone: ptr("555-0100"),
	})
	require.NoError(t, err)
	require.Equal(t, alice.UserID(), c.OwnerID)
	require.Equal(t, "555-0100", *c.Phone)

	got, err := s.Clients().GetClient(ctx, alice, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.Email, got.Email)

	_, err = s.Clients().GetClient(ctx, bob, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.Clients().ListClients(ctx, bob)
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = s.Clients().ListClients(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)

	c.Name = "Hijacked"
	_, err = s.Clients().UpdateClient(ctx, bob, c)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Clients().DeleteClient(ctx, bob, c.ID), store.ErrNotFound)

	got, err = s.Clients().GetClient(ctx, alice, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Name)

	got.Name = "Acme Pty Ltd"
	got.Phone = nil
	updated, err := s.Clients().UpdateClient(ctx, alice, got)
	require.NoError(t, err)
	require.Equal(t, "Acme Pty Ltd", updated.Name)
	require.Nil(t, updated.Phone)
	require.Equal(t, alice.UserID(), updated.OwnerID)
}

func testClientEmail(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustUser(t, s, "alice@example.com")
	bob := mustUser(t, s, "bob@example.com")

	a := mustClient(t, s, alice, "shared@clients.test")
	b := mustClient(t, s, bob, "other@clients.test")

	taken, err := s.Clients().ClientEmailTaken(ctx, "shared@clients.test", 0)
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = s.Clients().ClientEmailTaken(ctx, "shared@clients.test", a.ID)
	require.NoError(t, err)
	require.False(t, taken)

	taken, err = s.Clients().ClientEmailTaken(ctx, "free@clients.test", 0)
	require.NoError(t, err)
	require.False(t, taken)

	// Uniqueness spans owners.
	_, err = s.Clients().CreateClient(ctx, bob, domain.Client{Name: "Dup", Email: "shared@clients.test"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	b.Email = "shared@clients.test"
	_, err = s.Clients().UpdateClient(ctx, bob, b)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func testInvoices(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustUser(t, s, "alice@example.com")
	c1 := mustClient(t, s, alice, "one@clients.test")
	c2 := mustClient(t, s, alice, "two@clients.test")

	due, err := domain.ParseDate("2025-06-30")
	require.NoError(t, err)

	inv, err := s.Invoices().CreateInvoice(ctx, alice, domain.Invoice{
		ClientID:    c1.ID,
		Amount:      150.5,
		Description: ptr("Consulting"),
		DueDate:     &due,
		Status:      domain.DefaultInvoiceStatus,
	})
	require.NoError(t, err)
	require.Equal(t, domain.DefaultInvoiceStatus, inv.Status)
	require.Equal(t, 150.5, inv.Amount)
	require.Equal(t, "2025-06-30", inv.DueDate.String())
	require.Equal(t, "Consulting", *inv.Description)

	_, err = s.Invoices().CreateInvoice(ctx, alice, domain.Invoice{ClientID: c2.ID, Amount: 10, Status: "paid"})
	require.NoError(t, err)

	all, err := s.Invoices().ListInvoices(ctx, alice, store.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Less(t, all[0].ID, all[1].ID)

	only, err := s.Invoices().ListInvoices(ctx, alice, store.InvoiceFilter{ClientID: &c2.ID})
	require.NoError(t, err)
	require.Len(t, only, 1)
	require.Equal(t, "paid", only[0].Status)
	require.Nil(t, only[0].DueDate)

	inv.Amount = 200
	inv.Status = "paid"
	inv.DueDate = nil
	inv.Description = nil
	updated, err := s.Invoices().UpdateInvoice(ctx, alice, inv)
	require.NoError(t, err)
	require.Equal(t, 200.0, updated.Amount)
	require.Equal(t, "paid", updated.Status)
	require.Nil(t, updated.DueDate)
	require.Nil(t, updated.Description)
	require.Equal(t, c1.ID, updated.ClientID)

	require.NoError(t, s.Invoices().DeleteInvoice(ctx, alice, inv.ID))
	_, err = s.Invoices().GetInvoice(ctx, alice, inv.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Invoices().DeleteInvoice(ctx, alice, inv.ID), store.ErrNotFound)
}

// Status is free text: the store keeps whatever it is given, including "".
func testInvoiceStatusVerbatim(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustUser(t, s, "alice@example.com")
	c := mustClient(t, s, alice, "one@clients.test")

	for _, status := range []string{"", "paid", "  spaced  ", "überfällig"} {
		inv, err := s.Invoices().CreateInvoice(ctx, alice, domain.Invoice{ClientID: c.ID, Amount: 1, Status: status})
		require.NoError(t, err)
		require.Equal(t, status, inv.Status)

		got, err := s.Invoices().GetInvoice(ctx, alice, inv.ID)
		require.NoError(t, err)
		require.Equal(t, status, got.Status)
	}
}

func testInvoiceIsolation(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustUser(t, s, "alice@example.com")
	bob := mustUser(t, s, "bob@example.com")
	c := mustClient(t, s, alice, "acme@clients.test")

	// Bob may not bill Alice's client.
	_, err := s.Invoices().CreateInvoice(ctx, bob, domain.Invoice{ClientID: c.ID, Amount: 1})
	require.ErrorIs(t, err, store.ErrNotFound)

	inv, err := s.Invoices().CreateInvoice(ctx, alice, domain.Invoice{ClientID: c.ID, Amount: 99})
	require.NoError(t, err)

	_, err = s.Invoices().GetInvoice(ctx, bob, inv.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.Invoices().ListInvoices(ctx, bob, store.InvoiceFilter{})
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = s.Invoices().ListInvoices(ctx, bob, store.InvoiceFilter{ClientID: &c.ID})
	require.NoError(t, err)
	require.Empty(t, list)

	inv.Amount = 0
	_, err = s.Invoices().UpdateInvoice(ctx, bob, inv)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, s.Invoices().DeleteInvoice(ctx, bob, inv.ID), store.ErrNotFound)

	n, err := s.Invoices().DeleteClientInvoices(ctx, bob, c.ID)
	require.NoError(t, err)
	require.Zero(t, n)

	got, err := s.Invoices().GetInvoice(ctx, alice, inv.ID)
	require.NoError(t, err)
	require.Equal(t, 99.0, got.Amount)
}

func testClientCascade(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustUser(t, s, "alice@example.com")
	c := mustClient(t, s, alice, "acme@clients.test")
	keep := mustClient(t, s, alice, "keep@clients.test")

	for i := 0; i < 3; i++ {
		_, err := s.Invoices().CreateInvoice(ctx, alice, domain.Invoice{ClientID: c.ID, Amount: float64(i)})
		require.NoError(t, err)
	}
	_, err := s.Invoices().CreateInvoice(ctx, alice, domain.Invoice{ClientID: keep.ID, Amount: 5})
	require.NoError(t, err)

	// Invoices still reference the client.
	require.Error(t, s.Clients().DeleteClient(ctx, alice, c.ID))

	n, err := s.Invoices().DeleteClientInvoices(ctx, alice, c.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	require.NoError(t, s.Clients().DeleteClient(ctx, alice, c.ID))

	rest, err := s.Invoices().ListInvoices(ctx, alice, store.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, keep.ID, rest[0].ClientID)
}

func testTransactions(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := mustUser(t, s, "alice@example.com")

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Clients().CreateClient(ctx, alice, domain.Client{Name: "Tmp", Email: "tmp@clients.test"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := s.Clients().ListClients(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, list)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Clients().CreateClient(ctx, alice, domain.Client{Name: "Kept", Email: "kept@clients.test"})
		return err
	})
	require.NoError(t, err)

	list, err = s.Clients().ListClients(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Ping(ctx))
}

// Concurrent inserts of one email across owners must leave exactly one row,
// with every loser reported as store.ErrAlreadyExists.
func testConcurrentClientEmail(t *testing.T, s store.Store) {
	const workers = 16

	owners := []store.Owner{
		mustUser(t, s, "alice@example.com"),
		mustUser(t, s, "bob@example.com"),
	}

	var (
		wg   sync.WaitGroup
		errs = make([]error, workers)
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.Clients().CreateClient(context.Background(), owners[i%len(owners)], domain.Client{
				Name:  fmt.Sprintf("Racer %d", i),
				Email: "race@clients.test",
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
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	}
	require.Equal(t, 1, created)

	total := 0
	for _, owner := range owners {
		list, err := s.Clients().ListClients(context.Background(), owner)
		require.NoError(t, err)
		total += len(list)
	}
	require.Equal(t, 1, total)
}
