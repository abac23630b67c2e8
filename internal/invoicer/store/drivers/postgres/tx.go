package postgres

import (
	"context"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/jackc/pgx/v5"
)

type txStore struct {
	tx  pgx.Tx
	ctx context.Context
}

func (t *txStore) Commit() error   { return t.tx.Commit(t.ctx) }
func (t *txStore) Rollback() error { return t.tx.Rollback(t.ctx) }

func (t *txStore) Close() error { return nil } // the outer Store owns the pool

// Ping is a no-op, the transaction already holds a live connection.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, pgx.ErrTxClosed // nested transactions are not supported
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return pgx.ErrTxClosed
}

func (t *txStore) Users() store.Users       { return &usersRepo{db: t.tx} }
func (t *txStore) Clients() store.Clients   { return &clientsRepo{db: t.tx} }
func (t *txStore) Invoices() store.Invoices { return &invoicesRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
