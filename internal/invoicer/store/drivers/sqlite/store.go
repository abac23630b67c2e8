package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store/drivers/sqlite/gen"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db   *sql.DB
	q    *gen.Queries
	path string
}

// NewStore opens the database file at path (":memory:" for a throwaway
// database). Foreign keys are always enforced.
func NewStore(path string) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection serialises writers and keeps an in-memory database
	// alive for the lifetime of the Store.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:   db,
		q:    gen.New(db),
		path: path,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store. While it
// is open the Store's only connection belongs to the Tx.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users       { return &usersRepo{q: s.q} }
func (s *Store) Clients() store.Clients   { return &clientsRepo{q: s.q} }
func (s *Store) Invoices() store.Invoices { return &invoicesRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}

	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}

	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
	}
	return err
}

// requireRow reports ErrNotFound when an owner scoped write touched nothing.
func requireRow(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapOptionalDate(d *domain.Date) sql.NullString {
	if d == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func mapNullDate(ns sql.NullString) (*domain.Date, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(ns.String)
	if err != nil {
		return nil, fmt.Errorf("sqlite: stored due_date %q: %w", ns.String, err)
	}
	return &d, nil
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}

func mapClient(row gen.Client) domain.Client {
	return domain.Client{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     mapNullStringPtr(row.Phone),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapInvoice(row gen.Invoice) (domain.Invoice, error) {
	due, err := mapNullDate(row.DueDate)
	if err != nil {
		return domain.Invoice{}, err
	}
	return domain.Invoice{
		ID:          row.ID,
		ClientID:    row.ClientID,
		Amount:      row.Amount,
		Description: mapNullStringPtr(row.Description),
		DueDate:     due,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
