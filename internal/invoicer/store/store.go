package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Owner is the tenant scope every client and invoice query runs under. It
// should only ever be built from an authenticated identity, never from
// request input.
type Owner struct {
	userID int64
}

// OwnedBy scopes queries to the given user.
func OwnedBy(userID int64) Owner { return Owner{userID: userID} }

func (o Owner) UserID() int64 { return o.userID }

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories hang off it so a Tx can hand out the same
// repos bound to the transaction, and nothing can start a transaction from
// inside one.
type Store interface {
	Users() Users
	Clients() Clients
	Invoices() Invoices

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Prefer it over Tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u and returns it with the generated id. A taken email
	// yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail is used during login and registration.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

// Clients only ever touches rows whose owner_id matches the Owner. A row that
// exists but belongs to someone else is reported as ErrNotFound.
type Clients interface {
	// ListClients returns the owner's clients ordered by id.
	ListClients(ctx context.Context, owner Owner) ([]domain.Client, error)

	GetClient(ctx context.Context, owner Owner, id int64) (domain.Client, error)

	// ClientEmailTaken checks the global uniqueness of a client email across
	// all owners, ignoring the client with excludeID (0 to ignore none).
	ClientEmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)

	// CreateClient inserts c under owner and returns the stored row.
	CreateClient(ctx context.Context, owner Owner, c domain.Client) (domain.Client, error)

	// UpdateClient overwrites name, email and phone of an owned client and
	// bumps updated_at.
	UpdateClient(ctx context.Context, owner Owner, c domain.Client) (domain.Client, error)

	// DeleteClient removes a single owned client. Its invoices must be removed
	// first (see Invoices.DeleteClientInvoices).
	DeleteClient(ctx context.Context, owner Owner, id int64) error
}

// InvoiceFilter narrows ListInvoices. A nil ClientID lists every invoice of
// the owner.
type InvoiceFilter struct {
	ClientID *int64
}

// Invoices reaches rows only through a join on clients.owner_id.
type Invoices interface {
	// ListInvoices returns the owner's invoices ordered by id.
	ListInvoices(ctx context.Context, owner Owner, filter InvoiceFilter) ([]domain.Invoice, error)

	GetInvoice(ctx context.Context, owner Owner, id int64) (domain.Invoice, error)

	// CreateInvoice inserts inv provided its client belongs to owner, otherwise
	// ErrNotFound.
	CreateInvoice(ctx context.Context, owner Owner, inv domain.Invoice) (domain.Invoice, error)

	// UpdateInvoice overwrites the mutable columns of an owned invoice and
	// bumps updated_at. ClientID is ignored.
	UpdateInvoice(ctx context.Context, owner Owner, inv domain.Invoice) (domain.Invoice, error)

	DeleteInvoice(ctx context.Context, owner Owner, id int64) error

	// DeleteClientInvoices removes every invoice of an owned client and
	// reports how many were deleted.
	DeleteClientInvoices(ctx context.Context, owner Owner, clientID int64) (int64, error)
}
