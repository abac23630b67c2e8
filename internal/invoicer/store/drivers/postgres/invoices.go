package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/jackc/pgx/v5"
)

type invoicesRepo struct {
	db querier
}

const invoiceColumns = `i.id, i.client_id, i.amount, i.description, i.due_date, i.status, i.created_at, i.updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (domain.Invoice, error) {
	var (
		inv domain.Invoice
		due *time.Time
	)
	err := row.Scan(
		&inv.ID,
		&inv.ClientID,
		&inv.Amount,
		&inv.Description,
		&due,
		&inv.Status,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	inv.DueDate = dateFromTime(due)
	return inv, err
}

func (r *invoicesRepo) ListInvoices(ctx context.Context, owner store.Owner, filter store.InvoiceFilter) ([]domain.Invoice, error) {
	const q = `
SELECT ` + invoiceColumns + `
FROM invoices i
JOIN clients c ON c.id = i.client_id
WHERE c.owner_id = $1 AND ($2::BIGINT IS NULL OR i.client_id = $2)
ORDER BY i.id`

	rows, err := r.db.Query(ctx, q, owner.UserID(), filter.ClientID)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Invoice{}
	}
	return out, nil
}

func (r *invoicesRepo) GetInvoice(ctx context.Context, owner store.Owner, id int64) (domain.Invoice, error) {
	const q = `
SELECT ` + invoiceColumns + `
FROM invoices i
JOIN clients c ON c.id = i.client_id
WHERE i.id = $1 AND c.owner_id = $2`

	inv, err := scanInvoice(r.db.QueryRow(ctx, q, id, owner.UserID()))
	if err != nil {
		return domain.Invoice{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invoicesRepo) CreateInvoice(ctx context.Context, owner store.Owner, inv domain.Invoice) (domain.Invoice, error) {
	// Selecting from the owner's clients makes a foreign client id insert
	// nothing, which surfaces as pgx.ErrNoRows.
	const q = `
INSERT INTO invoices AS i (client_id, amount, description, due_date, status)
SELECT c.id, $1, $2, $3, $4
FROM clients c
WHERE c.id = $5 AND c.owner_id = $6
RETURNING ` + invoiceColumns

	created, err := scanInvoice(r.db.QueryRow(ctx, q,
		inv.Amount,
		inv.Description,
		dateArg(inv.DueDate),
		inv.Status,
		inv.ClientID,
		owner.UserID(),
	))
	if err != nil {
		return domain.Invoice{}, mapNotFound(err)
	}
	return created, nil
}

func (r *invoicesRepo) UpdateInvoice(ctx context.Context, owner store.Owner, inv domain.Invoice) (domain.Invoice, error) {
	const q = `
UPDATE invoices AS i
SET amount = $1, description = $2, due_date = $3, status = $4, updated_at = now()
FROM clients c
WHERE i.id = $5 AND c.id = i.client_id AND c.owner_id = $6
RETURNING ` + invoiceColumns

	updated, err := scanInvoice(r.db.QueryRow(ctx, q,
		inv.Amount,
		inv.Description,
		dateArg(inv.DueDate),
		inv.Status,
		inv.ID,
		owner.UserID(),
	))
	if err != nil {
		return domain.Invoice{}, mapNotFound(err)
	}
	return updated, nil
}

func (r *invoicesRepo) DeleteInvoice(ctx context.Context, owner store.Owner, id int64) error {
	const q = `
DELETE FROM invoices i
USING clients c
WHERE i.id = $1 AND c.id = i.client_id AND c.owner_id = $2`
	return requireRow(r.db.Exec(ctx, q, id, owner.UserID()))
}

func (r *invoicesRepo) DeleteClientInvoices(ctx context.Context, owner store.Owner, clientID int64) (int64, error) {
	const q = `
DELETE FROM invoices i
USING clients c
WHERE i.client_id = $1 AND c.id = i.client_id AND c.owner_id = $2`

	tag, err := r.db.Exec(ctx, q, clientID, owner.UserID())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
