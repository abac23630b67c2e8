package postgres

import (
	"context"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/jackc/pgx/v5"
)

type clientsRepo struct {
	db querier
}

const clientColumns = `id, owner_id, name, email, phone, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *clientsRepo) ListClients(ctx context.Context, owner store.Owner) ([]domain.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE owner_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, q, owner.UserID())
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Client, error) {
		return scanClient(row)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Client{}
	}
	return out, nil
}

func (r *clientsRepo) GetClient(ctx context.Context, owner store.Owner, id int64) (domain.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND owner_id = $2`

	c, err := scanClient(r.db.QueryRow(ctx, q, id, owner.UserID()))
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) ClientEmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1 AND id <> $2)`

	var taken bool
	if err := r.db.QueryRow(ctx, q, email, excludeID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, owner store.Owner, c domain.Client) (domain.Client, error) {
	const q = `
INSERT INTO clients (owner_id, name, email, phone)
VALUES ($1, $2, $3, $4)
RETURNING ` + clientColumns

	created, err := scanClient(r.db.QueryRow(ctx, q, owner.UserID(), c.Name, c.Email, c.Phone))
	if err != nil {
		return domain.Client{}, mapConstraint(err)
	}
	return created, nil
}

func (r *clientsRepo) UpdateClient(ctx context.Context, owner store.Owner, c domain.Client) (domain.Client, error) {
	const q = `
UPDATE clients
SET name = $1, email = $2, phone = $3, updated_at = now()
WHERE id = $4 AND owner_id = $5
RETURNING ` + clientColumns

	updated, err := scanClient(r.db.QueryRow(ctx, q, c.Name, c.Email, c.Phone, c.ID, owner.UserID()))
	if err != nil {
		return domain.Client{}, mapConstraint(mapNotFound(err))
	}
	return updated, nil
}

func (r *clientsRepo) DeleteClient(ctx context.Context, owner store.Owner, id int64) error {
	const q = `DELETE FROM clients WHERE id = $1 AND owner_id = $2`
	return requireRow(r.db.Exec(ctx, q, id, owner.UserID()))
}
