package sqlite

import (
	"context"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store/drivers/sqlite/gen"
)

type clientsRepo struct {
	q *gen.Queries
}

func (r *clientsRepo) ListClients(ctx context.Context, owner store.Owner) ([]domain.Client, error) {
	rows, err := r.q.ListClientsByOwner(ctx, owner.UserID())
	if err != nil {
		return nil, err
	}

	out := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapClient(row))
	}
	return out, nil
}

func (r *clientsRepo) GetClient(ctx context.Context, owner store.Owner, id int64) (domain.Client, error) {
	row, err := r.q.GetClientByOwner(ctx, gen.GetClientByOwnerParams{
		ID:      id,
		OwnerID: owner.UserID(),
	})
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return mapClient(row), nil
}

func (r *clientsRepo) ClientEmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	n, err := r.q.CountClientsByEmail(ctx, gen.CountClientsByEmailParams{
		Email: email,
		ID:    excludeID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, owner store.Owner, c domain.Client) (domain.Client, error) {
	id, err := r.q.CreateClient(ctx, gen.CreateClientParams{
		OwnerID: owner.UserID(),
		Name:    c.Name,
		Email:   c.Email,
		Phone:   mapOptionalString(c.Phone),
	})
	if err != nil {
		return domain.Client{}, mapConstraint(err)
	}
	return r.GetClient(ctx, owner, id)
}

func (r *clientsRepo) UpdateClient(ctx context.Context, owner store.Owner, c domain.Client) (domain.Client, error) {
	err := requireRow(r.q.UpdateClientByOwner(ctx, gen.UpdateClientByOwnerParams{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   mapOptionalString(c.Phone),
		ID:      c.ID,
		OwnerID: owner.UserID(),
	}))
	if err != nil {
		return domain.Client{}, mapConstraint(err)
	}
	return r.GetClient(ctx, owner, c.ID)
}

func (r *clientsRepo) DeleteClient(ctx context.Context, owner store.Owner, id int64) error {
	return requireRow(r.q.DeleteClientByOwner(ctx, gen.DeleteClientByOwnerParams{
		ID:      id,
		OwnerID: owner.UserID(),
	}))
}
