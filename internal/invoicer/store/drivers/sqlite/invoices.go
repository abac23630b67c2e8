package sqlite

import (
	"context"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store/drivers/sqlite/gen"
)

type invoicesRepo struct {
	q *gen.Queries
}

func (r *invoicesRepo) ListInvoices(ctx context.Context, owner store.Owner, filter store.InvoiceFilter) ([]domain.Invoice, error) {
	var (
		rows []gen.Invoice
		err  error
	)
	if filter.ClientID != nil {
		rows, err = r.q.ListInvoicesByOwnerAndClient(ctx, gen.ListInvoicesByOwnerAndClientParams{
			OwnerID:  owner.UserID(),
			ClientID: *filter.ClientID,
		})
	} else {
		rows, err = r.q.ListInvoicesByOwner(ctx, owner.UserID())
	}
	if err != nil {
		return nil, err
	}

	out := make([]domain.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := mapInvoice(row)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *invoicesRepo) GetInvoice(ctx context.Context, owner store.Owner, id int64) (domain.Invoice, error) {
	row, err := r.q.GetInvoiceByOwner(ctx, gen.GetInvoiceByOwnerParams{
		ID:      id,
		OwnerID: owner.UserID(),
	})
	if err != nil {
		return domain.Invoice{}, mapNotFound(err)
	}
	return mapInvoice(row)
}

func (r *invoicesRepo) CreateInvoice(ctx context.Context, owner store.Owner, inv domain.Invoice) (domain.Invoice, error) {
	// The insert selects from the owner's clients, so a foreign client id
	// inserts nothing and comes back as sql.ErrNoRows.
	id, err := r.q.CreateInvoiceForOwner(ctx, gen.CreateInvoiceForOwnerParams{
		Amount:      inv.Amount,
		Description: mapOptionalString(inv.Description),
		DueDate:     mapOptionalDate(inv.DueDate),
		Status:      inv.Status,
		ClientID:    inv.ClientID,
		OwnerID:     owner.UserID(),
	})
	if err != nil {
		return domain.Invoice{}, mapNotFound(err)
	}
	return r.GetInvoice(ctx, owner, id)
}

func (r *invoicesRepo) UpdateInvoice(ctx context.Context, owner store.Owner, inv domain.Invoice) (domain.Invoice, error) {
	err := requireRow(r.q.UpdateInvoiceByOwner(ctx, gen.UpdateInvoiceByOwnerParams{
		Amount:      inv.Amount,
		Description: mapOptionalString(inv.Description),
		DueDate:     mapOptionalDate(inv.DueDate),
		Status:      inv.Status,
		ID:          inv.ID,
		OwnerID:     owner.UserID(),
	}))
	if err != nil {
		return domain.Invoice{}, err
	}
	return r.GetInvoice(ctx, owner, inv.ID)
}

func (r *invoicesRepo) DeleteInvoice(ctx context.Context, owner store.Owner, id int64) error {
	return requireRow(r.q.DeleteInvoiceByOwner(ctx, gen.DeleteInvoiceByOwnerParams{
		ID:      id,
		OwnerID: owner.UserID(),
	}))
}

func (r *invoicesRepo) DeleteClientInvoices(ctx context.Context, owner store.Owner, clientID int64) (int64, error) {
	return r.q.DeleteInvoicesByClientAndOwner(ctx, gen.DeleteInvoicesByClientAndOwnerParams{
		ClientID: clientID,
		OwnerID:  owner.UserID(),
	})
}
