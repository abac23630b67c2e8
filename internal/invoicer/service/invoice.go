package service

import (
	"context"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/pkg/slogx"
)

// InvoiceService manages invoices. Ownership always comes from the invoice's
// client.
type InvoiceService struct {
	Store store.Store
}

// List returns the owner's invoices, optionally narrowed to one client. A
// client the owner does not have simply yields no rows.
func (s *InvoiceService) List(ctx context.Context, owner store.Owner, clientID *int64) ([]domain.Invoice, error) {
	return s.Store.Invoices().ListInvoices(ctx, owner, store.InvoiceFilter{ClientID: clientID})
}

func (s *InvoiceService) Get(ctx context.Context, owner store.Owner, id int64) (domain.Invoice, error) {
	inv, err := s.Store.Invoices().GetInvoice(ctx, owner, id)
	return inv, translate(err)
}

// Create bills a new invoice to one of the owner's clients. The client is
// checked before any field so an unknown client always reports ErrNotFound.
func (s *InvoiceService) Create(ctx context.Context, owner store.Owner, in domain.NewInvoice) (domain.Invoice, error) {
	var out domain.Invoice
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Clients().GetClient(ctx, owner, in.ClientID); err != nil {
			return err
		}

		inv := domain.Invoice{
			ClientID:    in.ClientID,
			Description: in.Description,
			Status:      domain.DefaultInvoiceStatus,
		}

		if in.DueDate != nil && *in.DueDate != "" {
			d, err := domain.ParseDate(*in.DueDate)
			if err != nil {
				return invalidField("due_date", MsgDueDateFormat)
			}
			inv.DueDate = &d
		}
		if in.Amount == nil {
			return invalidField("amount", "amount is required")
		}
		inv.Amount = *in.Amount
		if in.Status != nil {
			inv.Status = *in.Status
		}

		var err error
		out, err = tx.Invoices().CreateInvoice(ctx, owner, inv)
		return err
	})
	if err != nil {
		return domain.Invoice{}, translate(err)
	}

	slogx.FromContext(ctx).Info("invoice created", "invoice_id", out.ID, "client_id", out.ClientID)
	return out, nil
}

// Update applies only the present fields of patch. A null or empty due_date
// clears the date; amount and status cannot be null.
func (s *InvoiceService) Update(ctx context.Context, owner store.Owner, id int64, patch domain.InvoicePatch) (domain.Invoice, error) {
	var out domain.Invoice
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invoices().GetInvoice(ctx, owner, id)
		if err != nil {
			return err
		}

		if patch.Amount.Set {
			if patch.Amount.Null {
				return invalidField("amount", "amount must not be null")
			}
			inv.Amount = patch.Amount.Value
		}
		if patch.Description.Set {
			inv.Description = patch.Description.Ptr()
		}
		if patch.DueDate.Set {
			if patch.DueDate.Null || patch.DueDate.Value == "" {
				inv.DueDate = nil
			} else {
				d, err := domain.ParseDate(patch.DueDate.Value)
				if err != nil {
					return invalidField("due_date", MsgDueDateFormat)
				}
				inv.DueDate = &d
			}
		}
		if patch.Status.Set {
			if patch.Status.Null {
				return invalidField("status", "status must not be null")
			}
			inv.Status = patch.Status.Value
		}

		out, err = tx.Invoices().UpdateInvoice(ctx, owner, inv)
		return err
	})
	if err != nil {
		return domain.Invoice{}, translate(err)
	}
	return out, nil
}

func (s *InvoiceService) Delete(ctx context.Context, owner store.Owner, id int64) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Invoices().DeleteInvoice(ctx, owner, id)
	})
	if err != nil {
		return translate(err)
	}

	slogx.FromContext(ctx).Info("invoice deleted", "invoice_id", id)
	return nil
}
