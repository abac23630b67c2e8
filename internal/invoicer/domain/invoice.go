package domain

import "time"

// DefaultInvoiceStatus is applied when an invoice is created without one.
const DefaultInvoiceStatus = "unpaid"

// Invoice is billed to a single client. Ownership is inherited from the
// client, so an invoice has no owner column of its own.
type Invoice struct {
	ID          int64
	ClientID    int64
	Amount      float64
	Description *string
	DueDate     *Date
	Status      string // free text
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewInvoice carries the caller supplied fields for an invoice insert.
// DueDate is still the raw wire value and gets parsed by the service. A nil
// Amount is rejected.
type NewInvoice struct {
	ClientID    int64
	Amount      *float64
	Description *string
	DueDate     *string
	Status      *string
}

// InvoicePatch is a partial update. A null or empty due_date clears the date.
type InvoicePatch struct {
	Amount      Optional[float64] `json:"amount"`
	Description Optional[string]  `json:"description"`
	DueDate     Optional[string]  `json:"due_date"`
	Status      Optional[string]  `json:"status"`
}
