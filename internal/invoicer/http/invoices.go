package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/aussiebroadwan/invoicer/pkg/httpx"
	"github.com/aussiebroadwan/invoicer/pkg/invoicesdk"
)

// InvoicesHandler serves /invoices. Ownership is resolved through the
// invoice's client.
type InvoicesHandler struct {
	InvoiceService *service.InvoiceService
}

// createInvoiceBody mirrors invoicesdk.CreateInvoiceRequest with every field
// optional so missing keys can be told apart from zero values.
type createInvoiceBody struct {
	ClientID    int64    `json:"client_id"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	DueDate     *string  `json:"due_date"`
	Status      *string  `json:"status"`
}

// HandleList handles GET /invoices/
//
//	@Summary		List invoices
//	@Description	Lists the caller's invoices. client_id narrows the list; another user's client yields an empty list.
//	@Tags			Invoices
//	@Produce		json
//	@Security		BearerAuth
//	@Param			client_id	query		int	false	"Only invoices of this client"
//	@Success		200			{array}		invoicesdk.Invoice
//	@Failure		400			{object}	invoicesdk.ErrorResponse	"client_id is not an integer"
//	@Failure		401			{object}	invoicesdk.ErrorResponse
//	@Router			/invoices/ [get].
func (h *InvoicesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}

	var clientID *int64
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "client_id must be an integer")
			return
		}
		clientID = &id
	}

	invoices, err := h.InvoiceService.List(r.Context(), owner, clientID)
	if err != nil {
		writeServiceError(w, r, err, msgInvoiceNotFound)
		return
	}

	out := make([]invoicesdk.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoice(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /invoices/{id}/
//
//	@Summary		Get an invoice
//	@Tags			Invoices
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Invoice ID"
//	@Success		200	{object}	invoicesdk.Invoice
//	@Failure		401	{object}	invoicesdk.ErrorResponse
//	@Failure		404	{object}	invoicesdk.ErrorResponse	"Invoice not found"
//	@Router			/invoices/{id}/ [get].
func (h *InvoicesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgInvoiceNotFound)
		return
	}

	inv, err := h.InvoiceService.Get(r.Context(), owner, id)
	if err != nil {
		writeServiceError(w, r, err, msgInvoiceNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvoice(inv))
}

// HandleCreate handles POST /invoices/
//
//	@Summary		Create an invoice
//	@Description	The client must belong to the caller. status defaults to "unpaid".
//	@Tags			Invoices
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		invoicesdk.CreateInvoiceRequest	true	"client_id, amount, description, due_date, status"
//	@Success		201		{object}	invoicesdk.Invoice
//	@Failure		400		{object}	invoicesdk.ErrorResponse	"due_date must be in YYYY-MM-DD format"
//	@Failure		401		{object}	invoicesdk.ErrorResponse
//	@Failure		404		{object}	invoicesdk.ErrorResponse	"Client not found"
//	@Router			/invoices/ [post].
func (h *InvoicesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}

	var body createInvoiceBody
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadJSON)
		return
	}

	inv, err := h.InvoiceService.Create(r.Context(), owner, domain.NewInvoice{
		ClientID:    body.ClientID,
		Amount:      body.Amount,
		Description: body.Description,
		DueDate:     body.DueDate,
		Status:      body.Status,
	})
	if err != nil {
		// The only lookup on create is the client.
		writeServiceError(w, r, err, msgClientNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toInvoice(inv))
}

// HandleUpdate handles PUT /invoices/{id}/
//
//	@Summary		Update an invoice
//	@Description	Only the keys present in the body are changed. A null or empty due_date clears it.
//	@Tags			Invoices
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int								true	"Invoice ID"
//	@Param			request	body		invoicesdk.UpdateInvoiceRequest	true	"fields to change"
//	@Success		200		{object}	invoicesdk.Invoice
//	@Failure		400		{object}	invoicesdk.ErrorResponse	"due_date must be in YYYY-MM-DD format"
//	@Failure		401		{object}	invoicesdk.ErrorResponse
//	@Failure		404		{object}	invoicesdk.ErrorResponse	"Invoice not found"
//	@Router			/invoices/{id}/ [put].
func (h *InvoicesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgInvoiceNotFound)
		return
	}

	var patch domain.InvoicePatch
	if err := httpx.DecodeJSON(w, r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadJSON)
		return
	}

	inv, err := h.InvoiceService.Update(r.Context(), owner, id, patch)
	if err != nil {
		writeServiceError(w, r, err, msgInvoiceNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvoice(inv))
}

// HandleDelete handles DELETE /invoices/{id}/
//
//	@Summary		Delete an invoice
//	@Tags			Invoices
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Invoice ID"
//	@Success		200	{object}	invoicesdk.MessageResponse	"Invoice {id} deleted"
//	@Failure		401	{object}	invoicesdk.ErrorResponse
//	@Failure		404	{object}	invoicesdk.ErrorResponse	"Invoice not found"
//	@Router			/invoices/{id}/ [delete].
func (h *InvoicesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgInvoiceNotFound)
		return
	}

	if err := h.InvoiceService.Delete(r.Context(), owner, id); err != nil {
		writeServiceError(w, r, err, msgInvoiceNotFound)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, fmt.Sprintf("Invoice %d deleted", id))
}

func toInvoice(inv domain.Invoice) invoicesdk.Invoice {
	out := invoicesdk.Invoice{
		ID:          inv.ID,
		ClientID:    inv.ClientID,
		Amount:      inv.Amount,
		Description: inv.Description,
		Status:      inv.Status,
	}
	if inv.DueDate != nil {
		s := inv.DueDate.String()
		out.DueDate = &s
	}
	return out
}
