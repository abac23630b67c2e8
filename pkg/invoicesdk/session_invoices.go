package invoicesdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func invoicePath(id int64) string { return fmt.Sprintf("/invoices/%d/", id) }

// ListInvoices returns the user's invoices, narrowed to one client when
// clientID is non-nil.
func (s *Session) ListInvoices(ctx context.Context, clientID *int64) ([]Invoice, error) {
	path := "/invoices/"
	if clientID != nil {
		path += "?" + url.Values{"client_id": {strconv.FormatInt(*clientID, 10)}}.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var invoices []Invoice
	if err := decodeJSON(resp, &invoices, http.StatusOK); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *Session) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, invoicePath(id), nil)
	if err != nil {
		return nil, err
	}

	var inv Invoice
	if err := decodeJSON(resp, &inv, http.StatusOK); err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateInvoice fails with a 404 *APIError when the client is not the
// user's own.
func (s *Session) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/invoices/", req)
	if err != nil {
		return nil, err
	}

	var inv Invoice
	if err := decodeJSON(resp, &inv, http.StatusCreated); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *Session) UpdateInvoice(ctx context.Context, id int64, req UpdateInvoiceRequest) (*Invoice, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, invoicePath(id), req)
	if err != nil {
		return nil, err
	}

	var inv Invoice
	if err := decodeJSON(resp, &inv, http.StatusOK); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *Session) DeleteInvoice(ctx context.Context, id int64) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, invoicePath(id), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
