package invoicesdk

import (
	"context"
	"fmt"
	"net/http"
)

func clientPath(id int64) string { return fmt.Sprintf("/clients/%d/", id) }

// ListClients returns every client of the session's user.
func (s *Session) ListClients(ctx context.Context) ([]Client, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/clients/", nil)
	if err != nil {
		return nil, err
	}

	var clients []Client
	if err := decodeJSON(resp, &clients, http.StatusOK); err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *Session) GetClient(ctx context.Context, id int64) (*Client, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, clientPath(id), nil)
	if err != nil {
		return nil, err
	}

	var c Client
	if err := decodeJSON(resp, &c, http.StatusOK); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateClient fails with a 409 *APIError when the email is used by any
// client of any user.
func (s *Session) CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/clients/", req)
	if err != nil {
		return nil, err
	}

	var c Client
	if err := decodeJSON(resp, &c, http.StatusCreated); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Session) UpdateClient(ctx context.Context, id int64, req UpdateClientRequest) (*Client, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, clientPath(id), req)
	if err != nil {
		return nil, err
	}

	var c Client
	if err := decodeJSON(resp, &c, http.StatusOK); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteClient removes the client together with all of its invoices.
func (s *Session) DeleteClient(ctx context.Context, id int64) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, clientPath(id), nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
