package invoicesdk

import (
	"encoding/json"

	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
)

// ============================================================================
// Generic Responses
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" example:"Client not found"`
}

// MessageResponse acknowledges an operation without returning a resource.
type MessageResponse struct {
	Message string `json:"message" example:"Client deleted"`
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"Abcdef1!"`
	Name     string `json:"name,omitempty" example:"Alice"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"Abcdef1!"`
}

// TokenResponse is returned by login and refresh. Refresh responses carry
// no refresh token.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type" example:"Bearer"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expires_in" example:"900"`
}

// ============================================================================
// Client Types
// ============================================================================

// Client is a billing contact of the authenticated user.
type Client struct {
	ID    int64   `json:"id" example:"1"`
	Name  string  `json:"name" example:"Acme Pty Ltd"`
	Email string  `json:"email" example:"billing@acme.test"`
	Phone *string `json:"phone" example:"+61 2 5550 1234"`
}

// CreateClientRequest is the body of POST /clients/.
type CreateClientRequest struct {
	Name  string  `json:"name" example:"Acme Pty Ltd"`
	Email string  `json:"email" example:"billing@acme.test"`
	Phone *string `json:"phone,omitempty" example:"+61 2 5550 1234"`
}

// UpdateClientRequest is a partial update. Nil fields are left out of the
// request and so stay unchanged; ClearPhone sends an explicit null.
type UpdateClientRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	ClearPhone bool    `json:"-"`
}

func (r UpdateClientRequest) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 3)
	if r.Name != nil {
		m["name"] = *r.Name
	}
	if r.Email != nil {
		m["email"] = *r.Email
	}
	switch {
	case r.ClearPhone:
		m["phone"] = nil
	case r.Phone != nil:
		m["phone"] = *r.Phone
	}
	return json.Marshal(m)
}

// ============================================================================
// Invoice Types
// ============================================================================

// Invoice is billed to one of the authenticated user's clients.
type Invoice struct {
	ID          int64   `json:"id" example:"1"`
	ClientID    int64   `json:"client_id" example:"1"`
	Amount      float64 `json:"amount" example:"1250.5"`
	Description *string `json:"description" example:"Website redesign"`

	// DueDate is YYYY-MM-DD or null.
	DueDate *string `json:"due_date" example:"2025-01-31"`

	// Status is free text, "unpaid" when not given at creation.
	Status string `json:"status" example:"unpaid"`
}

// CreateInvoiceRequest is the body of POST /invoices/.
type CreateInvoiceRequest struct {
	ClientID    int64   `json:"client_id" example:"1"`
	Amount      float64 `json:"amount" example:"1250.5"`
	Description *string `json:"description,omitempty" example:"Website redesign"`
	DueDate     *string `json:"due_date,omitempty" example:"2025-01-31"`
	Status      *string `json:"status,omitempty" example:"unpaid"`
}

// UpdateInvoiceRequest is a partial update. Nil fields stay unchanged;
// the Clear flags send an explicit null.
type UpdateInvoiceRequest struct {
	Amount           *float64 `json:"amount,omitempty"`
	Description      *string  `json:"description,omitempty"`
	DueDate          *string  `json:"due_date,omitempty"`
	Status           *string  `json:"status,omitempty"`
	ClearDescription bool     `json:"-"`
	ClearDueDate     bool     `json:"-"`
}

func (r UpdateInvoiceRequest) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 4)
	if r.Amount != nil {
		m["amount"] = *r.Amount
	}
	switch {
	case r.ClearDescription:
		m["description"] = nil
	case r.Description != nil:
		m["description"] = *r.Description
	}
	switch {
	case r.ClearDueDate:
		m["due_date"] = nil
	case r.DueDate != nil:
		m["due_date"] = *r.DueDate
	}
	if r.Status != nil {
		m["status"] = *r.Status
	}
	return json.Marshal(m)
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h23m45s"`
	Version string        `json:"version,omitempty" example:"dev"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency the service needs.
type HealthChecks struct {
	Database   string `json:"database"`
	Signer     string `json:"signer"`
	Revocation string `json:"revocation"`
}

// JWKSResponse contains the public keys tokens can be verified with. It is
// empty when the service signs with a shared secret.
type JWKSResponse jwtx.JWKS

// String returns a pointer to v, for optional request fields.
func String(v string) *string { return &v }

// Float returns a pointer to v, for optional request fields.
func Float(v float64) *float64 { return &v }
