package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/invoicer/pkg/invoicesdk"
	"github.com/stretchr/testify/require"
)

func TestTenantIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.signup(t, "alice@example.com")
	bob := ts.signup(t, "bob@example.com")

	acme, err := alice.CreateClient(ctx, invoicesdk.CreateClientRequest{Name: "Acme", Email: "billing@acme.test"})
	require.NoError(t, err)
	require.Nil(t, acme.Phone)

	inv, err := alice.CreateInvoice(ctx, invoicesdk.CreateInvoiceRequest{
		ClientID: acme.ID,
		Amount:   1250.5,
		DueDate:  invoicesdk.String("2025-01-31"),
	})
	require.NoError(t, err)
	require.Equal(t, "unpaid", inv.Status)
	require.Equal(t, "2025-01-31", *inv.DueDate)

	t.Run("bob sees nothing of alice", func(t *testing.T) {
		clients, err := bob.ListClients(ctx)
		require.NoError(t, err)
		require.Empty(t, clients)

		_, err = bob.GetClient(ctx, acme.ID)
		requireStatus(t, err, http.StatusNotFound)

		invoices, err := bob.ListInvoices(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, invoices)

		invoices, err = bob.ListInvoices(ctx, &acme.ID)
		require.NoError(t, err)
		require.Empty(t, invoices)

		_, err = bob.GetInvoice(ctx, inv.ID)
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("bob cannot touch alice's data", func(t *testing.T) {
		_, err := bob.UpdateClient(ctx, acme.ID, invoicesdk.UpdateClientRequest{Name: invoicesdk.String("Hijacked")})
		requireStatus(t, err, http.StatusNotFound)

		_, err = bob.UpdateInvoice(ctx, inv.ID, invoicesdk.UpdateInvoiceRequest{Status: invoicesdk.String("paid")})
		requireStatus(t, err, http.StatusNotFound)

		_, err = bob.CreateInvoice(ctx, invoicesdk.CreateInvoiceRequest{ClientID: acme.ID, Amount: 1})
		requireStatus(t, err, http.StatusNotFound)

		requireStatus(t, bob.DeleteInvoice(ctx, inv.ID), http.StatusNotFound)
		requireStatus(t, bob.DeleteClient(ctx, acme.ID), http.StatusNotFound)

		got, err := alice.GetInvoice(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, "unpaid", got.Status)
	})

	t.Run("client email is unique across users", func(t *testing.T) {
		_, err := bob.CreateClient(ctx, invoicesdk.CreateClientRequest{Name: "Bobco", Email: "billing@acme.test"})
		requireStatus(t, err, http.StatusConflict)
	})

	t.Run("update keeps absent fields", func(t *testing.T) {
		got, err := alice.UpdateInvoice(ctx, inv.ID, invoicesdk.UpdateInvoiceRequest{Status: invoicesdk.String("paid")})
		require.NoError(t, err)
		require.Equal(t, "paid", got.Status)
		require.Equal(t, 1250.5, got.Amount)
		require.Equal(t, "2025-01-31", *got.DueDate)

		got, err = alice.UpdateInvoice(ctx, inv.ID, invoicesdk.UpdateInvoiceRequest{ClearDueDate: true})
		require.NoError(t, err)
		require.Nil(t, got.DueDate)
		require.Equal(t, "paid", got.Status)
	})

	t.Run("deleting a client deletes its invoices", func(t *testing.T) {
		require.NoError(t, alice.DeleteClient(ctx, acme.ID))

		_, err := alice.GetInvoice(ctx, inv.ID)
		requireStatus(t, err, http.StatusNotFound)

		invoices, err := alice.ListInvoices(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, invoices)
	})
}

func TestLogoutRevokesOnlyThatToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ts := newTestServer(t)
	first := ts.signup(t, "alice@example.com")
	second, err := ts.SDK.Login(ctx, "alice@example.com", testPassword)
	require.NoError(t, err)

	require.NoError(t, first.Logout(ctx))

	_, err = first.ListClients(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
	require.Contains(t, err.Error(), "token revoked")

	_, err = second.ListClients(ctx)
	require.NoError(t, err)

	// The refresh token is untouched by logout.
	require.NoError(t, first.Refresh(ctx))
	_, err = first.ListClients(ctx)
	require.NoError(t, err)
}

func TestRefreshTokenUse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ts := newTestServer(t)
	s := ts.signup(t, "alice@example.com")

	t.Run("refresh token cannot reach repository routes", func(t *testing.T) {
		status, body := do(t, ts, http.MethodGet, "/clients/", s.RefreshToken(), "")
		require.Equal(t, http.StatusUnauthorized, status)
		require.JSONEq(t, `{"error":"invalid token"}`, body)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, err := ts.SDK.RefreshTokens(ctx, s.AccessToken())
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("refresh returns only an access token", func(t *testing.T) {
		tokens, err := ts.SDK.RefreshTokens(ctx, s.RefreshToken())
		require.NoError(t, err)
		require.NotEmpty(t, tokens.AccessToken)
		require.Empty(t, tokens.RefreshToken)
		require.Equal(t, "Bearer", tokens.TokenType)
		require.Equal(t, 60, tokens.ExpiresIn)
	})
}

func TestHTTPErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ts := newTestServer(t)
	s := ts.signup(t, "alice@example.com")
	token := s.AccessToken()

	c, err := s.CreateClient(ctx, invoicesdk.CreateClientRequest{Name: "Acme", Email: "a@acme.test"})
	require.NoError(t, err)
	inv, err := s.CreateInvoice(ctx, invoicesdk.CreateInvoiceRequest{ClientID: c.ID, Amount: 10})
	require.NoError(t, err)

	clientJSON := `{"client_id":` + itoa(c.ID) + `,"amount":5,"due_date":"2024-13-40"}`

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
		want   string
	}{
		{"no token", http.MethodGet, "/clients/", "", "", http.StatusUnauthorized, `{"error":"missing token"}`},
		{"garbage token", http.MethodGet, "/clients/", "abc", "", http.StatusUnauthorized, `{"error":"invalid token"}`},
		{"no trailing slash", http.MethodGet, "/clients", token, "", http.StatusOK, ""},
		{"item without slash", http.MethodGet, "/clients/" + itoa(c.ID), token, "", http.StatusOK, ""},
		{"non integer id", http.MethodGet, "/clients/abc/", token, "", http.StatusNotFound, `{"error":"Client not found"}`},
		{"negative id", http.MethodGet, "/invoices/-1/", token, "", http.StatusNotFound, `{"error":"Invoice not found"}`},
		{"non integer client_id", http.MethodGet, "/invoices/?client_id=x", token, "", http.StatusBadRequest, ""},
		{"malformed json", http.MethodPost, "/clients/", token, `{"name":`, http.StatusBadRequest, ""},
		{"missing client name", http.MethodPost, "/clients/", token, `{"email":"n@acme.test"}`, http.StatusBadRequest, `{"error":"name is required"}`},
		{"bad client email", http.MethodPost, "/clients/", token, `{"name":"X","email":"nope"}`, http.StatusBadRequest, ""},
		{"duplicate client email", http.MethodPost, "/clients/", token, `{"name":"X","email":"a@acme.test"}`, http.StatusConflict, ""},
		{"bad due date on create", http.MethodPost, "/invoices/", token, clientJSON, http.StatusBadRequest, `{"error":"due_date must be in YYYY-MM-DD format"}`},
		{"bad due date on update", http.MethodPut, "/invoices/" + itoa(inv.ID) + "/", token, `{"due_date":"31/12/2025"}`, http.StatusBadRequest, `{"error":"due_date must be in YYYY-MM-DD format"}`},
		{"unknown client on create", http.MethodPost, "/invoices/", token, `{"client_id":999,"amount":1}`, http.StatusNotFound, `{"error":"Client not found"}`},
		{"null amount on update", http.MethodPut, "/invoices/" + itoa(inv.ID) + "/", token, `{"amount":null}`, http.StatusBadRequest, ""},
		{"unknown method", http.MethodPatch, "/clients/" + itoa(c.ID) + "/", token, "", http.StatusMethodNotAllowed, `{"error":"method not allowed"}`},
		{"unknown path", http.MethodGet, "/clients/" + itoa(c.ID) + "/x", token, "", http.StatusNotFound, `{"error":"not found"}`},
		{"unknown path without token", http.MethodGet, "/nope", "", "", http.StatusNotFound, `{"error":"not found"}`},
		{"delete message", http.MethodDelete, "/invoices/" + itoa(inv.ID), token, "", http.StatusOK, `{"message":"Invoice ` + itoa(inv.ID) + ` deleted"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, ts, tt.method, tt.path, tt.token, tt.body)
			require.Equal(t, tt.status, status, body)
			if tt.want != "" {
				require.JSONEq(t, tt.want, body)
			}
		})
	}
}

func TestAuthEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.signup(t, "alice@example.com")

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		want   string
	}{
		{"duplicate register", "/auth/register", `{"email":"alice@example.com","password":"Abcdef1!"}`, http.StatusBadRequest, `{"error":"User already exists"}`},
		{"weak password", "/auth/register", `{"email":"weak@example.com","password":"abc"}`, http.StatusBadRequest, ""},
		{"invalid email", "/auth/register", `{"email":"nope","password":"Abcdef1!"}`, http.StatusBadRequest, ""},
		{"malformed register", "/auth/register", `nope`, http.StatusBadRequest, ""},
		{"wrong password", "/auth/login", `{"email":"alice@example.com","password":"Wrong1!x"}`, http.StatusUnauthorized, `{"error":"Invalid credentials"}`},
		{"unknown user", "/auth/login", `{"email":"who@example.com","password":"Abcdef1!"}`, http.StatusUnauthorized, `{"error":"Invalid credentials"}`},
		{"logout without token", "/auth/logout", ``, http.StatusUnauthorized, `{"error":"missing token"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, body := do(t, ts, http.MethodPost, tt.path, "", tt.body)
			require.Equal(t, tt.status, status, body)
			if tt.want != "" {
				require.JSONEq(t, tt.want, body)
			}
		})
	}

	t.Run("login response shape", func(t *testing.T) {
		tokens, err := ts.SDK.LoginTokens(context.Background(), "alice@example.com", testPassword)
		require.NoError(t, err)
		require.NotEmpty(t, tokens.AccessToken)
		require.NotEmpty(t, tokens.RefreshToken)
		require.Equal(t, "Bearer", tokens.TokenType)
		require.Equal(t, 60, tokens.ExpiresIn)
	})
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ts := newTestServer(t)

	live, err := ts.SDK.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := ts.SDK.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Revocation)

	jwks, err := ts.SDK.GetJWKS(ctx)
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "EdDSA", jwks.Keys[0].Alg)

	status, body := do(t, ts, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `invoicer_http_requests_total{method="GET",route="GET /livez",status="200"} 1`)
}

func do(t *testing.T, ts *testServer, method, path, token, body string) (int, string) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, ts.URL+path, r)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
