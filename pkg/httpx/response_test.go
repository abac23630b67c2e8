package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/invoicer/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusConflict, "Client with this email already exists")

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"Client with this email already exists"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type body struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid", `{"name":"Acme"}`, false},
		{"unknown fields ignored", `{"name":"Acme","extra":1}`, false},
		{"empty", ``, true},
		{"syntax error", `{"name":`, true},
		{"wrong type", `{"name":5}`, true},
		{"trailing data", `{"name":"Acme"} {}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))
			var b body
			err := httpx.DecodeJSON(httptest.NewRecorder(), req, &b)
			if tt.wantErr {
				require.ErrorIs(t, err, httpx.ErrBadJSON)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "Acme", b.Name)
		})
	}
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}
