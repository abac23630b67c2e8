package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/invoicer/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestJSONMux(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "0" {
			httpx.WriteError(w, http.StatusNotFound, "Item not found")
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("item " + r.PathValue("id")))
	})
	mux.HandleFunc("DELETE /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := httpx.JSONMux(mux)

	tests := []struct {
		name   string
		method string
		path   string
		status int
		allow  []string
		body   string
		json   bool
	}{
		{"matched route", http.MethodGet, "/items/7", http.StatusOK, nil, "item 7", false},
		{"handler not found is untouched", http.MethodGet, "/items/0", http.StatusNotFound, nil, `{"error":"Item not found"}`, true},
		{"unknown path", http.MethodGet, "/things", http.StatusNotFound, nil, `{"error":"not found"}`, true},
		{"unknown method", http.MethodPatch, "/items/7", http.StatusMethodNotAllowed, []string{"DELETE", "GET"}, `{"error":"method not allowed"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, tt.status, rec.Code)
			for _, m := range tt.allow {
				require.Contains(t, rec.Header().Get("Allow"), m)
			}
			if tt.json {
				require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				require.JSONEq(t, tt.body, rec.Body.String())
			} else {
				require.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}
