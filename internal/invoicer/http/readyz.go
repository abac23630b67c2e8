package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/revocation"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/pkg/httpx"
	"github.com/aussiebroadwan/invoicer/pkg/invoicesdk"
	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database, the signing keys and the revocation backend.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	invoicesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	invoicesdk.HealthResponse	"at least one check failed"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
	reg revocation.Registry,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &invoicesdk.HealthChecks{
			Database:   "ok",
			Signer:     "ok",
			Revocation: "ok",
		}
		status := "ok"
		code := http.StatusOK
		fail := func() {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			fail()
		}

		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			fail()
		}

		if p, ok := registryPinger(reg); ok {
			if err := p.Ping(r.Context()); err != nil {
				checks.Revocation = "error: " + err.Error()
				fail()
			}
		}

		httpx.WriteJSON(w, code, invoicesdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// registryPinger finds a Ping method on reg or anything it decorates.
func registryPinger(reg revocation.Registry) (pinger, bool) {
	for reg != nil {
		if p, ok := reg.(pinger); ok {
			return p, true
		}
		u, ok := reg.(interface{ Unwrap() revocation.Registry })
		if !ok {
			return nil, false
		}
		reg = u.Unwrap()
	}
	return nil, false
}
