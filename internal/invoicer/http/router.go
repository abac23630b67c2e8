package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/revocation"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/pkg/httpx"
	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
	"github.com/aussiebroadwan/invoicer/pkg/slogx"

	_ "github.com/aussiebroadwan/invoicer/api/invoicer" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	registry     revocation.Registry
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *Metrics

	store             store.Store
	CredentialService *service.CredentialService
	TokenService      *service.TokenService
	ClientService     *service.ClientService
	InvoiceService    *service.InvoiceService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	registry revocation.Registry,
	buildVersion string,
	st store.Store,
	metrics *Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		registry:     registry,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      metrics,
		logger:       logger,
	}

	// Metrics must be innermost to see the matched pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	if metrics != nil {
		r.middlewares = append(r.middlewares, metrics.Middleware)
	}
	r.handler = httpx.Chain(httpx.JSONMux(r.Mux), r.middlewares...)

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerClients()
	r.registerInvoices()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Invoicer API
//	@version		0.1.0
//	@description	Multi-tenant client and invoice management. Every client and invoice is visible only to the user that created it.
//	@description
//	@description				Access tokens are short lived JWTs. Use the refresh token at /auth/refresh to get a new one.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/invoicer
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// handleSlashed registers path both with and without a trailing slash. The
// slashed form is anchored with {$} so it never matches a subtree.
func (r *Router) handleSlashed(method, path string, h http.Handler) {
	r.Mux.Handle(method+" "+path, h)
	r.Mux.Handle(method+" "+path+"/{$}", h)
}

func (r *Router) authenticated(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, httpx.AuthnMiddleware(r.verifier, r.registry, jwtx.TokenUseAccess))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Credentials: r.CredentialService,
		Tokens:      r.TokenService,
	}

	r.Mux.HandleFunc("POST /auth/register", h.HandleRegister)
	r.Mux.HandleFunc("POST /auth/login", h.HandleLogin)

	// Only a refresh token is accepted here, and only here.
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.AuthnMiddleware(r.verifier, r.registry, jwtx.TokenUseRefresh),
		),
	)
	r.Mux.Handle("POST /auth/logout", r.authenticated(h.HandleLogout))
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	r.handleSlashed(http.MethodGet, "/clients", r.authenticated(h.HandleList))
	r.handleSlashed(http.MethodPost, "/clients", r.authenticated(h.HandleCreate))
	r.handleSlashed(http.MethodGet, "/clients/{id}", r.authenticated(h.HandleGet))
	r.handleSlashed(http.MethodPut, "/clients/{id}", r.authenticated(h.HandleUpdate))
	r.handleSlashed(http.MethodDelete, "/clients/{id}", r.authenticated(h.HandleDelete))
}

func (r *Router) registerInvoices() {
	h := &InvoicesHandler{InvoiceService: r.InvoiceService}

	r.handleSlashed(http.MethodGet, "/invoices", r.authenticated(h.HandleList))
	r.handleSlashed(http.MethodPost, "/invoices", r.authenticated(h.HandleCreate))
	r.handleSlashed(http.MethodGet, "/invoices/{id}", r.authenticated(h.HandleGet))
	r.handleSlashed(http.MethodPut, "/invoices/{id}", r.authenticated(h.HandleUpdate))
	r.handleSlashed(http.MethodDelete, "/invoices/{id}", r.authenticated(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.registry))
	r.Mux.Handle("GET /.well-known/jwks.json", JWKSHandler(r.keys))

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
