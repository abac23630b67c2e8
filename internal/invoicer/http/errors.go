package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/aussiebroadwan/invoicer/pkg/httpx"
	"github.com/aussiebroadwan/invoicer/pkg/slogx"
)

const (
	msgBadJSON         = "invalid JSON body"
	msgClientNotFound  = "Client not found"
	msgInvoiceNotFound = "Invoice not found"
)

// writeServiceError maps a service error onto a response. notFound is the
// message used for ErrNotFound.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var fe *service.FieldError
	switch {
	case errors.As(err, &fe):
		httpx.WriteError(w, http.StatusBadRequest, fe.Message)
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, service.MsgEmailTaken)
	case errors.Is(err, service.ErrInvalidFormat):
		httpx.WriteError(w, http.StatusBadRequest, "invalid request")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
	}
}
