package http

import (
	"net/http"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/aussiebroadwan/invoicer/pkg/httpx"
	"github.com/aussiebroadwan/invoicer/pkg/invoicesdk"
)

// ClientsHandler serves /clients. Every call is scoped to the caller.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleList handles GET /clients/
//
//	@Summary		List clients
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		invoicesdk.Client
//	@Failure		401	{object}	invoicesdk.ErrorResponse
//	@Router			/clients/ [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}

	clients, err := h.ClientService.List(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, err, msgClientNotFound)
		return
	}

	out := make([]invoicesdk.Client, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClient(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /clients/{id}/
//
//	@Summary		Get a client
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Client ID"
//	@Success		200	{object}	invoicesdk.Client
//	@Failure		401	{object}	invoicesdk.ErrorResponse
//	@Failure		404	{object}	invoicesdk.ErrorResponse	"Client not found"
//	@Router			/clients/{id}/ [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgClientNotFound)
		return
	}

	c, err := h.ClientService.Get(r.Context(), owner, id)
	if err != nil {
		writeServiceError(w, r, err, msgClientNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClient(c))
}

// HandleCreate handles POST /clients/
//
//	@Summary		Create a client
//	@Description	Client emails are unique across all users.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		invoicesdk.CreateClientRequest	true	"name, email, phone"
//	@Success		201		{object}	invoicesdk.Client
//	@Failure		400		{object}	invoicesdk.ErrorResponse
//	@Failure		401		{object}	invoicesdk.ErrorResponse
//	@Failure		409		{object}	invoicesdk.ErrorResponse	"email already used"
//	@Router			/clients/ [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}

	var req invoicesdk.CreateClientRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadJSON)
		return
	}

	c, err := h.ClientService.Create(r.Context(), owner, domain.NewClient{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeServiceError(w, r, err, msgClientNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toClient(c))
}

// HandleUpdate handles PUT /clients/{id}/
//
//	@Summary		Update a client
//	@Description	Only the keys present in the body are changed. A null phone clears it.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int								true	"Client ID"
//	@Param			request	body		invoicesdk.UpdateClientRequest	true	"fields to change"
//	@Success		200		{object}	invoicesdk.Client
//	@Failure		400		{object}	invoicesdk.ErrorResponse
//	@Failure		401		{object}	invoicesdk.ErrorResponse
//	@Failure		404		{object}	invoicesdk.ErrorResponse	"Client not found"
//	@Failure		409		{object}	invoicesdk.ErrorResponse	"email already used"
//	@Router			/clients/{id}/ [put].
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgClientNotFound)
		return
	}

	var patch domain.ClientPatch
	if err := httpx.DecodeJSON(w, r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadJSON)
		return
	}

	c, err := h.ClientService.Update(r.Context(), owner, id, patch)
	if err != nil {
		writeServiceError(w, r, err, msgClientNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClient(c))
}

// HandleDelete handles DELETE /clients/{id}/
//
//	@Summary		Delete a client
//	@Description	Deletes the client and every invoice billed to it.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Client ID"
//	@Success		200	{object}	invoicesdk.MessageResponse	"Client deleted"
//	@Failure		401	{object}	invoicesdk.ErrorResponse
//	@Failure		404	{object}	invoicesdk.ErrorResponse	"Client not found"
//	@Router			/clients/{id}/ [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerOf(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}
	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgClientNotFound)
		return
	}

	if err := h.ClientService.Delete(r.Context(), owner, id); err != nil {
		writeServiceError(w, r, err, msgClientNotFound)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Client deleted")
}

func toClient(c domain.Client) invoicesdk.Client {
	return invoicesdk.Client{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}
