package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/service"
	"github.com/aussiebroadwan/invoicer/pkg/httpx"
	"github.com/aussiebroadwan/invoicer/pkg/invoicesdk"
	"github.com/aussiebroadwan/invoicer/pkg/slogx"
)

const (
	msgUserExists         = "User already exists"
	msgRegistered         = "User registered successfully"
	msgInvalidCredentials = "Invalid credentials"
	msgLoggedOut          = "Successfully logged out"
)

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	Credentials *service.CredentialService
	Tokens      *service.TokenService
}

// HandleRegister handles POST /auth/register
//
//	@Summary		Register a user
//	@Description	Creates a user account. The password needs at least 8 characters with an uppercase letter, a lowercase letter, a digit and a special character.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invoicesdk.RegisterRequest	true	"email, password, name"
//	@Success		201		{object}	invoicesdk.MessageResponse
//	@Failure		400		{object}	invoicesdk.ErrorResponse	"invalid input or user already exists"
//	@Failure		500		{object}	invoicesdk.ErrorResponse
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req invoicesdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadJSON)
		return
	}

	if v := domain.ValidateEmail(req.Email); !v.OK {
		httpx.WriteError(w, http.StatusBadRequest, v.Reason)
		return
	}
	if v := domain.ValidatePassword(req.Password); !v.OK {
		httpx.WriteError(w, http.StatusBadRequest, v.Reason)
		return
	}

	if _, err := h.Credentials.Register(r.Context(), req.Email, req.Password, req.Name); err != nil {
		if errors.Is(err, service.ErrConflict) {
			httpx.WriteError(w, http.StatusBadRequest, msgUserExists)
			return
		}
		slogx.FromContext(r.Context()).Error("register failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
		return
	}

	httpx.WriteMessage(w, http.StatusCreated, msgRegistered)
}

// HandleLogin handles POST /auth/login
//
//	@Summary		Log in
//	@Description	Exchanges email and password for an access token and a refresh token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		invoicesdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	invoicesdk.TokenResponse
//	@Failure		400		{object}	invoicesdk.ErrorResponse
//	@Failure		401		{object}	invoicesdk.ErrorResponse	"Invalid credentials"
//	@Failure		500		{object}	invoicesdk.ErrorResponse
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req invoicesdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgBadJSON)
		return
	}

	userID, err := h.Credentials.Verify(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		slogx.FromContext(ctx).Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
		return
	}

	pair, err := h.Tokens.Issue(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("token issue failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleRefresh handles POST /auth/refresh
//
//	@Summary		Refresh the access token
//	@Description	Requires the refresh token as bearer token. Access tokens are rejected.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	invoicesdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		401	{object}	invoicesdk.ErrorResponse
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}

	pair, err := h.Tokens.Refresh(ctx, id.Claims)
	if err != nil {
		slogx.FromContext(ctx).Error("refresh failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleLogout handles POST /auth/logout
//
//	@Summary		Log out
//	@Description	Revokes the presented access token. Other tokens of the same user stay valid.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	invoicesdk.MessageResponse
//	@Failure		401	{object}	invoicesdk.ErrorResponse
//	@Failure		500	{object}	invoicesdk.ErrorResponse
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgMissingToken)
		return
	}

	if err := h.Tokens.Logout(ctx, id.Claims); err != nil {
		slogx.FromContext(ctx).Error("logout failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, msgLoggedOut)
}

func toTokenResponse(p domain.TokenPair) invoicesdk.TokenResponse {
	return invoicesdk.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresIn:    int(p.ExpiresIn.Seconds()),
	}
}
