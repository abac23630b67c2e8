package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
	"github.com/aussiebroadwan/invoicer/pkg/slogx"
)

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Error messages written by AuthnMiddleware.
const (
	MsgMissingToken = "missing token"
	MsgInvalidToken = "invalid token"
	MsgTokenRevoked = "token revoked"
	MsgInternal     = "internal server error"
)

// AuthnMiddleware admits a request only if it carries a bearer token that
// verifies, was minted for use, and has not been revoked. The caller's
// Identity is then available through IdentityFromContext.
func AuthnMiddleware(v jwtx.Verifier, revoked RevocationChecker, use string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, MsgMissingToken)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Debug("jwt verify failed", "err", err)
				writeBearerError(w, MsgInvalidToken)
				return
			}

			if err := claims.ValidateTokenUse(use); err != nil {
				log.Debug("wrong token use", "want", use, "got", claims.TokenUse)
				writeBearerError(w, MsgInvalidToken)
				return
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || userID <= 0 {
				writeBearerError(w, MsgInvalidToken)
				return
			}

			isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
			if err != nil {
				log.Error("revocation lookup failed", "err", err)
				WriteError(w, http.StatusInternalServerError, MsgInternal)
				return
			}
			if isRevoked {
				writeBearerError(w, MsgTokenRevoked)
				return
			}

			ctx = contextWithIdentity(ctx, Identity{
				UserID:  userID,
				TokenID: claims.ID,
				Claims:  claims,
			})
			ctx = slogx.With(ctx, "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, desc)
}
