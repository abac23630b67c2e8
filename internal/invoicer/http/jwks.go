package http

import (
	"net/http"

	"github.com/aussiebroadwan/invoicer/pkg/httpx"
	"github.com/aussiebroadwan/invoicer/pkg/invoicesdk"
	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
)

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
//
//	@Summary		Get JWKS
//	@Description	Returns the public keys access tokens can be verified with. Empty when tokens are signed with a shared secret.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	invoicesdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, invoicesdk.JWKSResponse(keys.PublicJWKS()))
	}
}
