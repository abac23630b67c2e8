package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
	"github.com/aussiebroadwan/invoicer/pkg/httpx"
)

// pathID parses the {id} wildcard. Anything but a positive integer is
// reported as absent.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ownerOf builds the tenant scope from the authenticated identity only.
func ownerOf(r *http.Request) (store.Owner, bool) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		return store.Owner{}, false
	}
	return store.OwnedBy(id.UserID), true
}
