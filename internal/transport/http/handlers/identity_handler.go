package handlers

import (
	"net/http"

	"github.com/vedran77/chatbin/internal/service"
)

type IdentityHandler struct {
	identity *service.IdentityService
}

func NewIdentityHandler(identity *service.IdentityService) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

// Me returns the acting identity: the admin override while logged in,
// otherwise this client's anonymous handle (minted on first call).
func (h *IdentityHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"username": h.identity.EffectiveUsername(r.Context()),
	})
}
