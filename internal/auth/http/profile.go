package http

import (
	"net/http"

	"github.com/salescrm/auth/internal/auth/service"
	"github.com/salescrm/auth/pkg/authapi"
	"github.com/salescrm/auth/pkg/httpx"
	"github.com/salescrm/auth/pkg/slogx"
)

// ProfileHandler serves GET /profile. It only runs behind the authn
// middleware, so the request context carries a verified identity.
type ProfileHandler struct {
	UserService *service.UserService
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok || id.UserID == "" {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, id.UserID)
	if err != nil {
		// The token outlived the record (user deleted). Treat like any
		// other unusable token.
		log.Warn("failed to load user for valid token", "user_id", id.UserID, "err", err)
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	response := authapi.ProfileResponse{
		Message: "profile access granted",
		User:    authapi.UserPayload(user.Public()),
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}
