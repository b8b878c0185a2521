package http

import (
	"encoding/json"
	"net/http"

	"github.com/salescrm/auth/internal/auth/service"
	"github.com/salescrm/auth/pkg/authapi"
	"github.com/salescrm/auth/pkg/httpx"
	"github.com/salescrm/auth/pkg/slogx"
)

// PasswordHandler serves POST /auth/password (protected). It re-verifies
// the current password before rotating the hash.
type PasswordHandler struct {
	AuthService *service.AuthService
}

func (h *PasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok || id.UserID == "" {
		authapi.ErrInvalidToken.WriteError(w)
		return
	}

	var req authapi.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authapi.ErrInvalidBody.WriteError(w)
		return
	}

	if err := h.AuthService.ChangePassword(ctx, id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeAuthError(w, log, "change password", err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authapi.MessageResponse{Message: "password updated"})
}
