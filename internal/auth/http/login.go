package http

import (
	"encoding/json"
	"net/http"

	"github.com/salescrm/auth/internal/auth/service"
	"github.com/salescrm/auth/pkg/authapi"
	"github.com/salescrm/auth/pkg/httpx"
	"github.com/salescrm/auth/pkg/slogx"
)

// LoginHandler serves POST /auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authapi.ErrInvalidBody.WriteError(w)
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeAuthError(w, log, "login", err)
		return
	}

	response := authapi.AuthResponse{
		Message: "login successful",
		Token:   res.Token,
		User:    authapi.UserPayload(res.User),
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}
