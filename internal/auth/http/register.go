package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/salescrm/auth/internal/auth/service"
	"github.com/salescrm/auth/pkg/authapi"
	"github.com/salescrm/auth/pkg/httpx"
	"github.com/salescrm/auth/pkg/slogx"
)

// RegisterHandler serves POST /auth/register.
type RegisterHandler struct {
	AuthService *service.AuthService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authapi.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authapi.ErrInvalidBody.WriteError(w)
		return
	}

	res, err := h.AuthService.Register(ctx, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		writeAuthError(w, log, "register", err)
		return
	}

	response := authapi.AuthResponse{
		Message: "user registered successfully",
		Token:   res.Token,
		User:    authapi.UserPayload(res.User),
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, response)
}

// writeAuthError maps service errors to the fixed status+message pairs. No
// internal detail ever reaches the client.
func writeAuthError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		authapi.NewValidationError(verr.Field + " " + verr.Reason).WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		authapi.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authapi.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrCorruptCredential):
		// Data defect, not a wrong password. Log loudly, answer blandly.
		log.Error(op+" hit corrupt credential", "err", err)
		authapi.ErrServerError.WriteError(w)
	default:
		log.Error(op+" failed", "err", err)
		authapi.ErrServerError.WriteError(w)
	}
}
